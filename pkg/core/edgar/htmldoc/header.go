package htmldoc

import (
	"regexp"
	"strings"
)

// headerWeights are the per-strategy vote weights. They sum to 1.0 so
// a weighted confidence lands in [0,1] directly comparable against
// thresholdHeader.
var headerWeights = map[string]float64{
	"pattern":    0.25,
	"style":      0.55,
	"structural": 0.10,
	"toc":        0.10,
}

// thresholdHeader is the minimum weighted confidence for a candidate
// node to be accepted as a header (design value T_header = 0.6).
const thresholdHeader = 0.6

var itemHeadingRe = regexp.MustCompile(`(?i)^item\s+\d+[a-z]?\b`)
var partHeadingRe = regexp.MustCompile(`(?i)^part\s+[ivx]+\b`)
var allCapsRe = regexp.MustCompile(`^[A-Z0-9][A-Z0-9\s,.\-&()']{3,}$`)

// HeaderCandidate is one node considered for promotion to a detected
// header, together with the per-strategy votes that produced its
// confidence score.
type HeaderCandidate struct {
	Node       NodeID
	Text       string
	Confidence float64
	Votes      map[string]float64
	Accepted   bool
}

// headerDetector runs the four voting strategies described for
// Section Detector & Chunker (spec §4.10) and Header Detection
// (spec §4.2) over a Document's existing Heading/Paragraph nodes:
// pattern (regex on "Item N."/"PART N"), style (bold/large/all-caps),
// structural (node kind and word count), and a
// TOC-guided boost when a table of contents was located earlier in
// the document. Candidates whose weighted confidence exceeds
// thresholdHeader are accepted.
type headerDetector struct {
	doc          *Document
	tocTargets   map[string]bool // normalized heading text seen in a TOC block
	priorHeading bool            // whether any header has been accepted so far
}

// DetectHeaders scans every Heading and Paragraph node in document
// order and returns a HeaderCandidate for each one considered,
// including rejected candidates (useful for diagnostics/tests).
func DetectHeaders(doc *Document) []HeaderCandidate {
	d := &headerDetector{doc: doc, tocTargets: findTOCTargets(doc)}
	var out []HeaderCandidate
	doc.Walk(doc.Root, func(id NodeID, n *Node) bool {
		if n.Kind != KindHeading && n.Kind != KindParagraph {
			return true
		}
		text := strings.TrimSpace(n.Text)
		if text == "" {
			return true
		}
		cand := d.evaluate(id, n, text)
		out = append(out, cand)
		if cand.Accepted {
			d.priorHeading = true
		}
		return true
	})
	return out
}

func (d *headerDetector) evaluate(id NodeID, n *Node, text string) HeaderCandidate {
	votes := map[string]float64{
		"pattern":    patternVote(text),
		"style":      styleVote(d.doc, n),
		"structural": structuralVote(n, d.priorHeading),
		"toc":        tocVote(d.tocTargets, text),
	}
	var confidence float64
	for strategy, v := range votes {
		confidence += headerWeights[strategy] * v
	}
	return HeaderCandidate{
		Node:       id,
		Text:       text,
		Confidence: confidence,
		Votes:      votes,
		Accepted:   confidence > thresholdHeader || n.Kind == KindHeading,
	}
}

// patternVote matches "Item N[letter]" / "PART N" headings, the
// dominant structural markers in 10-K/10-Q filings.
func patternVote(text string) float64 {
	switch {
	case itemHeadingRe.MatchString(text):
		return 1.0
	case partHeadingRe.MatchString(text):
		return 0.9
	default:
		return 0.0
	}
}

// styleVote scores bold/large/all-caps text, the visual cues filers
// use in lieu of semantic headings (grounded on the same bold+font-
// size signal preprocess.go's fixFakeHeaders promotes structurally).
func styleVote(doc *Document, n *Node) float64 {
	style := doc.Styles.Get(n.Style)
	score := 0.0
	if style.FontWeightBold {
		score += 0.6
	}
	if style.FontSizePt >= 14 {
		score += 0.6
	} else if style.FontSizePt >= 12 {
		score += 0.3
	}
	if allCapsRe.MatchString(strings.TrimSpace(n.Text)) && len(n.Text) < 120 {
		score += 0.3
	}
	if score > 1.0 {
		score = 1.0
	}
	return score
}

// structuralVote rewards short, title-like text that appears as an
// isolated block (a heading is rarely a multi-sentence paragraph):
// 1.0 for a Heading node, 0.6 for twelve words or fewer, 0.3 for up
// to twenty, 0 otherwise. It does not score position relative to
// earlier accepted headers; priorHeading is not consulted.
func structuralVote(n *Node, priorHeading bool) float64 {
	if n.Kind == KindHeading {
		return 1.0
	}
	wordCount := len(strings.Fields(n.Text))
	switch {
	case wordCount == 0:
		return 0
	case wordCount <= 12:
		return 0.6
	case wordCount <= 20:
		return 0.3
	default:
		return 0
	}
}

// tocVote rewards candidates whose normalized text matches an entry
// seen in a previously detected table-of-contents block.
func tocVote(tocTargets map[string]bool, text string) float64 {
	if tocTargets[normalizeHeading(text)] {
		return 1.0
	}
	return 0.0
}

// findTOCTargets scans for a "Table of Contents" marker and collects
// the Item/Part captions that follow it inside the same list/table,
// giving the TOC-guided strategy a set of expected heading strings.
func findTOCTargets(doc *Document) map[string]bool {
	targets := make(map[string]bool)
	inTOC := false
	doc.Walk(doc.Root, func(_ NodeID, n *Node) bool {
		text := strings.TrimSpace(n.Text)
		switch n.Kind {
		case KindHeading, KindParagraph:
			if strings.Contains(strings.ToLower(text), "table of contents") {
				inTOC = true
				return true
			}
			if inTOC && (itemHeadingRe.MatchString(text) || partHeadingRe.MatchString(text)) {
				targets[normalizeHeading(text)] = true
			}
		case KindListItem:
			if inTOC && (itemHeadingRe.MatchString(text) || partHeadingRe.MatchString(text)) {
				targets[normalizeHeading(text)] = true
			}
		case KindTable:
			// A table directly following the TOC marker usually holds
			// the index itself; its exact rows aren't walked as text
			// nodes, so TOC targets from tabular indexes are picked up
			// via the cross-reference strategy in section.go instead.
		}
		return true
	})
	return targets
}

func normalizeHeading(text string) string {
	text = strings.ToLower(strings.TrimSpace(text))
	return strings.Join(strings.Fields(text), " ")
}
