package htmldoc

import (
	"regexp"
	"strconv"
	"strings"
)

// Section is one detected 10-K/10-Q Item or Part, spanning from its
// heading node to (exclusively) the next detected section's heading.
type Section struct {
	Name       string // normalized caption, e.g. "Item 1A. Risk Factors"
	ItemNumber string // "1A", "7", "" if not an Item-style heading
	Start      NodeID // the heading node itself
	End        NodeID // NoNodeID if this is the last section
	Strategy   string // which strategy's vote decided this candidate
	Confidence float64
}

var itemCaptionRe = regexp.MustCompile(`(?i)^item\s+(\d+[a-z]?)\.?\s*(.*)$`)

// indexEntryRe matches a cross-reference index row such as
// "Item 1A. Risk Factors .......... 26" or "Item 7   Management's
// Discussion ... 45-52", the format rare filers (e.g. a page-indexed
// 10-K) use in place of an inline table of contents.
var indexEntryRe = regexp.MustCompile(`(?i)^item\s+(\d+[a-z]?)\.?\s+(.+?)[\s.]{2,}(\d+)(?:[\s-]+(\d+))?\s*$`)

// DetectSections runs the header detector and the cross-reference
// index strategy over doc and returns the resulting Section map in
// document order (spec §4.10: four candidate-producing strategies —
// pattern, TOC-guided and structural are folded into DetectHeaders'
// weighted vote; the cross-reference index strategy is evaluated
// separately here since it keys off a page-number table rather than
// the heading text itself, and only every contributes candidates when
// that rare format is present).
func DetectSections(doc *Document) []Section {
	candidates := DetectHeaders(doc)
	xrefTargets := findCrossReferenceIndex(doc)

	var sections []Section
	for _, c := range candidates {
		if !c.Accepted {
			continue
		}
		name := normalizeHeading(c.Text)
		item := ""
		if m := itemCaptionRe.FindStringSubmatch(c.Text); m != nil {
			item = strings.ToUpper(m[1])
		}
		strategy := dominantStrategy(c.Votes)
		confidence := c.Confidence
		if xrefTargets[name] {
			strategy = "cross_reference"
			confidence = 1.0
		}
		sections = append(sections, Section{
			Name:       strings.TrimSpace(c.Text),
			ItemNumber: item,
			Start:      c.Node,
			End:        NoNodeID,
			Strategy:   strategy,
			Confidence: confidence,
		})
	}

	for i := range sections {
		if i+1 < len(sections) {
			sections[i].End = sections[i+1].Start
		}
	}
	return sections
}

func dominantStrategy(votes map[string]float64) string {
	best, bestScore := "structural", -1.0
	for _, name := range []string{"pattern", "style", "structural", "toc"} {
		if v := votes[name]; v > bestScore {
			best, bestScore = name, v
		}
	}
	return best
}

// findCrossReferenceIndex scans paragraph/list text for rows matching
// the "Item N. Caption .... page[-page]" index format and returns the
// set of normalized captions it found, so DetectSections can mark
// those sections as cross-reference-confirmed regardless of how their
// actual heading is styled in the body.
func findCrossReferenceIndex(doc *Document) map[string]bool {
	targets := make(map[string]bool)
	doc.Walk(doc.Root, func(_ NodeID, n *Node) bool {
		if n.Kind != KindParagraph && n.Kind != KindListItem && n.Kind != KindText {
			return true
		}
		m := indexEntryRe.FindStringSubmatch(strings.TrimSpace(n.Text))
		if m == nil {
			return true
		}
		caption := "item " + strings.ToLower(m[1]) + ". " + strings.ToLower(strings.TrimSpace(m[2]))
		targets[normalizeHeading(caption)] = true
		return true
	})
	return targets
}

// PageRange returns the (start,end) page numbers a cross-reference
// index row named name maps to, if present, used to cross-check a
// structurally detected section's extent against the filer's own
// declared index (spec §4.10 example: "Item 1A mapped to pages
// 26-33").
func PageRange(doc *Document, name string) (start, end int, ok bool) {
	target := normalizeHeading(name)
	found := false
	doc.Walk(doc.Root, func(_ NodeID, n *Node) bool {
		if found {
			return false
		}
		if n.Kind != KindParagraph && n.Kind != KindListItem && n.Kind != KindText {
			return true
		}
		m := indexEntryRe.FindStringSubmatch(strings.TrimSpace(n.Text))
		if m == nil {
			return true
		}
		caption := "item " + strings.ToLower(m[1]) + ". " + strings.ToLower(strings.TrimSpace(m[2]))
		if normalizeHeading(caption) != target {
			return true
		}
		start, _ = strconv.Atoi(m[3])
		if m[4] != "" {
			end, _ = strconv.Atoi(m[4])
		} else {
			end = start
		}
		ok = true
		found = true
		return false
	})
	return start, end, ok
}

// SectionText concatenates the text content of sec's own heading node
// and every node up to (but not including) sec.End's heading.
func SectionText(doc *Document, sec Section) string {
	var out []byte
	inSection := false
	doc.Walk(doc.Root, func(id NodeID, n *Node) bool {
		if id == sec.Start {
			inSection = true
		} else if sec.End != NoNodeID && id == sec.End {
			inSection = false
			return false
		}
		if !inSection {
			return true
		}
		switch n.Kind {
		case KindText, KindParagraph, KindHeading, KindListItem:
			if n.Text != "" {
				if len(out) > 0 {
					out = append(out, '\n')
				}
				out = append(out, n.Text...)
			}
		}
		return true
	})
	return string(out)
}
