package htmldoc

import "strings"

// Chunk is one unit of text sized for an LLM context window.
type Chunk struct {
	SectionName string
	Text        string
	StartNode   NodeID
	EndNode     NodeID
}

// Chunks splits every detected section into one or more Chunks no
// larger than maxChars, except that a single paragraph longer than
// maxChars becomes one oversized chunk of its own, always breaking at a paragraph boundary
// rather than mid-sentence (spec §4.10: "Chunks ... are either whole
// sections or size-bounded subsections ending at paragraph
// boundaries"). A section whose full text fits within maxChars
// becomes a single chunk.
func Chunks(doc *Document, sections []Section, maxChars int) []Chunk {
	if maxChars <= 0 {
		maxChars = 8000
	}
	var out []Chunk
	for _, sec := range sections {
		paragraphs, nodeIDs := sectionParagraphs(doc, sec)
		if len(paragraphs) == 0 {
			continue
		}
		full := strings.Join(paragraphs, "\n\n")
		if len(full) <= maxChars {
			out = append(out, Chunk{SectionName: sec.Name, Text: full, StartNode: sec.Start, EndNode: sec.End})
			continue
		}
		out = append(out, splitIntoChunks(sec, paragraphs, nodeIDs, maxChars)...)
	}
	return out
}

// sectionParagraphs collects a section's paragraph/heading/list-item
// texts (and their node ids, parallel-indexed) in document order.
func sectionParagraphs(doc *Document, sec Section) ([]string, []NodeID) {
	var texts []string
	var ids []NodeID
	inSection := false
	doc.Walk(doc.Root, func(id NodeID, n *Node) bool {
		if id == sec.Start {
			inSection = true
		}
		if sec.End != NoNodeID && id == sec.End {
			inSection = false
			return false
		}
		if !inSection {
			return true
		}
		switch n.Kind {
		case KindParagraph, KindHeading, KindListItem:
			if strings.TrimSpace(n.Text) != "" {
				texts = append(texts, n.Text)
				ids = append(ids, id)
			}
		}
		return true
	})
	return texts, ids
}

// splitIntoChunks greedily packs consecutive paragraphs into chunks
// no larger than maxChars, always breaking between paragraphs.
func splitIntoChunks(sec Section, paragraphs []string, ids []NodeID, maxChars int) []Chunk {
	var out []Chunk
	var buf []string
	bufLen := 0
	startIdx := 0

	flush := func(endIdx int) {
		if len(buf) == 0 {
			return
		}
		out = append(out, Chunk{
			SectionName: sec.Name,
			Text:        strings.Join(buf, "\n\n"),
			StartNode:   ids[startIdx],
			EndNode:     ids[endIdx],
		})
		buf = buf[:0]
		bufLen = 0
	}

	for i, p := range paragraphs {
		addedLen := len(p)
		if bufLen > 0 {
			addedLen += 2 // the "\n\n" separator
		}
		if bufLen > 0 && bufLen+addedLen > maxChars {
			flush(i - 1)
			startIdx = i
		}
		if len(p) > maxChars {
			// A single paragraph longer than the budget is emitted as
			// its own oversized chunk rather than split mid-sentence.
			flush(i - 1)
			out = append(out, Chunk{SectionName: sec.Name, Text: p, StartNode: ids[i], EndNode: ids[i]})
			startIdx = i + 1
			continue
		}
		buf = append(buf, p)
		if bufLen == 0 {
			bufLen = len(p)
		} else {
			bufLen += addedLen
		}
	}
	flush(len(paragraphs) - 1)
	return out
}
