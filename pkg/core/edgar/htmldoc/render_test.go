package htmldoc

import (
	"strings"
	"testing"
)

func buildRenderTestDoc() *Document {
	doc := NewDocument()
	doc.AddChild(doc.Root, Node{Kind: KindHeading, Text: "Item 1. Business", Level: 2})
	doc.AddChild(doc.Root, Node{Kind: KindParagraph, Text: "We sell gadgets."})
	rows := [][]rawCell{
		{{Text: "Year", IsHeader: true}, {Text: "Revenue", IsHeader: true}},
		{{Text: "2023"}, {Text: "100"}},
	}
	doc.AddChild(doc.Root, Node{Kind: KindTable, Table: BuildTableMatrix(rows, "")})
	return doc
}

func TestRenderMarkdownHeadingAndTable(t *testing.T) {
	doc := buildRenderTestDoc()
	md := RenderMarkdown(doc, doc.Root, MarkdownOptions{})
	if !strings.Contains(md, "## Item 1. Business") {
		t.Errorf("markdown missing heading: %q", md)
	}
	if !strings.Contains(md, "| Year |") || !strings.Contains(md, "| --- |") {
		t.Errorf("markdown missing table structure: %q", md)
	}
}

func TestRenderMarkdownXBRLFactSuppression(t *testing.T) {
	doc := NewDocument()
	doc.AddChild(doc.Root, Node{Kind: KindXBRLFact, Text: "94,836", XBRL: &XBRLTag{Concept: "us-gaap:Revenues", ContextRef: "c1"}})

	withMeta := RenderMarkdown(doc, doc.Root, MarkdownOptions{})
	if !strings.Contains(withMeta, "us-gaap:Revenues") {
		t.Errorf("expected concept metadata when not suppressed: %q", withMeta)
	}

	suppressed := RenderMarkdown(doc, doc.Root, MarkdownOptions{SuppressXBRLMetadata: true})
	if strings.Contains(suppressed, "us-gaap:Revenues") {
		t.Errorf("expected no concept metadata when suppressed: %q", suppressed)
	}
	if !strings.Contains(suppressed, "94,836") {
		t.Errorf("expected fact text preserved when suppressed: %q", suppressed)
	}
}

func TestRenderTextTableAlignment(t *testing.T) {
	rows := [][]rawCell{
		{{Text: "Year", IsHeader: true}, {Text: "Revenue", IsHeader: true}},
		{{Text: "2023"}, {Text: "100"}},
		{{Text: "2022"}, {Text: "90"}},
	}
	m := BuildTableMatrix(rows, "")
	out := RenderTextTable(m)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines (header, rule, 2 data rows), got %d: %q", len(lines), out)
	}
	if !strings.Contains(lines[1], "─") {
		t.Errorf("expected a horizontal rule line after the header: %q", lines[1])
	}
	if strings.Contains(out, "|") {
		t.Errorf("text table should be borderless (no pipes): %q", out)
	}
}
