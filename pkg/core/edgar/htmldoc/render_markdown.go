package htmldoc

import (
	"fmt"
	"strings"
)

// MarkdownOptions configures the LLM-optimized Markdown renderer.
type MarkdownOptions struct {
	// SuppressXBRLMetadata omits the `[concept @contextRef]`
	// annotation otherwise written after each inline-XBRL fact's
	// text, producing plain numeric text for a smaller,
	// cheaper-to-tokenize document. Tables are rendered without
	// XBRL dimension or level columns whether or not it is set.
	SuppressXBRLMetadata bool
	// IncludeFilteredFooter appends a footer noting how many nodes
	// were elided by a size-bounding pass (e.g. Chunks), so a reader
	// knows the Markdown is a partial view rather than complete.
	IncludeFilteredFooter bool
	FilteredNodeCount     int
}

// RenderMarkdown renders doc starting at id as LLM-optimized Markdown:
// headings become "#"-prefixed lines, tables become GitHub-flavored
// Markdown tables via the already-expanded TableMatrix, and inline-
// XBRL facts are rendered as their text with an optional trailing
// metadata annotation.
func RenderMarkdown(doc *Document, id NodeID, opts MarkdownOptions) string {
	var sb strings.Builder
	renderMarkdownNode(&sb, doc, id, opts)
	out := strings.TrimRight(sb.String(), "\n") + "\n"
	if opts.IncludeFilteredFooter && opts.FilteredNodeCount > 0 {
		out += fmt.Sprintf("\n_[%d elements omitted from this view]_\n", opts.FilteredNodeCount)
	}
	return out
}

func renderMarkdownNode(sb *strings.Builder, doc *Document, id NodeID, opts MarkdownOptions) {
	n := doc.Node(id)
	if n == nil {
		return
	}
	switch n.Kind {
	case KindHeading:
		level := n.Level
		if level < 1 {
			level = 1
		}
		if level > 6 {
			level = 6
		}
		fmt.Fprintf(sb, "%s %s\n\n", strings.Repeat("#", level), n.Text)
		return
	case KindParagraph:
		fmt.Fprintf(sb, "%s\n\n", n.Text)
		return
	case KindText:
		if n.Text != "" {
			fmt.Fprintf(sb, "%s\n\n", n.Text)
		}
		return
	case KindXBRLFact:
		renderMarkdownFact(sb, n, opts)
		return
	case KindTable:
		renderMarkdownTable(sb, n.Table)
		return
	case KindList:
		for _, c := range n.Children {
			item := doc.Node(c)
			if item == nil {
				continue
			}
			fmt.Fprintf(sb, "- %s\n", renderListItemInline(doc, c, opts))
		}
		sb.WriteString("\n")
		return
	}
	for _, c := range n.Children {
		renderMarkdownNode(sb, doc, c, opts)
	}
}

func renderListItemInline(doc *Document, id NodeID, opts MarkdownOptions) string {
	n := doc.Node(id)
	if n == nil {
		return ""
	}
	if n.Text != "" {
		return n.Text
	}
	var sb strings.Builder
	for _, c := range n.Children {
		renderMarkdownNode(&sb, doc, c, opts)
	}
	return strings.TrimSpace(sb.String())
}

func renderMarkdownFact(sb *strings.Builder, n *Node, opts MarkdownOptions) {
	if opts.SuppressXBRLMetadata || n.XBRL == nil {
		sb.WriteString(n.Text)
		sb.WriteString(" ")
		return
	}
	fmt.Fprintf(sb, "%s `[%s @%s]` ", n.Text, n.XBRL.Concept, n.XBRL.ContextRef)
}

func renderMarkdownTable(sb *strings.Builder, m *TableMatrix) {
	if m == nil || len(m.Rows) == 0 {
		return
	}
	if m.Caption != "" {
		fmt.Fprintf(sb, "**%s**\n\n", m.Caption)
	}
	headerRows := m.HeaderRows
	if headerRows == 0 {
		headerRows = 1
	}
	for r, row := range m.Rows {
		sb.WriteString("|")
		for _, cell := range row {
			text := cell.Text
			if text == "" {
				text = " "
			}
			fmt.Fprintf(sb, " %s |", escapeMarkdownCell(text))
		}
		sb.WriteString("\n")
		if r == headerRows-1 {
			sb.WriteString("|")
			for range row {
				sb.WriteString(" --- |")
			}
			sb.WriteString("\n")
		}
	}
	sb.WriteString("\n")
}

func escapeMarkdownCell(text string) string {
	text = strings.ReplaceAll(text, "|", "\\|")
	return strings.ReplaceAll(text, "\n", " ")
}
