package htmldoc

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// headingTags maps a semantic (or fake-header-promoted, see
// preprocess.go) heading element to its level.
var headingTags = map[string]int{
	"h1": 1, "h2": 2, "h3": 3, "h4": 4, "h5": 5, "h6": 6,
}

// ixFactTags are the inline-XBRL elements the parser recognizes as
// XBRLFact nodes; everything else in the ix: namespace is treated as
// a generic container (ix:continuation, ix:header, ...).
var ixFactTags = map[string]bool{
	"ix:nonfraction": true,
	"ix:nonnumeric":  true,
	"ix:fraction":    true,
}

// ParseDocument runs Preprocess over raw HTML and builds the semantic
// Document tree from the cleaned result.
func ParseDocument(htmlContent string) (*Document, error) {
	gdoc, err := Preprocess(htmlContent)
	if err != nil {
		return nil, err
	}
	return BuildDocument(gdoc)
}

// BuildDocument walks an already-preprocessed goquery document and
// constructs the arena-based semantic tree. Separated from
// ParseDocument so callers that want to run their own preprocessing
// (e.g. tests supplying already-clean HTML) can skip it.
func BuildDocument(gdoc *goquery.Document) (*Document, error) {
	body := gdoc.Find("body")
	if body.Length() == 0 {
		body = gdoc.Selection
	}

	doc := NewDocument()
	b := &builder{doc: doc}
	b.walkChildren(body, doc.Root)
	return doc, nil
}

type builder struct {
	doc *Document
}

// walkChildren appends each of sel's child nodes (elements and
// non-blank text nodes) as children of parent.
func (b *builder) walkChildren(sel *goquery.Selection, parent NodeID) {
	sel.Contents().Each(func(_ int, child *goquery.Selection) {
		b.walkNode(child, parent)
	})
}

func (b *builder) walkNode(sel *goquery.Selection, parent NodeID) {
	if len(sel.Nodes) == 0 {
		return
	}
	n := sel.Nodes[0]

	switch n.Type {
	case html.TextNode:
		text := strings.TrimSpace(n.Data)
		if text == "" {
			return
		}
		b.doc.AddChild(parent, Node{Kind: KindText, Text: text})
		return
	case html.ElementNode:
		// fall through
	default:
		return
	}

	tag := strings.ToLower(n.Data)

	if ixFactTags[tag] {
		b.addXBRLFact(sel, parent, tag)
		return
	}

	if level, ok := headingTags[tag]; ok {
		id := b.doc.AddChild(parent, Node{
			Kind:  KindHeading,
			Text:  strings.TrimSpace(sel.Text()),
			Level: level,
			Style: b.styleOf(sel),
		})
		_ = id
		return
	}

	switch tag {
	case "table":
		b.addTable(sel, parent)
		return
	case "ul", "ol":
		listID := b.doc.AddChild(parent, Node{Kind: KindList, Style: b.styleOf(sel)})
		sel.Find("li").Each(func(_ int, li *goquery.Selection) {
			b.addListItem(li, listID)
		})
		return
	case "p", "div":
		text := strings.TrimSpace(sel.Text())
		if sel.Find("table, ul, ol, ix\\:nonfraction, ix\\:nonnumeric, ix\\:fraction").Length() == 0 {
			// Leaf paragraph: no nested structural content, record its
			// text directly rather than recursing into inline markup.
			if text == "" {
				return
			}
			b.doc.AddChild(parent, Node{Kind: KindParagraph, Text: text, Style: b.styleOf(sel)})
			return
		}
		// Structural container: recurse so nested tables/lists become
		// their own nodes instead of being flattened into plain text.
		containerID := b.doc.AddChild(parent, Node{Kind: KindSection, Style: b.styleOf(sel)})
		b.walkChildren(sel, containerID)
		return
	case "script", "style", "head":
		return
	default:
		// Unknown/inline element (span, a, b, strong, em, ...): recurse
		// directly into parent so its text still surfaces without
		// introducing a spurious tree node for pure formatting markup.
		b.walkChildren(sel, parent)
	}
}

func (b *builder) addListItem(li *goquery.Selection, listID NodeID) {
	if li.Find("table").Length() > 0 {
		itemID := b.doc.AddChild(listID, Node{Kind: KindListItem, Style: b.styleOf(li)})
		b.walkChildren(li, itemID)
		return
	}
	b.doc.AddChild(listID, Node{
		Kind:  KindListItem,
		Text:  strings.TrimSpace(li.Text()),
		Style: b.styleOf(li),
	})
}

func (b *builder) addXBRLFact(sel *goquery.Selection, parent NodeID, tag string) {
	attr := func(name string) string {
		v, _ := sel.Attr(name)
		return v
	}
	scale, _ := strconv.Atoi(attr("scale"))
	b.doc.AddChild(parent, Node{
		Kind:  KindXBRLFact,
		Text:  strings.TrimSpace(sel.Text()),
		Style: b.styleOf(sel),
		XBRL: &XBRLTag{
			Concept:    attr("name"),
			ContextRef: attr("contextref"),
			UnitRef:    attr("unitref"),
			Sign:       attr("sign"),
			Scale:      scale,
			Format:     attr("format"),
		},
	})
}

func (b *builder) addTable(sel *goquery.Selection, parent NodeID) {
	caption := strings.TrimSpace(sel.Find("caption").First().Text())

	var rawRows [][]rawCell
	sel.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		if hasAncestorTable(tr, sel) {
			return // skip rows belonging to a nested table
		}
		var row []rawCell
		tr.Find("td, th").Each(func(_ int, cell *goquery.Selection) {
			if hasAncestorTable(cell, sel) {
				return
			}
			colspan := attrInt(cell, "colspan", 1)
			rowspan := attrInt(cell, "rowspan", 1)
			row = append(row, rawCell{
				Text:     cleanCellText(cell.Text()),
				ColSpan:  colspan,
				RowSpan:  rowspan,
				IsHeader: goquery.NodeName(cell) == "th",
			})
		})
		rawRows = append(rawRows, row)
	})

	matrix := BuildTableMatrix(rawRows, caption)
	b.doc.AddChild(parent, Node{Kind: KindTable, Table: matrix, Style: b.styleOf(sel)})
}

// hasAncestorTable reports whether sel's nearest ancestor <table> is
// not stop (i.e. sel belongs to a table nested inside stop, rather
// than to stop itself).
func hasAncestorTable(sel *goquery.Selection, stop *goquery.Selection) bool {
	nearest := sel.Closest("table")
	if nearest.Length() == 0 || len(nearest.Nodes) == 0 || len(stop.Nodes) == 0 {
		return false
	}
	return nearest.Nodes[0] != stop.Nodes[0]
}

func attrInt(sel *goquery.Selection, name string, def int) int {
	v, exists := sel.Attr(name)
	if !exists {
		return def
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < 1 {
		return def
	}
	return n
}

func (b *builder) styleOf(sel *goquery.Selection) StyleID {
	style, exists := sel.Attr("style")
	if !exists || style == "" {
		return 0
	}
	return b.doc.Styles.Intern(style)
}

// cleanCellText normalizes a table cell's text for downstream
// consumers: collapses internal newlines and converts accounting-
// style parenthesized negatives ("(1,234.56)") to a leading minus
// sign, grounded on the teacher's converter/table_converter.go
// cleanCellText/normalizeNumber.
func cleanCellText(text string) string {
	text = strings.TrimSpace(text)
	text = strings.ReplaceAll(text, "\n", " ")
	text = strings.Join(strings.Fields(text), " ")
	if normalized, ok := normalizeAccountingNumber(text); ok {
		return normalized
	}
	return text
}

// normalizeAccountingNumber converts "(1,234.56)" style text to
// "-1234.56", leaving anything that isn't purely numeric (after
// stripping currency symbols, commas and parens) untouched.
func normalizeAccountingNumber(text string) (string, bool) {
	if text == "" {
		return text, false
	}
	hasDigit := false
	for _, r := range text {
		if r >= '0' && r <= '9' {
			hasDigit = true
			break
		}
	}
	if !hasDigit {
		return text, false
	}

	work := text
	negative := false
	if strings.HasPrefix(work, "(") && strings.HasSuffix(work, ")") {
		negative = true
		work = work[1 : len(work)-1]
	}
	for _, sym := range []string{"$", "€", "£", "¥", ","} {
		work = strings.ReplaceAll(work, sym, "")
	}
	work = strings.TrimSpace(work)
	if work == "" {
		return text, false
	}
	for _, r := range work {
		if !(r >= '0' && r <= '9' || r == '.' || r == '-') {
			return text, false
		}
	}
	if negative && !strings.HasPrefix(work, "-") {
		work = "-" + work
	}
	return work, true
}
