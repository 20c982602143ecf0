package htmldoc

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// preprocessor cleans a filing's raw primary HTML document before the
// semantic tree is built, grounded on the teacher's html_sanitizer.go
// HTMLSanitizer: strip noise (scripts, spacer images, page-number
// footers), promote styled-paragraph fake headers to real <h2>/<h3>
// elements, and preserve named anchors as text markers a later section
// lookup can find. Unlike the teacher, this preprocessor never
// discards ix:nonFraction/ix:nonNumeric/ix:fraction elements: their
// tag attributes are the HTML Document Parser's only source of inline
// XBRL metadata, so preprocess.go leaves them in place for parse.go to
// read, instead of replacing them with their bare text.
type preprocessor struct {
	anchorMarkerRe *regexp.Regexp
}

func newPreprocessor() *preprocessor {
	return &preprocessor{}
}

var fontSizeRe = regexp.MustCompile(`font-size:\s*(\d+(?:\.\d+)?)pt`)

// Preprocess parses raw HTML and returns a cleaned *goquery.Document
// ready for tree construction.
func Preprocess(htmlContent string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return nil, fmt.Errorf("parsing html: %w", err)
	}

	p := newPreprocessor()
	p.removeNoise(doc)
	p.preserveAnchors(doc)
	p.fixFakeHeaders(doc)
	return doc, nil
}

// removeNoise strips elements that carry no document-structure or
// financial-data value: scripts/styles, hidden elements, spacer
// images, and bare page-number footers.
func (p *preprocessor) removeNoise(doc *goquery.Document) {
	doc.Find("script, style").Remove()
	doc.Find("[hidden]").Remove()
	doc.Find("[style*='display:none'], [style*='display: none']").Remove()

	doc.Find("img").Each(func(_ int, sel *goquery.Selection) {
		src, _ := sel.Attr("src")
		width, _ := sel.Attr("width")
		height, _ := sel.Attr("height")
		if src == "" || strings.Contains(src, "spacer") || strings.Contains(src, "blank") {
			sel.Remove()
			return
		}
		if width == "1" || height == "1" {
			sel.Remove()
		}
	})

	pageNumRe := regexp.MustCompile(`^(?:Page\s*)?\d+$|^-\s*\d+\s*-$|^[A-Z]?-\d+$`)
	doc.Find("p, div, span").Each(func(_ int, sel *goquery.Selection) {
		text := strings.TrimSpace(sel.Text())
		if len(text) > 0 && len(text) < 20 && pageNumRe.MatchString(text) {
			sel.Remove()
		}
	})

	doc.Find("p, div, span").Each(func(_ int, sel *goquery.Selection) {
		if strings.TrimSpace(sel.Text()) == "" && sel.Children().Length() == 0 {
			if _, hasID := sel.Attr("id"); hasID {
				return
			}
			if _, hasName := sel.Attr("name"); hasName {
				return
			}
			sel.Remove()
		}
	})
}

// preserveAnchors converts named anchors into [ANCHOR:id] text
// markers so section lookup can later find a named location by
// scanning the rendered text, independent of the tree structure.
func (p *preprocessor) preserveAnchors(doc *goquery.Document) {
	doc.Find("a[name], a[id], div[id], span[id], p[id]").Each(func(_ int, sel *goquery.Selection) {
		id, exists := sel.Attr("name")
		if !exists {
			id, exists = sel.Attr("id")
		}
		if exists && id != "" {
			sel.BeforeHtml(fmt.Sprintf("\n[ANCHOR:%s]\n", id))
		}
	})
}

// fixFakeHeaders promotes styled <p>/<span> elements and bold
// section-like <b>/<strong> runs to semantic <h2>/<h3>, mirroring the
// teacher's font-weight/font-size threshold (bold + >=14pt -> h2,
// bold + >=12pt -> h3). header.go's weighted-vote detector still runs
// over the result: this pass only fixes the unambiguous cases so the
// detector sees real heading elements for them.
func (p *preprocessor) fixFakeHeaders(doc *goquery.Document) {
	doc.Find("p").Each(func(_ int, sel *goquery.Selection) {
		style, exists := sel.Attr("style")
		if !exists {
			return
		}
		styleLower := strings.ToLower(style)
		if !isBoldStyle(styleLower) {
			return
		}
		switch {
		case hasFontSizeAtLeast(styleLower, 14):
			convertToHeader(sel, "h2")
		case hasFontSizeAtLeast(styleLower, 12):
			convertToHeader(sel, "h3")
		}
	})

	doc.Find("span").Each(func(_ int, sel *goquery.Selection) {
		style, exists := sel.Attr("style")
		if !exists {
			return
		}
		styleLower := strings.ToLower(style)
		if isBoldStyle(styleLower) && hasFontSizeAtLeast(styleLower, 14) {
			parent := sel.Parent()
			if goquery.NodeName(parent) == "p" {
				convertToHeader(parent, "h2")
			}
		}
	})

	doc.Find("b, strong").Each(func(_ int, sel *goquery.Selection) {
		text := strings.TrimSpace(sel.Text())
		if looksLikeSectionHeader(text) {
			parent := sel.Parent()
			if name := goquery.NodeName(parent); name == "p" || name == "div" {
				convertToHeader(parent, "h2")
			}
		}
	})
}

func isBoldStyle(styleLower string) bool {
	return strings.Contains(styleLower, "font-weight:bold") ||
		strings.Contains(styleLower, "font-weight: bold") ||
		strings.Contains(styleLower, "font-weight:700") ||
		strings.Contains(styleLower, "font-weight: 700") ||
		strings.Contains(styleLower, "font-weight:800") ||
		strings.Contains(styleLower, "font-weight:900")
}

func hasFontSizeAtLeast(styleLower string, minPt int) bool {
	m := fontSizeRe.FindStringSubmatch(styleLower)
	if len(m) < 2 {
		return false
	}
	size, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return false
	}
	return size >= float64(minPt)
}

var sectionHeaderPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^Item\s+\d`),
	regexp.MustCompile(`(?i)^PART\s+[IVX]+`),
	regexp.MustCompile(`(?i)^Note\s+\d`),
	regexp.MustCompile(`(?i)^CONSOLIDATED\s+`),
	regexp.MustCompile(`(?i)^FINANCIAL\s+STATEMENTS`),
	regexp.MustCompile(`(?i)^BALANCE\s+SHEET`),
	regexp.MustCompile(`(?i)^STATEMENTS?\s+OF`),
}

func looksLikeSectionHeader(text string) bool {
	for _, re := range sectionHeaderPatterns {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

func convertToHeader(sel *goquery.Selection, tag string) {
	html, err := sel.Html()
	if err != nil {
		return
	}
	sel.ReplaceWithHtml(fmt.Sprintf("<%s>%s</%s>", tag, html, tag))
}
