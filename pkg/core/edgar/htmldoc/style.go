package htmldoc

import "strings"

// StyleID interns a parsed CSS declaration block so many nodes sharing
// identical inline style="..." text (extremely common in filer-
// generated HTML, where a single style class is inlined onto thousands
// of <span> elements) pay the parsing cost once.
type StyleID int32

// Style is the subset of CSS properties the header detector and
// renderers consult.
type Style struct {
	FontWeightBold bool
	FontSizePt     float64 // 0 if not specified
	Italic         bool
	Underline      bool
	TextAlign      string
}

// StylePool interns Style values by their raw declaration text.
type StylePool struct {
	byText  map[string]StyleID
	styles  []Style
}

// NewStylePool creates a pool with the empty style pre-interned at id
// 0, so a zero-value StyleID always means "no style declared" rather
// than colliding with whatever style happens to be interned first.
func NewStylePool() *StylePool {
	p := &StylePool{byText: make(map[string]StyleID)}
	p.Intern("")
	return p
}

// Intern parses (if not already cached) a raw CSS declaration string
// and returns its StyleID.
func (p *StylePool) Intern(raw string) StyleID {
	if id, ok := p.byText[raw]; ok {
		return id
	}
	s := parseInlineStyle(raw)
	id := StyleID(len(p.styles))
	p.styles = append(p.styles, s)
	p.byText[raw] = id
	return id
}

// Get resolves a StyleID back to its Style.
func (p *StylePool) Get(id StyleID) Style {
	if id < 0 || int(id) >= len(p.styles) {
		return Style{}
	}
	return p.styles[id]
}

// parseInlineStyle is a minimal CSS declaration-block parser covering
// only the properties the header detector's "style" strategy and the
// renderers need, grounded on the teacher's html_sanitizer.go
// FixFakeHeaders style-threshold heuristic (font-weight/font-size
// driving header promotion).
func parseInlineStyle(raw string) Style {
	var s Style
	for _, decl := range strings.Split(raw, ";") {
		decl = strings.TrimSpace(decl)
		if decl == "" {
			continue
		}
		parts := strings.SplitN(decl, ":", 2)
		if len(parts) != 2 {
			continue
		}
		prop := strings.ToLower(strings.TrimSpace(parts[0]))
		val := strings.ToLower(strings.TrimSpace(parts[1]))
		switch prop {
		case "font-weight":
			if val == "bold" || val == "bolder" || isNumericWeightBold(val) {
				s.FontWeightBold = true
			}
		case "font-size":
			s.FontSizePt = parseFontSizePt(val)
		case "font-style":
			s.Italic = val == "italic"
		case "text-decoration":
			s.Underline = strings.Contains(val, "underline")
		case "text-align":
			s.TextAlign = val
		}
	}
	return s
}

func isNumericWeightBold(val string) bool {
	// CSS numeric font-weight: 700 and above reads as bold.
	switch val {
	case "700", "800", "900":
		return true
	default:
		return false
	}
}

func parseFontSizePt(val string) float64 {
	val = strings.TrimSpace(val)
	switch {
	case strings.HasSuffix(val, "pt"):
		return atof(strings.TrimSuffix(val, "pt"))
	case strings.HasSuffix(val, "px"):
		return atof(strings.TrimSuffix(val, "px")) * 0.75
	default:
		return 0
	}
}

// atof is a tiny forgiving float parser: malformed CSS length values
// degrade to 0 rather than erroring, since a missing font size should
// never abort parsing the rest of the document.
func atof(s string) float64 {
	s = strings.TrimSpace(s)
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	var whole, frac float64
	var fracDiv float64 = 1
	seenDot := false
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			d := float64(r - '0')
			if seenDot {
				fracDiv *= 10
				frac += d / fracDiv
			} else {
				whole = whole*10 + d
			}
		case r == '.':
			seenDot = true
		default:
			return 0
		}
	}
	v := whole + frac
	if neg {
		v = -v
	}
	return v
}
