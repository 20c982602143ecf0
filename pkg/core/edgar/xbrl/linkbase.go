package xbrl

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Arcroles recognized by the linkbase walkers below. XBRL linkbases
// identify arc semantics by URI rather than element name, so the
// presentation, definition and calculation loaders filter on these
// instead of on tag spelling; the label loader follows every
// non-prohibited arc without checking its arcrole.
const (
	arcroleParentChild     = "http://www.xbrl.org/2003/arcrole/parent-child"
	arcroleSummationItem   = "http://www.xbrl.org/2003/arcrole/summation-item"
	arcroleDimensionDomain = "http://xbrl.org/int/dim/arcrole/dimension-domain"
	arcroleDomainMember    = "http://xbrl.org/int/dim/arcrole/domain-member"
	arcroleHypercubeDim    = "http://xbrl.org/int/dim/arcrole/hypercube-dimension"
	arcroleLabel           = "http://www.xbrl.org/2003/arcrole/concept-label"
)

// rawLoc is a locator: a (label, href) pair inside one extended link.
type rawLoc struct {
	Label string
	Href  string
}

// rawArc is an arc inside one extended link, stripped of any namespace
// prefix on its attribute names.
type rawArc struct {
	From           string
	To             string
	Order          float64
	Weight         float64
	PreferredLabel string
	Arcrole        string
	Use            string // "prohibited" marks an arc to be dropped
}

// rawResource is an xlink:resource element (a label linkbase <label>
// or a reference linkbase <reference>), keyed by its xlink:label.
type rawResource struct {
	Label string
	Role  string
	Lang  string
	Text  string
}

// extendedLink is one <...Link xlink:type="extended"> block: a role
// (the Extended Link Role, "ELR") plus the locators, arcs, and
// resources it contains.
type extendedLink struct {
	Role      string
	Locs      []rawLoc
	Arcs      []rawArc
	Resources []rawResource
}

// parseExtendedLinks walks a linkbase XML document generically,
// classifying elements by their xlink:type attribute (locator / arc /
// resource / extended) rather than by element name, since the
// presentation/calculation/definition/label linkbases all share this
// shape and differ only in which arcrole and resource content they
// carry. Grounded on the teacher's other_examples raw xml.Decoder
// token-loop style for XBRL (RxDataLab-go-edgar's extractFacts),
// generalized here to the five-linkbase arc graph.
func parseExtendedLinks(data []byte) ([]extendedLink, error) {
	dec := xml.NewDecoder(strings.NewReader(string(data)))
	var links []extendedLink
	var cur *extendedLink
	var pendingResource *rawResource

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parsing linkbase xml: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			attrs := attrMap(t.Attr)
			switch attrs["type"] {
			case "extended":
				links = append(links, extendedLink{Role: attrs["role"]})
				cur = &links[len(links)-1]
			case "locator":
				if cur != nil {
					cur.Locs = append(cur.Locs, rawLoc{Label: attrs["label"], Href: attrs["href"]})
				}
			case "arc":
				if cur != nil {
					order, _ := strconv.ParseFloat(attrs["order"], 64)
					if attrs["order"] == "" {
						order = 1
					}
					weight, _ := strconv.ParseFloat(attrs["weight"], 64)
					cur.Arcs = append(cur.Arcs, rawArc{
						From:           attrs["from"],
						To:             attrs["to"],
						Order:          order,
						Weight:         weight,
						PreferredLabel: attrs["preferredLabel"],
						Arcrole:        attrs["arcrole"],
						Use:            attrs["use"],
					})
				}
			case "resource":
				pendingResource = &rawResource{Label: attrs["label"], Role: attrs["role"], Lang: attrs["lang"]}
			}
		case xml.CharData:
			if pendingResource != nil {
				pendingResource.Text += string(t)
			}
		case xml.EndElement:
			if pendingResource != nil {
				pendingResource.Text = strings.TrimSpace(pendingResource.Text)
				if cur != nil {
					cur.Resources = append(cur.Resources, *pendingResource)
				}
				pendingResource = nil
			}
		}
	}
	return links, nil
}

// attrMap indexes an element's attributes by local name (namespace
// prefix stripped), since linkbases freely vary their xlink/link
// prefixes.
func attrMap(attrs []xml.Attr) map[string]string {
	m := make(map[string]string, len(attrs))
	for _, a := range attrs {
		m[a.Name.Local] = a.Value
	}
	return m
}

// hrefToConceptID resolves a loc's xlink:href (e.g.
// "us-gaap-2023.xsd#us-gaap_Assets") to a ConceptID. XBRL element ids
// conventionally join namespace prefix and local name with an
// underscore because XML ids cannot contain a colon; the first
// underscore is taken as that join point.
func hrefToConceptID(href string) ConceptID {
	frag := href
	if i := strings.IndexByte(href, '#'); i >= 0 {
		frag = href[i+1:]
	}
	if i := strings.IndexByte(frag, '_'); i >= 0 {
		return ConceptID(frag[:i] + ":" + frag[i+1:])
	}
	return ConceptID(frag)
}

// labelRoleFromURI maps a standard label role URI to a LabelRole.
func labelRoleFromURI(uri string) LabelRole {
	switch {
	case strings.HasSuffix(uri, "/totalLabel"):
		return LabelTotal
	case strings.HasSuffix(uri, "/terseLabel"):
		return LabelTerse
	case strings.HasSuffix(uri, "/verboseLabel"):
		return LabelVerbose
	case strings.HasSuffix(uri, "/negatedLabel"), strings.HasSuffix(uri, "/negatedTotalLabel"), strings.HasSuffix(uri, "/negatedTerseLabel"):
		return LabelNegated
	case strings.HasSuffix(uri, "/documentation"):
		return LabelDocumentation
	default:
		return LabelStandard
	}
}

// locIndex builds a label -> ConceptID map for one extended link.
func locIndex(link extendedLink) map[string]ConceptID {
	m := make(map[string]ConceptID, len(link.Locs))
	for _, l := range link.Locs {
		m[l.Label] = hrefToConceptID(l.Href)
	}
	return m
}
