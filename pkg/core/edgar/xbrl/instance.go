package xbrl

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
	"time"
)

// instanceSkipLocal are top-level instance elements that are never
// facts regardless of namespace.
var instanceSkipLocal = map[string]bool{
	"xbrl": true, "context": true, "unit": true, "schemaRef": true,
	"linkbaseRef": true, "footnoteLink": true, "roleRef": true, "arcroleRef": true,
}

// RawInstanceFact is a fact exactly as read off the instance document,
// before the Unit & Period Normalizer's value tagging runs (that needs
// the concept's DataType, which the schema/label pass supplies
// separately — spec.md §4.3's deterministic load order exists
// precisely so this resolution step has concept metadata in hand).
type RawInstanceFact struct {
	Concept   ConceptID
	ContextID ContextID
	UnitRef   string
	Decimals  int
	RawValue  string
}

// InstanceDocument is the parsed but not-yet-resolved content of one
// XBRL instance (or inline XBRL host document's ix:* facts, once
// extracted by the HTML Document Parser's parsing phase).
type InstanceDocument struct {
	Contexts *ContextPool
	Units    map[string]Unit
	Facts    []RawInstanceFact
}

// ParseInstance reads an XBRL instance document: contexts (interned
// through a fresh per-document ContextPool, spec.md §3 "Context
// interning"), units, and every tagged fact. Grounded on the raw
// xml.Decoder token-loop approach from other_examples'
// RxDataLab-go-edgar xbrl.go, generalized to canonical Context/Unit
// types and dimensional (xbrldi:explicitMember) segments.
func ParseInstance(data []byte) (*InstanceDocument, error) {
	dec := xml.NewDecoder(strings.NewReader(string(data)))
	doc := &InstanceDocument{
		Contexts: NewContextPool(),
		Units:    make(map[string]Unit),
	}
	nsToPrefix := map[string]string{}

	var curContextID string
	var curContext *Context
	var inEntity, inSegment bool
	var entityText strings.Builder

	var curUnitID string
	var curUnitMeasure, curUnitNumerator, curUnitDenominator strings.Builder
	var inNumerator, inDenominator bool

	var periodTag string // "instant" | "startDate" | "endDate" | ""
	var periodText strings.Builder

	var dimText strings.Builder
	var inDim bool

	var curFact *RawInstanceFact
	var factText strings.Builder
	depth := 0

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parsing xbrl instance: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			for _, a := range t.Attr {
				if a.Name.Space == "xmlns" {
					nsToPrefix[a.Value] = a.Name.Local
				}
			}
			attrs := attrMap(t.Attr)
			switch t.Name.Local {
			case "context":
				curContextID = attrs["id"]
				curContext = &Context{}
			case "entity":
				inEntity = true
				entityText.Reset()
			case "segment":
				inSegment = true
			case "explicitMember":
				if inSegment && curContext != nil {
					axis := qnameToConceptID(attrs["dimension"])
					curContext.Dimensions = append(curContext.Dimensions, Dimension{Axis: axis})
					inDim = true
					dimText.Reset()
				}
			case "instant", "startDate", "endDate":
				periodTag = t.Name.Local
				periodText.Reset()
			case "unit":
				curUnitID = attrs["id"]
				curUnitMeasure.Reset()
				curUnitNumerator.Reset()
				curUnitDenominator.Reset()
			case "unitNumerator":
				inNumerator = true
			case "unitDenominator":
				inDenominator = true
			case "measure":
				// text consumed generically below, routed by the
				// in-numerator/in-denominator/plain-unit flags
			default:
				if instanceSkipLocal[t.Name.Local] || depth <= 1 || curContext != nil || curUnitID != "" {
					continue
				}
				prefix := nsToPrefix[t.Name.Space]
				if prefix == "" {
					prefix = "company"
				}
				curFact = &RawInstanceFact{
					Concept:   NewConceptID(prefix, t.Name.Local),
					ContextID: ContextID(attrs["contextRef"]),
					UnitRef:   attrs["unitRef"],
					Decimals:  ParseDecimals(attrs["decimals"]),
				}
				factText.Reset()
			}
		case xml.CharData:
			text := string(t)
			switch {
			case curFact != nil:
				factText.WriteString(text)
			case inDim:
				dimText.WriteString(text)
			case periodTag != "":
				periodText.WriteString(text)
			case inNumerator:
				curUnitNumerator.WriteString(text)
			case inDenominator:
				curUnitDenominator.WriteString(text)
			case curUnitID != "":
				curUnitMeasure.WriteString(text)
			case inEntity && !inSegment:
				entityText.WriteString(text)
			}
		case xml.EndElement:
			depth--
			switch t.Name.Local {
			case "context":
				if curContext != nil && curContextID != "" {
					doc.Contexts.Intern(ContextID(curContextID), curContext)
				}
				curContextID = ""
				curContext = nil
			case "entity":
				inEntity = false
				if curContext != nil {
					curContext.Entity = strings.TrimSpace(entityText.String())
				}
			case "segment":
				inSegment = false
			case "explicitMember":
				if inDim && curContext != nil && len(curContext.Dimensions) > 0 {
					last := &curContext.Dimensions[len(curContext.Dimensions)-1]
					last.Member = qnameToConceptID(strings.TrimSpace(dimText.String()))
				}
				inDim = false
			case "instant", "startDate", "endDate":
				if curContext != nil {
					assignPeriodText(curContext, periodTag, strings.TrimSpace(periodText.String()))
				}
				periodTag = ""
			case "unitNumerator":
				inNumerator = false
			case "unitDenominator":
				inDenominator = false
			case "unit":
				if curUnitID != "" {
					num := strings.TrimSpace(curUnitNumerator.String())
					den := strings.TrimSpace(curUnitDenominator.String())
					if num != "" || den != "" {
						doc.Units[curUnitID] = ParseDivideUnit(num, den)
					} else {
						doc.Units[curUnitID] = ParseUnit(strings.TrimSpace(curUnitMeasure.String()))
					}
				}
				curUnitID = ""
			default:
				if curFact != nil {
					curFact.RawValue = strings.TrimSpace(factText.String())
					doc.Facts = append(doc.Facts, *curFact)
					curFact = nil
				}
			}
		}
	}
	return doc, nil
}

// assignPeriodText fills in one sub-element of a Context's Period as
// it's encountered; a duration context arrives as startDate then
// endDate, an instant context as a single instant element.
func assignPeriodText(c *Context, tag, text string) {
	t, err := parseEdgarDate(text)
	if err != nil {
		return
	}
	switch tag {
	case "instant":
		c.Period = Period{Instant: true, End: t}
	case "startDate":
		c.Period.Start = t
	case "endDate":
		c.Period.Instant = false
		c.Period.End = t
	}
}

func parseEdgarDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if len(s) > 10 {
		s = s[:10]
	}
	return time.Parse("2006-01-02", s)
}

// qnameToConceptID resolves a member/axis QName attribute or element
// text (always written "prefix:LocalName" in valid XBRL) to a
// ConceptID.
func qnameToConceptID(qname string) ConceptID {
	return ConceptID(strings.TrimSpace(qname))
}
