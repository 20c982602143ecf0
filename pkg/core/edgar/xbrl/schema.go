package xbrl

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// ParseSchema reads a taxonomy XSD file and returns the Concept
// declared by every <xs:element> with a name attribute (nested
// declarations included), keyed by ConceptID. It is
// a deliberately narrow XSD reader: only the attributes the Fact Store
// and Statement Assembler actually consult (name/id, type,
// substitutionGroup, abstract, the xbrli:periodType and xbrli:balance
// extension attributes) are extracted; anything else in the schema
// (imports, complex type bodies, annotations) is skipped. This is the
// first step of the deterministic linkbase load order (spec.md §4.3:
// schema -> label -> presentation -> definition -> calculation ->
// instance), since every later step resolves concepts that must
// already exist.
func ParseSchema(data []byte) (map[ConceptID]*Concept, error) {
	prefix := schemaPrefix(data)

	dec := xml.NewDecoder(strings.NewReader(string(data)))
	out := make(map[ConceptID]*Concept)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parsing schema xml: %w", err)
		}
		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "element" {
			continue
		}
		attrs := attrMap(start.Attr)
		name := attrs["name"]
		if name == "" {
			continue
		}
		id := ConceptID(prefix + ":" + name)
		if attrs["id"] != "" {
			id = hrefToConceptID("#" + attrs["id"])
		}
		c := &Concept{
			ID:                id,
			DataType:          classifyXSDType(attrs["type"]),
			PeriodType:        PeriodType(attrs["periodType"]),
			Balance:           Balance(attrs["balance"]),
			SubstitutionGroup: attrs["substitutionGroup"],
			Abstract:          attrs["abstract"] == "true",
			Labels:            make(map[LabelKey]string),
		}
		if c.PeriodType == "" {
			c.PeriodType = PeriodDuration
		}
		if c.Balance == "" {
			c.Balance = BalanceNone
		}
		out[id] = c
	}
	return out, nil
}

// schemaPrefix extracts the conventional namespace prefix for the
// schema's targetNamespace, so concept ids built from name="..."
// (rather than an explicit id="...") match the convention the
// linkbases' loc hrefs use.
func schemaPrefix(data []byte) string {
	dec := xml.NewDecoder(strings.NewReader(string(data)))
	for {
		tok, err := dec.Token()
		if err != nil {
			return "company"
		}
		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "schema" {
			continue
		}
		attrs := attrMap(start.Attr)
		ns := attrs["targetNamespace"]
		for _, a := range start.Attr {
			if a.Name.Space == "xmlns" && a.Value == ns {
				return a.Name.Local
			}
		}
		return "company"
	}
}

// classifyXSDType maps an XBRL item type (e.g. "xbrli:monetaryItemType",
// "num-us:perShareItemType") to a DataType.
func classifyXSDType(xsdType string) DataType {
	t := strings.ToLower(xsdType)
	switch {
	case strings.Contains(t, "monetary"):
		return DataTypeMonetary
	case strings.Contains(t, "shares"):
		return DataTypeShares
	case strings.Contains(t, "pershare"):
		return DataTypePerShare
	case strings.Contains(t, "pure") || strings.Contains(t, "percent"):
		return DataTypeRatio
	case strings.Contains(t, "date"):
		return DataTypeDate
	default:
		return DataTypeText
	}
}
