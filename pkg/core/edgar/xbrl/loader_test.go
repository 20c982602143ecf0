package xbrl

import "testing"

const testSchema = `<?xml version="1.0"?>
<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema" xmlns:us-gaap="http://fasb.org/us-gaap/2023" targetNamespace="http://fasb.org/us-gaap/2023">
  <xs:element name="Assets" id="us-gaap_Assets" type="xbrli:monetaryItemType" substitutionGroup="xbrli:item" abstract="false" xbrli:periodType="instant" xbrli:balance="debit"/>
  <xs:element name="Revenues" id="us-gaap_Revenues" type="xbrli:monetaryItemType" abstract="false" xbrli:periodType="duration" xbrli:balance="credit"/>
  <xs:element name="CostOfRevenue" id="us-gaap_CostOfRevenue" type="xbrli:monetaryItemType" abstract="false" xbrli:periodType="duration" xbrli:balance="debit"/>
</xs:schema>`

const testLabel = `<?xml version="1.0"?>
<link:linkbase xmlns:link="http://www.xbrl.org/2003/linkbase" xmlns:xlink="http://www.w3.org/1999/xlink">
  <link:labelLink xlink:type="extended" xlink:role="http://www.xbrl.org/2003/role/link">
    <link:loc xlink:type="locator" xlink:label="loc_assets" xlink:href="us-gaap-2023.xsd#us-gaap_Assets"/>
    <link:label xlink:type="resource" xlink:label="label_assets" xlink:role="http://www.xbrl.org/2003/role/label" xml:lang="en">Total Assets</link:label>
    <link:labelArc xlink:type="arc" xlink:arcrole="http://www.xbrl.org/2003/arcrole/concept-label" xlink:from="loc_assets" xlink:to="label_assets"/>
  </link:labelLink>
</link:linkbase>`

const testPresentation = `<?xml version="1.0"?>
<link:linkbase xmlns:link="http://www.xbrl.org/2003/linkbase" xmlns:xlink="http://www.w3.org/1999/xlink">
  <link:presentationLink xlink:type="extended" xlink:role="http://company.com/role/IncomeStatement">
    <link:loc xlink:type="locator" xlink:label="loc_rev" xlink:href="us-gaap-2023.xsd#us-gaap_Revenues"/>
    <link:loc xlink:type="locator" xlink:label="loc_cor" xlink:href="us-gaap-2023.xsd#us-gaap_CostOfRevenue"/>
    <link:presentationArc xlink:type="arc" xlink:arcrole="http://www.xbrl.org/2003/arcrole/parent-child" xlink:from="loc_rev" xlink:to="loc_cor" order="1"/>
  </link:presentationLink>
</link:linkbase>`

const testInstance = `<?xml version="1.0"?>
<xbrl xmlns="http://www.xbrl.org/2003/instance" xmlns:us-gaap="http://fasb.org/us-gaap/2023" xmlns:iso4217="http://www.xbrl.org/2003/iso4217" xmlns:xbrli="http://www.xbrl.org/2003/instance">
  <context id="c1">
    <entity><identifier scheme="http://www.sec.gov/CIK">0000320193</identifier></entity>
    <period><instant>2023-09-30</instant></period>
  </context>
  <context id="c2">
    <entity><identifier scheme="http://www.sec.gov/CIK">0000320193</identifier></entity>
    <period><startDate>2023-01-01</startDate><endDate>2023-03-31</endDate></period>
  </context>
  <unit id="usd">
    <measure>iso4217:USD</measure>
  </unit>
  <us-gaap:Assets contextRef="c1" unitRef="usd" decimals="-3">352755000</us-gaap:Assets>
  <us-gaap:Revenues contextRef="c2" unitRef="usd" decimals="-6">94836</us-gaap:Revenues>
</xbrl>`

func TestParseSchema(t *testing.T) {
	concepts, err := ParseSchema([]byte(testSchema))
	if err != nil {
		t.Fatalf("ParseSchema: %v", err)
	}
	assets, ok := concepts["us-gaap:Assets"]
	if !ok {
		t.Fatalf("missing us-gaap:Assets")
	}
	if assets.DataType != DataTypeMonetary {
		t.Errorf("DataType = %s, want monetary", assets.DataType)
	}
	if assets.PeriodType != PeriodInstant {
		t.Errorf("PeriodType = %s, want instant", assets.PeriodType)
	}
	if assets.Balance != BalanceDebit {
		t.Errorf("Balance = %s, want debit", assets.Balance)
	}
}

func TestParseLabelLinkbase(t *testing.T) {
	labels, err := ParseLabelLinkbase([]byte(testLabel))
	if err != nil {
		t.Fatalf("ParseLabelLinkbase: %v", err)
	}
	keyed, ok := labels["us-gaap:Assets"]
	if !ok {
		t.Fatalf("no labels for us-gaap:Assets")
	}
	if got := keyed[LabelKey{Role: LabelStandard, Lang: "en"}]; got != "Total Assets" {
		t.Errorf("label = %q, want %q", got, "Total Assets")
	}
}

func TestParsePresentationLinkbase(t *testing.T) {
	trees, err := ParsePresentationLinkbase([]byte(testPresentation))
	if err != nil {
		t.Fatalf("ParsePresentationLinkbase: %v", err)
	}
	tree, ok := trees["http://company.com/role/IncomeStatement"]
	if !ok {
		t.Fatalf("missing role tree")
	}
	if len(tree.Roots) != 1 {
		t.Fatalf("expected 1 root, got %d", len(tree.Roots))
	}
	root := tree.Node(tree.Roots[0])
	if root.Concept != "us-gaap:Revenues" {
		t.Errorf("root concept = %s", root.Concept)
	}
	if len(root.Children) != 1 || tree.Node(root.Children[0]).Concept != "us-gaap:CostOfRevenue" {
		t.Errorf("expected CostOfRevenue child under Revenues")
	}
}

func TestParseInstance(t *testing.T) {
	doc, err := ParseInstance([]byte(testInstance))
	if err != nil {
		t.Fatalf("ParseInstance: %v", err)
	}
	if doc.Contexts.Len() != 2 {
		t.Fatalf("Contexts.Len() = %d, want 2", doc.Contexts.Len())
	}
	if len(doc.Facts) != 2 {
		t.Fatalf("len(Facts) = %d, want 2", len(doc.Facts))
	}
	unit, ok := doc.Units["usd"]
	if !ok || unit.Canonical != "USD" {
		t.Errorf("unit usd not resolved to USD: %+v", unit)
	}

	var assets *RawInstanceFact
	for i := range doc.Facts {
		if doc.Facts[i].Concept == "us-gaap:Assets" {
			assets = &doc.Facts[i]
		}
	}
	if assets == nil {
		t.Fatalf("missing us-gaap:Assets fact")
	}
	if assets.RawValue != "352755000" {
		t.Errorf("RawValue = %q", assets.RawValue)
	}
	ctx, ok := doc.Contexts.Lookup(assets.ContextID)
	if !ok || !ctx.Period.Instant {
		t.Errorf("expected instant context for Assets fact")
	}
}

func TestLoadPipeline(t *testing.T) {
	result, warnings, err := Load(LoadInput{
		SchemaFiles:       [][]byte{[]byte(testSchema)},
		LabelFiles:        [][]byte{[]byte(testLabel)},
		PresentationFiles: [][]byte{[]byte(testPresentation)},
		Instance:          []byte(testInstance),
	}, LoadMeta{FilingDate: "2023-11-02", FormType: "10-Q", Accession: "0000320193-23-000106"})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
	if result.Store.Len() != 2 {
		t.Fatalf("Store.Len() = %d, want 2", result.Store.Len())
	}
	facts := result.Store.ByConcept("us-gaap:Revenues")
	if len(facts) != 1 {
		t.Fatalf("expected 1 Revenues fact, got %d", len(facts))
	}
	if facts[0].StatementType != StatementIncome {
		t.Errorf("StatementType = %s, want income (classified from role URI)", facts[0].StatementType)
	}
	if facts[0].Value.Kind != KindMonetary {
		t.Errorf("Value.Kind = %v, want KindMonetary", facts[0].Value.Kind)
	}
	if facts[0].Value.Number != 94836_000_000 {
		t.Errorf("Value.Number = %v, want scaled to 94836000000 (decimals=-6)", facts[0].Value.Number)
	}
}
