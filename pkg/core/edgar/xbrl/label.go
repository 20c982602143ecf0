package xbrl

// ParseLabelLinkbase reads a label linkbase and returns, for every
// concept it documents, the (role, lang) -> text map to be merged into
// that Concept's Labels (spec.md §4.3: label linkbase resolves
// human-readable names per role/language). A label linkbase connects
// a concept's locator to a <label> resource through a labelArc; both
// ends share an extended link, so resolution is purely local to each
// link block.
func ParseLabelLinkbase(data []byte) (map[ConceptID]map[LabelKey]string, error) {
	links, err := parseExtendedLinks(data)
	if err != nil {
		return nil, err
	}
	out := make(map[ConceptID]map[LabelKey]string)
	for _, link := range links {
		locs := locIndex(link)
		resources := make(map[string]rawResource, len(link.Resources))
		for _, r := range link.Resources {
			resources[r.Label] = r
		}
		for _, arc := range link.Arcs {
			if arc.Use == "prohibited" {
				continue
			}
			concept, ok := locs[arc.From]
			if !ok {
				continue
			}
			res, ok := resources[arc.To]
			if !ok {
				continue
			}
			lang := res.Lang
			if lang == "" {
				lang = "en"
			}
			key := LabelKey{Role: labelRoleFromURI(res.Role), Lang: lang}
			if out[concept] == nil {
				out[concept] = make(map[LabelKey]string)
			}
			out[concept][key] = res.Text
		}
	}
	return out, nil
}

// MergeLabels applies a label map produced by ParseLabelLinkbase onto
// a concept table built by ParseSchema, creating placeholder Concepts
// for any labeled id the schema pass never declared (common for
// dei:* and custom extension concepts referenced only via their
// label/presentation appearance).
func MergeLabels(concepts map[ConceptID]*Concept, labels map[ConceptID]map[LabelKey]string) {
	for id, keyed := range labels {
		c, ok := concepts[id]
		if !ok {
			c = &Concept{ID: id, DataType: DataTypeText, PeriodType: PeriodDuration, Labels: make(map[LabelKey]string)}
			concepts[id] = c
		}
		if c.Labels == nil {
			c.Labels = make(map[LabelKey]string)
		}
		for k, v := range keyed {
			c.Labels[k] = v
		}
	}
}
