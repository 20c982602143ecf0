package xbrl

// ParsePresentationLinkbase builds one Tree per extended link role
// from a presentation linkbase, following only parent-child arcs
// (spec.md §4.3 Presentation Tree, §3 invariant "Presentation tree
// acyclicity per role"). Each returned Tree is already Finalize()'d.
func ParsePresentationLinkbase(data []byte) (map[RoleID]*Tree, error) {
	links, err := parseExtendedLinks(data)
	if err != nil {
		return nil, err
	}
	out := make(map[RoleID]*Tree)
	for _, link := range links {
		if len(link.Arcs) == 0 {
			continue
		}
		locs := locIndex(link)
		role := RoleID(link.Role)
		tree := out[role]
		if tree == nil {
			tree = NewTree(role)
			out[role] = tree
		}
		for _, arc := range link.Arcs {
			if arc.Use == "prohibited" {
				continue
			}
			if arc.Arcrole != "" && arc.Arcrole != arcroleParentChild {
				continue
			}
			from, ok := locs[arc.From]
			if !ok {
				continue
			}
			to, ok := locs[arc.To]
			if !ok {
				continue
			}
			label := labelRoleFromURI(arc.PreferredLabel)
			if arc.PreferredLabel == "" {
				label = ""
			}
			if err := tree.AddArc(from, to, arc.Order, 0, label, nil); err != nil {
				// A cycle inside one role is a schema-violation-grade
				// defect in the filer's own taxonomy extension; skip the
				// offending arc rather than fail the whole document.
				continue
			}
		}
	}
	for _, tree := range out {
		tree.Finalize()
	}
	return out, nil
}
