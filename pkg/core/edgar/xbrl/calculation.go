package xbrl

// ParseCalculationLinkbase builds one Tree per extended link role from
// a calculation linkbase, following summation-item arcs and recording
// each child's Weight (+1 or -1, spec.md glossary "Calculation Tree").
// The Statement Assembler marks a line as a total when its
// presentation arc carries the total label or when its concept is a
// parent in the role's calculation tree; calculation
// inconsistency by itself is never treated as a parse error (spec.md
// §4.3 Open Question: calculation-tree validation is advisory).
func ParseCalculationLinkbase(data []byte) (map[RoleID]*Tree, error) {
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
			if arc.Arcrole != "" && arc.Arcrole != arcroleSummationItem {
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
			weight := arc.Weight
			if weight == 0 {
				weight = 1
			}
			if err := tree.AddArc(from, to, arc.Order, weight, "", nil); err != nil {
				continue
			}
		}
	}
	for _, tree := range out {
		tree.Finalize()
	}
	return out, nil
}
