package xbrl

// ParseDefinitionLinkbase builds one Tree per extended link role from
// a definition linkbase (XBRL Dimensions 1.0), following
// hypercube-dimension, dimension-domain, and domain-member arcs. A
// dimension-domain arc's child node records a Dimension{Axis: parent,
// Member: child} so the Statement Assembler can recognize which
// default member a dimensional fact refines (spec.md glossary
// "Dimension/Member").
func ParseDefinitionLinkbase(data []byte) (map[RoleID]*Tree, error) {
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
			switch arc.Arcrole {
			case arcroleHypercubeDim, arcroleDimensionDomain, arcroleDomainMember, "":
			default:
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
			var dim *Dimension
			if arc.Arcrole == arcroleDimensionDomain {
				dim = &Dimension{Axis: from, Member: to}
			}
			if err := tree.AddArc(from, to, arc.Order, 0, "", dim); err != nil {
				continue
			}
		}
	}
	for _, tree := range out {
		tree.Finalize()
	}
	return out, nil
}
