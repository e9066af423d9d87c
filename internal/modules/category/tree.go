package category

// BuildTree nests categories under their parents in one pass. Input order is
// kept among siblings. A category whose parent is not in the list is dropped,
// so children of inactive parents are unreachable.
func BuildTree(list []*Category) []*Node {
	nodes := make(map[string]*Node, len(list))
	for _, c := range list {
		nodes[c.ID] = &Node{Category: c, Children: []*Node{}}
	}

	roots := []*Node{}
	for _, c := range list {
		n := nodes[c.ID]
		if c.ParentID == nil {
			roots = append(roots, n)
			continue
		}
		if parent, ok := nodes[*c.ParentID]; ok && parent != n {
			parent.Children = append(parent.Children, n)
		}
	}
	return roots
}
