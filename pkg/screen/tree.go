package screen

// Find returns the first component with the given id in a pre-order
// depth-first walk of forest: a node is visited before its children, and
// siblings in order. The second result is false when no component matches.
func Find(forest []Component, id string) (Component, bool) {
	for i := range forest {
		if forest[i].ID == id {
			return forest[i], true
		}
		if c, ok := Find(forest[i].Children, id); ok {
			return c, true
		}
	}
	return Component{}, false
}

// MergeStyle returns a forest in which every component whose id equals id
// has update merged into its styles (see [Styles.Merge]). All other fields
// are copied unchanged.
//
// The input is never modified. Sibling lists that contain no match are
// returned as the very same slice, so an absent id yields forest itself.
func MergeStyle(forest []Component, id string, update StyleUpdate) []Component {
	out, _ := mergeStyle(forest, id, update)
	return out
}

func mergeStyle(forest []Component, id string, update StyleUpdate) ([]Component, bool) {
	var out []Component
	for i := range forest {
		c := forest[i]
		changed := false
		if c.ID == id {
			c.Styles = c.Styles.Merge(update)
			changed = true
		}
		if children, ok := mergeStyle(c.Children, id, update); ok {
			c.Children = children
			changed = true
		}
		if !changed {
			continue
		}
		if out == nil {
			out = make([]Component, len(forest))
			copy(out, forest)
		}
		out[i] = c
	}
	if out == nil {
		return forest, false
	}
	return out, true
}

// Walk visits every component in pre-order, passing its depth (0 for roots).
// Returning false from fn skips the component's children.
func Walk(forest []Component, fn func(c *Component, depth int) bool) {
	walk(forest, 0, fn)
}

func walk(forest []Component, depth int, fn func(c *Component, depth int) bool) {
	for i := range forest {
		if fn(&forest[i], depth) {
			walk(forest[i].Children, depth+1, fn)
		}
	}
}

// Count returns the number of components in forest, including descendants.
func Count(forest []Component) int {
	n := 0
	Walk(forest, func(*Component, int) bool {
		n++
		return true
	})
	return n
}

// CountByType tallies components per type.
func CountByType(forest []Component) map[ComponentType]int {
	counts := make(map[ComponentType]int)
	Walk(forest, func(c *Component, _ int) bool {
		counts[c.Type]++
		return true
	})
	return counts
}

// Depth returns the number of levels in forest; an empty forest has depth 0.
func Depth(forest []Component) int {
	max := 0
	Walk(forest, func(_ *Component, d int) bool {
		if d+1 > max {
			max = d + 1
		}
		return true
	})
	return max
}

// Path returns the ids from a root down to the first component matching id,
// inclusive. It returns nil when id is absent.
func Path(forest []Component, id string) []string {
	for i := range forest {
		if forest[i].ID == id {
			return []string{id}
		}
		if p := Path(forest[i].Children, id); p != nil {
			return append([]string{forest[i].ID}, p...)
		}
	}
	return nil
}
