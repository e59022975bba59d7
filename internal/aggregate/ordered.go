package aggregate

// orderedGroups is a map that remembers the order keys were first inserted
type orderedGroups[K comparable, V any] struct {
	keys  []K
	index map[K]int
	vals  []V
}

func newOrderedGroups[K comparable, V any]() *orderedGroups[K, V] {
	return &orderedGroups[K, V]{index: make(map[K]int)}
}

// at returns a pointer to the value for key, inserting the zero value on first use
func (g *orderedGroups[K, V]) at(key K) *V {
	i, ok := g.index[key]
	if !ok {
		i = len(g.keys)
		g.index[key] = i
		g.keys = append(g.keys, key)
		var zero V
		g.vals = append(g.vals, zero)
	}
	return &g.vals[i]
}

// each visits groups in first-insertion order
func (g *orderedGroups[K, V]) each(fn func(key K, val V)) {
	for i, k := range g.keys {
		fn(k, g.vals[i])
	}
}

func (g *orderedGroups[K, V]) len() int {
	return len(g.keys)
}
