package bitmap

// GroupIndex maps group keys to the rows holding them. Keys keep the order in
// which they were first added.
type GroupIndex struct {
	keys   []string
	groups map[string]*RowSet
}

// NewGroupIndex creates an empty group index.
func NewGroupIndex() *GroupIndex {
	return &GroupIndex{groups: make(map[string]*RowSet)}
}

// Add records that row holds key.
func (g *GroupIndex) Add(key string, row uint32) {
	rs, ok := g.groups[key]
	if !ok {
		rs = NewRowSet()
		g.groups[key] = rs
		g.keys = append(g.keys, key)
	}
	rs.Add(row)
}

// Keys returns the keys in first-appearance order.
func (g *GroupIndex) Keys() []string {
	return append([]string(nil), g.keys...)
}

// Rows returns the rows of key, or nil when the key is unknown.
func (g *GroupIndex) Rows(key string) *RowSet {
	return g.groups[key]
}

// Len returns the number of distinct keys.
func (g *GroupIndex) Len() int {
	return len(g.keys)
}

// MaxCardinality returns the size of the largest group.
func (g *GroupIndex) MaxCardinality() uint64 {
	var m uint64
	for _, rs := range g.groups {
		m = max(m, rs.Cardinality())
	}
	return m
}
