package loader

// LocationMapper assigns dense graph node ids to location id strings in
// first-seen order. The resulting ids index directly into the graph's
// node set.
type LocationMapper struct {
	nodes map[string]int
	next  int
}

func NewLocationMapper() *LocationMapper {
	return &LocationMapper{nodes: make(map[string]int)}
}

// GetOrCreate returns the node id for a location, allocating the next id
// on first sight.
func (m *LocationMapper) GetOrCreate(location string) int {
	if id, ok := m.nodes[location]; ok {
		return id
	}
	id := m.next
	m.nodes[location] = id
	m.next++
	return id
}

// Node returns the node id for a known location. ok is false when the
// location was never mapped.
func (m *LocationMapper) Node(location string) (int, bool) {
	id, ok := m.nodes[location]
	return id, ok
}

// Has reports whether the location is mapped.
func (m *LocationMapper) Has(location string) bool {
	_, ok := m.nodes[location]
	return ok
}

// Count reports how many locations have been mapped.
func (m *LocationMapper) Count() int { return m.next }
