package aig

import "github.com/bits-and-blooms/bitset"

// ConeFrom collects every object in the fanin cone of roots (inclusive),
// in a topological order (fanins before the objects that use them). A
// RegOut is followed back to its companion RegIn, so the cone reaches
// into the register's next-state logic. The visited set is a fresh
// bitset.BitSet per call rather than the Manager's shared traversal
// counter.
func (m *Manager) ConeFrom(roots []ObjID) []ObjID {
	visited := bitset.New(uint(m.NObjs()))
	order := make([]ObjID, 0, len(roots)*4)

	var visit func(id ObjID)
	visit = func(id ObjID) {
		if visited.Test(uint(id)) {
			return
		}
		visited.Set(uint(id))
		switch m.kinds[id] {
		case KindAnd:
			visit(m.fanin0[id])
			visit(m.fanin1[id])
		case KindRegIn, KindPropOut:
			visit(m.fanin0[id])
		case KindRegOut:
			if ri, ok := m.RegIn(id); ok {
				visit(ri)
			}
		}
		order = append(order, id)
	}
	for _, r := range roots {
		visit(r)
	}
	return order
}
