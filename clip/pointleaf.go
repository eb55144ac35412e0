package clip

// PointLeafnum returns the index of the leaf containing p in the world
// tree (§4.2). Returns 0 (the sentinel empty leaf) when no level is
// loaded or the tree is empty.
func (m *Map) PointLeafnum(p Vec3) int32 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.pointLeafnumLocked(p)
}

func (m *Map) pointLeafnumLocked(p Vec3) int32 {
	if len(m.nodes) == 0 {
		return 0
	}

	var idx int32 = 0
	for {
		n, ok := m.node(idx)
		if !ok {
			return 0
		}
		pl, ok := m.plane(n.PlaneNum)
		if !ok {
			return 0
		}

		var d float64
		if pl.Type.IsAxial() {
			axis := pl.Type.Axis()
			d = pl.Normal.At(axis)*p.At(axis) - pl.Dist
		} else {
			d = pl.Normal.Dot(p) - pl.Dist
		}

		var child int32
		if d >= 0 {
			child = n.Children[0]
		} else {
			child = n.Children[1]
		}

		if childIsLeaf(child) {
			return leafFromChild(child)
		}
		idx = child
	}
}

// LeafCluster returns the PVS cluster id of leaf leafnum, or -1 if
// leafnum is out of range.
func (m *Map) LeafCluster(leafnum int32) int32 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	l, ok := m.leaf(leafnum)
	if !ok {
		return -1
	}
	return l.Cluster
}

// LeafArea returns the area id of leaf leafnum, or -1 if leafnum is out
// of range.
func (m *Map) LeafArea(leafnum int32) int32 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	l, ok := m.leaf(leafnum)
	if !ok {
		return -1
	}
	return l.Area
}

// PointLeafnumInModel is a §4.10 supplemental accessor. For WorldHandle
// it is identical to PointLeafnum. Inline sub-models carry no BSP tree
// of their own (only a flat brush slice, per §3 SubModel), so there is
// no leaf to locate; it returns 0 for any other handle. No other function
// in this package calls it.
func (m *Map) PointLeafnumInModel(p Vec3, handle ModelHandle) int32 {
	if handle != WorldHandle {
		return 0
	}
	return m.PointLeafnum(p)
}
