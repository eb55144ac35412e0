package clip

// InPVS reports whether p2's cluster may be visible from p1's cluster
// (§4.8). Both points are located via PointLeafnum and mapped to their
// leaf's cluster id; if either cluster is negative (uncomputed), InPVS
// returns false. Absence of a visibility matrix (no level loaded, or a
// level with an empty visibility lump) means every cluster is
// considered visible from every other, so InPVS returns true.
func (m *Map) InPVS(p1, p2 Vec3) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.inPVSLocked(p1, p2)
}

// InPVSIgnorePortals is nominally distinct from InPVS — intent: skip
// area-portal-based rejection after the PVS test — but this package, like
// the source it is grown from, never applies portal rejection inside
// InPVS itself (AreasConnected is the only portal-aware query, and
// callers combine the two explicitly). The two therefore collapse to the
// same behavior; this is an open question per §9, recorded as-is rather
// than guessed at.
func (m *Map) InPVSIgnorePortals(p1, p2 Vec3) bool {
	return m.InPVS(p1, p2)
}

func (m *Map) inPVSLocked(p1, p2 Vec3) bool {
	if !m.loaded {
		return true
	}
	leaf1 := m.pointLeafnumLocked(p1)
	leaf2 := m.pointLeafnumLocked(p2)
	l1, ok1 := m.leaf(leaf1)
	l2, ok2 := m.leaf(leaf2)
	if !ok1 || !ok2 {
		return false
	}
	c1, c2 := l1.Cluster, l2.Cluster
	if c1 < 0 || c2 < 0 {
		return false
	}
	if len(m.visData) == 0 {
		return true
	}
	bit, ok := m.visBit(c1, c2)
	if !ok {
		return false
	}
	if mirrored, ok := m.visBit(c2, c1); ok && mirrored != bit {
		m.reportOnce(anomalyPVSAsymmetry, "clip: PVS matrix asymmetric between clusters %d and %d", c1, c2)
	}
	return bit
}

// visBit reads row from's bit for cluster to out of the visibility
// matrix, reporting whether the index fell within m.visData.
func (m *Map) visBit(from, to int32) (bool, bool) {
	rowStart := int(from) * int(m.visRowSize)
	byteIdx := rowStart + int(to)/8
	if byteIdx < 0 || byteIdx >= len(m.visData) {
		return false, false
	}
	return m.visData[byteIdx]&(1<<(uint(to)%8)) != 0, true
}

// AdjustAreaPortalState opens or closes the portal between areas a and
// b (§4.8): sets both matrix cells (a,b) and (b,a) to open, keeping the
// matrix symmetric by construction. Out-of-range indices are a no-op.
func (m *Map) AdjustAreaPortalState(a, b int32, open bool) {
	m.portalMu.Lock()
	defer m.portalMu.Unlock()
	if a < 0 || b < 0 || int(a) >= len(m.areaPortals) || int(b) >= len(m.areaPortals) {
		return
	}
	m.areaPortals[a][b] = open
	m.areaPortals[b][a] = open
}

// AreasConnected reports whether area a can reach area b through open
// portals (§4.8): true if a == b, or if the portal matrix cell is true.
// Out-of-range indices return false.
func (m *Map) AreasConnected(a, b int32) bool {
	if a == b {
		return true
	}
	m.portalMu.RLock()
	defer m.portalMu.RUnlock()
	if a < 0 || b < 0 || int(a) >= len(m.areaPortals) || int(b) >= len(m.areaPortals) {
		return false
	}
	return m.areaPortals[a][b]
}
