package clip

// subModelPointContents accumulates the content bits of every brush in
// handle's brush slice that contains p (§4.3.1, applied directly to a
// sub-model's brush range rather than via leaf descent — a sub-model
// carries no BSP tree of its own, only a flat brush list, per §3).
func (m *Map) subModelPointContents(handle ModelHandle, p Vec3) int32 {
	sm, ok := m.subModel(handle)
	if !ok {
		return 0
	}
	var contents int32
	for i := int32(0); i < sm.NumBrushes; i++ {
		b, ok := m.brush(sm.FirstBrush + i)
		if !ok {
			continue
		}
		if m.pointInsideBrush(p, b) {
			contents |= b.Contents
		}
	}
	return contents
}

// worldPointContents locates p's leaf via the BSP tree and accumulates
// the content bits of every containing brush that leaf lists (§4.2,
// §4.3.1).
func (m *Map) worldPointContents(p Vec3) int32 {
	leafnum := m.pointLeafnumLocked(p)
	l, ok := m.leaf(leafnum)
	if !ok {
		return 0
	}
	var contents int32
	for i := int32(0); i < l.NumLeafBrushes; i++ {
		bIdx, ok := m.leafBrush(l.FirstLeafBrush + i)
		if !ok {
			continue
		}
		b, ok := m.brush(bIdx)
		if !ok {
			continue
		}
		if m.pointInsideBrush(p, b) {
			contents |= b.Contents
		}
	}
	return contents
}

// traceSubModel sweeps handle's brush slice directly (§4.6).
//
// The source installs the sub-model's brushes into leaf 0 for the
// duration of the trace and restores leaf 0's sentinel contents on
// return, relying on the engine being single-threaded. Since this
// package makes concurrent BoxTrace calls against one Map safe (§5),
// mutating a slot shared by every caller is not an option here; this
// implementation clips directly against the sub-model's own brush range
// instead, which is observably identical (the same brushes, the same
// kernel, the same best-fraction-wins rule) without the shared-state
// hazard. See DESIGN.md for this deviation.
func (m *Map) traceSubModel(handle ModelHandle, start, end, mins, maxs Vec3, mask int32) TraceResult {
	sm, ok := m.subModel(handle)
	if !ok {
		return newNoHitResult(end)
	}
	st := newBoxTraceState(start, end, mins, maxs, mask)
	for i := int32(0); i < sm.NumBrushes; i++ {
		bIdx := sm.FirstBrush + i
		if st.visitBrush(bIdx) {
			continue
		}
		b, ok := m.brush(bIdx)
		if !ok {
			continue
		}
		m.boxTraceVsBrush(st.start, st.end, st.mins, st.maxs, b, mask, &st.result)
	}
	return st.finish()
}

// --- transformed variants (§4.7) ---
//
// Point-contents and box-trace in a sub-model's local frame: translate
// start/end by subtracting the sub-model's world origin, perform the
// untransformed query, translate EndPos back. Rotation by Euler angles
// is part of the contract but, per §9's open question, this conforming
// implementation defers correct rotation semantics: in the degenerate
// zero-angle case behavior is identical to the untransformed path, and a
// non-zero angles value is accepted but only the translation component
// is honored (no rotation is applied to start/end, the impact plane, or
// EndPos). A future revision that needs true rotated sub-model traces
// must extend this function, not PointContents/BoxTrace.

// TransformedPointContents evaluates PointContents as though the world
// were translated by -origin (angles is accepted for contract
// completeness; see the rotation note above).
func (m *Map) TransformedPointContents(p Vec3, handle ModelHandle, origin, angles Vec3, box *TempBox) int32 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	local := p.Sub(origin)
	return m.pointContentsLocked(local, handle, box)
}

// TransformedBoxTrace evaluates BoxTrace as though the world were
// translated by -origin, then translates EndPos back into world space
// (angles is accepted for contract completeness; see the rotation note
// above).
func (m *Map) TransformedBoxTrace(start, end, mins, maxs Vec3, handle ModelHandle, mask int32, origin, angles Vec3, box *TempBox, useCylinder bool) TraceResult {
	m.mu.RLock()
	defer m.mu.RUnlock()
	localStart := start.Sub(origin)
	localEnd := end.Sub(origin)
	tr := m.boxTraceLocked(localStart, localEnd, mins, maxs, handle, mask, box, useCylinder)
	tr.EndPos = tr.EndPos.Add(origin)
	return tr
}
