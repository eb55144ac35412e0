package clip

import "math"

// boxTraceState is the scratch state a single trace owns for its
// lifetime. It lives on the stack (or escapes to one short-lived heap
// allocation) of the call to BoxTrace/TransformedBoxTrace and is never
// shared across traces — this is design choice (a) from §9/§5: a
// per-trace visited set rather than a global monotonic counter plus a
// mutable per-brush field, so concurrent traces against the same Map
// never interfere with each other.
type boxTraceState struct {
	start, end Vec3
	mins, maxs Vec3
	mask       int32
	result     TraceResult
	visited    map[int32]struct{}
}

func newBoxTraceState(start, end, mins, maxs Vec3, mask int32) *boxTraceState {
	return &boxTraceState{
		start:  start,
		end:    end,
		mins:   mins,
		maxs:   maxs,
		mask:   mask,
		result: newNoHitResult(end),
	}
}

// visitBrush reports whether brushIdx has already been processed by this
// trace (Invariant M) and marks it processed if not. A brush reachable
// from more than one leaf the sweep crosses is clipped against at most
// once per trace.
func (st *boxTraceState) visitBrush(brushIdx int32) (alreadyVisited bool) {
	if st.visited == nil {
		st.visited = make(map[int32]struct{})
	}
	if _, ok := st.visited[brushIdx]; ok {
		return true
	}
	st.visited[brushIdx] = struct{}{}
	return false
}

// finish applies the trace result's endpos post-condition (§3): EndPos
// == start + Fraction*(end-start), except when Fraction == 0 and
// AllSolid, where EndPos == start.
func (st *boxTraceState) finish() TraceResult {
	if st.result.Fraction == 0 && st.result.AllSolid {
		st.result.EndPos = st.start
	} else {
		st.result.EndPos = st.start.Lerp(st.end, st.result.Fraction)
	}
	return st.result
}

// traceLeafBrushes runs the brush kernel over every brush listed by leaf
// leafnum, skipping brushes this trace has already visited.
func (m *Map) traceLeafBrushes(leafnum int32, st *boxTraceState) {
	l, ok := m.leaf(leafnum)
	if !ok {
		return
	}
	for i := int32(0); i < l.NumLeafBrushes; i++ {
		bIdx, ok := m.leafBrush(l.FirstLeafBrush + i)
		if !ok {
			continue
		}
		if st.visitBrush(bIdx) {
			continue
		}
		b, ok := m.brush(bIdx)
		if !ok {
			continue
		}
		m.boxTraceVsBrush(st.start, st.end, st.mins, st.maxs, b, st.mask, &st.result)
	}
}

// traceThroughTree is the recursive tree sweep (§4.4): it narrows the
// [p1f, p2f] parametric window of the overall sweep as it descends,
// dispatching to the brush kernel once it reaches a leaf, and returning
// immediately once no subtree it could still visit can beat the current
// best fraction (the early-exit guarantee).
func (m *Map) traceThroughTree(nodeIdx int32, p1f, p2f float64, p1, p2 Vec3, st *boxTraceState) {
	if st.result.Fraction <= p1f {
		return
	}

	if len(m.nodes) == 0 {
		m.traceLeafBrushes(0, st)
		return
	}

	n, ok := m.node(nodeIdx)
	if !ok {
		return
	}
	pl, ok := m.plane(n.PlaneNum)
	if !ok {
		return
	}

	var t1, t2, offset float64
	if pl.Type.IsAxial() {
		axis := pl.Type.Axis()
		sign := pl.Normal.At(axis)
		t1 = sign*p1.At(axis) - pl.Dist
		t2 = sign*p2.At(axis) - pl.Dist
		offset = math.Max(math.Abs(st.mins.At(axis)), math.Abs(st.maxs.At(axis)))
	} else {
		t1 = pl.Normal.Dot(p1) - pl.Dist
		t2 = pl.Normal.Dot(p2) - pl.Dist
		offset = 0
		for k := 0; k < 3; k++ {
			offset += math.Max(math.Abs(st.mins.At(k)), math.Abs(st.maxs.At(k))) * math.Abs(pl.Normal.At(k))
		}
	}

	if t1 >= offset+1 && t2 >= offset+1 {
		m.descend(n.Children[0], p1f, p2f, p1, p2, st)
		return
	}
	if t1 < -offset-1 && t2 < -offset-1 {
		m.descend(n.Children[1], p1f, p2f, p1, p2, st)
		return
	}

	var side int
	var frac1, frac2 float64
	switch {
	case t1 < t2:
		idist := 1.0 / (t1 - t2)
		side = 1
		frac2 = (t1 + offset + traceEpsilon) * idist
		frac1 = (t1 - offset - traceEpsilon) * idist
	case t1 > t2:
		idist := 1.0 / (t1 - t2)
		side = 0
		frac2 = (t1 - offset - traceEpsilon) * idist
		frac1 = (t1 + offset + traceEpsilon) * idist
	default:
		side = 0
		frac1 = 1
		frac2 = 0
	}
	frac1 = clamp01(frac1)
	frac2 = clamp01(frac2)

	midf1 := p1f + (p2f-p1f)*frac1
	mid1 := p1.Lerp(p2, frac1)
	m.descend(n.Children[side], p1f, midf1, p1, mid1, st)

	midf2 := p1f + (p2f-p1f)*frac2
	mid2 := p1.Lerp(p2, frac2)
	m.descend(n.Children[side^1], midf2, p2f, mid2, p2, st)
}

// descend dispatches to a leaf (brush kernel) or recurses into a node,
// decoding the child-reference convention in types.go.
func (m *Map) descend(child int32, p1f, p2f float64, p1, p2 Vec3, st *boxTraceState) {
	if childIsLeaf(child) {
		m.traceLeafBrushes(leafFromChild(child), st)
		return
	}
	m.traceThroughTree(child, p1f, p2f, p1, p2, st)
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// boxTraceWorld runs the tree sweep against the world BSP (handle ==
// WorldHandle). Sub-model and transient-box traces take a different,
// simpler path (§4.5, §4.6): they clip against a single known brush or
// brush slice directly, without descending any tree.
func (m *Map) boxTraceWorld(start, end, mins, maxs Vec3, mask int32) TraceResult {
	st := newBoxTraceState(start, end, mins, maxs, mask)
	if !m.loaded {
		return st.finish()
	}
	m.traceThroughTree(0, 0, 1, start, end, st)
	return st.finish()
}
