package clip

// TempBox is the transient box model (§4.5): an on-demand six-sided
// brush synthesized from an AABB and a content bitset, for entity-vs-
// entity style queries that have no compiled sub-model of their own.
//
// Unlike the source engine's single process-global scratch slot, TempBox
// is a plain value. TempBoxModel returns one and the caller threads it
// explicitly through PointContents/BoxTrace alongside TempBoxHandle —
// there is no shared mutable state backing it, so distinct goroutines
// (or distinct calls on one goroutine) can hold independent TempBox
// values without clobbering each other (§9 "transient box as first-class
// model").
type TempBox struct {
	mins, maxs Vec3
	contents   int32
	sides      [6]sidePlane
}

// TempBoxModel synthesizes a TempBox: six axial planes (one per face),
// six brush sides referencing them, and the cached AABB used by the
// point-containment fast path.
func TempBoxModel(mins, maxs Vec3, contents int32) TempBox {
	tb := TempBox{mins: mins, maxs: maxs, contents: contents}
	tb.sides = [6]sidePlane{
		{Plane: Plane{Normal: Vec3{X: 1}, Dist: maxs.X, Type: PlaneX}},
		{Plane: Plane{Normal: Vec3{X: -1}, Dist: -mins.X, Type: PlaneX, SignBits: 1 << 0}},
		{Plane: Plane{Normal: Vec3{Y: 1}, Dist: maxs.Y, Type: PlaneY}},
		{Plane: Plane{Normal: Vec3{Y: -1}, Dist: -mins.Y, Type: PlaneY, SignBits: 1 << 1}},
		{Plane: Plane{Normal: Vec3{Z: 1}, Dist: maxs.Z, Type: PlaneZ}},
		{Plane: Plane{Normal: Vec3{Z: -1}, Dist: -mins.Z, Type: PlaneZ, SignBits: 1 << 2}},
	}
	return tb
}

// Mins and Maxs return the AABB the box was constructed with.
func (tb TempBox) Mins() Vec3 { return tb.mins }
func (tb TempBox) Maxs() Vec3 { return tb.maxs }

// Contents returns the content bitset the box was constructed with.
func (tb TempBox) Contents() int32 { return tb.contents }

// pointContents is an AABB containment test against the cached bounds
// (§4.5): it returns Contents() if p is inside, zero otherwise.
func (tb TempBox) pointContents(p Vec3) int32 {
	if p.X < tb.mins.X || p.X > tb.maxs.X ||
		p.Y < tb.mins.Y || p.Y > tb.maxs.Y ||
		p.Z < tb.mins.Z || p.Z > tb.maxs.Z {
		return 0
	}
	return tb.contents
}

// boxTrace runs the brush kernel once against the box's synthetic brush.
func (tb TempBox) boxTrace(start, end, mins, maxs Vec3, mask int32) TraceResult {
	st := newBoxTraceState(start, end, mins, maxs, mask)
	boxTraceVsHalfSpaces(start, end, mins, maxs, tb.sides[:], tb.contents, mask, &st.result)
	return st.finish()
}
