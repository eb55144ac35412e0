package clip

// traceEpsilon is the protocol constant baked into contact math (§9):
// one thirty-second of a world unit. It inflates contact away from
// surfaces and produces conservative non-overlap at the hit point.
// Changing it changes contact geometry visible to gameplay.
const traceEpsilon = 1.0 / 32.0

// sidePlane is a brush side fully resolved to its plane, independent of
// any arena. The tempbox (§4.5) brush is built directly as a small slice
// of these; arena brushes are resolved into the same shape on demand by
// resolvedSides so both paths share one kernel implementation below.
type sidePlane struct {
	Plane        Plane
	SurfaceFlags int32
}

// resolvedSides resolves brush b's side indices into a slice of
// sidePlane, skipping (and logging once) any side or plane index that
// falls outside its arena (§4.9).
func (m *Map) resolvedSides(b Brush) []sidePlane {
	sides := make([]sidePlane, 0, b.NumSides)
	for s := int32(0); s < b.NumSides; s++ {
		side, ok := m.brushSide(b.FirstSide + s)
		if !ok {
			continue
		}
		pl, ok := m.plane(side.PlaneNum)
		if !ok {
			continue
		}
		sides = append(sides, sidePlane{Plane: pl, SurfaceFlags: side.SurfaceFlags})
	}
	return sides
}

// pointInsideHalfSpaces reports whether p lies in every side's negative
// half-space (§4.3.1): n·P - d <= 0 for each side.
func pointInsideHalfSpaces(p Vec3, sides []sidePlane) bool {
	for _, s := range sides {
		if planeDistance(s.Plane, p) > 0 {
			return false
		}
	}
	return true
}

// pointInsideBrush is the arena-backed convenience wrapper around
// pointInsideHalfSpaces.
func (m *Map) pointInsideBrush(p Vec3, b Brush) bool {
	return pointInsideHalfSpaces(p, m.resolvedSides(b))
}

// boxPlaneOffset computes the distance by which pl is expanded outward
// along its normal to account for the swept box's silhouette (§4.3.2):
// for axis k, if n[k] >= 0 add maxs[k]*n[k], else add mins[k]*n[k]. The
// axial case takes the scalar fast path: only the plane's principal axis
// contributes, so the other two (zero) terms are skipped entirely.
func boxPlaneOffset(pl Plane, mins, maxs Vec3) float64 {
	if pl.Type.IsAxial() {
		axis := pl.Type.Axis()
		n := pl.Normal.At(axis)
		if n >= 0 {
			return maxs.At(axis) * n
		}
		return mins.At(axis) * n
	}

	var offset float64
	for k := 0; k < 3; k++ {
		n := pl.Normal.At(k)
		if n >= 0 {
			offset += maxs.At(k) * n
		} else {
			offset += mins.At(k) * n
		}
	}
	return offset
}

// planeDistance returns n·p - d, taking the axial scalar-subtract fast
// path when possible instead of a full dot product. An axial normal is
// always ±1 on its principal axis, so n·p collapses to that single
// signed term — mins-face sides carry a negative axial normal, so the
// sign must still be applied, not just the coordinate picked out.
func planeDistance(pl Plane, p Vec3) float64 {
	if pl.Type.IsAxial() {
		axis := pl.Type.Axis()
		return pl.Normal.At(axis)*p.At(axis) - pl.Dist
	}
	return pl.Normal.Dot(p) - pl.Dist
}

// boxTraceVsHalfSpaces is the AABB-sweep-vs-brush computation (§4.3.2).
// It mutates result in place: StartSolid/AllSolid when start lies inside
// the half-space intersection, or a new best Fraction/impact
// plane/surface/contents when this brush produces an earlier hit than
// whatever result already holds. A brush the sweep never touches, or
// that the content mask excludes, leaves result untouched.
func boxTraceVsHalfSpaces(start, end, mins, maxs Vec3, sides []sidePlane, contents, mask int32, result *TraceResult) {
	if len(sides) == 0 {
		return
	}
	if contents&mask == 0 {
		return
	}

	startedOutside := false
	endedOutside := false
	enterFrac := -1.0
	leaveFrac := 1.0
	var enterPlane Plane
	var enterSurfaceFlags int32
	haveEnterSide := false

	for _, s := range sides {
		pl := s.Plane
		offset := boxPlaneOffset(pl, mins, maxs)
		effectiveDist := pl.Dist + offset

		var d1, d2 float64
		if pl.Type.IsAxial() {
			axis := pl.Type.Axis()
			n := pl.Normal.At(axis)
			d1 = n*start.At(axis) - effectiveDist
			d2 = n*end.At(axis) - effectiveDist
		} else {
			d1 = pl.Normal.Dot(start) - effectiveDist
			d2 = pl.Normal.Dot(end) - effectiveDist
		}

		if d1 > 0 {
			startedOutside = true
		}
		if d2 > 0 {
			endedOutside = true
		}

		if d1 > 0 && d2 >= d1 {
			// Box is and remains strictly in front of this side: the
			// brush is missed entirely.
			return
		}
		if d1 <= 0 && d2 <= 0 {
			// Sweep stays behind this side: no constraint from it.
			continue
		}

		if d1 > d2 {
			// Entering this side.
			f := (d1 - traceEpsilon) / (d1 - d2)
			if f < 0 {
				f = 0
			}
			if f > enterFrac {
				enterFrac = f
				enterPlane = pl
				enterSurfaceFlags = s.SurfaceFlags
				haveEnterSide = true
			}
		} else {
			// Leaving this side.
			f := (d1 + traceEpsilon) / (d1 - d2)
			if f > 1 {
				f = 1
			}
			if f < leaveFrac {
				leaveFrac = f
			}
		}
	}

	if !startedOutside {
		result.StartSolid = true
		if !endedOutside {
			result.AllSolid = true
			result.Fraction = 0
			result.Contents = contents
		}
		return
	}

	if haveEnterSide && enterFrac < leaveFrac && enterFrac >= 0 && enterFrac < result.Fraction {
		result.Fraction = enterFrac
		result.PlaneNormal = enterPlane.Normal
		result.PlaneDist = enterPlane.Dist
		result.SurfaceFlags = enterSurfaceFlags
		result.Contents = contents
	}
}

// boxTraceVsBrush is the arena-backed convenience wrapper around
// boxTraceVsHalfSpaces, used by the world tree sweep and sub-model trace.
func (m *Map) boxTraceVsBrush(start, end, mins, maxs Vec3, b Brush, mask int32, result *TraceResult) {
	boxTraceVsHalfSpaces(start, end, mins, maxs, m.resolvedSides(b), b.Contents, mask, result)
}
