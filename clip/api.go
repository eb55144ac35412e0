package clip

// PointContents returns the content bitset at p against handle: the
// world, an inline sub-model, or (when handle == TempBoxHandle) the
// TempBox value passed as box.
//
// Returns 0 when no level is loaded and handle is not TempBoxHandle
// (§7 NotLoaded).
func (m *Map) PointContents(p Vec3, handle ModelHandle, box *TempBox) int32 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.pointContentsLocked(p, handle, box)
}

func (m *Map) pointContentsLocked(p Vec3, handle ModelHandle, box *TempBox) int32 {
	if handle == TempBoxHandle {
		if box == nil {
			return 0
		}
		return box.pointContents(p)
	}
	if !m.loaded {
		return 0
	}
	if handle == WorldHandle {
		return m.worldPointContents(p)
	}
	return m.subModelPointContents(handle, p)
}

// BoxTrace sweeps a box (mins/maxs around the segment start->end, both
// zero for a pure ray) against handle and returns the earliest impact
// (§4.3.2, §4.4). useCylinder is accepted for API completeness but, per
// §9's open question, this conforming implementation always runs the
// AABB sweep.
//
// Returns the neutral "swept to completion" result (Fraction == 1,
// EndPos == end) when no level is loaded and handle is not
// TempBoxHandle (§7 NotLoaded).
func (m *Map) BoxTrace(start, end, mins, maxs Vec3, handle ModelHandle, mask int32, box *TempBox, useCylinder bool) TraceResult {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.boxTraceLocked(start, end, mins, maxs, handle, mask, box, useCylinder)
}

func (m *Map) boxTraceLocked(start, end, mins, maxs Vec3, handle ModelHandle, mask int32, box *TempBox, _ bool) TraceResult {
	if handle == TempBoxHandle {
		if box == nil {
			return newNoHitResult(end)
		}
		return box.boxTrace(start, end, mins, maxs, mask)
	}
	if !m.loaded {
		return newNoHitResult(end)
	}
	if handle == WorldHandle {
		return m.boxTraceWorld(start, end, mins, maxs, mask)
	}
	return m.traceSubModel(handle, start, end, mins, maxs, mask)
}

// DebugContentsToString renders a content bitset as a "|"-joined list of
// the flag names this package knows about (§4.10), falling back to the
// raw hex value for unrecognized bits. Intended for logging and test
// failure messages, not for parsing.
func DebugContentsToString(contents int32) string {
	return flagsToString(contents, contentFlagNames)
}

// DebugSurfaceFlagsToString renders a surface-flag bitset the same way
// DebugContentsToString renders a content bitset (§4.10).
func DebugSurfaceFlagsToString(flags int32) string {
	return flagsToString(flags, surfaceFlagNames)
}

var contentFlagNames = []struct {
	bit  int32
	name string
}{
	{ContentsSolid, "solid"},
	{ContentsWater, "water"},
	{ContentsPlayerClip, "playerclip"},
	{ContentsMonsterClip, "monsterclip"},
	{ContentsBody, "body"},
	{ContentsTrigger, "trigger"},
}

var surfaceFlagNames = []struct {
	bit  int32
	name string
}{
	{SurfSky, "sky"},
	{SurfSlick, "slick"},
	{SurfNoImpact, "noimpact"},
}

func flagsToString(bits int32, names []struct {
	bit  int32
	name string
}) string {
	if bits == 0 {
		return "none"
	}
	out := ""
	remaining := bits
	for _, f := range names {
		if bits&f.bit != 0 {
			if out != "" {
				out += "|"
			}
			out += f.name
			remaining &^= f.bit
		}
	}
	if remaining != 0 {
		if out != "" {
			out += "|"
		}
		out += hex32(remaining)
	}
	return out
}

func hex32(v int32) string {
	const digits = "0123456789abcdef"
	if v == 0 {
		return "0x0"
	}
	u := uint32(v)
	buf := make([]byte, 0, 10)
	for u != 0 {
		buf = append([]byte{digits[u&0xf]}, buf...)
		u >>= 4
	}
	return "0x" + string(buf)
}
