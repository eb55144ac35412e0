package clip

import "math"

// Vec3 is a 3D vector used for positions, normals, and extents throughout
// the package. Coordinates follow the compiled level's native units.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns v+o.
func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

// Sub returns v-o.
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

// Scale returns v scaled by f.
func (v Vec3) Scale(f float64) Vec3 { return Vec3{v.X * f, v.Y * f, v.Z * f} }

// Dot returns the dot product of v and o.
func (v Vec3) Dot(o Vec3) float64 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

// Lerp returns the point at parametric fraction f between v and o.
func (v Vec3) Lerp(o Vec3, f float64) Vec3 {
	return Vec3{
		X: v.X + f*(o.X-v.X),
		Y: v.Y + f*(o.Y-v.Y),
		Z: v.Z + f*(o.Z-v.Z),
	}
}

// At returns the k'th component (0=X, 1=Y, 2=Z).
func (v Vec3) At(k int) float64 {
	switch k {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

// withAt returns a copy of v with component k set to f.
func (v Vec3) withAt(k int, f float64) Vec3 {
	switch k {
	case 0:
		v.X = f
	case 1:
		v.Y = f
	default:
		v.Z = f
	}
	return v
}

func minVec(a, b Vec3) Vec3 {
	return Vec3{math.Min(a.X, b.X), math.Min(a.Y, b.Y), math.Min(a.Z, b.Z)}
}

func maxVec(a, b Vec3) Vec3 {
	return Vec3{math.Max(a.X, b.X), math.Max(a.Y, b.Y), math.Max(a.Z, b.Z)}
}

// PlaneType classifies a Plane's normal so the hot paths in the brush
// kernel and tree sweep can branch to a scalar-subtract fast path instead
// of a general dot product (§9 "axial fast paths").
type PlaneType uint8

const (
	PlaneX PlaneType = iota
	PlaneY
	PlaneZ
	PlaneNonAxial
)

// IsAxial reports whether t is one of PlaneX, PlaneY, PlaneZ.
func (t PlaneType) IsAxial() bool { return t != PlaneNonAxial }

// Axis returns the 0/1/2 component index for an axial plane type. Calling
// this on PlaneNonAxial is a programmer error; callers must check
// IsAxial first.
func (t PlaneType) Axis() int { return int(t) }

// planeNormalEpsilon is the tolerance used to classify a plane normal as
// axis-aligned: a normal with one component within this distance of 1.0
// (and the others near zero) is treated as axial.
const planeNormalEpsilon = 1e-6

// Plane is a half-space boundary: points P with n·P - dist <= 0 lie in
// the plane's negative half-space.
type Plane struct {
	Normal   Vec3
	Dist     float64
	Type     PlaneType
	SignBits uint8 // bit k set iff Normal's k'th component is negative
}

// classifyPlane derives Type and SignBits from a normal vector.
func classifyPlane(n Vec3) (PlaneType, uint8) {
	t := PlaneNonAxial
	switch {
	case math.Abs(n.X-1) < planeNormalEpsilon || math.Abs(n.X+1) < planeNormalEpsilon:
		t = PlaneX
	case math.Abs(n.Y-1) < planeNormalEpsilon || math.Abs(n.Y+1) < planeNormalEpsilon:
		t = PlaneY
	case math.Abs(n.Z-1) < planeNormalEpsilon || math.Abs(n.Z+1) < planeNormalEpsilon:
		t = PlaneZ
	}

	var bits uint8
	if n.X < 0 {
		bits |= 1 << 0
	}
	if n.Y < 0 {
		bits |= 1 << 1
	}
	if n.Z < 0 {
		bits |= 1 << 2
	}
	return t, bits
}

// BrushSide is one half-space of a Brush: a reference to a Plane plus the
// surface-flag bitset of the shader bound to this side.
type BrushSide struct {
	PlaneNum     int32
	SurfaceFlags int32
}

// Brush is an ordered sequence of BrushSides — a convex half-space
// intersection — plus its content-flag bitset.
type Brush struct {
	FirstSide int32
	NumSides  int32
	Contents  int32
}

// Node is a BSP splitting plane plus two child references. A
// non-negative child is a node index; a negative child C denotes leaf
// index -(C+1) (bitwise complement).
type Node struct {
	PlaneNum int32
	Children [2]int32
}

// leafFromChild decodes a negative Node.Children entry into a leaf index.
func leafFromChild(child int32) int32 { return ^child }

// childIsLeaf reports whether a Node.Children entry encodes a leaf.
func childIsLeaf(child int32) bool { return child < 0 }

// Leaf is a convex BSP region: a cluster id (for PVS), an area id (for
// portal connectivity), and a contiguous slice of brush indices into the
// shared leaf-brush table.
type Leaf struct {
	Cluster        int32
	Area           int32
	FirstLeafBrush int32
	NumLeafBrushes int32
}

// SubModel is an AABB plus a contiguous brush slice. SubModel 0 is always
// the world; handles 1..N-1 are inline brush entities.
type SubModel struct {
	Mins, Maxs Vec3
	FirstBrush int32
	NumBrushes int32
}

// Shader holds the surface and content flag bitsets a brush side or
// brush adopts by reference, keyed by shader index at load time.
type Shader struct {
	Name         string
	SurfaceFlags int32
	ContentFlags int32
}

// ModelHandle identifies a queryable model: the world, an inline
// sub-model, or the transient box (TempBoxHandle).
type ModelHandle int32

const (
	// WorldHandle is sub-model 0, always present.
	WorldHandle ModelHandle = 0

	// TempBoxHandle is the sentinel handle recognized by PointContents
	// and BoxTrace to mean "query the TempBox value passed alongside
	// this handle", rather than an arena sub-model.
	TempBoxHandle ModelHandle = -1
)

// TraceResult is the outcome of a BoxTrace or TransformedBoxTrace sweep.
//
// Post-condition: EndPos == start + Fraction*(end-start) unless
// Fraction == 0 and AllSolid, in which case EndPos == start.
type TraceResult struct {
	Fraction     float64 // 0 = stuck at start, 1 = no hit
	EndPos       Vec3
	PlaneNormal  Vec3
	PlaneDist    float64
	SurfaceFlags int32
	Contents     int32
	StartSolid   bool // initial point inside any solid
	AllSolid     bool // initial point inside AND sweep never exits
}

// newNoHitResult returns the neutral "swept to completion, nothing in
// the way" result used as BoxTrace's starting point and its answer when
// the level is unloaded or a handle is nonsensical (§4.9, §7 NotLoaded).
func newNoHitResult(end Vec3) TraceResult {
	return TraceResult{Fraction: 1, EndPos: end}
}

// Common content flags. The compiled level's shader lump supplies the
// authoritative bitset per shader; these mirror the subset that gameplay
// code and this package's own tests rely on by name.
const (
	ContentsSolid      int32 = 1 << 0
	ContentsWater      int32 = 1 << 2
	ContentsPlayerClip int32 = 1 << 9
	ContentsMonsterClip int32 = 1 << 10
	ContentsBody       int32 = 1 << 13
	ContentsTrigger    int32 = 1 << 30

	// MaskAll selects every brush regardless of content.
	MaskAll int32 = -1

	// MaskSolid is the common "collides with anything solid" mask used
	// by world and entity movement.
	MaskSolid int32 = ContentsSolid | ContentsBody
)

// Common surface flags on a hit BrushSide.
const (
	SurfSky    int32 = 1 << 0
	SurfSlick  int32 = 1 << 1
	SurfNoImpact int32 = 1 << 2
)
