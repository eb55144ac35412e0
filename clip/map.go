package clip

import "sync"

// Map owns every arena produced by LoadLevel and serves the public query
// surface against them. The zero value is a valid, empty Map (§7
// NotLoaded): every query returns its neutral result until LoadLevel
// succeeds.
//
// Locking: mu guards load/clear and every read-only arena below it;
// queries hold a read lock for the whole call, so any number of them run
// together (each trace keeps its own scratch state — see boxTraceState in
// sweep.go) while load/clear wait for them to finish. portalMu separately guards the
// area-portal matrix, matching §5's requirement that
// AdjustAreaPortalState be serialized against InPVS/AreasConnected
// without forcing every PointContents/BoxTrace call to contend on the
// same lock as portal toggles.
type Map struct {
	mu     sync.RWMutex
	loaded bool
	name   string

	shaders     []Shader
	planes      []Plane
	nodes       []Node
	leafs       []Leaf
	leafBrushes []int32
	brushSides  []BrushSide
	brushes     []Brush
	submodels   []SubModel

	visClusters int32
	visRowSize  int32
	visData     []byte

	entityString string

	portalMu    sync.RWMutex
	numAreas    int32
	areaPortals [][]bool // symmetric numAreas x numAreas

	log           Logger
	anomaliesSeen [anomalyKindCount]bool
}

// ClearLevel resets m to the empty sentinel state. Safe to call on an
// already-empty Map.
func (m *Map) ClearLevel() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clearLocked()
}

func (m *Map) clearLocked() {
	m.loaded = false
	m.name = ""
	m.shaders = nil
	m.planes = nil
	m.nodes = nil
	m.leafs = []Leaf{{}} // sentinel empty leaf 0
	m.leafBrushes = nil
	m.brushSides = nil
	m.brushes = nil
	m.submodels = nil
	m.visClusters = 0
	m.visRowSize = 0
	m.visData = nil
	m.entityString = ""

	m.portalMu.Lock()
	m.numAreas = 0
	m.areaPortals = nil
	m.portalMu.Unlock()

	m.anomaliesSeen = [anomalyKindCount]bool{}
}

// IsLoaded reports whether a level is currently loaded.
func (m *Map) IsLoaded() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.loaded
}

// NumInlineModels returns the count of sub-models, including the world
// (sub-model 0). Returns 0 when no level is loaded.
func (m *Map) NumInlineModels() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.submodels)
}

// InlineModel returns the handle for sub-model i. i must be in
// [0, NumInlineModels()); an out-of-range i returns WorldHandle and logs
// an anomaly rather than panicking (§4.9).
func (m *Map) InlineModel(i int) ModelHandle {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if i < 0 || i >= len(m.submodels) {
		m.reportOnce(anomalySubModelBrush, "clip: InlineModel index %d out of range (have %d)", i, len(m.submodels))
		return WorldHandle
	}
	return ModelHandle(i)
}

// NumClusters returns the number of PVS clusters the loaded visibility
// matrix covers (§4.10 diagnostic accessor). 0 when unloaded or when the
// level carries no visibility lump.
func (m *Map) NumClusters() int32 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.visClusters
}

// LeafBrushCount returns the number of brushes listed by leaf i (§4.10
// diagnostic accessor). Out-of-range i returns 0.
func (m *Map) LeafBrushCount(leafnum int32) int32 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if leafnum < 0 || int(leafnum) >= len(m.leafs) {
		return 0
	}
	return m.leafs[leafnum].NumLeafBrushes
}

// EntityString returns the level's entity description text, a borrow of
// the NUL-terminated byte string stored verbatim from the entity lump.
// Returns an empty string when no level is loaded.
func (m *Map) EntityString() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.entityString
}

// --- bounds-checked arena accessors (§3.1 arena-and-index discipline) ---
//
// Every cross-arena reference is an index, never a pointer. These
// accessors are the only place that dereferences one; an out-of-range
// index is defensively tolerated (§4.9): the zero value is returned and
// the anomaly is logged once, never panicked.

func (m *Map) plane(i int32) (Plane, bool) {
	if i < 0 || int(i) >= len(m.planes) {
		m.reportOnce(anomalyBrushSide, "clip: plane index %d out of range (have %d)", i, len(m.planes))
		return Plane{}, false
	}
	return m.planes[i], true
}

func (m *Map) node(i int32) (Node, bool) {
	if i < 0 || int(i) >= len(m.nodes) {
		m.reportOnce(anomalyNodeChild, "clip: node index %d out of range (have %d)", i, len(m.nodes))
		return Node{}, false
	}
	return m.nodes[i], true
}

func (m *Map) leaf(i int32) (Leaf, bool) {
	if i < 0 || int(i) >= len(m.leafs) {
		m.reportOnce(anomalyLeafBrush, "clip: leaf index %d out of range (have %d)", i, len(m.leafs))
		return Leaf{}, false
	}
	return m.leafs[i], true
}

func (m *Map) brush(i int32) (Brush, bool) {
	if i < 0 || int(i) >= len(m.brushes) {
		m.reportOnce(anomalyLeafBrush, "clip: brush index %d out of range (have %d)", i, len(m.brushes))
		return Brush{}, false
	}
	return m.brushes[i], true
}

func (m *Map) brushSide(i int32) (BrushSide, bool) {
	if i < 0 || int(i) >= len(m.brushSides) {
		m.reportOnce(anomalyBrushSide, "clip: brush side index %d out of range (have %d)", i, len(m.brushSides))
		return BrushSide{}, false
	}
	return m.brushSides[i], true
}

func (m *Map) leafBrush(i int32) (int32, bool) {
	if i < 0 || int(i) >= len(m.leafBrushes) {
		m.reportOnce(anomalyLeafBrush, "clip: leaf-brush table index %d out of range (have %d)", i, len(m.leafBrushes))
		return 0, false
	}
	return m.leafBrushes[i], true
}

func (m *Map) subModel(h ModelHandle) (SubModel, bool) {
	i := int32(h)
	if i < 0 || int(i) >= len(m.submodels) {
		m.reportOnce(anomalySubModelBrush, "clip: sub-model handle %d out of range (have %d)", h, len(m.submodels))
		return SubModel{}, false
	}
	return m.submodels[i], true
}
