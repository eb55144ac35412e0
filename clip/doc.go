// Package clip implements the collision clipping engine: a BSP-tree-backed
// point/box/volume intersection and trace service over a static, compiled
// level database.
//
// A Map is built once by LoadLevel and thereafter queried through
// PointContents, BoxTrace, their Transformed and sub-model variants, and
// the visibility/area-portal helpers InPVS and AreasConnected. Arenas
// (planes, brush sides, brushes, nodes, leafs, sub-models) are immutable
// after load except for the area-portal matrix, which AdjustAreaPortalState
// mutates under its own lock.
//
// Loading:
//
//	var m clip.Map
//	err := m.LoadLevel("maps/q3dm1.bsp", fetchBytes)
//
// Querying:
//
//	contents := m.PointContents(p, clip.WorldHandle, nil)
//	tr := m.BoxTrace(start, end, mins, maxs, clip.WorldHandle, clip.ContentsSolid, nil, false)
//
// Concurrency: after a successful LoadLevel, BoxTrace and PointContents are
// safe to call concurrently from multiple goroutines against the same Map;
// each trace owns its own visited-brush scratch state (see SPEC_FULL.md §5).
// LoadLevel, ClearLevel, and AdjustAreaPortalState mutate shared state
// under write locks, so they are serialized against every other call.
package clip
