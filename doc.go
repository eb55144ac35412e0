// Package clipmap is the collision clipping engine extracted from a
// 2000-era first-person-action engine's recompiled source tree.
//
// What is clipmap?
//
//	A BSP-tree-backed point/box/volume intersection and trace service
//	that answers, against a static compiled level database:
//
//	  • Which leaf contains a point?
//	  • What content bitset exists at a point?
//	  • What is the earliest impact of a moving box (or ray) against
//	    the world, a sub-model, or a transient box?
//	  • Is cluster A potentially visible from cluster B, and are
//	    areas A and B connected through open portals?
//
// These primitives are the server's authoritative physics ground truth,
// the client's prediction substrate, and the reference used by
// line-of-sight, visibility, and gameplay checks.
//
// Everything lives under the clip subpackage:
//
//	clip/ — level loader, BSP spatial index, brush intersection kernel,
//	        tree sweep, transient box model, visibility & area portals,
//	        and the public Map API surface.
//
// The render-side traversal of the same compiled level, model/animation,
// particle, shader and scripting subsystems, archive/VFS reading, and
// CLI/subsystem bootstrap are deliberately out of scope; they are
// external collaborators consuming this package's Map.
//
//	go get github.com/sp00nznet/clipmap/clip
package clipmap
