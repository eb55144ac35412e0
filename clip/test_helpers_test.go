package clip_test

import (
	"encoding/binary"
	"math"
)

// Byte-level helpers for assembling a synthetic compiled level image per
// the wire format documented in SPEC_FULL.md §6. These mirror what a
// real level compiler emits, just with the smallest possible lump
// contents needed to exercise a given test.

const (
	fxMagic   = "FAKK"
	fxVersion = 12

	fxLumpCount   = 20
	fxHeaderFixed = 4 + 4 + 4 // magic, version, checksum
	fxDirEntry    = 8
	fxHeaderSize  = fxHeaderFixed + fxLumpCount*fxDirEntry

	fxLumpShaders     = 0
	fxLumpPlanes      = 1
	fxLumpLeafBrushes = 6
	fxLumpLeafs       = 8
	fxLumpNodes       = 9
	fxLumpBrushSides  = 10
	fxLumpBrushes     = 11
	fxLumpSubModels   = 13
	fxLumpEntities    = 14
	fxLumpVisibility  = 15
)

// fxPlane is the on-disk plane record: 3 float32 normal + float32 dist.
type fxPlane struct {
	nx, ny, nz, dist float32
}

// fxLeaf is the on-disk leaf record (12 int32 fields; only the ones this
// core reads are named here, the rest are zero).
type fxLeaf struct {
	cluster, area               int32
	firstLeafBrush, numLeafBrushes int32
}

// fxNode is the on-disk node record (9 int32 fields; mins/maxs unused by
// this core and left zero).
type fxNode struct {
	planeNum  int32
	children0 int32
	children1 int32
}

// fxBrushSide is {planeNum, shaderNum}.
type fxBrushSide struct {
	planeNum, shaderNum int32
}

// fxBrush is {firstSide, numSides, shaderNum}.
type fxBrush struct {
	firstSide, numSides, shaderNum int32
}

// fxSubModel is {mins[3]float32, maxs[3]float32, firstSurface,
// numSurfaces, firstBrush, numBrushes}.
type fxSubModel struct {
	minsX, minsY, minsZ float32
	maxsX, maxsY, maxsZ float32
	firstBrush, numBrushes int32
}

// fxShader is {name[64], surfaceFlags, contentFlags, subdivisions}.
type fxShader struct {
	name                       string
	surfaceFlags, contentFlags int32
}

// fxLevel collects every lump's typed content before serialization.
type fxLevel struct {
	shaders     []fxShader
	planes      []fxPlane
	leafs       []fxLeaf
	leafBrushes []int32
	nodes       []fxNode
	brushSides  []fxBrushSide
	brushes     []fxBrush
	submodels   []fxSubModel
	entities    string
	visClusters int32
	visRowSize  int32
	visData     []byte
}

func le32(v int32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, uint32(v))
	return b
}

func leFloat(v float32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, math.Float32bits(v))
	return b
}

// buildLevelBytes serializes fx into a complete compiled level image.
func buildLevelBytes(fx fxLevel) []byte {
	var shaderBuf, planeBuf, leafBuf, leafBrushBuf, nodeBuf, sideBuf, brushBuf, subBuf, entBuf, visBuf []byte

	for _, s := range fx.shaders {
		name := make([]byte, 64)
		copy(name, s.name)
		shaderBuf = append(shaderBuf, name...)
		shaderBuf = append(shaderBuf, le32(s.surfaceFlags)...)
		shaderBuf = append(shaderBuf, le32(s.contentFlags)...)
		shaderBuf = append(shaderBuf, le32(0)...) // subdivisions
	}

	for _, p := range fx.planes {
		planeBuf = append(planeBuf, leFloat(p.nx)...)
		planeBuf = append(planeBuf, leFloat(p.ny)...)
		planeBuf = append(planeBuf, leFloat(p.nz)...)
		planeBuf = append(planeBuf, leFloat(p.dist)...)
	}

	for _, l := range fx.leafs {
		leafBuf = append(leafBuf, le32(l.cluster)...)
		leafBuf = append(leafBuf, le32(l.area)...)
		for i := 0; i < 6; i++ { // mins[3], maxs[3]
			leafBuf = append(leafBuf, le32(0)...)
		}
		leafBuf = append(leafBuf, le32(0)...) // firstLeafSurface
		leafBuf = append(leafBuf, le32(0)...) // numLeafSurfaces
		leafBuf = append(leafBuf, le32(l.firstLeafBrush)...)
		leafBuf = append(leafBuf, le32(l.numLeafBrushes)...)
	}

	for _, b := range fx.leafBrushes {
		leafBrushBuf = append(leafBrushBuf, le32(b)...)
	}

	for _, n := range fx.nodes {
		nodeBuf = append(nodeBuf, le32(n.planeNum)...)
		nodeBuf = append(nodeBuf, le32(n.children0)...)
		nodeBuf = append(nodeBuf, le32(n.children1)...)
		for i := 0; i < 6; i++ { // mins[3], maxs[3]
			nodeBuf = append(nodeBuf, le32(0)...)
		}
	}

	for _, s := range fx.brushSides {
		sideBuf = append(sideBuf, le32(s.planeNum)...)
		sideBuf = append(sideBuf, le32(s.shaderNum)...)
	}

	for _, b := range fx.brushes {
		brushBuf = append(brushBuf, le32(b.firstSide)...)
		brushBuf = append(brushBuf, le32(b.numSides)...)
		brushBuf = append(brushBuf, le32(b.shaderNum)...)
	}

	for _, sm := range fx.submodels {
		subBuf = append(subBuf, leFloat(sm.minsX)...)
		subBuf = append(subBuf, leFloat(sm.minsY)...)
		subBuf = append(subBuf, leFloat(sm.minsZ)...)
		subBuf = append(subBuf, leFloat(sm.maxsX)...)
		subBuf = append(subBuf, leFloat(sm.maxsY)...)
		subBuf = append(subBuf, leFloat(sm.maxsZ)...)
		subBuf = append(subBuf, le32(0)...) // firstSurface
		subBuf = append(subBuf, le32(0)...) // numSurfaces
		subBuf = append(subBuf, le32(sm.firstBrush)...)
		subBuf = append(subBuf, le32(sm.numBrushes)...)
	}

	entBuf = append([]byte(fx.entities), 0)

	if fx.visRowSize > 0 {
		visBuf = append(visBuf, le32(fx.visClusters)...)
		visBuf = append(visBuf, le32(fx.visRowSize)...)
		visBuf = append(visBuf, fx.visData...)
	}

	lumps := make([][]byte, fxLumpCount)
	lumps[fxLumpShaders] = shaderBuf
	lumps[fxLumpPlanes] = planeBuf
	lumps[fxLumpLeafBrushes] = leafBrushBuf
	lumps[fxLumpLeafs] = leafBuf
	lumps[fxLumpNodes] = nodeBuf
	lumps[fxLumpBrushSides] = sideBuf
	lumps[fxLumpBrushes] = brushBuf
	lumps[fxLumpSubModels] = subBuf
	lumps[fxLumpEntities] = entBuf
	lumps[fxLumpVisibility] = visBuf

	out := make([]byte, fxHeaderSize)
	copy(out[0:4], fxMagic)
	copy(out[4:8], le32(fxVersion))
	copy(out[8:12], le32(0)) // checksum

	offsets := make([]int32, fxLumpCount)
	lengths := make([]int32, fxLumpCount)
	for i, l := range lumps {
		offsets[i] = int32(len(out))
		lengths[i] = int32(len(l))
		out = append(out, l...)
	}

	for i := 0; i < fxLumpCount; i++ {
		dirOff := fxHeaderFixed + i*fxDirEntry
		copy(out[dirOff:dirOff+4], le32(offsets[i]))
		copy(out[dirOff+4:dirOff+8], le32(lengths[i]))
	}

	return out
}

// cubeBrushLevel returns a synthetic level consisting of exactly one
// axis-aligned solid brush spanning (0,0,0)-(64,64,64), with no BSP tree
// (the degenerate "empty tree" case always resolves to leaf 0), so the
// brush is listed directly by leaf 0.
func cubeBrushLevel(contents int32) fxLevel {
	return fxLevel{
		shaders: []fxShader{{name: "cube", contentFlags: contents}},
		planes: []fxPlane{
			{nx: 1, dist: 64},  // +X face: x <= 64
			{nx: -1, dist: 0},  // -X face: x >= 0
			{ny: 1, dist: 64},  // +Y face: y <= 64
			{ny: -1, dist: 0},  // -Y face: y >= 0
			{nz: 1, dist: 64},  // +Z face: z <= 64
			{nz: -1, dist: 0},  // -Z face: z >= 0
		},
		leafs:       []fxLeaf{{cluster: 0, area: 0, firstLeafBrush: 0, numLeafBrushes: 1}},
		leafBrushes: []int32{0},
		brushSides: []fxBrushSide{
			{planeNum: 0, shaderNum: 0},
			{planeNum: 1, shaderNum: 0},
			{planeNum: 2, shaderNum: 0},
			{planeNum: 3, shaderNum: 0},
			{planeNum: 4, shaderNum: 0},
			{planeNum: 5, shaderNum: 0},
		},
		brushes:   []fxBrush{{firstSide: 0, numSides: 6, shaderNum: 0}},
		submodels: []fxSubModel{{minsX: 0, minsY: 0, minsZ: 0, maxsX: 64, maxsY: 64, maxsZ: 64, firstBrush: 0, numBrushes: 1}},
		entities:  "",
	}
}

func fetcherFor(buf []byte) func(string) ([]byte, error) {
	return func(string) ([]byte, error) { return buf, nil }
}
