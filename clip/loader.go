package clip

import (
	"fmt"
)

// BytesProvider fetches the raw bytes of a compiled level image by name.
// This package has no opinion on where those bytes come from — a
// filesystem, a compressed archive, a network fetch — that concern
// belongs to an external collaborator (§1 scope).
type BytesProvider func(name string) ([]byte, error)

// LoadLevel parses a compiled level image and populates m's arenas.
//
// Idempotence: loading the same name twice is a no-op returning success.
// Loading any other name first clears the current level (§4.1).
//
// On failure, m is left in the clean empty-level state and the error is
// one of ErrInputUnavailable, ErrTruncatedHeader, ErrBadMagic,
// ErrUnsupportedVersion, or ErrMalformedLump.
func (m *Map) LoadLevel(name string, fetch BytesProvider) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.loaded && m.name == name {
		return nil
	}

	buf, err := fetch(name)
	if err != nil {
		m.clearLocked()
		return fmt.Errorf("clip: fetching %q: %w", name, ErrInputUnavailable)
	}

	parsed, err := parseLevel(buf)
	if err != nil {
		m.clearLocked()
		return err
	}

	m.clearLocked()
	m.name = name
	m.shaders = parsed.shaders
	m.planes = parsed.planes
	m.nodes = parsed.nodes
	m.leafs = parsed.leafs
	m.leafBrushes = parsed.leafBrushes
	m.brushSides = parsed.brushSides
	m.brushes = parsed.brushes
	m.submodels = parsed.submodels
	m.visClusters = parsed.visClusters
	m.visRowSize = parsed.visRowSize
	m.visData = parsed.visData
	m.entityString = parsed.entityString
	m.loaded = true

	m.portalMu.Lock()
	m.numAreas = parsed.numAreas
	if parsed.numAreas > 0 {
		m.areaPortals = make([][]bool, parsed.numAreas)
		for i := range m.areaPortals {
			m.areaPortals[i] = make([]bool, parsed.numAreas)
		}
	}
	m.portalMu.Unlock()

	return nil
}

// parsedLevel holds everything parseLevel produces before it is
// installed into a Map under lock.
type parsedLevel struct {
	shaders      []Shader
	planes       []Plane
	nodes        []Node
	leafs        []Leaf
	leafBrushes  []int32
	brushSides   []BrushSide
	brushes      []Brush
	submodels    []SubModel
	visClusters  int32
	visRowSize   int32
	visData      []byte
	entityString string
	numAreas     int32
}

// parseLevel validates the header and decodes every lump this core
// consumes, in dependency order (§4.1): shaders first (brush sides and
// brushes adopt shader flags by reference), then planes, nodes, leafs,
// leaf-brush table, brush sides, brushes, sub-models, visibility, entity
// text.
func parseLevel(buf []byte) (*parsedLevel, error) {
	if len(buf) < headerFixedSize {
		return nil, ErrTruncatedHeader
	}
	if string(buf[0:headerMagicLen]) != magicFAKK {
		return nil, fmt.Errorf("clip: got magic %q: %w", buf[0:headerMagicLen], ErrBadMagic)
	}
	version := readInt32(buf[headerMagicLen : headerMagicLen+4])
	if version != expectedVersion {
		return nil, fmt.Errorf("clip: got version %d, want %d: %w", version, expectedVersion, ErrUnsupportedVersion)
	}

	dir, err := readLumpDir(buf)
	if err != nil {
		return nil, err
	}

	out := &parsedLevel{}

	shaderBytes, n, err := lumpBytes(buf, dir, lumpShaders, shaderElemSize)
	if err != nil {
		return nil, err
	}
	out.shaders = make([]Shader, n)
	for i := 0; i < n; i++ {
		e := shaderBytes[i*shaderElemSize : (i+1)*shaderElemSize]
		out.shaders[i] = Shader{
			Name:         cString(e[0:shaderNameLen]),
			SurfaceFlags: readInt32(e[shaderNameLen : shaderNameLen+4]),
			ContentFlags: readInt32(e[shaderNameLen+4 : shaderNameLen+8]),
		}
	}

	planeBytes, n, err := lumpBytes(buf, dir, lumpPlanes, planeElemSize)
	if err != nil {
		return nil, err
	}
	out.planes = make([]Plane, n)
	for i := 0; i < n; i++ {
		e := planeBytes[i*planeElemSize : (i+1)*planeElemSize]
		normal := readVec3Float32(e[0:12])
		dist := readFloat32(e[12:16])
		typ, bits := classifyPlane(normal)
		out.planes[i] = Plane{Normal: normal, Dist: dist, Type: typ, SignBits: bits}
	}

	nodeBytes, n, err := lumpBytes(buf, dir, lumpNodes, nodeElemSize)
	if err != nil {
		return nil, err
	}
	out.nodes = make([]Node, n)
	for i := 0; i < n; i++ {
		e := nodeBytes[i*nodeElemSize : (i+1)*nodeElemSize]
		out.nodes[i] = Node{
			PlaneNum: readInt32(e[0:4]),
			Children: [2]int32{readInt32(e[4:8]), readInt32(e[8:12])},
		}
	}

	leafBytes, n, err := lumpBytes(buf, dir, lumpLeafs, leafElemSize)
	if err != nil {
		return nil, err
	}
	out.leafs = make([]Leaf, n)
	for i := 0; i < n; i++ {
		e := leafBytes[i*leafElemSize : (i+1)*leafElemSize]
		out.leafs[i] = Leaf{
			Cluster:        readInt32(e[0:4]),
			Area:           readInt32(e[4:8]),
			FirstLeafBrush: readInt32(e[40:44]),
			NumLeafBrushes: readInt32(e[44:48]),
		}
	}
	if len(out.leafs) == 0 {
		out.leafs = []Leaf{{}}
	}

	leafBrushBytes, n, err := lumpBytes(buf, dir, lumpLeafBrushes, leafBrushElemSize)
	if err != nil {
		return nil, err
	}
	out.leafBrushes = make([]int32, n)
	for i := 0; i < n; i++ {
		out.leafBrushes[i] = readInt32(leafBrushBytes[i*4 : i*4+4])
	}

	sideBytes, n, err := lumpBytes(buf, dir, lumpBrushSides, brushSideElemSize)
	if err != nil {
		return nil, err
	}
	out.brushSides = make([]BrushSide, n)
	for i := 0; i < n; i++ {
		e := sideBytes[i*brushSideElemSize : (i+1)*brushSideElemSize]
		planeNum := readInt32(e[0:4])
		shaderNum := readInt32(e[4:8])
		var surfFlags int32
		if shaderNum >= 0 && int(shaderNum) < len(out.shaders) {
			surfFlags = out.shaders[shaderNum].SurfaceFlags
		}
		out.brushSides[i] = BrushSide{PlaneNum: planeNum, SurfaceFlags: surfFlags}
	}

	brushBytes, n, err := lumpBytes(buf, dir, lumpBrushes, brushElemSize)
	if err != nil {
		return nil, err
	}
	out.brushes = make([]Brush, n)
	for i := 0; i < n; i++ {
		e := brushBytes[i*brushElemSize : (i+1)*brushElemSize]
		firstSide := readInt32(e[0:4])
		numSides := readInt32(e[4:8])
		shaderNum := readInt32(e[8:12])
		var contents int32
		if shaderNum >= 0 && int(shaderNum) < len(out.shaders) {
			contents = out.shaders[shaderNum].ContentFlags
		}
		out.brushes[i] = Brush{FirstSide: firstSide, NumSides: numSides, Contents: contents}
	}

	subBytes, n, err := lumpBytes(buf, dir, lumpSubModels, subModelElemSize)
	if err != nil {
		return nil, err
	}
	out.submodels = make([]SubModel, n)
	for i := 0; i < n; i++ {
		e := subBytes[i*subModelElemSize : (i+1)*subModelElemSize]
		out.submodels[i] = SubModel{
			Mins:       readVec3Float32(e[0:12]),
			Maxs:       readVec3Float32(e[12:24]),
			FirstBrush: readInt32(e[32:36]),
			NumBrushes: readInt32(e[36:40]),
		}
	}

	visRaw, visLen, err := lumpBytes(buf, dir, lumpVisibility, 0)
	if err != nil {
		return nil, err
	}
	if visLen >= visHeaderSize {
		numClusters := readInt32(visRaw[0:4])
		rowSize := readInt32(visRaw[4:8])
		if numClusters < 0 || rowSize < 0 {
			return nil, ErrMalformedLump
		}
		need := visHeaderSize + int(numClusters)*int(rowSize)
		if need > visLen {
			return nil, ErrMalformedLump
		}
		out.visClusters = numClusters
		out.visRowSize = rowSize
		out.visData = visRaw[visHeaderSize:need]
	}

	entRaw, _, err := lumpBytes(buf, dir, lumpEntities, 0)
	if err != nil {
		return nil, err
	}
	out.entityString = cString(entRaw)

	maxArea := int32(-1)
	for _, l := range out.leafs {
		if l.Area > maxArea {
			maxArea = l.Area
		}
	}
	if maxArea >= 0 {
		out.numAreas = maxArea + 1
	}

	return out, nil
}

// cString returns the Go string formed by b up to (not including) its
// first NUL byte, or all of b if there is none.
func cString(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}
