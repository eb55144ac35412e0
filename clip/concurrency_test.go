package clip_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sp00nznet/clipmap/clip"
)

// Concurrent BoxTrace/PointContents calls against one loaded Map must not
// race or corrupt each other's results (§5): each trace owns its own
// scratch state (boxTraceState's visited-brush set), not a shared
// mutable slot.
func TestConcurrentQueriesAgainstOneMap(t *testing.T) {
	buf := buildLevelBytes(cubeBrushLevel(clip.ContentsSolid))
	m := clip.New()
	require.NoError(t, m.LoadLevel("cube", fetcherFor(buf)))

	const goroutines = 32
	const itersPerGoroutine = 50

	var wg sync.WaitGroup
	wg.Add(goroutines)
	for g := 0; g < goroutines; g++ {
		go func(id int) {
			defer wg.Done()
			box := clip.TempBoxModel(clip.Vec3{X: -1, Y: -1, Z: -1}, clip.Vec3{X: 1, Y: 1, Z: 1}, clip.ContentsMonsterClip)
			for i := 0; i < itersPerGoroutine; i++ {
				tr := m.BoxTrace(
					clip.Vec3{X: -50, Y: 32, Z: 32}, clip.Vec3{X: 200, Y: 32, Z: 32},
					clip.Vec3{}, clip.Vec3{},
					clip.WorldHandle, clip.MaskSolid, nil, false,
				)
				if tr.Fraction >= 1.0 || tr.StartSolid {
					t.Errorf("goroutine %d: expected a clean entry hit, got %+v", id, tr)
				}

				c := m.PointContents(clip.Vec3{X: 32, Y: 32, Z: 32}, clip.WorldHandle, nil)
				if c != clip.ContentsSolid {
					t.Errorf("goroutine %d: expected ContentsSolid, got %s", id, clip.DebugContentsToString(c))
				}

				tempTr := m.BoxTrace(
					clip.Vec3{X: -5, Y: 0, Z: 0}, clip.Vec3{X: 5, Y: 0, Z: 0},
					clip.Vec3{}, clip.Vec3{},
					clip.TempBoxHandle, clip.MaskAll, &box, false,
				)
				if tempTr.Fraction >= 1.0 {
					t.Errorf("goroutine %d: expected TempBox hit, got %+v", id, tempTr)
				}
			}
		}(g)
	}
	wg.Wait()
}

// Concurrent AdjustAreaPortalState calls against the same pair, and
// concurrent AreasConnected reads, must not race (§5: portalMu is
// independent of the arena lock so portal toggles never contend with
// PointContents/BoxTrace callers).
func TestConcurrentPortalAdjustmentsAndReads(t *testing.T) {
	buf := buildLevelBytes(twoLeafSplitLevel())
	m := clip.New()
	require.NoError(t, m.LoadLevel("split", fetcherFor(buf)))

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			m.AdjustAreaPortalState(0, 1, i%2 == 0)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			_ = m.AreasConnected(0, 1)
		}
	}()
	wg.Wait()

	assert.True(t, true, "completed without racing or panicking")
}
