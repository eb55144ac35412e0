package clip

import "errors"

// Sentinel errors for level loading. Callers branch on these with
// errors.Is; none of them are ever panicked, and none are returned from
// query functions (see NotLoaded / IndexOutOfRange handling in map.go's
// bounds-checked accessors and the package-level query files, which
// contain anomalies instead of propagating them).
var (
	// ErrInputUnavailable indicates the byte-buffer provider callback
	// passed to LoadLevel failed to produce level bytes. The engine is
	// left in the clean empty-level state.
	ErrInputUnavailable = errors.New("clip: level bytes unavailable")

	// ErrBadMagic indicates the 4-byte header magic did not match "FAKK".
	ErrBadMagic = errors.New("clip: bad level magic")

	// ErrUnsupportedVersion indicates the header version integer did not
	// match the engine's expected version.
	ErrUnsupportedVersion = errors.New("clip: unsupported level version")

	// ErrMalformedLump indicates a lump's byte length was not a multiple
	// of its element size, or a declared element count exceeded the hard
	// safety cap enforced while loading.
	ErrMalformedLump = errors.New("clip: malformed lump")

	// ErrTruncatedHeader indicates the buffer was too short to contain a
	// full header and directory.
	ErrTruncatedHeader = errors.New("clip: truncated level header")
)
