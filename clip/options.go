package clip

// Option configures a Map at construction time via New. Options are
// applied left to right; a later option overrides an earlier one that
// touches the same field.
type Option func(*Map)

// WithLogger injects a Logger that receives anomaly reports (§4.9):
// out-of-range arena indices encountered during a query and PVS-matrix
// asymmetry observed by InPVS.
// A nil logger is equivalent to not calling WithLogger at all.
func WithLogger(l Logger) Option {
	return func(m *Map) {
		if l != nil {
			m.log = l
		}
	}
}

// New constructs an empty, unloaded Map. The zero value of Map is also
// ready to use — New exists to make Logger injection ergonomic:
//
//	m := clip.New(clip.WithLogger(myLogger))
func New(opts ...Option) *Map {
	m := &Map{}
	for _, opt := range opts {
		opt(m)
	}
	return m
}
