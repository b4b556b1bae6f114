package cache

// FieldKeyOpts holds every input that determines an escape field.
// Rendering options (charset, format) are deliberately absent: they do
// not change the field.
type FieldKeyOpts struct {
	XMin     float64 `json:"xmin"`
	XMax     float64 `json:"xmax"`
	YMin     float64 `json:"ymin"`
	YMax     float64 `json:"ymax"`
	Width    int     `json:"width"`
	Height   int     `json:"height"`
	MaxIters int     `json:"max_iters"`
}

// Keyer builds cache keys.
type Keyer interface {
	FieldKey(opts FieldKeyOpts) string
}

// DefaultKeyer produces "field:<sha256>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default key scheme.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// FieldKey hashes opts into a stable key.
func (DefaultKeyer) FieldKey(opts FieldKeyOpts) string {
	return hashKey("field", opts)
}

// ScopedKeyer wraps a Keyer with a prefix, so that several deployments can
// share one Redis or Mongo instance without colliding.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "staging:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// A nil inner keyer falls back to DefaultKeyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// FieldKey returns the prefixed inner key.
func (k *ScopedKeyer) FieldKey(opts FieldKeyOpts) string {
	return k.prefix + k.inner.FieldKey(opts)
}
