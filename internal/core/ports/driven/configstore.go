package driven

// ConfigStore holds settings as flat dot-notation keys ("prefix.site",
// "merge.threshold"). Typed getters return the zero value when a key is
// missing or holds another type; use Get to tell the two apart.
type ConfigStore interface {
	Get(key string) (any, bool)
	GetString(key string) string
	GetInt(key string) int
	GetBool(key string) bool

	// GetFloat accepts integer values too, so "launch.rate = 2" reads as 2.0.
	// ok is false when the key is missing or not numeric.
	GetFloat(key string) (val float64, ok bool)

	// Set stores a value. File-backed stores persist it immediately.
	Set(key string, value any) error

	Save() error
	Load() error

	// Path is the backing file, or a descriptive name for stores without one.
	Path() string
}
