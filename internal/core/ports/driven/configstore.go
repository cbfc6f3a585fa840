package driven

// ConfigStore reads and writes flat settings keys such as "search.number".
// Nested tables in the backing file map to dot separated keys.
type ConfigStore interface {
	// Get returns the raw value stored under key.
	Get(key string) (any, bool)

	// GetString returns "" for a missing or non-string value.
	GetString(key string) string

	// GetInt accepts any integer type the backing format decodes to.
	// Returns 0 for a missing or non-integer value.
	GetInt(key string) int

	// GetBool returns false for a missing or non-boolean value.
	GetBool(key string) bool

	// GetStringSlice returns nil unless the value is a list of strings.
	GetStringSlice(key string) []string

	// Set stores a value and persists it.
	Set(key string, value any) error

	// Save writes all values back to storage.
	Save() error

	// Load replaces the in-memory values with the stored ones.
	Load() error

	// Path describes where the values are persisted, for error messages.
	Path() string
}
