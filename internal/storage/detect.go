package storage

import "strings"

// IsPostgresDSN reports whether the config value names a PostgreSQL
// database rather than a file path.
func IsPostgresDSN(config string) bool {
	return strings.HasPrefix(config, "postgres://") ||
		strings.HasPrefix(config, "postgresql://") ||
		strings.Contains(config, "host=")
}

// IsJSONPath reports whether the config value selects the JSON file store.
func IsJSONPath(config string) bool {
	return strings.HasSuffix(config, ".json")
}
