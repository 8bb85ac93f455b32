package utils

// BuildKey joins a prefix and a key. An empty prefix leaves key as is
func BuildKey(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + key
}
