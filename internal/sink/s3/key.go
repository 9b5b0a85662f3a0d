package s3

import "strings"

// KeyRoot is the fixed top of every object key this pipeline writes.
const KeyRoot = "google_analytics"

// ObjectKey builds the hierarchical key for an exported table:
// root / dataset description / view configuration / partition / leaf.ext.
// The extension may be empty for extensionless objects.
func ObjectKey(description, viewConfig, partition, leaf, extension string) string {
	key := strings.Join([]string{KeyRoot, description, viewConfig, partition, leaf}, "/")
	if extension != "" {
		key += "." + extension
	}
	return key
}
