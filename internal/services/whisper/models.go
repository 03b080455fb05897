package whisper

import "strings"

// Model identifiers supported by the standard whisper model family, ordered
// from fastest to most accurate.
var KnownModels = []string{"tiny", "base", "small", "medium", "large"}

// IsKnownModel reports whether the identifier names a catalog model. Paths
// to model files are accepted by the engine but bypass the catalog.
func IsKnownModel(model string) bool {
	normalized := strings.ToLower(strings.TrimSpace(model))
	for _, known := range KnownModels {
		if normalized == known {
			return true
		}
	}
	return false
}
