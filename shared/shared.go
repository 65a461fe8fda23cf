package shared

import (
	"strings"
)

// BuildCacheKey joins key segments with the conventional ":" separator.
func BuildCacheKey(parts ...string) string {
	return strings.Join(parts, ":")
}
