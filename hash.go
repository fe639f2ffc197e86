package catalogtl

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// HashText computes the SHA-256 hash of the trimmed text.
func HashText(text string) string {
	trimmed := strings.TrimSpace(text)
	hash := sha256.Sum256([]byte(trimmed))
	return hex.EncodeToString(hash[:])
}

// CacheKey generates a cache key from a text hash and target language.
// Markup and plain submissions of the same text are kept apart.
func CacheKey(hash, targetLang string, markup bool) string {
	if markup {
		return hash + ":" + targetLang + ":html"
	}
	return hash + ":" + targetLang
}
