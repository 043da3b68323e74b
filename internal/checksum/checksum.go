// Package checksum fingerprints entity documents for change detection.
package checksum

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Sum returns the hex-encoded SHA-256 digest of data.
func Sum(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

// ETag returns Sum(data) as a strong HTTP entity tag, quotes included.
func ETag(data []byte) string {
	return `"` + Sum(data) + `"`
}

// MatchETag reports whether an If-Match header value matches tag. The
// header may list several tags separated by commas; "*" matches any
// current tag. Quotes and a weak "W/" prefix are ignored.
func MatchETag(header, tag string) bool {
	want := normalize(tag)
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" {
			return true
		}
		if c := normalize(candidate); c != "" && c == want {
			return true
		}
	}
	return false
}

func normalize(tag string) string {
	if len(tag) > 2 && tag[:2] == "W/" {
		tag = tag[2:]
	}
	if len(tag) >= 2 && tag[0] == '"' && tag[len(tag)-1] == '"' {
		tag = tag[1 : len(tag)-1]
	}
	return tag
}
