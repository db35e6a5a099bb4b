// Package checksum computes the content digests used for document identity.
//
// The digest serves two roles: a change-detection signal when a document is
// re-saved, and provenance metadata embedded in exported annotation packages.
package checksum

import (
	"crypto/sha256"
	"encoding/hex"
)

// Sum returns the lowercase hex SHA-256 digest of content. Pure function,
// deterministic for any input.
func Sum(content string) string {
	h := sha256.Sum256([]byte(content))
	return hex.EncodeToString(h[:])
}
