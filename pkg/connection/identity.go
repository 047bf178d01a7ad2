package connection

import (
	"crypto/sha256"
	"encoding/hex"
)

// idLength is the number of hex characters kept from the digest.
const idLength = 10

// DeriveID derives a short, non-reversible connection identifier from a
// session token. The same token always yields the same identifier, so the
// id is safe to use in URLs and logs without exposing the token itself.
func DeriveID(sessionToken string) string {
	sum := sha256.Sum256([]byte(sessionToken))
	return hex.EncodeToString(sum[:])[:idLength]
}
