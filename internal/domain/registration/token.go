package registration

import (
	"encoding/base64"
	"strings"
)

// DeriveEditToken turns a store-assigned registration ID into the token
// embedded in the edit link. The dashes are stripped from the ID and the
// rest is base64url-encoded without padding, so the result is safe in a
// URL path segment as-is.
//
// The derivation is deterministic and runs exactly once, at creation; the
// token is persisted and looked up through an indexed column, never
// decoded back.
func DeriveEditToken(id string) string {
	compact := strings.ReplaceAll(id, "-", "")
	return base64.RawURLEncoding.EncodeToString([]byte(compact))
}
