package cache

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"

	"github.com/casualjim/rxagent/pkg/jsonx"
)

// Fingerprint returns the cache key for a tool call: the hex SHA-1 of the tool
// name and the canonical JSON of its arguments. Maps that hold the same entries
// produce the same fingerprint regardless of insertion order.
func Fingerprint(tool string, args map[string]any) (string, error) {
	canonical, err := jsonx.Canonical(args)
	if err != nil {
		return "", fmt.Errorf("fingerprint %s arguments: %w", tool, err)
	}
	h := sha1.New()
	h.Write([]byte(tool))
	h.Write([]byte{'|'})
	h.Write(canonical)
	return hex.EncodeToString(h.Sum(nil)), nil
}
