package bundles

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"sort"
	"strings"
)

// ComputeSignature hashes a canonicalized product id set. The ids are sorted
// before hashing so the signature is independent of member order, which is
// what lets the store enforce one bundle per product set.
func ComputeSignature(productIDs []string) (string, error) {
	valid := make([]string, 0, len(productIDs))
	for _, id := range productIDs {
		if id = strings.TrimSpace(id); id != "" {
			valid = append(valid, id)
		}
	}
	if len(valid) == 0 {
		return "", errors.New("no valid product ids for signature")
	}

	sort.Strings(valid)

	sum := sha256.Sum256([]byte(strings.Join(valid, "|")))
	return hex.EncodeToString(sum[:]), nil
}

// ValidSignature reports whether s looks like a sha256 hex digest.
func ValidSignature(s string) bool {
	if len(s) != 64 {
		return false
	}
	_, err := hex.DecodeString(s)
	return err == nil
}
