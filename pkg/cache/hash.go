package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// hashKey builds "prefix:sha256(json(parts))". Struct options hash by
// their JSON encoding, so field order is stable.
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	sum := sha256.Sum256(data)
	return prefix + ":" + hex.EncodeToString(sum[:])
}

// Hash returns the hex SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// HashValue hashes the JSON encoding of v. Values that cannot be encoded
// hash to the empty string.
func HashValue(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return Hash(data)
}
