package utils

import (
	"crypto/sha256"
	"fmt"
	"hash/fnv"
)

// HashString is 32-bit FNV-1a. Stable across processes and platforms.
func HashString(value string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(value))
	return h.Sum32()
}

// PickFrom deterministically selects one item using the hash of seed.
func PickFrom(items []string, seed string) string {
	if len(items) == 0 {
		return ""
	}
	return items[HashString(seed)%uint32(len(items))]
}

// CacheKey builds a short sha256-derived key from the given parts.
func CacheKey(prefix string, parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte{0})
	}
	return fmt.Sprintf("%s:%x", prefix, h.Sum(nil))[:len(prefix)+1+24]
}
