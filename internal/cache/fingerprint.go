package cache

import (
	"fmt"
	"strconv"

	"github.com/OneOfOne/xxhash"
)

// fingerprintPrefixBytes bounds how much content feeds the hash. Collisions
// on near-duplicate content only cost an unnecessary cache hit; there is no
// security requirement here, so a fast non-cryptographic hash is fine.
const fingerprintPrefixBytes = 4096

// Fingerprint derives a cache key from text content and its kind.
func Fingerprint(content string, kind string) string {
	prefix := content
	if len(prefix) > fingerprintPrefixBytes {
		prefix = prefix[:fingerprintPrefixBytes]
	}
	sum := xxhash.ChecksumString64(prefix)
	return strconv.FormatUint(sum, 16) + ":" + kind
}

// BinaryFingerprint derives a cache key for binary content from its name and
// size rather than the payload itself.
func BinaryFingerprint(fileName string, size int64, kind string) string {
	sum := xxhash.ChecksumString64(fmt.Sprintf("%s|%d", fileName, size))
	return strconv.FormatUint(sum, 16) + ":" + kind
}
