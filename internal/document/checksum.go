package document

import (
	"crypto/md5"
	"encoding/hex"
)

// Checksum returns the hex MD5 digest of content. It is used only to detect
// whether a save actually changed anything, so cryptographic strength is not
// required; MD5 matches the digests already present in persisted metadata.
func Checksum(content string) string {
	sum := md5.Sum([]byte(content))
	return hex.EncodeToString(sum[:])
}

// countLines counts newline-delimited segments; empty content is one line.
func countLines(content string) int {
	n := 1
	for i := 0; i < len(content); i++ {
		if content[i] == '\n' {
			n++
		}
	}
	return n
}
