package document

import (
	"fmt"
	"strings"
)

// fallbackID is used when a title contains no usable characters at all.
const fallbackID = "untitled"

// GenerateID derives a URL-safe document id from a human title: lowercase,
// alphanumerics and spaces only, spaces replaced with hyphens. Collisions
// against existing are resolved by appending -1, -2, ... Uniqueness holds
// only against the ids known at call time.
func GenerateID(title string, existing map[string]bool) string {
	var b strings.Builder
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ':
			b.WriteByte('-')
		}
	}
	base := b.String()
	if base == "" {
		base = fallbackID
	}

	id := base
	for counter := 1; existing[id]; counter++ {
		id = fmt.Sprintf("%s-%d", base, counter)
	}
	return id
}
