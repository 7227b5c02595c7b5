package document

import (
	"path/filepath"
	"strings"
)

// timestampLayout is the backup filename timestamp format (YYYYMMDD_HHMMSS).
const timestampLayout = "20060102_150405"

// displayLayout is the human-readable rendering used in backup listings.
const displayLayout = "2006-01-02 15:04:05"

// sanitizeID filters an id down to the filesystem-safe allow-list
// [A-Za-z0-9._-]. Everything else is dropped, not substituted, so the result
// can never contain a path separator or traversal sequence.
func sanitizeID(id string) string {
	var b strings.Builder
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '-', r == '_', r == '.':
			b.WriteRune(r)
		}
	}
	return b.String()
}

func (m *Manager) documentPath(id string) string {
	return filepath.Join(m.documentsDir, sanitizeID(id)+".txt")
}

func (m *Manager) backupPath(id, timestamp string) string {
	return filepath.Join(m.backupsDir, sanitizeID(id)+"_"+timestamp+".txt")
}
