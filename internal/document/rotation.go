package document

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/inkpad/inkpad/pkg/logger"
	"github.com/inkpad/inkpad/pkg/metrics"
)

// backupFile pairs a backup's path with its file modification time.
type backupFile struct {
	path    string
	modTime time.Time
}

// scanBackups lists the backup files belonging to id, i.e. files in the
// backups directory named <safe_id>_*.txt. Scan anomalies are logged and
// skipped; they never fail the caller.
func (m *Manager) scanBackups(id string) []backupFile {
	prefix := sanitizeID(id) + "_"

	entries, err := os.ReadDir(m.backupsDir)
	if err != nil {
		logger.Warnf("backups: cannot scan %s: %v", m.backupsDir, err)
		return nil
	}

	var out []backupFile
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, ".txt") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			logger.Warnf("backups: cannot stat %s: %v", name, err)
			continue
		}
		out = append(out, backupFile{
			path:    filepath.Join(m.backupsDir, name),
			modTime: info.ModTime(),
		})
	}
	return out
}

// rotateBackups enforces the retention bound for id: backups are ordered by
// modification time, newest first, and everything past maxBackups is
// removed. Deletion is best-effort; an undeletable stale backup is logged
// and left behind.
func (m *Manager) rotateBackups(id string) {
	files := m.scanBackups(id)
	if len(files) <= m.maxBackups {
		return
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].modTime.After(files[j].modTime)
	})
	for _, f := range files[m.maxBackups:] {
		if err := os.Remove(f.path); err != nil {
			logger.Warnf("backups: cannot remove stale %s: %v", f.path, err)
			continue
		}
		metrics.BackupsPruned.Inc()
	}
}
