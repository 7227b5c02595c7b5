package document

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/natefinch/atomic"

	"github.com/inkpad/inkpad/pkg/logger"
	"github.com/inkpad/inkpad/pkg/metrics"
)

// DefaultMaxBackups is the backup retention bound used when Config leaves
// MaxBackups unset.
const DefaultMaxBackups = 10

// Config carries the storage settings injected into a Manager.
type Config struct {
	// BaseDir is the storage root; documents/ and backups/ live under it.
	BaseDir string
	// MaxBackups bounds the retained backups per document (0 = default).
	MaxBackups int
}

// Manager owns the document/backup lifecycle: durable content storage,
// change detection, backup creation and rotation, and restore semantics.
// It is the only component that touches the metadata snapshot and the
// document/backup files.
//
// Mutating operations (Create, Save, Restore, Delete) are serialized per
// document id; operations on different ids proceed independently.
type Manager struct {
	documentsDir string
	backupsDir   string
	maxBackups   int
	meta         *metadataStore

	// createMu guards id generation so two concurrent creates with the
	// same title cannot both claim the same derived id.
	createMu sync.Mutex

	locksMu sync.Mutex
	locks   map[string]*sync.Mutex
}

// NewManager creates the storage directories under cfg.BaseDir and loads the
// metadata snapshot. A missing or corrupt snapshot yields an empty store.
func NewManager(cfg Config) (*Manager, error) {
	maxBackups := cfg.MaxBackups
	if maxBackups <= 0 {
		maxBackups = DefaultMaxBackups
	}

	m := &Manager{
		documentsDir: filepath.Join(cfg.BaseDir, "documents"),
		backupsDir:   filepath.Join(cfg.BaseDir, "backups"),
		maxBackups:   maxBackups,
		locks:        map[string]*sync.Mutex{},
	}
	for _, dir := range []string{cfg.BaseDir, m.documentsDir, m.backupsDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, &StorageError{Op: "mkdir", Path: dir, Err: err}
		}
	}
	m.meta = loadMetadataStore(filepath.Join(cfg.BaseDir, "metadata.json"))
	return m, nil
}

// lock acquires the per-document mutex for id and returns its release func.
func (m *Manager) lock(id string) func() {
	m.locksMu.Lock()
	mu, ok := m.locks[id]
	if !ok {
		mu = &sync.Mutex{}
		m.locks[id] = mu
	}
	m.locksMu.Unlock()
	mu.Lock()
	return mu.Unlock
}

// Create generates an id from title, writes the content file and inserts a
// fresh metadata record. It returns the new document's id.
func (m *Manager) Create(title, content string) (string, error) {
	m.createMu.Lock()
	defer m.createMu.Unlock()

	id := GenerateID(title, m.meta.ids())
	unlock := m.lock(id)
	defer unlock()

	path := m.documentPath(id)
	if err := atomic.WriteFile(path, strings.NewReader(content)); err != nil {
		return "", &StorageError{Op: "write", Path: path, Err: err}
	}

	now := time.Now().UTC()
	md := Metadata{
		Title:    title,
		Created:  now,
		Modified: now,
		Size:     len(content),
		Lines:    countLines(content),
		Checksum: Checksum(content),
	}
	if err := m.meta.put(id, md); err != nil {
		return "", err
	}
	metrics.DocumentOps.WithLabelValues("create").Inc()
	return id, nil
}

// Get returns the document's content and metadata. A metadata record whose
// content file is missing is an inconsistency reported as ErrNotFound.
func (m *Manager) Get(id string) (*Document, error) {
	md, ok := m.meta.get(id)
	if !ok {
		return nil, ErrNotFound
	}

	path := m.documentPath(id)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, &StorageError{Op: "read", Path: path, Err: err}
	}
	return &Document{ID: id, Content: string(data), Metadata: md}, nil
}

// Save overwrites the document's content and updates its metadata. When
// createBackup is set and the new content's checksum differs from the stored
// content's, the prior content is snapshotted as a backup first (and the
// rotation bound enforced). A save with identical content creates no backup
// but still advances Modified.
func (m *Manager) Save(id, content string, createBackup bool) error {
	unlock := m.lock(id)
	defer unlock()
	return m.saveLocked(id, content, createBackup)
}

func (m *Manager) saveLocked(id, content string, createBackup bool) error {
	md, ok := m.meta.get(id)
	if !ok {
		return ErrNotFound
	}

	path := m.documentPath(id)
	if createBackup {
		old, err := os.ReadFile(path)
		switch {
		case err == nil:
			if Checksum(string(old)) != Checksum(content) {
				if err := m.snapshotBackup(id, old); err != nil {
					return err
				}
			}
		case os.IsNotExist(err):
			// no prior file, nothing to snapshot
		default:
			return &StorageError{Op: "read", Path: path, Err: err}
		}
	}

	if err := atomic.WriteFile(path, strings.NewReader(content)); err != nil {
		return &StorageError{Op: "write", Path: path, Err: err}
	}

	md.Modified = time.Now().UTC()
	md.Size = len(content)
	md.Lines = countLines(content)
	md.Checksum = Checksum(content)
	if err := m.meta.put(id, md); err != nil {
		return err
	}
	metrics.DocumentOps.WithLabelValues("save").Inc()
	return nil
}

// snapshotBackup writes content as a new timestamped backup for id and runs
// rotation. Backup filenames have second resolution, so two snapshots of the
// same document within one second collide (last write wins).
func (m *Manager) snapshotBackup(id string, content []byte) error {
	ts := time.Now().UTC().Format(timestampLayout)
	path := m.backupPath(id, ts)
	if err := atomic.WriteFile(path, strings.NewReader(string(content))); err != nil {
		return &StorageError{Op: "write", Path: path, Err: err}
	}
	metrics.BackupsCreated.Inc()
	m.rotateBackups(id)
	return nil
}

// List returns a summary per known document, ordered by Modified descending.
func (m *Manager) List() []Summary {
	records := m.meta.all()
	out := make([]Summary, 0, len(records))
	for id, md := range records {
		out = append(out, Summary{
			ID:       id,
			Title:    md.Title,
			Modified: md.Modified,
			Size:     md.Size,
			Lines:    md.Lines,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Modified.After(out[j].Modified)
	})
	return out
}

// ListBackups returns the document's backups, newest first. Files whose
// embedded timestamp fails to parse are skipped.
func (m *Manager) ListBackups(id string) ([]Backup, error) {
	if !m.meta.has(id) {
		return nil, ErrNotFound
	}

	prefix := sanitizeID(id) + "_"
	out := []Backup{}
	for _, f := range m.scanBackups(id) {
		name := filepath.Base(f.path)
		token := strings.TrimSuffix(strings.TrimPrefix(name, prefix), ".txt")
		ts, err := time.Parse(timestampLayout, token)
		if err != nil {
			logger.Debugf("backups: skipping %s, malformed timestamp: %v", name, err)
			continue
		}
		out = append(out, Backup{Timestamp: token, Datetime: ts.Format(displayLayout)})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Timestamp > out[j].Timestamp
	})
	return out, nil
}

// Restore replaces the document's content with the backup identified by
// timestamp. The restore goes through the regular save path with backups
// enabled, so the pre-restore state is itself snapshotted, subject to the
// usual change detection and rotation.
func (m *Manager) Restore(id, timestamp string) error {
	unlock := m.lock(id)
	defer unlock()

	if !m.meta.has(id) {
		return ErrNotFound
	}
	if _, err := time.Parse(timestampLayout, timestamp); err != nil {
		return ErrNotFound
	}

	path := m.backupPath(id, timestamp)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return ErrNotFound
		}
		return &StorageError{Op: "read", Path: path, Err: err}
	}
	if err := m.saveLocked(id, string(data), true); err != nil {
		return err
	}
	metrics.DocumentOps.WithLabelValues("restore").Inc()
	return nil
}

// Delete removes the document's content file, all of its backups and its
// metadata record. Backup removal is best-effort; individual failures are
// logged and do not fail the delete.
func (m *Manager) Delete(id string) error {
	unlock := m.lock(id)
	defer unlock()

	if !m.meta.has(id) {
		return ErrNotFound
	}

	path := m.documentPath(id)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return &StorageError{Op: "remove", Path: path, Err: err}
	}

	for _, f := range m.scanBackups(id) {
		if err := os.Remove(f.path); err != nil {
			logger.Warnf("delete %s: cannot remove backup %s: %v", id, f.path, err)
		}
	}

	if err := m.meta.remove(id); err != nil {
		return err
	}
	metrics.DocumentOps.WithLabelValues("delete").Inc()
	return nil
}
