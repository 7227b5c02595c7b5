package document

import (
	"bytes"
	"encoding/json"
	"os"
	"sync"

	"github.com/natefinch/atomic"

	"github.com/inkpad/inkpad/pkg/logger"
)

// metadataStore is the process-wide mapping from document id to Metadata,
// mirrored to a single JSON snapshot on disk. The snapshot is rewritten in
// full on every mutation; writes go through a temp file + rename so a crash
// mid-flush never truncates the previous snapshot.
type metadataStore struct {
	mu      sync.Mutex
	path    string
	records map[string]Metadata
}

// loadMetadataStore reads the snapshot at path. A missing or corrupt file
// yields an empty store: startup stays resilient, the condition is logged.
func loadMetadataStore(path string) *metadataStore {
	s := &metadataStore{path: path, records: make(map[string]Metadata)}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warnf("metadata: cannot read %s, starting empty: %v", path, err)
		}
		return s
	}
	if err := json.Unmarshal(data, &s.records); err != nil {
		logger.Warnf("metadata: corrupt snapshot %s, starting empty: %v", path, err)
		s.records = make(map[string]Metadata)
	}
	return s
}

// get returns the record for id, if present.
func (s *metadataStore) get(id string) (Metadata, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	md, ok := s.records[id]
	return md, ok
}

// has reports whether a record exists for id.
func (s *metadataStore) has(id string) bool {
	_, ok := s.get(id)
	return ok
}

// ids returns the set of known document ids.
func (s *metadataStore) ids() map[string]bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]bool, len(s.records))
	for id := range s.records {
		out[id] = true
	}
	return out
}

// all returns a copy of every record keyed by id.
func (s *metadataStore) all() map[string]Metadata {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]Metadata, len(s.records))
	for id, md := range s.records {
		out[id] = md
	}
	return out
}

// put inserts or replaces the record for id and flushes the snapshot before
// returning. The store mutex is held across the whole read-mutate-write
// cycle so two flushes cannot interleave.
func (s *metadataStore) put(id string, md Metadata) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[id] = md
	return s.flushLocked()
}

// remove deletes the record for id and flushes the snapshot.
func (s *metadataStore) remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, id)
	return s.flushLocked()
}

func (s *metadataStore) flushLocked() error {
	data, err := json.MarshalIndent(s.records, "", "  ")
	if err != nil {
		return &StorageError{Op: "encode", Path: s.path, Err: err}
	}
	if err := atomic.WriteFile(s.path, bytes.NewReader(data)); err != nil {
		return &StorageError{Op: "write", Path: s.path, Err: err}
	}
	return nil
}
