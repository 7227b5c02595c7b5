package document

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	mgr, err := NewManager(Config{BaseDir: t.TempDir()})
	require.NoError(t, err)
	return mgr
}

// writeBackup fabricates a backup file for id with the given timestamp token
// and sets the file's mtime to match, so rotation ordering is deterministic.
func writeBackup(t *testing.T, mgr *Manager, id, token, content string) {
	t.Helper()
	path := mgr.backupPath(id, token)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	ts, err := time.Parse(timestampLayout, token)
	require.NoError(t, err)
	require.NoError(t, os.Chtimes(path, ts, ts))
}

func TestCreateAndGet(t *testing.T) {
	mgr := newTestManager(t)

	id, err := mgr.Create("My Notes", "line one\nline two")
	require.NoError(t, err)
	assert.Equal(t, "my-notes", id)

	doc, err := mgr.Get(id)
	require.NoError(t, err)
	assert.Equal(t, id, doc.ID)
	assert.Equal(t, "line one\nline two", doc.Content)
	assert.Equal(t, "My Notes", doc.Metadata.Title)
	assert.Equal(t, 17, doc.Metadata.Size)
	assert.Equal(t, 2, doc.Metadata.Lines)
	assert.Equal(t, Checksum(doc.Content), doc.Metadata.Checksum)
	assert.Equal(t, doc.Metadata.Created, doc.Metadata.Modified)
	assert.True(t, doc.Metadata.Created.Before(time.Now().Add(time.Second)))
}

func TestCreateSameTitleTwice(t *testing.T) {
	mgr := newTestManager(t)

	first, err := mgr.Create("Draft", "a")
	require.NoError(t, err)
	second, err := mgr.Create("Draft", "b")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.Equal(t, "draft", first)
	assert.Equal(t, "draft-1", second)
}

func TestGetUnknown(t *testing.T) {
	mgr := newTestManager(t)

	_, err := mgr.Get("nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetMissingContentFile(t *testing.T) {
	mgr := newTestManager(t)

	id, err := mgr.Create("Orphan", "content")
	require.NoError(t, err)

	// metadata without a backing file is an inconsistency -> not found
	require.NoError(t, os.Remove(mgr.documentPath(id)))
	_, err = mgr.Get(id)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSaveUnknown(t *testing.T) {
	mgr := newTestManager(t)
	assert.ErrorIs(t, mgr.Save("nope", "content", true), ErrNotFound)
}

func TestSaveUnchangedContentSkipsBackup(t *testing.T) {
	mgr := newTestManager(t)

	id, err := mgr.Create("Doc", "same content")
	require.NoError(t, err)
	created := mustGet(t, mgr, id).Metadata.Modified

	time.Sleep(10 * time.Millisecond)
	require.NoError(t, mgr.Save(id, "same content", true))

	doc := mustGet(t, mgr, id)
	assert.True(t, doc.Metadata.Modified.After(created), "modified should advance on identical save")

	backups, err := mgr.ListBackups(id)
	require.NoError(t, err)
	assert.Empty(t, backups, "identical content must not create a backup")
}

func TestSaveChangedContentCreatesBackup(t *testing.T) {
	mgr := newTestManager(t)

	id, err := mgr.Create("Doc", "version one")
	require.NoError(t, err)
	require.NoError(t, mgr.Save(id, "version two", true))

	backups, err := mgr.ListBackups(id)
	require.NoError(t, err)
	require.Len(t, backups, 1)

	// the backup holds the previous content
	data, err := os.ReadFile(mgr.backupPath(id, backups[0].Timestamp))
	require.NoError(t, err)
	assert.Equal(t, "version one", string(data))

	doc := mustGet(t, mgr, id)
	assert.Equal(t, "version two", doc.Content)
	assert.Equal(t, Checksum("version two"), doc.Metadata.Checksum)
}

func TestSaveWithoutBackupFlag(t *testing.T) {
	mgr := newTestManager(t)

	id, err := mgr.Create("Doc", "version one")
	require.NoError(t, err)
	require.NoError(t, mgr.Save(id, "version two", false))

	backups, err := mgr.ListBackups(id)
	require.NoError(t, err)
	assert.Empty(t, backups)
}

func TestBackupRotation(t *testing.T) {
	mgr := newTestManager(t)

	id, err := mgr.Create("Doc", "current")
	require.NoError(t, err)

	// fabricate 15 backups with distinct second-level timestamps
	base := time.Date(2026, 1, 2, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 15; i++ {
		token := base.Add(time.Duration(i) * time.Second).Format(timestampLayout)
		writeBackup(t, mgr, id, token, fmt.Sprintf("content %d", i))
	}

	mgr.rotateBackups(id)

	backups, err := mgr.ListBackups(id)
	require.NoError(t, err)
	require.Len(t, backups, DefaultMaxBackups)

	// the newest entries survive, ordered newest first
	assert.Equal(t, base.Add(14*time.Second).Format(timestampLayout), backups[0].Timestamp)
	assert.Equal(t, base.Add(5*time.Second).Format(timestampLayout), backups[len(backups)-1].Timestamp)
}

func TestBackupRotationConfigurableLimit(t *testing.T) {
	mgr, err := NewManager(Config{BaseDir: t.TempDir(), MaxBackups: 2})
	require.NoError(t, err)

	id, err := mgr.Create("Doc", "current")
	require.NoError(t, err)

	base := time.Date(2026, 1, 2, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		token := base.Add(time.Duration(i) * time.Second).Format(timestampLayout)
		writeBackup(t, mgr, id, token, "x")
	}
	mgr.rotateBackups(id)

	backups, err := mgr.ListBackups(id)
	require.NoError(t, err)
	assert.Len(t, backups, 2)
}

func TestRotationIgnoresOtherDocuments(t *testing.T) {
	mgr, err := NewManager(Config{BaseDir: t.TempDir(), MaxBackups: 1})
	require.NoError(t, err)

	a, err := mgr.Create("Doc A", "a")
	require.NoError(t, err)
	b, err := mgr.Create("Doc B", "b")
	require.NoError(t, err)

	writeBackup(t, mgr, a, "20260102_120000", "a1")
	writeBackup(t, mgr, a, "20260102_120001", "a2")
	writeBackup(t, mgr, b, "20260102_120000", "b1")

	mgr.rotateBackups(a)

	aBackups, err := mgr.ListBackups(a)
	require.NoError(t, err)
	assert.Len(t, aBackups, 1)

	bBackups, err := mgr.ListBackups(b)
	require.NoError(t, err)
	assert.Len(t, bBackups, 1, "rotation of one document must not touch another's backups")
}

func TestListBackupsSkipsMalformedNames(t *testing.T) {
	mgr := newTestManager(t)

	id, err := mgr.Create("Doc", "content")
	require.NoError(t, err)

	writeBackup(t, mgr, id, "20260102_120000", "good")
	junk := filepath.Join(mgr.backupsDir, sanitizeID(id)+"_notatimestamp.txt")
	require.NoError(t, os.WriteFile(junk, []byte("junk"), 0o644))

	backups, err := mgr.ListBackups(id)
	require.NoError(t, err)
	require.Len(t, backups, 1)
	assert.Equal(t, "20260102_120000", backups[0].Timestamp)
	assert.Equal(t, "2026-01-02 12:00:00", backups[0].Datetime)
}

func TestListBackupsUnknown(t *testing.T) {
	mgr := newTestManager(t)
	_, err := mgr.ListBackups("nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRestore(t *testing.T) {
	mgr := newTestManager(t)

	id, err := mgr.Create("Doc", "current text")
	require.NoError(t, err)
	writeBackup(t, mgr, id, "20260101_090000", "older text")

	require.NoError(t, mgr.Restore(id, "20260101_090000"))

	doc := mustGet(t, mgr, id)
	assert.Equal(t, "older text", doc.Content)

	// restoring snapshots the pre-restore state as a new backup
	backups, err := mgr.ListBackups(id)
	require.NoError(t, err)
	var contents []string
	for _, b := range backups {
		data, err := os.ReadFile(mgr.backupPath(id, b.Timestamp))
		require.NoError(t, err)
		contents = append(contents, string(data))
	}
	assert.Contains(t, contents, "current text")
}

func TestRestoreUnknownBackup(t *testing.T) {
	mgr := newTestManager(t)

	id, err := mgr.Create("Doc", "content")
	require.NoError(t, err)

	assert.ErrorIs(t, mgr.Restore(id, "20000101_000000"), ErrNotFound)
	assert.ErrorIs(t, mgr.Restore(id, "not-a-timestamp"), ErrNotFound)
	assert.ErrorIs(t, mgr.Restore("nope", "20000101_000000"), ErrNotFound)
}

func TestDelete(t *testing.T) {
	mgr := newTestManager(t)

	id, err := mgr.Create("Doc", "content")
	require.NoError(t, err)
	writeBackup(t, mgr, id, "20260102_120000", "old")
	writeBackup(t, mgr, id, "20260102_120001", "older")

	require.NoError(t, mgr.Delete(id))

	_, err = mgr.Get(id)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = mgr.ListBackups(id)
	assert.ErrorIs(t, err, ErrNotFound)

	// no files for the id remain anywhere in storage
	assert.NoFileExists(t, mgr.documentPath(id))
	entries, err := os.ReadDir(mgr.backupsDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestDeleteUnknown(t *testing.T) {
	mgr := newTestManager(t)
	assert.ErrorIs(t, mgr.Delete("nope"), ErrNotFound)
}

func TestDeleteToleratesMissingContentFile(t *testing.T) {
	mgr := newTestManager(t)

	id, err := mgr.Create("Doc", "content")
	require.NoError(t, err)
	require.NoError(t, os.Remove(mgr.documentPath(id)))

	require.NoError(t, mgr.Delete(id))
	_, err = mgr.Get(id)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListOrdering(t *testing.T) {
	mgr := newTestManager(t)

	first, err := mgr.Create("First", "a")
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)
	second, err := mgr.Create("Second", "b")
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)
	third, err := mgr.Create("Third", "c")
	require.NoError(t, err)

	list := mgr.List()
	require.Len(t, list, 3)
	assert.Equal(t, []string{third, second, first}, []string{list[0].ID, list[1].ID, list[2].ID})

	// saving the oldest document moves it to the front
	time.Sleep(10 * time.Millisecond)
	require.NoError(t, mgr.Save(first, "a2", true))
	list = mgr.List()
	assert.Equal(t, first, list[0].ID)
}

func TestMetadataSurvivesRestart(t *testing.T) {
	dir := t.TempDir()

	mgr, err := NewManager(Config{BaseDir: dir})
	require.NoError(t, err)
	id, err := mgr.Create("Persistent", "content")
	require.NoError(t, err)

	// a second manager over the same directory sees the document
	mgr2, err := NewManager(Config{BaseDir: dir})
	require.NoError(t, err)
	doc, err := mgr2.Get(id)
	require.NoError(t, err)
	assert.Equal(t, "content", doc.Content)
	assert.Equal(t, "Persistent", doc.Metadata.Title)
}

func TestCorruptMetadataStartsEmpty(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "metadata.json"), []byte("garbage"), 0o644))

	mgr, err := NewManager(Config{BaseDir: dir})
	require.NoError(t, err)
	assert.Empty(t, mgr.List())
}

func TestConcurrentSavesSameDocument(t *testing.T) {
	mgr := newTestManager(t)

	id, err := mgr.Create("Doc", "initial")
	require.NoError(t, err)

	done := make(chan error, 20)
	for i := 0; i < 20; i++ {
		go func(i int) {
			done <- mgr.Save(id, fmt.Sprintf("content %d", i), true)
		}(i)
	}
	for i := 0; i < 20; i++ {
		require.NoError(t, <-done)
	}

	// the metadata snapshot stays consistent with the surviving content
	doc := mustGet(t, mgr, id)
	assert.Equal(t, Checksum(doc.Content), doc.Metadata.Checksum)
	assert.Equal(t, len(doc.Content), doc.Metadata.Size)
}

func mustGet(t *testing.T, mgr *Manager, id string) *Document {
	t.Helper()
	doc, err := mgr.Get(id)
	require.NoError(t, err)
	return doc
}
