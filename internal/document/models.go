package document

import "time"

// Metadata is the persisted per-document record kept in metadata.json.
// Timestamps are UTC and serialize as RFC 3339 (ISO-8601).
type Metadata struct {
	Title    string    `json:"title"`
	Created  time.Time `json:"created"`
	Modified time.Time `json:"modified"`
	Size     int       `json:"size"`
	Lines    int       `json:"lines"`
	Checksum string    `json:"checksum"`
}

// Document bundles a document's content with its metadata, as returned by Get.
type Document struct {
	ID       string   `json:"id"`
	Content  string   `json:"content"`
	Metadata Metadata `json:"metadata"`
}

// Summary is the listing entry for a document (no content).
type Summary struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Modified time.Time `json:"modified"`
	Size     int       `json:"size"`
	Lines    int       `json:"lines"`
}

// Backup identifies one snapshot of a document's prior content. Timestamp is
// the raw filename token (YYYYMMDD_HHMMSS); Datetime is a human-readable
// rendering of the same instant.
type Backup struct {
	Timestamp string `json:"timestamp"`
	Datetime  string `json:"datetime"`
}
