// Package models defines data structures for the size extractor.
package models

import "time"

// SizeEntry is one selectable size option read from a size-group list item.
type SizeEntry struct {
	Group    string `json:"group"`
	Position string `json:"position"`
	Label    string `json:"label"`
}

// ExtractionResult holds the entries of one page in document order.
type ExtractionResult struct {
	Path     string
	Category string
	Entries  []SizeEntry
}

// Input is one page of the batch.
type Input struct {
	Path string
	Key  string
}

// BatchResult summarises a batch run. Results only covers files that
// completed before the batch stopped.
type BatchResult struct {
	Results    []*ExtractionResult
	StartTime  time.Time
	EndTime    time.Time
	FileCount  int
	EntryCount int
}
