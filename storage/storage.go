// Package storage keeps recognition results of batch sources, so unchanged files are not recognized twice
// and recognized text can be searched.
package storage

import (
	"context"
	"errors"
	"time"
)

type SourceUUID string

type DataSource struct {
	UUID SourceUUID `json:"uuid"`
}

// Stored outcome of recognizing one file of a source
type Record struct {
	Source SourceUUID `json:"source"`
	Path   string     `json:"path"`
	ETag   string     `json:"etag"`
	// Identifies engines and languages that produced the record. Records are reused only while it matches.
	Fingerprint string `json:"fingerprint"`
	MimeType    string `json:"mimeType"`
	// Why recognition finished, e.g. OK or SKIPPED
	Reason     string  `json:"reason"`
	Text       string  `json:"text"`
	Confidence int     `json:"confidence"`
	Error      *string `json:"error"`

	// Set by the storage when the record is written
	RecognizedAt time.Time `json:"recognizedAt"`
}

var ErrDataSourceDoesntExist = errors.New("data source doest not exist in storage")
var ErrRecordDoesntExist = errors.New("record does not exist in storage data source")

type Storage interface {
	GetOrCreateSource(ctx context.Context, source SourceUUID) (*DataSource, error)
	// Deletes source and all its records
	DeleteSource(ctx context.Context, source SourceUUID) error

	// Returns record of the file or `ErrRecordDoesntExist`
	GetRecord(ctx context.Context, source SourceUUID, path string) (*Record, error)
	// Creates or replaces record of the file. Source must exist.
	PutRecord(ctx context.Context, record Record) error
	DeleteRecord(ctx context.Context, source SourceUUID, path string) error
	// Records of the source sorted by path
	ListRecords(ctx context.Context, source SourceUUID) ([]Record, error)

	// Full text search over recognized text. Every word of the query must be present. If sources array is
	// empty, searches in all available sources.
	SearchText(ctx context.Context, query string, sources []SourceUUID, limit uint32) ([]Record, error)
}
