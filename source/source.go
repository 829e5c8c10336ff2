// Package source describes places images for batch recognition are read from.
package source

import (
	"context"
	"io"
)

type RecognitionStartedEvent struct {
	// Unique identifier of the recognition. Same for all events of one file
	UUID string
	// Path to the image in the source
	Path string
}

type RecognitionDoneReason string

const RecognitionOk RecognitionDoneReason = "OK"
const RecognitionError RecognitionDoneReason = "ERROR"

// File is not an image or its format can not be decoded
const RecognitionSkipped RecognitionDoneReason = "SKIPPED"
const RecognitionAborted RecognitionDoneReason = "ABORTED"

// File did not change since it was recognized last time, stored result is reused
const RecognitionCached RecognitionDoneReason = "CACHED"

type RecognitionDoneEvent struct {
	// Unique identifier of the recognition. Same for all events of one file
	UUID string
	// Path to the image in the source
	Path string
	// Why recognition finished
	Reason RecognitionDoneReason
	// Only valid if reason is ERROR
	Error error
}

// Place where images are located
type Source interface {
	UUID() string
	// Open source for iteration
	Open() (Iterator, error)

	// Notify source that recognition of the file is started. Returned error stops the batch.
	NotifyRecognitionStarted(ctx context.Context, event RecognitionStartedEvent) error
	// Notify source that recognition of the file is finished
	NotifyRecognitionDone(ctx context.Context, event RecognitionDoneEvent) error
}

// Opened source
type Iterator interface {
	io.Closer

	// Get and open next file. Thread safe. If there are no files left, returns [io.EOF] error
	Next(ctx context.Context) (FileHandler, error)
}

type FileHandler interface {
	io.ReadCloser

	// Identifier of the file content, changes when the file changes
	Etag() string
	// Path to the file in the source
	Path() string
}
