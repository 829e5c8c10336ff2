package tesswrap

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/opengs/tesswrap/ocr"
	"github.com/opengs/tesswrap/raster"
	"github.com/opengs/tesswrap/source"
	"github.com/opengs/tesswrap/storage"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Outcome of recognizing one file of a source
type Recognition struct {
	UUID     string                       `json:"uuid"`
	Path     string                       `json:"path"`
	Etag     string                       `json:"etag"`
	MimeType string                       `json:"mimeType"`
	Reason   source.RecognitionDoneReason `json:"reason"`
	Result   ocr.Result                   `json:"result"`
	Error    string                       `json:"error,omitempty"`
	Duration time.Duration                `json:"duration"`

	Err error `json:"-"`

	// result came from storage
	reused bool
}

type BatchConfig struct {
	// Files recognized at the same time. Values below 1 mean 1
	Parallelism int `mapstructure:"parallelism"`
	// Files larger than this are failed without reading them fully. 0 means no limit
	MaxFileBytes int64 `mapstructure:"maxFileBytes"`

	// Optional store of results. Files with unchanged etag and fingerprint are not recognized again.
	Storage storage.Storage `mapstructure:"-"`
	// Identifies engines and languages, see `TessWrap.Fingerprint`
	Fingerprint string `mapstructure:"-"`
}

func DefaultBatchConfig() BatchConfig {
	return BatchConfig{
		Parallelism:  1,
		MaxFileBytes: 64 * 1024 * 1024,
	}
}

var ErrFileTooLarge = errors.New("file is too large")

type batch struct {
	provider ocr.Provider
	src      source.Source
	config   BatchConfig
	logger   zerolog.Logger
}

// Recognizes every file of the source with the provider. Files the provider can not read are
// reported as skipped. `handle` is never called concurrently. Per file failures are reported to
// `handle`; the returned error covers source failures, canceled contexts and errors from `handle`.
func RecognizeSource(ctx context.Context, provider ocr.Provider, src source.Source, config BatchConfig, logger zerolog.Logger, handle func(Recognition) error) error {
	if config.Storage != nil {
		if _, err := config.Storage.GetOrCreateSource(ctx, storage.SourceUUID(src.UUID())); err != nil {
			return errors.Join(errors.New("failed to register source in storage"), err)
		}
	}

	iter, err := src.Open()
	if err != nil {
		return errors.Join(errors.New("failed to open source"), err)
	}
	defer iter.Close()

	b := &batch{provider: provider, src: src, config: config, logger: logger}
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(max(config.Parallelism, 1))

	var handleLock sync.Mutex
	for {
		file, err := iter.Next(groupCtx)
		if err == io.EOF {
			break
		}
		if err != nil {
			if groupCtx.Err() == nil {
				group.Go(func() error { return errors.Join(errors.New("failed to get next file from the source"), err) })
			}
			break
		}

		group.Go(func() error {
			defer file.Close()
			if groupCtx.Err() != nil {
				return nil
			}

			recognition := b.recognizeFile(groupCtx, file)
			handleLock.Lock()
			defer handleLock.Unlock()
			// batch already failed
			if groupCtx.Err() != nil {
				return nil
			}
			return handle(recognition)
		})
	}

	if err := group.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

// Stored result of the unchanged file, nil if the file must be recognized
func (b *batch) cached(ctx context.Context, file source.FileHandler) *storage.Record {
	if b.config.Storage == nil {
		return nil
	}
	record, err := b.config.Storage.GetRecord(ctx, storage.SourceUUID(b.src.UUID()), file.Path())
	if err != nil {
		if !errors.Is(err, storage.ErrRecordDoesntExist) {
			b.logger.Warn().Err(err).Str("path", file.Path()).Msg("failed to get stored recognition")
		}
		return nil
	}
	if record.ETag != file.Etag() || record.Fingerprint != b.config.Fingerprint {
		return nil
	}
	switch source.RecognitionDoneReason(record.Reason) {
	case source.RecognitionOk, source.RecognitionSkipped:
		return record
	}
	return nil
}

func (b *batch) store(ctx context.Context, recognition Recognition) {
	if b.config.Storage == nil {
		return
	}
	if recognition.reused {
		return
	}
	switch recognition.Reason {
	case source.RecognitionAborted, source.RecognitionCached:
		return
	}
	record := storage.Record{
		Source:      storage.SourceUUID(b.src.UUID()),
		Path:        recognition.Path,
		ETag:        recognition.Etag,
		Fingerprint: b.config.Fingerprint,
		MimeType:    recognition.MimeType,
		Reason:      string(recognition.Reason),
		Text:        recognition.Result.Text,
		Confidence:  recognition.Result.Confidence,
	}
	if recognition.Error != "" {
		record.Error = &recognition.Error
	}
	if err := b.config.Storage.PutRecord(ctx, record); err != nil {
		b.logger.Warn().Err(err).Str("path", recognition.Path).Msg("failed to store recognition")
	}
}

func (b *batch) recognizeFile(ctx context.Context, file source.FileHandler) Recognition {
	start := time.Now()
	recognition := Recognition{
		UUID: uuid.NewString(),
		Path: file.Path(),
		Etag: file.Etag(),
	}
	logger := b.logger.With().Str("uuid", recognition.UUID).Str("path", recognition.Path).Logger()

	done := func(reason source.RecognitionDoneReason, err error) Recognition {
		recognition.Reason = reason
		recognition.Duration = time.Since(start)
		if err != nil {
			recognition.Err = err
			recognition.Error = err.Error()
		}
		b.store(ctx, recognition)
		event := source.RecognitionDoneEvent{UUID: recognition.UUID, Path: recognition.Path, Reason: reason, Error: err}
		if notifyErr := b.src.NotifyRecognitionDone(ctx, event); notifyErr != nil {
			logger.Warn().Err(notifyErr).Msg("failed to notify source about finished recognition")
		}
		return recognition
	}

	if err := b.src.NotifyRecognitionStarted(ctx, source.RecognitionStartedEvent{UUID: recognition.UUID, Path: recognition.Path}); err != nil {
		return done(source.RecognitionAborted, errors.Join(errors.New("source rejected recognition"), err))
	}

	if record := b.cached(ctx, file); record != nil {
		recognition.reused = true
		recognition.MimeType = record.MimeType
		if source.RecognitionDoneReason(record.Reason) == source.RecognitionSkipped {
			logger.Debug().Str("mimeType", record.MimeType).Msg("file skipped by earlier run")
			return done(source.RecognitionSkipped, nil)
		}
		recognition.Result = ocr.Result{Text: record.Text, Confidence: record.Confidence}
		logger.Debug().Msg("stored recognition reused")
		return done(source.RecognitionCached, nil)
	}

	var reader io.Reader = file
	maxBytes := b.config.MaxFileBytes
	if maxBytes > 0 {
		reader = io.LimitReader(file, maxBytes+1)
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return done(source.RecognitionError, errors.Join(errors.New("failed to read file"), err))
	}
	if maxBytes > 0 && int64(len(data)) > maxBytes {
		return done(source.RecognitionError, ErrFileTooLarge)
	}

	recognition.MimeType = raster.DetectMimeType(data)
	if !b.provider.IsMimeTypeSupported(recognition.MimeType) {
		logger.Debug().Str("mimeType", recognition.MimeType).Msg("file skipped")
		return done(source.RecognitionSkipped, nil)
	}

	result, err := b.recognize(ctx, data)
	if err != nil {
		if ctx.Err() != nil {
			return done(source.RecognitionAborted, err)
		}
		logger.Error().Err(err).Msg("recognition failed")
		return done(source.RecognitionError, err)
	}
	recognition.Result = result
	logger.Debug().Int("confidence", result.Confidence).Dur("duration", time.Since(start)).Msg("file recognized")
	return done(source.RecognitionOk, nil)
}

func (b *batch) recognize(ctx context.Context, data []byte) (result ocr.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("recognition panicked: %v", r)
		}
	}()
	return b.provider.Recognize(ctx, bytes.NewReader(data))
}
