// Package testlib contains the test suite every storage implementation must pass.
package testlib

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/opengs/tesswrap/storage"
)

func RandString(length int) string {
	const charset = "abcdefghijklmnopqrstuvwxyz" + "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	b := make([]byte, length)
	for i := range b {
		b[i] = charset[rand.Intn(len(charset))]
	}
	return string(b)
}

func RandSchemaName(length int) string {
	const charset = "abcdefghijklmnopqrstuvwxyz"

	b := make([]byte, length)
	for i := range b {
		b[i] = charset[rand.Intn(len(charset))]
	}
	return string(b)
}

var ignoreTime = cmpopts.IgnoreFields(storage.Record{}, "RecognizedAt")

func newSource(t *testing.T, s storage.Storage) storage.SourceUUID {
	sourceUUID := storage.SourceUUID(RandString(32))
	if _, err := s.GetOrCreateSource(t.Context(), sourceUUID); err != nil {
		t.Fatal(err.Error())
	}
	return sourceUUID
}

func TestStorage(t *testing.T, s storage.Storage) {
	t.Run("CreateDeleteSource", func(t *testing.T) {
		sourceUUID := storage.SourceUUID(RandString(32))

		source, err := s.GetOrCreateSource(t.Context(), sourceUUID)
		if err != nil {
			t.Error(err.Error())
			return
		}
		if source.UUID != sourceUUID {
			t.Fail()
			return
		}
		// second call returns the same source
		if _, err := s.GetOrCreateSource(t.Context(), sourceUUID); err != nil {
			t.Error(err.Error())
			return
		}

		if err := s.DeleteSource(t.Context(), source.UUID); err != nil {
			t.Error(err.Error())
			return
		}
		if err := s.DeleteSource(t.Context(), source.UUID); !errors.Is(err, storage.ErrDataSourceDoesntExist) {
			t.Errorf("expected ErrDataSourceDoesntExist, got %v", err)
		}
	})

	t.Run("PutRecordWithoutSource", func(t *testing.T) {
		err := s.PutRecord(t.Context(), storage.Record{Source: storage.SourceUUID(RandString(32)), Path: "a.png", Reason: "OK"})
		if !errors.Is(err, storage.ErrDataSourceDoesntExist) {
			t.Errorf("expected ErrDataSourceDoesntExist, got %v", err)
		}
	})

	t.Run("PutGetReplaceRecord", func(t *testing.T) {
		sourceUUID := newSource(t, s)
		record := storage.Record{
			Source:      sourceUUID,
			Path:        "/scans/page1.png",
			ETag:        RandString(16),
			Fingerprint: "tesseract:eng",
			MimeType:    "image/png",
			Reason:      "OK",
			Text:        "first page",
			Confidence:  91,
		}
		if err := s.PutRecord(t.Context(), record); err != nil {
			t.Error(err.Error())
			return
		}

		got, err := s.GetRecord(t.Context(), sourceUUID, record.Path)
		if err != nil {
			t.Error(err.Error())
			return
		}
		if diff := cmp.Diff(record, *got, ignoreTime); diff != "" {
			t.Errorf("record mismatch (-want +got):\n%s", diff)
		}
		if got.RecognizedAt.IsZero() {
			t.Error("recognition time must be set")
		}

		failure := "engine failed"
		record.Reason = "ERROR"
		record.Text = ""
		record.Confidence = 0
		record.Error = &failure
		if err := s.PutRecord(t.Context(), record); err != nil {
			t.Error(err.Error())
			return
		}
		got, err = s.GetRecord(t.Context(), sourceUUID, record.Path)
		if err != nil {
			t.Error(err.Error())
			return
		}
		if diff := cmp.Diff(record, *got, ignoreTime); diff != "" {
			t.Errorf("replaced record mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("GetMissingRecord", func(t *testing.T) {
		sourceUUID := newSource(t, s)
		if _, err := s.GetRecord(t.Context(), sourceUUID, "missing.png"); !errors.Is(err, storage.ErrRecordDoesntExist) {
			t.Errorf("expected ErrRecordDoesntExist, got %v", err)
		}
	})

	t.Run("ListAndDeleteRecords", func(t *testing.T) {
		sourceUUID := newSource(t, s)
		for _, path := range []string{"b.png", "a.png", "c/d.png"} {
			if err := s.PutRecord(t.Context(), storage.Record{Source: sourceUUID, Path: path, Reason: "OK"}); err != nil {
				t.Error(err.Error())
				return
			}
		}
		if err := s.DeleteRecord(t.Context(), sourceUUID, "b.png"); err != nil {
			t.Error(err.Error())
			return
		}
		if err := s.DeleteRecord(t.Context(), sourceUUID, "b.png"); !errors.Is(err, storage.ErrRecordDoesntExist) {
			t.Errorf("expected ErrRecordDoesntExist, got %v", err)
		}

		records, err := s.ListRecords(t.Context(), sourceUUID)
		if err != nil {
			t.Error(err.Error())
			return
		}
		var paths []string
		for _, r := range records {
			paths = append(paths, r.Path)
		}
		if diff := cmp.Diff([]string{"a.png", "c/d.png"}, paths); diff != "" {
			t.Errorf("paths mismatch (-want +got):\n%s", diff)
		}

		if err := s.DeleteSource(t.Context(), sourceUUID); err != nil {
			t.Error(err.Error())
			return
		}
		if _, err := s.GetRecord(t.Context(), sourceUUID, "a.png"); !errors.Is(err, storage.ErrRecordDoesntExist) {
			t.Errorf("records must be deleted with the source, got %v", err)
		}
	})

	t.Run("SearchText", func(t *testing.T) {
		first := newSource(t, s)
		second := newSource(t, s)
		marker := RandSchemaName(12)
		records := []storage.Record{
			{Source: first, Path: "invoice.png", Reason: "OK", Text: "Invoice " + marker + " total due"},
			{Source: first, Path: "letter.png", Reason: "OK", Text: "Dear customer, " + marker + " is ready"},
			{Source: second, Path: "receipt.png", Reason: "OK", Text: "receipt " + marker + " total paid"},
			{Source: second, Path: "other.png", Reason: "OK", Text: "nothing to see"},
		}
		for _, r := range records {
			if err := s.PutRecord(t.Context(), r); err != nil {
				t.Error(err.Error())
				return
			}
		}

		found, err := s.SearchText(t.Context(), marker+" TOTAL", nil, 10)
		if err != nil {
			t.Error(err.Error())
			return
		}
		var paths []string
		for _, r := range found {
			paths = append(paths, r.Path)
		}
		if diff := cmp.Diff([]string{"invoice.png", "receipt.png"}, paths, cmpopts.SortSlices(func(a, b string) bool { return a < b })); diff != "" {
			t.Errorf("search mismatch (-want +got):\n%s", diff)
		}

		found, err = s.SearchText(t.Context(), marker, []storage.SourceUUID{second}, 10)
		if err != nil {
			t.Error(err.Error())
			return
		}
		if len(found) != 1 || found[0].Path != "receipt.png" {
			t.Errorf("search must be limited to the source, got %+v", found)
		}

		found, err = s.SearchText(t.Context(), marker, nil, 1)
		if err != nil {
			t.Error(err.Error())
			return
		}
		if len(found) != 1 {
			t.Errorf("search must respect the limit, got %d records", len(found))
		}
	})
}
