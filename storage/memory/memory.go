// Package memory is a process local [storage.Storage].
package memory

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/opengs/tesswrap/storage"
)

type Storage struct {
	lock    sync.RWMutex
	sources map[storage.SourceUUID]map[string]storage.Record
	now     func() time.Time
}

func New() *Storage {
	return &Storage{
		sources: map[storage.SourceUUID]map[string]storage.Record{},
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (s *Storage) GetOrCreateSource(ctx context.Context, source storage.SourceUUID) (*storage.DataSource, error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	if _, ok := s.sources[source]; !ok {
		s.sources[source] = map[string]storage.Record{}
	}
	return &storage.DataSource{UUID: source}, nil
}

func (s *Storage) DeleteSource(ctx context.Context, source storage.SourceUUID) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	if _, ok := s.sources[source]; !ok {
		return storage.ErrDataSourceDoesntExist
	}
	delete(s.sources, source)
	return nil
}

func (s *Storage) GetRecord(ctx context.Context, source storage.SourceUUID, path string) (*storage.Record, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()
	record, ok := s.sources[source][path]
	if !ok {
		return nil, storage.ErrRecordDoesntExist
	}
	return &record, nil
}

func (s *Storage) PutRecord(ctx context.Context, record storage.Record) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	records, ok := s.sources[record.Source]
	if !ok {
		return storage.ErrDataSourceDoesntExist
	}
	if record.Error != nil {
		e := *record.Error
		record.Error = &e
	}
	record.RecognizedAt = s.now()
	records[record.Path] = record
	return nil
}

func (s *Storage) DeleteRecord(ctx context.Context, source storage.SourceUUID, path string) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	if _, ok := s.sources[source][path]; !ok {
		return storage.ErrRecordDoesntExist
	}
	delete(s.sources[source], path)
	return nil
}

func (s *Storage) ListRecords(ctx context.Context, source storage.SourceUUID) ([]storage.Record, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()
	records, ok := s.sources[source]
	if !ok {
		return nil, storage.ErrDataSourceDoesntExist
	}
	out := make([]storage.Record, 0, len(records))
	for _, r := range records {
		out = append(out, r)
	}
	slices.SortFunc(out, func(a, b storage.Record) int { return strings.Compare(a.Path, b.Path) })
	return out, nil
}

func words(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}

// Records whose text contains every word of the query, ordered by number of matched words
func (s *Storage) SearchText(ctx context.Context, query string, sources []storage.SourceUUID, limit uint32) ([]storage.Record, error) {
	queryWords := words(query)
	if len(queryWords) == 0 {
		return []storage.Record{}, nil
	}

	s.lock.RLock()
	defer s.lock.RUnlock()

	type hit struct {
		record storage.Record
		rank   int
	}
	var hits []hit
	for source, records := range s.sources {
		if len(sources) != 0 && !slices.Contains(sources, source) {
			continue
		}
		for _, r := range records {
			counts := map[string]int{}
			for _, w := range words(r.Text) {
				counts[w]++
			}
			rank := 0
			for _, w := range queryWords {
				if counts[w] == 0 {
					rank = -1
					break
				}
				rank += counts[w]
			}
			if rank > 0 {
				hits = append(hits, hit{record: r, rank: rank})
			}
		}
	}

	slices.SortFunc(hits, func(a, b hit) int {
		if a.rank != b.rank {
			return b.rank - a.rank
		}
		if c := strings.Compare(string(a.record.Source), string(b.record.Source)); c != 0 {
			return c
		}
		return strings.Compare(a.record.Path, b.record.Path)
	})
	out := []storage.Record{}
	for _, h := range hits {
		if uint32(len(out)) >= limit {
			break
		}
		out = append(out, h.record)
	}
	return out, nil
}
