package tesswrap

import (
	"context"
	"database/sql"
	"errors"

	"github.com/opengs/tesswrap/storage"
	"github.com/opengs/tesswrap/storage/postgres"
)

// Opened store of recognition results
type Store struct {
	storage.Storage
	db *sql.DB
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Connects to the configured store and creates its tables. Returns nil store when `Store` is empty.
func (c Config) OpenStore(ctx context.Context) (*Store, error) {
	if c.Store == "" {
		return nil, nil
	}
	db, err := postgres.OpenDB(c.Store)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, errors.Join(errors.New("failed to connect to the store"), err)
	}

	schema := c.StoreSchema
	if schema == "" {
		schema = "public"
	}
	s := postgres.NewPostgresStorage(db, postgres.WithDatabaseSchema(schema))
	if err := s.Install(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{Storage: s, db: db}, nil
}
