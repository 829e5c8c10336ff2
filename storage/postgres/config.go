package postgres

type PostgresOption func(s *PostgresStorage)

func WithDatabaseName(databaseName string) PostgresOption {
	return func(s *PostgresStorage) {
		s.databaseName = databaseName
	}
}

func WithDatabaseSchema(databaseSchema string) PostgresOption {
	return func(s *PostgresStorage) {
		s.databaseSchema = databaseSchema
	}
}

func WithDatabasePrefix(databasePrefix string) PostgresOption {
	return func(s *PostgresStorage) {
		s.databasePrefix = databasePrefix
	}
}
