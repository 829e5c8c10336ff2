package migrations

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"regexp"
	"strings"

	"github.com/psanford/memfs"
)

//go:embed *.sql
var sqlFiles embed.FS

var ErrBadIdentifier = errors.New("bad SQL identifier")

// Schema names and table prefixes are pasted into SQL, so only plain identifiers are accepted
var identifierRegexp = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Migration files for golang-migrate with `SCHEMA_NAME` and `DATABASE_PREFIX_` substituted.
// Prefix may be empty.
func PrepareMigrations(schema string, prefix string) (fs.FS, error) {
	if !identifierRegexp.MatchString(schema) {
		return nil, fmt.Errorf("%w: schema %q", ErrBadIdentifier, schema)
	}
	if prefix != "" && !identifierRegexp.MatchString(prefix) {
		return nil, fmt.Errorf("%w: table prefix %q", ErrBadIdentifier, prefix)
	}

	names, err := fs.Glob(sqlFiles, "*.sql")
	if err != nil {
		return nil, errors.Join(errors.New("failed to list migrations"), err)
	}
	replacer := strings.NewReplacer("SCHEMA_NAME", schema, "DATABASE_PREFIX_", prefix)

	prepared := memfs.New()
	for _, name := range names {
		data, err := fs.ReadFile(sqlFiles, name)
		if err != nil {
			return nil, errors.Join(fmt.Errorf("failed to read migration %s", name), err)
		}
		if err := prepared.WriteFile(name, []byte(replacer.Replace(string(data))), 0644); err != nil {
			return nil, errors.Join(fmt.Errorf("failed to prepare migration %s", name), err)
		}
	}
	return prepared, nil
}
