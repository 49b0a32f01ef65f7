package types

import "errors"

// Config holds backend selection and parameters for opening a catalog store.
type Config struct {
	Backend      string `json:"backend" yaml:"backend"`
	DataDir      string `json:"data_dir" yaml:"data_dir"`
	DBFile       string `json:"db_file" yaml:"db_file"`
	StrictStatus bool   `json:"strict_status" yaml:"strict_status"`
}

// Supported backend names.
const (
	BackendSQLite = "sqlite"
)

// DefaultDBFile is the database file name used when Config.DBFile is empty.
const DefaultDBFile = "catalog.db"

// Config validation errors.
var (
	ErrBackendEmpty   = errors.New("backend must not be empty")
	ErrBackendUnknown = errors.New("unknown backend")
	ErrDBFileInvalid  = errors.New("db file must be a plain file name")
)

// knownBackends lists the backends that Validate accepts.
var knownBackends = map[string]bool{
	BackendSQLite: true,
}

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure.
func (c Config) Validate() error {
	if c.Backend == "" {
		return ErrBackendEmpty
	}
	if !knownBackends[c.Backend] {
		return ErrBackendUnknown
	}
	if containsPathSeparator(c.DBFile) {
		return ErrDBFileInvalid
	}
	return nil
}

// GetDBFile returns the configured database file name or DefaultDBFile.
func (c Config) GetDBFile() string {
	if c.DBFile == "" {
		return DefaultDBFile
	}
	return c.DBFile
}

func containsPathSeparator(name string) bool {
	for _, r := range name {
		if r == '/' || r == '\\' {
			return true
		}
	}
	return false
}
