package types

import "errors"

// Config holds backend selection and parameters for Store.Attach.
type Config struct {
	Backend string `json:"backend" yaml:"backend"`
	DataDir string `json:"data_dir" yaml:"data_dir"`

	// Sync selects when JSONL files are rewritten: SyncImmediate (default)
	// after every insert, or SyncOnClose once on Detach.
	Sync string `json:"sync,omitempty" yaml:"sync,omitempty"`
}

// Supported backend names.
const (
	BackendSQLite = "sqlite"
)

// JSONL sync strategies.
const (
	SyncImmediate = "immediate"
	SyncOnClose   = "on_close"
)

// Config validation errors.
var (
	ErrBackendEmpty        = errors.New("backend must not be empty")
	ErrBackendUnknown      = errors.New("unknown backend")
	ErrSyncStrategyUnknown = errors.New("unknown sync strategy")
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
	switch c.Sync {
	case "", SyncImmediate, SyncOnClose:
	default:
		return ErrSyncStrategyUnknown
	}
	return nil
}

// SyncStrategy returns the effective sync strategy.
func (c Config) SyncStrategy() string {
	if c.Sync == "" {
		return SyncImmediate
	}
	return c.Sync
}
