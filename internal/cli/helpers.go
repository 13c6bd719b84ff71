package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/mesh-intelligence/nine/internal/factory"
	"github.com/mesh-intelligence/nine/internal/play"
	"github.com/mesh-intelligence/nine/pkg/sqlite"
	"github.com/mesh-intelligence/nine/pkg/types"
)

// attachStore resolves the data directory, creates a SQLite store, and
// attaches it. The caller must defer Detach.
func (a *app) attachStore() (types.Store, error) {
	cfg, err := a.storeConfig()
	if err != nil {
		return nil, userError(err)
	}
	backend := sqlite.NewBackend()
	if err := backend.Attach(cfg); err != nil {
		return nil, sysError(fmt.Errorf("attach backend: %w", err))
	}
	a.logger.Debug("store attached")
	return backend, nil
}

// detach closes store, turning a failure into a system error when no other
// error is pending.
func detach(store types.Store, errp *error) {
	if err := store.Detach(); err != nil && *errp == nil {
		*errp = sysError(fmt.Errorf("detach backend: %w", err))
	}
}

func (a *app) newFactory(store types.Store) *factory.Factory {
	return factory.New(store,
		factory.WithOptions(a.generatorOptions()),
		factory.WithSeed(a.config.GetUint64(cfgKeySeed)),
		factory.WithConcurrency(a.config.GetInt(cfgKeyConcurrency)),
		factory.WithLogger(a.logger.Named("factory")),
		factory.WithMetrics(a.metrics),
	)
}

func (a *app) newService(store types.Store) *play.Service {
	return play.New(store, a.newFactory(store), a.logger.Named("play"), a.metrics)
}

// classify maps domain errors to exit codes.
func classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, types.ErrInvalidCoordinate),
		errors.Is(err, types.ErrNotFound),
		errors.Is(err, play.ErrLocked):
		return userError(err)
	default:
		return sysError(err)
	}
}

// parseIndex parses a page or cell argument.
func parseIndex(name, arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 0 {
		return 0, userError(fmt.Errorf("invalid %s %q: must be a non-negative integer", name, arg))
	}
	return n, nil
}

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return sysError(fmt.Errorf("marshal JSON: %w", err))
	}
	fmt.Fprintln(w, string(out))
	return nil
}
