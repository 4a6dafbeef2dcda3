package cli

import (
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/heroes/internal/catalog"
	"github.com/roach88/heroes/internal/config"
	"github.com/roach88/heroes/internal/hero"
	"github.com/roach88/heroes/internal/store"
)

// flagKeys maps config keys to the command-line flags that override them.
// A command binds only the flags it defines.
var flagKeys = map[string]string{
	config.KeyLatency:    "latency",
	config.KeyPageSize:   "size",
	config.KeyMatchBrand: "match-brand",
	config.KeyCatalog:    "catalog",
	config.KeyVerbose:    "verbose",
}

// settings resolves the effective configuration for cmd: defaults, the
// config file, HEROES_* env vars, then any changed flags.
func (o *RootOptions) settings(cmd *cobra.Command) (*config.Config, error) {
	v, err := config.New(o.ConfigFile)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "loading config", err)
	}
	for key, name := range flagKeys {
		f := cmd.Flags().Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return nil, WrapExitError(ExitCommandError, "binding flag --"+name, err)
		}
	}

	cfg, err := config.Resolve(v)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "invalid config", err)
	}
	if o.Verbose {
		cfg.Verbose = true
	}
	return cfg, nil
}

// newLogger returns a text logger on w: debug level when verbose, warnings
// only otherwise.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// loadCatalog reads the catalog at path, or the embedded default if path
// is empty.
func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default(), nil
	}
	return catalog.Load(path)
}

// seedStore builds a store from the configured catalog, with CreatedAt
// offsets relative to now.
func seedStore(cfg *config.Config, now time.Time, logger *slog.Logger) (*store.Store, error) {
	cat, err := loadCatalog(cfg.Catalog)
	if err != nil {
		return nil, err
	}
	records, err := cat.Records(now)
	if err != nil {
		return nil, err
	}
	return store.New(store.WithRecords(records...), store.WithLogger(logger))
}

// heroRow is the table row for one hero.
func heroRow(r hero.Record) []string {
	return []string{r.ID, r.Name, r.Brand, r.Power}
}
