package assistant

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

const defaultProviderTimeout = 20 * time.Second

// Options controls Core initialization.
type Options struct {
	DBPath          string
	Logger          *slog.Logger
	ProviderTimeout time.Duration
	// RandSeed seeds the random source used by the pattern provider and the
	// chart series generator. Zero means seed from the clock.
	RandSeed int64
	// Providers overrides the environment-derived provider configuration.
	Providers *ProviderConfig
}

// Core provides access to the assistant business logic and storage.
type Core struct {
	db       *sql.DB
	logger   *slog.Logger
	registry *Registry
	timeout  time.Duration
	dbPath   string

	// selected is the current provider mode. Single writer (the UI toggle);
	// the orchestrator snapshots it at the start of each turn.
	selMu    sync.Mutex
	selected string

	rngMu sync.Mutex
	rng   *rand.Rand
}

// Open initializes a Core using the provided database path.
func Open(dbPath string) (*Core, error) {
	return OpenWithOptions(Options{DBPath: dbPath})
}

// OpenWithOptions initializes a Core using the provided options.
func OpenWithOptions(opts Options) (*Core, error) {
	if opts.DBPath == "" {
		return nil, errors.New("db path is required")
	}
	cleanPath := filepath.Clean(opts.DBPath)
	if err := os.MkdirAll(filepath.Dir(cleanPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	db, err := sql.Open("sqlite", cleanPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// SQLite performs best with a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		logger.Warn("pragma busy_timeout failed", "err", err)
	}

	if err := initDatabase(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init database: %w", err)
	}

	seed := opts.RandSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	c := &Core{
		db:      db,
		logger:  logger,
		timeout: defaultDuration(opts.ProviderTimeout, defaultProviderTimeout),
		dbPath:  cleanPath,
		rng:     rand.New(rand.NewSource(seed)),
	}

	cfg := opts.Providers
	if cfg == nil {
		envCfg := providerConfigFromEnv()
		cfg = &envCfg
	}

	settings, err := c.GetSettings()
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("load settings: %w", err)
	}
	c.registry = newRegistry(c, applyModelOverrides(*cfg, settings))
	c.selected = settings.Provider
	if _, ok := c.registry.Get(c.selected); !ok {
		c.selected = defaultSelectedProvider
	}

	return c, nil
}

// Close releases database resources.
func (c *Core) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.Close()
}

// DBPath returns the underlying database path.
func (c *Core) DBPath() string {
	return c.dbPath
}

// Logger returns the core's logger.
func (c *Core) Logger() *slog.Logger {
	if c == nil || c.logger == nil {
		return slog.Default()
	}
	return c.logger
}

// Registry returns the provider registry.
func (c *Core) Registry() *Registry {
	return c.registry
}

// CurrentProvider returns the currently selected provider name.
func (c *Core) CurrentProvider() string {
	c.selMu.Lock()
	defer c.selMu.Unlock()
	return c.selected
}

// SetProvider switches the current provider mode and persists the choice.
func (c *Core) SetProvider(name string) error {
	if _, ok := c.registry.Get(name); !ok {
		return NewError(ErrCodeInvalidInput, fmt.Sprintf("unknown provider: %s", name))
	}
	c.selMu.Lock()
	c.selected = name
	c.selMu.Unlock()

	settings, err := c.GetSettings()
	if err != nil {
		return err
	}
	settings.Provider = name
	_, err = c.SetSettings(settings)
	if err == nil {
		c.logger.Info("provider mode changed", "provider", name)
	}
	return err
}

// ListProviders reports all registry entries with their configured and
// selected flags.
func (c *Core) ListProviders() []ProviderInfo {
	return c.registry.List(c.CurrentProvider())
}

func (c *Core) randFloat() float64 {
	c.rngMu.Lock()
	defer c.rngMu.Unlock()
	return c.rng.Float64()
}

func (c *Core) randIntn(n int) int {
	c.rngMu.Lock()
	defer c.rngMu.Unlock()
	return c.rng.Intn(n)
}

func defaultDuration(v time.Duration, fallback time.Duration) time.Duration {
	if v <= 0 {
		return fallback
	}
	return v
}
