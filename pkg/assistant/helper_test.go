package assistant

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"
)

// setupTestCore opens a Core against a temp database with no remote
// provider configured and a fixed random seed.
func setupTestCore(t *testing.T) *Core {
	t.Helper()
	return setupTestCoreWithConfig(t, ProviderConfig{})
}

func setupTestCoreWithConfig(t *testing.T, cfg ProviderConfig) *Core {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	core, err := OpenWithOptions(Options{
		DBPath:    dbPath,
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		RandSeed:  1,
		Providers: &cfg,
	})
	if err != nil {
		t.Fatalf("open core: %v", err)
	}
	t.Cleanup(func() {
		_ = core.Close()
	})
	return core
}
