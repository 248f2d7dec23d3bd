package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestRuntimePort(t *testing.T) {
	orig := GetRuntimePort()
	defer SetRuntimePort(orig)

	SetRuntimePort(0)
	if got := GetRuntimePort(); got != orig {
		t.Fatalf("expected port to remain %d, got %d", orig, got)
	}

	SetRuntimePort(9090)
	if got := GetRuntimePort(); got != 9090 {
		t.Fatalf("expected port 9090, got %d", got)
	}
}

func TestRuntimeDataDirAndEnv(t *testing.T) {
	SetRuntimeDataDir("")
	defer SetRuntimeDataDir("")

	tmp := t.TempDir()
	SetRuntimeDataDir(tmp)
	dir, err := GetDataDir()
	if err != nil {
		t.Fatalf("GetDataDir: %v", err)
	}
	if dir != tmp {
		t.Fatalf("expected runtime dir %q, got %q", tmp, dir)
	}

	SetRuntimeDataDir("")
	tmpEnv := filepath.Join(t.TempDir(), "data")
	t.Setenv("PORTFOLIO_CHAT_DATA_DIR", tmpEnv)
	dir, err = GetDataDir()
	if err != nil {
		t.Fatalf("GetDataDir env: %v", err)
	}
	if dir != tmpEnv {
		t.Fatalf("expected env dir %q, got %q", tmpEnv, dir)
	}
}

func TestGetDBPathEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.sqlite")
	t.Setenv("PORTFOLIO_CHAT_DB_PATH", path)
	got, err := GetDBPath()
	if err != nil {
		t.Fatalf("GetDBPath: %v", err)
	}
	if got != path {
		t.Fatalf("expected %q, got %q", path, got)
	}
}

func TestIsMacOSWindows(t *testing.T) {
	if IsMacOS() != (runtime.GOOS == "darwin") {
		t.Fatalf("IsMacOS mismatch")
	}
	if IsWindows() != (runtime.GOOS == "windows") {
		t.Fatalf("IsWindows mismatch")
	}
}

func TestLoadSaveConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))

	cfg := UserConfig{
		DBName:  "my.db",
		DataDir: filepath.Join(home, "data"),
	}
	if err := SaveUserConfig(cfg); err != nil {
		t.Fatalf("SaveUserConfig: %v", err)
	}

	loaded := LoadUserConfig()
	if loaded.DBName != cfg.DBName || loaded.DataDir != cfg.DataDir {
		t.Fatalf("loaded config mismatch: %+v", loaded)
	}
}

func TestLoadUserConfigDefaultsDBName(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))

	if err := SaveUserConfig(UserConfig{DBName: "  "}); err != nil {
		t.Fatalf("SaveUserConfig: %v", err)
	}
	loaded := LoadUserConfig()
	if loaded.DBName != defaultDBName {
		t.Fatalf("expected default db name, got %q", loaded.DBName)
	}
}

func TestLegacyConfigPath(t *testing.T) {
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	tmp := t.TempDir()
	if err := os.Chdir(tmp); err != nil {
		t.Fatalf("Chdir: %v", err)
	}
	defer func() {
		_ = os.Chdir(cwd)
	}()

	path := filepath.Join(tmp, "config.json")
	if err := os.WriteFile(path, []byte(`{"db_name":"legacy.db"}`), 0o644); err != nil {
		t.Fatalf("write legacy config: %v", err)
	}

	legacy := legacyConfigPath()
	if legacy == "" {
		t.Fatalf("expected legacy path, got empty")
	}
	legacyEval, legacyErr := filepath.EvalSymlinks(legacy)
	pathEval, pathErr := filepath.EvalSymlinks(path)
	if legacyErr == nil && pathErr == nil {
		if legacyEval != pathEval {
			t.Fatalf("expected legacy path %q, got %q", pathEval, legacyEval)
		}
	} else if legacy != path {
		t.Fatalf("expected legacy path %q, got %q", path, legacy)
	}
}

func TestGetDBPathFromConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))

	cfg := UserConfig{DBName: "config.db", DataDir: filepath.Join(home, "data")}
	if err := SaveUserConfig(cfg); err != nil {
		t.Fatalf("SaveUserConfig: %v", err)
	}
	path, err := GetDBPath()
	if err != nil {
		t.Fatalf("GetDBPath: %v", err)
	}
	if path != filepath.Join(cfg.DataDir, cfg.DBName) {
		t.Fatalf("expected db path %q, got %q", filepath.Join(cfg.DataDir, cfg.DBName), path)
	}
}
