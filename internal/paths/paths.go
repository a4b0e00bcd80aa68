// Package paths resolves the configuration and data directories the
// ifcmodel CLI reads config.yaml from and writes exports to.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// appName is the directory name used under platform config and data roots.
const appName = "ifcmodel"

// DefaultDataDirName is the CWD-relative data directory used when nothing
// else is configured.
const DefaultDataDirName = ".ifcmodel-db"

// ExportDBName is the export database file inside the data directory.
const ExportDBName = "exports.db"

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "IFCMODEL_CONFIG_DIR"
	EnvDataDir   = "IFCMODEL_DATA_DIR"
)

// platformDir holds platform-detection functions that can be overridden in tests.
var platformDir = struct {
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// DefaultConfigDir returns the platform-specific default configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/ifcmodel (fallback ~/.config/ifcmodel)
// macOS:   ~/Library/Application Support/ifcmodel
// Windows: %APPDATA%/ifcmodel
func DefaultConfigDir() (string, error) {
	if runtime.GOOS == "linux" {
		return xdgDir("XDG_CONFIG_HOME", ".config")
	}
	dir, err := platformDir.userConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appName), nil
}

// xdgDir returns $env/ifcmodel, or ~/fallback/ifcmodel when env is unset.
func xdgDir(env, fallback string) (string, error) {
	if v := os.Getenv(env); v != "" {
		return filepath.Join(v, appName), nil
	}
	home, err := platformDir.homeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, fallback, appName), nil
}

// ResolveConfigDir returns the configuration directory following the
// precedence chain: flag > IFCMODEL_CONFIG_DIR env > DefaultConfigDir().
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultConfigDir()
}

// ResolveDataDir returns the data directory following the precedence chain:
// flag > configValue > IFCMODEL_DATA_DIR env > $(CWD)/.ifcmodel-db.
func ResolveDataDir(flag, configValue string) (string, error) {
	for _, v := range []string{flag, configValue, os.Getenv(EnvDataDir)} {
		if v != "" {
			return filepath.Abs(v)
		}
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, DefaultDataDirName), nil
}

// ExportDBPath returns the export database path inside dataDir.
func ExportDBPath(dataDir string) string {
	return filepath.Join(dataDir, ExportDBName)
}
