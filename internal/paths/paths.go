// Package paths decides where the game catalog keeps config.yaml and its
// database file. An explicit flag always wins, then the value from
// config.yaml (data only), then a CATALOG_* environment variable, and last a
// per-user directory named "gamecatalog".
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

const appDirName = "gamecatalog"

// Environment overrides.
const (
	EnvConfigDir = "CATALOG_CONFIG_DIR"
	EnvDataDir   = "CATALOG_DATA_DIR"
)

// platformDir is swapped out by tests.
var platformDir = struct {
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// DefaultConfigDir is $XDG_CONFIG_HOME/gamecatalog on Linux, falling back to
// ~/.config/gamecatalog. Elsewhere it is os.UserConfigDir()/gamecatalog.
func DefaultConfigDir() (string, error) {
	return userDir("XDG_CONFIG_HOME", ".config")
}

// DefaultDataDir is $XDG_DATA_HOME/gamecatalog on Linux, falling back to
// ~/.local/share/gamecatalog. macOS and Windows have no separate data root,
// so the database sits next to config.yaml there.
func DefaultDataDir() (string, error) {
	return userDir("XDG_DATA_HOME", ".local", "share")
}

// userDir joins appDirName onto the Linux XDG root named by xdgEnv, or onto
// home/linuxFallback when the variable is unset.
func userDir(xdgEnv string, linuxFallback ...string) (string, error) {
	if runtime.GOOS != "linux" {
		dir, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, appDirName), nil
	}

	if root := os.Getenv(xdgEnv); root != "" {
		return filepath.Join(root, appDirName), nil
	}
	home, err := platformDir.homeDir()
	if err != nil {
		return "", err
	}
	parts := append([]string{home}, linuxFallback...)
	return filepath.Join(append(parts, appDirName)...), nil
}

// ResolveConfigDir picks the config directory from flag, then
// CATALOG_CONFIG_DIR, then DefaultConfigDir. Overrides are made absolute.
func ResolveConfigDir(flag string) (string, error) {
	return resolve(DefaultConfigDir, flag, os.Getenv(EnvConfigDir))
}

// ResolveDataDir picks the data directory from flag, then the data_dir value
// read from config.yaml, then CATALOG_DATA_DIR, then DefaultDataDir.
func ResolveDataDir(flag, configYAMLValue string) (string, error) {
	return resolve(DefaultDataDir, flag, configYAMLValue, os.Getenv(EnvDataDir))
}

// resolve returns the first non-empty override as an absolute path, or the
// platform default when every override is empty.
func resolve(platformDefault func() (string, error), overrides ...string) (string, error) {
	for _, dir := range overrides {
		if dir != "" {
			return filepath.Abs(dir)
		}
	}
	return platformDefault()
}
