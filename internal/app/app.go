// Package app holds application-wide constants and the data directory lookup.
package app

import (
	"path/filepath"

	"github.com/xolan/clientclock/internal/osutil"
)

const (
	// Name is the application name, used for the data directory.
	Name = "clientclock"
	// HomeEnv overrides the data directory when set.
	HomeEnv = "CLIENTCLOCK_HOME"
)

// Dir returns the clientclock data directory, creating it if needed.
// HomeEnv wins over <UserConfigDir>/clientclock.
func Dir() (string, error) {
	dir, ok := osutil.Provider.LookupEnv(HomeEnv)
	if !ok || dir == "" {
		configDir, err := osutil.Provider.UserConfigDir()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(configDir, Name)
	}

	if err := osutil.Provider.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}

// Path joins file onto Dir.
func Path(file string) (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, file), nil
}
