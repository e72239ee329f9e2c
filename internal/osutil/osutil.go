// Package osutil wraps the OS calls used to locate the clientclock data
// directory so tests can substitute them.
package osutil

import "os"

// PathProvider resolves the user config directory and creates directories.
type PathProvider interface {
	UserConfigDir() (string, error)
	MkdirAll(path string, perm os.FileMode) error
	LookupEnv(key string) (string, bool)
}

// DefaultPathProvider delegates to the os package.
type DefaultPathProvider struct{}

func (DefaultPathProvider) UserConfigDir() (string, error) {
	return os.UserConfigDir()
}

func (DefaultPathProvider) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

func (DefaultPathProvider) LookupEnv(key string) (string, bool) {
	return os.LookupEnv(key)
}

// Provider is the process-wide provider. Tests swap it with SetProvider.
var Provider PathProvider = DefaultPathProvider{}

// SetProvider replaces Provider.
func SetProvider(p PathProvider) {
	Provider = p
}

// ResetProvider restores DefaultPathProvider.
func ResetProvider() {
	Provider = DefaultPathProvider{}
}
