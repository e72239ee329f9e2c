package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/xolan/clientclock/internal/app"
	"github.com/xolan/clientclock/internal/config"
	"github.com/xolan/clientclock/internal/osutil"
)

// MockPathProvider for testing config validation failure
type MockPathProvider struct {
	UserConfigDirFn func() (string, error)
	MkdirAllFn      func(path string, perm os.FileMode) error
}

func (m *MockPathProvider) UserConfigDir() (string, error) {
	if m.UserConfigDirFn != nil {
		return m.UserConfigDirFn()
	}
	return "", nil
}

func (m *MockPathProvider) MkdirAll(path string, perm os.FileMode) error {
	if m.MkdirAllFn != nil {
		return m.MkdirAllFn(path, perm)
	}
	return nil
}

func (m *MockPathProvider) LookupEnv(key string) (string, bool) {
	return "", false
}

// withArgs runs the CLI against a fresh data directory.
func withArgs(t *testing.T, args ...string) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv(app.HomeEnv, home)

	originalArgs := os.Args
	t.Cleanup(func() { os.Args = originalArgs })
	os.Args = append([]string{"clientclock"}, args...)
	return home
}

func TestRun_Success(t *testing.T) {
	withArgs(t, "summary")

	code := run()
	if code != 0 {
		t.Errorf("Expected exit code 0, got %d", code)
	}
}

func TestRun_ConfigDirFailure(t *testing.T) {
	defer osutil.ResetProvider()
	osutil.SetProvider(&MockPathProvider{
		UserConfigDirFn: func() (string, error) {
			return "", errors.New("permission denied")
		},
	})

	code := run()
	if code != 1 {
		t.Errorf("Expected exit code 1 for config directory failure, got %d", code)
	}
}

func TestRun_InvalidConfig(t *testing.T) {
	home := withArgs(t, "summary")
	path := filepath.Join(home, config.ConfigFile)
	if err := os.WriteFile(path, []byte("pause_accounting = \"sometimes\"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	code := run()
	if code != 1 {
		t.Errorf("Expected exit code 1 for invalid config, got %d", code)
	}
}

func TestRun_ExecuteError(t *testing.T) {
	withArgs(t, "--unknownflag")

	code := run()
	if code != 1 {
		t.Errorf("Expected exit code 1 for Execute error, got %d", code)
	}
}

func TestMain_CallsExitWithRunResult(t *testing.T) {
	withArgs(t, "summary")

	originalExit := exitFunc
	defer func() { exitFunc = originalExit }()

	capturedCode := -1
	exitFunc = func(code int) {
		capturedCode = code
	}

	main()

	if capturedCode != 0 {
		t.Errorf("Expected exit code 0, got %d", capturedCode)
	}
}
