package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/xolan/clientclock/internal/config"
	"github.com/xolan/clientclock/internal/kv"
	"github.com/xolan/clientclock/internal/service"
)

// testEnv captures command output over in-memory services.
type testEnv struct {
	stdout   *bytes.Buffer
	stderr   *bytes.Buffer
	exitCode int
	services *service.Services
	store    kv.Store
}

// setupTest installs test deps reading stdin from input. The returned env
// records the last exit code passed to Exit.
func setupTest(t *testing.T, input string) *testEnv {
	t.Helper()
	return setupTestWithStore(t, input, kv.NewMemoryStore())
}

func setupTestWithStore(t *testing.T, input string, store kv.Store) *testEnv {
	t.Helper()

	svcs, err := service.NewServicesWithStore(store, "", config.DefaultConfig(), nil)
	if err != nil {
		t.Fatalf("NewServicesWithStore() returned error: %v", err)
	}

	env := &testEnv{
		stdout:   &bytes.Buffer{},
		stderr:   &bytes.Buffer{},
		services: svcs,
		store:    store,
	}
	SetDeps(&Deps{
		Stdout: env.stdout,
		Stderr: env.stderr,
		Stdin:  strings.NewReader(input),
		Exit:   func(code int) { env.exitCode = code },
		Services: func() (*service.Services, error) {
			return svcs, nil
		},
		StorePath: func() (string, error) {
			if fs, ok := store.(*kv.FileStore); ok {
				return fs.Path(), nil
			}
			return "", errNoStoreFile
		},
	})
	t.Cleanup(ResetDeps)
	return env
}

// reset clears captured output between steps of one test.
func (e *testEnv) reset() {
	e.stdout.Reset()
	e.stderr.Reset()
	e.exitCode = 0
}

func (e *testEnv) expectOK(t *testing.T) {
	t.Helper()
	if e.exitCode != 0 {
		t.Fatalf("exit code = %d, stderr: %s", e.exitCode, e.stderr.String())
	}
}

func (e *testEnv) expectFailure(t *testing.T, stderrContains string) {
	t.Helper()
	if e.exitCode != 1 {
		t.Errorf("exit code = %d, expected 1", e.exitCode)
	}
	if !strings.Contains(e.stderr.String(), stderrContains) {
		t.Errorf("stderr = %q, expected it to contain %q", e.stderr.String(), stderrContains)
	}
}

func (e *testEnv) expectStdout(t *testing.T, contains ...string) {
	t.Helper()
	out := e.stdout.String()
	for _, s := range contains {
		if !strings.Contains(out, s) {
			t.Errorf("stdout = %q, expected it to contain %q", out, s)
		}
	}
}
