package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xolan/clientclock/internal/config"
	"github.com/xolan/clientclock/internal/kv"
	"github.com/xolan/clientclock/internal/service"
	"github.com/xolan/clientclock/internal/storage"
)

func setupFileTest(t *testing.T, input string) *testEnv {
	t.Helper()
	store := kv.NewFileStore(filepath.Join(t.TempDir(), kv.StoreFile))
	return setupTestWithStore(t, input, store)
}

func TestRestoreFromBackup(t *testing.T) {
	env := setupFileTest(t, "")
	addClient("Acme")
	_, _ = env.services.Clients.AddTime("Acme", 1, 0)
	deleteClient("Acme", true)
	env.expectOK(t)
	env.reset()

	restoreFromBackup(nil)
	env.expectOK(t)
	env.expectStdout(t, "Available backups:", "(most recent)", "Successfully restored from backup 1")

	c, err := env.services.Clients.Get("Acme")
	if err != nil {
		t.Fatalf("client not restored: %v", err)
	}
	if c.TimeWorked != 60 {
		t.Errorf("TimeWorked = %v, expected 60", c.TimeWorked)
	}
}

func TestRestoreFromBackup_CorruptStore(t *testing.T) {
	env := setupFileTest(t, "")
	addClient("Acme")
	_, _ = env.services.Clients.AddTime("Acme", 2, 0)
	addClient("Beta")
	deleteClient("Beta", true)
	env.expectOK(t)
	env.reset()

	storePath := env.store.(*kv.FileStore).Path()
	if err := os.WriteFile(storePath, []byte("{garbage"), 0644); err != nil {
		t.Fatal(err)
	}
	// Opening services fails on the corrupt file; restore must not need them
	deps.Services = func() (*service.Services, error) {
		return service.NewServicesWithStore(kv.NewFileStore(storePath), "", config.DefaultConfig(), nil)
	}

	restoreFromBackup(nil)
	env.expectOK(t)
	env.expectStdout(t, "Successfully restored from backup 1")

	c, err := env.services.Clients.Get("Acme")
	if err != nil {
		t.Fatalf("client not restored: %v", err)
	}
	if c.TimeWorked != 120 {
		t.Errorf("TimeWorked = %v, expected 120", c.TimeWorked)
	}
}

func TestRestoreFromBackup_NoBackups(t *testing.T) {
	env := setupFileTest(t, "")

	restoreFromBackup(nil)
	if env.exitCode != 1 {
		t.Errorf("exit code = %d, expected 1", env.exitCode)
	}
	env.expectStdout(t, "No backups available")
}

func TestRestoreFromBackup_InvalidNumber(t *testing.T) {
	tests := []struct {
		arg  string
		want string
	}{
		{"abc", "Invalid backup number 'abc'"},
		{"0", "Backup number must be between 1 and 3 (got 0)"},
		{"4", "Backup number must be between 1 and 3 (got 4)"},
	}

	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			env := setupFileTest(t, "")
			restoreFromBackup([]string{tt.arg})
			env.expectFailure(t, tt.want)
		})
	}
}

func TestRestoreFromBackup_Missing(t *testing.T) {
	env := setupFileTest(t, "")
	addClient("Acme")
	deleteClient("Acme", true)
	env.reset()

	restoreFromBackup([]string{"2"})
	env.expectFailure(t, "Backup 2 does not exist")
}

func TestRestoreFromBackup_MemoryStore(t *testing.T) {
	env := setupTest(t, "")

	restoreFromBackup(nil)
	env.expectFailure(t, "Backups are only available for the file store")
}

func TestValidateStore_Healthy(t *testing.T) {
	env := setupTest(t, "")
	addClient("Acme")
	_, _ = env.services.Timer.Start("Acme")
	env.reset()

	validateStore()
	env.expectOK(t)
	env.expectStdout(t, "Storage health", "Clients:        1", "Timers:         1", "Status:         OK")
}

func TestValidateStore_CorruptFile(t *testing.T) {
	env := setupFileTest(t, "")
	storePath := env.store.(*kv.FileStore).Path()
	if err := os.WriteFile(storePath, []byte("{garbage"), 0644); err != nil {
		t.Fatal(err)
	}

	validateStore()
	if env.exitCode != 1 {
		t.Errorf("exit code = %d, expected 1", env.exitCode)
	}
	env.expectStdout(t, "File:           "+storePath, "Status:         CORRUPT", "store file is corrupt", "clientclock restore")
	if env.stderr.Len() != 0 {
		t.Errorf("stderr = %q, expected the report on stdout only", env.stderr.String())
	}
}

func TestValidateStore_Problems(t *testing.T) {
	env := setupTest(t, "")
	addClient("Acme")
	_ = env.store.Set(storage.TimerKey("Acme"), "not json")
	_ = env.store.Set(storage.TimerKey("Gone"), `{"startTime":null,"paused":false,"pausedTime":0}`)
	env.reset()

	validateStore()
	if env.exitCode != 1 {
		t.Errorf("exit code = %d, expected 1", env.exitCode)
	}
	env.expectStdout(t, "Malformed value (1):", "Acme-timer:", "Timers without a client (1):", "  Gone", "clientclock restore")

	if strings.Contains(env.stdout.String(), "Status:         OK") {
		t.Error("unhealthy store reported OK")
	}
}
