package service

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/xolan/clientclock/internal/client"
	"github.com/xolan/clientclock/internal/config"
	"github.com/xolan/clientclock/internal/kv"
	"github.com/xolan/clientclock/internal/storage"
	"github.com/xolan/clientclock/internal/timer"
)

func yes(string) bool { return true }
func no(string) bool  { return false }

// seedPending stores a client with the given worked time and pending minutes.
func seedPending(t *testing.T, svcs *Services, name string, worked float64, pending ...float64) {
	t.Helper()
	clients, err := svcs.Storage.LoadClients()
	if err != nil {
		t.Fatal(err)
	}
	c := client.New(name)
	c.TimeWorked = worked
	for _, m := range pending {
		c.PotentialTimes = append(c.PotentialTimes, client.PendingTime{Minutes: m})
	}
	clients[name] = c
	if err := svcs.Storage.SaveClients(clients); err != nil {
		t.Fatal(err)
	}
}

func TestClientService_Add(t *testing.T) {
	svcs, _, _ := newTestServices(t, "")

	c, err := svcs.Clients.Add("  Acme  ")
	if err != nil {
		t.Fatalf("Add() returned error: %v", err)
	}
	if c.Name != "Acme" || c.TimeWorked != 0 || len(c.PotentialTimes) != 0 {
		t.Errorf("Add() = %+v, expected fresh client named Acme", c)
	}

	got, err := svcs.Clients.Get("Acme")
	if err != nil {
		t.Fatalf("Get() returned error: %v", err)
	}
	if got.Name != "Acme" {
		t.Errorf("Get() = %+v", got)
	}
}

func TestClientService_Add_Duplicate(t *testing.T) {
	svcs, store, _ := newTestServices(t, "")
	seedPending(t, svcs, "Acme", 42, 5)
	before, _, _ := store.Get(storage.ClientsKey)

	_, err := svcs.Clients.Add("Acme")
	if !errors.Is(err, ErrClientExists) {
		t.Fatalf("Add() error = %v, expected ErrClientExists", err)
	}
	after, _, _ := store.Get(storage.ClientsKey)
	if before != after {
		t.Errorf("duplicate Add changed the registry:\n before %s\n after  %s", before, after)
	}
}

func TestClientService_Add_EmptyName(t *testing.T) {
	svcs, _, _ := newTestServices(t, "")
	for _, name := range []string{"", "   ", "\t\n"} {
		if _, err := svcs.Clients.Add(name); !errors.Is(err, ErrEmptyName) {
			t.Errorf("Add(%q) error = %v, expected ErrEmptyName", name, err)
		}
	}
}

func TestClientService_List_Sorted(t *testing.T) {
	svcs, _, _ := newTestServices(t, "")
	for _, name := range []string{"Zeta", "Acme", "Mid"} {
		if _, err := svcs.Clients.Add(name); err != nil {
			t.Fatal(err)
		}
	}

	list, err := svcs.Clients.List()
	if err != nil {
		t.Fatalf("List() returned error: %v", err)
	}
	var names []string
	for _, c := range list {
		names = append(names, c.Name)
	}
	if !reflect.DeepEqual(names, []string{"Acme", "Mid", "Zeta"}) {
		t.Errorf("List() order = %v", names)
	}
}

func TestClientService_Get_NotFound(t *testing.T) {
	svcs, _, _ := newTestServices(t, "")
	if _, err := svcs.Clients.Get("Ghost"); !errors.Is(err, ErrClientNotFound) {
		t.Errorf("Get() error = %v, expected ErrClientNotFound", err)
	}
}

func TestClientService_AddTime(t *testing.T) {
	tests := []struct {
		name    string
		hours   float64
		minutes float64
		want    float64
		wantErr error
	}{
		{"hours and minutes", 1, 30, 90, nil},
		{"minutes only", 0, 45, 45, nil},
		{"fractional hours", 1.5, 0, 90, nil},
		{"zero", 0, 0, 0, nil},
		{"negative hours", -1, 0, 0, ErrNegativeTime},
		{"negative minutes", 0, -5, 0, ErrNegativeTime},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svcs, _, _ := newTestServices(t, "")
			_, _ = svcs.Clients.Add("Acme")

			c, err := svcs.Clients.AddTime("Acme", tt.hours, tt.minutes)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("AddTime() error = %v, expected %v", err, tt.wantErr)
			}
			got, _ := svcs.Clients.Get("Acme")
			if got.TimeWorked != tt.want {
				t.Errorf("TimeWorked = %v, expected %v", got.TimeWorked, tt.want)
			}
			if err == nil && c.TimeWorked != tt.want {
				t.Errorf("returned TimeWorked = %v, expected %v", c.TimeWorked, tt.want)
			}
		})
	}
}

func TestClientService_AddTime_Accumulates(t *testing.T) {
	svcs, _, _ := newTestServices(t, "")
	_, _ = svcs.Clients.Add("Acme")
	_, _ = svcs.Clients.AddTime("Acme", 1, 0)
	_, _ = svcs.Clients.AddTime("Acme", 0, 15)

	got, _ := svcs.Clients.Get("Acme")
	if got.TimeWorked != 75 {
		t.Errorf("TimeWorked = %v, expected 75", got.TimeWorked)
	}

	if _, err := svcs.Clients.AddTime("Ghost", 1, 0); !errors.Is(err, ErrClientNotFound) {
		t.Errorf("AddTime() on unknown client error = %v, expected ErrClientNotFound", err)
	}
}

func TestClientService_ConfirmPending(t *testing.T) {
	svcs, _, _ := newTestServices(t, "")
	seedPending(t, svcs, "Acme", 10, 125, 3, 7)

	c, added, err := svcs.Clients.ConfirmPending("Acme", 0)
	if err != nil {
		t.Fatalf("ConfirmPending() returned error: %v", err)
	}
	if added != 125 {
		t.Errorf("added = %v, expected 125", added)
	}
	if c.TimeWorked != 135 {
		t.Errorf("TimeWorked = %v, expected 135", c.TimeWorked)
	}
	want := []client.PendingTime{{Minutes: 3}, {Minutes: 7}}
	if !reflect.DeepEqual(c.PotentialTimes, want) {
		t.Errorf("PotentialTimes = %v, expected %v", c.PotentialTimes, want)
	}

	stored, _ := svcs.Clients.Get("Acme")
	if !reflect.DeepEqual(stored, c) {
		t.Errorf("stored client %+v differs from returned %+v", stored, c)
	}
}

func TestClientService_PendingIndexOutOfRange(t *testing.T) {
	svcs, store, _ := newTestServices(t, "")
	seedPending(t, svcs, "Acme", 0, 5)
	before, _, _ := store.Get(storage.ClientsKey)

	for _, idx := range []int{-1, 1, 10} {
		if _, _, err := svcs.Clients.ConfirmPending("Acme", idx); !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("ConfirmPending(%d) error = %v, expected ErrIndexOutOfRange", idx, err)
		}
		if _, _, err := svcs.Clients.DiscardPending("Acme", idx); !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("DiscardPending(%d) error = %v, expected ErrIndexOutOfRange", idx, err)
		}
	}
	after, _, _ := store.Get(storage.ClientsKey)
	if before != after {
		t.Error("out of range index changed the registry")
	}
}

func TestClientService_DiscardPending_PreservesOrder(t *testing.T) {
	svcs, _, _ := newTestServices(t, "")
	seedPending(t, svcs, "Acme", 20, 1, 2, 3, 4)

	c, removed, err := svcs.Clients.DiscardPending("Acme", 2)
	if err != nil {
		t.Fatalf("DiscardPending() returned error: %v", err)
	}
	if removed.Minutes != 3 {
		t.Errorf("removed = %v, expected 3", removed.Minutes)
	}
	want := []client.PendingTime{{Minutes: 1}, {Minutes: 2}, {Minutes: 4}}
	if !reflect.DeepEqual(c.PotentialTimes, want) {
		t.Errorf("PotentialTimes = %v, expected %v", c.PotentialTimes, want)
	}
	if c.TimeWorked != 20 {
		t.Errorf("DiscardPending changed TimeWorked to %v", c.TimeWorked)
	}
}

func TestClientService_Delete(t *testing.T) {
	svcs, store, _ := newTestServices(t, "")
	_, _ = svcs.Clients.Add("Acme")
	_, _ = svcs.Clients.Add("Beta")
	if _, err := svcs.Timer.Start("Acme"); err != nil {
		t.Fatal(err)
	}

	var asked string
	err := svcs.Clients.Delete("Acme", func(prompt string) bool {
		asked = prompt
		return true
	})
	if err != nil {
		t.Fatalf("Delete() returned error: %v", err)
	}
	if asked != DeletePrompt {
		t.Errorf("prompt = %q, expected %q", asked, DeletePrompt)
	}
	if _, err := svcs.Clients.Get("Acme"); !errors.Is(err, ErrClientNotFound) {
		t.Errorf("deleted client still present: %v", err)
	}
	if _, ok, _ := store.Get(storage.TimerKey("Acme")); ok {
		t.Error("deleted client's timer key still present")
	}
	if _, err := svcs.Clients.Get("Beta"); err != nil {
		t.Errorf("other client removed: %v", err)
	}
}

func TestClientService_Delete_Declined(t *testing.T) {
	svcs, store, _ := newTestServices(t, "")
	seedPending(t, svcs, "Acme", 30, 5)
	before, _, _ := store.Get(storage.ClientsKey)

	if err := svcs.Clients.Delete("Acme", no); !errors.Is(err, ErrCancelled) {
		t.Fatalf("Delete() error = %v, expected ErrCancelled", err)
	}
	after, _, _ := store.Get(storage.ClientsKey)
	if before != after {
		t.Error("declined Delete changed the registry")
	}
}

func TestClientService_Delete_NotFound(t *testing.T) {
	svcs, _, _ := newTestServices(t, "")
	asked := false
	err := svcs.Clients.Delete("Ghost", func(string) bool {
		asked = true
		return true
	})
	if !errors.Is(err, ErrClientNotFound) {
		t.Errorf("Delete() error = %v, expected ErrClientNotFound", err)
	}
	if asked {
		t.Error("Delete() should not prompt for an unknown client")
	}
}

func TestClientService_ClearAll(t *testing.T) {
	svcs, _, _ := newTestServices(t, "")
	seedPending(t, svcs, "Acme", 30, 5)
	seedPending(t, svcs, "Beta", 99)

	var asked string
	err := svcs.Clients.ClearAll(func(prompt string) bool {
		asked = prompt
		return true
	})
	if err != nil {
		t.Fatalf("ClearAll() returned error: %v", err)
	}
	if asked != ClearPrompt {
		t.Errorf("prompt = %q, expected %q", asked, ClearPrompt)
	}

	list, _ := svcs.Clients.List()
	for _, c := range list {
		if c.TimeWorked != 0 {
			t.Errorf("%s TimeWorked = %v, expected 0", c.Name, c.TimeWorked)
		}
	}
	acme, _ := svcs.Clients.Get("Acme")
	if len(acme.PotentialTimes) != 1 {
		t.Errorf("ClearAll() should keep pending entries, got %v", acme.PotentialTimes)
	}
}

func TestClientService_ClearAll_Declined(t *testing.T) {
	svcs, _, _ := newTestServices(t, "")
	seedPending(t, svcs, "Acme", 30)

	if err := svcs.Clients.ClearAll(no); !errors.Is(err, ErrCancelled) {
		t.Fatalf("ClearAll() error = %v, expected ErrCancelled", err)
	}
	acme, _ := svcs.Clients.Get("Acme")
	if acme.TimeWorked != 30 {
		t.Errorf("declined ClearAll changed TimeWorked to %v", acme.TimeWorked)
	}
}

func TestClientService_NilConfirmerAgrees(t *testing.T) {
	svcs, _, _ := newTestServices(t, "")
	seedPending(t, svcs, "Acme", 30)

	if err := svcs.Clients.ClearAll(nil); err != nil {
		t.Fatalf("ClearAll(nil) returned error: %v", err)
	}
	if err := svcs.Clients.Delete("Acme", nil); err != nil {
		t.Fatalf("Delete(nil) returned error: %v", err)
	}
}

func TestClientService_Summary(t *testing.T) {
	svcs, _, _ := newTestServices(t, "")
	seedPending(t, svcs, "Beta", 90, 5)
	seedPending(t, svcs, "Acme", 125)

	result, err := svcs.Clients.Summary()
	if err != nil {
		t.Fatalf("Summary() returned error: %v", err)
	}
	want := []client.Summary{
		{Name: "Acme", Minutes: 125, Hours: "2.08", Pending: 0},
		{Name: "Beta", Minutes: 90, Hours: "1.50", Pending: 1},
	}
	if !reflect.DeepEqual(result.Lines, want) {
		t.Errorf("Lines = %+v, expected %+v", result.Lines, want)
	}
	if result.TotalMinutes != 215 || result.TotalHours != "3.58" {
		t.Errorf("totals = %v / %s, expected 215 / 3.58", result.TotalMinutes, result.TotalHours)
	}
}

func TestClientService_BackupBeforeDestructiveOps(t *testing.T) {
	path := filepath.Join(t.TempDir(), kv.StoreFile)
	svcs, err := NewServicesWithStore(kv.NewFileStore(path), "", config.DefaultConfig(), nil)
	if err != nil {
		t.Fatal(err)
	}
	_, _ = svcs.Clients.Add("Acme")
	_, _ = svcs.Clients.AddTime("Acme", 1, 0)

	if err := svcs.Clients.ClearAll(yes); err != nil {
		t.Fatal(err)
	}
	if err := svcs.Clients.Delete("Acme", yes); err != nil {
		t.Fatal(err)
	}

	backups, err := kv.ListBackups(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != 2 {
		t.Fatalf("expected 2 backups, got %d", len(backups))
	}

	// The older backup predates ClearAll and still holds the worked hour.
	if err := kv.RestoreBackup(path, 2); err != nil {
		t.Fatal(err)
	}
	restored, err := storage.New(kv.NewFileStore(path)).LoadClients()
	if err != nil {
		t.Fatal(err)
	}
	if restored["Acme"].TimeWorked != 60 {
		t.Errorf("restored TimeWorked = %v, expected 60", restored["Acme"].TimeWorked)
	}
}

func TestClientService_StopAddsPendingNotWorked(t *testing.T) {
	svcs, _, clock := newTestServices(t, "")
	_, _ = svcs.Clients.Add("Acme")
	_, _ = svcs.Timer.Start("Acme")
	clock.Advance(61 * time.Minute)

	if _, err := svcs.Timer.Stop("Acme"); err != nil {
		t.Fatal(err)
	}
	c, _ := svcs.Clients.Get("Acme")
	if c.TimeWorked != 0 {
		t.Errorf("Stop() changed TimeWorked to %v", c.TimeWorked)
	}
	if !reflect.DeepEqual(c.PotentialTimes, []client.PendingTime{{Minutes: 61}}) {
		t.Errorf("PotentialTimes = %v, expected [{61}]", c.PotentialTimes)
	}

	status, _ := svcs.Timer.Status("Acme")
	if status.Phase != timer.PhaseIdle {
		t.Errorf("Phase after Stop = %v, expected idle", status.Phase)
	}
}
