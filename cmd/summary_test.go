package cmd

import (
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/xolan/clientclock/internal/service"
)

func setupSummary(t *testing.T) *testEnv {
	t.Helper()
	env := setupTest(t, "")
	addClient("Beta")
	addClient("Acme")
	_, _ = env.services.Clients.AddTime("Acme", 2, 5)
	_, _ = env.services.Clients.AddTime("Beta", 0, 30)
	env.reset()
	return env
}

func TestPrintSummary_Text(t *testing.T) {
	env := setupSummary(t)

	printSummary("text")
	env.expectOK(t)

	want := "Acme, 125 minutes, 2.08h\nBeta, 30 minutes, 0.50h\n"
	if env.stdout.String() != want {
		t.Errorf("stdout = %q, expected %q", env.stdout.String(), want)
	}
}

func TestPrintSummary_DefaultsToConfig(t *testing.T) {
	env := setupSummary(t)

	printSummary("")
	env.expectOK(t)
	env.expectStdout(t, "Acme, 125 minutes, 2.08h")
}

func TestPrintSummary_Empty(t *testing.T) {
	env := setupTest(t, "")

	printSummary("text")
	env.expectOK(t)
	env.expectStdout(t, "No clients yet")
}

func TestPrintSummary_JSON(t *testing.T) {
	env := setupSummary(t)

	printSummary("json")
	env.expectOK(t)

	var result service.SummaryResult
	if err := json.Unmarshal(env.stdout.Bytes(), &result); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, env.stdout.String())
	}
	if len(result.Lines) != 2 || result.Lines[0].Name != "Acme" {
		t.Errorf("Lines = %+v", result.Lines)
	}
	if result.TotalMinutes != 155 {
		t.Errorf("TotalMinutes = %v, expected 155", result.TotalMinutes)
	}
	if !strings.Contains(env.stdout.String(), `"totalHours": "2.58"`) {
		t.Errorf("expected totalHours field, got:\n%s", env.stdout.String())
	}
}

func TestPrintSummary_YAML(t *testing.T) {
	env := setupSummary(t)

	printSummary("YAML")
	env.expectOK(t)

	var result service.SummaryResult
	if err := yaml.Unmarshal(env.stdout.Bytes(), &result); err != nil {
		t.Fatalf("invalid YAML output: %v\n%s", err, env.stdout.String())
	}
	if len(result.Lines) != 2 || result.Lines[1].Name != "Beta" || result.Lines[1].Minutes != 30 {
		t.Errorf("Lines = %+v", result.Lines)
	}
}

func TestPrintSummary_CSV(t *testing.T) {
	env := setupSummary(t)

	printSummary("csv")
	env.expectOK(t)

	records, err := csv.NewReader(env.stdout).ReadAll()
	if err != nil {
		t.Fatalf("invalid CSV output: %v", err)
	}
	want := [][]string{
		{"name", "minutes", "hours", "pending"},
		{"Acme", "125", "2.08", "0"},
		{"Beta", "30", "0.50", "0"},
	}
	if len(records) != len(want) {
		t.Fatalf("got %d rows, expected %d", len(records), len(want))
	}
	for i := range want {
		if strings.Join(records[i], ",") != strings.Join(want[i], ",") {
			t.Errorf("row %d = %v, expected %v", i, records[i], want[i])
		}
	}
}

func TestPrintSummary_UnknownFormat(t *testing.T) {
	env := setupSummary(t)

	printSummary("xml")
	env.expectFailure(t, "Unsupported format 'xml'")
	if env.stdout.Len() != 0 {
		t.Errorf("expected no stdout, got %q", env.stdout.String())
	}
}
