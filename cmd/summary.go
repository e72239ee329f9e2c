package cmd

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/xolan/clientclock/internal/cli"
	"github.com/xolan/clientclock/internal/client"
	"github.com/xolan/clientclock/internal/config"
	"github.com/xolan/clientclock/internal/service"
)

var summaryFormatFlag string

// summaryCmd prints the aggregate per-client report
var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print one line per client with minutes and hours",
	Long: `Print the worked time of every client.

Formats:
  text   Acme, 125 minutes, 2.08h
  json   structured output with totals
  yaml   structured output with totals
  csv    name,minutes,hours,pending

The default format is taken from summary_format in config.toml.

Examples:
  clientclock summary
  clientclock summary --format csv > hours.csv`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		printSummary(summaryFormatFlag)
	},
}

func init() {
	rootCmd.AddCommand(summaryCmd)
	summaryCmd.Flags().StringVarP(&summaryFormatFlag, "format", "f", "",
		"output format: "+strings.Join(config.SummaryFormats, ", "))
}

func printSummary(format string) {
	svcs, ok := loadServices()
	if !ok {
		return
	}

	if format == "" {
		format = svcs.Config.Get().SummaryFormat
	}
	format = strings.ToLower(strings.TrimSpace(format))

	result, err := svcs.Clients.Summary()
	if err != nil {
		failWith(err, "")
		return
	}

	switch format {
	case "text":
		writeSummaryText(result)
	case "json":
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			fail("Failed to encode JSON", err, "")
			return
		}
		_, _ = fmt.Fprintln(deps.Stdout, string(data))
	case "yaml":
		data, err := yaml.Marshal(result)
		if err != nil {
			fail("Failed to encode YAML", err, "")
			return
		}
		_, _ = fmt.Fprint(deps.Stdout, string(data))
	case "csv":
		writeSummaryCSV(result)
	default:
		fail(fmt.Sprintf("Unsupported format '%s'", format), nil,
			"Supported formats: "+strings.Join(config.SummaryFormats, ", "))
	}
}

func writeSummaryText(result *service.SummaryResult) {
	if len(result.Lines) == 0 {
		_, _ = fmt.Fprintln(deps.Stdout, "No clients yet")
		return
	}
	for _, line := range result.Lines {
		_, _ = fmt.Fprintln(deps.Stdout, cli.FormatSummaryLine(line))
	}
}

func writeSummaryCSV(result *service.SummaryResult) {
	w := csv.NewWriter(deps.Stdout)
	if err := writeCSVRow(w, []string{"name", "minutes", "hours", "pending"}); err != nil {
		return
	}
	for _, line := range result.Lines {
		row := []string{line.Name, client.FormatNumber(line.Minutes), line.Hours, fmt.Sprintf("%d", line.Pending)}
		if err := writeCSVRow(w, row); err != nil {
			return
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		fail("Failed to write CSV", err, "")
	}
}
