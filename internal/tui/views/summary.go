package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/xolan/clientclock/internal/client"
	"github.com/xolan/clientclock/internal/service"
	"github.com/xolan/clientclock/internal/tui/ui"
)

// SummaryModel is the model for the summary view
type SummaryModel struct {
	services *service.Services
	styles   ui.Styles
	keys     ui.KeyMap

	// UI state
	width   int
	height  int
	result  *service.SummaryResult
	loading bool
	err     error
}

// NewSummaryModel creates a new summary view model
func NewSummaryModel(services *service.Services, styles ui.Styles, keys ui.KeyMap) SummaryModel {
	return SummaryModel{
		services: services,
		styles:   styles,
		keys:     keys,
		loading:  true,
	}
}

// summaryLoadedMsg is sent when the summary is loaded
type summaryLoadedMsg struct {
	result *service.SummaryResult
	err    error
}

// Init implements tea.Model
func (m SummaryModel) Init() tea.Cmd {
	return m.loadSummary()
}

// Update implements tea.Model
func (m SummaryModel) Update(msg tea.Msg) (SummaryModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Refresh) {
			return m, m.loadSummary()
		}

	case summaryLoadedMsg:
		m.loading = false
		m.err = msg.err
		m.result = msg.result

	case ui.ThemeChangedMsg:
		m.styles = msg.Styles
		return m, nil
	}

	return m, nil
}

// View implements tea.Model
func (m SummaryModel) View() string {
	var b strings.Builder

	b.WriteString(m.styles.ViewTitle.Render("Summary"))
	b.WriteString("\n")

	if m.loading {
		b.WriteString("Loading...")
		return b.String()
	}

	if m.err != nil {
		b.WriteString(m.styles.Error.Render(fmt.Sprintf("Error: %v", m.err)))
		return b.String()
	}

	if m.result == nil || len(m.result.Lines) == 0 {
		b.WriteString(m.styles.Hint.Render("No clients yet"))
		return b.String()
	}

	nameWidth := len("Client")
	for _, line := range m.result.Lines {
		nameWidth = max(nameWidth, len([]rune(line.Name)))
	}

	header := fmt.Sprintf("%s %10s %8s", padCell("Client", nameWidth), "Minutes", "Hours")
	b.WriteString(m.styles.Header.Render(header))
	b.WriteString("\n")
	for _, line := range m.result.Lines {
		b.WriteString(fmt.Sprintf("%s %10s %8s\n",
			padCell(line.Name, nameWidth), client.FormatNumber(line.Minutes), line.Hours))
	}

	b.WriteString(renderRule(m.width))
	b.WriteString(m.styles.Value.Render(fmt.Sprintf("%s %10s %8s",
		padCell("Total", nameWidth), client.FormatNumber(m.result.TotalMinutes), m.result.TotalHours)))
	b.WriteString("\n")

	return b.String()
}

// SetSize sets the view dimensions
func (m *SummaryModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// loadSummary creates a command to load the summary
func (m SummaryModel) loadSummary() tea.Cmd {
	return func() tea.Msg {
		result, err := m.services.Clients.Summary()
		return summaryLoadedMsg{result: result, err: err}
	}
}
