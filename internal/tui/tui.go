// Package tui provides the Terminal User Interface for clientclock.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/xolan/clientclock/internal/service"
	"github.com/xolan/clientclock/internal/tui/ui"
	"github.com/xolan/clientclock/internal/tui/views"
)

// Tab represents a view tab
type Tab int

const (
	TabClients Tab = iota
	TabSummary
	TabConfig
)

var tabNames = []string{"Clients", "Summary", "Config"}

// tickInterval is how often timers are observed and redrawn.
const tickInterval = time.Second

// Model is the root TUI model
type Model struct {
	services *service.Services

	// UI state
	activeTab Tab
	width     int
	height    int
	showHelp  bool

	// View models
	clientsView views.ClientsModel
	summaryView views.SummaryModel
	configView  views.ConfigModel

	// Theme and styles
	themeProvider *ui.ThemeProvider
	styles        ui.Styles
	keys          ui.KeyMap
}

// New creates a new TUI model
func New(services *service.Services) Model {
	themeProvider := ui.NewThemeProvider(services.Config.Get().Theme)
	styles := themeProvider.Styles()
	keys := ui.DefaultKeyMap()

	return Model{
		services:      services,
		activeTab:     TabClients,
		themeProvider: themeProvider,
		styles:        styles,
		keys:          keys,
		clientsView:   views.NewClientsModel(services, styles, keys),
		summaryView:   views.NewSummaryModel(services, styles, keys),
		configView:    views.NewConfigModel(services, themeProvider, styles, keys),
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.clientsView.Init(),
		tick(),
	)
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Views in an input or dialog mode get every key
		if m.isModalInputMode() {
			break
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Help):
			m.showHelp = !m.showHelp
			return m, nil

		case key.Matches(msg, m.keys.NextTab):
			return m.switchTab(Tab((int(m.activeTab) + 1) % len(tabNames)))

		case key.Matches(msg, m.keys.PrevTab):
			return m.switchTab(Tab((int(m.activeTab) - 1 + len(tabNames)) % len(tabNames)))

		case key.Matches(msg, m.keys.Tab1):
			return m.switchTab(TabClients)

		case key.Matches(msg, m.keys.Tab2):
			return m.switchTab(TabSummary)

		case key.Matches(msg, m.keys.Tab3):
			return m.switchTab(TabConfig)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		contentHeight := m.height - 4 // Account for tabs and status bar
		m.clientsView.SetSize(m.width, contentHeight)
		m.summaryView.SetSize(m.width, contentHeight)
		m.configView.SetSize(m.width, contentHeight)
		return m, nil

	case ui.TickMsg:
		return m, tea.Batch(m.observeTimers(), tick())

	case ui.TimersObservedMsg:
		// The clients view shows timers whichever tab is active
		m.clientsView, cmd = m.clientsView.Update(msg)
		return m, cmd

	case ui.ThemeChangeRequestMsg:
		m.themeProvider.SetTheme(msg.ThemeName)
		newTheme := m.themeProvider.CurrentName()
		m.styles = m.themeProvider.Styles()

		themeMsg := ui.ThemeChangedMsg{
			ThemeName: newTheme,
			Styles:    m.styles,
		}
		m.clientsView, _ = m.clientsView.Update(themeMsg)
		m.summaryView, _ = m.summaryView.Update(themeMsg)
		m.configView, _ = m.configView.Update(themeMsg)

		return m, m.saveThemeConfig(newTheme)
	}

	switch m.activeTab {
	case TabClients:
		m.clientsView, cmd = m.clientsView.Update(msg)
	case TabSummary:
		m.summaryView, cmd = m.summaryView.Update(msg)
	case TabConfig:
		m.configView, cmd = m.configView.Update(msg)
	}
	return m, cmd
}

// View implements tea.Model
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var b strings.Builder

	b.WriteString(m.renderTabs())
	b.WriteString("\n")

	switch m.activeTab {
	case TabClients:
		b.WriteString(m.clientsView.View())
	case TabSummary:
		b.WriteString(m.summaryView.View())
	case TabConfig:
		b.WriteString(m.configView.View())
	}

	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())

	if m.showHelp {
		return m.renderHelpOverlay()
	}

	return m.styles.App.Render(b.String())
}

// renderTabs renders the tab bar
func (m Model) renderTabs() string {
	var tabs []string
	for i, name := range tabNames {
		if Tab(i) == m.activeTab {
			tabs = append(tabs, m.styles.TabActive.Render(name))
		} else {
			tabs = append(tabs, m.styles.TabInactive.Render(name))
		}
	}
	return m.styles.TabBar.Render(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
}

// renderStatusBar renders the status bar at the bottom
func (m Model) renderStatusBar() string {
	var parts []string

	if m.isModalInputMode() {
		parts = append(parts, m.renderKeyHelp("Enter", "accept"))
		parts = append(parts, m.renderKeyHelp("Esc", "back"))
	} else {
		switch m.activeTab {
		case TabClients:
			parts = append(parts, m.renderKeyHelp("n", "new"))
			parts = append(parts, m.renderKeyHelp("s/p/x", "start/pause/stop"))
			parts = append(parts, m.renderKeyHelp("a", "add time"))
			parts = append(parts, m.renderKeyHelp("enter", "pending"))
			parts = append(parts, m.renderKeyHelp("D/C", "delete/clear"))
		case TabSummary:
			parts = append(parts, m.renderKeyHelp("r", "refresh"))
		case TabConfig:
			parts = append(parts, m.renderKeyHelp("t", "themes"))
		}

		parts = append(parts, m.renderKeyHelp("1-3", "views"))
		parts = append(parts, m.renderKeyHelp("?", "help"))
		parts = append(parts, m.renderKeyHelp("q", "quit"))
	}

	if n := m.clientsView.ActiveCount(); n > 0 {
		parts = append(parts, m.styles.TimerRunning.Render(fmt.Sprintf("● %d active", n)))
	}

	content := strings.Join(parts, "  ")
	if padding := m.width - lipgloss.Width(content); padding > 0 {
		content += strings.Repeat(" ", padding)
	}
	return m.styles.StatusBar.Render(content)
}

// renderKeyHelp renders a single key help item
func (m Model) renderKeyHelp(key, desc string) string {
	return fmt.Sprintf("%s %s",
		m.styles.StatusKey.Render(key),
		m.styles.StatusHelp.Render(desc))
}

// isModalInputMode reports whether the active view owns the keyboard
func (m Model) isModalInputMode() bool {
	switch m.activeTab {
	case TabClients:
		return m.clientsView.IsInputMode()
	case TabConfig:
		return m.configView.IsSelecting()
	}
	return false
}

// switchTab activates t and reloads it
func (m Model) switchTab(t Tab) (tea.Model, tea.Cmd) {
	m.activeTab = t
	return m, m.initCurrentView()
}

// initCurrentView initializes the current view when switching tabs
func (m Model) initCurrentView() tea.Cmd {
	switch m.activeTab {
	case TabClients:
		return m.clientsView.Init()
	case TabSummary:
		return m.summaryView.Init()
	case TabConfig:
		return m.configView.Init()
	}
	return nil
}

// tick schedules the next timer observation
func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return ui.TickMsg(t)
	})
}

// observeTimers advances pause accounting and reports the timer states
func (m Model) observeTimers() tea.Cmd {
	return func() tea.Msg {
		statuses, err := m.services.Timer.Tick()
		return ui.TimersObservedMsg{Statuses: statuses, Err: err}
	}
}

// saveThemeConfig saves the theme to the config file
func (m Model) saveThemeConfig(themeName string) tea.Cmd {
	return func() tea.Msg {
		cfg := m.services.Config.Get()
		cfg.Theme = themeName
		return views.ThemeSavedMsg{Err: m.services.Config.Update(cfg)}
	}
}

// renderHelpOverlay renders the keyboard shortcuts for the active view
func (m Model) renderHelpOverlay() string {
	var help strings.Builder

	help.WriteString(m.styles.ViewTitle.Render("Keyboard Shortcuts"))
	help.WriteString("\n\n")

	help.WriteString(m.styles.Label.Render("Global:"))
	help.WriteString("\n")
	help.WriteString("  Tab/1-3    Switch views\n")
	help.WriteString("  ?          Toggle help\n")
	help.WriteString("  q          Quit\n")
	help.WriteString("\n")

	switch m.activeTab {
	case TabClients:
		help.WriteString(m.styles.Label.Render("Clients:"))
		help.WriteString("\n")
		help.WriteString("  j/k        Navigate up/down\n")
		help.WriteString("  n          New client\n")
		help.WriteString("  s          Start timer\n")
		help.WriteString("  p          Pause/resume timer\n")
		help.WriteString("  x          Stop timer (records pending)\n")
		help.WriteString("  a          Add time manually\n")
		help.WriteString("  Enter      Pending entries (c confirm, d discard)\n")
		help.WriteString("  D          Delete client\n")
		help.WriteString("  C          Clear all timings\n")
		help.WriteString("  r          Refresh\n")
	case TabSummary:
		help.WriteString(m.styles.Label.Render("Summary:"))
		help.WriteString("\n")
		help.WriteString("  r          Refresh\n")
	case TabConfig:
		help.WriteString(m.styles.Label.Render("Config:"))
		help.WriteString("\n")
		help.WriteString("  t/Enter    Open theme selector\n")
		help.WriteString("  j/k        Navigate themes\n")
		help.WriteString("  Enter      Select theme\n")
		help.WriteString("  Esc        Cancel\n")
	}

	help.WriteString("\n")
	help.WriteString(m.styles.Label.Render("Press ? to close"))

	return m.styles.App.Render(m.styles.Dialog.Render(help.String()))
}

// Run starts the TUI application
func Run(services *service.Services) error {
	p := tea.NewProgram(New(services), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
