package views

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/xolan/clientclock/internal/cli"
	"github.com/xolan/clientclock/internal/client"
	"github.com/xolan/clientclock/internal/service"
	"github.com/xolan/clientclock/internal/timer"
	"github.com/xolan/clientclock/internal/tui/ui"
)

// clientMode represents the current mode of the clients view
type clientMode int

const (
	clientModeNormal clientMode = iota
	clientModeNew
	clientModeAddTime
	clientModePending
	clientModeDelete
	clientModeClear
)

// ClientsModel is the model for the clients view
type ClientsModel struct {
	services *service.Services
	styles   ui.Styles
	keys     ui.KeyMap

	// UI state
	width   int
	height  int
	cursor  int
	clients []client.Client
	timers  map[string]service.TimerStatus
	loading bool
	err     error

	// Result of the last action
	notice    string
	noticeErr error

	mode          clientMode
	nameInput     textinput.Model
	timeInput     textinput.Model
	pendingCursor int
}

// NewClientsModel creates a new clients view model
func NewClientsModel(services *service.Services, styles ui.Styles, keys ui.KeyMap) ClientsModel {
	nameInput := textinput.New()
	nameInput.Placeholder = "Client name..."
	nameInput.CharLimit = 100
	nameInput.Width = 40

	timeInput := textinput.New()
	timeInput.Placeholder = "Duration (e.g., 1h30m, 45m, 2h)..."
	timeInput.CharLimit = 20
	timeInput.Width = 20

	return ClientsModel{
		services:  services,
		styles:    styles,
		keys:      keys,
		timers:    map[string]service.TimerStatus{},
		loading:   true,
		nameInput: nameInput,
		timeInput: timeInput,
	}
}

// clientsLoadedMsg is sent when clients and timers are (re)loaded, possibly
// after an action.
type clientsLoadedMsg struct {
	clients   []client.Client
	timers    []service.TimerStatus
	err       error
	notice    string
	noticeErr error
}

// Init implements tea.Model
func (m ClientsModel) Init() tea.Cmd {
	return m.loadClients()
}

// Update implements tea.Model
func (m ClientsModel) Update(msg tea.Msg) (ClientsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.mode {
		case clientModeNew, clientModeAddTime:
			return m.handleInputMode(msg)
		case clientModePending:
			return m.handlePendingMode(msg)
		case clientModeDelete, clientModeClear:
			return m.handleConfirmMode(msg)
		}
		return m.handleNormalMode(msg)

	case clientsLoadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.clients = msg.clients
			m.setTimers(msg.timers)
			m.cursor = clamp(m.cursor, len(m.clients))
			if c, ok := m.selected(); ok {
				m.pendingCursor = clamp(m.pendingCursor, len(c.PotentialTimes))
			}
		}
		if msg.notice != "" || msg.noticeErr != nil {
			m.notice = msg.notice
			m.noticeErr = msg.noticeErr
		}
		return m, nil

	case ui.TimersObservedMsg:
		if msg.Err == nil {
			m.setTimers(msg.Statuses)
		}
		return m, nil

	case ui.ThemeChangedMsg:
		m.styles = msg.Styles
		return m, nil
	}

	return m.updateInputs(msg)
}

// updateInputs forwards non-key messages (cursor blink) to the focused input.
func (m ClientsModel) updateInputs(msg tea.Msg) (ClientsModel, tea.Cmd) {
	var cmd tea.Cmd
	switch m.mode {
	case clientModeNew:
		m.nameInput, cmd = m.nameInput.Update(msg)
	case clientModeAddTime:
		m.timeInput, cmd = m.timeInput.Update(msg)
	}
	return m, cmd
}

func (m ClientsModel) handleNormalMode(msg tea.KeyMsg) (ClientsModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.clients)-1 {
			m.cursor++
		}
		return m, nil
	case key.Matches(msg, m.keys.Refresh):
		return m, m.loadClients()
	case key.Matches(msg, m.keys.New):
		m.mode = clientModeNew
		m.nameInput.SetValue("")
		m.nameInput.Focus()
		return m, textinput.Blink
	case key.Matches(msg, m.keys.Clear):
		if len(m.clients) > 0 {
			m.mode = clientModeClear
		}
		return m, nil
	}

	c, ok := m.selected()
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Start):
		return m, m.startTimer(c.Name)
	case key.Matches(msg, m.keys.Pause):
		return m, m.togglePause(c.Name)
	case key.Matches(msg, m.keys.Stop):
		return m, m.stopTimer(c.Name)
	case key.Matches(msg, m.keys.AddTime):
		m.mode = clientModeAddTime
		m.timeInput.SetValue("")
		m.timeInput.Focus()
		return m, textinput.Blink
	case key.Matches(msg, m.keys.Select):
		m.mode = clientModePending
		m.pendingCursor = 0
		return m, nil
	case key.Matches(msg, m.keys.Delete):
		m.mode = clientModeDelete
		return m, nil
	}
	return m, nil
}

// handleInputMode handles key events when adding a client or time
func (m ClientsModel) handleInputMode(msg tea.KeyMsg) (ClientsModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Select):
		if m.mode == clientModeNew {
			name := strings.TrimSpace(m.nameInput.Value())
			if name == "" {
				return m, nil
			}
			m.mode = clientModeNormal
			m.nameInput.Blur()
			return m, m.addClient(name)
		}

		value := strings.TrimSpace(m.timeInput.Value())
		if value == "" {
			return m, nil
		}
		hours, minutes, err := client.ParseDuration(value)
		if err != nil {
			m.notice = ""
			m.noticeErr = err
			return m, nil
		}
		c, ok := m.selected()
		m.mode = clientModeNormal
		m.timeInput.Blur()
		if !ok {
			return m, nil
		}
		return m, m.addTime(c.Name, float64(hours), float64(minutes))

	case key.Matches(msg, m.keys.Back):
		m.mode = clientModeNormal
		m.nameInput.Blur()
		m.timeInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	if m.mode == clientModeNew {
		m.nameInput, cmd = m.nameInput.Update(msg)
	} else {
		m.timeInput, cmd = m.timeInput.Update(msg)
	}
	return m, cmd
}

// handlePendingMode handles key events in the pending entries list
func (m ClientsModel) handlePendingMode(msg tea.KeyMsg) (ClientsModel, tea.Cmd) {
	c, ok := m.selected()
	if !ok || key.Matches(msg, m.keys.Back) {
		m.mode = clientModeNormal
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.pendingCursor > 0 {
			m.pendingCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.pendingCursor < len(c.PotentialTimes)-1 {
			m.pendingCursor++
		}
	case key.Matches(msg, m.keys.Confirm):
		if m.pendingCursor < len(c.PotentialTimes) {
			return m, m.confirmPending(c.Name, m.pendingCursor)
		}
	case key.Matches(msg, m.keys.Discard):
		if m.pendingCursor < len(c.PotentialTimes) {
			return m, m.discardPending(c.Name, m.pendingCursor)
		}
	}
	return m, nil
}

// handleConfirmMode handles the delete and clear confirmation dialogs
func (m ClientsModel) handleConfirmMode(msg tea.KeyMsg) (ClientsModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Yes):
		mode := m.mode
		m.mode = clientModeNormal
		if mode == clientModeClear {
			return m, m.clearAll()
		}
		if c, ok := m.selected(); ok {
			return m, m.deleteClient(c.Name)
		}
	case key.Matches(msg, m.keys.No):
		m.mode = clientModeNormal
	}
	return m, nil
}

// View implements tea.Model
func (m ClientsModel) View() string {
	switch m.mode {
	case clientModeNew:
		return m.renderInput("New Client", "Name:", m.nameInput)
	case clientModeAddTime:
		c, _ := m.selected()
		return m.renderInput("Add Time to "+c.Name, "Duration:", m.timeInput)
	case clientModePending:
		return m.renderPending()
	case clientModeDelete:
		return m.renderDeleteConfirm()
	case clientModeClear:
		return m.renderClearConfirm()
	}

	var b strings.Builder
	b.WriteString(m.styles.ViewTitle.Render("Clients"))
	b.WriteString("\n")

	if m.loading {
		b.WriteString("Loading...")
		return b.String()
	}

	if m.err != nil {
		b.WriteString(m.styles.Error.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n\n")
		b.WriteString(m.styles.Hint.Render("Run 'clientclock validate' for details"))
		return b.String()
	}

	if len(m.clients) == 0 {
		b.WriteString(m.styles.Hint.Render("No clients yet"))
		b.WriteString("\n\n")
		b.WriteString(m.styles.Hint.Render("Press 'n' to add a client"))
		b.WriteString(m.renderNotice())
		return b.String()
	}

	b.WriteString(m.renderTable())
	b.WriteString(m.renderNotice())
	return b.String()
}

// renderTable renders the client rows with aligned columns
func (m ClientsModel) renderTable() string {
	nameWidth := len("Client")
	for _, c := range m.clients {
		nameWidth = max(nameWidth, len([]rune(c.Name)))
	}
	nameWidth = min(nameWidth, max(12, m.width-50))

	const workedWidth, timerWidth = 18, 12

	var b strings.Builder
	header := fmt.Sprintf("  %s %s %s %s",
		padCell("Client", nameWidth), padCell("Worked", workedWidth), padCell("Timer", timerWidth), "Pending")
	b.WriteString(m.styles.Header.Render(header))
	b.WriteString("\n")

	for i, c := range m.clients {
		marker := "  "
		style := m.styles.RowNormal
		if i == m.cursor {
			marker = "▸ "
			style = m.styles.RowSelected
		}

		timerCell := m.styles.TimerIdle.Render("-")
		if s, ok := m.timers[c.Name]; ok {
			timerCell = renderTimerCell(m.styles, s)
		}
		pending := ""
		if n := len(c.PotentialTimes); n > 0 {
			pending = m.styles.Pending.Render(fmt.Sprintf("%d (%s)", n, client.FormatMinutes(c.PendingTotal())))
		}

		line := marker +
			padCell(truncate(c.Name, nameWidth), nameWidth) + " " +
			padCell(m.styles.Worked.Render(cli.FormatWorked(c.TimeWorked)), workedWidth) + " " +
			padCell(timerCell, timerWidth) + " " +
			pending
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}

func (m ClientsModel) renderNotice() string {
	switch {
	case m.noticeErr != nil:
		return "\n" + m.styles.Error.Render(fmt.Sprintf("Error: %v", m.noticeErr))
	case m.notice != "":
		return "\n" + m.styles.Success.Render(m.notice)
	}
	return ""
}

func (m ClientsModel) renderInput(title, label string, input textinput.Model) string {
	var b strings.Builder
	b.WriteString(m.styles.ViewTitle.Render(title))
	b.WriteString("\n\n")
	b.WriteString(m.styles.Label.Render(label))
	b.WriteString("\n")
	b.WriteString(input.View())
	b.WriteString("\n\n")
	b.WriteString(m.styles.Hint.Render("Enter to save, Esc to cancel"))
	b.WriteString(m.renderNotice())
	return b.String()
}

// renderPending renders the selected client's pending entries
func (m ClientsModel) renderPending() string {
	c, _ := m.selected()

	var b strings.Builder
	b.WriteString(m.styles.ViewTitle.Render("Pending entries for " + c.Name))
	b.WriteString("\n")

	if len(c.PotentialTimes) == 0 {
		b.WriteString(m.styles.Hint.Render("No pending entries"))
		b.WriteString("\n\n")
		b.WriteString(m.styles.Hint.Render("Stop a timer to record one. Esc to return"))
		b.WriteString(m.renderNotice())
		return b.String()
	}

	for i, p := range c.PotentialTimes {
		line := fmt.Sprintf("  %d. %s", i+1, minutesLabel(p.Minutes))
		style := m.styles.RowNormal
		if i == m.pendingCursor {
			line = fmt.Sprintf("▸ %d. %s", i+1, minutesLabel(p.Minutes))
			style = m.styles.RowSelected
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	b.WriteString(renderRule(m.width))
	b.WriteString(fmt.Sprintf("Total pending: %s\n\n", client.FormatMinutes(c.PendingTotal())))
	b.WriteString(m.styles.Hint.Render("c confirm  d discard  j/k navigate  Esc return"))
	b.WriteString(m.renderNotice())
	return b.String()
}

// renderDeleteConfirm renders the delete confirmation dialog
func (m ClientsModel) renderDeleteConfirm() string {
	c, _ := m.selected()

	var b strings.Builder
	b.WriteString(m.styles.DialogTitle.Render("Delete Client"))
	b.WriteString("\n")
	b.WriteString(m.styles.Warning.Render(service.DeletePrompt))
	b.WriteString("\n\n")
	b.WriteString(renderField(m.styles, "Client", c.Name))
	b.WriteString(renderField(m.styles, "Worked", cli.FormatWorked(c.TimeWorked)))
	b.WriteString(renderField(m.styles, "Pending", fmt.Sprintf("%d", len(c.PotentialTimes))))
	b.WriteString("\n")
	b.WriteString(m.styles.Hint.Render("Press Y to confirm, N or Esc to cancel"))
	return m.styles.Dialog.Render(b.String())
}

// renderClearConfirm renders the clear-all confirmation dialog
func (m ClientsModel) renderClearConfirm() string {
	var b strings.Builder
	b.WriteString(m.styles.DialogTitle.Render("Clear All Timings"))
	b.WriteString("\n")
	b.WriteString(m.styles.Warning.Render(service.ClearPrompt))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("Worked time of %d %s will be reset to zero.\n",
		len(m.clients), cli.Pluralize("client", len(m.clients))))
	b.WriteString("Pending entries are kept.\n\n")
	b.WriteString(m.styles.Hint.Render("Press Y to confirm, N or Esc to cancel"))
	return m.styles.Dialog.Render(b.String())
}

// SetSize sets the view dimensions
func (m *ClientsModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// IsInputMode returns true when the view is capturing keyboard input
func (m ClientsModel) IsInputMode() bool {
	return m.mode != clientModeNormal
}

// ActiveCount returns the number of running or paused timers.
func (m ClientsModel) ActiveCount() int {
	return len(m.timers)
}

func (m ClientsModel) selected() (client.Client, bool) {
	if m.cursor < 0 || m.cursor >= len(m.clients) {
		return client.Client{}, false
	}
	return m.clients[m.cursor], true
}

func (m *ClientsModel) setTimers(statuses []service.TimerStatus) {
	m.timers = make(map[string]service.TimerStatus, len(statuses))
	for _, s := range statuses {
		m.timers[s.Client] = s
	}
}

// reload reads clients and timer states.
func (m ClientsModel) reload() clientsLoadedMsg {
	clients, err := m.services.Clients.List()
	if err != nil {
		return clientsLoadedMsg{err: err}
	}
	timers, err := m.services.Timer.Active()
	if err != nil {
		return clientsLoadedMsg{err: err}
	}
	return clientsLoadedMsg{clients: clients, timers: timers}
}

// loadClients creates a command to load clients
func (m ClientsModel) loadClients() tea.Cmd {
	return func() tea.Msg {
		return m.reload()
	}
}

// act creates a command that runs fn and then reloads, reporting fn's
// notice or error.
func (m ClientsModel) act(fn func() (string, error)) tea.Cmd {
	return func() tea.Msg {
		notice, err := fn()
		msg := m.reload()
		if err != nil {
			msg.noticeErr = err
		} else {
			msg.notice = notice
		}
		return msg
	}
}

func (m ClientsModel) addClient(name string) tea.Cmd {
	return m.act(func() (string, error) {
		c, err := m.services.Clients.Add(name)
		if errors.Is(err, service.ErrClientExists) {
			return "", fmt.Errorf("client '%s' already exists", c.Name)
		}
		if err != nil {
			return "", err
		}
		return "Added client " + c.Name, nil
	})
}

func (m ClientsModel) startTimer(name string) tea.Cmd {
	return m.act(func() (string, error) {
		if _, err := m.services.Timer.Start(name); err != nil {
			return "", err
		}
		return "Timer started: " + name, nil
	})
}

// togglePause pauses a running timer or resumes a paused one.
func (m ClientsModel) togglePause(name string) tea.Cmd {
	return m.act(func() (string, error) {
		s, err := m.services.Timer.Status(name)
		if err != nil {
			return "", err
		}
		switch s.Phase {
		case timer.PhaseRunning:
			if _, err := m.services.Timer.Pause(name); err != nil {
				return "", err
			}
			return "Timer paused: " + name, nil
		case timer.PhasePaused:
			if _, err := m.services.Timer.Resume(name); err != nil {
				return "", err
			}
			return "Timer resumed: " + name, nil
		}
		return "", timer.ErrNotRunning
	})
}

func (m ClientsModel) stopTimer(name string) tea.Cmd {
	return m.act(func() (string, error) {
		minutes, err := m.services.Timer.Stop(name)
		if err != nil {
			return "", err
		}
		c, err := m.services.Clients.Get(name)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Recorded %s for %s as pending entry #%d",
			minutesLabel(float64(minutes)), name, len(c.PotentialTimes)), nil
	})
}

func (m ClientsModel) addTime(name string, hours, minutes float64) tea.Cmd {
	return m.act(func() (string, error) {
		if _, err := m.services.Clients.AddTime(name, hours, minutes); err != nil {
			return "", err
		}
		return fmt.Sprintf("Added %s to %s", client.FormatMinutes(hours*60+minutes), name), nil
	})
}

func (m ClientsModel) confirmPending(name string, index int) tea.Cmd {
	return m.act(func() (string, error) {
		_, added, err := m.services.Clients.ConfirmPending(name, index)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Confirmed %s for %s", minutesLabel(added), name), nil
	})
}

func (m ClientsModel) discardPending(name string, index int) tea.Cmd {
	return m.act(func() (string, error) {
		_, removed, err := m.services.Clients.DiscardPending(name, index)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Discarded %s from %s", minutesLabel(removed.Minutes), name), nil
	})
}

// deleteClient runs after the dialog was accepted, so no further prompt.
func (m ClientsModel) deleteClient(name string) tea.Cmd {
	return m.act(func() (string, error) {
		if err := m.services.Clients.Delete(name, nil); err != nil {
			return "", err
		}
		return "Deleted client " + name, nil
	})
}

func (m ClientsModel) clearAll() tea.Cmd {
	return m.act(func() (string, error) {
		if err := m.services.Clients.ClearAll(nil); err != nil {
			return "", err
		}
		return "Cleared all timings", nil
	})
}
