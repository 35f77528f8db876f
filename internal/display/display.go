// Package display provides the terminal UI using Bubble Tea.
//
// The screen shows the active mode, the countdown, cycle progress, and
// the completion banner. Notifications are printed above the rendered
// area via Program.Println so concurrent writes never garble the
// display.
package display

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hammamikhairi/tomatick/internal/domain"
	"github.com/hammamikhairi/tomatick/internal/storage"
)

// ── Styles ───────────────────────────────────────────────────────

var (
	tabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#71717a")).
			Padding(0, 2)

	tabActiveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fde68a")).
			Bold(true).
			Padding(0, 2)

	clockStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d4d4d8")).
			Bold(true)

	clockPausedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#71717a")).
				Bold(true)

	cycleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#bbf7d0"))

	bannerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fca5a5")).
			Bold(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#71717a"))

	flagOnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#bae6fd"))

	frameStyle = lipgloss.NewStyle().
			Padding(1, 3)
)

// ── Ports ────────────────────────────────────────────────────────

// Controller is the engine surface the UI drives.
type Controller interface {
	StartPause()
	Reset()
	Skip()
	SwitchMode(mode domain.Mode)
	Acknowledge() error
	ClearAllData()
	Snapshot() domain.Snapshot
	Subscribe(buffer int) <-chan domain.Snapshot
}

// Preferences is the settings surface the UI reads and toggles.
type Preferences interface {
	domain.SettingsSource
	SetFlag(key string, value bool)
}

// StatsSource supplies today's focus totals for the status bar.
type StatsSource interface {
	Today() domain.DayRecord
}

// ── UI ───────────────────────────────────────────────────────────

// UI manages the terminal through Bubble Tea. Call NewUI then Run
// (blocking). Other goroutines may call Printf/Println at any time.
type UI struct {
	program *tea.Program
	ctrl    Controller
	prefs   Preferences
	stats   StatsSource
	done    atomic.Bool
}

// NewUI creates the display. Call Run() to start.
func NewUI(ctrl Controller, prefs Preferences, stats StatsSource) *UI {
	return &UI{ctrl: ctrl, prefs: prefs, stats: stats}
}

// Println prints a line above the timer. Thread-safe.
func (u *UI) Println(a ...interface{}) {
	if u.program != nil && !u.done.Load() {
		u.program.Println(a...)
	} else {
		fmt.Println(a...)
	}
}

// Printf prints formatted text above the timer. Thread-safe.
func (u *UI) Printf(format string, a ...interface{}) {
	if u.program != nil && !u.done.Load() {
		u.program.Printf(format, a...)
	} else {
		fmt.Printf(format, a...)
	}
}

// Quit tells Bubble Tea to exit.
func (u *UI) Quit() {
	if u.program != nil {
		u.program.Quit()
	}
}

// Run starts the Bubble Tea event loop. Blocks until quit.
func (u *UI) Run() error {
	m := newModel(u.ctrl, u.prefs, u.stats)
	u.program = tea.NewProgram(m)
	_, err := u.program.Run()
	u.done.Store(true)
	return err
}

// ── Key bindings ─────────────────────────────────────────────────

type keyMap struct {
	StartPause key.Binding
	Reset      key.Binding
	Skip       key.Binding
	Focus      key.Binding
	Break      key.Binding
	LongBreak  key.Binding
	Ack        key.Binding
	Sound      key.Binding
	AutoSwitch key.Binding
	AutoStart  key.Binding
	ClearData  key.Binding
	Quit       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		StartPause: key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "start/pause")),
		Reset:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		Skip:       key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "skip")),
		Focus:      key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "focus")),
		Break:      key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "break")),
		LongBreak:  key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "long break")),
		Ack:        key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "continue")),
		Sound:      key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "sound")),
		AutoSwitch: key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "auto-switch")),
		AutoStart:  key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "auto-start")),
		ClearData:  key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("ctrl+x", "clear all data")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.StartPause, k.Reset, k.Skip, k.Ack, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.StartPause, k.Reset, k.Skip, k.Ack},
		{k.Focus, k.Break, k.LongBreak},
		{k.Sound, k.AutoSwitch, k.AutoStart, k.ClearData, k.Quit},
	}
}

// ── Bubble Tea model ─────────────────────────────────────────────

type model struct {
	ctrl  Controller
	prefs Preferences
	stats StatsSource

	snap     domain.Snapshot
	snapCh   <-chan domain.Snapshot
	today    domain.DayRecord
	bar      progress.Model
	keys     keyMap
	help     help.Model
	width    int
	quitting bool
}

func newModel(ctrl Controller, prefs Preferences, stats StatsSource) model {
	bar := progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())
	return model{
		ctrl:   ctrl,
		prefs:  prefs,
		stats:  stats,
		snap:   ctrl.Snapshot(),
		snapCh: ctrl.Subscribe(16),
		today:  stats.Today(),
		bar:    bar,
		keys:   defaultKeyMap(),
		help:   help.New(),
	}
}

// Messages.
type snapshotMsg domain.Snapshot
type statsTickMsg time.Time

func waitForSnapshot(ch <-chan domain.Snapshot) tea.Cmd {
	return func() tea.Msg {
		snap, ok := <-ch
		if !ok {
			return nil
		}
		return snapshotMsg(snap)
	}
}

func statsTickCmd() tea.Cmd {
	return tea.Tick(5*time.Second, func(t time.Time) tea.Msg {
		return statsTickMsg(t)
	})
}

func (m model) Init() tea.Cmd {
	return tea.Batch(waitForSnapshot(m.snapCh), statsTickCmd())
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		m.bar.Width = min(msg.Width-10, 44)
		return m, nil

	case snapshotMsg:
		m.snap = domain.Snapshot(msg)
		return m, waitForSnapshot(m.snapCh)

	case statsTickMsg:
		m.today = m.stats.Today()
		return m, statsTickCmd()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.StartPause):
		m.ctrl.StartPause()
	case key.Matches(msg, m.keys.Reset):
		m.ctrl.Reset()
	case key.Matches(msg, m.keys.Skip):
		m.ctrl.Skip()
	case key.Matches(msg, m.keys.Focus):
		m.ctrl.SwitchMode(domain.ModeFocus)
	case key.Matches(msg, m.keys.Break):
		m.ctrl.SwitchMode(domain.ModeBreak)
	case key.Matches(msg, m.keys.LongBreak):
		m.ctrl.SwitchMode(domain.ModeLongBreak)
	case key.Matches(msg, m.keys.Ack):
		// Ignored unless a completion is waiting.
		_ = m.ctrl.Acknowledge()
	case key.Matches(msg, m.keys.Sound):
		m.prefs.SetFlag(storage.KeySoundEnabled, !m.prefs.SoundEnabled())
	case key.Matches(msg, m.keys.AutoSwitch):
		m.prefs.SetFlag(storage.KeyAutoSwitch, !m.prefs.AutoSwitch())
	case key.Matches(msg, m.keys.AutoStart):
		m.prefs.SetFlag(storage.KeyAutoStart, !m.prefs.AutoStart())
	case key.Matches(msg, m.keys.ClearData):
		m.ctrl.ClearAllData()
	}
	m.snap = m.ctrl.Snapshot()
	return m, nil
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	active := m.snap.ActiveMode
	timer := m.snap.Timers[active]
	full := m.prefs.Durations()[active]

	tabs := ""
	for _, mode := range domain.Modes {
		style := tabStyle
		if mode == active {
			style = tabActiveStyle
		}
		tabs += style.Render(mode.Title())
	}

	clock := clockPausedStyle
	state := "paused"
	if timer.Running {
		clock = clockStyle
		state = "running"
	}

	ratio := 0.0
	if full > 0 {
		ratio = float64(full-timer.Remaining) / float64(full)
	}

	view := tabs + "\n\n"
	view += clock.Render("  "+FormatClock(timer.Remaining)) + statusStyle.Render("  "+state) + "\n\n"
	view += "  " + m.bar.ViewAs(ratio) + "\n\n"
	view += cycleStyle.Render("  cycle "+CycleDots(m.snap.Cycle, m.prefs.CycleCount())) +
		statusStyle.Render("   today "+FormatFocusTotal(m.today.TotalDurationSeconds)) + "\n"
	view += "  " + m.flagLine() + "\n"

	switch m.snap.Phase {
	case domain.PhaseAwaitingAck:
		view += "\n" + bannerStyle.Render(
			fmt.Sprintf("  %s finished, press enter for %s", active.Title(), m.snap.PendingNext.Title())) + "\n"
	case domain.PhaseGraceDelay:
		view += "\n" + bannerStyle.Render(
			fmt.Sprintf("  %s finished, switching to %s", active.Title(), m.snap.PendingNext.Title())) + "\n"
	}

	view += "\n" + m.help.View(m.keys)
	return frameStyle.Render(view)
}

func (m model) flagLine() string {
	render := func(name string, on bool) string {
		if on {
			return flagOnStyle.Render(name)
		}
		return statusStyle.Render(name)
	}
	return render("sound", m.prefs.SoundEnabled()) + statusStyle.Render(" · ") +
		render("auto-switch", m.prefs.AutoSwitch()) + statusStyle.Render(" · ") +
		render("auto-start", m.prefs.AutoStart())
}
