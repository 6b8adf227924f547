package app

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"brewlog/internal/ui/theme"
	beansview "brewlog/internal/ui/views/beans"
	statsview "brewlog/internal/ui/views/stats"
)

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabBeans tabID = iota
	tabStats
	tabCount
)

var tabLabels = [tabCount]string{"Beans", "Stats"}

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Tab     key.Binding
	Help    key.Binding
	Quit    key.Binding
	Refresh key.Binding
	Scope   key.Binding
	AllBean key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Scope:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "stats for bean")),
		AllBean: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "stats for all shots")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Refresh},
		{k.Scope, k.AllBean},
		{k.Help, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns tab routing, the help overlay,
// and the status bar. All business logic is delegated to port interfaces;
// all rendering is delegated to sub-views.
type Model struct {
	beansView beansview.Model
	statsView statsview.Model

	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	status    string
	width     int
	height    int
}

func NewModel(beans beansview.BeanPort, shots beansview.ShotPort, advisor beansview.AdvisorPort, stats statsview.StatsPort) Model {
	return Model{
		beansView: beansview.New(beans, shots, advisor),
		statsView: statsview.New(stats),
		activeTab: tabBeans,
		keys:      defaultKeys(),
		help:      help.New(),
		status:    "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.beansView.Init(), m.statsView.Init())
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = m.width
		m.propagateSize()

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}

		// Yield to the beans list while its search filter is active.
		if m.subViewFiltering() {
			break
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
		case "shift+tab":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
		case "?":
			m.showHelp = !m.showHelp
		case "r":
			switch m.activeTab {
			case tabBeans:
				m.status = "reloading beans"
				cmds = append(cmds, m.beansView.Refresh())
			case tabStats:
				m.status = "reloading stats"
				cmds = append(cmds, m.statsView.Refresh())
			}
		case "s":
			if m.activeTab == tabBeans {
				if id, ok := m.beansView.SelectedBeanID(); ok {
					name := m.beansView.SelectedBeanName()
					m.status = "stats scoped to " + name
					m.activeTab = tabStats
					cmds = append(cmds, m.statsView.SetScope(id, name))
				}
			}
		case "a":
			if m.activeTab == tabStats {
				m.status = "stats for all shots"
				cmds = append(cmds, m.statsView.SetScope("", ""))
			}
		}
	}

	// Propagate the message to the active tab's sub-view.
	var tabCmd tea.Cmd
	switch m.activeTab {
	case tabBeans:
		m.beansView, tabCmd = m.beansView.Update(msg)
	case tabStats:
		m.statsView, tabCmd = m.statsView.Update(msg)
	}
	cmds = append(cmds, tabCmd)

	return m, tea.Batch(cmds...)
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	contentH := m.height - lipgloss.Height(tabBar) - lipgloss.Height(statusBar)
	if contentH < 1 {
		contentH = 1
	}

	var content string
	if m.showHelp {
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).
			Render(m.help.View(m.keys))
	} else {
		content = m.activeView()
	}

	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) activeView() string {
	switch m.activeTab {
	case tabBeans:
		return m.beansView.View()
	case tabStats:
		return m.statsView.View()
	}
	return ""
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		label := tabLabels[i]
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + label + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + label + " ")
		}
	}
	sep := theme.Muted.Render(" │ ")
	bar := "brewlog  " + strings.Join(parts, sep)
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	right := theme.Muted.Render("?:help  tab:switch  q:quit")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── helpers ─────────────────────────────────────────────────────────────────

// subViewFiltering reports whether the beans list filter is open, in which
// case global key bindings must yield to allow free typing.
func (m Model) subViewFiltering() bool {
	switch m.activeTab {
	case tabBeans:
		return m.beansView.Filtering()
	case tabStats:
		return m.statsView.Filtering()
	}
	return false
}

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.beansView, _ = m.beansView.Update(sz)
	m.statsView, _ = m.statsView.Update(sz)
}
