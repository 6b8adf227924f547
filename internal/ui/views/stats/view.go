package stats

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	statsdto "brewlog/internal/modules/stats/dto"
	"brewlog/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type StatsPort interface {
	Ratio(ctx context.Context, beanID string) (statsdto.RatioAnalysisOutput, error)
	Time(ctx context.Context, beanID string) (statsdto.TimeAnalysisOutput, error)
	Trends(ctx context.Context, beanID string) (statsdto.TrendsOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type LoadedMsg struct {
	Ratio  statsdto.RatioAnalysisOutput
	Time   statsdto.TimeAnalysisOutput
	Trends statsdto.TrendsOutput
	Err    error
}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port StatsPort

	beanID   string
	beanName string

	ratio  statsdto.RatioAnalysisOutput
	time   statsdto.TimeAnalysisOutput
	trends statsdto.TrendsOutput

	body    viewport.Model
	spinner spinner.Model
	loading bool
	err     error
	width   int
	height  int
}

func New(port StatsPort) Model {
	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().
		Background(theme.Mantle).
		Foreground(theme.Text).
		Padding(1)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	return Model{
		port:    port,
		body:    vp,
		spinner: sp,
		loading: true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadCmd(), m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.body.Width = m.width - 4
		m.body.Height = m.height - 4

	case LoadedMsg:
		m.loading = false
		m.err = msg.Err
		if msg.Err == nil {
			m.ratio = msg.Ratio
			m.time = msg.Time
			m.trends = msg.Trends
		}
		m.body.SetContent(m.render())

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	var vCmd tea.Cmd
	m.body, vCmd = m.body.Update(msg)
	cmds = append(cmds, vCmd)

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Crunching shots…")
	}
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Surface1).
		Background(theme.Mantle).
		Width(m.width - 2).
		Height(m.height - 2).
		Render(m.body.View())
}

// SetScope narrows the analysis to one bean; empty beanID means all shots.
// Returns a command that reloads with the new scope.
func (m *Model) SetScope(beanID, beanName string) tea.Cmd {
	m.beanID = beanID
	m.beanName = beanName
	m.loading = true
	return tea.Batch(m.loadCmd(), m.spinner.Tick)
}

// Refresh reloads the analysis under the current scope.
func (m *Model) Refresh() tea.Cmd {
	m.loading = true
	return tea.Batch(m.loadCmd(), m.spinner.Tick)
}

// Filtering exists so the app model can treat all tabs uniformly.
func (m Model) Filtering() bool { return false }

// ─── private ─────────────────────────────────────────────────────────────────

func (m Model) render() string {
	if m.err != nil {
		return theme.Bad.Render("stats: " + m.err.Error())
	}

	var sb strings.Builder
	scope := "all shots"
	if m.beanID != "" {
		scope = m.beanName
	}
	sb.WriteString(theme.Title.Render("Shot statistics") + theme.Muted.Render("  ("+scope+")") + "\n\n")

	sb.WriteString(theme.Title.Render("Brew ratio") + "\n")
	if m.ratio.Insufficient {
		sb.WriteString(theme.Muted.Render(fmt.Sprintf("need %d shots with usable dose and yield", m.ratio.Required)) + "\n")
	} else {
		r := m.ratio
		sb.WriteString(fmt.Sprintf("%s%d shots (%d excluded)\n", theme.Muted.Render("sample:  "), r.Count, r.Excluded))
		sb.WriteString(fmt.Sprintf("%smean 1:%.2f  median 1:%.2f  range 1:%.2f..1:%.2f\n", theme.Muted.Render("ratio:   "), r.Mean, r.Median, r.Min, r.Max))
		sb.WriteString(theme.Muted.Render("bands:   ") + bandBar([]band{
			{"under", r.PctUnder, theme.Bad},
			{"typical", r.PctTypical, theme.Warn},
			{"optimal", r.PctOptimal, theme.Good},
			{"over", r.PctOver, theme.Bad},
		}) + "\n")
	}

	sb.WriteString("\n" + theme.Title.Render("Extraction time") + "\n")
	if m.time.Insufficient {
		sb.WriteString(theme.Muted.Render(fmt.Sprintf("need %d timed shots", m.time.Required)) + "\n")
	} else {
		t := m.time
		sb.WriteString(fmt.Sprintf("%s%d timed (%d untimed)\n", theme.Muted.Render("sample:  "), t.Count, t.Excluded))
		sb.WriteString(fmt.Sprintf("%smean %.1fs  median %.1fs  range %.1fs..%.1fs\n", theme.Muted.Render("time:    "), t.Mean, t.Median, t.Min, t.Max))
		sb.WriteString(theme.Muted.Render("bands:   ") + bandBar([]band{
			{"fast", t.PctFast, theme.Bad},
			{"optimal", t.PctOptimal, theme.Good},
			{"slow", t.PctSlow, theme.Bad},
		}) + "\n")
	}

	sb.WriteString("\n" + theme.Title.Render("Trend") + "\n")
	if m.trends.Insufficient {
		sb.WriteString(theme.Muted.Render(fmt.Sprintf("need %d shots", m.trends.Required)) + "\n")
	} else {
		tr := m.trends
		sb.WriteString(fmt.Sprintf("%s%d shots over %d day(s), %.1f/day\n", theme.Muted.Render("pace:    "), tr.SampleSize, tr.DaysAnalyzed, tr.ShotsPerDay))
		sb.WriteString(fmt.Sprintf("%s%d shots, ratio 1:%.2f, time %.1fs\n", theme.Muted.Render("earlier: "), tr.Earlier.Shots, tr.Earlier.MeanRatio, tr.Earlier.MeanTime))
		sb.WriteString(fmt.Sprintf("%s%d shots, ratio 1:%.2f, time %.1fs\n", theme.Muted.Render("later:   "), tr.Later.Shots, tr.Later.MeanRatio, tr.Later.MeanTime))
		sb.WriteString(theme.Muted.Render("class:   ") + trendStyle(tr.Class).Render(tr.Class) + "\n")
	}

	sb.WriteString("\n" + theme.Muted.Render("r: refresh  a: all shots  tab: switch view"))
	return sb.String()
}

type band struct {
	label string
	pct   float64
	style lipgloss.Style
}

func bandBar(bands []band) string {
	parts := make([]string, 0, len(bands))
	for _, b := range bands {
		parts = append(parts, b.style.Render(fmt.Sprintf("%s %.0f%%", b.label, b.pct)))
	}
	return strings.Join(parts, theme.Muted.Render("  "))
}

func trendStyle(class string) lipgloss.Style {
	switch class {
	case "improving":
		return theme.Good
	case "declining":
		return theme.Bad
	default:
		return theme.Warn
	}
}

func (m Model) loadCmd() tea.Cmd {
	beanID := m.beanID
	return func() tea.Msg {
		ratio, err := m.port.Ratio(context.Background(), beanID)
		if err != nil {
			return LoadedMsg{Err: err}
		}
		timeOut, err := m.port.Time(context.Background(), beanID)
		if err != nil {
			return LoadedMsg{Err: err}
		}
		trends, err := m.port.Trends(context.Background(), beanID)
		if err != nil {
			return LoadedMsg{Err: err}
		}
		return LoadedMsg{Ratio: ratio, Time: timeOut, Trends: trends}
	}
}
