package beans

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	advisordto "brewlog/internal/modules/advisor/dto"
	beandto "brewlog/internal/modules/bean/dto"
	shotdto "brewlog/internal/modules/shot/dto"
	apperrors "brewlog/internal/platform/errors"
	"brewlog/internal/ui/theme"
)

const recentShotLimit = 8

// ─── ports ───────────────────────────────────────────────────────────────────

type BeanPort interface {
	List(ctx context.Context) ([]beandto.BeanOutput, error)
	Get(ctx context.Context, idOrSlug string) (beandto.BeanDetailOutput, error)
}

type ShotPort interface {
	List(ctx context.Context, beanID string, limit int) ([]shotdto.ShotOutput, error)
}

type AdvisorPort interface {
	Guidance(ctx context.Context, beanID string) (advisordto.GuidanceOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type BeansLoadedMsg struct {
	Beans []beandto.BeanOutput
	Err   error
}

type DetailLoadedMsg struct {
	Detail      beandto.BeanDetailOutput
	Shots       []shotdto.ShotOutput
	Guidance    advisordto.GuidanceOutput
	HasGuidance bool
	Err         error
}

// ─── list item ───────────────────────────────────────────────────────────────

type beanItem struct {
	bean beandto.BeanOutput
}

func (i beanItem) Title() string { return i.bean.Name }
func (i beanItem) Description() string {
	if i.bean.Roaster == "" {
		return i.bean.Roast
	}
	return i.bean.Roaster + "  " + i.bean.Roast
}
func (i beanItem) FilterValue() string { return i.bean.Roaster + " " + i.bean.Name }

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	beans   BeanPort
	shots   ShotPort
	advisor AdvisorPort

	list        list.Model
	detail      beandto.BeanDetailOutput
	recent      []shotdto.ShotOutput
	guidance    advisordto.GuidanceOutput
	hasGuidance bool
	preview     viewport.Model
	spinner     spinner.Model
	loading     bool
	width       int
	height      int
}

func New(beans BeanPort, shots ShotPort, advisor AdvisorPort) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Beans"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().
		Background(theme.Mantle).
		Foreground(theme.Text).
		Padding(1)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	return Model{
		beans:   beans,
		shots:   shots,
		advisor: advisor,
		list:    l,
		preview: vp,
		spinner: sp,
		loading: true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadBeansCmd(), m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case BeansLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.list.Title = "Beans — " + msg.Err.Error()
			return m, nil
		}
		items := make([]list.Item, len(msg.Beans))
		for i, b := range msg.Beans {
			items[i] = beanItem{bean: b}
		}
		cmds = append(cmds, m.list.SetItems(items))
		if len(msg.Beans) > 0 {
			cmds = append(cmds, m.loadDetailCmd(msg.Beans[0].ID))
		}

	case DetailLoadedMsg:
		if msg.Err == nil {
			m.detail = msg.Detail
			m.recent = msg.Shots
			m.guidance = msg.Guidance
			m.hasGuidance = msg.HasGuidance
			m.preview.SetContent(m.renderDetail())
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	if !m.loading {
		var lCmd tea.Cmd
		prevIdx := m.list.Index()
		m.list, lCmd = m.list.Update(msg)
		cmds = append(cmds, lCmd)
		if m.list.Index() != prevIdx {
			if item, ok := m.list.SelectedItem().(beanItem); ok {
				cmds = append(cmds, m.loadDetailCmd(item.bean.ID))
			}
		}

		var vCmd tea.Cmd
		m.preview, vCmd = m.preview.Update(msg)
		cmds = append(cmds, vCmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading beans…")
	}

	listW := m.width * 4 / 10
	detailW := m.width - listW

	listPane := lipgloss.NewStyle().
		Width(listW).
		Height(m.height).
		Render(m.list.View())

	detailPane := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Surface1).
		Background(theme.Mantle).
		Width(detailW - 2).
		Height(m.height - 2).
		Render(m.preview.View())

	return lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)
}

// SelectedBeanID returns the current selection's bean ID, if any.
func (m Model) SelectedBeanID() (string, bool) {
	if item, ok := m.list.SelectedItem().(beanItem); ok {
		return item.bean.ID, true
	}
	return "", false
}

// SelectedBeanName returns the current selection's display name.
func (m Model) SelectedBeanName() string {
	if item, ok := m.list.SelectedItem().(beanItem); ok {
		return item.bean.Name
	}
	return ""
}

// Filtering reports whether the list's search filter is currently active.
// The app model checks this to avoid consuming global keys during a search.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

// Refresh reloads the bean list and the selected detail pane.
func (m Model) Refresh() tea.Cmd {
	return m.loadBeansCmd()
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m *Model) resize() {
	listW := m.width * 4 / 10
	detailW := m.width - listW
	m.list.SetSize(listW, m.height)
	m.preview.Width = detailW - 4
	m.preview.Height = m.height - 4
}

func (m Model) renderDetail() string {
	d := m.detail
	if d.ID == "" {
		return theme.Muted.Render("Select a bean to see details")
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(d.Name) + "\n\n")
	sb.WriteString(theme.Muted.Render("roaster: ") + d.Roaster + "\n")
	sb.WriteString(theme.Muted.Render("roast:   ") + d.Roast + "\n")
	if d.Origin != "" {
		sb.WriteString(theme.Muted.Render("origin:  ") + d.Origin + "\n")
	}
	if len(d.Tags) > 0 {
		sb.WriteString(theme.Muted.Render("tags:    ") + strings.Join(d.Tags, ", ") + "\n")
	}
	sb.WriteString(theme.Muted.Render("note:    ") + d.NotePath + "\n")

	sb.WriteString("\n" + theme.Title.Render("Guidance") + "\n")
	if m.hasGuidance {
		g := m.guidance
		switch g.Direction {
		case "no_change":
			sb.WriteString(theme.Good.Render(fmt.Sprintf("keep %.2f", g.SuggestedSetting)))
		case "finer":
			sb.WriteString(theme.Warn.Render(fmt.Sprintf("go finer to %.2f (%d step(s))", g.SuggestedSetting, g.Steps)))
		default:
			sb.WriteString(theme.Warn.Render(fmt.Sprintf("go coarser to %.2f (%d step(s))", g.SuggestedSetting, g.Steps)))
		}
		sb.WriteString("\n" + theme.Muted.Render("confidence: ") + g.Confidence)
		sb.WriteString("\n" + theme.Muted.Render("reason:     ") + g.Reason + "\n")
	} else {
		sb.WriteString(theme.Muted.Render("no shots recorded yet") + "\n")
	}

	sb.WriteString("\n" + theme.Title.Render("Recent shots") + "\n")
	if len(m.recent) == 0 {
		sb.WriteString(theme.Muted.Render("none") + "\n")
	}
	for _, s := range m.recent {
		timeStr := "untimed"
		if s.ExtractionSeconds != nil {
			timeStr = fmt.Sprintf("%.1fs", *s.ExtractionSeconds)
		}
		taste := s.Taste
		if taste == "" {
			taste = "-"
		}
		sb.WriteString(fmt.Sprintf("%s  grind %.2f  1:%.2f  %s  %s\n",
			theme.Muted.Render(s.PulledAt.Format("01-02 15:04")), s.GrindSetting, s.Ratio, timeStr, taste))
	}

	sb.WriteString("\n" + theme.Muted.Render("r: refresh  tab: switch view"))
	return sb.String()
}

func (m Model) loadBeansCmd() tea.Cmd {
	return func() tea.Msg {
		beans, err := m.beans.List(context.Background())
		return BeansLoadedMsg{Beans: beans, Err: err}
	}
}

func (m Model) loadDetailCmd(beanID string) tea.Cmd {
	return func() tea.Msg {
		detail, err := m.beans.Get(context.Background(), beanID)
		if err != nil {
			return DetailLoadedMsg{Err: err}
		}
		shots, err := m.shots.List(context.Background(), beanID, recentShotLimit)
		if err != nil {
			return DetailLoadedMsg{Err: err}
		}
		guidance, err := m.advisor.Guidance(context.Background(), beanID)
		if err != nil {
			if !errors.Is(err, apperrors.ErrNotFound) {
				return DetailLoadedMsg{Err: err}
			}
			return DetailLoadedMsg{Detail: detail, Shots: shots}
		}
		return DetailLoadedMsg{Detail: detail, Shots: shots, Guidance: guidance, HasGuidance: true}
	}
}
