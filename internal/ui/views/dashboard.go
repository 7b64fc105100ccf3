package views

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"ttm/internal/query"
	"ttm/internal/store"
	"ttm/internal/ui/keys"
	"ttm/internal/ui/styles"
)

// DashboardView shows overall counts and a progress card per project. It is
// a pure read-side projection; selecting a card opens the project.
type DashboardView struct {
	store  *store.Store
	styles *styles.Styles
	keys   keys.KeyMap

	width  int
	height int
	cursor int
}

// NewDashboardView creates the dashboard.
func NewDashboardView(st *store.Store) *DashboardView {
	return &DashboardView{
		store:  st,
		styles: styles.NewStyles(),
		keys:   keys.DefaultKeyMap(),
	}
}

func (v *DashboardView) Init() tea.Cmd {
	return nil
}

func (v *DashboardView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case tea.KeyMsg:
		projects := v.store.Projects()
		switch {
		case key.Matches(msg, v.keys.Quit):
			return v, tea.Quit

		case key.Matches(msg, v.keys.Up):
			if v.cursor > 0 {
				v.cursor--
			}
			return v, nil

		case key.Matches(msg, v.keys.Down):
			if v.cursor < len(projects)-1 {
				v.cursor++
			}
			return v, nil

		case key.Matches(msg, v.keys.Enter):
			if v.cursor < len(projects) {
				p := projects[v.cursor]
				return v, func() tea.Msg { return SelectedProject{Project: p} }
			}
			return v, nil
		}
	}

	return v, nil
}

func (v *DashboardView) View() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	projects := v.store.Projects()
	tasks := v.store.Tasks()
	_, inProgress, done := query.CountByStatus(tasks)

	overall := s.TitleMuted.Render(fmt.Sprintf(
		"%d projects • %d tasks • %d in progress • %d completed",
		len(projects), len(tasks), inProgress, done))

	var cards []string
	if len(projects) == 0 {
		cards = append(cards, s.TitleMuted.Render("No projects yet. Create one to get started."))
	}
	barWidth := clamp(contentWidth-40, 10, 30)
	for i, p := range projects {
		stats := query.StatsFor(tasks, p.ID)
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color(p.Color)).Render("●")
		line := fmt.Sprintf("%s %s  %s %3d%%  %s",
			dot, p.Name,
			styles.ProgressBar(stats.ProgressPercent, barWidth, p.Color),
			stats.ProgressPercent,
			s.TitleMuted.Render(fmt.Sprintf("%d/%d/%d", stats.Todo, stats.InProgress, stats.Done)),
		)
		if i == v.cursor {
			cards = append(cards, s.ListSelected.Render(line))
		} else {
			cards = append(cards, s.ListItem.Render(line))
		}
	}

	help := s.Help.Render(fmt.Sprintf("%s open project • %s quit",
		s.HelpKey.Render("↵"), s.HelpKey.Render("q")))

	content := lipgloss.JoinVertical(lipgloss.Left,
		s.Title.Render("Dashboard"),
		overall,
		"",
		s.TitleMuted.Render("Projects  (todo/in progress/done)"),
		lipgloss.JoinVertical(lipgloss.Left, cards...),
		help,
	)
	return styles.CenterView(content, v.width, v.height)
}
