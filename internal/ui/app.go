package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"ttm/internal/query"
	"ttm/internal/store"
	"ttm/internal/ui/keys"
	"ttm/internal/ui/styles"
	"ttm/internal/ui/views"
)

// Currently active page
type Page string

const (
	PageLogin     Page = "login"
	PageDashboard Page = "dashboard"
	PageProjects  Page = "projects"
	PageTasks     Page = "tasks"
	PageBoard     Page = "board"
	PageTeam      Page = "team"
)

// App is the root model. It owns the page switcher and the role-gated
// navigation bar; the store is injected once here and shared by every view.
type App struct {
	store       *store.Store
	currentPage Page
	styles      *styles.Styles
	keys        keys.KeyMap

	login     *views.LoginView
	dashboard *views.DashboardView
	projects  *views.ProjectListView
	tasks     *views.TaskListView
	board     *views.BoardView
	team      *views.TeamView

	width  int
	height int
}

// NewApp creates the application rooted on st.
func NewApp(st *store.Store) *App {
	a := &App{
		store:       st,
		styles:      styles.NewStyles(),
		keys:        keys.DefaultKeyMap(),
		login:       views.NewLoginView(st),
		dashboard:   views.NewDashboardView(st),
		projects:    views.NewProjectListView(st),
		board:       views.NewBoardView(st),
		team:        views.NewTeamView(st),
		currentPage: PageLogin,
	}
	// A persisted session skips the login screen.
	if st.CurrentUser() != nil {
		a.currentPage = PageDashboard
	}
	return a
}

func (a *App) Init() tea.Cmd {
	return a.active().Init()
}

// active returns the model for the current page.
func (a *App) active() tea.Model {
	switch a.currentPage {
	case PageLogin:
		return a.login
	case PageProjects:
		return a.projects
	case PageTasks:
		if a.tasks != nil {
			return a.tasks
		}
		return a.projects
	case PageBoard:
		return a.board
	case PageTeam:
		return a.team
	}
	return a.dashboard
}

// switchTo activates a page and refreshes its view from the store.
func (a *App) switchTo(page Page) tea.Cmd {
	a.currentPage = page
	return tea.Batch(
		a.active().Init(),
		func() tea.Msg {
			return tea.WindowSizeMsg{Width: a.width, Height: a.height}
		},
	)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Every view tracks its own size; fan the resize out.
		a.login.Update(msg)
		a.dashboard.Update(msg)
		a.projects.Update(msg)
		a.board.Update(msg)
		a.team.Update(msg)
		if a.tasks != nil {
			a.tasks.Update(msg)
		}
		return a, nil

	case views.LoggedIn:
		return a, a.switchTo(PageDashboard)

	case views.SelectedProject:
		a.tasks = views.NewTaskListView(a.store, msg.Project)
		return a, a.switchTo(PageTasks)

	case views.BackToProjects:
		return a, a.switchTo(PageProjects)

	case tea.KeyMsg:
		if a.currentPage != PageLogin {
			if cmd, handled := a.handleNav(msg); handled {
				return a, cmd
			}
		}
	}

	var cmd tea.Cmd
	_, cmd = a.active().Update(msg)
	return a, cmd
}

// handleNav routes the global navigation keys: number keys jump to a
// surface the current user's role may see, ctrl+l logs out.
func (a *App) handleNav(msg tea.KeyMsg) (tea.Cmd, bool) {
	if key.Matches(msg, a.keys.Logout) {
		a.store.SetCurrentUser("")
		a.tasks = nil
		return a.switchTo(PageLogin), true
	}

	visible := query.VisibleNav(query.NavItems, a.store.CurrentUser())
	for i, item := range visible {
		if msg.String() == fmt.Sprintf("%d", i+1) {
			return a.switchTo(Page(item.ID)), true
		}
	}
	return nil, false
}

func (a *App) View() string {
	if a.currentPage == PageLogin {
		return a.login.View()
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		a.renderNav(),
		a.active().View(),
	)
}

// renderNav draws the tab bar. Only surfaces allowed for the current
// user's role appear; an unknown session renders the member set.
func (a *App) renderNav() string {
	s := a.styles

	var tabs []string
	for i, item := range query.VisibleNav(query.NavItems, a.store.CurrentUser()) {
		label := fmt.Sprintf("%d %s", i+1, item.Label)
		style := s.Tab
		if Page(item.ID) == a.currentPage ||
			(item.ID == string(PageProjects) && a.currentPage == PageTasks) {
			style = s.TabActive
		}
		tabs = append(tabs, style.Render(label))
	}

	session := ""
	if u := a.store.CurrentUser(); u != nil {
		badge := s.Badge.Foreground(styles.RoleColor(u.Role)).Render(string(u.Role))
		session = s.StatusBar.Render(u.Name + " " + badge)
	}

	bar := lipgloss.JoinHorizontal(lipgloss.Center, tabs...)
	if session != "" {
		bar = lipgloss.JoinHorizontal(lipgloss.Center, bar, "  ", session)
	}
	return styles.CenterView(bar+"\n", a.width, 1)
}
