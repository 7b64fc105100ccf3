package views

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"ttm/internal/models"
	"ttm/internal/store"
	"ttm/internal/ui/keys"
	"ttm/internal/ui/styles"
)

// LoggedIn signals that a session user has been selected.
type LoggedIn struct {
	User models.User
}

// LoginView lets the user pick an identity from the roster. This is local
// role selection, not authentication.
type LoginView struct {
	store  *store.Store
	styles *styles.Styles
	keys   keys.KeyMap

	width  int
	height int
	cursor int
}

// NewLoginView creates the user picker.
func NewLoginView(st *store.Store) *LoginView {
	return &LoginView{
		store:  st,
		styles: styles.NewStyles(),
		keys:   keys.DefaultKeyMap(),
	}
}

func (v *LoginView) Init() tea.Cmd {
	return nil
}

func (v *LoginView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case tea.KeyMsg:
		users := v.store.Users()
		switch {
		case key.Matches(msg, v.keys.Quit):
			return v, tea.Quit

		case key.Matches(msg, v.keys.Up):
			if v.cursor > 0 {
				v.cursor--
			}
			return v, nil

		case key.Matches(msg, v.keys.Down):
			if v.cursor < len(users)-1 {
				v.cursor++
			}
			return v, nil

		case key.Matches(msg, v.keys.Enter):
			if v.cursor < len(users) {
				user := users[v.cursor]
				v.store.SetCurrentUser(user.ID)
				return v, func() tea.Msg { return LoggedIn{User: user} }
			}
			return v, nil
		}
	}

	return v, nil
}

func (v *LoginView) View() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	var items []string
	for i, u := range v.store.Users() {
		badge := s.Badge.Foreground(styles.RoleColor(u.Role)).Render(string(u.Role))
		line := fmt.Sprintf("%s  %s %s", u.Name, s.TitleMuted.Render(u.Email), badge)
		if i == v.cursor {
			items = append(items, s.ListSelected.Render(line))
		} else {
			items = append(items, s.ListItem.Render(line))
		}
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		s.Title.Render("TTM — Team Task Manager"),
		s.TitleMuted.Render("Select a user to sign in"),
		"",
		lipgloss.JoinVertical(lipgloss.Left, items...),
		"",
		s.Help.Render(fmt.Sprintf("%s select • %s quit",
			s.HelpKey.Render("↵"), s.HelpKey.Render("q"))),
	)

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		s.Panel.Render(content),
	)
	return styles.CenterView(centered, v.width, v.height)
}
