package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"ttm/internal/models"
	"ttm/internal/query"
	"ttm/internal/store"
	"ttm/internal/ui/keys"
	"ttm/internal/ui/styles"
)

// roleFilters cycles all → admin → member.
var roleFilters = []string{"all", string(models.RoleAdmin), string(models.RoleMember)}

// TeamView manages the roster. It is only reachable for admins; the
// navigation gate lives in the query layer. The bootstrap default user
// cannot be removed here, so the roster never ends up empty.
type TeamView struct {
	store  *store.Store
	users  []models.User
	styles *styles.Styles
	keys   keys.KeyMap

	width  int
	height int

	cursor    int
	filterIdx int

	// User creation
	creating bool
	newName  textinput.Model
	newEmail textinput.Model
	newRole  models.Role
	focusIdx int // 0=name, 1=email, 2=role, 3=save

	// Delete confirmation
	confirmingDelete bool
	deleteTargetID   string
}

// NewTeamView creates the roster view.
func NewTeamView(st *store.Store) *TeamView {
	v := &TeamView{
		store:   st,
		styles:  styles.NewStyles(),
		keys:    keys.DefaultKeyMap(),
		newRole: models.RoleMember,
	}
	v.reload()
	return v
}

func (v *TeamView) Init() tea.Cmd {
	v.reload()
	return nil
}

func (v *TeamView) reload() {
	users := v.store.Users()
	if filter := roleFilters[v.filterIdx]; filter != "all" {
		var out []models.User
		for _, u := range users {
			if string(u.Role) == filter {
				out = append(out, u)
			}
		}
		users = out
	}
	v.users = users
	if v.cursor >= len(v.users) {
		v.cursor = max(0, len(v.users)-1)
	}
}

func (v *TeamView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case tea.KeyMsg:
		if v.confirmingDelete {
			return v.updateConfirmDelete(msg)
		}
		if v.creating {
			return v.updateCreating(msg)
		}
		return v.updateNormal(msg)
	}

	return v, nil
}

func (v *TeamView) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Quit):
		return v, tea.Quit

	case key.Matches(msg, v.keys.Up):
		if v.cursor > 0 {
			v.cursor--
		}
		return v, nil

	case key.Matches(msg, v.keys.Down):
		if v.cursor < len(v.users)-1 {
			v.cursor++
		}
		return v, nil

	case key.Matches(msg, v.keys.Filter):
		v.filterIdx = (v.filterIdx + 1) % len(roleFilters)
		v.cursor = 0
		v.reload()
		return v, nil

	case key.Matches(msg, v.keys.New):
		v.startNewUser()
		return v, textinput.Blink

	case msg.String() == "r":
		// Toggle the selected user's role.
		if v.cursor < len(v.users) {
			role := models.RoleMember
			if v.users[v.cursor].Role == models.RoleMember {
				role = models.RoleAdmin
			}
			v.store.UpdateUser(v.users[v.cursor].ID, models.UserPatch{Role: &role})
			v.reload()
		}
		return v, nil

	case key.Matches(msg, v.keys.Delete):
		if v.cursor < len(v.users) {
			u := v.users[v.cursor]
			if u.ID == models.DefaultUserID {
				// The seeded account stays.
				return v, nil
			}
			v.confirmingDelete = true
			v.deleteTargetID = u.ID
		}
		return v, nil
	}

	return v, nil
}

func (v *TeamView) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		// Tasks created by or assigned to this user keep their ids; those
		// references dangle and render as unknown.
		v.store.RemoveUser(v.deleteTargetID)
		v.confirmingDelete = false
		v.reload()
		return v, nil
	case "n", "N", "esc":
		v.confirmingDelete = false
		return v, nil
	}
	return v, nil
}

func (v *TeamView) startNewUser() {
	v.creating = true
	v.focusIdx = 0
	v.newRole = models.RoleMember
	v.newName = textinput.New()
	v.newName.Placeholder = "Name"
	v.newName.CharLimit = 100
	v.newName.Focus()
	v.newEmail = textinput.New()
	v.newEmail.Placeholder = "Email"
	v.newEmail.CharLimit = 100
}

func (v *TeamView) updateCreating(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back):
		v.creating = false
		return v, nil

	case msg.String() == "ctrl+s":
		v.submitCreate()
		return v, nil

	case msg.String() == "shift+tab":
		v.focusIdx = (v.focusIdx + 3) % 4
		v.updateCreateFocus()
		return v, nil

	case key.Matches(msg, v.keys.Tab):
		v.focusIdx = (v.focusIdx + 1) % 4
		v.updateCreateFocus()
		return v, nil

	case key.Matches(msg, v.keys.Enter), msg.String() == " ":
		if v.focusIdx == 2 {
			if v.newRole == models.RoleMember {
				v.newRole = models.RoleAdmin
			} else {
				v.newRole = models.RoleMember
			}
			return v, nil
		}
		if v.focusIdx == 3 {
			v.submitCreate()
			return v, nil
		}
		if key.Matches(msg, v.keys.Enter) {
			v.focusIdx++
			v.updateCreateFocus()
			return v, nil
		}
	}

	var cmd tea.Cmd
	switch v.focusIdx {
	case 0:
		v.newName, cmd = v.newName.Update(msg)
	case 1:
		v.newEmail, cmd = v.newEmail.Update(msg)
	}
	return v, cmd
}

func (v *TeamView) updateCreateFocus() {
	v.newName.Blur()
	v.newEmail.Blur()
	switch v.focusIdx {
	case 0:
		v.newName.Focus()
	case 1:
		v.newEmail.Focus()
	}
}

func (v *TeamView) submitCreate() {
	name := strings.TrimSpace(v.newName.Value())
	if name == "" {
		return
	}
	v.store.AddUser(name, strings.TrimSpace(v.newEmail.Value()), v.newRole)
	v.creating = false
	v.reload()
}

// View renders the view
func (v *TeamView) View() string {
	if v.confirmingDelete {
		return v.renderDeleteConfirm()
	}

	if v.creating {
		return v.renderCreateForm()
	}

	s := v.styles

	filterLine := s.TitleMuted.Render("Role: " + roleFilters[v.filterIdx])

	var items []string
	if len(v.users) == 0 {
		items = append(items, s.TitleMuted.Render("Nobody matches this filter."))
	}
	tasks := v.store.Tasks()
	for i, u := range v.users {
		items = append(items, v.renderUserItem(u, len(query.AssignedTo(tasks, u.ID)), i == v.cursor))
	}

	help := s.Help.Render(
		fmt.Sprintf("%s new • %s toggle role • %s del • %s filter • %s quit",
			s.HelpKey.Render("n"),
			s.HelpKey.Render("r"),
			s.HelpKey.Render("d"),
			s.HelpKey.Render("f"),
			s.HelpKey.Render("q"),
		),
	)

	content := lipgloss.JoinVertical(lipgloss.Left,
		s.Title.Render("Team"),
		filterLine,
		"",
		lipgloss.JoinVertical(lipgloss.Left, items...),
		help,
	)
	return styles.CenterView(content, v.width, v.height)
}

func (v *TeamView) renderUserItem(u models.User, assigned int, selected bool) string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)
	width := max(contentWidth-4, 20)

	badge := s.Badge.Foreground(styles.RoleColor(u.Role)).Render(string(u.Role))
	line := fmt.Sprintf("%s  %s %s %s", u.Name,
		s.TitleMuted.Render(u.Email),
		badge,
		s.TitleMuted.Render(fmt.Sprintf("· %d assigned", assigned)),
	)
	if u.ID == models.DefaultUserID {
		line += s.TitleMuted.Render(" · default")
	}

	if selected {
		return s.ListSelected.Width(width).Render(line)
	}
	return s.ListItem.Width(width).Render(line)
}

func (v *TeamView) renderCreateForm() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	nameStyle := s.Input
	emailStyle := s.Input
	roleStyle := s.Input
	btnStyle := s.Button

	switch v.focusIdx {
	case 0:
		nameStyle = s.InputFocused
	case 1:
		emailStyle = s.InputFocused
	case 2:
		roleStyle = s.InputFocused
	case 3:
		btnStyle = s.ButtonFocused
	}

	inputWidth := clamp(contentWidth-6, 20, 50)

	roleLabel := string(v.newRole)

	form := lipgloss.JoinVertical(lipgloss.Left,
		s.Title.Render("New User"),
		"",
		"Name:",
		nameStyle.Width(inputWidth).Render(v.newName.View()),
		"",
		"Email:",
		emailStyle.Width(inputWidth).Render(v.newEmail.View()),
		"",
		"Role (space toggles):",
		roleStyle.Width(20).Render(roleLabel),
		"",
		btnStyle.Render(" Save "),
		"",
		s.TitleMuted.Render("Tab: next • Ctrl+S: save • Esc: cancel"),
	)

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		form,
	)
	return styles.CenterView(centered, v.width, v.height)
}

func (v *TeamView) renderDeleteConfirm() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	content := lipgloss.JoinVertical(lipgloss.Center,
		s.Title.Foreground(styles.Current.Error).Render("Remove User?"),
		"",
		s.TitleMuted.Render("Their tasks are kept and show as unassigned."),
		"",
		lipgloss.JoinHorizontal(lipgloss.Center,
			s.ButtonPrimary.Render(" Y - Yes "),
			"  ",
			s.Button.Render(" N - No "),
		),
	)

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		content,
	)
	return styles.CenterView(centered, v.width, v.height)
}
