package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"ttm/internal/board"
	"ttm/internal/models"
	"ttm/internal/query"
	"ttm/internal/store"
	"ttm/internal/ui/keys"
	"ttm/internal/ui/styles"
)

// clamp returns val clamped between minVal and maxVal
func clamp(val, minVal, maxVal int) int {
	if val < minVal {
		return minVal
	}
	if val > maxVal {
		return maxVal
	}
	return val
}

// statusFilters cycles all → todo → in-progress → done.
var statusFilters = []string{
	query.StatusFilterAll,
	string(models.StatusTodo),
	string(models.StatusInProgress),
	string(models.StatusDone),
}

// BackToProjects signals to go back to the project list.
type BackToProjects struct{}

// TaskListView shows the tasks of one project: status filter, "my tasks"
// toggle, creation form, manual status advance and delete.
type TaskListView struct {
	store   *store.Store
	project models.Project
	tasks   []models.Task
	styles  *styles.Styles
	keys    keys.KeyMap

	width  int
	height int

	cursor    int
	filterIdx int
	mineOnly  bool

	// Task creation
	creating       bool
	newTitle       textinput.Model
	newDesc        textarea.Model
	assigneeCursor int // index into roster, -1 = unassigned
	focusIdx       int // 0=title, 1=desc, 2=assignee, 3=save

	// Delete confirmation
	confirmingDelete bool
	deleteTargetID   string
}

// NewTaskListView creates a task list for project.
func NewTaskListView(st *store.Store, project models.Project) *TaskListView {
	newTitle := textinput.New()
	newTitle.Placeholder = "Task title"
	newTitle.CharLimit = 200

	newDesc := textarea.New()
	newDesc.Placeholder = "Description (optional)"
	newDesc.CharLimit = 1000
	newDesc.SetWidth(50)
	newDesc.SetHeight(3)
	newDesc.ShowLineNumbers = false

	v := &TaskListView{
		store:          st,
		project:        project,
		styles:         styles.NewStyles(),
		keys:           keys.DefaultKeyMap(),
		newTitle:       newTitle,
		newDesc:        newDesc,
		assigneeCursor: -1,
	}
	v.reload()
	return v
}

func (v *TaskListView) Init() tea.Cmd {
	v.reload()
	return nil
}

// reload re-derives the visible task slice from the store through the
// query layer.
func (v *TaskListView) reload() {
	tasks := query.ByProject(v.store.Tasks(), v.project.ID)
	if v.mineOnly {
		tasks = query.AssignedTo(tasks, v.store.CurrentUserID())
	}
	v.tasks = query.ByStatusFilter(tasks, statusFilters[v.filterIdx])
	if v.cursor >= len(v.tasks) {
		v.cursor = max(0, len(v.tasks)-1)
	}
}

func (v *TaskListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		contentWidth := styles.ContentWidth(v.width)
		v.newDesc.SetWidth(clamp(contentWidth-10, 20, 50))
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

func (v *TaskListView) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Quit):
		return v, tea.Quit

	case key.Matches(msg, v.keys.Back):
		return v, func() tea.Msg { return BackToProjects{} }

	case key.Matches(msg, v.keys.Up):
		if v.cursor > 0 {
			v.cursor--
		}
		return v, nil

	case key.Matches(msg, v.keys.Down):
		if v.cursor < len(v.tasks)-1 {
			v.cursor++
		}
		return v, nil

	case key.Matches(msg, v.keys.Filter):
		v.filterIdx = (v.filterIdx + 1) % len(statusFilters)
		v.cursor = 0
		v.reload()
		return v, nil

	case key.Matches(msg, v.keys.Mine):
		v.mineOnly = !v.mineOnly
		v.cursor = 0
		v.reload()
		return v, nil

	case key.Matches(msg, v.keys.Advance):
		if v.cursor < len(v.tasks) {
			t := v.tasks[v.cursor]
			next := board.Next(t.Status)
			v.store.UpdateTask(t.ID, models.TaskPatch{Status: &next})
			v.reload()
		}
		return v, nil

	case key.Matches(msg, v.keys.New):
		v.startNewTask()
		return v, textinput.Blink

	case key.Matches(msg, v.keys.Delete):
		if v.cursor < len(v.tasks) {
			v.confirmingDelete = true
			v.deleteTargetID = v.tasks[v.cursor].ID
		}
		return v, nil
	}

	return v, nil
}

func (v *TaskListView) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		v.store.RemoveTask(v.deleteTargetID)
		v.confirmingDelete = false
		v.reload()
		return v, nil
	case "n", "N", "esc":
		v.confirmingDelete = false
		return v, nil
	}
	return v, nil
}

func (v *TaskListView) startNewTask() {
	v.creating = true
	v.focusIdx = 0
	v.assigneeCursor = -1
	v.newTitle = textinput.New()
	v.newTitle.Placeholder = "Task title"
	v.newTitle.CharLimit = 200
	v.newTitle.Focus()
	v.newDesc = textarea.New()
	v.newDesc.Placeholder = "Description (optional)"
	v.newDesc.CharLimit = 1000
	v.newDesc.SetWidth(clamp(styles.ContentWidth(v.width)-10, 20, 50))
	v.newDesc.SetHeight(3)
	v.newDesc.ShowLineNumbers = false
}

func (v *TaskListView) updateCreating(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back):
		v.creating = false
		return v, nil

	case msg.String() == "ctrl+s":
		return v, v.saveTask()

	case msg.String() == "shift+tab":
		v.focusIdx = (v.focusIdx + 3) % 4
		v.updateCreateFocus()
		return v, nil

	case key.Matches(msg, v.keys.Tab):
		v.focusIdx = (v.focusIdx + 1) % 4
		v.updateCreateFocus()
		return v, nil

	case key.Matches(msg, v.keys.Enter):
		switch v.focusIdx {
		case 0:
			v.focusIdx++
			v.updateCreateFocus()
			return v, nil
		case 2:
			// Assignee list: enter keeps the selection and moves on.
			v.focusIdx++
			v.updateCreateFocus()
			return v, nil
		case 3:
			return v, v.saveTask()
		}
		// Textarea keeps enter for newlines.

	case key.Matches(msg, v.keys.Up):
		if v.focusIdx == 2 && v.assigneeCursor > -1 {
			v.assigneeCursor--
			return v, nil
		}

	case key.Matches(msg, v.keys.Down):
		if v.focusIdx == 2 && v.assigneeCursor < len(v.store.Users())-1 {
			v.assigneeCursor++
			return v, nil
		}
	}

	var cmd tea.Cmd
	switch v.focusIdx {
	case 0:
		v.newTitle, cmd = v.newTitle.Update(msg)
	case 1:
		v.newDesc, cmd = v.newDesc.Update(msg)
	}
	return v, cmd
}

func (v *TaskListView) updateCreateFocus() {
	v.newTitle.Blur()
	v.newDesc.Blur()
	switch v.focusIdx {
	case 0:
		v.newTitle.Focus()
	case 1:
		v.newDesc.Focus()
	}
}

func (v *TaskListView) saveTask() tea.Cmd {
	title := strings.TrimSpace(v.newTitle.Value())
	if title == "" {
		v.creating = false
		return nil
	}

	assignee := ""
	users := v.store.Users()
	if v.assigneeCursor >= 0 && v.assigneeCursor < len(users) {
		assignee = users[v.assigneeCursor].ID
	}

	v.store.AddTask(title, strings.TrimSpace(v.newDesc.Value()),
		v.project.ID, v.store.CurrentUserID(), assignee)

	v.creating = false
	v.reload()
	return nil
}

// View renders the view
func (v *TaskListView) View() string {
	if v.confirmingDelete {
		return v.renderDeleteConfirm()
	}

	if v.creating {
		return v.renderCreateForm()
	}

	var b strings.Builder
	b.WriteString(v.renderHeader())
	b.WriteString("\n\n")
	b.WriteString(v.renderTaskList())
	b.WriteString("\n")
	b.WriteString(v.renderHelp())

	return styles.CenterView(b.String(), v.width, v.height)
}

func (v *TaskListView) renderHeader() string {
	s := v.styles

	dot := lipgloss.NewStyle().Foreground(lipgloss.Color(v.project.Color)).Render("●")
	title := s.Title.Render(dot + " " + v.project.Name)

	stats := query.StatsFor(v.store.Tasks(), v.project.ID)
	summary := s.TitleMuted.Render(fmt.Sprintf(
		"%d tasks • %d%% complete", stats.Total, stats.ProgressPercent))

	filterLabel := statusFilters[v.filterIdx]
	if v.mineOnly {
		filterLabel += " • mine"
	}
	filterLine := s.TitleMuted.Render("Filter: " + filterLabel)

	return lipgloss.JoinVertical(lipgloss.Left, title, summary, filterLine)
}

func (v *TaskListView) renderTaskList() string {
	s := v.styles

	if len(v.tasks) == 0 {
		return s.TitleMuted.Render("No tasks. Press 'n' to create one.")
	}

	users := v.store.Users()
	var items []string
	for i, t := range v.tasks {
		items = append(items, v.renderTaskItem(t, users, i == v.cursor))
	}
	return lipgloss.JoinVertical(lipgloss.Left, items...)
}

func (v *TaskListView) renderTaskItem(t models.Task, users []models.User, selected bool) string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)
	width := max(contentWidth-4, 20)

	badge := s.Badge.Foreground(styles.StatusColor(t.Status)).Render(t.Status.Label())

	assignee := "unassigned"
	if t.AssignedTo != "" {
		assignee = "unknown"
		if u := query.FindUser(users, t.AssignedTo); u != nil {
			assignee = u.Name
		}
	}

	titleLine := t.Title
	metaLine := badge + " " + s.TitleMuted.Render("· "+assignee)

	var titleStyle, metaStyle lipgloss.Style
	if selected {
		titleStyle = s.ListSelected.Width(width)
		metaStyle = s.ListSelected.Width(width)
	} else {
		titleStyle = s.ListItem.Width(width)
		metaStyle = s.ListItem.Width(width)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(titleLine),
		metaStyle.Render(metaLine),
	) + "\n"
}

func (v *TaskListView) renderCreateForm() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	titleStyle := s.Input
	descStyle := s.Input
	assigneeStyle := s.Input
	btnStyle := s.Button

	switch v.focusIdx {
	case 0:
		titleStyle = s.InputFocused
	case 1:
		descStyle = s.InputFocused
	case 2:
		assigneeStyle = s.InputFocused
	case 3:
		btnStyle = s.ButtonFocused
	}

	inputWidth := clamp(contentWidth-6, 20, 50)

	form := lipgloss.JoinVertical(lipgloss.Left,
		s.Title.Render("New Task"),
		"",
		"Title:",
		titleStyle.Width(inputWidth).Render(v.newTitle.View()),
		"",
		"Description:",
		descStyle.Render(v.newDesc.View()),
		"",
		"Assignee:",
		v.renderAssigneePicker(assigneeStyle, inputWidth),
		"",
		btnStyle.Render(" Save "),
		"",
		s.TitleMuted.Render("Tab: next • ↑↓: pick assignee • Ctrl+S: save • Esc: cancel"),
	)

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		form,
	)
	return styles.CenterView(centered, v.width, v.height)
}

func (v *TaskListView) renderAssigneePicker(containerStyle lipgloss.Style, width int) string {
	s := v.styles

	var items []string
	unassigned := "( ) Unassigned"
	if v.assigneeCursor == -1 {
		unassigned = "(•) Unassigned"
	}
	if v.focusIdx == 2 && v.assigneeCursor == -1 {
		items = append(items, s.ListSelected.Render(unassigned))
	} else {
		items = append(items, s.ListItem.Render(unassigned))
	}

	for i, u := range v.store.Users() {
		marker := "( )"
		if v.assigneeCursor == i {
			marker = "(•)"
		}
		line := marker + " " + u.Name
		if v.focusIdx == 2 && v.assigneeCursor == i {
			items = append(items, s.ListSelected.Render(line))
		} else {
			items = append(items, s.ListItem.Render(line))
		}
	}

	content := lipgloss.JoinVertical(lipgloss.Left, items...)
	return containerStyle.Width(width).Render(content)
}

func (v *TaskListView) renderHelp() string {
	return v.styles.Help.Render(
		fmt.Sprintf("%s new • %s advance • %s del • %s filter • %s mine • %s back • %s quit",
			v.styles.HelpKey.Render("n"),
			v.styles.HelpKey.Render("x"),
			v.styles.HelpKey.Render("d"),
			v.styles.HelpKey.Render("f"),
			v.styles.HelpKey.Render("m"),
			v.styles.HelpKey.Render("esc"),
			v.styles.HelpKey.Render("q"),
		),
	)
}

func (v *TaskListView) renderDeleteConfirm() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	content := lipgloss.JoinVertical(lipgloss.Center,
		s.Title.Foreground(styles.Current.Error).Render("Delete Task?"),
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
