package views

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"ttm/internal/board"
	"ttm/internal/models"
	"ttm/internal/query"
	"ttm/internal/store"
	"ttm/internal/ui/keys"
	"ttm/internal/ui/styles"
)

// BoardView is the Kanban board: three status columns, cursor navigation,
// and grab-and-drop moves between columns. A grabbed card dropped over a
// column (or a card in one) becomes exactly one status update; an
// inconclusive drop is a no-op.
type BoardView struct {
	store  *store.Store
	styles *styles.Styles
	keys   keys.KeyMap

	width  int
	height int

	cols [3]board.Column
	col  int    // focused column
	rows [3]int // cursor row per column

	grabbedID string // id of the card being carried, "" when none
}

// NewBoardView creates the board.
func NewBoardView(st *store.Store) *BoardView {
	v := &BoardView{
		store:  st,
		styles: styles.NewStyles(),
		keys:   keys.DefaultKeyMap(),
	}
	v.reload()
	return v
}

func (v *BoardView) Init() tea.Cmd {
	v.reload()
	return nil
}

// reload repartitions the task collection into columns and clamps cursors.
func (v *BoardView) reload() {
	v.cols = board.Columns(v.store.Tasks())
	for i := range v.rows {
		if v.rows[i] >= len(v.cols[i].Tasks) {
			v.rows[i] = max(0, len(v.cols[i].Tasks)-1)
		}
	}
}

// selected returns the task under the cursor in the focused column, or nil
// when that column is empty.
func (v *BoardView) selected() *models.Task {
	tasks := v.cols[v.col].Tasks
	if len(tasks) == 0 || v.rows[v.col] >= len(tasks) {
		return nil
	}
	t := tasks[v.rows[v.col]]
	return &t
}

// dropTarget describes what sits under the cursor: a card with its column,
// or the bare column when it has no cards.
func (v *BoardView) dropTarget() board.DropTarget {
	column := v.cols[v.col]
	if t := v.selected(); t != nil {
		return board.DropTarget{ID: t.ID, Column: column.Status}
	}
	return board.DropTarget{ID: string(column.Status)}
}

func (v *BoardView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, v.keys.Quit):
			return v, tea.Quit

		case key.Matches(msg, v.keys.Back):
			if v.grabbedID != "" {
				v.grabbedID = ""
				return v, nil
			}
			return v, nil

		case key.Matches(msg, v.keys.Left):
			if v.col > 0 {
				v.col--
			}
			return v, nil

		case key.Matches(msg, v.keys.Right):
			if v.col < len(v.cols)-1 {
				v.col++
			}
			return v, nil

		case key.Matches(msg, v.keys.Up):
			if v.rows[v.col] > 0 {
				v.rows[v.col]--
			}
			return v, nil

		case key.Matches(msg, v.keys.Down):
			if v.rows[v.col] < len(v.cols[v.col].Tasks)-1 {
				v.rows[v.col]++
			}
			return v, nil

		case key.Matches(msg, v.keys.Enter), msg.String() == " ":
			if v.grabbedID == "" {
				if t := v.selected(); t != nil {
					v.grabbedID = t.ID
				}
				return v, nil
			}
			v.drop()
			return v, nil

		case key.Matches(msg, v.keys.Advance):
			if t := v.selected(); t != nil {
				next := board.Next(t.Status)
				v.store.UpdateTask(t.ID, models.TaskPatch{Status: &next})
				v.reload()
			}
			return v, nil
		}
	}

	return v, nil
}

// drop releases the grabbed card onto whatever the cursor points at.
func (v *BoardView) drop() {
	target := v.dropTarget()
	taskID := v.grabbedID
	v.grabbedID = ""

	status, ok := board.ResolveDrop(target)
	if !ok {
		return
	}
	v.store.UpdateTask(taskID, models.TaskPatch{Status: &status})
	v.reload()
}

func (v *BoardView) View() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)
	colWidth := max(contentWidth/3-4, 16)

	todo, inProgress, done := query.CountByStatus(v.store.Tasks())
	counts := s.TitleMuted.Render(fmt.Sprintf(
		"to do %d • in progress %d • completed %d", todo, inProgress, done))

	var rendered []string
	for i, col := range v.cols {
		rendered = append(rendered, v.renderColumn(i, col, colWidth))
	}

	help := s.Help.Render(fmt.Sprintf(
		"%s move • %s grab/drop • %s advance • %s cancel",
		s.HelpKey.Render("←↓↑→"),
		s.HelpKey.Render("↵"),
		s.HelpKey.Render("x"),
		s.HelpKey.Render("esc"),
	))

	content := lipgloss.JoinVertical(lipgloss.Left,
		s.Title.Render("Board"),
		counts,
		"",
		lipgloss.JoinHorizontal(lipgloss.Top, rendered...),
		help,
	)
	return styles.CenterView(content, v.width, v.height)
}

func (v *BoardView) renderColumn(idx int, col board.Column, width int) string {
	s := v.styles

	header := lipgloss.NewStyle().
		Foreground(styles.StatusColor(col.Status)).
		Bold(true).
		Render(fmt.Sprintf("%s (%d)", col.Status.Label(), len(col.Tasks)))

	lines := []string{header, ""}
	if len(col.Tasks) == 0 {
		lines = append(lines, s.TitleMuted.Render("No tasks here"))
	}
	for row, t := range col.Tasks {
		style := s.Card
		switch {
		case t.ID == v.grabbedID:
			style = s.CardGrabbed
		case idx == v.col && row == v.rows[idx]:
			style = s.CardSelected
		}
		lines = append(lines, style.Width(width-2).Render(truncate(t.Title, width-4)))
	}

	colStyle := s.Column
	if idx == v.col {
		colStyle = s.ColumnFocused
	}
	return colStyle.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// truncate shortens text to fit a card width.
func truncate(text string, width int) string {
	if width < 1 || len(text) <= width {
		return text
	}
	if width <= 1 {
		return text[:width]
	}
	return text[:width-1] + "…"
}
