// ABOUTME: Bubble Tea model that drives one workout session interactively.
// ABOUTME: Edits sets in place, shows the running timer, and finishes or cancels on request.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/harperreed/gym/internal/models"
	"github.com/harperreed/gym/internal/session"
	"github.com/harperreed/gym/internal/storage"
	"github.com/harperreed/gym/internal/timer"
)

// ─── messages ────────────────────────────────────────────────────────────────

type tickMsg time.Time

type finishedMsg struct {
	workout *models.Workout
	err     error
}

// ─── model ───────────────────────────────────────────────────────────────────

// row addresses one set on screen.
type row struct {
	exercise, set int
}

// Model is the session screen.
type Model struct {
	ctx  context.Context
	sess *session.Session

	keys      keyMap
	help      help.Model
	input     textinput.Model
	editing   bool
	confirm   bool
	finishing bool

	cursor int
	field  session.Field
	status string
	isErr  bool

	workout *models.Workout
	err     error
	quit    bool

	width  int
	height int
}

// New builds the screen for an active session.
func New(ctx context.Context, sess *session.Session) Model {
	ti := textinput.New()
	ti.CharLimit = 8
	ti.Width = 8
	ti.Prompt = ""

	return Model{
		ctx:   ctx,
		sess:  sess,
		keys:  defaultKeys(),
		help:  help.New(),
		input: ti,
		field: session.FieldWeight,
	}
}

// Workout returns the stored workout after a successful finish.
func (m Model) Workout() *models.Workout { return m.workout }

// Err returns a non-fatal error from finishing, such as a failed record update.
func (m Model) Err() error { return m.err }

// Cancelled reports whether the user discarded the session.
func (m Model) Cancelled() bool { return m.sess.State() == session.StateCancelled }

func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// ─── update ──────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tickMsg:
		if m.quit {
			return m, nil
		}
		return m, tick()

	case finishedMsg:
		m.finishing = false
		if msg.workout == nil {
			m.setError(fmt.Sprintf("could not save workout: %v", msg.err))
			return m, nil
		}
		m.workout = msg.workout
		m.err = msg.err
		m.quit = true
		return m, tea.Quit

	case tea.KeyMsg:
		if m.editing {
			return m.updateEditing(msg)
		}
		if m.confirm {
			return m.updateConfirm(msg)
		}
		if m.finishing {
			return m, nil
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	rows := m.rows()
	m.status = ""
	m.isErr = false

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(rows)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Left), key.Matches(msg, m.keys.Right):
		if m.field == session.FieldWeight {
			m.field = session.FieldReps
		} else {
			m.field = session.FieldWeight
		}
	case key.Matches(msg, m.keys.Edit):
		if len(rows) == 0 {
			return m, nil
		}
		m.editing = true
		m.input.SetValue(m.currentValue(rows[m.cursor]))
		m.input.CursorEnd()
		return m, m.input.Focus()
	case key.Matches(msg, m.keys.Toggle):
		if len(rows) == 0 {
			return m, nil
		}
		r := rows[m.cursor]
		if _, err := m.sess.ToggleSetComplete(r.exercise, r.set); err != nil {
			m.setError(err.Error())
		}
	case key.Matches(msg, m.keys.AddSet):
		if len(rows) == 0 {
			return m, nil
		}
		r := rows[m.cursor]
		if err := m.sess.AddSet(r.exercise); err != nil {
			m.setError(err.Error())
			return m, nil
		}
		// Land on the new set.
		m.cursor = m.lastRowOf(r.exercise)
	case key.Matches(msg, m.keys.Pause):
		m.togglePause()
	case key.Matches(msg, m.keys.Finish):
		m.finishing = true
		m.status = "saving…"
		return m, m.finishCmd()
	case key.Matches(msg, m.keys.Cancel):
		m.confirm = true
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m Model) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.editing = false
		m.input.Blur()
		return m, nil
	case tea.KeyEnter:
		m.editing = false
		m.input.Blur()
		m.commitEdit()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch strings.ToLower(msg.String()) {
	case "y":
		m.confirm = false
		if err := m.sess.Cancel(); err != nil {
			m.setError(err.Error())
			return m, nil
		}
		m.quit = true
		return m, tea.Quit
	case "n", "esc":
		m.confirm = false
	}
	return m, nil
}

func (m *Model) commitEdit() {
	rows := m.rows()
	if m.cursor >= len(rows) {
		return
	}
	r := rows[m.cursor]

	raw := strings.TrimSpace(m.input.Value())
	if raw == "" {
		raw = "0"
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		m.setError(fmt.Sprintf("%q is not a number", raw))
		return
	}
	if err := m.sess.UpdateSet(r.exercise, r.set, m.field, v); err != nil {
		m.setError(err.Error())
	}
}

func (m *Model) togglePause() {
	var err error
	if m.sess.Paused() {
		err = m.sess.Resume()
		m.status = "resumed"
	} else {
		err = m.sess.Pause()
		m.status = "paused"
	}
	if err != nil {
		m.setError(err.Error())
	}
}

func (m *Model) setError(s string) {
	m.status = s
	m.isErr = true
}

func (m Model) finishCmd() tea.Cmd {
	ctx, sess := m.ctx, m.sess
	return func() tea.Msg {
		w, err := sess.Finalize(ctx)
		return finishedMsg{workout: w, err: err}
	}
}

func (m Model) rows() []row {
	var rows []row
	for i, e := range m.sess.Entries() {
		for j := range e.Sets {
			rows = append(rows, row{exercise: i, set: j})
		}
	}
	return rows
}

func (m Model) lastRowOf(exercise int) int {
	idx := 0
	for i, r := range m.rows() {
		if r.exercise == exercise {
			idx = i
		}
	}
	return idx
}

func (m Model) currentValue(r row) string {
	s := m.sess.Entries()[r.exercise].Sets[r.set]
	if m.field == session.FieldReps {
		return strconv.Itoa(s.Reps)
	}
	return strconv.FormatFloat(s.Weight, 'f', -1, 64)
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	if m.quit {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(m.renderHeader())
	sb.WriteString("\n\n")

	exercises := m.sess.Exercises()
	rows := m.rows()
	current := row{exercise: -1}
	if m.cursor < len(rows) {
		current = rows[m.cursor]
	}

	var cards []string
	for i, e := range m.sess.Entries() {
		cards = append(cards, m.renderExercise(i, exercises[i], e, current))
	}
	sb.WriteString(lipgloss.JoinVertical(lipgloss.Left, cards...))
	sb.WriteString("\n")

	switch {
	case m.confirm:
		sb.WriteString(warnStyle.Render("Cancel this workout? Nothing will be saved. (y/n)"))
	case m.status != "" && m.isErr:
		sb.WriteString(errorStyle.Render(m.status))
	case m.status != "":
		sb.WriteString(mutedStyle.Render(m.status))
	}
	sb.WriteString("\n")
	sb.WriteString(m.help.View(m.keys))
	return sb.String()
}

func (m Model) renderHeader() string {
	tpl := m.sess.Template()
	clock := timer.Format(m.sess.Elapsed())
	if m.sess.Paused() {
		clock += " (paused)"
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		titleStyle.Render(tpl.Name),
		mutedStyle.Render(fmt.Sprintf("  %d exercises  ", len(tpl.ExerciseIDs))),
		timerStyle.Render("⏱ "+clock),
		mutedStyle.Render(fmt.Sprintf("  %.0f lbs", m.sess.Volume())),
	)
}

func (m Model) renderExercise(idx int, ex *models.Exercise, we models.WorkoutExercise, current row) string {
	name := storage.UnknownExercise
	if ex != nil {
		name = ex.Name
	}

	var sb strings.Builder
	sb.WriteString(textStyle.Bold(true).Render(name))
	sb.WriteString("\n")
	sb.WriteString(mutedStyle.Render(fmt.Sprintf("  %-4s %-12s %-8s %s", "Set", "Weight (lbs)", "Reps", "Done")))

	for j, s := range we.Sets {
		sb.WriteString("\n")
		selected := current.exercise == idx && current.set == j
		sb.WriteString(m.renderSet(j, s, selected))
	}

	style := cardStyle
	if current.exercise == idx {
		style = cardActiveStyle
	}
	if m.width > 4 {
		style = style.Width(m.width - 4)
	}
	return style.Render(sb.String())
}

func (m Model) renderSet(j int, s models.WorkoutSet, selected bool) string {
	pointer := "  "
	if selected {
		pointer = cursorStyle.Render("▸ ")
	}

	weight := fmt.Sprintf("%-12s", strconv.FormatFloat(s.Weight, 'f', -1, 64))
	reps := fmt.Sprintf("%-8d", s.Reps)
	if selected {
		switch {
		case m.editing && m.field == session.FieldWeight:
			weight = fmt.Sprintf("%-12s", m.input.View())
		case m.editing:
			reps = fmt.Sprintf("%-8s", m.input.View())
		case m.field == session.FieldWeight:
			weight = selectedStyle.Render(weight)
		default:
			reps = selectedStyle.Render(reps)
		}
	}

	check := mutedStyle.Render("[ ]")
	if s.Completed {
		check = doneStyle.Render("[✓]")
	}
	return fmt.Sprintf("%s%-4d %s %s %s", pointer, j+1, weight, reps, check)
}

// ─── entry point ─────────────────────────────────────────────────────────────

// ErrCancelled is returned by Run when the user discards the session.
var ErrCancelled = errors.New("workout cancelled")

// Run shows the session screen until the workout is finished or cancelled.
// Quitting any other way cancels the session.
func Run(ctx context.Context, sess *session.Session, opts ...tea.ProgramOption) (*models.Workout, error) {
	opts = append([]tea.ProgramOption{tea.WithContext(ctx), tea.WithAltScreen()}, opts...)
	final, err := tea.NewProgram(New(ctx, sess), opts...).Run()
	if err != nil {
		_ = sess.Cancel()
		return nil, fmt.Errorf("run session screen: %w", err)
	}

	m := final.(Model)
	if w := m.Workout(); w != nil {
		return w, m.Err()
	}
	_ = sess.Cancel()
	return nil, ErrCancelled
}
