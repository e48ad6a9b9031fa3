package views

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/f3rmion/skillx/internal/clipboard"
	"github.com/f3rmion/skillx/internal/form"
	"github.com/f3rmion/skillx/internal/logging"
	"github.com/f3rmion/skillx/internal/match"
	"github.com/mattn/go-runewidth"
)

// Submitter sends a match request to the matching service.
type Submitter interface {
	Submit(ctx context.Context, req match.MatchRequest) (json.RawMessage, error)
}

// SubmitDoneMsg carries the outcome of submission Seq.
type SubmitDoneMsg struct {
	Seq    uint64
	Result json.RawMessage
	Err    error
}

type clearCopiedMsg struct{}

func clearCopiedAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return clearCopiedMsg{}
	})
}

// replaced in tests
var (
	copyToClipboard    = clipboard.Write
	clipboardAvailable = clipboard.Available
)

const (
	fieldIdentifier = iota
	fieldSkills
	fieldCount
)

// FormModel is the match form view model.
type FormModel struct {
	inputs  []textinput.Model
	focused int

	state    *form.State
	client   Submitter
	logger   *slog.Logger
	rendered string

	spinner spinner.Model
	result  viewport.Model

	copied  bool
	copyErr error

	width  int
	height int
}

// NewFormModel creates an empty form that submits through client.
func NewFormModel(client Submitter, logger *slog.Logger) FormModel {
	if logger == nil {
		logger = logging.Discard()
	}

	id := textinput.New()
	id.Placeholder = "user id"
	id.Prompt = "› "
	id.Width = 40
	id.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#4ecdc4"))
	id.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffe66d"))
	id.Focus()

	skills := textinput.New()
	skills.Placeholder = "go, rust, sql"
	skills.Prompt = "› "
	skills.Width = 60
	skills.PromptStyle = id.PromptStyle
	skills.TextStyle = id.TextStyle

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = loadingStyle

	return FormModel{
		inputs:  []textinput.Model{id, skills},
		state:   form.NewState(),
		client:  client,
		logger:  logger,
		spinner: sp,
		result:  viewport.New(0, 0),
	}
}

// State exposes the underlying form state.
func (m FormModel) State() *form.State {
	return m.state
}

// SetSize updates the view dimensions.
func (m *FormModel) SetSize(width, height int) {
	m.width = width
	m.height = height

	inputWidth := width - 4
	if inputWidth < 20 {
		inputWidth = 20
	}
	for i := range m.inputs {
		m.inputs[i].Width = inputWidth
	}

	// borders, padding and the rows above the result box
	m.result.Width = maxInt(width-6, 20)
	m.result.Height = maxInt(height-16, 3)
	m.refreshResult()
}

// Update handles messages.
func (m FormModel) Update(msg tea.Msg) (FormModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			return m.submit()
		case "tab", "down":
			return m, m.focus((m.focused + 1) % fieldCount)
		case "shift+tab", "up":
			return m, m.focus((m.focused + fieldCount - 1) % fieldCount)
		case "pgup", "pgdown":
			var cmd tea.Cmd
			m.result, cmd = m.result.Update(msg)
			return m, cmd
		case "ctrl+y":
			return m.copyResult()
		}

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.result, cmd = m.result.Update(msg)
		return m, cmd

	case SubmitDoneMsg:
		return m.complete(msg), nil

	case spinner.TickMsg:
		if m.state.Status() != form.Submitting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case clearCopiedMsg:
		m.copied = false
		m.copyErr = nil
		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
	m.syncState()
	return m, cmd
}

func (m *FormModel) focus(i int) tea.Cmd {
	m.inputs[m.focused].Blur()
	m.focused = i
	return m.inputs[m.focused].Focus()
}

func (m *FormModel) syncState() {
	switch m.focused {
	case fieldIdentifier:
		m.state.SetIdentifier(m.inputs[fieldIdentifier].Value())
	case fieldSkills:
		m.state.SetRawSkills(m.inputs[fieldSkills].Value())
	}
}

func (m FormModel) submit() (FormModel, tea.Cmd) {
	wasSubmitting := m.state.Status() == form.Submitting
	seq, req := m.state.Begin()
	m.logger.Info("submission started", "seq", seq, "id", req.ID, "skills", len(req.Skills))

	client := m.client
	send := func() tea.Msg {
		if client == nil {
			return SubmitDoneMsg{Seq: seq, Err: errors.New("no matching service configured")}
		}
		res, err := client.Submit(context.Background(), req)
		return SubmitDoneMsg{Seq: seq, Result: res, Err: err}
	}

	if wasSubmitting {
		return m, send
	}
	return m, tea.Batch(m.spinner.Tick, send)
}

func (m FormModel) complete(msg SubmitDoneMsg) FormModel {
	if !m.state.Complete(msg.Seq, msg.Result, msg.Err) {
		m.logger.Debug("discarded stale completion", "seq", msg.Seq, "applied", m.state.Applied())
		return m
	}

	if msg.Err != nil {
		m.logger.Warn("submission failed", "seq", msg.Seq, "error", msg.Err)
		return m
	}

	m.logger.Info("submission applied", "seq", msg.Seq, "bytes", len(msg.Result))
	m.refreshResult()
	m.result.GotoTop()
	return m
}

func (m *FormModel) refreshResult() {
	raw, ok := m.state.Result()
	if !ok {
		m.rendered = ""
		m.result.SetContent("")
		return
	}

	text, err := form.RenderResult(raw)
	if err != nil {
		text = string(raw)
	}
	m.rendered = text
	m.result.SetContent(resultTextStyle.Render(wrapLines(text, m.result.Width)))
}

func (m FormModel) copyResult() (FormModel, tea.Cmd) {
	if m.rendered == "" || !clipboardAvailable() {
		return m, nil
	}
	if err := copyToClipboard(m.rendered); err != nil {
		m.copyErr = err
	} else {
		m.copied = true
	}
	return m, clearCopiedAfter(2 * time.Second)
}

// View renders the form view.
func (m FormModel) View() string {
	var b strings.Builder

	b.WriteString(m.renderLabel(fieldIdentifier, "User ID"))
	b.WriteString("\n")
	b.WriteString(m.inputs[fieldIdentifier].View())
	b.WriteString("\n\n")

	b.WriteString(m.renderLabel(fieldSkills, "Skills (comma separated)"))
	b.WriteString("\n")
	b.WriteString(m.inputs[fieldSkills].View())
	b.WriteString("\n")
	b.WriteString(m.renderSkillTags())
	b.WriteString("\n")

	switch m.state.Status() {
	case form.Submitting:
		b.WriteString("\n")
		b.WriteString(m.spinner.View() + " " + loadingStyle.Render("Finding matches..."))
		b.WriteString("\n")
	case form.Failed:
		b.WriteString(m.renderError())
		b.WriteString("\n")
	}

	if m.rendered != "" {
		b.WriteString(m.renderResult())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.renderHelp())

	return b.String()
}

func (m FormModel) renderLabel(field int, text string) string {
	if field == m.focused {
		return labelFocusedStyle.Render(text)
	}
	return labelStyle.Render(text)
}

func (m FormModel) renderSkillTags() string {
	skills := match.ParseSkills(m.state.Input().RawSkills)
	if len(skills) == 0 {
		return helpStyle.Render("no skills")
	}

	tags := make([]string, 0, len(skills))
	for _, s := range skills {
		tags = append(tags, skillTagStyle.Render(s))
	}
	return strings.Join(tags, " ") + "  " + subtitleStyle.Render(fmt.Sprintf("%d skills", len(skills)))
}

func (m FormModel) renderError() string {
	err := m.state.Err()
	title := "Submission failed"

	var serr *match.SubmitError
	if errors.As(err, &serr) {
		title = fmt.Sprintf("Submission failed: %s", serr.Kind)
	}

	width := maxInt(m.width-6, 20)
	return errorBoxStyle.Width(width).Render(
		errorStyle.Render(title) + "\n" + helpStyle.Render(wrapLines(err.Error(), width-4)),
	)
}

func (m FormModel) renderResult() string {
	header := resultHeaderStyle.Render("Matches")
	if m.copied {
		header += "  " + copiedStyle.Render("Copied!")
	} else if m.copyErr != nil {
		header += "  " + errorStyle.Render("Copy failed: "+m.copyErr.Error())
	}
	if m.result.TotalLineCount() > m.result.Height {
		header += "  " + helpStyle.Render(fmt.Sprintf("%3.f%%", m.result.ScrollPercent()*100))
	}
	return resultBoxStyle.Render(header + "\n" + m.result.View())
}

func (m FormModel) renderHelp() string {
	parts := []string{"tab: next field", "enter: find matches"}
	if m.rendered != "" {
		parts = append(parts, "pgup/pgdn: scroll")
		if clipboardAvailable() {
			parts = append(parts, "ctrl+y: copy")
		}
	}
	parts = append(parts, "esc: quit")
	return helpStyle.Render(strings.Join(parts, " • "))
}

// wrapLines hard-wraps each line of s to width display cells.
func wrapLines(s string, width int) string {
	if width <= 0 {
		return s
	}

	var out []string
	for _, line := range strings.Split(s, "\n") {
		for runewidth.StringWidth(line) > width {
			head := runewidth.Truncate(line, width, "")
			if head == "" {
				break
			}
			out = append(out, head)
			line = line[len(head):]
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
