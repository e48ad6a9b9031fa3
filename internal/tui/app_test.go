package tui

import (
	"context"
	"encoding/json"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/f3rmion/skillx/internal/form"
	"github.com/f3rmion/skillx/internal/match"
	"github.com/f3rmion/skillx/internal/tui/views"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoSubmitter struct{}

func (echoSubmitter) Submit(_ context.Context, req match.MatchRequest) (json.RawMessage, error) {
	return json.Marshal(map[string]any{"matches": req.Skills})
}

func update(t *testing.T, m AppModel, msg tea.Msg) (AppModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	app, ok := next.(AppModel)
	require.True(t, ok)
	return app, cmd
}

func TestApp_LoadingUntilSized(t *testing.T) {
	m := NewApp(echoSubmitter{}, "http://localhost:8000/api/match", nil)
	assert.Equal(t, "Loading...", m.View())

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	view := m.View()
	assert.Contains(t, view, "Skill Exchange")
	assert.Contains(t, view, "http://localhost:8000/api/match")
	assert.Contains(t, view, "User ID")
	assert.Contains(t, view, "Skills (comma separated)")
}

func TestApp_QuitKeys(t *testing.T) {
	for _, key := range []tea.KeyType{tea.KeyEsc, tea.KeyCtrlC} {
		m := NewApp(echoSubmitter{}, "http://x", nil)
		_, cmd := update(t, m, tea.KeyMsg{Type: key})
		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
	}
}

func TestApp_HelpOverlay(t *testing.T) {
	m := NewApp(echoSubmitter{}, "http://x", nil)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyF1})
	assert.Contains(t, m.View(), "Press any key to close")

	// the key that closes the overlay is not typed into the form
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	assert.NotContains(t, m.View(), "Press any key to close")
	assert.Equal(t, "", m.Form().State().Input().Identifier)
}

func TestApp_SubmitRoundTrip(t *testing.T) {
	m := NewApp(echoSubmitter{}, "http://x", nil)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("u1")})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("go,rust")})

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, form.Submitting, m.Form().State().Status())

	// deliver the completion the way the runtime would
	m, _ = update(t, m, views.SubmitDoneMsg{Seq: 1, Result: json.RawMessage(`{"matches":["go","rust"]}`)})
	assert.Equal(t, form.HasResult, m.Form().State().Status())
	assert.Contains(t, m.View(), `"rust"`)
}
