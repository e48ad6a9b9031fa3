package tui

import (
	"log/slog"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/f3rmion/skillx/internal/tui/views"
)

const headerHeight = 3

// AppModel is the top-level TUI model. It owns the window chrome and the
// help overlay and delegates everything else to the form view.
type AppModel struct {
	endpoint string
	formView views.FormModel

	width  int
	height int
	ready  bool

	showHelp bool
}

// NewApp creates the TUI for the given matching service client.
func NewApp(client views.Submitter, endpoint string, logger *slog.Logger) AppModel {
	return AppModel{
		endpoint: endpoint,
		formView: views.NewFormModel(client, logger),
	}
}

// Form returns the form view, mainly for inspection in tests.
func (m AppModel) Form() views.FormModel {
	return m.formView
}

// Init initializes the model
func (m AppModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Help overlay - any key closes it
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}

		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "f1":
			m.showHelp = true
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.formView.SetSize(m.width-4, m.height-headerHeight-2)
		return m, nil
	}

	var cmd tea.Cmd
	m.formView, cmd = m.formView.Update(msg)
	return m, cmd
}

// View renders the UI
func (m AppModel) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	header := HeaderStyle.Width(m.width - 4).Render(
		lipgloss.JoinHorizontal(lipgloss.Center,
			TitleStyle.Render("Skill Exchange"),
			SubtitleStyle.Render(m.endpoint),
		),
	)

	return ContentStyle.
		Width(m.width).
		Render(lipgloss.JoinVertical(lipgloss.Left, header, m.formView.View()))
}

// renderHelp renders the help overlay
func (m AppModel) renderHelp() string {
	helpText := HelpTitleStyle.Render("Skill Exchange - Find Matches") + "\n\n"

	helpText += HelpSectionStyle.Render("Form") + "\n"
	helpText += HelpKeyStyle.Render("tab ↓") + HelpDescStyle.Render("Next field") + "\n"
	helpText += HelpKeyStyle.Render("shift+tab ↑") + HelpDescStyle.Render("Previous field") + "\n"
	helpText += HelpKeyStyle.Render("enter") + HelpDescStyle.Render("Submit to matching service") + "\n"

	helpText += HelpSectionStyle.Render("Result") + "\n"
	helpText += HelpKeyStyle.Render("pgup/pgdn") + HelpDescStyle.Render("Scroll result") + "\n"
	helpText += HelpKeyStyle.Render("ctrl+y") + HelpDescStyle.Render("Copy result to clipboard") + "\n"

	helpText += HelpSectionStyle.Render("Global") + "\n"
	helpText += HelpKeyStyle.Render("f1") + HelpDescStyle.Render("Show this help") + "\n"
	helpText += HelpKeyStyle.Render("esc") + HelpDescStyle.Render("Quit") + "\n"

	helpText += "\n" + HelpFooterStyle.Render("Press any key to close")

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, HelpBoxStyle.Render(helpText))
}
