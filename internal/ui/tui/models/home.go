package models

import (
	"github.com/animerec/anirec/internal/log"
	"github.com/animerec/anirec/internal/session"
	"github.com/animerec/anirec/internal/ui/tui/components"
	kb "github.com/animerec/anirec/internal/ui/tui/keybindings"
	"github.com/animerec/anirec/internal/ui/tui/styles"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// homeEntry represents a single item shown on the start menu
type homeEntry struct {
	// Display text shown to the user
	text string
	// Command executed when the entry is selected
	command tea.Cmd
}

// HomeModel is the landing menu.  Its entries depend on whether a session is
// active: anonymous users can only log in or create an account, while
// authenticated users jump straight into the catalog views.
type HomeModel struct {
	entries       []homeEntry
	cursor        int
	greeting      string
	width, height int
}

func NewHomeModel(sess *session.Session) *HomeModel {
	m := &HomeModel{}
	if sess == nil {
		m.entries = []homeEntry{
			{"Log in", navigateCmd(ViewLogin)},
			{"Create account", navigateCmd(ViewSignup)},
			{"Quit", tea.Quit},
		}
		return m
	}

	m.greeting = "Welcome back, " + sess.Name + "!"
	m.entries = []homeEntry{
		{"Browse catalog", navigateCmd(ViewCatalog)},
		{"My favorites", navigateCmd(ViewFavorites)},
		{"Recommendations", navigateCmd(ViewRecommendations)},
		{"Quit", tea.Quit},
	}
	return m
}

func navigateCmd(target View) tea.Cmd {
	return func() tea.Msg {
		return NavigateMsg{Target: target}
	}
}

func (m *HomeModel) ViewType() View {
	return ViewHome
}

func (m *HomeModel) Init() tea.Cmd {
	return nil
}

func (m *HomeModel) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch kb.GetActionByKey(msg, kb.ContextMenu) {
		case kb.ActionMoveUp:
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil

		case kb.ActionMoveDown:
			if m.cursor < len(m.entries)-1 {
				m.cursor++
			}
			return m, nil

		case kb.ActionSelect:
			if len(m.entries) == 0 {
				return m, nil
			}

			selected := m.entries[m.cursor]
			log.Info("Menu entry selected", "entry", selected.text)
			return m, selected.command
		}
	}

	return m, nil
}

func (m *HomeModel) View() string {
	header := styles.Header(m.width, "Anirec")
	tagline := styles.CenteredText(m.width, styles.Subtle.Render("Discover your next favourite anime"))

	cursorStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(lipgloss.Color("#7D56F4")).
		Width(m.width-8). // Account for padding and cursor indicator
		Padding(0, 1)

	itemStyle := lipgloss.NewStyle().
		Width(m.width-8).
		Padding(0, 1)

	var menuContent string
	if m.greeting != "" {
		menuContent += styles.Info.Render(m.greeting) + "\n\n"
	}
	for i, entry := range m.entries {
		if i == m.cursor {
			menuContent += "> " + cursorStyle.Render(entry.text) + "\n"
		} else {
			menuContent += "  " + itemStyle.Render(entry.text) + "\n"
		}
	}

	content := styles.ContentBox(m.width-4, menuContent, 1)

	keyBindings := []components.KeyBinding{
		{Key: "↑/↓", Desc: "Navigate"},
		{Key: "Enter", Desc: "Select"},
		{Key: "Ctrl+c", Desc: "Quit"},
	}
	footer := components.KeyBindingsBar(m.width, keyBindings)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		"", // Add an empty line for spacing
		tagline,
		"",
		content,
		"",
		footer,
	)
}

func (m *HomeModel) Resize(width, height int) {
	m.width = width
	m.height = height
}
