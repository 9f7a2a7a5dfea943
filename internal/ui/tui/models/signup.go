package models

import (
	"context"
	"strings"

	"github.com/animerec/anirec/internal/api"
	"github.com/animerec/anirec/internal/log"
	"github.com/animerec/anirec/internal/ui/tui/components"
	kb "github.com/animerec/anirec/internal/ui/tui/keybindings"
	"github.com/animerec/anirec/internal/ui/tui/styles"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// signupFailedMsg is consumed by the signup model to render the failure inline
type signupFailedMsg struct {
	message string
}

// SignupModel is the account creation form.  Successful signup does not log
// the user in; AppModel routes back to the login form with a notice instead.
type SignupModel struct {
	client *api.Client

	inputs []textinput.Model // name, email, password
	focus  int

	submitting bool
	spinner    spinner.Model
	errMsg     string

	width, height int
}

func NewSignupModel(client *api.Client) *SignupModel {
	name := textinput.New()
	name.Placeholder = "Display name"
	name.CharLimit = 64
	name.Width = 40
	name.Focus()

	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.CharLimit = 128
	email.Width = 40

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 128
	password.Width = 40
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4"))

	return &SignupModel{
		client:  client,
		inputs:  []textinput.Model{name, email, password},
		spinner: s,
	}
}

func (m *SignupModel) ViewType() View {
	return ViewSignup
}

func (m *SignupModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *SignupModel) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case signupFailedMsg:
		m.submitting = false
		m.errMsg = msg.message
		return m, nil

	case spinner.TickMsg:
		if !m.submitting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.submitting {
			return m, nil
		}

		switch kb.GetActionByKey(msg, kb.ContextForm) {
		case kb.ActionNextField:
			m.setFocus((m.focus + 1) % len(m.inputs))
			return m, nil

		case kb.ActionPrevField:
			m.setFocus((m.focus + len(m.inputs) - 1) % len(m.inputs))
			return m, nil

		case kb.ActionSubmit:
			return m, m.submit()
		}

		return m, m.updateInputs(msg)
	}

	return m, nil
}

func (m *SignupModel) setFocus(focus int) {
	m.focus = focus
	for i := range m.inputs {
		if i == focus {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
}

func (m *SignupModel) updateInputs(msg tea.Msg) tea.Cmd {
	cmds := make([]tea.Cmd, len(m.inputs))
	for i := range m.inputs {
		m.inputs[i], cmds[i] = m.inputs[i].Update(msg)
	}
	return tea.Batch(cmds...)
}

func (m *SignupModel) submit() tea.Cmd {
	name := strings.TrimSpace(m.inputs[0].Value())
	email := strings.TrimSpace(m.inputs[1].Value())
	password := m.inputs[2].Value()
	if name == "" || email == "" || password == "" {
		m.errMsg = "All fields are required"
		return nil
	}

	m.submitting = true
	m.errMsg = ""
	client := m.client

	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), authRequestTimeout)
		defer cancel()

		if err := client.Signup(ctx, email, password, name); err != nil {
			log.Warn("Signup failed", "email", email, "error", err)
			return signupFailedMsg{message: err.Error()}
		}

		log.Info("Account created", "email", email)
		return SignupSuccessMsg{Email: email}
	})
}

func (m *SignupModel) View() string {
	header := styles.Header(m.width, "Create account")

	labels := []string{"Name", "Email", "Password"}
	var b strings.Builder
	for i, input := range m.inputs {
		b.WriteString(labels[i] + "\n")
		b.WriteString(input.View() + "\n\n")
	}
	if m.errMsg != "" {
		b.WriteString(styles.ErrorText.Render(m.errMsg) + "\n")
	}
	if m.submitting {
		b.WriteString(m.spinner.View() + " Creating account...\n")
	}

	content := styles.ContentBox(min(m.width-4, 60), b.String(), 1)

	keyBindings := []components.KeyBinding{
		{Key: "Tab", Desc: "Next field"},
		{Key: "Enter", Desc: "Sign up"},
		{Key: "Esc", Desc: "Back"},
	}
	footer := components.KeyBindingsBar(m.width, keyBindings)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		"",
		content,
		"",
		footer,
	)
}

func (m *SignupModel) Resize(width, height int) {
	m.width = width
	m.height = height
}
