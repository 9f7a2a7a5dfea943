package models

import (
	"context"
	"strings"
	"time"

	"github.com/animerec/anirec/internal/api"
	"github.com/animerec/anirec/internal/log"
	"github.com/animerec/anirec/internal/session"
	"github.com/animerec/anirec/internal/ui/tui/components"
	kb "github.com/animerec/anirec/internal/ui/tui/keybindings"
	"github.com/animerec/anirec/internal/ui/tui/styles"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const authRequestTimeout = 15 * time.Second

// loginFailedMsg is consumed by the login model itself so the failure can be
// rendered inline instead of tearing the form down.
type loginFailedMsg struct {
	message string
}

// LoginModel is the email/password login form.  On success it emits
// LoginSuccessMsg, which AppModel turns into a saved session and a switch to
// the catalog.
type LoginModel struct {
	client *api.Client

	emailInput    textinput.Model
	passwordInput textinput.Model
	focus         int

	submitting bool
	spinner    spinner.Model
	errMsg     string
	notice     string

	width, height int
}

func NewLoginModel(client *api.Client) *LoginModel {
	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.CharLimit = 128
	email.Width = 40
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 128
	password.Width = 40
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4"))

	return &LoginModel{
		client:        client,
		emailInput:    email,
		passwordInput: password,
		spinner:       s,
	}
}

func (m *LoginModel) ViewType() View {
	return ViewLogin
}

// SetNotice shows an informational line above the form, e.g. after signup
func (m *LoginModel) SetNotice(notice string) {
	m.notice = notice
}

func (m *LoginModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *LoginModel) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loginFailedMsg:
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
			// Form is frozen until the request resolves
			return m, nil
		}

		switch kb.GetActionByKey(msg, kb.ContextForm) {
		case kb.ActionNextField:
			m.setFocus((m.focus + 1) % 2)
			return m, nil

		case kb.ActionPrevField:
			m.setFocus((m.focus + 1) % 2)
			return m, nil

		case kb.ActionSubmit:
			return m, m.submit()
		}

		return m, m.updateInputs(msg)
	}

	return m, nil
}

func (m *LoginModel) setFocus(focus int) {
	m.focus = focus
	if focus == 0 {
		m.emailInput.Focus()
		m.passwordInput.Blur()
	} else {
		m.emailInput.Blur()
		m.passwordInput.Focus()
	}
}

func (m *LoginModel) updateInputs(msg tea.Msg) tea.Cmd {
	var cmds [2]tea.Cmd
	m.emailInput, cmds[0] = m.emailInput.Update(msg)
	m.passwordInput, cmds[1] = m.passwordInput.Update(msg)
	return tea.Batch(cmds[0], cmds[1])
}

func (m *LoginModel) submit() tea.Cmd {
	email := strings.TrimSpace(m.emailInput.Value())
	password := m.passwordInput.Value()
	if email == "" || password == "" {
		m.errMsg = "Email and password are required"
		return nil
	}

	m.submitting = true
	m.errMsg = ""
	client := m.client

	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), authRequestTimeout)
		defer cancel()

		token, err := client.Login(ctx, email, password)
		if err != nil {
			log.Warn("Login failed", "error", err)
			return loginFailedMsg{message: err.Error()}
		}

		user, err := client.Me(ctx)
		if err != nil {
			log.Error("Profile fetch after login failed", "error", err)
			return loginFailedMsg{message: "Logged in, but fetching your profile failed: " + err.Error()}
		}

		return LoginSuccessMsg{Session: &session.Session{
			UserID:      user.ID,
			Name:        user.Name,
			Email:       user.Email,
			AccessToken: token,
		}}
	})
}

func (m *LoginModel) View() string {
	header := styles.Header(m.width, "Log in")

	var b strings.Builder
	if m.notice != "" {
		b.WriteString(styles.Info.Render(m.notice) + "\n\n")
	}
	b.WriteString("Email\n")
	b.WriteString(m.emailInput.View() + "\n\n")
	b.WriteString("Password\n")
	b.WriteString(m.passwordInput.View() + "\n")
	if m.errMsg != "" {
		b.WriteString("\n" + styles.ErrorText.Render(m.errMsg) + "\n")
	}
	if m.submitting {
		b.WriteString("\n" + m.spinner.View() + " Logging in...\n")
	}

	content := styles.ContentBox(min(m.width-4, 60), b.String(), 1)

	keyBindings := []components.KeyBinding{
		{Key: "Tab", Desc: "Next field"},
		{Key: "Enter", Desc: "Log in"},
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

func (m *LoginModel) Resize(width, height int) {
	m.width = width
	m.height = height
}
