package models

import (
	"fmt"
	"strings"
	"unicode/utf8"

	kb "github.com/animerec/anirec/internal/ui/tui/keybindings"
	"github.com/animerec/anirec/internal/ui/tui/styles"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// HelpModel displays contextual help with scrolling
type HelpModel struct {
	width, height int
	context       View
	viewport      viewport.Model
}

// NewHelpModel creates a new help model for the given context
func NewHelpModel(context View) *HelpModel {
	return &HelpModel{
		context:  context,
		viewport: viewport.New(0, 0),
	}
}

func (m *HelpModel) ViewType() View {
	return ViewHelp
}

// Init initializes the model
func (m *HelpModel) Init() tea.Cmd {
	// Set initial content if dimensions are available
	if m.width > 0 && m.height > 0 {
		m.updateContent()
	}
	return nil
}

// Update handles messages
func (m *HelpModel) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.MouseMsg:
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		switch kb.GetActionByKey(msg, kb.ContextHelp) {
		case kb.ActionMoveUp, kb.ActionMoveDown, kb.ActionPageUp, kb.ActionPageDown:
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		case kb.ActionMoveTop:
			m.viewport.GotoTop()
			return m, cmd
		case kb.ActionMoveBottom:
			m.viewport.GotoBottom()
			return m, cmd
		}

	}
	return m, cmd
}

// Resize updates the dimensions
func (m *HelpModel) Resize(width, height int) {
	m.width = width
	m.height = height

	// Update viewport dimensions
	contentWidth := width - 4    // Account for borders
	contentHeight := height - 10 // Account for header, footer, spacing

	// Ensure we don't set negative dimensions
	if contentWidth < 1 {
		contentWidth = 1
	}
	if contentHeight < 1 {
		contentHeight = 1
	}

	m.viewport.Width = contentWidth
	m.viewport.Height = contentHeight

	// Update content for new dimensions
	m.updateContent()
}

// updateContent generates help content and updates the viewport
func (m *HelpModel) updateContent() {
	content := m.generateHelpContent()
	m.viewport.SetContent(content)
	// Reset to top when content changes
	m.viewport.GotoTop()
}

// View renders the help screen
func (m *HelpModel) View() string {
	title := m.getContextTitle()

	// Create header
	header := styles.Header(m.width, "Help: "+title)

	// Main content area with viewport
	contentView := m.viewport.View()

	// Footer with navigation help
	scrollText := "↑/↓: Scroll • PgUp/PgDn: Page scroll • Home/End: Goto top/bottom • ESC: Return"
	footer := styles.CenteredText(m.width, styles.Info.Render(scrollText))

	// Combine elements
	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		"", // Spacing
		styles.ContentBox(m.width-2, contentView, 1),
		"", // Spacing
		footer,
	)
}

// getContextTitle returns a user-friendly title for the context
func (m *HelpModel) getContextTitle() string {
	switch m.context {
	case ViewLogin, ViewSignup:
		return "Account"
	case ViewCatalog:
		return "Catalog"
	case ViewFavorites:
		return "Favorites"
	case ViewRecommendations:
		return "Recommendations"
	default:
		return "General"
	}
}

// formatKeybindingSection formats a section of keybindings with aligned colons
func (m *HelpModel) formatKeybindingSection(title string, bindings []kb.Binding, skipActions map[kb.Action]bool) string {
	if len(bindings) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(title))
	b.WriteString("\n\n")

	// First pass: determine the maximum key width for alignment
	maxKeyWidth := 0
	for _, binding := range bindings {
		if skipActions != nil && skipActions[binding.Action] {
			continue
		}

		keyText := binding.KeyMap.Primary
		if binding.KeyMap.Secondary != "" {
			keyText += " or " + binding.KeyMap.Secondary
		}

		if width := utf8.RuneCountInString(keyText); width > maxKeyWidth {
			maxKeyWidth = width
		}
	}

	// Second pass: format each binding with aligned colons
	for _, binding := range bindings {
		if skipActions != nil && skipActions[binding.Action] {
			continue
		}

		keyText := binding.KeyMap.Primary
		if binding.KeyMap.Secondary != "" {
			keyText += " or " + binding.KeyMap.Secondary
		}

		// Create padding for alignment
		padding := strings.Repeat(" ", maxKeyWidth-utf8.RuneCountInString(keyText))

		b.WriteString(fmt.Sprintf("• %s%s : %s\n",
			lipgloss.NewStyle().Bold(true).Render(keyText),
			padding,
			binding.KeyMap.Help))
	}

	return b.String()
}

// generateHelpContent builds the complete help content
func (m *HelpModel) generateHelpContent() string {
	var b strings.Builder

	// Title style for sections
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))

	// Add context description section
	b.WriteString(titleStyle.Render(m.getContextTitle()))
	b.WriteString("\n\n")
	b.WriteString(m.getContextDescription())
	b.WriteString("\n\n")

	// Add keybindings section
	b.WriteString(titleStyle.Render("Keybindings"))
	b.WriteString("\n\n")

	// Global keybindings
	globalBindings := m.formatKeybindingSection("Global commands:", kb.ContextBindings[kb.ContextGlobal], nil)
	b.WriteString(globalBindings)

	// Build a map of global actions to avoid duplicating them in context-specific bindings
	globalActions := make(map[kb.Action]bool)
	for _, binding := range kb.ContextBindings[kb.ContextGlobal] {
		globalActions[binding.Action] = true
	}

	// Context-specific keybindings
	var contextName kb.ContextName

	switch m.context {
	case ViewHome:
		contextName = kb.ContextMenu
	case ViewLogin, ViewSignup:
		contextName = kb.ContextForm
	case ViewCatalog:
		contextName = kb.ContextCatalog
	case ViewFavorites:
		contextName = kb.ContextFavorites
	case ViewRecommendations:
		contextName = kb.ContextRecommendations
	}

	if contextName != "" {
		// Add spacing between sections
		if globalBindings != "" {
			b.WriteString("\n")
		}

		sectionTitle := fmt.Sprintf("%s commands:", m.getContextTitle())
		contextBindings := m.formatKeybindingSection(sectionTitle, kb.ContextBindings[contextName], globalActions)
		b.WriteString(contextBindings)
	}

	// Search mode keybindings if applicable
	if m.context == ViewCatalog || m.context == ViewFavorites {
		b.WriteString("\n")
		searchBindings := m.formatKeybindingSection("When in search mode:", kb.ContextBindings[kb.ContextSearchMode], nil)
		b.WriteString(searchBindings)
	}

	return b.String()
}

// getContextDescription returns help text for the current context
func (m *HelpModel) getContextDescription() string {
	switch m.context {
	case ViewLogin, ViewSignup:
		return "Log in with the email and password of your AnimeRec account, or create a new account.\n\n" +
			"After logging in your session is saved locally, so the next start of Anirec " +
			"skips the login screen entirely. Use logout to clear the saved session."

	case ViewCatalog:
		return "The catalog screen lists the anime known to the backend, eight per page.\n\n" +
			"Search by title, cycle through genre filters, and page through the results. " +
			"The heart marker shows which entries are already in your favorites, and " +
			"pressing enter on an entry adds or removes it."

	case ViewFavorites:
		return "The favorites screen shows everything you have hearted.\n\n" +
			"Typing a filter narrows the list with a fuzzy title match without contacting " +
			"the backend. Pressing enter removes the selected entry from your favorites."

	case ViewRecommendations:
		return "The recommendations screen shows suggestions the backend computed from your favorites.\n\n" +
			"With no favorites there is nothing to base suggestions on, so favorite a few " +
			"shows first. Recompute after changing your favorites to get fresh suggestions."

	default:
		return "Welcome to Anirec, a terminal UI for browsing the AnimeRec catalog and getting recommendations."
	}
}
