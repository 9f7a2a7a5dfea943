package models

import tea "github.com/charmbracelet/bubbletea"

// View represents a specific UI view in the application
type View string

// Available views in the application
const (
	ViewHome            View = "home"
	ViewLogin           View = "login"
	ViewSignup          View = "signup"
	ViewCatalog         View = "catalog"
	ViewFavorites       View = "favorites"
	ViewRecommendations View = "recommendations"
	ViewHelp            View = "help"
)

// Modal represents a UI intended to be temporarily shown to the user before returning to the original view
type Modal string

// Available modals in the application
const (
	ModalNone Modal = "none"
	ModalHelp Modal = "help"
)

// Model is the interface implemented by every page model managed by AppModel
type Model interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Model, tea.Cmd)
	View() string
	Resize(width, height int)
	ViewType() View
}
