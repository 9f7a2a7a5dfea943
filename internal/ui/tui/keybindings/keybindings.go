package keybindings

import tea "github.com/charmbracelet/bubbletea"

// Action represents a specific action that can be triggered by a key
type Action string

// Define all possible actions
const (
	// Global actions
	ActionQuit       Action = "quit"
	ActionToggleHelp Action = "toggle_help"
	ActionLogout     Action = "logout"
	ActionBack       Action = "back" // General purpose "go back" or "cancel"

	// Navigation actions
	ActionMoveUp     Action = "move_up"
	ActionMoveDown   Action = "move_down"
	ActionPageUp     Action = "page_up"
	ActionPageDown   Action = "page_down"
	ActionMoveTop    Action = "move_top"
	ActionMoveBottom Action = "move_bottom"

	// Menu and form actions
	ActionSelect    Action = "select"
	ActionNextField Action = "next_field"
	ActionPrevField Action = "prev_field"
	ActionSubmit    Action = "submit"

	// Catalog actions
	ActionNextPage            Action = "next_page"
	ActionPrevPage            Action = "prev_page"
	ActionRefresh             Action = "refresh"
	ActionToggleFavorite      Action = "toggle_favorite"
	ActionCycleGenre          Action = "cycle_genre"
	ActionOpenFavorites       Action = "open_favorites"
	ActionOpenRecommendations Action = "open_recommendations"

	// Search mode actions
	ActionEnableSearch   Action = "enable_search"
	ActionSearchComplete Action = "search_complete"
)

// ContextName represents a specific UI context in the application that has its own keybinds
type ContextName string

const (
	ContextGlobal          ContextName = "global"
	ContextMenu            ContextName = "menu"
	ContextForm            ContextName = "form"
	ContextCatalog         ContextName = "catalog"
	ContextFavorites       ContextName = "favorites"
	ContextRecommendations ContextName = "recommendations"
	ContextSearchMode      ContextName = "search_mode"
	ContextHelp            ContextName = "help"
)

var ContextBindings = map[ContextName][]Binding{
	ContextGlobal:          globalBindings,
	ContextMenu:            menuBindings,
	ContextForm:            formBindings,
	ContextCatalog:         catalogBindings,
	ContextFavorites:       favoritesBindings,
	ContextRecommendations: recommendationsBindings,
	ContextSearchMode:      searchModeBindings,
	ContextHelp:            helpBindings,
}

// KeyMap stores the mappings from actions to key sequences for each context
type KeyMap struct {
	Primary   string
	Secondary string // Optional alternative key
	Help      string // Description for help screen
}

// Binding maps an action to its keys and help text
type Binding struct {
	Action Action
	KeyMap KeyMap
}

// navigationBindings contains general navigation bindings for consistent navigation across the app
var navigationBindings = []Binding{
	{
		Action: ActionMoveUp,
		KeyMap: KeyMap{
			Primary:   "up",
			Secondary: "k",
			Help:      "Move cursor up",
		},
	},
	{
		Action: ActionMoveDown,
		KeyMap: KeyMap{
			Primary:   "down",
			Secondary: "j",
			Help:      "Move cursor down",
		},
	},
	{
		Action: ActionPageUp,
		KeyMap: KeyMap{
			Primary: "pgup",
			Help:    "Move up one page",
		},
	},
	{
		Action: ActionPageDown,
		KeyMap: KeyMap{
			Primary: "pgdown",
			Help:    "Move down one page",
		},
	},
	{
		Action: ActionMoveTop,
		KeyMap: KeyMap{
			Primary: "home",
			Help:    "Move top of view",
		},
	},
	{
		Action: ActionMoveBottom,
		KeyMap: KeyMap{
			Primary: "end",
			Help:    "Move bottom of view",
		},
	},
}

// globalBindings contains key bindings that work across all views
var globalBindings = []Binding{
	{
		Action: ActionQuit,
		KeyMap: KeyMap{
			Primary: "ctrl+c",
			Help:    "Quit application",
		},
	},
	{
		Action: ActionToggleHelp,
		KeyMap: KeyMap{
			Primary: "ctrl+h",
			Help:    "Toggle help screen",
		},
	},
	{
		Action: ActionLogout,
		KeyMap: KeyMap{
			Primary: "ctrl+l",
			Help:    "Logout (clear saved session)",
		},
	},
	{
		Action: ActionBack,
		KeyMap: KeyMap{
			Primary: "esc",
			Help:    "Go back/cancel current action",
		},
	},
}

// menuBindings contains key bindings specific to the start menu
var menuBindings = withNavigation([]Binding{
	{
		Action: ActionSelect,
		KeyMap: KeyMap{
			Primary: "enter",
			Help:    "Select menu entry",
		},
	},
})

// formBindings contains key bindings for the login and signup forms
var formBindings = []Binding{
	{
		Action: ActionNextField,
		KeyMap: KeyMap{
			Primary:   "tab",
			Secondary: "down",
			Help:      "Focus next field",
		},
	},
	{
		Action: ActionPrevField,
		KeyMap: KeyMap{
			Primary:   "shift+tab",
			Secondary: "up",
			Help:      "Focus previous field",
		},
	},
	{
		Action: ActionSubmit,
		KeyMap: KeyMap{
			Primary: "enter",
			Help:    "Submit the form",
		},
	},
}

// helpBindings contains key bindings specific to the help view
var helpBindings = withNavigation([]Binding{})

// catalogBindings contains key bindings specific to the catalog view
var catalogBindings = withNavigation([]Binding{
	{
		Action: ActionPrevPage,
		KeyMap: KeyMap{
			Primary:   "left",
			Secondary: "h",
			Help:      "Previous catalog page",
		},
	},
	{
		Action: ActionNextPage,
		KeyMap: KeyMap{
			Primary:   "right",
			Secondary: "l",
			Help:      "Next catalog page",
		},
	},
	{
		Action: ActionToggleFavorite,
		KeyMap: KeyMap{
			Primary:   "enter",
			Secondary: "f",
			Help:      "Add/remove favorite",
		},
	},
	{
		Action: ActionEnableSearch,
		KeyMap: KeyMap{
			Primary:   "/",
			Secondary: "ctrl+f",
			Help:      "Search by title",
		},
	},
	{
		Action: ActionCycleGenre,
		KeyMap: KeyMap{
			Primary: "g",
			Help:    "Cycle genre filter",
		},
	},
	{
		Action: ActionRefresh,
		KeyMap: KeyMap{
			Primary: "r",
			Help:    "Refresh current page",
		},
	},
	{
		Action: ActionOpenFavorites,
		KeyMap: KeyMap{
			Primary: "F",
			Help:    "Open favorites",
		},
	},
	{
		Action: ActionOpenRecommendations,
		KeyMap: KeyMap{
			Primary: "R",
			Help:    "Open recommendations",
		},
	},
})

// favoritesBindings contains key bindings specific to the favorites view
var favoritesBindings = withNavigation([]Binding{
	{
		Action: ActionToggleFavorite,
		KeyMap: KeyMap{
			Primary:   "enter",
			Secondary: "f",
			Help:      "Remove from favorites",
		},
	},
	{
		Action: ActionEnableSearch,
		KeyMap: KeyMap{
			Primary:   "/",
			Secondary: "ctrl+f",
			Help:      "Filter favorites",
		},
	},
	{
		Action: ActionRefresh,
		KeyMap: KeyMap{
			Primary: "r",
			Help:    "Reload favorites",
		},
	},
	{
		Action: ActionOpenRecommendations,
		KeyMap: KeyMap{
			Primary: "R",
			Help:    "Open recommendations",
		},
	},
})

// recommendationsBindings contains key bindings specific to the recommendations view
var recommendationsBindings = withNavigation([]Binding{
	{
		Action: ActionToggleFavorite,
		KeyMap: KeyMap{
			Primary:   "enter",
			Secondary: "f",
			Help:      "Add/remove favorite",
		},
	},
	{
		Action: ActionRefresh,
		KeyMap: KeyMap{
			Primary: "r",
			Help:    "Recompute recommendations",
		},
	},
	{
		Action: ActionOpenFavorites,
		KeyMap: KeyMap{
			Primary: "F",
			Help:    "Open favorites",
		},
	},
})

// searchModeBindings contains key bindings specific for when search mode is active
var searchModeBindings = []Binding{
	{
		Action: ActionBack,
		KeyMap: KeyMap{
			Primary:   "esc",
			Secondary: "ctrl+f",
			Help:      "Exit search mode and remove the filter",
		},
	},
	{
		Action: ActionSearchComplete,
		KeyMap: KeyMap{
			Primary: "enter",
			Help:    "Apply the search filter and return control to the original view",
		},
	},
}

// GetActionKey returns the primary key for an action
func GetActionKey(action Action, bindings []Binding) string {
	for _, binding := range bindings {
		if binding.Action == action {
			return binding.KeyMap.Primary
		}
	}
	return ""
}

// GetActionSecondaryKey returns the secondary key for an action if it exists
func GetActionSecondaryKey(action Action, bindings []Binding) string {
	for _, binding := range bindings {
		if binding.Action == action {
			return binding.KeyMap.Secondary
		}
	}
	return ""
}

// GetBindingByKey returns the action and help text for a given key
func GetBindingByKey(key string, bindings []Binding) (Action, string) {
	for _, binding := range bindings {
		if binding.KeyMap.Primary == key || binding.KeyMap.Secondary == key {
			return binding.Action, binding.KeyMap.Help
		}
	}
	return "", ""
}

// GetActionByKey returns just the action for a given key, or an empty Action if not found
func GetActionByKey(keyMsg tea.KeyMsg, name ContextName) Action {
	if bindings, exists := ContextBindings[name]; exists {
		key := keyMsg.String()
		for _, binding := range bindings {
			if binding.KeyMap.Primary == key || binding.KeyMap.Secondary == key {
				return binding.Action
			}
		}
	}
	return ""
}

// FormatKeyHelp formats a key binding for display in help text
func FormatKeyHelp(binding Binding) string {
	if binding.KeyMap.Secondary != "" {
		return binding.KeyMap.Primary + "/" + binding.KeyMap.Secondary + ": " + binding.KeyMap.Help
	}
	return binding.KeyMap.Primary + ": " + binding.KeyMap.Help
}

// GetHelpText generates formatted help text for a set of bindings
func GetHelpText(title string, bindings []Binding) string {
	helpText := "## " + title + "\n\n"
	for _, binding := range bindings {
		helpText += "* " + FormatKeyHelp(binding) + "\n"
	}
	return helpText
}

// withNavigation is a helper function to include navigation bindings in other binding sets
func withNavigation(bindings []Binding) []Binding {
	return append(append([]Binding{}, navigationBindings...), bindings...)
}
