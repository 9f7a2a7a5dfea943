package keybindings

import (
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestNoDuplicateKeyBindings(t *testing.T) {
	// Check each context individually
	for contextName, bindings := range ContextBindings {
		t.Run(fmt.Sprintf("Context_%s", contextName), func(t *testing.T) {
			keyToAction := make(map[string]Action)

			for _, binding := range bindings {
				// Check primary key
				if existingAction, exists := keyToAction[binding.KeyMap.Primary]; exists {
					t.Errorf("Duplicate key binding '%s' in context '%s': "+
						"first assigned to action '%s', then to '%s'",
						binding.KeyMap.Primary, contextName, existingAction, binding.Action)
				} else {
					keyToAction[binding.KeyMap.Primary] = binding.Action
				}

				// Check secondary key if it exists
				if binding.KeyMap.Secondary != "" {
					if existingAction, exists := keyToAction[binding.KeyMap.Secondary]; exists {
						t.Errorf("Duplicate key binding '%s' in context '%s': "+
							"first assigned to action '%s', then to '%s'",
							binding.KeyMap.Secondary, contextName, existingAction, binding.Action)
					} else {
						keyToAction[binding.KeyMap.Secondary] = binding.Action
					}
				}
			}
		})
	}
}

func TestGetActionByKey(t *testing.T) {
	cases := []struct {
		key     string
		context ContextName
		want    Action
	}{
		{"ctrl+c", ContextGlobal, ActionQuit},
		{"/", ContextCatalog, ActionEnableSearch},
		{"g", ContextCatalog, ActionCycleGenre},
		{"f", ContextFavorites, ActionToggleFavorite},
		{"enter", ContextSearchMode, ActionSearchComplete},
		{"g", ContextFavorites, ""},
	}

	for _, tc := range cases {
		msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(tc.key)}
		if tc.key == "ctrl+c" {
			msg = tea.KeyMsg{Type: tea.KeyCtrlC}
		} else if tc.key == "enter" {
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		}

		if got := GetActionByKey(msg, tc.context); got != tc.want {
			t.Errorf("GetActionByKey(%q, %s) = %q, want %q", tc.key, tc.context, got, tc.want)
		}
	}
}
