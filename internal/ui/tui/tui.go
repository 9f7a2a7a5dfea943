package tui

import (
	"github.com/animerec/anirec/internal/config"
	"github.com/animerec/anirec/internal/log"
	"github.com/animerec/anirec/internal/session"
	"github.com/animerec/anirec/internal/ui/tui/models"
	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the terminal UI and blocks until the user quits
func Run(cfg *config.Config, store *session.Store) error {
	app := models.NewAppModel(cfg, store)

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Error("TUI terminated with error", "error", err)
		return err
	}

	return nil
}
