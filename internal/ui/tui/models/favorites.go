package models

import (
	"context"
	"fmt"
	"strings"

	"github.com/animerec/anirec/internal/domain"
	"github.com/animerec/anirec/internal/log"
	"github.com/animerec/anirec/internal/service"
	"github.com/animerec/anirec/internal/ui/tui/components"
	kb "github.com/animerec/anirec/internal/ui/tui/keybindings"
	"github.com/animerec/anirec/internal/ui/tui/styles"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// FavoritesModel shows everything the user has favorited.  The list is
// filtered locally with a fuzzy match, so typing narrows it without any
// further backend calls.
type FavoritesModel struct {
	favorites *service.Favorites

	animes   []*domain.Anime
	filtered []*domain.Anime
	cursor   int

	filterInput textinput.Model
	filterMode  bool

	loading   bool
	loadError string
	spinner   spinner.Model
	seq       int

	width, height int
}

func NewFavoritesModel(favorites *service.Favorites) *FavoritesModel {
	filter := textinput.New()
	filter.Placeholder = "Filter favorites..."
	filter.CharLimit = 100
	filter.Width = 30

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4"))

	return &FavoritesModel{
		favorites:   favorites,
		filterInput: filter,
		spinner:     s,
	}
}

func (m *FavoritesModel) ViewType() View {
	return ViewFavorites
}

func (m *FavoritesModel) Init() tea.Cmd {
	return m.load()
}

func (m *FavoritesModel) load() tea.Cmd {
	m.seq++
	seq := m.seq
	m.loading = true
	m.loadError = ""

	favorites := m.favorites
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		animes, err := favorites.List(ctx)
		if err != nil {
			return FavoritesMsg{Seq: seq, Success: false, Error: err}
		}
		return FavoritesMsg{Seq: seq, Success: true, Animes: animes}
	})
}

// applyFilter recomputes the visible subset from the current filter text
func (m *FavoritesModel) applyFilter() {
	query := strings.TrimSpace(m.filterInput.Value())
	if query == "" {
		m.filtered = m.animes
	} else {
		m.filtered = nil
		for _, anime := range m.animes {
			if fuzzy.MatchFold(query, anime.Name) {
				m.filtered = append(m.filtered, anime)
			}
		}
	}

	if m.cursor >= len(m.filtered) {
		m.cursor = 0
	}
}

func (m *FavoritesModel) selectedAnime() *domain.Anime {
	if len(m.filtered) == 0 || m.cursor >= len(m.filtered) {
		return nil
	}
	return m.filtered[m.cursor]
}

func (m *FavoritesModel) removeSelected() tea.Cmd {
	anime := m.selectedAnime()
	if anime == nil {
		return nil
	}

	favorites := m.favorites
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		added, err := favorites.Toggle(ctx, anime)
		if err != nil {
			return FavoriteToggleMsg{AnimeID: anime.ID, Success: false, Error: err}
		}
		return FavoriteToggleMsg{AnimeID: anime.ID, Added: added, Success: true}
	}
}

func (m *FavoritesModel) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case FavoritesMsg:
		if msg.Seq != m.seq {
			log.Debug("Dropping stale favorites response", "seq", msg.Seq, "current", m.seq)
			return m, nil
		}
		m.loading = false
		if !msg.Success {
			m.animes = nil
			m.filtered = nil
			m.loadError = msg.Error.Error()
			return m, nil
		}
		m.animes = msg.Animes
		m.loadError = ""
		m.applyFilter()
		return m, nil

	case FavoriteToggleMsg:
		if msg.Success && !msg.Added {
			// Removal succeeded, drop the entry locally instead of
			// refetching the whole list
			kept := m.animes[:0]
			for _, anime := range m.animes {
				if anime.ID != msg.AnimeID {
					kept = append(kept, anime)
				}
			}
			m.animes = kept
			m.applyFilter()
		}
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.filterMode {
			return m.handleFilterModeKey(msg)
		}
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *FavoritesModel) handleFilterModeKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch kb.GetActionByKey(msg, kb.ContextSearchMode) {
	case kb.ActionBack:
		m.filterMode = false
		m.filterInput.Blur()
		m.filterInput.SetValue("")
		m.applyFilter()
		return m, nil

	case kb.ActionSearchComplete:
		m.filterMode = false
		m.filterInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	m.applyFilter()
	return m, cmd
}

func (m *FavoritesModel) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch kb.GetActionByKey(msg, kb.ContextFavorites) {
	case kb.ActionMoveUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case kb.ActionMoveDown:
		if m.cursor < len(m.filtered)-1 {
			m.cursor++
		}

	case kb.ActionToggleFavorite:
		return m, m.removeSelected()

	case kb.ActionEnableSearch:
		m.filterMode = true
		m.filterInput.Focus()
		return m, textinput.Blink

	case kb.ActionRefresh:
		return m, m.load()

	case kb.ActionOpenRecommendations:
		return m, navigateCmd(ViewRecommendations)
	}

	return m, nil
}

func (m *FavoritesModel) View() string {
	header := styles.Header(m.width, "My Favorites")

	var filterLine string
	if m.filterMode {
		filterLine = styles.FilterStatus.Render("Filter: " + m.filterInput.View())
	} else if m.filterInput.Value() != "" {
		filterLine = styles.FilterStatus.Render("Filter: " + m.filterInput.Value())
	}

	var body string
	switch {
	case m.loading:
		body = styles.CenteredText(m.width, m.spinner.View()+" Loading favorites...")
	case m.loadError != "":
		body = styles.CenteredText(m.width,
			styles.ErrorText.Render("Could not load favorites: "+m.loadError)+
				"\n"+styles.Subtle.Render("Press r to retry"))
	case len(m.animes) == 0:
		body = styles.CenteredText(m.width,
			styles.Subtle.Render("No favorites yet. Browse the catalog and press enter on anything you like."))
	case len(m.filtered) == 0:
		body = styles.CenteredText(m.width, styles.Subtle.Render("No favorites match the filter"))
	default:
		var b strings.Builder
		for i, anime := range m.filtered {
			b.WriteString(renderAnimeRow(anime, i == m.cursor, true, m.width))
			b.WriteString("\n")
		}
		if selected := m.selectedAnime(); selected != nil {
			b.WriteString("\n" + styles.Subtle.Render("Poster: ") + styles.Url.Render(selected.Image))
		}
		body = b.String()
	}

	countLine := styles.CenteredText(m.width,
		styles.Subtle.Render(fmt.Sprintf("%d favorite(s)", len(m.animes))))

	var footer string
	if m.filterMode {
		footer = components.KeyBindingsBar(m.width, []components.KeyBinding{
			{Key: "Enter", Desc: "Done"},
			{Key: "Esc", Desc: "Clear filter"},
		})
	} else {
		footer = components.KeyBindingsBar(m.width, []components.KeyBinding{
			{Key: "↑/↓", Desc: "Navigate"},
			{Key: "Enter", Desc: "Remove"},
			{Key: "/", Desc: "Filter"},
			{Key: "r", Desc: "Reload"},
			{Key: "Esc", Desc: "Back"},
		})
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		"",
		filterLine,
		"",
		body,
		"",
		countLine,
		footer,
	)
}

func (m *FavoritesModel) Resize(width, height int) {
	m.width = width
	m.height = height
}
