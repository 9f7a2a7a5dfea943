package models

import (
	"context"
	"strings"

	"github.com/animerec/anirec/internal/domain"
	"github.com/animerec/anirec/internal/log"
	"github.com/animerec/anirec/internal/service"
	"github.com/animerec/anirec/internal/ui/tui/components"
	kb "github.com/animerec/anirec/internal/ui/tui/keybindings"
	"github.com/animerec/anirec/internal/ui/tui/styles"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// RecommendationsModel shows suggestions computed by the backend from the
// user's favorites.  Favorites are loaded first: with an empty favorite set
// the recommendation endpoint is never called and an explanatory empty state
// is shown instead.
type RecommendationsModel struct {
	favorites   *service.Favorites
	recommender *service.Recommender

	animes []*domain.Anime
	cursor int

	noFavorites bool
	loading     bool
	loadError   string
	spinner     spinner.Model
	seq         int

	width, height int
}

func NewRecommendationsModel(favorites *service.Favorites, recommender *service.Recommender) *RecommendationsModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4"))

	return &RecommendationsModel{
		favorites:   favorites,
		recommender: recommender,
		spinner:     s,
	}
}

func (m *RecommendationsModel) ViewType() View {
	return ViewRecommendations
}

func (m *RecommendationsModel) Init() tea.Cmd {
	return m.loadFavorites()
}

// loadFavorites refreshes the favorite set before anything else so the view
// can decide whether asking for recommendations makes sense at all
func (m *RecommendationsModel) loadFavorites() tea.Cmd {
	m.loading = true
	m.loadError = ""
	m.noFavorites = false

	favorites := m.favorites
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		if err := favorites.Load(ctx); err != nil {
			return FavoritesSetMsg{Success: false, Error: err}
		}
		return FavoritesSetMsg{Success: true}
	})
}

func (m *RecommendationsModel) fetch() tea.Cmd {
	m.seq++
	seq := m.seq
	m.loading = true
	m.loadError = ""

	recommender := m.recommender
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		animes, err := recommender.Fetch(ctx)
		if err != nil {
			return RecommendationsMsg{Seq: seq, Success: false, Error: err}
		}
		return RecommendationsMsg{Seq: seq, Success: true, Animes: animes}
	})
}

func (m *RecommendationsModel) selectedAnime() *domain.Anime {
	if len(m.animes) == 0 || m.cursor >= len(m.animes) {
		return nil
	}
	return m.animes[m.cursor]
}

func (m *RecommendationsModel) toggleFavorite() tea.Cmd {
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

func (m *RecommendationsModel) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case FavoritesSetMsg:
		if !msg.Success {
			m.loading = false
			m.loadError = msg.Error.Error()
			return m, nil
		}
		if m.favorites.Count() == 0 {
			log.Debug("Skipping recommendations fetch, no favorites")
			m.loading = false
			m.noFavorites = true
			m.animes = nil
			return m, nil
		}
		return m, m.fetch()

	case RecommendationsMsg:
		if msg.Seq != m.seq {
			log.Debug("Dropping stale recommendations response", "seq", msg.Seq, "current", m.seq)
			return m, nil
		}
		m.loading = false
		if !msg.Success {
			m.animes = nil
			m.loadError = msg.Error.Error()
			return m, nil
		}
		m.animes = msg.Animes
		m.loadError = ""
		if m.cursor >= len(m.animes) {
			m.cursor = 0
		}
		return m, nil

	case FavoriteToggleMsg:
		// Markers come from the shared favorite set, re-render is enough
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch kb.GetActionByKey(msg, kb.ContextRecommendations) {
		case kb.ActionMoveUp:
			if m.cursor > 0 {
				m.cursor--
			}

		case kb.ActionMoveDown:
			if m.cursor < len(m.animes)-1 {
				m.cursor++
			}

		case kb.ActionToggleFavorite:
			return m, m.toggleFavorite()

		case kb.ActionRefresh:
			// Favorites may have changed since the last visit, so the
			// whole sequence runs again
			return m, m.loadFavorites()

		case kb.ActionOpenFavorites:
			return m, navigateCmd(ViewFavorites)
		}
	}

	return m, nil
}

func (m *RecommendationsModel) View() string {
	header := styles.Header(m.width, "Recommendations")

	var body string
	switch {
	case m.loading:
		body = styles.CenteredText(m.width, m.spinner.View()+" Computing recommendations...")
	case m.loadError != "":
		body = styles.CenteredText(m.width,
			styles.ErrorText.Render("Could not load recommendations: "+m.loadError)+
				"\n"+styles.Subtle.Render("Press r to retry"))
	case m.noFavorites:
		body = styles.CenteredText(m.width,
			styles.Subtle.Render("Favorite some anime first and suggestions will show up here."))
	case len(m.animes) == 0:
		body = styles.CenteredText(m.width, styles.Subtle.Render("No recommendations right now. Press r to recompute."))
	default:
		var b strings.Builder
		for i, anime := range m.animes {
			b.WriteString(renderAnimeRow(anime, i == m.cursor, m.favorites.Contains(anime.ID), m.width))
			b.WriteString("\n")
		}
		if selected := m.selectedAnime(); selected != nil {
			b.WriteString("\n" + styles.Subtle.Render("Poster: ") + styles.Url.Render(selected.Image))
		}
		body = b.String()
	}

	footer := components.KeyBindingsBar(m.width, []components.KeyBinding{
		{Key: "↑/↓", Desc: "Navigate"},
		{Key: "Enter", Desc: "Favorite"},
		{Key: "r", Desc: "Recompute"},
		{Key: "Esc", Desc: "Back"},
	})

	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		"",
		body,
		"",
		footer,
	)
}

func (m *RecommendationsModel) Resize(width, height int) {
	m.width = width
	m.height = height
}
