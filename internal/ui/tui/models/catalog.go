package models

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/animerec/anirec/internal/api"
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
	"github.com/mattn/go-runewidth"
)

const fetchTimeout = 30 * time.Second

// CatalogModel is the main browsing view: a paginated, searchable anime list
// with a cycling genre filter and inline favorite toggling.
type CatalogModel struct {
	catalog   *service.Catalog
	favorites *service.Favorites
	userName  string

	searchInput  textinput.Model
	searchMode   bool
	activeSearch string
	genres       []string
	genreIdx     int // 0 means no genre filter

	page       int
	totalPages int
	animes     []*domain.Anime
	cursor     int

	loading   bool
	loadError string
	spinner   spinner.Model

	// seq numbers outstanding fetches so late responses from superseded
	// requests cannot overwrite newer state
	seq int

	width, height int
}

func NewCatalogModel(catalog *service.Catalog, favorites *service.Favorites, userName string) *CatalogModel {
	search := textinput.New()
	search.Placeholder = "Type to search..."
	search.CharLimit = 100
	search.Width = 30

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4"))

	return &CatalogModel{
		catalog:     catalog,
		favorites:   favorites,
		userName:    userName,
		searchInput: search,
		genres:      catalog.Genres(),
		page:        1,
		totalPages:  1,
		spinner:     s,
	}
}

func (m *CatalogModel) ViewType() View {
	return ViewCatalog
}

func (m *CatalogModel) Init() tea.Cmd {
	return tea.Batch(m.loadFavoriteSet(), m.fetch(1))
}

// loadFavoriteSet preloads the favorite id set so hearts render correctly on
// the first page. Failures only cost the markers, so they are just logged.
func (m *CatalogModel) loadFavoriteSet() tea.Cmd {
	favorites := m.favorites
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		if err := favorites.Load(ctx); err != nil {
			log.Warn("Preloading favorite set failed", "error", err)
			return FavoritesSetMsg{Success: false, Error: err}
		}
		return FavoritesSetMsg{Success: true}
	}
}

func (m *CatalogModel) genreFilter() string {
	if m.genreIdx == 0 {
		return api.GenreAll
	}
	return m.genres[m.genreIdx-1]
}

func (m *CatalogModel) genreLabel() string {
	if m.genreIdx == 0 {
		return "All genres"
	}
	return m.genres[m.genreIdx-1]
}

// fetch starts an asynchronous page load and marks the view as loading
func (m *CatalogModel) fetch(page int) tea.Cmd {
	m.seq++
	seq := m.seq
	m.loading = true
	m.loadError = ""

	catalog := m.catalog
	search := m.activeSearch
	genre := m.genreFilter()

	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		animes, pg, err := catalog.Page(ctx, search, genre, page)
		if err != nil {
			return CatalogMsg{Seq: seq, Success: false, Page: pg, Error: err}
		}
		return CatalogMsg{Seq: seq, Success: true, Animes: animes, Page: pg}
	})
}

// changePage fetches the requested page.  Out of range targets and the
// current page are no-ops, so holding a paging key at a boundary does not
// spam the backend.
func (m *CatalogModel) changePage(page int) tea.Cmd {
	if page == m.page || page < 1 || page > m.totalPages {
		return nil
	}
	return m.fetch(page)
}

func (m *CatalogModel) canPrevPage() bool {
	return m.page > 1
}

func (m *CatalogModel) canNextPage() bool {
	return m.page < m.totalPages
}

func (m *CatalogModel) selectedAnime() *domain.Anime {
	if len(m.animes) == 0 || m.cursor >= len(m.animes) {
		return nil
	}
	return m.animes[m.cursor]
}

func (m *CatalogModel) toggleFavorite() tea.Cmd {
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

func (m *CatalogModel) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case CatalogMsg:
		if msg.Seq != m.seq {
			log.Debug("Dropping stale catalog response", "seq", msg.Seq, "current", m.seq)
			return m, nil
		}
		m.loading = false
		if !msg.Success {
			m.animes = nil
			m.cursor = 0
			m.page = msg.Page.CurrentPage
			m.totalPages = msg.Page.TotalPages
			m.loadError = msg.Error.Error()
			return m, nil
		}
		m.animes = msg.Animes
		m.page = msg.Page.CurrentPage
		m.totalPages = msg.Page.TotalPages
		m.loadError = ""
		if m.cursor >= len(m.animes) {
			m.cursor = 0
		}
		return m, nil

	case FavoriteToggleMsg:
		// Membership state lives in the shared favorites service, so a
		// successful toggle only needs a re-render.  Failures keep the
		// previous marker.
		return m, nil

	case FavoritesSetMsg:
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.searchMode {
			return m.handleSearchModeKey(msg)
		}
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *CatalogModel) handleSearchModeKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch kb.GetActionByKey(msg, kb.ContextSearchMode) {
	case kb.ActionBack:
		m.searchMode = false
		m.searchInput.Blur()
		m.searchInput.SetValue("")
		if m.activeSearch != "" {
			m.activeSearch = ""
			return m, m.fetch(1)
		}
		return m, nil

	case kb.ActionSearchComplete:
		m.searchMode = false
		m.searchInput.Blur()
		m.activeSearch = strings.TrimSpace(m.searchInput.Value())
		return m, m.fetch(1)
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

func (m *CatalogModel) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch kb.GetActionByKey(msg, kb.ContextCatalog) {
	case kb.ActionMoveUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case kb.ActionMoveDown:
		if m.cursor < len(m.animes)-1 {
			m.cursor++
		}

	case kb.ActionPrevPage:
		return m, m.changePage(m.page - 1)

	case kb.ActionNextPage:
		return m, m.changePage(m.page + 1)

	case kb.ActionToggleFavorite:
		return m, m.toggleFavorite()

	case kb.ActionEnableSearch:
		m.searchMode = true
		m.searchInput.SetValue(m.activeSearch)
		m.searchInput.Focus()
		return m, textinput.Blink

	case kb.ActionCycleGenre:
		m.genreIdx = (m.genreIdx + 1) % (len(m.genres) + 1)
		// Changing the filter always restarts from the first page
		return m, m.fetch(1)

	case kb.ActionRefresh:
		return m, m.fetch(m.page)

	case kb.ActionOpenFavorites:
		return m, navigateCmd(ViewFavorites)

	case kb.ActionOpenRecommendations:
		return m, navigateCmd(ViewRecommendations)
	}

	return m, nil
}

func (m *CatalogModel) View() string {
	header := styles.Header(m.width, "Catalog")

	var filterParts []string
	if m.searchMode {
		filterParts = append(filterParts, "Search: "+m.searchInput.View())
	} else if m.activeSearch != "" {
		filterParts = append(filterParts, "Search: "+m.activeSearch)
	}
	filterParts = append(filterParts, "Genre: "+m.genreLabel())
	filterLine := styles.FilterStatus.Render(strings.Join(filterParts, "  |  "))

	var body string
	switch {
	case m.loading:
		body = styles.CenteredText(m.width, m.spinner.View()+" Loading catalog...")
	case m.loadError != "":
		body = styles.CenteredText(m.width,
			styles.ErrorText.Render("Could not load the catalog: "+m.loadError)+
				"\n"+styles.Subtle.Render("Press r to retry"))
	case len(m.animes) == 0:
		body = styles.CenteredText(m.width, styles.Subtle.Render("No anime matched your filters"))
	default:
		body = m.renderList()
	}

	pageLine := styles.CenteredText(m.width, renderPageIndicator(m.page, m.totalPages, m.canPrevPage(), m.canNextPage()))

	var footer string
	if m.searchMode {
		footer = components.KeyBindingsBar(m.width, []components.KeyBinding{
			{Key: "Enter", Desc: "Apply"},
			{Key: "Esc", Desc: "Cancel"},
		})
	} else {
		footer = components.KeyBindingsBar(m.width, []components.KeyBinding{
			{Key: "↑/↓", Desc: "Navigate"},
			{Key: "←/→", Desc: "Page"},
			{Key: "Enter", Desc: "Favorite"},
			{Key: "/", Desc: "Search"},
			{Key: "g", Desc: "Genre"},
			{Key: "Ctrl+h", Desc: "Help"},
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
		pageLine,
		footer,
	)
}

func (m *CatalogModel) renderList() string {
	var b strings.Builder
	for i, anime := range m.animes {
		b.WriteString(renderAnimeRow(anime, i == m.cursor, m.favorites.Contains(anime.ID), m.width))
		b.WriteString("\n")
	}

	if selected := m.selectedAnime(); selected != nil {
		b.WriteString("\n" + styles.Subtle.Render("Poster: ") + styles.Url.Render(selected.Image))
	}

	return b.String()
}

// renderAnimeRow renders a single list entry with favorite marker, title,
// genres, rating and media type
func renderAnimeRow(anime *domain.Anime, selected, favorite bool, width int) string {
	marker := "  "
	if favorite {
		marker = styles.Favorite.Render("♥") + " "
	}

	cursor := "  "
	if selected {
		cursor = "> "
	}

	title := runewidth.Truncate(anime.Name, 40, "…")
	title = runewidth.FillRight(title, 40)

	details := fmt.Sprintf("%-6s %-4s %s",
		anime.Rating, anime.Type, strings.Join(anime.Genres, "/"))

	row := cursor + marker + title + "  " + styles.Subtle.Render(details)
	if selected {
		return lipgloss.NewStyle().Bold(true).Render(row)
	}
	return row
}

// renderPageIndicator renders the "Page x of y" line with paging arrows
// dimmed when they would be no-ops
func renderPageIndicator(page, totalPages int, canPrev, canNext bool) string {
	prev := styles.Subtle.Render("←")
	if canPrev {
		prev = "←"
	}
	next := styles.Subtle.Render("→")
	if canNext {
		next = "→"
	}
	return fmt.Sprintf("%s Page %d of %d %s", prev, page, totalPages, next)
}

func (m *CatalogModel) Resize(width, height int) {
	m.width = width
	m.height = height
}
