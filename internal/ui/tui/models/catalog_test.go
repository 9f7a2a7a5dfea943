package models

import (
	"errors"
	"testing"

	"github.com/animerec/anirec/internal/domain"
	"github.com/animerec/anirec/internal/service"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func newTestCatalogModel() *CatalogModel {
	catalog := service.NewCatalog(nil, nil, 8)
	favorites := service.NewFavorites(nil, nil, 1)
	return NewCatalogModel(catalog, favorites, "Tester")
}

func TestChangePageBounds(t *testing.T) {
	m := newTestCatalogModel()
	m.page = 2
	m.totalPages = 3

	// Current page and out of range targets must not trigger a fetch
	assert.Nil(t, m.changePage(2))
	assert.Nil(t, m.changePage(0))
	assert.Nil(t, m.changePage(4))

	assert.NotNil(t, m.changePage(1))
	assert.NotNil(t, m.changePage(3))
}

func TestPagingIndicators(t *testing.T) {
	m := newTestCatalogModel()

	m.page = 1
	m.totalPages = 1
	assert.False(t, m.canPrevPage())
	assert.False(t, m.canNextPage())

	m.totalPages = 3
	assert.False(t, m.canPrevPage())
	assert.True(t, m.canNextPage())

	m.page = 3
	assert.True(t, m.canPrevPage())
	assert.False(t, m.canNextPage())
}

func TestStaleCatalogResponseDropped(t *testing.T) {
	m := newTestCatalogModel()
	m.seq = 2
	m.loading = true

	_, _ = m.Update(CatalogMsg{
		Seq:     1,
		Success: true,
		Animes:  []*domain.Anime{{ID: 1, Name: "Old result"}},
		Page:    service.Pagination{CurrentPage: 5, TotalPages: 9},
	})

	// The superseded response must not touch any state
	assert.True(t, m.loading)
	assert.Empty(t, m.animes)
	assert.Equal(t, 1, m.page)
	assert.Equal(t, 1, m.totalPages)
}

func TestCatalogFailureResetsPaging(t *testing.T) {
	m := newTestCatalogModel()
	m.seq = 1
	m.loading = true
	m.page = 3
	m.totalPages = 7
	m.animes = []*domain.Anime{{ID: 1, Name: "Stale"}}

	_, _ = m.Update(CatalogMsg{
		Seq:     1,
		Success: false,
		Page:    service.Pagination{CurrentPage: 1, TotalPages: 1},
		Error:   errors.New("backend returned status 502"),
	})

	assert.False(t, m.loading)
	assert.Empty(t, m.animes)
	assert.Equal(t, 1, m.page)
	assert.Equal(t, 1, m.totalPages)
	assert.Equal(t, "backend returned status 502", m.loadError)
}

func TestSearchAppliesFromFirstPage(t *testing.T) {
	m := newTestCatalogModel()
	m.page = 4
	m.totalPages = 6
	m.searchMode = true
	m.searchInput.SetValue("naruto")

	prevSeq := m.seq
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.NotNil(t, cmd)
	assert.False(t, m.searchMode)
	assert.Equal(t, "naruto", m.activeSearch)
	// A new fetch was started for the filtered listing
	assert.Equal(t, prevSeq+1, m.seq)
	assert.True(t, m.loading)
}

func TestGenreCycleWrapsToAll(t *testing.T) {
	m := newTestCatalogModel()

	assert.Equal(t, "all", m.genreFilter())
	assert.Equal(t, "All genres", m.genreLabel())

	m.genreIdx = 1
	assert.Equal(t, "Action", m.genreFilter())

	m.genreIdx = len(m.genres)
	assert.Equal(t, "Slice of Life", m.genreFilter())

	// One more cycle returns to the unfiltered sentinel
	m.genreIdx = (m.genreIdx + 1) % (len(m.genres) + 1)
	assert.Equal(t, "all", m.genreFilter())
}
