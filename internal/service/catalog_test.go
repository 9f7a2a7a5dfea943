package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/animerec/anirec/internal/api"
	"github.com/animerec/anirec/internal/poster"
	"github.com/stretchr/testify/assert"
)

func TestCatalogPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "name=Naruto&genre=Action&order_by_rating=True&page=2&limit=8", r.URL.RawQuery)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"results": [
				{"anime_id": 20, "name": "Naruto", "genre": "Action, Adventure", "rating": 8.3, "type": "TV"},
				{"anime_id": 21, "name": "Naruto Shippuden", "genre": "", "rating": 8.7, "type": "TV"}
			],
			"totalPages": 3,
			"currentPage": 2
		}`))
	}))
	defer srv.Close()

	catalog := NewCatalog(api.NewClient(srv.URL), stubPosters{}, 8)
	animes, pg, err := catalog.Page(context.Background(), "Naruto", "Action", 2)
	if err != nil {
		t.Fatalf("Page failed: %v", err)
	}

	assert.Equal(t, Pagination{CurrentPage: 2, TotalPages: 3}, pg)
	assert.Len(t, animes, 2)

	assert.Equal(t, 20, animes[0].ID)
	assert.Equal(t, []string{"Action", "Adventure"}, animes[0].Genres)
	assert.Equal(t, "8.3", animes[0].Rating)
	assert.Equal(t, time.Now().Year(), animes[0].Year)
	assert.Equal(t, poster.PlaceholderURL("Naruto"), animes[0].Image)

	// Rows without a genre map to an empty genre list
	assert.Empty(t, animes[1].Genres)
}

func TestCatalogPageFailureResetsCursor(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`{"detail": "upstream down"}`))
	}))
	defer srv.Close()

	catalog := NewCatalog(api.NewClient(srv.URL), stubPosters{}, 8)
	animes, pg, err := catalog.Page(context.Background(), "", "", 3)

	assert.Error(t, err)
	assert.Nil(t, animes)
	// Failed fetches reset the cursor rather than leaving stale paging state
	assert.Equal(t, Pagination{CurrentPage: 1, TotalPages: 1}, pg)
}

func TestCatalogGenres(t *testing.T) {
	catalog := NewCatalog(nil, stubPosters{}, 8)
	genres := catalog.Genres()

	assert.Len(t, genres, 10)
	assert.Contains(t, genres, "Action")
	assert.Contains(t, genres, "Slice of Life")
}
