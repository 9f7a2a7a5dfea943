package models

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/animerec/anirec/internal/api"
	"github.com/animerec/anirec/internal/poster"
	"github.com/animerec/anirec/internal/service"
	"github.com/stretchr/testify/assert"
)

type placeholderPosters struct{}

func (placeholderPosters) URL(_ context.Context, name string) string {
	return poster.PlaceholderURL(name)
}

func TestRecommendationsSkippedWithoutFavorites(t *testing.T) {
	favorites := service.NewFavorites(nil, nil, 1)
	m := NewRecommendationsModel(favorites, service.NewRecommender(nil, nil, 1))
	m.loading = true

	_, cmd := m.Update(FavoritesSetMsg{Success: true})

	// No favorites means the recommend endpoint must never be called
	assert.Nil(t, cmd)
	assert.True(t, m.noFavorites)
	assert.False(t, m.loading)
	assert.Empty(t, m.animes)
}

func TestRecommendationsFetchedWithFavorites(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"anime_id": 1, "name": "FLCL", "genre": "Comedy", "rating": 7.9, "type": "OVA"}
		]`))
	}))
	defer srv.Close()

	client := api.NewClient(srv.URL)
	favorites := service.NewFavorites(client, placeholderPosters{}, 1)
	assert.NoError(t, favorites.Load(context.Background()))
	assert.NotZero(t, favorites.Count())

	m := NewRecommendationsModel(favorites, service.NewRecommender(client, placeholderPosters{}, 1))

	_, cmd := m.Update(FavoritesSetMsg{Success: true})

	assert.NotNil(t, cmd)
	assert.False(t, m.noFavorites)
	assert.True(t, m.loading)
}
