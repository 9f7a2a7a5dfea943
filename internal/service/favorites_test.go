package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/animerec/anirec/internal/api"
	"github.com/animerec/anirec/internal/domain"
	"github.com/animerec/anirec/internal/poster"
	"github.com/stretchr/testify/assert"
)

// stubPosters avoids real lookups; every name resolves to its placeholder.
type stubPosters struct{}

func (stubPosters) URL(_ context.Context, name string) string {
	return poster.PlaceholderURL(name)
}

func TestToggleAddsAndRemoves(t *testing.T) {
	var calls []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.Method+" "+r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	favs := NewFavorites(api.NewClient(srv.URL), stubPosters{}, 7)
	anime := &domain.Anime{ID: 20, Name: "Naruto"}

	added, err := favs.Toggle(context.Background(), anime)
	assert.NoError(t, err)
	assert.True(t, added)
	assert.True(t, favs.Contains(20))

	// Toggling again with a successful response returns membership to its original state
	added, err = favs.Toggle(context.Background(), anime)
	assert.NoError(t, err)
	assert.False(t, added)
	assert.False(t, favs.Contains(20))

	assert.Equal(t, []string{"POST /users/7/favorite/20", "DELETE /users/7/favorite/20"}, calls)
}

func TestToggleFailureLeavesSetUnchanged(t *testing.T) {
	var requests int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		if requests > 1 {
			// Second call fails
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"detail": "boom"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	favs := NewFavorites(api.NewClient(srv.URL), stubPosters{}, 7)
	anime := &domain.Anime{ID: 20, Name: "Naruto"}

	_, err := favs.Toggle(context.Background(), anime)
	assert.NoError(t, err)
	assert.True(t, favs.Contains(20))

	// Failed removal must leave membership as after the first call
	_, err = favs.Toggle(context.Background(), anime)
	assert.Error(t, err)
	assert.True(t, favs.Contains(20))
}

func TestMembershipReadableDuringToggle(t *testing.T) {
	requestStarted := make(chan struct{})
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(requestStarted)
		<-release
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	favs := NewFavorites(api.NewClient(srv.URL), stubPosters{}, 7)
	anime := &domain.Anime{ID: 20, Name: "Naruto"}

	toggleDone := make(chan error, 1)
	go func() {
		_, err := favs.Toggle(context.Background(), anime)
		toggleDone <- err
	}()

	<-requestStarted

	// Contains and Count run on the render path and must return while the
	// toggle request is still in flight
	containsDone := make(chan bool, 1)
	go func() {
		containsDone <- favs.Contains(20)
	}()

	select {
	case isFavorite := <-containsDone:
		assert.False(t, isFavorite)
		assert.Equal(t, 0, favs.Count())
	case <-time.After(2 * time.Second):
		t.Fatal("Contains blocked while a toggle was in flight")
	}

	close(release)
	assert.NoError(t, <-toggleDone)
	assert.True(t, favs.Contains(20))
}

func TestLoadRebuildsSet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/7/favorite_animes/", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"anime_id": 1, "name": "FLCL", "genre": "Comedy, Sci-Fi", "rating": 7.9, "type": "OVA"},
			{"anime_id": 2, "name": "Eureka Seven", "genre": "Mecha", "rating": 8.1, "type": "TV"}
		]`))
	}))
	defer srv.Close()

	favs := NewFavorites(api.NewClient(srv.URL), stubPosters{}, 7)
	assert.NoError(t, favs.Load(context.Background()))

	assert.Equal(t, 2, favs.Count())
	assert.True(t, favs.Contains(1))
	assert.True(t, favs.Contains(2))
	assert.False(t, favs.Contains(3))
}

func TestListBuildsDisplayModels(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"anime_id": 1, "name": "FLCL", "genre": "Comedy, Sci-Fi", "rating": 7.9, "type": "OVA"}
		]`))
	}))
	defer srv.Close()

	favs := NewFavorites(api.NewClient(srv.URL), stubPosters{}, 7)
	animes, err := favs.List(context.Background())
	assert.NoError(t, err)
	assert.Len(t, animes, 1)

	assert.Equal(t, 1, animes[0].ID)
	assert.Equal(t, []string{"Comedy", "Sci-Fi"}, animes[0].Genres)
	assert.Equal(t, "7.9", animes[0].Rating)
	assert.Equal(t, poster.PlaceholderURL("FLCL"), animes[0].Image)
	assert.True(t, favs.Contains(1))
}
