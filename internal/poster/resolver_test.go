package poster

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func kitsuServer(t *testing.T, body string, status int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/anime", r.URL.Path)
		assert.Equal(t, "1", r.URL.Query().Get("page[limit]"))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestResolverKitsuMedium(t *testing.T) {
	srv := kitsuServer(t, `{
		"data": [
			{"attributes": {"posterImage": {"medium": "https://media.kitsu.io/m.jpg", "original": "https://media.kitsu.io/o.jpg"}}}
		]
	}`, http.StatusOK)

	r := NewResolver(Options{KitsuURL: srv.URL})
	assert.Equal(t, "https://media.kitsu.io/m.jpg", r.URL(context.Background(), "Naruto"))
}

func TestResolverKitsuOriginalFallback(t *testing.T) {
	srv := kitsuServer(t, `{
		"data": [
			{"attributes": {"posterImage": {"original": "https://media.kitsu.io/o.jpg"}}}
		]
	}`, http.StatusOK)

	r := NewResolver(Options{KitsuURL: srv.URL})
	assert.Equal(t, "https://media.kitsu.io/o.jpg", r.URL(context.Background(), "Naruto"))
}

func TestResolverPlaceholderOnEmptyResult(t *testing.T) {
	srv := kitsuServer(t, `{"data": []}`, http.StatusOK)

	r := NewResolver(Options{KitsuURL: srv.URL})
	assert.Equal(t, PlaceholderURL("Naruto"), r.URL(context.Background(), "Naruto"))
}

func TestResolverPlaceholderOnErrorStatus(t *testing.T) {
	srv := kitsuServer(t, `{"errors": [{"title": "rate limited"}]}`, http.StatusTooManyRequests)

	r := NewResolver(Options{KitsuURL: srv.URL})
	assert.Equal(t, PlaceholderURL("Naruto"), r.URL(context.Background(), "Naruto"))
}

func TestResolverPlaceholderOnNetworkError(t *testing.T) {
	srv := kitsuServer(t, "", http.StatusOK)
	srv.Close() // Connection refused from here on

	r := NewResolver(Options{KitsuURL: srv.URL})
	assert.Equal(t, PlaceholderURL("Naruto"), r.URL(context.Background(), "Naruto"))
}

func TestResolverAniListFallback(t *testing.T) {
	kitsu := kitsuServer(t, `{"data": []}`, http.StatusOK)

	anilist := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"data": {
				"Media": {"coverImage": {"medium": "https://img.anili.st/m.jpg", "large": "https://img.anili.st/l.jpg"}}
			}
		}`))
	}))
	t.Cleanup(anilist.Close)

	r := NewResolver(Options{KitsuURL: kitsu.URL, AniListURL: anilist.URL})
	assert.Equal(t, "https://img.anili.st/m.jpg", r.URL(context.Background(), "Naruto"))
}

func TestResolverNoProviders(t *testing.T) {
	r := NewResolver(Options{})
	assert.Equal(t, PlaceholderURL("Naruto"), r.URL(context.Background(), "Naruto"))
}
