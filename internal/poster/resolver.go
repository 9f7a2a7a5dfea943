package poster

import (
	"context"
	"net/http"
	"time"

	"github.com/animerec/anirec/internal/log"
	"golang.org/x/time/rate"
)

const defaultTimeout = 10 * time.Second

// Options configures a Resolver.  Empty provider URLs disable that provider.
type Options struct {
	KitsuURL   string
	AniListURL string
	Timeout    time.Duration
	// HTTPClient overrides the default client, mainly for tests
	HTTPClient *http.Client
}

// Resolver turns an anime name into a usable poster image URL.  Lookup order
// is Kitsu, then AniList, then a generated placeholder.  URL never fails;
// provider errors are logged and swallowed.
type Resolver struct {
	kitsu   *kitsuClient
	anilist *aniListClient
	limiter *rate.Limiter
}

// NewResolver creates a resolver for the configured providers.
func NewResolver(opts Options) *Resolver {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}

	r := &Resolver{
		// One lookup per listing row; cap the burst a full page can produce
		limiter: rate.NewLimiter(rate.Limit(10), 8),
	}
	if opts.KitsuURL != "" {
		r.kitsu = &kitsuClient{baseURL: opts.KitsuURL, httpClient: httpClient}
	}
	if opts.AniListURL != "" {
		r.anilist = newAniListClient(opts.AniListURL, httpClient)
	}
	return r
}

// URL resolves the poster for the given anime name.  It always returns a
// usable URL string and never an error.
func (r *Resolver) URL(ctx context.Context, name string) string {
	if err := r.limiter.Wait(ctx); err != nil {
		return PlaceholderURL(name)
	}

	if r.kitsu != nil {
		u, err := r.kitsu.posterURL(ctx, name)
		if err != nil {
			log.Debug("Kitsu poster lookup failed", "name", name, "error", err)
		} else if u != "" {
			return u
		}
	}

	if r.anilist != nil {
		u, err := r.anilist.posterURL(ctx, name)
		if err != nil {
			log.Debug("AniList poster lookup failed", "name", name, "error", err)
		} else if u != "" {
			return u
		}
	}

	return PlaceholderURL(name)
}
