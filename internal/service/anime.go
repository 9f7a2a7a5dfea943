package service

import (
	"context"
	"strconv"
	"time"

	"github.com/animerec/anirec/internal/api"
	"github.com/animerec/anirec/internal/domain"
	"golang.org/x/sync/errgroup"
)

// posterConcurrency caps the per-page fan-out of poster lookups so a listing
// fetch cannot burst one outbound request per row all at once.
const posterConcurrency = 4

// PosterResolver resolves an anime name into a usable image URL.
// Satisfied by *poster.Resolver.
type PosterResolver interface {
	URL(ctx context.Context, name string) string
}

// buildAnime maps backend rows into display models, resolving posters
// concurrently and joining before returning.  A single row's poster lookup
// cannot fail the batch because resolution never errors.
func buildAnime(ctx context.Context, posters PosterResolver, rows []api.AnimeRow) []*domain.Anime {
	// The backend never reports a year; stamp the current one
	year := time.Now().Year()

	animes := make([]*domain.Anime, len(rows))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(posterConcurrency)

	for i, row := range rows {
		animes[i] = &domain.Anime{
			ID:     row.AnimeID,
			Name:   row.Name,
			Genres: domain.SplitGenres(row.Genre),
			Rating: formatRating(row.Rating),
			Year:   year,
			Type:   row.Type,
		}

		anime := animes[i]
		name := row.Name
		g.Go(func() error {
			anime.Image = posters.URL(gctx, name)
			return nil
		})
	}

	// Join-all; no goroutine returns an error
	_ = g.Wait()

	return animes
}

func formatRating(rating float64) string {
	return strconv.FormatFloat(rating, 'f', -1, 64)
}
