package service

import (
	"context"

	"github.com/animerec/anirec/internal/api"
	"github.com/animerec/anirec/internal/domain"
	"github.com/animerec/anirec/internal/log"
)

// Pagination is the catalog paging cursor as reported by the backend.
type Pagination struct {
	CurrentPage int
	TotalPages  int
}

// Catalog fetches browsable catalog pages from the backend and assembles the
// display models for them.
type Catalog struct {
	client   *api.Client
	posters  PosterResolver
	pageSize int
}

// NewCatalog creates a catalog service fetching pageSize rows per page.
func NewCatalog(client *api.Client, posters PosterResolver, pageSize int) *Catalog {
	return &Catalog{
		client:   client,
		posters:  posters,
		pageSize: pageSize,
	}
}

// Genres returns the filterable genre list.
func (c *Catalog) Genres() []string {
	return []string{
		"Action",
		"Adventure",
		"Comedy",
		"Drama",
		"Fantasy",
		"Horror",
		"Mystery",
		"Romance",
		"Sci-Fi",
		"Slice of Life",
	}
}

// Page fetches one catalog page.  search and genre are applied only when
// non-empty (genre "all" means no filter); rows come back sorted by rating
// descending.  Posters are resolved before returning.
func (c *Catalog) Page(ctx context.Context, search, genre string, page int) ([]*domain.Anime, Pagination, error) {
	resp, err := c.client.ListAnimes(ctx, api.ListParams{
		Name:  search,
		Genre: genre,
		Page:  page,
		Limit: c.pageSize,
	})
	if err != nil {
		log.Error("Failed to fetch catalog page", "page", page, "search", search, "genre", genre, "error", err)
		return nil, Pagination{CurrentPage: 1, TotalPages: 1}, err
	}

	animes := buildAnime(ctx, c.posters, resp.Results)

	log.Debug("Catalog page loaded", "page", resp.CurrentPage, "total_pages", resp.TotalPages, "rows", len(animes))
	return animes, Pagination{CurrentPage: resp.CurrentPage, TotalPages: resp.TotalPages}, nil
}
