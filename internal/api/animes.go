package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// GenreAll is the sentinel genre meaning "no genre filter".
const GenreAll = "all"

// AnimeRow is a single title row as the backend returns it.  The same shape
// is used by the listing, favorites and recommendation endpoints.
type AnimeRow struct {
	AnimeID int     `json:"anime_id"`
	Name    string  `json:"name"`
	Genre   string  `json:"genre"`
	Rating  float64 `json:"rating"`
	Type    string  `json:"type"`
}

// ListResponse is the paginated catalog listing.
type ListResponse struct {
	Results     []AnimeRow `json:"results"`
	TotalPages  int        `json:"totalPages"`
	CurrentPage int        `json:"currentPage"`
}

// ListParams describes one catalog page request.  Results are always ordered
// by rating descending on the server.
type ListParams struct {
	Name  string
	Genre string
	Page  int
	Limit int
}

// encode builds the query string in the backend's documented parameter order
// (name, genre, order_by_rating, page, limit) with only non-empty filters
// present.  url.Values is deliberately avoided since Encode sorts keys.
func (p ListParams) encode() string {
	var pairs []string
	if p.Name != "" {
		pairs = append(pairs, "name="+url.QueryEscape(p.Name))
	}
	if p.Genre != "" && p.Genre != GenreAll {
		pairs = append(pairs, "genre="+url.QueryEscape(p.Genre))
	}
	pairs = append(pairs,
		"order_by_rating=True",
		"page="+strconv.Itoa(p.Page),
		"limit="+strconv.Itoa(p.Limit),
	)
	return strings.Join(pairs, "&")
}

// ListAnimes fetches one page of the catalog.
func (c *Client) ListAnimes(ctx context.Context, p ListParams) (*ListResponse, error) {
	resp := &ListResponse{}
	u := c.baseURL + "/animes/?" + p.encode()
	if err := c.do(ctx, http.MethodGet, u, nil, "", resp); err != nil {
		return nil, err
	}
	return resp, nil
}
