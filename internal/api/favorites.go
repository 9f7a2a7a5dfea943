package api

import (
	"context"
	"fmt"
	"net/http"
)

// Favorites lists the titles the user has marked as favorites.
func (c *Client) Favorites(ctx context.Context, userID int) ([]AnimeRow, error) {
	var rows []AnimeRow
	u := fmt.Sprintf("%s/users/%d/favorite_animes/", c.baseURL, userID)
	if err := c.do(ctx, http.MethodGet, u, nil, "", &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// AddFavorite marks an anime as a favorite of the user.
func (c *Client) AddFavorite(ctx context.Context, userID, animeID int) error {
	u := fmt.Sprintf("%s/users/%d/favorite/%d", c.baseURL, userID, animeID)
	return c.do(ctx, http.MethodPost, u, nil, "application/json", nil)
}

// RemoveFavorite removes an anime from the user's favorites.
func (c *Client) RemoveFavorite(ctx context.Context, userID, animeID int) error {
	u := fmt.Sprintf("%s/users/%d/favorite/%d", c.baseURL, userID, animeID)
	return c.do(ctx, http.MethodDelete, u, nil, "application/json", nil)
}
