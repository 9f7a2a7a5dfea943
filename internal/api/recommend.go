package api

import (
	"context"
	"fmt"
	"net/http"
)

// Recommendations fetches the server-computed suggestion list for the user.
// The algorithm is opaque to this client; rows arrive shaped like favorites.
func (c *Client) Recommendations(ctx context.Context, userID int) ([]AnimeRow, error) {
	var rows []AnimeRow
	u := fmt.Sprintf("%s/users/recommend/user/%d", c.baseURL, userID)
	if err := c.do(ctx, http.MethodGet, u, nil, "", &rows); err != nil {
		return nil, err
	}
	return rows, nil
}
