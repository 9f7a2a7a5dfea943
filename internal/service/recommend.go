package service

import (
	"context"

	"github.com/animerec/anirec/internal/api"
	"github.com/animerec/anirec/internal/domain"
	"github.com/animerec/anirec/internal/log"
)

// Recommender fetches the server-computed suggestions for the user.  The
// view only asks for them once the favorite set is known to be non-empty.
type Recommender struct {
	client  *api.Client
	posters PosterResolver
	userID  int
}

// NewRecommender creates the recommendation service for the given user.
func NewRecommender(client *api.Client, posters PosterResolver, userID int) *Recommender {
	return &Recommender{
		client:  client,
		posters: posters,
		userID:  userID,
	}
}

// Fetch retrieves the recommendation list with posters resolved.
func (r *Recommender) Fetch(ctx context.Context) ([]*domain.Anime, error) {
	rows, err := r.client.Recommendations(ctx, r.userID)
	if err != nil {
		log.Error("Failed to fetch recommendations", "user_id", r.userID, "error", err)
		return nil, err
	}

	log.Debug("Recommendations loaded", "user_id", r.userID, "count", len(rows))
	return buildAnime(ctx, r.posters, rows), nil
}
