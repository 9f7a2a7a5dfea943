package service

import (
	"context"
	"sync"

	"github.com/animerec/anirec/internal/api"
	"github.com/animerec/anirec/internal/domain"
	"github.com/animerec/anirec/internal/log"
)

// Favorites owns the logged-in user's favorite set.  A single instance is
// shared by the dashboard, favorites and recommendations views so a toggle
// on one page is immediately visible on the others.
type Favorites struct {
	client  *api.Client
	posters PosterResolver
	userID  int

	mu  sync.Mutex
	ids map[int]struct{}
}

// NewFavorites creates the favorites service for the given user.
func NewFavorites(client *api.Client, posters PosterResolver, userID int) *Favorites {
	return &Favorites{
		client:  client,
		posters: posters,
		userID:  userID,
		ids:     map[int]struct{}{},
	}
}

// Load refreshes the membership set from the backend.
func (f *Favorites) Load(ctx context.Context) error {
	rows, err := f.client.Favorites(ctx, f.userID)
	if err != nil {
		return err
	}

	f.mu.Lock()
	f.ids = make(map[int]struct{}, len(rows))
	for _, row := range rows {
		f.ids[row.AnimeID] = struct{}{}
	}
	f.mu.Unlock()

	log.Debug("Favorites loaded", "user_id", f.userID, "count", len(rows))
	return nil
}

// List fetches the user's favorites as display models with posters resolved,
// refreshing the membership set as a side effect.
func (f *Favorites) List(ctx context.Context) ([]*domain.Anime, error) {
	rows, err := f.client.Favorites(ctx, f.userID)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	f.ids = make(map[int]struct{}, len(rows))
	for _, row := range rows {
		f.ids[row.AnimeID] = struct{}{}
	}
	f.mu.Unlock()

	return buildAnime(ctx, f.posters, rows), nil
}

// Contains reports whether the anime is currently a favorite.
func (f *Favorites) Contains(animeID int) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.ids[animeID]
	return ok
}

// Count returns the size of the favorite set.
func (f *Favorites) Count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.ids)
}

// Toggle flips membership for the anime: POST when absent, DELETE when
// present.  The local set only mutates on a success response; on failure it
// is left untouched and the error is returned for logging.
//
// The lock is released for the duration of the network call.  Contains and
// Count run on the render path, so they must not wait on an in-flight
// request; message delivery already serializes the toggles themselves.
func (f *Favorites) Toggle(ctx context.Context, anime *domain.Anime) (added bool, err error) {
	f.mu.Lock()
	_, isFavorite := f.ids[anime.ID]
	f.mu.Unlock()

	if isFavorite {
		if err := f.client.RemoveFavorite(ctx, f.userID, anime.ID); err != nil {
			return false, err
		}
		f.mu.Lock()
		delete(f.ids, anime.ID)
		f.mu.Unlock()
		log.Info("Removed from favorites", "anime_id", anime.ID, "name", anime.Name)
		return false, nil
	}

	if err := f.client.AddFavorite(ctx, f.userID, anime.ID); err != nil {
		return false, err
	}
	f.mu.Lock()
	f.ids[anime.ID] = struct{}{}
	f.mu.Unlock()
	log.Info("Added to favorites", "anime_id", anime.ID, "name", anime.Name)
	return true, nil
}
