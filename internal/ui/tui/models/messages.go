package models

import (
	"github.com/animerec/anirec/internal/domain"
	"github.com/animerec/anirec/internal/service"
	"github.com/animerec/anirec/internal/session"
)

// NavigateMsg requests a switch to another view.  AppModel owns routing, so
// page models emit this instead of mutating application state themselves.
type NavigateMsg struct {
	Target View
}

// LoginSuccessMsg is sent once the token exchange and the follow-up profile
// fetch have both completed
type LoginSuccessMsg struct {
	Session *session.Session
}

// SignupSuccessMsg is sent when account creation succeeded.  The user still
// has to log in afterwards.
type SignupSuccessMsg struct {
	Email string
}

// CatalogMsg carries the result of a catalog page fetch
type CatalogMsg struct {
	// Seq matches the request counter of the fetch that produced this
	// message.  Responses from superseded fetches are dropped.
	Seq     int
	Success bool
	Animes  []*domain.Anime
	Page    service.Pagination
	Error   error
}

// FavoritesMsg carries the result of loading the favorites list
type FavoritesMsg struct {
	Seq     int
	Success bool
	Animes  []*domain.Anime
	Error   error
}

// FavoritesSetMsg reports whether the lightweight favorite-id preload finished
type FavoritesSetMsg struct {
	Success bool
	Error   error
}

// FavoriteToggleMsg carries the result of adding or removing a favorite
type FavoriteToggleMsg struct {
	AnimeID int
	Added   bool
	Success bool
	Error   error
}

// RecommendationsMsg carries the result of a recommendations fetch
type RecommendationsMsg struct {
	Seq     int
	Success bool
	Animes  []*domain.Anime
	Error   error
}
