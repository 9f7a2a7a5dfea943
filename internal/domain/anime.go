package domain

import "strings"

// Anime is the normalized record describing one title for display.
// It is rebuilt from the backend rows on every fetch and never persisted.
type Anime struct {
	ID     int
	Name   string
	Image  string
	Genres []string
	Rating string
	Year   int
	Type   string
}

// SplitGenres derives the genre list from the backend's comma-delimited genre string.
// Rows without a genre produce an empty list.
func SplitGenres(genre string) []string {
	if genre == "" {
		return []string{}
	}
	return strings.Split(genre, ", ")
}
