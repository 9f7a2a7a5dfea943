package poster

import (
	"fmt"
	"net/url"
)

const placeholderBaseURL = "https://via.placeholder.com/400x600"

// placeholderColor derives a stable HSL triple from the anime name so the
// same title always renders with the same fallback color.
func placeholderColor(name string) (hue, saturation, lightness int) {
	hash := 0
	for _, r := range name {
		hash += int(r)
	}

	hue = hash % 360
	saturation = 70 + hash%30
	lightness = 40 + hash%20
	return hue, saturation, lightness
}

// PlaceholderURL builds a deterministically colored placeholder image URL
// with a truncated version of the name as overlay text.
func PlaceholderURL(name string) string {
	hue, saturation, lightness := placeholderColor(name)

	text := []rune(name)
	if len(text) > 20 {
		text = text[:20]
	}

	return fmt.Sprintf("%s/%02x%02x%02x/ffffff?text=%s",
		placeholderBaseURL, hue, saturation, lightness, url.QueryEscape(string(text)))
}
