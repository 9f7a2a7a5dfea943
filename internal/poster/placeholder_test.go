package poster

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlaceholderColorDeterministic(t *testing.T) {
	names := []string{"Naruto", "Cowboy Bebop", "FLCL", "ワンピース", ""}

	for _, name := range names {
		h1, s1, l1 := placeholderColor(name)
		h2, s2, l2 := placeholderColor(name)

		assert.Equal(t, h1, h2, "hue must be stable for %q", name)
		assert.Equal(t, s1, s2, "saturation must be stable for %q", name)
		assert.Equal(t, l1, l2, "lightness must be stable for %q", name)
	}
}

func TestPlaceholderColorRanges(t *testing.T) {
	names := []string{"Naruto", "Cowboy Bebop", "FLCL", "Neon Genesis Evangelion", "a", "ワンピース"}

	for _, name := range names {
		hue, saturation, lightness := placeholderColor(name)

		assert.GreaterOrEqual(t, hue, 0)
		assert.Less(t, hue, 360)
		assert.GreaterOrEqual(t, saturation, 70)
		assert.Less(t, saturation, 100)
		assert.GreaterOrEqual(t, lightness, 40)
		assert.Less(t, lightness, 60)
	}
}

func TestPlaceholderURL(t *testing.T) {
	u := PlaceholderURL("Cowboy Bebop")

	assert.True(t, strings.HasPrefix(u, "https://via.placeholder.com/400x600/"))
	assert.Contains(t, u, "/ffffff?text=Cowboy+Bebop")

	// Same name, same URL
	assert.Equal(t, u, PlaceholderURL("Cowboy Bebop"))
}

func TestPlaceholderURLTruncatesLongNames(t *testing.T) {
	u := PlaceholderURL("Kono Subarashii Sekai ni Shukufuku wo!")

	// Overlay text is capped at 20 characters before escaping
	assert.Contains(t, u, "text="+("Kono+Subarashii+Seka"))
	assert.NotContains(t, u, "Shukufuku")
}
