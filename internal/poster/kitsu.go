package poster

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/goccy/go-json"
)

// kitsuClient queries the Kitsu anime search API for poster artwork.
type kitsuClient struct {
	baseURL    string
	httpClient *http.Client
}

type kitsuSearchResponse struct {
	Data []struct {
		Attributes struct {
			PosterImage struct {
				Medium   string `json:"medium"`
				Original string `json:"original"`
			} `json:"posterImage"`
		} `json:"attributes"`
	} `json:"data"`
}

// posterURL searches Kitsu by name, requesting at most one match.  Returns
// the medium-size poster URL, falling back to the original size.  An empty
// string with a nil error means no match.
func (k *kitsuClient) posterURL(ctx context.Context, name string) (string, error) {
	u := fmt.Sprintf("%s/anime?filter[text]=%s&page[limit]=1", k.baseURL, url.QueryEscape(name))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", err
	}

	resp, err := k.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("kitsu returned status %d", resp.StatusCode)
	}

	var search kitsuSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&search); err != nil {
		return "", err
	}

	if len(search.Data) == 0 {
		return "", nil
	}

	img := search.Data[0].Attributes.PosterImage
	if img.Medium != "" {
		return img.Medium, nil
	}
	return img.Original, nil
}
