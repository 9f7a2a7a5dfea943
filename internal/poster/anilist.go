package poster

import (
	"context"
	"net/http"

	"github.com/machinebox/graphql"
)

// aniListClient is the secondary poster source, queried over AniList's public
// GraphQL endpoint when Kitsu has nothing for a title.
type aniListClient struct {
	client *graphql.Client
}

func newAniListClient(endpoint string, httpClient *http.Client) *aniListClient {
	return &aniListClient{
		client: graphql.NewClient(endpoint, graphql.WithHTTPClient(httpClient)),
	}
}

// posterURL searches AniList media by name and returns the medium cover
// image URL, falling back to the large size.  An empty string with a nil
// error means no match.
func (a *aniListClient) posterURL(ctx context.Context, name string) (string, error) {
	req := graphql.NewRequest(`
		query ($search: String) {
			Media(search: $search, type: ANIME) {
				coverImage {
					medium
					large
				}
			}
		}
	`)
	req.Var("search", name)

	var response struct {
		Media struct {
			CoverImage struct {
				Medium string `json:"medium"`
				Large  string `json:"large"`
			} `json:"coverImage"`
		} `json:"Media"`
	}

	if err := a.client.Run(ctx, req, &response); err != nil {
		return "", err
	}

	if response.Media.CoverImage.Medium != "" {
		return response.Media.CoverImage.Medium, nil
	}
	return response.Media.CoverImage.Large, nil
}
