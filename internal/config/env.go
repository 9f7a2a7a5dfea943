package config

import (
	"os"
	"strconv"
)

type envVar struct {
	name  string
	desc  string
	apply func(*Config, string)
}

var supportedEnvVars = []envVar{
	{
		// Only here for documentation purposes.  Does not override any values in the config as this environment variable
		// points to where the config should be loaded.  It is handled prior to loading the config.
		name:  "ANIREC_CONFIG_PATH",
		desc:  "Sets the path to the config file.  Default: OS-specific config directory",
		apply: func(c *Config, s string) {}, // Special case, no-op
	},
	{
		name:  "ANIREC_CONFIG_SERVER_BASE_URL",
		desc:  "Sets the base URL of the recommendation backend.  Default: http://127.0.0.1:8000",
		apply: func(c *Config, s string) { c.Server.BaseURL = s },
	},
	{
		name:  "ANIREC_CONFIG_POSTER_KITSU_URL",
		desc:  "Sets the base URL of the Kitsu poster lookup API.  Default: https://kitsu.io/api/edge",
		apply: func(c *Config, s string) { c.Poster.KitsuURL = s },
	},
	{
		name:  "ANIREC_CONFIG_POSTER_ANILIST_URL",
		desc:  "Sets the URL of the AniList GraphQL endpoint used as a poster fallback.  Default: https://graphql.anilist.co",
		apply: func(c *Config, s string) { c.Poster.AniListURL = s },
	},
	{
		name: "ANIREC_CONFIG_UI_PAGE_SIZE",
		desc: "Sets the number of catalog rows fetched per page.  Default: 8",
		apply: func(c *Config, s string) {
			if n, err := strconv.Atoi(s); err == nil && n > 0 {
				c.UI.PageSize = n
			}
		},
	},
	{
		name:  "ANIREC_CONFIG_LOGGING_LEVEL",
		desc:  "Sets the logging level.  One of: debug, info, warn, error.  Default: info",
		apply: func(c *Config, s string) { c.Logging.Level = s },
	},
	{
		name:  "ANIREC_CONFIG_LOGGING_FILE_PATH",
		desc:  "Sets the logging file path.  Default: OS-specific",
		apply: func(c *Config, s string) { c.Logging.FilePath = s },
	},
}

func applyEnvVarOverrides(c *Config) {
	for _, envVar := range supportedEnvVars {
		if value := os.Getenv(envVar.name); value != "" {
			envVar.apply(c, value)
		}
	}
}
