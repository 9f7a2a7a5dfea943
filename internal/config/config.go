package config

import (
	"dario.cat/mergo"
	"errors"
	"fmt"
	"gopkg.in/yaml.v3"
	"os"
	"path/filepath"
	"runtime"
)

// Config represents the application configuration
type Config struct {
	Server  ServerConfig  `yaml:"server,omitempty"`
	Poster  PosterConfig  `yaml:"poster,omitempty"`
	UI      UIConfig      `yaml:"ui,omitempty"`
	Logging LoggingConfig `yaml:"logging,omitempty"`
}

// ServerConfig contains settings for the recommendation backend
type ServerConfig struct {
	BaseURL string `yaml:"base_url,omitempty"`
}

// PosterConfig contains settings for the third-party poster image lookup
type PosterConfig struct {
	KitsuURL       string `yaml:"kitsu_url,omitempty"`
	AniListURL     string `yaml:"anilist_url,omitempty"`
	TimeoutSeconds int    `yaml:"timeout_seconds,omitempty"`
}

// UIConfig contains UI display preferences
type UIConfig struct {
	PageSize int `yaml:"page_size,omitempty"`
}

// LoggingConfig contains log related settings
type LoggingConfig struct {
	Level    string `yaml:"level,omitempty"`
	FilePath string `yaml:"file_path,omitempty"`
}

// Load builds a configuration struct from multiple sources using these steps:
// 1. Create a base config with default values
// 2. If no config file exists on disk, save the default config to that location
// 3. Apply 'dynamic' properties.  Dynamic properties are those that are determined at runtime, for example log file location which is different per OS.
// 4. Load & merge the config file, overwriting any defaults with user-specified values
// 5. Apply environment variable overrides
func Load() (*Config, error) {
	// 1. Start with base defaults
	cfg := createBaseDefaultConfig()

	configPath, err := getConfigPath()
	if err != nil {
		return nil, fmt.Errorf("unable to determine config file path: %w", err)
	}

	// 2. If no config file exists on disk, then write a default one
	if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
		// If there is an error saving the default config, then still let the application startup using the defaults.
		_ = save(cfg, configPath)
	}

	// 3. Apply dynamic defaults if necessary
	applyDynamicDefaults(cfg)

	// 4. Load the config from disk and merge it into the base defaults
	fileConfig, err := loadFromDisk(configPath)
	if err != nil {
		return nil, err
	}
	// Overrides the config with any values coming from the loaded file
	if err = mergo.Merge(cfg, fileConfig, mergo.WithOverride); err != nil {
		return nil, fmt.Errorf("error merging config loaded from disk: %w", err)
	}

	// 5. Apply the environment variable overrides which take precedence
	applyEnvVarOverrides(cfg)

	return cfg, nil
}

// applyDynamicDefaults sets runtime-determined default values for any properties that haven't been explicitly configured.
// Unlike static defaults, these values might change between runs based on the environment or system configuration.
func applyDynamicDefaults(cfg *Config) {
	cfg.Logging.FilePath = defaultLogFilePath()
}

// loadFromDisk loads the YAML config from disk and returns the unmarshalled Config
func loadFromDisk(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("unable to read config file: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("unable to parse config file: %w", err)
	}

	return cfg, nil
}

func save(cfg *Config, configPath string) error {
	// Create config dir if not exists
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0600)
}

// Dir returns the directory holding the config file.  The session file lives in the same place.
func Dir() (string, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return "", err
	}
	return filepath.Dir(configPath), nil
}

// getConfigPath returns the path to the config file.  Uses the environment variable override if present, else tries
// to use OS config location defaults.
func getConfigPath() (string, error) {
	configPath := os.Getenv("ANIREC_CONFIG_PATH")
	if configPath != "" {
		return configPath, nil
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}

	anirecConfigDir := filepath.Join(configDir, "anirec")
	return filepath.Join(anirecConfigDir, "config.yaml"), nil
}

// createBaseDefaultConfig creates a config with all default values
func createBaseDefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			BaseURL: "http://127.0.0.1:8000",
		},
		Poster: PosterConfig{
			KitsuURL:       "https://kitsu.io/api/edge",
			AniListURL:     "https://graphql.anilist.co",
			TimeoutSeconds: 10,
		},
		UI: UIConfig{
			PageSize: 8,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// defaultLogFilePath returns the path to the log file.  Tries to use expected OS location defaults.
func defaultLogFilePath() string {
	var basePath string
	homedir, err := os.UserHomeDir()
	if err != nil {
		// Fallback to logging in the current directory if home directory cannot be determined
		return filepath.Join(".", "anirec.log")
	}

	switch runtime.GOOS {
	case "windows":
		// Windows:  %LOCALAPPDATA%\anirec\logs
		if appData := os.Getenv("LOCALAPPDATA"); appData != "" {
			basePath = filepath.Join(appData, "anirec", "logs")
		} else {
			basePath = filepath.Join(homedir, "AppData", "local", "anirec", "logs")
		}
	case "darwin":
		// macOS:  ~/Library/Logs/anirec
		basePath = filepath.Join(homedir, "Library", "Logs", "anirec")
	default:
		// Linux/BSD:  XDG_STATE_HOME
		if xdgState := os.Getenv("XDG_STATE_HOME"); xdgState != "" {
			basePath = filepath.Join(xdgState, "anirec", "logs")
		} else {
			basePath = filepath.Join(homedir, ".local", "state", "anirec", "logs")
		}
	}

	err = os.MkdirAll(basePath, 0700)
	if err != nil {
		// If we failed to create the directory, fallback to logging in the current directory
		return filepath.Join(".", "anirec.log")
	}
	return filepath.Join(basePath, "anirec.log")
}
