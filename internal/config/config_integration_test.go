package config

import (
	"github.com/stretchr/testify/assert"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func setupTestConfig(t *testing.T) string {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "anirec-config-test")
	if err != nil {
		t.Fatalf("Failed to create temp directory: %v", err)
	}

	t.Cleanup(func() {
		if err := os.RemoveAll(tmpDir); err != nil {
			t.Fatalf("Failed to remove temp directory: %v", err)
		}
	})

	tmpConfigPath := filepath.Join(tmpDir, "config.yaml")
	setEnv(t, "ANIREC_CONFIG_PATH", tmpConfigPath)

	t.Cleanup(func() {
		cleanupEnvVars(t)
	})

	return tmpConfigPath
}

// TestConfigIntegration tests the config package with actual file operations
// This test uses a temporary directory to avoid interfering with real user configs
func TestConfigIntegration(t *testing.T) {
	// Test loading when no config exists (should create default)
	t.Run("LoadDefaultConfig", func(t *testing.T) {
		tmpConfigPath := setupTestConfig(t)
		config := loadConfig(t)

		// Verify default values
		assert.Equal(t, "http://127.0.0.1:8000", config.Server.BaseURL)
		assert.Equal(t, "https://kitsu.io/api/edge", config.Poster.KitsuURL)
		assert.Equal(t, "https://graphql.anilist.co", config.Poster.AniListURL)
		assert.Equal(t, 8, config.UI.PageSize)
		assert.Equal(t, "info", config.Logging.Level)
		assert.NotEmpty(t, config.Logging.FilePath)

		// Verify file was created
		if _, err := os.Stat(tmpConfigPath); os.IsNotExist(err) {
			t.Errorf("Config file was not created at %s", tmpConfigPath)
		}

		// Load the file from disk to assert that the 'dynamic' configurations were not saved when the default config was written
		savedConfig, _ := loadFromDisk(tmpConfigPath)
		assert.Empty(t, savedConfig.Logging.FilePath)
	})

	// Test saving and loading custom values
	t.Run("SaveAndLoadConfig", func(t *testing.T) {
		tmpConfigPath := setupTestConfig(t)
		// Create a config with custom values
		customConfig := &Config{
			Server: ServerConfig{
				BaseURL: "https://anime.example.com",
			},
			Poster: PosterConfig{
				KitsuURL:       "https://kitsu.example.com",
				AniListURL:     "https://anilist.example.com",
				TimeoutSeconds: 5,
			},
			UI: UIConfig{
				PageSize: 12,
			},
			Logging: LoggingConfig{
				Level:    "error",
				FilePath: "/var/log/anirec.log",
			},
		}

		saveConfig(t, customConfig, tmpConfigPath)
		loadedConfig := loadConfig(t)

		// Verify loaded values match what we saved
		assert.Equal(t, "https://anime.example.com", loadedConfig.Server.BaseURL)
		assert.Equal(t, "https://kitsu.example.com", loadedConfig.Poster.KitsuURL)
		assert.Equal(t, "https://anilist.example.com", loadedConfig.Poster.AniListURL)
		assert.Equal(t, 5, loadedConfig.Poster.TimeoutSeconds)
		assert.Equal(t, 12, loadedConfig.UI.PageSize)
		assert.Equal(t, "error", loadedConfig.Logging.Level)
		assert.Equal(t, "/var/log/anirec.log", loadedConfig.Logging.FilePath)
	})

	// Test invalid YAML handling
	t.Run("InvalidConfig", func(t *testing.T) {
		tmpConfigPath := setupTestConfig(t)
		// Write invalid YAML to the config file
		if err := os.WriteFile(tmpConfigPath, []byte("invalid: yaml: ["), 0600); err != nil {
			t.Fatalf("Failed to write invalid config: %v", err)
		}

		// Attempt to load the invalid config
		_, err := Load()
		if err == nil {
			t.Error("Expected error when loading invalid YAML, got nil")
		}
	})

	t.Run("EnvironmentVariableOverrides", func(t *testing.T) {
		setupTestConfig(t)

		setEnv(t, "ANIREC_CONFIG_SERVER_BASE_URL", "https://override.example.com")
		setEnv(t, "ANIREC_CONFIG_UI_PAGE_SIZE", "16")
		setEnv(t, "ANIREC_CONFIG_LOGGING_LEVEL", "debug")

		config := loadConfig(t)

		assert.Equal(t, "https://override.example.com", config.Server.BaseURL)
		assert.Equal(t, 16, config.UI.PageSize)
		assert.Equal(t, "debug", config.Logging.Level)
	})

	t.Run("InvalidPageSizeOverrideIgnored", func(t *testing.T) {
		setupTestConfig(t)

		setEnv(t, "ANIREC_CONFIG_UI_PAGE_SIZE", "not-a-number")

		config := loadConfig(t)
		assert.Equal(t, 8, config.UI.PageSize)
	})
}

func setEnv(t *testing.T, key, value string) {
	t.Helper()
	err := os.Setenv(key, value)
	if err != nil {
		t.Fatalf("Failed to set environment variable: %v", err)
	}
}

func unsetEnv(t *testing.T, key string) {
	t.Helper()
	err := os.Unsetenv(key)
	if err != nil {
		t.Fatalf("Failed to unset environment variable: %v", err)
	}
}

func saveConfig(t *testing.T, config *Config, configPath string) {
	t.Helper()
	if err := save(config, configPath); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}
}

func loadConfig(t *testing.T) *Config {
	t.Helper()
	config, err := Load()
	if err != nil {
		t.Fatalf("Loading of config failed: %v", err)
	}
	return config
}

// Removes any env vars with the ANIREC_CONFIG prefix to ensure test isolation
func cleanupEnvVars(t *testing.T) {
	t.Helper()

	for _, envVar := range os.Environ() {
		if key := strings.Split(envVar, "=")[0]; strings.HasPrefix(key, "ANIREC_CONFIG") {
			unsetEnv(t, key)
		}
	}
}
