package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	API      APIConfig
	Google   GoogleConfig
	DBPath   string
	LogLevel string
	Language string
	Searches map[string]*SearchPreset
}

type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

type GoogleConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

// SearchPreset is a named, pre-filled set of listing filters loaded from
// config/searches/*.yaml.
type SearchPreset struct {
	ID        string   `yaml:"id"`
	Name      string   `yaml:"name"`
	Location  string   `yaml:"location"`
	Types     []string `yaml:"types"`
	Status    string   `yaml:"status"`
	Beds      int      `yaml:"beds"`
	Baths     int      `yaml:"baths"`
	SortBy    string   `yaml:"sort_by"`
	PriceFrom int      `yaml:"price_from"`
	PriceTo   int      `yaml:"price_to"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		API: APIConfig{
			BaseURL: getEnv("BEYT_API_URL", "https://beyt-personal.vercel.app/api"),
			Timeout: time.Duration(getEnvInt("BEYT_API_TIMEOUT_MS", 5000)) * time.Millisecond,
		},
		Google: GoogleConfig{
			ClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
			ClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
			RedirectURL:  getEnv("GOOGLE_REDIRECT_URL", "http://localhost:8972/callback"),
		},
		DBPath:   getEnv("DB_PATH", "beyt.db"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Language: getEnv("BEYT_LANG", "en"),
		Searches: make(map[string]*SearchPreset),
	}

	if err := cfg.loadSearchPresets(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) loadSearchPresets() error {
	presetDir := "config/searches"
	entries, err := os.ReadDir(presetDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".yaml" {
			continue
		}

		path := filepath.Join(presetDir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		var preset SearchPreset
		if err := yaml.Unmarshal(data, &preset); err != nil {
			return err
		}

		c.Searches[preset.ID] = &preset
	}

	return nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}
