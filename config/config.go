package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port int

	// YouTube
	YoutubeAPIKeys  []string
	YoutubeEndpoint string
	ChannelDelay    time.Duration

	// Cache
	CacheTTL        time.Duration
	CacheMaxEntries int
	RedisURL        string

	// Insight history
	PostgresDSN string

	// Summarizer
	SummaryProvider          string
	OpenAIAPIKey             string
	OpenAIModel              string
	GeminiAPIKey             string
	GeminiModel              string
	SummaryMaxTokens         int
	SummaryTemperature       float32
	SummaryRequestsPerMinute int
}

// Load reads the environment, after loading a .env file if there is one.
func Load() (*Config, error) {
	godotenv.Load()

	return FromEnv()
}

func FromEnv() (*Config, error) {
	var err error
	cfg := &Config{
		YoutubeAPIKeys:  youtubeKeys(),
		YoutubeEndpoint: getParam("YOUTUBE_ENDPOINT", ""),
		RedisURL:        getParam("REDIS_URL", ""),
		PostgresDSN:     getParam("POSTGRES_DSN", ""),
		SummaryProvider: strings.ToLower(getParam("SUMMARY_PROVIDER", "openai")),
		OpenAIAPIKey:    getParam("OPENAI_API_KEY", ""),
		OpenAIModel:     getParam("OPENAI_MODEL", "gpt-4"),
		GeminiAPIKey:    getParam("GEMINI_API_KEY", ""),
		GeminiModel:     getParam("GEMINI_MODEL", "gemini-1.5-flash"),
	}

	if cfg.Port, err = getIntParam("API_PORT", 8080); err != nil {
		return nil, err
	}
	if cfg.ChannelDelay, err = getDurationParam("CHANNEL_DELAY", 500*time.Millisecond); err != nil {
		return nil, err
	}
	if cfg.CacheTTL, err = getDurationParam("CACHE_TTL", 6*time.Hour); err != nil {
		return nil, err
	}
	if cfg.CacheMaxEntries, err = getIntParam("CACHE_MAX_ENTRIES", 500); err != nil {
		return nil, err
	}
	if cfg.SummaryMaxTokens, err = getIntParam("SUMMARY_MAX_TOKENS", 700); err != nil {
		return nil, err
	}
	if cfg.SummaryRequestsPerMinute, err = getIntParam("SUMMARY_REQUESTS_PER_MINUTE", 10); err != nil {
		return nil, err
	}
	temp, err := strconv.ParseFloat(getParam("SUMMARY_TEMPERATURE", "0.7"), 32)
	if err != nil {
		return nil, fmt.Errorf("invalid SUMMARY_TEMPERATURE: %w", err)
	}
	cfg.SummaryTemperature = float32(temp)

	switch cfg.SummaryProvider {
	case "openai", "gemini":
	default:
		return nil, fmt.Errorf("invalid SUMMARY_PROVIDER %q, want openai or gemini", cfg.SummaryProvider)
	}

	return cfg, nil
}

// SummarizerKey returns the API key for the selected provider. An empty key
// means summarizing is disabled.
func (c *Config) SummarizerKey() string {
	if c.SummaryProvider == "gemini" {
		return c.GeminiAPIKey
	}
	return c.OpenAIAPIKey
}

// youtubeKeys collects keys from the numbered variables first, then the
// comma separated list. Empty values and duplicates are dropped.
func youtubeKeys() []string {
	raw := []string{
		getParam("YOUTUBE_API_KEY", ""),
		getParam("YOUTUBE_API_KEY_2", ""),
		getParam("YOUTUBE_API_KEY_3", ""),
	}
	raw = append(raw, strings.Split(getParam("YOUTUBE_API_KEYS", ""), ",")...)

	keys := []string{}
	seen := map[string]bool{}
	for _, k := range raw {
		k = strings.TrimSpace(k)
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		keys = append(keys, k)
	}
	return keys
}

func getParam(param, def string) string {
	if val, ok := os.LookupEnv(param); ok && val != "" {
		return val
	}
	return def
}

func getIntParam(param string, def int) (int, error) {
	val := getParam(param, "")
	if val == "" {
		return def, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", param, err)
	}
	return n, nil
}

func getDurationParam(param string, def time.Duration) (time.Duration, error) {
	val := getParam(param, "")
	if val == "" {
		return def, nil
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", param, err)
	}
	return d, nil
}
