package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Storage drivers.
const (
	DriverMemory = "memory"
	DriverRedis  = "redis"
	DriverSQLite = "sqlite"
)

// maxResultLimit mirrors the hard cap on search and ranking result sizes.
const maxResultLimit = 100

// Config holds the blogdex API configuration.
type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	Auth    AuthConfig    `yaml:"auth"`
	Logging LoggingConfig `yaml:"logging"`
	Storage StorageConfig `yaml:"storage"`
	Content ContentConfig `yaml:"content"`
	Search  SearchConfig  `yaml:"search"`
	Scoring ScoringConfig `yaml:"scoring"`
	Cache   CacheConfig   `yaml:"cache"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings.
type AuthConfig struct {
	APIKeys     []string `yaml:"api_keys"`
	PublicReads bool     `yaml:"public_reads"` // GET requests skip the token check
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// StorageConfig holds the view-count and cache store settings.
type StorageConfig struct {
	Driver           string   `yaml:"driver"` // memory, redis, sqlite (default: memory)
	Addrs            []string `yaml:"addrs"`
	Username         string   `yaml:"username"`
	Password         string   `yaml:"password"`
	DB               int      `yaml:"db"`
	Path             string   `yaml:"path"` // sqlite file
	KeyPrefix        string   `yaml:"key_prefix"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// ContentConfig holds content source settings.
type ContentConfig struct {
	MarkdownDirs      []string `yaml:"markdown_dirs"`
	FeedURLs          []string `yaml:"feed_urls"`
	FeedTimeoutSec    int      `yaml:"feed_timeout_sec"`
	Watch             bool     `yaml:"watch"`
	WatchDebounceMs   int      `yaml:"watch_debounce_ms"`
	ReloadIntervalSec int      `yaml:"reload_interval_sec"` // 0 = no periodic reload
}

// SearchConfig holds query engine settings.
type SearchConfig struct {
	Weights       FieldWeights `yaml:"weights"`
	DefaultLimit  int          `yaml:"default_limit"`
	MaxLimit      int          `yaml:"max_limit"`
	SnippetBefore int          `yaml:"snippet_before"`
	SnippetAfter  int          `yaml:"snippet_after"`
	DebounceMs    int          `yaml:"debounce_ms"`
}

// FieldWeights are per-field search boosts.
type FieldWeights struct {
	Title       float64 `yaml:"title"`
	Description float64 `yaml:"description"`
	Tags        float64 `yaml:"tags"`
	Source      float64 `yaml:"source"`
}

// ScoringConfig holds the relevance and popularity constants.
type ScoringConfig struct {
	Related    RelatedConfig    `yaml:"related"`
	Popularity PopularityConfig `yaml:"popularity"`
}

// RelatedConfig holds related-content scoring constants. An all-zero section uses defaults.
type RelatedConfig struct {
	PerSharedTag float64 `yaml:"per_shared_tag"`
	TagCap       float64 `yaml:"tag_cap"`
	TitleCap     float64 `yaml:"title_cap"`
	PerKeyword   float64 `yaml:"per_keyword"`
	KeywordCap   float64 `yaml:"keyword_cap"`
	NearDays     int     `yaml:"near_days"`
	NearBonus    float64 `yaml:"near_bonus"`
	FarDays      int     `yaml:"far_days"`
	FarBonus     float64 `yaml:"far_bonus"`
}

// PopularityConfig holds popularity scoring constants. An all-zero section uses defaults.
type PopularityConfig struct {
	ViewsPerPoint int           `yaml:"views_per_point"`
	ViewCap       int           `yaml:"view_cap"`
	FeaturedBoost float64       `yaml:"featured_boost"`
	Recency       []RecencyStep `yaml:"recency"`
}

// RecencyStep awards Bonus to posts at most MaxDays old.
type RecencyStep struct {
	MaxDays int     `yaml:"max_days"`
	Bonus   float64 `yaml:"bonus"`
}

// CacheConfig holds response cache settings.
type CacheConfig struct {
	TTLSec         int `yaml:"ttl_sec"`
	RetentionHours int `yaml:"retention_hours"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	return Parse(data)
}

// Parse decodes, defaults and validates a YAML document.
func Parse(data []byte) (Config, error) {
	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}

	if c.Storage.Driver == "" {
		c.Storage.Driver = DriverMemory
	}
	if c.Storage.Driver == DriverSQLite && c.Storage.Path == "" {
		c.Storage.Path = "blogdex.db"
	}
	if c.Storage.KeyPrefix == "" {
		c.Storage.KeyPrefix = "blogdex:"
	}
	if c.Storage.ReadinessTimeout <= 0 {
		c.Storage.ReadinessTimeout = 10
	}

	if c.Content.FeedTimeoutSec <= 0 {
		c.Content.FeedTimeoutSec = 25
	}
	if c.Content.WatchDebounceMs <= 0 {
		c.Content.WatchDebounceMs = 500
	}

	c.Search.applyDefaults()
	c.Scoring.applyDefaults()

	if c.Cache.TTLSec <= 0 {
		c.Cache.TTLSec = 600
	}
	if c.Cache.RetentionHours <= 0 {
		c.Cache.RetentionHours = 7 * 24
	}
}

func (s *SearchConfig) applyDefaults() {
	if s.Weights == (FieldWeights{}) {
		s.Weights = FieldWeights{Title: 2, Description: 1, Tags: 0.8, Source: 0.5}
	}
	if s.DefaultLimit <= 0 {
		s.DefaultLimit = 10
	}
	if s.MaxLimit <= 0 {
		s.MaxLimit = maxResultLimit
	}
	if s.SnippetBefore <= 0 {
		s.SnippetBefore = 30
	}
	if s.SnippetAfter <= 0 {
		s.SnippetAfter = 100
	}
	if s.DebounceMs <= 0 {
		s.DebounceMs = 300
	}
}

func (s *ScoringConfig) applyDefaults() {
	if s.Related == (RelatedConfig{}) {
		s.Related = RelatedConfig{
			PerSharedTag: 2, TagCap: 5,
			TitleCap:   3,
			PerKeyword: 0.5, KeywordCap: 3,
			NearDays: 90, NearBonus: 2,
			FarDays: 180, FarBonus: 1,
		}
	}
	p := &s.Popularity
	if p.ViewsPerPoint == 0 && p.ViewCap == 0 && p.FeaturedBoost == 0 && len(p.Recency) == 0 {
		*p = PopularityConfig{
			ViewsPerPoint: 2,
			ViewCap:       5,
			FeaturedBoost: 3,
			Recency:       []RecencyStep{{MaxDays: 7, Bonus: 3}, {MaxDays: 14, Bonus: 2}, {MaxDays: 30, Bonus: 1}},
		}
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}

	switch c.Storage.Driver {
	case DriverMemory:
	case DriverRedis:
		if len(c.Storage.Addrs) == 0 {
			return fmt.Errorf("storage.addrs is required for the redis driver")
		}
	case DriverSQLite:
		if c.Storage.Path == "" {
			return fmt.Errorf("storage.path is required for the sqlite driver")
		}
	default:
		return fmt.Errorf("storage.driver must be %q, %q or %q, got %q",
			DriverMemory, DriverRedis, DriverSQLite, c.Storage.Driver)
	}

	if c.Search.MaxLimit > maxResultLimit {
		return fmt.Errorf("search.max_limit must be at most %d, got %d", maxResultLimit, c.Search.MaxLimit)
	}
	if c.Search.DefaultLimit > c.Search.MaxLimit {
		return fmt.Errorf("search.default_limit (%d) exceeds search.max_limit (%d)",
			c.Search.DefaultLimit, c.Search.MaxLimit)
	}
	w := c.Search.Weights
	if w.Title < 0 || w.Description < 0 || w.Tags < 0 || w.Source < 0 {
		return fmt.Errorf("search.weights must not be negative")
	}

	for i, step := range c.Scoring.Popularity.Recency {
		if i > 0 && step.MaxDays <= c.Scoring.Popularity.Recency[i-1].MaxDays {
			return fmt.Errorf("scoring.popularity.recency must be sorted by max_days ascending")
		}
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
