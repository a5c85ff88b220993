// internal/config/loader.go
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"traveldeal/pkg/utils"
)

// Load reads .env, an optional config.yaml and the environment, in that order
// of increasing precedence.
func Load() (*Config, error) {
	loadEnvFile()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	return build(v)
}

// LoadFromFile loads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return build(v)
}

func build(v *viper.Viper) (*Config, error) {
	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	bindLegacyEnv(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyProviderKey(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "travel-deal-tracker")
	v.SetDefault("app.environment", "development")
	v.SetDefault("http.port", "8080")

	v.SetDefault("database.url", "")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", 300)
	v.SetDefault("database.auto_migrate", true)

	v.SetDefault("redis.address", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("cache.backend", "memory")
	v.SetDefault("cache.ttl", 3600)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("trip.origin", "YVR")
	v.SetDefault("trip.destination", "BKK")
	v.SetDefault("trip.depart_date", "2025-10-28")
	v.SetDefault("trip.return_date", "2025-11-18")
	v.SetDefault("trip.trip_length_days", 22)
	v.SetDefault("trip.cabin", "Economy")
	v.SetDefault("trip.anchor_city", "Bangkok")
	v.SetDefault("trip.hub_cities", []string{"Bangkok", "Chiang Mai", "Phuket", "Krabi", "Koh Samui"})

	v.SetDefault("itinerary.window_length", 5)
	v.SetDefault("itinerary.max_windows", 3)
	v.SetDefault("itinerary.durations", []int{})
	v.SetDefault("itinerary.flight_history", 30)
	v.SetDefault("itinerary.hotel_history", 20)
	v.SetDefault("itinerary.deal_limit", 160)
	v.SetDefault("itinerary.deals_per_city", 60)
	v.SetDefault("itinerary.pair_timeout", 45000)
	v.SetDefault("itinerary.generated_max_days", 10)

	v.SetDefault("narrative.provider", "openai")
	v.SetDefault("narrative.api_key", "")
	v.SetDefault("narrative.model", "")
	v.SetDefault("narrative.base_url", "")
	v.SetDefault("narrative.temperature", 0.3)
	v.SetDefault("narrative.timeout", 30000)

	v.SetDefault("schedule.enabled", true)
	v.SetDefault("schedule.cron", "0 0 7 * * *")
	v.SetDefault("schedule.run_on_start", false)
}

// bindLegacyEnv keeps the flat variable names deployments already use.
func bindLegacyEnv(v *viper.Viper) {
	_ = v.BindEnv("database.url", "DATABASE_URL", "POSTGRES_URL")
	_ = v.BindEnv("http.port", "HTTP_PORT", "PORT")
	_ = v.BindEnv("redis.address", "REDIS_ADDRESS", "REDIS_ADDR")
	_ = v.BindEnv("narrative.provider", "NARRATIVE_PROVIDER", "EMBEDDING_PROVIDER")
	_ = v.BindEnv("app.environment", "APP_ENVIRONMENT")
}

// applyProviderKey falls back to the provider-specific key variable.
func applyProviderKey(cfg *Config) {
	if cfg.Narrative.APIKey != "" {
		return
	}
	switch strings.ToLower(cfg.Narrative.Provider) {
	case "openai":
		cfg.Narrative.APIKey = os.Getenv("OPENAI_API_KEY")
	case "gemini":
		cfg.Narrative.APIKey = os.Getenv("GEMINI_API_KEY")
	}
}

// Validate fails fast on configuration the engine cannot run with.
func (c *Config) Validate() error {
	depart, err := utils.ParseISODate(c.Trip.DepartDate)
	if err != nil {
		return fmt.Errorf("%w: trip.depart_date: %v", utils.ErrInvalidConfig, err)
	}
	ret, err := utils.ParseISODate(c.Trip.ReturnDate)
	if err != nil {
		return fmt.Errorf("%w: trip.return_date: %v", utils.ErrInvalidConfig, err)
	}
	if ret.Before(depart) {
		return fmt.Errorf("%w: trip.return_date is before trip.depart_date", utils.ErrInvalidConfig)
	}
	if c.Trip.TripLengthDays <= 0 {
		return fmt.Errorf("%w: trip.trip_length_days must be > 0", utils.ErrInvalidConfig)
	}
	if span := utils.DaysBetweenInclusive(depart, ret); c.Trip.TripLengthDays > span {
		return fmt.Errorf("%w: trip.trip_length_days %d exceeds the %d days from depart to return",
			utils.ErrInvalidConfig, c.Trip.TripLengthDays, span)
	}
	if strings.TrimSpace(c.Trip.AnchorCity) == "" {
		return fmt.Errorf("%w: trip.anchor_city is required", utils.ErrInvalidConfig)
	}
	if c.Itinerary.WindowLength <= 0 {
		return fmt.Errorf("%w: itinerary.window_length must be > 0", utils.ErrInvalidConfig)
	}
	if c.Itinerary.MaxWindows <= 0 {
		return fmt.Errorf("%w: itinerary.max_windows must be > 0", utils.ErrInvalidConfig)
	}
	for _, d := range c.Itinerary.Durations {
		if d <= 0 {
			return fmt.Errorf("%w: itinerary.durations contains %d", utils.ErrInvalidConfig, d)
		}
	}
	switch strings.ToLower(c.Narrative.Provider) {
	case "openai", "gemini":
	default:
		return fmt.Errorf("%w: unsupported narrative provider %q, use 'openai' or 'gemini'", utils.ErrInvalidConfig, c.Narrative.Provider)
	}
	switch strings.ToLower(c.Cache.Backend) {
	case "memory", "redis", "none":
	default:
		return fmt.Errorf("%w: unsupported cache backend %q", utils.ErrInvalidConfig, c.Cache.Backend)
	}
	return nil
}

func loadEnvFile() {
	paths := []string{".env", "../.env", "../../.env"}
	if root := findProjectRoot(); root != "" {
		paths = append(paths, filepath.Join(root, ".env"))
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			if err := godotenv.Load(p); err == nil {
				return
			}
		}
	}
}

// findProjectRoot walks up from the working directory looking for go.mod.
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
