// internal/config/config.go
package config

import (
	"fmt"
	"time"
)

// Config is the main application configuration struct.
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	HTTP      HTTPConfig      `mapstructure:"http"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Trip      TripConfig      `mapstructure:"trip"`
	Itinerary ItineraryConfig `mapstructure:"itinerary"`
	Narrative NarrativeConfig `mapstructure:"narrative"`
	Schedule  ScheduleConfig  `mapstructure:"schedule"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
}

type HTTPConfig struct {
	Port string `mapstructure:"port"`
}

type DatabaseConfig struct {
	URL             string `mapstructure:"url"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	AutoMigrate     bool   `mapstructure:"auto_migrate"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"` // seconds
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// CacheConfig selects where generated narratives are cached.
type CacheConfig struct {
	Backend string `mapstructure:"backend"` // "memory" | "redis" | "none"
	TTL     int    `mapstructure:"ttl"`     // seconds
}

// TTLDuration returns the cache TTL.
func (c CacheConfig) TTLDuration() time.Duration {
	return time.Duration(c.TTL) * time.Second
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// TripConfig describes the single trip the dashboard plans around.
type TripConfig struct {
	Origin         string   `mapstructure:"origin"`
	Destination    string   `mapstructure:"destination"`
	DepartDate     string   `mapstructure:"depart_date"`
	ReturnDate     string   `mapstructure:"return_date"`
	TripLengthDays int      `mapstructure:"trip_length_days"`
	Cabin          string   `mapstructure:"cabin"`
	AnchorCity     string   `mapstructure:"anchor_city"`
	HubCities      []string `mapstructure:"hub_cities"`
}

// ItineraryConfig holds the options recognised by the itinerary job.
type ItineraryConfig struct {
	WindowLength     int   `mapstructure:"window_length"`
	MaxWindows       int   `mapstructure:"max_windows"`
	Durations        []int `mapstructure:"durations"`
	FlightHistory    int   `mapstructure:"flight_history"`
	HotelHistory     int   `mapstructure:"hotel_history"`
	DealLimit        int   `mapstructure:"deal_limit"`
	DealsPerCity     int   `mapstructure:"deals_per_city"`
	PairTimeout      int   `mapstructure:"pair_timeout"` // milliseconds
	GeneratedMaxDays int   `mapstructure:"generated_max_days"`
}

// PairTimeoutDuration returns the per-(window, duration) timeout.
func (c ItineraryConfig) PairTimeoutDuration() time.Duration {
	return time.Duration(c.PairTimeout) * time.Millisecond
}

// NarrativeConfig configures the external text-generation service.
type NarrativeConfig struct {
	Provider    string  `mapstructure:"provider"` // "openai" | "gemini"
	APIKey      string  `mapstructure:"api_key"`
	Model       string  `mapstructure:"model"`
	BaseURL     string  `mapstructure:"base_url"`
	Temperature float32 `mapstructure:"temperature"`
	Timeout     int     `mapstructure:"timeout"` // milliseconds
}

// Enabled reports whether a generation credential is configured.
func (n NarrativeConfig) Enabled() bool {
	return n.APIKey != ""
}

func (n NarrativeConfig) TimeoutDuration() time.Duration {
	return time.Duration(n.Timeout) * time.Millisecond
}

type ScheduleConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	Cron       string `mapstructure:"cron"`
	RunOnStart bool   `mapstructure:"run_on_start"`
}

// Addr returns the listen address for the ops server.
func (h HTTPConfig) Addr() string {
	return fmt.Sprintf(":%s", h.Port)
}
