package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the configuration settings for the site evaluation service.
//
// Values come from the environment (AEOLUS_ prefix, DB_* for the database),
// optionally overlaid on a config file named by AEOLUS_CONFIG_FILE. A .env
// file in the working directory is loaded first when present.
type Config struct {
	Env                  string          // Env is the current environment: local, development, production.
	Port                 int             `validate:"gt=0,lte=65535"` // Port is the monitoring server port.
	Workers              int             `validate:"gte=1"`          // The number of concurrent workers evaluating sites.
	Interval             time.Duration   `validate:"gt=0"`           // The duration between evaluation rounds.
	HomePlace            string          // Place name the search area is centered on, empty for all sites.
	SearchRadiusKm       float64         `validate:"gte=0"` // Radius of the search area around HomePlace.
	CoincidenceTolerance float64         `validate:"gt=0"`  // Degrees within which a launch and a landing are the same spot.
	DHVFile              string          // Optional DHV XML export imported at startup.
	ParaglidingEarth     bool            // Import Paragliding Earth sites around HomePlace at startup.
	Evaluator            EvaluatorConfig // Evaluator selects the rule engine.
	Weather              WeatherConfig   // Weather configures the wind source and its cache.
	Locator              LocatorConfig   // Locator configures the place name resolver.
	Database             PostgresConfig  // Database holds the postgres database configuration
}

// EvaluatorConfig selects the rule engine.
type EvaluatorConfig struct {
	Type    string `validate:"oneof=native remote"`
	URL     string `validate:"required_if=Type remote"`
	Timeout time.Duration
}

type WeatherConfig struct {
	URL       string
	RateLimit int `validate:"gte=1"`
	CacheTTL  time.Duration
	CacheSize int
}

type LocatorConfig struct {
	Type   string `validate:"oneof=google nominatim"`
	APIKey string `validate:"required_if=Type google"`
}

// PostgresConfig struct holds the configuration details for connecting to a PostgreSQL database.
type PostgresConfig struct {
	Host     string // Host is the database server address.
	Port     string // Port is the database server port.
	User     string // User is the database user.
	Password string // Password is the database user's password.
	Name     string // Name is the name of the database.
}

// MustLoad loads the configuration and returns a Config struct. It panics
// when a value cannot be parsed or the result fails validation.
func MustLoad() *Config {
	_ = godotenv.Load()

	v := newViper()

	if file := os.Getenv("AEOLUS_CONFIG_FILE"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			panic("failed to read configuration file")
		}
	}

	interval, err := time.ParseDuration(v.GetString("interval"))
	if err != nil {
		panic("failed to parse interval from configuration")
	}

	healthPort, err := strconv.Atoi(v.GetString("health_port"))
	if err != nil {
		panic("failed to parse port for monitoring server from configuration")
	}

	workers, err := strconv.Atoi(v.GetString("workers"))
	if err != nil {
		panic("failed to parse workers from configuration, must be an integer types")
	}

	radius, err := strconv.ParseFloat(v.GetString("search_radius_km"), 64)
	if err != nil {
		panic("failed to parse search radius from configuration")
	}

	tolerance, err := strconv.ParseFloat(v.GetString("coincidence_tolerance"), 64)
	if err != nil {
		panic("failed to parse coincidence tolerance from configuration")
	}

	cfg := &Config{
		Env:                  v.GetString("env"),
		Port:                 healthPort,
		Workers:              workers,
		Interval:             interval,
		HomePlace:            v.GetString("home_place"),
		SearchRadiusKm:       radius,
		CoincidenceTolerance: tolerance,
		DHVFile:              v.GetString("dhv_file"),
		ParaglidingEarth:     v.GetBool("paragliding_earth"),
		Evaluator: EvaluatorConfig{
			Type:    v.GetString("evaluator.type"),
			URL:     v.GetString("evaluator.url"),
			Timeout: v.GetDuration("evaluator.timeout"),
		},
		Weather: WeatherConfig{
			URL:       v.GetString("weather.url"),
			RateLimit: v.GetInt("weather.rate_limit"),
			CacheTTL:  v.GetDuration("weather.cache_ttl"),
			CacheSize: v.GetInt("weather.cache_size"),
		},
		Locator: LocatorConfig{
			Type:   v.GetString("locator.type"),
			APIKey: v.GetString("locator.api_key"),
		},
		Database: PostgresConfig{
			Host:     v.GetString("db.host"),
			Port:     v.GetString("db.port"),
			User:     v.GetString("db.user"),
			Password: v.GetString("db.password"),
			Name:     v.GetString("db.name"),
		},
	}

	if err = validator.New(validator.WithRequiredStructEnabled()).Struct(cfg); err != nil {
		panic(fmt.Sprintf("invalid configuration: %v", err))
	}

	return cfg
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("AEOLUS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("env", "production")
	v.SetDefault("health_port", "8080")
	v.SetDefault("workers", "4")
	v.SetDefault("interval", "30m")
	v.SetDefault("search_radius_km", "0")
	v.SetDefault("coincidence_tolerance", "0.0001")
	v.SetDefault("paragliding_earth", true)
	v.SetDefault("evaluator.type", "native")
	v.SetDefault("evaluator.timeout", "10s")
	v.SetDefault("weather.rate_limit", 5)
	v.SetDefault("weather.cache_ttl", "15m")
	v.SetDefault("weather.cache_size", 1024)
	v.SetDefault("locator.type", "nominatim")
	v.SetDefault("db.port", "5432")

	// The database connection keeps the unprefixed names shared with other services.
	_ = v.BindEnv("db.host", "DB_HOST")
	_ = v.BindEnv("db.port", "DB_PORT")
	_ = v.BindEnv("db.user", "DB_USERNAME")
	_ = v.BindEnv("db.password", "DB_PASSWORD")
	_ = v.BindEnv("db.name", "DB_NAME")

	return v
}
