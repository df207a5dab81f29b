package config

import (
	"errors"
	"os"
	"time"
)

// DefaultFWCAPIURL is the FWC HAB monitoring layer query endpoint.
const DefaultFWCAPIURL = "https://atoll.floridamarine.org/arcgis/rest/services/FWC_GIS/OpenData_HAB/MapServer/9/query"

// Config holds all service settings, populated from environment variables.
type Config struct {
	// FWC sample feed.
	FWCAPIURL      string
	FWCTimeout     time.Duration
	FWCResultLimit int
	FWCMaxRetries  int

	// Google Sheet used for configuration tables and the result store.
	GoogleSheetID        string
	GoogleServiceAccount string // service-account credentials JSON
	LocationsTab         string
	MappingTab           string
	StatusTab            string

	// WordPress publishing (cmd/sync only).
	WordPressSiteURL      string
	WordPressUsername     string
	WordPressAppPassword  string
	WordPressTimeout      time.Duration
	WordPressRateInterval time.Duration

	// Optional Kafka status feed.
	KafkaEnabled     bool
	KafkaBrokers     []string
	KafkaStatusTopic string

	// Runtime.
	RunInterval     time.Duration // 0 means run once and exit
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration
	Timezone        string // location for last_updated stamps
}

// Load reads configuration from environment variables, applying defaults
// where unset. It validates everything the ETL run needs; WordPress
// credentials are validated separately by ValidateWordPress since only the
// sync command requires them.
func Load() (*Config, error) {
	fwcTimeout, err := envPositiveDuration("FWC_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}
	resultLimit, err := envInt("FWC_RESULT_LIMIT", 1000, 1, 10000)
	if err != nil {
		return nil, err
	}
	maxRetries, err := envInt("FWC_MAX_RETRIES", 3, 0, 10)
	if err != nil {
		return nil, err
	}
	wpTimeout, err := envPositiveDuration("WORDPRESS_TIMEOUT", 15*time.Second)
	if err != nil {
		return nil, err
	}
	wpRate, err := envPositiveDuration("WORDPRESS_RATE_INTERVAL", 2*time.Second)
	if err != nil {
		return nil, err
	}
	runInterval, err := envDuration("RUN_INTERVAL", 0)
	if err != nil {
		return nil, err
	}
	if runInterval < 0 {
		return nil, errors.New("invalid RUN_INTERVAL: must not be negative")
	}
	shutdownTimeout, err := envPositiveDuration("SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		FWCAPIURL:      envOrDefault("FWC_API_URL", DefaultFWCAPIURL),
		FWCTimeout:     fwcTimeout,
		FWCResultLimit: resultLimit,
		FWCMaxRetries:  maxRetries,

		GoogleSheetID:        os.Getenv("GOOGLE_SHEET_ID"),
		GoogleServiceAccount: os.Getenv("GOOGLE_SERVICE_ACCOUNT"),
		LocationsTab:         envOrDefault("SHEET_LOCATIONS_TAB", "locations"),
		MappingTab:           envOrDefault("SHEET_MAPPING_TAB", "sample_mapping"),
		StatusTab:            envOrDefault("SHEET_STATUS_TAB", "beach_status"),

		WordPressSiteURL:      envOrDefault("WORDPRESS_SITE_URL", ""),
		WordPressUsername:     os.Getenv("WORDPRESS_USERNAME"),
		WordPressAppPassword:  os.Getenv("WORDPRESS_APP_PASSWORD"),
		WordPressTimeout:      wpTimeout,
		WordPressRateInterval: wpRate,

		KafkaEnabled:     envBool("KAFKA_ENABLED", false),
		KafkaBrokers:     parseBrokers(envOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaStatusTopic: envOrDefault("KAFKA_STATUS_TOPIC", "hab-status-updates"),

		RunInterval:     runInterval,
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,
		Timezone:        envOrDefault("TIMEZONE", "America/New_York"),
	}

	if cfg.GoogleSheetID == "" {
		return nil, errors.New("GOOGLE_SHEET_ID is required")
	}
	if cfg.GoogleServiceAccount == "" {
		return nil, errors.New("GOOGLE_SERVICE_ACCOUNT is required")
	}
	if cfg.KafkaEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is empty")
	}
	if cfg.KafkaEnabled && cfg.KafkaStatusTopic == "" {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_STATUS_TOPIC is empty")
	}

	return cfg, nil
}

// ValidateWordPress checks the settings the sync command needs.
func (c *Config) ValidateWordPress() error {
	if c.WordPressSiteURL == "" {
		return errors.New("WORDPRESS_SITE_URL is required")
	}
	if c.WordPressUsername == "" {
		return errors.New("WORDPRESS_USERNAME is required")
	}
	if c.WordPressAppPassword == "" {
		return errors.New("WORDPRESS_APP_PASSWORD is required")
	}
	return nil
}
