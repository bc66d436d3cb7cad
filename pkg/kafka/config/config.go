package kafka_config

import (
	"fmt"
	"strings"
	"time"

	"hotelbooking/pkg/logger"

	"github.com/kelseyhightower/envconfig"
)

// Config holds producer settings for publishing booking events.
// Variables that are unset keep the defaults from defaults.go.
type Config struct {
	Brokers []string `envconfig:"KAFKA_BROKERS"`

	ProducerMaxAttempts  int           `envconfig:"KAFKA_PRODUCER_MAX_ATTEMPTS"`
	ProducerBatchTimeout time.Duration `envconfig:"KAFKA_PRODUCER_BATCH_TIMEOUT"`
	ProducerRequireAcks  int           `envconfig:"KAFKA_PRODUCER_REQUIRE_ACKS"` // -1 = all, 0 = none, 1 = leader only
	ProducerCompression  string        `envconfig:"KAFKA_PRODUCER_COMPRESSION"`  // "none", "gzip", "snappy", "lz4", "zstd"
	ProducerAsync        bool          `envconfig:"KAFKA_PRODUCER_ASYNC"`

	EnableMiddleware bool `envconfig:"KAFKA_ENABLE_MIDDLEWARE"`
}

// Load reads the Kafka settings from the environment and validates them.
func Load() (*Config, error) {
	cfg := &Config{
		Brokers: []string{DefaultKafkaBrokers},

		ProducerMaxAttempts:  DefaultProducerMaxAttempts,
		ProducerBatchTimeout: DefaultProducerBatchTimeout,
		ProducerRequireAcks:  DefaultProducerRequireAcks,
		ProducerCompression:  DefaultProducerCompression,
		ProducerAsync:        DefaultProducerAsync,

		EnableMiddleware: DefaultEnableMiddleware,
	}

	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("failed to read Kafka configuration: %w", err)
	}
	cfg.Brokers = trimBrokers(cfg.Brokers)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func trimBrokers(brokers []string) []string {
	trimmed := make([]string, 0, len(brokers))
	for _, broker := range brokers {
		trimmed = append(trimmed, strings.TrimSpace(broker))
	}
	return trimmed
}

func (cfg *Config) Validate() error {
	var errors []string

	if len(cfg.Brokers) == 0 {
		errors = append(errors, "At least one Kafka broker is required")
	}

	for i, broker := range cfg.Brokers {
		if broker == "" {
			errors = append(errors, fmt.Sprintf("Broker %d cannot be empty", i))
		}
	}

	if cfg.ProducerMaxAttempts <= 0 {
		errors = append(errors, fmt.Sprintf("ProducerMaxAttempts must be positive, got: %d", cfg.ProducerMaxAttempts))
	}

	if cfg.ProducerBatchTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("ProducerBatchTimeout must be positive, got: %s", cfg.ProducerBatchTimeout))
	}

	validCompressions := map[string]bool{
		"none": true, "gzip": true, "snappy": true, "lz4": true, "zstd": true,
	}
	if !validCompressions[cfg.ProducerCompression] {
		errors = append(errors, fmt.Sprintf("ProducerCompression must be one of [none, gzip, snappy, lz4, zstd], got: %s", cfg.ProducerCompression))
	}

	validAcks := map[int]bool{-1: true, 0: true, 1: true}
	if !validAcks[cfg.ProducerRequireAcks] {
		errors = append(errors, fmt.Sprintf("ProducerRequireAcks must be -1, 0, or 1, got: %d", cfg.ProducerRequireAcks))
	}

	if len(errors) > 0 {
		errMsg := "Kafka configuration validation failed:\n"
		for i, err := range errors {
			errMsg += fmt.Sprintf("  %d. %s\n", i+1, err)
		}
		return fmt.Errorf("%s", errMsg)
	}

	return nil
}

func (cfg *Config) LogConfiguration(log *logger.Logger) {
	log.Info("Kafka configuration loaded successfully",
		"brokers", cfg.Brokers,
		"producer_max_attempts", cfg.ProducerMaxAttempts,
		"producer_batch_timeout", cfg.ProducerBatchTimeout,
		"producer_require_acks", cfg.ProducerRequireAcks,
		"producer_compression", cfg.ProducerCompression,
		"producer_async", cfg.ProducerAsync,
		"enable_middleware", cfg.EnableMiddleware,
	)
}
