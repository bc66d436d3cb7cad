package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"time"

	"hotelbooking/pkg/client"
	"hotelbooking/pkg/logger"

	"github.com/joho/godotenv"
)

type Config struct {
	StoreDriver string

	MongoURI          string
	MongoDatabaseName string
	MongoConnTimeout  time.Duration

	Port string

	RequestTimeout time.Duration
	IdempotencyTTL time.Duration
	MaxRequestSize int

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	MaxStayDays    int
	MaxAdvanceDays int
	HotelTimeZone  string
	Location       *time.Location
	BookingLockTTL time.Duration

	KafkaEnabled          bool
	KafkaBookingsTopic    string
	KafkaBookingsDLQTopic string

	Log    *logger.Logger
	Client *client.Client
}

// Load reads configuration from the environment, after merging an optional .env file.
// Invalid configuration is fatal.
func Load(serviceName string) *Config {
	_ = godotenv.Load()

	cfg := &Config{
		StoreDriver: getEnvStr(EnvStoreDriver, DefaultStoreDriver),

		MongoURI:          getEnvStr(EnvMongoURI, DefaultMongoURI),
		MongoDatabaseName: getEnvStr(EnvMongoDatabaseName, DefaultMongoDatabaseName),
		MongoConnTimeout:  getEnvDuration(EnvMongoConnTimeout, DefaultMongoConnTimeout),

		Port: getEnvStr(EnvPort, DefaultPort),

		RequestTimeout: getEnvDuration(EnvRequestTimeout, DefaultRequestTimeout),
		IdempotencyTTL: getEnvDuration(EnvIdempotencyTTL, DefaultIdempotencyTTL),
		MaxRequestSize: getEnvNum(EnvMaxRequestSize, DefaultMaxRequestSize),

		ReadTimeout:     getEnvDuration(EnvReadTimeout, DefaultReadTimeout),
		WriteTimeout:    getEnvDuration(EnvWriteTimeout, DefaultWriteTimeout),
		IdleTimeout:     getEnvDuration(EnvIdleTimeout, DefaultIdleTimeout),
		ShutdownTimeout: getEnvDuration(EnvShutdownTimeout, DefaultShutdownTimeout),

		MaxStayDays:    getEnvNum(EnvMaxStayDays, DefaultMaxStayDays),
		MaxAdvanceDays: getEnvNum(EnvMaxAdvanceDays, DefaultMaxAdvanceDays),
		HotelTimeZone:  getEnvStr(EnvHotelTimeZone, DefaultHotelTimeZone),
		BookingLockTTL: getEnvDuration(EnvBookingLockTTL, DefaultBookingLockTTL),

		KafkaEnabled:          getEnvBool(EnvKafkaEnabled, DefaultKafkaEnabled),
		KafkaBookingsTopic:    getEnvStr(EnvKafkaBookingsTopic, DefaultKafkaBookingsTopic),
		KafkaBookingsDLQTopic: getEnvStr(EnvKafkaBookingsDLQTopic, DefaultKafkaBookingsDLQTopic),

		Log: logger.New(logger.Config{
			Level:     getEnvStr(EnvLogLevel, DefaultLogLevel),
			Format:    logger.JSON,
			AddSource: true,
			Service:   serviceName,
		}),
		Client: client.NewClient(),
	}

	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal(err.Error())
	}
	cfg.LogConfiguration()
	return cfg
}

func (cfg *Config) SetMongo() {
	cfg.Client.SetMongo(cfg.Log, cfg.MongoURI, cfg.MongoConnTimeout)
}

// Validate checks every setting and reports all problems at once. It also resolves Location.
func (cfg *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(cfg.Port); err != nil || port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("Port must be between 1 and 65535, got: %s", cfg.Port))
	}

	switch cfg.StoreDriver {
	case StoreMongo:
		if cfg.MongoURI == "" {
			errors = append(errors, "MongoURI cannot be empty")
		} else if !regexp.MustCompile(`^mongodb(\+srv)?://`).MatchString(cfg.MongoURI) {
			errors = append(errors, fmt.Sprintf("MongoURI must start with 'mongodb://' or 'mongodb+srv://', got: %s", redactMongoURI(cfg.MongoURI)))
		}
		if cfg.MongoDatabaseName == "" {
			errors = append(errors, "MongoDatabaseName cannot be empty")
		}
		if cfg.MongoConnTimeout <= 0 {
			errors = append(errors, fmt.Sprintf("MongoConnTimeout must be positive, got: %s", cfg.MongoConnTimeout))
		}
	case StoreMemory:
	default:
		errors = append(errors, fmt.Sprintf("StoreDriver must be one of [%s, %s], got: %s", StoreMongo, StoreMemory, cfg.StoreDriver))
	}

	if cfg.RequestTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("RequestTimeout must be positive, got: %s", cfg.RequestTimeout))
	}
	if cfg.IdempotencyTTL <= 0 {
		errors = append(errors, fmt.Sprintf("IdempotencyTTL must be positive, got: %s", cfg.IdempotencyTTL))
	}
	if cfg.MaxRequestSize <= 0 {
		errors = append(errors, fmt.Sprintf("MaxRequestSize must be positive, got: %d", cfg.MaxRequestSize))
	}
	if cfg.ReadTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("ReadTimeout must be positive, got: %s", cfg.ReadTimeout))
	}
	if cfg.WriteTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("WriteTimeout must be positive, got: %s", cfg.WriteTimeout))
	}
	if cfg.IdleTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("IdleTimeout must be positive, got: %s", cfg.IdleTimeout))
	}
	if cfg.ShutdownTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("ShutdownTimeout must be positive, got: %s", cfg.ShutdownTimeout))
	}

	if cfg.MaxStayDays < 1 {
		errors = append(errors, fmt.Sprintf("MaxStayDays must be at least 1, got: %d", cfg.MaxStayDays))
	}
	if cfg.MaxAdvanceDays < 1 {
		errors = append(errors, fmt.Sprintf("MaxAdvanceDays must be at least 1, got: %d", cfg.MaxAdvanceDays))
	}
	if loc, err := time.LoadLocation(cfg.HotelTimeZone); err != nil {
		errors = append(errors, fmt.Sprintf("HotelTimeZone must be a valid IANA time zone, got: %s", cfg.HotelTimeZone))
	} else {
		cfg.Location = loc
	}
	if cfg.BookingLockTTL <= 0 {
		errors = append(errors, fmt.Sprintf("BookingLockTTL must be positive, got: %s", cfg.BookingLockTTL))
	}

	if cfg.KafkaEnabled && cfg.KafkaBookingsTopic == "" {
		errors = append(errors, "KafkaBookingsTopic cannot be empty when Kafka is enabled")
	}

	if len(errors) > 0 {
		errMsg := "Configuration validation failed:\n"
		for i, err := range errors {
			errMsg += fmt.Sprintf("  %d. %s\n", i+1, err)
		}
		return fmt.Errorf("%s", errMsg)
	}

	return nil
}

func (cfg *Config) LogConfiguration() {
	cfg.Log.Info("Configuration loaded successfully",
		"store_driver", cfg.StoreDriver,
		"mongo_uri", redactMongoURI(cfg.MongoURI),
		"mongo_database", cfg.MongoDatabaseName,
		"mongo_conn_timeout", cfg.MongoConnTimeout,
		"port", cfg.Port,
		"request_timeout", cfg.RequestTimeout,
		"idempotency_ttl", cfg.IdempotencyTTL,
		"max_request_size", cfg.MaxRequestSize,
		"read_timeout", cfg.ReadTimeout,
		"write_timeout", cfg.WriteTimeout,
		"idle_timeout", cfg.IdleTimeout,
		"shutdown_timeout", cfg.ShutdownTimeout,
		"max_stay_days", cfg.MaxStayDays,
		"max_advance_days", cfg.MaxAdvanceDays,
		"hotel_time_zone", cfg.HotelTimeZone,
		"booking_lock_ttl", cfg.BookingLockTTL,
		"kafka_enabled", cfg.KafkaEnabled,
		"kafka_bookings_topic", cfg.KafkaBookingsTopic,
	)
}

func redactMongoURI(uri string) string {
	credentialRegex := regexp.MustCompile(`(mongodb(\+srv)?://)[^:]+:[^@]+@`)
	return credentialRegex.ReplaceAllString(uri, "${1}***:***@")
}

func getEnvStr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvNum(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func (cfg *Config) GracefulShutdown() {
	cfg.Client.GracefulShutdown(cfg.Log)
}
