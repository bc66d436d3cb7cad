package config

import "time"

const (
	StoreMongo  = "mongo"
	StoreMemory = "memory"
)

const (
	DefaultStoreDriver = StoreMongo

	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "hotelbooking"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultMaxStayDays    = 3
	DefaultMaxAdvanceDays = 30
	DefaultHotelTimeZone  = "UTC"
	DefaultBookingLockTTL = 10 * time.Second

	DefaultKafkaEnabled          = false
	DefaultKafkaBookingsTopic    = "hotel.bookings"
	DefaultKafkaBookingsDLQTopic = "hotel.bookings.dlq"
)
