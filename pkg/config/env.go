package config

const (
	EnvStoreDriver = "STORE_DRIVER"

	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvIdempotencyTTL = "IDEMPOTENCY_TTL"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	EnvMaxStayDays    = "MAX_STAY_DAYS"
	EnvMaxAdvanceDays = "MAX_ADVANCE_DAYS"
	EnvHotelTimeZone  = "HOTEL_TIME_ZONE"
	EnvBookingLockTTL = "BOOKING_LOCK_TTL"

	EnvKafkaEnabled          = "KAFKA_ENABLED"
	EnvKafkaBookingsTopic    = "KAFKA_BOOKINGS_TOPIC"
	EnvKafkaBookingsDLQTopic = "KAFKA_BOOKINGS_DLQ_TOPIC"
)
