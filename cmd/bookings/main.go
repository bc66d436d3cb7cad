package main

import (
	"hotelbooking/internal/bookings/events"
	"hotelbooking/internal/bookings/handler"
	"hotelbooking/internal/bookings/repository"
	"hotelbooking/internal/bookings/service"
	"hotelbooking/internal/bookings/validator"
	"hotelbooking/pkg/app"
	"hotelbooking/pkg/config"
	"hotelbooking/pkg/kafka"
	kafka_config "hotelbooking/pkg/kafka/config"
	kafka_middleware "hotelbooking/pkg/kafka/middleware"
)

const ServiceName = "bookings"

type stores struct {
	bookings repository.BookingRepository
	locks    repository.BookingLockRepository
}

func main() {
	cfg := config.Load(ServiceName)

	cfg.Log.Info("Starting Bookings service", "store", cfg.StoreDriver)
	store := initStores(cfg)
	publisher := initPublisher(cfg)
	bookingService := initServices(cfg, store, publisher)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(
		handler.NewBookingHandler(bookingService, cfg.Log),
		handler.NewHealthHandler(store.bookings, cfg.Log),
	)
	serverApp.OnShutdown("event publisher", publisher.Close)
	serverApp.OnShutdown("mongo client", func() error {
		cfg.GracefulShutdown()
		return nil
	})
	serverApp.Run()
}

func initStores(cfg *config.Config) stores {
	if cfg.StoreDriver == config.StoreMemory {
		cfg.Log.Warn("Using in-memory booking store, data will not survive a restart")
		return stores{
			bookings: repository.NewMemoryBookingRepository(),
			locks:    repository.NewMemoryBookingLockRepository(),
		}
	}

	cfg.SetMongo()
	return stores{
		bookings: repository.NewMongoBookingRepository(cfg),
		locks:    repository.NewMongoBookingLockRepository(cfg),
	}
}

func initPublisher(cfg *config.Config) events.Publisher {
	if !cfg.KafkaEnabled {
		cfg.Log.Info("Kafka disabled, booking events will not be published")
		return events.NoopPublisher{}
	}

	kafkaCfg, err := kafka_config.Load()
	if err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}
	kafkaCfg.LogConfiguration(cfg.Log)

	producer, err := kafka.NewProducer(kafkaCfg, cfg.KafkaBookingsTopic, cfg.KafkaBookingsDLQTopic, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}
	if kafkaCfg.EnableMiddleware {
		producer.Use(kafka_middleware.LoggingProducerMiddleware(cfg.Log))
	}

	cfg.Log.Info("Kafka producer initialized", "topic", producer.Topic())
	return events.NewKafkaPublisher(producer, ServiceName)
}

func initServices(cfg *config.Config, store stores, publisher events.Publisher) service.BookingService {
	bookingValidator := validator.NewBookingValidator(cfg.Log, validator.Policy{
		MaxStayDays:    cfg.MaxStayDays,
		MaxAdvanceDays: cfg.MaxAdvanceDays,
		Location:       cfg.Location,
	})

	bookingService := service.NewBookingService(
		store.bookings,
		store.locks,
		bookingValidator,
		publisher,
		cfg,
	)

	cfg.Log.Info("Booking service initialized",
		"max_stay_days", cfg.MaxStayDays,
		"max_advance_days", cfg.MaxAdvanceDays,
		"time_zone", cfg.HotelTimeZone,
	)
	return bookingService
}
