package main

import (
	bookingshandler "placely/internal/bookings/handler"
	bookingsrepo "placely/internal/bookings/repository"
	bookingsservice "placely/internal/bookings/service"
	bookingsvalidator "placely/internal/bookings/validator"
	photoshandler "placely/internal/photos/handler"
	photosservice "placely/internal/photos/service"
	"placely/internal/photos/storage"
	placeshandler "placely/internal/places/handler"
	placesrepo "placely/internal/places/repository"
	placesservice "placely/internal/places/service"
	placesvalidator "placely/internal/places/validator"
	usershandler "placely/internal/users/handler"
	usersrepo "placely/internal/users/repository"
	usersservice "placely/internal/users/service"
	usersvalidator "placely/internal/users/validator"
	"placely/pkg/app"
	"placely/pkg/config"
	"placely/pkg/contracts"
	"placely/pkg/events"
	"placely/pkg/token"
)

const ServiceName = "api"

func main() {
	cfg := config.Load(ServiceName)

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal("Invalid configuration", "error", err)
	}

	// Log all configuration values
	cfg.LogConfiguration()

	cfg.Log.Info("Starting API service")
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	handlers := initServices(cfg)
	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(handlers...)
	serverApp.Run()
}

func initServices(cfg *config.Config) []contracts.Handler {
	tokens := token.NewService(token.Config{
		Secret: []byte(cfg.SessionSecret),
		Issuer: ServiceName,
		TTL:    cfg.SessionTTL,
	})

	publisher := initPublisher(cfg)

	userRepo := usersrepo.NewMongoUserRepository(cfg)
	userService := usersservice.NewUserService(
		userRepo,
		usersvalidator.NewUserValidator(cfg.Log),
		tokens,
		cfg,
	)

	placeRepo := placesrepo.NewMongoPlaceRepository(cfg)
	placeService := placesservice.NewPlaceService(
		placeRepo,
		placesvalidator.NewPlaceValidator(cfg.Log),
		cfg,
	)

	bookingRepo := bookingsrepo.NewMongoBookingRepository(cfg)
	bookingService := bookingsservice.NewBookingService(
		bookingRepo,
		placeRepo,
		bookingsvalidator.NewBookingValidator(cfg.Log),
		publisher,
		cfg,
	)

	photoStore, err := storage.NewDiskStore(cfg.UploadsDir, cfg.PhotoMaxWidth)
	if err != nil {
		cfg.Log.Fatal("Failed to initialize photo storage", "error", err)
	}
	photoService := photosservice.NewPhotoService(photoStore, cfg)

	cfg.Log.Info("Services initialized", "database", cfg.MongoDatabaseName)

	return []contracts.Handler{
		usershandler.NewUserHandler(userService, tokens, cfg.Log),
		placeshandler.NewPlaceHandler(placeService, tokens, cfg.Log),
		bookingshandler.NewBookingHandler(bookingService, tokens, cfg.Log),
		photoshandler.NewPhotoHandler(photoService, tokens, cfg.Log, int64(cfg.MaxUploadSize)),
	}
}

func initPublisher(cfg *config.Config) events.Publisher {
	if len(cfg.KafkaBrokers) == 0 {
		cfg.Log.Info("No Kafka brokers configured, booking events disabled")
		return events.NopPublisher{}
	}

	producer, err := events.NewProducer(cfg.KafkaBrokers, cfg.KafkaBookingTopic, ServiceName)
	if err != nil {
		cfg.Log.Fatal("Failed to initialize Kafka producer", "error", err)
	}
	cfg.Log.Info("Kafka producer initialized", "topic", cfg.KafkaBookingTopic)
	return producer
}
