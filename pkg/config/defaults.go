package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "placely"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort     = "4000"
	DefaultLogLevel = "info"

	DefaultSessionTTL = 7 * 24 * time.Hour
	DefaultBcryptCost = 12

	DefaultUploadsDir        = "uploads"
	DefaultMaxUploadSize     = 10 * 1024 * 1024 // per photo
	DefaultMaxUploadPhotos   = 100
	DefaultPhotoMaxWidth     = 2048
	DefaultTrustedPhotoHosts = "res.cloudinary.com"

	DefaultKafkaBookingTopic = "booking-events"

	DefaultRequestTimeout = 30 * time.Second
	DefaultMaxRequestSize = 1 * 1024 * 1024 // JSON bodies; uploads are bounded separately

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second
)
