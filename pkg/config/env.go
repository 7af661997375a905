package config

const (
	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvSessionSecret = "SESSION_SECRET"
	EnvSessionTTL    = "SESSION_TTL"
	EnvBcryptCost    = "BCRYPT_COST"

	EnvUploadsDir        = "UPLOADS_DIR"
	EnvMaxUploadSize     = "MAX_UPLOAD_SIZE"
	EnvMaxUploadPhotos   = "MAX_UPLOAD_PHOTOS"
	EnvPhotoMaxWidth     = "PHOTO_MAX_WIDTH"
	EnvTrustedPhotoHosts = "TRUSTED_PHOTO_HOSTS"

	EnvKafkaBrokers      = "KAFKA_BROKERS"
	EnvKafkaBookingTopic = "KAFKA_BOOKING_TOPIC"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"
)
