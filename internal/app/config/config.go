package config

import (
	"medibook-service/internal/pkg/utils"

	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load()
}

func NewDriverConfig() *DriverConfig {
	return &DriverConfig{
		MongoDB: MongoDB{
			Port:     utils.GetEnvString("MONGODB_PORT", "27017"),
			Host:     utils.GetEnvString("MONGODB_HOST", "localhost"),
			DbName:   utils.GetEnvString("MONGODB_DB_NAME", "medibook"),
			Username: utils.GetEnvString("MONGODB_USERNAME", "defaultUsername"),
			Password: utils.GetEnvString("MONGODB_PASSWORD", "defaultPassword"),
		},
		Redis: Redis{
			Host:     utils.GetEnvString("REDIS_HOST", "localhost"),
			Port:     utils.GetEnvString("REDIS_PORT", "6379"),
			Password: utils.GetEnvString("REDIS_PASSWORD", ""),
		},
		Logger: Logger{
			Level:               utils.GetEnvString("LOGGER_LEVEL", "debug"),
			OutputFileName:      utils.GetEnvString("LOGGER_OUTPUT_FILENAME", "logger.log"),
			OutputErrorFileName: utils.GetEnvString("LOGGER_OUTPUT_ERROR_FILENAME", "logger_error.log"),
		},
	}
}

func NewInternalConfig() *InternalConfig {
	return &InternalConfig{
		App: App{
			Env:             utils.GetEnvString("APP_ENV", "development"),
			Port:            utils.GetEnvString("APP_PORT", ":8080"),
			Version:         utils.GetEnvString("APP_VERSION", "v1"),
			Timezone:        utils.GetEnvString("APP_TIMEZONE", "Asia/Kolkata"),
			EndpointPrefix:  utils.GetEnvString("APP_ENDPOINT_PREFIX", "api"),
			MaxRequests:     utils.GetEnvInt("APP_MAX_REQUEST", 10),
			ShutdownTimeout: utils.GetEnvInt("APP_SHUTDOWN_TIMEOUT", 10),
		},
		JWT: JWT{
			Secret: utils.GetEnvString("JWT_SECRET", "anyjwt"),
		},
		PaymentGateway: PaymentGateway{
			BaseUrl:   utils.GetEnvString("PAYMENT_GATEWAY_BASE_URL", "https://api.razorpay.com/v1"),
			KeyID:     utils.GetEnvString("PAYMENT_GATEWAY_KEY_ID", ""),
			KeySecret: utils.GetEnvString("PAYMENT_GATEWAY_KEY_SECRET", ""),
			Currency:  utils.GetEnvString("PAYMENT_GATEWAY_CURRENCY", "USD"),
		},
		Booking: Booking{
			OpeningHour:          utils.GetEnvInt("BOOKING_OPENING_HOUR", 10),
			ClosingHour:          utils.GetEnvInt("BOOKING_CLOSING_HOUR", 21),
			WindowDays:           utils.GetEnvInt("BOOKING_WINDOW_DAYS", 7),
			SlotLockTTLInSeconds: utils.GetEnvInt("BOOKING_SLOT_LOCK_TTL_IN_SECONDS", 10),
		},
	}
}
