package main

import (
	"context"
	"medibook-service/internal/app/config"
	"medibook-service/internal/app/delivery/http/controllers"
	"medibook-service/internal/app/delivery/http/middlewares"
	"medibook-service/internal/app/delivery/http/routers"
	"medibook-service/internal/app/drivers/database"
	"medibook-service/internal/app/drivers/logger"
	"medibook-service/internal/app/services/core/appointments"
	"medibook-service/internal/app/services/core/availability"
	"medibook-service/internal/app/services/core/doctors"
	"medibook-service/internal/app/services/core/patients"
	"medibook-service/internal/app/services/core/payments"
	"medibook-service/internal/app/services/core/session"
	"medibook-service/internal/app/services/core/slots"
	"medibook-service/internal/app/services/shared/locker"
	"medibook-service/internal/app/services/shared/payment_gateway"
	"medibook-service/internal/app/services/shared/redis"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	bootstrapLog := logger.NewLogrusLogger(internalConfig)
	zapLogger := logger.NewZapLogger(driverConfig, internalConfig)
	defer zapLogger.Sync()

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		bootstrapLog.Fatalf("Error loading location: %v", err)
	}
	time.Local = location

	mongoDB := database.NewMongoDB(driverConfig)
	redisClient := database.NewRedisClient(driverConfig)
	chiRouter := chi.NewRouter()

	bootstrapingTheApp(config.Bootstrap{
		Router:         chiRouter,
		MongoDB:        mongoDB,
		Redis:          redisClient,
		Logger:         zapLogger,
		BootstrapLog:   bootstrapLog,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	})

	server := &http.Server{
		Addr:    internalConfig.App.Port,
		Handler: chiRouter,
	}

	go func() {
		bootstrapLog.Infof("Server listening on %s", internalConfig.App.Port)
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			bootstrapLog.Fatalf("Server failed to start: %v", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	bootstrapLog.Println("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeout),
	)
	defer cancel()

	err = server.Shutdown(shutdownCtx)
	if err != nil {
		bootstrapLog.Fatalf("Server forced to shutdown: %v", err)
	}

	if err := mongoDB.Disconnect(context.Background()); err != nil {
		bootstrapLog.Errorf("Error disconnecting mongo client: %v", err)
	}
	if err := redisClient.Close(); err != nil {
		bootstrapLog.Errorf("Error closing redis client: %v", err)
	}

	bootstrapLog.Println("Server exiting")
}

func bootstrapingTheApp(bootstrap config.Bootstrap) {
	dbName := bootstrap.DriverConfig.MongoDB.DbName

	// Shared services
	redisRepository := redis.NewRedisRepository(bootstrap.Redis)
	slotLockService := locker.NewSlotLockService(redisRepository, bootstrap.InternalConfig, bootstrap.Logger)
	razorpayService := payment_gateway.NewRazorpayService(bootstrap.InternalConfig)
	sessionService := session.NewSessionService(redisRepository)

	// Repositories
	doctorMongoRepository := doctors.NewDoctorMongoRepository(bootstrap.MongoDB, dbName)
	patientMongoRepository := patients.NewPatientMongoRepository(bootstrap.MongoDB, dbName)
	appointmentMongoRepository := appointments.NewAppointmentMongoRepository(bootstrap.MongoDB, dbName)
	availabilityStore := availability.NewAvailabilityMongoRepository(bootstrap.MongoDB, dbName, bootstrap.Logger)

	// Usecases
	doctorUsecase := doctors.NewDoctorUsecase(doctorMongoRepository, bootstrap.Logger)
	slotUsecase := slots.NewSlotUsecase(doctorMongoRepository, bootstrap.InternalConfig, bootstrap.Logger)
	appointmentUsecase := appointments.NewAppointmentUsecase(
		appointmentMongoRepository,
		doctorMongoRepository,
		patientMongoRepository,
		availabilityStore,
		slotLockService,
		bootstrap.InternalConfig,
		bootstrap.Logger,
	)
	paymentUsecase := payments.NewPaymentUsecase(appointmentMongoRepository, razorpayService, bootstrap.Logger)

	// Delivery
	appMiddlewares := &middlewares.Middlewares{
		Log:            bootstrap.Logger,
		SessionService: sessionService,
		InternalConfig: bootstrap.InternalConfig,
	}
	doctorController := controllers.NewDoctorController(bootstrap.Logger, doctorUsecase, slotUsecase)
	appointmentController := controllers.NewAppointmentController(bootstrap.Logger, sessionService, appointmentUsecase)
	paymentController := controllers.NewPaymentController(bootstrap.Logger, sessionService, paymentUsecase)

	routers.SetupRoutes(
		bootstrap.Router,
		bootstrap.InternalConfig,
		appMiddlewares,
		doctorController,
		appointmentController,
		paymentController,
	)
}
