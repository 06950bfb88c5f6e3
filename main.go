// File: slotify/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"slotify/config"
	"slotify/cron"
	"slotify/database"
	appointmentRepo "slotify/database/repository/appointment"
	calendarRepo "slotify/database/repository/calendar"
	contactRepo "slotify/database/repository/contact"
	"slotify/handlers"
	"slotify/middleware"
	"slotify/routes"
	"slotify/services/availability"
	"slotify/services/booking"
	"slotify/services/notification"
	"slotify/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	calRepo := calendarRepo.NewMongoCalendarRepo()
	apptRepo := appointmentRepo.NewMongoAppointmentRepo()
	ctRepo := contactRepo.NewMongoContactRepo()

	for name, ensure := range map[string]func() error{
		"calendars":    calRepo.EnsureIndexes,
		"appointments": apptRepo.EnsureIndexes,
		"contacts":     ctRepo.EnsureIndexes,
	} {
		if err := ensure(); err != nil {
			logger.Sugar().Fatalf("main: failed to ensure %s indexes: %v", name, err)
		}
	}

	// services.
	availabilityService := &availability.DefaultAvailabilityService{
		CalendarRepo:    calRepo,
		AppointmentRepo: apptRepo,
	}
	reminderClient := asynq.NewClient(cron.RedisOpt())
	defer reminderClient.Close()

	bookingService := &booking.DefaultBookingService{
		CalendarRepo:    calRepo,
		AppointmentRepo: apptRepo,
		ContactRepo:     ctRepo,
		Locker:          &booking.RedisSlotLocker{Client: utils.GetLockClient()},
		Reminders:       reminderClient,
	}

	// Reminder worker consumes what the booking service enqueues.
	cron.InitReminderWorker(&notification.LogSender{Logger: logger})

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		Availability: handlers.NewAvailabilityHandler(availabilityService),
		Booking:      handlers.NewBookingHandler(bookingService),
		Calendar:     handlers.NewCalendarHandler(calRepo, apptRepo),
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
