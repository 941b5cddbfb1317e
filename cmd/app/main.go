package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"nutribook/internal/blockedslot"
	"nutribook/internal/booking"
	"nutribook/internal/clock"
	"nutribook/internal/config"
	"nutribook/internal/db"
	"nutribook/internal/email"
	"nutribook/internal/events"
	"nutribook/internal/logger"
	"nutribook/internal/notify"
	"nutribook/internal/server"
)

// @title NutriBook API
// @version 1.0
// @description Dietitian appointment booking with conflict-free slot reservation.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger.Init()
	logger.Info("Starting NutriBook application")

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	logger.SetLevel(cfg.LogLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logger.Info("Connecting to database...")
	connectCtx, connectCancel := context.WithTimeout(ctx, 10*time.Second)
	database, err := db.Connect(connectCtx, cfg.DatabaseURL)
	connectCancel()
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()
	logger.Info("Database connected")

	if err := db.RunMigrations(database, cfg.MigrationsPath); err != nil {
		logger.Fatalf("Failed to run migrations: %v", err)
	}
	logger.Info("Migrations completed")

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	emailService := email.New(rdb, email.NewSMTPDeliverer(email.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		User:     cfg.SMTPUser,
		Password: cfg.SMTPPass,
		From:     cfg.EmailFrom,
		FromName: cfg.EmailFromName,
	}))
	defer emailService.Close()

	workerDone := make(chan struct{})
	go func() {
		defer close(workerDone)
		emailService.Start(ctx)
	}()
	logger.Info("Email service initialized")

	senders := []notify.Sender{notify.NewEmailSender(emailService)}
	if cfg.AMQPURL != "" {
		publisher, err := events.NewPublisher(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			logger.Fatalf("Failed to connect to RabbitMQ: %v", err)
		}
		defer publisher.Close()
		senders = append(senders, notify.NewEventSender(publisher, clock.System()))
		logger.Info("Booking events enabled", "exchange", cfg.AMQPExchange)
	}
	dispatcher := notify.NewDispatcher(cfg.NotifyTimeout, senders...)

	blockedService := blockedslot.NewService(blockedslot.NewRepository(database), clock.System())
	bookingService := booking.NewService(
		booking.NewRepository(database),
		blockedService,
		notify.NewBookingNotifier(dispatcher),
		clock.System(),
	)

	srv := server.New(cfg, bookingService, blockedService)

	serverErrChan := make(chan error, 1)
	go func() {
		logger.Infof("Server starting on port %s", cfg.Port)
		if err := srv.Start(); err != nil {
			serverErrChan <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Infof("Received signal: %v", sig)
	case err := <-serverErrChan:
		logger.Errorf("Server error: %v", err)
	}

	logger.Info("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Error during server shutdown: %v", err)
	}
	if err := dispatcher.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Error draining notifications: %v", err)
	}

	cancel()
	<-workerDone

	logger.Info("Server stopped")
}
