package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"go-hrpay/internal/compensation"
	"go-hrpay/internal/shared/connection"
	"go-hrpay/internal/timeentry"
	"go-hrpay/internal/timesheet"
	"go-hrpay/internal/workschedule"
)

// RunConsumer starts the Kafka consumers: compensation reacts to employee
// lifecycle events, timesheet rollups react to completed time entries.
func RunConsumer() error {
	logger := zap.L().Named("app.consumer")

	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	kafkaBroker := os.Getenv("KAFKA_BROKER")
	if kafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	compensationRepo := compensation.NewRepository(gormDB)
	compensationService := compensation.NewService(sqlDB, compensationRepo)

	timeEntryRepo := timeentry.NewRepository(gormDB)
	workScheduleRepo := workschedule.NewRepository(gormDB)
	workScheduleService := workschedule.NewService(sqlDB, workScheduleRepo)
	timesheetRepo := timesheet.NewRepository(gormDB)
	timesheetService := timesheet.NewService(sqlDB, timesheetRepo, timeEntryRepo, workScheduleService)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	compensation.NewEmployeeCreatedConsumer(
		kafkaBroker,
		"go-hrpay-compensation",
		compensationService,
		logger,
	).Start(ctx)

	timesheet.NewTimeEntryCompletedConsumer(
		kafkaBroker,
		"go-hrpay-timesheet",
		timesheetService,
		logger,
	).Start(ctx)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()

	return nil
}
