package timesheet

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go-hrpay/internal/events"
	timesheeterrors "go-hrpay/internal/timesheet/errors"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// TimeEntryCompletedConsumer recalculates the weekly rollup whenever an entry
// for that week completes.
type TimeEntryCompletedConsumer struct {
	reader  *kafka.Reader
	service Service
	logger  *zap.Logger
}

func NewTimeEntryCompletedConsumer(
	broker string,
	groupID string,
	service Service,
	logger ...*zap.Logger,
) *TimeEntryCompletedConsumer {
	l := zap.L().Named("timesheet.consumer")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("timesheet.consumer")
	}

	return &TimeEntryCompletedConsumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:        []string{broker},
			Topic:          events.TimeEntryCompletedTopic,
			GroupID:        groupID,
			CommitInterval: time.Second,
			StartOffset:    kafka.FirstOffset,
		}),
		service: service,
		logger:  l,
	}
}

func (c *TimeEntryCompletedConsumer) Start(ctx context.Context) {
	go func() {
		for {
			msg, err := c.reader.FetchMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				c.logger.Error("consume time_entry.completed failed", zap.Error(err))
				continue
			}

			var event events.TimeEntryCompletedEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				c.logger.Error("decode time_entry.completed event failed", zap.Error(err))
				if commitErr := c.reader.CommitMessages(ctx, msg); commitErr != nil {
					c.logger.Error("commit invalid time_entry.completed event failed", zap.Error(commitErr))
				}
				continue
			}

			_, err = c.service.Calculate(ctx, CalculateTimesheetRequest{
				EmployeeID: event.EmployeeID,
				WeekStart:  event.WeekStart,
			})
			if err != nil {
				// A locked sheet means the week was already approved or paid,
				// the late entry needs manual review, not a retry loop.
				if errors.Is(err, timesheeterrors.ErrTimesheetLocked) {
					c.logger.Warn("timesheet locked, skipping recalculation",
						zap.String("employee_id", event.EmployeeID),
						zap.String("week_start", event.WeekStart),
					)
					if commitErr := c.reader.CommitMessages(ctx, msg); commitErr != nil {
						c.logger.Error("commit locked timesheet event failed", zap.Error(commitErr))
					}
					continue
				}

				c.logger.Error("recalculate timesheet failed",
					zap.String("employee_id", event.EmployeeID),
					zap.String("week_start", event.WeekStart),
					zap.Error(err),
				)
				continue
			}

			if err := c.reader.CommitMessages(ctx, msg); err != nil {
				c.logger.Error("commit time_entry.completed event failed", zap.Error(err))
				continue
			}

			c.logger.Info("timesheet recalculated from time_entry.completed event",
				zap.String("employee_id", event.EmployeeID),
				zap.String("week_start", event.WeekStart),
			)
		}
	}()
}
