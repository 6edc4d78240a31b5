package compensation

import (
	"context"
	"encoding/json"
	"time"

	"go-hrpay/internal/events"

	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// EmployeeCreatedConsumer seeds the compensation ledger with a HIRE entry
// whenever a new employee is created.
type EmployeeCreatedConsumer struct {
	reader  *kafka.Reader
	service Service
	logger  *zap.Logger
}

func NewEmployeeCreatedConsumer(
	broker string,
	groupID string,
	service Service,
	logger ...*zap.Logger,
) *EmployeeCreatedConsumer {
	l := zap.L().Named("compensation.consumer")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("compensation.consumer")
	}

	return &EmployeeCreatedConsumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:        []string{broker},
			Topic:          events.EmployeeCreatedTopic,
			GroupID:        groupID,
			CommitInterval: time.Second,
			StartOffset:    kafka.FirstOffset,
		}),
		service: service,
		logger:  l,
	}
}

func (c *EmployeeCreatedConsumer) Start(ctx context.Context) {
	go func() {
		for {
			msg, err := c.reader.FetchMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				c.logger.Error("consume employee_created failed", zap.Error(err))
				continue
			}

			var event events.EmployeeCreatedEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				c.logger.Error("decode employee_created event failed", zap.Error(err))
				if commitErr := c.reader.CommitMessages(ctx, msg); commitErr != nil {
					c.logger.Error("commit invalid employee_created event failed", zap.Error(commitErr))
				}
				continue
			}

			baseSalary, err := decimal.NewFromString(event.BaseSalary)
			if err != nil {
				c.logger.Error("employee_created event carries invalid base_salary",
					zap.String("employee_id", event.EmployeeID),
					zap.String("base_salary", event.BaseSalary),
				)
				if commitErr := c.reader.CommitMessages(ctx, msg); commitErr != nil {
					c.logger.Error("commit invalid employee_created event failed", zap.Error(commitErr))
				}
				continue
			}

			hireDate, err := time.Parse("2006-01-02", event.HireDate)
			if err != nil {
				hireDate = time.Now().UTC()
			}

			// RecordHire is idempotent, redelivery is safe.
			if err := c.service.RecordHire(ctx, event.EmployeeID, baseSalary, hireDate); err != nil {
				c.logger.Error("record hire compensation failed",
					zap.String("employee_id", event.EmployeeID),
					zap.Error(err),
				)
				continue
			}

			if err := c.reader.CommitMessages(ctx, msg); err != nil {
				c.logger.Error("commit employee_created event failed", zap.Error(err))
				continue
			}

			c.logger.Info("hire compensation recorded from employee_created event",
				zap.String("employee_id", event.EmployeeID),
			)
		}
	}()
}
