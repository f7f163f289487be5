package worker

import (
	"context"
	"encoding/json"

	"shopng/internal/broker"
	"shopng/internal/models"
	"shopng/internal/util"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// AuditWorker consumes domain events and writes them to the audit log.
// It is the read side of the event stream: the panel itself never depends
// on it.
type AuditWorker struct {
	consumer *broker.Consumer
	logger   *zap.Logger
}

// NewAuditWorker creates a new audit worker
func NewAuditWorker(consumer *broker.Consumer) *AuditWorker {
	return &AuditWorker{
		consumer: consumer,
		logger:   util.GetLogger(),
	}
}

// Start starts the worker
func (w *AuditWorker) Start(ctx context.Context) error {
	w.logger.Info("Starting audit worker")
	return w.consumer.StartConsuming(ctx, w.handle)
}

// Stop stops the worker
func (w *AuditWorker) Stop() error {
	w.logger.Info("Stopping audit worker")
	return w.consumer.Close()
}

func (w *AuditWorker) handle(_ context.Context, msg kafka.Message) error {
	var base models.BaseEvent
	if err := json.Unmarshal(msg.Value, &base); err != nil {
		return err
	}

	switch base.EventType {
	case models.EventTypeOrderPlaced:
		var event models.OrderPlacedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			return err
		}
		w.logger.Info("audit: order placed",
			zap.Int64("order_id", event.OrderID),
			zap.String("order_number", event.OrderNumber),
			zap.String("total", event.Total.String()))

	case models.EventTypeOrderStatusChanged:
		var event models.OrderStatusChangedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			return err
		}
		w.logger.Info("audit: order status changed",
			zap.Int64("order_id", event.OrderID),
			zap.String("from", event.FromStatus),
			zap.String("to", event.ToStatus))

	case models.EventTypeUserStatusChanged:
		var event models.UserStatusChangedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			return err
		}
		w.logger.Info("audit: user status changed",
			zap.Int64("user_id", event.UserID),
			zap.String("status", event.NewStatus))

	default:
		w.logger.Debug("audit: unhandled event type", zap.String("type", base.EventType))
	}

	return nil
}
