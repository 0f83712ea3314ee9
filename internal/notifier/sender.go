package notifier

import (
	"context"
	"log"

	"backend/internal/models"
)

// Sender delivers the two post-payment notifications. Implementations must
// be safe for concurrent use; the dispatcher runs both sends at once.
type Sender interface {
	SendCustomerConfirmation(ctx context.Context, order models.Order, customer models.Customer) error
	SendAdminAlert(ctx context.Context, order models.Order, customer models.Customer) error
}

// LogSender is the fallback when no mail credentials are configured: it
// records what would have been sent so local runs still show the fan-out.
type LogSender struct{}

func (LogSender) SendCustomerConfirmation(_ context.Context, order models.Order, customer models.Customer) error {
	log.Printf("[NOTIFY] (dry-run) customer confirmation for order %s to %s", order.ID.Hex(), customer.Email)
	return nil
}

func (LogSender) SendAdminAlert(_ context.Context, order models.Order, customer models.Customer) error {
	log.Printf("[NOTIFY] (dry-run) admin alert for order %s, customer %s", order.ID.Hex(), customer.Phone)
	return nil
}
