// Package store is the persistence service behind the checkout/settlement
// flow. Handlers depend on the Store interface so tests can substitute an
// in-memory fake; Mongo is the production implementation.
package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"backend/internal/models"
)

// ErrNotFound is returned when a referenced document does not exist.
var ErrNotFound = errors.New("not found")

// ProductUnavailableError covers both a missing product and one currently
// flagged unavailable; checkout rejects the whole request either way.
type ProductUnavailableError struct {
	ProductID string
}

func (e ProductUnavailableError) Error() string {
	return fmt.Sprintf("product %q not found or unavailable", e.ProductID)
}

// ResolvedProduct is a catalog row joined with its category's GST rate.
type ResolvedProduct struct {
	Product models.Product
	GSTRate int64
}

type Store interface {
	// catalog
	ResolveProduct(ctx context.Context, id string) (ResolvedProduct, error)

	// orders
	CreatePendingOrder(ctx context.Context, customer models.Customer, order models.Order) (orderID, customerID primitive.ObjectID, err error)
	GetOrder(ctx context.Context, id string) (models.Order, error)
	GetCustomer(ctx context.Context, id primitive.ObjectID) (models.Customer, error)
	// MarkOrderPaid flips PENDING -> PAID and attaches the gateway payment
	// id in a single conditional update; it reports whether a row matched.
	MarkOrderPaid(ctx context.Context, id, gatewayPaymentID string) (bool, error)
	// CancelPendingOrder flips PENDING -> FAILED only while no payment id
	// is attached; it reports whether a row matched.
	CancelPendingOrder(ctx context.Context, id string) (bool, error)
	UpdateOrderStatus(ctx context.Context, id string, status models.OrderStatus) error
	ListOrders(ctx context.Context, limit int64) ([]models.Order, error)
	ListOrdersByContact(ctx context.Context, phone, email string, limit int64) ([]models.Order, error)

	// singleton settings
	PricingConfig(ctx context.Context) (models.PricingConfig, error)
	SetPricingConfig(ctx context.Context, cfg models.PricingConfig) error
	TimingConfig(ctx context.Context) (models.OrderTimingConfig, error)
	SetTimingConfig(ctx context.Context, cfg models.OrderTimingConfig) error

	// admin auth
	FindAdminByEmail(ctx context.Context, email string) (models.Admin, error)
}
