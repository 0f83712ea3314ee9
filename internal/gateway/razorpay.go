// Package gateway wraps the external payment processor behind a small
// client interface so handlers can be tested against a fake.
package gateway

import (
	"context"
	"errors"
	"fmt"

	razorpay "github.com/razorpay/razorpay-go"
)

// Order is the gateway-side checkout session opened for an order.
type Order struct {
	ID          string
	AmountPaise int64
	Currency    string
}

// Client opens payment-gateway orders. Amounts are paise.
type Client interface {
	CreateOrder(ctx context.Context, amountPaise int64, currency, receipt string, notes map[string]string) (Order, error)
}

type razorpayClient struct {
	rzp *razorpay.Client
}

// NewRazorpayClient builds the production client. The secret never leaves
// this package except inside signed requests to the gateway.
func NewRazorpayClient(keyID, keySecret string) Client {
	return &razorpayClient{rzp: razorpay.NewClient(keyID, keySecret)}
}

func (c *razorpayClient) CreateOrder(ctx context.Context, amountPaise int64, currency, receipt string, notes map[string]string) (Order, error) {
	data := map[string]interface{}{
		"amount":   amountPaise,
		"currency": currency,
		"receipt":  receipt,
	}
	if len(notes) > 0 {
		n := make(map[string]interface{}, len(notes))
		for k, v := range notes {
			n[k] = v
		}
		data["notes"] = n
	}

	body, err := c.rzp.Order.Create(data, nil)
	if err != nil {
		return Order{}, fmt.Errorf("razorpay order create: %w", err)
	}

	id, _ := body["id"].(string)
	if id == "" {
		return Order{}, errors.New("razorpay response missing order id")
	}

	return Order{ID: id, AmountPaise: amountPaise, Currency: currency}, nil
}
