package notifier

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"

	"backend/internal/models"
)

type SESConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	SenderEmail     string
	AdminAlertEmail string
}

// SESSender sends the order confirmation and admin alert through AWS SES.
type SESSender struct {
	client      *ses.Client
	senderEmail string
	adminEmail  string
}

func NewSESSender(ctx context.Context, cfg SESConfig) (*SESSender, error) {
	if cfg.AccessKeyID == "" || cfg.SecretAccessKey == "" || cfg.SenderEmail == "" {
		return nil, errors.New("ses not configured")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return &SESSender{
		client:      ses.NewFromConfig(awsCfg),
		senderEmail: cfg.SenderEmail,
		adminEmail:  cfg.AdminAlertEmail,
	}, nil
}

func (s *SESSender) SendCustomerConfirmation(ctx context.Context, order models.Order, customer models.Customer) error {
	if customer.Email == "" {
		return errors.New("customer email is empty")
	}

	shortID := strings.ToUpper(orderTag(order))
	subject := fmt.Sprintf("Order Confirmation #%s", shortID)

	var rows strings.Builder
	for _, item := range order.Items {
		fmt.Fprintf(&rows, "<tr><td><strong>%s</strong><br/><small>%dg &times; %d</small></td><td align=\"right\">%s</td></tr>",
			item.Name, item.WeightGrams, item.Quantity, rupees(item.PricePaise*int64(item.Quantity)))
	}

	delivery := rupees(order.DeliveryPaise)
	if order.DeliveryPaise == 0 {
		delivery = "FREE"
	}

	bodyHTML := fmt.Sprintf(`
		<html><body>
		<p>Dear %s,</p>
		<p>Thank you for your order! We are preparing your fresh mithai now.</p>
		<h3>Order Details (#%s)</h3>
		<table width="100%%">%s
			<tr><td align="right"><strong>Subtotal</strong></td><td align="right">%s</td></tr>
			<tr><td align="right">CGST</td><td align="right">%s</td></tr>
			<tr><td align="right">SGST</td><td align="right">%s</td></tr>
			<tr><td align="right"><strong>Delivery</strong></td><td align="right">%s</td></tr>
			<tr><td align="right"><strong>Grand Total</strong></td><td align="right"><strong>%s</strong></td></tr>
		</table>
		<h4>Delivery Address</h4>
		<p>%s<br/>%s, %s - %s</p>
		</body></html>`,
		customer.Name, shortID, rows.String(),
		rupees(order.SubtotalPaise), rupees(order.CGSTTotalPaise), rupees(order.SGSTTotalPaise),
		delivery, rupees(order.TotalPaise),
		order.AddressLine, order.City, order.State, order.Pincode)

	bodyText := fmt.Sprintf(
		"Dear %s,\n\nThank you for your order #%s.\nGrand Total: %s\n\nDelivery to: %s, %s, %s - %s\n",
		customer.Name, shortID, rupees(order.TotalPaise),
		order.AddressLine, order.City, order.State, order.Pincode)

	return s.send(ctx, customer.Email, subject, bodyHTML, bodyText)
}

func (s *SESSender) SendAdminAlert(ctx context.Context, order models.Order, customer models.Customer) error {
	if s.adminEmail == "" {
		return errors.New("admin alert email not configured")
	}

	subject := fmt.Sprintf("New paid order #%s", strings.ToUpper(orderTag(order)))
	gst := rupees(order.CGSTTotalPaise + order.SGSTTotalPaise)

	bodyHTML := fmt.Sprintf(`
		<h2>New Order Received</h2>
		<p><strong>Order ID:</strong> %s</p>
		<p><strong>Gateway Payment ID:</strong> %s</p>
		<p><strong>Amount:</strong> %s (inc. %s GST)</p>
		<hr/>
		<p>Name: %s<br/>Phone: %s<br/>Address: %s - %s</p>`,
		order.ID.Hex(), order.GatewayPaymentID, rupees(order.TotalPaise), gst,
		customer.Name, customer.Phone, order.City, order.Pincode)

	bodyText := fmt.Sprintf("New paid order %s, amount %s, customer %s (%s)",
		order.ID.Hex(), rupees(order.TotalPaise), customer.Name, customer.Phone)

	return s.send(ctx, s.adminEmail, subject, bodyHTML, bodyText)
}

func (s *SESSender) send(ctx context.Context, to, subject, bodyHTML, bodyText string) error {
	input := &ses.SendEmailInput{
		Source: aws.String(s.senderEmail),
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Charset: aws.String("UTF-8"),
				Data:    aws.String(subject),
			},
			Body: &types.Body{
				Html: &types.Content{
					Charset: aws.String("UTF-8"),
					Data:    aws.String(bodyHTML),
				},
				Text: &types.Content{
					Charset: aws.String("UTF-8"),
					Data:    aws.String(bodyText),
				},
			},
		},
	}

	if _, err := s.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("ses send to %s: %w", to, err)
	}
	log.Printf("[NOTIFY] email sent to %s: %s", to, subject)
	return nil
}

func orderTag(order models.Order) string {
	hexID := order.ID.Hex()
	if len(hexID) > 8 {
		return hexID[len(hexID)-8:]
	}
	return hexID
}

func rupees(paise int64) string {
	return fmt.Sprintf("₹%d.%02d", paise/100, paise%100)
}
