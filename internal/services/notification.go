package service

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/hlewluv/Food-Delivery-App-sub000/internal/errors"
	"github.com/hlewluv/Food-Delivery-App-sub000/internal/models"
	"github.com/hlewluv/Food-Delivery-App-sub000/pkg/sendgrid"
)

type NotificationService interface {
	SendOrderConfirmation(ctx context.Context, to string, order *models.Order) error
}

type notificationService struct {
	emailService sendgrid.EmailService
}

func NewNotificationService(emailService sendgrid.EmailService) NotificationService {
	return &notificationService{emailService: emailService}
}

// SendOrderConfirmation implements NotificationService.
func (n *notificationService) SendOrderConfirmation(ctx context.Context, to string, order *models.Order) error {
	if to == "" {
		return errors.AddValidationError("email", "is required")
	}

	var text, rows strings.Builder

	fmt.Fprintf(&text, "Thank you for ordering from %s.\n\n", order.RestaurantName)

	for _, line := range order.Items {
		fmt.Fprintf(&text, "%d x %s  %s\n", line.Quantity, line.Item.Name, line.LineTotal().String())
		fmt.Fprintf(&rows, "<tr><td>%d x %s</td><td>%s</td></tr>",
			line.Quantity, html.EscapeString(line.Item.Name), line.LineTotal().String())
	}

	fmt.Fprintf(&text, "\nSubtotal: %s\nShipping: %s\nDiscount: %s\nTotal: %s VND\n",
		order.Subtotal, order.ShippingFee, order.Discount, order.Total)
	fmt.Fprintf(&text, "Payment: %s\nDeliver to: %s\n", order.PaymentMethod, order.Address)

	req := &models.EmailNotificationRequest{
		To:      to,
		Subject: fmt.Sprintf("Your %s order is confirmed", order.RestaurantName),
		Content: text.String(),
		HTMLContent: fmt.Sprintf("<h2>%s</h2><table>%s</table><p><strong>Total: %s VND</strong></p>",
			html.EscapeString(order.RestaurantName), rows.String(), order.Total),
	}

	if err := n.emailService.Send(ctx, req); err != nil {
		return errors.ThirdPartyError("Failed to send order confirmation").WithError(err)
	}

	return nil
}
