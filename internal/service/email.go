package service

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"campus-transport-backend/internal/logger"
)

type sendgridEmailService struct {
	apiKey    string
	fromEmail string
	fromName  string
}

// NewEmailService returns the SendGrid-backed sender, or a no-op sender
// when no API key is configured (dev and test environments).
func NewEmailService(apiKey, fromEmail, fromName string) EmailService {
	if apiKey == "" {
		logger.Info("SendGrid not configured, email sending disabled")
		return &noopEmailService{}
	}
	return &sendgridEmailService{apiKey: apiKey, fromEmail: fromEmail, fromName: fromName}
}

func (s *sendgridEmailService) send(to, toName, subject, body string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(toName, to)
	message := mail.NewSingleEmail(from, subject, recipient, body, "")

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}

func (s *sendgridEmailService) SendRentalReceipt(ctx context.Context, email, name, itemID, location string, fee int64) error {
	body := fmt.Sprintf("Hello %s,\n\nYou rented %s at %s. %d KuduBucks were deducted from your balance; you get them back when you drop the vehicle off.\n\nSafe travels,\nCampus Transportation", name, itemID, location, fee)
	return s.send(email, name, fmt.Sprintf("Rental confirmed: %s", itemID), body)
}

func (s *sendgridEmailService) SendReturnReceipt(ctx context.Context, email, name, itemID string, fee int64) error {
	body := fmt.Sprintf("Hello %s,\n\nYou returned %s and %d KuduBucks were credited back to your balance.\n\nThanks for riding,\nCampus Transportation", name, itemID, fee)
	return s.send(email, name, fmt.Sprintf("Return confirmed: %s", itemID), body)
}

func (s *sendgridEmailService) SendEmergencyAlert(ctx context.Context, toEmail, fromName, message, position string) error {
	body := fmt.Sprintf("Emergency alert from %s.\n\nReported position: %s\n\nMessage: %s", fromName, position, message)
	return s.send(toEmail, "Campus Security", "EMERGENCY ALERT", body)
}

type noopEmailService struct{}

func (s *noopEmailService) SendRentalReceipt(ctx context.Context, email, name, itemID, location string, fee int64) error {
	return nil
}

func (s *noopEmailService) SendReturnReceipt(ctx context.Context, email, name, itemID string, fee int64) error {
	return nil
}

func (s *noopEmailService) SendEmergencyAlert(ctx context.Context, toEmail, fromName, message, position string) error {
	return nil
}
