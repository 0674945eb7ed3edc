package service

import (
	"context"
	"fmt"

	"campus-transport-backend/internal/domain"
	"campus-transport-backend/internal/logger"
	"campus-transport-backend/internal/repository"
)

const notificationListLimit = 50

type notificationService struct {
	noteRepo      repository.NotificationRepository
	userRepo      repository.UserRepository
	emailSvc      EmailService
	securityEmail string
}

func NewNotificationService(noteRepo repository.NotificationRepository, userRepo repository.UserRepository, emailSvc EmailService, securityEmail string) NotificationService {
	return &notificationService{
		noteRepo:      noteRepo,
		userRepo:      userRepo,
		emailSvc:      emailSvc,
		securityEmail: securityEmail,
	}
}

func (s *notificationService) List(ctx context.Context, userID string) ([]domain.Notification, error) {
	return s.noteRepo.ListByUser(ctx, userID, notificationListLimit)
}

func (s *notificationService) MarkAsRead(ctx context.Context, userID, notificationID string) error {
	return s.noteRepo.MarkAsRead(ctx, notificationID, userID)
}

func (s *notificationService) ReportEmergency(ctx context.Context, userID, message string, lat, lon float64) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	position := fmt.Sprintf("%.6f,%.6f", lat, lon)
	fromName := fmt.Sprintf("%s %s (%s)", user.FirstName, user.LastName, user.Email)
	if s.securityEmail != "" {
		if err := s.emailSvc.SendEmergencyAlert(ctx, s.securityEmail, fromName, message, position); err != nil {
			// The alert record below still lands; the dispatcher email
			// failing must not swallow the report.
			logger.Error("Failed to email emergency alert", "user", userID, "error", err)
		}
	}

	note := &domain.Notification{
		UserID:  userID,
		Kind:    domain.NotificationKindEmergencyAlert,
		Title:   "Emergency alert sent",
		Message: fmt.Sprintf("Campus security was alerted from %s.", position),
	}
	return s.noteRepo.Create(ctx, note)
}
