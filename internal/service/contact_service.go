package service

import (
	"context"
	"strings"

	"github.com/Shubhamkumarpatel70/shubhamportfolio/internal/apperr"
	"github.com/Shubhamkumarpatel70/shubhamportfolio/internal/broker"
	"github.com/Shubhamkumarpatel70/shubhamportfolio/internal/models"
	"github.com/Shubhamkumarpatel70/shubhamportfolio/internal/repository"
	"github.com/Shubhamkumarpatel70/shubhamportfolio/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrContactNotFound = apperr.NotFound("Contact not found")

type ContactInput struct {
	Name    string `json:"name" binding:"required,max=100"`
	Email   string `json:"email" binding:"required,email,max=100"`
	Subject string `json:"subject" binding:"required,max=200"`
	Message string `json:"message" binding:"required"`
}

type ContactService struct {
	contacts *repository.Collection[models.Contact]
	events   broker.EventBroker
}

func NewContactService(contacts *repository.Collection[models.Contact], events broker.EventBroker) *ContactService {
	return &ContactService{
		contacts: contacts,
		events:   events,
	}
}

// Submit stores an inquiry and notifies connected admins
func (s *ContactService) Submit(ctx context.Context, in ContactInput) (*models.Contact, error) {
	contact := &models.Contact{
		Name:    strings.TrimSpace(in.Name),
		Email:   normalizeEmail(in.Email),
		Subject: strings.TrimSpace(in.Subject),
		Message: strings.TrimSpace(in.Message),
	}
	if contact.Name == "" || contact.Subject == "" || contact.Message == "" {
		return nil, apperr.BadRequest("Name, subject and message are required")
	}

	if err := s.contacts.Create(ctx, contact); err != nil {
		logger.Log.Error("Failed to save contact", zap.Error(err))
		return nil, err
	}

	logger.Log.Info("Contact message received",
		zap.String("contact_id", contact.ID.String()),
		zap.String("email", contact.Email),
	)

	publish(ctx, s.events, broker.EventContactReceived, contact.ID.String(), map[string]string{
		"name":    contact.Name,
		"email":   contact.Email,
		"subject": contact.Subject,
	})
	return contact, nil
}

func (s *ContactService) List(ctx context.Context) ([]models.Contact, error) {
	return s.contacts.List(ctx)
}

func (s *ContactService) Delete(ctx context.Context, id uuid.UUID) error {
	found, err := s.contacts.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return ErrContactNotFound
	}
	return nil
}

// publish sends a best-effort notification; the request has already
// succeeded, so a broker failure is only logged.
func publish(ctx context.Context, events broker.EventBroker, eventType broker.EventType, id string, data interface{}) {
	if events == nil {
		return
	}

	event, err := broker.NewEvent(eventType, id, data)
	if err == nil {
		err = events.Publish(ctx, event)
	}
	if err != nil {
		logger.Log.Warn("Failed to publish event",
			zap.String("type", string(eventType)),
			zap.String("id", id),
			zap.Error(err),
		)
	}
}
