package services

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"gorm.io/datatypes"

	"unihub/internal/adapters/persistence/models"
	"unihub/internal/adapters/persistence/repositories"
	"unihub/internal/core/domain"
	"unihub/internal/pkg/logger"
)

// PushMessage is one notification addressed to a set of device tokens
type PushMessage struct {
	Title  string
	Body   string
	Data   map[string]any
	Tokens []string
}

// Sender delivers push messages to devices
type Sender interface {
	Send(ctx context.Context, msg PushMessage) error
}

// LogSender records pushes in the log instead of delivering them
type LogSender struct {
	log *slog.Logger
}

// NewLogSender creates a new log-only sender
func NewLogSender() *LogSender {
	return &LogSender{log: logger.WithComponent("push")}
}

// Send logs the message and its recipient count
func (s *LogSender) Send(_ context.Context, msg PushMessage) error {
	s.log.Info("push notification", "title", msg.Title, "recipients", len(msg.Tokens))
	return nil
}

// NotificationInput represents create notification input
type NotificationInput struct {
	Title string         `json:"title" validate:"required,max=200"`
	Body  string         `json:"body" validate:"required"`
	Data  map[string]any `json:"data"`
}

// NotificationService records notifications and pushes them to the university's students
type NotificationService struct {
	*CRUD[models.Notification, NotificationInput, *models.NotificationResponse]
	devices repositories.DeviceRepository
	sender  Sender
	log     *slog.Logger
}

// NewNotificationService creates a new notification service
func NewNotificationService(stores *repositories.Stores, devices repositories.DeviceRepository, sender Sender) *NotificationService {
	return &NotificationService{
		CRUD: &CRUD[models.Notification, NotificationInput, *models.NotificationResponse]{
			Name:   "notification",
			Store:  stores.Notifications,
			Parent: &Parent{Name: "university", Column: ColUniversity, Store: stores.Universities},
			Apply: func(n *models.Notification, in *NotificationInput) error {
				n.Title = in.Title
				n.Body = in.Body
				if in.Data != nil {
					raw, err := json.Marshal(in.Data)
					if err != nil {
						return domain.Validation("data.invalid")
					}
					n.Data = datatypes.JSON(raw)
				}
				return nil
			},
			Bind: func(n *models.Notification, sc repositories.Scope) {
				bindID(&n.UniversityID, sc, ColUniversity)
			},
			ToOutput: (*models.Notification).ToResponse,
		},
		devices: devices,
		sender:  sender,
		log:     logger.WithComponent("notifications"),
	}
}

// Send stores a notification and dispatches it to every registered device of the university
func (s *NotificationService) Send(ctx context.Context, scope repositories.Scope, in *NotificationInput) (*models.NotificationResponse, error) {
	created, err := s.Create(ctx, scope, in)
	if err != nil {
		return nil, err
	}

	tokens, err := s.devices.TokensByUniversity(ctx, created.UniversityID)
	if err != nil {
		return nil, err
	}

	err = s.sender.Send(ctx, PushMessage{Title: in.Title, Body: in.Body, Data: in.Data, Tokens: tokens})
	if err != nil {
		s.log.Error("push dispatch failed", "notification_id", created.ID, "error", err)
		return created, nil
	}

	entity, err := s.Store.FindScoped(ctx, created.ID, nil)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	entity.SentAt = &now
	entity.Recipients = len(tokens)
	if err := s.Store.Save(ctx, entity); err != nil {
		return nil, err
	}
	return entity.ToResponse(), nil
}
