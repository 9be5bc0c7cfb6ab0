package notification

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/eventhub-backend/internal/domain"
)

const maxMessageLength = 2000

// NotifyInput holds a notification to create. Channel defaults to IN_APP and
// Priority to NORMAL.
type NotifyInput struct {
	UserID   uuid.UUID
	Type     domain.NotificationType
	Channel  domain.Channel
	Priority domain.Priority
	Message  string
	Link     domain.NotificationLink
	Data     map[string]any
	Metadata map[string]any
	Sender   map[string]any
}

// Validate checks all fields and collects all errors.
func (i NotifyInput) Validate() error {
	var errs []domain.FieldError

	if i.UserID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "user_id", Message: "required"})
	}
	if !i.Type.IsValid() {
		errs = append(errs, domain.FieldError{Field: "type", Message: "unknown notification type"})
	}
	if i.Channel != "" && !i.Channel.IsValid() {
		errs = append(errs, domain.FieldError{Field: "channel", Message: "unknown channel"})
	}
	if i.Priority != "" && !i.Priority.IsValid() {
		errs = append(errs, domain.FieldError{Field: "priority", Message: "unknown priority"})
	}

	msg := strings.TrimSpace(i.Message)
	if msg == "" {
		errs = append(errs, domain.FieldError{Field: "message", Message: "required"})
	}
	if len(msg) > maxMessageLength {
		errs = append(errs, domain.FieldError{Field: "message", Message: "max 2000 characters"})
	}

	if err := i.Link.Validate(); err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			errs = append(errs, verr.Errors...)
		}
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func (i NotifyInput) build(now time.Time) domain.Notification {
	n := domain.Notification{
		ID:        uuid.New(),
		UserID:    i.UserID,
		Type:      i.Type,
		Channel:   i.Channel,
		Priority:  i.Priority,
		Status:    domain.DeliveryPending,
		Message:   strings.TrimSpace(i.Message),
		Link:      i.Link,
		Data:      i.Data,
		Metadata:  i.Metadata,
		Sender:    i.Sender,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if n.Channel == "" {
		n.Channel = domain.ChannelInApp
	}
	if n.Priority == "" {
		n.Priority = domain.PriorityNormal
	}
	return n
}
