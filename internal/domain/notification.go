package domain

import (
	"time"

	"github.com/google/uuid"
)

// NotificationType classifies what a notification is about.
type NotificationType string

const (
	NotificationEventUpdate           NotificationType = "EVENT_UPDATE"
	NotificationEventReminder         NotificationType = "EVENT_REMINDER"
	NotificationEventCanceled         NotificationType = "EVENT_CANCELED"
	NotificationRegistrationConfirmed NotificationType = "REGISTRATION_CONFIRMED"
	NotificationWaitlisted            NotificationType = "WAITLISTED"
	NotificationWaitlistPromoted      NotificationType = "WAITLIST_PROMOTED"
	NotificationLike                  NotificationType = "LIKE"
	NotificationSave                  NotificationType = "SAVE"
	NotificationComment               NotificationType = "COMMENT"
	NotificationPaymentSuccess        NotificationType = "PAYMENT_SUCCESS"
	NotificationPaymentFailed         NotificationType = "PAYMENT_FAILED"
	NotificationPaymentRefunded       NotificationType = "PAYMENT_REFUNDED"
	NotificationSubscriptionRenewal   NotificationType = "SUBSCRIPTION_RENEWAL"
	NotificationSubscriptionCanceled  NotificationType = "SUBSCRIPTION_CANCELED"
)

func (t NotificationType) String() string { return string(t) }

func (t NotificationType) IsValid() bool {
	switch t {
	case NotificationEventUpdate, NotificationEventReminder, NotificationEventCanceled,
		NotificationRegistrationConfirmed, NotificationWaitlisted, NotificationWaitlistPromoted,
		NotificationLike, NotificationSave, NotificationComment,
		NotificationPaymentSuccess, NotificationPaymentFailed, NotificationPaymentRefunded,
		NotificationSubscriptionRenewal, NotificationSubscriptionCanceled:
		return true
	}
	return false
}

// Channel is the delivery medium of a notification.
type Channel string

const (
	ChannelInApp Channel = "IN_APP"
	ChannelEmail Channel = "EMAIL"
	ChannelSMS   Channel = "SMS"
	ChannelPush  Channel = "PUSH"
)

func (c Channel) String() string { return string(c) }

func (c Channel) IsValid() bool {
	switch c {
	case ChannelInApp, ChannelEmail, ChannelSMS, ChannelPush:
		return true
	}
	return false
}

// Priority orders notifications for delivery.
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityNormal Priority = "NORMAL"
	PriorityHigh   Priority = "HIGH"
	PriorityUrgent Priority = "URGENT"
)

func (p Priority) String() string { return string(p) }

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityNormal, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// DeliveryStatus is the dispatch state of a notification.
type DeliveryStatus string

const (
	DeliveryPending DeliveryStatus = "PENDING"
	DeliverySent    DeliveryStatus = "SENT"
	DeliveryFailed  DeliveryStatus = "FAILED"
)

func (s DeliveryStatus) String() string { return string(s) }

func (s DeliveryStatus) IsValid() bool {
	switch s {
	case DeliveryPending, DeliverySent, DeliveryFailed:
		return true
	}
	return false
}

// CheckDeliveryTransition allows PENDING -> SENT|FAILED only.
func CheckDeliveryTransition(from, to DeliveryStatus) error {
	if from == DeliveryPending && (to == DeliverySent || to == DeliveryFailed) {
		return nil
	}
	return NewTransitionError("notification", from.String(), to.String())
}

// LinkKind says what a notification points at.
type LinkKind string

const (
	LinkNone         LinkKind = ""
	LinkEvent        LinkKind = "EVENT"
	LinkSubscription LinkKind = "SUBSCRIPTION"
	LinkExternal     LinkKind = "EXTERNAL"
)

// NotificationLink is the optional, mutually exclusive target of a notification.
type NotificationLink struct {
	Kind           LinkKind
	EventID        uuid.UUID
	SubscriptionID uuid.UUID
	EntityType     string
	EntityID       string
}

// LinkToEvent links a notification to a relational event.
func LinkToEvent(id uuid.UUID) NotificationLink {
	return NotificationLink{Kind: LinkEvent, EventID: id}
}

// LinkToSubscription links a notification to a subscription.
func LinkToSubscription(id uuid.UUID) NotificationLink {
	return NotificationLink{Kind: LinkSubscription, SubscriptionID: id}
}

// LinkToExternal links a notification to an entity outside the relational store.
func LinkToExternal(entityType, entityID string) NotificationLink {
	return NotificationLink{Kind: LinkExternal, EntityType: entityType, EntityID: entityID}
}

// Validate checks the link carries exactly the fields of its kind.
func (l NotificationLink) Validate() error {
	switch l.Kind {
	case LinkNone:
		return nil
	case LinkEvent:
		if l.EventID == uuid.Nil {
			return NewValidationError("link.event_id", "required")
		}
	case LinkSubscription:
		if l.SubscriptionID == uuid.Nil {
			return NewValidationError("link.subscription_id", "required")
		}
	case LinkExternal:
		if l.EntityType == "" || l.EntityID == "" {
			return NewValidationError("link.entity", "type and id required")
		}
	default:
		return NewValidationError("link.kind", "unknown link kind")
	}
	return nil
}

// Notification is a message addressed to exactly one user.
type Notification struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	Type          NotificationType
	Channel       Channel
	Priority      Priority
	Status        DeliveryStatus
	Message       string
	Link          NotificationLink
	Data          map[string]any
	Metadata      map[string]any
	Sender        map[string]any
	IsRead        bool
	ReadAt        *time.Time
	SentAt        *time.Time
	FailureReason *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NotificationFilter narrows a user's notification listing.
type NotificationFilter struct {
	UnreadOnly bool
	Type       *NotificationType
	Limit      int
	Offset     int
}
