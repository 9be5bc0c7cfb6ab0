package domain

import (
	"time"

	"github.com/google/uuid"
)

// RsvpStatus is the attendance intent axis of a participation.
type RsvpStatus string

const (
	RsvpGoing    RsvpStatus = "GOING"
	RsvpMaybe    RsvpStatus = "MAYBE"
	RsvpNotGoing RsvpStatus = "NOT_GOING"
)

func (s RsvpStatus) String() string { return string(s) }

func (s RsvpStatus) IsValid() bool {
	switch s {
	case RsvpGoing, RsvpMaybe, RsvpNotGoing:
		return true
	}
	return false
}

// RegistrationStatus is the seat-reservation axis of a participation.
type RegistrationStatus string

const (
	RegistrationRegistered RegistrationStatus = "REGISTERED"
	RegistrationPending    RegistrationStatus = "PENDING"
	RegistrationCanceled   RegistrationStatus = "CANCELED"
	RegistrationWaitlisted RegistrationStatus = "WAITLISTED"
)

func (s RegistrationStatus) String() string { return string(s) }

func (s RegistrationStatus) IsValid() bool {
	switch s {
	case RegistrationRegistered, RegistrationPending, RegistrationCanceled, RegistrationWaitlisted:
		return true
	}
	return false
}

// Rating bounds for participation feedback.
const (
	MinRating = 1
	MaxRating = 5
)

// EventParticipation is the (user, event) ledger row. Rsvp and Registration
// are independent; nil means the axis was never set.
type EventParticipation struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	EventID      uuid.UUID
	Rsvp         *RsvpStatus
	Registration *RegistrationStatus
	CheckInTime  *time.Time
	Feedback     *string
	Rating       *int
	RegisteredAt *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsRegistered reports whether the participant holds a confirmed seat.
func (p *EventParticipation) IsRegistered() bool {
	return p.Registration != nil && *p.Registration == RegistrationRegistered
}

// IsCheckedIn reports whether a check-in was recorded.
func (p *EventParticipation) IsCheckedIn() bool { return p.CheckInTime != nil }

// CurrentRegistration returns the registration status or "" when unset.
func (p *EventParticipation) CurrentRegistration() RegistrationStatus {
	if p == nil || p.Registration == nil {
		return ""
	}
	return *p.Registration
}

// PlanRegistration decides the registration status stored for a request.
//
// current is "" for a participation that never registered. hasRoom is the
// capacity answer for one more REGISTERED seat; it is only consulted when
// the request would take a seat.
//
//	""|CANCELED|PENDING|WAITLISTED -> PENDING    (WAITLISTED keeps its place)
//	""|CANCELED|PENDING|WAITLISTED -> REGISTERED (or WAITLISTED when full)
//	any                            -> CANCELED
func PlanRegistration(current, requested RegistrationStatus, hasRoom bool) (RegistrationStatus, error) {
	if current == requested {
		return current, nil
	}

	switch requested {
	case RegistrationCanceled:
		if current == "" {
			return "", NewTransitionError("registration", "NONE", requested.String())
		}
		return RegistrationCanceled, nil
	case RegistrationPending:
		switch current {
		case "", RegistrationCanceled:
			return RegistrationPending, nil
		case RegistrationWaitlisted:
			return RegistrationWaitlisted, nil
		}
	case RegistrationRegistered:
		switch current {
		case "", RegistrationCanceled, RegistrationPending, RegistrationWaitlisted:
			if hasRoom {
				return RegistrationRegistered, nil
			}
			return RegistrationWaitlisted, nil
		}
	}

	from := current.String()
	if current == "" {
		from = "NONE"
	}
	return "", NewTransitionError("registration", from, requested.String())
}

// ValidRating reports whether r is within the accepted feedback range.
func ValidRating(r int) bool {
	return r >= MinRating && r <= MaxRating
}
