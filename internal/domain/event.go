package domain

import (
	"time"

	"github.com/google/uuid"
)

// EventStatus is the lifecycle state of an event.
type EventStatus string

const (
	EventStatusPending   EventStatus = "PENDING"
	EventStatusActive    EventStatus = "ACTIVE"
	EventStatusCompleted EventStatus = "COMPLETED"
	EventStatusCanceled  EventStatus = "CANCELED"
)

func (s EventStatus) String() string { return string(s) }

func (s EventStatus) IsValid() bool {
	switch s {
	case EventStatusPending, EventStatusActive, EventStatusCompleted, EventStatusCanceled:
		return true
	}
	return false
}

// IsTerminal reports whether no transition leaves s.
func (s EventStatus) IsTerminal() bool {
	return s == EventStatusCompleted || s == EventStatusCanceled
}

// AcceptsRegistrations reports whether participants may (re)register.
func (s EventStatus) AcceptsRegistrations() bool {
	return s == EventStatusPending || s == EventStatusActive
}

// Coordinates is an optional latitude/longitude pair.
type Coordinates struct {
	Latitude  float64
	Longitude float64
}

// Event is an occurrence created by a user. LikeCount and SaveCount are
// denormalized counters owned by the engagement component.
type Event struct {
	ID          uuid.UUID
	CreatorID   *uuid.UUID
	Name        string
	Description string
	Category    string
	Location    string
	Coordinates *Coordinates
	StartDate   time.Time
	EndDate     time.Time
	// Capacity nil means unbounded.
	Capacity  *int
	IsPublic  bool
	Tags      []string
	Status    EventStatus
	LikeCount int
	SaveCount int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsUnbounded reports whether the event has no capacity limit.
func (e *Event) IsUnbounded() bool { return e.Capacity == nil }

// HasRoomFor reports whether one more registration fits given the current
// number of registered participants.
func (e *Event) HasRoomFor(registered int) bool {
	if e.IsUnbounded() {
		return true
	}
	return registered < *e.Capacity
}

// IsCreator reports whether userID created the event. Orphaned events have no creator.
func (e *Event) IsCreator(userID uuid.UUID) bool {
	return e.CreatorID != nil && *e.CreatorID == userID
}

// TransitionTrigger says who asks for a status change.
type TransitionTrigger int

const (
	// TriggerOrganizer is an explicit action by the creator or an administrator.
	TriggerOrganizer TransitionTrigger = iota
	// TriggerSystem is a scheduled sweep acting on elapsed dates.
	TriggerSystem
)

// CheckTransition validates moving the event to next at time now.
//
//	PENDING -> ACTIVE      only while the start date has not elapsed
//	ACTIVE  -> COMPLETED   on organizer action, or by the system once the end date passed
//	PENDING|ACTIVE -> CANCELED
func (e *Event) CheckTransition(next EventStatus, now time.Time, trigger TransitionTrigger) error {
	reject := NewTransitionError("event", e.Status.String(), next.String())

	switch {
	case e.Status == EventStatusPending && next == EventStatusActive:
		if !now.Before(e.StartDate) {
			return reject
		}
		return nil
	case e.Status == EventStatusActive && next == EventStatusCompleted:
		if trigger == TriggerSystem && now.Before(e.EndDate) {
			return reject
		}
		return nil
	case next == EventStatusCanceled && (e.Status == EventStatusPending || e.Status == EventStatusActive):
		return nil
	}
	return reject
}

// EventFilter narrows event listings. Zero values mean "any".
type EventFilter struct {
	Status      *EventStatus
	Category    *string
	Tag         *string
	CreatorID   *uuid.UUID
	StartsAfter *time.Time
	Limit       int
	Offset      int
}
