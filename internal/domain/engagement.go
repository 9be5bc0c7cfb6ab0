package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// TargetStore says where the canonical record of an engagement target lives.
type TargetStore string

const (
	TargetStoreInternal TargetStore = "INTERNAL"
	TargetStoreExternal TargetStore = "EXTERNAL"
)

// TargetRef addresses an engagement target across stores. Internal targets
// are relational events; external targets live in the document store.
type TargetRef struct {
	Store   TargetStore
	ID      string
	EventID uuid.UUID
}

// InternalEvent references an event stored in the relational store.
func InternalEvent(id uuid.UUID) TargetRef {
	return TargetRef{Store: TargetStoreInternal, ID: id.String(), EventID: id}
}

// ExternalTarget references a document-store entity by opaque id.
func ExternalTarget(id string) TargetRef {
	return TargetRef{Store: TargetStoreExternal, ID: strings.TrimSpace(id)}
}

// ParseEventTarget builds a TargetRef from the wire pair (id, isExternal).
func ParseEventTarget(id string, isExternal bool) (TargetRef, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return TargetRef{}, NewValidationError("target_id", "required")
	}
	if isExternal {
		if len(id) > 128 {
			return TargetRef{}, NewValidationError("target_id", "max 128 characters")
		}
		return ExternalTarget(id), nil
	}
	eventID, err := uuid.Parse(id)
	if err != nil || eventID == uuid.Nil {
		return TargetRef{}, NewValidationError("target_id", "must be an event id")
	}
	return InternalEvent(eventID), nil
}

// IsExternal reports whether the target lives in the document store.
func (t TargetRef) IsExternal() bool { return t.Store == TargetStoreExternal }

// Validate checks that the reference is well formed.
func (t TargetRef) Validate() error {
	switch t.Store {
	case TargetStoreInternal:
		if t.EventID == uuid.Nil {
			return NewValidationError("target_id", "required")
		}
		if t.ID != t.EventID.String() {
			return NewValidationError("target_id", "must equal the event id")
		}
	case TargetStoreExternal:
		if t.ID == "" {
			return NewValidationError("target_id", "required")
		}
		if t.EventID != uuid.Nil {
			return NewValidationError("event_id", "must be empty for external targets")
		}
	default:
		return NewValidationError("target_store", "must be INTERNAL or EXTERNAL")
	}
	return nil
}

// EngagementKind selects the join table and counter a toggle operates on.
type EngagementKind string

const (
	EngagementLike EngagementKind = "LIKE"
	EngagementSave EngagementKind = "SAVE"
)

func (k EngagementKind) String() string { return string(k) }

// EventEngagement is a LikedEvent or SavedEvent row.
type EventEngagement struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	TargetID   string
	IsExternal bool
	EventID    *uuid.UUID
	CreatedAt  time.Time
}

// SavedPost is a saved document-store post.
type SavedPost struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	PostID    string
	CreatedAt time.Time
}

// DocumentSummary is the metadata the document store exposes for a target.
type DocumentSummary struct {
	ID        string
	Title     string
	AuthorID  string
	Excerpt   string
	CreatedAt time.Time
}

// ToggleResult reports the outcome of an engagement toggle.
type ToggleResult struct {
	// Changed is false when the toggle was a no-op.
	Changed bool
	// Count is the event counter after the toggle; nil for external targets.
	Count *int
}

// CounterDrift is an event whose stored counters disagree with its join rows.
type CounterDrift struct {
	EventID     uuid.UUID
	StoredLikes int
	ActualLikes int
	StoredSaves int
	ActualSaves int
}

// ReconcileReport summarizes one reconciliation pass.
type ReconcileReport struct {
	EventsCorrected  int
	LikesAdjusted    int
	SavesAdjusted    int
	ExternalPruned   int
	ExternalChecked  int
	ExternalFailures int
	Duration         time.Duration
}
