package event

import (
	"errors"
	"strings"
	"time"

	"github.com/heartmarshall/eventhub-backend/internal/domain"
	"github.com/heartmarshall/eventhub-backend/internal/service/validation"
)

// CreateEventInput holds the descriptive fields of a new event. Capacity nil
// means unbounded. Latitude and Longitude are given together or not at all.
type CreateEventInput struct {
	Name        string    `validate:"required,max=200"`
	Description string    `validate:"max=5000"`
	Category    string    `validate:"required,max=100"`
	Location    string    `validate:"required,max=300"`
	Latitude    *float64  `validate:"omitempty,gte=-90,lte=90"`
	Longitude   *float64  `validate:"omitempty,gte=-180,lte=180"`
	StartDate   time.Time `validate:"required"`
	EndDate     time.Time `validate:"required,gtefield=StartDate"`
	Capacity    *int      `validate:"omitempty,gt=0"`
	IsPublic    bool
	Tags        []string `validate:"max=20,dive,max=50"`
}

// Validate checks all fields and collects all errors.
func (i CreateEventInput) Validate() error {
	i.Name = strings.TrimSpace(i.Name)
	i.Category = strings.TrimSpace(i.Category)
	i.Location = strings.TrimSpace(i.Location)
	return collect(validation.Struct(i), coordinateErrors(i.Latitude, i.Longitude))
}

func (i CreateEventInput) toDomain() domain.Event {
	return domain.Event{
		Name:        strings.TrimSpace(i.Name),
		Description: strings.TrimSpace(i.Description),
		Category:    strings.TrimSpace(i.Category),
		Location:    strings.TrimSpace(i.Location),
		Coordinates: coordinates(i.Latitude, i.Longitude),
		StartDate:   i.StartDate,
		EndDate:     i.EndDate,
		Capacity:    i.Capacity,
		IsPublic:    i.IsPublic,
		Tags:        domain.NormalizeTags(i.Tags),
	}
}

// UpdateEventInput holds a partial change of the descriptive fields. Nil
// means "keep". ClearCapacity makes the event unbounded; ClearCoordinates
// drops the coordinates.
type UpdateEventInput struct {
	Name             *string   `validate:"omitempty,min=1,max=200"`
	Description      *string   `validate:"omitempty,max=5000"`
	Category         *string   `validate:"omitempty,min=1,max=100"`
	Location         *string   `validate:"omitempty,min=1,max=300"`
	Latitude         *float64  `validate:"omitempty,gte=-90,lte=90"`
	Longitude        *float64  `validate:"omitempty,gte=-180,lte=180"`
	ClearCoordinates bool
	StartDate        *time.Time
	EndDate          *time.Time
	Capacity         *int `validate:"omitempty,gt=0"`
	ClearCapacity    bool
	IsPublic         *bool
	Tags             []string `validate:"omitempty,max=20,dive,max=50"`
}

// Validate checks all fields and collects all errors.
func (i UpdateEventInput) Validate() error {
	var errs []domain.FieldError

	if i.Name == nil && i.Description == nil && i.Category == nil && i.Location == nil &&
		i.Latitude == nil && i.Longitude == nil && !i.ClearCoordinates &&
		i.StartDate == nil && i.EndDate == nil && i.Capacity == nil && !i.ClearCapacity &&
		i.IsPublic == nil && i.Tags == nil {
		errs = append(errs, domain.FieldError{Field: "input", Message: "at least one field must be provided"})
	}
	if i.Capacity != nil && i.ClearCapacity {
		errs = append(errs, domain.FieldError{Field: "capacity", Message: "cannot set and clear at once"})
	}
	if (i.Latitude != nil || i.Longitude != nil) && i.ClearCoordinates {
		errs = append(errs, domain.FieldError{Field: "coordinates", Message: "cannot set and clear at once"})
	}
	errs = append(errs, coordinateErrors(i.Latitude, i.Longitude)...)

	for _, f := range []struct {
		name  string
		value *string
	}{{"name", i.Name}, {"category", i.Category}, {"location", i.Location}} {
		if f.value != nil && strings.TrimSpace(*f.value) == "" {
			errs = append(errs, domain.FieldError{Field: f.name, Message: "required"})
		}
	}

	return collect(validation.Struct(i), errs)
}

// apply merges the change into e and returns the names of changed fields.
func (i UpdateEventInput) apply(e *domain.Event) []string {
	var changed []string
	setString := func(field string, dst *string, v *string) {
		if v == nil {
			return
		}
		if s := strings.TrimSpace(*v); s != *dst {
			*dst = s
			changed = append(changed, field)
		}
	}

	setString("name", &e.Name, i.Name)
	setString("description", &e.Description, i.Description)
	setString("category", &e.Category, i.Category)
	setString("location", &e.Location, i.Location)

	switch {
	case i.ClearCoordinates && e.Coordinates != nil:
		e.Coordinates = nil
		changed = append(changed, "coordinates")
	case i.Latitude != nil:
		c := coordinates(i.Latitude, i.Longitude)
		if e.Coordinates == nil || *e.Coordinates != *c {
			e.Coordinates = c
			changed = append(changed, "coordinates")
		}
	}

	if i.StartDate != nil && !i.StartDate.Equal(e.StartDate) {
		e.StartDate = *i.StartDate
		changed = append(changed, "start_date")
	}
	if i.EndDate != nil && !i.EndDate.Equal(e.EndDate) {
		e.EndDate = *i.EndDate
		changed = append(changed, "end_date")
	}

	switch {
	case i.ClearCapacity && e.Capacity != nil:
		e.Capacity = nil
		changed = append(changed, "capacity")
	case i.Capacity != nil && (e.Capacity == nil || *e.Capacity != *i.Capacity):
		c := *i.Capacity
		e.Capacity = &c
		changed = append(changed, "capacity")
	}

	if i.IsPublic != nil && *i.IsPublic != e.IsPublic {
		e.IsPublic = *i.IsPublic
		changed = append(changed, "is_public")
	}
	if i.Tags != nil {
		tags := domain.NormalizeTags(i.Tags)
		if strings.Join(tags, ",") != strings.Join(e.Tags, ",") {
			e.Tags = tags
			changed = append(changed, "tags")
		}
	}
	return changed
}

func coordinateErrors(lat, lng *float64) []domain.FieldError {
	if (lat == nil) != (lng == nil) {
		return []domain.FieldError{{Field: "coordinates", Message: "latitude and longitude must be given together"}}
	}
	return nil
}

func coordinates(lat, lng *float64) *domain.Coordinates {
	if lat == nil || lng == nil {
		return nil
	}
	return &domain.Coordinates{Latitude: *lat, Longitude: *lng}
}

// collect merges struct-tag validation with hand-written field checks.
func collect(tagErr error, extra []domain.FieldError) error {
	var errs []domain.FieldError
	if tagErr != nil {
		var verr *domain.ValidationError
		if !errors.As(tagErr, &verr) {
			return tagErr
		}
		errs = append(errs, verr.Errors...)
	}
	errs = append(errs, extra...)

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
