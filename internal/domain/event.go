package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/eeese/showcase/internal/domain/vo"
)

// EventAttrs carries the attributes used to build an Event.
type EventAttrs struct {
	ID          string
	Name        string
	Description string
	ImageURI    string
	Location    *vo.Location
	Start       *time.Time
	End         *time.Time
}

// Event is an immutable society event.
type Event struct {
	id          vo.EntityID
	name        string
	description string
	imageURI    string
	location    *vo.Location
	start       *time.Time
	end         *time.Time
}

// NewEvent validates attrs and builds an Event.
func NewEvent(attrs EventAttrs) (Event, error) {
	id, err := vo.NewEntityID(attrs.ID)
	if err != nil {
		return Event{}, fmt.Errorf("%w: event id: %w", ErrInvalidInput, err)
	}
	name := strings.TrimSpace(attrs.Name)
	if name == "" {
		return Event{}, fmt.Errorf("%w: event %s has no name", ErrInvalidInput, id)
	}
	if attrs.Start != nil && attrs.End != nil && attrs.End.Before(*attrs.Start) {
		return Event{}, fmt.Errorf("%w: event %s ends before it starts", ErrInvalidInput, id)
	}

	return Event{
		id:          id,
		name:        name,
		description: attrs.Description,
		imageURI:    strings.TrimSpace(attrs.ImageURI),
		location:    copyPtr(attrs.Location),
		start:       copyPtr(attrs.Start),
		end:         copyPtr(attrs.End),
	}, nil
}

// MustEvent is NewEvent that panics on invalid input.
func MustEvent(attrs EventAttrs) Event {
	e, err := NewEvent(attrs)
	if err != nil {
		panic(err)
	}
	return e
}

func (e Event) ID() string { return e.id.String() }
func (e Event) Name() string { return e.name }
func (e Event) Description() string { return e.description }
func (e Event) ImageURI() string { return e.imageURI }
func (e Event) IsZero() bool { return e.id.IsEmpty() }

// Location returns the event location, if known.
func (e Event) Location() (vo.Location, bool) {
	if e.location == nil {
		return vo.Location{}, false
	}
	return *e.location, true
}

// Start returns the start time, if known.
func (e Event) Start() (time.Time, bool) {
	if e.start == nil {
		return time.Time{}, false
	}
	return *e.start, true
}

// End returns the end time, if known.
func (e Event) End() (time.Time, bool) {
	if e.end == nil {
		return time.Time{}, false
	}
	return *e.end, true
}

// Attrs returns the attributes of e.
func (e Event) Attrs() EventAttrs {
	return EventAttrs{
		ID:          e.id.String(),
		Name:        e.name,
		Description: e.description,
		ImageURI:    e.imageURI,
		Location:    copyPtr(e.location),
		Start:       copyPtr(e.start),
		End:         copyPtr(e.end),
	}
}

// Equal compares every field. Times are compared as instants.
func (e Event) Equal(other Event) bool {
	return e.id.Equals(other.id) &&
		e.name == other.name &&
		e.description == other.description &&
		e.imageURI == other.imageURI &&
		equalLocation(e.location, other.location) &&
		equalTime(e.start, other.start) &&
		equalTime(e.end, other.end)
}

func copyPtr[T any](v *T) *T {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func equalLocation(a, b *vo.Location) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equals(*b)
}

func equalTime(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}
