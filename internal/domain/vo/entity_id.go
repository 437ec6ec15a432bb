package vo

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxEntityIDLength bounds identifiers accepted from the backend or the CLI.
const MaxEntityIDLength = 256

// EntityID represents the identifier of a catalog entity (project or event).
// Identifiers are opaque strings; the backend historically used project
// names, so inner spaces are allowed.
type EntityID struct {
	value string
}

var (
	ErrEmptyEntityID   = errors.New("entity ID cannot be empty")
	ErrInvalidEntityID = errors.New("invalid entity ID")
)

// NewEntityID creates a new EntityID value object.
// Surrounding whitespace is trimmed; control characters and '/' are rejected
// because IDs appear as URL path segments.
func NewEntityID(id string) (EntityID, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return EntityID{}, ErrEmptyEntityID
	}
	if !utf8.ValidString(id) || utf8.RuneCountInString(id) > MaxEntityIDLength {
		return EntityID{}, ErrInvalidEntityID
	}
	for _, r := range id {
		if unicode.IsControl(r) || r == '/' {
			return EntityID{}, ErrInvalidEntityID
		}
	}
	return EntityID{value: id}, nil
}

// MustEntityID creates a new EntityID, panicking if invalid.
func MustEntityID(id string) EntityID {
	eid, err := NewEntityID(id)
	if err != nil {
		panic(err)
	}
	return eid
}

// String returns the string representation of the ID.
func (id EntityID) String() string {
	return id.value
}

// IsEmpty returns true if the ID is empty.
func (id EntityID) IsEmpty() bool {
	return id.value == ""
}

// Equals checks if two IDs are equal.
func (id EntityID) Equals(other EntityID) bool {
	return id.value == other.value
}
