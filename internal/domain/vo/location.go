package vo

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrInvalidLocation = errors.New("invalid location")
	ErrLongitudeRange  = errors.New("longitude must be between -180 and 180")
	ErrLatitudeRange   = errors.New("latitude must be between -90 and 90")
)

// Location is a geographic point stored as "longitude,latitude".
type Location struct {
	longitude float64
	latitude  float64
}

// NewLocation creates a validated Location.
func NewLocation(longitude, latitude float64) (Location, error) {
	if longitude < -180 || longitude > 180 {
		return Location{}, ErrLongitudeRange
	}
	if latitude < -90 || latitude > 90 {
		return Location{}, ErrLatitudeRange
	}
	return Location{longitude: longitude, latitude: latitude}, nil
}

// ParseLocation parses the "longitude,latitude" wire and storage form.
func ParseLocation(s string) (Location, error) {
	lonStr, latStr, ok := strings.Cut(strings.TrimSpace(s), ",")
	if !ok {
		return Location{}, fmt.Errorf("%w: %q", ErrInvalidLocation, s)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(lonStr), 64)
	if err != nil {
		return Location{}, fmt.Errorf("%w: longitude %q", ErrInvalidLocation, lonStr)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
	if err != nil {
		return Location{}, fmt.Errorf("%w: latitude %q", ErrInvalidLocation, latStr)
	}
	return NewLocation(lon, lat)
}

// Longitude returns the longitude in degrees.
func (l Location) Longitude() float64 {
	return l.longitude
}

// Latitude returns the latitude in degrees.
func (l Location) Latitude() float64 {
	return l.latitude
}

// String returns the "longitude,latitude" form.
func (l Location) String() string {
	return strconv.FormatFloat(l.longitude, 'f', -1, 64) + "," +
		strconv.FormatFloat(l.latitude, 'f', -1, 64)
}

// Equals checks if two locations are equal.
func (l Location) Equals(other Location) bool {
	return l.longitude == other.longitude && l.latitude == other.latitude
}
