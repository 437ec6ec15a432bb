package vo

import (
	"errors"
	"strings"
	"testing"
)

func TestNewEntityID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{name: "plain", input: "proj-1", want: "proj-1"},
		{name: "trimmed", input: "  proj-1 \t", want: "proj-1"},
		{name: "inner spaces kept", input: "Solar Tracker", want: "Solar Tracker"},
		{name: "empty", input: "", wantErr: ErrEmptyEntityID},
		{name: "blank", input: "   ", wantErr: ErrEmptyEntityID},
		{name: "slash", input: "a/b", wantErr: ErrInvalidEntityID},
		{name: "control char", input: "a\x00b", wantErr: ErrInvalidEntityID},
		{name: "too long", input: strings.Repeat("x", MaxEntityIDLength+1), wantErr: ErrInvalidEntityID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := NewEntityID(tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("NewEntityID(%q) error = %v, want %v", tt.input, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewEntityID(%q) unexpected error: %v", tt.input, err)
			}
			if id.String() != tt.want {
				t.Errorf("String() = %q, want %q", id.String(), tt.want)
			}
		})
	}
}

func TestEntityID_Equals(t *testing.T) {
	a := MustEntityID("x")
	b := MustEntityID(" x ")
	if !a.Equals(b) {
		t.Errorf("expected %q to equal %q", a, b)
	}
	if (EntityID{}).IsEmpty() != true {
		t.Error("zero EntityID should be empty")
	}
}

func TestMustEntityID_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustEntityID(\"\") did not panic")
		}
	}()
	MustEntityID("")
}

func TestParseLocation(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantLon float64
		wantLat float64
		wantErr error
	}{
		{name: "valid", input: "32.53,15.59", wantLon: 32.53, wantLat: 15.59},
		{name: "spaces", input: " 32.53 , 15.59 ", wantLon: 32.53, wantLat: 15.59},
		{name: "negative", input: "-0.5,-10", wantLon: -0.5, wantLat: -10},
		{name: "missing comma", input: "32.53", wantErr: ErrInvalidLocation},
		{name: "not a number", input: "east,15", wantErr: ErrInvalidLocation},
		{name: "longitude out of range", input: "181,0", wantErr: ErrLongitudeRange},
		{name: "latitude out of range", input: "0,-91", wantErr: ErrLatitudeRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := ParseLocation(tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ParseLocation(%q) error = %v, want %v", tt.input, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseLocation(%q) unexpected error: %v", tt.input, err)
			}
			if loc.Longitude() != tt.wantLon || loc.Latitude() != tt.wantLat {
				t.Errorf("ParseLocation(%q) = (%v, %v), want (%v, %v)",
					tt.input, loc.Longitude(), loc.Latitude(), tt.wantLon, tt.wantLat)
			}
		})
	}
}

func TestLocation_StringRoundTrip(t *testing.T) {
	loc, err := NewLocation(32.5, 15.25)
	if err != nil {
		t.Fatalf("NewLocation() error = %v", err)
	}
	if got := loc.String(); got != "32.5,15.25" {
		t.Errorf("String() = %q, want %q", got, "32.5,15.25")
	}
	parsed, err := ParseLocation(loc.String())
	if err != nil {
		t.Fatalf("ParseLocation() error = %v", err)
	}
	if !parsed.Equals(loc) {
		t.Errorf("parsed %v != original %v", parsed, loc)
	}
}
