package domain

import (
	"errors"
	"testing"
)

func TestParseCategory(t *testing.T) {
	tests := []struct {
		input   string
		want    Category
		wantErr bool
	}{
		{input: "software", want: CategorySoftware},
		{input: "Power", want: CategoryPower},
		{input: " TELECOM ", want: CategoryTelecom},
		{input: "electronics & control", want: CategoryElectronicsControl},
		{input: "electronics_control", want: CategoryElectronicsControl},
		{input: "Electronics-Control", want: CategoryElectronicsControl},
		{input: "", wantErr: true},
		{input: "mechanical", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseCategory(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidCategory) {
					t.Fatalf("ParseCategory(%q) error = %v, want ErrInvalidCategory", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseCategory(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseCategory(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestCategoryCodesAreStable(t *testing.T) {
	want := map[Category]int{
		CategorySoftware:           0,
		CategoryPower:              1,
		CategoryTelecom:            2,
		CategoryElectronicsControl: 3,
	}
	for c, code := range want {
		if c.Code() != code {
			t.Errorf("%v.Code() = %d, want %d", c, c.Code(), code)
		}
		back, err := CategoryFromCode(code)
		if err != nil || back != c {
			t.Errorf("CategoryFromCode(%d) = (%v, %v), want %v", code, back, err, c)
		}
	}
	if len(Categories()) != len(want) {
		t.Errorf("Categories() has %d entries, want %d", len(Categories()), len(want))
	}
}

func TestCategoryFromCode_Invalid(t *testing.T) {
	for _, code := range []int{-1, 4, 99} {
		if _, err := CategoryFromCode(code); !errors.Is(err, ErrInvalidCategory) {
			t.Errorf("CategoryFromCode(%d) error = %v, want ErrInvalidCategory", code, err)
		}
	}
}

func TestCategoryStringRoundTrip(t *testing.T) {
	for _, c := range Categories() {
		got, err := ParseCategory(c.String())
		if err != nil || got != c {
			t.Errorf("ParseCategory(%q) = (%v, %v), want %v", c.String(), got, err, c)
		}
	}
	if Category(7).String() != "category(7)" {
		t.Errorf("unexpected String() for invalid category: %s", Category(7))
	}
}
