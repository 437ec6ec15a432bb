package domain

import (
	"fmt"
	"strings"
)

// Category groups projects. The integer values are the storage codes used by
// the local store and must never be renumbered.
type Category int

const (
	CategorySoftware Category = iota
	CategoryPower
	CategoryTelecom
	CategoryElectronicsControl
)

var categoryNames = [...]string{
	CategorySoftware:           "software",
	CategoryPower:              "power",
	CategoryTelecom:            "telecom",
	CategoryElectronicsControl: "electronics & control",
}

// Categories returns every category in code order.
func Categories() []Category {
	return []Category{
		CategorySoftware,
		CategoryPower,
		CategoryTelecom,
		CategoryElectronicsControl,
	}
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	return c >= CategorySoftware && c <= CategoryElectronicsControl
}

// String returns the backend wire name of the category.
func (c Category) String() string {
	if !c.Valid() {
		return fmt.Sprintf("category(%d)", int(c))
	}
	return categoryNames[c]
}

// Code returns the storage code.
func (c Category) Code() int {
	return int(c)
}

// ParseCategory parses a wire or command line category name.
func ParseCategory(s string) (Category, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	switch name {
	case "electronics_control", "electronics-control", "electronics and control":
		return CategoryElectronicsControl, nil
	}
	for _, c := range Categories() {
		if categoryNames[c] == name {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidCategory, s)
}

// CategoryFromCode converts a storage code back to a Category.
func CategoryFromCode(code int) (Category, error) {
	c := Category(code)
	if !c.Valid() {
		return 0, fmt.Errorf("%w: code %d", ErrInvalidCategory, code)
	}
	return c, nil
}
