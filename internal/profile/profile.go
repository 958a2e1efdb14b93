// Package profile validates the user details collected before an
// assessment and derives the age group used to label responses.
package profile

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Age bounds accepted on the profile screen.
const (
	MinAge = 1
	MaxAge = 120
)

var (
	ErrNameRequired = errors.New("please enter your name")
	ErrNameInvalid  = errors.New("name must contain only letters and spaces")
	ErrAgeInvalid   = fmt.Errorf("age must be a whole number between %d and %d", MinAge, MaxAge)
)

// Profile is the user context an assessment runs under.
type Profile struct {
	Name string
	Age  *int // nil when the user skipped it
}

// New validates raw name and age input and returns a Profile.
// An empty age string is allowed and leaves Age nil.
func New(name, age string) (Profile, error) {
	n, err := ValidateName(name)
	if err != nil {
		return Profile{}, err
	}
	a, err := ParseAge(age)
	if err != nil {
		return Profile{}, err
	}
	return Profile{Name: n, Age: a}, nil
}

// AgeGroup returns the bucket for p.Age.
func (p Profile) AgeGroup() string {
	return AgeGroup(p.Age)
}

// ValidateName trims name and checks it holds only letters and spaces.
func ValidateName(name string) (string, error) {
	name = strings.Join(strings.Fields(name), " ")
	if name == "" {
		return "", ErrNameRequired
	}
	for _, r := range name {
		if r != ' ' && !unicode.IsLetter(r) {
			return "", ErrNameInvalid
		}
	}
	return name, nil
}

// ParseAge parses an optional age. Blank input yields nil.
func ParseAge(s string) (*int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < MinAge || n > MaxAge {
		return nil, ErrAgeInvalid
	}
	return &n, nil
}

// AgeGroup buckets an age. A nil age is "unknown".
func AgeGroup(age *int) string {
	if age == nil {
		return "unknown"
	}
	switch a := *age; {
	case a < 13:
		return "under_13"
	case a < 18:
		return "13-17"
	case a < 26:
		return "18-25"
	case a < 36:
		return "26-35"
	case a < 51:
		return "36-50"
	case a < 66:
		return "51-65"
	default:
		return "65_plus"
	}
}
