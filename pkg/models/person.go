package models

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrInvalidArgument marks a value the caller should have rejected
	// before handing it to the simulation
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrInvalidToken is returned when a population token is not S, R, V or
	// I<n>. It wraps ErrInvalidArgument.
	ErrInvalidToken = fmt.Errorf("%w: invalid person token", ErrInvalidArgument)
)

// Health is the disease state tag of a person
type Health uint8

const (
	HealthSusceptible Health = iota
	HealthInfected
	HealthRecovered
	HealthVaccinated
)

// String returns the lower-case name of the health tag
func (h Health) String() string {
	switch h {
	case HealthSusceptible:
		return "susceptible"
	case HealthInfected:
		return "infected"
	case HealthRecovered:
		return "recovered"
	case HealthVaccinated:
		return "vaccinated"
	default:
		return "unknown"
	}
}

// Person is the state of one individual in the population.
// The zero value is Susceptible. Only infected persons carry a day count.
type Person struct {
	health Health
	days   int
}

var (
	Susceptible = Person{health: HealthSusceptible}
	Recovered   = Person{health: HealthRecovered}
	Vaccinated  = Person{health: HealthVaccinated}
)

// Infected returns an infected person that has been contagious for days days.
// Negative day counts are clamped to zero.
func Infected(days int) Person {
	if days < 0 {
		days = 0
	}
	return Person{health: HealthInfected, days: days}
}

// Health returns the state tag
func (p Person) Health() Health {
	return p.health
}

// DaysInfected returns the elapsed infectious days, zero unless infected
func (p Person) DaysInfected() int {
	return p.days
}

// IsInfected reports whether the person is currently contagious
func (p Person) IsInfected() bool {
	return p.health == HealthInfected
}

// IsSusceptible reports whether the person can still catch the disease
func (p Person) IsSusceptible() bool {
	return p.health == HealthSusceptible
}

// String returns the population token for the person: S, R, V or I<n>
func (p Person) String() string {
	switch p.health {
	case HealthInfected:
		return "I" + strconv.Itoa(p.days)
	case HealthRecovered:
		return "R"
	case HealthVaccinated:
		return "V"
	default:
		return "S"
	}
}

// ParsePerson parses a single population token.
func ParsePerson(token string) (Person, error) {
	switch token {
	case "S":
		return Susceptible, nil
	case "R":
		return Recovered, nil
	case "V":
		return Vaccinated, nil
	}

	digits, ok := strings.CutPrefix(token, "I")
	if !ok || digits == "" {
		return Person{}, fmt.Errorf("%w: %q", ErrInvalidToken, token)
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return Person{}, fmt.Errorf("%w: %q", ErrInvalidToken, token)
		}
	}
	days, err := strconv.Atoi(digits)
	if err != nil {
		return Person{}, fmt.Errorf("%w: %q: %v", ErrInvalidToken, token, err)
	}
	return Infected(days), nil
}

// MarshalText implements encoding.TextMarshaler
func (p Person) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (p *Person) UnmarshalText(text []byte) error {
	parsed, err := ParsePerson(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
