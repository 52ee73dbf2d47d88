package models

import (
	"fmt"
	"strings"
)

// Population is an ordered line of people. Adjacent positions are the only
// transmission path.
type Population []Person

// ParsePopulation parses a comma-separated city string such as "S, I0, R".
// Surrounding whitespace around each token is ignored.
func ParsePopulation(city string) (Population, error) {
	if strings.TrimSpace(city) == "" {
		return nil, fmt.Errorf("%w: empty city", ErrInvalidToken)
	}
	return ParseTokens(strings.Split(city, ","))
}

// ParseTokens parses one person per token
func ParseTokens(tokens []string) (Population, error) {
	pop := make(Population, 0, len(tokens))
	for i, tok := range tokens {
		p, err := ParsePerson(strings.TrimSpace(tok))
		if err != nil {
			return nil, fmt.Errorf("position %d: %w", i, err)
		}
		pop = append(pop, p)
	}
	return pop, nil
}

// MustParsePopulation is like ParsePopulation but panics on error.
// Intended for tests and literals.
func MustParsePopulation(city string) Population {
	pop, err := ParsePopulation(city)
	if err != nil {
		panic(err)
	}
	return pop
}

// Clone returns an independent copy of the population
func (p Population) Clone() Population {
	if p == nil {
		return nil
	}
	out := make(Population, len(p))
	copy(out, p)
	return out
}

// Tokens returns the token form of every person
func (p Population) Tokens() []string {
	out := make([]string, len(p))
	for i, person := range p {
		out[i] = person.String()
	}
	return out
}

// String formats the population the way the CLI prints a city: ['S', 'I0']
func (p Population) String() string {
	quoted := make([]string, len(p))
	for i, person := range p {
		quoted[i] = "'" + person.String() + "'"
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

// Counts tallies the population by health tag
func (p Population) Counts() DayCounts {
	var c DayCounts
	for _, person := range p {
		switch person.Health() {
		case HealthSusceptible:
			c.Susceptible++
		case HealthInfected:
			c.Infected++
		case HealthRecovered:
			c.Recovered++
		case HealthVaccinated:
			c.Vaccinated++
		}
	}
	return c
}

// Equal reports whether both populations hold the same states in order
func (p Population) Equal(other Population) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}
