package engine

import (
	"fmt"
	"math"
)

// Params holds the parameters of a simulation run
type Params struct {
	// DaysContagious is the number of days a person stays infected.
	DaysContagious int
	// Seed makes runs reproducible. Nil means a fresh entropy seed.
	Seed *int64
	// VaccineEffectiveness is the probability a susceptible person is vaccinated.
	VaccineEffectiveness float64
}

// Validate rejects parameters a simulation cannot run with
func (p Params) Validate() error {
	if p.DaysContagious <= 0 {
		return fmt.Errorf("%w: days_contagious must be positive, got %d", ErrInvalidArgument, p.DaysContagious)
	}
	if math.IsNaN(p.VaccineEffectiveness) || p.VaccineEffectiveness < 0 || p.VaccineEffectiveness > 1 {
		return fmt.Errorf("%w: vaccine_effectiveness must be between 0 and 1, got %v", ErrInvalidArgument, p.VaccineEffectiveness)
	}
	return nil
}

// Seed returns a pointer to v, for filling Params.Seed
func Seed(v int64) *int64 {
	return &v
}
