package engine

import "github.com/GoSim-25-26J-441/sir-simulation/pkg/models"

// Advance computes the next-day state of the person at position.
// Neighbor lookups read pop, which must be the pre-advance snapshot.
func Advance(pop models.Population, position, daysContagious int) models.Person {
	p := pop[position]
	switch {
	case p.IsInfected():
		if d := p.DaysInfected() + 1; d < daysContagious {
			return models.Infected(d)
		}
		return models.Recovered
	case p.IsSusceptible() && infectedNeighbor(pop, position):
		return models.Infected(0)
	default:
		return p
	}
}

// AdvanceDay returns the population one day later. Every position is
// advanced from the same input snapshot; pop is not modified.
func AdvanceDay(pop models.Population, daysContagious int) models.Population {
	next := make(models.Population, len(pop))
	for i := range pop {
		next[i] = Advance(pop, i, daysContagious)
	}
	return next
}
