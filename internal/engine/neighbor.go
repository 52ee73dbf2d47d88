package engine

import (
	"fmt"

	"github.com/GoSim-25-26J-441/sir-simulation/pkg/models"
)

// neighborRange clamps [pos-1, pos+1] to the valid indices of a line of n people.
func neighborRange(n, pos int) (lo, hi int) {
	return max(pos-1, 0), min(pos+1, n-1)
}

// infectedNeighbor reports whether a position adjacent to pos is infected.
// It does not check preconditions.
func infectedNeighbor(pop models.Population, pos int) bool {
	lo, hi := neighborRange(len(pop), pos)
	for i := lo; i <= hi; i++ {
		if i != pos && pop[i].IsInfected() {
			return true
		}
	}
	return false
}

// HasInfectedNeighbor reports whether either person next to position is
// infected. A line of one person has no neighbors. Otherwise the person at
// position must be susceptible.
func HasInfectedNeighbor(pop models.Population, position int) (bool, error) {
	if position < 0 || position >= len(pop) {
		return false, fmt.Errorf("%w: position %d out of range [0, %d)", ErrInvalidArgument, position, len(pop))
	}
	if len(pop) <= 1 {
		return false, nil
	}
	if !pop[position].IsSusceptible() {
		return false, fmt.Errorf("%w: person at position %d is %s, not susceptible",
			ErrInvalidArgument, position, pop[position].Health())
	}
	return infectedNeighbor(pop, position), nil
}
