package engine

import "github.com/GoSim-25-26J-441/sir-simulation/pkg/models"

// IsInfected reports whether the state is Infected(_)
func IsInfected(p models.Person) bool {
	return p.IsInfected()
}

// CountInfected returns the number of currently infected people
func CountInfected(pop models.Population) int {
	n := 0
	for _, p := range pop {
		if p.IsInfected() {
			n++
		}
	}
	return n
}
