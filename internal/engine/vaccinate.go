package engine

import "github.com/GoSim-25-26J-441/sir-simulation/pkg/models"

// Source supplies uniform random values in [0, 1).
// *utils.RandSource satisfies it.
type Source interface {
	Float64() float64
}

// Vaccinate returns a copy of pop in which each susceptible person is
// vaccinated with probability effectiveness. One value is drawn per
// susceptible person, in position order.
func Vaccinate(pop models.Population, effectiveness float64, src Source) models.Population {
	out := pop.Clone()
	for i, p := range out {
		if !p.IsSusceptible() {
			continue
		}
		if src.Float64() < effectiveness {
			out[i] = models.Vaccinated
		}
	}
	return out
}
