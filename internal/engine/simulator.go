package engine

import (
	"log/slog"

	"github.com/GoSim-25-26J-441/sir-simulation/pkg/logger"
	"github.com/GoSim-25-26J-441/sir-simulation/pkg/models"
	"github.com/GoSim-25-26J-441/sir-simulation/pkg/utils"
)

// DayObserver is called with the population after vaccination (day 0) and
// after every simulated day. It must not retain or modify pop.
type DayObserver func(day int, pop models.Population)

// Simulator runs the line-of-people epidemic model for one set of Params
type Simulator struct {
	params        Params
	logger        *slog.Logger
	observer      DayObserver
	recordHistory bool
}

// NewSimulator validates params and creates a simulator
func NewSimulator(params Params) (*Simulator, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &Simulator{
		params: params,
		logger: logger.Default,
	}, nil
}

// SetLogger sets the simulator's logger
func (s *Simulator) SetLogger(l *slog.Logger) {
	s.logger = l
}

// SetObserver registers a callback invoked once per simulated day
func (s *Simulator) SetObserver(fn DayObserver) {
	s.observer = fn
}

// SetRecordHistory enables the per-day S/I/R/V counts in Result.History
func (s *Simulator) SetRecordHistory(enabled bool) {
	s.recordHistory = enabled
}

// Params returns the simulator parameters
func (s *Simulator) Params() Params {
	return s.params
}

// newSource builds the random source for a single run
func (s *Simulator) newSource() *utils.RandSource {
	if s.params.Seed != nil {
		return utils.NewRandSource(*s.params.Seed)
	}
	return utils.NewEntropySource()
}

// Run seeds a random source from the params, vaccinates initial once and
// advances days until nobody is infected.
func (s *Simulator) Run(initial models.Population) *models.Result {
	return s.RunWithSource(initial, s.newSource())
}

// RunWithSource is Run with an explicit random source
func (s *Simulator) RunWithSource(initial models.Population, src Source) *models.Result {
	return s.run(initial, src, s.recordHistory, s.observer)
}

func (s *Simulator) run(initial models.Population, src Source, record bool, observe DayObserver) *models.Result {
	res := &models.Result{}
	if seeded, ok := src.(interface{ Seed() int64 }); ok {
		res.Seed = seeded.Seed()
	}

	current := Vaccinate(initial, s.params.VaccineEffectiveness, src)
	days := 0
	s.logger.Debug("simulation started",
		"size", len(current),
		"days_contagious", s.params.DaysContagious,
		"vaccine_effectiveness", s.params.VaccineEffectiveness,
		"seed", res.Seed,
		"infected", CountInfected(current))

	step := func() {
		if record {
			counts := current.Counts()
			counts.Day = days
			res.History = append(res.History, counts)
		}
		if observe != nil {
			observe(days, current)
		}
	}

	step()
	for CountInfected(current) > 0 {
		current = AdvanceDay(current, s.params.DaysContagious)
		days++
		step()
	}

	res.FinalPopulation = current
	res.DaysSimulated = days
	s.logger.Debug("simulation completed", "days_simulated", days, "seed", res.Seed)
	return res
}

// Run is the one-shot form of Simulator.Run. It returns the final population
// and the number of days simulated.
func Run(initial models.Population, daysContagious int, seed *int64, vaccineEffectiveness float64) (models.Population, int, error) {
	sim, err := NewSimulator(Params{
		DaysContagious:       daysContagious,
		Seed:                 seed,
		VaccineEffectiveness: vaccineEffectiveness,
	})
	if err != nil {
		return nil, 0, err
	}
	res := sim.Run(initial)
	return res.FinalPopulation, res.DaysSimulated, nil
}
