package engine

import (
	"fmt"
	"math"
	"sort"

	"github.com/GoSim-25-26J-441/sir-simulation/pkg/models"
	"github.com/GoSim-25-26J-441/sir-simulation/pkg/utils"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// RunTrials runs the simulation numTrials times. Trial i is seeded with
// base+i, where base is the configured seed or, when none is configured, a
// single entropy seed drawn up front and reported in the summary.
// base+i wraps around past math.MaxInt64, so trial seeds stay distinct.
func (s *Simulator) RunTrials(initial models.Population, numTrials int) (*models.TrialSummary, error) {
	if numTrials <= 0 {
		return nil, fmt.Errorf("%w: num_trials must be positive, got %d", ErrInvalidArgument, numTrials)
	}

	var base int64
	if s.params.Seed != nil {
		base = *s.params.Seed
	} else {
		base = utils.EntropySeed()
		s.logger.Info("no random seed given, derived base seed for trials", "base_seed", base)
	}

	days := make([]int, numTrials)
	sum := 0
	for trial := 0; trial < numTrials; trial++ {
		res := s.run(initial, utils.NewRandSource(base+int64(trial)), false, nil)
		days[trial] = res.DaysSimulated
		sum += res.DaysSimulated
	}

	summary := summarize(days)
	summary.BaseSeed = base
	summary.AverageDays = float64(sum) / float64(numTrials)

	s.logger.Debug("trials completed",
		"num_trials", numTrials,
		"base_seed", base,
		"average_days", summary.AverageDays)
	return summary, nil
}

// AverageDaysToZero returns the mean number of days until no infections
// remain over numTrials runs with incrementing seeds.
func (s *Simulator) AverageDaysToZero(initial models.Population, numTrials int) (float64, error) {
	summary, err := s.RunTrials(initial, numTrials)
	if err != nil {
		return 0, err
	}
	return summary.AverageDays, nil
}

// AverageDaysToZero is the one-shot form of Simulator.AverageDaysToZero
func AverageDaysToZero(initial models.Population, daysContagious int, seed *int64, vaccineEffectiveness float64, numTrials int) (float64, error) {
	if numTrials <= 0 {
		return 0, fmt.Errorf("%w: num_trials must be positive, got %d", ErrInvalidArgument, numTrials)
	}
	sim, err := NewSimulator(Params{
		DaysContagious:       daysContagious,
		Seed:                 seed,
		VaccineEffectiveness: vaccineEffectiveness,
	})
	if err != nil {
		return 0, err
	}
	return sim.AverageDaysToZero(initial, numTrials)
}

func summarize(days []int) *models.TrialSummary {
	xs := make([]float64, len(days))
	for i, d := range days {
		xs[i] = float64(d)
	}

	_, std := stat.MeanStdDev(xs, nil)
	if len(xs) < 2 || math.IsNaN(std) {
		std = 0
	}

	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)

	return &models.TrialSummary{
		NumTrials:  len(days),
		Days:       days,
		StdDevDays: std,
		MedianDays: stat.Quantile(0.5, stat.Empirical, sorted, nil),
		MinDays:    int(floats.Min(xs)),
		MaxDays:    int(floats.Max(xs)),
	}
}
