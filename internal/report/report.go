// Package report renders simulation outcomes for people: the command line
// text and the epidemic curve chart.
package report

import (
	"fmt"
	"io"

	"github.com/GoSim-25-26J-441/sir-simulation/pkg/models"
)

// InvalidCityMessage is printed when a city contains an unknown token
const InvalidCityMessage = "Error: people in the city must be susceptible ('S'), " +
	"recovered ('R'), vaccinated ('V'), or infected ('Ix', where *x* is an integer)"

// WriteSingle prints the outcome of one simulation
func WriteSingle(w io.Writer, res *models.Result) error {
	_, err := fmt.Fprintf(w, "Running one simulation...\nFinal city: %s\nDays simulated: %d\n",
		res.FinalPopulation, res.DaysSimulated)
	return err
}

// WriteAverage prints the trial average with one decimal place
func WriteAverage(w io.Writer, numTrials int, averageDays float64) error {
	_, err := fmt.Fprintf(w, "Running multiple trials...\n"+
		"Over %d trial(s), on average, it took %3.1f days for the number of infections to reach zero\n",
		numTrials, averageDays)
	return err
}

// WriteSummary prints the spread of trial outcomes after the average line
func WriteSummary(w io.Writer, s *models.TrialSummary) error {
	if err := WriteAverage(w, s.NumTrials, s.AverageDays); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Base seed: %d, std dev: %.2f, median: %.1f, min: %d, max: %d\n",
		s.BaseSeed, s.StdDevDays, s.MedianDays, s.MinDays, s.MaxDays)
	return err
}
