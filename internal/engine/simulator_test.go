package engine

import (
	"bytes"
	"strings"
	"testing"

	"github.com/GoSim-25-26J-441/sir-simulation/pkg/logger"
	"github.com/GoSim-25-26J-441/sir-simulation/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSimulator(t *testing.T, params Params) *Simulator {
	t.Helper()
	sim, err := NewSimulator(params)
	require.NoError(t, err)
	return sim
}

func TestRunSpreadsAndRecovers(t *testing.T) {
	sim := newTestSimulator(t, Params{DaysContagious: 2, Seed: Seed(20170217)})

	var days []models.Population
	sim.SetObserver(func(day int, pop models.Population) {
		assert.Equal(t, len(days), day)
		days = append(days, pop.Clone())
	})

	res := sim.Run(models.MustParsePopulation("S, I0, S"))

	require.Len(t, days, 4)
	assert.Equal(t, models.Population{S, I0, S}, days[0])
	assert.Equal(t, models.Population{I0, I1, I0}, days[1])
	assert.Equal(t, models.Population{I1, R, I1}, days[2])
	assert.Equal(t, models.Population{R, R, R}, days[3])
	assert.Equal(t, 3, res.DaysSimulated)
	assert.Equal(t, models.Population{R, R, R}, res.FinalPopulation)
	assert.Equal(t, int64(20170217), res.Seed)
}

func TestRunSingleInfectedRecovers(t *testing.T) {
	final, days, err := Run(models.Population{I0}, 1, Seed(1), 0)
	require.NoError(t, err)
	assert.Equal(t, models.Population{R}, final)
	assert.Equal(t, 1, days)
}

func TestRunWithoutInfectionReturnsImmediately(t *testing.T) {
	for _, eff := range []float64{0, 0.3, 0.8, 1} {
		final, days, err := Run(models.MustParsePopulation("S, S, S"), 2, Seed(7), eff)
		require.NoError(t, err)
		assert.Equal(t, 0, days)
		require.Len(t, final, 3)
		for _, p := range final {
			assert.Contains(t, []models.Person{S, V}, p)
		}
	}

	final, days, err := Run(models.Population{R, V, S}, 3, Seed(7), 0)
	require.NoError(t, err)
	assert.Equal(t, 0, days)
	assert.Equal(t, models.Population{R, V, S}, final)
}

func TestRunFullVaccinationBlocksSpread(t *testing.T) {
	final, days, err := Run(models.Population{S, I0}, 1, Seed(3), 1.0)
	require.NoError(t, err)
	assert.Equal(t, models.Population{V, R}, final)
	assert.Equal(t, 1, days)
}

func TestRunEmptyPopulation(t *testing.T) {
	final, days, err := Run(models.Population{}, 2, nil, 0.5)
	require.NoError(t, err)
	assert.Empty(t, final)
	assert.Equal(t, 0, days)
}

func TestRunDoesNotModifyInput(t *testing.T) {
	initial := models.MustParsePopulation("S, S, I0, S, S")
	snapshot := initial.Clone()

	_, _, err := Run(initial, 2, Seed(11), 0.5)
	require.NoError(t, err)
	assert.Equal(t, snapshot, initial)
}

func TestRunIsDeterministic(t *testing.T) {
	initial := models.MustParsePopulation("S, S, S, S, I0, S, S, S, S, S, I1, S, S, S, S")

	final1, days1, err := Run(initial, 3, Seed(42), 0.5)
	require.NoError(t, err)
	final2, days2, err := Run(initial, 3, Seed(42), 0.5)
	require.NoError(t, err)

	assert.Equal(t, final1, final2)
	assert.Equal(t, days1, days2)
}

func TestRunWithSourceUsesInjectedDraws(t *testing.T) {
	sim := newTestSimulator(t, Params{DaysContagious: 1, VaccineEffectiveness: 0.5})
	src := &sequenceSource{values: []float64{0.9, 0.1}}

	res := sim.RunWithSource(models.Population{S, I0, S}, src)

	// Left neighbor draws 0.9 and stays susceptible, right draws 0.1 and is vaccinated.
	assert.Equal(t, models.Population{R, R, V}, res.FinalPopulation)
	assert.Equal(t, 2, res.DaysSimulated)
	assert.Equal(t, int64(0), res.Seed)
}

func TestRunRecordsHistory(t *testing.T) {
	sim := newTestSimulator(t, Params{DaysContagious: 2, Seed: Seed(1)})
	sim.SetRecordHistory(true)

	res := sim.Run(models.MustParsePopulation("S, I0, S, V"))

	require.Len(t, res.History, res.DaysSimulated+1)
	assert.Equal(t, models.DayCounts{Day: 0, Susceptible: 2, Infected: 1, Vaccinated: 1}, res.History[0])
	last := res.History[len(res.History)-1]
	assert.Equal(t, res.DaysSimulated, last.Day)
	assert.Equal(t, 0, last.Infected)
	assert.Equal(t, 3, last.Recovered)
}

func TestRunWithoutSeedReportsReplayableSeed(t *testing.T) {
	sim := newTestSimulator(t, Params{DaysContagious: 2, VaccineEffectiveness: 0.5})
	initial := models.MustParsePopulation("S, S, S, I0, S, S, S, S, I0, S")

	res := sim.Run(initial)

	replay := newTestSimulator(t, Params{DaysContagious: 2, VaccineEffectiveness: 0.5, Seed: Seed(res.Seed)})
	again := replay.Run(initial)
	assert.Equal(t, res.FinalPopulation, again.FinalPopulation)
	assert.Equal(t, res.DaysSimulated, again.DaysSimulated)
}

func TestSimulatorLogs(t *testing.T) {
	var buf bytes.Buffer
	sim := newTestSimulator(t, Params{DaysContagious: 2, Seed: Seed(5)})
	sim.SetLogger(logger.New("debug", &buf))

	sim.Run(models.Population{S, I0})

	out := buf.String()
	assert.True(t, strings.Contains(out, "simulation started"), out)
	assert.Contains(t, out, `"days_simulated":3`)
}
