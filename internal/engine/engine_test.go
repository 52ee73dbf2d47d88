package engine

import (
	"errors"
	"math"
	"testing"

	"github.com/GoSim-25-26J-441/sir-simulation/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	S  = models.Susceptible
	R  = models.Recovered
	V  = models.Vaccinated
	I0 = models.Infected(0)
	I1 = models.Infected(1)
	I2 = models.Infected(2)
)

// sequenceSource replays a fixed list of values and counts draws
type sequenceSource struct {
	values []float64
	calls  int
}

func (s *sequenceSource) Float64() float64 {
	v := s.values[s.calls%len(s.values)]
	s.calls++
	return v
}

func TestCountInfected(t *testing.T) {
	tests := []struct {
		name string
		pop  models.Population
		want int
	}{
		{"empty", nil, 0},
		{"no infections", models.Population{S, R, V}, 0},
		{"mixed", models.Population{I0, S, I2, R, I1}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CountInfected(tt.pop))
		})
	}

	assert.True(t, IsInfected(I2))
	assert.False(t, IsInfected(V))
}

func TestHasInfectedNeighbor(t *testing.T) {
	tests := []struct {
		name string
		pop  models.Population
		pos  int
		want bool
	}{
		{"first position checks only right", models.Population{S, I0, S}, 0, true},
		{"first position ignores far right", models.Population{S, S, I0}, 0, false},
		{"last position checks only left", models.Population{S, I1, S}, 2, true},
		{"last position ignores far left", models.Population{I0, S, S}, 2, false},
		{"interior left neighbor", models.Population{I0, S, S}, 1, true},
		{"interior right neighbor", models.Population{S, S, I0}, 1, true},
		{"interior no neighbor", models.Population{R, S, V}, 1, false},
		{"singleton", models.Population{S}, 0, false},
		{"pair", models.Population{I0, S}, 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := HasInfectedNeighbor(tt.pop, tt.pos)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHasInfectedNeighborSingletonAnyState(t *testing.T) {
	for _, p := range []models.Person{S, I0, R, V} {
		got, err := HasInfectedNeighbor(models.Population{p}, 0)
		require.NoError(t, err)
		assert.False(t, got, "singleton %s", p)
	}
}

func TestHasInfectedNeighborPreconditions(t *testing.T) {
	_, err := HasInfectedNeighbor(models.Population{S, I0}, 1)
	assert.True(t, errors.Is(err, ErrInvalidArgument), "non-susceptible position: %v", err)

	_, err = HasInfectedNeighbor(models.Population{S, I0}, 2)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = HasInfectedNeighbor(models.Population{S, I0}, -1)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = HasInfectedNeighbor(nil, 0)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestMalformedTokenIsInvalidArgument(t *testing.T) {
	_, err := models.ParsePopulation("S, I0, Q")
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.ErrorIs(t, err, models.ErrInvalidToken)

	_, err = models.ParsePerson("I-3")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestAdvance(t *testing.T) {
	tests := []struct {
		name           string
		pop            models.Population
		pos            int
		daysContagious int
		want           models.Person
	}{
		{"infected keeps counting", models.Population{I0}, 0, 3, I1},
		{"infected recovers on last day", models.Population{I1}, 0, 2, R},
		{"infected with one contagious day recovers", models.Population{I0}, 0, 1, R},
		{"over-long infection recovers", models.Population{models.Infected(7)}, 0, 2, R},
		{"susceptible next to infected", models.Population{S, I1}, 0, 3, I0},
		{"susceptible alone stays", models.Population{S, R, I0}, 0, 3, S},
		{"recovered unchanged", models.Population{R, I0}, 0, 3, R},
		{"vaccinated unchanged", models.Population{I0, V, I0}, 1, 3, V},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Advance(tt.pop, tt.pos, tt.daysContagious))
		})
	}
}

func TestAdvanceDayIsSimultaneous(t *testing.T) {
	pop := models.Population{I0, S, S}
	snapshot := pop.Clone()

	next := AdvanceDay(pop, 3)

	assert.Equal(t, models.Population{I1, I0, S}, next, "infection must not travel two positions in one day")
	assert.Equal(t, snapshot, pop, "input population must not be modified")
}

func TestAdvanceDayRecoveryDoesNotShieldSameDay(t *testing.T) {
	// The infected person recovers today but still infects from today's snapshot.
	next := AdvanceDay(models.Population{S, I0, S}, 1)
	assert.Equal(t, models.Population{I0, R, I0}, next)
}

func TestVaccinate(t *testing.T) {
	pop := models.Population{S, I0, S, R, S, V}
	src := &sequenceSource{values: []float64{0.1, 0.9, 0.3}}

	out := Vaccinate(pop, 0.5, src)

	assert.Equal(t, models.Population{V, I0, S, R, V, V}, out)
	assert.Equal(t, 3, src.calls, "one draw per susceptible person")
	assert.Equal(t, models.Population{S, I0, S, R, S, V}, pop)
}

func TestVaccinateBounds(t *testing.T) {
	pop := models.Population{S, S, I0, S}

	none := Vaccinate(pop, 0.0, &sequenceSource{values: []float64{0}})
	assert.Equal(t, pop, none, "a draw of 0 is never below effectiveness 0")

	all := Vaccinate(pop, 1.0, &sequenceSource{values: []float64{0.999999}})
	assert.Equal(t, models.Population{V, V, I0, V}, all)
}

func TestParamsValidate(t *testing.T) {
	tests := []struct {
		name    string
		params  Params
		wantErr bool
	}{
		{"valid", Params{DaysContagious: 2}, false},
		{"valid bounds", Params{DaysContagious: 1, VaccineEffectiveness: 1}, false},
		{"zero days", Params{DaysContagious: 0}, true},
		{"negative days", Params{DaysContagious: -3}, true},
		{"negative effectiveness", Params{DaysContagious: 2, VaccineEffectiveness: -0.1}, true},
		{"effectiveness above one", Params{DaysContagious: 2, VaccineEffectiveness: 1.5}, true},
		{"NaN effectiveness", Params{DaysContagious: 2, VaccineEffectiveness: math.NaN()}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidArgument)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewSimulatorRejectsInvalidParams(t *testing.T) {
	sim, err := NewSimulator(Params{DaysContagious: 0})
	assert.Nil(t, sim)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, _, err = Run(models.Population{I0}, 0, nil, 0)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}
