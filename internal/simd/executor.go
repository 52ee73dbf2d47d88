package simd

import (
	"context"
	"errors"
	"fmt"

	"github.com/GoSim-25-26J-441/sir-simulation/internal/engine"
	"github.com/GoSim-25-26J-441/sir-simulation/pkg/config"
	"github.com/GoSim-25-26J-441/sir-simulation/pkg/logger"
	"github.com/GoSim-25-26J-441/sir-simulation/pkg/models"
)

var (
	ErrRunNotFound  = errors.New("run not found")
	ErrRunExists    = errors.New("run already exists")
	ErrRunIDMissing = errors.New("run_id is required")
	ErrInvalidInput = errors.New("invalid input")
)

// RunInput is the payload of a run request. Either the inline experiment
// fields or ExperimentYAML describe the experiment; the YAML wins when set.
type RunInput struct {
	config.Experiment
	ExperimentYAML string `json:"experiment_yaml,omitempty"`
	CallbackURL    string `json:"callback_url,omitempty"`
	CallbackSecret string `json:"callback_secret,omitempty"`
}

// Resolve returns the validated experiment described by the input
func (in *RunInput) Resolve() (*config.Experiment, error) {
	if in.ExperimentYAML != "" {
		exp, err := config.ParseExperimentYAMLString(in.ExperimentYAML)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return exp, nil
	}

	exp := in.Experiment
	exp.ApplyDefaults()
	if err := config.ValidateExperiment(&exp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return &exp, nil
}

// RunExecutor validates run requests, executes them and records the outcome.
type RunExecutor struct {
	store    *RunStore
	notifier *Notifier
}

func NewRunExecutor(store *RunStore) *RunExecutor {
	return &RunExecutor{
		store: store,
	}
}

// SetNotifier enables completion callbacks for inputs carrying a callback URL
func (e *RunExecutor) SetNotifier(n *Notifier) {
	e.notifier = n
}

// Execute runs the experiment synchronously under runID (generated when
// empty) and returns the terminal record. Invalid input is rejected before a
// record is created.
func (e *RunExecutor) Execute(ctx context.Context, runID string, input *RunInput) (*RunRecord, error) {
	if input == nil {
		return nil, fmt.Errorf("%w: input is required", ErrInvalidInput)
	}
	exp, err := input.Resolve()
	if err != nil {
		return nil, err
	}
	pop, err := exp.Population()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	sim, err := engine.NewSimulator(engine.Params{
		DaysContagious:       *exp.DaysContagious,
		Seed:                 exp.RandomSeed,
		VaccineEffectiveness: exp.VaccineEffectiveness,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	rec, err := e.store.Create(runID, input, exp.TaskType)
	if err != nil {
		return nil, err
	}
	runID = rec.Run.ID
	log := logger.With("run_id", runID, "task_type", exp.TaskType)
	sim.SetLogger(log)

	if _, err := e.store.SetStatus(runID, models.RunStatusRunning, ""); err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return e.finish(runID, input, models.RunStatusFailed, fmt.Sprintf("cancelled before start: %v", err))
	}

	switch exp.TaskType {
	case models.TaskAverage:
		summary, err := sim.RunTrials(pop, *exp.NumTrials)
		if err != nil {
			log.Error("trials failed", "error", err)
			return e.finish(runID, input, models.RunStatusFailed, err.Error())
		}
		if err := e.store.SetOutcome(runID, nil, summary); err != nil {
			return nil, err
		}
		log.Info("run completed", "num_trials", summary.NumTrials, "average_days", summary.AverageDays)
	default:
		sim.SetRecordHistory(true)
		result := sim.Run(pop)
		if err := e.store.SetOutcome(runID, result, nil); err != nil {
			return nil, err
		}
		log.Info("run completed", "days_simulated", result.DaysSimulated, "seed", result.Seed)
	}

	return e.finish(runID, input, models.RunStatusCompleted, "")
}

func (e *RunExecutor) finish(runID string, input *RunInput, status models.RunStatus, errMsg string) (*RunRecord, error) {
	rec, err := e.store.SetStatus(runID, status, errMsg)
	if err != nil {
		return nil, err
	}
	if e.notifier != nil && input.CallbackURL != "" {
		e.notifier.Notify(input.CallbackURL, input.CallbackSecret, rec)
	}
	return rec, nil
}
