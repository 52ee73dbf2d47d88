package models

import (
	"time"
)

// RunStatus represents the status of a simulation run
type RunStatus string

const (
	RunStatusPending   RunStatus = "pending"
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
)

// IsTerminal reports whether the status can no longer change
func (s RunStatus) IsTerminal() bool {
	return s == RunStatusCompleted || s == RunStatusFailed
}

// TaskType selects between a single simulation and trial averaging
type TaskType string

const (
	TaskSingle  TaskType = "single"
	TaskAverage TaskType = "average"
)

// DayCounts is the number of people in each health state on one day
type DayCounts struct {
	Day         int `json:"day"`
	Susceptible int `json:"susceptible"`
	Infected    int `json:"infected"`
	Recovered   int `json:"recovered"`
	Vaccinated  int `json:"vaccinated"`
}

// Result is the outcome of a single simulation run
type Result struct {
	FinalPopulation Population  `json:"final_population"`
	DaysSimulated   int         `json:"days_simulated"`
	Seed            int64       `json:"seed"`
	History         []DayCounts `json:"history,omitempty"`
}

// TrialSummary aggregates the day counts of repeated runs
type TrialSummary struct {
	NumTrials   int     `json:"num_trials"`
	BaseSeed    int64   `json:"base_seed"`
	Days        []int   `json:"days"`
	AverageDays float64 `json:"average_days"`
	StdDevDays  float64 `json:"stddev_days"`
	MedianDays  float64 `json:"median_days"`
	MinDays     int     `json:"min_days"`
	MaxDays     int     `json:"max_days"`
}

// Run represents a simulation run held by the daemon
type Run struct {
	ID        string        `json:"id"`
	Status    RunStatus     `json:"status"`
	TaskType  TaskType      `json:"task_type"`
	CreatedAt time.Time     `json:"created_at"`
	StartTime time.Time     `json:"start_time,omitempty"`
	EndTime   time.Time     `json:"end_time,omitempty"`
	Duration  time.Duration `json:"duration,omitempty"`
	Result    *Result       `json:"result,omitempty"`
	Summary   *TrialSummary `json:"summary,omitempty"`
	Error     string        `json:"error,omitempty"`
}
