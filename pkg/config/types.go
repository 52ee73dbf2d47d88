package config

import "github.com/GoSim-25-26J-441/sir-simulation/pkg/models"

const (
	DefaultDaysContagious = 2
	DefaultNumTrials      = 1
	DefaultGRPCAddr       = ":50051"
	DefaultHTTPAddr       = ":8080"

	// MaxSeed bounds |random_seed| to the integers a JSON number (and a
	// protobuf Struct value) carries exactly
	MaxSeed = 1 << 53
)

// Config represents a configuration file for the CLI or the daemon
type Config struct {
	LogLevel   string      `yaml:"log_level"`
	LogFormat  string      `yaml:"log_format,omitempty"` // json or text
	Experiment *Experiment `yaml:"experiment,omitempty"`
	Server     *Server     `yaml:"server,omitempty"`
}

// Experiment describes one simulation request: the city and its parameters
type Experiment struct {
	City                 string          `yaml:"city" json:"city"`
	DaysContagious       *int            `yaml:"days_contagious,omitempty" json:"days_contagious,omitempty"`
	RandomSeed           *int64          `yaml:"random_seed,omitempty" json:"random_seed,omitempty"`
	VaccineEffectiveness float64         `yaml:"vaccine_effectiveness" json:"vaccine_effectiveness"`
	NumTrials            *int            `yaml:"num_trials,omitempty" json:"num_trials,omitempty"`
	TaskType             models.TaskType `yaml:"task_type" json:"task_type"` // single or average
}

// Server holds daemon listen addresses
type Server struct {
	GRPCAddr string `yaml:"grpc_addr"`
	HTTPAddr string `yaml:"http_addr"`
}

// Int returns a pointer to v, for filling optional Experiment fields
func Int(v int) *int {
	return &v
}

// ApplyDefaults fills absent fields with the defaults of the command line
// tool. An explicit zero is kept so validation can reject it.
func (e *Experiment) ApplyDefaults() {
	if e.DaysContagious == nil {
		e.DaysContagious = Int(DefaultDaysContagious)
	}
	if e.NumTrials == nil {
		e.NumTrials = Int(DefaultNumTrials)
	}
	if e.TaskType == "" {
		e.TaskType = models.TaskSingle
	}
}

// Population parses the experiment city
func (e *Experiment) Population() (models.Population, error) {
	return models.ParsePopulation(e.City)
}

// ApplyDefaults fills empty listen addresses
func (s *Server) ApplyDefaults() {
	if s.GRPCAddr == "" {
		s.GRPCAddr = DefaultGRPCAddr
	}
	if s.HTTPAddr == "" {
		s.HTTPAddr = DefaultHTTPAddr
	}
}

// ApplyDefaults fills defaults in the config and its sections
func (c *Config) ApplyDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.LogFormat == "" {
		c.LogFormat = "json"
	}
	if c.Experiment != nil {
		c.Experiment.ApplyDefaults()
	}
	if c.Server == nil {
		c.Server = &Server{}
	}
	c.Server.ApplyDefaults()
}
