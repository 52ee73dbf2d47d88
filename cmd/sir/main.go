// Command sir simulates an SIR epidemic spreading along a line of people.
//
//	sir [flags] CITY
//
// CITY is a comma-separated list of S, R, V and I<n> tokens, for example
// "S, I0, S". With --remote the experiment runs on a sird daemon over gRPC.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/GoSim-25-26J-441/sir-simulation/internal/engine"
	"github.com/GoSim-25-26J-441/sir-simulation/internal/report"
	"github.com/GoSim-25-26J-441/sir-simulation/internal/simd"
	"github.com/GoSim-25-26J-441/sir-simulation/pkg/config"
	"github.com/GoSim-25-26J-441/sir-simulation/pkg/logger"
	"github.com/GoSim-25-26J-441/sir-simulation/pkg/models"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

// seedFlag is an optional int64 flag; nil means no seed was given
type seedFlag struct {
	v *int64
}

func (s *seedFlag) String() string {
	if s.v == nil {
		return ""
	}
	return strconv.FormatInt(*s.v, 10)
}

func (s *seedFlag) Set(value string) error {
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return err
	}
	s.v = &n
	return nil
}

type options struct {
	daysContagious       int
	seed                 seedFlag
	vaccineEffectiveness float64
	numTrials            int
	taskType             string
	configPath           string
	chartPath            string
	logLevel             string
	remoteAddr           string
	summary              bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	var opts options
	fs := flag.NewFlagSet("sir", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: sir [flags] CITY")
		fs.PrintDefaults()
	}
	fs.IntVar(&opts.daysContagious, "days-contagious", config.DefaultDaysContagious, "days an infected person stays contagious")
	fs.Var(&opts.seed, "random_seed", "seed for the vaccination draws (default: random)")
	fs.Float64Var(&opts.vaccineEffectiveness, "vaccine-effectiveness", 0.0, "probability that a susceptible person is vaccinated")
	fs.IntVar(&opts.numTrials, "num-trials", config.DefaultNumTrials, "number of trials for --task-type average")
	fs.StringVar(&opts.taskType, "task-type", string(models.TaskSingle), "single or average")
	fs.StringVar(&opts.configPath, "config", "", "path to a YAML config file with an experiment section")
	fs.StringVar(&opts.chartPath, "chart", "", "write a PNG chart of the daily counts (single task only)")
	fs.StringVar(&opts.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	fs.StringVar(&opts.remoteAddr, "remote", "", "run on a sird daemon at this gRPC address")
	fs.BoolVar(&opts.summary, "summary", false, "print trial statistics after the average")

	positional, err := parseInterleaved(fs, args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	exp := config.Experiment{
		DaysContagious: config.Int(config.DefaultDaysContagious),
		NumTrials:      config.Int(config.DefaultNumTrials),
		TaskType:       models.TaskSingle,
	}
	if opts.configPath != "" {
		cfg, err := config.LoadConfig(opts.configPath)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitFailure
		}
		if cfg.Experiment != nil {
			exp = *cfg.Experiment
		}
		if !set["log-level"] {
			opts.logLevel = cfg.LogLevel
		}
	}
	logger.SetDefault(logger.NewText(opts.logLevel, stderr))

	switch len(positional) {
	case 0:
		if exp.City == "" {
			fmt.Fprintln(stderr, "Error: missing argument CITY")
			fs.Usage()
			return exitUsage
		}
	case 1:
		exp.City = positional[0]
	default:
		fmt.Fprintf(stderr, "Error: got unexpected extra arguments %q\n", positional[1:])
		return exitUsage
	}
	applyFlags(&exp, &opts, set)

	if err := config.ValidateExperiment(&exp); err != nil {
		if errors.Is(err, models.ErrInvalidToken) {
			fmt.Fprintln(stdout, report.InvalidCityMessage)
			return exitFailure
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}
	if opts.chartPath != "" && exp.TaskType != models.TaskSingle {
		fmt.Fprintln(stderr, "Error: --chart requires --task-type single")
		return exitUsage
	}

	var out outcome
	if opts.remoteAddr != "" {
		out, err = runRemote(ctx, opts.remoteAddr, &exp)
	} else {
		out, err = runLocal(&exp, opts.chartPath != "")
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitFailure
	}

	if err := writeOutcome(stdout, &exp, out, opts.summary); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitFailure
	}
	if opts.chartPath != "" {
		if err := writeChart(opts.chartPath, out.result); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitFailure
		}
		logger.Info("chart written", "path", opts.chartPath)
	}
	return exitOK
}

// parseInterleaved lets flags appear before or after CITY
func parseInterleaved(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		args = fs.Args()
		if len(args) == 0 {
			return positional, nil
		}
		positional = append(positional, args[0])
		args = args[1:]
	}
}

func applyFlags(exp *config.Experiment, opts *options, set map[string]bool) {
	if set["days-contagious"] || opts.configPath == "" {
		exp.DaysContagious = config.Int(opts.daysContagious)
	}
	if set["random_seed"] {
		exp.RandomSeed = opts.seed.v
	}
	if set["vaccine-effectiveness"] || opts.configPath == "" {
		exp.VaccineEffectiveness = opts.vaccineEffectiveness
	}
	if set["num-trials"] || opts.configPath == "" {
		exp.NumTrials = config.Int(opts.numTrials)
	}
	if set["task-type"] || opts.configPath == "" {
		exp.TaskType = models.TaskType(opts.taskType)
	}
}

type outcome struct {
	result  *models.Result
	summary *models.TrialSummary
}

func runLocal(exp *config.Experiment, recordHistory bool) (outcome, error) {
	pop, err := exp.Population()
	if err != nil {
		return outcome{}, err
	}
	sim, err := engine.NewSimulator(engine.Params{
		DaysContagious:       *exp.DaysContagious,
		Seed:                 exp.RandomSeed,
		VaccineEffectiveness: exp.VaccineEffectiveness,
	})
	if err != nil {
		return outcome{}, err
	}
	sim.SetLogger(logger.Default)
	if logger.Default.Enabled(context.Background(), slog.LevelDebug) {
		sim.SetObserver(func(day int, pop models.Population) {
			logger.Debug("day simulated", "day", day, "city", pop.String(), "infected", engine.CountInfected(pop))
		})
	}

	if exp.TaskType == models.TaskAverage {
		summary, err := sim.RunTrials(pop, *exp.NumTrials)
		if err != nil {
			return outcome{}, err
		}
		return outcome{summary: summary}, nil
	}
	sim.SetRecordHistory(recordHistory)
	return outcome{result: sim.Run(pop)}, nil
}

func runRemote(ctx context.Context, addr string, exp *config.Experiment) (outcome, error) {
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return outcome{}, fmt.Errorf("failed to connect to %s: %w", addr, err)
	}
	defer conn.Close()

	req, err := simd.ToStruct(map[string]any{"input": simd.RunInput{Experiment: *exp}})
	if err != nil {
		return outcome{}, err
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	resp, err := simd.NewSimulationClient(conn).RunSimulation(ctx, req)
	if err != nil {
		return outcome{}, fmt.Errorf("remote run failed: %w", err)
	}
	var reply struct {
		Run struct {
			ID      string               `json:"id"`
			Status  models.RunStatus     `json:"status"`
			Error   string               `json:"error"`
			Result  *models.Result       `json:"result"`
			Summary *models.TrialSummary `json:"summary"`
		} `json:"run"`
	}
	if err := simd.FromStruct(resp, &reply); err != nil {
		return outcome{}, err
	}
	if reply.Run.Status != models.RunStatusCompleted {
		return outcome{}, fmt.Errorf("run %s %s: %s", reply.Run.ID, reply.Run.Status, reply.Run.Error)
	}
	logger.Info("remote run completed", "run_id", reply.Run.ID, "addr", addr)
	return outcome{result: reply.Run.Result, summary: reply.Run.Summary}, nil
}

func writeOutcome(w io.Writer, exp *config.Experiment, out outcome, withSummary bool) error {
	if exp.TaskType == models.TaskAverage {
		if out.summary == nil {
			return errors.New("missing trial summary")
		}
		if withSummary {
			return report.WriteSummary(w, out.summary)
		}
		return report.WriteAverage(w, out.summary.NumTrials, out.summary.AverageDays)
	}
	if out.result == nil {
		return errors.New("missing simulation result")
	}
	return report.WriteSingle(w, out.result)
}

func writeChart(path string, res *models.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create chart file: %w", err)
	}
	if err := report.RenderChart(f, res.History); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
