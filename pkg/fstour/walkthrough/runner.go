package walkthrough

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/fstour/pkg/fstour"
	"github.com/arthur-debert/fstour/pkg/fstour/config"
	"github.com/arthur-debert/fstour/pkg/fstour/core"
	"github.com/arthur-debert/fstour/pkg/fstour/filesystem"
)

// Tour is what a step sees: the filesystem, the configuration, the output
// writer and a logger tagged with the run and step.
type Tour struct {
	FS     filesystem.FullFileSystem
	Config config.Config
	Out    io.Writer
	Logger zerolog.Logger
}

// Printf writes one result line.
func (t *Tour) Printf(format string, args ...any) {
	fmt.Fprintf(t.Out, format+"\n", args...)
}

// Assets is the assets directory, relative to the working directory.
func (t *Tour) Assets() core.Path {
	return core.Of(t.Config.AssetsDir)
}

// Notes is the primary notes file.
func (t *Tour) Notes() core.Path {
	return t.Assets().Join(t.Config.NotesFile)
}

// NotesCopy is the byte-identical copy of the notes file.
func (t *Tour) NotesCopy() core.Path {
	return t.Assets().Join(t.Config.NotesCopyFile)
}

// Tasks is the directory the tour creates and finally deletes.
func (t *Tour) Tasks() core.Path {
	return t.Assets().Join("tasks")
}

// NewTasks is the directory files are moved into. It is left in place.
func (t *Tour) NewTasks() core.Path {
	return t.Assets().Join("new-tasks")
}

// StepResult holds the outcome of a single step.
type StepResult struct {
	Name     string
	Error    error
	Duration time.Duration
}

// Result holds the overall outcome of a run.
type Result struct {
	RunID    string
	Steps    []StepResult
	Duration time.Duration
}

// Success reports whether every planned step ran without error.
func (r *Result) Success() bool {
	for _, s := range r.Steps {
		if s.Error != nil {
			return false
		}
	}
	return true
}

// Runner executes planned steps in sequence.
type Runner struct {
	registry *Registry
	fsys     filesystem.FullFileSystem
	cfg      config.Config
	out      io.Writer
	logger   zerolog.Logger
}

// NewRunner creates a runner over the default tour steps.
func NewRunner(fsys filesystem.FullFileSystem, cfg config.Config, out io.Writer, logger zerolog.Logger) *Runner {
	return &Runner{
		registry: DefaultRegistry(),
		fsys:     fsys,
		cfg:      cfg,
		out:      out,
		logger:   logger,
	}
}

// WithRegistry replaces the steps the runner plans from.
func (r *Runner) WithRegistry(reg *Registry) *Runner {
	r.registry = reg
	return r
}

// Registry returns the steps the runner plans from.
func (r *Runner) Registry() *Registry {
	return r.registry
}

// Run plans the named steps, or all of them, and executes the plan. The
// context is checked before each step. The first failing step stops the run;
// its error is returned wrapped with the step name.
func (r *Runner) Run(ctx context.Context, names ...string) (*Result, error) {
	logger, runID := fstour.WithRunID(r.logger)
	result := &Result{RunID: runID}
	start := time.Now()
	defer func() {
		result.Duration = time.Since(start)
	}()

	plan, err := r.registry.Plan(names...)
	if err != nil {
		return result, err
	}

	logger.Info().
		Int("steps", len(plan)).
		Str("workdir", r.fsys.WorkDir()).
		Msg("starting tour")

	for _, step := range plan {
		if err := ctx.Err(); err != nil {
			logger.Info().Err(err).Str("next", step.Name).Msg("tour cancelled")
			return result, err
		}

		stepLogger := logger.With().Str("step", step.Name).Logger()
		tour := &Tour{
			FS:     r.fsys,
			Config: r.cfg,
			Out:    r.out,
			Logger: stepLogger,
		}

		stepLogger.Debug().Msg("step started")
		stepStart := time.Now()
		err := step.Run(tour)
		sr := StepResult{Name: step.Name, Error: err, Duration: time.Since(stepStart)}
		result.Steps = append(result.Steps, sr)

		if err != nil {
			stepLogger.Debug().Err(err).Dur("duration", sr.Duration).Msg("step failed")
			return result, fmt.Errorf("step %s: %w", step.Name, err)
		}
		stepLogger.Debug().Dur("duration", sr.Duration).Msg("step finished")
	}

	logger.Info().Int("steps", len(result.Steps)).Msg("tour finished")
	return result, nil
}
