// Package walkthrough runs the filesystem tour: a set of named steps, each
// exercising one part of the fstour API and writing human-readable result
// lines. Steps may require other steps; a plan orders the selection before
// the runner executes it.
package walkthrough

import (
	"errors"
	"fmt"
)

// ErrUnknownStep is returned when a step name is not registered.
var ErrUnknownStep = errors.New("unknown step")

// ErrDuplicateStep is returned when a step name is registered twice.
var ErrDuplicateStep = errors.New("duplicate step")

// StepFunc performs one step of the tour.
type StepFunc func(t *Tour) error

// Step is a named unit of the tour.
type Step struct {
	Name        string
	Description string
	Requires    []string
	Run         StepFunc
}

// Registry holds steps in declaration order.
type Registry struct {
	steps []Step
	index map[string]int
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{index: make(map[string]int)}
}

// Register appends steps in order. A step name may only be used once.
func (r *Registry) Register(steps ...Step) error {
	for _, s := range steps {
		if s.Name == "" {
			return errors.New("step name must not be empty")
		}
		if _, exists := r.index[s.Name]; exists {
			return fmt.Errorf("%w: %s", ErrDuplicateStep, s.Name)
		}
		if s.Run == nil {
			return fmt.Errorf("step %s has no run function", s.Name)
		}
		r.index[s.Name] = len(r.steps)
		r.steps = append(r.steps, s)
	}
	return nil
}

// Lookup returns the named step.
func (r *Registry) Lookup(name string) (Step, error) {
	i, ok := r.index[name]
	if !ok {
		return Step{}, fmt.Errorf("%w: %s", ErrUnknownStep, name)
	}
	return r.steps[i], nil
}

// Steps returns every registered step in declaration order.
func (r *Registry) Steps() []Step {
	out := make([]Step, len(r.steps))
	copy(out, r.steps)
	return out
}

// Names returns the registered step names in declaration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.steps))
	for i, s := range r.steps {
		names[i] = s.Name
	}
	return names
}
