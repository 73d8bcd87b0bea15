package walkthrough

import (
	"errors"
	"fmt"
	"sort"

	"github.com/gammazero/toposort"
)

// ErrDependencyCycle is returned when the selected steps cannot be ordered.
var ErrDependencyCycle = errors.New("circular step dependency")

// Plan returns the steps to run for the requested names: the names, their
// transitive requirements, ordered so every requirement runs first. With no
// names the whole registry is planned.
//
// Consecutive selected steps are also chained in declaration order, so the
// plan is deterministic and a requirement declared after its dependent is
// reported as a cycle.
func (r *Registry) Plan(names ...string) ([]Step, error) {
	if len(names) == 0 {
		names = r.Names()
	}

	selected := make(map[string]bool)
	var visit func(name string, from string) error
	visit = func(name, from string) error {
		if selected[name] {
			return nil
		}
		if _, ok := r.index[name]; !ok {
			if from != "" {
				return fmt.Errorf("%w: %s (required by %s)", ErrUnknownStep, name, from)
			}
			return fmt.Errorf("%w: %s", ErrUnknownStep, name)
		}
		selected[name] = true
		for _, req := range r.steps[r.index[name]].Requires {
			if err := visit(req, name); err != nil {
				return err
			}
		}
		return nil
	}
	for _, name := range names {
		if err := visit(name, ""); err != nil {
			return nil, err
		}
	}

	ordered := make([]string, 0, len(selected))
	for name := range selected {
		ordered = append(ordered, name)
	}
	sort.Slice(ordered, func(i, j int) bool {
		return r.index[ordered[i]] < r.index[ordered[j]]
	})

	if len(ordered) == 1 && len(r.steps[r.index[ordered[0]]].Requires) == 0 {
		return []Step{r.steps[r.index[ordered[0]]]}, nil
	}

	// Edge is [2]interface{} where element 0 comes before element 1
	edges := make([]toposort.Edge, 0, len(ordered)*2)
	seen := make(map[[2]string]bool)
	addEdge := func(from, to string) {
		if seen[[2]string{from, to}] {
			return
		}
		seen[[2]string{from, to}] = true
		edges = append(edges, toposort.Edge{from, to})
	}
	for i, name := range ordered {
		for _, req := range r.steps[r.index[name]].Requires {
			addEdge(req, name)
		}
		if i > 0 {
			addEdge(ordered[i-1], name)
		}
	}

	sortedIDs, err := toposort.Toposort(edges)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDependencyCycle, err)
	}

	plan := make([]Step, 0, len(sortedIDs))
	for _, idInterface := range sortedIDs {
		name, ok := idInterface.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected type in topological sort result: %T", idInterface)
		}
		plan = append(plan, r.steps[r.index[name]])
	}
	return plan, nil
}
