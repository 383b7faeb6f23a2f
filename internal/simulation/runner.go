package simulation

import (
	"testing"

	"github.com/cmixlab/cmix/internal/logging"
	"github.com/cmixlab/cmix/internal/model"
	"github.com/cmixlab/cmix/internal/protocol"
)

// Runner executes scenarios against a freshly built model per run.
type Runner struct {
	t *testing.T
}

// NewRunner creates a simulation runner.
func NewRunner(t *testing.T) *Runner {
	t.Helper()
	return &Runner{t: t}
}

// RunResult collects everything a scenario produced.
type RunResult struct {
	// Model is the instance the scenario ran on, with its parameter set
	// and history store.
	Model *model.Model

	// Results holds one result set per executed protocol.
	Results map[string]*protocol.Results
}

// Run executes the scenario and returns the collected results. Any engine
// error fails the test immediately.
func (r *Runner) Run(s Scenario) RunResult {
	r.t.Helper()

	m, err := model.New(s.Overrides, logging.Discard())
	if err != nil {
		r.t.Fatalf("scenario %q: model.New: %v", s.Name, err)
	}

	results := make(map[string]*protocol.Results)
	if s.Protocol == "" {
		hist, err := m.SimulateAll(s.Feedback)
		if err != nil {
			r.t.Fatalf("scenario %q: SimulateAll: %v", s.Name, err)
		}
		results = hist
	} else {
		res, err := m.Simulate(s.Protocol, s.Feedback)
		if err != nil {
			r.t.Fatalf("scenario %q: Simulate(%q): %v", s.Name, s.Protocol, err)
		}
		results[s.Protocol] = res
	}

	return RunResult{Model: m, Results: results}
}
