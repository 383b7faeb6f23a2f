package simulation

import (
	"testing"

	"github.com/cmixlab/cmix/internal/protocol"
)

// Every field of every protocol's result set must have exactly as many
// elements as the time grid, with and without feedback.
func TestResultShapeInvariant(t *testing.T) {
	const n = 21
	overrides := map[string]float64{"n_points": n, "t_end": 2.0}

	for _, name := range protocol.Names() {
		for _, feedback := range []bool{false, true} {
			r := NewRunner(t)
			result := r.Run(Scenario{
				Name:      name,
				Overrides: overrides,
				Protocol:  name,
				Feedback:  feedback,
			})
			AssertShape(t, result.Results[name], n)
			AssertAllFinite(t, result.Results[name])
		}
	}
}

func TestResultShapeSmallGrid(t *testing.T) {
	const n = 2
	r := NewRunner(t)
	result := r.Run(Scenario{
		Name:      "two-samples",
		Overrides: map[string]float64{"n_points": n, "t_end": 0.5},
	})
	for _, res := range result.Results {
		AssertShape(t, res, n)
	}
}
