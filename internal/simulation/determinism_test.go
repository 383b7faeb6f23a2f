package simulation

import (
	"testing"

	"github.com/cmixlab/cmix/internal/protocol"
)

// Two freshly constructed models with identical parameters must produce
// numerically identical history stores: the engine has no hidden randomness
// or time-of-day dependence.
func TestRunAllDeterminism(t *testing.T) {
	overrides := map[string]float64{"n_points": 21, "t_end": 2.0}

	for _, feedback := range []bool{false, true} {
		first := NewRunner(t).Run(Scenario{
			Name:      "determinism-a",
			Overrides: overrides,
			Feedback:  feedback,
		})
		second := NewRunner(t).Run(Scenario{
			Name:      "determinism-b",
			Overrides: overrides,
			Feedback:  feedback,
		})

		for _, name := range protocol.Names() {
			AssertResultsIdentical(t, first.Results[name], second.Results[name])
		}
	}
}
