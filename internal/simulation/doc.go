// Package simulation provides a scenario-based test harness for the whole
// simulator stack: the real parameter completion, protocol engine, and
// feedback solver — no mocks. Scenarios are Go values naming a parameter
// override set, a protocol (or all three), and the feedback flag; the runner
// executes them through the public model API and the assertion helpers check
// structural properties of the result sets.
//
// Usage:
//
//	func TestShapes(t *testing.T) {
//	    r := simulation.NewRunner(t)
//	    result := r.Run(simulation.Scenario{
//	        Name:      "defaults-constant",
//	        Overrides: map[string]float64{"n_points": 21, "t_end": 2},
//	        Protocol:  "constant",
//	    })
//	    simulation.AssertShape(t, result.Results["constant"], 21)
//	}
package simulation
