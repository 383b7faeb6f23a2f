package simulation

// Scenario defines one end-to-end simulation experiment.
type Scenario struct {
	// Name tags the scenario in failure output.
	Name string

	// Overrides are raw parameter overrides applied over the defaults.
	// Keep grids small here; the feedback solver walks the full history
	// at every step.
	Overrides map[string]float64

	// Protocol selects a single protocol by name. Empty means run all
	// three through the history store.
	Protocol string

	// Feedback applies the mechanical-feedback solver to each run.
	Feedback bool
}
