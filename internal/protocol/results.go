package protocol

import "gonum.org/v1/gonum/floats"

// Results is the struct-of-arrays result set of one protocol run. Every
// field has the same length, and index i of every field belongs to time
// sample Time[i]. A run fills the per-constituent fields sample by sample
// and derives the totals once at the end.
type Results struct {
	Time    []float64 // time grid, copied from the parameter set
	Stretch []float64 // applied stretch input lambda(t)

	SigmaC []float64 // collagen stress
	SigmaE []float64 // elastin stress
	SigmaG []float64 // ground-matrix stress

	JC []float64 // surviving collagen mass fraction
	JE []float64 // surviving elastin mass fraction

	JTotal     []float64 // JC + JE + ground-matrix fraction
	SigmaTotal []float64 // SigmaC + SigmaE + SigmaG
}

// NewResults allocates a result set for n time samples.
func NewResults(n int) *Results {
	return &Results{
		Time:       make([]float64, n),
		Stretch:    make([]float64, n),
		SigmaC:     make([]float64, n),
		SigmaE:     make([]float64, n),
		SigmaG:     make([]float64, n),
		JC:         make([]float64, n),
		JE:         make([]float64, n),
		JTotal:     make([]float64, n),
		SigmaTotal: make([]float64, n),
	}
}

// Len returns the number of time samples.
func (r *Results) Len() int {
	return len(r.Time)
}

// FinalizeTotals recomputes the combined mass and stress fields as the
// elementwise sum of the per-constituent fields, plus the inert matrix
// fraction jg0 on the mass side. Idempotent; safe to call after a feedback
// pass rewrites a constituent's arrays.
func (r *Results) FinalizeTotals(jg0 float64) {
	for i := range r.JTotal {
		r.JTotal[i] = 0
	}
	floats.Add(r.JTotal, r.JC)
	floats.Add(r.JTotal, r.JE)
	floats.AddConst(jg0, r.JTotal)

	for i := range r.SigmaTotal {
		r.SigmaTotal[i] = 0
	}
	floats.Add(r.SigmaTotal, r.SigmaC)
	floats.Add(r.SigmaTotal, r.SigmaE)
	floats.Add(r.SigmaTotal, r.SigmaG)
}
