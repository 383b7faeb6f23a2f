package simulation

import (
	"math"
	"testing"

	"github.com/cmixlab/cmix/internal/protocol"
)

// fields enumerates every array of a result set with a stable name for
// failure messages.
func fields(r *protocol.Results) map[string][]float64 {
	return map[string][]float64{
		"time":        r.Time,
		"lambda":      r.Stretch,
		"sigma_c":     r.SigmaC,
		"sigma_e":     r.SigmaE,
		"sigma_g":     r.SigmaG,
		"J_c":         r.JC,
		"J_e":         r.JE,
		"J_total":     r.JTotal,
		"sigma_total": r.SigmaTotal,
	}
}

// AssertShape asserts that every field of the result set has exactly n
// elements.
func AssertShape(t *testing.T, r *protocol.Results, n int) {
	t.Helper()
	for name, field := range fields(r) {
		if len(field) != n {
			t.Errorf("AssertShape: len(%s) = %d, want %d", name, len(field), n)
		}
	}
}

// AssertTotalsConsistent asserts that at every index the combined stress is
// the sum of the per-constituent stresses, and likewise for the masses with
// the inert fraction jg0.
func AssertTotalsConsistent(t *testing.T, r *protocol.Results, jg0, tol float64) {
	t.Helper()
	for i := range r.SigmaTotal {
		wantSigma := r.SigmaC[i] + r.SigmaE[i] + r.SigmaG[i]
		if math.Abs(r.SigmaTotal[i]-wantSigma) > tol {
			t.Errorf("AssertTotalsConsistent: sigma_total[%d] = %v, want %v", i, r.SigmaTotal[i], wantSigma)
		}
		wantJ := r.JC[i] + r.JE[i] + jg0
		if math.Abs(r.JTotal[i]-wantJ) > tol {
			t.Errorf("AssertTotalsConsistent: J_total[%d] = %v, want %v", i, r.JTotal[i], wantJ)
		}
	}
}

// AssertAllFinite asserts that no field contains NaN or infinities.
func AssertAllFinite(t *testing.T, r *protocol.Results) {
	t.Helper()
	for name, field := range fields(r) {
		for i, v := range field {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				t.Errorf("AssertAllFinite: %s[%d] = %v", name, i, v)
				break
			}
		}
	}
}

// AssertResultsIdentical asserts that two result sets agree bit for bit on
// every field.
func AssertResultsIdentical(t *testing.T, a, b *protocol.Results) {
	t.Helper()
	fa, fb := fields(a), fields(b)
	for name := range fa {
		x, y := fa[name], fb[name]
		if len(x) != len(y) {
			t.Errorf("AssertResultsIdentical: len(%s) differs: %d vs %d", name, len(x), len(y))
			continue
		}
		for i := range x {
			if x[i] != y[i] {
				t.Errorf("AssertResultsIdentical: %s[%d] differs: %v vs %v", name, i, x[i], y[i])
				break
			}
		}
	}
}
