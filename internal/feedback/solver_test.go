package feedback

import (
	"bytes"
	"math"
	"testing"

	"github.com/cmixlab/cmix/internal/logging"
	"github.com/cmixlab/cmix/internal/material"
	"github.com/cmixlab/cmix/internal/protocol"
)

func testSetup(t *testing.T, extra map[string]float64) (*material.Params, *protocol.Results) {
	t.Helper()
	raw := map[string]float64{
		"t_end":    2.0,
		"n_points": 41,
	}
	for k, v := range extra {
		raw[k] = v
	}
	p, err := material.New(raw)
	if err != nil {
		t.Fatalf("material.New: %v", err)
	}
	return p, protocol.NewEngine(p, nil).RunConstant()
}

func TestApplyMutatesInPlace(t *testing.T) {
	p, r := testSetup(t, nil)
	s := NewSolver(p, nil)

	got := s.Apply(p, protocol.Constant, r)
	if got != r {
		t.Error("Apply must return the result set it was given")
	}
}

func TestApplyPreservesShapeAndSeed(t *testing.T) {
	p, r := testSetup(t, nil)
	sigma0 := r.SigmaC[0]
	n := r.Len()

	NewSolver(p, nil).Apply(p, protocol.Constant, r)

	if r.Len() != n || len(r.SigmaC) != n || len(r.JC) != n {
		t.Fatalf("Apply changed the result shape")
	}
	if r.SigmaC[0] != sigma0 {
		t.Errorf("SigmaC[0] = %v, want untouched seed %v", r.SigmaC[0], sigma0)
	}
	if r.JC[0] != p.Jc0 {
		t.Errorf("JC[0] = %v, want %v", r.JC[0], p.Jc0)
	}
}

func TestApplyRecomputesTotals(t *testing.T) {
	p, r := testSetup(t, nil)
	NewSolver(p, nil).Apply(p, protocol.Constant, r)

	for i := range r.SigmaTotal {
		want := r.SigmaC[i] + r.SigmaE[i] + r.SigmaG[i]
		if math.Abs(r.SigmaTotal[i]-want) > 1e-12 {
			t.Fatalf("SigmaTotal[%d] = %v, want %v after feedback", i, r.SigmaTotal[i], want)
		}
	}
}

func TestApplyConvergesQuietly(t *testing.T) {
	// With the default (small) gain the fixed point is a strong
	// contraction; every index must converge inside the budget.
	p, r := testSetup(t, nil)
	var buf bytes.Buffer
	s := NewSolver(p, logging.NewLogger("warn", &buf))

	s.Apply(p, protocol.Constant, r)

	if buf.Len() != 0 {
		t.Errorf("unexpected non-convergence notices:\n%s", buf.String())
	}
}

func TestApplyAllFinite(t *testing.T) {
	for _, name := range protocol.Names() {
		p, _ := testSetup(t, nil)
		e := protocol.NewEngine(p, nil)
		r, err := e.Run(name)
		if err != nil {
			t.Fatalf("Run(%q): %v", name, err)
		}
		NewSolver(p, nil).Apply(p, name, r)
		for i := range r.SigmaC {
			if math.IsNaN(r.SigmaC[i]) || math.IsInf(r.SigmaC[i], 0) {
				t.Fatalf("%s: SigmaC[%d] = %v after feedback", name, i, r.SigmaC[i])
			}
			if math.IsNaN(r.JC[i]) {
				t.Fatalf("%s: JC[%d] is NaN after feedback", name, i)
			}
		}
	}
}

// With a stable gain the inner fixed point contracts: the per-iteration
// stress deltas must shrink monotonically until they drop below epsilon.
func TestIterationDeltasMonotone(t *testing.T) {
	p, r := testSetup(t, nil)
	s := NewSolver(p, nil)

	// Commit the history up to the probe index the same way Apply does.
	probe := 5
	massFB := make([]float64, r.Len())
	massFB[0] = p.Jc0
	sigma0 := r.SigmaC[0]
	for i := 1; i < probe; i++ {
		prev := candidate{sigma: r.SigmaC[i], mass: r.JC[i]}
		for k := 0; k < s.MaxIter; k++ {
			next := s.iterate(p, protocol.Constant, r, massFB, i, prev, sigma0)
			done := math.Abs(next.sigma-prev.sigma) < s.Epsilon &&
				math.Abs(next.mass-prev.mass) < s.Epsilon
			prev = next
			if done {
				break
			}
		}
		massFB[i] = prev.mass
	}

	// Iterate at the probe index and record successive stress deltas.
	prev := candidate{sigma: r.SigmaC[probe], mass: r.JC[probe]}
	var deltas []float64
	for k := 0; k < s.MaxIter; k++ {
		next := s.iterate(p, protocol.Constant, r, massFB, probe, prev, sigma0)
		d := math.Abs(next.sigma - prev.sigma)
		deltas = append(deltas, d)
		prev = next
		if d < s.Epsilon {
			break
		}
	}

	if last := deltas[len(deltas)-1]; last >= s.Epsilon {
		t.Fatalf("iteration did not reach epsilon within %d steps; deltas = %v", s.MaxIter, deltas)
	}
	for k := 1; k < len(deltas); k++ {
		if deltas[k] > deltas[k-1] {
			t.Errorf("delta grew at iteration %d: %v -> %v", k, deltas[k-1], deltas[k])
		}
	}
}

func TestStretchBranches(t *testing.T) {
	p, _ := testSetup(t, nil)
	tj := 0.75

	if got := stretchAt(p, protocol.Constant, tj); got != p.LambdaRoof {
		t.Errorf("constant branch = %v, want %v", got, p.LambdaRoof)
	}
	if got, want := stretchAt(p, protocol.Linear, tj), p.LambdaRoof*(1+p.A*tj); got != want {
		t.Errorf("linear branch = %v, want %v", got, want)
	}
	s := math.Sin(p.Omega * tj)
	if got, want := stretchAt(p, protocol.Cyclic, tj), p.LambdaRoof*(1+p.A*s*s); got != want {
		t.Errorf("cyclic branch = %v, want %v", got, want)
	}
}
