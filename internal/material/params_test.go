package material

import (
	"math"
	"testing"
)

func TestNewDefaults(t *testing.T) {
	p, err := New(nil)
	if err != nil {
		t.Fatalf("New(nil): %v", err)
	}

	if p.Jc0 != 0.75 || p.Je0 != 0.05 || p.Jg0 != 0.20 {
		t.Errorf("fractions = %v/%v/%v, want 0.75/0.05/0.20", p.Jc0, p.Je0, p.Jg0)
	}
	if p.J0 != 1.0 {
		t.Errorf("J0 = %v, want 1", p.J0)
	}
	if p.N != 1000 || len(p.Time) != 1000 {
		t.Errorf("N = %d, len(Time) = %d, want 1000", p.N, len(p.Time))
	}
	if p.Time[0] != 0 || p.Time[p.N-1] != 10.0 {
		t.Errorf("grid endpoints = %v, %v, want 0, 10", p.Time[0], p.Time[p.N-1])
	}
	if p.Dt <= 0 {
		t.Errorf("Dt = %v, want > 0", p.Dt)
	}

	// Derived production amplitudes: rate times fraction.
	if p.JCPlus != p.KCPlus*p.Jc0 {
		t.Errorf("JCPlus = %v, want %v", p.JCPlus, p.KCPlus*p.Jc0)
	}
	if p.JEPlus != p.KEPlus*p.Je0 {
		t.Errorf("JEPlus = %v, want %v", p.JEPlus, p.KEPlus*p.Je0)
	}

	// Homeostatic stresses from the stress-recovery kernels at the
	// deposition stretch.
	wantC := (p.Jc0 / p.J0) * SigmaCRoof(p, p.Lambda0C)
	if p.Sigma0C != wantC {
		t.Errorf("Sigma0C = %v, want %v", p.Sigma0C, wantC)
	}
	wantE := (p.Je0 / p.J0) * SigmaERoof(p, p.Lambda0E)
	if p.Sigma0E != wantE {
		t.Errorf("Sigma0E = %v, want %v", p.Sigma0E, wantE)
	}
}

func TestNewOverridesWin(t *testing.T) {
	raw := map[string]float64{
		"c_c":      2.5,
		"n_points": 10,
		"t_end":    2.0,
		"sigma0_c": 1.0,
		"sigma0_e": 0.5,
	}
	p, err := New(raw)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if p.CC != 2.5 {
		t.Errorf("CC = %v, want 2.5", p.CC)
	}
	if p.N != 10 {
		t.Errorf("N = %d, want 10", p.N)
	}
	if p.Time[p.N-1] != 2.0 {
		t.Errorf("last sample = %v, want 2", p.Time[p.N-1])
	}
	// Explicit reference stresses must survive completion untouched.
	if p.Sigma0C != 1.0 || p.Sigma0E != 0.5 {
		t.Errorf("Sigma0C/E = %v/%v, want 1.0/0.5", p.Sigma0C, p.Sigma0E)
	}
}

func TestNewIgnoresUnknownKeys(t *testing.T) {
	p, err := New(map[string]float64{"no_such_parameter": 42})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	q, err := New(nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if p.CC != q.CC || p.N != q.N || p.Sigma0C != q.Sigma0C {
		t.Error("unknown key changed the completed parameter set")
	}
}

func TestNewDoesNotMutateInput(t *testing.T) {
	raw := map[string]float64{"c_c": 3.0}
	if _, err := New(raw); err != nil {
		t.Fatalf("New: %v", err)
	}
	if len(raw) != 1 || raw["c_c"] != 3.0 {
		t.Errorf("raw mapping mutated: %v", raw)
	}
}

func TestNewValidation(t *testing.T) {
	cases := []struct {
		name string
		raw  map[string]float64
	}{
		{"degradation off with synthesis on", map[string]float64{"k_cminus": 0, "k_cplus": 1}},
		{"non-positive amplitude", map[string]float64{"a": 0}},
		{"negative amplitude", map[string]float64{"a": -0.1}},
		{"empty grid", map[string]float64{"n_points": 0}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := New(c.raw); err == nil {
				t.Errorf("New(%v): expected error", c.raw)
			}
		})
	}
}

func TestGrowthExponent(t *testing.T) {
	p, err := New(map[string]float64{"gamma": 1.0})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := p.GrowthExponent(); math.Abs(got-1.0/3.0) > 1e-15 {
		t.Errorf("GrowthExponent = %v, want 1/3", got)
	}
}

func TestLinspaceSinglePoint(t *testing.T) {
	p, err := New(map[string]float64{"n_points": 1})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if p.N != 1 || p.Time[0] != 0 || p.Dt != 0 {
		t.Errorf("single-point grid: N=%d Time=%v Dt=%v", p.N, p.Time, p.Dt)
	}
}
