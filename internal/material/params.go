// Package material holds the parameter set and the closed-form material
// kernels of a two-constituent constrained mixture wall: a turnover-capable
// fibrous constituent (collagen), a long-lived elastic constituent (elastin),
// and an inert ground-matrix fraction.
//
// A Params value is built once from a raw override mapping merged over the
// built-in defaults, completed with derived constants, and treated as
// read-only from then on. Every kernel is a pure function of a completed
// Params plus its own numeric arguments.
package material

import (
	"errors"
	"math"
)

// Params is the complete parameter set for one simulation. Stretches are
// dimensionless, stiffnesses in kPa, rates in 1/day, times in days.
// Fields under "Derived" are filled by completion and must not be supplied
// unless explicitly noted.
type Params struct {
	// Constituent stiffness moduli.
	CC float64 `yaml:"c_c"` // collagen
	CE float64 `yaml:"c_e"` // elastin
	CG float64 `yaml:"c_g"` // ground matrix

	// Initial volume fractions. They should sum to 1 but this is not
	// enforced; the fractions enter the equations independently.
	Fi0C float64 `yaml:"fi0_c"`
	Fi0E float64 `yaml:"fi0_e"`
	Fi0G float64 `yaml:"fi0_g"`

	// Turnover kinetics: synthesis (+) and degradation (-) rates.
	KCPlus  float64 `yaml:"k_cplus"`
	KCMinus float64 `yaml:"k_cminus"`
	KEPlus  float64 `yaml:"k_eplus"`
	KEMinus float64 `yaml:"k_eminus"`

	// Deposition stretches and loading amplitude.
	Lambda0C   float64 `yaml:"lambda0_c"`   // collagen deposition stretch
	Lambda0E   float64 `yaml:"lambda0_e"`   // elastin deposition stretch
	LambdaRoof float64 `yaml:"lambda_roof"` // base tissue stretch
	A          float64 `yaml:"a"`           // ramp rate / oscillation amplitude

	// Stress-mediated feedback gain on collagen production.
	KFeedback float64 `yaml:"K_cplus"`

	// Homeostatic reference stresses. NaN means "derive at completion"
	// from the volume fraction and the stress-recovery kernel at the
	// deposition stretch.
	Sigma0C float64 `yaml:"sigma0_c"`
	Sigma0E float64 `yaml:"sigma0_e"`

	// Numerics.
	AlphaC  float64 `yaml:"alpha_c"`  // collagen stress nonlinearity
	Gamma   float64 `yaml:"gamma"`    // anisotropy exponent
	TEnd    float64 `yaml:"t_end"`    // simulation horizon
	NPoints int     `yaml:"n_points"` // number of time samples
	Epsilon float64 `yaml:"epsilon"`  // fixed-point convergence criterion
	Omega   float64 `yaml:"omega"`    // cyclic angular frequency

	// Production-rate amplitudes. NaN means "derive" (rate x fraction).
	JCPlus float64 `yaml:"j_cplus"`
	JEPlus float64 `yaml:"j_eplus"`

	// Derived.
	J0  float64 `yaml:"-"` // reference volume, always 1
	Jc0 float64 `yaml:"-"`
	Je0 float64 `yaml:"-"`
	Jg0 float64 `yaml:"-"`

	Time []float64 `yaml:"-"` // uniform grid over [0, TEnd]
	N    int       `yaml:"-"` // len(Time)
	Dt   float64   `yaml:"-"` // grid spacing, 0 when N < 2
}

// Defaults returns the built-in parameter set. Sentinel NaN fields are
// derived during completion unless overridden.
func Defaults() Params {
	return Params{
		CC: 1.0, CE: 50.0, CG: 10.0,

		Fi0C: 0.75, Fi0E: 0.05, Fi0G: 0.20,

		KCPlus: 1.0, KCMinus: 1.0, KEPlus: 1.0, KEMinus: 1.0,

		Lambda0C: 1.05, Lambda0E: 1.10, LambdaRoof: 1.1, A: 0.1,

		KFeedback: 0.04,
		Sigma0C:   math.NaN(),
		Sigma0E:   math.NaN(),

		AlphaC: 0.01, Gamma: 1.0, TEnd: 10.0, NPoints: 1000,
		Epsilon: 1e-4, Omega: math.Pi,

		JCPlus: math.NaN(), JEPlus: math.NaN(),
	}
}

// New builds a completed parameter set from raw overrides. Raw values win
// over defaults; keys that name no parameter are ignored. The raw mapping is
// not retained or mutated.
func New(raw map[string]float64) (*Params, error) {
	p := Defaults()
	for key, val := range raw {
		p.apply(key, val)
	}
	if err := p.complete(); err != nil {
		return nil, err
	}
	return &p, nil
}

// apply assigns a single raw override. Unknown keys are deliberately
// ignored: callers pass open-ended mappings and only the recognized subset
// participates.
func (p *Params) apply(key string, val float64) {
	switch key {
	case "c_c":
		p.CC = val
	case "c_e":
		p.CE = val
	case "c_g":
		p.CG = val
	case "fi0_c":
		p.Fi0C = val
	case "fi0_e":
		p.Fi0E = val
	case "fi0_g":
		p.Fi0G = val
	case "k_cplus":
		p.KCPlus = val
	case "k_cminus":
		p.KCMinus = val
	case "k_eplus":
		p.KEPlus = val
	case "k_eminus":
		p.KEMinus = val
	case "lambda0_c":
		p.Lambda0C = val
	case "lambda0_e":
		p.Lambda0E = val
	case "lambda_roof":
		p.LambdaRoof = val
	case "a":
		p.A = val
	case "K_cplus":
		p.KFeedback = val
	case "sigma0_c":
		p.Sigma0C = val
	case "sigma0_e":
		p.Sigma0E = val
	case "alpha_c":
		p.AlphaC = val
	case "gamma":
		p.Gamma = val
	case "t_end":
		p.TEnd = val
	case "n_points":
		p.NPoints = int(val)
	case "epsilon":
		p.Epsilon = val
	case "omega":
		p.Omega = val
	case "j_cplus":
		p.JCPlus = val
	case "j_eplus":
		p.JEPlus = val
	}
}

// complete validates the user-facing fields and fills every derived one, in
// dependency order: volume fractions, time grid, production amplitudes,
// reference stresses.
func (p *Params) complete() error {
	if p.KCMinus == 0 && p.KCPlus != 0 {
		return errors.New("material: k_cminus cannot be 0 when k_cplus != 0")
	}
	if p.A <= 0 {
		return errors.New("material: parameter 'a' must be > 0")
	}
	if p.NPoints < 1 {
		return errors.New("material: n_points must be >= 1")
	}

	p.J0 = 1.0
	p.Jc0 = p.Fi0C
	p.Je0 = p.Fi0E
	p.Jg0 = p.Fi0G

	p.Time = linspace(0, p.TEnd, p.NPoints)
	p.N = len(p.Time)
	if p.N > 1 {
		p.Dt = p.Time[1] - p.Time[0]
	} else {
		p.Dt = 0
	}

	if math.IsNaN(p.JCPlus) {
		p.JCPlus = p.KCPlus * p.Jc0
	}
	if math.IsNaN(p.JEPlus) {
		p.JEPlus = p.KEPlus * p.Je0
	}

	// Homeostatic stresses from the stress-recovery kernels evaluated at
	// the deposition stretch, scaled by the constituent's fraction.
	if math.IsNaN(p.Sigma0C) {
		p.Sigma0C = (p.Jc0 / p.J0) * SigmaCRoof(p, p.Lambda0C)
	}
	if math.IsNaN(p.Sigma0E) {
		p.Sigma0E = (p.Je0 / p.J0) * SigmaERoof(p, p.Lambda0E)
	}
	return nil
}

// GrowthExponent is the prestretch exponent 1/(1+2*gamma) shared by the
// G_c and G_e kernels and the cyclic history integrands.
func (p *Params) GrowthExponent() float64 {
	return 1 / (1 + 2*p.Gamma)
}

// linspace returns n evenly spaced samples over [start, end], endpoints
// included. n == 1 yields just the start point.
func linspace(start, end float64, n int) []float64 {
	ts := make([]float64, n)
	if n == 1 {
		ts[0] = start
		return ts
	}
	span := end - start
	for i := range ts {
		ts[i] = start + span*float64(i)/float64(n-1)
	}
	return ts
}
