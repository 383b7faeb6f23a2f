// Package protocol implements the three loading-history simulators of the
// constrained mixture wall: a held-constant stretch, a linear ramp, and a
// periodic (cyclic) stretch. Each run allocates a fresh Results, walks the
// time grid filling the per-constituent stress and mass fields, and derives
// the combined totals at the end.
package protocol

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/cmixlab/cmix/internal/material"
	"github.com/cmixlab/cmix/internal/quadrature"
)

// Protocol names understood by the engine, in canonical run order.
const (
	Constant = "constant"
	Linear   = "linear"
	Cyclic   = "cyclic"
)

// Names returns the protocol names in canonical run order.
func Names() []string {
	return []string{Constant, Linear, Cyclic}
}

// Engine runs loading protocols for one parameter set. The engine is
// stateless across runs: all mutable state lives in the Results created by
// each call.
type Engine struct {
	params *material.Params
	logger *slog.Logger

	rampQuad   quadrature.Options
	cyclicQuad quadrature.Options
}

// NewEngine creates a protocol engine. A nil logger discards diagnostics.
func NewEngine(p *material.Params, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Engine{
		params:   p,
		logger:   logger,
		rampQuad: quadrature.DefaultOptions(),
		// The oscillating integrands need more nodes, and the tighter
		// tolerance turns a poorly resolved integral into a hard
		// failure instead of a silently wrong stress.
		cyclicQuad: quadrature.Options{Nodes: 128, Tolerance: 1e-6},
	}
}

// Run dispatches to the named protocol.
func (e *Engine) Run(name string) (*Results, error) {
	switch name {
	case Constant:
		return e.RunConstant(), nil
	case Linear:
		return e.RunLinear()
	case Cyclic:
		return e.RunCyclic()
	default:
		return nil, fmt.Errorf("protocol: unknown protocol %q", name)
	}
}

// RunConstant holds the stretch at lambda_roof for the whole horizon. The
// loading history collapses to a single deposition event at t = 0, so each
// sample needs only the survival functions, no history integral.
func (e *Engine) RunConstant() *Results {
	p := e.params
	r := NewResults(p.N)
	copy(r.Time, p.Time)

	lambda := p.LambdaRoof
	for i, ti := range p.Time {
		r.Stretch[i] = lambda
		r.JC[i] = p.Jc0 * material.QC(p, ti)
		r.JE[i] = p.Je0 * material.QE(p, ti)
		r.SigmaC[i] = material.SigmaCRoof(p, lambda) * r.JC[i]
		r.SigmaE[i] = material.SigmaERoof(p, lambda) * r.JE[i]
		r.SigmaG[i] = material.SigmaG(p, ti, lambda)
	}

	r.FinalizeTotals(p.Jg0)
	return r
}

// RunLinear ramps the stretch affinely, lambda(t) = lambda_roof*(1 + a*t).
// Each sample adds the decayed t = 0 cohort to a quadrature of the
// production-weighted stress over the deposition history [0, t]. Quadrature
// failures propagate directly; there is no per-sample recovery here.
func (e *Engine) RunLinear() (*Results, error) {
	p := e.params
	r := NewResults(p.N)
	copy(r.Time, p.Time)

	for i, ti := range p.Time {
		lambda := p.LambdaRoof * (1 + p.A*ti)
		r.Stretch[i] = lambda

		icC := rampIntegrandC{p: p, t: ti, stretch: lambda}
		icE := rampIntegrandE{p: p, t: ti, stretch: lambda}
		integralC, _, err := quadrature.Integrate(icC.Eval, 0, ti, e.rampQuad)
		if err != nil {
			return nil, fmt.Errorf("linear protocol: sample %d (t=%g): collagen integral: %w", i, ti, err)
		}
		integralE, _, err := quadrature.Integrate(icE.Eval, 0, ti, e.rampQuad)
		if err != nil {
			return nil, fmt.Errorf("linear protocol: sample %d (t=%g): elastin integral: %w", i, ti, err)
		}

		r.JC[i] = p.Jc0 * material.QC(p, ti)
		r.JE[i] = p.Je0 * material.QE(p, ti)

		r.SigmaC[i] = (p.Jc0/p.J0)*material.SigmaCRoof(p, lambda)*material.ProductionC(p, 0, ti) +
			(p.JCPlus/r.JC[i])*integralC
		r.SigmaE[i] = (p.Je0/p.J0)*material.SigmaERoof(p, lambda)*material.ProductionE(p, 0, ti) +
			(p.JEPlus/r.JE[i])*integralE
		r.SigmaG[i] = material.SigmaG(p, ti, lambda)
	}

	r.FinalizeTotals(p.Jg0)
	return r, nil
}
