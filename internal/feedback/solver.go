// Package feedback re-derives the collagen stress and mass histories of a
// finished protocol run under a stress-mediated production law: the
// synthesis rate is scaled by 1 + K*(sigma/sigma0 - 1), pulling the stress
// back toward its homeostatic reference. Because the production rate at each
// time step depends on the stress it produces, every outer time index is
// resolved by a fixed-point iteration over the full history accumulated so
// far.
package feedback

import (
	"io"
	"log/slog"
	"math"

	"github.com/cmixlab/cmix/internal/material"
	"github.com/cmixlab/cmix/internal/protocol"
)

// DefaultMaxIter bounds the fixed-point iteration at one time index.
const DefaultMaxIter = 20

// Status reports how a single time index was resolved.
type Status int

const (
	// Converged means both the stress and the mass candidate moved less
	// than epsilon between two successive iterations.
	Converged Status = iota

	// MaxIterationsReached means the iteration budget ran out; the last
	// candidate is committed anyway.
	MaxIterationsReached
)

// Solver is the per-step fixed-point solver. Zero values are replaced by
// the defaults in NewSolver; construct by hand only in tests.
type Solver struct {
	MaxIter int
	Epsilon float64
	Logger  *slog.Logger
}

// NewSolver builds a solver using the parameter set's convergence epsilon.
// A nil logger discards the non-convergence notices.
func NewSolver(p *material.Params, logger *slog.Logger) *Solver {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Solver{
		MaxIter: DefaultMaxIter,
		Epsilon: p.Epsilon,
		Logger:  logger,
	}
}

// candidate is one fixed-point iterate: collagen stress and mass at the
// outer time index being resolved.
type candidate struct {
	sigma float64
	mass  float64
}

// Apply rewrites the collagen stress and mass fields of r under the
// feedback law and recomputes the totals. The protocol name selects the
// stretch-history branch used inside the history sums. r is mutated in
// place and returned.
//
// Non-convergence at an index is not an error: the last candidate is
// committed and a notice is logged.
func (s *Solver) Apply(p *material.Params, protocolName string, r *protocol.Results) *protocol.Results {
	n := r.Len()
	sigmaFB := make([]float64, n)
	massFB := make([]float64, n)
	if n > 0 {
		sigmaFB[0] = r.SigmaC[0]
		massFB[0] = p.Jc0
	}

	// The homeostatic reference is the stress the run started from, not
	// the parameter-set value: a run launched away from equilibrium
	// regulates toward its own initial state.
	sigma0 := sigmaFB[0]

	for i := 1; i < n; i++ {
		// Seed from the baseline (no-feedback) solution at this index.
		prev := candidate{sigma: r.SigmaC[i], mass: r.JC[i]}

		status := MaxIterationsReached
		for k := 0; k < s.MaxIter; k++ {
			next := s.iterate(p, protocolName, r, massFB, i, prev, sigma0)
			converged := math.Abs(next.sigma-prev.sigma) < s.Epsilon &&
				math.Abs(next.mass-prev.mass) < s.Epsilon
			prev = next
			if converged {
				status = Converged
				break
			}
		}

		if status == MaxIterationsReached {
			s.Logger.Warn("feedback solver did not converge",
				"step", i, "t", r.Time[i], "max_iter", s.MaxIter)
		}

		sigmaFB[i] = prev.sigma
		massFB[i] = prev.mass
	}

	copy(r.SigmaC, sigmaFB)
	copy(r.JC, massFB)
	r.FinalizeTotals(p.Jg0)
	return r
}

// iterate performs one fixed-point sweep at outer index i: it derives the
// feedback gain from the current stress guess, re-walks the history window
// [t_1, t_i] with the gain-adjusted production rate, and combines the
// decayed t = 0 cohort with the fresh history sums into a new candidate.
//
// massFB holds the committed masses for indices below i; the guess stands in
// for index i itself. The history sums use a fixed half-step trapezoidal
// weight of the grid spacing.
func (s *Solver) iterate(p *material.Params, protocolName string, r *protocol.Results, massFB []float64, i int, guess candidate, sigma0 float64) candidate {
	ti := r.Time[i]

	ratio := guess.sigma / sigma0
	gain := 1 + p.KFeedback*(ratio-1)

	var sumSigma, sumMass float64
	for j := 1; j <= i; j++ {
		tj := r.Time[j]
		dtj := r.Time[j] - r.Time[j-1]

		mass := massFB[j]
		if j == i {
			mass = guess.mass
		}

		lambdaTau := stretchAt(p, protocolName, tj)
		production := material.ProductionC(p, tj, ti)
		termSigma := mass * p.KCPlus * gain * material.SigmaCRoof(p, lambdaTau) * production
		termMass := mass * p.KCPlus * gain * production

		sumSigma += 0.5 * dtj * termSigma
		sumMass += 0.5 * dtj * termMass
	}

	massTotal := guess.mass + r.JE[i] + p.Jg0
	lambdaTi := stretchAt(p, protocolName, ti)

	return candidate{
		sigma: (p.Jc0/p.J0)*material.SigmaCRoof(p, lambdaTi)*material.ProductionC(p, 0, ti) +
			sumSigma/massTotal,
		mass: p.Jc0*material.ProductionC(p, 0, ti) + sumMass,
	}
}

// stretchAt returns the stretch input of the named protocol at time t. The
// cyclic branch is also the fallback for unrecognized names, matching the
// general stretch formula the dispatcher would have rejected earlier.
func stretchAt(p *material.Params, protocolName string, t float64) float64 {
	switch protocolName {
	case protocol.Constant:
		return p.LambdaRoof
	case protocol.Linear:
		return p.LambdaRoof * (1 + p.A*t)
	default:
		s := math.Sin(p.Omega * t)
		return p.LambdaRoof * (1 + p.A*s*s)
	}
}
