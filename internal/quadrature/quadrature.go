// Package quadrature wraps gonum's fixed-order Gauss-Legendre rule as the
// definite-integral collaborator used by the protocol integrators. Each call
// evaluates the integrand at two resolutions and reports the difference as
// the error estimate, so callers get (estimate, error estimate) from a
// single synchronous invocation.
package quadrature

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/integrate/quad"
)

// Options tunes a single integration call.
type Options struct {
	// Nodes is the Gauss-Legendre node count of the coarse pass; the
	// refinement pass uses twice as many. Non-positive falls back to the
	// default.
	Nodes int

	// Tolerance, when positive, turns the error estimate into a hard
	// bound: exceeding it is reported as an integration failure.
	Tolerance float64
}

// DefaultOptions suits the smooth exponential-decay integrands of the ramp
// protocol.
func DefaultOptions() Options {
	return Options{Nodes: 64}
}

// Integrate computes the definite integral of f over [a, b]. It returns the
// refined estimate and the absolute difference between the two passes as an
// error estimate. An empty interval integrates to zero without evaluating f.
//
// Failure modes: a reversed interval, a non-finite estimate (the integrand
// left its numeric domain somewhere inside [a, b]), or an error estimate
// above Options.Tolerance when one is set.
func Integrate(f func(float64) float64, a, b float64, opts Options) (float64, float64, error) {
	if a == b {
		return 0, 0, nil
	}
	if b < a {
		return 0, 0, fmt.Errorf("quadrature: reversed interval [%g, %g]", a, b)
	}

	n := opts.Nodes
	if n <= 0 {
		n = DefaultOptions().Nodes
	}

	coarse := quad.Fixed(f, a, b, n, quad.Legendre{}, 0)
	refined := quad.Fixed(f, a, b, 2*n, quad.Legendre{}, 0)

	if math.IsNaN(refined) || math.IsInf(refined, 0) {
		return 0, 0, fmt.Errorf("quadrature: non-finite estimate over [%g, %g]", a, b)
	}

	errEst := math.Abs(refined - coarse)
	if opts.Tolerance > 0 && errEst > opts.Tolerance {
		return refined, errEst, fmt.Errorf("quadrature: error estimate %.3g exceeds tolerance %.3g over [%g, %g]",
			errEst, opts.Tolerance, a, b)
	}
	return refined, errEst, nil
}
