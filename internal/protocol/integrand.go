package protocol

import (
	"math"

	"github.com/cmixlab/cmix/internal/material"
)

// History integrands. Each protocol builds one small context value per
// constituent per time sample, holding the captured scalars explicitly
// instead of closing over loop variables, and hands its Eval method to the
// quadrature collaborator.

// rampIntegrandC weights the collagen stress-recovery kernel at the current
// stretch by the production rate of the tau cohort.
type rampIntegrandC struct {
	p       *material.Params
	t       float64 // current time
	stretch float64 // lambda at the current time
}

func (ic rampIntegrandC) Eval(tau float64) float64 {
	return material.ProductionC(ic.p, tau, ic.t) * material.SigmaCRoof(ic.p, ic.stretch)
}

// rampIntegrandE is the elastin counterpart of rampIntegrandC.
type rampIntegrandE struct {
	p       *material.Params
	t       float64
	stretch float64
}

func (ic rampIntegrandE) Eval(tau float64) float64 {
	return material.ProductionE(ic.p, tau, ic.t) * material.SigmaERoof(ic.p, ic.stretch)
}

// cyclicStretch is the periodic stretch input lambda(t) =
// lambda_roof*(1 + a*sin^2(omega*t)).
func cyclicStretch(p *material.Params, t float64) float64 {
	s := math.Sin(p.Omega * t)
	return p.LambdaRoof * (1 + p.A*s*s)
}

// cyclicIntegrandC evaluates the collagen cohort deposited at tau under the
// oscillating history: the cohort carries its deposition stretch forward
// through the prestretch ratio G_c(tau)/G_c(t).
type cyclicIntegrandC struct {
	p       *material.Params
	t       float64
	stretch float64
}

func (ic cyclicIntegrandC) Eval(tau float64) float64 {
	p := ic.p
	lambdaTau := cyclicStretch(p, tau)
	gRatio := math.Pow(material.GC(p, tau)/material.GC(p, ic.t), p.GrowthExponent())
	lambdaX := p.Lambda0C * (ic.stretch / lambdaTau) * gRatio
	return material.ProductionC(p, tau, ic.t) * material.SigmaCRoof(p, lambdaX)
}

// cyclicIntegrandE is the elastin counterpart of cyclicIntegrandC.
type cyclicIntegrandE struct {
	p       *material.Params
	t       float64
	stretch float64
}

func (ic cyclicIntegrandE) Eval(tau float64) float64 {
	p := ic.p
	lambdaTau := cyclicStretch(p, tau)
	gRatio := math.Pow(material.GE(p, tau)/material.GE(p, ic.t), p.GrowthExponent())
	lambdaX := p.Lambda0E * (ic.stretch / lambdaTau) * gRatio
	return material.ProductionE(p, tau, ic.t) * material.SigmaERoof(p, lambdaX)
}
