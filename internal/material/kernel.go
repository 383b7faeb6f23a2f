package material

import "math"

// The kernels below are numerically defined for t >= 0; callers must not
// pass negative times. Floating-point domain violations (a negative stretch
// base under a fractional exponent, for example) are not guarded and surface
// as NaN in the caller.

// QC is the collagen survival function: the fraction of the mass present at
// time 0 that remains at time t, including replacement by synthesis. The
// closed form evaluates to exactly 1 at t = 0.
func QC(p *Params, t float64) float64 {
	if p.KCMinus == 0 && p.KCPlus == 0 {
		return 1
	}
	decay := math.Exp(-p.KCMinus * t)
	return decay + (p.KCPlus/p.KCMinus)*(1-decay)
}

// QE is the elastin survival function. When degradation is switched off but
// synthesis is not, the limiting value is 1 for all t.
func QE(p *Params, t float64) float64 {
	if p.KEMinus == 0 && p.KEPlus != 0 {
		return 1
	}
	decay := math.Exp(-p.KEMinus * t)
	return decay + (p.KEPlus/p.KEMinus)*(1-decay)
}

// ProductionC is the collagen production-rate kernel q_c(tau, t): the weight
// of mass deposited at tau as seen from the current time t.
func ProductionC(p *Params, tau, t float64) float64 {
	return math.Exp(-p.KCMinus * (t - tau))
}

// ProductionE is the elastin production-rate kernel q_e(tau, t).
func ProductionE(p *Params, tau, t float64) float64 {
	return math.Exp(-p.KEMinus * (t - tau))
}

// SigmaCRoof is the collagen stress-recovery kernel: Cauchy stress of a unit
// collagen mass at stretch lambda, with exponential stiffening.
func SigmaCRoof(p *Params, lambda float64) float64 {
	l2 := lambda * lambda
	return 4 * p.CC * l2 * (l2 - 1) * math.Exp(p.AlphaC*(l2-1)*(l2-1))
}

// SigmaERoof is the elastin stress-recovery kernel (neo-Hookean, no
// stiffening term).
func SigmaERoof(p *Params, lambda float64) float64 {
	l2 := lambda * lambda
	return 4 * p.CE * l2 * (l2 - 1)
}

// SigmaG is the ground-matrix stress at stretch lambda. The matrix does not
// turn over, so t does not enter the current form; the argument is kept for
// symmetry with the other stress kernels.
func SigmaG(p *Params, t, lambda float64) float64 {
	l2 := lambda * lambda
	return (p.Jg0 / p.J0) * 4 * p.CG * l2 * (l2 - 1)
}

// JC is the surviving collagen mass fraction at time t.
func JC(p *Params, t float64) float64 {
	return p.Jc0 * QC(p, t)
}

// JE is the surviving elastin mass fraction at time t.
func JE(p *Params, t float64) float64 {
	return p.Je0 * QE(p, t)
}

// GC is the collagen prestretch kernel G_c(t), the growth-weighted
// configuration factor entering the cyclic history integrands. The t = 0
// branch matches the limit of the t > 0 branch exactly.
func GC(p *Params, t float64) float64 {
	if t == 0 {
		return math.Pow(p.Jc0, p.GrowthExponent())
	}
	return math.Pow(JC(p, t), p.GrowthExponent())
}

// GE is the elastin prestretch kernel G_e(t).
func GE(p *Params, t float64) float64 {
	if t == 0 {
		return math.Pow(p.Je0, p.GrowthExponent())
	}
	return math.Pow(JE(p, t), p.GrowthExponent())
}

// TotalMass is the surviving mass fraction of the whole mixture at time t,
// ground matrix included. A constituent whose decay rate or deposition
// stretch is exactly zero is treated as disabled and contributes nothing.
func TotalMass(p *Params, t float64) float64 {
	total := p.Jg0
	if p.KCMinus != 0 && p.Lambda0C != 0 {
		total += JC(p, t)
	}
	if p.KEMinus != 0 && p.Lambda0E != 0 {
		total += JE(p, t)
	}
	return total
}
