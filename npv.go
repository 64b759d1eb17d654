package xirr

import "math"

// NPV returns the net present value of the series at the annual rate, discounted to the
// earliest flow:
//
//	NPV(r) = Σ amount_i / (1+r)^t_i
//
// It is only defined for rate > -1 and returns NaN otherwise.
func (s *Series) NPV(rate float64) float64 {
	if !(rate > -1) {
		return math.NaN()
	}
	var npv float64
	for i, t := range s.times {
		npv += s.amounts[i] / math.Pow(1+rate, t)
	}
	return npv
}

// Derivative returns dNPV/dr at the annual rate:
//
//	NPV'(r) = Σ −t_i · amount_i / (1+r)^(t_i+1)
//
// It is only defined for rate > -1 and returns NaN otherwise.
func (s *Series) Derivative(rate float64) float64 {
	_, d := s.npvAndDerivative(rate)
	return d
}

// npvAndDerivative returns (NPV, NPV') in a single pass.
func (s *Series) npvAndDerivative(rate float64) (float64, float64) {
	if !(rate > -1) {
		return math.NaN(), math.NaN()
	}
	var npv, deriv float64
	for i, t := range s.times {
		amt := s.amounts[i]
		npv += amt / math.Pow(1+rate, t)
		deriv += -t * amt / math.Pow(1+rate, t+1)
	}
	return npv, deriv
}

func isFinite(x float64) bool { return !math.IsNaN(x) && !math.IsInf(x, 0) }
