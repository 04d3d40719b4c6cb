// Package regression fits the forecast model used by the charts feature:
// an epsilon-insensitive support vector regression with an RBF kernel over a
// single numeric feature.
package regression

import (
	"errors"
	"fmt"
	"math"
)

// Default hyperparameters. Targets are standardized before fitting, so C and
// Epsilon are in units of the target's standard deviation.
const (
	DefaultC       = 100.0
	DefaultEpsilon = 0.1
	DefaultGamma   = 0.01
	DefaultMaxIter = 5000
	DefaultTol     = 1e-7
)

var (
	// ErrNoSamples is returned when Fit receives no observations.
	ErrNoSamples = errors.New("regression: no samples")
	// ErrLengthMismatch is returned when x and y differ in length.
	ErrLengthMismatch = errors.New("regression: x and y lengths differ")
	// ErrNotFinite is returned when an input contains NaN or Inf.
	ErrNotFinite = errors.New("regression: non-finite input")
)

// SVR holds the hyperparameters of an RBF-kernel epsilon-SVR.
type SVR struct {
	C       float64 // box constraint on each dual coefficient
	Epsilon float64 // half-width of the insensitive tube
	Gamma   float64 // RBF kernel coefficient: k(a,b) = exp(-Gamma*(a-b)^2)
	MaxIter int     // maximum coordinate-descent sweeps
	Tol     float64 // stop when no coefficient moves more than Tol in a sweep
}

// NewSVR returns an SVR with the default hyperparameters.
func NewSVR() SVR {
	return SVR{
		C:       DefaultC,
		Epsilon: DefaultEpsilon,
		Gamma:   DefaultGamma,
		MaxIter: DefaultMaxIter,
		Tol:     DefaultTol,
	}
}

// Model is a fitted SVR.
type Model struct {
	xs    []float64
	beta  []float64
	gamma float64
	mean  float64
	scale float64
	iters int
}

// Fit trains the model on (x, y).
//
// The dual problem without a bias term is solved by exact coordinate descent:
//
//	min_b  1/2 b'Kb - y'b + eps*|b|_1   subject to  -C <= b_i <= C
//
// on the standardized target. Each coordinate step is a soft threshold
// followed by clipping, so the objective never increases.
func (s SVR) Fit(x, y []float64) (*Model, error) {
	if len(x) == 0 {
		return nil, ErrNoSamples
	}
	if len(x) != len(y) {
		return nil, fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, len(x), len(y))
	}
	if s.C <= 0 || s.Epsilon < 0 || s.Gamma <= 0 {
		return nil, fmt.Errorf("regression: invalid hyperparameters C=%v epsilon=%v gamma=%v", s.C, s.Epsilon, s.Gamma)
	}
	for i := range x {
		if !finite(x[i]) || !finite(y[i]) {
			return nil, fmt.Errorf("%w at index %d", ErrNotFinite, i)
		}
	}
	maxIter := s.MaxIter
	if maxIter <= 0 {
		maxIter = DefaultMaxIter
	}

	n := len(x)
	mean, scale := standardize(y)
	z := make([]float64, n)
	for i := range y {
		z[i] = (y[i] - mean) / scale
	}

	k := make([][]float64, n)
	for i := range k {
		k[i] = make([]float64, n)
		for j := range k[i] {
			k[i][j] = rbf(s.Gamma, x[i], x[j])
		}
	}

	beta := make([]float64, n)
	kb := make([]float64, n) // K*beta
	iters := 0
	for ; iters < maxIter; iters++ {
		maxDelta := 0.0
		for i := 0; i < n; i++ {
			kii := k[i][i]
			r := z[i] - (kb[i] - kii*beta[i])
			next := clip(softThreshold(r, s.Epsilon)/kii, s.C)
			delta := next - beta[i]
			if delta == 0 {
				continue
			}
			beta[i] = next
			for j := 0; j < n; j++ {
				kb[j] += k[j][i] * delta
			}
			maxDelta = math.Max(maxDelta, math.Abs(delta))
		}
		if maxDelta < s.Tol {
			break
		}
	}

	xs := make([]float64, n)
	copy(xs, x)
	return &Model{xs: xs, beta: beta, gamma: s.Gamma, mean: mean, scale: scale, iters: iters}, nil
}

// Predict returns the model's estimate at x.
func (m *Model) Predict(x float64) float64 {
	sum := 0.0
	for i, xi := range m.xs {
		if m.beta[i] == 0 {
			continue
		}
		sum += m.beta[i] * rbf(m.gamma, xi, x)
	}
	return m.mean + m.scale*sum
}

// PredictAll returns Predict for each x.
func (m *Model) PredictAll(xs []float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = m.Predict(x)
	}
	return out
}

// SupportVectors returns how many training points carry a non-zero coefficient.
func (m *Model) SupportVectors() int {
	n := 0
	for _, b := range m.beta {
		if b != 0 {
			n++
		}
	}
	return n
}

func rbf(gamma, a, b float64) float64 {
	d := a - b
	return math.Exp(-gamma * d * d)
}

func softThreshold(v, t float64) float64 {
	switch {
	case v > t:
		return v - t
	case v < -t:
		return v + t
	default:
		return 0
	}
}

func clip(v, c float64) float64 {
	return math.Max(-c, math.Min(c, v))
}

// standardize returns the mean and standard deviation of y.
// A constant series gets scale 1 so it fits to the mean exactly.
func standardize(y []float64) (mean, scale float64) {
	for _, v := range y {
		mean += v
	}
	mean /= float64(len(y))
	for _, v := range y {
		scale += (v - mean) * (v - mean)
	}
	scale = math.Sqrt(scale / float64(len(y)))
	if scale == 0 {
		scale = 1
	}
	return mean, scale
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
