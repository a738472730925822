package montecarlo

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Statistics accumulates payoff samples and exposes the aggregate estimate.
type Statistics struct {
	samples []float64
}

func NewStatistics() *Statistics {
	return &Statistics{}
}

// Add records one sample.
func (s *Statistics) Add(x float64) {
	s.samples = append(s.samples, x)
}

// Samples returns the number of accumulated samples.
func (s *Statistics) Samples() int { return len(s.samples) }

// Mean returns the sample mean, 0 if empty.
func (s *Statistics) Mean() float64 {
	if len(s.samples) == 0 {
		return 0
	}
	return stat.Mean(s.samples, nil)
}

// StandardDeviation returns the unbiased sample standard deviation.
func (s *Statistics) StandardDeviation() float64 {
	if len(s.samples) < 2 {
		return 0
	}
	return stat.StdDev(s.samples, nil)
}

// ErrorEstimate returns the standard error of the mean.
func (s *Statistics) ErrorEstimate() float64 {
	n := len(s.samples)
	if n < 2 {
		return 0
	}
	return s.StandardDeviation() / math.Sqrt(float64(n))
}
