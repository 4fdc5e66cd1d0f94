package chooser

import (
	"math"
)

// ZCritical is the standard normal quantile for a 0.1% one-sided tail.
const ZCritical = 3.090

// Stats summarizes a simulation run over n candidate indexes.
type Stats struct {
	Trials    int
	Counts    []int
	Freqs     []float64
	ChiSquare float64 // goodness of fit against the uniform distribution
	MaxDev    float64 // largest |freq - 1/n|
}

// DegreesOfFreedom of the chi-square statistic.
func (s Stats) DegreesOfFreedom() int { return len(s.Counts) - 1 }

// Critical approximates the chi-square critical value for the given
// standard normal quantile (Wilson-Hilferty).
func (s Stats) Critical(z float64) float64 {
	df := float64(s.DegreesOfFreedom())
	if df <= 0 {
		return 0
	}
	k := 2 / (9 * df)
	return df * math.Pow(1-k+z*math.Sqrt(k), 3)
}

// Uniform reports whether the run is consistent with a uniform chooser at
// the 0.1% significance level.
func (s Stats) Uniform() bool {
	if s.DegreesOfFreedom() <= 0 {
		return true
	}
	return s.ChiSquare <= s.Critical(ZCritical)
}

// Simulate draws trials indexes out of n and returns summary stats.
func Simulate(c *Chooser, n, trials int) (Stats, error) {
	if n <= 0 {
		return Stats{}, ErrNoCandidates
	}
	if c == nil {
		c = Default()
	}
	st := Stats{Counts: make([]int, n), Freqs: make([]float64, n)}
	if trials <= 0 {
		return st, nil
	}
	for i := 0; i < trials; i++ {
		idx, err := c.Index(n)
		if err != nil {
			return Stats{}, err
		}
		st.Counts[idx]++
	}
	st.Trials = trials
	return st.finish(), nil
}

func (s Stats) finish() Stats {
	n := len(s.Counts)
	expected := float64(s.Trials) / float64(n)
	for i, c := range s.Counts {
		s.Freqs[i] = float64(c) / float64(s.Trials)
		d := float64(c) - expected
		s.ChiSquare += d * d / expected
		if dev := math.Abs(s.Freqs[i] - 1/float64(n)); dev > s.MaxDev {
			s.MaxDev = dev
		}
	}
	return s
}
