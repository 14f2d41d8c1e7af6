// Package freqtable holds the discrete frequency/voltage table shared by
// every speed-setting policy, plus the small numeric utilities (GCD, LCM,
// hyperperiod, energy) that only make sense in terms of that table.
package freqtable

// Epsilon is the tolerance used throughout the simulator for comparing
// simulated time instants and floating-point work/utilisation values.
const Epsilon = 1e-9

// Levels holds the discrete (frequency, voltage) pairs, descending by
// frequency and normalised to the maximum (1.0). Levels[i] and Voltages[i]
// always describe the same speed step. These two tables are read-only and
// must be edited together.
var Levels = [...]float64{1.0, 0.9, 0.8, 0.7, 0.6, 0.5, 0.4}

// Voltages holds the physical voltage for each entry in Levels.
var Voltages = [...]float64{5.0, 4.7, 4.4, 4.1, 3.8, 3.5, 3.2}

// NumLevels is the number of discrete frequency steps.
const NumLevels = len(Levels)

// Lowest is the index of the slowest, lowest-energy frequency level —
// the level an idle processor, or an empty ready set under LAEDF, runs at.
const Lowest = NumLevels - 1

// GCD returns the greatest common divisor of a and b using Euclid's
// algorithm.
func GCD(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// LCM returns the least common multiple of a and b. It returns 0 if either
// operand is 0, matching the guard the original simulator used to keep a
// degenerate task (period 0) from poisoning the hyperperiod.
func LCM(a, b int64) int64 {
	if a == 0 || b == 0 {
		return 0
	}
	return a / GCD(a, b) * b
}

// Hyperperiod folds LCM over every period in periods. It returns 0 for an
// empty slice.
func Hyperperiod(periods []int64) int64 {
	if len(periods) == 0 {
		return 0
	}
	h := periods[0]
	for _, p := range periods[1:] {
		h = LCM(h, p)
	}
	return h
}

// IndexForAlpha returns the largest index i such that Levels[i] >= alpha —
// the lowest discrete frequency that still meets the required utilisation
// alpha. If no level satisfies this (alpha > 1.0), it returns 0, the
// maximum frequency.
func IndexForAlpha(alpha float64) int {
	for i := NumLevels - 1; i >= 0; i-- {
		if Levels[i] >= alpha {
			return i
		}
	}
	return 0
}

// Energy returns the energy consumed running for duration (in milliseconds)
// at the given frequency index, using the f*V^2*t model. Durations at or
// below Epsilon consume no energy (guards against spurious work from
// floating-point noise at the end of a run).
func Energy(duration float64, idx int) float64 {
	if duration <= Epsilon {
		return 0
	}
	v := Voltages[idx]
	return Levels[idx] * v * v * duration
}
