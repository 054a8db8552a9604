// Package filter holds the closed set of filter-kernel tables described in
// the spec's glossary. Tables are copied verbatim from the original C
// source's filters.c and are read-only after init, per DESIGN NOTES
// ("Filter kernel tables... should place them in read-only memory").
package filter

import "fmt"

// ID is one of the ten closed-set filter identifiers.
type ID string

const (
	BoxCross    ID = "bb"
	MotionBlur  ID = "mb"
	Emboss      ID = "em"
	BigGaussian ID = "gg"
	Gaussian    ID = "gb"
	Identity    ID = "co"
	Sharpen     ID = "sh"
	Median      ID = "mm"
	BoxBlur     ID = "bo"
	MedGaussian ID = "mg"
)

// MedianWindow is the fixed window size used by the mm filter (spec §3).
const MedianWindow = 15

// Filter is a square kernel of odd size plus a scalar factor and bias, or
// (when Median is true) the parameterless median filter.
type Filter struct {
	ID      ID
	Size    int
	Bias    float64
	Factor  float64
	Weights [][]float64
	Median  bool
}

// clone returns a deep copy of the weights so callers can never mutate the
// package-level tables through a returned Filter.
func clone(w [][]float64) [][]float64 {
	out := make([][]float64, len(w))
	for i, row := range w {
		out[i] = append([]float64(nil), row...)
	}
	return out
}

var tables = map[ID]Filter{
	MotionBlur:  {ID: MotionBlur, Size: 9, Bias: 0, Factor: 1.0 / 9.0, Weights: motionBlurArr},
	BoxCross:    {ID: BoxCross, Size: 5, Bias: 0, Factor: 1.0 / 13.0, Weights: boxCrossArr},
	Gaussian:    {ID: Gaussian, Size: 5, Bias: 0, Factor: 1.0 / 256.0, Weights: gaussianArr},
	Identity:    {ID: Identity, Size: 3, Bias: 0, Factor: 1.0, Weights: identityArr},
	Sharpen:     {ID: Sharpen, Size: 3, Bias: 0, Factor: 1.0, Weights: sharpenArr},
	Emboss:      {ID: Emboss, Size: 5, Bias: 128.0, Factor: 1.0, Weights: embossArr},
	BigGaussian: {ID: BigGaussian, Size: 15, Bias: 0, Factor: 1.0 / 771.0, Weights: bigGaussianArr},
	MedGaussian: {ID: MedGaussian, Size: 9, Bias: 0, Factor: 1.0 / 213.0, Weights: medGaussianArr},
	BoxBlur:     {ID: BoxBlur, Size: 15, Bias: 0, Factor: 1.0 / 225.0, Weights: boxBlurArr},
	Median:      {ID: Median, Size: MedianWindow, Median: true},
}

// Get returns the named filter, with its weight table deep-copied so the
// caller cannot mutate package state.
func Get(id ID) (*Filter, error) {
	f, ok := tables[id]
	if !ok {
		return nil, fmt.Errorf("filter: unknown id %q", id)
	}
	if f.Weights != nil {
		f.Weights = clone(f.Weights)
	}
	return &f, nil
}

// ValidIDs lists the closed set of filter identifiers, in the order the CLI
// help text and error messages report them.
func ValidIDs() []ID {
	return []ID{BoxCross, MotionBlur, Emboss, BigGaussian, Gaussian, Identity, Sharpen, Median, BoxBlur, MedGaussian}
}

// Valid reports whether id names a known filter.
func Valid(id ID) bool {
	_, ok := tables[id]
	return ok
}
