// Package transform contains numeric helpers for volume registration work:
// affine rescaling of point sets and a Gaussian kernel density estimate.
package transform

import (
	"fmt"
	"math"

	"github.com/cajal/microns-kit/internal/core/domain"
)

// Normalize rescales points from [min, max] to [newMin, newMax].
// A new slice is returned; the input is not modified.
func Normalize(points []float64, min, max, newMin, newMax float64) ([]float64, error) {
	if max == min {
		return nil, fmt.Errorf("%w: min and max are equal", domain.ErrInvalidInput)
	}
	scale := (newMax - newMin) / (max - min)
	out := make([]float64, len(points))
	for i, p := range points {
		out[i] = (p-min)*scale + newMin
	}
	return out, nil
}

// KDEOptions controls the density estimate.
type KDEOptions struct {
	// Bounds are the min and max of the evaluation grid.
	// When nil the bounds are taken from the data.
	Bounds *[2]float64

	// Bandwidth overrides the kernel bandwidth. When zero, Scott's rule is
	// used: sigma * n^(-1/5).
	Bandwidth float64
}

// KDE evaluates a Gaussian kernel density estimate of data on a uniform grid
// of nbins points. Returns the grid and the estimated density at each grid
// point.
func KDE(data []float64, nbins int, opts KDEOptions) (grid, pdf []float64, err error) {
	if len(data) == 0 {
		return nil, nil, fmt.Errorf("%w: empty data", domain.ErrInvalidInput)
	}
	if nbins < 2 {
		return nil, nil, fmt.Errorf("%w: nbins must be at least 2", domain.ErrInvalidInput)
	}

	min, max := data[0], data[0]
	for _, v := range data {
		min = math.Min(min, v)
		max = math.Max(max, v)
	}
	if opts.Bounds != nil {
		min, max = opts.Bounds[0], opts.Bounds[1]
		if max <= min {
			return nil, nil, fmt.Errorf("%w: bounds max must exceed min", domain.ErrInvalidInput)
		}
	}

	h := opts.Bandwidth
	if h == 0 {
		h = scottBandwidth(data)
	}
	if h <= 0 {
		return nil, nil, fmt.Errorf("%w: data has zero variance, provide a bandwidth", domain.ErrInvalidInput)
	}

	grid = make([]float64, nbins)
	pdf = make([]float64, nbins)
	step := (max - min) / float64(nbins-1)
	norm := 1.0 / (float64(len(data)) * h * math.Sqrt(2*math.Pi))

	for i := range grid {
		x := min + float64(i)*step
		grid[i] = x
		var sum float64
		for _, v := range data {
			u := (x - v) / h
			sum += math.Exp(-0.5 * u * u)
		}
		pdf[i] = norm * sum
	}
	return grid, pdf, nil
}

// scottBandwidth is Scott's rule of thumb: sigma * n^(-1/5).
func scottBandwidth(data []float64) float64 {
	n := float64(len(data))
	var mean float64
	for _, v := range data {
		mean += v
	}
	mean /= n

	var variance float64
	for _, v := range data {
		variance += (v - mean) * (v - mean)
	}
	variance /= n

	return math.Sqrt(variance) * math.Pow(n, -0.2)
}
