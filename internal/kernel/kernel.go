// Package kernel applies one filter to one rectangular tile of one image
// (spec C1). Grounded on the teacher's pkg/blur.ApplyBlurToTile (per-channel
// float accumulation, clamped boundary sampling) generalized from a single
// Gaussian kernel to the full filter table, with a second, wrap-around
// border policy added for the median filter per spec.md §4.1.
package kernel

import (
	"math"

	"bmpconv/internal/filter"
	"bmpconv/internal/image"
	"bmpconv/internal/tile"
)

// InvariantBreach marks a violation of Apply's own contract (a tile outside
// image bounds, or mismatched src/dst dimensions) rather than a resource
// failure. It is never recovered by a caller in the ordinary sense: a worker
// that catches one re-panics so the process aborts, since the condition
// means the tile scheduler or caller is wrong, not that the machine is
// out of resources (spec.md DESIGN NOTES, KernelInvariantBreach).
type InvariantBreach struct {
	Msg string
}

func (e InvariantBreach) Error() string { return e.Msg }

// Apply filters the pixels of src within t, writing the result into the
// matching region of dst. It reads only src and writes only dst[y][x] for
// (y,x) in t, so it is safe to call concurrently across disjoint tiles of
// the same image pair (spec.md §4.1 contract).
func Apply(t tile.Tile, src, dst *image.Raster, f *filter.Filter) {
	if dst.W != src.W || dst.H != src.H {
		panic(InvariantBreach{Msg: "kernel: dst dimensions do not match src"})
	}
	if t.Row0 < 0 || t.Col0 < 0 || t.Row1 > src.H || t.Col1 > src.W || t.Row0 > t.Row1 || t.Col0 > t.Col1 {
		panic(InvariantBreach{Msg: "kernel: tile out of image bounds"})
	}
	if f.Median {
		applyMedian(t, src, dst)
		return
	}
	applyConvolution(t, src, dst, f)
}

// applyConvolution implements clamp-to-edge border sampling: out-of-bounds
// source coordinates saturate to the nearest valid index.
func applyConvolution(t tile.Tile, src, dst *image.Raster, f *filter.Filter) {
	size := f.Size
	half := size / 2
	w, h := src.W, src.H

	for y := t.Row0; y < t.Row1; y++ {
		for x := t.Col0; x < t.Col1; x++ {
			var rSum, gSum, bSum float64

			for fy := 0; fy < size; fy++ {
				sy := clamp(y+fy-half, 0, h-1)
				for fx := 0; fx < size; fx++ {
					sx := clamp(x+fx-half, 0, w-1)
					p := src.At(sx, sy)
					weight := f.Weights[fy][fx]
					rSum += float64(p.R) * weight
					gSum += float64(p.G) * weight
					bSum += float64(p.B) * weight
				}
			}

			dst.Set(x, y, image.Pixel{
				R: clampRound(rSum*f.Factor + f.Bias),
				G: clampRound(gSum*f.Factor + f.Bias),
				B: clampRound(bSum*f.Factor + f.Bias),
			})
		}
	}
}

// applyMedian implements wrap-around (modular) border sampling over the
// fixed 15x15 window and a per-channel quickselect for the median.
func applyMedian(t tile.Tile, src, dst *image.Raster) {
	const size = filter.MedianWindow
	half := size / 2
	w, h := src.W, src.H
	n := size * size

	rSamples := make([]uint8, n)
	gSamples := make([]uint8, n)
	bSamples := make([]uint8, n)

	for y := t.Row0; y < t.Row1; y++ {
		for x := t.Col0; x < t.Col1; x++ {
			idx := 0
			for fy := 0; fy < size; fy++ {
				sy := wrap(y+fy-half, h)
				for fx := 0; fx < size; fx++ {
					sx := wrap(x+fx-half, w)
					p := src.At(sx, sy)
					rSamples[idx] = p.R
					gSamples[idx] = p.G
					bSamples[idx] = p.B
					idx++
				}
			}

			k := n / 2
			dst.Set(x, y, image.Pixel{
				R: quickselect(rSamples, k),
				G: quickselect(gSamples, k),
				B: quickselect(bSamples, k),
			})
		}
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func wrap(v, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}

func clampRound(v float64) uint8 {
	v = math.Round(v)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
