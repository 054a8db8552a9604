package worker

import (
	"testing"

	"bmpconv/internal/filter"
	"bmpconv/internal/image"
	"bmpconv/internal/tile"
)

func TestRunSingleImageMatchesSequentialBaseline(t *testing.T) {
	f, err := filter.Get(filter.Gaussian)
	if err != nil {
		t.Fatal(err)
	}

	src := image.NewRaster(23, 19)
	for i := range src.Pix {
		src.Pix[i] = image.Pixel{R: uint8(i), G: uint8(i * 2), B: uint8(i * 5)}
	}

	baseline, _ := RunSingleImage(1, src, f, tile.ModeRow, 1)

	for _, n := range []int{2, 3, 5, 8} {
		for _, m := range []tile.Mode{tile.ModeRow, tile.ModeColumn, tile.ModeGrid, tile.ModePixel} {
			got, _ := RunSingleImage(n, src, f, m, 3)
			for i := range got.Pix {
				if got.Pix[i] != baseline.Pix[i] {
					t.Fatalf("workers=%d mode=%v: pixel %d = %+v, want %+v", n, m, i, got.Pix[i], baseline.Pix[i])
				}
			}
		}
	}
}

func TestRunSingleImageDoesNotMutateSource(t *testing.T) {
	f, err := filter.Get(filter.Sharpen)
	if err != nil {
		t.Fatal(err)
	}
	src := image.NewRaster(10, 10)
	for i := range src.Pix {
		src.Pix[i] = image.Pixel{R: uint8(i), G: uint8(i), B: uint8(i)}
	}
	original := append([]image.Pixel(nil), src.Pix...)

	RunSingleImage(4, src, f, tile.ModeGrid, 3)

	for i := range src.Pix {
		if src.Pix[i] != original[i] {
			t.Fatalf("source mutated at pixel %d", i)
		}
	}
}
