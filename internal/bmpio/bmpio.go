// Package bmpio is the BMP load/store external collaborator (spec C6):
// out of scope for the concurrency core per spec.md §1, but required for a
// runnable repository. It wraps golang.org/x/image/bmp — the standard way
// idiomatic Go reads/writes BMP, since the stdlib image package has no BMP
// codec — rather than hand-rolling a BITMAPFILEHEADER/BITMAPINFOHEADER
// parser the way original_source/libbmp/libbmp.c does.
package bmpio

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image"
	stdcolor "image/color"
	"os"

	"golang.org/x/image/bmp"

	bmpconvimage "bmpconv/internal/image"
)

// bmpHeaderSize is the combined size of BITMAPFILEHEADER (14 bytes) and the
// BITMAPINFOHEADER (40 bytes) that precede the pixel data in the uncompressed
// 24-bit BI_RGB files this package reads.
const bmpHeaderSize = 14 + 40

// Load reads a 24-bit uncompressed BMP file into a Raster. The returned bool
// reports whether the source file used the top-down (negative height)
// convention, so Save can restore it.
func Load(path string) (*bmpconvimage.Raster, bool, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, false, fmt.Errorf("bmpio: read %s: %w", path, err)
	}

	topDown, err := peekTopDown(raw)
	if err != nil {
		return nil, false, fmt.Errorf("bmpio: %s: %w", path, err)
	}

	img, err := bmp.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, false, fmt.Errorf("bmpio: decode %s: %w", path, err)
	}

	return toRaster(img), topDown, nil
}

// Save writes r as a 24-bit uncompressed BMP file. x/image/bmp always encodes
// bottom-up, so if topDown is true the rows are flipped before encoding and
// the header's height is then negated, which turns the file into a top-down
// one; the output thus preserves the input's convention per spec.md §6.
func Save(path string, r *bmpconvimage.Raster, topDown bool) error {
	if err := r.Validate(); err != nil {
		return fmt.Errorf("bmpio: %w", err)
	}

	out := r
	if topDown {
		out = flippedCopy(r)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("bmpio: create %s: %w", path, err)
	}
	defer f.Close()

	var buf bytes.Buffer
	if err := bmp.Encode(&buf, toImage(out)); err != nil {
		return fmt.Errorf("bmpio: encode %s: %w", path, err)
	}
	data := buf.Bytes()
	if topDown {
		binary.LittleEndian.PutUint32(data[22:26], uint32(-int32(r.H)))
	}
	_, err = f.Write(data)
	return err
}

func toRaster(img image.Image) *bmpconvimage.Raster {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	r := bmpconvimage.NewRaster(w, h)

	if rgba, ok := img.(*image.RGBA); ok {
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				c := rgba.RGBAAt(bounds.Min.X+x, bounds.Min.Y+y)
				r.Set(x, y, bmpconvimage.Pixel{R: c.R, G: c.G, B: c.B})
			}
		}
		return r
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			cr, cg, cb, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			r.Set(x, y, bmpconvimage.Pixel{R: uint8(cr >> 8), G: uint8(cg >> 8), B: uint8(cb >> 8)})
		}
	}
	return r
}

func toImage(r *bmpconvimage.Raster) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, r.W, r.H))
	for y := 0; y < r.H; y++ {
		for x := 0; x < r.W; x++ {
			p := r.At(x, y)
			img.SetRGBA(x, y, stdcolor.RGBA{R: p.R, G: p.G, B: p.B, A: 255})
		}
	}
	return img
}

func flipRows(r *bmpconvimage.Raster) {
	for y := 0; y < r.H/2; y++ {
		other := r.H - 1 - y
		top := r.Row(y)
		bot := r.Row(other)
		for x := range top {
			top[x], bot[x] = bot[x], top[x]
		}
	}
}

func flippedCopy(r *bmpconvimage.Raster) *bmpconvimage.Raster {
	out := bmpconvimage.NewRaster(r.W, r.H)
	copy(out.Pix, r.Pix)
	flipRows(out)
	return out
}

// peekTopDown reads the signed biHeight field directly from the raw header
// bytes (offset 14+8 = 22 in the BITMAPINFOHEADER) to detect the top-down
// convention before handing the buffer to x/image/bmp, which decodes both
// row orders into a top-left-origin image without reporting which one the
// file used.
func peekTopDown(raw []byte) (bool, error) {
	if len(raw) < bmpHeaderSize {
		return false, fmt.Errorf("file too short to be a BMP (%d bytes)", len(raw))
	}
	height := int32(binary.LittleEndian.Uint32(raw[22:26]))
	return height < 0, nil
}
