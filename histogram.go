package quadimage

import (
	"image"
	"image/color"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Histogram counts pixels per 8-bit intensity level for a single channel.
type Histogram [256]float64

// PixelSource provides per-channel intensity histograms for rectangular
// regions of a source image. Implementations must be safe for repeated
// read-only access; regions outside the image yield empty histograms.
type PixelSource interface {
	RegionHistogram(region image.Rectangle) (red, green, blue Histogram)
}

// levels holds the sample positions 0..255 for the weighted statistics.
var levels = func() []float64 {
	v := make([]float64, 256)
	for i := range v {
		v[i] = float64(i)
	}
	return v
}()

// weightedAverage returns the count-weighted mean intensity of hist and the
// population standard deviation about that mean. An all-zero histogram
// yields (0, 0) rather than an error.
func weightedAverage(hist Histogram) (value, spread float64) {
	w := hist[:]
	if floats.Sum(w) == 0 {
		return 0, 0
	}
	return stat.Mean(levels, w), stat.PopStdDev(levels, w)
}

// colorFromRegion samples region once, returning its average color and a
// luma-weighted scalar error combining the per-channel spreads with the
// ITU-R BT.601 coefficients. Channel means are truncated toward zero.
func colorFromRegion(src PixelSource, region image.Rectangle) (color.RGBA, float64) {
	rh, gh, bh := src.RegionHistogram(region)
	r, re := weightedAverage(rh)
	g, ge := weightedAverage(gh)
	b, be := weightedAverage(bh)
	return color.RGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: 255},
		0.2989*re + 0.5870*ge + 0.1140*be
}

// Pixels is an interleaved 8-bit RGB plane decoded once from an image, the
// standard PixelSource backing trees built with NewFromImage. The plane is
// addressed from (0, 0) regardless of the bounds of the decoded image.
type Pixels struct {
	W, H int
	Pix  []uint8 // interleaved RGB, len = W*H*3
}

func pixOffset(w, x, y int) int {
	return (y*w + x) * 3
}

func NewPixels(img image.Image) *Pixels {
	bounds := img.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()
	p := &Pixels{
		W:   w,
		H:   h,
		Pix: make([]uint8, h*w*3),
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			off := pixOffset(w, x, y)
			p.Pix[off] = uint8(r >> 8)
			p.Pix[off+1] = uint8(g >> 8)
			p.Pix[off+2] = uint8(b >> 8)
		}
	}
	return p
}

// RegionHistogram implements PixelSource. The region is clipped to the
// plane; a degenerate region contributes no counts.
func (p *Pixels) RegionHistogram(region image.Rectangle) (red, green, blue Histogram) {
	region = region.Intersect(image.Rect(0, 0, p.W, p.H))
	for y := region.Min.Y; y < region.Max.Y; y++ {
		for x := region.Min.X; x < region.Max.X; x++ {
			off := pixOffset(p.W, x, y)
			red[p.Pix[off]]++
			green[p.Pix[off+1]]++
			blue[p.Pix[off+2]]++
		}
	}
	return red, green, blue
}
