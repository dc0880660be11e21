package pixfx

import (
	"image"
	"image/color"
	"math"
)

// ToNRGBA converts any image.Image to a tightly packed *image.NRGBA whose
// bounds start at (0, 0), so that Pix is a valid pixfx buffer of
// Dx()*Dy()*4 bytes. The result never aliases src.
func ToNRGBA(src image.Image) *image.NRGBA {
	if src == nil {
		return nil
	}
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	if n, ok := src.(*image.NRGBA); ok {
		// copy row by row: sub-images share a parent stride
		for y := 0; y < h; y++ {
			i := n.PixOffset(b.Min.X, b.Min.Y+y)
			copy(out.Pix[y*out.Stride:y*out.Stride+w*BytesPerPixel], n.Pix[i:i+w*BytesPerPixel])
		}
		return out
	}
	idx := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(src.At(x, y)).(color.NRGBA)
			out.Pix[idx+0] = c.R
			out.Pix[idx+1] = c.G
			out.Pix[idx+2] = c.B
			out.Pix[idx+3] = c.A
			idx += BytesPerPixel
		}
	}
	return out
}

// clampInt clamps v to [lo,hi]
func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// truncToUint8 truncates v toward zero and clamps the result to [0,255].
// Clamping before the conversion keeps out-of-range floats defined.
func truncToUint8(v float64) uint8 {
	if v <= 0 || math.IsNaN(v) {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
