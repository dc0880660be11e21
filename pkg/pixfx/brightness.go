package pixfx

import (
	"fmt"
	"math"
)

// Brightness multiplies R, G and B of every pixel by factor, truncates toward
// zero and clamps to [0,255]. Factors below 1 darken, above 1 brighten;
// negative factors produce black. Alpha is left as is.
//
// The product is evaluated in single precision, so 100*0.57 yields 57 rather
// than the 56 a float64 product truncates to.
func Brightness(pix []byte, width, height int, factor float64) error {
	if err := checkSize(pix, width, height); err != nil {
		return err
	}
	f, err := brightnessFactor(factor)
	if err != nil {
		return err
	}
	if f == 1 {
		return nil
	}
	for i := 0; i < len(pix); i += BytesPerPixel {
		pix[i+0] = scaleChannel(pix[i+0], f)
		pix[i+1] = scaleChannel(pix[i+1], f)
		pix[i+2] = scaleChannel(pix[i+2], f)
	}
	return nil
}

// brightnessFactor narrows factor to float32, rejecting values that are not
// finite at that precision.
func brightnessFactor(factor float64) (float32, error) {
	f := float32(factor)
	if !isFinite(factor) || math.IsInf(float64(f), 0) {
		return 0, fmt.Errorf("%w: brightness %v", ErrInvalidFactor, factor)
	}
	return f, nil
}

func scaleChannel(v uint8, f float32) uint8 {
	return truncToUint8(float64(float32(v) * f))
}
