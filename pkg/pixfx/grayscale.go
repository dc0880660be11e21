package pixfx

// Luminance weights scaled by 1000. Integer weights make the truncation exact:
// for R=G=B=v the sum is 1000*v, so a second pass returns the same gray.
const (
	lumR = 299
	lumG = 587
	lumB = 114
)

// Grayscale replaces R, G and B of every pixel with the truncated luminance
// 0.299R + 0.587G + 0.114B. Alpha is left as is.
func Grayscale(pix []byte, width, height int) error {
	if err := checkSize(pix, width, height); err != nil {
		return err
	}
	for i := 0; i < len(pix); i += BytesPerPixel {
		y := luminance(pix[i+0], pix[i+1], pix[i+2])
		pix[i+0] = y
		pix[i+1] = y
		pix[i+2] = y
	}
	return nil
}

func luminance(r, g, b uint8) uint8 {
	return uint8((lumR*int(r) + lumG*int(g) + lumB*int(b)) / 1000)
}
