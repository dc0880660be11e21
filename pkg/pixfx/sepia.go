package pixfx

// sepiaMatrix holds the sepia coefficients scaled by 1000, one row per output
// channel.
var sepiaMatrix = [3][3]int{
	{393, 769, 189},
	{349, 686, 168},
	{272, 534, 131},
}

// Sepia maps every pixel through the classic sepia matrix:
//
//	R' = 0.393R + 0.769G + 0.189B
//	G' = 0.349R + 0.686G + 0.168B
//	B' = 0.272R + 0.534G + 0.131B
//
// All three outputs are computed from the original colour, truncated and
// clamped to [0,255]. Alpha is left as is.
func Sepia(pix []byte, width, height int) error {
	if err := checkSize(pix, width, height); err != nil {
		return err
	}
	for i := 0; i < len(pix); i += BytesPerPixel {
		r := int(pix[i+0])
		g := int(pix[i+1])
		b := int(pix[i+2])
		for c := 0; c < 3; c++ {
			m := sepiaMatrix[c]
			pix[i+c] = uint8(clampInt((m[0]*r+m[1]*g+m[2]*b)/1000, 0, 255))
		}
	}
	return nil
}
