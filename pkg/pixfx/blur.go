package pixfx

import "fmt"

// BoxBlur replaces every channel of every pixel, alpha included, with the
// mean of the same channel over the (2*radius+1)^2 window centred on it.
// Neighbours outside the image are skipped, so border pixels average fewer
// samples; the mean uses integer division. Radius 0 leaves the buffer as is.
//
// The window sums are computed from a snapshot of the input with running
// column sums, so the cost per pixel does not depend on radius.
func BoxBlur(pix []byte, width, height, radius int) error {
	if err := checkSize(pix, width, height); err != nil {
		return err
	}
	if radius < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidRadius, radius)
	}
	if radius == 0 || len(pix) == 0 {
		return nil
	}
	// a window wider than the image sees the whole image
	if m := max(width, height); radius > m {
		radius = m
	}

	src := make([]byte, len(pix))
	copy(src, pix)

	stride := width * BytesPerPixel
	// col holds, per pixel column and channel, the sum of the horizontal
	// window sums of rows [y-radius, y+radius] clipped to the image.
	col := make([]int64, stride)
	row := make([]int64, stride)

	for y := 0; y <= min(height-1, radius); y++ {
		rowSums(src[y*stride:(y+1)*stride], width, radius, row)
		for i := range col {
			col[i] += row[i]
		}
	}

	for y := 0; y < height; y++ {
		cy := int64(min(height-1, y+radius) - max(0, y-radius) + 1)
		o := y * stride
		for x := 0; x < width; x++ {
			n := cy * int64(min(width-1, x+radius)-max(0, x-radius)+1)
			i := x * BytesPerPixel
			pix[o+i+0] = uint8(col[i+0] / n)
			pix[o+i+1] = uint8(col[i+1] / n)
			pix[o+i+2] = uint8(col[i+2] / n)
			pix[o+i+3] = uint8(col[i+3] / n)
		}

		// slide the vertical window down one row
		if in := y + radius + 1; in < height {
			rowSums(src[in*stride:(in+1)*stride], width, radius, row)
			for i := range col {
				col[i] += row[i]
			}
		}
		if out := y - radius; out >= 0 {
			rowSums(src[out*stride:(out+1)*stride], width, radius, row)
			for i := range col {
				col[i] -= row[i]
			}
		}
	}
	return nil
}

// rowSums writes into dst, for every pixel of line and each channel, the sum
// of that channel over [x-radius, x+radius] clipped to the line.
func rowSums(line []byte, width, radius int, dst []int64) {
	for c := 0; c < BytesPerPixel; c++ {
		var s int64
		for x := 0; x <= min(width-1, radius); x++ {
			s += int64(line[x*BytesPerPixel+c])
		}
		for x := 0; x < width; x++ {
			dst[x*BytesPerPixel+c] = s
			if in := x + radius + 1; in < width {
				s += int64(line[in*BytesPerPixel+c])
			}
			if out := x - radius; out >= 0 {
				s -= int64(line[out*BytesPerPixel+c])
			}
		}
	}
}
