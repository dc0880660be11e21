package pixfx

import (
	"errors"
	"fmt"
	"testing"
)

// naiveBoxBlur is the direct O(r^2) definition used as a reference.
func naiveBoxBlur(src []byte, w, h, r int) []byte {
	out := make([]byte, len(src))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var sum [4]int
			count := 0
			for ky := -r; ky <= r; ky++ {
				for kx := -r; kx <= r; kx++ {
					px, py := x+kx, y+ky
					if px < 0 || px >= w || py < 0 || py >= h {
						continue
					}
					i := (py*w + px) * 4
					for c := 0; c < 4; c++ {
						sum[c] += int(src[i+c])
					}
					count++
				}
			}
			i := (y*w + x) * 4
			for c := 0; c < 4; c++ {
				out[i+c] = uint8(sum[c] / count)
			}
		}
	}
	return out
}

func TestBoxBlurThreeByOne(t *testing.T) {
	pix := []byte{
		10, 20, 30, 40,
		40, 50, 60, 70,
		100, 0, 255, 255,
	}
	if err := BoxBlur(pix, 3, 1, 1); err != nil {
		t.Fatalf("BoxBlur: %v", err)
	}
	want := []byte{
		25, 35, 45, 55,   // (p0+p1)/2
		50, 23, 115, 121, // (p0+p1+p2)/3
		70, 25, 157, 162, // (p1+p2)/2
	}
	assertPix(t, pix, want)
}

func TestBoxBlurRadiusZeroIdentity(t *testing.T) {
	pix := makeRandom(9, 4, 11)
	src := clone(pix)
	if err := BoxBlur(pix, 9, 4, 0); err != nil {
		t.Fatalf("BoxBlur: %v", err)
	}
	assertPix(t, pix, src)
}

func TestBoxBlurMatchesReference(t *testing.T) {
	sizes := [][2]int{{1, 1}, {1, 7}, {7, 1}, {5, 5}, {13, 8}, {32, 3}}
	for _, sz := range sizes {
		for _, r := range []int{1, 2, 3, 6, 40} {
			w, h := sz[0], sz[1]
			t.Run(fmt.Sprintf("%dx%d_r%d", w, h, r), func(t *testing.T) {
				pix := makeRandom(w, h, int64(w*100+h*10+r))
				want := naiveBoxBlur(pix, w, h, r)
				if err := BoxBlur(pix, w, h, r); err != nil {
					t.Fatalf("BoxBlur: %v", err)
				}
				assertPix(t, pix, want)
			})
		}
	}
}

func TestBoxBlurUniformStaysUniform(t *testing.T) {
	pix := makeSolid(10, 6, 12, 34, 56, 78)
	want := clone(pix)
	if err := BoxBlur(pix, 10, 6, 3); err != nil {
		t.Fatalf("BoxBlur: %v", err)
	}
	assertPix(t, pix, want)
}

func TestBoxBlurCornerSampleCount(t *testing.T) {
	// 3x3 with a single bright pixel in the top-left corner. With r=1 the
	// corner averages 4 samples, the centre 9.
	pix := makeSolid(3, 3, 0, 0, 0, 0)
	pix[0], pix[1], pix[2], pix[3] = 200, 200, 200, 200
	if err := BoxBlur(pix, 3, 3, 1); err != nil {
		t.Fatalf("BoxBlur: %v", err)
	}
	if pix[0] != 50 || pix[3] != 50 {
		t.Fatalf("corner = %v, want 50s", pix[:4])
	}
	centre := (1*3 + 1) * 4
	if pix[centre] != 22 {
		t.Fatalf("centre = %d, want 22", pix[centre])
	}
	far := (2*3 + 2) * 4
	if pix[far] != 0 {
		t.Fatalf("far corner = %d, want 0", pix[far])
	}
}

func TestBoxBlurNegativeRadius(t *testing.T) {
	pix := makeRandom(2, 2, 12)
	src := clone(pix)
	if err := BoxBlur(pix, 2, 2, -1); !errors.Is(err, ErrInvalidRadius) {
		t.Fatalf("got %v, want ErrInvalidRadius", err)
	}
	assertPix(t, pix, src)
}

func BenchmarkBoxBlur(b *testing.B) {
	pix := makeRandom(640, 360, 1)
	work := make([]byte, len(pix))
	b.SetBytes(int64(len(pix)))
	for i := 0; i < b.N; i++ {
		copy(work, pix)
		if err := BoxBlur(work, 640, 360, 4); err != nil {
			b.Fatal(err)
		}
	}
}
