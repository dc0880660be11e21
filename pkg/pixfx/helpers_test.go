package pixfx

import (
	"bytes"
	"math/rand"
	"testing"
)

func makeSolid(w, h int, r, g, b, a uint8) []byte {
	pix := make([]byte, w*h*BytesPerPixel)
	for i := 0; i < len(pix); i += BytesPerPixel {
		pix[i+0] = r
		pix[i+1] = g
		pix[i+2] = b
		pix[i+3] = a
	}
	return pix
}

func makeRandom(w, h int, seed int64) []byte {
	rng := rand.New(rand.NewSource(seed))
	pix := make([]byte, w*h*BytesPerPixel)
	rng.Read(pix)
	return pix
}

func clone(pix []byte) []byte {
	out := make([]byte, len(pix))
	copy(out, pix)
	return out
}

func assertPix(t *testing.T, got, want []byte) {
	t.Helper()
	if !bytes.Equal(got, want) {
		t.Fatalf("unexpected pixels:\n got  %v\n want %v", got, want)
	}
}

func assertAlphaKept(t *testing.T, before, after []byte) {
	t.Helper()
	for i := 3; i < len(before); i += BytesPerPixel {
		if before[i] != after[i] {
			t.Fatalf("alpha changed at pixel %d: %d -> %d", i/BytesPerPixel, before[i], after[i])
		}
	}
}
