package pixfx

import (
	"fmt"
	"math"
	"strconv"
)

// Effect selects one of the filters understood by Process. The numeric
// values are part of the embedding contract and must not change.
type Effect int

const (
	EffectGrayscale  Effect = 0
	EffectSepia      Effect = 1
	EffectBrightness Effect = 2
	EffectBlur       Effect = 3
)

func (e Effect) String() string {
	switch e {
	case EffectGrayscale:
		return "grayscale"
	case EffectSepia:
		return "sepia"
	case EffectBrightness:
		return "brightness"
	case EffectBlur:
		return "blur"
	}
	return "effect(" + strconv.Itoa(int(e)) + ")"
}

// Known reports whether Process has a filter for e.
func (e Effect) Known() bool {
	return e >= EffectGrayscale && e <= EffectBlur
}

// Process is the single entry point used by hosts: it applies effect to pix
// in place. param is ignored by grayscale and sepia, is the factor for
// brightness and is truncated to an integer radius for blur.
//
// The buffer precondition is checked for every selector. An unknown selector
// then leaves the buffer untouched and returns nil.
func Process(pix []byte, width, height int, effect Effect, param float64) error {
	if err := checkSize(pix, width, height); err != nil {
		return err
	}
	switch effect {
	case EffectGrayscale:
		return Grayscale(pix, width, height)
	case EffectSepia:
		return Sepia(pix, width, height)
	case EffectBrightness:
		return Brightness(pix, width, height, param)
	case EffectBlur:
		radius, err := radiusFromParam(param)
		if err != nil {
			return err
		}
		return BoxBlur(pix, width, height, radius)
	}
	return nil
}

// radiusFromParam truncates param toward zero. Values beyond MaxInt32 are
// capped; BoxBlur treats any radius wider than the image the same way.
func radiusFromParam(param float64) (int, error) {
	if !isFinite(param) {
		return 0, fmt.Errorf("%w: blur radius %v", ErrInvalidFactor, param)
	}
	t := math.Trunc(param)
	if t > math.MaxInt32 {
		t = math.MaxInt32
	}
	if t < 0 {
		return 0, fmt.Errorf("%w: %v", ErrInvalidRadius, param)
	}
	return int(t), nil
}
