package pixfx

import (
	"fmt"
	"image"
	"runtime"
	"sync"
)

// ApplyImage copies img into a fresh RGBA buffer, applies effect and returns
// the result. img itself is never modified.
func ApplyImage(img image.Image, effect Effect, param float64) (*image.NRGBA, error) {
	if img == nil {
		return nil, ErrNilImage
	}
	out := ToNRGBA(img)
	b := out.Bounds()
	if err := Process(out.Pix, b.Dx(), b.Dy(), effect, param); err != nil {
		return nil, err
	}
	return out, nil
}

// ProcessFrames applies the same effect to a sequence of equally sized frame
// buffers, several frames at a time. workers <= 0 means GOMAXPROCS. Every
// frame is validated before any is processed, so a size error leaves all
// frames untouched; the first processing error is returned.
func ProcessFrames(frames [][]byte, width, height int, effect Effect, param float64, workers int) error {
	for i, f := range frames {
		if err := checkSize(f, width, height); err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
	}
	if effect == EffectBlur {
		if _, err := radiusFromParam(param); err != nil {
			return err
		}
	}
	if effect == EffectBrightness {
		if _, err := brightnessFactor(param); err != nil {
			return err
		}
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(frames) {
		workers = len(frames)
	}
	if workers <= 1 {
		for i, f := range frames {
			if err := Process(f, width, height, effect, param); err != nil {
				return fmt.Errorf("frame %d: %w", i, err)
			}
		}
		return nil
	}

	next := make(chan int)
	var (
		wg       sync.WaitGroup
		once     sync.Once
		firstErr error
	)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range next {
				if err := Process(frames[i], width, height, effect, param); err != nil {
					once.Do(func() { firstErr = fmt.Errorf("frame %d: %w", i, err) })
				}
			}
		}()
	}
	for i := range frames {
		next <- i
	}
	close(next)
	wg.Wait()
	return firstErr
}
