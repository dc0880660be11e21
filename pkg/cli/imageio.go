package cli

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	_ "golang.org/x/image/webp"

	"github.com/Fepozopo/pixfx/pkg/pixfx"
)

// Sequence is a decoded image as a list of full-canvas RGBA frames, each a
// valid pixfx buffer of Width*Height*4 bytes. Stills have a single frame.
type Sequence struct {
	Width     int
	Height    int
	Frames    [][]byte
	Delays    []int // GIF delays in 100ths of a second, one per frame
	LoopCount int
	Format    string
}

// Frame returns frame i as an *image.NRGBA sharing the frame's bytes.
func (s *Sequence) Frame(i int) *image.NRGBA {
	return &image.NRGBA{
		Pix:    s.Frames[i],
		Stride: s.Width * pixfx.BytesPerPixel,
		Rect:   image.Rect(0, 0, s.Width, s.Height),
	}
}

// LoadImage loads a file from disk into an image.Image and reports its format.
// PNG, JPEG and GIF use the standard decoders, BMP, TIFF and WebP the
// golang.org/x/image ones. JPEGs are rotated according to their EXIF
// orientation.
func LoadImage(path string) (image.Image, string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, "", err
	}
	return decodeImage(b)
}

func decodeImage(b []byte) (image.Image, string, error) {
	_, format, err := image.DecodeConfig(bytes.NewReader(b))
	if err != nil {
		return nil, "", fmt.Errorf("unrecognized image: %w", err)
	}
	if format == "jpeg" {
		img, err := imaging.Decode(bytes.NewReader(b), imaging.AutoOrientation(true))
		if err != nil {
			return nil, "", err
		}
		return img, format, nil
	}
	img, format, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, "", err
	}
	return img, format, nil
}

// LoadSequence loads path as a frame sequence. Animated GIFs are composited
// frame by frame onto a full canvas, honouring each frame's disposal method;
// every other input yields one frame.
func LoadSequence(path string) (*Sequence, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if bytes.HasPrefix(b, []byte("GIF87a")) || bytes.HasPrefix(b, []byte("GIF89a")) {
		g, err := gif.DecodeAll(bytes.NewReader(b))
		if err != nil {
			return nil, fmt.Errorf("decode gif: %w", err)
		}
		if len(g.Image) > 1 {
			return gifSequence(g), nil
		}
	}
	img, format, err := decodeImage(b)
	if err != nil {
		return nil, err
	}
	n := pixfx.ToNRGBA(img)
	return &Sequence{
		Width:  n.Rect.Dx(),
		Height: n.Rect.Dy(),
		Frames: [][]byte{n.Pix},
		Delays: []int{0},
		Format: format,
	}, nil
}

func gifSequence(g *gif.GIF) *Sequence {
	w, h := g.Config.Width, g.Config.Height
	if w == 0 || h == 0 {
		for _, fr := range g.Image {
			w = max(w, fr.Rect.Max.X)
			h = max(h, fr.Rect.Max.Y)
		}
	}
	canvas := image.NewNRGBA(image.Rect(0, 0, w, h))
	seq := &Sequence{Width: w, Height: h, LoopCount: g.LoopCount, Format: "gif"}
	for i, fr := range g.Image {
		var disposal byte
		if i < len(g.Disposal) {
			disposal = g.Disposal[i]
		}
		var prev []byte
		if disposal == gif.DisposalPrevious {
			prev = append([]byte(nil), canvas.Pix...)
		}
		draw.Draw(canvas, fr.Bounds(), fr, fr.Bounds().Min, draw.Over)
		seq.Frames = append(seq.Frames, append([]byte(nil), canvas.Pix...))
		delay := 0
		if i < len(g.Delay) {
			delay = g.Delay[i]
		}
		seq.Delays = append(seq.Delays, delay)

		switch disposal {
		case gif.DisposalBackground:
			draw.Draw(canvas, fr.Bounds(), image.Transparent, image.Point{}, draw.Src)
		case gif.DisposalPrevious:
			copy(canvas.Pix, prev)
		}
	}
	return seq
}

// SaveImage saves an image.Image to disk using format inferred from the filename extension.
// Supports .png, .jpg/.jpeg, .gif, .bmp and .tif/.tiff.
func SaveImage(path string, img image.Image, jpegQuality int) error {
	var buf bytes.Buffer
	if err := encodeImage(&buf, strings.ToLower(filepath.Ext(path)), img, jpegQuality); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

func encodeImage(w io.Writer, ext string, img image.Image, jpegQuality int) error {
	switch ext {
	case ".png":
		return png.Encode(w, img)
	case ".jpg", ".jpeg":
		if jpegQuality <= 0 || jpegQuality > 100 {
			jpegQuality = defaultJPEGQuality
		}
		return jpeg.Encode(w, img, &jpeg.Options{Quality: jpegQuality})
	case ".gif":
		return gif.Encode(w, img, nil)
	case ".bmp":
		return bmp.Encode(w, img)
	case ".tif", ".tiff":
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	}
	return fmt.Errorf("unsupported output format %q", ext)
}

// gifPalette is the web-safe palette plus a transparent entry.
var gifPalette = append(color.Palette{color.Transparent}, palette.WebSafe...)

// SaveSequence writes seq to path. A multi-frame sequence must be written
// as a GIF; a single frame goes through SaveImage.
func SaveSequence(path string, seq *Sequence, jpegQuality int) error {
	if len(seq.Frames) == 1 {
		return SaveImage(path, seq.Frame(0), jpegQuality)
	}
	if ext := strings.ToLower(filepath.Ext(path)); ext != ".gif" {
		return fmt.Errorf("%d-frame input needs a .gif output, got %q", len(seq.Frames), ext)
	}
	out := &gif.GIF{
		LoopCount: seq.LoopCount,
		Config:    image.Config{ColorModel: gifPalette, Width: seq.Width, Height: seq.Height},
	}
	rect := image.Rect(0, 0, seq.Width, seq.Height)
	for i := range seq.Frames {
		p := image.NewPaletted(rect, gifPalette)
		draw.FloydSteinberg.Draw(p, rect, seq.Frame(i), image.Point{})
		out.Image = append(out.Image, p)
		out.Delay = append(out.Delay, seq.Delays[i])
		out.Disposal = append(out.Disposal, gif.DisposalBackground)
	}
	var buf bytes.Buffer
	if err := gif.EncodeAll(&buf, out); err != nil {
		return fmt.Errorf("encode gif: %w", err)
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}
