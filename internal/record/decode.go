package record

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	"io"
	"os"

	"clipset/internal/clip"
	"clipset/internal/transform"
)

// ErrShapeMismatch reports a decoded frame whose dimensions disagree with the
// configured clip shape.
var ErrShapeMismatch = errors.New("record: frame shape mismatch")

// ReadFile reads every record in a container file.
func ReadFile(path string) ([]*Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open record file: %w", err)
	}
	defer f.Close()

	var records []*Record
	r := NewReader(f)
	for {
		payload, err := r.Next()
		if errors.Is(err, io.EOF) {
			return records, nil
		}
		if err != nil {
			return nil, err
		}
		rec, err := Unmarshal(payload)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
}

// DecodeClip decodes every JPEG frame of a record and normalizes the result.
// Every frame must decode to exactly the declared dims, channel layout
// included, or decoding fails.
func DecodeClip(rec *Record, dims clip.Dims) (*clip.Clip, int, error) {
	if !dims.Valid() {
		return nil, 0, fmt.Errorf("record: invalid declared shape %s", dims)
	}

	buf, err := clip.NewBuffer(len(rec.Frames), dims)
	if err != nil {
		return nil, 0, err
	}

	for i, encoded := range rec.Frames {
		img, _, err := image.Decode(bytes.NewReader(encoded))
		if err != nil {
			return nil, 0, fmt.Errorf("decode frame %d: %w", i, err)
		}
		if err := copyFrame(buf.Frame(i), img, dims); err != nil {
			return nil, 0, fmt.Errorf("frame %d: %w", i, err)
		}
	}

	c, err := transform.Normalize(buf)
	if err != nil {
		return nil, 0, err
	}
	return c, int(rec.Label), nil
}

// imageChannels reports the channel count of a decoded image's native
// layout. JPEG decodes to Gray for single-component streams, YCbCr or CMYK
// otherwise.
func imageChannels(img image.Image) int {
	switch img.(type) {
	case *image.Gray, *image.Gray16:
		return 1
	case *image.CMYK:
		return 4
	default:
		return 3
	}
}

func copyFrame(dst []uint8, img image.Image, dims clip.Dims) error {
	bounds := img.Bounds()
	if bounds.Dy() != dims.Height || bounds.Dx() != dims.Width {
		return fmt.Errorf("%w: decoded %dx%d, configured %dx%d",
			ErrShapeMismatch, bounds.Dy(), bounds.Dx(), dims.Height, dims.Width)
	}
	if dims.Channels != 1 && dims.Channels != 3 {
		return fmt.Errorf("%w: %d channels unsupported for image decode", ErrShapeMismatch, dims.Channels)
	}
	if got := imageChannels(img); got != dims.Channels {
		return fmt.Errorf("%w: decoded %d channels, configured %d",
			ErrShapeMismatch, got, dims.Channels)
	}

	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			if dims.Channels == 1 {
				// Same luma weighting image/color uses for grayscale.
				dst[i] = uint8((19595*r + 38470*g + 7471*b + 1<<15) >> 24)
				i++
				continue
			}
			dst[i] = uint8(r >> 8)
			dst[i+1] = uint8(g >> 8)
			dst[i+2] = uint8(b >> 8)
			i += 3
		}
	}
	return nil
}
