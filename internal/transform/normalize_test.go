package transform_test

import (
	"math"
	"testing"

	"clipset/internal/clip"
	"clipset/internal/transform"
)

func newBuffer(t *testing.T, frames int, dims clip.Dims) *clip.Buffer {
	t.Helper()
	b, err := clip.NewBuffer(frames, dims)
	if err != nil {
		t.Fatalf("NewBuffer returned error: %v", err)
	}
	return b
}

func TestNormalizeAppliesImageNetStatistics(t *testing.T) {
	b := newBuffer(t, 1, clip.Dims{Height: 1, Width: 1, Channels: 3})
	b.Data[0] = 255
	b.Data[1] = 0
	b.Data[2] = 127

	c, err := transform.Normalize(b)
	if err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}

	want := []float64{
		(1.0 - 0.485) / 0.229,
		(0.0 - 0.456) / 0.224,
		(127.0/255 - 0.406) / 0.225,
	}
	for i, w := range want {
		if got := float64(c.Data[i]); math.Abs(got-w) > 1e-5 {
			t.Fatalf("channel %d: got %v want %v", i, got, w)
		}
	}
}

func TestNormalizePreservesPixelOrderingPerChannel(t *testing.T) {
	dims := clip.Dims{Height: 4, Width: 4, Channels: 3}
	b := newBuffer(t, 1, dims)
	for i := range b.Data {
		b.Data[i] = uint8((i * 37) % 256)
	}

	c, err := transform.Normalize(b)
	if err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}

	// Affine with positive scale: raw ordering within a channel must survive.
	for ch := 0; ch < dims.Channels; ch++ {
		for i := ch; i < len(b.Data); i += dims.Channels {
			for j := i + dims.Channels; j < len(b.Data); j += dims.Channels {
				rawLess := b.Data[i] < b.Data[j]
				normLess := c.Data[i] < c.Data[j]
				if b.Data[i] != b.Data[j] && rawLess != normLess {
					t.Fatalf("ordering broken between %d and %d", i, j)
				}
			}
		}
	}
}

func TestNormalizeRejectsInvalidBuffer(t *testing.T) {
	b := newBuffer(t, 2, clip.Dims{Height: 2, Width: 2, Channels: 1})
	b.Data = b.Data[:3]
	if _, err := transform.Normalize(b); err == nil {
		t.Fatal("expected error for malformed buffer")
	}
}
