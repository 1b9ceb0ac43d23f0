package transform

import (
	"fmt"
	"math/rand"

	"clipset/internal/clip"
)

// RandomFlip mirrors every frame of the clip along the width axis with
// probability 0.5, drawn once per call so the whole clip flips together.
// The other half of the time the input is returned unchanged.
func RandomFlip(rng *rand.Rand, c *clip.Clip) *clip.Clip {
	if rng.Float64() >= 0.5 {
		return c
	}
	return Flip(c)
}

// Flip returns a copy of the clip mirrored along the width axis.
func Flip(c *clip.Clip) *clip.Clip {
	out := c.Clone()
	h, w, ch := c.Dims.Height, c.Dims.Width, c.Dims.Channels
	for f := 0; f < c.FrameCount; f++ {
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				src := c.Frame(f)[(y*w+(w-1-x))*ch:]
				dst := out.Frame(f)[(y*w+x)*ch:]
				copy(dst[:ch], src[:ch])
			}
		}
	}
	return out
}

// RandomCrop flips the clip per RandomFlip, then extracts a (th, tw) window
// at a uniformly random offset, using the same offset for every frame. Axes
// already at the target size are not cropped; when both match, the clip is
// returned after the flip step.
func RandomCrop(rng *rand.Rand, c *clip.Clip, th, tw int) (*clip.Clip, error) {
	if err := checkTarget(c, th, tw); err != nil {
		return nil, err
	}

	c = RandomFlip(rng, c)

	h, w := c.Dims.Height, c.Dims.Width
	if h == th && w == tw {
		return c, nil
	}

	offH, offW := 0, 0
	if h != th {
		offH = rng.Intn(h - th + 1)
	}
	if w != tw {
		offW = rng.Intn(w - tw + 1)
	}
	return cropWindow(c, offH, offW, th, tw), nil
}

// CenterCrop extracts the centered (th, tw) window from every frame. No flip,
// no randomness.
func CenterCrop(c *clip.Clip, th, tw int) (*clip.Clip, error) {
	if err := checkTarget(c, th, tw); err != nil {
		return nil, err
	}
	offH := (c.Dims.Height - th) / 2
	offW := (c.Dims.Width - tw) / 2
	return cropWindow(c, offH, offW, th, tw), nil
}

func checkTarget(c *clip.Clip, th, tw int) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if th <= 0 || tw <= 0 {
		return fmt.Errorf("transform: crop target %dx%d must be positive", th, tw)
	}
	if th > c.Dims.Height || tw > c.Dims.Width {
		return fmt.Errorf("transform: crop target %dx%d exceeds clip dimensions %dx%d",
			th, tw, c.Dims.Height, c.Dims.Width)
	}
	return nil
}

func cropWindow(c *clip.Clip, offH, offW, th, tw int) *clip.Clip {
	dims := clip.Dims{Height: th, Width: tw, Channels: c.Dims.Channels}
	out := &clip.Clip{
		FrameCount: c.FrameCount,
		Dims:       dims,
		Data:       make([]float32, c.FrameCount*dims.FrameSize()),
	}
	w, ch := c.Dims.Width, c.Dims.Channels
	rowLen := tw * ch
	for f := 0; f < c.FrameCount; f++ {
		src := c.Frame(f)
		dst := out.Frame(f)
		for y := 0; y < th; y++ {
			start := ((offH+y)*w + offW) * ch
			copy(dst[y*rowLen:(y+1)*rowLen], src[start:start+rowLen])
		}
	}
	return out
}
