package transform

import (
	"fmt"

	"clipset/internal/clip"
)

// SampleFrames reduces or pads a clip to exactly n frames and one-hot encodes
// the clip's label to numClasses width.
//
// When fewer than n frames are available, all-zero frames of the same shape
// are appended after the originals. Otherwise frames are taken at a fixed
// stride of len/n starting from frame 0, stopping once n frames are
// collected. Stride sampling intentionally leaves trailing frames of long
// clips unvisited when the stride truncates; the selection is deterministic,
// never random.
func SampleFrames(c *clip.Clip, label, n, numClasses int) (*clip.Clip, []float32, error) {
	if n <= 0 {
		return nil, nil, fmt.Errorf("transform: sample size %d must be positive", n)
	}
	if err := c.Validate(); err != nil {
		return nil, nil, err
	}
	onehot, err := clip.OneHot(label, numClasses)
	if err != nil {
		return nil, nil, err
	}

	out, err := clip.NewClip(n, c.Dims)
	if err != nil {
		return nil, nil, err
	}

	if c.FrameCount < n {
		// Copy what exists; the allocation above already zeroed the tail.
		copy(out.Data, c.Data)
		return out, onehot, nil
	}

	stride := c.FrameCount / n
	for i := 0; i < n; i++ {
		copy(out.Frame(i), c.Frame(i*stride))
	}
	return out, onehot, nil
}
