// Package transform implements the per-clip tensor transformations used when
// preparing video samples: normalization, temporal frame sampling, and the
// spatial crop/flip augmentations. Every function is a pure transformation of
// its inputs; randomized behaviors take an explicit rand source so callers can
// make them reproducible.
package transform

import (
	"clipset/internal/clip"
)

// ImageNet channel statistics used for normalization.
var (
	imagenetMean = [3]float32{0.485, 0.456, 0.406}
	imagenetStd  = [3]float32{0.229, 0.224, 0.225}
)

// Normalize converts raw 8-bit frames to float32, scales into [0,1], then
// subtracts the ImageNet mean and divides by the ImageNet standard deviation
// per channel. Channels beyond the third reuse the last channel's statistics.
func Normalize(b *clip.Buffer) (*clip.Clip, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	out, err := clip.NewClip(b.FrameCount, b.Dims)
	if err != nil {
		return nil, err
	}
	channels := b.Dims.Channels
	for i, v := range b.Data {
		ch := i % channels
		if ch > 2 {
			ch = 2
		}
		out.Data[i] = (float32(v)/255 - imagenetMean[ch]) / imagenetStd[ch]
	}
	return out, nil
}
