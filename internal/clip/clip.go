// Package clip defines the in-memory tensor types shared by the dataset
// preparation pipeline: raw uint8 frame buffers as they come off a decoder,
// normalized float32 clips as the training pipeline consumes them, and the
// one-hot label encoding.
//
// Both clip types store frames in a single flat backing slice in
// frame-major, row-major order (frame, row, column, channel). Every frame in
// a clip shares the same height, width, and channel count; constructors and
// accessors enforce that invariant.
package clip

import (
	"errors"
	"fmt"
)

// ErrBounds reports an access or construction outside a clip's dimensions.
var ErrBounds = errors.New("clip: index out of bounds")

// Dims describes the spatial shape of a single frame.
type Dims struct {
	Height   int
	Width    int
	Channels int
}

// Valid reports whether every dimension is positive.
func (d Dims) Valid() bool {
	return d.Height > 0 && d.Width > 0 && d.Channels > 0
}

func (d Dims) String() string {
	return fmt.Sprintf("%dx%dx%d", d.Height, d.Width, d.Channels)
}

// FrameSize returns the number of scalar values in one frame.
func (d Dims) FrameSize() int {
	return d.Height * d.Width * d.Channels
}

// Buffer holds raw decoded frames as 8-bit pixel intensities.
type Buffer struct {
	FrameCount int
	Dims       Dims
	Data       []uint8
}

// NewBuffer allocates a zeroed buffer for the given frame count and shape.
func NewBuffer(frames int, dims Dims) (*Buffer, error) {
	if frames < 0 || !dims.Valid() {
		return nil, fmt.Errorf("%w: %d frames of %s", ErrBounds, frames, dims)
	}
	return &Buffer{
		FrameCount: frames,
		Dims:       dims,
		Data:       make([]uint8, frames*dims.FrameSize()),
	}, nil
}

// Frame returns the backing slice for frame i.
func (b *Buffer) Frame(i int) []uint8 {
	size := b.Dims.FrameSize()
	return b.Data[i*size : (i+1)*size]
}

// Validate checks that the backing slice matches the declared shape.
func (b *Buffer) Validate() error {
	if !b.Dims.Valid() || b.FrameCount < 0 {
		return fmt.Errorf("%w: %d frames of %s", ErrBounds, b.FrameCount, b.Dims)
	}
	if want := b.FrameCount * b.Dims.FrameSize(); len(b.Data) != want {
		return fmt.Errorf("clip: buffer holds %d values, shape %d frames of %s requires %d",
			len(b.Data), b.FrameCount, b.Dims, want)
	}
	return nil
}

// Clip holds normalized frames as float32 values.
type Clip struct {
	FrameCount int
	Dims       Dims
	Data       []float32
}

// NewClip allocates a zeroed clip for the given frame count and shape.
func NewClip(frames int, dims Dims) (*Clip, error) {
	if frames < 0 || !dims.Valid() {
		return nil, fmt.Errorf("%w: %d frames of %s", ErrBounds, frames, dims)
	}
	return &Clip{
		FrameCount: frames,
		Dims:       dims,
		Data:       make([]float32, frames*dims.FrameSize()),
	}, nil
}

// Frame returns the backing slice for frame i.
func (c *Clip) Frame(i int) []float32 {
	size := c.Dims.FrameSize()
	return c.Data[i*size : (i+1)*size]
}

// At returns the value at (frame, row, column, channel).
func (c *Clip) At(f, y, x, ch int) float32 {
	return c.Data[c.offset(f, y, x, ch)]
}

// Set stores a value at (frame, row, column, channel).
func (c *Clip) Set(f, y, x, ch int, v float32) {
	c.Data[c.offset(f, y, x, ch)] = v
}

func (c *Clip) offset(f, y, x, ch int) int {
	return ((f*c.Dims.Height+y)*c.Dims.Width+x)*c.Dims.Channels + ch
}

// Validate checks that the backing slice matches the declared shape.
func (c *Clip) Validate() error {
	if !c.Dims.Valid() || c.FrameCount < 0 {
		return fmt.Errorf("%w: %d frames of %s", ErrBounds, c.FrameCount, c.Dims)
	}
	if want := c.FrameCount * c.Dims.FrameSize(); len(c.Data) != want {
		return fmt.Errorf("clip: clip holds %d values, shape %d frames of %s requires %d",
			len(c.Data), c.FrameCount, c.Dims, want)
	}
	return nil
}

// Clone returns a deep copy of the clip.
func (c *Clip) Clone() *Clip {
	data := make([]float32, len(c.Data))
	copy(data, c.Data)
	return &Clip{FrameCount: c.FrameCount, Dims: c.Dims, Data: data}
}

// OneHot encodes label as a float32 vector of the given width: 1 at the
// label's index, 0 elsewhere.
func OneHot(label, numClasses int) ([]float32, error) {
	if numClasses <= 0 {
		return nil, fmt.Errorf("%w: one-hot width %d", ErrBounds, numClasses)
	}
	if label < 0 || label >= numClasses {
		return nil, fmt.Errorf("%w: label %d outside %d classes", ErrBounds, label, numClasses)
	}
	vec := make([]float32, numClasses)
	vec[label] = 1
	return vec, nil
}
