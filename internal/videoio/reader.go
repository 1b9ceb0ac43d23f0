package videoio

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"clipset/internal/clip"
)

// Size is a target frame size for resizing during reads.
type Size struct {
	Height int
	Width  int
}

// Valid reports whether both dimensions are positive.
func (s Size) Valid() bool {
	return s.Height > 0 && s.Width > 0
}

// ReadResult carries the frames read from a video file plus enough signal
// for the caller to tell a clean end-of-stream from a truncated read.
type ReadResult struct {
	// Buffer is nil when no frame could be read.
	Buffer *clip.Buffer
	// Expected is the frame count the container reported, 0 when unknown.
	Expected int
	// Truncated is set when reading stopped before the reported frame
	// count was reached.
	Truncated bool
}

// ReadFile opens a video file and reads frames sequentially until the stream
// ends or a read fails. A read failure ends accumulation; the frames read so
// far are returned with Truncated set. When resize is non-nil every frame is
// resized to it before accumulation. The capture handle is always released.
func ReadFile(path string, resize *Size) (*ReadResult, error) {
	if resize != nil && !resize.Valid() {
		return nil, fmt.Errorf("videoio: invalid resize target %dx%d", resize.Height, resize.Width)
	}

	capture, err := gocv.VideoCaptureFile(path)
	if err != nil {
		return nil, fmt.Errorf("open video %s: %w", path, err)
	}
	defer capture.Close()

	expected := int(capture.Get(gocv.VideoCaptureFrameCount))
	if expected < 0 {
		expected = 0
	}

	mat := gocv.NewMat()
	defer mat.Close()

	var (
		dims   clip.Dims
		frames [][]byte
	)
	for {
		if ok := capture.Read(&mat); !ok {
			break
		}
		if mat.Empty() {
			continue
		}
		if resize != nil {
			gocv.Resize(mat, &mat, image.Pt(resize.Width, resize.Height), 0, 0, gocv.InterpolationLinear)
		}

		frameDims := clip.Dims{Height: mat.Rows(), Width: mat.Cols(), Channels: mat.Channels()}
		if len(frames) == 0 {
			dims = frameDims
		} else if frameDims != dims {
			return nil, fmt.Errorf("videoio: frame %d is %s, previous frames are %s", len(frames), frameDims, dims)
		}
		frames = append(frames, mat.ToBytes())
	}

	buf, err := assemble(frames, dims)
	if err != nil {
		return nil, err
	}
	return &ReadResult{
		Buffer:    buf,
		Expected:  expected,
		Truncated: truncated(expected, len(frames)),
	}, nil
}

// truncated reports whether reading stopped short of the container's
// reported frame count. A zero expected count means the container reported
// nothing, so no judgment is possible.
func truncated(expected, read int) bool {
	return expected > 0 && read < expected
}

// assemble packs per-frame byte slices into a contiguous buffer. Returns nil
// for an empty frame list.
func assemble(frames [][]byte, dims clip.Dims) (*clip.Buffer, error) {
	if len(frames) == 0 {
		return nil, nil
	}
	buf, err := clip.NewBuffer(len(frames), dims)
	if err != nil {
		return nil, err
	}
	size := dims.FrameSize()
	for i, frame := range frames {
		if len(frame) != size {
			return nil, fmt.Errorf("videoio: frame %d holds %d bytes, shape %s requires %d", i, len(frame), dims, size)
		}
		copy(buf.Frame(i), frame)
	}
	return buf, nil
}

// Info describes a video file's reported stream properties.
type Info struct {
	FrameCount int
	FPS        float64
	Width      int
	Height     int
}

// Probe opens a video file and reads its reported properties without
// decoding frames.
func Probe(path string) (Info, error) {
	capture, err := gocv.VideoCaptureFile(path)
	if err != nil {
		return Info{}, fmt.Errorf("open video %s: %w", path, err)
	}
	defer capture.Close()

	return Info{
		FrameCount: int(capture.Get(gocv.VideoCaptureFrameCount)),
		FPS:        capture.Get(gocv.VideoCaptureFPS),
		Width:      int(capture.Get(gocv.VideoCaptureFrameWidth)),
		Height:     int(capture.Get(gocv.VideoCaptureFrameHeight)),
	}, nil
}
