package videoio

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// ExtractFrames dumps frames from a video file to numbered JPEG files in
// outDir. When fps is positive the stream is resampled to that rate; when
// size is non-nil frames are scaled to it. Returns the number of frames
// written.
func ExtractFrames(input, outDir string, fps int, size *Size) (int, error) {
	if size != nil && !size.Valid() {
		return 0, fmt.Errorf("videoio: invalid extract target %dx%d", size.Height, size.Width)
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return 0, fmt.Errorf("create output directory: %w", err)
	}

	stream := ffmpeg.Input(input)
	if fps > 0 {
		stream = stream.Filter("fps", ffmpeg.Args{strconv.Itoa(fps)})
	}
	if size != nil {
		stream = stream.Filter("scale", ffmpeg.Args{fmt.Sprintf("%d:%d", size.Width, size.Height)})
	}

	pattern := filepath.Join(outDir, "frame_%05d.jpg")
	err := stream.
		Output(pattern, ffmpeg.KwArgs{"qscale:v": 2}).
		OverWriteOutput().
		Silent(true).
		Run()
	if err != nil {
		return 0, fmt.Errorf("extract frames from %s: %w", input, err)
	}

	written, err := filepath.Glob(filepath.Join(outDir, "frame_*.jpg"))
	if err != nil {
		return 0, fmt.Errorf("count extracted frames: %w", err)
	}
	return len(written), nil
}
