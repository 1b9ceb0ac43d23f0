package videoio

import (
	"testing"

	"clipset/internal/clip"
)

func TestAssemblePacksFramesContiguously(t *testing.T) {
	dims := clip.Dims{Height: 2, Width: 2, Channels: 1}
	frames := [][]byte{
		{1, 2, 3, 4},
		{5, 6, 7, 8},
	}
	buf, err := assemble(frames, dims)
	if err != nil {
		t.Fatalf("assemble returned error: %v", err)
	}
	if buf.FrameCount != 2 {
		t.Fatalf("unexpected frame count: %d", buf.FrameCount)
	}
	if err := buf.Validate(); err != nil {
		t.Fatalf("assembled buffer invalid: %v", err)
	}
	if buf.Frame(1)[0] != 5 || buf.Frame(1)[3] != 8 {
		t.Fatalf("frame 1 misplaced: %v", buf.Frame(1))
	}
}

func TestAssembleEmptyReturnsNil(t *testing.T) {
	buf, err := assemble(nil, clip.Dims{})
	if err != nil {
		t.Fatalf("assemble returned error: %v", err)
	}
	if buf != nil {
		t.Fatalf("expected nil buffer for empty input, got %+v", buf)
	}
}

func TestAssembleRejectsShortFrame(t *testing.T) {
	dims := clip.Dims{Height: 2, Width: 2, Channels: 1}
	if _, err := assemble([][]byte{{1, 2, 3}}, dims); err == nil {
		t.Fatal("expected error for undersized frame")
	}
}

func TestTruncatedSignal(t *testing.T) {
	cases := []struct {
		name           string
		expected, read int
		want           bool
	}{
		{"unknown frame count", 0, 3, false},
		{"short read", 10, 7, true},
		{"exact read", 10, 10, false},
		{"extra frames", 10, 12, false},
		{"nothing read", 5, 0, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := truncated(tc.expected, tc.read); got != tc.want {
				t.Fatalf("truncated(%d, %d) = %v, want %v", tc.expected, tc.read, got, tc.want)
			}
		})
	}
}

func TestSizeValid(t *testing.T) {
	if (Size{Height: 0, Width: 10}).Valid() {
		t.Fatal("zero height must be invalid")
	}
	if !(Size{Height: 128, Width: 128}).Valid() {
		t.Fatal("positive size must be valid")
	}
}

func TestReadFileRejectsInvalidResize(t *testing.T) {
	if _, err := ReadFile("missing.mp4", &Size{Height: -1, Width: 5}); err == nil {
		t.Fatal("expected error for invalid resize target")
	}
}
