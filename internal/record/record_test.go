package record_test

import (
	"bytes"
	"errors"
	"io"
	"path/filepath"
	"testing"

	"clipset/internal/clip"
	"clipset/internal/record"
	"clipset/internal/testsupport"
)

func TestMessageRoundTrip(t *testing.T) {
	rec := &record.Record{
		NumFrames: 2,
		Label:     7,
		Frames:    [][]byte{{0x01, 0x02}, {0x03}},
	}
	got, err := record.Unmarshal(rec.Marshal())
	if err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}
	if got.NumFrames != 2 || got.Label != 7 || len(got.Frames) != 2 {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	if !bytes.Equal(got.Frames[0], rec.Frames[0]) || !bytes.Equal(got.Frames[1], rec.Frames[1]) {
		t.Fatal("frame payloads altered by round trip")
	}
}

func TestUnmarshalRejectsFrameCountMismatch(t *testing.T) {
	rec := &record.Record{NumFrames: 3, Label: 0, Frames: [][]byte{{0x01}}}
	if _, err := record.Unmarshal(rec.Marshal()); !errors.Is(err, record.ErrSchema) {
		t.Fatalf("expected ErrSchema, got %v", err)
	}
}

func TestContainerRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w := record.NewWriter(&buf)
	for i := 0; i < 3; i++ {
		rec := &record.Record{NumFrames: 1, Label: int64(i), Frames: [][]byte{{byte(i)}}}
		if err := w.Write(rec); err != nil {
			t.Fatalf("Write returned error: %v", err)
		}
	}

	r := record.NewReader(&buf)
	for i := 0; i < 3; i++ {
		payload, err := r.Next()
		if err != nil {
			t.Fatalf("Next %d returned error: %v", i, err)
		}
		rec, err := record.Unmarshal(payload)
		if err != nil {
			t.Fatalf("Unmarshal %d returned error: %v", i, err)
		}
		if rec.Label != int64(i) {
			t.Fatalf("record %d: unexpected label %d", i, rec.Label)
		}
	}
	if _, err := r.Next(); !errors.Is(err, io.EOF) {
		t.Fatalf("expected io.EOF at end of stream, got %v", err)
	}
}

func TestReaderDetectsCorruption(t *testing.T) {
	var buf bytes.Buffer
	w := record.NewWriter(&buf)
	rec := &record.Record{NumFrames: 1, Label: 1, Frames: [][]byte{{0xAA, 0xBB, 0xCC}}}
	if err := w.Write(rec); err != nil {
		t.Fatalf("Write returned error: %v", err)
	}

	raw := buf.Bytes()
	raw[14] ^= 0xFF // flip a payload byte

	r := record.NewReader(bytes.NewReader(raw))
	if _, err := r.Next(); !errors.Is(err, record.ErrCorrupt) {
		t.Fatalf("expected ErrCorrupt, got %v", err)
	}
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.tfrecord")
	testsupport.WriteRecordFile(t, path,
		&record.Record{NumFrames: 1, Label: 0, Frames: [][]byte{{1}}},
		&record.Record{NumFrames: 1, Label: 1, Frames: [][]byte{{1}}},
	)

	records, err := record.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile returned error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
}

func TestDecodeClipNormalizesFrames(t *testing.T) {
	dims := clip.Dims{Height: 8, Width: 6, Channels: 3}
	rec := &record.Record{
		NumFrames: 2,
		Label:     3,
		Frames: [][]byte{
			testsupport.EncodeJPEG(t, dims.Height, dims.Width, 255),
			testsupport.EncodeJPEG(t, dims.Height, dims.Width, 0),
		},
	}

	c, label, err := record.DecodeClip(rec, dims)
	if err != nil {
		t.Fatalf("DecodeClip returned error: %v", err)
	}
	if label != 3 {
		t.Fatalf("unexpected label: %d", label)
	}
	if c.FrameCount != 2 || c.Dims != dims {
		t.Fatalf("unexpected clip shape: %d frames of %s", c.FrameCount, c.Dims)
	}
	// White frame normalizes above zero, black frame below, on every channel.
	if c.At(0, 4, 3, 0) <= 0 {
		t.Fatalf("white frame normalized to %v, want positive", c.At(0, 4, 3, 0))
	}
	if c.At(1, 4, 3, 0) >= 0 {
		t.Fatalf("black frame normalized to %v, want negative", c.At(1, 4, 3, 0))
	}
}

func TestDecodeClipRejectsShapeMismatch(t *testing.T) {
	dims := clip.Dims{Height: 8, Width: 6, Channels: 3}
	rec := &record.Record{
		NumFrames: 1,
		Label:     0,
		Frames:    [][]byte{testsupport.EncodeJPEG(t, 4, 4, 128)},
	}
	if _, _, err := record.DecodeClip(rec, dims); !errors.Is(err, record.ErrShapeMismatch) {
		t.Fatalf("expected ErrShapeMismatch, got %v", err)
	}
}

func TestDecodeClipGrayscale(t *testing.T) {
	dims := clip.Dims{Height: 5, Width: 5, Channels: 1}
	rec := &record.Record{
		NumFrames: 1,
		Label:     0,
		Frames:    [][]byte{testsupport.EncodeGrayJPEG(t, 5, 5, 200)},
	}
	c, _, err := record.DecodeClip(rec, dims)
	if err != nil {
		t.Fatalf("DecodeClip returned error: %v", err)
	}
	if c.Dims.Channels != 1 {
		t.Fatalf("unexpected channel count: %d", c.Dims.Channels)
	}
	if c.At(0, 2, 2, 0) <= 0 {
		t.Fatalf("bright gray frame normalized to %v, want positive", c.At(0, 2, 2, 0))
	}
}

func TestDecodeClipRejectsChannelMismatch(t *testing.T) {
	gray := testsupport.EncodeGrayJPEG(t, 8, 6, 128)
	color := testsupport.EncodeJPEG(t, 8, 6, 128)

	rec := &record.Record{NumFrames: 1, Label: 0, Frames: [][]byte{gray}}
	dims := clip.Dims{Height: 8, Width: 6, Channels: 3}
	if _, _, err := record.DecodeClip(rec, dims); !errors.Is(err, record.ErrShapeMismatch) {
		t.Fatalf("gray frame into 3-channel shape: expected ErrShapeMismatch, got %v", err)
	}

	rec = &record.Record{NumFrames: 1, Label: 0, Frames: [][]byte{color}}
	dims = clip.Dims{Height: 8, Width: 6, Channels: 1}
	if _, _, err := record.DecodeClip(rec, dims); !errors.Is(err, record.ErrShapeMismatch) {
		t.Fatalf("color frame into 1-channel shape: expected ErrShapeMismatch, got %v", err)
	}
}
