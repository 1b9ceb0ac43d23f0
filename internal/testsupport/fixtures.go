package testsupport

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"testing"

	"clipset/internal/record"
)

// EncodeJPEG returns a solid-shade JPEG of the given dimensions.
func EncodeJPEG(t testing.TB, height, width int, shade uint8) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: shade, G: shade, B: shade, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 95}); err != nil {
		t.Fatalf("encode jpeg fixture: %v", err)
	}
	return buf.Bytes()
}

// EncodeGrayJPEG returns a solid-shade single-channel JPEG of the given
// dimensions.
func EncodeGrayJPEG(t testing.TB, height, width int, shade uint8) []byte {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, width, height))
	for i := range img.Pix {
		img.Pix[i] = shade
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 95}); err != nil {
		t.Fatalf("encode gray jpeg fixture: %v", err)
	}
	return buf.Bytes()
}

// WriteRecordFile writes records to a container file at path.
func WriteRecordFile(t testing.TB, path string, records ...*record.Record) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create record fixture: %v", err)
	}
	w := record.NewWriter(f)
	for _, rec := range records {
		if err := w.Write(rec); err != nil {
			t.Fatalf("write record fixture: %v", err)
		}
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close record fixture: %v", err)
	}
}
