package record

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Writer appends record frames to a container stream.
type Writer struct {
	w io.Writer
}

// NewWriter wraps w for record writing.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Write frames one encoded record message with its length and CRCs.
func (w *Writer) Write(rec *Record) error {
	payload := rec.Marshal()

	var header [12]byte
	binary.LittleEndian.PutUint64(header[:8], uint64(len(payload)))
	binary.LittleEndian.PutUint32(header[8:12], maskedCRC(header[:8]))
	if _, err := w.w.Write(header[:]); err != nil {
		return fmt.Errorf("write record header: %w", err)
	}
	if _, err := w.w.Write(payload); err != nil {
		return fmt.Errorf("write record payload: %w", err)
	}

	var footer [4]byte
	binary.LittleEndian.PutUint32(footer[:], maskedCRC(payload))
	if _, err := w.w.Write(footer[:]); err != nil {
		return fmt.Errorf("write record checksum: %w", err)
	}
	return nil
}
