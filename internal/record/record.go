// Package record reads and writes serialized video records. A record file is
// a sequence of length-prefixed, CRC-guarded frames (the TFRecord container
// layout), each carrying one protobuf message with three fields: the frame
// count, the integer class label, and the JPEG-encoded frames themselves.
//
// Messages are parsed directly with protowire; the schema is small and fixed,
// so no generated code is involved.
package record

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"io"

	"google.golang.org/protobuf/encoding/protowire"
)

// Field numbers of the record message.
const (
	fieldNumFrames = 1
	fieldLabel     = 2
	fieldFrames    = 3
)

var (
	// ErrCorrupt reports framing-level damage: a failed CRC or a truncated
	// length prefix.
	ErrCorrupt = errors.New("record: corrupt record frame")

	// ErrSchema reports a payload that does not match the record schema.
	ErrSchema = errors.New("record: malformed record message")
)

// Record is one decoded video record. Frames holds the still-encoded JPEG
// bytes for each frame.
type Record struct {
	NumFrames int64
	Label     int64
	Frames    [][]byte
}

var castagnoli = crc32.MakeTable(crc32.Castagnoli)

const crcMaskDelta = 0xa282ead8

// maskedCRC computes the masked CRC32-C the container format stores next to
// each length and payload.
func maskedCRC(b []byte) uint32 {
	c := crc32.Checksum(b, castagnoli)
	return ((c >> 15) | (c << 17)) + crcMaskDelta
}

// Reader iterates the record frames of a container stream.
type Reader struct {
	r *bufio.Reader
}

// NewReader wraps r for sequential record reading.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: bufio.NewReader(r)}
}

// Next returns the payload of the next record frame, verifying both CRCs.
// It returns io.EOF at a clean end of stream.
func (r *Reader) Next() ([]byte, error) {
	var header [12]byte
	if _, err := io.ReadFull(r.r, header[:]); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("%w: truncated length prefix: %v", ErrCorrupt, err)
	}

	length := binary.LittleEndian.Uint64(header[:8])
	lengthCRC := binary.LittleEndian.Uint32(header[8:12])
	if maskedCRC(header[:8]) != lengthCRC {
		return nil, fmt.Errorf("%w: length checksum mismatch", ErrCorrupt)
	}

	payload := make([]byte, length)
	if _, err := io.ReadFull(r.r, payload); err != nil {
		return nil, fmt.Errorf("%w: truncated payload: %v", ErrCorrupt, err)
	}

	var footer [4]byte
	if _, err := io.ReadFull(r.r, footer[:]); err != nil {
		return nil, fmt.Errorf("%w: truncated payload checksum: %v", ErrCorrupt, err)
	}
	if maskedCRC(payload) != binary.LittleEndian.Uint32(footer[:]) {
		return nil, fmt.Errorf("%w: payload checksum mismatch", ErrCorrupt)
	}

	return payload, nil
}

// Unmarshal parses one record message.
func Unmarshal(b []byte) (*Record, error) {
	rec := &Record{}
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, fmt.Errorf("%w: bad tag", ErrSchema)
		}
		b = b[n:]

		switch num {
		case fieldNumFrames, fieldLabel:
			if typ != protowire.VarintType {
				return nil, fmt.Errorf("%w: field %d has wire type %d, want varint", ErrSchema, num, typ)
			}
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, fmt.Errorf("%w: bad varint in field %d", ErrSchema, num)
			}
			b = b[n:]
			if num == fieldNumFrames {
				rec.NumFrames = int64(v)
			} else {
				rec.Label = int64(v)
			}
		case fieldFrames:
			if typ != protowire.BytesType {
				return nil, fmt.Errorf("%w: field %d has wire type %d, want bytes", ErrSchema, num, typ)
			}
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, fmt.Errorf("%w: bad bytes in field %d", ErrSchema, num)
			}
			b = b[n:]
			frame := make([]byte, len(v))
			copy(frame, v)
			rec.Frames = append(rec.Frames, frame)
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return nil, fmt.Errorf("%w: bad unknown field %d", ErrSchema, num)
			}
			b = b[n:]
		}
	}

	if rec.NumFrames != int64(len(rec.Frames)) {
		return nil, fmt.Errorf("%w: declares %d frames, carries %d", ErrSchema, rec.NumFrames, len(rec.Frames))
	}
	return rec, nil
}

// Marshal encodes the record message.
func (rec *Record) Marshal() []byte {
	var b []byte
	b = protowire.AppendTag(b, fieldNumFrames, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(rec.NumFrames))
	b = protowire.AppendTag(b, fieldLabel, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(rec.Label))
	for _, frame := range rec.Frames {
		b = protowire.AppendTag(b, fieldFrames, protowire.BytesType)
		b = protowire.AppendBytes(b, frame)
	}
	return b
}
