package frame

import (
	"encoding/binary"
	"errors"
	"fmt"
)

var (
	ErrInvalidLength = errors.New("frame: invalid length")
	ErrKindMismatch  = errors.New("frame: kind mismatch")
)

// Kind tags how a Frame value is serialized.
type Kind uint8

const (
	KindEmpty Kind = iota
	KindByte
	KindText
	KindRaw
)

func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindByte:
		return "byte"
	case KindText:
		return "text"
	case KindRaw:
		return "raw"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Frame is one element of a multi-frame message.
// A Byte frame serializes as a single raw byte, never as a text digit.
type Frame struct {
	kind Kind
	b    byte
	text string
	raw  []byte
}

// Empty returns the zero-length frame.
func Empty() Frame {
	return Frame{kind: KindEmpty}
}

// Byte returns a frame holding exactly one raw byte.
func Byte(v uint8) Frame {
	return Frame{kind: KindByte, b: v}
}

// Text returns a frame holding the UTF-8 bytes of s.
func Text(s string) Frame {
	if s == "" {
		return Empty()
	}
	return Frame{kind: KindText, text: s}
}

// Raw returns a frame holding a copy of b.
func Raw(b []byte) Frame {
	if len(b) == 0 {
		return Empty()
	}
	buf := make([]byte, len(b))
	copy(buf, b)
	return Frame{kind: KindRaw, raw: buf}
}

// Bool returns a one-byte frame: 0x01 for true, 0x00 for false.
func Bool(v bool) Frame {
	if v {
		return Byte(1)
	}
	return Byte(0)
}

// Uint32 returns a four-byte big-endian frame.
func Uint32(v uint32) Frame {
	buf := make([]byte, 4)
	binary.BigEndian.PutUint32(buf, v)
	return Frame{kind: KindRaw, raw: buf}
}

func (f Frame) Kind() Kind {
	return f.kind
}

// Len is the serialized length in bytes.
func (f Frame) Len() int {
	switch f.kind {
	case KindByte:
		return 1
	case KindText:
		return len(f.text)
	case KindRaw:
		return len(f.raw)
	default:
		return 0
	}
}

// Bytes serializes the frame. The returned slice is never shared with f.
func (f Frame) Bytes() []byte {
	switch f.kind {
	case KindByte:
		return []byte{f.b}
	case KindText:
		return []byte(f.text)
	case KindRaw:
		buf := make([]byte, len(f.raw))
		copy(buf, f.raw)
		return buf
	default:
		return []byte{}
	}
}

// ByteValue returns the value of a Byte frame.
func (f Frame) ByteValue() (uint8, error) {
	if f.kind != KindByte {
		return 0, ErrKindMismatch
	}
	return f.b, nil
}

// TextValue returns the value of a Text or Empty frame.
func (f Frame) TextValue() (string, error) {
	switch f.kind {
	case KindText:
		return f.text, nil
	case KindEmpty:
		return "", nil
	default:
		return "", ErrKindMismatch
	}
}

func (f Frame) String() string {
	switch f.kind {
	case KindByte:
		return fmt.Sprintf("0x%02x", f.b)
	case KindText:
		return fmt.Sprintf("%q", f.text)
	case KindRaw:
		return fmt.Sprintf("% x", f.raw)
	default:
		return `""`
	}
}

// Encode serializes frames in order.
func Encode(frames []Frame) [][]byte {
	out := make([][]byte, len(frames))
	for i, f := range frames {
		out[i] = f.Bytes()
	}
	return out
}

// Copy deep-copies a serialized frame list.
func Copy(frames [][]byte) [][]byte {
	out := make([][]byte, len(frames))
	for i, f := range frames {
		buf := make([]byte, len(f))
		copy(buf, f)
		out[i] = buf
	}
	return out
}

// Strings converts serialized frames to their text form.
func Strings(frames [][]byte) []string {
	out := make([]string, len(frames))
	for i, f := range frames {
		out[i] = string(f)
	}
	return out
}

// Uint8Of reads a one-byte frame.
func Uint8Of(b []byte) (uint8, error) {
	if len(b) != 1 {
		return 0, ErrInvalidLength
	}
	return b[0], nil
}

// BoolOf reads a one-byte frame; any non-zero value is true.
func BoolOf(b []byte) (bool, error) {
	if len(b) != 1 {
		return false, ErrInvalidLength
	}
	return b[0] != 0x00, nil
}

// Uint32Of reads a four-byte big-endian frame.
func Uint32Of(b []byte) (uint32, error) {
	if len(b) != 4 {
		return 0, fmt.Errorf("%w: u32 frame has %d bytes", ErrInvalidLength, len(b))
	}
	return binary.BigEndian.Uint32(b), nil
}
