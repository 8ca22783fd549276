package frame

import (
	"bytes"
	"errors"
	"testing"
)

func TestByteFrameIsSingleRawByte(t *testing.T) {
	f := Byte(0x06)
	got := f.Bytes()
	if !bytes.Equal(got, []byte{0x06}) {
		t.Fatalf("expected raw byte 0x06, got %v", got)
	}
	if string(got) == "6" {
		t.Fatalf("byte frame encoded as text digit")
	}
	v, err := f.ByteValue()
	if err != nil || v != 0x06 {
		t.Fatalf("byte value: v=%d err=%v", v, err)
	}
}

func TestTextAndEmptyFrames(t *testing.T) {
	if Text("").Kind() != KindEmpty {
		t.Fatalf("empty text should collapse to empty frame")
	}
	if got := Empty().Bytes(); got == nil || len(got) != 0 {
		t.Fatalf("empty frame should serialize to zero bytes, got %v", got)
	}
	f := Text("héllo")
	if f.Len() != len("héllo") {
		t.Fatalf("unexpected len: %d", f.Len())
	}
	if string(f.Bytes()) != "héllo" {
		t.Fatalf("unexpected bytes: %q", f.Bytes())
	}
	if _, err := f.ByteValue(); !errors.Is(err, ErrKindMismatch) {
		t.Fatalf("expected ErrKindMismatch, got %v", err)
	}
}

func TestRawFrameDoesNotAlias(t *testing.T) {
	src := []byte{1, 2, 3}
	f := Raw(src)
	src[0] = 9
	out := f.Bytes()
	if out[0] != 1 {
		t.Fatalf("raw frame aliased caller buffer")
	}
	out[1] = 9
	if f.Bytes()[1] != 2 {
		t.Fatalf("Bytes returned shared storage")
	}
}

func TestEncodePreservesOrder(t *testing.T) {
	out := Encode([]Frame{Empty(), Byte(3), Text("web"), Bool(true), Uint32(0x01020304)})
	want := [][]byte{{}, {3}, []byte("web"), {1}, {1, 2, 3, 4}}
	if len(out) != len(want) {
		t.Fatalf("expected %d frames, got %d", len(want), len(out))
	}
	for i := range want {
		if !bytes.Equal(out[i], want[i]) {
			t.Fatalf("frame %d mismatch: got=%v want=%v", i, out[i], want[i])
		}
	}
}

func TestTypedAccessors(t *testing.T) {
	v, err := Uint32Of([]byte{0, 0, 1, 0})
	if err != nil || v != 256 {
		t.Fatalf("uint32: v=%d err=%v", v, err)
	}
	if _, err := Uint32Of([]byte{1, 2}); !errors.Is(err, ErrInvalidLength) {
		t.Fatalf("expected ErrInvalidLength, got %v", err)
	}
	b, err := BoolOf([]byte{0x02})
	if err != nil || !b {
		t.Fatalf("bool: v=%v err=%v", b, err)
	}
	if _, err := BoolOf(nil); !errors.Is(err, ErrInvalidLength) {
		t.Fatalf("expected ErrInvalidLength, got %v", err)
	}
	if _, err := Uint8Of([]byte{1, 2}); !errors.Is(err, ErrInvalidLength) {
		t.Fatalf("expected ErrInvalidLength, got %v", err)
	}
}
