package message

import (
	"errors"
	"fmt"

	"github.com/danmuck/kproto/internal/observability"
	"github.com/danmuck/kproto/internal/protocol/frame"
	"github.com/danmuck/kproto/internal/protocol/ipc"
	"github.com/danmuck/kproto/internal/protocol/schema"
	"github.com/rs/zerolog/log"
)

var (
	ErrMalformed   = errors.New("message: malformed frames")
	ErrUnknownType = errors.New("message: unknown type")
)

// Decode builds a typed message from received frames. The frames are
// validated against the type's layout and copied; frames past the layout are
// dropped.
func Decode(frames [][]byte) (Message, error) {
	return decode(frames, false)
}

// DecodeLenient is Decode, except an unknown type code yields a *Raw message
// holding every frame instead of an error.
func DecodeLenient(frames [][]byte) (Message, error) {
	return decode(frames, true)
}

func decode(frames [][]byte, lenient bool) (Message, error) {
	code, err := schema.TypeOf(frames)
	if err != nil {
		observability.RecordDecode("invalid", false, 0)
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	if !code.Known() {
		if lenient {
			log.Warn().Uint8("type", uint8(code)).Int("frames", len(frames)).Msg("message.Decode keeping unknown type")
			observability.RecordDecode("unknown", true, size(frames))
			return &Raw{base{frames: frame.Copy(frames)}}, nil
		}
		log.Error().Uint8("type", uint8(code)).Msg("message.Decode unknown type")
		observability.RecordDecode("unknown", false, 0)
		return nil, fmt.Errorf("%w: 0x%02x", ErrUnknownType, uint8(code))
	}
	if err := schema.Validate(frames); err != nil {
		observability.RecordDecode(code.String(), false, 0)
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	b := base{frames: frame.Copy(trim(frames, code))}
	var msg Message
	switch code {
	case ipc.TypeOK:
		msg = &OK{b}
	case ipc.TypeKeepalive:
		msg = &Keepalive{b}
	case ipc.TypeKIQMessage:
		msg = &KIQ{b}
	case ipc.TypePlatform:
		msg = &Platform{b}
	case ipc.TypePlatformError:
		msg = &PlatformError{b}
	case ipc.TypePlatformRequest:
		msg = &PlatformRequest{b}
	case ipc.TypePlatformInfo:
		msg = &PlatformInfo{b}
	case ipc.TypeFail:
		msg = &Fail{b}
	case ipc.TypeStatus:
		msg = &Status{b}
	case ipc.TypeTask:
		msg = &Task{b}
	default:
		// Known() and the switch above cover the same set.
		return nil, fmt.Errorf("%w: 0x%02x", ErrUnknownType, uint8(code))
	}
	log.Debug().Str("type", code.String()).Int("frames", len(b.frames)).Msg("message.Decode")
	observability.RecordDecode(code.String(), true, size(b.frames))
	return msg, nil
}

// trim keeps the header plus the frames the layout declares.
func trim(frames [][]byte, code ipc.TypeCode) [][]byte {
	specs, _ := schema.Fields(code)
	n := schema.IndexType + 1
	for _, spec := range specs {
		if spec.Index+1 > n {
			n = spec.Index + 1
		}
	}
	if n > len(frames) {
		n = len(frames)
	}
	return frames[:n]
}

func size(frames [][]byte) int {
	total := 0
	for _, f := range frames {
		total += len(f)
	}
	return total
}
