package ipc

import (
	"github.com/danmuck/kproto/internal/observability"
	"github.com/danmuck/kproto/internal/protocol/frame"
	"github.com/rs/zerolog/log"
)

// Layout builds the frame list for k. Frame 0 is always empty and frame 1 is
// always the one-byte type code; the frame count depends only on k.
func Layout(k Kind, payload, platform, id string) ([]frame.Frame, error) {
	code, err := k.Code()
	if err != nil {
		return nil, err
	}
	switch k {
	case KindLoadURL, KindAnalysis, KindGenerate, KindInfo:
		return []frame.Frame{
			frame.Empty(),
			frame.Byte(uint8(code)),
			frame.Text(platform),
			frame.Text(id),
			frame.Text(payload),
			frame.Text(string(k)),
		}, nil
	default:
		return []frame.Frame{
			frame.Empty(),
			frame.Byte(uint8(code)),
			frame.Empty(),
		}, nil
	}
}

// Compose builds the wire frames for the named kind.
// An unknown kind is rejected with an *UnknownKindError; it never falls back
// to another layout.
func Compose(kind, payload, platform, id string) ([][]byte, error) {
	k, err := ParseKind(kind)
	if err != nil {
		log.Error().Str("kind", kind).Err(err).Msg("ipc.Compose rejected kind")
		observability.RecordCompose("unknown", false)
		return nil, err
	}
	layout, err := Layout(k, payload, platform, id)
	if err != nil {
		observability.RecordCompose(kind, false)
		return nil, err
	}
	frames := frame.Encode(layout)
	log.Debug().
		Str("kind", kind).
		Str("platform", platform).
		Str("id", id).
		Int("frames", len(frames)).
		Msg("ipc.Compose")
	observability.RecordCompose(kind, true)
	return frames, nil
}
