package ipc

import (
	"strings"

	"github.com/danmuck/kproto/internal/observability"
	"github.com/danmuck/kproto/internal/protocol/frame"
	"github.com/rs/zerolog/log"
)

const (
	// IndexInfoPayload holds the payload of PLATFORM_INFO messages.
	IndexInfoPayload = 4
	// IndexData holds the payload of every other message type.
	IndexData = 3

	escapedComma = "%2C"
)

// Extract returns the payload of a received message whose frames have
// already been converted to text. Frame 1 must still start with the raw
// type code byte.
//
// PLATFORM_INFO payloads have "%2C" unescaped to ",". Any sequence too short
// for the addressed frame fails with ErrMalformedMessage, including the
// two-frame layouts Compose emits for ok, keepalive and the other fixed kinds.
func Extract(frames []string) (string, error) {
	payload, code, err := extract(frames)
	if err != nil {
		log.Error().Int("frames", len(frames)).Err(err).Msg("ipc.Extract rejected message")
		observability.RecordExtract(typeLabel(frames, code), false)
		return "", err
	}
	log.Debug().Str("type", code.String()).Int("bytes", len(payload)).Msg("ipc.Extract")
	observability.RecordExtract(code.String(), true)
	return payload, nil
}

// ExtractFrames is Extract for raw byte frames.
func ExtractFrames(frames [][]byte) (string, error) {
	return Extract(frame.Strings(frames))
}

func extract(frames []string) (string, TypeCode, error) {
	if len(frames) <= IndexType {
		return "", 0, malformed("missing type frame (%d frames)", len(frames))
	}
	if len(frames[IndexType]) == 0 {
		return "", 0, malformed("empty type frame")
	}
	code := TypeCode(frames[IndexType][0])
	if code == TypePlatformInfo {
		if len(frames) <= IndexInfoPayload {
			return "", code, malformed("%s needs frame %d, got %d frames", code, IndexInfoPayload, len(frames))
		}
		return strings.ReplaceAll(frames[IndexInfoPayload], escapedComma, ","), code, nil
	}
	if len(frames) <= IndexData {
		return "", code, malformed("%s needs frame %d, got %d frames", code, IndexData, len(frames))
	}
	return frames[IndexData], code, nil
}

// typeLabel names the metric series for frames; a missing or empty type frame
// is "invalid" rather than the zero code.
func typeLabel(frames []string, code TypeCode) string {
	if len(frames) <= IndexType || len(frames[IndexType]) == 0 {
		return "invalid"
	}
	return code.String()
}
