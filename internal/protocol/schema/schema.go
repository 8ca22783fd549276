package schema

import (
	"fmt"

	"github.com/danmuck/kproto/internal/protocol/ipc"
	"github.com/rs/zerolog/log"
)

// Frame indexes from the typed message layouts. Several names share an index
// because each message type reuses the slots after the header differently.
const (
	IndexEmpty       = ipc.IndexEmpty
	IndexType        = ipc.IndexType
	IndexPlatform    = 2
	IndexID          = 3
	IndexKIQData     = 3
	IndexInfo        = 4
	IndexUser        = 4
	IndexDescription = 4
	IndexInfoType    = 5
	IndexData        = 5
	IndexError       = 5
	IndexTaskType    = 5
	IndexURLs        = 6
	IndexRequestArgs = 6
	IndexTech        = 6
	IndexRepost      = 7
	IndexLogs        = 7
	IndexArgs        = 8
	IndexCmd         = 9
	IndexTime        = 10
)

// FieldSpec declares one frame of a message layout.
// Size is the exact byte width when non-zero.
type FieldSpec struct {
	Index    int
	Name     string
	Size     int
	Required bool
}

type ValidationError struct {
	Type   ipc.TypeCode
	Index  int
	Reason string
}

func (e ValidationError) Error() string {
	switch {
	case e.Index < 0:
		return fmt.Sprintf("schema: %s", e.Reason)
	case e.Index <= IndexType && e.Reason != ReasonUnknownType:
		return fmt.Sprintf("schema: frame=%d: %s", e.Index, e.Reason)
	}
	return fmt.Sprintf("schema: type=%s frame=%d: %s", e.Type, e.Index, e.Reason)
}

const (
	ReasonMissingHeader = "missing header frames"
	ReasonDelimiter     = "delimiter frame not empty"
	ReasonTypeWidth     = "type frame must be one byte"
	ReasonUnknownType   = "unknown type"
	ReasonMissingField  = "missing required frame"
	ReasonFieldWidth    = "unexpected frame width"
)

var layouts = map[ipc.TypeCode][]FieldSpec{
	ipc.TypeOK: {
		{Index: IndexPlatform, Name: "platform"},
		{Index: IndexID, Name: "id"},
	},
	ipc.TypeKeepalive: {},
	ipc.TypeKIQMessage: {
		{Index: IndexPlatform, Name: "platform", Required: true},
		{Index: IndexKIQData, Name: "data", Required: true},
	},
	ipc.TypePlatform: {
		{Index: IndexPlatform, Name: "platform", Required: true},
		{Index: IndexID, Name: "id", Required: true},
		{Index: IndexUser, Name: "user", Required: true},
		{Index: IndexData, Name: "content", Required: true},
		{Index: IndexURLs, Name: "urls", Required: true},
		{Index: IndexRepost, Name: "repost", Size: 1, Required: true},
		{Index: IndexArgs, Name: "args", Required: true},
		{Index: IndexCmd, Name: "cmd", Size: 4, Required: true},
		{Index: IndexTime, Name: "time", Required: true},
	},
	ipc.TypePlatformError: {
		{Index: IndexPlatform, Name: "platform", Required: true},
		{Index: IndexID, Name: "id", Required: true},
		{Index: IndexUser, Name: "user", Required: true},
		{Index: IndexError, Name: "error", Required: true},
	},
	ipc.TypePlatformRequest: {
		{Index: IndexPlatform, Name: "platform", Required: true},
		{Index: IndexID, Name: "id", Required: true},
		{Index: IndexUser, Name: "user", Required: true},
		{Index: IndexData, Name: "data", Required: true},
		{Index: IndexRequestArgs, Name: "args", Required: true},
	},
	ipc.TypePlatformInfo: {
		{Index: IndexPlatform, Name: "platform", Required: true},
		{Index: IndexID, Name: "id", Required: true},
		{Index: IndexInfo, Name: "info", Required: true},
		{Index: IndexInfoType, Name: "info_type", Required: true},
	},
	ipc.TypeFail: {
		{Index: IndexPlatform, Name: "platform"},
		{Index: IndexID, Name: "id"},
	},
	ipc.TypeStatus: {},
	ipc.TypeTask: {
		{Index: IndexPlatform, Name: "name", Required: true},
		{Index: IndexID, Name: "id", Required: true},
		{Index: IndexDescription, Name: "description", Required: true},
		{Index: IndexTaskType, Name: "type", Required: true},
		{Index: IndexTech, Name: "tech", Required: true},
		{Index: IndexLogs, Name: "logs", Required: true},
	},
}

// Fields returns the layout declared for a type code.
func Fields(code ipc.TypeCode) ([]FieldSpec, bool) {
	specs, ok := layouts[code]
	if !ok {
		return nil, false
	}
	out := make([]FieldSpec, len(specs))
	copy(out, specs)
	return out, true
}

// TypeOf reads the type code from the header frames without validating the body.
func TypeOf(frames [][]byte) (ipc.TypeCode, error) {
	if len(frames) <= IndexType {
		return 0, ValidationError{Index: -1, Reason: ReasonMissingHeader}
	}
	if len(frames[IndexEmpty]) != 0 {
		return 0, ValidationError{Index: IndexEmpty, Reason: ReasonDelimiter}
	}
	if len(frames[IndexType]) != 1 {
		return 0, ValidationError{Index: IndexType, Reason: ReasonTypeWidth}
	}
	return ipc.TypeCode(frames[IndexType][0]), nil
}

// Validate checks the header frames and the declared layout for the type.
// Frames past the declared layout are ignored.
func Validate(frames [][]byte) error {
	code, err := TypeOf(frames)
	if err != nil {
		log.Error().Err(err).Int("frames", len(frames)).Msg("schema.Validate bad header")
		return err
	}
	specs, ok := layouts[code]
	if !ok {
		log.Error().Uint8("type", uint8(code)).Msg("schema.Validate unknown type")
		return ValidationError{Type: code, Index: IndexType, Reason: ReasonUnknownType}
	}
	for _, spec := range specs {
		if spec.Index >= len(frames) {
			if !spec.Required {
				continue
			}
			log.Error().
				Str("type", code.String()).
				Int("frame", spec.Index).
				Str("field", spec.Name).
				Msg("schema.Validate missing frame")
			return ValidationError{Type: code, Index: spec.Index, Reason: ReasonMissingField}
		}
		if spec.Size != 0 && len(frames[spec.Index]) != spec.Size {
			log.Error().
				Str("type", code.String()).
				Int("frame", spec.Index).
				Int("got", len(frames[spec.Index])).
				Int("want", spec.Size).
				Msg("schema.Validate width mismatch")
			return ValidationError{Type: code, Index: spec.Index, Reason: ReasonFieldWidth}
		}
	}
	log.Debug().Str("type", code.String()).Int("frames", len(frames)).Msg("schema.Validate ok")
	return nil
}
