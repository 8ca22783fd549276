package ipc

import (
	"fmt"
	"strings"
)

// TypeCode is the one-byte message type carried in frame 1.
type TypeCode uint8

const (
	TypeOK              TypeCode = 0x00
	TypeKeepalive       TypeCode = 0x01
	TypeKIQMessage      TypeCode = 0x02
	TypePlatform        TypeCode = 0x03
	TypePlatformError   TypeCode = 0x04
	TypePlatformRequest TypeCode = 0x05
	TypePlatformInfo    TypeCode = 0x06
	TypeFail            TypeCode = 0x07
	TypeStatus          TypeCode = 0x08
	// TypeTask is only produced by the typed message layer.
	TypeTask TypeCode = 0x09
)

// Frame positions shared by every message.
const (
	IndexEmpty = 0
	IndexType  = 1
)

var typeNames = map[TypeCode]string{
	TypeOK:              "IPC_OK_TYPE",
	TypeKeepalive:       "IPC_KEEPALIVE_TYPE",
	TypeKIQMessage:      "IPC_KIQ_MESSAGE",
	TypePlatform:        "IPC_PLATFORM_TYPE",
	TypePlatformError:   "IPC_PLATFORM_ERROR",
	TypePlatformRequest: "IPC_PLATFORM_REQUEST",
	TypePlatformInfo:    "IPC_PLATFORM_INFO",
	TypeFail:            "IPC_FAIL_TYPE",
	TypeStatus:          "IPC_STATUS",
	TypeTask:            "IPC_TASK_TYPE",
}

func (t TypeCode) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("IPC_UNKNOWN(0x%02x)", uint8(t))
}

// Known reports whether t is a defined type code.
func (t TypeCode) Known() bool {
	_, ok := typeNames[t]
	return ok
}

// ParseTypeName maps an IPC_* name back to its code.
func ParseTypeName(name string) (TypeCode, bool) {
	name = strings.ToUpper(strings.TrimSpace(name))
	for code, n := range typeNames {
		if n == name {
			return code, true
		}
	}
	return 0, false
}

// Kind is the symbolic message kind accepted by Compose.
type Kind string

const (
	KindLoadURL   Kind = "loadurl"
	KindAnalysis  Kind = "analysis"
	KindGenerate  Kind = "generate"
	KindInfo      Kind = "info"
	KindOK        Kind = "ok"
	KindKeepalive Kind = "keepalive"
	KindKIQ       Kind = "kiq"
	KindPlatform  Kind = "platform"
	KindError     Kind = "error"
	KindRequest   Kind = "request"
	KindFail      Kind = "fail"
	KindStatus    Kind = "status"
)

// Kinds lists every kind in a stable order.
func Kinds() []Kind {
	return []Kind{
		KindLoadURL,
		KindAnalysis,
		KindGenerate,
		KindInfo,
		KindOK,
		KindKeepalive,
		KindKIQ,
		KindPlatform,
		KindError,
		KindRequest,
		KindFail,
		KindStatus,
	}
}

// ParseKind validates a kind name. Names are matched exactly.
func ParseKind(name string) (Kind, error) {
	k := Kind(name)
	if _, err := k.Code(); err != nil {
		return "", err
	}
	return k, nil
}

// Code returns the type code a kind is sent with.
func (k Kind) Code() (TypeCode, error) {
	switch k {
	case KindLoadURL, KindAnalysis, KindGenerate, KindInfo:
		return TypePlatformInfo, nil
	case KindOK:
		return TypeOK, nil
	case KindKeepalive:
		return TypeKeepalive, nil
	case KindKIQ:
		return TypeKIQMessage, nil
	case KindPlatform:
		return TypePlatform, nil
	case KindError:
		return TypePlatformError, nil
	case KindRequest:
		return TypePlatformRequest, nil
	case KindFail:
		return TypeFail, nil
	case KindStatus:
		return TypeStatus, nil
	default:
		return 0, &UnknownKindError{Kind: string(k)}
	}
}

// CarriesPayload reports whether the kind uses the PLATFORM_INFO layout.
func (k Kind) CarriesPayload() bool {
	code, err := k.Code()
	return err == nil && code == TypePlatformInfo
}
