package ipc

import (
	"bytes"
	"errors"
	"testing"

	"github.com/danmuck/kproto/internal/testutil/testlog"
	"github.com/prometheus/client_golang/prometheus"
)

var fixedKinds = map[Kind]TypeCode{
	KindOK:        TypeOK,
	KindKeepalive: TypeKeepalive,
	KindKIQ:       TypeKIQMessage,
	KindPlatform:  TypePlatform,
	KindError:     TypePlatformError,
	KindRequest:   TypePlatformRequest,
	KindFail:      TypeFail,
	KindStatus:    TypeStatus,
}

var infoKinds = []Kind{KindLoadURL, KindAnalysis, KindGenerate, KindInfo}

func TestComposeHeaderFramesForEveryKind(t *testing.T) {
	testlog.Start(t)
	for _, k := range Kinds() {
		frames, err := Compose(string(k), "payload", "web", "req-1")
		if err != nil {
			t.Fatalf("compose %s: %v", k, err)
		}
		if len(frames) < 2 {
			t.Fatalf("%s: expected header frames, got %d", k, len(frames))
		}
		if len(frames[IndexEmpty]) != 0 {
			t.Fatalf("%s: frame 0 not empty: %v", k, frames[IndexEmpty])
		}
		want, _ := k.Code()
		if len(frames[IndexType]) != 1 || frames[IndexType][0] != byte(want) {
			t.Fatalf("%s: type frame mismatch: got=%v want=0x%02x", k, frames[IndexType], byte(want))
		}
	}
}

func TestComposePlatformInfoLayout(t *testing.T) {
	testlog.Start(t)
	frames, err := Compose("loadurl", "https://example.com", "web", "req-1")
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	want := [][]byte{
		{},
		{0x06},
		[]byte("web"),
		[]byte("req-1"),
		[]byte("https://example.com"),
		[]byte("loadurl"),
	}
	if len(frames) != len(want) {
		t.Fatalf("expected %d frames, got %d", len(want), len(frames))
	}
	for i := range want {
		if !bytes.Equal(frames[i], want[i]) {
			t.Fatalf("frame %d mismatch: got=%q want=%q", i, frames[i], want[i])
		}
	}
}

func TestComposeDefaultIDIsEmptyFrame(t *testing.T) {
	testlog.Start(t)
	frames, err := Compose("generate", "prompt", "kai", "")
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	if len(frames) != 6 || len(frames[3]) != 0 {
		t.Fatalf("expected empty id frame, got %q", frames)
	}
}

func TestExtractRoundTripInfoKinds(t *testing.T) {
	testlog.Start(t)
	for _, k := range infoKinds {
		frames, err := Compose(string(k), "hello, world", "web", "req-1")
		if err != nil {
			t.Fatalf("compose %s: %v", k, err)
		}
		got, err := ExtractFrames(frames)
		if err != nil {
			t.Fatalf("extract %s: %v", k, err)
		}
		if got != "hello, world" {
			t.Fatalf("%s: expected %q, got %q", k, "hello, world", got)
		}
	}
}

func TestFixedKindsHaveTwoPostHeaderFramesAndCannotBeExtracted(t *testing.T) {
	testlog.Start(t)
	for k, code := range fixedKinds {
		frames, err := Compose(string(k), "ignored", "web", "req-1")
		if err != nil {
			t.Fatalf("compose %s: %v", k, err)
		}
		if len(frames) != 3 {
			t.Fatalf("%s: expected empty frame + 2 post-header frames, got %d", k, len(frames))
		}
		if frames[1][0] != byte(code) || len(frames[2]) != 0 {
			t.Fatalf("%s: unexpected layout %v", k, frames)
		}
		got, err := ExtractFrames(frames)
		if !errors.Is(err, ErrMalformedMessage) {
			t.Fatalf("%s: expected ErrMalformedMessage, got payload=%q err=%v", k, got, err)
		}
	}
}

func TestComposeUnknownKind(t *testing.T) {
	testlog.Start(t)
	frames, err := Compose("bogus-kind", "x", "p", "")
	if frames != nil {
		t.Fatalf("expected no frames, got %v", frames)
	}
	if !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("expected ErrUnknownKind, got %v", err)
	}
	var uk *UnknownKindError
	if !errors.As(err, &uk) || uk.Kind != "bogus-kind" {
		t.Fatalf("expected UnknownKindError naming the kind, got %v", err)
	}
}

func TestParseKindIsExact(t *testing.T) {
	testlog.Start(t)
	for _, name := range []string{"", "OK", " ok", "loadURL", "task"} {
		if _, err := ParseKind(name); !errors.Is(err, ErrUnknownKind) {
			t.Fatalf("%q: expected ErrUnknownKind, got %v", name, err)
		}
	}
}

func TestExtractUnescapesPlatformInfoCommas(t *testing.T) {
	testlog.Start(t)
	frames := []string{"", string([]byte{byte(TypePlatformInfo)}), "web", "req-1", "a%2Cb%2Cc", "info"}
	got, err := Extract(frames)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if got != "a,b,c" {
		t.Fatalf("expected a,b,c got %q", got)
	}
}

func TestExtractOtherTypesReturnFrameThreeVerbatim(t *testing.T) {
	testlog.Start(t)
	frames := []string{"", string([]byte{byte(TypeKIQMessage)}), "kiq", "x%2Cy"}
	got, err := Extract(frames)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if got != "x%2Cy" {
		t.Fatalf("expected verbatim frame 3, got %q", got)
	}
}

func TestExtractShortSequencesFail(t *testing.T) {
	testlog.Start(t)
	cases := map[string][]string{
		"nil":          nil,
		"delimiter":    {""},
		"empty type":   {"", ""},
		"kiq header":   {"", "\x02", "kiq"},
		"info no data": {"", "\x06", "web", "req-1"},
	}
	for name, frames := range cases {
		got, err := Extract(frames)
		if !errors.Is(err, ErrMalformedMessage) {
			t.Fatalf("%s: expected ErrMalformedMessage, got payload=%q err=%v", name, got, err)
		}
	}
}

func TestTypeCodeNames(t *testing.T) {
	testlog.Start(t)
	if TypePlatformInfo.String() != "IPC_PLATFORM_INFO" {
		t.Fatalf("unexpected name %q", TypePlatformInfo.String())
	}
	code, ok := ParseTypeName("ipc_status")
	if !ok || code != TypeStatus {
		t.Fatalf("parse type name: code=%v ok=%v", code, ok)
	}
	if TypeCode(0x42).Known() {
		t.Fatalf("0x42 should be unknown")
	}
}

func extractCount(t *testing.T, typ, success string) float64 {
	t.Helper()
	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	for _, mf := range families {
		if mf.GetName() != "kproto_codec_extract_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			labels := map[string]string{}
			for _, lp := range m.GetLabel() {
				labels[lp.GetName()] = lp.GetValue()
			}
			if labels["type"] == typ && labels["success"] == success {
				return m.GetCounter().GetValue()
			}
		}
	}
	return 0
}

func TestExtractMissingTypeCountsAsInvalid(t *testing.T) {
	testlog.Start(t)
	invalidBefore := extractCount(t, "invalid", "false")
	okBefore := extractCount(t, TypeOK.String(), "false")

	for _, frames := range [][]string{nil, {""}, {"", ""}} {
		if _, err := Extract(frames); !errors.Is(err, ErrMalformedMessage) {
			t.Fatalf("expected ErrMalformedMessage, got %v", err)
		}
	}
	if got := extractCount(t, "invalid", "false") - invalidBefore; got != 3 {
		t.Fatalf("expected 3 invalid extracts, got %v", got)
	}
	if got := extractCount(t, TypeOK.String(), "false") - okBefore; got != 0 {
		t.Fatalf("missing type frame counted as %s: %v", TypeOK, got)
	}

	// a known type that is too short keeps its own label
	before := extractCount(t, TypeOK.String(), "false")
	if _, err := Extract([]string{"", "\x00", ""}); err == nil {
		t.Fatal("expected short ok message to fail")
	}
	if got := extractCount(t, TypeOK.String(), "false") - before; got != 1 {
		t.Fatalf("expected ok failure under its type label, got %v", got)
	}
}
