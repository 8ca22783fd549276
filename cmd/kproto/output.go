package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/danmuck/kproto/internal/config"
	"github.com/danmuck/kproto/internal/protocol/ipc"
	"gopkg.in/yaml.v3"
)

type frameView struct {
	Index int    `json:"index" yaml:"index"`
	Len   int    `json:"len" yaml:"len"`
	Hex   string `json:"hex" yaml:"hex"`
	Text  string `json:"text" yaml:"text"`
}

func viewFrames(frames [][]byte) []frameView {
	out := make([]frameView, len(frames))
	for i, f := range frames {
		out[i] = frameView{Index: i, Len: len(f), Hex: hex.EncodeToString(f), Text: string(f)}
	}
	return out
}

// formatHexFrames renders frames as the comma-separated form parseHexFrames reads.
func formatHexFrames(frames [][]byte) string {
	parts := make([]string, len(frames))
	for i, f := range frames {
		parts[i] = hex.EncodeToString(f)
	}
	return strings.Join(parts, ",")
}

func parseHexFrames(raw string) ([][]byte, error) {
	parts := strings.Split(strings.TrimSpace(raw), ",")
	frames := make([][]byte, len(parts))
	for i, p := range parts {
		b, err := hex.DecodeString(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("frame %d: %w", i, err)
		}
		frames[i] = b
	}
	return frames, nil
}

// parseTypeCode accepts an IPC_* name or a number ("6", "0x06").
func parseTypeCode(raw string) (ipc.TypeCode, error) {
	if code, ok := ipc.ParseTypeName(raw); ok {
		return code, nil
	}
	v, err := strconv.ParseUint(strings.TrimSpace(raw), 0, 8)
	if err != nil {
		return 0, fmt.Errorf("invalid type %q", raw)
	}
	return ipc.TypeCode(v), nil
}

// framesFromArgs builds a message from a type code and the frames after it.
func framesFromArgs(code ipc.TypeCode, body []string) [][]byte {
	frames := make([][]byte, 0, 2+len(body))
	frames = append(frames, []byte{}, []byte{byte(code)})
	for _, s := range body {
		frames = append(frames, []byte(s))
	}
	return frames
}

// render writes data in the structured formats and text otherwise.
func render(w io.Writer, format, text string, data any) error {
	switch format {
	case config.OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(data)
	case config.OutputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(data); err != nil {
			return err
		}
		return enc.Close()
	default:
		_, err := io.WriteString(w, text)
		return err
	}
}
