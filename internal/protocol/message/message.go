package message

import (
	"fmt"
	"strings"

	"github.com/danmuck/kproto/internal/protocol/frame"
	"github.com/danmuck/kproto/internal/protocol/ipc"
	"github.com/danmuck/kproto/internal/protocol/schema"
)

// Message is a decoded or constructed IPC message.
type Message interface {
	Type() ipc.TypeCode
	Frames() [][]byte
	String() string
}

// kiqName fills the platform slot of task messages.
const kiqName = "KIQ"

const contentPreview = 120

type base struct {
	frames [][]byte
}

func newBase(code ipc.TypeCode, body ...frame.Frame) base {
	layout := make([]frame.Frame, 0, 2+len(body))
	layout = append(layout, frame.Empty(), frame.Byte(uint8(code)))
	layout = append(layout, body...)
	return base{frames: frame.Encode(layout)}
}

func (b base) Type() ipc.TypeCode {
	return ipc.TypeCode(b.frames[schema.IndexType][0])
}

// Frames returns a copy of the wire frames.
func (b base) Frames() [][]byte {
	return frame.Copy(b.frames)
}

func (b base) text(i int) string {
	if i >= len(b.frames) {
		return ""
	}
	return string(b.frames[i])
}

func (b base) describe(pairs ...string) string {
	var sb strings.Builder
	sb.WriteString("type=")
	sb.WriteString(b.Type().String())
	for i := 0; i+1 < len(pairs); i += 2 {
		fmt.Fprintf(&sb, " %s=%q", pairs[i], pairs[i+1])
	}
	return sb.String()
}

type OK struct{ base }

func NewOK(platform, id string) *OK {
	return &OK{newBase(ipc.TypeOK, frame.Text(platform), frame.Text(id))}
}

func (m *OK) Platform() string { return m.text(schema.IndexPlatform) }
func (m *OK) ID() string       { return m.text(schema.IndexID) }
func (m *OK) String() string {
	return m.describe("platform", m.Platform(), "id", m.ID())
}

type Fail struct{ base }

func NewFail(platform, id string) *Fail {
	return &Fail{newBase(ipc.TypeFail, frame.Text(platform), frame.Text(id))}
}

func (m *Fail) Platform() string { return m.text(schema.IndexPlatform) }
func (m *Fail) ID() string       { return m.text(schema.IndexID) }
func (m *Fail) String() string {
	return m.describe("platform", m.Platform(), "id", m.ID())
}

type Keepalive struct{ base }

func NewKeepalive() *Keepalive {
	return &Keepalive{newBase(ipc.TypeKeepalive)}
}

func (m *Keepalive) String() string { return m.describe() }

type Status struct{ base }

func NewStatus() *Status {
	return &Status{newBase(ipc.TypeStatus)}
}

func (m *Status) String() string { return m.describe() }

type KIQ struct{ base }

func NewKIQ(payload, platform string) *KIQ {
	return &KIQ{newBase(ipc.TypeKIQMessage, frame.Text(platform), frame.Text(payload))}
}

func (m *KIQ) Platform() string { return m.text(schema.IndexPlatform) }
func (m *KIQ) Payload() string  { return m.text(schema.IndexKIQData) }
func (m *KIQ) String() string {
	return m.describe("platform", m.Platform(), "data", m.Payload())
}

// PlatformFields are the inputs of a PLATFORM message.
type PlatformFields struct {
	Platform string
	ID       string
	User     string
	Content  string
	URLs     string
	Repost   bool
	Cmd      uint32
	Args     string
	Time     string
}

type Platform struct{ base }

func NewPlatform(f PlatformFields) *Platform {
	return &Platform{newBase(ipc.TypePlatform,
		frame.Text(f.Platform),
		frame.Text(f.ID),
		frame.Text(f.User),
		frame.Text(f.Content),
		frame.Text(f.URLs),
		frame.Bool(f.Repost),
		frame.Text(f.Args),
		frame.Uint32(f.Cmd),
		frame.Text(f.Time),
	)}
}

func (m *Platform) Platform() string { return m.text(schema.IndexPlatform) }
func (m *Platform) ID() string       { return m.text(schema.IndexID) }
func (m *Platform) User() string     { return m.text(schema.IndexUser) }
func (m *Platform) Content() string  { return m.text(schema.IndexData) }
func (m *Platform) URLs() string     { return m.text(schema.IndexURLs) }
func (m *Platform) Args() string     { return m.text(schema.IndexArgs) }
func (m *Platform) Time() string     { return m.text(schema.IndexTime) }

// Repost and Cmd are width-checked by schema.Validate before decode.
func (m *Platform) Repost() bool {
	v, _ := frame.BoolOf(m.frames[schema.IndexRepost])
	return v
}

func (m *Platform) Cmd() uint32 {
	v, _ := frame.Uint32Of(m.frames[schema.IndexCmd])
	return v
}

// Command is Cmd as a named command.
func (m *Platform) Command() Command {
	return Command(m.Cmd())
}

// Fields returns the decoded inputs.
func (m *Platform) Fields() PlatformFields {
	return PlatformFields{
		Platform: m.Platform(),
		ID:       m.ID(),
		User:     m.User(),
		Content:  m.Content(),
		URLs:     m.URLs(),
		Repost:   m.Repost(),
		Cmd:      m.Cmd(),
		Args:     m.Args(),
		Time:     m.Time(),
	}
}

func (m *Platform) String() string {
	content := m.Content()
	if len(content) > contentPreview {
		content = content[:contentPreview]
	}
	return m.describe(
		"platform", m.Platform(),
		"id", m.ID(),
		"user", m.User(),
		"content", content,
		"urls", m.URLs(),
		"repost", fmt.Sprint(m.Repost()),
		"args", m.Args(),
		"cmd", m.Command().String(),
		"time", m.Time(),
	)
}

type PlatformError struct{ base }

func NewPlatformError(platform, id, user, errText string) *PlatformError {
	return &PlatformError{newBase(ipc.TypePlatformError,
		frame.Text(platform), frame.Text(id), frame.Text(user), frame.Text(errText))}
}

func (m *PlatformError) Platform() string  { return m.text(schema.IndexPlatform) }
func (m *PlatformError) ID() string        { return m.text(schema.IndexID) }
func (m *PlatformError) User() string      { return m.text(schema.IndexUser) }
func (m *PlatformError) ErrorText() string { return m.text(schema.IndexError) }
func (m *PlatformError) String() string {
	return m.describe("platform", m.Platform(), "id", m.ID(), "user", m.User(), "error", m.ErrorText())
}

type PlatformRequest struct{ base }

func NewPlatformRequest(platform, id, user, data, args string) *PlatformRequest {
	return &PlatformRequest{newBase(ipc.TypePlatformRequest,
		frame.Text(platform), frame.Text(id), frame.Text(user), frame.Text(data), frame.Text(args))}
}

func (m *PlatformRequest) Platform() string { return m.text(schema.IndexPlatform) }
func (m *PlatformRequest) ID() string       { return m.text(schema.IndexID) }
func (m *PlatformRequest) User() string     { return m.text(schema.IndexUser) }
func (m *PlatformRequest) Data() string     { return m.text(schema.IndexData) }
func (m *PlatformRequest) Args() string     { return m.text(schema.IndexRequestArgs) }
func (m *PlatformRequest) String() string {
	return m.describe("platform", m.Platform(), "id", m.ID(), "user", m.User(), "data", m.Data(), "args", m.Args())
}

type PlatformInfo struct{ base }

// NewPlatformInfo builds the same layout ipc.Compose emits for info kinds.
func NewPlatformInfo(platform, id, info, infoType string) *PlatformInfo {
	return &PlatformInfo{newBase(ipc.TypePlatformInfo,
		frame.Text(platform), frame.Text(id), frame.Text(info), frame.Text(infoType))}
}

func (m *PlatformInfo) Platform() string { return m.text(schema.IndexPlatform) }
func (m *PlatformInfo) ID() string       { return m.text(schema.IndexID) }
func (m *PlatformInfo) Info() string     { return m.text(schema.IndexInfo) }
func (m *PlatformInfo) InfoType() string { return m.text(schema.IndexInfoType) }

// Payload is Info with escaped commas restored, matching ipc.Extract.
func (m *PlatformInfo) Payload() string {
	return strings.ReplaceAll(m.Info(), "%2C", ",")
}

func (m *PlatformInfo) String() string {
	return m.describe("platform", m.Platform(), "id", m.ID(), "info", m.Info(), "info_type", m.InfoType())
}

// TaskFields are the inputs of a TASK message.
type TaskFields struct {
	ID          string
	Description string
	Type        string
	Tech        string
	Logs        string
}

type Task struct{ base }

func NewTask(f TaskFields) *Task {
	return &Task{newBase(ipc.TypeTask,
		frame.Text(kiqName),
		frame.Text(f.ID),
		frame.Text(f.Description),
		frame.Text(f.Type),
		frame.Text(f.Tech),
		frame.Text(f.Logs),
	)}
}

func (m *Task) Name() string        { return m.text(schema.IndexPlatform) }
func (m *Task) ID() string          { return m.text(schema.IndexID) }
func (m *Task) Description() string { return m.text(schema.IndexDescription) }
func (m *Task) TaskType() string    { return m.text(schema.IndexTaskType) }
func (m *Task) Tech() string        { return m.text(schema.IndexTech) }
func (m *Task) Logs() string        { return m.text(schema.IndexLogs) }
func (m *Task) String() string {
	return m.describe("name", m.Name(), "id", m.ID(), "description", m.Description(),
		"type", m.TaskType(), "tech", m.Tech(), "logs", m.Logs())
}

// Raw holds a message with an unrecognized type code, kept by DecodeLenient.
type Raw struct{ base }

func (m *Raw) String() string {
	return fmt.Sprintf("type=%s frames=%d", m.Type(), len(m.frames))
}
