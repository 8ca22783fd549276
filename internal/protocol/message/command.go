package message

import "fmt"

// Command is the value of the u32 cmd frame of a PLATFORM message.
type Command uint32

const (
	CommandMessage    Command = 0x00
	CommandPoll       Command = 0x01
	CommandPollStop   Command = 0x02
	CommandPollResult Command = 0x03
	CommandUnknown    Command = 0x04
)

var commandNames = map[Command]string{
	CommandMessage:    "message",
	CommandPoll:       "poll",
	CommandPollStop:   "poll stop",
	CommandPollResult: "poll result",
	CommandUnknown:    "unknown",
}

func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return fmt.Sprintf("command(%d)", uint32(c))
}

// ParseCommand maps a request name to its command. Unrecognized names,
// including "unknown" itself, yield CommandUnknown.
func ParseCommand(name string) Command {
	for c, n := range commandNames {
		if n == name && c != CommandUnknown {
			return c
		}
	}
	return CommandUnknown
}

// CommandSource indexes the per-platform command channels a worker serves.
type CommandSource uint8

const (
	SourceTelegram CommandSource = 0x00
	SourceMastodon CommandSource = 0x01
	SourceDiscord  CommandSource = 0x02
	SourceYouTube  CommandSource = 0x03
	SourceNone     CommandSource = 0x04
)

var sourceNames = [...]string{
	SourceTelegram: "telegram:messages",
	SourceMastodon: "mastodon:comments",
	SourceDiscord:  "discord:messages",
	SourceYouTube:  "youtube:livestream",
	SourceNone:     "no:command",
}

// String returns the channel name; out of range values render as SourceNone.
func (s CommandSource) String() string {
	if int(s) < len(sourceNames) {
		return sourceNames[s]
	}
	return sourceNames[SourceNone]
}

// ParseCommandSource maps a channel name such as "discord:messages" to its index.
func ParseCommandSource(name string) (CommandSource, bool) {
	for i, n := range sourceNames {
		if n == name {
			return CommandSource(i), true
		}
	}
	return SourceNone, false
}
