// Package ipc owns the kind-to-frame layout table and payload extraction for
// the host <-> platform IPC channel.
//
// Wire contract:
// - frame 0 is an empty delimiter
// - frame 1 is the one-byte type code
// - remaining frames depend only on the message kind
package ipc
