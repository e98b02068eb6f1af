// Package remote is the inbound remote-control surface: an OS media
// control (MPRIS on Linux) pushes commands onto a queue that the playback
// service drains once per tick.
package remote

import "time"

// CommandKind identifies a remote-control command.
type CommandKind int

const (
	CommandPlay CommandKind = iota
	CommandPause
	CommandPlayPause
	CommandNext
	CommandPrevious
	CommandStop
	CommandSeek
)

// Command is a single remote-control request. Commands map 1:1 to
// playback service calls; they are never batched or coalesced.
type Command struct {
	Kind CommandKind

	// Offset is the relative seek distance for CommandSeek.
	Offset time.Duration
}

// String returns the command kind name.
func (k CommandKind) String() string {
	switch k {
	case CommandPlay:
		return "Play"
	case CommandPause:
		return "Pause"
	case CommandPlayPause:
		return "PlayPause"
	case CommandNext:
		return "Next"
	case CommandPrevious:
		return "Previous"
	case CommandStop:
		return "Stop"
	case CommandSeek:
		return "Seek"
	default:
		return "Unknown"
	}
}
