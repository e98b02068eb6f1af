package playback

// Status is the coarse playback state.
type Status int

const (
	StatusStopped Status = iota
	StatusPlaying
	StatusPaused
)

func (s Status) String() string {
	switch s {
	case StatusStopped:
		return "Stopped"
	case StatusPlaying:
		return "Playing"
	case StatusPaused:
		return "Paused"
	default:
		return "Unknown"
	}
}

// RepeatMode selects how the queue advances past the current track.
// Wrapping from the last track back to the first is gated behind the
// separate repeat-enabled flag, not the mode itself.
type RepeatMode int

const (
	// RepeatAll advances through the queue in order.
	RepeatAll RepeatMode = iota
	// RepeatOne replays the current track.
	RepeatOne
)

func (m RepeatMode) String() string {
	switch m {
	case RepeatAll:
		return "All"
	case RepeatOne:
		return "One"
	default:
		return "Unknown"
	}
}
