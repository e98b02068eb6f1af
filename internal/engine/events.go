package engine

// EventKind identifies a pipeline event.
type EventKind int

const (
	// EventStreamStarted fires when a new stream begins playing, both
	// for explicit loads and for gapless auto-switches. Callers
	// disambiguate with their own pending flag.
	EventStreamStarted EventKind = iota

	// EventEndOfStream fires when playback ran out with no queued path.
	EventEndOfStream

	// EventError reports a pipeline failure (decode error, bad file).
	EventError
)

// Event is a single pipeline notification.
type Event struct {
	Kind    EventKind
	Message string // set for EventError
}

// String returns the event kind name.
func (k EventKind) String() string {
	switch k {
	case EventStreamStarted:
		return "StreamStarted"
	case EventEndOfStream:
		return "EndOfStream"
	case EventError:
		return "Error"
	default:
		return "Unknown"
	}
}
