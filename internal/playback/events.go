package playback

// Event is a notification returned from Tick for the caller to react to.
// The service never acts on these itself; skipping a failing track on
// Error, for example, is the caller's policy.
type Event interface {
	isEvent()
}

// TrackEnded reports that the stream drained with nothing queued.
type TrackEnded struct{}

// GaplessTrackAdvanced reports that a pre-queued track took over and the
// session cursor moved to it.
type GaplessTrackAdvanced struct{}

// ErrorEvent carries a pipeline error message.
type ErrorEvent struct {
	Message string
}

// PositionUpdate carries the playback position within the current track.
type PositionUpdate struct {
	Seconds float64
}

func (TrackEnded) isEvent()           {}
func (GaplessTrackAdvanced) isEvent() {}
func (ErrorEvent) isEvent()           {}
func (PositionUpdate) isEvent()       {}
