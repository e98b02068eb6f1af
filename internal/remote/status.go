package remote

import "time"

// PlayState mirrors the playback status for the read side of the media
// control without depending on the playback package.
type PlayState int

const (
	StateStopped PlayState = iota
	StatePlaying
	StatePaused
)

// TrackInfo describes the current track for the media control.
type TrackInfo struct {
	Path        string
	Title       string
	Artist      string
	Album       string
	TrackNumber int
	Duration    time.Duration
	ArtworkFile string
}

// StatusSource is where the media control reads player properties from.
// It is called from the D-Bus goroutine, so implementations must be safe
// for concurrent use.
type StatusSource interface {
	PlayState() PlayState
	CurrentTrack() (TrackInfo, bool)
	Position() time.Duration
	CanGoNext() bool
	CanGoPrevious() bool
}
