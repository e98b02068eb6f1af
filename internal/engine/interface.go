// Package engine wraps the audio pipeline. It is the only package allowed
// to touch the speaker; everything above it drives playback through
// Interface and observes the pipeline through polled events.
package engine

// Interface is the playback pipeline contract. All methods are
// best-effort: runtime failures surface as Error events on the next
// Events() drain, never as panics.
type Interface interface {
	// Load stops the current stream and sets a new source. Decode
	// failures are reported as an Error event; a successful load emits
	// StreamStarted. The stream starts paused; call Play to run it.
	Load(path string)
	Play()
	Pause()
	Stop()

	// SetVolume applies a level clamped to [0.0, 1.0].
	SetVolume(level float64)

	// Seek jumps to an absolute position in seconds. Negative positions
	// are clamped to zero.
	Seek(seconds float64)

	// SetQueued sets the path the pipeline switches to when the current
	// stream runs out. An empty path disables gapless auto-advance and
	// forces an EndOfStream at the end of the current track.
	SetQueued(path string)

	// TakeAboutToFinish reports whether the pipeline consumed the queued
	// path since the last call. Multiple firings coalesce to one.
	TakeAboutToFinish() bool

	// Events drains all pending pipeline events without blocking.
	Events() []Event

	// Position returns the playback position in seconds within the
	// current track, and false when nothing is loaded.
	Position() (float64, bool)

	Close() error
}

// Verify Engine implements Interface at compile time.
var _ Interface = (*Engine)(nil)
