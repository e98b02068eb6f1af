// Package playback owns the playback session and drives the audio
// engine. All state lives in one Service mutated synchronously from a
// single tick loop; the engine's own background goroutines are only ever
// observed through non-blocking polls.
package playback

import (
	"github.com/rs/zerolog"

	"github.com/tlecalvez/segue/internal/engine"
	"github.com/tlecalvez/segue/internal/library"
	"github.com/tlecalvez/segue/internal/playlist"
	"github.com/tlecalvez/segue/internal/remote"
)

// State aggregates everything the UI layer reads between ticks.
type State struct {
	Session        *Session
	Status         Status
	Progress       float64
	NowPlaying     *library.Metadata
	DraggingSlider bool
}

// Service is the sole owner of the session, the engine and the gapless
// bookkeeping. It is not safe for concurrent use; all calls must come
// from the tick loop's goroutine.
type Service struct {
	engine engine.Interface
	bridge *remote.Bridge
	log    zerolog.Logger

	state State

	// Mirror of caller-owned settings, synced via SetRepeatState. The
	// correct next track depends on them.
	repeatMode    RepeatMode
	repeatEnabled bool

	// True from the engine's about-to-finish signal until the following
	// StreamStarted confirms the switch.
	gaplessPending bool

	// Content id of the pre-queued track, used to re-locate it in Order
	// after the switch even if Order was reshuffled in the interim.
	pendingGaplessID string
}

// NewService creates a stopped service around the given engine.
func NewService(eng engine.Interface, bridge *remote.Bridge, log zerolog.Logger) *Service {
	return &Service{
		engine: eng,
		bridge: bridge,
		log:    log.With().Str("component", "playback").Logger(),
	}
}

// Status returns the coarse playback state.
func (s *Service) Status() Status {
	return s.state.Status
}

// NowPlaying returns the current track's metadata snapshot, or nil.
func (s *Service) NowPlaying() *library.Metadata {
	return s.state.NowPlaying
}

// Progress returns the playback position in seconds.
func (s *Service) Progress() float64 {
	return s.state.Progress
}

// Session returns the active session, or nil when stopped without one.
func (s *Service) Session() *Session {
	return s.state.Session
}

// RepeatState returns the mirrored repeat settings.
func (s *Service) RepeatState() (RepeatMode, bool) {
	return s.repeatMode, s.repeatEnabled
}

// SetDraggingSlider suppresses position polling while the user drags the
// seek control.
func (s *Service) SetDraggingSlider(dragging bool) {
	s.state.DraggingSlider = dragging
}

// SetProgress overrides the displayed position, for seek previews.
func (s *Service) SetProgress(seconds float64) {
	s.state.Progress = seconds
}

// SetRepeatState syncs the repeat settings and requeues the next track,
// since what "next" means just changed.
func (s *Service) SetRepeatState(mode RepeatMode, enabled bool) {
	s.repeatMode = mode
	s.repeatEnabled = enabled
	s.queueNext()
}

// Play starts or resumes playback of the current session track.
func (s *Service) Play() {
	sess := s.state.Session
	if sess == nil {
		return
	}
	if s.state.Status == StatusStopped {
		s.loadCurrentTrack()
	}
	s.engine.Play()
	s.state.Status = StatusPlaying
}

// Pause suspends playback.
func (s *Service) Pause() {
	s.engine.Pause()
	if s.state.Status == StatusPlaying {
		s.state.Status = StatusPaused
	}
}

// PlayPause toggles between playing and paused.
func (s *Service) PlayPause() {
	if s.state.Status == StatusPlaying {
		s.Pause()
		return
	}
	s.Play()
}

// Stop halts the engine and disables gapless auto-advance. The session
// is retained so Play can pick up where it left off.
func (s *Service) Stop() {
	s.engine.Stop()
	s.engine.SetQueued("")
	s.gaplessPending = false
	s.pendingGaplessID = ""
	s.state.Status = StatusStopped
	s.state.Progress = 0
}

// SetVolume forwards a volume level to the engine, which clamps it.
func (s *Service) SetVolume(level float64) {
	s.engine.SetVolume(level)
}

// Seek jumps to an absolute position in seconds, clamped to zero.
func (s *Service) Seek(seconds float64) {
	if seconds < 0 {
		seconds = 0
	}
	s.engine.Seek(seconds)
	s.state.Progress = seconds
}

// StartSession materializes a play-queue from the playlist and starts
// playing the clicked track. An empty playlist is a no-op.
func (s *Service) StartSession(pl *playlist.Playlist, clickedIndex int, shuffle bool) {
	if pl.Len() == 0 {
		return
	}

	// A session start is never a gapless transition.
	s.gaplessPending = false
	s.pendingGaplessID = ""

	s.state.Session = newSession(pl, clickedIndex, shuffle)
	s.updateNowPlaying()
	s.loadCurrentTrack()
	s.engine.Play()
	s.state.Status = StatusPlaying
	s.state.Progress = 0

	s.log.Debug().
		Uint32("playlist_id", pl.ID()).
		Int("index", s.state.Session.Index).
		Bool("shuffle", shuffle).
		Msg("session started")
}

// loadCurrentTrack points the engine at the cursor track and requeues
// the follow-up. The engine leaves the stream paused until Play.
func (s *Service) loadCurrentTrack() {
	track, ok := s.state.Session.Current()
	if !ok {
		return
	}
	s.engine.Load(track.Path)
	s.queueNext()
}

// updateNowPlaying snapshots the cursor track's metadata.
func (s *Service) updateNowPlaying() {
	track, ok := s.state.Session.Current()
	if !ok {
		s.state.NowPlaying = nil
		return
	}
	md := track.Metadata
	s.state.NowPlaying = &md
}
