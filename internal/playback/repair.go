package playback

import (
	"github.com/tlecalvez/segue/internal/playlist"
)

// UpdateSessionShuffle rebuilds the session order from the playlist with
// the new shuffle setting, preserving the currently playing track by its
// content id. Sessions over a different playlist are untouched.
func (s *Service) UpdateSessionShuffle(pl *playlist.Playlist, shuffle bool) {
	sess := s.state.Session
	if sess == nil || sess.PlaylistID != pl.ID() || pl.Len() == 0 {
		return
	}

	var currentID string
	if track, ok := sess.Current(); ok {
		currentID = track.ID()
	}

	rebuilt := newSession(pl, 0, shuffle)
	if index := indexOfID(rebuilt.Order, currentID); index >= 0 {
		rebuilt.Index = index
	}

	s.state.Session = rebuilt
	s.updateNowPlaying()
	s.queueNext()
}

// UpdateSessionForLibrary reconciles a live library session with updated
// library contents, such as a completed or partial rescan. Each old
// entry is remapped to the new library's entry for the same content id;
// entries whose id vanished are dropped. If the currently playing
// track's id is gone, playback is torn down and false is returned.
//
// The method is idempotent for a given library snapshot, so snapshots
// arriving out of order relative to other calls are safe.
func (s *Service) UpdateSessionForLibrary(lib *playlist.Playlist) bool {
	sess := s.state.Session
	if sess == nil || !lib.IsLibrary() || sess.PlaylistID != playlist.LibraryID {
		return true
	}

	var currentID string
	if track, ok := sess.Current(); ok {
		currentID = track.ID()
	}

	byID := make(map[string]playlist.Track, lib.Len())
	for _, t := range lib.Tracks() {
		if t.ID() == "" {
			continue
		}
		if _, seen := byID[t.ID()]; !seen {
			byID[t.ID()] = t
		}
	}

	rebuilt := make([]playlist.Track, 0, len(sess.Order))
	for _, old := range sess.Order {
		if fresh, ok := byID[old.ID()]; ok {
			rebuilt = append(rebuilt, fresh)
		}
	}

	index := indexOfID(rebuilt, currentID)
	if index < 0 {
		s.log.Info().Str("id", currentID).Msg("current track removed from library, stopping")
		s.teardown()
		return false
	}

	sess.Order = rebuilt
	sess.Index = index
	s.updateNowPlaying()
	s.queueNext()
	return true
}

// ValidateSession clamps the cursor into bounds and steps over tracks
// whose metadata extraction has not produced a content id yet. Runs
// every tick, before event processing, to stay ahead of races with the
// library scanner.
func (s *Service) ValidateSession() {
	sess := s.state.Session
	if sess == nil {
		return
	}
	if len(sess.Order) == 0 {
		s.teardown()
		return
	}

	if sess.Index < 0 {
		sess.Index = 0
	}
	if sess.Index >= len(sess.Order) {
		sess.Index = len(sess.Order) - 1
	}

	if sess.Order[sess.Index].ID() != "" {
		return
	}
	for offset := 1; offset < len(sess.Order); offset++ {
		candidate := (sess.Index + offset) % len(sess.Order)
		if sess.Order[candidate].ID() != "" {
			sess.Index = candidate
			return
		}
	}
}

// teardown stops the engine and discards the session and now-playing
// snapshot. Used when the session can no longer refer to real tracks.
func (s *Service) teardown() {
	s.engine.Stop()
	s.engine.SetQueued("")
	s.gaplessPending = false
	s.pendingGaplessID = ""
	s.state.Session = nil
	s.state.NowPlaying = nil
	s.state.Status = StatusStopped
	s.state.Progress = 0
}
