package playback

// computeNextIndex is the pure core of the gapless pre-queue: given the
// queue length, the cursor and the repeat settings, it names the track
// that should follow, or reports that the queue ends here.
func computeNextIndex(length, index int, mode RepeatMode, repeatEnabled bool) (int, bool) {
	if length == 0 {
		return 0, false
	}
	if mode == RepeatOne {
		return index, true
	}
	if index+1 < length {
		return index + 1, true
	}
	if repeatEnabled {
		return 0, true
	}
	return 0, false
}

// queueNext recomputes the follow-up track and hands its path to the
// engine. It must run after every operation that changes what "next"
// means: session start, navigation, shuffle toggle, library repair and
// repeat changes.
//
// While a gapless transition is in flight the engine is already
// committed to a specific track, so the queue and the pending id are
// left untouched until the switch confirms.
func (s *Service) queueNext() {
	if s.gaplessPending {
		return
	}

	sess := s.state.Session
	if sess == nil {
		s.engine.SetQueued("")
		s.pendingGaplessID = ""
		return
	}

	next, ok := computeNextIndex(len(sess.Order), sess.Index, s.repeatMode, s.repeatEnabled)
	if !ok {
		s.engine.SetQueued("")
		s.pendingGaplessID = ""
		return
	}

	track := sess.Order[next]
	s.engine.SetQueued(track.Path)
	s.pendingGaplessID = track.ID()
}

// advanceAfterGapless moves the cursor to the track the engine switched
// to. The pending id is located in the current order rather than the
// order at queue time, which may have been reshuffled in the interim;
// if the track vanished entirely the cursor falls back to the computed
// next position.
func (s *Service) advanceAfterGapless() {
	s.gaplessPending = false

	sess := s.state.Session
	if sess == nil {
		s.pendingGaplessID = ""
		return
	}

	index := indexOfID(sess.Order, s.pendingGaplessID)
	if index < 0 {
		next, ok := computeNextIndex(len(sess.Order), sess.Index, s.repeatMode, s.repeatEnabled)
		if !ok {
			next = sess.Index
		}
		index = next
	}
	sess.Index = index
	s.pendingGaplessID = ""

	s.updateNowPlaying()
	s.queueNext()
	s.state.Progress = 0

	s.log.Debug().Int("index", index).Msg("gapless advance")
}
