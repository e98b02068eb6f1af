package playback

// Next skips to the following track synchronously, without waiting for
// the engine's about-to-finish signal. At the end of the queue with
// repeat disabled, playback stops and the cursor stays put.
func (s *Service) Next() {
	sess := s.state.Session
	if sess == nil || len(sess.Order) == 0 {
		return
	}

	if s.repeatMode == RepeatOne {
		s.restartCurrent()
		return
	}

	switch {
	case sess.Index+1 < len(sess.Order):
		s.jumpTo(sess.Index + 1)
	case s.repeatEnabled:
		s.jumpTo(0)
	default:
		s.log.Debug().Msg("end of queue")
		s.Stop()
	}
}

// Prev skips to the preceding track. At the first track it wraps to the
// last one regardless of the repeat flag; skipping backward past the
// start is not an end-of-content condition.
func (s *Service) Prev() {
	sess := s.state.Session
	if sess == nil || len(sess.Order) == 0 {
		return
	}

	if s.repeatMode == RepeatOne {
		s.restartCurrent()
		return
	}

	if sess.Index > 0 {
		s.jumpTo(sess.Index - 1)
		return
	}
	s.jumpTo(len(sess.Order) - 1)
}

// jumpTo moves the cursor and restarts playback on the new track. Any
// in-flight gapless transition is abandoned, since the explicit load
// tears down the pipeline the transition was running on.
func (s *Service) jumpTo(index int) {
	s.gaplessPending = false
	s.pendingGaplessID = ""

	s.state.Session.Index = index
	s.updateNowPlaying()
	s.loadCurrentTrack()
	s.engine.Play()
	s.state.Status = StatusPlaying
	s.state.Progress = 0
}

// restartCurrent replays the cursor track from the beginning.
func (s *Service) restartCurrent() {
	s.jumpTo(s.state.Session.Index)
}
