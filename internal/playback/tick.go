package playback

import (
	"github.com/tlecalvez/segue/internal/engine"
	"github.com/tlecalvez/segue/internal/remote"
)

// Tick runs one iteration of the transition state machine and returns
// the outward events it produced. Evaluation order matters: the
// about-to-finish signal is coalesced first so that a StreamStarted in
// the same drain is recognized as a gapless switch confirmation.
func (s *Service) Tick() []Event {
	var events []Event

	if s.engine.TakeAboutToFinish() {
		s.gaplessPending = true
	}

	for _, ev := range s.engine.Events() {
		switch ev.Kind {
		case engine.EventEndOfStream:
			// EOS without a prior about-to-finish means nothing was
			// queued; the stream ended for real.
			s.gaplessPending = false
			s.pendingGaplessID = ""
			s.state.Status = StatusStopped
			s.state.Progress = 0
			events = append(events, TrackEnded{})

		case engine.EventStreamStarted:
			// Fires for explicit loads too; only a pending transition
			// makes it a gapless confirmation.
			if s.gaplessPending {
				s.advanceAfterGapless()
				events = append(events, GaplessTrackAdvanced{})
			}

		case engine.EventError:
			s.gaplessPending = false
			s.pendingGaplessID = ""
			s.log.Warn().Str("message", ev.Message).Msg("pipeline error")
			events = append(events, ErrorEvent{Message: ev.Message})
		}
	}

	if !s.state.DraggingSlider {
		if pos, ok := s.engine.Position(); ok {
			s.state.Progress = pos
			events = append(events, PositionUpdate{Seconds: pos})
		}
	}

	return events
}

// ProcessRemoteCommands drains the remote-control queue and applies each
// command in arrival order, one service call per command. The drained
// commands are returned so the caller can observe what was applied.
func (s *Service) ProcessRemoteCommands() []remote.Command {
	cmds := s.bridge.Drain()
	for _, cmd := range cmds {
		s.dispatch(cmd)
	}
	return cmds
}

func (s *Service) dispatch(cmd remote.Command) {
	switch cmd.Kind {
	case remote.CommandPlay:
		s.Play()
	case remote.CommandPause:
		s.Pause()
	case remote.CommandPlayPause:
		s.PlayPause()
	case remote.CommandNext:
		s.Next()
	case remote.CommandPrevious:
		s.Prev()
	case remote.CommandStop:
		s.Stop()
	case remote.CommandSeek:
		s.Seek(s.state.Progress + cmd.Offset.Seconds())
	}
}
