package playback

import (
	"sort"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tlecalvez/segue/internal/engine"
	"github.com/tlecalvez/segue/internal/library"
	"github.com/tlecalvez/segue/internal/playlist"
	"github.com/tlecalvez/segue/internal/remote"
)

func testTrack(id, path string) playlist.Track {
	return playlist.NewTrack(path, library.Metadata{ID: id, Title: "Track " + id})
}

// threeTrackPlaylist builds a user playlist of /a.mp3, /b.mp3, /c.mp3.
func threeTrackPlaylist() *playlist.Playlist {
	pl := playlist.New("test")
	pl.Push(
		testTrack("id-a", "/a.mp3"),
		testTrack("id-b", "/b.mp3"),
		testTrack("id-c", "/c.mp3"),
	)
	return pl
}

func newTestService() (*Service, *engine.Mock) {
	mock := engine.NewMock()
	return NewService(mock, remote.NewBridge(), zerolog.Nop()), mock
}

func TestStartSession_NoShuffle(t *testing.T) {
	svc, mock := newTestService()
	pl := threeTrackPlaylist()

	svc.StartSession(pl, 1, false)

	sess := svc.Session()
	require.NotNil(t, sess)
	assert.Equal(t, 1, sess.Index)
	assert.Equal(t, pl.Tracks(), sess.Order)
	assert.Equal(t, StatusPlaying, svc.Status())
	assert.Equal(t, []string{"/b.mp3"}, mock.LoadCalls())
	assert.Equal(t, "/c.mp3", mock.LastQueued(), "follow-up is pre-queued")
	require.NotNil(t, svc.NowPlaying())
	assert.Equal(t, "id-b", svc.NowPlaying().ID)
}

func TestStartSession_EmptyPlaylistIsNoOp(t *testing.T) {
	svc, mock := newTestService()

	svc.StartSession(playlist.New("empty"), 0, false)

	assert.Nil(t, svc.Session())
	assert.Equal(t, StatusStopped, svc.Status())
	assert.Empty(t, mock.LoadCalls())
}

func TestStartSession_ShufflePreservesMultiset(t *testing.T) {
	svc, _ := newTestService()
	pl := threeTrackPlaylist()

	svc.StartSession(pl, 0, true)

	sess := svc.Session()
	require.NotNil(t, sess)
	require.Len(t, sess.Order, pl.Len())

	want := entryIDs(pl.Tracks())
	got := entryIDs(sess.Order)
	assert.Equal(t, want, got, "shuffle permutes, never adds or drops")
}

func TestStartSession_ShuffleLocatesClickedInstance(t *testing.T) {
	svc, _ := newTestService()

	// Two entries of the same file share a content id; the clicked one
	// must stay current after shuffling.
	pl := playlist.New("dupes")
	pl.Push(
		testTrack("id-dup", "/dup.mp3"),
		testTrack("id-dup", "/dup.mp3"),
		testTrack("id-x", "/x.mp3"),
	)
	clicked := pl.Tracks()[1]

	svc.StartSession(pl, 1, true)

	current, ok := svc.Session().Current()
	require.True(t, ok)
	assert.Equal(t, clicked.EntryID, current.EntryID)
}

func TestComputeNextIndex(t *testing.T) {
	tests := []struct {
		name      string
		length    int
		index     int
		mode      RepeatMode
		enabled   bool
		wantIndex int
		wantOK    bool
	}{
		{"advance mid-queue", 5, 2, RepeatAll, false, 3, true},
		{"end without repeat", 5, 4, RepeatAll, false, 0, false},
		{"end with repeat wraps", 5, 4, RepeatAll, true, 0, true},
		{"repeat one stays", 5, 2, RepeatOne, false, 2, true},
		{"repeat one stays with flag", 5, 2, RepeatOne, true, 2, true},
		{"empty order", 0, 0, RepeatAll, true, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := computeNextIndex(tt.length, tt.index, tt.mode, tt.enabled)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantIndex, got)
			}
		})
	}
}

func TestQueueNext_Idempotent(t *testing.T) {
	svc, mock := newTestService()
	svc.StartSession(threeTrackPlaylist(), 0, false)

	svc.queueNext()
	svc.queueNext()

	calls := mock.QueuedCalls()
	require.GreaterOrEqual(t, len(calls), 3)
	assert.Equal(t, calls[len(calls)-1], calls[len(calls)-2])
	assert.Equal(t, "/b.mp3", mock.LastQueued())
}

func TestQueueNext_EndOfQueueClears(t *testing.T) {
	svc, mock := newTestService()
	svc.StartSession(threeTrackPlaylist(), 2, false)

	assert.Equal(t, "", mock.LastQueued(), "no next track without repeat")

	svc.SetRepeatState(RepeatAll, true)
	assert.Equal(t, "/a.mp3", mock.LastQueued(), "enabling repeat queues the wrap")
}

func TestNext_EndOfQueueStops(t *testing.T) {
	svc, mock := newTestService()
	svc.StartSession(threeTrackPlaylist(), 0, false)

	svc.Next()
	assert.Equal(t, 1, svc.Session().Index)
	svc.Next()
	assert.Equal(t, 2, svc.Session().Index)
	svc.Next()

	assert.Equal(t, 2, svc.Session().Index, "cursor stays at the last track")
	assert.Equal(t, StatusStopped, svc.Status())
	assert.False(t, mock.Playing())
	assert.Equal(t, "", mock.LastQueued())
}

func TestNext_RepeatEnabledWraps(t *testing.T) {
	svc, _ := newTestService()
	svc.StartSession(threeTrackPlaylist(), 2, false)
	svc.SetRepeatState(RepeatAll, true)

	svc.Next()

	assert.Equal(t, 0, svc.Session().Index)
	assert.Equal(t, StatusPlaying, svc.Status())
}

func TestNext_RepeatOneRestarts(t *testing.T) {
	svc, mock := newTestService()
	svc.StartSession(threeTrackPlaylist(), 1, false)
	svc.SetRepeatState(RepeatOne, false)

	svc.Next()

	assert.Equal(t, 1, svc.Session().Index)
	assert.Equal(t, []string{"/b.mp3", "/b.mp3"}, mock.LoadCalls())
	assert.Equal(t, "/b.mp3", mock.LastQueued(), "repeat one queues itself")
}

func TestPrev_WrapsAtStart(t *testing.T) {
	svc, _ := newTestService()
	svc.StartSession(threeTrackPlaylist(), 0, false)

	svc.Prev()

	assert.Equal(t, 2, svc.Session().Index, "prev at the first track wraps to the last")
	assert.Equal(t, StatusPlaying, svc.Status())
}

func TestUpdateSessionShuffle_PreservesCurrentTrack(t *testing.T) {
	svc, mock := newTestService()
	pl := threeTrackPlaylist()
	svc.StartSession(pl, 2, false)

	svc.UpdateSessionShuffle(pl, true)

	current, ok := svc.Session().Current()
	require.True(t, ok)
	assert.Equal(t, "id-c", current.ID())
	assert.NotEqual(t, "", mock.LastQueued(), "gapless queue recomputed")
}

func TestUpdateSessionShuffle_IgnoresOtherPlaylists(t *testing.T) {
	svc, _ := newTestService()
	pl := threeTrackPlaylist()
	svc.StartSession(pl, 0, false)
	before := svc.Session().Order

	svc.UpdateSessionShuffle(threeTrackPlaylist(), true)

	assert.Equal(t, before, svc.Session().Order)
}

func TestUpdateSessionForLibrary_RoundTrip(t *testing.T) {
	svc, _ := newTestService()

	lib := playlist.Library()
	lib.Push(
		testTrack("id-a", "/a.mp3"),
		testTrack("id-b", "/b.mp3"),
		testTrack("id-c", "/c.mp3"),
	)
	svc.StartSession(lib, 1, false)

	// Rescan found the same content under new paths.
	updated := playlist.Library()
	updated.Push(
		testTrack("id-a", "/moved/a.mp3"),
		testTrack("id-b", "/moved/b.mp3"),
		testTrack("id-c", "/moved/c.mp3"),
	)

	ok := svc.UpdateSessionForLibrary(updated)

	require.True(t, ok)
	require.NotNil(t, svc.NowPlaying())
	assert.Equal(t, "id-b", svc.NowPlaying().ID)
	assert.Len(t, svc.Session().Order, updated.Len())
	current, found := svc.Session().Current()
	require.True(t, found)
	assert.Equal(t, "/moved/b.mp3", current.Path)
}

func TestUpdateSessionForLibrary_RemovalTearsDown(t *testing.T) {
	svc, mock := newTestService()

	lib := playlist.Library()
	lib.Push(testTrack("id-a", "/a.mp3"), testTrack("id-b", "/b.mp3"))
	svc.StartSession(lib, 0, false)

	updated := playlist.Library()
	updated.Push(testTrack("id-b", "/b.mp3"))

	ok := svc.UpdateSessionForLibrary(updated)

	assert.False(t, ok)
	assert.Nil(t, svc.Session())
	assert.Nil(t, svc.NowPlaying())
	assert.Equal(t, StatusStopped, svc.Status())
	assert.False(t, mock.Loaded())
	assert.Equal(t, "", mock.LastQueued())
}

func TestUpdateSessionForLibrary_IgnoresUserPlaylistSessions(t *testing.T) {
	svc, _ := newTestService()
	svc.StartSession(threeTrackPlaylist(), 0, false)

	updated := playlist.Library()
	updated.Push(testTrack("id-z", "/z.mp3"))

	ok := svc.UpdateSessionForLibrary(updated)

	assert.True(t, ok)
	require.NotNil(t, svc.Session())
	assert.Equal(t, "id-a", svc.NowPlaying().ID)
}

func TestValidateSession_ClampsAndSkipsUnscanned(t *testing.T) {
	svc, _ := newTestService()
	svc.StartSession(threeTrackPlaylist(), 0, false)

	sess := svc.Session()
	sess.Index = 10
	svc.ValidateSession()
	assert.Equal(t, 2, sess.Index, "out-of-range cursor clamps to the end")

	// A track still awaiting metadata extraction has no content id.
	sess.Order[2].Metadata.ID = ""
	svc.ValidateSession()
	assert.Equal(t, 0, sess.Index, "cursor skips forward past id-less tracks, wrapping")
}

func TestTick_GaplessAdvance(t *testing.T) {
	svc, mock := newTestService()
	svc.StartSession(threeTrackPlaylist(), 0, false)
	assert.Equal(t, "/b.mp3", mock.LastQueued())

	// Drop the load's own StreamStarted; it is not a gapless switch.
	svc.Tick()

	mock.FireAboutToFinish()
	mock.PushEvent(engine.Event{Kind: engine.EventStreamStarted})

	events := svc.Tick()

	advanced := 0
	for _, ev := range events {
		if _, ok := ev.(GaplessTrackAdvanced); ok {
			advanced++
		}
	}
	assert.Equal(t, 1, advanced, "exactly one advance per switch")
	assert.Equal(t, 1, svc.Session().Index)
	assert.Equal(t, "id-b", svc.NowPlaying().ID)
	assert.Zero(t, svc.Progress())
	assert.Equal(t, "/c.mp3", mock.LastQueued(), "next follow-up queued")
}

func TestTick_PendingGuardsQueueRecompute(t *testing.T) {
	svc, mock := newTestService()
	svc.StartSession(threeTrackPlaylist(), 0, false)
	svc.Tick()

	// The engine committed to a switch that has not confirmed yet.
	mock.FireAboutToFinish()
	svc.Tick()

	before := len(mock.QueuedCalls())
	svc.SetRepeatState(RepeatOne, false)
	assert.Len(t, mock.QueuedCalls(), before, "queue is frozen while a switch is in flight")

	mock.PushEvent(engine.Event{Kind: engine.EventStreamStarted})
	svc.Tick()
	assert.Equal(t, 1, svc.Session().Index)
	assert.Equal(t, "/b.mp3", mock.LastQueued(), "repeat one queues the new current track")
}

func TestTick_EndOfStreamStops(t *testing.T) {
	svc, mock := newTestService()
	svc.StartSession(threeTrackPlaylist(), 2, false)
	svc.Tick()

	mock.PushEvent(engine.Event{Kind: engine.EventEndOfStream})
	events := svc.Tick()

	require.NotEmpty(t, events)
	assert.IsType(t, TrackEnded{}, events[0])
	assert.Equal(t, StatusStopped, svc.Status())
	assert.Equal(t, 2, svc.Session().Index, "session survives a natural end")
}

func TestTick_ErrorClearsPending(t *testing.T) {
	svc, mock := newTestService()
	svc.StartSession(threeTrackPlaylist(), 0, false)
	svc.Tick()

	mock.FireAboutToFinish()
	mock.PushEvent(engine.Event{Kind: engine.EventError, Message: "decode failed"})
	events := svc.Tick()

	var got *ErrorEvent
	for _, ev := range events {
		if e, ok := ev.(ErrorEvent); ok {
			got = &e
		}
	}
	require.NotNil(t, got)
	assert.Equal(t, "decode failed", got.Message)
	assert.Equal(t, 0, svc.Session().Index, "a failed switch does not advance")
}

func TestTick_DraggingSuppressesPositionUpdates(t *testing.T) {
	svc, mock := newTestService()
	svc.StartSession(threeTrackPlaylist(), 0, false)
	mock.SetPosition(12.5)

	svc.SetDraggingSlider(true)
	svc.SetProgress(99)
	for _, ev := range svc.Tick() {
		_, isPos := ev.(PositionUpdate)
		assert.False(t, isPos, "no position updates while dragging")
	}
	assert.Equal(t, 99.0, svc.Progress())

	svc.SetDraggingSlider(false)
	events := svc.Tick()
	require.NotEmpty(t, events)
	assert.Equal(t, PositionUpdate{Seconds: 12.5}, events[len(events)-1])
	assert.Equal(t, 12.5, svc.Progress())
}

func TestProcessRemoteCommands_AppliedInOrder(t *testing.T) {
	svc, _ := newTestService()
	bridge := svc.bridge
	svc.StartSession(threeTrackPlaylist(), 0, false)

	bridge.Push(remote.Command{Kind: remote.CommandPlay})
	bridge.Push(remote.Command{Kind: remote.CommandPause})

	cmds := svc.ProcessRemoteCommands()

	assert.Len(t, cmds, 2)
	assert.Equal(t, StatusPaused, svc.Status(), "play then pause leaves paused")
}

func TestProcessRemoteCommands_RelativeSeek(t *testing.T) {
	svc, mock := newTestService()
	svc.StartSession(threeTrackPlaylist(), 0, false)
	svc.SetProgress(10)

	svc.bridge.Push(remote.Command{Kind: remote.CommandSeek, Offset: 5 * time.Second})
	svc.ProcessRemoteCommands()

	seeks := mock.SeekCalls()
	require.NotEmpty(t, seeks)
	assert.Equal(t, 15.0, seeks[len(seeks)-1])

	// A rewind past the start clamps to zero.
	svc.SetProgress(2)
	svc.bridge.Push(remote.Command{Kind: remote.CommandSeek, Offset: -10 * time.Second})
	svc.ProcessRemoteCommands()
	seeks = mock.SeekCalls()
	assert.Equal(t, 0.0, seeks[len(seeks)-1])
}

func TestStopThenPlayResumesCurrentTrack(t *testing.T) {
	svc, mock := newTestService()
	svc.StartSession(threeTrackPlaylist(), 1, false)

	svc.Stop()
	assert.Equal(t, StatusStopped, svc.Status())
	assert.False(t, mock.Loaded())

	svc.Play()
	assert.Equal(t, StatusPlaying, svc.Status())
	assert.Equal(t, []string{"/b.mp3", "/b.mp3"}, mock.LoadCalls())
}

func entryIDs(tracks []playlist.Track) []uint32 {
	ids := make([]uint32, len(tracks))
	for i, t := range tracks {
		ids[i] = t.EntryID
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
