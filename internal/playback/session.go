package playback

import (
	"math/rand/v2"

	"github.com/tlecalvez/segue/internal/playlist"
)

// Session is the play-queue derived from a playlist at a point in time.
// Order is a materialized copy, not a live view: later mutations to the
// source playlist do not affect it until an explicit repair call.
type Session struct {
	// PlaylistID records which playlist this queue was derived from.
	PlaylistID uint32

	// Order is the queue, possibly shuffled.
	Order []playlist.Track

	// Index is the cursor into Order for the currently playing track.
	Index int
}

// newSession copies the playlist's tracks and positions the cursor on
// the clicked track. With shuffle the clicked track is relocated in the
// permuted order by its (content id, entry id) pair, since duplicate
// files share a content id but only one instance was clicked.
func newSession(pl *playlist.Playlist, clickedIndex int, shuffle bool) *Session {
	source := pl.Tracks()
	order := make([]playlist.Track, len(source))
	copy(order, source)

	if clickedIndex < 0 {
		clickedIndex = 0
	}
	if clickedIndex >= len(order) {
		clickedIndex = len(order) - 1
	}

	index := clickedIndex
	if shuffle {
		clicked := source[clickedIndex]
		rand.Shuffle(len(order), func(i, j int) {
			order[i], order[j] = order[j], order[i]
		})
		index = indexOfEntry(order, clicked.ID(), clicked.EntryID)
		if index < 0 {
			index = 0
		}
	}

	return &Session{
		PlaylistID: pl.ID(),
		Order:      order,
		Index:      index,
	}
}

// Current returns the track under the cursor.
func (s *Session) Current() (playlist.Track, bool) {
	if s == nil || s.Index < 0 || s.Index >= len(s.Order) {
		return playlist.Track{}, false
	}
	return s.Order[s.Index], true
}

// indexOfEntry finds the exact track instance by its identity pair.
func indexOfEntry(order []playlist.Track, id string, entryID uint32) int {
	for i, t := range order {
		if t.ID() == id && t.EntryID == entryID {
			return i
		}
	}
	return -1
}

// indexOfID finds the first track with the given content id. An empty id
// never matches.
func indexOfID(order []playlist.Track, id string) int {
	if id == "" {
		return -1
	}
	for i, t := range order {
		if t.ID() == id {
			return i
		}
	}
	return -1
}
