package playlist

import (
	"github.com/tlecalvez/segue/internal/library"
)

// FromLibrary converts the scanned library into the library playlist's
// track list, sorted by artist/album/track number. Each call mints fresh
// entry IDs; callers that need stable entries across rescans must match on
// the content-hash ID instead.
func FromLibrary(lib *library.Library) []Track {
	tracks := make([]Track, 0, lib.Len())
	for path, md := range lib.Media {
		tracks = append(tracks, NewTrack(path, md))
	}

	pl := Playlist{tracks: tracks}
	pl.Sort(SortByArtist, SortAscending)
	return pl.tracks
}
