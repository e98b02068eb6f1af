package playlist

import (
	"sort"
	"strings"
)

// SortBy selects the primary sort key.
type SortBy int

const (
	SortByArtist SortBy = iota
	SortByAlbum
	SortByTitle
)

// SortDirection selects ascending or descending order.
type SortDirection int

const (
	SortAscending SortDirection = iota
	SortDescending
)

// Sort orders the tracks by the given key. Artist sorting falls through to
// album and track number so albums stay contiguous and in running order.
func (p *Playlist) Sort(by SortBy, dir SortDirection) {
	less := func(a, b Track) bool {
		switch by {
		case SortByArtist:
			if c := compareFold(a.Metadata.Artist, b.Metadata.Artist); c != 0 {
				return c < 0
			}
			if c := compareFold(a.Metadata.Album, b.Metadata.Album); c != 0 {
				return c < 0
			}
			return a.Metadata.TrackNumber < b.Metadata.TrackNumber
		case SortByAlbum:
			return compareFold(a.Metadata.Album, b.Metadata.Album) < 0
		default:
			return compareFold(a.Metadata.Title, b.Metadata.Title) < 0
		}
	}

	sort.SliceStable(p.tracks, func(i, j int) bool {
		if dir == SortDescending {
			return less(p.tracks[j], p.tracks[i])
		}
		return less(p.tracks[i], p.tracks[j])
	})
}

func compareFold(a, b string) int {
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}
