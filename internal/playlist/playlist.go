// Package playlist implements named ordered track collections: the single
// library playlist plus user playlists, with selection state, sorting and
// JSON persistence.
package playlist

import (
	"math"
	"math/rand/v2"
)

// LibraryID is the reserved playlist ID of the library playlist. User
// playlist IDs are random nonzero values below it.
const LibraryID uint32 = math.MaxUint32

// Kind distinguishes the library playlist from user playlists.
type Kind string

const (
	KindLibrary Kind = "library"
	KindUser    Kind = "user"
)

// Playlist is a named ordered collection of tracks.
type Playlist struct {
	id     uint32
	name   string
	kind   Kind
	tracks []Track
}

// New creates an empty user playlist with a random nonzero ID.
func New(name string) *Playlist {
	var id uint32
	for id == 0 || id == LibraryID {
		id = rand.Uint32()
	}
	return &Playlist{id: id, name: name, kind: KindUser}
}

// Library creates the library playlist. Exactly one exists at a time.
func Library() *Playlist {
	return &Playlist{id: LibraryID, name: "Library", kind: KindLibrary}
}

func (p *Playlist) ID() uint32   { return p.id }
func (p *Playlist) Name() string { return p.name }
func (p *Playlist) Kind() Kind   { return p.kind }

// IsLibrary reports whether this is the library playlist.
func (p *Playlist) IsLibrary() bool { return p.kind == KindLibrary }

// SetName renames the playlist. The caller is responsible for refusing to
// rename the library (see Store.Rename).
func (p *Playlist) SetName(name string) { p.name = name }

// Tracks returns the playlist's tracks. The slice is shared; callers that
// need a stable snapshot must copy it.
func (p *Playlist) Tracks() []Track { return p.tracks }

// Len returns the number of tracks.
func (p *Playlist) Len() int { return len(p.tracks) }

// Track returns the track at index, or nil if out of bounds.
func (p *Playlist) Track(index int) *Track {
	if index < 0 || index >= len(p.tracks) {
		return nil
	}
	return &p.tracks[index]
}

// Push appends a track.
func (p *Playlist) Push(tracks ...Track) {
	p.tracks = append(p.tracks, tracks...)
}

// Clear removes all tracks.
func (p *Playlist) Clear() {
	p.tracks = p.tracks[:0]
}

// Move moves the track at from to position to.
func (p *Playlist) Move(from, to int) bool {
	if from < 0 || from >= len(p.tracks) || to < 0 || to >= len(p.tracks) {
		return false
	}
	if from == to {
		return true
	}
	track := p.tracks[from]
	p.tracks = append(p.tracks[:from], p.tracks[from+1:]...)
	rest := append([]Track{track}, p.tracks[to:]...)
	p.tracks = append(p.tracks[:to], rest...)
	return true
}
