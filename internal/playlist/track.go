package playlist

import (
	"math/rand/v2"
	"time"

	"github.com/tlecalvez/segue/internal/library"
)

// Track is a single entry in a playlist.
//
// Two identities coexist: Metadata.ID is the content hash shared by every
// copy of the same file, while EntryID is a random per-entry value that
// tells duplicate entries of the same file apart within a playlist.
type Track struct {
	EntryID   uint32           `json:"entry_id"`
	Path      string           `json:"path"`
	Selected  bool             `json:"-"`
	Metadata  library.Metadata `json:"metadata"`
	DateAdded time.Time        `json:"date_added"`
}

// NewTrack creates a track for the given path with a fresh entry ID.
func NewTrack(path string, md library.Metadata) Track {
	return Track{
		EntryID:   rand.Uint32(),
		Path:      path,
		Metadata:  md,
		DateAdded: time.Now(),
	}
}

// ID returns the content-hash identifier, empty if not yet scanned.
func (t Track) ID() string {
	return t.Metadata.ID
}
