package library

import "path/filepath"

// Metadata holds the extracted tags for a single media file.
// Every field is optional: the scanner may not have processed the file yet,
// or the file may simply carry no tags. Zero values mean "unknown" and
// consumers must treat them as displayable states.
type Metadata struct {
	// ID is the content-hash identifier (SHA-256 of the file contents).
	// It survives path moves and is used to correlate the same logical
	// track across playlist copies and library snapshots. Empty until the
	// scanner has processed the file.
	ID          string  `json:"id,omitempty"`
	Title       string  `json:"title,omitempty"`
	Artist      string  `json:"artist,omitempty"`
	Album       string  `json:"album,omitempty"`
	AlbumArtist string  `json:"album_artist,omitempty"`
	Genre       string  `json:"genre,omitempty"`
	DiscNumber  int     `json:"album_disc_number,omitempty"`
	DiscCount   int     `json:"album_disc_count,omitempty"`
	TrackNumber int     `json:"track_number,omitempty"`
	TrackCount  int     `json:"track_count,omitempty"`
	Duration    float64 `json:"duration,omitempty"` // seconds
	ArtworkFile string  `json:"artwork_filename,omitempty"`
}

// DisplayTitle returns the title, or a fallback derived from the path.
func (m Metadata) DisplayTitle(path string) string {
	if m.Title != "" {
		return m.Title
	}
	if path != "" {
		return filepath.Base(path)
	}
	return "Unknown Title"
}

// DisplayArtist returns the artist, or "Unknown Artist".
func (m Metadata) DisplayArtist() string {
	if m.Artist != "" {
		return m.Artist
	}
	return "Unknown Artist"
}

// DisplayAlbum returns the album, or "Unknown Album".
func (m Metadata) DisplayAlbum() string {
	if m.Album != "" {
		return m.Album
	}
	return "Unknown Album"
}
