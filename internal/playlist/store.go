package playlist

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"
)

const (
	appDirName   = "segue"
	playlistsDir = "playlists"
)

// ErrNotFound is returned when a playlist ID does not resolve.
var ErrNotFound = errors.New("playlist not found")

// ErrLibraryImmutable is returned for operations user playlists support
// but the library playlist refuses (rename, delete, track removal).
var ErrLibraryImmutable = errors.New("library playlist cannot be modified")

// Store owns all playlists in memory and their on-disk JSON files. The
// library playlist lives only in memory; its contents come from the
// scanned library.
type Store struct {
	playlists []*Playlist
	dir       string
}

// NewStore creates a store rooted in the XDG data directory.
func NewStore() (*Store, error) {
	dir := filepath.Join(xdg.DataHome, appDirName, playlistsDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "create playlists dir")
	}
	return &Store{dir: dir}, nil
}

// NewStoreAt creates a store rooted in an explicit directory. Used by tests.
func NewStoreAt(dir string) *Store {
	return &Store{dir: dir}
}

// LoadAll builds the library playlist from the given tracks and loads every
// user playlist file from disk.
func (s *Store) LoadAll(libraryTracks []Track) error {
	lib := Library()
	lib.Push(libraryTracks...)
	s.playlists = []*Playlist{lib}

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrap(err, "read playlists dir")
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.dir, entry.Name()))
		if err != nil {
			return errors.Wrapf(err, "read playlist %s", entry.Name())
		}
		var pl Playlist
		if err := json.Unmarshal(data, &pl); err != nil {
			return errors.Wrapf(err, "decode playlist %s", entry.Name())
		}
		if pl.IsLibrary() {
			// Never load a second library playlist from disk.
			continue
		}
		s.playlists = append(s.playlists, &pl)
	}
	return nil
}

// Create adds a new empty user playlist. Duplicate names are rejected.
func (s *Store) Create(name string) (*Playlist, error) {
	for _, p := range s.playlists {
		if p.Name() == name {
			return nil, errors.Newf("playlist %q already exists", name)
		}
	}
	pl := New(name)
	s.playlists = append(s.playlists, pl)
	if err := s.Save(pl.ID()); err != nil {
		return nil, err
	}
	return pl, nil
}

// Rename renames a user playlist.
func (s *Store) Rename(id uint32, name string) error {
	pl, err := s.Get(id)
	if err != nil {
		return err
	}
	if pl.IsLibrary() {
		return ErrLibraryImmutable
	}
	pl.SetName(name)
	return s.Save(id)
}

// Delete removes a user playlist and its file.
func (s *Store) Delete(id uint32) error {
	pl, err := s.Get(id)
	if err != nil {
		return err
	}
	if pl.IsLibrary() {
		return ErrLibraryImmutable
	}

	if err := os.Remove(s.filePath(id)); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "remove playlist file")
	}

	kept := s.playlists[:0]
	for _, p := range s.playlists {
		if p.ID() != id {
			kept = append(kept, p)
		}
	}
	s.playlists = kept
	return nil
}

// AddTracks appends tracks to a playlist, persisting user playlists.
func (s *Store) AddTracks(id uint32, tracks ...Track) error {
	pl, err := s.Get(id)
	if err != nil {
		return err
	}
	pl.Push(tracks...)
	if pl.IsLibrary() {
		return nil
	}
	return s.Save(id)
}

// RemoveSelected drops the selected tracks from a user playlist.
func (s *Store) RemoveSelected(id uint32) error {
	pl, err := s.Get(id)
	if err != nil {
		return err
	}
	if pl.IsLibrary() {
		return ErrLibraryImmutable
	}
	pl.RemoveSelected()
	return s.Save(id)
}

// Get returns the playlist with the given ID.
func (s *Store) Get(id uint32) (*Playlist, error) {
	for _, p := range s.playlists {
		if p.ID() == id {
			return p, nil
		}
	}
	return nil, errors.Wrapf(ErrNotFound, "id %d", id)
}

// GetLibrary returns the library playlist.
func (s *Store) GetLibrary() (*Playlist, error) {
	for _, p := range s.playlists {
		if p.IsLibrary() {
			return p, nil
		}
	}
	return nil, errors.Wrap(ErrNotFound, "library")
}

// All returns every playlist, library first.
func (s *Store) All() []*Playlist {
	return s.playlists
}

// UserPlaylists returns every non-library playlist.
func (s *Store) UserPlaylists() []*Playlist {
	var out []*Playlist
	for _, p := range s.playlists {
		if !p.IsLibrary() {
			out = append(out, p)
		}
	}
	return out
}

// Save writes a user playlist to disk. Saving the library is a no-op.
func (s *Store) Save(id uint32) error {
	pl, err := s.Get(id)
	if err != nil {
		return err
	}
	if pl.IsLibrary() {
		return nil
	}

	data, err := json.MarshalIndent(pl, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encode playlist")
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return errors.Wrap(err, "create playlists dir")
	}
	return errors.Wrap(os.WriteFile(s.filePath(id), data, 0o644), "write playlist file")
}

func (s *Store) filePath(id uint32) string {
	return filepath.Join(s.dir, fmt.Sprintf("%d.json", id))
}
