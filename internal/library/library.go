// Package library holds the scanned media library: per-file metadata keyed
// by path, JSON persistence in the XDG data directory, and the background
// scanner that fills metadata in.
package library

import (
	"bufio"
	"encoding/json"
	"os"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"
)

const (
	appDirName      = "segue"
	libraryFileName = "library.json"
)

// Library maps media file paths to their extracted metadata.
type Library struct {
	Media map[string]Metadata
}

// New creates an empty library.
func New() *Library {
	return &Library{Media: make(map[string]Metadata)}
}

// FromID returns the path and metadata of the entry with the given
// content-hash ID, or false if no entry carries that ID.
func (l *Library) FromID(id string) (string, Metadata, bool) {
	if id == "" {
		return "", Metadata{}, false
	}
	for path, md := range l.Media {
		if md.ID == id {
			return path, md, true
		}
	}
	return "", Metadata{}, false
}

// Len returns the number of entries.
func (l *Library) Len() int {
	return len(l.Media)
}

// Merge copies the given entries into the library, replacing existing ones.
func (l *Library) Merge(entries map[string]Metadata) {
	for path, md := range entries {
		l.Media[path] = md
	}
}

// Load reads the library from the XDG data directory. A missing file is not
// an error: a fresh empty library is returned.
func Load() (*Library, error) {
	path, err := xdg.DataFile(appDirName + "/" + libraryFileName)
	if err != nil {
		return nil, errors.Wrap(err, "resolve library path")
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return New(), nil
		}
		return nil, errors.Wrap(err, "open library file")
	}
	defer f.Close()

	media := make(map[string]Metadata)
	if err := json.NewDecoder(bufio.NewReader(f)).Decode(&media); err != nil {
		return nil, errors.Wrap(err, "decode library file")
	}

	// Entries without an ID never finished scanning; drop them so stale
	// placeholders don't shadow a future rescan.
	for path, md := range media {
		if md.ID == "" {
			delete(media, path)
		}
	}

	return &Library{Media: media}, nil
}

// Save writes the library to the XDG data directory.
func (l *Library) Save() error {
	path, err := xdg.DataFile(appDirName + "/" + libraryFileName)
	if err != nil {
		return errors.Wrap(err, "resolve library path")
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create library file")
	}

	w := bufio.NewWriter(f)
	if err := json.NewEncoder(w).Encode(l.Media); err != nil {
		f.Close()
		return errors.Wrap(err, "encode library")
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return errors.Wrap(err, "flush library file")
	}
	return errors.Wrap(f.Close(), "close library file")
}
