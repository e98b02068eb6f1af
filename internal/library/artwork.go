package library

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"strings"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"
	"github.com/dhowden/tag"
)

// cacheArtwork writes an embedded picture to the XDG cache directory,
// keyed by a hash of the image bytes so duplicate covers are stored once.
// Returns the cached file name.
func cacheArtwork(pic *tag.Picture) (string, error) {
	if len(pic.Data) == 0 {
		return "", errors.New("empty artwork")
	}

	ext := pic.Ext
	if ext == "" {
		switch {
		case strings.Contains(pic.MIMEType, "png"):
			ext = "png"
		default:
			ext = "jpg"
		}
	}

	sum := sha256.Sum256(pic.Data)
	name := hex.EncodeToString(sum[:]) + "." + ext

	path, err := xdg.CacheFile(appDirName + "/artwork/" + name)
	if err != nil {
		return "", errors.Wrap(err, "resolve artwork path")
	}

	if _, err := os.Stat(path); err == nil {
		return name, nil
	}

	if err := os.WriteFile(path, pic.Data, 0o644); err != nil {
		return "", errors.Wrap(err, "write artwork")
	}
	return name, nil
}

// ArtworkPath resolves a cached artwork file name to an absolute path.
func ArtworkPath(name string) (string, bool) {
	if name == "" {
		return "", false
	}
	path, err := xdg.SearchCacheFile(appDirName + "/artwork/" + name)
	if err != nil {
		return "", false
	}
	return path, true
}
