package library

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/dhowden/tag"
	"github.com/rs/zerolog"
)

const (
	numWorkers  = 8
	minFileSize = 4096

	progressInterval = 200 * time.Millisecond
	partialInterval  = 10 * time.Second
)

// Extensions the playback engine can decode.
var validExtensions = map[string]bool{
	".flac": true,
	".mp3":  true,
	".ogg":  true,
	".oga":  true,
	".wav":  true,
}

// ScanUpdate reports the progress of a background library scan.
type ScanUpdate struct {
	Phase   string // "scanning", "processing", "done", "cancelled"
	Current int
	Total   int

	// Partial holds all entries completed so far (Phase "processing").
	Partial map[string]Metadata

	// Result is the complete library (Phase "done").
	Result *Library
}

// Scan walks the source directories, extracts metadata from every audio
// file and reports progress on updates. The channel is closed when the
// scan finishes or the context is cancelled. Partial results are flushed
// periodically so a live session can be reconciled before the full scan
// completes.
func Scan(ctx context.Context, sources []string, log zerolog.Logger, updates chan<- ScanUpdate) {
	defer close(updates)

	updates <- ScanUpdate{Phase: "scanning"}

	files := discoverFiles(sources)
	total := len(files)
	log.Info().Int("files", total).Msg("library scan started")

	jobs := make(chan string)
	results := make(chan scanResult)

	var wg sync.WaitGroup
	for range numWorkers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				md, err := extractMetadata(path)
				if err != nil {
					log.Warn().Err(err).Str("path", path).Msg("metadata extraction failed")
					continue
				}
				select {
				case results <- scanResult{path: path, md: md}:
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, path := range files {
			select {
			case jobs <- path:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	completed := make(map[string]Metadata)
	done := 0
	lastProgress := time.Now()
	lastPartial := time.Now()

	for {
		select {
		case <-ctx.Done():
			updates <- ScanUpdate{Phase: "cancelled"}
			log.Info().Msg("library scan cancelled")
			return
		case res, ok := <-results:
			if !ok {
				lib := New()
				lib.Merge(completed)
				updates <- ScanUpdate{Phase: "done", Current: done, Total: total, Result: lib}
				log.Info().Int("tracks", len(completed)).Msg("library scan complete")
				return
			}
			completed[res.path] = res.md
			done++

			now := time.Now()
			if now.Sub(lastProgress) >= progressInterval {
				lastProgress = now
				updates <- ScanUpdate{Phase: "processing", Current: done, Total: total}
			}
			if now.Sub(lastPartial) >= partialInterval {
				lastPartial = now
				updates <- ScanUpdate{Phase: "processing", Current: done, Total: total, Partial: clone(completed)}
			}
		}
	}
}

type scanResult struct {
	path string
	md   Metadata
}

func discoverFiles(sources []string) []string {
	var files []string
	for _, src := range sources {
		_ = filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return nil
			}
			if !validExtensions[strings.ToLower(filepath.Ext(path))] {
				return nil
			}
			if info, err := d.Info(); err != nil || info.Size() < minFileSize {
				return nil
			}
			files = append(files, path)
			return nil
		})
	}
	return files
}

// extractMetadata hashes the file contents and reads its tags.
func extractMetadata(path string) (Metadata, error) {
	f, err := os.Open(path)
	if err != nil {
		return Metadata{}, err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return Metadata{}, err
	}

	md := Metadata{ID: hex.EncodeToString(h.Sum(nil))}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return Metadata{}, err
	}

	tags, err := tag.ReadFrom(f)
	if err != nil {
		// Untagged files stay in the library; the filename stands in for
		// a title at display time.
		md.Duration = probeDuration(path)
		return md, nil
	}

	md.Title = tags.Title()
	md.Artist = tags.Artist()
	md.Album = tags.Album()
	md.AlbumArtist = tags.AlbumArtist()
	md.Genre = tags.Genre()
	md.TrackNumber, md.TrackCount = tags.Track()
	md.DiscNumber, md.DiscCount = tags.Disc()
	md.Duration = probeDuration(path)

	if pic := tags.Picture(); pic != nil {
		name, err := cacheArtwork(pic)
		if err == nil {
			md.ArtworkFile = name
		}
	}

	return md, nil
}

func clone(m map[string]Metadata) map[string]Metadata {
	out := make(map[string]Metadata, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
