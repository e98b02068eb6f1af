//go:build linux

package remote

import (
	"fmt"
	"hash/fnv"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/quarckster/go-mpris-server/pkg/server"
	"github.com/quarckster/go-mpris-server/pkg/types"
)

// Server exposes the player over MPRIS on D-Bus. Control methods push
// commands onto the bridge; properties are served from the status source.
type Server struct {
	server *server.Server
}

// NewServer creates and starts an MPRIS server in the background.
func NewServer(bridge *Bridge, source StatusSource) (*Server, error) {
	s := &Server{}

	rootAdapter := &rootAdapter{}
	playerAdapter := &playerAdapter{bridge: bridge, source: source}

	s.server = server.NewServer("segue", rootAdapter, playerAdapter)

	go func() {
		_ = s.server.Listen()
	}()

	return s, nil
}

// Close stops the server and releases D-Bus resources.
func (s *Server) Close() error {
	return s.server.Stop()
}

// rootAdapter implements OrgMprisMediaPlayer2Adapter.
type rootAdapter struct{}

func (r *rootAdapter) Raise() error {
	return nil // Not supported
}

func (r *rootAdapter) Quit() error {
	return nil // Not supported - app manages its own lifecycle
}

func (r *rootAdapter) CanQuit() (bool, error) {
	return false, nil
}

func (r *rootAdapter) CanRaise() (bool, error) {
	return false, nil
}

func (r *rootAdapter) HasTrackList() (bool, error) {
	return false, nil // Track list interface not implemented
}

func (r *rootAdapter) Identity() (string, error) {
	return "Segue", nil
}

//nolint:revive // Method name required by interface.
func (r *rootAdapter) SupportedUriSchemes() ([]string, error) {
	return []string{"file"}, nil
}

func (r *rootAdapter) SupportedMimeTypes() ([]string, error) {
	return []string{"audio/mpeg", "audio/flac", "audio/ogg", "audio/x-wav"}, nil
}

// playerAdapter implements OrgMprisMediaPlayer2PlayerAdapter. Writes go
// through the bridge; the playback service applies them on its next tick.
type playerAdapter struct {
	bridge *Bridge
	source StatusSource
}

func (p *playerAdapter) Next() error {
	p.bridge.Push(Command{Kind: CommandNext})
	return nil
}

func (p *playerAdapter) Previous() error {
	p.bridge.Push(Command{Kind: CommandPrevious})
	return nil
}

func (p *playerAdapter) Pause() error {
	p.bridge.Push(Command{Kind: CommandPause})
	return nil
}

func (p *playerAdapter) PlayPause() error {
	p.bridge.Push(Command{Kind: CommandPlayPause})
	return nil
}

func (p *playerAdapter) Stop() error {
	p.bridge.Push(Command{Kind: CommandStop})
	return nil
}

func (p *playerAdapter) Play() error {
	p.bridge.Push(Command{Kind: CommandPlay})
	return nil
}

func (p *playerAdapter) Seek(offset types.Microseconds) error {
	p.bridge.Push(Command{
		Kind:   CommandSeek,
		Offset: time.Duration(offset) * time.Microsecond,
	})
	return nil
}

func (p *playerAdapter) SetPosition(_ string, position types.Microseconds) error {
	// The command queue only carries relative seeks, so an absolute jump
	// becomes an offset from the position at push time.
	target := time.Duration(position) * time.Microsecond
	p.bridge.Push(Command{
		Kind:   CommandSeek,
		Offset: target - p.source.Position(),
	})
	return nil
}

//nolint:revive // Method name required by interface.
func (p *playerAdapter) OpenUri(_ string) error {
	return nil // Not supported
}

func (p *playerAdapter) PlaybackStatus() (types.PlaybackStatus, error) {
	switch p.source.PlayState() {
	case StatePlaying:
		return types.PlaybackStatusPlaying, nil
	case StatePaused:
		return types.PlaybackStatusPaused, nil
	case StateStopped:
		return types.PlaybackStatusStopped, nil
	}
	return types.PlaybackStatusStopped, nil
}

func (p *playerAdapter) Rate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) SetRate(_ float64) error {
	return nil // Not supported
}

func (p *playerAdapter) Metadata() (types.Metadata, error) {
	track, ok := p.source.CurrentTrack()
	if !ok {
		return types.Metadata{}, nil
	}

	meta := types.Metadata{
		TrackId:     dbus.ObjectPath(formatTrackID(track.Path)),
		Length:      types.Microseconds(track.Duration.Microseconds()),
		Title:       track.Title,
		Artist:      []string{track.Artist},
		Album:       track.Album,
		TrackNumber: track.TrackNumber,
	}

	if track.ArtworkFile != "" {
		meta.ArtUrl = "file://" + track.ArtworkFile
	}

	return meta, nil
}

func (p *playerAdapter) Volume() (float64, error) {
	return 1.0, nil // Volume control not exposed over D-Bus
}

func (p *playerAdapter) SetVolume(_ float64) error {
	return nil // Not supported
}

func (p *playerAdapter) Position() (int64, error) {
	return p.source.Position().Microseconds(), nil
}

func (p *playerAdapter) MinimumRate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) MaximumRate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) CanGoNext() (bool, error) {
	return p.source.CanGoNext(), nil
}

func (p *playerAdapter) CanGoPrevious() (bool, error) {
	return p.source.CanGoPrevious(), nil
}

func (p *playerAdapter) CanPlay() (bool, error) {
	_, ok := p.source.CurrentTrack()
	return ok, nil
}

func (p *playerAdapter) CanPause() (bool, error) {
	return true, nil
}

func (p *playerAdapter) CanSeek() (bool, error) {
	return true, nil
}

func (p *playerAdapter) CanControl() (bool, error) {
	return true, nil
}

func formatTrackID(path string) string {
	h := fnv.New64a()
	h.Write([]byte(path))
	return fmt.Sprintf("/org/mpris/MediaPlayer2/Track/%x", h.Sum64())
}
