package main

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/tlecalvez/segue/internal/config"
	"github.com/tlecalvez/segue/internal/engine"
	"github.com/tlecalvez/segue/internal/library"
	"github.com/tlecalvez/segue/internal/playback"
	"github.com/tlecalvez/segue/internal/playlist"
	"github.com/tlecalvez/segue/internal/remote"
	"github.com/tlecalvez/segue/internal/state"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		With().Timestamp().Logger()

	if err := run(log); err != nil {
		log.Fatal().Err(err).Msg("startup failed")
	}
}

func run(log zerolog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	stateMgr, err := state.Open()
	if err != nil {
		return err
	}
	defer stateMgr.Close()

	lib, err := library.Load()
	if err != nil {
		log.Warn().Err(err).Msg("library load failed, starting empty")
		lib = library.New()
	}

	store, err := playlist.NewStore()
	if err != nil {
		return err
	}
	if err := store.LoadAll(playlist.FromLibrary(lib)); err != nil {
		log.Warn().Err(err).Msg("playlist load failed")
	}

	eng := engine.New()
	defer eng.Close()

	bridge := remote.NewBridge()
	svc := playback.NewService(eng, bridge, log)

	// Settings: config supplies first-run defaults, the state database
	// wins once something has been saved.
	volume := cfg.Volume
	mode := playback.RepeatAll
	if cfg.Playback.RepeatMode == "one" {
		mode = playback.RepeatOne
	}
	enabled := cfg.Playback.RepeatEnabled
	shuffle := cfg.Playback.Shuffle
	if saved, err := stateMgr.GetPlayer(); err == nil && saved != nil {
		volume = saved.Volume
		mode = playback.RepeatMode(saved.RepeatMode)
		enabled = saved.RepeatEnabled
		shuffle = saved.Shuffle
	}
	svc.SetVolume(volume)
	svc.SetRepeatState(mode, enabled)

	status := &playerStatus{}
	mpris, err := remote.NewServer(bridge, status)
	if err != nil {
		log.Warn().Err(err).Msg("media controls unavailable")
	} else {
		defer mpris.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var scanUpdates chan library.ScanUpdate
	startScan := func() {
		scanUpdates = make(chan library.ScanUpdate, 4)
		go library.Scan(ctx, cfg.LibrarySources, log, scanUpdates)
	}

	var rescanRequests <-chan struct{}
	if len(cfg.LibrarySources) > 0 {
		startScan()
		watcher, werr := library.Watch(cfg.LibrarySources, log)
		if werr != nil {
			log.Warn().Err(werr).Msg("source watching unavailable")
		} else {
			defer watcher.Close()
			rescanRequests = watcher.Rescan()
		}
	}

	autoplay := func() {
		if !cfg.Playback.Autoplay || svc.Session() != nil {
			return
		}
		libPl, gerr := store.GetLibrary()
		if gerr != nil || libPl.Len() == 0 {
			return
		}
		svc.StartSession(libPl, 0, shuffle)
		logNowPlaying(log, svc)
	}
	autoplay()

	persist := func() {
		st := state.PlayerState{
			Volume:        volume,
			RepeatMode:    int(mode),
			RepeatEnabled: enabled,
			Shuffle:       shuffle,
		}
		if sess := svc.Session(); sess != nil {
			st.LastPlaylistID = sess.PlaylistID
		}
		stateMgr.SavePlayer(st)
	}

	// refreshLibrary swaps the updated library in, rebuilds the library
	// playlist and reconciles any session playing from it.
	refreshLibrary := func(updated *library.Library) {
		lib = updated
		libPl, gerr := store.GetLibrary()
		if gerr != nil {
			return
		}
		libPl.Clear()
		libPl.Push(playlist.FromLibrary(lib)...)
		if !svc.UpdateSessionForLibrary(libPl) {
			log.Info().Msg("current track removed from library")
		}
		autoplay()
	}

	ticker := time.NewTicker(time.Duration(cfg.TickIntervalMS) * time.Millisecond)
	defer ticker.Stop()

	log.Info().Int("tracks", lib.Len()).Msg("ready")

	for {
		select {
		case <-ctx.Done():
			svc.Stop()
			persist()
			return nil

		case <-ticker.C:
			svc.ValidateSession()
			for _, ev := range svc.Tick() {
				switch ev := ev.(type) {
				case playback.ErrorEvent:
					log.Warn().Str("message", ev.Message).Msg("playback error, skipping track")
					svc.Next()
				case playback.TrackEnded:
					log.Info().Msg("playback finished")
					persist()
				case playback.GaplessTrackAdvanced:
					logNowPlaying(log, svc)
				case playback.PositionUpdate:
					// Read back via Progress when needed.
				}
			}
			svc.ProcessRemoteCommands()
			status.update(svc)

		case update, ok := <-scanUpdates:
			if !ok {
				scanUpdates = nil
				continue
			}
			switch update.Phase {
			case "processing":
				// Mid-scan snapshots only add entries; removals wait for
				// the final result so an unscanned current track is not
				// torn down prematurely.
				if update.Partial != nil {
					lib.Merge(update.Partial)
					refreshLibrary(lib)
				}
			case "done":
				refreshLibrary(update.Result)
				if err := lib.Save(); err != nil {
					log.Warn().Err(err).Msg("library save failed")
				}
				log.Info().Int("tracks", lib.Len()).Msg("scan complete")
			}

		case <-rescanRequests:
			if scanUpdates == nil {
				log.Info().Msg("sources changed, rescanning")
				startScan()
			}
		}
	}
}

func logNowPlaying(log zerolog.Logger, svc *playback.Service) {
	md := svc.NowPlaying()
	if md == nil {
		return
	}
	log.Info().
		Str("artist", md.DisplayArtist()).
		Str("title", md.Title).
		Msg("now playing")
}

// playerStatus is the MPRIS read side. The tick loop publishes a
// snapshot after every tick; the D-Bus goroutine reads it under the
// mutex, so it never touches the service directly.
type playerStatus struct {
	mu   sync.Mutex
	snap statusSnapshot
}

type statusSnapshot struct {
	state    remote.PlayState
	track    remote.TrackInfo
	hasTrack bool
	position time.Duration
	hasNext  bool
	hasPrev  bool
}

func (p *playerStatus) update(svc *playback.Service) {
	var snap statusSnapshot

	switch svc.Status() {
	case playback.StatusPlaying:
		snap.state = remote.StatePlaying
	case playback.StatusPaused:
		snap.state = remote.StatePaused
	default:
		snap.state = remote.StateStopped
	}

	snap.position = time.Duration(svc.Progress() * float64(time.Second))

	if sess := svc.Session(); sess != nil {
		snap.hasNext = sess.Index+1 < len(sess.Order)
		snap.hasPrev = len(sess.Order) > 0

		if track, ok := sess.Current(); ok {
			md := track.Metadata
			artwork := ""
			if md.ArtworkFile != "" {
				if path, found := library.ArtworkPath(md.ArtworkFile); found {
					artwork = path
				}
			}
			snap.track = remote.TrackInfo{
				Path:        track.Path,
				Title:       md.DisplayTitle(track.Path),
				Artist:      md.DisplayArtist(),
				Album:       md.DisplayAlbum(),
				TrackNumber: md.TrackNumber,
				Duration:    time.Duration(md.Duration * float64(time.Second)),
				ArtworkFile: artwork,
			}
			snap.hasTrack = true
		}
	}

	p.mu.Lock()
	p.snap = snap
	p.mu.Unlock()
}

func (p *playerStatus) PlayState() remote.PlayState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snap.state
}

func (p *playerStatus) CurrentTrack() (remote.TrackInfo, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snap.track, p.snap.hasTrack
}

func (p *playerStatus) Position() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snap.position
}

func (p *playerStatus) CanGoNext() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snap.hasNext
}

func (p *playerStatus) CanGoPrevious() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snap.hasPrev
}
