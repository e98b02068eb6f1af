package engine

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
)

const (
	aboutToFinishBuffer = 8
	eventBuffer         = 32
)

// The speaker is process-global and initialized once, at the sample rate
// of the first loaded track; later tracks are resampled to it.
var (
	speakerInitialized bool
	speakerSampleRate  beep.SampleRate
)

// Engine drives the beep speaker with playbin-like semantics: explicit
// load/play/pause/stop, a queued path consumed at end of stream for
// gapless transitions, and a polled event bus.
type Engine struct {
	volumeLevel float64

	// Written on the control goroutine while the chain is detached from
	// the speaker, and by takeQueued under the speaker lock. Reads on the
	// control goroutine that can race a live chain (Seek) take the
	// speaker lock first.
	src   *source
	chain *gaplessStreamer
	ctrl  *beep.Ctrl
	vol   *effects.Volume

	queuedMu   sync.Mutex
	queuedPath string
	loadFailed bool

	aboutToFinish chan struct{}
	events        chan Event
}

// New creates an engine. The speaker itself is initialized lazily on the
// first Load.
func New() *Engine {
	return &Engine{
		volumeLevel:   1.0,
		aboutToFinish: make(chan struct{}, aboutToFinishBuffer),
		events:        make(chan Event, eventBuffer),
	}
}

// Load stops playback and sets a new source. The stream is left paused.
func (e *Engine) Load(path string) {
	e.Stop()

	src, err := openSource(path)
	if err != nil {
		e.pushEvent(Event{Kind: EventError, Message: err.Error()})
		return
	}

	if !speakerInitialized {
		speakerSampleRate = src.format.SampleRate
		if err := speaker.Init(speakerSampleRate, speakerSampleRate.N(time.Second/10)); err != nil {
			src.close()
			e.pushEvent(Event{Kind: EventError, Message: err.Error()})
			return
		}
		speakerInitialized = true
	}

	e.src = src
	e.chain = &gaplessStreamer{
		current:  e.resampled(src),
		takeNext: e.takeQueued,
	}
	e.ctrl = &beep.Ctrl{Streamer: e.chain, Paused: true}
	e.vol = &effects.Volume{
		Streamer: e.ctrl,
		Base:     2,
		Volume:   levelToVolume(e.volumeLevel),
		Silent:   e.volumeLevel <= 0,
	}

	e.clearFailed()
	speaker.Play(beep.Seq(e.vol, beep.Callback(e.streamEnded)))
	e.pushEvent(Event{Kind: EventStreamStarted})
}

// Play resumes the loaded stream.
func (e *Engine) Play() {
	if e.ctrl == nil {
		return
	}
	speaker.Lock()
	e.ctrl.Paused = false
	speaker.Unlock()
}

// Pause suspends the loaded stream.
func (e *Engine) Pause() {
	if e.ctrl == nil {
		return
	}
	speaker.Lock()
	e.ctrl.Paused = true
	speaker.Unlock()
}

// Stop clears the speaker and releases the current source. The queued
// path is left as-is; callers clear it explicitly when they mean to.
func (e *Engine) Stop() {
	if speakerInitialized {
		speaker.Clear()
	}
	// After Clear no Stream call is in flight, so the fields are safe to
	// touch without the speaker lock.
	if e.src != nil {
		e.src.close()
	}
	e.src = nil
	e.chain = nil
	e.ctrl = nil
	e.vol = nil
}

// SetVolume applies a volume level, clamped to [0.0, 1.0].
func (e *Engine) SetVolume(level float64) {
	level = math.Min(math.Max(level, 0), 1)
	e.volumeLevel = level

	if e.vol == nil {
		return
	}
	speaker.Lock()
	e.vol.Volume = levelToVolume(level)
	e.vol.Silent = level <= 0
	speaker.Unlock()
}

// Seek jumps to an absolute position in seconds, clamped to the stream.
func (e *Engine) Seek(seconds float64) {
	if seconds < 0 {
		seconds = 0
	}
	if !speakerInitialized {
		return
	}

	speaker.Lock()
	src, chain := e.src, e.chain
	if src == nil || chain == nil {
		speaker.Unlock()
		return
	}
	pos := src.format.SampleRate.N(time.Duration(seconds * float64(time.Second)))
	if limit := src.streamer.Len(); pos >= limit {
		pos = max(limit-1, 0)
	}
	err := src.streamer.Seek(pos)
	speaker.Unlock()

	chain.SetPlayed(speakerSampleRate.N(time.Duration(seconds * float64(time.Second))))

	if err != nil {
		e.pushEvent(Event{Kind: EventError, Message: err.Error()})
	}
}

// SetQueued sets (or clears, with an empty path) the gapless follow-up.
func (e *Engine) SetQueued(path string) {
	e.queuedMu.Lock()
	e.queuedPath = path
	e.queuedMu.Unlock()
}

// TakeAboutToFinish drains and coalesces about-to-finish notifications.
func (e *Engine) TakeAboutToFinish() bool {
	fired := false
	for {
		select {
		case <-e.aboutToFinish:
			fired = true
		default:
			return fired
		}
	}
}

// Events drains all pending pipeline events.
func (e *Engine) Events() []Event {
	var out []Event
	for {
		select {
		case ev := <-e.events:
			out = append(out, ev)
		default:
			return out
		}
	}
}

// Position returns the per-track playback position in seconds.
func (e *Engine) Position() (float64, bool) {
	chain := e.chain
	if chain == nil {
		return 0, false
	}
	return float64(chain.Played()) / float64(speakerSampleRate), true
}

// Close stops playback and releases resources.
func (e *Engine) Close() error {
	e.Stop()
	return nil
}

// takeQueued runs on the speaker goroutine when the current stream is
// exhausted. It consumes the queued path, swaps the engine's source and
// reports the transition; decode failures surface as Error events.
func (e *Engine) takeQueued() beep.Streamer {
	e.queuedMu.Lock()
	path := e.queuedPath
	e.queuedMu.Unlock()
	if path == "" {
		return nil
	}

	src, err := openSource(path)
	if err != nil {
		e.markFailed()
		e.pushEvent(Event{Kind: EventError, Message: err.Error()})
		return nil
	}

	if e.src != nil {
		e.src.close()
	}
	e.src = src

	e.signalAboutToFinish()
	e.pushEvent(Event{Kind: EventStreamStarted})
	return e.resampled(src)
}

// streamEnded fires when the sequence drains with nothing queued.
func (e *Engine) streamEnded() {
	if e.takeFailed() {
		// A failed gapless load already produced an Error event.
		return
	}
	e.pushEvent(Event{Kind: EventEndOfStream})
}

func (e *Engine) resampled(src *source) beep.Streamer {
	if src.format.SampleRate == speakerSampleRate {
		return src.streamer
	}
	return beep.Resample(4, src.format.SampleRate, speakerSampleRate, src.streamer)
}

func (e *Engine) signalAboutToFinish() {
	select {
	case e.aboutToFinish <- struct{}{}:
	default:
	}
}

func (e *Engine) pushEvent(ev Event) {
	select {
	case e.events <- ev:
	default:
		// Drop if the caller stopped polling.
	}
}

func (e *Engine) markFailed() {
	e.queuedMu.Lock()
	e.loadFailed = true
	e.queuedMu.Unlock()
}

func (e *Engine) takeFailed() bool {
	e.queuedMu.Lock()
	defer e.queuedMu.Unlock()
	failed := e.loadFailed
	e.loadFailed = false
	return failed
}

func (e *Engine) clearFailed() {
	e.queuedMu.Lock()
	e.loadFailed = false
	e.queuedMu.Unlock()
}

// levelToVolume converts a 0.0-1.0 level to beep's logarithmic scale:
// 1.0 -> 0, 0.5 -> -1, 0.25 -> -2, 0 -> silent.
func levelToVolume(level float64) float64 {
	if level <= 0 {
		return -10
	}
	if level >= 1 {
		return 0
	}
	return math.Log2(level)
}
