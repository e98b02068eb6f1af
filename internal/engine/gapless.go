package engine

import (
	"sync"

	"github.com/gopxl/beep/v2"
)

var _ beep.Streamer = (*gaplessStreamer)(nil)

// gaplessStreamer plays the current stream and, when it runs out, asks
// takeNext for a follow-up stream to splice in without returning ok=false
// to the speaker. It also counts the samples played since the last switch
// so the engine can report a per-track position.
type gaplessStreamer struct {
	mu       sync.Mutex
	current  beep.Streamer
	played   int // samples since the current track started
	takeNext func() beep.Streamer
}

// Stream implements beep.Streamer.
func (g *gaplessStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	for n < len(samples) {
		n2, ok2 := g.current.Stream(samples[n:])
		n += n2
		g.played += n2
		if ok2 {
			if n2 == 0 {
				// Streamer made no progress but claims more data;
				// bail out rather than spin.
				return n, true
			}
			continue
		}

		next := g.takeNext()
		if next == nil {
			return n, n > 0
		}
		g.current = next
		g.played = 0
	}
	return n, true
}

// Err implements beep.Streamer.
func (g *gaplessStreamer) Err() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.current != nil {
		return g.current.Err()
	}
	return nil
}

// Played returns the number of samples streamed since the current track
// started.
func (g *gaplessStreamer) Played() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.played
}

// SetPlayed resets the per-track sample counter, used after seeks.
func (g *gaplessStreamer) SetPlayed(samples int) {
	g.mu.Lock()
	g.played = samples
	g.mu.Unlock()
}
