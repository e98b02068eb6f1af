package engine

// Mock is a test double for the engine. It records every call and lets
// tests inject pipeline events and the about-to-finish signal.
type Mock struct {
	loads       []string
	queued      []string
	seeks       []float64
	volume      float64
	playing     bool
	loaded      bool
	position    float64
	hasPosition bool

	aboutToFinish bool
	pending       []Event
}

// NewMock creates a mock engine.
func NewMock() *Mock {
	return &Mock{volume: 1.0}
}

func (m *Mock) Load(path string) {
	m.loads = append(m.loads, path)
	m.loaded = true
	m.playing = false
	m.position = 0
	m.hasPosition = true
	m.pending = append(m.pending, Event{Kind: EventStreamStarted})
}

func (m *Mock) Play() {
	if m.loaded {
		m.playing = true
	}
}

func (m *Mock) Pause() { m.playing = false }

func (m *Mock) Stop() {
	m.playing = false
	m.loaded = false
	m.hasPosition = false
	m.position = 0
}

func (m *Mock) SetVolume(level float64) {
	if level < 0 {
		level = 0
	}
	if level > 1 {
		level = 1
	}
	m.volume = level
}

func (m *Mock) Seek(seconds float64) {
	if seconds < 0 {
		seconds = 0
	}
	m.seeks = append(m.seeks, seconds)
	m.position = seconds
}

func (m *Mock) SetQueued(path string) {
	m.queued = append(m.queued, path)
}

func (m *Mock) TakeAboutToFinish() bool {
	fired := m.aboutToFinish
	m.aboutToFinish = false
	return fired
}

func (m *Mock) Events() []Event {
	out := m.pending
	m.pending = nil
	return out
}

func (m *Mock) Position() (float64, bool) {
	return m.position, m.hasPosition
}

func (m *Mock) Close() error {
	m.Stop()
	return nil
}

// Test helpers

// FireAboutToFinish simulates the pipeline consuming the queued path.
func (m *Mock) FireAboutToFinish() { m.aboutToFinish = true }

// PushEvent injects a pipeline event for the next Events drain.
func (m *Mock) PushEvent(ev Event) { m.pending = append(m.pending, ev) }

// SetPosition sets the reported playback position.
func (m *Mock) SetPosition(seconds float64) {
	m.position = seconds
	m.hasPosition = true
}

// LoadCalls returns every path passed to Load.
func (m *Mock) LoadCalls() []string { return m.loads }

// QueuedCalls returns every path passed to SetQueued, including clears.
func (m *Mock) QueuedCalls() []string { return m.queued }

// LastQueued returns the most recent SetQueued argument, or "".
func (m *Mock) LastQueued() string {
	if len(m.queued) == 0 {
		return ""
	}
	return m.queued[len(m.queued)-1]
}

// SeekCalls returns every position passed to Seek.
func (m *Mock) SeekCalls() []float64 { return m.seeks }

// Volume returns the current clamped volume level.
func (m *Mock) Volume() float64 { return m.volume }

// Playing reports whether the mock is in the playing state.
func (m *Mock) Playing() bool { return m.playing }

// Loaded reports whether a source is loaded.
func (m *Mock) Loaded() bool { return m.loaded }

// Verify Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
