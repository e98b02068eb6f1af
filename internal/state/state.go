// Package state persists player settings between runs in a small SQLite
// database. Saves are debounced so volume drags and rapid toggles do not
// hammer the disk; Close flushes whatever is still pending.
package state

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/adrg/xdg"
	_ "modernc.org/sqlite" // SQLite driver
)

const (
	appName      = "segue"
	dbFileName   = "segue.db"
	saveDebounce = 500 * time.Millisecond
)

// PlayerState is the persisted snapshot of the player settings.
type PlayerState struct {
	Volume         float64
	RepeatMode     int
	RepeatEnabled  bool
	Shuffle        bool
	LastPlaylistID uint32
}

type Manager struct {
	db        *sql.DB
	saveMu    sync.Mutex
	saveTimer *time.Timer
	pending   *PlayerState
}

func Open() (*Manager, error) {
	dbPath, err := xdg.DataFile(filepath.Join(appName, dbFileName))
	if err != nil {
		return nil, err
	}
	return OpenAt(dbPath)
}

// OpenAt opens the state database at an explicit path.
func OpenAt(dbPath string) (*Manager, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Manager{db: db}, nil
}

func (m *Manager) Close() error {
	m.saveMu.Lock()
	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}
	pending := m.pending
	m.pending = nil
	m.saveMu.Unlock()

	// Flush pending state
	if pending != nil {
		_ = savePlayer(m.db, *pending)
	}

	return m.db.Close()
}

// GetPlayer returns the saved player state, or nil when nothing has been
// saved yet so the caller can fall back to configured defaults.
func (m *Manager) GetPlayer() (*PlayerState, error) {
	var st PlayerState

	row := m.db.QueryRow(`
		SELECT volume, repeat_mode, repeat_enabled, shuffle, last_playlist_id
		FROM player_state WHERE id = 1
	`)
	err := row.Scan(&st.Volume, &st.RepeatMode, &st.RepeatEnabled, &st.Shuffle, &st.LastPlaylistID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &st, nil
}

// SavePlayer schedules a debounced write of the player state.
func (m *Manager) SavePlayer(st PlayerState) {
	m.saveMu.Lock()
	defer m.saveMu.Unlock()

	m.pending = &st

	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}

	m.saveTimer = time.AfterFunc(saveDebounce, func() {
		m.saveMu.Lock()
		pending := m.pending
		m.pending = nil
		m.saveMu.Unlock()

		if pending != nil {
			_ = savePlayer(m.db, *pending)
		}
	})
}

func savePlayer(db *sql.DB, st PlayerState) error {
	_, err := db.Exec(`
		INSERT INTO player_state (id, volume, repeat_mode, repeat_enabled, shuffle, last_playlist_id)
		VALUES (1, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			volume = excluded.volume,
			repeat_mode = excluded.repeat_mode,
			repeat_enabled = excluded.repeat_enabled,
			shuffle = excluded.shuffle,
			last_playlist_id = excluded.last_playlist_id
	`, st.Volume, st.RepeatMode, st.RepeatEnabled, st.Shuffle, st.LastPlaylistID)
	return err
}
