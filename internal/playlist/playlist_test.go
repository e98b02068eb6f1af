package playlist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tlecalvez/segue/internal/library"
)

func TestNew_RandomNonzeroID(t *testing.T) {
	for range 100 {
		p := New("test")
		assert.NotZero(t, p.ID())
		assert.NotEqual(t, LibraryID, p.ID())
		assert.Equal(t, KindUser, p.Kind())
	}
}

func TestLibrary_SentinelID(t *testing.T) {
	lib := Library()

	assert.Equal(t, LibraryID, lib.ID())
	assert.True(t, lib.IsLibrary())
}

func TestPlaylist_Move(t *testing.T) {
	p := New("test")
	p.Push(
		NewTrack("/a.mp3", library.Metadata{Title: "a"}),
		NewTrack("/b.mp3", library.Metadata{Title: "b"}),
		NewTrack("/c.mp3", library.Metadata{Title: "c"}),
	)

	assert.True(t, p.Move(0, 2))
	assert.Equal(t, "b", p.Track(0).Metadata.Title)
	assert.Equal(t, "c", p.Track(1).Metadata.Title)
	assert.Equal(t, "a", p.Track(2).Metadata.Title)

	assert.False(t, p.Move(0, 5))
	assert.True(t, p.Move(1, 1))
}

func TestPlaylist_Selection(t *testing.T) {
	p := New("test")
	for _, title := range []string{"a", "b", "c", "d"} {
		p.Push(NewTrack("/"+title+".mp3", library.Metadata{Title: title}))
	}

	p.SelectRange(2, 1) // reversed bounds are normalized
	sel := p.Selected()
	require.Len(t, sel, 2)
	assert.Equal(t, "b", sel[0].Metadata.Title)
	assert.Equal(t, "c", sel[1].Metadata.Title)

	p.RemoveSelected()
	assert.Equal(t, 2, p.Len())
	assert.Equal(t, "a", p.Track(0).Metadata.Title)
	assert.Equal(t, "d", p.Track(1).Metadata.Title)

	p.SelectAll()
	assert.Len(t, p.Selected(), 2)
	p.ClearSelection()
	assert.Empty(t, p.Selected())
}

func TestPlaylist_SortByArtistKeepsAlbumOrder(t *testing.T) {
	p := New("test")
	p.Push(
		NewTrack("/1.mp3", library.Metadata{Artist: "beta", Album: "x", TrackNumber: 2}),
		NewTrack("/2.mp3", library.Metadata{Artist: "Alpha", Album: "y", TrackNumber: 1}),
		NewTrack("/3.mp3", library.Metadata{Artist: "beta", Album: "x", TrackNumber: 1}),
	)

	p.Sort(SortByArtist, SortAscending)

	assert.Equal(t, "Alpha", p.Track(0).Metadata.Artist)
	assert.Equal(t, 1, p.Track(1).Metadata.TrackNumber)
	assert.Equal(t, 2, p.Track(2).Metadata.TrackNumber)
}

func TestTrack_EntryIDsDifferForSameFile(t *testing.T) {
	md := library.Metadata{ID: "samehash"}
	a := NewTrack("/dup.mp3", md)
	b := NewTrack("/dup.mp3", md)

	assert.Equal(t, a.ID(), b.ID())
	assert.NotEqual(t, a.EntryID, b.EntryID)
}

func TestStore_CreateRenameDelete(t *testing.T) {
	s := NewStoreAt(t.TempDir())
	require.NoError(t, s.LoadAll(nil))

	pl, err := s.Create("road trip")
	require.NoError(t, err)
	assert.NotZero(t, pl.ID())

	_, err = s.Create("road trip")
	assert.Error(t, err, "duplicate names are rejected")

	require.NoError(t, s.Rename(pl.ID(), "long road trip"))
	got, err := s.Get(pl.ID())
	require.NoError(t, err)
	assert.Equal(t, "long road trip", got.Name())

	require.NoError(t, s.Delete(pl.ID()))
	_, err = s.Get(pl.ID())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_LibraryIsImmutable(t *testing.T) {
	s := NewStoreAt(t.TempDir())
	require.NoError(t, s.LoadAll([]Track{NewTrack("/a.mp3", library.Metadata{ID: "a"})}))

	lib, err := s.GetLibrary()
	require.NoError(t, err)

	assert.ErrorIs(t, s.Rename(lib.ID(), "x"), ErrLibraryImmutable)
	assert.ErrorIs(t, s.Delete(lib.ID()), ErrLibraryImmutable)
	assert.ErrorIs(t, s.RemoveSelected(lib.ID()), ErrLibraryImmutable)
}

func TestStore_RoundTrip(t *testing.T) {
	dir := t.TempDir()

	s := NewStoreAt(dir)
	require.NoError(t, s.LoadAll(nil))
	pl, err := s.Create("persisted")
	require.NoError(t, err)
	require.NoError(t, s.AddTracks(pl.ID(),
		NewTrack("/a.mp3", library.Metadata{ID: "ida", Title: "A"}),
		NewTrack("/b.mp3", library.Metadata{ID: "idb", Title: "B"}),
	))

	reloaded := NewStoreAt(dir)
	require.NoError(t, reloaded.LoadAll(nil))

	got, err := reloaded.Get(pl.ID())
	require.NoError(t, err)
	assert.Equal(t, "persisted", got.Name())
	require.Equal(t, 2, got.Len())
	assert.Equal(t, "A", got.Track(0).Metadata.Title)
	assert.Equal(t, pl.Track(0).EntryID, got.Track(0).EntryID)
}

func TestFromLibrary_SortedByArtist(t *testing.T) {
	lib := library.New()
	lib.Media["/z.mp3"] = library.Metadata{ID: "z", Artist: "Zebra"}
	lib.Media["/a.mp3"] = library.Metadata{ID: "a", Artist: "Aardvark"}

	tracks := FromLibrary(lib)

	require.Len(t, tracks, 2)
	assert.Equal(t, "Aardvark", tracks[0].Metadata.Artist)
	assert.Equal(t, "Zebra", tracks[1].Metadata.Artist)
}
