package playlist

import "encoding/json"

type playlistJSON struct {
	ID     uint32  `json:"id"`
	Name   string  `json:"name"`
	Kind   Kind    `json:"kind"`
	Tracks []Track `json:"tracks"`
}

// MarshalJSON implements json.Marshaler.
func (p *Playlist) MarshalJSON() ([]byte, error) {
	return json.Marshal(playlistJSON{
		ID:     p.id,
		Name:   p.name,
		Kind:   p.kind,
		Tracks: p.tracks,
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *Playlist) UnmarshalJSON(data []byte) error {
	var raw playlistJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Kind == "" {
		raw.Kind = KindUser
	}
	p.id = raw.ID
	p.name = raw.Name
	p.kind = raw.Kind
	p.tracks = raw.Tracks
	return nil
}
