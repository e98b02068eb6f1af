package playlist

// Selection state is transient UI state carried on tracks; it is never
// serialized.

// Select marks the track at index as selected.
func (p *Playlist) Select(index int) {
	if index >= 0 && index < len(p.tracks) {
		p.tracks[index].Selected = true
	}
}

// Deselect clears the selection of the track at index.
func (p *Playlist) Deselect(index int) {
	if index >= 0 && index < len(p.tracks) {
		p.tracks[index].Selected = false
	}
}

// SelectAll marks every track as selected.
func (p *Playlist) SelectAll() {
	for i := range p.tracks {
		p.tracks[i].Selected = true
	}
}

// SelectRange marks every track between start and end inclusive, in either
// order.
func (p *Playlist) SelectRange(start, end int) {
	if start > end {
		start, end = end, start
	}
	for i := max(start, 0); i <= end && i < len(p.tracks); i++ {
		p.tracks[i].Selected = true
	}
}

// ClearSelection deselects every track.
func (p *Playlist) ClearSelection() {
	for i := range p.tracks {
		p.tracks[i].Selected = false
	}
}

// Selected returns the selected tracks in order.
func (p *Playlist) Selected() []Track {
	var out []Track
	for _, t := range p.tracks {
		if t.Selected {
			out = append(out, t)
		}
	}
	return out
}

// RemoveSelected drops every selected track.
func (p *Playlist) RemoveSelected() {
	kept := p.tracks[:0]
	for _, t := range p.tracks {
		if !t.Selected {
			kept = append(kept, t)
		}
	}
	p.tracks = kept
}
