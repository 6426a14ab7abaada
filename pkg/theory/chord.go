package theory

import "fmt"

// Chord is a root, quality and inversion. The zero Inversion is Root.
type Chord struct {
	Root      Pitch     `json:"root"`
	Quality   Quality   `json:"quality"`
	Inversion Inversion `json:"inversion"`
}

// ChordNotes returns the pitches of a chord in chord-tone order.
//
// The inversion raises the lowest tones by an octave in place; the result
// is not re-sorted, so index 0 is always the chord root whatever register
// it ends up in. Callers that need ascending pitch order must sort.
func ChordNotes(root Pitch, q Quality, inv Inversion) []Pitch {
	offsets := q.mustInfo().offsets
	notes := make([]Pitch, len(offsets))
	for i, o := range offsets {
		notes[i] = root + Pitch(o)
	}
	applyInversion(notes, inv)
	return notes
}

func applyInversion(notes []Pitch, inv Inversion) {
	if len(notes) == 0 {
		return
	}
	var raised int
	switch inv {
	case Root:
		return
	case First:
		raised = 1
	case Second:
		raised = 2
	default:
		panic(fmt.Sprintf("theory: %v: %d", ErrUnknownInversion, int(inv)))
	}
	if raised > len(notes) {
		raised = len(notes)
	}
	for i := 0; i < raised; i++ {
		notes[i] += 12
	}
}

// Notes returns the chord's pitches, see ChordNotes
func (c Chord) Notes() []Pitch {
	return ChordNotes(c.Root, c.Quality, c.Inversion)
}

// Bass returns the lowest sounding pitch of the chord
func (c Chord) Bass() Pitch {
	notes := c.Notes()
	low := notes[0]
	for _, n := range notes[1:] {
		if n < low {
			low = n
		}
	}
	return low
}

// Name returns the chord symbol, e.g. "Cmaj7" or "Am/C" for an inversion
func (c Chord) Name() string {
	name := c.Root.Class() + c.Quality.Symbol()
	if c.Inversion != Root {
		name += "/" + c.Bass().Class()
	}
	return name
}

func (c Chord) String() string {
	return c.Name()
}
