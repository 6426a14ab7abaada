// Package render turns chords and keys into Standard MIDI Files and reads
// note events back for key analysis
package render

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"
	"sort"

	"github.com/james-see/chordkey/pkg/theory"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

var (
	ErrPitchOutOfRange = errors.New("pitch outside MIDI range 0-127")
	ErrNothingToRender = errors.New("nothing to render")
	ErrNotMIDI         = errors.New("not a standard MIDI file")
	ErrInvalidLength   = errors.New("invalid note length")
)

// MIDIRenderer writes chords and scales as single-track SMF data
type MIDIRenderer struct {
	ticksPerQuarter uint16
	tempo           float64
	channel         uint8
	velocity        uint8
}

// NewMIDIRenderer creates a renderer at 480 ticks per quarter and 120 BPM
func NewMIDIRenderer() *MIDIRenderer {
	return &MIDIRenderer{
		ticksPerQuarter: 480,
		tempo:           120.0,
		channel:         0,
		velocity:        100,
	}
}

// WithTempo sets the tempo in BPM. Non-positive and non-finite values are
// ignored.
func (r *MIDIRenderer) WithTempo(bpm float64) *MIDIRenderer {
	if bpm > 0 && !math.IsInf(bpm, 1) {
		r.tempo = bpm
	}
	return r
}

// WithVelocity sets the note-on velocity, clamped to 1..127
func (r *MIDIRenderer) WithVelocity(v int) *MIDIRenderer {
	switch {
	case v < 1:
		v = 1
	case v > 127:
		v = 127
	}
	r.velocity = uint8(v)
	return r
}

// Tempo returns the tempo in BPM
func (r *MIDIRenderer) Tempo() float64 {
	return r.tempo
}

// RenderChords writes each chord as a block lasting beats quarter notes.
// Non-positive beats default to 4.
func (r *MIDIRenderer) RenderChords(chords []theory.Chord, beats float64) ([]byte, error) {
	if len(chords) == 0 {
		return nil, ErrNothingToRender
	}
	length, err := r.ticks(beats)
	if err != nil {
		return nil, err
	}

	blocks := make([][]theory.Pitch, len(chords))
	for i, c := range chords {
		blocks[i] = c.Notes()
	}
	return r.render(blocks, length)
}

// maxDelta is the largest delta time a four-byte SMF variable-length
// quantity can carry
const maxDelta = 0x0FFFFFFF

// ticks converts a length in quarter notes to a delta time
func (r *MIDIRenderer) ticks(beats float64) (uint32, error) {
	if math.IsNaN(beats) || math.IsInf(beats, 0) {
		return 0, fmt.Errorf("%w: %v beats", ErrInvalidLength, beats)
	}
	if beats <= 0 {
		beats = 4
	}

	t := math.Round(beats * float64(r.ticksPerQuarter))
	if t < 1 || t > maxDelta {
		return 0, fmt.Errorf("%w: %v beats is %.0f ticks, want 1..%d", ErrInvalidLength, beats, t, maxDelta)
	}
	return uint32(t), nil
}

// RenderKey writes the key's eight notes ascending, one quarter note each
func (r *MIDIRenderer) RenderKey(k theory.Key) ([]byte, error) {
	notes := k.Notes()
	blocks := make([][]theory.Pitch, len(notes))
	for i, n := range notes {
		blocks[i] = []theory.Pitch{n}
	}
	return r.render(blocks, uint32(r.ticksPerQuarter))
}

func (r *MIDIRenderer) render(blocks [][]theory.Pitch, length uint32) ([]byte, error) {
	for _, block := range blocks {
		for _, p := range block {
			if p < 0 || p > 127 {
				return nil, fmt.Errorf("%w: %d (%v)", ErrPitchOutOfRange, int(p), p)
			}
		}
	}

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(r.ticksPerQuarter)

	var track smf.Track
	track.Add(0, smf.MetaTempo(r.tempo))
	track.Add(0, smf.MetaMeter(4, 4))

	// Leave a small gap so repeated pitches retrigger
	gate := length - length/16
	if gate == 0 {
		gate = length
	}
	rest := length - gate

	var delta uint32
	for _, block := range blocks {
		for i, p := range block {
			d := uint32(0)
			if i == 0 {
				d = delta
			}
			track.Add(d, midi.NoteOn(r.channel, uint8(p), r.velocity))
		}
		for i, p := range block {
			d := uint32(0)
			if i == 0 {
				d = gate
			}
			track.Add(d, midi.NoteOff(r.channel, uint8(p)))
		}
		delta = rest
	}
	track.Close(delta)

	if err := s.Add(track); err != nil {
		return nil, fmt.Errorf("failed to add track: %w", err)
	}

	var buf bytes.Buffer
	if _, err := s.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write MIDI: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteFile writes MIDI data to filename
func WriteFile(filename string, data []byte) error {
	return os.WriteFile(filename, data, 0644)
}

// NoteEvent is a note-on read from a MIDI file
type NoteEvent struct {
	Tick     int64        `json:"tick"`
	Track    int          `json:"track"`
	Channel  uint8        `json:"channel"`
	Pitch    theory.Pitch `json:"pitch"`
	Velocity uint8        `json:"velocity"`
}

// IsMIDI reports whether data starts with the SMF header chunk
func IsMIDI(data []byte) bool {
	return len(data) >= 4 && string(data[:4]) == "MThd"
}

// ParseNotes returns every note-on in data ordered by tick, then track
func ParseNotes(data []byte) ([]NoteEvent, error) {
	if !IsMIDI(data) {
		return nil, ErrNotMIDI
	}

	s, err := smf.ReadFrom(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse MIDI: %w", err)
	}

	var events []NoteEvent
	for ti, track := range s.Tracks {
		var tick int64
		for _, ev := range track {
			tick += int64(ev.Delta)

			var ch, key, vel uint8
			if ev.Message.GetNoteOn(&ch, &key, &vel) && vel > 0 {
				events = append(events, NoteEvent{
					Tick:     tick,
					Track:    ti,
					Channel:  ch,
					Pitch:    theory.Pitch(key),
					Velocity: vel,
				})
			}
		}
	}

	sort.SliceStable(events, func(i, j int) bool {
		if events[i].Tick != events[j].Tick {
			return events[i].Tick < events[j].Tick
		}
		return events[i].Track < events[j].Track
	})
	return events, nil
}

// DegreeEvent is a parsed note with its scale degree in a key, 0 when the
// note is outside the key
type DegreeEvent struct {
	NoteEvent
	Name   string `json:"name"`
	Degree int    `json:"degree"`
}

// KeyReport summarises how well a MIDI file fits a major key
type KeyReport struct {
	Key      theory.Key    `json:"key"`
	Events   []DegreeEvent `json:"events"`
	Diatonic int           `json:"diatonic"`
	Total    int           `json:"total"`
}

// AnalyzeKey tags every note-on in data with its degree in k
func AnalyzeKey(data []byte, k theory.Key) (*KeyReport, error) {
	notes, err := ParseNotes(data)
	if err != nil {
		return nil, err
	}

	report := &KeyReport{
		Key:    k,
		Events: make([]DegreeEvent, len(notes)),
		Total:  len(notes),
	}
	for i, n := range notes {
		degree, ok := k.Position(n.Pitch)
		if ok {
			report.Diatonic++
		}
		report.Events[i] = DegreeEvent{NoteEvent: n, Name: n.Pitch.String(), Degree: degree}
	}
	return report, nil
}
