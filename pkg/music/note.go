// Package music defines the immutable data model for notated music:
// letters, accidentals, rhythmic values, notes, chords, clefs, keys,
// and measures. All values are produced upstream (score files or
// generators) and consumed by the engraving engine; nothing in this
// package is mutated after construction.
package music

import "fmt"

// Letter is one of the seven natural note names. The ordering follows
// the staff: C is the reference of each octave and letters ascend
// cyclically C, D, E, F, G, A, B.
type Letter int

// Natural note names in cyclic staff order.
const (
	C Letter = iota
	D
	E
	F
	G
	A
	B
)

// letterNames maps letters to their display names.
var letterNames = [...]string{"C", "D", "E", "F", "G", "A", "B"}

// letterSemitones maps each letter to its semitone offset within an octave.
var letterSemitones = [...]int{0, 2, 4, 5, 7, 9, 11}

// String returns the letter's name ("C" through "B").
func (l Letter) String() string {
	if l < C || l > B {
		return fmt.Sprintf("Letter(%d)", int(l))
	}
	return letterNames[l]
}

// Valid reports whether l is one of the seven defined letters.
func (l Letter) Valid() bool { return l >= C && l <= B }

// Semitones returns the letter's semitone offset from C within an octave.
func (l Letter) Semitones() int { return letterSemitones[l] }

// Letters returns all seven letters in cyclic staff order.
func Letters() []Letter {
	return []Letter{C, D, E, F, G, A, B}
}

// Accidental alters a letter's pitch. None means "no symbol, follow the
// key signature"; Natural is an explicit symbol that cancels a prior
// alteration, so it is distinct from None for display purposes even
// though both leave the pitch unaltered.
type Accidental int

// Accidental values in ascending semitone order.
const (
	NoAccidental Accidental = iota
	Flat
	Natural
	Sharp
)

// String returns the conventional ASCII spelling of the accidental.
func (a Accidental) String() string {
	switch a {
	case Flat:
		return "b"
	case Natural:
		return "n"
	case Sharp:
		return "#"
	case NoAccidental:
		return ""
	}
	return fmt.Sprintf("Accidental(%d)", int(a))
}

// Valid reports whether a is a defined accidental value.
func (a Accidental) Valid() bool { return a >= NoAccidental && a <= Sharp }

// Semitones returns the pitch alteration in semitones (-1, 0, +1).
func (a Accidental) Semitones() int {
	switch a {
	case Flat:
		return -1
	case Sharp:
		return 1
	}
	return 0
}

// Glyph returns the Unicode musical symbol for the accidental, or ""
// when no symbol is drawn.
func (a Accidental) Glyph() string {
	switch a {
	case Flat:
		return "♭"
	case Natural:
		return "♮"
	case Sharp:
		return "♯"
	}
	return ""
}

// NoteLabel is the notated spelling of a note: a letter plus an
// accidental. The spelling is decoupled from absolute pitch so that
// enharmonic notes (Cb vs B) keep their written identity.
type NoteLabel struct {
	Letter     Letter
	Accidental Accidental
}

// String returns the spelled label, e.g. "F#" or "Bb".
func (l NoteLabel) String() string {
	return l.Letter.String() + l.Accidental.String()
}

// RhythmicValue is the duration class of a note. It doubles as a
// relative horizontal spacing weight during layout.
type RhythmicValue int

// Duration classes from longest to shortest.
const (
	Whole RhythmicValue = iota
	Half
	Quarter
	Eighth
	Sixteenth
)

// String returns the denominator form used in score files ("1".."16").
func (v RhythmicValue) String() string {
	switch v {
	case Whole:
		return "1"
	case Half:
		return "2"
	case Quarter:
		return "4"
	case Eighth:
		return "8"
	case Sixteenth:
		return "16"
	}
	return fmt.Sprintf("RhythmicValue(%d)", int(v))
}

// Valid reports whether v is a defined rhythmic value.
func (v RhythmicValue) Valid() bool { return v >= Whole && v <= Sixteenth }

// Beats returns the duration in quarter-note beats, which is also the
// relative width multiplier used by the horizontal layout accumulator.
func (v RhythmicValue) Beats() float64 {
	switch v {
	case Whole:
		return 4
	case Half:
		return 2
	case Quarter:
		return 1
	case Eighth:
		return 0.5
	case Sixteenth:
		return 0.25
	}
	return 0
}

// Filled reports whether the note head is drawn filled. Whole and half
// notes render as outlines.
func (v RhythmicValue) Filled() bool { return v >= Quarter }

// HasStem reports whether the value carries a stem. Only whole notes
// are stemless.
func (v RhythmicValue) HasStem() bool { return v != Whole }

// Beamable reports whether notes of this value can join a beam group
// of size greater than one (eighth notes and finer).
func (v RhythmicValue) Beamable() bool { return v >= Eighth }

// Note is a single notated pitch: a spelled label, an octave, and a
// rhythmic value.
//
// Octave is the octave of the sounding pitch (C-based, middle C = 60 in
// octave 4), not of the written letter. The two differ only for the
// octave-borderline spellings: Cb sounding as B of octave n carries
// octave n while being written in octave n+1, and B# sounding as C of
// octave n carries octave n while being written in octave n-1. Pitch
// and staff position both account for this.
type Note struct {
	Label    NoteLabel
	Octave   int
	Rhythmic RhythmicValue
}

// NewNote builds a note from its parts.
func NewNote(letter Letter, accidental Accidental, octave int, rhythmic RhythmicValue) Note {
	return Note{
		Label:    NoteLabel{Letter: letter, Accidental: accidental},
		Octave:   octave,
		Rhythmic: rhythmic,
	}
}

// Pitch returns the absolute semitone number of the note using the
// MIDI convention (C4 = 60). For the octave-borderline spellings the
// written letter lives in the neighboring octave, so a Cb in octave 3
// and a B in octave 3 yield the same pitch (59) despite differing
// letters, as do a B# and a C in octave 4 (60).
func (n Note) Pitch() int {
	octave := n.Octave + n.WrittenOctaveShift()
	return (octave+1)*12 + n.Label.Letter.Semitones() + n.Label.Accidental.Semitones()
}

// WrittenOctaveShift returns the offset from the sounding-pitch octave
// to the octave the note is written in: +1 for Cb, -1 for B#, 0 for
// every other spelling. Only these two spellings cross an octave
// boundary; nothing else is adjusted.
func (n Note) WrittenOctaveShift() int {
	switch {
	case n.Label.Letter == C && n.Label.Accidental == Flat:
		return 1
	case n.Label.Letter == B && n.Label.Accidental == Sharp:
		return -1
	}
	return 0
}

// String returns the spelled note, e.g. "F#4:8".
func (n Note) String() string {
	return fmt.Sprintf("%s%d:%s", n.Label, n.Octave, n.Rhythmic)
}
