package engrave

import (
	"testing"

	"github.com/staveline/staveline/pkg/music"
)

func TestStaffPositionReferenceLines(t *testing.T) {
	tests := []struct {
		name string
		note music.Note
		clef music.Clef
		want int
	}{
		{name: "treble base C", note: music.NewNote(music.C, music.NoAccidental, 4, music.Quarter), clef: music.Treble, want: 0},
		{name: "treble bottom line E4", note: music.NewNote(music.E, music.NoAccidental, 4, music.Quarter), clef: music.Treble, want: 2},
		{name: "treble middle line B4", note: music.NewNote(music.B, music.NoAccidental, 4, music.Quarter), clef: music.Treble, want: 6},
		{name: "treble top line F5", note: music.NewNote(music.F, music.NoAccidental, 5, music.Quarter), clef: music.Treble, want: 10},
		{name: "bass base C", note: music.NewNote(music.C, music.NoAccidental, 2, music.Quarter), clef: music.Bass, want: 0},
		{name: "bass bottom line G2", note: music.NewNote(music.G, music.NoAccidental, 2, music.Quarter), clef: music.Bass, want: 2},
		{name: "bass middle line D3", note: music.NewNote(music.D, music.NoAccidental, 3, music.Quarter), clef: music.Bass, want: 6},
		{name: "bass top line A3", note: music.NewNote(music.A, music.NoAccidental, 3, music.Quarter), clef: music.Bass, want: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StaffPosition(tt.note, tt.clef); got != tt.want {
				t.Errorf("StaffPosition() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestStaffPositionOctaveStep(t *testing.T) {
	// Same letter and accidental, one octave up, is always exactly
	// 7 positions higher, in either clef.
	for _, clef := range []music.Clef{music.Treble, music.Bass} {
		for _, letter := range music.Letters() {
			for _, acc := range []music.Accidental{music.NoAccidental, music.Flat, music.Sharp} {
				for octave := 1; octave < 6; octave++ {
					lo := StaffPosition(music.NewNote(letter, acc, octave, music.Quarter), clef)
					hi := StaffPosition(music.NewNote(letter, acc, octave+1, music.Quarter), clef)
					if hi-lo != 7 {
						t.Fatalf("%s%s %s: octave %d→%d moved %d positions, want 7",
							letter, acc, clef, octave, octave+1, hi-lo)
					}
				}
			}
		}
	}
}

func TestStaffPositionOctaveBorderline(t *testing.T) {
	// Cb and B of the same pitch octave are enharmonic neighbors: the
	// Cb is written exactly one position above the B.
	cb := music.NewNote(music.C, music.Flat, 3, music.Quarter)
	b := music.NewNote(music.B, music.NoAccidental, 3, music.Quarter)
	if got, want := StaffPosition(cb, music.Treble), StaffPosition(b, music.Treble)+1; got != want {
		t.Errorf("Cb position = %d, want %d (B + 1)", got, want)
	}

	// B# and C of the same pitch octave: the B# is written one below.
	bs := music.NewNote(music.B, music.Sharp, 4, music.Quarter)
	c := music.NewNote(music.C, music.NoAccidental, 4, music.Quarter)
	if got, want := StaffPosition(bs, music.Treble), StaffPosition(c, music.Treble)-1; got != want {
		t.Errorf("B# position = %d, want %d (C - 1)", got, want)
	}
}

func TestStaffPositionOnlyBorderlineAdjusted(t *testing.T) {
	// Other enharmonic spellings (E#, Fb, ...) are placed literally by
	// letter and octave with no special casing.
	es := music.NewNote(music.E, music.Sharp, 4, music.Quarter)
	e := music.NewNote(music.E, music.NoAccidental, 4, music.Quarter)
	if StaffPosition(es, music.Treble) != StaffPosition(e, music.Treble) {
		t.Error("E# should sit on the same position as E")
	}

	fb := music.NewNote(music.F, music.Flat, 4, music.Quarter)
	f := music.NewNote(music.F, music.NoAccidental, 4, music.Quarter)
	if StaffPosition(fb, music.Treble) != StaffPosition(f, music.Treble) {
		t.Error("Fb should sit on the same position as F")
	}
}

func TestYForPositionHalfLineSteps(t *testing.T) {
	m := NewMetrics(600)
	for _, clef := range []music.Clef{music.Treble, music.Bass} {
		for pos := -4; pos < 14; pos++ {
			lo := m.YForPosition(pos, clef)
			hi := m.YForPosition(pos+1, clef)
			if diff := lo - hi; diff != m.StaffLineHeight/2 {
				t.Fatalf("%s position %d→%d: y moved %v, want %v",
					clef, pos, pos+1, diff, m.StaffLineHeight/2)
			}
		}
	}
}

func TestYForPositionStaffAnchors(t *testing.T) {
	m := NewMetrics(600)

	if got := m.YForPosition(2, music.Treble); got != m.StaffBottom(music.Treble) {
		t.Errorf("treble bottom line y = %v, want %v", got, m.StaffBottom(music.Treble))
	}
	if got := m.YForPosition(10, music.Treble); got != m.StaffTop(music.Treble) {
		t.Errorf("treble top line y = %v, want %v", got, m.StaffTop(music.Treble))
	}
	if got := m.YForPosition(6, music.Bass); got != m.MiddleLineY(music.Bass) {
		t.Errorf("bass middle line y = %v, want %v", got, m.MiddleLineY(music.Bass))
	}
}
