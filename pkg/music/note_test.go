package music

import "testing"

func TestNotePitch(t *testing.T) {
	tests := []struct {
		name string
		note Note
		want int
	}{
		{name: "middle C", note: NewNote(C, NoAccidental, 4, Quarter), want: 60},
		{name: "A440", note: NewNote(A, NoAccidental, 4, Quarter), want: 69},
		{name: "F sharp 4", note: NewNote(F, Sharp, 4, Quarter), want: 66},
		{name: "B flat 3", note: NewNote(B, Flat, 3, Quarter), want: 58},
		{name: "bass D3", note: NewNote(D, NoAccidental, 3, Quarter), want: 50},
		{name: "explicit natural", note: NewNote(G, Natural, 4, Quarter), want: 67},
		{name: "C flat sounds as B below", note: NewNote(C, Flat, 3, Quarter), want: 59},
		{name: "B sharp sounds as C above", note: NewNote(B, Sharp, 4, Quarter), want: 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.note.Pitch(); got != tt.want {
				t.Errorf("Pitch() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestNotePitchEnharmonicEquivalence(t *testing.T) {
	cb := NewNote(C, Flat, 3, Quarter)
	b := NewNote(B, NoAccidental, 3, Quarter)
	if cb.Pitch() != b.Pitch() {
		t.Errorf("Cb pitch = %d, B pitch = %d, want equal", cb.Pitch(), b.Pitch())
	}

	bs := NewNote(B, Sharp, 4, Quarter)
	c := NewNote(C, NoAccidental, 4, Quarter)
	if bs.Pitch() != c.Pitch() {
		t.Errorf("B# pitch = %d, C pitch = %d, want equal", bs.Pitch(), c.Pitch())
	}
}

func TestWrittenOctaveShift(t *testing.T) {
	tests := []struct {
		name string
		note Note
		want int
	}{
		{name: "C flat shifts up", note: NewNote(C, Flat, 3, Quarter), want: 1},
		{name: "B sharp shifts down", note: NewNote(B, Sharp, 4, Quarter), want: -1},
		{name: "plain C unshifted", note: NewNote(C, NoAccidental, 4, Quarter), want: 0},
		{name: "C sharp unshifted", note: NewNote(C, Sharp, 4, Quarter), want: 0},
		{name: "B flat unshifted", note: NewNote(B, Flat, 4, Quarter), want: 0},
		{name: "E sharp unshifted", note: NewNote(E, Sharp, 4, Quarter), want: 0},
		{name: "F flat unshifted", note: NewNote(F, Flat, 4, Quarter), want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.note.WrittenOctaveShift(); got != tt.want {
				t.Errorf("WrittenOctaveShift() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRhythmicValueBeats(t *testing.T) {
	tests := []struct {
		value RhythmicValue
		want  float64
	}{
		{Whole, 4},
		{Half, 2},
		{Quarter, 1},
		{Eighth, 0.5},
		{Sixteenth, 0.25},
	}

	for _, tt := range tests {
		t.Run(tt.value.String(), func(t *testing.T) {
			if got := tt.value.Beats(); got != tt.want {
				t.Errorf("Beats() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRhythmicValueFlags(t *testing.T) {
	tests := []struct {
		value    RhythmicValue
		filled   bool
		hasStem  bool
		beamable bool
	}{
		{Whole, false, false, false},
		{Half, false, true, false},
		{Quarter, true, true, false},
		{Eighth, true, true, true},
		{Sixteenth, true, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.value.String(), func(t *testing.T) {
			if got := tt.value.Filled(); got != tt.filled {
				t.Errorf("Filled() = %v, want %v", got, tt.filled)
			}
			if got := tt.value.HasStem(); got != tt.hasStem {
				t.Errorf("HasStem() = %v, want %v", got, tt.hasStem)
			}
			if got := tt.value.Beamable(); got != tt.beamable {
				t.Errorf("Beamable() = %v, want %v", got, tt.beamable)
			}
		})
	}
}

func TestLetterSemitones(t *testing.T) {
	want := map[Letter]int{C: 0, D: 2, E: 4, F: 5, G: 7, A: 9, B: 11}
	for l, s := range want {
		if got := l.Semitones(); got != s {
			t.Errorf("%s.Semitones() = %d, want %d", l, got, s)
		}
	}
}

func TestNoteString(t *testing.T) {
	n := NewNote(F, Sharp, 4, Eighth)
	if got := n.String(); got != "F#4:8" {
		t.Errorf("String() = %q, want %q", got, "F#4:8")
	}
}
