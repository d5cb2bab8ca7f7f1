// Package scorefile reads scores from TOML files. A score file names a
// title and key and lists measures, each measure carrying the treble and
// bass chord sequences as compact note strings ("C4:8 E4:8" is an eighth
// note C/E chord).
package scorefile

import (
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/staveline/staveline/pkg/errors"
	"github.com/staveline/staveline/pkg/music"
)

type scoreFile struct {
	Title    string        `toml:"title"`
	Key      keySection    `toml:"key"`
	Measures []measureFile `toml:"measure"`
}

type keySection struct {
	Sharps int `toml:"sharps"`
	Flats  int `toml:"flats"`
}

type measureFile struct {
	Treble []string `toml:"treble"`
	Bass   []string `toml:"bass"`
}

// Load reads and parses a score file from disk.
func Load(path string) (music.Score, error) {
	data, err := ReadFile(path)
	if err != nil {
		return music.Score{}, err
	}
	return Parse(data)
}

// ReadFile validates the path and returns the raw score document. It is
// the single loading path for everything that needs score bytes, such
// as the pipeline's content hashing.
func ReadFile(path string) ([]byte, error) {
	if err := errors.ValidateScorePath(path); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "score file not found: %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "cannot read score file: %s", path)
	}
	return data, nil
}

// Parse decodes a TOML score document.
func Parse(data []byte) (music.Score, error) {
	var f scoreFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return music.Score{}, errors.Wrap(errors.ErrCodeInvalidScore, err, "malformed score file")
	}

	if err := errors.ValidateTitle(f.Title); err != nil {
		return music.Score{}, err
	}

	key, err := parseKey(f.Key)
	if err != nil {
		return music.Score{}, err
	}

	score := music.Score{Title: f.Title, Key: key}
	for i, m := range f.Measures {
		treble, err := parseTrack(m.Treble, i)
		if err != nil {
			return music.Score{}, err
		}
		bass, err := parseTrack(m.Bass, i)
		if err != nil {
			return music.Score{}, err
		}
		score.Measures = append(score.Measures, music.Measure{Treble: treble, Bass: bass})
	}
	return score, nil
}

func parseKey(k keySection) (music.Key, error) {
	if k.Sharps != 0 && k.Flats != 0 {
		return music.Key{}, errors.New(errors.ErrCodeInvalidKey, "key cannot mix sharps and flats")
	}
	if k.Flats != 0 {
		return music.KeyOfFlats(k.Flats)
	}
	if k.Sharps != 0 {
		return music.KeyOfSharps(k.Sharps)
	}
	return music.KeyOfC(), nil
}

func parseTrack(chords []string, measure int) ([]music.Chord, error) {
	out := make([]music.Chord, 0, len(chords))
	for _, s := range chords {
		c, err := ParseChord(s)
		if err != nil {
			return nil, errors.Wrap(errors.GetCode(err), err, "measure %d", measure+1)
		}
		out = append(out, c)
	}
	return out, nil
}

// ParseChord parses a space-separated list of notes sharing one rhythmic
// value, e.g. "C4:8 E4:8 G4:8".
func ParseChord(s string) (music.Chord, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return music.Chord{}, errors.New(errors.ErrCodeInvalidScore, "empty chord %q", s)
	}
	notes := make([]music.Note, 0, len(fields))
	for _, f := range fields {
		n, err := ParseNote(f)
		if err != nil {
			return music.Chord{}, err
		}
		notes = append(notes, n)
	}
	return music.NewChord(notes...)
}

// ParseNote parses one note string: a letter A..G, an optional accidental
// (#, b, or n), a single octave digit in scientific pitch notation, a
// colon, and the rhythmic denominator (1, 2, 4, 8, or 16).
//
// The stored octave is the octave of the sounding pitch, so the two
// spellings that cross an octave boundary are normalized here: Cb4 sounds
// as B3 and is stored with octave 3, B#3 sounds as C4 and is stored with
// octave 4.
func ParseNote(s string) (music.Note, error) {
	body, denom, ok := strings.Cut(s, ":")
	if !ok {
		return music.Note{}, errors.New(errors.ErrCodeInvalidNote, "note %q is missing a rhythmic value", s)
	}

	rhythmic, err := parseRhythmic(denom, s)
	if err != nil {
		return music.Note{}, err
	}

	if len(body) < 2 {
		return music.Note{}, errors.New(errors.ErrCodeInvalidNote, "note %q is too short", s)
	}

	letter, err := parseLetter(body[0], s)
	if err != nil {
		return music.Note{}, err
	}

	accidental := music.NoAccidental
	rest := body[1:]
	switch rest[0] {
	case '#':
		accidental, rest = music.Sharp, rest[1:]
	case 'b':
		accidental, rest = music.Flat, rest[1:]
	case 'n':
		accidental, rest = music.Natural, rest[1:]
	}

	if len(rest) != 1 || rest[0] < '0' || rest[0] > '9' {
		return music.Note{}, errors.New(errors.ErrCodeInvalidNote, "note %q needs a single octave digit", s)
	}
	written := int(rest[0] - '0')

	n := music.NewNote(letter, accidental, written, rhythmic)
	n.Octave = written - n.WrittenOctaveShift()
	return n, nil
}

func parseLetter(c byte, note string) (music.Letter, error) {
	switch c {
	case 'C':
		return music.C, nil
	case 'D':
		return music.D, nil
	case 'E':
		return music.E, nil
	case 'F':
		return music.F, nil
	case 'G':
		return music.G, nil
	case 'A':
		return music.A, nil
	case 'B':
		return music.B, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidNote, "note %q has no valid letter", note)
}

func parseRhythmic(denom, note string) (music.RhythmicValue, error) {
	switch denom {
	case "1":
		return music.Whole, nil
	case "2":
		return music.Half, nil
	case "4":
		return music.Quarter, nil
	case "8":
		return music.Eighth, nil
	case "16":
		return music.Sixteenth, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidNote, "note %q has rhythmic value %q, want 1, 2, 4, 8, or 16", note, denom)
}
