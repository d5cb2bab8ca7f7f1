package music

import (
	"encoding/json"
	"fmt"
)

// Key is a key signature: for each letter, the accidental the
// signature imposes, or NoAccidental when the letter is unaltered.
type Key struct {
	accidentals map[Letter]Accidental
}

// sharpOrder is the circle-of-fifths order in which sharps accrue.
var sharpOrder = [...]Letter{F, C, G, D, A, E, B}

// flatOrder is the order in which flats accrue.
var flatOrder = [...]Letter{B, E, A, D, G, C, F}

// KeyOfC returns the signature with no alterations.
func KeyOfC() Key {
	return Key{accidentals: map[Letter]Accidental{}}
}

// KeyOfSharps returns the signature carrying the first n sharps of the
// circle of fifths (n between 0 and 7).
func KeyOfSharps(n int) (Key, error) {
	if n < 0 || n > len(sharpOrder) {
		return Key{}, fmt.Errorf("sharp count out of range: %d", n)
	}
	k := Key{accidentals: make(map[Letter]Accidental, n)}
	for _, l := range sharpOrder[:n] {
		k.accidentals[l] = Sharp
	}
	return k, nil
}

// KeyOfFlats returns the signature carrying the first n flats of the
// circle of fifths (n between 0 and 7).
func KeyOfFlats(n int) (Key, error) {
	if n < 0 || n > len(flatOrder) {
		return Key{}, fmt.Errorf("flat count out of range: %d", n)
	}
	k := Key{accidentals: make(map[Letter]Accidental, n)}
	for _, l := range flatOrder[:n] {
		k.accidentals[l] = Flat
	}
	return k, nil
}

// Accidental returns the accidental the signature imposes on letter,
// or NoAccidental when the letter is unaltered.
func (k Key) Accidental(letter Letter) Accidental {
	return k.accidentals[letter]
}

// Altered returns the letters the signature alters, in circle-of-fifths
// order, together with the shared accidental. A signature is all sharps
// or all flats, never mixed.
func (k Key) Altered() ([]Letter, Accidental) {
	var letters []Letter
	for _, l := range sharpOrder {
		if k.accidentals[l] == Sharp {
			letters = append(letters, l)
		}
	}
	if len(letters) > 0 {
		return letters, Sharp
	}
	for _, l := range flatOrder {
		if k.accidentals[l] == Flat {
			letters = append(letters, l)
		}
	}
	if len(letters) > 0 {
		return letters, Flat
	}
	return nil, NoAccidental
}

// keyJSON is the wire form of a signature: the accidental counts, which
// fully determine it.
type keyJSON struct {
	Sharps int `json:"sharps,omitempty"`
	Flats  int `json:"flats,omitempty"`
}

// MarshalJSON encodes the signature as its sharp or flat count.
func (k Key) MarshalJSON() ([]byte, error) {
	letters, accidental := k.Altered()
	var j keyJSON
	switch accidental {
	case Sharp:
		j.Sharps = len(letters)
	case Flat:
		j.Flats = len(letters)
	}
	return json.Marshal(j)
}

// UnmarshalJSON decodes a signature from its accidental counts.
func (k *Key) UnmarshalJSON(data []byte) error {
	var j keyJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	switch {
	case j.Sharps != 0:
		key, err := KeyOfSharps(j.Sharps)
		if err != nil {
			return err
		}
		*k = key
	case j.Flats != 0:
		key, err := KeyOfFlats(j.Flats)
		if err != nil {
			return err
		}
		*k = key
	default:
		*k = KeyOfC()
	}
	return nil
}
