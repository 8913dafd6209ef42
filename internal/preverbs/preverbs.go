// Package preverbs holds the closed preverb inventories per verb class and tense and the
// irregular subject-indexed shapes of the go, gy and coz preverbs.
package preverbs

import (
	"sort"
	"strings"
	"unicode/utf8"

	"lazverb/internal/grammar"
)

// Table is an ordered preverb inventory; longer preverbs are tried first
type Table struct {
	preverbs []string
}

func newTable(preverbs ...string) Table {
	sorted := append([]string(nil), preverbs...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return utf8.RuneCountInString(sorted[i]) > utf8.RuneCountInString(sorted[j])
	})
	return Table{preverbs: sorted}
}

// Extract returns the longest preverb that prefixes word with a non-empty remainder
func (t Table) Extract(word string) (preverb, rest string, ok bool) {
	for _, pv := range t.preverbs {
		if strings.HasPrefix(word, pv) && len(word) > len(pv) {
			return pv, word[len(pv):], true
		}
	}
	return "", word, false
}

var (
	ivdPresent = newTable("ge", "e", "ce", "do", "go", "me", "mo", "gama", "ǩoǩo")
	ivdPast    = newTable("ge", "e", "ce", "do", "go", "me", "mo", "gama", "ǩoǩo", "gela")
	ivdOther   = newTable("ge", "e", "ce", "do", "go", "me", "mo", "gama")

	tvePresent = newTable("ge", "e", "ce", "do", "go", "gy", "coz", "me", "mo", "dolo", "oxo", "oǩo", "gama", "gelo", "ama")
	tvePast    = newTable("ge", "e", "ce", "do", "go", "gy", "coz", "me", "mo", "dolo", "oxo", "oǩo", "gama", "gelo", "gela")
	tveOther   = newTable("ge", "e", "ce", "do", "go", "gy", "coz", "me", "mo", "dolo", "oxo", "oǩo", "gama", "gelo")

	tvmPresent = newTable("ge", "e", "ce", "do", "go", "gy", "me", "mo", "dolo", "oxo", "gama", "gelo")
	tvmPast    = newTable("ge", "e", "ce", "do", "go", "gy", "me", "mo", "dolo", "oxo", "gama", "gelo", "gela")
	tvmOther   = newTable("ge", "e", "ce", "do", "go", "gy", "me", "mo", "dolo", "oxo", "gama")
)

// For returns the inventory for a class and tense
func For(class grammar.VerbClass, tense grammar.Tense) Table {
	switch class {
	case grammar.Intransitive:
		switch tense {
		case grammar.Present:
			return ivdPresent
		case grammar.Past:
			return ivdPast
		default:
			return ivdOther
		}
	case grammar.Transitive:
		switch tense {
		case grammar.Present, grammar.Future:
			return tvePresent
		case grammar.Past:
			return tvePast
		default:
			return tveOther
		}
	default:
		switch tense {
		case grammar.Present, grammar.Future:
			return tvmPresent
		case grammar.Past:
			return tvmPast
		default:
			return tvmOther
		}
	}
}

// Slot selects which subject-indexed shape an irregular preverb takes
type Slot int

// Slots
const (
	SlotPlain Slot = iota
	SlotFirst
	SlotSecond
	SlotSubject
)

type irregularForms struct {
	first, second, subject, plain string
}

var irregular = map[string]irregularForms{
	"go":  {first: "gom", second: "gog", subject: "go", plain: "go"},
	"gy":  {first: "gem", second: "geg", subject: "ge", plain: "gyo"},
	"coz": {first: "cem", second: "ceg", subject: "ce", plain: "coz"},
}

// IsIrregular reports whether pv has subject-indexed shapes
func IsIrregular(pv string) bool {
	_, ok := irregular[pv]
	return ok
}

// Irregular returns the shape of an irregular preverb for slot. For SlotSubject the returned
// shape is followed by the adjusted first-subject prefix.
func Irregular(pv string, slot Slot) (string, bool) {
	forms, ok := irregular[pv]
	if !ok {
		return "", false
	}
	switch slot {
	case SlotFirst:
		return forms.first, true
	case SlotSecond:
		return forms.second, true
	case SlotSubject:
		return forms.subject, true
	default:
		return forms.plain, true
	}
}
