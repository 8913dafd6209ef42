// Package phonetics classifies Laz segments and selects the surface shape of person prefixes
// from the segment that follows them.
package phonetics

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"lazverb/internal/grammar"
)

// SegmentClass groups segments by the voicing behaviour prefixes agree with
type SegmentClass int

// Segment classes
const (
	Vowel SegmentClass = iota
	Voiceless
	Ejective
	Voiced
)

func (c SegmentClass) String() string {
	switch c {
	case Vowel:
		return "vowel"
	case Voiceless:
		return "voiceless"
	case Ejective:
		return "ejective"
	default:
		return "voiced"
	}
}

// Clusters that are read as a single segment. Order matters: the lexical exception comes first.
var multiRuneClusters = []string{
	"ç̌ǩ",
	"ts",
	"dz",
}

var ejectives = map[string]bool{
	"p̌": true,
	"t̆": true,
	"ǩ": true,
	"ç̌": true,
	"ʒ̆": true,
	"ç̌ǩ": true,
}

var voiceless = map[string]bool{
	"p": true, "t": true, "k": true, "ç": true, "s": true, "ş": true,
	"f": true, "h": true, "x": true, "q": true, "ts": true,
}

// IsVowel reports whether the segment is a vowel
func IsVowel(segment string) bool {
	switch segment {
	case "a", "e", "i", "o", "u":
		return true
	}
	return false
}

// Classify returns the class of a segment as returned by FirstCluster
func Classify(segment string) SegmentClass {
	switch {
	case IsVowel(segment):
		return Vowel
	case ejectives[segment]:
		return Ejective
	case voiceless[segment]:
		return Voiceless
	default:
		return Voiced
	}
}

// FirstCluster returns the leading phonological unit of form: a letter with its combining marks,
// one of the two-letter affricates, or the ç̌ǩ cluster.
func FirstCluster(form string) string {
	if form == "" {
		return ""
	}
	for _, cluster := range multiRuneClusters {
		if strings.HasPrefix(form, cluster) {
			return cluster
		}
	}
	_, size := utf8.DecodeRuneInString(form)
	end := size
	for end < len(form) {
		r, n := utf8.DecodeRuneInString(form[end:])
		if !unicode.Is(unicode.Mn, r) {
			break
		}
		end += n
	}
	return form[:end]
}

// LastCluster returns the trailing letter of form together with its combining marks
func LastCluster(form string) string {
	end := len(form)
	start := end
	for start > 0 {
		r, n := utf8.DecodeLastRuneInString(form[:start])
		start -= n
		if !unicode.Is(unicode.Mn, r) {
			break
		}
	}
	return form[start:end]
}

type series int

const (
	noSeries series = iota
	bSeries
	gSeries
)

func seriesOf(candidate string) series {
	switch candidate {
	case "b", "v", "p", "p̌":
		return bSeries
	case "g", "k", "ǩ":
		return gSeries
	}
	return noSeries
}

type objectKind int

const (
	noObject objectKind = iota
	secondObject
	otherObject
)

func kindOf(object grammar.Person) objectKind {
	switch {
	case !object.Valid():
		return noObject
	case object.IsSecond():
		return secondObject
	default:
		return otherObject
	}
}

type seriesTable map[series]map[SegmentClass]string

// prefixTable is indexed by region, object kind, series and the class of the following segment.
var prefixTable = buildPrefixTable()

func buildPrefixTable() map[grammar.Region]map[objectKind]seriesTable {
	table := make(map[grammar.Region]map[objectKind]seriesTable)
	for _, region := range grammar.Regions {
		table[region] = make(map[objectKind]seriesTable)
		for _, kind := range []objectKind{noObject, secondObject, otherObject} {
			table[region][kind] = seriesTable{
				bSeries: {
					Voiceless: "p",
					Ejective:  "p̌",
					Voiced:    "b",
					Vowel:     bBeforeVowel(region, kind),
				},
				gSeries: {
					Voiceless: "k",
					Ejective:  "ǩ",
					Voiced:    "g",
					Vowel:     "g",
				},
			}
		}
	}
	return table
}

func bBeforeVowel(region grammar.Region, kind objectKind) string {
	if kind == otherObject {
		if region == grammar.Pazar {
			return "v"
		}
		return "b"
	}
	switch region {
	case grammar.Ardesen, grammar.Pazar:
		return "v"
	default:
		return "b"
	}
}

// AdjustPrefix returns the surface form of a person prefix candidate before trigger, the first
// cluster of the material that follows it. A first-person object always surfaces as "m".
// Candidates outside the b and g series, and missing table entries, are returned unchanged.
func AdjustPrefix(candidate, trigger string, region grammar.Region, object grammar.Person) string {
	if object.IsFirst() {
		return "m"
	}
	s := seriesOf(candidate)
	if s == noSeries || trigger == "" {
		return candidate
	}
	byKind, ok := prefixTable[region]
	if !ok {
		return candidate
	}
	bySeries, ok := byKind[kindOf(object)][s]
	if !ok {
		return candidate
	}
	if surface, ok := bySeries[Classify(trigger)]; ok {
		return surface
	}
	return candidate
}
