// Package grammar defines the closed vocabularies shared by every stage of the Laz verb
// conjugator: dialect regions, persons, verb classes, tenses, aspects and moods.
package grammar

import (
	"fmt"
	"sort"
	"strings"
)

// Region is a Laz dialect region
type Region string

// Dialect regions in canonical order
const (
	Ardesen         Region = "AŞ"
	Hopa            Region = "HO"
	FindikliArhavi  Region = "FA"
	Pazar           Region = "PZ"
	regionAllMarker        = "all"
)

// Regions lists every region in canonical order
var Regions = []Region{Ardesen, Hopa, FindikliArhavi, Pazar}

var regionNames = map[Region]string{
	Ardesen:        "Ardeşen",
	Hopa:           "Hopa",
	FindikliArhavi: "Fındıklı-Arhavi",
	Pazar:          "Pazar",
}

// Name returns the human readable name of the region
func (r Region) Name() string {
	return regionNames[r]
}

// Index returns the canonical position of the region, or -1 when unknown
func (r Region) Index() int {
	for i, region := range Regions {
		if region == r {
			return i
		}
	}
	return -1
}

// ParseRegion accepts region codes with or without diacritics and region names
func ParseRegion(s string) (Region, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "aş", "as", "ardeşen", "ardesen":
		return Ardesen, nil
	case "ho", "hopa":
		return Hopa, nil
	case "fa", "findikli", "fındıklı", "arhavi", "findikli-arhavi", "fındıklı-arhavi":
		return FindikliArhavi, nil
	case "pz", "pazar":
		return Pazar, nil
	}
	return "", fmt.Errorf("unknown region %q", s)
}

// ParseRegionList parses a region list from a dictionary or request. "All" and the empty list expand
// to every region.
func ParseRegionList(items []string) ([]Region, error) {
	var out []Region
	seen := make(map[Region]bool)
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		if strings.EqualFold(item, regionAllMarker) {
			return append([]Region(nil), Regions...), nil
		}
		region, err := ParseRegion(item)
		if err != nil {
			return nil, err
		}
		if !seen[region] {
			seen[region] = true
			out = append(out, region)
		}
	}
	if len(out) == 0 {
		return append([]Region(nil), Regions...), nil
	}
	SortRegions(out)
	return out, nil
}

// SortRegions orders regions canonically in place
func SortRegions(regions []Region) {
	sort.Slice(regions, func(i, j int) bool { return regions[i].Index() < regions[j].Index() })
}

// Person is a grammatical person and number. NoPerson marks an absent object.
type Person int

// Persons
const (
	NoPerson Person = iota - 1
	FirstSingular
	SecondSingular
	ThirdSingular
	FirstPlural
	SecondPlural
	ThirdPlural
)

// Persons lists the six persons in canonical order
var Persons = []Person{FirstSingular, SecondSingular, ThirdSingular, FirstPlural, SecondPlural, ThirdPlural}

var personCodes = map[Person]string{
	FirstSingular:  "1sg",
	SecondSingular: "2sg",
	ThirdSingular:  "3sg",
	FirstPlural:    "1pl",
	SecondPlural:   "2pl",
	ThirdPlural:    "3pl",
}

// String returns the short code (1sg .. 3pl) or "none"
func (p Person) String() string {
	if code, ok := personCodes[p]; ok {
		return code
	}
	return "none"
}

// Valid reports whether p is one of the six persons
func (p Person) Valid() bool {
	return p >= FirstSingular && p <= ThirdPlural
}

// IsFirst reports first person in either number
func (p Person) IsFirst() bool { return p == FirstSingular || p == FirstPlural }

// IsSecond reports second person in either number
func (p Person) IsSecond() bool { return p == SecondSingular || p == SecondPlural }

// IsThird reports third person in either number
func (p Person) IsThird() bool { return p == ThirdSingular || p == ThirdPlural }

// IsPlural reports plural number
func (p Person) IsPlural() bool { return p == FirstPlural || p == SecondPlural || p == ThirdPlural }

// IsLocal reports first or second person
func (p Person) IsLocal() bool { return p.IsFirst() || p.IsSecond() }

// CoReferent reports subject/object pairs that share a speech-act participant
func CoReferent(subject, object Person) bool {
	return (subject.IsFirst() && object.IsFirst()) || (subject.IsSecond() && object.IsSecond())
}

// ParsePerson parses subject or object tokens. It accepts S1_Singular, O3_Plural, 1sg and friends.
// The empty string and "none" parse to NoPerson.
func ParsePerson(s string) (Person, error) {
	token := strings.ToLower(strings.TrimSpace(s))
	switch token {
	case "", "none":
		return NoPerson, nil
	}
	if len(token) > 1 && (token[0] == 's' || token[0] == 'o') && token[1] >= '1' && token[1] <= '3' {
		token = token[1:]
	}
	token = strings.ReplaceAll(token, "_", "")
	token = strings.Replace(token, "singular", "sg", 1)
	token = strings.Replace(token, "plural", "pl", 1)
	for p, code := range personCodes {
		if token == code {
			return p, nil
		}
	}
	return NoPerson, fmt.Errorf("unknown person %q", s)
}

// VerbClass is a verb conjugation class
type VerbClass string

// Verb classes
const (
	Intransitive VerbClass = "IVD"
	Transitive   VerbClass = "TVE"
	Middle       VerbClass = "TVM"
)

// Classes lists every verb class in dispatch order
var Classes = []VerbClass{Intransitive, Transitive, Middle}

// ParseVerbClass parses a class code; "all" expands to every class
func ParseVerbClass(s string) ([]VerbClass, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "ALL":
		return append([]VerbClass(nil), Classes...), nil
	case "IVD":
		return []VerbClass{Intransitive}, nil
	case "TVE":
		return []VerbClass{Transitive}, nil
	case "TVM":
		return []VerbClass{Middle}, nil
	}
	return nil, fmt.Errorf("unknown verb class %q", s)
}

// Tense is a conjugation tense
type Tense string

// Tenses
const (
	Present         Tense = "present"
	Past            Tense = "past"
	Future          Tense = "future"
	PastProgressive Tense = "past_progressive"
	PresentPerfect  Tense = "present_perfect"
)

// Tenses lists every tense
var Tenses = []Tense{Present, Past, Future, PastProgressive, PresentPerfect}

// ParseTense parses a tense token
func ParseTense(s string) (Tense, error) {
	token := strings.ToLower(strings.TrimSpace(s))
	token = strings.NewReplacer("-", "_", " ", "_").Replace(token)
	for _, t := range Tenses {
		if string(t) == token {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown tense %q", s)
}

// Aspect is a cross-cutting aspect applied on top of a tense
type Aspect string

// Aspects
const (
	Potential Aspect = "potential"
	Passive   Aspect = "passive"
)

// Aspects lists every aspect
var Aspects = []Aspect{Potential, Passive}

// ParseAspect parses an aspect token
func ParseAspect(s string) (Aspect, error) {
	token := strings.ToLower(strings.TrimSpace(s))
	for _, a := range Aspects {
		if string(a) == token {
			return a, nil
		}
	}
	return "", fmt.Errorf("unknown aspect %q", s)
}

// Markers holds the valency-changing markers requested for a conjugation
type Markers struct {
	Applicative     bool
	Causative       bool
	SimpleCausative bool
}

// Any reports whether any marker is requested
func (m Markers) Any() bool {
	return m.Applicative || m.Causative || m.SimpleCausative
}

// Combined reports the applicative plus simple-causative marker
func (m Markers) Combined() bool {
	return m.Applicative && m.SimpleCausative
}

// Case is the case a pronoun is rendered in
type Case string

// Cases
const (
	Ergative   Case = "ergative"
	Nominative Case = "nominative"
	Dative     Case = "dative"
)
