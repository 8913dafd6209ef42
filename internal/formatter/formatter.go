// Package formatter renders conjugated forms as pronoun-labelled lines grouped by region.
package formatter

import (
	"fmt"
	"sort"

	"lazverb/internal/conjugators"
	"lazverb/internal/grammar"
)

type pronounSet [6]string

var (
	eastern = map[grammar.Case]pronounSet{
		grammar.Ergative:   {"ma", "si", "heyak", "çku", "tkva", "hentepek"},
		grammar.Nominative: {"ma", "si", "heya", "çku", "tkva", "hentepe"},
		grammar.Dative:     {"ma", "si", "heyas", "çku", "tkva", "hentepes"},
	}
	western = map[grammar.Case]pronounSet{
		grammar.Ergative:   {"ma", "si", "heyak", "çkin", "tkvan", "hentepek"},
		grammar.Nominative: {"ma", "si", "heya", "çkin", "tkvan", "hentepe"},
		grammar.Dative:     {"ma", "si", "heyas", "çkin", "tkvan", "hentepes"},
	}
	hopa = map[grammar.Case]pronounSet{
		grammar.Ergative:   {"ma", "si", "himuk", "çku", "tkva", "hinik"},
		grammar.Nominative: {"ma", "si", "himu", "çku", "tkva", "hini"},
		grammar.Dative:     {"ma", "si", "himus", "çku", "tkva", "hinis"},
	}
)

var pronouns = map[grammar.Region]map[grammar.Case]pronounSet{
	grammar.Ardesen:        western,
	grammar.Hopa:           hopa,
	grammar.FindikliArhavi: eastern,
	grammar.Pazar:          western,
}

// Pronoun returns the personal pronoun of person p in case c for a region
func Pronoun(region grammar.Region, c grammar.Case, p grammar.Person) string {
	if !p.Valid() {
		return ""
	}
	byCase, ok := pronouns[region]
	if !ok {
		return ""
	}
	return byCase[c][p]
}

// Sort orders forms by region, subject and object. A missing object sorts first.
func Sort(forms []conjugators.Form) {
	sort.SliceStable(forms, func(i, j int) bool {
		a, b := forms[i], forms[j]
		if a.Region != b.Region {
			return a.Region.Index() < b.Region.Index()
		}
		if a.Subject != b.Subject {
			return a.Subject < b.Subject
		}
		return a.Object < b.Object
	})
}

// Line renders one form as "subject object: form"
func Line(f conjugators.Form) string {
	subject := Pronoun(f.Region, f.Case, f.Subject)
	if f.Object.Valid() {
		return fmt.Sprintf("%s %s: %s", subject, Pronoun(f.Region, grammar.Dative, f.Object), f.Surface)
	}
	return fmt.Sprintf("%s: %s", subject, f.Surface)
}

// ByRegion sorts a copy of forms and renders them grouped by region
func ByRegion(forms []conjugators.Form) map[grammar.Region][]string {
	sorted := append([]conjugators.Form(nil), forms...)
	Sort(sorted)
	out := make(map[grammar.Region][]string)
	for _, f := range sorted {
		out[f.Region] = append(out[f.Region], Line(f))
	}
	return out
}

// ByClass renders forms grouped by verb class and region
func ByClass(forms []conjugators.Form) map[grammar.VerbClass]map[grammar.Region][]string {
	grouped := make(map[grammar.VerbClass][]conjugators.Form)
	for _, f := range forms {
		grouped[f.Class] = append(grouped[f.Class], f)
	}
	out := make(map[grammar.VerbClass]map[grammar.Region][]string, len(grouped))
	for class, classForms := range grouped {
		out[class] = ByRegion(classForms)
	}
	return out
}
