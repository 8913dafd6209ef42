// Package conjugators implements the per class and per tense conjugation rules. Every conjugator
// takes one dictionary entry and one subject/object combination and returns one form per region.
package conjugators

import (
	"fmt"

	"lazverb/internal/grammar"
	"lazverb/internal/lexicon"
	contextutils "lazverb/internal/utils"
)

// InvalidCombination is the surface emitted for co-referent subject/object pairs
const InvalidCombination = "N/A - invalid combination"

// Args is the uniform argument set passed to every conjugator
type Args struct {
	Subject  grammar.Person
	Object   grammar.Person
	Markers  grammar.Markers
	Optative bool
	// Tense selects the tense of aspect conjugators; tense conjugators ignore it
	Tense grammar.Tense
}

// Form is one generated surface form
type Form struct {
	Region  grammar.Region
	Subject grammar.Person
	Object  grammar.Person
	Surface string
	Class   grammar.VerbClass
	// Case is the case of the subject pronoun the form is displayed with
	Case    grammar.Case
	Invalid bool
}

// Conjugator generates the forms of one entry for one subject/object combination
type Conjugator interface {
	Conjugate(entry lexicon.Entry, args Args) ([]Form, error)
}

// Category identifies a conjugator within a class: a tense, an aspect or an imperative mood
type Category string

// Categories
const (
	CategoryPresent            Category = "present"
	CategoryPast               Category = "past"
	CategoryFuture             Category = "future"
	CategoryPastProgressive    Category = "past_progressive"
	CategoryPresentPerfect     Category = "present_perfect"
	CategoryPotential          Category = "potential"
	CategoryPassive            Category = "passive"
	CategoryImperative         Category = "imperative"
	CategoryNegativeImperative Category = "negative_imperative"
)

var categories = []Category{
	CategoryPresent, CategoryPast, CategoryFuture, CategoryPastProgressive, CategoryPresentPerfect,
	CategoryPotential, CategoryPassive, CategoryImperative, CategoryNegativeImperative,
}

// CategoryForTense maps a tense to its category
func CategoryForTense(t grammar.Tense) Category {
	return Category(t)
}

// CategoryForAspect maps an aspect to its category
func CategoryForAspect(a grammar.Aspect) Category {
	return Category(a)
}

// Errors reported per class. They end up as diagnostics and never abort other classes.
var (
	ErrVerbNotInClass = contextutils.NewAppError(contextutils.ErrorCodeInvalidInput, contextutils.SeverityDebug,
		"verb is not in this class", "")
	ErrNoConjugator = contextutils.NewAppError(contextutils.ErrorCodeNoOutputProduced, contextutils.SeverityDebug,
		"no conjugator for this class and category", "")
)

type registryKey struct {
	class    grammar.VerbClass
	category Category
}

var registry = buildRegistry()

func buildRegistry() map[registryKey]Conjugator {
	r := make(map[registryKey]Conjugator)
	for _, p := range paradigms() {
		r[registryKey{p.class, CategoryForTense(p.tense)}] = p
	}
	for _, class := range []grammar.VerbClass{grammar.Transitive, grammar.Middle} {
		r[registryKey{class, CategoryPotential}] = potential{class: class}
		r[registryKey{class, CategoryPassive}] = passive{class: class}
		r[registryKey{class, CategoryImperative}] = imperative{past: r[registryKey{class, CategoryPast}].(paradigm)}
		r[registryKey{class, CategoryNegativeImperative}] = negativeImperative{present: r[registryKey{class, CategoryPresent}].(paradigm)}
	}
	return r
}

// Lookup returns the conjugator for a class and category. Unknown categories are a programming
// error and panic; a known category without a conjugator for the class returns false.
func Lookup(class grammar.VerbClass, category Category) (Conjugator, bool) {
	known := false
	for _, c := range categories {
		if c == category {
			known = true
			break
		}
	}
	if !known {
		panic(fmt.Sprintf("conjugators: unknown category %q", category))
	}
	c, ok := registry[registryKey{class, category}]
	return c, ok
}

func invalidForms(entry lexicon.Entry, args Args, c grammar.Case) []Form {
	out := make([]Form, 0, len(grammar.Regions))
	for _, region := range entry.Regions() {
		out = append(out, Form{
			Region:  region,
			Subject: args.Subject,
			Object:  args.Object,
			Surface: InvalidCombination,
			Class:   entry.Class,
			Case:    c,
			Invalid: true,
		})
	}
	return out
}
