package conjugators

import (
	"strings"

	"lazverb/internal/grammar"
	"lazverb/internal/lexicon"
	"lazverb/internal/morph"
	"lazverb/internal/phonetics"
	"lazverb/internal/preverbs"
)

// aspectRule builds potential and passive forms from the infinitive stem
type aspectRule struct {
	construction construction
	// vowel precedes the stem: a for the potential, i for the passive
	vowel    string
	suffixes map[grammar.Tense]suffixes
}

var potentialRule = aspectRule{
	construction: dative,
	vowel:        "a",
	suffixes: map[grammar.Tense]suffixes{
		grammar.Present:         potentialPresent,
		grammar.Past:            dativePast,
		grammar.Future:          dativeFuture,
		grammar.PastProgressive: potentialPastProgressive,
	},
}

var passiveRule = aspectRule{
	construction: nominative,
	vowel:        "i",
	suffixes: map[grammar.Tense]suffixes{
		grammar.Present:         passivePresent,
		grammar.Past:            passivePast,
		grammar.Future:          passiveFuture,
		grammar.PastProgressive: passivePastProgressive,
	},
}

type potential struct{ class grammar.VerbClass }

// Conjugate implements Conjugator
func (p potential) Conjugate(entry lexicon.Entry, args Args) ([]Form, error) {
	return potentialRule.conjugate(p.class, entry, args)
}

type passive struct{ class grammar.VerbClass }

// Conjugate implements Conjugator
func (p passive) Conjugate(entry lexicon.Entry, args Args) ([]Form, error) {
	return passiveRule.conjugate(p.class, entry, args)
}

func (r aspectRule) conjugate(class grammar.VerbClass, entry lexicon.Entry, args Args) ([]Form, error) {
	if entry.Class != class {
		return nil, ErrVerbNotInClass
	}
	tense := args.Tense
	if tense == "" {
		tense = grammar.Present
	}
	table, ok := r.suffixes[tense]
	if !ok || args.Object.Valid() || args.Markers.Any() || args.Optative {
		return nil, nil
	}
	if s, ok := lookupSuppletive(entry.Class, entry.Infinitive); ok && s.exclusive {
		return nil, nil
	}

	parts := morph.Decompose(entry.Infinitive)
	pvTable := preverbs.For(class, tense)
	pv, _, _ := pvTable.Extract(parts.Core)
	stem := morph.Stem(parts.Core, pvTable)
	if first := phonetics.FirstCluster(stem); phonetics.IsVowel(first) && len(stem) > len(first) {
		stem = strings.TrimPrefix(stem, first)
	}
	body := r.vowel + stem

	out := make([]Form, 0, len(grammar.Regions))
	for _, region := range entry.Regions() {
		prefix := resolvePrefix(r.construction, pv, body, region, args.Subject, grammar.NoPerson)
		core := joinBoundary(prefix, body) + table.lookup(region, args.Subject, grammar.NoPerson, false)
		out = append(out, Form{
			Region:  region,
			Subject: args.Subject,
			Object:  args.Object,
			Surface: morph.FinalizeForm(core, parts.Complement),
			Class:   class,
			Case:    r.construction.pronounCase(),
		})
	}
	return out, nil
}
