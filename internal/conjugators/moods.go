package conjugators

import (
	"lazverb/internal/grammar"
	"lazverb/internal/lexicon"
)

// imperative is the past paradigm restricted to second-person subjects
type imperative struct{ past paradigm }

// Conjugate implements Conjugator
func (i imperative) Conjugate(entry lexicon.Entry, args Args) ([]Form, error) {
	if entry.Class != i.past.class {
		return nil, ErrVerbNotInClass
	}
	if !args.Subject.IsSecond() || args.Optative {
		return nil, nil
	}
	return i.past.conjugate(entry, args, nil), nil
}

// negativeImperative prefixes the prohibitive particle to second-person present forms
type negativeImperative struct{ present paradigm }

var prohibitive = map[grammar.Region]string{
	grammar.Hopa:           "mo",
	grammar.Ardesen:        "mo",
	grammar.FindikliArhavi: "mot",
	grammar.Pazar:          "mot",
}

// Conjugate implements Conjugator
func (n negativeImperative) Conjugate(entry lexicon.Entry, args Args) ([]Form, error) {
	if entry.Class != n.present.class {
		return nil, ErrVerbNotInClass
	}
	if !args.Subject.IsSecond() || args.Optative {
		return nil, nil
	}
	return n.present.conjugate(entry, args, func(core string, region grammar.Region) string {
		return joinBoundary(prohibitive[region], core)
	}), nil
}
