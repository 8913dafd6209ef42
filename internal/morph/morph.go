// Package morph splits verbs into complement and core and derives the roots that conjugation
// starts from.
package morph

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"lazverb/internal/preverbs"
)

var lower = cases.Lower(language.Turkish)

// Normalize returns the lookup key of a verb: NFC, trimmed, lower-cased, single spaced
func Normalize(s string) string {
	s = norm.NFC.String(strings.TrimSpace(s))
	s = lower.String(s)
	return strings.Join(strings.Fields(s), " ")
}

// Decomposition is a verb split into its periphrastic complement and the inflected core word
type Decomposition struct {
	Complement string
	Core       string
}

// Decompose splits verb on whitespace: every word before the last is the complement
func Decompose(verb string) Decomposition {
	words := strings.Fields(verb)
	switch len(words) {
	case 0:
		return Decomposition{}
	case 1:
		return Decomposition{Core: words[0]}
	}
	return Decomposition{
		Complement: strings.Join(words[:len(words)-1], " "),
		Core:       words[len(words)-1],
	}
}

// FinalizeForm reattaches a complement to an inflected core
func FinalizeForm(core, complement string) string {
	core = strings.TrimSpace(core)
	if complement == "" {
		return core
	}
	return strings.TrimSpace(complement + " " + core)
}

// Stem strips a preverb from the table, or else a leading "o", and then a trailing "u"
func Stem(infinitive string, table preverbs.Table) string {
	core := Decompose(infinitive).Core
	if _, rest, ok := table.Extract(core); ok {
		core = rest
	} else if strings.HasPrefix(core, "o") && len(core) > 1 {
		core = core[1:]
	}
	return strings.TrimSuffix(core, "u")
}

// StripFinalS drops the third-person "s" of a present form and reports whether it was there
func StripFinalS(form string) (string, bool) {
	if strings.HasSuffix(form, "s") && len(form) > 1 {
		return form[:len(form)-1], true
	}
	return form, false
}

var thematicSuffixes = []string{"um", "am", "ap", "up", "ip", "ep"}

// StripThematic drops the present "s" and the thematic suffix, leaving the bare root. A suffix
// is only thematic when the remaining root still has a vowel.
func StripThematic(form string) string {
	root, _ := StripFinalS(form)
	if suffix := thematicOf(root); suffix != "" {
		return root[:len(root)-len(suffix)]
	}
	return root
}

func thematicOf(root string) string {
	for _, suffix := range thematicSuffixes {
		if strings.HasSuffix(root, suffix) && strings.ContainsAny(root[:len(root)-len(suffix)], "aeiou") {
			return suffix
		}
	}
	return ""
}
