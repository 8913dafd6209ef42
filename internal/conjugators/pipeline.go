package conjugators

import (
	"strings"

	"lazverb/internal/grammar"
	"lazverb/internal/lexicon"
	"lazverb/internal/markers"
	"lazverb/internal/morph"
	"lazverb/internal/phonetics"
	"lazverb/internal/preverbs"
)

// construction selects how the person prefix slot is filled
type construction int

const (
	// ergative and nominative verbs index the object first, then a first-person subject
	ergative construction = iota
	nominative
	// dative verbs index their subject with m/g and take a version vowel
	dative
)

func (c construction) pronounCase() grammar.Case {
	switch c {
	case ergative:
		return grammar.Ergative
	case nominative:
		return grammar.Nominative
	default:
		return grammar.Dative
	}
}

// rootFunc turns a marked, preverb-less third-person present into the tense root
type rootFunc func(applied markers.Applied, kind markers.Kind) (root string, hadS bool)

func presentRoot(applied markers.Applied, _ markers.Kind) (string, bool) {
	return morph.StripFinalS(applied.Form)
}

func pastRoot(applied markers.Applied, kind markers.Kind) (string, bool) {
	switch {
	case applied.Irregular, kind == markers.None, kind == markers.Applicative:
		return morph.StripThematic(applied.Form), true
	default:
		// causative thematics belong to the stem
		root, hadS := morph.StripFinalS(applied.Form)
		return root, hadS
	}
}

// paradigm is the generic tense conjugator for one class
type paradigm struct {
	class        grammar.VerbClass
	tense        grammar.Tense
	construction construction
	root         rootFunc
	suffixes     suffixes
	// optative is nil when the tense has no optative
	optative *suffixes
	// versionVowel adds i (local subject) or u (third-person subject) after the prefix
	versionVowel bool
	// dropLeading removes the class vowel of the lexical form before marking (IVD u, TVM i)
	dropLeading string
	// allowsMarkers is false where marked forms are not generated
	allowsMarkers bool
	// allowsObjects is false where object forms are not generated
	allowsObjects bool
}

// Conjugate implements Conjugator
func (p paradigm) Conjugate(entry lexicon.Entry, args Args) ([]Form, error) {
	if entry.Class != p.class {
		return nil, ErrVerbNotInClass
	}
	return p.conjugate(entry, args, nil), nil
}

// surfaceHook post-processes a generated core before the complement is reattached
type surfaceHook func(core string, region grammar.Region) string

func (p paradigm) conjugate(entry lexicon.Entry, args Args, hook surfaceHook) []Form {
	pronounCase := p.construction.pronounCase()
	if grammar.CoReferent(args.Subject, args.Object) {
		return invalidForms(entry, args, pronounCase)
	}
	if args.Optative && p.optative == nil {
		return nil
	}
	if args.Markers.Any() && !p.allowsMarkers {
		return nil
	}
	if args.Object.Valid() && !p.allowsObjects {
		return nil
	}

	if forms, handled := suppletiveForms(entry, p.tense, args, pronounCase); handled {
		if hook != nil {
			forms = applyHook(forms, hook)
		}
		return forms
	}

	var out []Form
	for _, variant := range entry.Variants {
		for _, region := range variant.Regions {
			surface, ok := p.build(entry, variant.Form, region, args, hook)
			if !ok {
				continue
			}
			out = append(out, Form{
				Region:  region,
				Subject: args.Subject,
				Object:  args.Object,
				Surface: surface,
				Class:   p.class,
				Case:    pronounCase,
			})
		}
	}
	return out
}

func applyHook(forms []Form, hook surfaceHook) []Form {
	out := make([]Form, 0, len(forms))
	for _, f := range forms {
		if !f.Invalid {
			d := morph.Decompose(f.Surface)
			f.Surface = morph.FinalizeForm(hook(d.Core, f.Region), d.Complement)
		}
		out = append(out, f)
	}
	return out
}

// splitPreverb extracts the preverb shared by the infinitive and the lexical form
func splitPreverb(table preverbs.Table, infinitiveCore, formCore string) (string, string) {
	pv, _, ok := table.Extract(infinitiveCore)
	if !ok || !strings.HasPrefix(formCore, pv) || len(formCore) == len(pv) {
		return "", formCore
	}
	rest := formCore[len(pv):]
	if pv == "gy" {
		rest = strings.TrimPrefix(rest, "o")
	}
	return pv, rest
}

func (p paradigm) build(entry lexicon.Entry, lexicalForm string, region grammar.Region, args Args, hook surfaceHook) (string, bool) {
	formParts := morph.Decompose(lexicalForm)
	infinitiveCore := morph.Decompose(entry.Infinitive).Core

	pv, rest := splitPreverb(preverbs.For(p.class, p.tense), infinitiveCore, formParts.Core)
	if p.dropLeading != "" && strings.HasPrefix(rest, p.dropLeading) && len(rest) > len(p.dropLeading) {
		rest = rest[len(p.dropLeading):]
	}

	kind := markers.KindOf(args.Markers)
	applied := markers.Apply(infinitiveCore, rest, markers.Determine(args.Subject, args.Object, kind), kind)
	root, hadS := p.root(applied, kind)

	body := root
	if p.versionVowel && p.hasVersionVowel(formParts.Core, pv) {
		body = versionVowelFor(args.Subject) + root
	}

	prefix := resolvePrefix(p.construction, pv, body, region, args.Subject, args.Object)

	table := p.suffixes
	if args.Optative {
		table = *p.optative
	}
	suffix := table.lookup(region, args.Subject, args.Object, hadS)

	core := joinBoundary(prefix, body) + suffix
	if hook != nil {
		core = hook(core, region)
	}
	return morph.FinalizeForm(core, formParts.Complement), true
}

// hasVersionVowel reports whether the lexical form carries the class vowel that the version vowel
// replaces. Lexical forms without it (coxons) take no version vowel.
func (p paradigm) hasVersionVowel(formCore, pv string) bool {
	if p.dropLeading == "" {
		return true
	}
	return strings.HasPrefix(strings.TrimPrefix(formCore, pv), p.dropLeading)
}

func versionVowelFor(subject grammar.Person) string {
	if subject.IsLocal() {
		return "i"
	}
	return "u"
}

// personSlot returns the unadjusted person prefix and the object the phonetics should see
func personSlot(c construction, subject, object grammar.Person) (string, grammar.Person) {
	switch c {
	case dative:
		switch {
		case subject.IsFirst():
			return "m", grammar.NoPerson
		case subject.IsSecond():
			return "g", grammar.NoPerson
		case object.IsFirst():
			return "b", grammar.NoPerson
		}
		return "", grammar.NoPerson
	default:
		switch {
		case object.IsSecond():
			return "g", object
		case object.IsFirst():
			return "m", object
		case subject.IsFirst():
			return "b", object
		}
		return "", object
	}
}

func slotOf(candidate string) preverbs.Slot {
	switch candidate {
	case "m":
		return preverbs.SlotFirst
	case "g":
		return preverbs.SlotSecond
	case "b":
		return preverbs.SlotSubject
	}
	return preverbs.SlotPlain
}

// resolvePrefix combines the preverb and the adjusted person marker in front of body
func resolvePrefix(c construction, pv, body string, region grammar.Region, subject, object grammar.Person) string {
	candidate, phoneticObject := personSlot(c, subject, object)
	marker := ""
	if candidate != "" {
		marker = phonetics.AdjustPrefix(candidate, phonetics.FirstCluster(body), region, phoneticObject)
	}
	return resolvePreverb(pv, candidate, marker, body, region)
}

func resolvePreverb(pv, candidate, marker, body string, region grammar.Region) string {
	if pv == "" {
		return marker
	}
	if preverbs.IsIrregular(pv) {
		slot := slotOf(candidate)
		shape, _ := preverbs.Irregular(pv, slot)
		if slot == preverbs.SlotSubject {
			return shape + marker
		}
		return shape
	}

	// elides is true when pv meets a vowel-initial body with an empty slot
	elides := marker == "" && phonetics.IsVowel(phonetics.FirstCluster(body))
	switch pv {
	case "e":
		return "e" + marker
	case "do":
		if elides {
			return "d"
		}
		return "do" + marker
	case "ge":
		// a bare g would read as the second-person slot
		return "ge" + marker
	case "ce":
		if elides {
			return "c"
		}
		return "ce" + marker
	case "me":
		// a bare m would read as the first-person slot
		return "me" + marker
	case "mo":
		return "mo" + marker
	case "oxo":
		if elides {
			return "ox"
		}
		return "oxo" + marker
	case "oǩo":
		if marker == "p̌" && region != grammar.Hopa {
			return "oǩop"
		}
		return "oǩo" + marker
	case "gama":
		if elides {
			return "gam"
		}
		return "gama" + marker
	case "ama":
		if elides {
			return "am"
		}
		return "ama" + marker
	case "dolo":
		if elides {
			return "dol"
		}
		return "dolo" + marker
	case "gelo":
		if elides {
			return "gel"
		}
		return "gelo" + marker
	case "gela":
		// past only; never elides
		return "gela" + marker
	case "ǩoǩo":
		if elides {
			return "ǩoǩ"
		}
		return "ǩoǩo" + marker
	}
	return pv + marker
}

// joinBoundary concatenates two pieces, collapsing a doubled cluster at the seam
func joinBoundary(left, right string) string {
	if left == "" || right == "" {
		return left + right
	}
	if last := phonetics.LastCluster(left); last == phonetics.FirstCluster(right) && !phonetics.IsVowel(last) {
		return left + strings.TrimPrefix(right, last)
	}
	return left + right
}
