package conjugators

import (
	"strings"

	"lazverb/internal/grammar"
	"lazverb/internal/lexicon"
	"lazverb/internal/morph"
)

// paradigmForms holds six person forms, 1sg through 3pl
type paradigmForms [6]string

func forms(list string) paradigmForms {
	var out paradigmForms
	copy(out[:], strings.Fields(list))
	return out
}

type suppletiveKey struct {
	class      grammar.VerbClass
	infinitive string
}

type suppletive struct {
	// exclusive verbs produce nothing outside their table
	exclusive bool
	tenses    map[grammar.Tense]map[grammar.Region]paradigmForms
}

func everywhere(f paradigmForms) map[grammar.Region]paradigmForms {
	return map[grammar.Region]paradigmForms{
		grammar.Ardesen: f, grammar.Hopa: f, grammar.FindikliArhavi: f, grammar.Pazar: f,
	}
}

var suppletives = map[suppletiveKey]suppletive{
	{grammar.Middle, "ren"}: {
		exclusive: true,
		tenses: map[grammar.Tense]map[grammar.Region]paradigmForms{
			grammar.Present: {
				grammar.FindikliArhavi: forms("bore ore ren boret oret renan"),
				grammar.Hopa:           forms("bore ore ren boret oret renan"),
				grammar.Ardesen:        forms("vore ore ren voret oret renan"),
				grammar.Pazar:          forms("vore ore ren voret oret renan"),
			},
			grammar.Past: {
				grammar.FindikliArhavi: forms("bort̆i ort̆i ort̆u bort̆it ort̆it ort̆es"),
				grammar.Hopa:           forms("bort̆i ort̆i ort̆u bort̆it ort̆it ort̆es"),
				grammar.Ardesen:        forms("vort̆i ort̆i ort̆u vort̆it ort̆it ort̆ey"),
				grammar.Pazar:          forms("vort̆i ort̆i ort̆u vort̆it ort̆it ort̆es"),
			},
			grammar.Future: {
				grammar.Ardesen:        forms("viyare iyare iyasere viyatere iyatere iyanere"),
				grammar.Pazar:          forms("viyare iyare iyasere viyatere iyatere iyanere"),
				grammar.FindikliArhavi: forms("biyare iyare iyasere biyatere iyatere iyanere"),
				grammar.Hopa:           forms("biyare iyare iyasen biyaten iyaten iyanen"),
			},
		},
	},
	{grammar.Middle, "oxtimu"}: {
		exclusive: true,
		tenses: map[grammar.Tense]map[grammar.Region]paradigmForms{
			grammar.Present: {
				grammar.FindikliArhavi: forms("bulur ulur ulun bulurt ulurt ulunan"),
				grammar.Hopa:           forms("bulur ulur ulun bulurt ulurt ulunan"),
			},
			grammar.Past: {
				grammar.FindikliArhavi: forms("bidi idi idu bidit idit ides"),
				grammar.Hopa:           forms("bidi idi idu bidit idit ides"),
			},
			grammar.Future: {
				grammar.FindikliArhavi: forms("bidare idare idasere bidatere idatere idanere"),
				grammar.Hopa:           forms("bidare idare idasen bidaten idaten idanen"),
			},
		},
	},
	{grammar.Middle, "olva"}: {
		exclusive: true,
		tenses: map[grammar.Tense]map[grammar.Region]paradigmForms{
			grammar.Present: {
				grammar.Ardesen: forms("vulur ulur ulun vulurt ulurt ulunan"),
				grammar.Pazar:   forms("vulur ulur ulun vulurt ulurt ulunan"),
			},
			grammar.Past: {
				grammar.Ardesen: forms("vidi idi idu vidit idit idey"),
				grammar.Pazar:   forms("vidi idi idu vidit idit ides"),
			},
			grammar.Future: {
				grammar.Ardesen: forms("vidare idare idasere vidatere idatere idanere"),
				grammar.Pazar:   forms("vidare idare idasere vidatere idatere idanere"),
			},
		},
	},
	{grammar.Transitive, "oxenu"}: {
		tenses: map[grammar.Tense]map[grammar.Region]paradigmForms{
			grammar.Present: {
				grammar.FindikliArhavi: forms("bikum ikum ikums bikumt ikumt ikuman"),
				grammar.Hopa:           forms("bikum ikum ikums bikumt ikumt ikuman"),
				grammar.Ardesen:        forms("vikum ikum ikums vikumt ikumt ikuman"),
				grammar.Pazar:          forms("vikum ikum ikums vikumt ikumt ikuman"),
			},
			grammar.Past: {
				grammar.FindikliArhavi: forms("p̌xeni xeni xenu p̌xenit xenit xenes"),
				grammar.Hopa:           forms("p̌xeni xeni xenu p̌xenit xenit xenes"),
				grammar.Ardesen:        forms("pxeni xeni xenu pxenit xenit xeney"),
				grammar.Pazar:          forms("pxeni xeni xenu pxenit xenit xenes"),
			},
		},
	},
	{grammar.Intransitive, "coxons"}: {
		exclusive: true,
		tenses: map[grammar.Tense]map[grammar.Region]paradigmForms{
			grammar.Present: everywhere(forms("cemxons cegxons coxons cemxont cegxont coxonan")),
			grammar.Past: {
				grammar.Ardesen:        forms("cemxonu cegxonu coxonu cemxonut cegxonut coxoney"),
				grammar.Hopa:           forms("cemxonu cegxonu coxonu cemxonut cegxonut coxones"),
				grammar.FindikliArhavi: forms("cemxonu cegxonu coxonu cemxonut cegxonut coxones"),
				grammar.Pazar:          forms("cemxonu cegxonu coxonu cemxonut cegxonut coxones"),
			},
			grammar.Future: {
				grammar.Ardesen:        forms("cemxonasere cegxonasere coxonasere cemxonaseret cegxonaseret coxonanere"),
				grammar.Hopa:           forms("cemxonasen cegxonasen coxonasen cemxonasent cegxonasent coxonanen"),
				grammar.FindikliArhavi: forms("cemxonasere cegxonasere coxonasere cemxonaseret cegxonaseret coxonanere"),
				grammar.Pazar:          forms("cemxonasere cegxonasere coxonasere cemxonaseret cegxonaseret coxonanere"),
			},
		},
	},
	{grammar.Intransitive, "cozun"}: {
		exclusive: true,
		tenses: map[grammar.Tense]map[grammar.Region]paradigmForms{
			grammar.Present: everywhere(forms("cemzun cegzun cozun cemzunt cegzunt cozunan")),
			grammar.Past: {
				grammar.Hopa:           forms("cemzunu cegzunu cozunu cemzunut cegzunut cozunes"),
				grammar.FindikliArhavi: forms("cemzunu cegzunu cozunu cemzunut cegzunut cozunes"),
			},
			grammar.Future: {
				grammar.Hopa:           forms("cemzunasen cegzunasen cozunasen cemzunasent cegzunasent cozunanen"),
				grammar.FindikliArhavi: forms("cemzunasere cegzunasere cozunasere cemzunaseret cegzunaseret cozunanere"),
			},
		},
	},
	{grammar.Intransitive, "gyožin"}: {
		exclusive: true,
		tenses: map[grammar.Tense]map[grammar.Region]paradigmForms{
			grammar.Present: everywhere(forms("gemožin gegožin gyožin gemožint gegožint gyožinan")),
			grammar.Past: {
				grammar.Ardesen: forms("gemožinu gegožinu gyožinu gemožinut gegožinut gyožiney"),
				grammar.Pazar:   forms("gemožinu gegožinu gyožinu gemožinut gegožinut gyožines"),
			},
			grammar.Future: {
				grammar.Ardesen: forms("gemožinasere gegožinasere gyožinasere gemožinaseret gegožinaseret gyožinanere"),
				grammar.Pazar:   forms("gemožinasere gegožinasere gyožinasere gemožinaseret gegožinaseret gyožinanere"),
			},
		},
	},
}

func lookupSuppletive(class grammar.VerbClass, infinitive string) (suppletive, bool) {
	s, ok := suppletives[suppletiveKey{class, morph.Decompose(morph.Normalize(infinitive)).Core}]
	return s, ok
}

// suppletiveForms returns the literal forms of a suppletive entry. handled is false when the
// generic rules should run instead.
func suppletiveForms(entry lexicon.Entry, tense grammar.Tense, args Args, c grammar.Case) ([]Form, bool) {
	s, ok := lookupSuppletive(entry.Class, entry.Infinitive)
	if !ok {
		return nil, false
	}
	byRegion, hasTense := s.tenses[tense]
	plain := !args.Object.Valid() && !args.Markers.Any() && !args.Optative
	if !hasTense || !plain {
		if s.exclusive {
			return nil, true
		}
		return nil, false
	}

	complement := morph.Decompose(entry.Infinitive).Complement
	var out []Form
	for _, region := range entry.Regions() {
		f, ok := byRegion[region]
		if !ok || f[args.Subject] == "" {
			continue
		}
		out = append(out, Form{
			Region:  region,
			Subject: args.Subject,
			Object:  args.Object,
			Surface: morph.FinalizeForm(f[args.Subject], complement),
			Class:   entry.Class,
			Case:    c,
		})
	}
	return out, true
}
