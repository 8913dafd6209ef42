package conjugators

import "lazverb/internal/grammar"

func optative(s suffixes) *suffixes { return &s }

// paradigms lists every generic tense conjugator
func paradigms() []paradigm {
	var out []paradigm

	for _, class := range []grammar.VerbClass{grammar.Transitive, grammar.Middle} {
		c := ergative
		if class == grammar.Middle {
			c = nominative
		}
		perfectDrop := ""
		if class == grammar.Middle {
			perfectDrop = "i"
		}
		out = append(out,
			paradigm{
				class: class, tense: grammar.Present, construction: c, root: presentRoot,
				suffixes: ergativePresent, optative: optative(ergativeOptative),
				allowsMarkers: true, allowsObjects: true,
			},
			paradigm{
				class: class, tense: grammar.Past, construction: c, root: pastRoot,
				suffixes: ergativePast, optative: optative(ergativeOptative),
				allowsMarkers: true, allowsObjects: true,
			},
			paradigm{
				class: class, tense: grammar.Future, construction: c, root: presentRoot,
				suffixes: ergativeFuture, allowsMarkers: true, allowsObjects: true,
			},
			paradigm{
				class: class, tense: grammar.PastProgressive, construction: c, root: presentRoot,
				suffixes: ergativePastProgressive, allowsMarkers: true, allowsObjects: true,
			},
			paradigm{
				class: class, tense: grammar.PresentPerfect, construction: dative, root: pastRoot,
				suffixes: perfectSuffixes, versionVowel: true, dropLeading: perfectDrop,
			},
		)
	}

	ivd := func(tense grammar.Tense, root rootFunc, s suffixes, opt *suffixes) paradigm {
		return paradigm{
			class: grammar.Intransitive, tense: tense, construction: dative, root: root,
			suffixes: s, optative: opt, versionVowel: true, dropLeading: "u", allowsObjects: true,
		}
	}
	out = append(out,
		ivd(grammar.Present, presentRoot, dativePresent, optative(dativeOptative)),
		ivd(grammar.Past, pastRoot, dativePast, optative(dativeOptative)),
		ivd(grammar.Future, presentRoot, dativeFuture, nil),
		ivd(grammar.PastProgressive, presentRoot, dativePastProgressive, nil),
	)
	return out
}
