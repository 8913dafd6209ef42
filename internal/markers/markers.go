// Package markers resolves the applicative and causative vowels and rewrites present stems
// for marked conjugations.
package markers

import (
	"regexp"
	"strings"

	"lazverb/internal/grammar"
)

// Kind identifies the requested marker combination
type Kind int

// Marker kinds
const (
	None Kind = iota
	Applicative
	Causative
	SimpleCausative
	// Combined is applicative together with simple causative
	Combined
)

func (k Kind) String() string {
	switch k {
	case Applicative:
		return "applicative"
	case Causative:
		return "causative"
	case SimpleCausative:
		return "simple_causative"
	case Combined:
		return "applicative_simple_causative"
	default:
		return "none"
	}
}

// KindOf maps request flags to a marker kind. Conflicting flags are rejected before this point.
func KindOf(m grammar.Markers) Kind {
	switch {
	case m.Combined():
		return Combined
	case m.Causative:
		return Causative
	case m.SimpleCausative:
		return SimpleCausative
	case m.Applicative:
		return Applicative
	default:
		return None
	}
}

// Determine returns the marker vowel for a subject/object pair
func Determine(subject, object grammar.Person, kind Kind) string {
	switch kind {
	case Causative, SimpleCausative:
		return "o"
	case Applicative, Combined:
		switch {
		case !object.Valid():
			return ""
		case object.IsLocal():
			return "i"
		case subject.IsLocal():
			return "i"
		default:
			return "u"
		}
	}
	return ""
}

// Applied is a marked third-person present form
type Applied struct {
	Form string
	// Irregular forms come from the lexical table and carry their own thematic suffix
	Irregular bool
}

type irregularKey struct {
	infinitive string
	kind       Kind
}

// Irregular marked present forms. "*" stands for the marker vowel.
var irregularStems = map[irregularKey]string{
	{"oç̌ǩomu", Causative}:       "çams",
	{"oç̌ǩomu", SimpleCausative}: "çams",
	{"oç̌ǩomu", Combined}:        "*çams",
	{"oxenu", Causative}:         "oxenapams",
	{"oxenu", SimpleCausative}:   "oxenams",
	{"oxenu", Applicative}:       "*kums",
	{"oşinu", Causative}:         "oşinapams",
	{"oşinu", Applicative}:       "*şinams",
	{"oçamu", Causative}:         "oçamapams",
	{"oçamu", Applicative}:       "*çams",
	{"geç̌ǩu", Applicative}:       "*ç̌ǩams",
	{"oşkvu", Causative}:         "oşkvapams",
	{"oşkvu", Applicative}:       "*şkvams",
	{"meçamu", Applicative}:      "*çaps",
	{"meçamu", Causative}:        "oçapams",
}

// IrregularFor returns the lexical marked form for an infinitive, if one exists
func IrregularFor(infinitive string, kind Kind) (string, bool) {
	form, ok := irregularStems[irregularKey{infinitive, kind}]
	return form, ok
}

var thematicPattern = regexp.MustCompile(`(u|a|i)?[mp]s$`)

var markerThematic = map[Kind]string{
	Causative:       "ap",
	SimpleCausative: "am",
	Combined:        "apam",
}

// Apply marks form, the preverb-less third-person present of infinitive. The lexical table is
// consulted first. Otherwise a leading i, o or u is replaced by the marker vowel, or the vowel is
// prepended, and causative kinds rewrite the thematic ending.
func Apply(infinitive, form, marker string, kind Kind) Applied {
	if kind == None {
		return Applied{Form: form}
	}
	if irregular, ok := IrregularFor(infinitive, kind); ok {
		return Applied{Form: strings.ReplaceAll(irregular, "*", marker), Irregular: true}
	}
	marked := form
	if marker != "" {
		switch {
		case strings.HasPrefix(form, "i"), strings.HasPrefix(form, "o"), strings.HasPrefix(form, "u"):
			marked = marker + form[1:]
		default:
			marked = marker + form
		}
	}
	if thematic, ok := markerThematic[kind]; ok {
		if loc := thematicPattern.FindStringIndex(marked); loc != nil {
			marked = marked[:loc[0]] + thematic + "s"
		} else {
			marked = strings.TrimSuffix(marked, "s") + thematic + "s"
		}
	}
	return Applied{Form: marked}
}
