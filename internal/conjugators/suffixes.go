package conjugators

import (
	"lazverb/internal/grammar"
)

// presentS is replaced by "s" when the lexical third-person form ends in one, else dropped
const presentS = "S"

// personPair is a (subject, object) combination
type personPair struct {
	subject, object grammar.Person
}

// suffixes is a person suffix table with regional and object-indexed overrides
type suffixes struct {
	base     [6]string
	regional map[grammar.Region]map[grammar.Person]string
	// byObject sends a (subject, object) pair to the person whose suffix it takes.
	// Pairs not listed use the subject's own suffix, so 3sg with a 3sg object is 3sg.
	byObject map[personPair]grammar.Person
}

func (s suffixes) lookup(region grammar.Region, subject, object grammar.Person, hadS bool) string {
	if p, ok := s.byObject[personPair{subject, object}]; ok {
		subject = p
	}
	suffix := s.base[subject]
	if byPerson, ok := s.regional[region]; ok {
		if v, ok := byPerson[subject]; ok {
			suffix = v
		}
	}
	return resolveS(suffix, hadS)
}

func resolveS(suffix string, hadS bool) string {
	if suffix != presentS {
		return suffix
	}
	if hadS {
		return "s"
	}
	return ""
}

func table(s1, s2, s3, p1, p2, p3 string) suffixes {
	return suffixes{base: [6]string{s1, s2, s3, p1, p2, p3}}
}

func (s suffixes) in(region grammar.Region, overrides map[grammar.Person]string) suffixes {
	regional := make(map[grammar.Region]map[grammar.Person]string, len(s.regional)+1)
	for r, m := range s.regional {
		regional[r] = m
	}
	regional[region] = overrides
	s.regional = regional
	return s
}

// withObjectSuffix makes subject with object take the suffix of person
func (s suffixes) withObjectSuffix(subject, object, person grammar.Person) suffixes {
	byObject := make(map[personPair]grammar.Person, len(s.byObject)+1)
	for k, v := range s.byObject {
		byObject[k] = v
	}
	byObject[personPair{subject, object}] = person
	s.byObject = byObject
	return s
}

// withPluralObject makes a singular subject with a first or second plural object take the
// first plural suffix
func (s suffixes) withPluralObject() suffixes {
	for _, subject := range []grammar.Person{grammar.FirstSingular, grammar.SecondSingular, grammar.ThirdSingular} {
		for _, object := range []grammar.Person{grammar.FirstPlural, grammar.SecondPlural} {
			s = s.withObjectSuffix(subject, object, grammar.FirstPlural)
		}
	}
	return s
}

func thirdPlural(v string) map[grammar.Person]string {
	return map[grammar.Person]string{grammar.ThirdPlural: v}
}

var (
	ergativePresent         = table("", "", presentS, "t", "t", "an").withPluralObject()
	ergativeOptative        = table("a", "a", "as", "at", "at", "an").withPluralObject()
	ergativePast            = table("i", "i", "u", "it", "it", "es").in(grammar.Ardesen, thirdPlural("ey")).withPluralObject()
	ergativeFuture          = table("are", "are", "asere", "atere", "atere", "anere").in(grammar.Hopa, hopaErgativeFuture).withPluralObject()
	ergativePastProgressive = table("ti", "ti", "tu", "tit", "tit", "tes").in(grammar.Ardesen, thirdPlural("tey")).withPluralObject()

	perfectSuffixes = table("un", "un", "un", "unan", "unan", "unan").in(grammar.Ardesen, shortPerfect).in(grammar.Pazar, shortPerfect)

	dativePresent         = table(presentS, presentS, presentS, "t", "t", "an")
	dativeOptative        = table("as", "as", "as", "at", "at", "an")
	dativePast            = table("u", "u", "u", "ut", "ut", "es").in(grammar.Ardesen, thirdPlural("ey"))
	dativeFuture          = table("asere", "asere", "asere", "aseret", "aseret", "anere").in(grammar.Hopa, hopaDativeFuture)
	dativePastProgressive = table("tu", "tu", "tu", "tut", "tut", "tes").in(grammar.Ardesen, thirdPlural("tey"))

	potentialPresent         = table("en", "en", "en", "ent", "ent", "enan")
	potentialPastProgressive = table("ertu", "ertu", "ertu", "ertut", "ertut", "ertes").in(grammar.Ardesen, thirdPlural("ertey"))

	passivePresent         = table("e", "e", "en", "et", "et", "enan")
	passivePast            = table("i", "i", "u", "it", "it", "es").in(grammar.Ardesen, thirdPlural("ey"))
	passiveFuture          = table("are", "are", "asere", "atere", "atere", "anere").in(grammar.Hopa, hopaErgativeFuture)
	passivePastProgressive = table("eti", "eti", "etu", "etit", "etit", "etes").in(grammar.Ardesen, thirdPlural("etey"))
)

var shortPerfect = map[grammar.Person]string{
	grammar.FirstSingular:  "u",
	grammar.SecondSingular: "u",
	grammar.ThirdSingular:  "u",
	grammar.FirstPlural:    "una",
	grammar.SecondPlural:   "una",
	grammar.ThirdPlural:    "una",
}

var hopaDativeFuture = map[grammar.Person]string{
	grammar.FirstSingular:  "asen",
	grammar.SecondSingular: "asen",
	grammar.ThirdSingular:  "asen",
	grammar.FirstPlural:    "asent",
	grammar.SecondPlural:   "asent",
	grammar.ThirdPlural:    "anen",
}

var hopaErgativeFuture = map[grammar.Person]string{
	grammar.ThirdSingular: "asen",
	grammar.FirstPlural:   "aten",
	grammar.SecondPlural:  "aten",
	grammar.ThirdPlural:   "anen",
}
