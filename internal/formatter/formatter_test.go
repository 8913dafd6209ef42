package formatter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"lazverb/internal/conjugators"
	"lazverb/internal/grammar"
)

func TestPronoun(t *testing.T) {
	tests := []struct {
		region grammar.Region
		c      grammar.Case
		p      grammar.Person
		want   string
	}{
		{grammar.Hopa, grammar.Ergative, grammar.ThirdSingular, "himuk"},
		{grammar.Hopa, grammar.Dative, grammar.ThirdPlural, "hinis"},
		{grammar.Ardesen, grammar.Nominative, grammar.FirstPlural, "çkin"},
		{grammar.FindikliArhavi, grammar.Ergative, grammar.SecondPlural, "tkva"},
		{grammar.Pazar, grammar.Dative, grammar.ThirdSingular, "heyas"},
		{grammar.Pazar, grammar.Dative, grammar.NoPerson, ""},
	}
	for _, tt := range tests {
		t.Run(string(tt.region)+"/"+string(tt.c)+"/"+tt.p.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, Pronoun(tt.region, tt.c, tt.p))
		})
	}
}

func TestLine(t *testing.T) {
	assert.Equal(t, "ma: p̌ç̌arum", Line(conjugators.Form{
		Region: grammar.Hopa, Subject: grammar.FirstSingular, Object: grammar.NoPerson,
		Surface: "p̌ç̌arum", Case: grammar.Ergative,
	}))
	assert.Equal(t, "himuk si: ǩç̌arums", Line(conjugators.Form{
		Region: grammar.Hopa, Subject: grammar.ThirdSingular, Object: grammar.SecondSingular,
		Surface: "ǩç̌arums", Case: grammar.Ergative,
	}))
	assert.Equal(t, "ma ma: "+conjugators.InvalidCombination, Line(conjugators.Form{
		Region: grammar.Pazar, Subject: grammar.FirstSingular, Object: grammar.FirstSingular,
		Surface: conjugators.InvalidCombination, Case: grammar.Ergative, Invalid: true,
	}))
}

func TestByRegionOrdering(t *testing.T) {
	forms := []conjugators.Form{
		{Region: grammar.Hopa, Subject: grammar.ThirdPlural, Object: grammar.NoPerson, Surface: "c", Case: grammar.Ergative},
		{Region: grammar.Hopa, Subject: grammar.FirstSingular, Object: grammar.SecondSingular, Surface: "b", Case: grammar.Ergative},
		{Region: grammar.Hopa, Subject: grammar.FirstSingular, Object: grammar.NoPerson, Surface: "a", Case: grammar.Ergative},
		{Region: grammar.Ardesen, Subject: grammar.SecondSingular, Object: grammar.NoPerson, Surface: "d", Case: grammar.Ergative},
	}
	got := ByRegion(forms)
	assert.Equal(t, []string{"ma: a", "ma si: b", "hinik: c"}, got[grammar.Hopa])
	assert.Equal(t, []string{"si: d"}, got[grammar.Ardesen])
	assert.Equal(t, grammar.ThirdPlural, forms[0].Subject, "input is not reordered")
}

func TestByClass(t *testing.T) {
	forms := []conjugators.Form{
		{Region: grammar.Hopa, Subject: grammar.FirstSingular, Object: grammar.NoPerson, Surface: "a", Class: grammar.Transitive, Case: grammar.Ergative},
		{Region: grammar.Hopa, Subject: grammar.FirstSingular, Object: grammar.NoPerson, Surface: "b", Class: grammar.Middle, Case: grammar.Nominative},
	}
	got := ByClass(forms)
	assert.Equal(t, []string{"ma: a"}, got[grammar.Transitive][grammar.Hopa])
	assert.Equal(t, []string{"ma: b"}, got[grammar.Middle][grammar.Hopa])
}
