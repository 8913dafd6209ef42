package preverbs

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"lazverb/internal/grammar"
)

func TestExtractLongestFirst(t *testing.T) {
	table := For(grammar.Transitive, grammar.Present)

	pv, rest, ok := table.Extract("doloç̌arums")
	assert.True(t, ok)
	assert.Equal(t, "dolo", pv)
	assert.Equal(t, "ç̌arums", rest)

	pv, rest, ok = table.Extract("doç̌arums")
	assert.True(t, ok)
	assert.Equal(t, "do", pv)
	assert.Equal(t, "ç̌arums", rest)

	pv, _, ok = table.Extract("gamaçams")
	assert.True(t, ok)
	assert.Equal(t, "gama", pv)
}

func TestExtractRequiresRemainder(t *testing.T) {
	_, rest, ok := For(grammar.Transitive, grammar.Present).Extract("do")
	assert.False(t, ok)
	assert.Equal(t, "do", rest)
}

// recognizes reports whether pv is the preverb extracted from a word starting with it
func recognizes(table Table, pv string) bool {
	got, _, ok := table.Extract(pv + "xu")
	return ok && got == pv
}

func TestTablesDifferByTense(t *testing.T) {
	assert.True(t, recognizes(For(grammar.Transitive, grammar.Past), "gela"))
	assert.False(t, recognizes(For(grammar.Transitive, grammar.Present), "gela"))
	assert.True(t, recognizes(For(grammar.Transitive, grammar.Present), "ama"))
	assert.False(t, recognizes(For(grammar.Transitive, grammar.PastProgressive), "ama"))
	assert.True(t, recognizes(For(grammar.Intransitive, grammar.Present), "ǩoǩo"))
	assert.False(t, recognizes(For(grammar.Intransitive, grammar.Future), "ǩoǩo"))
	assert.False(t, recognizes(For(grammar.Middle, grammar.Present), "coz"))
	assert.True(t, recognizes(For(grammar.Middle, grammar.Past), "gela"))
}

func TestIrregular(t *testing.T) {
	tests := []struct {
		pv   string
		slot Slot
		want string
	}{
		{"go", SlotFirst, "gom"},
		{"go", SlotSecond, "gog"},
		{"gy", SlotFirst, "gem"},
		{"gy", SlotSecond, "geg"},
		{"gy", SlotPlain, "gyo"},
		{"coz", SlotFirst, "cem"},
		{"coz", SlotSecond, "ceg"},
		{"coz", SlotPlain, "coz"},
		{"coz", SlotSubject, "ce"},
	}
	for _, tt := range tests {
		got, ok := Irregular(tt.pv, tt.slot)
		assert.True(t, ok)
		assert.Equal(t, tt.want, got, "%s/%d", tt.pv, tt.slot)
	}

	_, ok := Irregular("do", SlotFirst)
	assert.False(t, ok)
	assert.True(t, IsIrregular("gy"))
}
