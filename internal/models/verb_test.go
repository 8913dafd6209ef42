package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lazverb/internal/grammar"
	"lazverb/internal/lexicon"
)

func TestNewVerbRecord_RoundTripsEntry(t *testing.T) {
	entry := lexicon.Entry{
		Infinitive: "oxenu",
		Class:      grammar.Transitive,
		Variants: []lexicon.Variant{
			{Form: "xenums", Regions: []grammar.Region{grammar.Hopa, grammar.Pazar}},
			{Form: "ixenams", Regions: []grammar.Region{grammar.Ardesen}},
		},
		Flags: []lexicon.Flag{lexicon.FlagRequiresMarker},
	}

	record := NewVerbRecord(entry, "tve.csv")
	assert.Equal(t, []grammar.Region{grammar.Ardesen, grammar.Hopa, grammar.Pazar}, record.Regions)
	assert.Equal(t, "tve.csv", record.Source)
	assert.Equal(t, entry, record.Entry())
}

func TestVerbRecord_MarshalJSON(t *testing.T) {
	record := VerbRecord{
		ID:         7,
		Infinitive: "ren",
		Class:      grammar.Intransitive,
		Forms:      []lexicon.Variant{{Form: "ren", Regions: []grammar.Region{grammar.Hopa}}},
		Regions:    []grammar.Region{grammar.Hopa},
		CreatedAt:  time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		UpdatedAt:  time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC),
	}

	data, err := json.Marshal(record)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"id": 7,
		"infinitive": "ren",
		"class": "IVD",
		"forms": [{"form": "ren", "regions": ["HO"]}],
		"regions": ["HO"],
		"created_at": "2026-01-01T00:00:00Z",
		"updated_at": "2026-01-02T00:00:00Z"
	}`, string(data))
}

func TestVerbFilter_Offset(t *testing.T) {
	tests := []struct {
		page, size, want int
	}{
		{0, 20, 0},
		{1, 20, 0},
		{2, 20, 20},
		{5, 10, 40},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, VerbFilter{Page: tt.page, PageSize: tt.size}.Offset())
	}
}
