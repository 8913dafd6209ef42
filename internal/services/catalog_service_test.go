package services

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lazverb/internal/config"
	"lazverb/internal/database"
	"lazverb/internal/grammar"
	"lazverb/internal/lexicon"
	"lazverb/internal/models"
	"lazverb/internal/observability"
	contextutils "lazverb/internal/utils"
)

func newTestCatalog(t *testing.T) *CatalogService {
	t.Helper()
	logger := observability.NewNopLogger()
	db, dialect, err := database.NewManager(logger).InitDB(context.Background(), config.DatabaseConfig{
		URL: "sqlite://" + filepath.Join(t.TempDir(), "catalog.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewCatalogService(db, dialect, logger)
}

func entry(class grammar.VerbClass, infinitive, form string, regions ...grammar.Region) lexicon.Entry {
	return lexicon.Entry{
		Infinitive: infinitive,
		Class:      class,
		Variants:   []lexicon.Variant{{Form: form, Regions: regions}},
	}
}

func catalogSources() []lexicon.Source {
	return []lexicon.Source{{
		Name: "tve.csv",
		Entries: []lexicon.Entry{
			entry(grammar.Transitive, "oç̌aru", "ç̌arums", grammar.Regions...),
			entry(grammar.Transitive, "oskidu", "skidums", grammar.Pazar),
			entry(grammar.Transitive, "oxvenu", "xvenums", grammar.Hopa),
		},
	}, {
		Name: "ivd.csv",
		Entries: []lexicon.Entry{
			entry(grammar.Intransitive, "oskidu", "skidun", grammar.Pazar, grammar.Hopa),
			{
				Infinitive: "coxons",
				Class:      grammar.Intransitive,
				Variants:   []lexicon.Variant{{Form: "coxons", Regions: grammar.Regions}},
				Flags:      []lexicon.Flag{lexicon.FlagNoObject},
			},
		},
	}}
}

func TestCatalogService_ImportAndReimport(t *testing.T) {
	ctx := context.Background()
	s := newTestCatalog(t)

	summary, err := s.Import(ctx, catalogSources())
	require.NoError(t, err)
	assert.Equal(t, 5, summary.Inserted)
	assert.Equal(t, 0, summary.Updated)
	assert.Equal(t, []string{"tve.csv", "ivd.csv"}, summary.Files)

	updated := []lexicon.Source{{
		Name:    "extra.json",
		Entries: []lexicon.Entry{entry(grammar.Transitive, "oskidu", "skidums", grammar.Pazar, grammar.Ardesen)},
	}}
	summary, err = s.Import(ctx, updated)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Inserted)
	assert.Equal(t, 1, summary.Updated)

	records, err := s.Get(ctx, "oskidu")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, grammar.Intransitive, records[0].Class)
	assert.Equal(t, grammar.Transitive, records[1].Class)
	assert.Equal(t, []grammar.Region{grammar.Ardesen, grammar.Pazar}, records[1].Regions)
	assert.Equal(t, "extra.json", records[1].Source)
	assert.False(t, records[1].CreatedAt.IsZero())
}

func TestCatalogService_ImportMergesDuplicateRows(t *testing.T) {
	ctx := context.Background()
	s := newTestCatalog(t)

	summary, err := s.Import(ctx, []lexicon.Source{{
		Name: "tve.csv",
		Entries: []lexicon.Entry{
			entry(grammar.Transitive, "oskidu", "skidums", grammar.Pazar),
			entry(grammar.Transitive, "oskidu", "skidums", grammar.Hopa),
		},
	}})
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Inserted)

	records, err := s.Get(ctx, "oskidu")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, []grammar.Region{grammar.Hopa, grammar.Pazar}, records[0].Regions)
}

func TestCatalogService_Search(t *testing.T) {
	ctx := context.Background()
	s := newTestCatalog(t)
	_, err := s.Import(ctx, catalogSources())
	require.NoError(t, err)

	tests := []struct {
		name   string
		filter models.VerbFilter
		want   []string
		total  int
	}{
		{
			name:   "all rows ordered by infinitive then class",
			filter: models.VerbFilter{},
			want:   []string{"coxons/IVD", "oskidu/IVD", "oskidu/TVE", "oxvenu/TVE", "oç̌aru/TVE"},
			total:  5,
		},
		{
			name:   "query matches infinitive",
			filter: models.VerbFilter{Query: "skid"},
			want:   []string{"oskidu/IVD", "oskidu/TVE"},
			total:  2,
		},
		{
			name:   "query matches forms",
			filter: models.VerbFilter{Query: "xvenums"},
			want:   []string{"oxvenu/TVE"},
			total:  1,
		},
		{
			name:   "class filter",
			filter: models.VerbFilter{Classes: []grammar.VerbClass{grammar.Intransitive}},
			want:   []string{"coxons/IVD", "oskidu/IVD"},
			total:  2,
		},
		{
			name:   "region filter",
			filter: models.VerbFilter{Region: grammar.Hopa},
			want:   []string{"coxons/IVD", "oskidu/IVD", "oxvenu/TVE", "oç̌aru/TVE"},
			total:  4,
		},
		{
			name:   "second page",
			filter: models.VerbFilter{Page: 2, PageSize: 2},
			want:   []string{"oskidu/TVE", "oxvenu/TVE"},
			total:  5,
		},
		{
			name:   "no match",
			filter: models.VerbFilter{Query: "zzz"},
			want:   nil,
			total:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := s.Search(ctx, tt.filter)
			require.NoError(t, err)
			var got []string
			for _, v := range page.Verbs {
				got = append(got, v.Infinitive+"/"+string(v.Class))
			}
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.total, page.Total)
		})
	}
}

func TestCatalogService_SearchClampsPaging(t *testing.T) {
	s := newTestCatalog(t)
	page, err := s.Search(context.Background(), models.VerbFilter{Page: -3, PageSize: 10_000})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, config.MaxPageSize, page.PageSize)
	assert.Empty(t, page.Verbs)

	page, err = s.Search(context.Background(), models.VerbFilter{})
	require.NoError(t, err)
	assert.Equal(t, config.DefaultPageSize, page.PageSize)
}

func TestCatalogService_GetNotFound(t *testing.T) {
	s := newTestCatalog(t)
	_, err := s.Get(context.Background(), "oxvenu")
	require.Error(t, err)
	assert.ErrorIs(t, err, contextutils.ErrRecordNotFound)
}

func TestCatalogService_RecordRoundTripsToEntry(t *testing.T) {
	ctx := context.Background()
	s := newTestCatalog(t)
	_, err := s.Import(ctx, catalogSources())
	require.NoError(t, err)

	records, err := s.Get(ctx, "coxons")
	require.NoError(t, err)
	require.Len(t, records, 1)
	e := records[0].Entry()
	assert.True(t, e.HasFlag(lexicon.FlagNoObject))
	assert.Equal(t, grammar.Intransitive, e.Class)
}

func TestSearchDictionary_MatchesCatalogOrdering(t *testing.T) {
	var entries []lexicon.Entry
	for _, source := range catalogSources() {
		entries = append(entries, source.Entries...)
	}
	dict := lexicon.NewDictionary(entries)

	page := SearchDictionary(dict, models.VerbFilter{})
	got := make([]string, 0, len(page.Verbs))
	for _, v := range page.Verbs {
		got = append(got, v.Infinitive+"/"+string(v.Class))
	}
	assert.Equal(t, []string{"coxons/IVD", "oskidu/IVD", "oskidu/TVE", "oxvenu/TVE", "oç̌aru/TVE"}, got)
	assert.Equal(t, 5, page.Total)

	page = SearchDictionary(dict, models.VerbFilter{Query: "skidun", Region: grammar.Hopa})
	require.Len(t, page.Verbs, 1)
	assert.Equal(t, grammar.Intransitive, page.Verbs[0].Class)

	page = SearchDictionary(dict, models.VerbFilter{Page: 3, PageSize: 2})
	require.Len(t, page.Verbs, 1)
	assert.Equal(t, "oç̌aru", page.Verbs[0].Infinitive)

	page = SearchDictionary(dict, models.VerbFilter{Page: 9, PageSize: 2})
	assert.Empty(t, page.Verbs)
	assert.Equal(t, 5, page.Total)
}
