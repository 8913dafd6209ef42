package services

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"lazverb/internal/config"
	"lazverb/internal/grammar"
	"lazverb/internal/lexicon"
	"lazverb/internal/observability"
)

const tveHeader = "infinitive,present_3sg,regions,flags\n"

func writeTable(t *testing.T, path, rows string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(tveHeader+rows), 0o644))
}

func noDefault() *bool {
	f := false
	return &f
}

func TestDictionaryService_LoadNotifiesListeners(t *testing.T) {
	s := NewDictionaryService(config.DictionaryConfig{}, observability.NewNopLogger())
	assert.False(t, s.IsReady())

	var got *lexicon.Dictionary
	s.OnReload(func(d *lexicon.Dictionary) { got = d })

	dict, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Same(t, dict, got)
	assert.Same(t, dict, s.Current())
	assert.True(t, s.IsReady())
	_, ok := dict.Lookup(grammar.Transitive, "oç̌aru")
	assert.True(t, ok)
}

func TestDictionaryService_EmptyDictionaryIsInvalid(t *testing.T) {
	s := NewDictionaryService(config.DictionaryConfig{
		Paths:          []string{filepath.Join(t.TempDir(), "*.csv")},
		IncludeDefault: noDefault(),
	}, observability.NewNopLogger())

	_, err := s.Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DICTIONARY_INVALID")
	assert.Nil(t, s.Current())
}

func TestDictionaryService_Sources(t *testing.T) {
	dir := t.TempDir()
	writeTable(t, filepath.Join(dir, "tve.csv"), "oskidu,skidums,PZ,\n")
	s := NewDictionaryService(config.DictionaryConfig{
		Paths:          []string{filepath.Join(dir, "*.csv")},
		IncludeDefault: noDefault(),
	}, observability.NewNopLogger())

	sources, err := s.Sources(context.Background())
	require.NoError(t, err)
	require.Len(t, sources, 1)
	assert.Equal(t, filepath.Join(dir, "tve.csv"), sources[0].Name)
}

func TestDictionaryService_WatchReloadsOnChange(t *testing.T) {
	dir := t.TempDir()
	table := filepath.Join(dir, "tve.csv")
	writeTable(t, table, "oskidu,skidums,PZ,\n")

	core, logs := observer.New(zap.DebugLevel)
	s := NewDictionaryService(config.DictionaryConfig{
		Paths:          []string{filepath.Join(dir, "**", "*.csv")},
		IncludeDefault: noDefault(),
		Watch:          true,
	}, &observability.Logger{Logger: zap.New(core)})
	s.delay = 20 * time.Millisecond

	var reloads atomic.Int32
	s.OnReload(func(*lexicon.Dictionary) { reloads.Add(1) })

	require.NoError(t, s.Startup(context.Background()))
	t.Cleanup(func() { _ = s.Shutdown(context.Background()) })
	require.Equal(t, int32(1), reloads.Load())

	writeTable(t, table, "oskidu,skidums,PZ,\nocodinu,codinums,All,\n")
	assert.Eventually(t, func() bool {
		_, ok := s.Current().Lookup(grammar.Transitive, "ocodinu")
		return ok
	}, 5*time.Second, 20*time.Millisecond)

	before := s.Current()
	require.NoError(t, os.WriteFile(table, []byte("not,a,valid\n"), 0o644))
	assert.Eventually(t, func() bool {
		return logs.FilterMessage("Dictionary reload failed, keeping previous snapshot").Len() > 0
	}, 5*time.Second, 20*time.Millisecond)
	assert.Same(t, before, s.Current())

	nested := filepath.Join(dir, "more")
	require.NoError(t, os.Mkdir(nested, 0o755))
	time.Sleep(50 * time.Millisecond)
	writeTable(t, table, "oskidu,skidums,PZ,\n")
	writeTable(t, filepath.Join(nested, "tve_more.csv"), "oxvenu,xvenums,HO,\n")
	assert.Eventually(t, func() bool {
		_, ok := s.Current().Lookup(grammar.Transitive, "oxvenu")
		return ok
	}, 5*time.Second, 20*time.Millisecond)
}

func TestDictionaryService_ShutdownWithoutWatcher(t *testing.T) {
	s := NewDictionaryService(config.DictionaryConfig{}, observability.NewNopLogger())
	require.NoError(t, s.Startup(context.Background()))
	assert.NoError(t, s.Shutdown(context.Background()))
}

func TestDictionaryService_WatchRoots(t *testing.T) {
	s := NewDictionaryService(config.DictionaryConfig{
		Paths: []string{"verbs/**/*.csv", "verbs/extra/*.json", "verbs/**/*.json"},
	}, observability.NewNopLogger())
	assert.Equal(t, []string{"verbs", filepath.Join("verbs", "extra")}, s.watchRoots())
	assert.True(t, s.matches(filepath.Join("verbs", "a", "tve.csv")))
	assert.False(t, s.matches(filepath.Join("verbs", "a", "notes.txt")))
}
