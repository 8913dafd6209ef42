// Package serviceinterfaces defines service interfaces for dependency injection and testing.
package serviceinterfaces

import (
	"context"

	"lazverb/internal/engine"
	"lazverb/internal/lexicon"
)

// ConjugationService conjugates against the current dictionary snapshot
type ConjugationService interface {
	// Conjugate validates and conjugates one request
	Conjugate(ctx context.Context, req engine.Request) (*engine.Result, error)

	// Dictionary returns the snapshot requests are served from
	Dictionary() *lexicon.Dictionary

	// UseDictionary swaps in a new snapshot for subsequent requests
	UseDictionary(dict *lexicon.Dictionary)
}

// DictionaryService owns dictionary loading and reloading
type DictionaryService interface {
	Load(ctx context.Context) (*lexicon.Dictionary, error)
	Current() *lexicon.Dictionary
	OnReload(fn func(*lexicon.Dictionary))

	// Sources reads the configured tables keeping the file each entry came from
	Sources(ctx context.Context) ([]lexicon.Source, error)
}
