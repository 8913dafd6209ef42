package serviceinterfaces

import (
	"context"

	"lazverb/internal/lexicon"
	"lazverb/internal/models"
)

// CatalogService stores dictionary entries for browsing and search
type CatalogService interface {
	// Import upserts every entry of every source
	Import(ctx context.Context, sources []lexicon.Source) (*models.ImportSummary, error)

	// Search returns one page of verbs matching the filter
	Search(ctx context.Context, filter models.VerbFilter) (*models.VerbPage, error)

	// Get returns the stored rows for an infinitive across classes
	Get(ctx context.Context, infinitive string) ([]models.VerbRecord, error)
}
