package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/samber/lo"

	"lazverb/internal/config"
	"lazverb/internal/database"
	"lazverb/internal/grammar"
	"lazverb/internal/lexicon"
	"lazverb/internal/models"
	"lazverb/internal/morph"
	"lazverb/internal/observability"
	"lazverb/internal/serviceinterfaces"
	contextutils "lazverb/internal/utils"
)

// CatalogServiceInterface defines the interface for catalog services
type CatalogServiceInterface = serviceinterfaces.CatalogService

// CatalogService stores dictionary entries in the verbs table for browsing and search
type CatalogService struct {
	db      *sql.DB
	dialect database.Dialect
	logger  *observability.Logger
}

// NewCatalogService creates a catalog over an open, migrated database
func NewCatalogService(db *sql.DB, dialect database.Dialect, logger *observability.Logger) *CatalogService {
	return &CatalogService{db: db, dialect: dialect, logger: logger}
}

// Import upserts every entry of every source in one transaction. Later sources win for the same
// (infinitive, class).
func (s *CatalogService) Import(ctx context.Context, sources []lexicon.Source) (result *models.ImportSummary, err error) {
	ctx, span := observability.TraceCatalogFunction(ctx, "import")
	defer observability.FinishSpan(span, &err)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, contextutils.ErrDatabaseConnection.WithDetails("%v", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	result = &models.ImportSummary{}
	for _, source := range sources {
		result.Files = append(result.Files, source.Name)
		// merge duplicate rows of one source the way the dictionary does
		for _, entry := range lexicon.NewDictionary(source.Entries).All() {
			inserted, err := s.upsert(ctx, tx, models.NewVerbRecord(entry, source.Name))
			if err != nil {
				return nil, err
			}
			if inserted {
				result.Inserted++
			} else {
				result.Updated++
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return nil, contextutils.WrapError(err, "failed to commit catalog import")
	}

	s.logger.Info(ctx, "Catalog import finished", map[string]interface{}{
		"inserted": result.Inserted,
		"updated":  result.Updated,
		"sources":  len(sources),
		"dialect":  string(s.dialect),
	})
	return result, nil
}

func (s *CatalogService) upsert(ctx context.Context, tx *sql.Tx, record models.VerbRecord) (inserted bool, err error) {
	forms, err := json.Marshal(record.Forms)
	if err != nil {
		return false, contextutils.WrapError(err, "failed to encode forms")
	}
	regions := joinRegions(record.Regions)
	flags := strings.Join(lo.Map(record.Flags, func(f lexicon.Flag, _ int) string { return string(f) }), ",")

	var id int64
	err = tx.QueryRowContext(ctx, `SELECT id FROM verbs WHERE infinitive = $1 AND class = $2`,
		record.Infinitive, string(record.Class)).Scan(&id)
	switch {
	case err == sql.ErrNoRows:
		_, err = tx.ExecContext(ctx,
			`INSERT INTO verbs (infinitive, class, forms, regions, flags, source) VALUES ($1, $2, $3, $4, $5, $6)`,
			record.Infinitive, string(record.Class), string(forms), regions, flags, record.Source)
		if err != nil {
			return false, contextutils.ErrDatabaseQuery.WithDetails("insert %s/%s: %v", record.Class, record.Infinitive, err)
		}
		return true, nil
	case err != nil:
		return false, contextutils.ErrDatabaseQuery.WithDetails("lookup %s/%s: %v", record.Class, record.Infinitive, err)
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE verbs SET forms = $1, regions = $2, flags = $3, source = $4, updated_at = CURRENT_TIMESTAMP WHERE id = $5`,
		string(forms), regions, flags, record.Source, id)
	if err != nil {
		return false, contextutils.ErrDatabaseQuery.WithDetails("update %s/%s: %v", record.Class, record.Infinitive, err)
	}
	return false, nil
}

// Search returns one page of verbs ordered by infinitive then class
func (s *CatalogService) Search(ctx context.Context, filter models.VerbFilter) (result *models.VerbPage, err error) {
	filter = normalizeFilter(filter)
	ctx, span := observability.TraceCatalogFunction(ctx, "search",
		observability.AttributeSearch(filter.Query),
		observability.AttributePage(filter.Page),
		observability.AttributePageSize(filter.PageSize),
	)
	defer observability.FinishSpan(span, &err)

	where, args := buildWhere(filter)

	var total int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM verbs"+where, args...).Scan(&total); err != nil {
		return nil, contextutils.ErrDatabaseQuery.WithDetails("count verbs: %v", err)
	}

	query := fmt.Sprintf(`SELECT id, infinitive, class, forms, regions, flags, source, created_at, updated_at
		FROM verbs%s ORDER BY infinitive, class LIMIT $%d OFFSET $%d`, where, len(args)+1, len(args)+2)
	rows, err := s.db.QueryContext(ctx, query, append(args, filter.PageSize, filter.Offset())...)
	if err != nil {
		return nil, contextutils.ErrDatabaseQuery.WithDetails("search verbs: %v", err)
	}
	defer func() { _ = rows.Close() }()

	verbs, err := scanRecords(rows)
	if err != nil {
		return nil, err
	}
	return &models.VerbPage{Verbs: verbs, Total: total, Page: filter.Page, PageSize: filter.PageSize}, nil
}

// Get returns the stored rows for an infinitive across classes
func (s *CatalogService) Get(ctx context.Context, infinitive string) (result []models.VerbRecord, err error) {
	infinitive = morph.Normalize(infinitive)
	ctx, span := observability.TraceCatalogFunction(ctx, "get", observability.AttributeInfinitive(infinitive))
	defer observability.FinishSpan(span, &err)

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, infinitive, class, forms, regions, flags, source, created_at, updated_at
		FROM verbs WHERE infinitive = $1 ORDER BY class`, infinitive)
	if err != nil {
		return nil, contextutils.ErrDatabaseQuery.WithDetails("get verb: %v", err)
	}
	defer func() { _ = rows.Close() }()

	result, err = scanRecords(rows)
	if err != nil {
		return nil, err
	}
	if len(result) == 0 {
		return nil, contextutils.ErrRecordNotFound.WithDetails("%q is not in the catalog", infinitive)
	}
	return result, nil
}

// SearchDictionary applies filter to an in-memory dictionary with the same ordering and paging as Search.
// It serves the verb listing when no catalog database is configured.
func SearchDictionary(dict *lexicon.Dictionary, filter models.VerbFilter) *models.VerbPage {
	filter = normalizeFilter(filter)
	matched := lo.Filter(dict.All(), func(e lexicon.Entry, _ int) bool {
		if len(filter.Classes) > 0 && !lo.Contains(filter.Classes, e.Class) {
			return false
		}
		if filter.Region != "" && !lo.Contains(e.Regions(), filter.Region) {
			return false
		}
		if filter.Query == "" {
			return true
		}
		return strings.Contains(e.Infinitive, filter.Query) || lo.ContainsBy(e.Variants, func(v lexicon.Variant) bool {
			return strings.Contains(v.Form, filter.Query)
		})
	})
	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].Infinitive != matched[j].Infinitive {
			return matched[i].Infinitive < matched[j].Infinitive
		}
		return matched[i].Class < matched[j].Class
	})

	page := &models.VerbPage{Total: len(matched), Page: filter.Page, PageSize: filter.PageSize}
	start := min(filter.Offset(), len(matched))
	end := min(start+filter.PageSize, len(matched))
	page.Verbs = lo.Map(matched[start:end], func(e lexicon.Entry, _ int) models.VerbRecord {
		return models.NewVerbRecord(e, "")
	})
	return page
}

func normalizeFilter(filter models.VerbFilter) models.VerbFilter {
	filter.Query = morph.Normalize(strings.TrimSpace(filter.Query))
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = config.DefaultPageSize
	}
	if filter.PageSize > config.MaxPageSize {
		filter.PageSize = config.MaxPageSize
	}
	return filter
}

// buildWhere renders the filter as a WHERE clause with numbered placeholders
func buildWhere(filter models.VerbFilter) (string, []interface{}) {
	var (
		clauses []string
		args    []interface{}
	)
	next := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Query != "" {
		p := next("%" + filter.Query + "%")
		clauses = append(clauses, fmt.Sprintf("(infinitive LIKE %s OR forms LIKE %s)", p, p))
	}
	if len(filter.Classes) > 0 && len(filter.Classes) < len(grammar.Classes) {
		placeholders := lo.Map(filter.Classes, func(c grammar.VerbClass, _ int) string { return next(string(c)) })
		clauses = append(clauses, "class IN ("+strings.Join(placeholders, ", ")+")")
	}
	if filter.Region != "" {
		clauses = append(clauses, "(',' || regions || ',') LIKE "+next("%,"+string(filter.Region)+",%"))
	}

	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

func scanRecords(rows *sql.Rows) ([]models.VerbRecord, error) {
	var out []models.VerbRecord
	for rows.Next() {
		var (
			record                       models.VerbRecord
			class, forms, regions, flags string
		)
		if err := rows.Scan(&record.ID, &record.Infinitive, &class, &forms, &regions, &flags,
			&record.Source, &record.CreatedAt, &record.UpdatedAt); err != nil {
			return nil, contextutils.ErrDatabaseQuery.WithDetails("scan verb: %v", err)
		}
		record.Class = grammar.VerbClass(class)
		if err := json.Unmarshal([]byte(forms), &record.Forms); err != nil {
			return nil, contextutils.WrapErrorf(err, "corrupt forms for %s", record.Infinitive)
		}
		record.Regions = splitRegions(regions)
		if flags != "" {
			record.Flags = lo.Map(strings.Split(flags, ","), func(f string, _ int) lexicon.Flag { return lexicon.Flag(f) })
		}
		out = append(out, record)
	}
	if err := rows.Err(); err != nil {
		return nil, contextutils.ErrDatabaseQuery.WithDetails("iterate verbs: %v", err)
	}
	return out, nil
}

func joinRegions(regions []grammar.Region) string {
	return strings.Join(lo.Map(regions, func(r grammar.Region, _ int) string { return string(r) }), ",")
}

func splitRegions(s string) []grammar.Region {
	if s == "" {
		return nil
	}
	return lo.Map(strings.Split(s, ","), func(r string, _ int) grammar.Region { return grammar.Region(r) })
}
