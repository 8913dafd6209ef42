package services

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
	"github.com/samber/lo"

	"lazverb/internal/config"
	"lazverb/internal/lexicon"
	"lazverb/internal/observability"
	"lazverb/internal/serviceinterfaces"
	contextutils "lazverb/internal/utils"
)

// DictionaryServiceInterface defines the interface for dictionary services
type DictionaryServiceInterface = serviceinterfaces.DictionaryService

// DictionaryService loads the verb dictionary and, when watching is enabled, reloads it after the
// matched files change. A failed reload keeps the previous snapshot.
type DictionaryService struct {
	cfg     config.DictionaryConfig
	delay   time.Duration
	logger  *observability.Logger
	metrics *observability.ConjugationMetrics

	current   atomic.Pointer[lexicon.Dictionary]
	mu        sync.Mutex
	listeners []func(*lexicon.Dictionary)

	watcher *fsnotify.Watcher
	dirty   atomic.Bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewDictionaryService creates a dictionary service; nothing is read until Load or Startup
func NewDictionaryService(cfg config.DictionaryConfig, logger *observability.Logger) *DictionaryService {
	return &DictionaryService{
		cfg:     cfg,
		delay:   config.DictionaryReloadDelay,
		logger:  logger,
		metrics: observability.GetConjugationMetrics(),
	}
}

// Current returns the latest snapshot, nil before the first load
func (s *DictionaryService) Current() *lexicon.Dictionary {
	return s.current.Load()
}

// OnReload registers fn to receive every snapshot loaded after registration
func (s *DictionaryService) OnReload(fn func(*lexicon.Dictionary)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Sources reads the configured tables without building a dictionary
func (s *DictionaryService) Sources(ctx context.Context) (sources []lexicon.Source, err error) {
	_, span := observability.TraceDictionaryFunction(ctx, "sources")
	defer observability.FinishSpan(span, &err)
	return lexicon.LoadSources(s.cfg.Paths, s.cfg.IncludesDefault())
}

// Load reads the configured tables, publishes the snapshot and notifies listeners
func (s *DictionaryService) Load(ctx context.Context) (dict *lexicon.Dictionary, err error) {
	ctx, span := observability.TraceDictionaryFunction(ctx, "load")
	defer observability.FinishSpan(span, &err)

	dict, files, err := lexicon.Load(s.cfg.Paths, s.cfg.IncludesDefault())
	if err != nil {
		return nil, err
	}
	if dict.Len() == 0 {
		return nil, contextutils.ErrDictionaryInvalid.WithDetails("no verbs loaded from %v", s.cfg.Paths)
	}

	s.current.Store(dict)
	s.mu.Lock()
	listeners := append([]func(*lexicon.Dictionary){}, s.listeners...)
	s.mu.Unlock()
	for _, fn := range listeners {
		fn(dict)
	}

	s.logger.Info(ctx, "Dictionary loaded", map[string]interface{}{
		"verbs":           dict.Len(),
		"files":           files,
		"include_default": s.cfg.IncludesDefault(),
	})
	return dict, nil
}

// Startup loads the dictionary if needed and starts the watcher when enabled
func (s *DictionaryService) Startup(ctx context.Context) error {
	if s.Current() == nil {
		if _, err := s.Load(ctx); err != nil {
			return err
		}
	}
	if !s.cfg.Watch || len(s.cfg.Paths) == 0 {
		return nil
	}
	return s.startWatcher(ctx)
}

// Shutdown stops the watcher
func (s *DictionaryService) Shutdown(_ context.Context) error {
	if s.cancel == nil {
		return nil
	}
	s.cancel()
	err := s.watcher.Close()
	<-s.done
	s.cancel = nil
	return err
}

// IsReady reports whether a snapshot has been loaded
func (s *DictionaryService) IsReady() bool {
	return s.Current() != nil
}

func (s *DictionaryService) startWatcher(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return contextutils.WrapError(err, "failed to create dictionary watcher")
	}
	s.watcher = watcher

	for _, dir := range s.watchRoots() {
		s.addWatchesRecursive(ctx, dir)
	}

	loopCtx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.done = make(chan struct{})
	go s.processEvents(loopCtx)

	s.logger.Info(ctx, "Dictionary watcher started", map[string]interface{}{
		"paths":    s.cfg.Paths,
		"debounce": s.delay.String(),
	})
	return nil
}

// watchRoots returns the static directory prefix of every pattern
func (s *DictionaryService) watchRoots() []string {
	roots := lo.Map(s.cfg.Paths, func(pattern string, _ int) string {
		base, _ := doublestar.SplitPattern(filepath.ToSlash(pattern))
		return filepath.FromSlash(base)
	})
	return lo.Uniq(roots)
}

func (s *DictionaryService) addWatchesRecursive(ctx context.Context, root string) {
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			s.logger.Warn(ctx, "Cannot watch dictionary path", map[string]interface{}{"path": path, "error": err.Error()})
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if err := s.watcher.Add(path); err != nil {
			s.logger.Warn(ctx, "Failed to watch directory", map[string]interface{}{"path": path, "error": err.Error()})
		}
		return nil
	})
}

func (s *DictionaryService) matches(path string) bool {
	return lo.ContainsBy(s.cfg.Paths, func(pattern string) bool {
		ok, err := doublestar.PathMatch(filepath.Clean(pattern), filepath.Clean(path))
		return err == nil && ok
	})
}

// processEvents marks the dictionary dirty on matching events and reloads once per debounce tick
func (s *DictionaryService) processEvents(ctx context.Context) {
	defer close(s.done)
	ticker := time.NewTicker(s.delay)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					s.addWatchesRecursive(ctx, event.Name)
					continue
				}
			}
			if s.matches(event.Name) {
				s.dirty.Store(true)
			}

		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			s.logger.Error(ctx, "Dictionary watcher error", err)

		case <-ticker.C:
			if s.dirty.CompareAndSwap(true, false) {
				s.reload(ctx)
			}
		}
	}
}

func (s *DictionaryService) reload(ctx context.Context) {
	if _, err := s.Load(ctx); err != nil {
		s.metrics.RecordReload(ctx, false)
		s.logger.Error(ctx, "Dictionary reload failed, keeping previous snapshot", err, map[string]interface{}{
			"paths": s.cfg.Paths,
		})
		return
	}
	s.metrics.RecordReload(ctx, true)
}
