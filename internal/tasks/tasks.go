// package tasks implements the idea generation pipeline.
//
// The core abstraction is [PipelineEngine], which sequences one generation
// request through its four stages: model generation, stock media enrichment,
// persistence and workspace publication. Each downstream sink carries an
// explicit failure policy instead of relying on code order.
package tasks

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/mxsolis/contentbot/internal/models"
	"github.com/mxsolis/contentbot/internal/services"
	"github.com/mxsolis/contentbot/internal/shared"
	"golang.org/x/time/rate"
)

const (
	// existingTitleWindow bounds how many recent idea rows feed the
	// avoid-these-titles hint.
	existingTitleWindow = 50

	imageCount  = 3
	videoCount  = 2
	orientation = "portrait"
)

// SinkPolicy states what a sink failure does to the request.
type SinkPolicy int

const (
	// Fatal aborts the whole request; nothing downstream runs.
	Fatal SinkPolicy = iota
	// BestEffort logs the failure and lets the request continue.
	BestEffort
)

// SinkPolicies is the failure policy table for every downstream sink. The
// generated idea is the valuable artifact: once it exists, only the store
// may abort the request.
var SinkPolicies = map[string]SinkPolicy{
	"generator": Fatal,
	"storage":   Fatal,
	"media":     BestEffort,
	"workspace": BestEffort,
}

// IdeaStore is the slice of the persistence gateway the pipeline needs.
type IdeaStore interface {
	Ideas(ctx context.Context, userID int64, category string, limit, offset int) ([]models.IdeaRow, error)
	Insert(ctx context.Context, userID int64, category string, translations models.BilingualIdea) (int64, error)
}

// PipelineEngine orchestrates generate → enrich → persist → publish for one
// request. At most one run is in flight per user; a newer request for the
// same user cancels the older one (supersession).
type PipelineEngine struct {
	store     IdeaStore
	generator services.Generator
	media     services.MediaSearcher
	publisher services.Publisher
	languages []string
	limiter   *rate.Limiter
	logger    *log.Logger

	mu       sync.Mutex
	inflight map[int64]*run
}

// run identifies one in-flight generation so supersession can cancel it.
type run struct {
	cancel context.CancelFunc
}

// PipelineOpts contains the dependencies for a PipelineEngine.
type PipelineOpts struct {
	Store     IdeaStore
	Generator services.Generator
	Media     services.MediaSearcher
	Publisher services.Publisher
	Languages []string
	RateLimit float64 // outbound media searches per second (default: 5)
	Logger    *log.Logger
}

// NewPipelineEngine creates a PipelineEngine with the provided dependencies.
func NewPipelineEngine(opts PipelineOpts) *PipelineEngine {
	if opts.RateLimit <= 0 {
		opts.RateLimit = 5.0
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if len(opts.Languages) == 0 {
		opts.Languages = []string{"es", "en"}
	}

	return &PipelineEngine{
		store:     opts.Store,
		generator: opts.Generator,
		media:     opts.Media,
		publisher: opts.Publisher,
		languages: opts.Languages,
		limiter:   rate.NewLimiter(rate.Limit(opts.RateLimit), 1),
		logger:    opts.Logger,
		inflight:  make(map[int64]*run),
	}
}

// GenerateAndSave runs the full pipeline for one (user, category) request and
// returns the enriched bilingual idea.
//
// A generator or storage failure aborts the request with nothing persisted or
// published. Media and workspace failures degrade per [SinkPolicies].
func (e *PipelineEngine) GenerateAndSave(ctx context.Context, userID int64, category string) (models.BilingualIdea, error) {
	ctx, done := e.acquire(ctx, userID)
	defer done()

	logger := shared.WithLogger(e.logger, "run", shared.NewRunID(), "user", userID, "category", category)

	rows, err := e.store.Ideas(ctx, userID, category, existingTitleWindow, 0)
	if err != nil {
		return nil, err
	}

	idea, err := e.generator.GenerateIdea(ctx, category, distinctTitles(rows))
	if err != nil {
		if errors.Is(ctx.Err(), context.Canceled) {
			return nil, shared.ErrRunSuperseded
		}
		return nil, err
	}
	logger.Info("idea generated", "languages", len(idea))

	for _, lang := range e.languages {
		t, ok := idea[lang]
		if !ok {
			continue
		}
		e.enrich(ctx, logger, &t)
		idea[lang] = t
	}

	ideaID, err := e.store.Insert(ctx, userID, category, idea)
	if err != nil {
		return nil, err
	}
	logger.Info("idea persisted", "idea_id", ideaID)

	if err := e.publisher.CreateContentPage(ctx, idea, category); err != nil {
		if SinkPolicies["workspace"] == Fatal {
			return nil, fmt.Errorf("workspace: %w", err)
		}
		logger.Warn("workspace publish failed, idea kept", "idea_id", ideaID, "error", err)
	}

	return idea, nil
}

// enrich attaches stock media to one language branch. A branch without a
// search prompt gets empty lists; search failures already degrade to empty
// inside the media client.
func (e *PipelineEngine) enrich(ctx context.Context, logger *log.Logger, t *models.Translation) {
	if t.SearchPrompt == "" {
		return
	}

	if err := e.limiter.Wait(ctx); err != nil {
		return
	}
	t.ImageURLs = e.media.SearchImages(ctx, t.SearchPrompt, imageCount, orientation)

	if err := e.limiter.Wait(ctx); err != nil {
		return
	}
	t.VideoURLs = e.media.SearchVideos(ctx, t.SearchPrompt, videoCount, orientation)

	if len(t.ImageURLs) == 0 && len(t.VideoURLs) == 0 {
		logger.Debug("no media found", "language", t.Language, "query", t.SearchPrompt)
	}
}

// acquire registers a cancellable run for userID, cancelling any run the
// same user already has in flight. The returned done func unregisters it.
func (e *PipelineEngine) acquire(ctx context.Context, userID int64) (context.Context, func()) {
	ctx, cancel := context.WithCancel(ctx)
	this := &run{cancel: cancel}

	e.mu.Lock()
	if prev, ok := e.inflight[userID]; ok {
		prev.cancel()
	}
	e.inflight[userID] = this
	e.mu.Unlock()

	return ctx, func() {
		e.mu.Lock()
		// Only unregister if a newer run hasn't replaced this one.
		if e.inflight[userID] == this {
			delete(e.inflight, userID)
		}
		e.mu.Unlock()
		cancel()
	}
}

// distinctTitles collects the deduplicated titles across all languages of
// the given rows, preserving first-seen order.
func distinctTitles(rows []models.IdeaRow) []string {
	seen := make(map[string]bool, len(rows))
	var titles []string
	for _, row := range rows {
		if row.Title == "" || seen[row.Title] {
			continue
		}
		seen[row.Title] = true
		titles = append(titles, row.Title)
	}
	return titles
}
