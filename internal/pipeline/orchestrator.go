// Package pipeline drives one document bundle from PDF to persisted record.
// Stages run strictly in order: classification of every page happens before
// any extraction, so later stages see the whole bundle's shape. Pages are
// immutable once built; each stage attaches its output in page-id-indexed
// maps rather than mutating a shared list.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/arvind-menon/dossier/constants"
	"github.com/arvind-menon/dossier/internal/assemble"
	"github.com/arvind-menon/dossier/internal/classify"
	"github.com/arvind-menon/dossier/internal/common"
	"github.com/arvind-menon/dossier/internal/extract"
	"github.com/arvind-menon/dossier/internal/intake"
	"github.com/arvind-menon/dossier/internal/llm"
	"github.com/arvind-menon/dossier/internal/namematch"
	"github.com/arvind-menon/dossier/internal/ocr"
	"github.com/arvind-menon/dossier/internal/repository"
)

// Page is one immutable page of the bundle.
type Page struct {
	ID     string
	Number int
	Text   string
}

// PageSource yields per-page text for a bundle. *ocr.Extractor is the
// production implementation.
type PageSource interface {
	ExtractPages(ctx context.Context, path string) ([]ocr.Page, error)
}

// degradeCounter is satisfied by *llm.Client; fakes without it just report
// zero degradations.
type degradeCounter interface {
	Degraded() int64
}

// Result is the terminal report for one job.
type Result struct {
	JobID    string
	Filename string
	State    constants.JobState
	Degraded int64
	Err      error
}

type Orchestrator struct {
	source     PageSource
	classifier *classify.Classifier
	engine     *extract.Engine
	names      *namematch.Reconciler
	repo       repository.CustomerRepository
	gw         llm.Gateway
	log        *slog.Logger
}

func NewOrchestrator(
	source PageSource,
	gw llm.Gateway,
	repo repository.CustomerRepository,
	logger *slog.Logger,
) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{
		source:     source,
		classifier: classify.New(gw, logger),
		engine:     extract.NewEngine(gw, logger),
		names:      namematch.NewReconciler(gw, logger),
		repo:       repo,
		gw:         gw,
		log:        logger,
	}
}

// Process runs the state machine for one job. It never panics out: a panic
// anywhere in the stages is caught at the job boundary and reported as a
// failed job.
func (o *Orchestrator) Process(ctx context.Context, job intake.Job) (res Result) {
	start := time.Now()
	log := o.log.With("job_id", job.ID(), "filename", job.Key)

	res = Result{JobID: job.ID(), Filename: job.Key, State: constants.StateReceived}

	var degradedBefore int64
	if dc, ok := o.gw.(degradeCounter); ok {
		degradedBefore = dc.Degraded()
	}
	defer func() {
		if dc, ok := o.gw.(degradeCounter); ok {
			res.Degraded = dc.Degraded() - degradedBefore
		}
		if r := recover(); r != nil {
			log.Error("pipeline.panic", "stage", res.State, "panic", r)
			res.Err = fmt.Errorf("panic at stage %s: %v", res.State, r)
			res.State = constants.StateFailed
		}
		log.Info("pipeline.done",
			"state", res.State,
			"degraded", res.Degraded,
			"elapsed_ms", time.Since(start).Milliseconds())
	}()

	// Idempotency gate: at most one record per filename, ever.
	inserted, err := o.repo.InsertPlaceholder(ctx, job.Key)
	if err != nil {
		return o.fail(res, log, "placeholder", err)
	}
	if !inserted {
		log.Info("pipeline.skip", "reason", "filename already recorded")
		res.State = constants.StateSkipped
		return res
	}

	// The extractor owns its scratch artifacts and removes them on every
	// return path, so nothing extra to clean here.
	ocrPages, err := o.source.ExtractPages(ctx, job.LocalPath)
	if err != nil {
		return o.fail(res, log, "ocr", err)
	}

	pages := make([]Page, 0, len(ocrPages))
	for _, p := range ocrPages {
		pages = append(pages, Page{ID: uuid.NewString(), Number: p.Number, Text: p.Text})
	}

	classifications := make(map[string]classify.Classification, len(pages))
	for _, p := range pages {
		classifications[p.ID] = o.classifier.Classify(ctx, p.Text, p.ID)
	}
	res.State = constants.StateClassified

	pageTexts := make([]extract.PageText, 0, len(pages))
	for _, p := range pages {
		cls := classifications[p.ID]
		pageTexts = append(pageTexts, extract.PageText{
			ID:      p.ID,
			Text:    p.Text,
			Kind:    cls.Kind,
			Subkind: cls.Subkind,
		})
	}

	// Strategies isolate per-page failures internally: a page that yields
	// nothing leaves its fields unset without aborting the job.
	personal := o.engine.ExtractPersonal(ctx, pageTexts)
	vehicle := o.engine.ExtractVehicle(ctx, pageTexts)
	business := o.engine.ExtractBusiness(ctx, pageTexts)
	res.State = constants.StateExtracted

	name, ok := o.names.Reconcile(o.names.CollectNames(ctx, pageTexts))
	if !ok {
		// last resort: the bundle filename stands in for the customer name
		name = strings.TrimSuffix(job.Key, filepath.Ext(job.Key))
		log.Info("pipeline.name.fallback", "name", name)
	}
	res.State = constants.StateReconciled

	rec := assemble.Assemble(job.Key, personal, vehicle, business, name)
	res.State = constants.StateAssembled

	rows, err := o.repo.UpdateRecord(ctx, rec)
	if err != nil {
		return o.fail(res, log, "persist", err)
	}
	if rows == 0 {
		return o.fail(res, log, "persist",
			common.NewAppError("DB_ERROR", "placeholder row missing on update", common.ErrNotFound))
	}

	res.State = constants.StatePersisted
	log.Info("pipeline.persist.ok", "pages", len(pages), "name", name != "")
	return res
}

func (o *Orchestrator) fail(res Result, log *slog.Logger, stage string, err error) Result {
	log.Error("pipeline.failed", "at", stage, "stage", res.State, "error", err)
	res.State = constants.StateFailed
	res.Err = err
	return res
}
