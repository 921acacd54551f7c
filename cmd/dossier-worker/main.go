package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/arvind-menon/dossier/constants"
	"github.com/arvind-menon/dossier/internal/common"
	"github.com/arvind-menon/dossier/internal/intake"
	"github.com/arvind-menon/dossier/internal/llm"
	"github.com/arvind-menon/dossier/internal/ocr"
	"github.com/arvind-menon/dossier/internal/pipeline"
	repo "github.com/arvind-menon/dossier/internal/repository"
	"github.com/arvind-menon/dossier/internal/resilience"
)

func main() {
	var (
		inbox   = flag.String("inbox", "", "inbox directory to watch (overrides INBOX_DIR)")
		scan    = flag.Bool("scan", true, "process bundles already in the inbox on startup")
		logText = flag.Bool("logtext", false, "use text log output instead of JSON")
	)
	flag.Parse()

	var handler slog.Handler
	if *logText {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	} else {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if *inbox != "" {
		cfg.Intake.InboxDir = *inbox
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	pool, err := repo.Open(ctx, repo.Config{
		DSN:              cfg.Database.DSN,
		MaxConns:         cfg.Database.MaxConns,
		MinConns:         cfg.Database.MinConns,
		MaxConnLifetime:  cfg.Database.MaxConnLifetime,
		MaxConnIdleTime:  cfg.Database.MaxConnIdleTime,
		DialTimeout:      cfg.Database.DialTimeout,
		StatementTimeout: cfg.Database.StatementTimeout,
	}, logger)
	if err != nil {
		logger.Error("opening DB", "error", err)
		os.Exit(1)
	}
	defer repo.Close(pool, logger)

	if err := repo.HealthCheck(ctx, pool, 3*time.Second, logger); err != nil {
		logger.Error("DB health failed", "error", err)
		os.Exit(1)
	}

	customers := repo.NewCustomerRepository(pool, logger)

	gateway := llm.NewClient(llm.ClientConfig{
		BaseURL:     cfg.LLM.BaseURL,
		APIKey:      cfg.LLM.APIKey,
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		Timeout:     cfg.LLM.Timeout,
		Retry: resilience.RetryConfig{
			MaxAttempts: cfg.LLM.MaxRetries,
			Delay:       cfg.LLM.RetryDelay,
		},
	}, logger)

	extractor := ocr.NewExtractor(ocr.Config{
		Pdftoppm:      cfg.OCR.PdftoppmBin,
		Tesseract:     cfg.OCR.TesseractBin,
		TesseractLang: cfg.OCR.Language,
		DPI:           cfg.OCR.DPI,
		TessdataDir:   cfg.OCR.TessdataDir,
	}, logger)

	orch := pipeline.NewOrchestrator(extractor, gateway, customers, logger)

	jobs, watchErrs, err := intake.StartWatcher(ctx, intake.WatchConfig{
		InboxDir:    cfg.Intake.InboxDir,
		InitialScan: *scan,
		Debounce:    500 * time.Millisecond,
	})
	if err != nil {
		logger.Error("starting watcher", "error", err)
		os.Exit(1)
	}

	logger.Info("worker started", "inbox", cfg.Intake.InboxDir)

	// One job at a time: parallelism is a worker-process count decision,
	// not an intra-process one.
	for {
		select {
		case <-ctx.Done():
			logger.Info("worker stopped")
			return
		case err, ok := <-watchErrs:
			if ok && err != nil {
				logger.Error("watcher error", "error", err)
			}
		case job, ok := <-jobs:
			if !ok {
				logger.Info("worker stopped")
				return
			}
			res := orch.Process(ctx, job)
			switch res.State {
			case constants.StatePersisted:
				logger.Info("job persisted", "job_id", res.JobID, "filename", res.Filename, "degraded", res.Degraded)
			case constants.StateSkipped:
				logger.Info("job skipped", "job_id", res.JobID, "filename", res.Filename)
			default:
				logger.Error("job failed", "job_id", res.JobID, "filename", res.Filename, "error", res.Err)
			}
		}
	}
}
