package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/jonathan/jobfit/internal/db"
	"github.com/jonathan/jobfit/internal/engine"
	"github.com/jonathan/jobfit/internal/ingestion"
	"github.com/jonathan/jobfit/internal/library"
	"github.com/jonathan/jobfit/internal/llm"
	"github.com/jonathan/jobfit/internal/metrics"
	"github.com/jonathan/jobfit/internal/observability"
	"github.com/jonathan/jobfit/internal/taxonomy"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// runtime is the engine plus everything it holds open
type runtime struct {
	engine   *engine.Engine
	registry *prometheus.Registry
	metrics  *metrics.Metrics
	persist  bool // library is backed by PostgreSQL
	closers  []func()
}

func (r *runtime) Close() {
	for i := len(r.closers) - 1; i >= 0; i-- {
		r.closers[i]()
	}
}

// newRuntime builds an engine from cfg. The library is PostgreSQL-backed
// when database_url is set and in-memory otherwise; the model client is
// created only when llm.enabled is set.
func newRuntime(ctx context.Context) (*runtime, error) {
	rt := &runtime{registry: prometheus.NewRegistry()}
	rt.metrics = metrics.New(rt.registry)

	tax, err := taxonomy.Load(cfg.TaxonomyPath)
	if err != nil {
		return nil, err
	}

	opts := engine.Options{
		Taxonomy:        tax,
		TargetBullets:   cfg.TargetBullets,
		PreferUnused:    cfg.PreferUnused,
		SpinTimeout:     cfg.LLM.Timeout,
		SpinTemperature: cfg.LLM.Temperature,
		Metrics:         rt.metrics,
		Logger:          logger,
	}

	if cfg.DatabaseURL != "" {
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		rt.closers = append(rt.closers, database.Close)
		if err := database.Migrate(ctx); err != nil {
			rt.Close()
			return nil, err
		}
		opts.Store = library.NewPostgresStore(database)
		rt.persist = true
		logger.Debug("library backed by postgres")
	}

	if cfg.LLM.Enabled {
		llmCfg := llm.DefaultConfig().WithOverrides(cfg.LLM.Models, cfg.LLM.Temperature)
		client, err := llm.NewClient(ctx, llmCfg, cfg.LLM.APIKey)
		if err != nil {
			rt.Close()
			return nil, err
		}
		rt.closers = append(rt.closers, func() {
			if err := client.Close(); err != nil {
				logger.Warn("failed to close model client", zap.Error(err))
			}
		})
		opts.LLM = client
	}

	rt.engine, err = engine.New(opts)
	if err != nil {
		rt.Close()
		return nil, err
	}
	return rt, nil
}

// seedLibrary imports a library file into the engine's library
func seedLibrary(ctx context.Context, rt *runtime, path string) error {
	if path == "" {
		return nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read library file: %w", err)
	}
	report, err := rt.engine.Library().Import(ctx, raw)
	if err != nil {
		return err
	}
	logger.Debug("library seeded", zap.String("file", path), zap.Int("added", len(report.Added)))
	return nil
}

// readText returns inline text, or the extracted text of file
func readText(inline, file, name string) (string, error) {
	switch {
	case inline != "" && file != "":
		return "", fmt.Errorf("--%s and --%s-file are mutually exclusive; provide only one", name, name)
	case file != "":
		doc, err := ingestion.ExtractFile(file)
		if err != nil {
			return "", err
		}
		return doc.Text, nil
	case inline != "":
		return inline, nil
	}
	return "", fmt.Errorf("either --%s or --%s-file must be provided", name, name)
}

// readJSON decodes a JSON file into v
func readJSON(path string, v any) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printer(cmd *cobra.Command) *observability.Printer {
	if !verbose {
		return nil
	}
	return observability.NewPrinter(cmd.ErrOrStderr())
}
