package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hirelens/incentive-cli/internal/classify"
	"github.com/hirelens/incentive-cli/internal/extract"
	"github.com/hirelens/incentive-cli/internal/gate"
	"github.com/hirelens/incentive-cli/internal/geo"
	"github.com/hirelens/incentive-cli/internal/normalize"
	"github.com/hirelens/incentive-cli/internal/pipeline"
	"github.com/hirelens/incentive-cli/internal/source"
	anthropicpkg "github.com/hirelens/incentive-cli/pkg/anthropic"
	"github.com/hirelens/incentive-cli/pkg/embed"
	"github.com/hirelens/incentive-cli/pkg/translate"
)

var runInput string

var runCmd = &cobra.Command{
	Use:     "run",
	Aliases: []string{"batch"},
	Short:   "Enrich a batch of scraped job listings",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if err := cfg.Validate("run"); err != nil {
			return err
		}

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.Migrate(ctx); err != nil {
			return eris.Wrap(err, "migrate store")
		}

		// Clients
		anthropicClient := anthropicpkg.NewClient(cfg.Anthropic.Key)
		embedClient := embed.NewClient(cfg.Embed.Key, cfg.Embed.Model,
			embed.WithBaseURL(cfg.Embed.BaseURL),
			embed.WithBatchSize(cfg.Embed.BatchSize),
			embed.WithRateLimit(cfg.Embed.RatePerSec),
		)

		// Translation is optional; without a key, unresolvable foreign
		// names keep their unknown-state fallback.
		var translator translate.Client
		if cfg.Translate.Key != "" {
			translator = translate.NewClient(cfg.Translate.Key,
				translate.WithBaseURL(cfg.Translate.BaseURL),
				translate.WithRateLimit(cfg.Translate.RatePerSec),
			)
		} else {
			zap.L().Warn("no translation key configured, state translation disabled")
		}

		gazetteer, err := geo.Load(cfg.Geo.DatabasePath, cfg.Geo.HomeCountry)
		if err != nil {
			return eris.Wrap(err, "load gazetteer")
		}

		taxonomy, err := classify.LoadTaxonomy(cfg.Classify.TaxonomyPath)
		if err != nil {
			return eris.Wrap(err, "load taxonomy")
		}

		audit, err := classify.OpenAuditLog(cfg.Classify.AuditLog)
		if err != nil {
			return eris.Wrap(err, "open audit log")
		}
		defer audit.Close()

		classifier := classify.New(embedClient, taxonomy, classify.Config{
			Threshold:     cfg.Classify.Threshold,
			DirectWeight:  cfg.Classify.DirectWeight,
			ContextWeight: cfg.Classify.ContextWeight,
		}, audit)
		extractor := extract.New(anthropicClient, cfg.Anthropic.Model, cfg.Anthropic.MaxTokens)
		normalizer := normalize.New(normalize.NewResolver(gazetteer, translator))

		input := runInput
		if input == "" {
			input = cfg.Source.Path
		}
		provider, err := source.OpenFile(input)
		if err != nil {
			return eris.Wrap(err, "open source")
		}
		defer provider.Close()

		p := pipeline.New(cfg, st, extractor, classifier, normalizer, gate.New(cfg.Gate.BudgetMiB))

		summary, err := p.Run(ctx, provider)
		if err != nil {
			return eris.Wrap(err, "pipeline run")
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	},
}

func init() {
	runCmd.Flags().StringVar(&runInput, "input", "", "path to the scraped listings file (overrides config)")
	rootCmd.AddCommand(runCmd)
}
