// Package pipeline orchestrates the per-record enrichment flow: generative
// extraction, embedding classification, entity normalization and persistence.
package pipeline

import (
	"context"
	"io"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/hirelens/incentive-cli/internal/classify"
	"github.com/hirelens/incentive-cli/internal/config"
	"github.com/hirelens/incentive-cli/internal/extract"
	"github.com/hirelens/incentive-cli/internal/gate"
	"github.com/hirelens/incentive-cli/internal/normalize"
	"github.com/hirelens/incentive-cli/internal/source"
	"github.com/hirelens/incentive-cli/internal/store"
)

// Resource names claimed against the accelerator gate. The generative and
// embedding models never hold the budget at the same time.
const (
	generativeResource = "generative"
	embeddingResource  = "embedding"
)

// ScopeRecord alternates the gate per record; ScopeBatch runs all
// generative work first, then all embedding work.
const (
	ScopeRecord = "record"
	ScopeBatch  = "batch"
)

// Pipeline orchestrates the enrichment of a stream of job records.
type Pipeline struct {
	cfg        *config.Config
	store      store.Store
	extractor  *extract.Extractor
	classifier *classify.Classifier
	normalizer *normalize.Normalizer
	gate       *gate.Gate
}

// New creates a Pipeline with all dependencies.
func New(
	cfg *config.Config,
	st store.Store,
	extractor *extract.Extractor,
	classifier *classify.Classifier,
	normalizer *normalize.Normalizer,
	g *gate.Gate,
) *Pipeline {
	return &Pipeline{
		cfg:        cfg,
		store:      st,
		extractor:  extractor,
		classifier: classifier,
		normalizer: normalizer,
		gate:       g,
	}
}

// Summary reports what a run did.
type Summary struct {
	Processed   int
	Skipped     int
	Failed      int
	RowsWritten int
}

// enrichment carries the model outputs for one record between the
// generative and embedding stages.
type enrichment struct {
	rec        *source.Record
	benefits   extract.ParseOutcome
	experience int
	industry   string
}

// Run consumes the provider until EOF. A failing record is logged and
// counted, not fatal; the stream continues.
func (p *Pipeline) Run(ctx context.Context, provider source.Provider) (*Summary, error) {
	summary := &Summary{}
	start := time.Now()

	var err error
	if p.cfg.Gate.Scope == ScopeBatch {
		err = p.runBatch(ctx, provider, summary)
	} else {
		err = p.runPerRecord(ctx, provider, summary)
	}

	p.extractor.Usage.LogCost(p.cfg.Anthropic.Model, "extraction")
	zap.L().Info("pipeline: run complete",
		zap.Int("processed", summary.Processed),
		zap.Int("skipped", summary.Skipped),
		zap.Int("failed", summary.Failed),
		zap.Int("rows_written", summary.RowsWritten),
		zap.Duration("elapsed", time.Since(start)),
	)
	return summary, err
}

// runPerRecord alternates the gate for every record: the generative model
// is loaded, used and released, then the embedding model takes its place.
func (p *Pipeline) runPerRecord(ctx context.Context, provider source.Provider, summary *Summary) error {
	for {
		rec, err := provider.Next(ctx)
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return eris.Wrap(err, "pipeline: read record")
		}

		skip, err := p.seenBefore(ctx, rec)
		if err != nil {
			return err
		}
		if skip {
			summary.Skipped++
			continue
		}

		if err := p.processRecord(ctx, rec, summary); err != nil {
			summary.Failed++
			zap.L().Error("pipeline: record failed",
				zap.String("source_id", rec.SourceID()),
				zap.String("title", rec.Title()),
				zap.Error(err),
			)
			continue
		}
		summary.Processed++
	}
}

// runBatch holds each model once: first the generative extraction for the
// whole stream, then one embedding pass over the collected results.
func (p *Pipeline) runBatch(ctx context.Context, provider source.Provider, summary *Summary) error {
	var pending []*enrichment

	err := func() error {
		lease, err := p.gate.Acquire(ctx, generativeResource, p.cfg.Gate.GenerativeMiB)
		if err != nil {
			return err
		}
		defer lease.Release()

		for {
			rec, err := provider.Next(ctx)
			if err == io.EOF {
				return nil
			}
			if err != nil {
				return eris.Wrap(err, "pipeline: read record")
			}

			skip, err := p.seenBefore(ctx, rec)
			if err != nil {
				return err
			}
			if skip {
				summary.Skipped++
				continue
			}

			enr, err := p.extractRecord(ctx, rec)
			if err != nil {
				summary.Failed++
				zap.L().Error("pipeline: extraction failed",
					zap.String("source_id", rec.SourceID()),
					zap.Error(err),
				)
				continue
			}
			pending = append(pending, enr)
		}
	}()
	if err != nil {
		return err
	}
	if len(pending) == 0 {
		return nil
	}

	lease, err := p.gate.Acquire(ctx, embeddingResource, p.cfg.Gate.EmbeddingMiB)
	if err != nil {
		return err
	}
	defer lease.Release()

	for _, enr := range pending {
		if err := p.classifyAndPersist(ctx, enr, summary); err != nil {
			summary.Failed++
			zap.L().Error("pipeline: record failed",
				zap.String("source_id", enr.rec.SourceID()),
				zap.Error(err),
			)
			continue
		}
		summary.Processed++
	}
	return nil
}

func (p *Pipeline) processRecord(ctx context.Context, rec *source.Record, summary *Summary) error {
	enr, err := func() (*enrichment, error) {
		lease, err := p.gate.Acquire(ctx, generativeResource, p.cfg.Gate.GenerativeMiB)
		if err != nil {
			return nil, err
		}
		defer lease.Release()
		return p.extractRecord(ctx, rec)
	}()
	if err != nil {
		return err
	}

	lease, err := p.gate.Acquire(ctx, embeddingResource, p.cfg.Gate.EmbeddingMiB)
	if err != nil {
		return err
	}
	defer lease.Release()

	return p.classifyAndPersist(ctx, enr, summary)
}

// seenBefore skips records whose source id already produced rows.
func (p *Pipeline) seenBefore(ctx context.Context, rec *source.Record) (bool, error) {
	exists, err := p.store.ExistsBySource(ctx, rec.SourceID())
	if err != nil {
		return false, eris.Wrap(err, "pipeline: duplicate check")
	}
	if exists {
		zap.L().Info("pipeline: skipping known record",
			zap.String("source_id", rec.SourceID()),
			zap.String("title", rec.Title()),
		)
	}
	return exists, nil
}

// extractRecord runs the three generative extractions for one record.
func (p *Pipeline) extractRecord(ctx context.Context, rec *source.Record) (*enrichment, error) {
	start := time.Now()

	benefits, err := p.extractor.Benefits(ctx, rec.BenefitText())
	if err != nil {
		return nil, err
	}
	experience, err := p.extractor.ExperienceRequired(ctx, rec.FullText())
	if err != nil {
		return nil, err
	}
	industry, err := p.extractor.Industry(ctx, rec.Title())
	if err != nil {
		return nil, err
	}

	zap.L().Debug("pipeline: extraction complete",
		zap.String("source_id", rec.SourceID()),
		zap.Int("benefits", len(benefits.Benefits)),
		zap.String("industry", industry),
		zap.Duration("elapsed", time.Since(start)),
	)
	return &enrichment{
		rec:        rec,
		benefits:   benefits,
		experience: experience,
		industry:   industry,
	}, nil
}

// classifyAndPersist classifies the benefit phrases, normalizes the record's
// entities and writes the fanned-out rows.
func (p *Pipeline) classifyAndPersist(ctx context.Context, enr *enrichment, summary *Summary) error {
	phrases := combinePhrases(enr.rec.DirectBenefits(), enr.benefits.Benefits)

	classification, err := p.classifier.Classify(ctx, phrases)
	if err != nil {
		return err
	}

	if p.cfg.Classify.HomeofficeORDetector && normalize.DetectHomeoffice(enr.rec) {
		classification.Flags[homeofficeCategory] = 1
	}

	entities := p.normalizer.Entities(ctx, enr.rec)
	rows := buildRows(enr, entities, classification, time.Now().UTC())

	if err := p.store.UpsertJobRows(ctx, rows); err != nil {
		return err
	}
	summary.RowsWritten += len(rows)
	return nil
}

// combinePhrases merges the portal's own benefits array with the extracted
// phrases, first occurrence wins.
func combinePhrases(direct, extracted []string) []string {
	seen := make(map[string]struct{}, len(direct)+len(extracted))
	var out []string
	for _, phrase := range append(append([]string{}, direct...), extracted...) {
		if _, ok := seen[phrase]; ok {
			continue
		}
		seen[phrase] = struct{}{}
		out = append(out, phrase)
	}
	return out
}
