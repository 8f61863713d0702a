// Package classify assigns benefit phrases to taxonomy categories by
// embedding similarity against few-shot examples.
package classify

import (
	"context"
	"math"
	"sort"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/hirelens/incentive-cli/internal/model"
	"github.com/hirelens/incentive-cli/pkg/embed"
)

// Config tunes the classifier. Weights blend two signals per category: the
// best cosine against its example phrases and the cosine against its
// context description.
type Config struct {
	Threshold     float64
	DirectWeight  float64
	ContextWeight float64
}

// Classifier scores phrases against a fixed taxonomy. Prepare must run
// before Classify so the taxonomy embeddings exist.
type Classifier struct {
	embedder embed.Client
	taxonomy model.Taxonomy
	cfg      Config
	audit    *AuditLog

	exampleVecs [][][]float64 // per category, per example
	contextVecs [][]float64   // per category
	prepared    bool
}

// New creates a Classifier. audit may be nil to disable score logging.
func New(embedder embed.Client, taxonomy model.Taxonomy, cfg Config, audit *AuditLog) *Classifier {
	return &Classifier{embedder: embedder, taxonomy: taxonomy, cfg: cfg, audit: audit}
}

// Prepare embeds every example phrase and context description once per run.
func (c *Classifier) Prepare(ctx context.Context) error {
	if c.prepared {
		return nil
	}

	var texts []string
	for _, cat := range c.taxonomy {
		texts = append(texts, cat.Examples...)
		texts = append(texts, cat.Context)
	}

	vectors, err := c.embedder.Embed(ctx, texts)
	if err != nil {
		return eris.Wrap(err, "classify: embed taxonomy")
	}

	c.exampleVecs = make([][][]float64, len(c.taxonomy))
	c.contextVecs = make([][]float64, len(c.taxonomy))
	i := 0
	for ci, cat := range c.taxonomy {
		c.exampleVecs[ci] = vectors[i : i+len(cat.Examples)]
		i += len(cat.Examples)
		c.contextVecs[ci] = vectors[i]
		i++
	}

	c.prepared = true
	zap.L().Info("taxonomy embedded",
		zap.Int("categories", len(c.taxonomy)),
		zap.Int("texts", len(texts)),
	)
	return nil
}

// Classify scores the phrases and returns per-category flags for every
// output category, the phrases that cleared no threshold, and the full
// score breakdown. Phrases the absorber category wins are dropped entirely.
func (c *Classifier) Classify(ctx context.Context, phrases []string) (model.ClassificationResult, error) {
	result := model.ClassificationResult{Flags: make(map[string]int, len(c.taxonomy))}
	for _, name := range c.taxonomy.OutputNames() {
		result.Flags[name] = 0
	}
	if len(phrases) == 0 {
		return result, nil
	}

	if err := c.Prepare(ctx); err != nil {
		return model.ClassificationResult{}, err
	}

	phraseVecs, err := c.embedder.Embed(ctx, phrases)
	if err != nil {
		return model.ClassificationResult{}, eris.Wrap(err, "classify: embed phrases")
	}

	for pi, phrase := range phrases {
		score := c.scorePhrase(phrase, phraseVecs[pi])
		result.Phrases = append(result.Phrases, score)

		if score.Assigned {
			if score.BestCategory != model.NonIncentive {
				result.Flags[score.BestCategory] = 1
			}
		} else {
			result.Unmatched = append(result.Unmatched, phrase)
		}

		// The audit log is a tuning aid; a failed write must not sink
		// the record.
		if c.audit != nil {
			if err := c.audit.Write(score, c.TopCategories(score, 5), c.cfg.Threshold); err != nil {
				zap.L().Warn("audit write failed",
					zap.String("phrase", phrase),
					zap.Error(err),
				)
			}
		}
	}
	return result, nil
}

// scorePhrase blends the direct and context similarities for one phrase.
// Ties keep the earlier taxonomy category; the threshold is strict.
func (c *Classifier) scorePhrase(phrase string, vec []float64) model.PhraseScore {
	score := model.PhraseScore{
		Phrase: phrase,
		Scores: make(map[string]float64, len(c.taxonomy)),
	}

	for ci, cat := range c.taxonomy {
		var directBest float64
		for ei := range cat.Examples {
			if sim := cosine(vec, c.exampleVecs[ci][ei]); sim > directBest {
				directBest = sim
			}
		}
		combined := c.cfg.DirectWeight*directBest + c.cfg.ContextWeight*cosine(vec, c.contextVecs[ci])

		score.Scores[cat.Name] = combined
		// Seed from the first category so an all-negative breakdown
		// still names a best.
		if ci == 0 || combined > score.BestScore {
			score.BestScore = combined
			score.BestCategory = cat.Name
		}
	}

	score.Assigned = score.BestScore > c.cfg.Threshold
	return score
}

// TopCategories returns the n best categories of a score breakdown, ordered
// by descending score with taxonomy order breaking ties.
func (c *Classifier) TopCategories(score model.PhraseScore, n int) []model.CategoryScore {
	ranked := make([]model.CategoryScore, 0, len(c.taxonomy))
	for _, cat := range c.taxonomy {
		ranked = append(ranked, model.CategoryScore{Category: cat.Name, Score: score.Scores[cat.Name]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// cosine computes cosine similarity, 0 for degenerate vectors.
func cosine(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
