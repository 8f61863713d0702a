package extract

import (
	"context"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/hirelens/incentive-cli/pkg/anthropic"
)

// Extractor runs the generative stages against a single model.
type Extractor struct {
	client    anthropic.Client
	model     string
	maxTokens int64

	// Usage accumulates token consumption across all calls of a run.
	Usage anthropic.TokenUsage
}

// New creates an Extractor. maxTokens bounds the benefits answer; the flag
// and category answers use a much smaller fixed cap.
func New(client anthropic.Client, model string, maxTokens int64) *Extractor {
	return &Extractor{client: client, model: model, maxTokens: maxTokens}
}

// small answers: one tiny JSON object each.
const shortAnswerTokens = 64

func temperatureZero() *float64 {
	t := 0.0
	return &t
}

// Benefits extracts benefit phrases from the listing's benefit text. An
// empty input skips the model call and yields an empty outcome.
func (e *Extractor) Benefits(ctx context.Context, benefitText string) (ParseOutcome, error) {
	if strings.TrimSpace(benefitText) == "" {
		return ParseOutcome{Stage: StageFullRepair}, nil
	}

	resp, err := e.client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:       e.model,
		MaxTokens:   e.maxTokens,
		System:      anthropic.BuildCachedSystemBlocks(benefitsSystemPrompt),
		Messages:    []anthropic.Message{{Role: "user", Content: benefitText}},
		Temperature: temperatureZero(),
	})
	if err != nil {
		return ParseOutcome{}, eris.Wrap(err, "extract: benefits")
	}
	e.Usage.Add(resp.Usage)

	outcome := ParseBenefits(resp.Text())
	if outcome.Stage != StageFullRepair {
		zap.L().Debug("benefits answer needed fallback parsing",
			zap.String("stage", string(outcome.Stage)),
			zap.Int("benefits", len(outcome.Benefits)),
		)
	}
	return outcome, nil
}

// ExperienceRequired reports whether the listing explicitly demands
// professional experience. Unparsable answers count as 0.
func (e *Extractor) ExperienceRequired(ctx context.Context, fullText string) (int, error) {
	resp, err := e.client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:       e.model,
		MaxTokens:   shortAnswerTokens,
		Messages:    []anthropic.Message{{Role: "user", Content: fmt.Sprintf(experiencePromptTemplate, fullText)}},
		Temperature: temperatureZero(),
	})
	if err != nil {
		return 0, eris.Wrap(err, "extract: experience")
	}
	e.Usage.Add(resp.Usage)

	parsed := ParseFirstJSON(resp.Text())
	switch v := parsed["Experience_Required"].(type) {
	case float64:
		if v == 1 {
			return 1, nil
		}
	case string:
		if strings.TrimSpace(v) == "1" {
			return 1, nil
		}
	}
	return 0, nil
}

// Industry classifies the job title into one of the fixed industry
// categories, collapsing everything unexpected to the fallback.
func (e *Extractor) Industry(ctx context.Context, jobTitle string) (string, error) {
	resp, err := e.client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:       e.model,
		MaxTokens:   shortAnswerTokens,
		Messages:    []anthropic.Message{{Role: "user", Content: fmt.Sprintf(industryPromptTemplate, jobTitle)}},
		Temperature: temperatureZero(),
	})
	if err != nil {
		return "", eris.Wrap(err, "extract: industry")
	}
	e.Usage.Add(resp.Usage)

	// The model tends to echo the example object first; the last one is
	// the actual answer.
	parsed := ParseLastJSON(resp.Text())
	category, _ := parsed["Kategorie"].(string)
	return canonicalIndustry(category), nil
}

// canonicalIndustry validates a category answer ignoring case and spacing.
func canonicalIndustry(category string) string {
	normalized := strings.ToLower(strings.ReplaceAll(category, " ", ""))
	for _, valid := range industryCategories {
		if normalized == strings.ToLower(strings.ReplaceAll(valid, " ", "")) {
			return valid
		}
	}
	return industryFallback
}
