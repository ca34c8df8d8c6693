package gemini

import (
	"context"
	"fmt"

	"go-talentscout-backend/internal/domain"
)

// QuestionGenerator asks the model for the per-technology question set.
// Any failure, including an empty result, is returned as ErrGeneration so
// the caller falls back to the deterministic generator.
type QuestionGenerator struct {
	client  *Client
	limiter domain.RateLimiter
}

func NewQuestionGenerator(client *Client, limiter domain.RateLimiter) *QuestionGenerator {
	return &QuestionGenerator{client: client, limiter: limiter}
}

func (g *QuestionGenerator) Generate(ctx context.Context, techStackJSON string) (*domain.QuestionSet, error) {
	if !g.limiter.Allow("qgen") {
		return nil, fmt.Errorf("qgen adapter: %w", domain.ErrRateLimited)
	}

	prompt := fmt.Sprintf(questionPromptTemplate, techStackJSON)
	text, err := g.client.generate(ctx, prompt, 0.2, true)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrGeneration, err)
	}

	var qs domain.QuestionSet
	if !decodeJSON(text, &qs) {
		return nil, fmt.Errorf("%w: malformed question set", domain.ErrGeneration)
	}
	qs.Compact()
	if qs.Empty() {
		return nil, fmt.Errorf("%w: empty question set", domain.ErrGeneration)
	}
	return &qs, nil
}
