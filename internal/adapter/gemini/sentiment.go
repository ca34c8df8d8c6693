package gemini

import (
	"context"
	"fmt"
	"strings"

	"go-talentscout-backend/internal/domain"
)

// SentimentClassifier labels one user message positive/neutral/negative.
type SentimentClassifier struct {
	client  *Client
	limiter domain.RateLimiter
}

func NewSentimentClassifier(client *Client, limiter domain.RateLimiter) *SentimentClassifier {
	return &SentimentClassifier{client: client, limiter: limiter}
}

func (s *SentimentClassifier) Classify(ctx context.Context, message string) (domain.Sentiment, error) {
	if !s.limiter.Allow("sentiment") {
		return domain.SentimentNeutral, fmt.Errorf("sentiment adapter: %w", domain.ErrRateLimited)
	}

	prompt := fmt.Sprintf(sentimentPromptTemplate, message)
	text, err := s.client.generate(ctx, prompt, 0, false)
	if err != nil {
		return domain.SentimentNeutral, err
	}

	switch label := domain.Sentiment(strings.ToLower(strings.TrimSpace(text))); label {
	case domain.SentimentPositive, domain.SentimentNeutral, domain.SentimentNegative:
		return label, nil
	default:
		return domain.SentimentNeutral, nil
	}
}
