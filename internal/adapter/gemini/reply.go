package gemini

import (
	"context"
	"fmt"
	"strings"

	"go-talentscout-backend/internal/domain"
)

// ReplyGenerator phrases an assistant reply for turns the scripted state
// machine does not cover.
type ReplyGenerator struct {
	client  *Client
	limiter domain.RateLimiter
}

func NewReplyGenerator(client *Client, limiter domain.RateLimiter) *ReplyGenerator {
	return &ReplyGenerator{client: client, limiter: limiter}
}

func (r *ReplyGenerator) Reply(ctx context.Context, rc domain.ReplyContext) (string, error) {
	if !r.limiter.Allow("reply") {
		return "", fmt.Errorf("reply adapter: %w", domain.ErrRateLimited)
	}

	prompt := fmt.Sprintf(replyPromptTemplate,
		systemCore,
		rc.History,
		rc.CandidateJSON,
		rc.Message,
		strings.Join(rc.MissingFields, ", "),
	)
	text, err := r.client.generate(ctx, prompt, r.client.temperature, false)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}
