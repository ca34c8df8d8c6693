package gemini

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go-talentscout-backend/internal/domain"
)

// Extractor turns one user message into a sparse profile update via the
// parse prompt. The model may be sloppy about types (numbers as strings,
// single values instead of lists), so the response is coerced field by
// field from a loose map rather than decoded into a rigid struct.
type Extractor struct {
	client  *Client
	limiter domain.RateLimiter
}

func NewExtractor(client *Client, limiter domain.RateLimiter) *Extractor {
	return &Extractor{client: client, limiter: limiter}
}

func (e *Extractor) Extract(ctx context.Context, message string, step domain.Step) (domain.ProfileUpdate, error) {
	if !e.limiter.Allow("parse") {
		return domain.ProfileUpdate{}, fmt.Errorf("parse adapter: %w", domain.ErrRateLimited)
	}

	prompt := fmt.Sprintf(parsePromptTemplate, message)
	text, err := e.client.generate(ctx, prompt, e.client.temperature, true)
	if err != nil {
		return domain.ProfileUpdate{}, fmt.Errorf("%w: %v", domain.ErrExtraction, err)
	}

	var raw map[string]interface{}
	if !decodeJSON(text, &raw) {
		return domain.ProfileUpdate{}, fmt.Errorf("%w: unparseable response", domain.ErrExtraction)
	}

	return coercePatch(raw), nil
}

func coercePatch(raw map[string]interface{}) domain.ProfileUpdate {
	var u domain.ProfileUpdate
	u.FullName = coerceString(raw["full_name"])
	u.Email = coerceString(raw["email"])
	u.Phone = coerceString(raw["phone"])
	u.CurrentLocation = coerceString(raw["current_location"])
	u.LanguagePreference = coerceString(raw["language_preference"])
	u.DesiredPositions = coerceStringList(raw["desired_positions"])

	// An extracted value of exactly 0 is indistinguishable from "not
	// found" downstream, so it is dropped here rather than merged.
	if years, ok := coerceFloat(raw["years_experience"]); ok && years > 0 {
		u.YearsExperience = &years
	}

	if ts, ok := raw["tech_stack"].(map[string]interface{}); ok {
		stack := domain.TechStack{}
		for _, cat := range domain.TechCategories {
			if items := coerceStringList(ts[cat]); len(items) > 0 {
				stack[cat] = items
			}
		}
		if !stack.Empty() {
			u.TechStack = stack
		}
	}
	return u
}

func coerceString(v interface{}) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

func coerceStringList(v interface{}) []string {
	switch val := v.(type) {
	case []interface{}:
		var out []string
		for _, item := range val {
			if s := coerceString(item); s != "" {
				out = append(out, s)
			}
		}
		return out
	case string:
		if s := strings.TrimSpace(val); s != "" {
			return []string{s}
		}
	}
	return nil
}

func coerceFloat(v interface{}) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(val), 64); err == nil {
			return f, true
		}
	}
	return 0, false
}
