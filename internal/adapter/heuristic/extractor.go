// Package heuristic implements the extraction contract without a language
// model. It is the wiring used when no Gemini key is configured, and the
// precision bar is the same: regexes for contact fields, the step hint to
// disambiguate the rest, and nothing guessed.
package heuristic

import (
	"context"
	"regexp"
	"strings"

	"go-talentscout-backend/internal/domain"
	"go-talentscout-backend/pkg/extract"
	"go-talentscout-backend/pkg/validation"
)

var (
	emailRegex = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	phoneRegex = regexp.MustCompile(`\+?[\d\s\-\(\)]{10,}`)
	splitRegex = regexp.MustCompile(`\s*(?:,|;| and )\s*`)
)

type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

func (e *Extractor) Extract(ctx context.Context, message string, step domain.Step) (domain.ProfileUpdate, error) {
	var u domain.ProfileUpdate

	u.Email = emailRegex.FindString(message)

	if years, ok := extract.YearsOfExperience(message); ok && years > 0 {
		u.YearsExperience = &years
	}

	if stack := domain.TechStack(extract.TechStack(message)); !stack.Empty() {
		u.TechStack = stack
	}

	switch step {
	case domain.StepCollectInfo:
		// Digit runs are only read as a phone number on the contact step;
		// on later steps they are years and date ranges.
		phone := strings.TrimSpace(phoneRegex.FindString(message))
		if validation.ValidPhone(phone) {
			u.Phone = phone
		}
		if name := nameCandidate(message, u.Email, phone); validation.ValidName(name) {
			u.FullName = name
		}
	case domain.StepCollectPositions:
		for _, part := range splitRegex.Split(strings.TrimSpace(message), -1) {
			if part = strings.TrimSpace(part); part != "" {
				u.DesiredPositions = append(u.DesiredPositions, part)
			}
		}
	case domain.StepCollectLocation:
		u.CurrentLocation = strings.TrimSpace(message)
	}

	return u, nil
}

// nameCandidate strips the contact tokens out of the message; whatever
// alphabetic words remain are taken as the name only on the collect_info
// step, where the prompt asked for exactly that.
func nameCandidate(message, email, phone string) string {
	rest := message
	if email != "" {
		rest = strings.ReplaceAll(rest, email, " ")
	}
	if phone != "" {
		rest = strings.ReplaceAll(rest, phone, " ")
	}
	var words []string
	for _, w := range strings.Fields(rest) {
		w = strings.Trim(w, ",.;:")
		if w == "" || strings.ContainsAny(w, "0123456789@") {
			continue
		}
		words = append(words, w)
	}
	return strings.Join(words, " ")
}
