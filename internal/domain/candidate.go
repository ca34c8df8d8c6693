package domain

import (
	"context"
	"strings"
	"time"
)

// TechCategories are the four fixed tech stack categories, in display order.
var TechCategories = []string{"programming_languages", "frameworks", "databases", "tools"}

// TechStack groups declared technologies by category. Once any tech stack
// data exists, all four categories are materialized (possibly empty).
type TechStack map[string][]string

// Normalized returns a copy with every fixed category present.
func (t TechStack) Normalized() TechStack {
	out := make(TechStack, len(TechCategories))
	for _, cat := range TechCategories {
		out[cat] = append([]string(nil), t[cat]...)
	}
	return out
}

// Union merges incoming category items into the stack, deduplicating per
// category. The receiver is not modified.
func (t TechStack) Union(incoming TechStack) TechStack {
	out := t.Normalized()
	for _, cat := range TechCategories {
		out[cat] = unionStrings(out[cat], incoming[cat])
	}
	return out
}

// Flatten returns all technologies across categories in category order,
// duplicates removed, first occurrence wins.
func (t TechStack) Flatten() []string {
	var all []string
	seen := make(map[string]bool)
	for _, cat := range TechCategories {
		for _, tech := range t[cat] {
			if tech == "" || seen[tech] {
				continue
			}
			seen[tech] = true
			all = append(all, tech)
		}
	}
	return all
}

// Empty reports whether no category holds any technology.
func (t TechStack) Empty() bool {
	for _, items := range t {
		if len(items) > 0 {
			return false
		}
	}
	return true
}

// Candidate is the authoritative, monotonically-enriched profile for one
// conversation session. Optional scalars are empty strings / nil pointers
// until collected.
type Candidate struct {
	FullName           string    `json:"full_name,omitempty"`
	Email              string    `json:"email,omitempty"`
	Phone              string    `json:"phone,omitempty"`
	YearsExperience    *float64  `json:"years_experience,omitempty"`
	DesiredPositions   []string  `json:"desired_positions,omitempty"`
	CurrentLocation    string    `json:"current_location,omitempty"`
	TechStack          TechStack `json:"tech_stack,omitempty"`
	LanguagePreference string    `json:"language_preference,omitempty"`
	ConsentToStore     bool      `json:"consent_to_store"`
}

// ProfileUpdate is a sparse patch produced by an extraction adapter.
// Absent fields stay zero-valued and are ignored by Merge.
type ProfileUpdate struct {
	FullName           string    `json:"full_name,omitempty"`
	Email              string    `json:"email,omitempty"`
	Phone              string    `json:"phone,omitempty"`
	YearsExperience    *float64  `json:"years_experience,omitempty"`
	DesiredPositions   []string  `json:"desired_positions,omitempty"`
	CurrentLocation    string    `json:"current_location,omitempty"`
	TechStack          TechStack `json:"tech_stack,omitempty"`
	LanguagePreference string    `json:"language_preference,omitempty"`
}

// Empty reports whether the update carries no information at all.
func (u ProfileUpdate) Empty() bool {
	return strings.TrimSpace(u.FullName) == "" &&
		strings.TrimSpace(u.Email) == "" &&
		strings.TrimSpace(u.Phone) == "" &&
		u.YearsExperience == nil &&
		len(u.DesiredPositions) == 0 &&
		strings.TrimSpace(u.CurrentLocation) == "" &&
		(u.TechStack == nil || u.TechStack.Empty()) &&
		strings.TrimSpace(u.LanguagePreference) == ""
}

// Merge combines a partial update into the profile. Last non-empty wins;
// an empty or absent incoming value never clears an existing one. Lists
// and tech stack categories are unioned with duplicates collapsed. The
// receiver is not modified; the result shares no mutable state with it.
func (c Candidate) Merge(u ProfileUpdate) Candidate {
	out := c
	out.DesiredPositions = append([]string(nil), c.DesiredPositions...)
	if c.TechStack != nil {
		out.TechStack = c.TechStack.Normalized()
	}
	if c.YearsExperience != nil {
		v := *c.YearsExperience
		out.YearsExperience = &v
	}

	if v := strings.TrimSpace(u.FullName); v != "" {
		out.FullName = v
	}
	if v := strings.TrimSpace(u.Email); v != "" {
		out.Email = v
	}
	if v := strings.TrimSpace(u.Phone); v != "" {
		out.Phone = v
	}
	if u.YearsExperience != nil {
		v := *u.YearsExperience
		out.YearsExperience = &v
	}
	if len(u.DesiredPositions) > 0 {
		out.DesiredPositions = unionStrings(out.DesiredPositions, u.DesiredPositions)
	}
	if v := strings.TrimSpace(u.CurrentLocation); v != "" {
		out.CurrentLocation = v
	}
	if u.TechStack != nil && !u.TechStack.Empty() {
		if out.TechStack == nil {
			out.TechStack = TechStack{}
		}
		out.TechStack = out.TechStack.Union(u.TechStack)
	}
	if v := strings.TrimSpace(u.LanguagePreference); v != "" {
		out.LanguagePreference = v
	}
	return out
}

// MissingFields lists required profile fields that are still unset, in
// collection order.
func (c Candidate) MissingFields() []string {
	var missing []string
	if c.FullName == "" {
		missing = append(missing, "full_name")
	}
	if c.Email == "" {
		missing = append(missing, "email")
	}
	if c.Phone == "" {
		missing = append(missing, "phone")
	}
	if c.YearsExperience == nil {
		missing = append(missing, "years_experience")
	}
	if len(c.DesiredPositions) == 0 {
		missing = append(missing, "desired_positions")
	}
	if c.CurrentLocation == "" {
		missing = append(missing, "current_location")
	}
	if c.TechStack == nil || c.TechStack.Empty() {
		missing = append(missing, "tech_stack")
	}
	return missing
}

func unionStrings(existing, incoming []string) []string {
	out := append([]string(nil), existing...)
	seen := make(map[string]bool, len(out))
	for _, s := range out {
		seen[s] = true
	}
	for _, s := range incoming {
		s = strings.TrimSpace(s)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

// CandidateRecord is the persisted shape of a consented profile. Email and
// phone are stored as one-way hashes, never plaintext.
type CandidateRecord struct {
	Timestamp        time.Time `json:"timestamp"`
	CandidateID      string    `json:"candidate_id"`
	FullName         string    `json:"full_name,omitempty"`
	EmailHash        string    `json:"email_hash,omitempty"`
	PhoneHash        string    `json:"phone_hash,omitempty"`
	YearsExperience  *float64  `json:"years_experience,omitempty"`
	DesiredPositions []string  `json:"desired_positions,omitempty"`
	CurrentLocation  string    `json:"current_location,omitempty"`
	TechStack        TechStack `json:"tech_stack,omitempty"`
	Questions        []Topic   `json:"questions,omitempty"`
}

type CandidateRepository interface {
	// Store persists the profile and generated question topics. It is a
	// no-op returning an empty id when the candidate has not consented.
	Store(ctx context.Context, candidate *Candidate, questions *QuestionSet) (string, error)
	Load(ctx context.Context, candidateID string) (*CandidateRecord, error)
}
