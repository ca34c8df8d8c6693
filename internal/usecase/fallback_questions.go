package usecase

import (
	"fmt"

	"go-talentscout-backend/internal/domain"
)

// fallbackTopicLimit bounds the deterministic question set to the first
// technologies the candidate listed.
const fallbackTopicLimit = 5

var genericTopic = domain.Topic{
	Name: "Your Experience",
	Questions: []string{
		"Describe your most challenging project.",
		"How do you approach learning new technologies?",
		"What's your experience with team collaboration?",
		"How do you ensure code quality?",
	},
}

// FallbackQuestions builds a guaranteed question set from the declared
// tech stack. It is total: it never fails and never returns an empty set,
// so question generation as a whole can never surface an error.
func FallbackQuestions(stack domain.TechStack) *domain.QuestionSet {
	techs := stack.Flatten()
	if len(techs) > fallbackTopicLimit {
		techs = techs[:fallbackTopicLimit]
	}

	topics := make([]domain.Topic, 0, len(techs))
	for _, tech := range techs {
		topics = append(topics, domain.Topic{
			Name: tech,
			Questions: []string{
				fmt.Sprintf("Describe your experience with %s.", tech),
				fmt.Sprintf("What are the key features of %s?", tech),
				fmt.Sprintf("How do you debug issues in %s?", tech),
				fmt.Sprintf("Give an example project using %s.", tech),
			},
		})
	}

	if len(topics) == 0 {
		topics = []domain.Topic{genericTopic}
	}
	return &domain.QuestionSet{Topics: topics}
}
