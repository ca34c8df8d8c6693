package domain

// Topic is one technology with its ordered screening questions.
type Topic struct {
	Name      string   `json:"topic"`
	Questions []string `json:"questions"`
}

// QuestionSet is the generated two-level question plan for a session.
// Generated once, immutable afterwards.
type QuestionSet struct {
	Topics []Topic `json:"questions"`
}

// Empty reports whether the set holds no askable question.
func (qs *QuestionSet) Empty() bool {
	if qs == nil || len(qs.Topics) == 0 {
		return true
	}
	for _, t := range qs.Topics {
		if len(t.Questions) > 0 {
			return false
		}
	}
	return true
}

// Compact drops topics that carry no questions. The cursor contract
// assumes every remaining topic has at least one askable question.
func (qs *QuestionSet) Compact() {
	if qs == nil {
		return
	}
	kept := qs.Topics[:0]
	for _, t := range qs.Topics {
		if len(t.Questions) > 0 {
			kept = append(kept, t)
		}
	}
	qs.Topics = kept
}

// Cursor addresses one question inside a QuestionSet. TopicIndex equal to
// the topic count signals exhaustion.
type Cursor struct {
	TopicIndex    int `json:"topic_index"`
	QuestionIndex int `json:"question_index"`
}

// Exhausted reports whether the cursor has walked past the last topic.
func (c Cursor) Exhausted(qs *QuestionSet) bool {
	return qs == nil || c.TopicIndex >= len(qs.Topics)
}

// Current returns the topic and question the cursor points at.
func (c Cursor) Current(qs *QuestionSet) (topic, question string, ok bool) {
	if c.Exhausted(qs) {
		return "", "", false
	}
	t := qs.Topics[c.TopicIndex]
	if c.QuestionIndex >= len(t.Questions) {
		return t.Name, "", false
	}
	return t.Name, t.Questions[c.QuestionIndex], true
}

// Advance moves to the next question, rolling over to the next topic when
// the current one is finished.
func (c Cursor) Advance(qs *QuestionSet) Cursor {
	if c.Exhausted(qs) {
		return c
	}
	next := Cursor{TopicIndex: c.TopicIndex, QuestionIndex: c.QuestionIndex + 1}
	if next.QuestionIndex >= len(qs.Topics[next.TopicIndex].Questions) {
		next.QuestionIndex = 0
		next.TopicIndex++
	}
	return next
}
