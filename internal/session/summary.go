package session

import "time"

// Report holds the data displayed on the report card.
type Report struct {
	SessionID string
	TopicID   string
	Score     int
	Total     int
	Accuracy  float64
	Tier      Tier
	Duration  time.Duration
	Answers   []AnswerRecord
}

// BuildReport creates a Report from a complete session.
func BuildReport(s *ChallengeSession) (*Report, error) {
	if s.Phase() != PhaseComplete {
		return nil, ErrNotComplete
	}

	score, total := s.Score(), s.Total()
	var accuracy float64
	if total > 0 {
		accuracy = float64(score) / float64(total)
	}

	answers := make([]AnswerRecord, len(s.Answers))
	copy(answers, s.Answers)

	return &Report{
		SessionID: s.ID,
		TopicID:   s.TopicID,
		Score:     score,
		Total:     total,
		Accuracy:  accuracy,
		Tier:      TierFor(score),
		Duration:  s.CompletedAt.Sub(s.StartedAt),
		Answers:   answers,
	}, nil
}
