package domain

// DashboardStats summarises a learner's progress.
// DailyStudyMinutes is keyed by UTC date in YYYY-MM-DD form.
type DashboardStats struct {
	TotalCards        int                `json:"total_cards"`
	TotalSessions     int                `json:"total_sessions"`
	TotalStudyMinutes float64            `json:"total_study_minutes"`
	AverageAccuracy   float64            `json:"average_accuracy"`
	LongestStreak     int                `json:"longest_streak"`
	CurrentStreak     int                `json:"current_streak"`
	CardsDueForReview int                `json:"cards_due_for_review"`
	Topics            []string           `json:"topics"`
	DailyStudyMinutes map[string]float64 `json:"daily_study_minutes"`
	AccuracyByTopic   map[string]float64 `json:"accuracy_by_topic"`
}

// TopicAccuracy is the raw correct/total tally for one topic.
type TopicAccuracy struct {
	Topic   string
	Correct int
	Total   int
}

// Accuracy returns Correct/Total, or 0 when there are no attempts.
func (t TopicAccuracy) Accuracy() float64 {
	if t.Total == 0 {
		return 0
	}
	return float64(t.Correct) / float64(t.Total)
}
