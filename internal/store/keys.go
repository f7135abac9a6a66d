package store

// Well-known state keys. Every durable piece of learner state lives
// under one of these.
const (
	KeySessionHistory = "session_history"
	KeyDomainStats    = "domain_stats"
	KeyQuestionStats  = "question_stats"
	KeyBookmarks      = "bookmarked_ids"
	KeyMissed         = "missed_ids"
	KeyDarkMode       = "dark_mode"
	KeyExamDate       = "exam_date"
	KeyStudyPlan      = "study_plan"
	KeyAdaptiveMode   = "adaptive_mode"
)
