package dto

import "time"

// StudySessionCreateDTO records one study session for the statistics view.
type StudySessionCreateDTO struct {
	ScheduleItemID uint      `json:"schedule_item_id" binding:"required"`
	StartedAt      time.Time `json:"started_at" binding:"required"`
	EndedAt        time.Time `json:"ended_at" binding:"required,gtfield=StartedAt"`
}

// StudyTimeSummaryDTO buckets studied minutes by calendar period.
type StudyTimeSummaryDTO struct {
	TodayMinutes     int `json:"today_minutes"`
	ThisWeekMinutes  int `json:"this_week_minutes"`
	ThisMonthMinutes int `json:"this_month_minutes"`
}

// QuestionPerformanceDTO summarizes answer accuracy across all attempts.
type QuestionPerformanceDTO struct {
	TotalAnswered      int     `json:"total_answered"`
	CorrectAnswers     int     `json:"correct_answers"`
	IncorrectAnswers   int     `json:"incorrect_answers"`
	AccuracyPercentage float64 `json:"accuracy_percentage"`
}

// RecentTopicDTO is a recently studied sub-chapter.
type RecentTopicDTO struct {
	SubChapterID  uint      `json:"sub_chapter_id"`
	Title         string    `json:"title"`
	LastStudiedAt time.Time `json:"last_studied_at"`
}

// WeakTopicDTO is a sub-chapter ranked by how often the student answers its
// blocks incorrectly.
type WeakTopicDTO struct {
	SubChapterID      uint    `json:"sub_chapter_id"`
	Title             string  `json:"title"`
	IncorrectAttempts int     `json:"incorrect_attempts"`
	SuccessRate       float64 `json:"success_rate"`
}

// LearningStatisticsDTO is the dashboard-ready aggregate for one student.
type LearningStatisticsDTO struct {
	StudyTime     StudyTimeSummaryDTO    `json:"study_time"`
	Performance   QuestionPerformanceDTO `json:"performance"`
	RecentTopics  []RecentTopicDTO       `json:"recent_topics"`
	WeakestTopics []WeakTopicDTO         `json:"weakest_topics"`
}
