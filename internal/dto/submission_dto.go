package dto

import "time"

// BlockSubmissionDTO is a student's answer for one block. Answer is the
// type-specific payload; for gap-fill it carries the "blanks" collection.
type BlockSubmissionDTO struct {
	StudentID uint                   `json:"student_id" binding:"required"`
	Answer    map[string]interface{} `json:"answer" binding:"required"`
}

// GradingResultDTO mirrors the validator's outcome.
type GradingResultDTO struct {
	IsCorrect    bool     `json:"is_correct"`
	PointsEarned float64  `json:"points_earned"`
	MaxPoints    float64  `json:"max_points"`
	NeedsReview  bool     `json:"needs_review,omitempty"`
	Feedback     []string `json:"feedback,omitempty"`
}

// BlockStatisticsDTO is the per-block mastery aggregate after the attempt
// was folded in.
type BlockStatisticsDTO struct {
	CorrectCount   int        `json:"correct_count"`
	IncorrectCount int        `json:"incorrect_count"`
	CurrentStreak  int        `json:"current_streak"`
	BestStreak     int        `json:"best_streak"`
	SuccessRate    float64    `json:"success_rate"`
	LastAttemptAt  *time.Time `json:"last_attempt_at,omitempty"`
}

// SubmissionResultDTO is the response to a block submission.
type SubmissionResultDTO struct {
	AttemptID  uint               `json:"attempt_id"`
	BlockID    string             `json:"block_id"`
	Result     GradingResultDTO   `json:"result"`
	Statistics BlockStatisticsDTO `json:"statistics"`
}

// BlockAttemptDTO is one row of a student's attempt history for a block.
type BlockAttemptDTO struct {
	ID           uint      `json:"id"`
	BlockID      string    `json:"block_id"`
	IsCorrect    bool      `json:"is_correct"`
	PointsEarned float64   `json:"points_earned"`
	MaxPoints    float64   `json:"max_points"`
	CreatedAt    time.Time `json:"created_at"`
}
