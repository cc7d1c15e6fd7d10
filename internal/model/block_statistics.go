package model

import (
	"time"
)

// BlockStatistics is the mastery aggregate for one student on one block.
// One row per (student, schedule item, block); created lazily on the first
// attempt and mutated only through RecordAttempt.
type BlockStatistics struct {
	ID               uint       `gorm:"primarykey" json:"id"`
	ScheduleItemID   uint       `json:"schedule_item_id" gorm:"not null;uniqueIndex:idx_block_stats_key"`
	ScheduleItemType string     `json:"schedule_item_type" gorm:"not null"`
	BlockID          string     `json:"block_id" gorm:"not null;uniqueIndex:idx_block_stats_key"`
	StudentID        uint       `json:"student_id" gorm:"not null;uniqueIndex:idx_block_stats_key"`
	CorrectCount     int        `json:"correct_count"`
	IncorrectCount   int        `json:"incorrect_count"`
	CurrentStreak    int        `json:"current_streak"`
	BestStreak       int        `json:"best_streak"`
	LastAttemptAt    *time.Time `json:"last_attempt_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// RecordAttempt folds one graded result into the aggregate. The streak
// resets on an incorrect attempt and increments on a correct one; the best
// streak never decreases.
func (s *BlockStatistics) RecordAttempt(isCorrect bool, at time.Time) {
	if isCorrect {
		s.CorrectCount++
		s.CurrentStreak++
		if s.CurrentStreak > s.BestStreak {
			s.BestStreak = s.CurrentStreak
		}
	} else {
		s.IncorrectCount++
		s.CurrentStreak = 0
	}
	s.LastAttemptAt = &at
}

// TotalAttempts is the number of recorded attempts.
func (s *BlockStatistics) TotalAttempts() int {
	return s.CorrectCount + s.IncorrectCount
}

// SuccessRate is the fraction of attempts answered correctly, 0 when the
// block was never attempted.
func (s *BlockStatistics) SuccessRate() float64 {
	total := s.TotalAttempts()
	if total == 0 {
		return 0
	}
	return float64(s.CorrectCount) / float64(total)
}
