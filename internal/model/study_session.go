package model

import (
	"time"
)

// StudySession is one contiguous stretch of study on a schedule item. Its
// duration feeds the learning-statistics time buckets.
type StudySession struct {
	ID             uint      `gorm:"primarykey" json:"id"`
	StudentID      uint      `json:"student_id" gorm:"not null;index"`
	ScheduleItemID uint      `json:"schedule_item_id" gorm:"not null;index"`
	StartedAt      time.Time `json:"started_at" gorm:"not null"`
	EndedAt        time.Time `json:"ended_at" gorm:"not null"`
	CreatedAt      time.Time `json:"created_at"`
}

// Duration is the session length; never negative.
func (s *StudySession) Duration() time.Duration {
	d := s.EndedAt.Sub(s.StartedAt)
	if d < 0 {
		return 0
	}
	return d
}
