package model

import (
	"time"

	"gorm.io/datatypes"
)

// BlockAttempt is one graded submission for one block. Rows are append-only;
// they are created by the attempt recorder and never mutated.
type BlockAttempt struct {
	ID               uint           `gorm:"primarykey" json:"id"`
	ScheduleItemID   uint           `json:"schedule_item_id" gorm:"not null;index"`
	ScheduleItemType string         `json:"schedule_item_type" gorm:"not null"`
	BlockID          string         `json:"block_id" gorm:"not null;index"`
	StudentID        uint           `json:"student_id" gorm:"not null;index"`
	SubmittedAnswer  datatypes.JSON `json:"submitted_answer" gorm:"type:jsonb"`
	Result           datatypes.JSON `json:"result" gorm:"type:jsonb"`
	IsCorrect        bool           `json:"is_correct"`
	PointsEarned     float64        `json:"points_earned"`
	MaxPoints        float64        `json:"max_points"`
	CreatedAt        time.Time      `json:"created_at"`
}
