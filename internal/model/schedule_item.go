package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Schedule item types.
const (
	ScheduleItemTypeExercise = "exercise"
	ScheduleItemTypeLesson   = "lesson"
	ScheduleItemTypeReview   = "review"
)

// ScheduleItem is one entry of a teaching plan with an authored content
// document attached. Content is opaque jsonb here; internal/content gives it
// a typed view.
type ScheduleItem struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	Title        string         `json:"title" gorm:"not null"`
	Type         string         `json:"type" gorm:"not null"` // "exercise", "lesson", "review"
	SubChapterID *uint          `json:"sub_chapter_id,omitempty" gorm:"index"`
	SubChapter   *SubChapter    `json:"sub_chapter,omitempty" gorm:"foreignKey:SubChapterID"`
	Order        int            `json:"order"`
	Content      datatypes.JSON `json:"content" gorm:"type:jsonb"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}
