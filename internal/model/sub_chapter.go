package model

import (
	"time"

	"gorm.io/gorm"
)

// SubChapter is the topic a schedule item is assigned to. Chapter and course
// CRUD live elsewhere; statistics only need the topic identity and title.
type SubChapter struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	ChapterID uint           `json:"chapter_id" gorm:"index"`
	Title     string         `json:"title" gorm:"not null"`
	Order     int            `json:"order"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
