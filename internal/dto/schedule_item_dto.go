package dto

import (
	"encoding/json"
	"time"
)

// ScheduleItemCreateDTO is for a teacher publishing a schedule item with its
// content document. Content is passed through opaque; the service parses and
// validates it.
type ScheduleItemCreateDTO struct {
	Title        string          `json:"title" binding:"required"`
	Type         string          `json:"type" binding:"required,oneof=exercise lesson review"`
	SubChapterID *uint           `json:"sub_chapter_id"`
	Order        int             `json:"order"`
	Content      json.RawMessage `json:"content" binding:"required"`
}

// ScheduleItemResponseDTO is the full view of a schedule item including its
// content document.
type ScheduleItemResponseDTO struct {
	ID              uint            `json:"id"`
	Title           string          `json:"title"`
	Type            string          `json:"type"`
	SubChapterID    *uint           `json:"sub_chapter_id,omitempty"`
	SubChapterTitle string          `json:"sub_chapter_title,omitempty"`
	Order           int             `json:"order"`
	Content         json.RawMessage `json:"content"`
	CreatedAt       time.Time       `json:"created_at"`
}

// ScheduleItemSummaryDTO is for listing schedule items without content.
type ScheduleItemSummaryDTO struct {
	ID              uint      `json:"id"`
	Title           string    `json:"title"`
	Type            string    `json:"type"`
	SubChapterTitle string    `json:"sub_chapter_title,omitempty"`
	Order           int       `json:"order"`
	BlockCount      int       `json:"block_count"`
	CreatedAt       time.Time `json:"created_at"`
}
