package repository

import (
	"github.com/darsyar/darsyar/internal/model"
	"gorm.io/gorm"
)

type StudySessionRepository interface {
	Create(session *model.StudySession) error
	FindAllByStudent(studentID uint) ([]model.StudySession, error)
}

type studySessionRepository struct {
	db *gorm.DB
}

func NewStudySessionRepository(db *gorm.DB) StudySessionRepository {
	return &studySessionRepository{db: db}
}

func (r *studySessionRepository) Create(session *model.StudySession) error {
	return r.db.Create(session).Error
}

func (r *studySessionRepository) FindAllByStudent(studentID uint) ([]model.StudySession, error) {
	var sessions []model.StudySession
	if err := r.db.Where("student_id = ?", studentID).Order("ended_at DESC").Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}
