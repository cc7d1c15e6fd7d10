package repository

import (
	"github.com/darsyar/darsyar/internal/model"
	"gorm.io/gorm"
)

type BlockAttemptRepository interface {
	Create(tx *gorm.DB, attempt *model.BlockAttempt) error
	FindAllByStudent(studentID uint) ([]model.BlockAttempt, error)
	FindAllByStudentAndBlock(studentID uint, scheduleItemID uint, blockID string) ([]model.BlockAttempt, error)
}

type blockAttemptRepository struct {
	db *gorm.DB
}

func NewBlockAttemptRepository(db *gorm.DB) BlockAttemptRepository {
	return &blockAttemptRepository{db: db}
}

// Create appends one attempt row. The recorder passes its transaction so the
// append and the statistics fold commit together; tx may be nil outside one.
func (r *blockAttemptRepository) Create(tx *gorm.DB, attempt *model.BlockAttempt) error {
	if tx == nil {
		tx = r.db
	}
	return tx.Create(attempt).Error
}

func (r *blockAttemptRepository) FindAllByStudent(studentID uint) ([]model.BlockAttempt, error) {
	var attempts []model.BlockAttempt
	if err := r.db.Where("student_id = ?", studentID).Order("created_at DESC").Find(&attempts).Error; err != nil {
		return nil, err
	}
	return attempts, nil
}

func (r *blockAttemptRepository) FindAllByStudentAndBlock(studentID uint, scheduleItemID uint, blockID string) ([]model.BlockAttempt, error) {
	var attempts []model.BlockAttempt
	err := r.db.
		Where("student_id = ? AND schedule_item_id = ? AND block_id = ?", studentID, scheduleItemID, blockID).
		Order("created_at DESC").
		Find(&attempts).Error
	if err != nil {
		return nil, err
	}
	return attempts, nil
}
