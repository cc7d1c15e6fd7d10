package repository

import (
	"github.com/darsyar/darsyar/internal/model"
	"gorm.io/gorm"
)

type BlockStatisticsRepository interface {
	GetOrCreate(tx *gorm.DB, studentID uint, scheduleItemID uint, scheduleItemType string, blockID string) (*model.BlockStatistics, error)
	Update(tx *gorm.DB, stats *model.BlockStatistics) error
	FindAllByStudent(studentID uint) ([]model.BlockStatistics, error)
}

type blockStatisticsRepository struct {
	db *gorm.DB
}

func NewBlockStatisticsRepository(db *gorm.DB) BlockStatisticsRepository {
	return &blockStatisticsRepository{db: db}
}

// GetOrCreate returns the statistics row for (student, schedule item, block),
// creating it with zero counters when absent. FirstOrCreate plus the unique
// index on the key keeps row creation idempotent under concurrent attempts.
func (r *blockStatisticsRepository) GetOrCreate(tx *gorm.DB, studentID uint, scheduleItemID uint, scheduleItemType string, blockID string) (*model.BlockStatistics, error) {
	if tx == nil {
		tx = r.db
	}
	var stats model.BlockStatistics
	err := tx.
		Where(model.BlockStatistics{
			StudentID:      studentID,
			ScheduleItemID: scheduleItemID,
			BlockID:        blockID,
		}).
		Attrs(model.BlockStatistics{ScheduleItemType: scheduleItemType}).
		FirstOrCreate(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *blockStatisticsRepository) Update(tx *gorm.DB, stats *model.BlockStatistics) error {
	if tx == nil {
		tx = r.db
	}
	return tx.Save(stats).Error
}

func (r *blockStatisticsRepository) FindAllByStudent(studentID uint) ([]model.BlockStatistics, error) {
	var stats []model.BlockStatistics
	if err := r.db.Where("student_id = ?", studentID).Find(&stats).Error; err != nil {
		return nil, err
	}
	return stats, nil
}
