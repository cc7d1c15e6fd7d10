package repository

import (
	"github.com/darsyar/darsyar/internal/model"
	"gorm.io/gorm"
)

type ScheduleItemRepository interface {
	Create(item *model.ScheduleItem) error
	FindByID(id uint) (*model.ScheduleItem, error)
	FindByIDs(ids []uint) ([]model.ScheduleItem, error)
	FindAll() ([]model.ScheduleItem, error)
	Update(item *model.ScheduleItem) error
}

type scheduleItemRepository struct {
	db *gorm.DB
}

func NewScheduleItemRepository(db *gorm.DB) ScheduleItemRepository {
	return &scheduleItemRepository{db: db}
}

func (r *scheduleItemRepository) Create(item *model.ScheduleItem) error {
	return r.db.Create(item).Error
}

func (r *scheduleItemRepository) FindByID(id uint) (*model.ScheduleItem, error) {
	var item model.ScheduleItem
	if err := r.db.Preload("SubChapter").First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *scheduleItemRepository) FindByIDs(ids []uint) ([]model.ScheduleItem, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var items []model.ScheduleItem
	if err := r.db.Preload("SubChapter").Where("id IN ?", ids).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *scheduleItemRepository) FindAll() ([]model.ScheduleItem, error) {
	var items []model.ScheduleItem
	if err := r.db.Preload("SubChapter").Order("\"order\" ASC, created_at DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *scheduleItemRepository) Update(item *model.ScheduleItem) error {
	return r.db.Save(item).Error
}
