package service

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/darsyar/darsyar/internal/content"
	"github.com/darsyar/darsyar/internal/dto"
	"github.com/darsyar/darsyar/internal/model"
	"github.com/darsyar/darsyar/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// ScheduleItemService is the teacher-facing authoring surface.
type ScheduleItemService interface {
	Create(req dto.ScheduleItemCreateDTO) (*dto.ScheduleItemResponseDTO, error)
	GetByID(id uint) (*dto.ScheduleItemResponseDTO, error)
	GetAll() ([]dto.ScheduleItemSummaryDTO, error)
}

type scheduleItemService struct {
	itemRepo repository.ScheduleItemRepository
}

func NewScheduleItemService(itemRepo repository.ScheduleItemRepository) ScheduleItemService {
	return &scheduleItemService{itemRepo: itemRepo}
}

// Create validates the content document, backfills missing ids and persists
// the schedule item. Content that does not parse is rejected up front so a
// published item is always gradeable.
func (s *scheduleItemService) Create(req dto.ScheduleItemCreateDTO) (*dto.ScheduleItemResponseDTO, error) {
	doc, err := content.Parse(req.Content)
	if err != nil {
		return nil, err
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	doc.EnsureIDs()

	normalized, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("error serializing content document: %w", err)
	}

	item := model.ScheduleItem{
		Title:        req.Title,
		Type:         req.Type,
		SubChapterID: req.SubChapterID,
		Order:        req.Order,
		Content:      normalized,
	}
	if err := s.itemRepo.Create(&item); err != nil {
		log.Error().Err(err).Msg("Failed to create schedule item in database")
		return nil, fmt.Errorf("database error creating schedule item: %w", err)
	}

	created, err := s.itemRepo.FindByID(item.ID)
	if err != nil {
		log.Error().Err(err).Uint("scheduleItemID", item.ID).Msg("Failed to reload created schedule item")
		return toScheduleItemResponse(&item), nil
	}
	return toScheduleItemResponse(created), nil
}

func (s *scheduleItemService) GetByID(id uint) (*dto.ScheduleItemResponseDTO, error) {
	item, err := s.itemRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: id %d", ErrScheduleItemNotFound, id)
		}
		log.Error().Err(err).Uint("scheduleItemID", id).Msg("GetByID: repository error")
		return nil, fmt.Errorf("error fetching schedule item %d: %w", id, err)
	}
	return toScheduleItemResponse(item), nil
}

func (s *scheduleItemService) GetAll() ([]dto.ScheduleItemSummaryDTO, error) {
	items, err := s.itemRepo.FindAll()
	if err != nil {
		log.Error().Err(err).Msg("GetAll: repository error")
		return nil, fmt.Errorf("error fetching schedule items: %w", err)
	}

	dtos := make([]dto.ScheduleItemSummaryDTO, 0, len(items))
	for i := range items {
		summary := dto.ScheduleItemSummaryDTO{
			ID:        items[i].ID,
			Title:     items[i].Title,
			Type:      items[i].Type,
			Order:     items[i].Order,
			CreatedAt: items[i].CreatedAt,
		}
		if items[i].SubChapter != nil {
			summary.SubChapterTitle = items[i].SubChapter.Title
		}
		if doc, err := content.Parse(items[i].Content); err == nil {
			summary.BlockCount = len(doc.Blocks)
		}
		dtos = append(dtos, summary)
	}
	return dtos, nil
}

func toScheduleItemResponse(item *model.ScheduleItem) *dto.ScheduleItemResponseDTO {
	resp := &dto.ScheduleItemResponseDTO{
		ID:           item.ID,
		Title:        item.Title,
		Type:         item.Type,
		SubChapterID: item.SubChapterID,
		Order:        item.Order,
		Content:      json.RawMessage(item.Content),
		CreatedAt:    item.CreatedAt,
	}
	if item.SubChapter != nil {
		resp.SubChapterTitle = item.SubChapter.Title
	}
	return resp
}
