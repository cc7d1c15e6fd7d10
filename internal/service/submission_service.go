package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/darsyar/darsyar/internal/content"
	"github.com/darsyar/darsyar/internal/dto"
	"github.com/darsyar/darsyar/internal/grading"
	"github.com/darsyar/darsyar/internal/repository"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// SubmissionService is the grading entry point: one submission in, one
// graded result plus updated statistics out.
type SubmissionService interface {
	SubmitBlockAnswer(studentID uint, scheduleItemID uint, blockID string, answer map[string]interface{}) (*dto.SubmissionResultDTO, error)
	GetBlockAttempts(studentID uint, scheduleItemID uint, blockID string) ([]dto.BlockAttemptDTO, error)
}

type submissionService struct {
	itemRepo    repository.ScheduleItemRepository
	attemptRepo repository.BlockAttemptRepository
	grader      grading.Grader
	recorder    AttemptRecorder
}

func NewSubmissionService(
	itemRepo repository.ScheduleItemRepository,
	attemptRepo repository.BlockAttemptRepository,
	grader grading.Grader,
	recorder AttemptRecorder,
) SubmissionService {
	return &submissionService{
		itemRepo:    itemRepo,
		attemptRepo: attemptRepo,
		grader:      grader,
		recorder:    recorder,
	}
}

// SubmitBlockAnswer fetches the owning schedule item's content, grades the
// answer against the requested block and records the attempt.
func (s *submissionService) SubmitBlockAnswer(studentID uint, scheduleItemID uint, blockID string, answer map[string]interface{}) (*dto.SubmissionResultDTO, error) {
	item, err := s.itemRepo.FindByID(scheduleItemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: id %d", ErrScheduleItemNotFound, scheduleItemID)
		}
		log.Error().Err(err).Uint("scheduleItemID", scheduleItemID).Msg("SubmitBlockAnswer: schedule item lookup failed")
		return nil, fmt.Errorf("error fetching schedule item %d: %w", scheduleItemID, err)
	}

	doc, err := content.Parse(item.Content)
	if err != nil {
		// Authored data is broken. Log it as an integrity issue but surface
		// the item as not found to the grading caller.
		log.Error().Err(err).Uint("scheduleItemID", scheduleItemID).Msg("SubmitBlockAnswer: content document is malformed")
		return nil, fmt.Errorf("%w: id %d: %v", ErrScheduleItemNotFound, scheduleItemID, err)
	}

	block, err := doc.FindBlock(blockID)
	if err != nil {
		return nil, fmt.Errorf("%w: %q in schedule item %d", content.ErrBlockNotFound, blockID, scheduleItemID)
	}

	result, err := s.grader.Grade(block, grading.Submission(answer))
	if err != nil {
		return nil, err
	}

	attempt, stats, err := s.recorder.Record(studentID, item, blockID, grading.Submission(answer), result, time.Now())
	if err != nil {
		return nil, fmt.Errorf("error recording attempt: %w", err)
	}

	resp := &dto.SubmissionResultDTO{
		AttemptID: attempt.ID,
		BlockID:   blockID,
	}
	if err := copier.Copy(&resp.Result, &result); err != nil {
		return nil, fmt.Errorf("error preparing result response: %w", err)
	}
	if err := copier.Copy(&resp.Statistics, stats); err != nil {
		return nil, fmt.Errorf("error preparing statistics response: %w", err)
	}
	resp.Statistics.SuccessRate = stats.SuccessRate()
	return resp, nil
}

// GetBlockAttempts lists a student's attempt history for one block, newest
// first.
func (s *submissionService) GetBlockAttempts(studentID uint, scheduleItemID uint, blockID string) ([]dto.BlockAttemptDTO, error) {
	attempts, err := s.attemptRepo.FindAllByStudentAndBlock(studentID, scheduleItemID, blockID)
	if err != nil {
		log.Error().Err(err).Uint("studentID", studentID).Str("blockID", blockID).Msg("GetBlockAttempts: repository error")
		return nil, fmt.Errorf("error fetching attempts: %w", err)
	}
	dtos := make([]dto.BlockAttemptDTO, 0, len(attempts))
	for i := range attempts {
		var d dto.BlockAttemptDTO
		if err := copier.Copy(&d, &attempts[i]); err != nil {
			log.Error().Err(err).Uint("attemptID", attempts[i].ID).Msg("GetBlockAttempts: copy to DTO failed")
			continue
		}
		dtos = append(dtos, d)
	}
	return dtos, nil
}
