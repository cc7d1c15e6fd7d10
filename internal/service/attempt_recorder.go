package service

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/darsyar/darsyar/internal/grading"
	"github.com/darsyar/darsyar/internal/model"
	"github.com/darsyar/darsyar/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// AttemptRecorder converts one graded result into an immutable attempt row
// and folds it into the student's per-block statistics. It always appends;
// deduplication across caller retries is not its job.
type AttemptRecorder interface {
	Record(studentID uint, item *model.ScheduleItem, blockID string, submission grading.Submission, result grading.Result, now time.Time) (*model.BlockAttempt, *model.BlockStatistics, error)
}

type attemptRecorder struct {
	attemptRepo repository.BlockAttemptRepository
	statsRepo   repository.BlockStatisticsRepository
	db          *gorm.DB
}

func NewAttemptRecorder(
	attemptRepo repository.BlockAttemptRepository,
	statsRepo repository.BlockStatisticsRepository,
	db *gorm.DB,
) AttemptRecorder {
	return &attemptRecorder{attemptRepo: attemptRepo, statsRepo: statsRepo, db: db}
}

// Record appends the attempt and applies the statistics fold in one
// transaction, so the counters can never drift from the attempt log.
func (r *attemptRecorder) Record(studentID uint, item *model.ScheduleItem, blockID string, submission grading.Submission, result grading.Result, now time.Time) (*model.BlockAttempt, *model.BlockStatistics, error) {
	submittedJSON, err := json.Marshal(submission)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal submitted answer: %w", err)
	}
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal grading result: %w", err)
	}

	attempt := &model.BlockAttempt{
		ScheduleItemID:   item.ID,
		ScheduleItemType: item.Type,
		BlockID:          blockID,
		StudentID:        studentID,
		SubmittedAnswer:  submittedJSON,
		Result:           resultJSON,
		IsCorrect:        result.IsCorrect,
		PointsEarned:     result.PointsEarned,
		MaxPoints:        result.MaxPoints,
		CreatedAt:        now,
	}

	var stats *model.BlockStatistics
	err = r.db.Transaction(func(tx *gorm.DB) error {
		if err := r.attemptRepo.Create(tx, attempt); err != nil {
			return fmt.Errorf("append attempt: %w", err)
		}
		s, err := r.statsRepo.GetOrCreate(tx, studentID, item.ID, item.Type, blockID)
		if err != nil {
			return fmt.Errorf("get or create block statistics: %w", err)
		}
		s.RecordAttempt(result.IsCorrect, now)
		if err := r.statsRepo.Update(tx, s); err != nil {
			return fmt.Errorf("update block statistics: %w", err)
		}
		stats = s
		return nil
	})
	if err != nil {
		log.Error().Err(err).Uint("studentID", studentID).Str("blockID", blockID).Msg("Failed to record attempt")
		return nil, nil, err
	}
	return attempt, stats, nil
}
