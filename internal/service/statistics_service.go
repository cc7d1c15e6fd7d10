package service

import (
	"fmt"
	"sort"
	"time"

	"github.com/darsyar/darsyar/internal/dto"
	"github.com/darsyar/darsyar/internal/model"
	"github.com/darsyar/darsyar/internal/repository"
	"github.com/rs/zerolog/log"
)

// How many topics the dashboard shows per list.
const topicListLimit = 5

// StatisticsService builds the student-facing learning statistics view.
type StatisticsService interface {
	GetLearningStatistics(studentID uint) (*dto.LearningStatisticsDTO, error)
	RecordStudySession(studentID uint, req dto.StudySessionCreateDTO) error
}

type statisticsService struct {
	sessionRepo repository.StudySessionRepository
	attemptRepo repository.BlockAttemptRepository
	statsRepo   repository.BlockStatisticsRepository
	itemRepo    repository.ScheduleItemRepository
}

func NewStatisticsService(
	sessionRepo repository.StudySessionRepository,
	attemptRepo repository.BlockAttemptRepository,
	statsRepo repository.BlockStatisticsRepository,
	itemRepo repository.ScheduleItemRepository,
) StatisticsService {
	return &statisticsService{
		sessionRepo: sessionRepo,
		attemptRepo: attemptRepo,
		statsRepo:   statsRepo,
		itemRepo:    itemRepo,
	}
}

func (s *statisticsService) RecordStudySession(studentID uint, req dto.StudySessionCreateDTO) error {
	session := &model.StudySession{
		StudentID:      studentID,
		ScheduleItemID: req.ScheduleItemID,
		StartedAt:      req.StartedAt,
		EndedAt:        req.EndedAt,
	}
	if err := s.sessionRepo.Create(session); err != nil {
		log.Error().Err(err).Uint("studentID", studentID).Msg("RecordStudySession: repository error")
		return fmt.Errorf("error recording study session: %w", err)
	}
	return nil
}

// GetLearningStatistics fetches the student's whole history and folds it
// into the dashboard aggregate.
func (s *statisticsService) GetLearningStatistics(studentID uint) (*dto.LearningStatisticsDTO, error) {
	sessions, err := s.sessionRepo.FindAllByStudent(studentID)
	if err != nil {
		return nil, fmt.Errorf("error fetching study sessions: %w", err)
	}
	attempts, err := s.attemptRepo.FindAllByStudent(studentID)
	if err != nil {
		return nil, fmt.Errorf("error fetching attempts: %w", err)
	}
	blockStats, err := s.statsRepo.FindAllByStudent(studentID)
	if err != nil {
		return nil, fmt.Errorf("error fetching block statistics: %w", err)
	}

	topics, err := s.topicLookup(sessions, blockStats)
	if err != nil {
		return nil, err
	}

	stats := BuildLearningStatistics(time.Now(), sessions, attempts, blockStats, topics)
	return &stats, nil
}

// topicLookup maps every referenced schedule item to its sub-chapter.
func (s *statisticsService) topicLookup(sessions []model.StudySession, blockStats []model.BlockStatistics) (map[uint]model.SubChapter, error) {
	idSet := make(map[uint]bool)
	for _, ss := range sessions {
		idSet[ss.ScheduleItemID] = true
	}
	for _, bs := range blockStats {
		idSet[bs.ScheduleItemID] = true
	}
	ids := make([]uint, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}

	items, err := s.itemRepo.FindByIDs(ids)
	if err != nil {
		return nil, fmt.Errorf("error fetching schedule items for topics: %w", err)
	}
	topics := make(map[uint]model.SubChapter, len(items))
	for i := range items {
		if items[i].SubChapter != nil {
			topics[items[i].ID] = *items[i].SubChapter
		}
	}
	return topics, nil
}

// BuildLearningStatistics is a pure fold over already-fetched collections.
// An empty history degrades to zero-valued summaries.
func BuildLearningStatistics(
	now time.Time,
	sessions []model.StudySession,
	attempts []model.BlockAttempt,
	blockStats []model.BlockStatistics,
	topics map[uint]model.SubChapter,
) dto.LearningStatisticsDTO {
	return dto.LearningStatisticsDTO{
		StudyTime:     studyTimeSummary(now, sessions),
		Performance:   questionPerformance(attempts),
		RecentTopics:  recentTopics(sessions, topics, topicListLimit),
		WeakestTopics: weakestTopics(blockStats, topics, topicListLimit),
	}
}

func studyTimeSummary(now time.Time, sessions []model.StudySession) dto.StudyTimeSummaryDTO {
	var out dto.StudyTimeSummaryDTO

	today := truncateToDay(now)
	weekStart := startOfWeek(now)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	for i := range sessions {
		day := truncateToDay(sessions[i].EndedAt.In(now.Location()))
		minutes := int(sessions[i].Duration().Minutes())
		if !day.Before(monthStart) {
			out.ThisMonthMinutes += minutes
		}
		if !day.Before(weekStart) {
			out.ThisWeekMinutes += minutes
		}
		if day.Equal(today) {
			out.TodayMinutes += minutes
		}
	}
	return out
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// startOfWeek returns the Monday of t's week.
func startOfWeek(t time.Time) time.Time {
	day := truncateToDay(t)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

func questionPerformance(attempts []model.BlockAttempt) dto.QuestionPerformanceDTO {
	out := dto.QuestionPerformanceDTO{TotalAnswered: len(attempts)}
	for i := range attempts {
		if attempts[i].IsCorrect {
			out.CorrectAnswers++
		}
	}
	out.IncorrectAnswers = out.TotalAnswered - out.CorrectAnswers
	if out.TotalAnswered > 0 {
		out.AccuracyPercentage = float64(out.CorrectAnswers) / float64(out.TotalAnswered) * 100
	}
	return out
}

func recentTopics(sessions []model.StudySession, topics map[uint]model.SubChapter, limit int) []dto.RecentTopicDTO {
	latest := make(map[uint]time.Time) // sub-chapter id -> most recent endedAt
	titles := make(map[uint]string)
	for i := range sessions {
		sc, ok := topics[sessions[i].ScheduleItemID]
		if !ok {
			continue
		}
		if sessions[i].EndedAt.After(latest[sc.ID]) {
			latest[sc.ID] = sessions[i].EndedAt
		}
		titles[sc.ID] = sc.Title
	}

	out := make([]dto.RecentTopicDTO, 0, len(latest))
	for id, at := range latest {
		out = append(out, dto.RecentTopicDTO{SubChapterID: id, Title: titles[id], LastStudiedAt: at})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].LastStudiedAt.Equal(out[j].LastStudiedAt) {
			return out[i].SubChapterID < out[j].SubChapterID
		}
		return out[i].LastStudiedAt.After(out[j].LastStudiedAt)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func weakestTopics(blockStats []model.BlockStatistics, topics map[uint]model.SubChapter, limit int) []dto.WeakTopicDTO {
	type agg struct {
		title     string
		correct   int
		incorrect int
	}
	byTopic := make(map[uint]*agg)
	for i := range blockStats {
		sc, ok := topics[blockStats[i].ScheduleItemID]
		if !ok {
			continue
		}
		a := byTopic[sc.ID]
		if a == nil {
			a = &agg{title: sc.Title}
			byTopic[sc.ID] = a
		}
		a.correct += blockStats[i].CorrectCount
		a.incorrect += blockStats[i].IncorrectCount
	}

	out := make([]dto.WeakTopicDTO, 0, len(byTopic))
	for id, a := range byTopic {
		if a.incorrect == 0 {
			continue
		}
		rate := 0.0
		if total := a.correct + a.incorrect; total > 0 {
			rate = float64(a.correct) / float64(total)
		}
		out = append(out, dto.WeakTopicDTO{
			SubChapterID:      id,
			Title:             a.title,
			IncorrectAttempts: a.incorrect,
			SuccessRate:       rate,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].IncorrectAttempts == out[j].IncorrectAttempts {
			return out[i].SubChapterID < out[j].SubChapterID
		}
		return out[i].IncorrectAttempts > out[j].IncorrectAttempts
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
