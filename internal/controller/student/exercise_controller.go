package student

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/darsyar/darsyar/internal/content"
	"github.com/darsyar/darsyar/internal/dto"
	"github.com/darsyar/darsyar/internal/grading"
	"github.com/darsyar/darsyar/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type ExerciseController struct {
	scheduleItemService service.ScheduleItemService
	submissionService   service.SubmissionService
	statisticsService   service.StatisticsService
}

func NewExerciseController(
	sis service.ScheduleItemService,
	sub service.SubmissionService,
	stats service.StatisticsService,
) *ExerciseController {
	return &ExerciseController{
		scheduleItemService: sis,
		submissionService:   sub,
		statisticsService:   stats,
	}
}

// GetAllScheduleItems godoc
// @Summary (Student) List schedule items
// @Description Lists schedule items with block counts, without full content.
// @Tags Student - Exercises
// @Produce json
// @Success 200 {array} dto.ScheduleItemSummaryDTO
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /schedule-items [get]
func (c *ExerciseController) GetAllScheduleItems(ctx *gin.Context) {
	items, err := c.scheduleItemService.GetAll()
	if err != nil {
		log.Error().Err(err).Msg("GetAllScheduleItems: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to retrieve schedule items", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, items)
}

// GetScheduleItem godoc
// @Summary (Student) Get a schedule item with its content document
// @Tags Student - Exercises
// @Produce json
// @Param item_id path int true "Schedule item ID"
// @Success 200 {object} dto.ScheduleItemResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid schedule item ID"
// @Failure 404 {object} dto.ErrorResponse "Schedule item not found"
// @Router /schedule-items/{item_id} [get]
func (c *ExerciseController) GetScheduleItem(ctx *gin.Context) {
	itemID, ok := parseUintParam(ctx, "item_id")
	if !ok {
		return
	}
	item, err := c.scheduleItemService.GetByID(itemID)
	if err != nil {
		if errors.Is(err, service.ErrScheduleItemNotFound) {
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "Schedule item not found"})
			return
		}
		log.Error().Err(err).Uint("scheduleItemID", itemID).Msg("GetScheduleItem: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to retrieve schedule item", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, item)
}

// SubmitBlockAnswer godoc
// @Summary (Student) Submit an answer for one block
// @Description Grades the submitted answer against the block's authored content, records the attempt and returns the result with updated statistics.
// @Tags Student - Exercises
// @Accept json
// @Produce json
// @Param item_id path int true "Schedule item ID"
// @Param block_id path string true "Block ID inside the content document"
// @Param submission body dto.BlockSubmissionDTO true "Student ID and type-specific answer payload"
// @Success 200 {object} dto.SubmissionResultDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid input or unusable submission payload"
// @Failure 404 {object} dto.ErrorResponse "Schedule item or block not found"
// @Failure 500 {object} dto.ErrorResponse "Error processing submission"
// @Router /schedule-items/{item_id}/blocks/{block_id}/submissions [post]
func (c *ExerciseController) SubmitBlockAnswer(ctx *gin.Context) {
	itemID, ok := parseUintParam(ctx, "item_id")
	if !ok {
		return
	}
	blockID := ctx.Param("block_id")

	var req dto.BlockSubmissionDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("SubmitBlockAnswer: failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	result, err := c.submissionService.SubmitBlockAnswer(req.StudentID, itemID, blockID, req.Answer)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrScheduleItemNotFound), errors.Is(err, content.ErrBlockNotFound):
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
		case errors.Is(err, grading.ErrInvalidSubmission):
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Submission payload is not usable", Details: []string{err.Error()}})
		default:
			log.Error().Err(err).Uint("scheduleItemID", itemID).Str("blockID", blockID).Msg("SubmitBlockAnswer: service error")
			ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to process submission", Details: []string{err.Error()}})
		}
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// GetBlockAttempts godoc
// @Summary (Student) List own attempts for one block
// @Tags Student - Exercises
// @Produce json
// @Param item_id path int true "Schedule item ID"
// @Param block_id path string true "Block ID"
// @Param student_id query int true "Student ID"
// @Success 200 {array} dto.BlockAttemptDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid ID format"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /schedule-items/{item_id}/blocks/{block_id}/my-attempts [get]
func (c *ExerciseController) GetBlockAttempts(ctx *gin.Context) {
	itemID, ok := parseUintParam(ctx, "item_id")
	if !ok {
		return
	}
	blockID := ctx.Param("block_id")

	studentID, err := strconv.ParseUint(ctx.Query("student_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid Student ID format in query"})
		return
	}

	attempts, err := c.submissionService.GetBlockAttempts(uint(studentID), itemID, blockID)
	if err != nil {
		log.Error().Err(err).Msg("GetBlockAttempts: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to retrieve attempts", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, attempts)
}

// GetLearningStatistics godoc
// @Summary (Student) Learning statistics dashboard
// @Description Study time buckets, answer accuracy, recently studied topics and weakest topics.
// @Tags Student - Statistics
// @Produce json
// @Param student_id path int true "Student ID"
// @Success 200 {object} dto.LearningStatisticsDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid Student ID format"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students/{student_id}/learning-statistics [get]
func (c *ExerciseController) GetLearningStatistics(ctx *gin.Context) {
	studentID, ok := parseUintParam(ctx, "student_id")
	if !ok {
		return
	}
	stats, err := c.statisticsService.GetLearningStatistics(studentID)
	if err != nil {
		log.Error().Err(err).Uint("studentID", studentID).Msg("GetLearningStatistics: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to build learning statistics", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, stats)
}

// RecordStudySession godoc
// @Summary (Student) Record a study session
// @Tags Student - Statistics
// @Accept json
// @Produce json
// @Param student_id path int true "Student ID"
// @Param session body dto.StudySessionCreateDTO true "Session start and end"
// @Success 201 {object} nil
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students/{student_id}/study-sessions [post]
func (c *ExerciseController) RecordStudySession(ctx *gin.Context) {
	studentID, ok := parseUintParam(ctx, "student_id")
	if !ok {
		return
	}
	var req dto.StudySessionCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("RecordStudySession: failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	if err := c.statisticsService.RecordStudySession(studentID, req); err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to record study session", Details: []string{err.Error()}})
		return
	}
	ctx.Status(http.StatusCreated)
}

func parseUintParam(ctx *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid " + name + " format"})
		return 0, false
	}
	return uint(v), true
}
