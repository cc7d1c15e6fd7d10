package teacher

import (
	"errors"
	"net/http"

	"github.com/darsyar/darsyar/internal/content"
	"github.com/darsyar/darsyar/internal/dto"
	"github.com/darsyar/darsyar/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type ScheduleItemController struct {
	scheduleItemService service.ScheduleItemService
}

func NewScheduleItemController(sis service.ScheduleItemService) *ScheduleItemController {
	return &ScheduleItemController{scheduleItemService: sis}
}

// CreateScheduleItem godoc
// @Summary (Teacher) Publish a schedule item with its content document
// @Description Creates a schedule item. The content document is parsed and validated; missing block/blank ids are backfilled.
// @Tags Teacher - Schedule Items
// @Accept json
// @Produce json
// @Param schedule_item body dto.ScheduleItemCreateDTO true "Schedule item with content document"
// @Success 201 {object} dto.ScheduleItemResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 422 {object} dto.ErrorResponse "Content document violates the schema"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /teacher/schedule-items [post]
func (c *ScheduleItemController) CreateScheduleItem(ctx *gin.Context) {
	var req dto.ScheduleItemCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("CreateScheduleItem: failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	created, err := c.scheduleItemService.Create(req)
	if err != nil {
		if errors.Is(err, content.ErrMalformedContent) {
			ctx.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Message: "Content document is not valid", Details: []string{err.Error()}})
			return
		}
		log.Error().Err(err).Msg("CreateScheduleItem: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to create schedule item", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusCreated, created)
}
