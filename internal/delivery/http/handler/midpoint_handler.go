package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/wemeet-microservice/internal/pkg/errors"
	"github.com/wemeet-microservice/internal/pkg/utils"
	"github.com/wemeet-microservice/internal/pkg/validator"
	"github.com/wemeet-microservice/internal/usecase"
	"github.com/wemeet-microservice/internal/usecase/dto"
)

// MidpointHandler - stateless midpoint computation
type MidpointHandler struct {
	meetupUC *usecase.MeetupUseCase
	logger   *zap.Logger
}

func NewMidpointHandler(meetupUC *usecase.MeetupUseCase, logger *zap.Logger) *MidpointHandler {
	return &MidpointHandler{
		meetupUC: meetupUC,
		logger:   logger,
	}
}

// Candidates godoc
// @Summary Compute candidate meeting regions
// @Description Computes the participants' centroid and returns the three nearest hotspots without creating a session
// @Tags Midpoint
// @Accept json
// @Produce json
// @Param request body dto.ComputeCandidatesRequest true "Participants with coordinates"
// @Success 200 {object} utils.SuccessResponse{data=dto.CandidatesResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/midpoint/candidates [post]
func (h *MidpointHandler) Candidates(c *fiber.Ctx) error {
	var req dto.ComputeCandidatesRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.meetupUC.Candidates(req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{Total: len(result.Candidates)})
}
