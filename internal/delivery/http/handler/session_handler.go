package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wemeet-microservice/internal/pkg/errors"
	"github.com/wemeet-microservice/internal/pkg/utils"
	"github.com/wemeet-microservice/internal/pkg/validator"
	"github.com/wemeet-microservice/internal/usecase"
	"github.com/wemeet-microservice/internal/usecase/dto"
)

// SessionHandler - meetup session lifecycle endpoints
type SessionHandler struct {
	meetupUC         *usecase.MeetupUseCase
	recommendationUC *usecase.RecommendationUseCase
	logger           *zap.Logger
}

func NewSessionHandler(
	meetupUC *usecase.MeetupUseCase,
	recommendationUC *usecase.RecommendationUseCase,
	logger *zap.Logger,
) *SessionHandler {
	return &SessionHandler{
		meetupUC:         meetupUC,
		recommendationUC: recommendationUC,
		logger:           logger,
	}
}

// Create godoc
// @Summary Create a meetup session
// @Description Creates a session from participants, friend ids and/or manual locations, computes the candidate regions and triggers the first recommendation refresh
// @Tags Sessions
// @Accept json
// @Produce json
// @Param request body dto.CreateSessionRequest true "Session parameters"
// @Success 200 {object} utils.SuccessResponse{data=dto.SessionResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/sessions [post]
func (h *SessionHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.meetupUC.CreateSession(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}

// Get godoc
// @Summary Get a meetup session
// @Tags Sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} utils.SuccessResponse{data=dto.SessionResponse}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/sessions/{id} [get]
func (h *SessionHandler) Get(c *fiber.Ctx) error {
	id, err := h.sessionID(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.meetupUC.GetSession(c.Context(), id)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}

// Delete godoc
// @Summary Delete a meetup session
// @Tags Sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/sessions/{id} [delete]
func (h *SessionHandler) Delete(c *fiber.Ctx) error {
	id, err := h.sessionID(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	if err := h.meetupUC.DeleteSession(c.Context(), id); err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, fiber.Map{"deleted": true}, nil)
}

// ReplaceParticipants godoc
// @Summary Replace the participant set
// @Description Swaps participants and manual locations wholesale. Candidates are recomputed and the selected region resets to the new nearest candidate.
// @Tags Sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body dto.ReplaceParticipantsRequest true "New participant set"
// @Success 200 {object} utils.SuccessResponse{data=dto.SessionResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/sessions/{id}/participants [put]
func (h *SessionHandler) ReplaceParticipants(c *fiber.Ctx) error {
	id, err := h.sessionID(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	var req dto.ReplaceParticipantsRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.meetupUC.ReplaceParticipants(c.Context(), id, req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}

// SetFilters godoc
// @Summary Update purpose and filter tags
// @Tags Sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body dto.SetFiltersRequest true "Purpose and tags"
// @Success 200 {object} utils.SuccessResponse{data=dto.SessionResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/sessions/{id}/filters [put]
func (h *SessionHandler) SetFilters(c *fiber.Ctx) error {
	id, err := h.sessionID(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	var req dto.SetFiltersRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.meetupUC.SetFilters(c.Context(), id, req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}

// SelectRegion godoc
// @Summary Select a candidate region
// @Description Anchors recommendations to one of the current candidate regions. Rejected when the region is not in the candidate list.
// @Tags Sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body dto.SelectRegionRequest true "Region name"
// @Success 200 {object} utils.SuccessResponse{data=dto.SessionResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/sessions/{id}/region [put]
func (h *SessionHandler) SelectRegion(c *fiber.Ctx) error {
	id, err := h.sessionID(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	var req dto.SelectRegionRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.meetupUC.SelectRegion(c.Context(), id, req.Name)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}

// GetRecommendations godoc
// @Summary Get the last held recommendations
// @Tags Sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} utils.SuccessResponse{data=dto.RecommendationsResponse}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/sessions/{id}/recommendations [get]
func (h *SessionHandler) GetRecommendations(c *fiber.Ctx) error {
	id, err := h.sessionID(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.recommendationUC.GetResults(c.Context(), id)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{Total: len(result.Results)})
}

// Refresh godoc
// @Summary Refresh recommendations synchronously
// @Description Issues a new recommendation request and waits for the result. A collaborator failure keeps the previous results.
// @Tags Sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} utils.SuccessResponse{data=dto.RecommendationsResponse}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/sessions/{id}/recommendations/refresh [post]
func (h *SessionHandler) Refresh(c *fiber.Ctx) error {
	id, err := h.sessionID(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.recommendationUC.RefreshNow(c.Context(), id)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{Total: len(result.Results)})
}

func (h *SessionHandler) sessionID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"id": c.Params("id"),
		})
	}
	return id, nil
}
