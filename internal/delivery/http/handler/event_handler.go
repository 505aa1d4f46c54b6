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

// EventHandler - personal calendar event endpoints
type EventHandler struct {
	eventUC *usecase.EventUseCase
	logger  *zap.Logger
}

func NewEventHandler(eventUC *usecase.EventUseCase, logger *zap.Logger) *EventHandler {
	return &EventHandler{
		eventUC: eventUC,
		logger:  logger,
	}
}

// Create godoc
// @Summary Create a calendar event
// @Tags Events
// @Accept json
// @Produce json
// @Param request body dto.CreateEventRequest true "Event data"
// @Success 200 {object} utils.SuccessResponse{data=domain.Event}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/events [post]
func (h *EventHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateEventRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	event, err := h.eventUC.Create(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, event, nil)
}

// List godoc
// @Summary List a user's calendar events
// @Tags Events
// @Produce json
// @Param user_id query int true "User ID"
// @Success 200 {object} utils.SuccessResponse{data=[]domain.Event}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/events [get]
func (h *EventHandler) List(c *fiber.Ctx) error {
	userID := int64(c.QueryInt("user_id", 0))
	if userID <= 0 {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	events, err := h.eventUC.GetByUser(c.Context(), userID)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, events, &utils.Meta{Total: len(events)})
}

// Get godoc
// @Summary Get a calendar event
// @Tags Events
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} utils.SuccessResponse{data=domain.Event}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/events/{id} [get]
func (h *EventHandler) Get(c *fiber.Ctx) error {
	id, err := h.eventID(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	event, err := h.eventUC.GetByID(c.Context(), id)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, event, nil)
}

// Update godoc
// @Summary Update a calendar event
// @Tags Events
// @Accept json
// @Produce json
// @Param id path string true "Event ID"
// @Param request body dto.UpdateEventRequest true "Event data"
// @Success 200 {object} utils.SuccessResponse{data=domain.Event}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/events/{id} [put]
func (h *EventHandler) Update(c *fiber.Ctx) error {
	id, err := h.eventID(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	var req dto.UpdateEventRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	event, err := h.eventUC.Update(c.Context(), id, req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, event, nil)
}

// Delete godoc
// @Summary Delete a calendar event
// @Tags Events
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/events/{id} [delete]
func (h *EventHandler) Delete(c *fiber.Ctx) error {
	id, err := h.eventID(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	if err := h.eventUC.Delete(c.Context(), id); err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, fiber.Map{"deleted": true}, nil)
}

func (h *EventHandler) eventID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"id": c.Params("id"),
		})
	}
	return id, nil
}
