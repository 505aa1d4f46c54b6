package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/wemeet-microservice/internal/pkg/utils"
	"github.com/wemeet-microservice/internal/usecase"
)

// ReferenceHandler - hotspot, friend and purpose reference data
type ReferenceHandler struct {
	referenceUC *usecase.ReferenceUseCase
	logger      *zap.Logger
}

func NewReferenceHandler(referenceUC *usecase.ReferenceUseCase, logger *zap.Logger) *ReferenceHandler {
	return &ReferenceHandler{
		referenceUC: referenceUC,
		logger:      logger,
	}
}

// GetHotspots godoc
// @Summary List hotspots
// @Description Returns the static named hotspot list, or matches by name when q is given
// @Tags Reference
// @Produce json
// @Param q query string false "Name substring to match"
// @Param limit query int false "Maximum results" default(10)
// @Success 200 {object} utils.SuccessResponse{data=dto.HotspotsResponse}
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/hotspots [get]
func (h *ReferenceHandler) GetHotspots(c *fiber.Ctx) error {
	query := c.Query("q")

	if query != "" {
		result, err := h.referenceUC.SearchHotspots(c.Context(), query, c.QueryInt("limit", 10))
		if err != nil {
			return utils.SendError(c, err)
		}
		return utils.SendSuccess(c, result, &utils.Meta{Total: result.Total})
	}

	result, err := h.referenceUC.Hotspots(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{Total: result.Total})
}

// GetFriends godoc
// @Summary List friend profiles
// @Tags Reference
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.FriendsResponse}
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/friends [get]
func (h *ReferenceHandler) GetFriends(c *fiber.Ctx) error {
	result, err := h.referenceUC.Friends(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{Total: result.Total})
}

// GetPurposes godoc
// @Summary Get the purpose and filter-tag catalog
// @Tags Reference
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.PurposesResponse}
// @Router /api/v1/purposes [get]
func (h *ReferenceHandler) GetPurposes(c *fiber.Ctx) error {
	return utils.SendSuccess(c, h.referenceUC.Purposes(), nil)
}
