package blockedslot

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"nutribook/internal/api"
	"nutribook/internal/auth"
	"nutribook/internal/logger"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Add godoc
// @Summary      Block a slot
// @Description  Marks a dietitian's date and time as unavailable.
// @Tags         blocked-slots
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        dietitianID  path      string      true  "Dietitian ID"
// @Param        request      body      AddRequest  true  "Slot to block"
// @Success      201          {object}  BlockedSlot
// @Failure      400          {object}  api.ValidationErrorResponse
// @Failure      403          {object}  api.ErrorResponse
// @Failure      409          {object}  api.ErrorResponse
// @Failure      500          {object}  api.ErrorResponse
// @Router       /api/dietitians/{dietitianID}/blocked-slots [post]
func (h *Handler) Add(c *gin.Context) {
	dietitianID := c.Param("dietitianID")
	if !auth.CanActAs(c, dietitianID) {
		c.JSON(http.StatusForbidden, api.ErrorResponse{Error: "You can only manage your own schedule"})
		return
	}

	var req AddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid request body"})
		return
	}

	b, err := h.service.Add(c.Request.Context(), dietitianID, req)
	if err != nil {
		var verr *ValidationError
		switch {
		case errors.As(err, &verr):
			c.JSON(http.StatusBadRequest, api.ValidationErrorResponse{Error: verr.Error(), Fields: verr.Fields})
		case errors.Is(err, ErrPastDate):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		case errors.Is(err, ErrDuplicate):
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: "This slot is already blocked"})
		default:
			logger.WithError(err).Error("failed to block slot", "dietitianId", dietitianID)
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to block slot"})
		}
		return
	}

	c.JSON(http.StatusCreated, b)
}

// List godoc
// @Summary      List blocked slots
// @Tags         blocked-slots
// @Security     BearerAuth
// @Produce      json
// @Param        dietitianID  path      string  true  "Dietitian ID"
// @Success      200          {array}   BlockedSlot
// @Failure      400          {object}  api.ValidationErrorResponse
// @Failure      500          {object}  api.ErrorResponse
// @Router       /api/dietitians/{dietitianID}/blocked-slots [get]
func (h *Handler) List(c *gin.Context) {
	slots, err := h.service.ListForDietitian(c.Request.Context(), c.Param("dietitianID"))
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, api.ValidationErrorResponse{Error: verr.Error(), Fields: verr.Fields})
			return
		}
		logger.WithError(err).Error("failed to list blocked slots")
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to list blocked slots"})
		return
	}

	c.JSON(http.StatusOK, slots)
}

// Remove godoc
// @Summary      Unblock a slot
// @Tags         blocked-slots
// @Security     BearerAuth
// @Produce      json
// @Param        dietitianID  path      string  true  "Dietitian ID"
// @Param        blockID      path      string  true  "Blocked slot ID"
// @Success      200          {object}  api.MessageResponse
// @Failure      403          {object}  api.ErrorResponse
// @Failure      404          {object}  api.ErrorResponse
// @Failure      500          {object}  api.ErrorResponse
// @Router       /api/dietitians/{dietitianID}/blocked-slots/{blockID} [delete]
func (h *Handler) Remove(c *gin.Context) {
	dietitianID := c.Param("dietitianID")
	if !auth.CanActAs(c, dietitianID) {
		c.JSON(http.StatusForbidden, api.ErrorResponse{Error: "You can only manage your own schedule"})
		return
	}

	if err := h.service.Remove(c.Request.Context(), dietitianID, c.Param("blockID")); err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Blocked slot not found"})
			return
		}
		logger.WithError(err).Error("failed to unblock slot", "dietitianId", dietitianID)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to unblock slot"})
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Slot unblocked"})
}
