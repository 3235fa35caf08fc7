package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/railsathi/railsathi_backend/internal/apperrors"
	portssvc "github.com/railsathi/railsathi_backend/internal/core/ports/services"
	"github.com/railsathi/railsathi_backend/internal/dto"
	"github.com/railsathi/railsathi_backend/internal/middleware"
)

// journeyHandler handles HTTP requests for the saved-journeys list and the
// next-journey marker.
type journeyHandler struct {
	journeyService portssvc.JourneySvcFacade
}

func newJourneyHandler(js portssvc.JourneySvcFacade) *journeyHandler {
	return &journeyHandler{journeyService: js}
}

// RegisterJourneyRoutes registers routes related to saved journeys.
func RegisterJourneyRoutes(rg *gin.RouterGroup, journeyService portssvc.JourneySvcFacade) {
	registerCustomValidators()
	h := newJourneyHandler(journeyService)

	journeys := rg.Group("/journeys")
	{
		journeys.GET("", h.listJourneys)
		journeys.POST("", h.saveJourney)
		journeys.POST("/:journeyID/refresh", h.refreshJourney)
		journeys.DELETE("/:journeyID", h.deleteJourney)

		journeys.GET("/next", h.getNextJourney)
		journeys.PUT("/next", h.markNextJourney)
		journeys.DELETE("/next", h.unmarkNextJourney)
	}
}

// listJourneys godoc
// @Summary List saved journeys
// @Description Returns the device's saved journeys, most-recent-first, with the next-journey flag resolved.
// @Tags journeys
// @Produce  json
// @Success 200 {array} dto.JourneyResponse
// @Failure 500 {object} map[string]string "Failed to list journeys"
// @Security BearerAuth
// @Router /journeys [get]
func (h *journeyHandler) listJourneys(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	deviceID, ok := middleware.GetDeviceIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	records, err := h.journeyService.ListJourneys(c.Request.Context(), deviceID)
	if err != nil {
		logger.Error("Failed to list journeys", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list journeys"})
		return
	}

	nextPNR := ""
	if next, err := h.journeyService.GetNextJourney(c.Request.Context(), deviceID); err == nil && next != nil {
		nextPNR = next.PNR
	}

	c.JSON(http.StatusOK, dto.ToJourneyListResponse(records, nextPNR))
}

// saveJourney godoc
// @Summary Save a journey by PNR
// @Description Looks the PNR up and saves (or updates in place) the journey on the device's list.
// @Tags journeys
// @Accept  json
// @Produce  json
// @Param   journey body dto.SaveJourneyRequest true "PNR to save"
// @Success 201 {object} dto.JourneyResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "PNR not found"
// @Failure 502 {object} map[string]string "Upstream provider failure"
// @Security BearerAuth
// @Router /journeys [post]
func (h *journeyHandler) saveJourney(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.SaveJourneyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SaveJourney", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	deviceID, ok := middleware.GetDeviceIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	record, err := h.journeyService.SaveJourney(c.Request.Context(), deviceID, req.PNR)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("PNR not found upstream", slog.String("pnr", req.PNR))
			c.JSON(http.StatusNotFound, gin.H{"error": "PNR not found"})
		} else {
			logger.Error("Failed to save journey", slog.String("pnr", req.PNR), slog.String("error", err.Error()))
			c.JSON(http.StatusBadGateway, gin.H{"error": "Could not fetch PNR status"})
		}
		return
	}

	logger.Info("Journey saved", slog.String("journey_id", record.JourneyID))
	c.JSON(http.StatusCreated, dto.ToJourneyResponse(record))
}

// refreshJourney godoc
// @Summary Refresh a saved journey
// @Description Re-fetches the journey's PNR status. Identity and list position are preserved; a failed fetch leaves the record untouched.
// @Tags journeys
// @Produce  json
// @Param   journeyID path string true "Journey ID"
// @Success 200 {object} dto.JourneyResponse
// @Failure 404 {object} map[string]string "Journey not found"
// @Failure 502 {object} map[string]string "Upstream provider failure"
// @Security BearerAuth
// @Router /journeys/{journeyID}/refresh [post]
func (h *journeyHandler) refreshJourney(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	journeyID := c.Param("journeyID")

	deviceID, ok := middleware.GetDeviceIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	record, err := h.journeyService.RefreshJourney(c.Request.Context(), deviceID, journeyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Journey not found"})
		} else {
			logger.Error("Failed to refresh journey", slog.String("journey_id", journeyID), slog.String("error", err.Error()))
			c.JSON(http.StatusBadGateway, gin.H{"error": "Could not refresh journey"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToJourneyResponse(record))
}

// deleteJourney godoc
// @Summary Delete a saved journey
// @Description Removes the journey. If it holds the next-journey marker, the marker is cleared with it.
// @Tags journeys
// @Produce  json
// @Param   journeyID path string true "Journey ID"
// @Success 204 "Deleted"
// @Failure 404 {object} map[string]string "Journey not found"
// @Failure 500 {object} map[string]string "Failed to delete journey"
// @Security BearerAuth
// @Router /journeys/{journeyID} [delete]
func (h *journeyHandler) deleteJourney(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	journeyID := c.Param("journeyID")

	deviceID, ok := middleware.GetDeviceIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.journeyService.DeleteJourney(c.Request.Context(), deviceID, journeyID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Journey not found"})
		} else {
			logger.Error("Failed to delete journey", slog.String("journey_id", journeyID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete journey"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// getNextJourney godoc
// @Summary Get the next journey
// @Description Returns the journey currently marked as next, or 204 when nothing is marked.
// @Tags journeys
// @Produce  json
// @Success 200 {object} dto.JourneyResponse
// @Success 204 "Nothing marked"
// @Failure 500 {object} map[string]string "Failed to resolve marker"
// @Security BearerAuth
// @Router /journeys/next [get]
func (h *journeyHandler) getNextJourney(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	deviceID, ok := middleware.GetDeviceIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	record, err := h.journeyService.GetNextJourney(c.Request.Context(), deviceID)
	if err != nil {
		logger.Error("Failed to get next journey", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve next journey"})
		return
	}
	if record == nil {
		c.Status(http.StatusNoContent)
		return
	}

	resp := dto.ToJourneyResponse(record)
	resp.IsNextJourney = true
	c.JSON(http.StatusOK, resp)
}

// markNextJourney godoc
// @Summary Mark the next journey
// @Description Marks the saved journey with this PNR as next. Marking the already-marked journey toggles it off; marking while another journey is marked is rejected.
// @Tags journeys
// @Accept  json
// @Produce  json
// @Param   marker body dto.MarkNextJourneyRequest true "PNR of the saved journey"
// @Success 200 {object} map[string]bool "marked: whether the journey is now marked"
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Journey not saved"
// @Failure 409 {object} map[string]string "Another journey is already marked"
// @Security BearerAuth
// @Router /journeys/next [put]
func (h *journeyHandler) markNextJourney(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.MarkNextJourneyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for MarkNextJourney", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	deviceID, ok := middleware.GetDeviceIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	marked, err := h.journeyService.MarkNextJourney(c.Request.Context(), deviceID, req.PNR)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Journey not saved; save it before marking"})
		} else if errors.Is(err, apperrors.ErrAlreadyMarked) {
			c.JSON(http.StatusConflict, gin.H{"error": "Another journey is already marked as next; unmark it first"})
		} else {
			logger.Error("Failed to mark next journey", slog.String("pnr", req.PNR), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark next journey"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"marked": marked})
}

// unmarkNextJourney godoc
// @Summary Unmark the next journey
// @Description Clears the next-journey marker. Clearing when nothing is marked is a no-op.
// @Tags journeys
// @Produce  json
// @Success 204 "Cleared"
// @Failure 500 {object} map[string]string "Failed to clear marker"
// @Security BearerAuth
// @Router /journeys/next [delete]
func (h *journeyHandler) unmarkNextJourney(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	deviceID, ok := middleware.GetDeviceIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.journeyService.UnmarkNextJourney(c.Request.Context(), deviceID); err != nil {
		logger.Error("Failed to unmark next journey", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unmark next journey"})
		return
	}

	c.Status(http.StatusNoContent)
}
