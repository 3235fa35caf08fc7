package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"
	"github.com/railsathi/railsathi_backend/internal/apperrors"
	portssvc "github.com/railsathi/railsathi_backend/internal/core/ports/services"
	"github.com/railsathi/railsathi_backend/internal/dto"
	"github.com/railsathi/railsathi_backend/internal/middleware"
	"github.com/ulule/limiter/v3"
)

var pnrPattern = regexp.MustCompile(`^\d{10}$`)

// pnrHandler handles ad-hoc PNR status lookups (the search screen, before
// anything is saved).
type pnrHandler struct {
	pnrService portssvc.PNRLookupSvc
}

func newPNRHandler(ps portssvc.PNRLookupSvc) *pnrHandler {
	return &pnrHandler{pnrService: ps}
}

// registerPNRRoutes registers the lookup route behind the lookup rate limit.
func registerPNRRoutes(rg *gin.RouterGroup, pnrService portssvc.PNRLookupSvc, lookupLimiter *limiter.Limiter) {
	h := newPNRHandler(pnrService)

	pnr := rg.Group("/pnr", middleware.RateLimit(lookupLimiter))
	{
		pnr.GET("/:pnrNumber", h.getPNRStatus)
	}
}

// getPNRStatus godoc
// @Summary Look up a PNR's current status
// @Description Fetches live status from the upstream providers and returns the normalized journey. Nothing is saved.
// @Tags pnr
// @Produce  json
// @Param   pnrNumber path string true "10-digit PNR"
// @Success 200 {object} dto.JourneyResponse
// @Failure 400 {object} map[string]string "Invalid PNR"
// @Failure 404 {object} map[string]string "PNR not found"
// @Failure 429 {object} map[string]string "Rate limited"
// @Failure 502 {object} map[string]string "Upstream provider failure"
// @Security BearerAuth
// @Router /pnr/{pnrNumber} [get]
func (h *pnrHandler) getPNRStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	pnr := c.Param("pnrNumber")

	if !pnrPattern.MatchString(pnr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "PNR must be exactly 10 digits"})
		return
	}

	deviceID, ok := middleware.GetDeviceIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	record, err := h.pnrService.LookupPNR(c.Request.Context(), deviceID, pnr)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("PNR not found upstream", slog.String("pnr", pnr))
			c.JSON(http.StatusNotFound, gin.H{"error": "PNR not found"})
		} else {
			logger.Error("PNR lookup failed", slog.String("pnr", pnr), slog.String("error", err.Error()))
			c.JSON(http.StatusBadGateway, gin.H{"error": "Could not reach PNR status provider"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToJourneyResponse(record))
}
