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

// stationHandler serves the station layout/amenity directory.
type stationHandler struct {
	stationService portssvc.StationSvcFacade
}

func newStationHandler(ss portssvc.StationSvcFacade) *stationHandler {
	return &stationHandler{stationService: ss}
}

// registerStationRoutes registers the station directory routes.
func registerStationRoutes(rg *gin.RouterGroup, stationService portssvc.StationSvcFacade) {
	h := newStationHandler(stationService)

	stations := rg.Group("/stations")
	{
		stations.GET("", h.listStations)
		stations.GET("/:code", h.getStationByCode)
	}
}

// listStations godoc
// @Summary List stations
// @Description Returns directory entries matching the search term against code, name and city. Empty term lists everything.
// @Tags stations
// @Produce  json
// @Param   search query string false "Search term"
// @Success 200 {array} dto.StationResponse
// @Failure 500 {object} map[string]string "Failed to list stations"
// @Security BearerAuth
// @Router /stations [get]
func (h *stationHandler) listStations(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	stations, err := h.stationService.ListStations(c.Request.Context(), c.Query("search"))
	if err != nil {
		logger.Error("Failed to list stations", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list stations"})
		return
	}

	c.JSON(http.StatusOK, dto.ToStationListResponse(stations))
}

// getStationByCode godoc
// @Summary Get a station by code
// @Description Retrieves one station's layout and amenities by its code, case-insensitively.
// @Tags stations
// @Produce  json
// @Param   code path string true "Station code"
// @Success 200 {object} dto.StationResponse
// @Failure 404 {object} map[string]string "Station not found"
// @Failure 500 {object} map[string]string "Failed to retrieve station"
// @Security BearerAuth
// @Router /stations/{code} [get]
func (h *stationHandler) getStationByCode(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	code := c.Param("code")

	station, err := h.stationService.GetStationByCode(c.Request.Context(), code)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Station not found"})
		} else {
			logger.Error("Failed to get station", slog.String("code", code), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve station"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToStationResponse(station))
}
