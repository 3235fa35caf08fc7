package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"regexp"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/railsathi/railsathi_backend/internal/apperrors"
	portssvc "github.com/railsathi/railsathi_backend/internal/core/ports/services"
	"github.com/railsathi/railsathi_backend/internal/dto"
	"github.com/railsathi/railsathi_backend/internal/middleware"
	"github.com/railsathi/railsathi_backend/internal/utils/display"
	"github.com/ulule/limiter/v3"
)

var trainNumberPattern = regexp.MustCompile(`^\d{4,5}$`)

// trainHandler handles timetable, live-status and calendar requests.
type trainHandler struct {
	trainService portssvc.TrainSvcFacade
}

func newTrainHandler(ts portssvc.TrainSvcFacade) *trainHandler {
	return &trainHandler{trainService: ts}
}

// registerTrainRoutes registers the train lookup routes. Schedule and status
// hit the upstream provider, so they share the lookup rate limit; the
// calendar is computed locally and is not limited.
func registerTrainRoutes(rg *gin.RouterGroup, trainService portssvc.TrainSvcFacade, lookupLimiter *limiter.Limiter) {
	h := newTrainHandler(trainService)

	trains := rg.Group("/trains", middleware.RateLimit(lookupLimiter))
	{
		trains.GET("/:trainNumber/schedule", h.getSchedule)
		trains.GET("/:trainNumber/status", h.getLiveStatus)
	}

	rg.GET("/calendar/:year/:month", h.getCalendar)
}

// getSchedule godoc
// @Summary Get a train's timetable
// @Description Returns the full stop list for a train number.
// @Tags trains
// @Produce  json
// @Param   trainNumber path string true "4-5 digit train number"
// @Success 200 {object} dto.TrainScheduleResponse
// @Failure 400 {object} map[string]string "Invalid train number"
// @Failure 404 {object} map[string]string "Train not found"
// @Failure 502 {object} map[string]string "Upstream provider failure"
// @Security BearerAuth
// @Router /trains/{trainNumber}/schedule [get]
func (h *trainHandler) getSchedule(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	trainNumber := c.Param("trainNumber")

	if !trainNumberPattern.MatchString(trainNumber) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Train number must be 4 or 5 digits"})
		return
	}

	deviceID, ok := middleware.GetDeviceIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	schedule, err := h.trainService.GetSchedule(c.Request.Context(), deviceID, trainNumber)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Train not found"})
		} else {
			logger.Error("Failed to fetch schedule", slog.String("train_number", trainNumber), slog.String("error", err.Error()))
			c.JSON(http.StatusBadGateway, gin.H{"error": "Could not fetch train schedule"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToTrainScheduleResponse(schedule))
}

// getLiveStatus godoc
// @Summary Get a train's live running status
// @Description Returns the current position and delay. The optional date query selects which run of the train.
// @Tags trains
// @Produce  json
// @Param   trainNumber path string true "4-5 digit train number"
// @Param   date query string false "Run date, provider format"
// @Success 200 {object} dto.LiveStatusResponse
// @Failure 400 {object} map[string]string "Invalid train number"
// @Failure 404 {object} map[string]string "Train not found"
// @Failure 502 {object} map[string]string "Upstream provider failure"
// @Security BearerAuth
// @Router /trains/{trainNumber}/status [get]
func (h *trainHandler) getLiveStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	trainNumber := c.Param("trainNumber")

	if !trainNumberPattern.MatchString(trainNumber) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Train number must be 4 or 5 digits"})
		return
	}

	deviceID, ok := middleware.GetDeviceIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	status, err := h.trainService.GetLiveStatus(c.Request.Context(), deviceID, trainNumber, c.Query("date"))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Train not found"})
		} else {
			logger.Error("Failed to fetch live status", slog.String("train_number", trainNumber), slog.String("error", err.Error()))
			c.JSON(http.StatusBadGateway, gin.H{"error": "Could not fetch live status"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToLiveStatusResponse(status))
}

// getCalendar godoc
// @Summary Get a month grid
// @Description Returns the month laid out in Sunday-first weeks, for the journey date picker.
// @Tags trains
// @Produce  json
// @Param   year path int true "Year"
// @Param   month path int true "Month (1-12)"
// @Success 200 {object} dto.CalendarResponse
// @Failure 400 {object} map[string]string "Invalid year or month"
// @Security BearerAuth
// @Router /calendar/{year}/{month} [get]
func (h *trainHandler) getCalendar(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil || year < 1900 || year > 2200 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid year"})
		return
	}
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil || month < 1 || month > 12 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid month"})
		return
	}

	c.JSON(http.StatusOK, dto.CalendarResponse{
		Year:  year,
		Month: month,
		Weeks: display.MonthGrid(year, time.Month(month)),
	})
}
