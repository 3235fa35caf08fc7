package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/railsathi/railsathi_backend/internal/core/ports/services"
	"github.com/railsathi/railsathi_backend/internal/dto"
	"github.com/railsathi/railsathi_backend/internal/middleware"
)

// searchHandler serves the device's recent-searches list.
type searchHandler struct {
	searchService portssvc.SearchSvcFacade
}

func newSearchHandler(ss portssvc.SearchSvcFacade) *searchHandler {
	return &searchHandler{searchService: ss}
}

// registerSearchRoutes registers the recent-searches route. Entries are
// recorded as a side effect of the lookup routes; there is no write endpoint.
func registerSearchRoutes(rg *gin.RouterGroup, searchService portssvc.SearchSvcFacade) {
	h := newSearchHandler(searchService)

	rg.GET("/searches/recent", h.recentSearches)
}

// recentSearches godoc
// @Summary List recent searches
// @Description Returns the device's recent PNR and train lookups, newest first, capped at 10.
// @Tags searches
// @Produce  json
// @Success 200 {array} dto.RecentSearchResponse
// @Failure 500 {object} map[string]string "Failed to list recent searches"
// @Security BearerAuth
// @Router /searches/recent [get]
func (h *searchHandler) recentSearches(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	deviceID, ok := middleware.GetDeviceIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	searches, err := h.searchService.RecentSearches(c.Request.Context(), deviceID)
	if err != nil {
		logger.Error("Failed to list recent searches", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list recent searches"})
		return
	}

	c.JSON(http.StatusOK, dto.ToRecentSearchListResponse(searches))
}
