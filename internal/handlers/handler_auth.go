package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/railsathi/railsathi_backend/internal/dto"
	"github.com/railsathi/railsathi_backend/internal/middleware"
	"github.com/railsathi/railsathi_backend/internal/utils"
	"github.com/railsathi/railsathi_backend/pkg/config"
)

// authHandler issues device tokens. There are no user accounts; a device ID
// is the whole identity, minted server-side on first contact.
type authHandler struct {
	cfg *config.Config
}

func newAuthHandler(cfg *config.Config) *authHandler {
	return &authHandler{cfg: cfg}
}

// registerAuthRoutes registers the public device-registration route.
func registerAuthRoutes(r *gin.Engine, cfg *config.Config) {
	h := newAuthHandler(cfg)

	auth := r.Group("/auth")
	{
		auth.POST("/device", h.registerDevice)
	}
}

// registerDevice godoc
// @Summary Register a device
// @Description Issues a bearer token for a device. A device that already has an ID sends it back to keep its saved data; otherwise a fresh ID is minted.
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   device body dto.DeviceAuthRequest false "Existing device ID, if any"
// @Success 200 {object} dto.DeviceAuthResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 500 {object} map[string]string "Failed to issue token"
// @Router /auth/device [post]
func (h *authHandler) registerDevice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.DeviceAuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RegisterDevice", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	deviceID := req.DeviceID
	if deviceID == "" {
		deviceID = uuid.NewString()
	}

	token, err := utils.GenerateJWT(deviceID, h.cfg.JWTSecret, h.cfg.JWTExpiryDuration, h.cfg.JWTIssuer)
	if err != nil {
		logger.Error("Failed to generate device token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
		return
	}

	logger.Info("Device registered", slog.String("device_id", deviceID))
	c.JSON(http.StatusOK, dto.DeviceAuthResponse{
		DeviceID:  deviceID,
		Token:     token,
		ExpiresAt: time.Now().Add(h.cfg.JWTExpiryDuration),
	})
}
