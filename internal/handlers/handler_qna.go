package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/railsathi/railsathi_backend/internal/apperrors"
	"github.com/railsathi/railsathi_backend/internal/core/domain"
	portssvc "github.com/railsathi/railsathi_backend/internal/core/ports/services"
	"github.com/railsathi/railsathi_backend/internal/dto"
	"github.com/railsathi/railsathi_backend/internal/middleware"
)

// qnaHandler handles HTTP requests for the community question board.
type qnaHandler struct {
	qnaService portssvc.QnASvcFacade
}

func newQnAHandler(qs portssvc.QnASvcFacade) *qnaHandler {
	return &qnaHandler{qnaService: qs}
}

// RegisterQnARoutes registers routes related to the question board.
func RegisterQnARoutes(rg *gin.RouterGroup, qnaService portssvc.QnASvcFacade) {
	h := newQnAHandler(qnaService)

	questions := rg.Group("/questions")
	{
		questions.GET("", h.listQuestions)
		questions.POST("", h.postQuestion)
		questions.GET("/stream", h.streamBoard)
		questions.GET("/:questionID", h.getQuestion)
		questions.DELETE("/:questionID", h.deleteQuestion)
		questions.POST("/:questionID/answers", h.postAnswer)
		questions.PUT("/:questionID/vote", h.voteQuestion)
	}
}

// listQuestions godoc
// @Summary List board questions
// @Description Returns questions newest-first with vote tallies, answer counts and the caller's own vote.
// @Tags questions
// @Produce  json
// @Param   search query string false "Search term matched against title and body"
// @Param   answeredOnly query bool false "Keep only questions with at least one answer"
// @Param   limit query int false "Page size (default 20, max 100)"
// @Param   nextToken query string false "Cursor from a previous page"
// @Success 200 {object} dto.QuestionListResponse
// @Failure 400 {object} map[string]string "Invalid parameters"
// @Failure 500 {object} map[string]string "Failed to list questions"
// @Security BearerAuth
// @Router /questions [get]
func (h *qnaHandler) listQuestions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListQuestionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	deviceID, ok := middleware.GetDeviceIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	params.DeviceID = deviceID

	questions, err := h.qnaService.ListQuestions(c.Request.Context(), params)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to list questions", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list questions"})
		}
		return
	}

	pageSize := params.Limit
	if pageSize <= 0 {
		pageSize = 20
	}
	c.JSON(http.StatusOK, dto.ToQuestionListResponse(questions, deviceID, pageSize))
}

// getQuestion godoc
// @Summary Get a question with its answers
// @Tags questions
// @Produce  json
// @Param   questionID path string true "Question ID"
// @Success 200 {object} dto.QuestionResponse
// @Failure 404 {object} map[string]string "Question not found"
// @Failure 500 {object} map[string]string "Failed to retrieve question"
// @Security BearerAuth
// @Router /questions/{questionID} [get]
func (h *qnaHandler) getQuestion(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	questionID := c.Param("questionID")

	deviceID, ok := middleware.GetDeviceIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	question, err := h.qnaService.GetQuestion(c.Request.Context(), questionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Question not found"})
		} else {
			logger.Error("Failed to get question", slog.String("question_id", questionID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve question"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToQuestionResponse(question, deviceID))
}

// postQuestion godoc
// @Summary Post a question
// @Tags questions
// @Accept  json
// @Produce  json
// @Param   question body dto.PostQuestionRequest true "Question content"
// @Success 201 {object} dto.QuestionResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 500 {object} map[string]string "Failed to post question"
// @Security BearerAuth
// @Router /questions [post]
func (h *qnaHandler) postQuestion(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.PostQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for PostQuestion", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	deviceID, ok := middleware.GetDeviceIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	question, err := h.qnaService.PostQuestion(c.Request.Context(), req, deviceID)
	if err != nil {
		logger.Error("Failed to post question", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to post question"})
		return
	}

	c.JSON(http.StatusCreated, dto.ToQuestionResponse(question, deviceID))
}

// deleteQuestion godoc
// @Summary Delete a question
// @Description Removes a question with its answers and votes. Only the posting device may delete it.
// @Tags questions
// @Produce  json
// @Param   questionID path string true "Question ID"
// @Success 204 "Deleted"
// @Failure 403 {object} map[string]string "Not the question's author"
// @Failure 404 {object} map[string]string "Question not found"
// @Failure 500 {object} map[string]string "Failed to delete question"
// @Security BearerAuth
// @Router /questions/{questionID} [delete]
func (h *qnaHandler) deleteQuestion(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	questionID := c.Param("questionID")

	deviceID, ok := middleware.GetDeviceIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.qnaService.DeleteQuestion(c.Request.Context(), questionID, deviceID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Question not found"})
		} else if errors.Is(err, apperrors.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Only the author can delete a question"})
		} else {
			logger.Error("Failed to delete question", slog.String("question_id", questionID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete question"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// postAnswer godoc
// @Summary Answer a question
// @Tags questions
// @Accept  json
// @Produce  json
// @Param   questionID path string true "Question ID"
// @Param   answer body dto.PostAnswerRequest true "Answer content"
// @Success 201 {object} dto.AnswerResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Question not found"
// @Failure 500 {object} map[string]string "Failed to post answer"
// @Security BearerAuth
// @Router /questions/{questionID}/answers [post]
func (h *qnaHandler) postAnswer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	questionID := c.Param("questionID")

	var req dto.PostAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for PostAnswer", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	deviceID, ok := middleware.GetDeviceIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	answer, err := h.qnaService.PostAnswer(c.Request.Context(), questionID, req, deviceID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Question not found"})
		} else {
			logger.Error("Failed to post answer", slog.String("question_id", questionID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to post answer"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.AnswerResponse{
		AnswerID:  answer.AnswerID,
		Body:      answer.Body,
		Mine:      true,
		CreatedAt: answer.CreatedAt,
		PostedAgo: "Just now",
	})
}

// voteQuestion godoc
// @Summary Vote on a question
// @Description Applies the device's vote. Repeating the same direction removes the vote; the opposite direction flips it.
// @Tags questions
// @Accept  json
// @Produce  json
// @Param   questionID path string true "Question ID"
// @Param   vote body dto.VoteRequest true "Vote direction"
// @Success 200 {object} dto.QuestionResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Question not found"
// @Failure 500 {object} map[string]string "Failed to apply vote"
// @Security BearerAuth
// @Router /questions/{questionID}/vote [put]
func (h *qnaHandler) voteQuestion(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	questionID := c.Param("questionID")

	var req dto.VoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for VoteQuestion", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	deviceID, ok := middleware.GetDeviceIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	question, err := h.qnaService.VoteQuestion(c.Request.Context(), questionID, deviceID, domain.VoteDirection(req.Direction))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Question not found"})
		} else {
			logger.Error("Failed to apply vote", slog.String("question_id", questionID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to apply vote"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToQuestionResponse(question, deviceID))
}

// streamBoard godoc
// @Summary Stream board changes
// @Description Server-sent events feed of board activity. Clients re-fetch the affected question on receipt; events carry IDs, not content.
// @Tags questions
// @Produce  text/event-stream
// @Success 200 {string} string "SSE stream of board events"
// @Security BearerAuth
// @Router /questions/stream [get]
func (h *qnaHandler) streamBoard(c *gin.Context) {
	events, cancel := h.qnaService.Subscribe()
	defer cancel()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case event, ok := <-events:
			if !ok {
				return false
			}
			c.SSEvent(string(event.Kind), gin.H{
				"questionID": event.QuestionID,
				"occurredAt": event.OccurredAt,
			})
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
