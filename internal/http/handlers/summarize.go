package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eduforge/lms-backend/internal/http/response"
	"github.com/eduforge/lms-backend/internal/pkg/apperr"
	"github.com/eduforge/lms-backend/internal/pkg/logger"
	"github.com/eduforge/lms-backend/internal/services"
)

type SummarizeHandler struct {
	log        *logger.Logger
	summarizer services.SummarizerService
}

func NewSummarizeHandler(log *logger.Logger, summarizer services.SummarizerService) *SummarizeHandler {
	return &SummarizeHandler{
		log:        log.With("handler", "SummarizeHandler"),
		summarizer: summarizer,
	}
}

type summarizeRequest struct {
	LectureURL string `json:"lecture_url"`
}

func (h *SummarizeHandler) SummarizeLecture(c *gin.Context) {
	var req summarizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	summary, err := h.summarizer.SummarizeLecture(c.Request.Context(), req.LectureURL)
	if err != nil {
		switch {
		case errors.Is(err, apperr.ErrInvalidArgument):
			response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		case errors.Is(err, apperr.ErrNotFound):
			response.RespondError(c, http.StatusNotFound, "lecture_not_found", err)
		default:
			h.log.Error("summarize failed", "error", err)
			response.RespondError(c, http.StatusInternalServerError, "summarize_failed", err)
		}
		return
	}
	response.RespondOK(c, gin.H{"status": "success", "summary": summary})
}
