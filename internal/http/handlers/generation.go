package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eduforge/lms-backend/internal/generation"
	"github.com/eduforge/lms-backend/internal/http/response"
	"github.com/eduforge/lms-backend/internal/pkg/apperr"
	"github.com/eduforge/lms-backend/internal/pkg/logger"
)

type GenerationHandler struct {
	log    *logger.Logger
	engine *generation.Engine
}

func NewGenerationHandler(log *logger.Logger, engine *generation.Engine) *GenerationHandler {
	return &GenerationHandler{
		log:    log.With("handler", "GenerationHandler"),
		engine: engine,
	}
}

type generateRequest struct {
	Prompt      string               `json:"prompt"`
	LectureURLs []string             `json:"lecture_urls"`
	Difficulty  string               `json:"difficulty"`
	Feedback    string               `json:"feedback"`
	PrevVersion *generation.Artifact `json:"prev_version"`
}

func (h *GenerationHandler) GenerateAssignment(c *gin.Context) {
	h.generate(c, generation.OptionAssignment)
}

func (h *GenerationHandler) GenerateQuiz(c *gin.Context) {
	h.generate(c, generation.OptionQuiz)
}

func (h *GenerationHandler) GeneratePractice(c *gin.Context) {
	h.generate(c, generation.OptionPractice)
}

func (h *GenerationHandler) generate(c *gin.Context, option generation.Option) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	result, err := h.engine.Run(c.Request.Context(), generation.Request{
		Prompt:        req.Prompt,
		Option:        option,
		Difficulty:    generation.Difficulty(req.Difficulty),
		URLs:          req.LectureURLs,
		HumanFeedback: req.Feedback,
		PriorArtifact: req.PrevVersion,
	})
	if err != nil {
		if errors.Is(err, apperr.ErrInvalidArgument) {
			response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
			return
		}
		h.log.Error("generation workflow failed", "option", option, "error", err)
		response.RespondError(c, http.StatusInternalServerError, "generation_failed", err)
		return
	}

	switch result.Status {
	case generation.StatusFailed, generation.StatusInvalid:
		c.JSON(http.StatusBadRequest, gin.H{
			"status": result.Status,
			"reason": result.RejectionReason,
		})
	default:
		response.RespondOK(c, result)
	}
}
