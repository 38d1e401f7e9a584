package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vettia/assessment-backend/internal/platform/apierr"
	"github.com/vettia/assessment-backend/internal/platform/logger"
	"github.com/vettia/assessment-backend/internal/services"
)

type CandidateHandler struct {
	log          *logger.Logger
	candidateSvc services.CandidateService
}

func NewCandidateHandler(log *logger.Logger, candidateSvc services.CandidateService) *CandidateHandler {
	return &CandidateHandler{
		log:          log.With("handler", "CandidateHandler"),
		candidateSvc: candidateSvc,
	}
}

type createCandidateBody struct {
	Email      string  `json:"email"`
	Name       string  `json:"name"`
	InviteCode string  `json:"invite_code"`
	TestID     *string `json:"test_id,omitempty"`
	ProcessID  *string `json:"process_id,omitempty"`
}

// POST /api/candidates
func (h *CandidateHandler) Create(c *gin.Context) {
	var body createCandidateBody
	if err := c.ShouldBindJSON(&body); err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeValidation, err)
		return
	}

	input := services.CreateCandidateInput{
		Email:      body.Email,
		Name:       body.Name,
		InviteCode: body.InviteCode,
	}
	if body.TestID != nil {
		id, err := uuid.Parse(*body.TestID)
		if err != nil {
			RespondError(c, http.StatusBadRequest, apierr.CodeValidation, fmt.Errorf("test_id: %w", err))
			return
		}
		input.TestID = &id
	}
	if body.ProcessID != nil {
		id, err := uuid.Parse(*body.ProcessID)
		if err != nil {
			RespondError(c, http.StatusBadRequest, apierr.CodeValidation, fmt.Errorf("process_id: %w", err))
			return
		}
		input.ProcessID = &id
	}

	candidate, err := h.candidateSvc.Create(c.Request.Context(), input)
	if err != nil {
		RespondAPIError(c, err, nil)
		return
	}
	c.JSON(http.StatusCreated, candidate)
}
