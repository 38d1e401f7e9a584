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

type ResolutionHandler struct {
	log           *logger.Logger
	resolutionSvc services.ResolutionService
}

func NewResolutionHandler(log *logger.Logger, resolutionSvc services.ResolutionService) *ResolutionHandler {
	return &ResolutionHandler{
		log:           log.With("handler", "ResolutionHandler"),
		resolutionSvc: resolutionSvc,
	}
}

type resolutionRequestBody struct {
	StageRef    string  `json:"stage_ref"`
	CandidateID *string `json:"candidate_id,omitempty"`
	TestID      *string `json:"test_id,omitempty"`
}

// POST /api/resolution
// Resolve the stage and question set a candidate should see.
func (h *ResolutionHandler) Resolve(c *gin.Context) {
	var body resolutionRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeValidation, err)
		return
	}

	req := services.ResolutionRequest{StageRef: body.StageRef}
	if body.CandidateID != nil {
		id, err := uuid.Parse(*body.CandidateID)
		if err != nil {
			RespondError(c, http.StatusBadRequest, apierr.CodeValidation, fmt.Errorf("candidate_id: %w", err))
			return
		}
		req.CandidateID = &id
	}
	if body.TestID != nil {
		id, err := uuid.Parse(*body.TestID)
		if err != nil {
			RespondError(c, http.StatusBadRequest, apierr.CodeValidation, fmt.Errorf("test_id: %w", err))
			return
		}
		req.TestID = &id
	}

	result, err := h.resolutionSvc.Resolve(c.Request.Context(), req)
	if err != nil {
		var extra any
		if result != nil {
			extra = gin.H{"resolution_trace": result.Trace}
		}
		RespondAPIError(c, err, extra)
		return
	}
	RespondOK(c, result)
}
