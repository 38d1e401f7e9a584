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

type TraitGroupHandler struct {
	log      *logger.Logger
	traitSvc services.TraitConfigService
}

func NewTraitGroupHandler(log *logger.Logger, traitSvc services.TraitConfigService) *TraitGroupHandler {
	return &TraitGroupHandler{
		log:      log.With("handler", "TraitGroupHandler"),
		traitSvc: traitSvc,
	}
}

// GET /api/trait-groups/:id
func (h *TraitGroupHandler) GetGroup(c *gin.Context) {
	groupID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	group, traits, err := h.traitSvc.GetGroup(c.Request.Context(), groupID)
	if err != nil {
		RespondAPIError(c, err, nil)
		return
	}
	RespondOK(c, gin.H{"group": group, "selected": traits})
}

type replaceTraitsBody struct {
	TraitNames []string `json:"trait_names"`
}

// PUT /api/trait-groups/:id/traits
// Replace the whole selection; weights are renormalized over the full group.
func (h *TraitGroupHandler) ReplaceTraits(c *gin.Context) {
	groupID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var body replaceTraitsBody
	if err := c.ShouldBindJSON(&body); err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeValidation, err)
		return
	}
	traits, err := h.traitSvc.ReplaceTraits(c.Request.Context(), groupID, body.TraitNames)
	if err != nil {
		RespondAPIError(c, err, nil)
		return
	}
	RespondOK(c, gin.H{"selected": traits})
}

type appendTraitBody struct {
	TraitName string `json:"trait_name"`
}

// POST /api/trait-groups/:id/traits
func (h *TraitGroupHandler) AppendTrait(c *gin.Context) {
	groupID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var body appendTraitBody
	if err := c.ShouldBindJSON(&body); err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeValidation, err)
		return
	}
	if body.TraitName == "" {
		RespondError(c, http.StatusBadRequest, apierr.CodeValidation, fmt.Errorf("trait_name is required"))
		return
	}
	traits, err := h.traitSvc.AppendTrait(c.Request.Context(), groupID, body.TraitName)
	if err != nil {
		RespondAPIError(c, err, nil)
		return
	}
	RespondOK(c, gin.H{"selected": traits})
}

// DELETE /api/trait-groups/:id/traits/:traitId
func (h *TraitGroupHandler) RemoveTrait(c *gin.Context) {
	groupID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	traitID, ok := parseIDParam(c, "traitId")
	if !ok {
		return
	}
	traits, err := h.traitSvc.RemoveTrait(c.Request.Context(), groupID, traitID)
	if err != nil {
		RespondAPIError(c, err, nil)
		return
	}
	RespondOK(c, gin.H{"selected": traits})
}

type moveTraitBody struct {
	Direction string `json:"direction"`
}

// POST /api/trait-groups/:id/traits/:traitId/move
func (h *TraitGroupHandler) MoveTrait(c *gin.Context) {
	groupID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	traitID, ok := parseIDParam(c, "traitId")
	if !ok {
		return
	}
	var body moveTraitBody
	if err := c.ShouldBindJSON(&body); err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeValidation, err)
		return
	}
	traits, err := h.traitSvc.MoveTrait(c.Request.Context(), groupID, traitID, services.MoveDirection(body.Direction))
	if err != nil {
		RespondAPIError(c, err, nil)
		return
	}
	RespondOK(c, gin.H{"selected": traits})
}

func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeValidation, fmt.Errorf("%s: %w", name, err))
		return uuid.Nil, false
	}
	return id, true
}
