package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	templateRepo "skybook/database/repository/template"
	"skybook/utils"
)

// TemplateHandler serves the immutable booking templates customers open by token.
type TemplateHandler struct {
	Templates templateRepo.TemplateRepository
	Logger    *zap.Logger
}

// NewTemplateHandler returns a TemplateHandler.
func NewTemplateHandler(templates templateRepo.TemplateRepository, logger *zap.Logger) *TemplateHandler {
	return &TemplateHandler{Templates: templates, Logger: logger}
}

// GetTemplate handles GET /api/templates/:token. An unknown or expired token
// is a terminal not-found; there is nothing to retry.
func (h *TemplateHandler) GetTemplate(c *gin.Context) {
	token := c.Param("token")

	bundle, err := h.Templates.GetByToken(c.Request.Context(), token)
	if err != nil {
		if errors.Is(err, templateRepo.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "template not found"})
			return
		}
		h.Logger.Error("failed to load template", zap.String("token", token), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to load template", "please try again later")
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": bundle})
}
