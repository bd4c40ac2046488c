package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/goodman-rb/ai-content-studio/internal/service"
)

type SettingsHandler struct {
	settings *service.SettingsService
}

func NewSettingsHandler(settings *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

// GetSettings returns the salon-wide generation facts.
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	settings, err := h.settings.GetSettings()
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

// UpdateSettings upserts the given keys.
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	var req map[string]string
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(req) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no settings given"})
		return
	}

	if err := h.settings.UpdateSettings(req); err != nil {
		abortWithError(c, err)
		return
	}

	settings, err := h.settings.GetSettings()
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

// ListPrompts returns the active templates with the placeholder reference.
func (h *SettingsHandler) ListPrompts(c *gin.Context) {
	prompts, err := h.settings.ListPrompts()
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"prompts":   prompts,
		"variables": service.PromptVariables,
	})
}

type updatePromptRequest struct {
	Text string `json:"text" binding:"required"`
}

// UpdatePrompt replaces a template body by prompt id.
func (h *SettingsHandler) UpdatePrompt(c *gin.Context) {
	var req updatePromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.settings.UpdatePromptText(c.Param("promptID"), req.Text); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": c.Param("promptID")})
}

// ListServices returns the salon service reference table with the
// discounts applicable to each service's category.
func (h *SettingsHandler) ListServices(c *gin.Context) {
	services, err := h.settings.ListServicesWithDiscounts()
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, services)
}

// ListDiscounts returns discounts, optionally narrowed to a category.
func (h *SettingsHandler) ListDiscounts(c *gin.Context) {
	discounts, err := h.settings.ListDiscounts(c.Query("category"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, discounts)
}
