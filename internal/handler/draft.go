package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/goodman-rb/ai-content-studio/internal/model"
	"github.com/goodman-rb/ai-content-studio/internal/service"
)

type DraftHandler struct {
	drafts   *service.DraftService
	settings *service.SettingsService
}

func NewDraftHandler(drafts *service.DraftService, settings *service.SettingsService) *DraftHandler {
	return &DraftHandler{drafts: drafts, settings: settings}
}

type createDraftRequest struct {
	PostType          string `json:"post_type" binding:"required"`
	ServiceID         uint   `json:"service_id"`
	DiscountID        uint   `json:"discount_id"`
	Theme             string `json:"theme"`
	Age               string `json:"age"`
	PromoCode         string `json:"promo_code"`
	CustomImageURL    string `json:"custom_image_url"`
	CustomImagePrompt string `json:"custom_image_prompt"`
}

// Create starts a new draft session and generates the first content.
func (h *DraftHandler) Create(c *gin.Context) {
	var req createDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	form := service.GenerationForm{
		PostType:          req.PostType,
		Theme:             req.Theme,
		Age:               req.Age,
		PromoCode:         req.PromoCode,
		CustomImageURL:    req.CustomImageURL,
		CustomImagePrompt: req.CustomImagePrompt,
	}
	// Promotional posts need a resolved service before the prompt is built.
	if req.PostType == model.PostTypePromotional {
		if req.ServiceID == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "service_id is required for promotional posts"})
			return
		}
		svc, err := h.settings.GetService(req.ServiceID)
		if err != nil {
			abortWithError(c, err)
			return
		}
		form.Service = svc
		if form.Age == "" {
			form.Age = svc.DefaultAge
		}

		if req.DiscountID != 0 {
			discount, err := h.settings.GetDiscount(req.DiscountID)
			if err != nil {
				abortWithError(c, err)
				return
			}
			form.Discount = discount
		}
	}
	if form.Age == "" {
		form.Age = "Все"
	}

	session, err := h.drafts.Generate(c.Request.Context(), form)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, session)
}

// Get returns the current session state.
func (h *DraftHandler) Get(c *gin.Context) {
	session, err := h.drafts.Get(c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// Regenerate repeats generation within the bounded attempt count.
func (h *DraftHandler) Regenerate(c *gin.Context) {
	session, err := h.drafts.Regenerate(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// Analyze scores the current draft.
func (h *DraftHandler) Analyze(c *gin.Context) {
	session, err := h.drafts.Analyze(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

type improveRequest struct {
	Suggestions string `json:"suggestions"`
}

// Improve applies the operator-edited suggestion list to the draft.
func (h *DraftHandler) Improve(c *gin.Context) {
	var req improveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := h.drafts.Improve(c.Request.Context(), c.Param("id"), req.Suggestions)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// Schedule saves the draft into the content plan and closes the session.
func (h *DraftHandler) Schedule(c *gin.Context) {
	var req service.ScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.PublishAt == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "publish_at is required"})
		return
	}

	post, err := h.drafts.Save(c.Param("id"), req)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, post)
}
