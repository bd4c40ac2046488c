package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/goodman-rb/ai-content-studio/internal/service"
)

const dateLayout = "2006-01-02"

type PlanHandler struct {
	plan *service.PlanService
}

func NewPlanHandler(plan *service.PlanService) *PlanHandler {
	return &PlanHandler{plan: plan}
}

// List returns the content plan, optionally filtered by status, post type
// and publish-date range.
func (h *PlanHandler) List(c *gin.Context) {
	filter := service.PlanFilter{
		Status:   c.Query("status"),
		PostType: c.Query("type"),
		Newest:   c.Query("sort") == "newest",
	}

	if from := c.Query("from"); from != "" {
		t, err := time.Parse(dateLayout, from)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from date, expected YYYY-MM-DD"})
			return
		}
		filter.From = t
	}
	if to := c.Query("to"); to != "" {
		t, err := time.Parse(dateLayout, to)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to date, expected YYYY-MM-DD"})
			return
		}
		// Inclusive end of day.
		filter.To = t.Add(24*time.Hour - time.Second)
	}

	posts, err := h.plan.List(filter)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

// Stats returns the dashboard counters and the upcoming week.
func (h *PlanHandler) Stats(c *gin.Context) {
	stats, err := h.plan.Stats()
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Get returns one scheduled post.
func (h *PlanHandler) Get(c *gin.Context) {
	post, err := h.plan.Get(c.Param("postID"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

// Update edits a scheduled post. Id, post type and creation time are kept.
func (h *PlanHandler) Update(c *gin.Context) {
	var req service.UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := h.plan.Update(c.Param("postID"), req)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

// Delete removes a scheduled post.
func (h *PlanHandler) Delete(c *gin.Context) {
	if err := h.plan.Delete(c.Param("postID")); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": c.Param("postID")})
}
