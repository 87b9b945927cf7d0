package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"alcyxob/fitplan/internal/domain"
	"alcyxob/fitplan/internal/service"

	"github.com/gin-gonic/gin"
)

// PlanHandler serves the gated assessment, plan and progress endpoints.
type PlanHandler struct{}

func NewPlanHandler() *PlanHandler {
	return &PlanHandler{}
}

// --- Request/Response Structs ---

// MonthlyPlanSummary is a plan list entry. Content of locked months is not
// exposed.
type MonthlyPlanSummary struct {
	Month     int                 `json:"month"`
	Unlocked  bool                `json:"unlocked"`
	RenewedAt *string             `json:"renewedAt,omitempty"`
	Plan      *domain.MonthlyPlan `json:"plan,omitempty"`
}

type WaterRequest struct {
	Ml *int `json:"ml" binding:"required"`
}

type ProgressResponse struct {
	Result   service.ProgressResult `json:"result"`
	Progress domain.ProgressRecord  `json:"progress"`
}

// MapPlanToSummary converts a plan to its list entry.
func MapPlanToSummary(p domain.MonthlyPlan) MonthlyPlanSummary {
	s := MonthlyPlanSummary{Month: p.Month, Unlocked: p.Unlocked}
	if p.RenewedAt != nil {
		ts := p.RenewedAt.UTC().Format(time.RFC3339)
		s.RenewedAt = &ts
	}
	if p.Unlocked {
		plan := p
		s.Plan = &plan
	}
	return s
}

// --- Handler Methods ---

func (h *PlanHandler) GetAssessment(c *gin.Context) {
	session, ok := sessionOrAbort(c)
	if !ok {
		return
	}
	assessment, err := session.Assessment()
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, assessment)
}

func (h *PlanHandler) GetPlans(c *gin.Context) {
	session, ok := sessionOrAbort(c)
	if !ok {
		return
	}
	plans, err := session.Plans()
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	resp := make([]MonthlyPlanSummary, 0, len(plans))
	for _, p := range plans {
		resp = append(resp, MapPlanToSummary(p))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PlanHandler) GetPlan(c *gin.Context) {
	session, ok := sessionOrAbort(c)
	if !ok {
		return
	}
	month, ok := monthParam(c)
	if !ok {
		return
	}
	plan, err := session.Plan(month)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

// RenewMonth unlocks the month (and any earlier locked month).
func (h *PlanHandler) RenewMonth(c *gin.Context) {
	session, ok := sessionOrAbort(c)
	if !ok {
		return
	}
	month, ok := monthParam(c)
	if !ok {
		return
	}
	plan, err := session.RenewMonth(c.Request.Context(), month)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

func (h *PlanHandler) GetProgress(c *gin.Context) {
	session, ok := sessionOrAbort(c)
	if !ok {
		return
	}
	progress, err := session.Progress(c.Request.Context())
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, progress)
}

func (h *PlanHandler) CompleteWorkout(c *gin.Context) {
	h.progressEvent(c, func(s *service.Session) (service.ProgressResult, error) {
		return s.CompleteWorkout(c.Request.Context(), c.Param("id"))
	})
}

func (h *PlanHandler) CompleteMeal(c *gin.Context) {
	h.progressEvent(c, func(s *service.Session) (service.ProgressResult, error) {
		return s.CompleteMeal(c.Request.Context(), c.Param("id"))
	})
}

func (h *PlanHandler) LogWater(c *gin.Context) {
	var req WaterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	h.progressEvent(c, func(s *service.Session) (service.ProgressResult, error) {
		return s.LogWater(c.Request.Context(), *req.Ml)
	})
}

func (h *PlanHandler) progressEvent(c *gin.Context, apply func(*service.Session) (service.ProgressResult, error)) {
	session, ok := sessionOrAbort(c)
	if !ok {
		return
	}
	res, err := apply(session)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	progress, err := session.Progress(c.Request.Context())
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ProgressResponse{Result: res, Progress: progress})
}

func monthParam(c *gin.Context) (int, bool) {
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid month format")
		return 0, false
	}
	return month, true
}
