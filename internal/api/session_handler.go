package api

import (
	"fmt"
	"net/http"

	"alcyxob/fitplan/internal/domain"
	"alcyxob/fitplan/internal/service"

	"github.com/gin-gonic/gin"
)

// SessionHandler serves the intake, subscription and view endpoints.
type SessionHandler struct {
	sessions service.SessionManager
	tokens   *TokenIssuer
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(sessions service.SessionManager, tokens *TokenIssuer) *SessionHandler {
	return &SessionHandler{sessions: sessions, tokens: tokens}
}

// --- Request/Response Structs ---

type CreateSessionResponse struct {
	Token   string              `json:"token"`
	Session service.SessionView `json:"session"`
}

type IdentityRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

// AnswerRequest carries either one value or, for multi-select questions, a
// list of values.
type AnswerRequest struct {
	Value  *string  `json:"value"`
	Values []string `json:"values"`
}

type AdvanceResponse struct {
	Result  service.AdvanceResult `json:"result"`
	Session service.SessionView   `json:"session"`
}

type RetreatResponse struct {
	Moved   bool                `json:"moved"`
	Session service.SessionView `json:"session"`
}

type SubscriptionRequest struct {
	Plan domain.SubscriptionPlan `json:"plan" binding:"required"`
}

type ViewResponse struct {
	ActiveView service.View `json:"activeView"`
}

type ThemeRequest struct {
	DarkMode *bool `json:"darkMode" binding:"required"`
}

// --- Handler Methods ---

// CreateSession starts a new onboarding session and returns its token.
func (h *SessionHandler) CreateSession(c *gin.Context) {
	session, err := h.sessions.Create(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Could not create session")
		return
	}
	token, err := h.tokens.Issue(session.ID())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Could not issue session token")
		return
	}
	c.JSON(http.StatusCreated, CreateSessionResponse{Token: token, Session: session.View()})
}

func (h *SessionHandler) GetSession(c *gin.Context) {
	session, ok := sessionOrAbort(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, session.View())
}

// ResetSession tears the session down to a fresh questionnaire.
func (h *SessionHandler) ResetSession(c *gin.Context) {
	session, ok := sessionOrAbort(c)
	if !ok {
		return
	}
	session.Reset(c.Request.Context())
	c.JSON(http.StatusOK, session.View())
}

// GetQuestions lists the questionnaire in order.
func (h *SessionHandler) GetQuestions(c *gin.Context) {
	c.JSON(http.StatusOK, domain.Questions)
}

func (h *SessionHandler) SetIdentity(c *gin.Context) {
	session, ok := sessionOrAbort(c)
	if !ok {
		return
	}
	var req IdentityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	identity := domain.Identity{Name: req.Name, Phone: req.Phone, Email: req.Email}
	if err := session.SetIdentity(c.Request.Context(), identity); err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, session.View())
}

func (h *SessionHandler) Answer(c *gin.Context) {
	session, ok := sessionOrAbort(c)
	if !ok {
		return
	}
	var req AnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	values := req.Values
	if req.Value != nil {
		values = append([]string{*req.Value}, values...)
	}

	id := domain.QuestionID(c.Param("questionId"))
	if err := session.Answer(c.Request.Context(), id, values...); err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, session.View())
}

// Advance moves to the next step. A refused advance is a normal 200 response
// with result "refused".
func (h *SessionHandler) Advance(c *gin.Context) {
	session, ok := sessionOrAbort(c)
	if !ok {
		return
	}
	res, err := session.Advance(c.Request.Context())
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, AdvanceResponse{Result: res, Session: session.View()})
}

func (h *SessionHandler) Retreat(c *gin.Context) {
	session, ok := sessionOrAbort(c)
	if !ok {
		return
	}
	moved := session.Retreat(c.Request.Context())
	c.JSON(http.StatusOK, RetreatResponse{Moved: moved, Session: session.View()})
}

// ConfirmSubscription records a successful payment for the chosen plan.
func (h *SessionHandler) ConfirmSubscription(c *gin.Context) {
	session, ok := sessionOrAbort(c)
	if !ok {
		return
	}
	var req SubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	if err := session.ConfirmSubscription(c.Request.Context(), req.Plan); err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, session.View())
}

func (h *SessionHandler) ExpireSubscription(c *gin.Context) {
	session, ok := sessionOrAbort(c)
	if !ok {
		return
	}
	if err := session.Expire(c.Request.Context()); err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, session.View())
}

func (h *SessionHandler) ReactivateSubscription(c *gin.Context) {
	session, ok := sessionOrAbort(c)
	if !ok {
		return
	}
	if err := session.Reactivate(c.Request.Context()); err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, session.View())
}

// Navigate switches the active view. Gated views are silently ignored while
// locked, so the response always carries the view actually active.
func (h *SessionHandler) Navigate(c *gin.Context) {
	session, ok := sessionOrAbort(c)
	if !ok {
		return
	}
	view, err := session.Navigate(c.Request.Context(), service.View(c.Param("view")))
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ViewResponse{ActiveView: view})
}

func (h *SessionHandler) SetTheme(c *gin.Context) {
	session, ok := sessionOrAbort(c)
	if !ok {
		return
	}
	var req ThemeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	session.SetTheme(c.Request.Context(), *req.DarkMode)
	c.JSON(http.StatusOK, session.View())
}

func sessionOrAbort(c *gin.Context) (*service.Session, bool) {
	session, err := getSessionFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return nil, false
	}
	return session, true
}
