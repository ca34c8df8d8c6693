package v1

import (
	"errors"
	"net/http"

	"go-talentscout-backend/internal/delivery/http/response"
	"go-talentscout-backend/internal/domain"
	"go-talentscout-backend/pkg/apperror"
	"go-talentscout-backend/pkg/privacy"

	"github.com/gin-gonic/gin"
)

type SessionHandler struct {
	conversationUC domain.ConversationUsecase
}

// NewSessionHandler registers the conversation session routes
func NewSessionHandler(rg *gin.RouterGroup, conversationUC domain.ConversationUsecase, messageLimiter gin.HandlerFunc) {
	handler := &SessionHandler{
		conversationUC: conversationUC,
	}

	rg.POST("/sessions", handler.StartSession)
	rg.GET("/sessions/:id", handler.GetSession)
	rg.POST("/sessions/:id/messages", messageLimiter, handler.PostMessage)
	rg.PUT("/sessions/:id/consent", handler.SetConsent)
	rg.POST("/sessions/:id/save", handler.Save)
	rg.POST("/sessions/:id/reset", handler.Reset)
	rg.DELETE("/sessions/:id", handler.Delete)
}

// MessageRequest is one user chat message. Length policy lives in the
// conversation usecase, which truncates or rejects per step.
type MessageRequest struct {
	Message string `json:"message" binding:"required"`
}

// ConsentRequest toggles the storage consent flag.
type ConsentRequest struct {
	Consent bool `json:"consent"`
}

// StartSession godoc
// @Summary      Start Screening Session
// @Description  Create a new conversation session and return the greeting turn.
// @Tags         sessions
// @Produce      json
// @Success      201  {object}  response.Response
// @Router       /sessions [post]
func (h *SessionHandler) StartSession(c *gin.Context) {
	result, err := h.conversationUC.StartSession(c.Request.Context())
	if err != nil {
		c.Error(apperror.Internal(err))
		return
	}
	response.Success(c, http.StatusCreated, "Session started", result)
}

// PostMessage godoc
// @Summary      Send Chat Message
// @Description  Run one conversation turn: extraction, merge, state transition and reply.
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        id       path      string          true  "Session ID"
// @Param        message  body      MessageRequest  true  "User Message"
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /sessions/{id}/messages [post]
func (h *SessionHandler) PostMessage(c *gin.Context) {
	var req MessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	result, err := h.conversationUC.HandleMessage(c.Request.Context(), c.Param("id"), req.Message)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Turn processed", result)
}

// GetSession godoc
// @Summary      Session Snapshot
// @Description  Return the dashboard view of a session: profile (phone redacted), step and progress.
// @Tags         sessions
// @Produce      json
// @Param        id   path      string  true  "Session ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /sessions/{id} [get]
func (h *SessionHandler) GetSession(c *gin.Context) {
	snapshot, err := h.conversationUC.Snapshot(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}

	// The snapshot leaves the process, so the phone is masked for display.
	snapshot.Candidate.Phone = privacy.RedactPhone(snapshot.Candidate.Phone)
	response.Success(c, http.StatusOK, "Session snapshot", snapshot)
}

// SetConsent godoc
// @Summary      Set Storage Consent
// @Description  Toggle whether the candidate's record may be persisted at session end.
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        id       path      string          true  "Session ID"
// @Param        consent  body      ConsentRequest  true  "Consent Flag"
// @Success      200      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /sessions/{id}/consent [put]
func (h *SessionHandler) SetConsent(c *gin.Context) {
	var req ConsentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	if err := h.conversationUC.SetConsent(c.Request.Context(), c.Param("id"), req.Consent); err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Consent updated", nil)
}

// Save godoc
// @Summary      Save Candidate Record
// @Description  Persist the consented profile immediately. Without consent nothing is written.
// @Tags         sessions
// @Produce      json
// @Param        id   path      string  true  "Session ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /sessions/{id}/save [post]
func (h *SessionHandler) Save(c *gin.Context) {
	savedID, err := h.conversationUC.Save(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	if savedID == "" {
		response.Success(c, http.StatusOK, "Not saved (no consent). Toggle consent to allow storage.", nil)
		return
	}
	response.Success(c, http.StatusOK, "Candidate record stored securely.", gin.H{"candidate_id": savedID})
}

// Reset godoc
// @Summary      Reset Session
// @Description  Return the session to its initial empty state.
// @Tags         sessions
// @Produce      json
// @Param        id   path      string  true  "Session ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /sessions/{id}/reset [post]
func (h *SessionHandler) Reset(c *gin.Context) {
	if err := h.conversationUC.Reset(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Session reset", nil)
}

// Delete godoc
// @Summary      Delete Session
// @Description  Discard the session entirely. Nothing is persisted.
// @Tags         sessions
// @Produce      json
// @Param        id   path      string  true  "Session ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /sessions/{id} [delete]
func (h *SessionHandler) Delete(c *gin.Context) {
	if err := h.conversationUC.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Session deleted", nil)
}

func (h *SessionHandler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		c.Error(apperror.NotFound("Session not found"))
	case errors.Is(err, domain.ErrPersistence):
		c.Error(apperror.Unavailable("Failed to save candidate record. Please try again later.", err))
	default:
		c.Error(apperror.Internal(err))
	}
}
