package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aviato-app/aviato-backend/internal/common/auth"
	"github.com/aviato-app/aviato-backend/internal/common/middleware"
	"github.com/aviato-app/aviato-backend/internal/features/chat/models"
	"github.com/aviato-app/aviato-backend/internal/features/chat/service"
	usermodels "github.com/aviato-app/aviato-backend/internal/features/user/models"
)

type ChatHandler struct {
	service service.ChatService
	tokens  *auth.TokenIssuer
}

func NewChatHandler(service service.ChatService, tokens *auth.TokenIssuer) *ChatHandler {
	return &ChatHandler{
		service: service,
		tokens:  tokens,
	}
}

func (h *ChatHandler) RegisterRoutes(router *gin.RouterGroup) {
	convs := router.Group("/conversations")
	convs.Use(middleware.RequireAuth(h.tokens))
	{
		convs.GET("", h.list)
		convs.POST("", h.start)
		convs.GET("/timer/:userID", h.timerState)
		convs.GET("/:id", h.get)
		convs.POST("/:id/messages", h.sendMessage)
		convs.POST("/:id/rate", h.rate)
		convs.POST("/:id/prompt/dismiss", h.dismissPrompt)
		convs.GET("/:id/ghosting", h.ghostingState)
	}
}

// @Summary List conversations
// @Description List the caller's conversations, most recently active first
// @Tags conversations
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.ConversationView "Conversations"
// @Router /conversations [get]
func (h *ChatHandler) list(c *gin.Context) {
	views, err := h.service.List(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

// @Summary Start a conversation
// @Description Open a conversation with the target user, or return the existing one for the pair
// @Tags conversations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.StartRequest true "Target user"
// @Success 200 {object} models.StartResponse "Conversation id and status"
// @Failure 403 {object} usermodels.ErrorResponse "Target cannot be contacted"
// @Failure 404 {object} usermodels.ErrorResponse "Target not found"
// @Router /conversations [post]
func (h *ChatHandler) start(c *gin.Context) {
	var req models.StartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.service.Start(c.Request.Context(), middleware.CurrentUserID(c), req.UserID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Get a conversation
// @Tags conversations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Conversation ID"
// @Success 200 {object} models.ConversationView "Conversation"
// @Failure 404 {object} usermodels.ErrorResponse "Conversation not found"
// @Router /conversations/{id} [get]
func (h *ChatHandler) get(c *gin.Context) {
	view, err := h.service.Get(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary Send a message
// @Description Append a message to the conversation, starting a new round if the previous one is finished
// @Tags conversations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Conversation ID"
// @Param request body models.SendMessageRequest true "Message text"
// @Success 200 {object} models.ConversationView "Updated conversation"
// @Failure 403 {object} usermodels.ErrorResponse "Target is unavailable or at their contact cap"
// @Failure 404 {object} usermodels.ErrorResponse "Conversation not found"
// @Router /conversations/{id}/messages [post]
func (h *ChatHandler) sendMessage(c *gin.Context) {
	var req models.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	view, err := h.service.SendMessage(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id"), req.Text)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary Rate the current round
// @Description Record the round's outcome and apply the approval delta to the counterpart
// @Tags conversations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Conversation ID"
// @Param request body models.RateRequest true "Rating"
// @Success 200 {object} models.ConversationView "Updated conversation"
// @Failure 403 {object} usermodels.ErrorResponse "Caller may not rate this round"
// @Failure 404 {object} usermodels.ErrorResponse "Conversation not found"
// @Router /conversations/{id}/rate [post]
func (h *ChatHandler) rate(c *gin.Context) {
	var req models.RateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	view, err := h.service.Rate(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id"), &req)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary Poll the round timer
// @Description Evaluate the round against the counterpart, including whether the rating prompt should surface
// @Tags conversations
// @Produce json
// @Security BearerAuth
// @Param userID path string true "Counterpart user ID"
// @Success 200 {object} service.TimerStateResponse "Timer state"
// @Failure 404 {object} usermodels.ErrorResponse "No conversation with this user"
// @Router /conversations/timer/{userID} [get]
func (h *ChatHandler) timerState(c *gin.Context) {
	resp, err := h.service.TimerState(c.Request.Context(), middleware.CurrentUserID(c), c.Param("userID"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Dismiss the rating prompt
// @Description Mark the current round's prompt as handled so polling does not re-raise it
// @Tags conversations
// @Security BearerAuth
// @Param id path string true "Conversation ID"
// @Success 204 "Prompt dismissed"
// @Failure 404 {object} usermodels.ErrorResponse "Conversation not found"
// @Router /conversations/{id}/prompt/dismiss [post]
func (h *ChatHandler) dismissPrompt(c *gin.Context) {
	if err := h.service.DismissPrompt(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id")); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Poll the ghosting watch
// @Description Evaluate the long-horizon no-reply watch for the conversation
// @Tags conversations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Conversation ID"
// @Success 200 {object} service.GhostingStateResponse "Ghosting state"
// @Failure 404 {object} usermodels.ErrorResponse "Conversation not found"
// @Router /conversations/{id}/ghosting [get]
func (h *ChatHandler) ghostingState(c *gin.Context) {
	resp, err := h.service.GhostingState(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func abortWithError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, models.ErrConversationNotFound),
		errors.Is(err, usermodels.ErrUserNotFound):
		status = http.StatusNotFound
	case errors.Is(err, models.ErrTargetUnavailable),
		errors.Is(err, models.ErrMaxContactsReached),
		errors.Is(err, models.ErrNotRoundSender):
		status = http.StatusForbidden
	case errors.Is(err, models.ErrRoundAlreadyRated):
		status = http.StatusConflict
	}
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}
