package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/aviato-app/aviato-backend/internal/common/auth"
	"github.com/aviato-app/aviato-backend/internal/common/middleware"
	"github.com/aviato-app/aviato-backend/internal/features/availability"
	"github.com/aviato-app/aviato-backend/internal/features/reputation"
	"github.com/aviato-app/aviato-backend/internal/features/user/models"
	"github.com/aviato-app/aviato-backend/internal/features/user/service"
)

type UserHandler struct {
	service service.UserService
	ledger  reputation.Ledger
	tokens  *auth.TokenIssuer
}

func NewUserHandler(service service.UserService, ledger reputation.Ledger, tokens *auth.TokenIssuer) *UserHandler {
	return &UserHandler{
		service: service,
		ledger:  ledger,
		tokens:  tokens,
	}
}

func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup) {
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/signup", h.signup)
		authGroup.POST("/login", h.login)
	}

	users := router.Group("/users")
	users.Use(middleware.RequireAuth(h.tokens))
	{
		users.GET("", h.listUsers)
		users.GET("/me", h.getMe)
		users.PUT("/me", h.updateMe)
		users.POST("/me/mode", h.activateMode)
		users.DELETE("/me/mode", h.deactivateMode)
		users.GET("/:id", h.getUser)
		users.GET("/:id/availability", h.getAvailability)
		users.POST("/:id/reviews", h.submitReview)
	}

	matches := router.Group("/matches")
	matches.Use(middleware.RequireAuth(h.tokens))
	{
		matches.GET("", h.getMatches)
	}
}

// @Summary Sign up
// @Description Register a new account and return an access token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.SignupRequest true "Signup data"
// @Success 201 {object} models.TokenResponse "Token and profile"
// @Failure 400 {object} models.ErrorResponse "Invalid request"
// @Failure 409 {object} models.ErrorResponse "Email already registered"
// @Router /auth/signup [post]
func (h *UserHandler) signup(c *gin.Context) {
	var req models.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.service.Signup(c.Request.Context(), &req)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// @Summary Log in
// @Description Exchange email and password for an access token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Credentials"
// @Success 200 {object} models.TokenResponse "Token and profile"
// @Failure 401 {object} models.ErrorResponse "Invalid credentials"
// @Router /auth/login [post]
func (h *UserHandler) login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		// Do not reveal whether the email exists.
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Incorrect email or password"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Get current user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.User "Profile"
// @Failure 404 {object} models.ErrorResponse "User not found"
// @Router /users/me [get]
func (h *UserHandler) getMe(c *gin.Context) {
	user, err := h.service.GetUser(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// @Summary Update current user
// @Description Apply a partial profile update; omitted fields are untouched
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.UserUpdate true "Fields to update"
// @Success 200 {object} models.User "Updated profile"
// @Failure 400 {object} models.ErrorResponse "Invalid request"
// @Router /users/me [put]
func (h *UserHandler) updateMe(c *gin.Context) {
	var req models.UserUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.service.UpdateProfile(c.Request.Context(), middleware.CurrentUserID(c), &req)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// @Summary List users
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.User "All profiles"
// @Router /users [get]
func (h *UserHandler) listUsers(c *gin.Context) {
	users, err := h.service.ListUsers(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// @Summary Get user by ID
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} models.User "Profile"
// @Failure 404 {object} models.ErrorResponse "User not found"
// @Router /users/{id} [get]
func (h *UserHandler) getUser(c *gin.Context) {
	user, err := h.service.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// @Summary Evaluate a user's availability
// @Description Evaluate the user's availability mode at the current instant
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} availability.Verdict "Availability verdict"
// @Failure 404 {object} models.ErrorResponse "User not found"
// @Router /users/{id}/availability [get]
func (h *UserHandler) getAvailability(c *gin.Context) {
	user, err := h.service.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, availability.Evaluate(user.Subject(), time.Now()))
}

type reviewRequest struct {
	Rating float64 `json:"rating" binding:"required"`
}

// @Summary Submit a review
// @Description Append a 1-5 star review to the target user
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Target user ID"
// @Param request body reviewRequest true "Review"
// @Success 200 {object} models.User "Updated target profile"
// @Failure 400 {object} models.ErrorResponse "Invalid rating"
// @Failure 404 {object} models.ErrorResponse "User not found"
// @Router /users/{id}/reviews [post]
func (h *UserHandler) submitReview(c *gin.Context) {
	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rater, err := h.service.GetUser(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		abortWithError(c, err)
		return
	}

	review := models.Review{
		RaterID:         rater.ID,
		RaterName:       rater.Name,
		RaterProfilePic: rater.ProfilePic,
		Rating:          req.Rating,
	}
	if err := h.ledger.SubmitReview(c.Request.Context(), c.Param("id"), review); err != nil {
		abortWithError(c, err)
		return
	}

	target, err := h.service.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, target)
}

// @Summary Activate an availability mode
// @Description Switch the caller to the requested mode with its parameters
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.ModeChange true "Mode and parameters"
// @Success 200 {object} models.User "Updated profile"
// @Failure 400 {object} models.ErrorResponse "Invalid mode or parameters"
// @Router /users/me/mode [post]
func (h *UserHandler) activateMode(c *gin.Context) {
	var req models.ModeChange
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.service.ActivateMode(c.Request.Context(), middleware.CurrentUserID(c), &req)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// @Summary Deactivate the current availability mode
// @Description Turn the active mode off; green resumes everywhere except green itself, which goes invisible
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.User "Updated profile"
// @Router /users/me/mode [delete]
func (h *UserHandler) deactivateMode(c *gin.Context) {
	user, err := h.service.DeactivateMode(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// @Summary Get matches
// @Description List all other users ranked by selection overlap with the caller
// @Tags matches
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.MatchResult "Ranked matches"
// @Router /matches [get]
func (h *UserHandler) getMatches(c *gin.Context) {
	matches, err := h.service.FindMatches(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, matches)
}

func abortWithError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, models.ErrUserNotFound):
		status = http.StatusNotFound
	case errors.Is(err, models.ErrEmailTaken):
		status = http.StatusConflict
	case errors.Is(err, models.ErrInvalidModeParams),
		errors.Is(err, models.ErrModeRetired),
		errors.Is(err, models.ErrLockNotConfirmed),
		errors.Is(err, models.ErrTooManySelections),
		errors.Is(err, models.ErrInvalidReview):
		status = http.StatusBadRequest
	}
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}
