package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/job-board-api/internal/auth"
	"github.com/yukikurage/job-board-api/internal/constants"
	"github.com/yukikurage/job-board-api/internal/dto"
	apierrors "github.com/yukikurage/job-board-api/internal/errors"
	"github.com/yukikurage/job-board-api/internal/middleware"
	"github.com/yukikurage/job-board-api/internal/services"
)

// AuthHandler coordinates authentication-related HTTP handlers.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// RegisterUser creates a candidate account.
func (h *AuthHandler) RegisterUser(c *gin.Context) {
	type RegisterUserRequest struct {
		Email      string   `json:"email" binding:"required,email"`
		Password   string   `json:"password" binding:"required"`
		FirstName  string   `json:"first_name" binding:"max=100"`
		LastName   string   `json:"last_name" binding:"max=100"`
		Phone      string   `json:"phone" binding:"max=30"`
		Skills     []string `json:"skills"`
		Experience string   `json:"experience"`
		ResumeURL  string   `json:"resume_url" binding:"omitempty,url"`
	}

	var req RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.InvalidRequestBody(c, err)
		return
	}

	user, err := h.authService.RegisterUser(services.RegisterUserInput{
		Email:      req.Email,
		Password:   req.Password,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Phone:      req.Phone,
		Skills:     req.Skills,
		Experience: req.Experience,
		ResumeURL:  req.ResumeURL,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserDTO(*user))
}

// RegisterCompany creates a company account.
func (h *AuthHandler) RegisterCompany(c *gin.Context) {
	type RegisterCompanyRequest struct {
		Email       string `json:"email" binding:"required,email"`
		Password    string `json:"password" binding:"required"`
		Name        string `json:"name" binding:"required,max=255"`
		Description string `json:"description"`
		Sector      string `json:"sector" binding:"max=100"`
		Address     string `json:"address" binding:"max=255"`
		Website     string `json:"website" binding:"omitempty,url"`
	}

	var req RegisterCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.InvalidRequestBody(c, err)
		return
	}

	company, err := h.authService.RegisterCompany(services.RegisterCompanyInput{
		Email:       req.Email,
		Password:    req.Password,
		Name:        req.Name,
		Description: req.Description,
		Sector:      req.Sector,
		Address:     req.Address,
		Website:     req.Website,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToCompanyDTO(*company, true))
}

// Login authenticates an account and issues a bearer token.
func (h *AuthHandler) Login(c *gin.Context) {
	type LoginRequest struct {
		Email    string    `json:"email" binding:"required"`
		Password string    `json:"password" binding:"required"`
		Role     auth.Role `json:"role" binding:"required,oneof=user company"`
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.InvalidRequestBody(c, err)
		return
	}

	session, err := h.authService.Login(services.LoginInput{
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.TokenResponse{
		AccessToken: session.Token,
		TokenType:   "Bearer",
		ExpiresAt:   session.ExpiresAt,
		Role:        session.Actor.Role,
		AccountID:   session.Actor.ID,
	})
}

// Logout revokes the current token.
func (h *AuthHandler) Logout(c *gin.Context) {
	claims, exists := middleware.GetClaims(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	revoked, err := h.authService.Logout(c.Request.Context(), claims)
	if err != nil {
		apierrors.ServiceUnavailable(c, "Failed to logout")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Logged out successfully",
		"revoked": revoked,
	})
}

// GetCurrentAccount returns the authenticated account.
func (h *AuthHandler) GetCurrentAccount(c *gin.Context) {
	actor, exists := middleware.GetActor(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	account, err := h.authService.Me(actor)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	response := dto.MeResponse{Role: actor.Role}
	if account.User != nil {
		user := dto.ToUserDTO(*account.User)
		response.User = &user
	}
	if account.Company != nil {
		company := dto.ToCompanyDTO(*account.Company, true)
		response.Company = &company
	}

	c.JSON(http.StatusOK, response)
}

func respondAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrPasswordTooShort):
		apierrors.BadRequest(c, fmt.Sprintf("Password must be at least %d characters", constants.MinPasswordLength))
	case errors.Is(err, services.ErrInvalidEmail),
		errors.Is(err, services.ErrCompanyNameRequired),
		errors.Is(err, services.ErrInvalidRole):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrEmailTaken):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.RespondWithError(c, http.StatusUnauthorized, apierrors.NewAPIError(apierrors.ErrCodeInvalidCredentials, err.Error()))
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrCompanyNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrFailedToHashPassword):
		apierrors.InternalError(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
