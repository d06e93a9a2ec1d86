package auth

import (
	"github.com/gin-gonic/gin"

	"martial-service/pkg/apperrors"
	"martial-service/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Register godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body auth.RegisterRequest true "User registration data"
// @Success 201 {object} auth.AuthResponse
// @Router /auth/register [post]
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.Wrap(apperrors.Validation, "Invalid input data", err))
		return
	}

	result, err := h.service.Register(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, gin.H{"token": result.Token, "user": result.User})
}

// Login godoc
// @Summary User login
// @Tags auth
// @Accept json
// @Produce json
// @Param request body auth.LoginRequest true "User login credentials"
// @Success 200 {object} auth.AuthResponse
// @Router /auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.Wrap(apperrors.Validation, "Invalid input data", err))
		return
	}

	result, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"token": result.Token, "user": result.User})
}

// Me returns the profile of the authenticated caller.
func (h *Handler) Me(c *gin.Context) {
	user, err := h.service.CurrentUser(c.Request.Context(), c.GetUint("userID"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"user": user})
}

// UpdateProfile applies a partial profile update for the caller.
func (h *Handler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.Wrap(apperrors.Validation, "Invalid input data", err))
		return
	}

	user, err := h.service.UpdateProfile(c.Request.Context(), c.GetUint("userID"), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"user": user})
}
