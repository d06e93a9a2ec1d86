package martialart

import (
	"net/http"

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

// List godoc
// @Summary List all martial arts, newest first
// @Tags martial-arts
// @Produce json
// @Success 200 {array} martialart.MartialArtResponse
// @Router /martial-arts [get]
func (h *Handler) List(c *gin.Context) {
	arts, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, arts)
}

func (h *Handler) Get(c *gin.Context) {
	art, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, art)
}

// Create godoc
// @Summary Create a martial art entry
// @Tags martial-arts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body martialart.CreateMartialArtRequest true "Martial art data"
// @Success 201 {object} martialart.MartialArtResponse
// @Router /martial-arts [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateMartialArtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.Wrap(apperrors.Validation, "Invalid input data", err))
		return
	}

	art, err := h.service.Create(c.Request.Context(), &req, c.GetUint("userID"))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, art)
}

func (h *Handler) Update(c *gin.Context) {
	var req UpdateMartialArtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.Wrap(apperrors.Validation, "Invalid input data", err))
		return
	}

	art, err := h.service.Update(c.Request.Context(), c.Param("id"), &req, c.GetUint("userID"))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, art)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id"), c.GetUint("userID")); err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Martial art removed successfully"})
}
