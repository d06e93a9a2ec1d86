package post

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

// ListByMartialArt godoc
// @Summary List posts for a martial art, newest first
// @Tags posts
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /posts/martial-art/{id} [get]
func (h *Handler) ListByMartialArt(c *gin.Context) {
	posts, err := h.service.ListByMartialArt(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"posts": posts})
}

// Create godoc
// @Summary Create a post with an optional media attachment
// @Tags posts
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param content formData string true "Post content"
// @Param martialArtId formData string true "Martial art ID"
// @Param media formData file false "Image or video attachment"
// @Success 201 {object} map[string]interface{}
// @Router /posts [post]
func (h *Handler) Create(c *gin.Context) {
	content := c.PostForm("content")
	martialArtID := c.PostForm("martialArtId")

	// Optional attachment; absence is not an error.
	media, err := c.FormFile("media")
	if err != nil {
		media = nil
	}

	post, err := h.service.Create(c.Request.Context(), c.GetUint("userID"), martialArtID, content, media)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, gin.H{"post": post})
}

func (h *Handler) ToggleReaction(c *gin.Context) {
	reactions, err := h.service.ToggleReaction(c.Request.Context(), c.Param("id"), c.GetUint("userID"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"reactions": reactions})
}

func (h *Handler) AddComment(c *gin.Context) {
	var req struct {
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.Wrap(apperrors.Validation, "Invalid input data", err))
		return
	}

	comment, err := h.service.AddComment(c.Request.Context(), c.Param("id"), c.GetUint("userID"), req.Content)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, gin.H{"comment": comment})
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id"), c.GetUint("userID")); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"message": "Post deleted successfully"})
}
