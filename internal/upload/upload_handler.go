package upload

import (
	"context"
	"mime/multipart"

	"github.com/gin-gonic/gin"

	"martial-service/pkg/apperrors"
	"martial-service/pkg/response"
)

const imageFolder = "martial_arts"

// Uploader relays a file to object storage and returns its public URL.
type Uploader interface {
	UploadFile(ctx context.Context, file *multipart.FileHeader, folder string) (string, error)
}

type Handler struct {
	uploader Uploader
}

func NewHandler(uploader Uploader) *Handler {
	return &Handler{uploader: uploader}
}

// UploadImage godoc
// @Summary Upload an image
// @Description Relays the image to object storage and returns its public URL
// @Tags uploads
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param image formData file true "Image file"
// @Success 200 {object} map[string]interface{}
// @Router /uploads/images [post]
func (h *Handler) UploadImage(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		response.Error(c, apperrors.New(apperrors.Validation, "No file provided"))
		return
	}

	url, err := h.uploader.UploadFile(c.Request.Context(), file, imageFolder)
	if err != nil {
		response.Error(c, apperrors.Wrap(apperrors.Internal, "Error uploading image", err))
		return
	}

	response.OK(c, gin.H{"imageUrl": url})
}
