package poll

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

// Create godoc
// @Summary Create a poll
// @Description Create a poll with at least two unique options
// @Tags polls
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body poll.CreatePollRequest true "Poll data"
// @Success 201 {object} poll.PollResponse
// @Failure 400 {object} map[string]interface{}
// @Router /polls [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreatePollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.Wrap(apperrors.Validation, "Invalid input data", err))
		return
	}

	poll, err := h.service.Create(c.Request.Context(), &req, c.GetUint("userID"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, gin.H{"poll": poll})
}

func (h *Handler) Get(c *gin.Context) {
	poll, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"poll": poll})
}

func (h *Handler) ListByMartialArt(c *gin.Context) {
	polls, err := h.service.ListByMartialArt(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"polls": polls})
}

// Vote godoc
// @Summary Cast a vote
// @Description Vote for one option; a user may vote once per poll
// @Tags polls
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Poll ID"
// @Param request body poll.VoteRequest true "Option to vote for"
// @Success 200 {object} poll.PollResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /polls/{id}/vote [post]
func (h *Handler) Vote(c *gin.Context) {
	var req VoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.Wrap(apperrors.Validation, "Invalid input data", err))
		return
	}

	poll, err := h.service.Vote(c.Request.Context(), c.Param("id"), req.OptionID, c.GetUint("userID"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"poll": poll})
}
