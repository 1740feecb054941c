package handler

import (
	"net/http"

	"github.com/fanbaselab/fanbase/internal/service"
	"github.com/fanbaselab/fanbase/pkg/response"
	"github.com/gin-gonic/gin"
)

type PollHandler struct {
	pollService service.PollService
}

func NewPollHandler(pollService service.PollService) *PollHandler {
	return &PollHandler{pollService: pollService}
}

func (h *PollHandler) ListPolls(c *gin.Context) {
	polls, err := h.pollService.ListPolls(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, polls)
}

func (h *PollHandler) GetPoll(c *gin.Context) {
	poll, err := h.pollService.GetPoll(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, poll)
}

func (h *PollHandler) CreatePoll(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var input service.CreatePollInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	poll, err := h.pollService.CreatePoll(c.Request.Context(), userID, input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, poll)
}

type voteInput struct {
	OptionID string `json:"optionId" binding:"required"`
}

func (h *PollHandler) Vote(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var input voteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	poll, err := h.pollService.Vote(c.Request.Context(), userID, c.Param("id"), input.OptionID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, poll)
}
