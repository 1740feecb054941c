package handler

import (
	"net/http"

	"github.com/fanbaselab/fanbase/internal/service"
	"github.com/fanbaselab/fanbase/pkg/response"
	"github.com/gin-gonic/gin"
)

type FeedHandler struct {
	feedService    service.FeedService
	commentService service.CommentService
}

func NewFeedHandler(feedService service.FeedService, commentService service.CommentService) *FeedHandler {
	return &FeedHandler{feedService: feedService, commentService: commentService}
}

func (h *FeedHandler) ListPosts(c *gin.Context) {
	posts, err := h.feedService.ListPosts(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, posts)
}

func (h *FeedHandler) GetPost(c *gin.Context) {
	post, err := h.feedService.GetPost(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, post)
}

func (h *FeedHandler) CreatePost(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var input service.CreatePostInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	post, err := h.feedService.CreatePost(c.Request.Context(), userID, input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, post)
}

func (h *FeedHandler) DeletePost(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.feedService.DeletePost(c.Request.Context(), userID, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"deleted": c.Param("id")})
}

func (h *FeedHandler) ToggleLike(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	post, err := h.feedService.ToggleLike(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, post)
}

func (h *FeedHandler) AddComment(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var input service.AddCommentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	comment, err := h.commentService.AddComment(c.Request.Context(), userID, c.Param("id"), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, comment)
}

func (h *FeedHandler) DeleteComment(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	err = h.commentService.DeleteComment(c.Request.Context(), userID, c.Param("id"), c.Param("comment_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"deleted": c.Param("comment_id")})
}
