package handler

import (
	"net/http"

	"github.com/fanbaselab/fanbase/internal/model"
	"github.com/fanbaselab/fanbase/internal/service"
	"github.com/fanbaselab/fanbase/pkg/response"
	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	profileService service.ProfileService
}

func NewProfileHandler(profileService service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

func (h *ProfileHandler) GetCurrentProfile(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	res, err := h.profileService.GetOwnProfile(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, res)
}

func (h *ProfileHandler) GetProfileByUsername(c *gin.Context) {
	res, err := h.profileService.GetProfile(c.Request.Context(), c.Param("username"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, res)
}

func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var input service.UpdateProfileInput
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	var avatar *service.AvatarFile
	if fileHeader, err := c.FormFile("avatar"); err == nil && fileHeader != nil {
		file, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read avatar"})
			return
		}
		defer file.Close()

		avatar = &service.AvatarFile{Reader: file, FileName: fileHeader.Filename}
	}

	res, err := h.profileService.UpdateProfile(c.Request.Context(), userID, input, avatar)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, res)
}

type badgeLayoutInput struct {
	Positions []*string `json:"positions" binding:"required,len=5"`
}

// SetBadgeLayout applies a drag-and-drop reordering of the 5 badge display
// positions.
func (h *ProfileHandler) SetBadgeLayout(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var input badgeLayoutInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	layout, err := h.profileService.SetBadgeLayout(c.Request.Context(), userID, input.Positions)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, layout)
}

// ListBadges serves the static catalog so clients can render names and icons.
func (h *ProfileHandler) ListBadges(c *gin.Context) {
	response.OK(c, model.Badges)
}

// ListTeams serves the static team catalog.
func (h *ProfileHandler) ListTeams(c *gin.Context) {
	response.OK(c, model.Teams)
}
