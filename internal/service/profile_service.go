package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fanbaselab/fanbase/internal/gamification"
	"github.com/fanbaselab/fanbase/internal/model"
	"github.com/fanbaselab/fanbase/internal/repository"
	"github.com/fanbaselab/fanbase/pkg/apperror"
	"github.com/fanbaselab/fanbase/pkg/storage"
	"golang.org/x/crypto/bcrypt"
)

type UpdateProfileInput struct {
	Username *string `json:"username" form:"username"`
	Password *string `json:"password" form:"password"`
	Bio      *string `json:"bio" form:"bio"`
	TeamID   *string `json:"teamId" form:"teamId"`
}

type AvatarFile struct {
	Reader   io.Reader
	FileName string
}

// ProfileResponse is what the profile page renders: the user plus derived
// progression state.
type ProfileResponse struct {
	User     model.PublicUser `json:"user"`
	Team     *model.Team      `json:"team,omitempty"`
	Progress int              `json:"progress"`
	// EarnedEquipped marks, position by position, whether the equipped
	// layout entry is actually earned or just a display placeholder.
	EarnedEquipped [1 + model.EquipSlotCount]bool `json:"earnedEquipped"`
}

type ProfileService interface {
	GetProfile(ctx context.Context, username string) (*ProfileResponse, error)
	GetOwnProfile(ctx context.Context, userID string) (*ProfileResponse, error)
	UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput, avatar *AvatarFile) (*ProfileResponse, error)
	SetBadgeLayout(ctx context.Context, userID string, positions []*string) (model.EquippedBadges, error)
}

type profileService struct {
	users        repository.UserRepository
	imageStorage storage.ImageStorage
}

func NewProfileService(users repository.UserRepository, imageStorage storage.ImageStorage) ProfileService {
	return &profileService{users: users, imageStorage: imageStorage}
}

func (s *profileService) GetProfile(ctx context.Context, username string) (*ProfileResponse, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return s.buildResponse(ctx, user)
}

func (s *profileService) GetOwnProfile(ctx context.Context, userID string) (*ProfileResponse, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.buildResponse(ctx, user)
}

// buildResponse re-runs badge eligibility on profile entry, so counters
// bumped elsewhere surface their badges the moment the page is viewed. The
// record is only written back when something actually changed.
func (s *profileService) buildResponse(ctx context.Context, user *model.User) (*ProfileResponse, error) {
	if refreshBadges(user) {
		if err := s.users.Update(ctx, user); err != nil {
			return nil, err
		}
	}

	resp := &ProfileResponse{
		User:     user.Public(),
		Progress: gamification.ProgressWithinLevel(user.XP),
	}
	if team, ok := model.TeamByID[user.TeamID]; ok {
		resp.Team = &team
	}

	eq := user.EquippedBadges
	resp.EarnedEquipped[0] = eq.Main != nil && user.HasBadge(*eq.Main)
	for i, slot := range eq.Slots {
		resp.EarnedEquipped[i+1] = slot != nil && user.HasBadge(*slot)
	}
	return resp, nil
}

func (s *profileService) UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput, avatar *AvatarFile) (*ProfileResponse, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Username != nil && *input.Username != "" && *input.Username != user.Username {
		if len(*input.Username) < 3 || len(*input.Username) > 50 {
			return nil, apperror.New(0, "username must be 3-50 characters", apperror.ErrInvalidInput)
		}
		if _, err := s.users.FindByUsername(ctx, *input.Username); err == nil {
			return nil, apperror.ErrUsernameTaken
		} else if !errors.Is(err, apperror.ErrNotFound) {
			return nil, err
		}
		user.Username = *input.Username
	}

	if input.Password != nil && *input.Password != "" {
		if len(*input.Password) < 6 {
			return nil, apperror.New(0, "password must be at least 6 characters", apperror.ErrInvalidInput)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.Password = string(hash)
	}

	if input.Bio != nil {
		user.Bio = *input.Bio
	}

	if input.TeamID != nil && *input.TeamID != "" {
		if _, ok := model.TeamByID[*input.TeamID]; !ok {
			return nil, apperror.New(0, "unknown team", apperror.ErrInvalidInput)
		}
		user.TeamID = *input.TeamID
	}

	if avatar != nil && avatar.Reader != nil && s.imageStorage != nil {
		url, err := s.imageStorage.UploadImage(ctx, avatar.Reader, "avatars", avatar.FileName)
		if err != nil {
			return nil, err
		}
		user.AvatarURL = url
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return s.buildResponse(ctx, user)
}

// SetBadgeLayout applies a manual reordering of the 5 display positions.
// Ownership of the supplied IDs is not re-validated; the layout shape is.
func (s *profileService) SetBadgeLayout(ctx context.Context, userID string, positions []*string) (model.EquippedBadges, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return model.EquippedBadges{}, err
	}

	user.EquippedBadges = gamification.ApplyManualLayout(positions)
	if err := s.users.Update(ctx, user); err != nil {
		return model.EquippedBadges{}, err
	}
	return user.EquippedBadges, nil
}
