package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/fanbaselab/fanbase/internal/gamification"
	"github.com/fanbaselab/fanbase/internal/model"
	"github.com/fanbaselab/fanbase/pkg/apperror"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type SignupInput struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Password string `json:"password" binding:"required,min=6"`
	TeamID   string `json:"teamId" binding:"required"`
	Bio      string `json:"bio"`
}

type AuthResult struct {
	User  model.PublicUser `json:"user"`
	Token string           `json:"token"`
}

type AuthService interface {
	Signup(ctx context.Context, input SignupInput) (*AuthResult, error)
	Login(ctx context.Context, username, password string) (*AuthResult, error)
}

type authService struct {
	users     UserUpdater
	jwtSecret string
	tokenTTL  time.Duration
	now       func() time.Time
}

// UserUpdater is the slice of the user repository auth needs.
type UserUpdater interface {
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	Create(ctx context.Context, user *model.User) error
	Update(ctx context.Context, user *model.User) error
}

func NewAuthService(users UserUpdater, jwtSecret string, tokenTTL time.Duration) AuthService {
	return &authService{
		users:     users,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		now:       time.Now,
	}
}

// Signup creates a fresh account: zero counters, zero XP, and the one-time
// join badge grant. This is the only place join_1 is ever handed out; the
// eligibility engine leaves it alone so legacy accounts stay distinguishable.
func (s *authService) Signup(ctx context.Context, input SignupInput) (*AuthResult, error) {
	if _, ok := model.TeamByID[input.TeamID]; !ok {
		return nil, apperror.New(0, "unknown team", apperror.ErrInvalidInput)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	joinBadge := model.BadgeID(model.BadgeJoin, 1)
	user := &model.User{
		ID:       uuid.NewString(),
		Username: input.Username,
		Password: string(hash),
		TeamID:   input.TeamID,
		Bio:      input.Bio,
		XP:       0,
		Level:    gamification.LevelForXP(0),
		Badges:   []string{joinBadge},
		JoinedAt: s.now().UTC(),
	}
	user.EquippedBadges = gamification.DeriveTop5(user.Badges)

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.issueToken(user.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user.Public(), Token: token}, nil
}

// Login verifies credentials and runs the login activity pipeline: the
// login counter always advances, login days only on the first login of a
// calendar day, then XP, badges and the equip layout.
func (s *authService) Login(ctx context.Context, username, password string) (*AuthResult, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.ErrUnauthorized
		}
		return nil, err
	}

	if !s.verifyPassword(user, password) {
		return nil, apperror.ErrUnauthorized
	}

	day := s.now().Format("2006-01-02")
	user.LoginCount++
	if user.LastLoginDay != day {
		user.LoginDays++
		user.LastLoginDay = day
	}
	applyActivity(user, gamification.EventLogin)

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.issueToken(user.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user.Public(), Token: token}, nil
}

// verifyPassword accepts the bcrypt hash this server writes, and as a legacy
// path the plaintext passwords the browser client stored. Matching legacy
// credentials are upgraded to a hash in place; the following Update persists
// it.
func (s *authService) verifyPassword(user *model.User, password string) bool {
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) == nil {
		return true
	}

	if len(user.Password) > 0 && !isBcryptHash(user.Password) &&
		subtle.ConstantTimeCompare([]byte(user.Password), []byte(password)) == 1 {
		if hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost); err == nil {
			user.Password = string(hash)
			log.Printf("upgraded legacy plaintext credential for user %s", user.ID)
		}
		return true
	}
	return false
}

func isBcryptHash(s string) bool {
	return len(s) == 60 && (s[:4] == "$2a$" || s[:4] == "$2b$" || s[:4] == "$2y$")
}

func (s *authService) issueToken(userID string) (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}
