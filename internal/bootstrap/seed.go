package bootstrap

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/fanbaselab/fanbase/internal/gamification"
	"github.com/fanbaselab/fanbase/internal/model"
	"github.com/fanbaselab/fanbase/internal/repository"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// SeedDemoUser creates the development account the browser client also
// bootstrapped with, skipped when any user already exists.
func SeedDemoUser(ctx context.Context, users repository.UserRepository) error {
	count, err := users.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("123456"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash demo password: %w", err)
	}

	admin := &model.User{
		ID:       uuid.NewString(),
		Username: "admin",
		Password: string(hash),
		TeamID:   model.Teams[0].ID,
		Level:    gamification.LevelForXP(0),
		Badges:   []string{model.BadgeID(model.BadgeJoin, 1)},
		JoinedAt: time.Now().UTC(),
	}
	admin.EquippedBadges = gamification.DeriveTop5(admin.Badges)

	if err := users.Create(ctx, admin); err != nil {
		return err
	}

	log.Println("seeded demo user: admin / 123456")
	return nil
}
