package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/fanbaselab/fanbase/internal/gamification"
	"github.com/fanbaselab/fanbase/internal/model"
	"github.com/fanbaselab/fanbase/pkg/apperror"
	"github.com/fanbaselab/fanbase/pkg/localstore"
)

// usersKey is the blob holding the full user list, same layout the browser
// client kept under localStorage["users"].
const usersKey = "users"

type UserRepository interface {
	All(ctx context.Context) ([]*model.User, error)
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	Create(ctx context.Context, user *model.User) error
	Update(ctx context.Context, user *model.User) error
	Count(ctx context.Context) (int, error)
}

type userRepository struct {
	store localstore.Store
}

func NewUserRepository(store localstore.Store) UserRepository {
	return &userRepository{store: store}
}

// All loads the user list, pushing every record through the normalizer.
// Records that are not even JSON objects are skipped; everything else is
// repaired, never rejected.
func (r *userRepository) All(ctx context.Context) ([]*model.User, error) {
	raw, err := r.store.Get(ctx, usersKey)
	if err != nil {
		if err == localstore.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var records []json.RawMessage
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("users blob is not a list: %w", err)
	}

	users := make([]*model.User, 0, len(records))
	for i, rec := range records {
		u, err := gamification.NormalizeUser(rec)
		if err != nil {
			log.Printf("skipping unreadable user record at index %d: %v", i, err)
			continue
		}
		users = append(users, u)
	}
	return users, nil
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	users, err := r.All(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, apperror.ErrNotFound
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	users, err := r.All(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if strings.EqualFold(u.Username, username) {
			return u, nil
		}
	}
	return nil, apperror.ErrNotFound
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	users, err := r.All(ctx)
	if err != nil {
		return err
	}
	for _, u := range users {
		if strings.EqualFold(u.Username, user.Username) {
			return apperror.ErrUsernameTaken
		}
	}
	return r.save(ctx, append(users, user))
}

func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	users, err := r.All(ctx)
	if err != nil {
		return err
	}
	for i, u := range users {
		if u.ID == user.ID {
			users[i] = user
			return r.save(ctx, users)
		}
	}
	return apperror.ErrNotFound
}

func (r *userRepository) Count(ctx context.Context) (int, error) {
	users, err := r.All(ctx)
	if err != nil {
		return 0, err
	}
	return len(users), nil
}

func (r *userRepository) save(ctx context.Context, users []*model.User) error {
	raw, err := json.Marshal(users)
	if err != nil {
		return err
	}
	return r.store.Set(ctx, usersKey, raw)
}
