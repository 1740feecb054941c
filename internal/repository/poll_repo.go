package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fanbaselab/fanbase/internal/model"
	"github.com/fanbaselab/fanbase/pkg/apperror"
	"github.com/fanbaselab/fanbase/pkg/localstore"
)

const pollsKey = "polls"

type PollRepository interface {
	All(ctx context.Context) ([]model.Poll, error)
	FindByID(ctx context.Context, id string) (*model.Poll, error)
	Insert(ctx context.Context, poll model.Poll) error
	Update(ctx context.Context, poll model.Poll) error
	Delete(ctx context.Context, id string) error
}

type pollRepository struct {
	store localstore.Store
}

func NewPollRepository(store localstore.Store) PollRepository {
	return &pollRepository{store: store}
}

func (r *pollRepository) All(ctx context.Context) ([]model.Poll, error) {
	raw, err := r.store.Get(ctx, pollsKey)
	if err != nil {
		if err == localstore.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}
	var polls []model.Poll
	if err := json.Unmarshal(raw, &polls); err != nil {
		return nil, fmt.Errorf("polls blob is not a list: %w", err)
	}

	// Old records may predate the vote map.
	for i := range polls {
		if polls[i].UserVotes == nil {
			polls[i].UserVotes = make(map[string]string)
		}
	}
	return polls, nil
}

func (r *pollRepository) FindByID(ctx context.Context, id string) (*model.Poll, error) {
	polls, err := r.All(ctx)
	if err != nil {
		return nil, err
	}
	for i := range polls {
		if polls[i].ID == id {
			return &polls[i], nil
		}
	}
	return nil, apperror.ErrNotFound
}

func (r *pollRepository) Insert(ctx context.Context, poll model.Poll) error {
	polls, err := r.All(ctx)
	if err != nil {
		return err
	}
	return r.save(ctx, append([]model.Poll{poll}, polls...))
}

func (r *pollRepository) Update(ctx context.Context, poll model.Poll) error {
	polls, err := r.All(ctx)
	if err != nil {
		return err
	}
	for i := range polls {
		if polls[i].ID == poll.ID {
			polls[i] = poll
			return r.save(ctx, polls)
		}
	}
	return apperror.ErrNotFound
}

func (r *pollRepository) Delete(ctx context.Context, id string) error {
	polls, err := r.All(ctx)
	if err != nil {
		return err
	}
	for i := range polls {
		if polls[i].ID == id {
			return r.save(ctx, append(polls[:i], polls[i+1:]...))
		}
	}
	return apperror.ErrNotFound
}

func (r *pollRepository) save(ctx context.Context, polls []model.Poll) error {
	raw, err := json.Marshal(polls)
	if err != nil {
		return err
	}
	return r.store.Set(ctx, pollsKey, raw)
}
