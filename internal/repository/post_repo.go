package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fanbaselab/fanbase/internal/model"
	"github.com/fanbaselab/fanbase/pkg/apperror"
	"github.com/fanbaselab/fanbase/pkg/localstore"
)

const postsKey = "posts"

type PostRepository interface {
	All(ctx context.Context) ([]model.Post, error)
	FindByID(ctx context.Context, id string) (*model.Post, error)
	// Insert prepends so the feed stays newest-first, like the client did.
	Insert(ctx context.Context, post model.Post) error
	Update(ctx context.Context, post model.Post) error
	Delete(ctx context.Context, id string) error
}

type postRepository struct {
	store localstore.Store
}

func NewPostRepository(store localstore.Store) PostRepository {
	return &postRepository{store: store}
}

func (r *postRepository) All(ctx context.Context) ([]model.Post, error) {
	raw, err := r.store.Get(ctx, postsKey)
	if err != nil {
		if err == localstore.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}
	var posts []model.Post
	if err := json.Unmarshal(raw, &posts); err != nil {
		return nil, fmt.Errorf("posts blob is not a list: %w", err)
	}
	return posts, nil
}

func (r *postRepository) FindByID(ctx context.Context, id string) (*model.Post, error) {
	posts, err := r.All(ctx)
	if err != nil {
		return nil, err
	}
	for i := range posts {
		if posts[i].ID == id {
			return &posts[i], nil
		}
	}
	return nil, apperror.ErrNotFound
}

func (r *postRepository) Insert(ctx context.Context, post model.Post) error {
	posts, err := r.All(ctx)
	if err != nil {
		return err
	}
	return r.save(ctx, append([]model.Post{post}, posts...))
}

func (r *postRepository) Update(ctx context.Context, post model.Post) error {
	posts, err := r.All(ctx)
	if err != nil {
		return err
	}
	for i := range posts {
		if posts[i].ID == post.ID {
			posts[i] = post
			return r.save(ctx, posts)
		}
	}
	return apperror.ErrNotFound
}

func (r *postRepository) Delete(ctx context.Context, id string) error {
	posts, err := r.All(ctx)
	if err != nil {
		return err
	}
	for i := range posts {
		if posts[i].ID == id {
			return r.save(ctx, append(posts[:i], posts[i+1:]...))
		}
	}
	return apperror.ErrNotFound
}

func (r *postRepository) save(ctx context.Context, posts []model.Post) error {
	raw, err := json.Marshal(posts)
	if err != nil {
		return err
	}
	return r.store.Set(ctx, postsKey, raw)
}
