package service

import (
	"context"
	"log"
	"time"

	"github.com/fanbaselab/fanbase/internal/gamification"
	"github.com/fanbaselab/fanbase/internal/model"
	"github.com/fanbaselab/fanbase/internal/repository"
	"github.com/fanbaselab/fanbase/pkg/apperror"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/redis/go-redis/v9"
)

const actionCreatePost = "create_post"

type CreatePostInput struct {
	Content string `json:"content" binding:"required,max=2000"`
	Image   string `json:"image" binding:"omitempty,url"`
}

type FeedService interface {
	ListPosts(ctx context.Context) ([]model.Post, error)
	GetPost(ctx context.Context, id string) (*model.Post, error)
	CreatePost(ctx context.Context, authorID string, input CreatePostInput) (*model.Post, error)
	DeletePost(ctx context.Context, userID, postID string) error
	ToggleLike(ctx context.Context, userID, postID string) (*model.Post, error)
}

type feedService struct {
	posts     repository.PostRepository
	users     repository.UserRepository
	search    SearchService
	rdb       *redis.Client
	sanitizer *bluemonday.Policy
	postLimit time.Duration
}

func NewFeedService(
	posts repository.PostRepository,
	users repository.UserRepository,
	search SearchService,
	rdb *redis.Client,
	postLimit time.Duration,
) FeedService {
	return &feedService{
		posts:     posts,
		users:     users,
		search:    search,
		rdb:       rdb,
		sanitizer: bluemonday.UGCPolicy(),
		postLimit: postLimit,
	}
}

func (s *feedService) ListPosts(ctx context.Context) ([]model.Post, error) {
	return s.posts.All(ctx)
}

func (s *feedService) GetPost(ctx context.Context, id string) (*model.Post, error) {
	return s.posts.FindByID(ctx, id)
}

// CreatePost appends a feed entry and runs the author's activity pipeline:
// feedCount, then XP, badges and the equip layout, persisted in one write.
func (s *feedService) CreatePost(ctx context.Context, authorID string, input CreatePostInput) (*model.Post, error) {
	author, err := s.users.FindByID(ctx, authorID)
	if err != nil {
		return nil, err
	}

	allowed, err := CheckAndSetRateLimit(ctx, s.rdb, authorID, actionCreatePost, s.postLimit)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, apperror.ErrRateLimitExceeded
	}

	post := model.Post{
		ID:        uuid.NewString(),
		AuthorID:  author.ID,
		Author:    author.Username,
		Content:   s.sanitizer.Sanitize(input.Content),
		Image:     input.Image,
		Likes:     []string{},
		Comments:  []model.Comment{},
		Timestamp: time.Now().UTC(),
	}

	if err := s.posts.Insert(ctx, post); err != nil {
		_ = ClearRateLimit(ctx, s.rdb, authorID, actionCreatePost)
		return nil, err
	}

	author.FeedCount++
	applyActivity(author, gamification.EventPostCreated)
	if err := s.users.Update(ctx, author); err != nil {
		return nil, err
	}

	if err := s.search.IndexPost(&post); err != nil {
		log.Printf("failed to index post %s: %v", post.ID, err)
	}

	return &post, nil
}

// DeletePost removes the entry and walks the author's feed counter back,
// floored at zero. XP and badges stay: progression never rolls back.
func (s *feedService) DeletePost(ctx context.Context, userID, postID string) error {
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.AuthorID != userID {
		return apperror.ErrForbidden
	}

	if err := s.posts.Delete(ctx, postID); err != nil {
		return err
	}

	author, err := s.users.FindByID(ctx, userID)
	if err == nil {
		if author.FeedCount > 0 {
			author.FeedCount--
		}
		if err := s.users.Update(ctx, author); err != nil {
			return err
		}
	}

	if err := s.search.DeletePost(postID); err != nil {
		log.Printf("failed to de-index post %s: %v", postID, err)
	}
	return nil
}

// ToggleLike flips the user's like on a post. Likes are not an XP event in
// the canonical rule table and touch no counter.
func (s *feedService) ToggleLike(ctx context.Context, userID, postID string) (*model.Post, error) {
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if post.LikedBy(userID) {
		likes := post.Likes[:0]
		for _, id := range post.Likes {
			if id != userID {
				likes = append(likes, id)
			}
		}
		post.Likes = likes
	} else {
		post.Likes = append(post.Likes, userID)
	}

	if err := s.posts.Update(ctx, *post); err != nil {
		return nil, err
	}
	return post, nil
}
