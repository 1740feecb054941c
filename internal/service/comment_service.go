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
)

type AddCommentInput struct {
	Content string `json:"content" binding:"required,max=500"`
}

type CommentService interface {
	AddComment(ctx context.Context, userID, postID string, input AddCommentInput) (*model.Comment, error)
	DeleteComment(ctx context.Context, userID, postID, commentID string) error
}

type commentService struct {
	posts     repository.PostRepository
	users     repository.UserRepository
	sanitizer *bluemonday.Policy
}

func NewCommentService(posts repository.PostRepository, users repository.UserRepository) CommentService {
	return &commentService{
		posts:     posts,
		users:     users,
		sanitizer: bluemonday.StrictPolicy(),
	}
}

func (s *commentService) AddComment(ctx context.Context, userID, postID string, input AddCommentInput) (*model.Comment, error) {
	author, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	comment := model.Comment{
		ID:        uuid.NewString(),
		AuthorID:  author.ID,
		Author:    author.Username,
		Content:   s.sanitizer.Sanitize(input.Content),
		Timestamp: time.Now().UTC(),
	}
	post.Comments = append(post.Comments, comment)
	if err := s.posts.Update(ctx, *post); err != nil {
		return nil, err
	}

	author.CommentCount++
	applyActivity(author, gamification.EventCommentCreated)
	if err := s.users.Update(ctx, author); err != nil {
		return nil, err
	}

	return &comment, nil
}

// DeleteComment removes the comment and decrements the author's counter,
// floored at zero. Earned comment badges stay earned.
func (s *commentService) DeleteComment(ctx context.Context, userID, postID, commentID string) error {
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return err
	}

	found := false
	comments := post.Comments[:0]
	for _, c := range post.Comments {
		if c.ID == commentID {
			if c.AuthorID != userID {
				return apperror.ErrForbidden
			}
			found = true
			continue
		}
		comments = append(comments, c)
	}
	if !found {
		return apperror.ErrNotFound
	}
	post.Comments = comments

	if err := s.posts.Update(ctx, *post); err != nil {
		return err
	}

	author, err := s.users.FindByID(ctx, userID)
	if err != nil {
		// The deletion is already persisted; the decrement is best-effort.
		log.Printf("failed to load user %s after comment deletion: %v", userID, err)
		return nil
	}
	if author.CommentCount > 0 {
		author.CommentCount--
	}
	return s.users.Update(ctx, author)
}
