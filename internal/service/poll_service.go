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

type CreatePollInput struct {
	Question string   `json:"question" binding:"required,max=300"`
	Category string   `json:"category" binding:"omitempty,max=50"`
	Options  []string `json:"options" binding:"required,min=2,max=10,dive,required,max=100"`
}

type PollService interface {
	ListPolls(ctx context.Context) ([]model.Poll, error)
	GetPoll(ctx context.Context, id string) (*model.Poll, error)
	CreatePoll(ctx context.Context, authorID string, input CreatePollInput) (*model.Poll, error)
	Vote(ctx context.Context, userID, pollID, optionID string) (*model.Poll, error)
}

type pollService struct {
	polls     repository.PollRepository
	users     repository.UserRepository
	search    SearchService
	sanitizer *bluemonday.Policy
}

func NewPollService(polls repository.PollRepository, users repository.UserRepository, search SearchService) PollService {
	return &pollService{
		polls:     polls,
		users:     users,
		search:    search,
		sanitizer: bluemonday.StrictPolicy(),
	}
}

func (s *pollService) ListPolls(ctx context.Context) ([]model.Poll, error) {
	return s.polls.All(ctx)
}

func (s *pollService) GetPoll(ctx context.Context, id string) (*model.Poll, error) {
	return s.polls.FindByID(ctx, id)
}

// CreatePoll publishes a poll. Poll creation drives no activity counter and
// awards no XP; only voting does.
func (s *pollService) CreatePoll(ctx context.Context, authorID string, input CreatePollInput) (*model.Poll, error) {
	author, err := s.users.FindByID(ctx, authorID)
	if err != nil {
		return nil, err
	}

	options := make([]model.PollOption, 0, len(input.Options))
	for _, text := range input.Options {
		options = append(options, model.PollOption{
			ID:   uuid.NewString(),
			Text: s.sanitizer.Sanitize(text),
		})
	}

	poll := model.Poll{
		ID:        uuid.NewString(),
		AuthorID:  author.ID,
		Author:    author.Username,
		Question:  s.sanitizer.Sanitize(input.Question),
		Category:  input.Category,
		Options:   options,
		UserVotes: make(map[string]string),
		Timestamp: time.Now().UTC(),
	}

	if err := s.polls.Insert(ctx, poll); err != nil {
		return nil, err
	}

	if err := s.search.IndexPoll(&poll); err != nil {
		log.Printf("failed to index poll %s: %v", poll.ID, err)
	}
	return &poll, nil
}

// Vote records the user's choice. The vote map is consulted before anything
// mutates: only a genuine first vote bumps voteCount and awards XP. Changing
// a vote moves the tally to the new option and is otherwise free: no XP, no
// counter.
func (s *pollService) Vote(ctx context.Context, userID, pollID, optionID string) (*model.Poll, error) {
	poll, err := s.polls.FindByID(ctx, pollID)
	if err != nil {
		return nil, err
	}

	option := poll.Option(optionID)
	if option == nil {
		return nil, apperror.New(0, "unknown poll option", apperror.ErrBadRequest)
	}

	previous, alreadyVoted := poll.UserVotes[userID]

	if alreadyVoted {
		if previous == optionID {
			return poll, nil
		}
		if prevOption := poll.Option(previous); prevOption != nil && prevOption.Votes > 0 {
			prevOption.Votes--
		}
		option.Votes++
		poll.UserVotes[userID] = optionID
		if err := s.polls.Update(ctx, *poll); err != nil {
			return nil, err
		}
		return poll, nil
	}

	option.Votes++
	poll.TotalVotes++
	poll.UserVotes[userID] = optionID
	if err := s.polls.Update(ctx, *poll); err != nil {
		return nil, err
	}

	voter, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	voter.VoteCount++
	applyActivity(voter, gamification.EventPollVoted)
	if err := s.users.Update(ctx, voter); err != nil {
		return nil, err
	}

	return poll, nil
}
