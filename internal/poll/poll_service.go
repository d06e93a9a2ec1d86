package poll

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"martial-service/internal/auth"
	"martial-service/pkg/apperrors"
)

// UserDirectory resolves poll creators for response decoration.
type UserDirectory interface {
	FindByID(ctx context.Context, id uint) (*auth.User, error)
}

type Service struct {
	repo  Repository
	users UserDirectory
}

func NewService(repo Repository, users UserDirectory) *Service {
	return &Service{repo: repo, users: users}
}

// Create validates and persists a new poll with every option at zero votes.
// Option texts must be pairwise distinct (case-sensitive exact match).
func (s *Service) Create(ctx context.Context, req *CreatePollRequest, creatorID uint) (*PollResponse, error) {
	if strings.TrimSpace(req.Question) == "" {
		return nil, apperrors.New(apperrors.Validation, "Question is required")
	}
	if len(req.Options) < 2 {
		return nil, apperrors.New(apperrors.Validation, "At least two options are required")
	}

	seen := make(map[string]struct{}, len(req.Options))
	options := make([]Option, 0, len(req.Options))
	for _, text := range req.Options {
		if strings.TrimSpace(text) == "" {
			return nil, apperrors.New(apperrors.Validation, "Options cannot be empty")
		}
		if _, dup := seen[text]; dup {
			return nil, apperrors.New(apperrors.Validation, "All options must be unique")
		}
		seen[text] = struct{}{}
		options = append(options, Option{
			ID:     primitive.NewObjectID(),
			Text:   text,
			Votes:  0,
			Voters: []uint64{},
		})
	}

	poll := &Poll{
		ID:           primitive.NewObjectID(),
		Question:     req.Question,
		Options:      options,
		CreatedBy:    uint64(creatorID),
		MartialArtID: req.MartialArtID,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repo.Insert(ctx, poll); err != nil {
		return nil, err
	}

	resp := s.format(ctx, poll)
	return &resp, nil
}

func (s *Service) Get(ctx context.Context, pollID string) (*PollResponse, error) {
	poll, err := s.find(ctx, pollID)
	if err != nil {
		return nil, err
	}
	resp := s.format(ctx, poll)
	return &resp, nil
}

func (s *Service) ListByMartialArt(ctx context.Context, martialArtID string) ([]PollResponse, error) {
	polls, err := s.repo.FindByMartialArt(ctx, martialArtID)
	if err != nil {
		return nil, err
	}

	responses := make([]PollResponse, 0, len(polls))
	for _, p := range polls {
		responses = append(responses, s.format(ctx, p))
	}
	return responses, nil
}

// Vote records exactly one vote per user per poll and returns the updated
// tally. The repository applies the vote as one all-or-nothing conditional
// update; a rejected update is disambiguated by re-reading the poll.
func (s *Service) Vote(ctx context.Context, pollID, optionID string, userID uint) (*PollResponse, error) {
	pid, err := primitive.ObjectIDFromHex(pollID)
	if err != nil {
		return nil, apperrors.New(apperrors.Validation, "Invalid poll or option ID format")
	}
	oid, err := primitive.ObjectIDFromHex(optionID)
	if err != nil {
		return nil, apperrors.New(apperrors.Validation, "Invalid poll or option ID format")
	}

	if err := s.repo.AddVote(ctx, pid, oid, uint64(userID)); err != nil {
		if !errors.Is(err, ErrVoteNotApplied) {
			return nil, err
		}

		poll, err := s.repo.FindByID(ctx, pid)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil, apperrors.New(apperrors.NotFound, "Poll not found")
			}
			return nil, err
		}
		if poll.option(oid) == nil {
			return nil, apperrors.New(apperrors.NotFound, "Option not found")
		}
		return nil, apperrors.New(apperrors.AlreadyVoted, "You have already voted in this poll")
	}

	poll, err := s.repo.FindByID(ctx, pid)
	if err != nil {
		return nil, err
	}

	resp := s.format(ctx, poll)
	return &resp, nil
}

func (p *Poll) option(id primitive.ObjectID) *Option {
	for i := range p.Options {
		if p.Options[i].ID == id {
			return &p.Options[i]
		}
	}
	return nil
}

func (s *Service) find(ctx context.Context, id string) (*Poll, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.New(apperrors.Validation, "Invalid poll ID format")
	}

	poll, err := s.repo.FindByID(ctx, oid)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.New(apperrors.NotFound, "Poll not found")
		}
		return nil, err
	}
	return poll, nil
}

// format computes the tally projection. Percentages are votes/total*100 and
// are not normalized to sum exactly to 100.
func (s *Service) format(ctx context.Context, p *Poll) PollResponse {
	totalVotes := 0
	for _, opt := range p.Options {
		totalVotes += opt.Votes
	}

	options := make([]OptionResponse, 0, len(p.Options))
	for _, opt := range p.Options {
		percentage := 0.0
		if totalVotes > 0 {
			percentage = float64(opt.Votes) / float64(totalVotes) * 100
		}
		voters := opt.Voters
		if voters == nil {
			voters = []uint64{}
		}
		options = append(options, OptionResponse{
			ID:         opt.ID.Hex(),
			Text:       opt.Text,
			Votes:      opt.Votes,
			Percentage: percentage,
			Voters:     voters,
		})
	}

	var creatorName, creatorAvatar string
	if creator, err := s.users.FindByID(ctx, uint(p.CreatedBy)); err == nil && creator != nil {
		creatorName = creator.Name
		creatorAvatar = creator.Avatar
	}

	return PollResponse{
		ID:            p.ID.Hex(),
		Question:      p.Question,
		Options:       options,
		CreatedBy:     uint(p.CreatedBy),
		CreatorName:   creatorName,
		CreatorAvatar: creatorAvatar,
		MartialArtID:  p.MartialArtID,
		CreatedAt:     p.CreatedAt,
		TotalVotes:    totalVotes,
	}
}
