package martialart

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"martial-service/internal/ownership"
	"martial-service/pkg/apperrors"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]MartialArtResponse, error) {
	arts, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]MartialArtResponse, 0, len(arts))
	for _, art := range arts {
		responses = append(responses, art.Response())
	}
	return responses, nil
}

func (s *Service) Get(ctx context.Context, id string) (*MartialArtResponse, error) {
	art, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := art.Response()
	return &resp, nil
}

func (s *Service) Create(ctx context.Context, req *CreateMartialArtRequest, creatorID uint) (*MartialArtResponse, error) {
	art := &MartialArt{
		ID:          primitive.NewObjectID(),
		Name:        req.Name,
		Description: req.Description,
		Origin:      req.Origin,
		FoundedYear: req.FoundedYear,
		Location:    req.Location,
		Styles:      req.Styles,
		ImageURL:    req.ImageURL,
		CreatedBy:   uint64(creatorID),
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.repo.Insert(ctx, art); err != nil {
		return nil, err
	}

	resp := art.Response()
	return &resp, nil
}

// Update applies the provided fields. Only the creator may update;
// a missing entry fails with NotFound before the ownership check.
func (s *Service) Update(ctx context.Context, id string, req *UpdateMartialArtRequest, callerID uint) (*MartialArtResponse, error) {
	art, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := ownership.Check(art, callerID); err != nil {
		return nil, err
	}

	if req.Name != "" {
		art.Name = req.Name
	}
	if req.Description != "" {
		art.Description = req.Description
	}
	if req.Origin != "" {
		art.Origin = req.Origin
	}
	if req.FoundedYear != nil {
		art.FoundedYear = *req.FoundedYear
	}
	if req.Location != nil {
		art.Location = *req.Location
	}
	if req.Styles != nil {
		art.Styles = req.Styles
	}
	if req.ImageURL != "" {
		art.ImageURL = req.ImageURL
	}

	if err := s.repo.Replace(ctx, art); err != nil {
		return nil, err
	}

	resp := art.Response()
	return &resp, nil
}

// Delete removes the entry. Creator-only, NotFound before Forbidden.
func (s *Service) Delete(ctx context.Context, id string, callerID uint) error {
	art, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	if err := ownership.Check(art, callerID); err != nil {
		return err
	}

	return s.repo.Delete(ctx, art.ID)
}

func (s *Service) find(ctx context.Context, id string) (*MartialArt, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.New(apperrors.Validation, "Invalid martial art ID format")
	}

	art, err := s.repo.FindByID(ctx, oid)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.New(apperrors.NotFound, "Martial art not found")
		}
		return nil, err
	}
	return art, nil
}
