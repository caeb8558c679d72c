package service

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"storyshare-backend/internal/domains/owner"
)

type ownerService struct {
	repo owner.Repository
}

func NewOwnerService(repo owner.Repository) owner.Service {
	return &ownerService{repo: repo}
}

func (s *ownerService) List(ctx context.Context) ([]owner.OwnerDTO, error) {
	owners, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	dtos := make([]owner.OwnerDTO, 0, len(owners))
	for i := range owners {
		o := &owners[i]

		stories, err := s.repo.ResolveStories(ctx, o.Stories)
		if err != nil {
			return nil, fmt.Errorf("resolve stories for owner %s: %w", o.ID.Hex(), err)
		}

		dtos = append(dtos, owner.OwnerDTO{
			ID:        o.ID,
			FirstName: o.FirstName,
			LastName:  o.LastName,
			Photo:     o.Photo,
			Type:      o.Type,
			Stories:   stories,
		})
	}

	return dtos, nil
}

func (s *ownerService) Create(ctx context.Context, req owner.AddRequest) (*owner.Owner, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	o := &owner.Owner{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Photo:     req.Photo,
		Type:      req.Type,
		Stories:   req.StoryRefs(),
	}

	if err := s.repo.Create(ctx, o); err != nil {
		return nil, err
	}

	return o, nil
}

func (s *ownerService) Update(ctx context.Context, id primitive.ObjectID, req owner.EditRequest) (*owner.Owner, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// Partial update: only supplied fields reach the $set document.
	set := map[string]interface{}{}
	if req.FirstName != "" {
		set["firstName"] = req.FirstName
	}
	if req.LastName != "" {
		set["lastName"] = req.LastName
	}
	if req.Photo != "" {
		set["photo"] = req.Photo
	}
	if req.Type != "" {
		set["type"] = req.Type
	}
	if req.Stories != nil {
		set["stories"] = req.StoryRefs()
	}

	// an empty $set document is rejected by the server
	if len(set) == 0 {
		return s.repo.FindByID(ctx, id)
	}

	return s.repo.Update(ctx, id, set)
}

func (s *ownerService) Delete(ctx context.Context, id primitive.ObjectID) error {
	return s.repo.Delete(ctx, id)
}
