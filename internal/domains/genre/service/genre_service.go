package service

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"storyshare-backend/internal/domains/genre"
)

type genreService struct {
	repo genre.Repository
}

func NewGenreService(repo genre.Repository) genre.Service {
	return &genreService{repo: repo}
}

func (s *genreService) List(ctx context.Context) ([]genre.Genre, error) {
	return s.repo.List(ctx)
}

func (s *genreService) Create(ctx context.Context, req genre.AddRequest) (*genre.Genre, error) {
	return s.repo.Create(ctx, &genre.Genre{Name: req.Name})
}

func (s *genreService) Update(ctx context.Context, id primitive.ObjectID, req genre.EditRequest) (*genre.Genre, error) {
	return s.repo.UpdateName(ctx, id, req.Name)
}

func (s *genreService) Delete(ctx context.Context, id primitive.ObjectID) error {
	return s.repo.Delete(ctx, id)
}
