package services

import (
	"context"

	"taskhub/internal/models"
	"taskhub/internal/repositories"
)

type TagService interface {
	Create(ctx context.Context, tag *models.TaskTag) error
	GetAll(ctx context.Context) ([]models.TaskTag, error)
	Update(ctx context.Context, id int64, name *string, color *int) (*models.TaskTag, error)
	Delete(ctx context.Context, id int64) error
}

type tagService struct {
	repo repositories.TagRepository
}

func NewTagService(repo repositories.TagRepository) TagService {
	return &tagService{repo: repo}
}

func (s *tagService) Create(ctx context.Context, tag *models.TaskTag) error {
	if tag.Color == 0 {
		tag.Color = models.DefaultTagColor
	}
	return s.repo.Store(ctx, tag)
}

func (s *tagService) GetAll(ctx context.Context) ([]models.TaskTag, error) {
	return s.repo.FindAll(ctx)
}

func (s *tagService) Update(ctx context.Context, id int64, name *string, color *int) (*models.TaskTag, error) {
	tag, err := s.repo.FindByID(ctx, id)
	if err != nil || tag == nil {
		return tag, err
	}
	if name != nil {
		tag.Name = *name
	}
	if color != nil {
		tag.Color = *color
	}
	if err := s.repo.Update(ctx, tag); err != nil {
		return nil, err
	}
	return tag, nil
}

func (s *tagService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
