package services

import (
	"context"

	"go.uber.org/zap"

	"nomadai/internal/models/db_models"
	"nomadai/internal/repositories"
	"nomadai/pkg/utils"
)

type TagServiceInterface interface {
	ListTags(ctx context.Context) ([]db_models.Tag, error)
	CreateTag(ctx context.Context, tag db_models.Tag) error
}

type tagService struct {
	tagRepo repositories.TagRepository
	logger  *zap.Logger
}

func NewTagService(tagRepo repositories.TagRepository, logger *zap.Logger) TagServiceInterface {
	return &tagService{tagRepo: tagRepo, logger: logger}
}

func (s *tagService) ListTags(ctx context.Context) ([]db_models.Tag, error) {
	tags, err := s.tagRepo.GetAllTags(ctx)
	if err != nil {
		s.logger.Error("failed to list tags", zap.Error(err))
		return nil, utils.ErrDatabaseError
	}
	return tags, nil
}

func (s *tagService) CreateTag(ctx context.Context, tag db_models.Tag) error {
	if err := s.tagRepo.CreateTag(ctx, tag); err != nil {
		s.logger.Error("failed to create tag", zap.Error(err))
		return utils.ErrDatabaseError
	}
	return nil
}
