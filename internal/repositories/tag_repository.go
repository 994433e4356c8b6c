package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"nomadai/internal/models/db_models"
)

type TagRepository interface {
	CreateTag(ctx context.Context, tag db_models.Tag) error
	GetTagByName(ctx context.Context, name string) (*db_models.Tag, error)
	GetAllTags(ctx context.Context) ([]db_models.Tag, error)
}

func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

type tagRepository struct {
	db *gorm.DB
}

func (t *tagRepository) CreateTag(ctx context.Context, tag db_models.Tag) error {
	return t.db.WithContext(ctx).Create(&tag).Error
}

func (t *tagRepository) GetTagByName(ctx context.Context, name string) (*db_models.Tag, error) {
	var tag db_models.Tag
	err := t.db.WithContext(ctx).Where("name = ?", name).First(&tag).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &tag, nil
}

func (t *tagRepository) GetAllTags(ctx context.Context) ([]db_models.Tag, error) {
	var tags []db_models.Tag
	if err := t.db.WithContext(ctx).Order("name ASC").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}
