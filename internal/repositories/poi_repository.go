package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"nomadai/internal/models/db_models"
)

type POIRepository interface {
	CreatePoi(ctx context.Context, poi *db_models.POI) (uuid.UUID, error)
	UpdatePoi(ctx context.Context, poi *db_models.POI) error
	Delete(ctx context.Context, id uuid.UUID) error

	GetByID(ctx context.Context, id string) (*db_models.POI, error)
	ListByCity(ctx context.Context, city, category string, limit int) ([]db_models.POI, error)
	ListByIDs(ctx context.Context, ids []string) ([]db_models.POI, error)
}

type poiRepository struct {
	db *gorm.DB
}

func NewPOIRepository(db *gorm.DB) POIRepository {
	return &poiRepository{db: db}
}

func (r *poiRepository) CreatePoi(ctx context.Context, poi *db_models.POI) (uuid.UUID, error) {
	if err := r.db.WithContext(ctx).Create(poi).Error; err != nil {
		return uuid.Nil, err
	}
	return poi.ID, nil
}

func (r *poiRepository) UpdatePoi(ctx context.Context, poi *db_models.POI) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Save(poi)
		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				return nil
			}
			return fmt.Errorf("failed to update POI: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *poiRepository) Delete(ctx context.Context, id uuid.UUID) error {
	err := r.db.WithContext(ctx).Delete(&db_models.POI{}, "id = ?", id).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return nil
}

// Read helpers return default value + nil error when no rows are found.

func (r *poiRepository) GetByID(ctx context.Context, id string) (*db_models.POI, error) {
	var poi db_models.POI
	err := r.db.WithContext(ctx).
		Preload("Tags").
		First(&poi, "id = ?", id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &poi, nil
}

func (r *poiRepository) ListByCity(ctx context.Context, city, category string, limit int) ([]db_models.POI, error) {
	var pois []db_models.POI

	query := r.db.WithContext(ctx).
		Preload("Tags").
		Where("LOWER(city) = ?", strings.ToLower(strings.TrimSpace(city)))
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Order("rating DESC").Find(&pois).Error; err != nil {
		return nil, err
	}
	return pois, nil
}

func (r *poiRepository) ListByIDs(ctx context.Context, ids []string) ([]db_models.POI, error) {
	if len(ids) == 0 {
		return []db_models.POI{}, nil
	}
	var pois []db_models.POI
	err := r.db.WithContext(ctx).
		Preload("Tags").
		Where("id IN ?", ids).
		Find(&pois).Error
	if err != nil {
		return nil, err
	}
	return pois, nil
}
