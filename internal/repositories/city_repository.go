package repositories

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"nomadai/internal/models/db_models"
)

type CityRepository interface {
	Insert(ctx context.Context, city *db_models.City) error
	GetByIataCode(ctx context.Context, code string) (*db_models.City, error)
	ListPopular(ctx context.Context, limit int) ([]db_models.City, error)
	SearchByKeyword(ctx context.Context, keyword string, limit int) ([]db_models.City, error)
}

type cityRepository struct {
	db *gorm.DB
}

func NewCityRepository(db *gorm.DB) CityRepository {
	return &cityRepository{db: db}
}

func (r *cityRepository) Insert(ctx context.Context, city *db_models.City) error {
	return r.db.WithContext(ctx).Create(city).Error
}

func (r *cityRepository) GetByIataCode(ctx context.Context, code string) (*db_models.City, error) {
	var city db_models.City
	err := r.db.WithContext(ctx).
		Where("iata_code = ?", strings.ToUpper(strings.TrimSpace(code))).
		First(&city).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &city, nil
}

func (r *cityRepository) ListPopular(ctx context.Context, limit int) ([]db_models.City, error) {
	if limit <= 0 {
		limit = 10
	}
	var cities []db_models.City
	err := r.db.WithContext(ctx).
		Order("popularity DESC").
		Limit(limit).
		Find(&cities).Error
	if err != nil {
		return nil, err
	}
	return cities, nil
}

func (r *cityRepository) SearchByKeyword(ctx context.Context, keyword string, limit int) ([]db_models.City, error) {
	if limit <= 0 {
		limit = 10
	}
	var cities []db_models.City
	err := r.db.WithContext(ctx).
		Where("LOWER(name) LIKE ?", "%"+strings.ToLower(strings.TrimSpace(keyword))+"%").
		Order("popularity DESC").
		Limit(limit).
		Find(&cities).Error
	if err != nil {
		return nil, err
	}
	return cities, nil
}
