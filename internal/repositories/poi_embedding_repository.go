package repositories

import (
	"context"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"nomadai/internal/models/db_models"
)

type PoiEmbeddingRepository interface {
	SearchByVector(ctx context.Context, vector pgvector.Vector, city string, limit int) ([]db_models.PoiEmbedding, error)
	CreatePoiEmbedding(ctx context.Context, embedding db_models.PoiEmbedding) error
}

type poiEmbeddingRepository struct {
	db *gorm.DB
}

func NewPoiEmbeddingRepository(db *gorm.DB) PoiEmbeddingRepository {
	return &poiEmbeddingRepository{db: db}
}

func (r *poiEmbeddingRepository) SearchByVector(ctx context.Context, vector pgvector.Vector, city string, limit int) ([]db_models.PoiEmbedding, error) {
	var results []db_models.PoiEmbedding

	if limit <= 0 {
		limit = 15
	}

	query := `
        SELECT *, (1 - (embedding <=> $1)) as similarity
        FROM poi_embeddings
        WHERE LOWER(city) = LOWER($2)
          AND (1 - (embedding <=> $1)) > 0.7
        ORDER BY embedding <=> $1
        LIMIT $3
    `

	err := r.db.WithContext(ctx).Raw(query, vector.String(), city, limit).Scan(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (r *poiEmbeddingRepository) CreatePoiEmbedding(ctx context.Context, embedding db_models.PoiEmbedding) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "poi_id"}},
			UpdateAll: true,
		}).
		Create(&embedding).Error
}
