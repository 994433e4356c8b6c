package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"nomadai/internal/models/db_models"
	"nomadai/internal/repositories"
	"nomadai/pkg/utils"
)

type POIServiceInterface interface {
	GetPOIById(ctx context.Context, id string) (*db_models.POI, error)
	ListByCity(ctx context.Context, city, category string, limit int) ([]db_models.POI, error)
	CreatePoi(ctx context.Context, poi *db_models.POI) (uuid.UUID, error)
	UpdatePoi(ctx context.Context, poi *db_models.POI) error
	DeletePoi(ctx context.Context, id uuid.UUID) error
}

type PoiService struct {
	poiRepository repositories.POIRepository
	embeddingRepo repositories.PoiEmbeddingRepository
	embedder      utils.EmbeddingClientInterface
	logger        *zap.Logger
}

func NewPOIService(poiRepository repositories.POIRepository,
	embeddingRepo repositories.PoiEmbeddingRepository,
	embedder utils.EmbeddingClientInterface,
	logger *zap.Logger) POIServiceInterface {
	return &PoiService{
		poiRepository: poiRepository,
		embeddingRepo: embeddingRepo,
		embedder:      embedder,
		logger:        logger,
	}
}

func (p *PoiService) GetPOIById(ctx context.Context, id string) (*db_models.POI, error) {
	poi, err := p.poiRepository.GetByID(ctx, id)
	if err != nil {
		p.logger.Error("failed to load POI", zap.String("id", id), zap.Error(err))
		return nil, utils.ErrDatabaseError
	}
	if poi == nil {
		return nil, utils.ErrPOINotFound
	}
	return poi, nil
}

func (p *PoiService) ListByCity(ctx context.Context, city, category string, limit int) ([]db_models.POI, error) {
	pois, err := p.poiRepository.ListByCity(ctx, city, category, limit)
	if err != nil {
		p.logger.Error("failed to list POIs", zap.String("city", city), zap.Error(err))
		return nil, utils.ErrDatabaseError
	}
	return pois, nil
}

// CreatePoi stores the POI and, when an embedder is configured, a matching
// vector row for interest search. Embedding failures do not fail the write.
func (p *PoiService) CreatePoi(ctx context.Context, poi *db_models.POI) (uuid.UUID, error) {
	id, err := p.poiRepository.CreatePoi(ctx, poi)
	if err != nil {
		p.logger.Error("failed to create POI", zap.Error(err))
		return uuid.Nil, utils.ErrDatabaseError
	}

	p.storeEmbedding(ctx, poi, id)
	return id, nil
}

// UpdatePoi rewrites an existing catalog entry and refreshes its embedding.
func (p *PoiService) UpdatePoi(ctx context.Context, poi *db_models.POI) error {
	existing, err := p.poiRepository.GetByID(ctx, poi.ID.String())
	if err != nil {
		p.logger.Error("failed to load POI", zap.String("id", poi.ID.String()), zap.Error(err))
		return utils.ErrDatabaseError
	}
	if existing == nil {
		return utils.ErrPOINotFound
	}

	if err := p.poiRepository.UpdatePoi(ctx, poi); err != nil {
		p.logger.Error("failed to update POI", zap.String("id", poi.ID.String()), zap.Error(err))
		return utils.ErrDatabaseError
	}

	p.storeEmbedding(ctx, poi, poi.ID)
	return nil
}

// storeEmbedding writes the POI's vector row when an embedder is
// configured. Failures are logged, never surfaced; the catalog write wins.
func (p *PoiService) storeEmbedding(ctx context.Context, poi *db_models.POI, id uuid.UUID) {
	if p.embedder == nil || p.embeddingRepo == nil {
		return
	}

	tagNames := make([]string, 0, len(poi.Tags))
	for _, tag := range poi.Tags {
		tagNames = append(tagNames, tag.Name)
	}

	text := poi.Name + " " + poi.Description + " " + strings.Join(tagNames, " ")
	vector, err := p.embedder.Embed(ctx, text)
	if err != nil {
		p.logger.Warn("failed to embed POI", zap.String("id", id.String()), zap.Error(err))
		return
	}
	err = p.embeddingRepo.CreatePoiEmbedding(ctx, db_models.PoiEmbedding{
		PoiID:     id.String(),
		Name:      poi.Name,
		City:      poi.City,
		Category:  poi.Category,
		Tags:      tagNames,
		Embedding: vector,
	})
	if err != nil {
		p.logger.Warn("failed to store POI embedding", zap.String("id", id.String()), zap.Error(err))
	}
}

func (p *PoiService) DeletePoi(ctx context.Context, id uuid.UUID) error {
	if err := p.poiRepository.Delete(ctx, id); err != nil {
		p.logger.Error("failed to delete POI", zap.String("id", id.String()), zap.Error(err))
		return utils.ErrDatabaseError
	}
	return nil
}
