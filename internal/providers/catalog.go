package providers

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"nomadai/internal/models/db_models"
	"nomadai/internal/repositories"
	"nomadai/pkg/utils"
)

// CatalogProvider serves activity and meal candidates from the curated POI
// catalog. When interest tags are present it first tries a vector search
// over the embedding table and falls back to the plain city listing.
type CatalogProvider struct {
	category      Category
	poiRepo       repositories.POIRepository
	embeddingRepo repositories.PoiEmbeddingRepository
	embedder      utils.EmbeddingClientInterface
	logger        *zap.Logger
}

func NewActivityCatalogProvider(poiRepo repositories.POIRepository,
	embeddingRepo repositories.PoiEmbeddingRepository,
	embedder utils.EmbeddingClientInterface, logger *zap.Logger) *CatalogProvider {
	return &CatalogProvider{
		category:      CategoryActivity,
		poiRepo:       poiRepo,
		embeddingRepo: embeddingRepo,
		embedder:      embedder,
		logger:        logger,
	}
}

func NewMealCatalogProvider(poiRepo repositories.POIRepository,
	embeddingRepo repositories.PoiEmbeddingRepository,
	embedder utils.EmbeddingClientInterface, logger *zap.Logger) *CatalogProvider {
	return &CatalogProvider{
		category:      CategoryMeal,
		poiRepo:       poiRepo,
		embeddingRepo: embeddingRepo,
		embedder:      embedder,
		logger:        logger,
	}
}

func (p *CatalogProvider) Category() Category { return p.category }

func (p *CatalogProvider) Fetch(ctx context.Context, cons Constraints) ([]CandidateOption, error) {
	limit := cons.Limit
	if limit <= 0 {
		limit = 30
	}

	pois, err := p.fetchByVector(ctx, cons, limit)
	if err != nil {
		p.logger.Warn("vector search unavailable, using city listing",
			zap.String("category", string(p.category)),
			zap.Error(err))
	}
	if len(pois) == 0 {
		pois, err = p.poiRepo.ListByCity(ctx, cons.Destination, string(p.category), limit)
		if err != nil {
			return nil, fmt.Errorf("catalog lookup failed: %w", err)
		}
	}

	options := make([]CandidateOption, 0, len(pois))
	for _, poi := range pois {
		options = append(options, p.toOption(poi))
	}
	return options, nil
}

// fetchByVector embeds the interest tags and searches the embedding table.
// Returns nil when the request carries no tags.
func (p *CatalogProvider) fetchByVector(ctx context.Context, cons Constraints, limit int) ([]db_models.POI, error) {
	if len(cons.Tags) == 0 || p.embedder == nil || p.embeddingRepo == nil {
		return nil, nil
	}

	query := string(p.category) + " " + strings.Join(cons.Tags, " ")
	vector, err := p.embedder.Embed(ctx, query)
	if err != nil {
		return nil, err
	}

	matches, err := p.embeddingRepo.SearchByVector(ctx, vector, cons.Destination, limit)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, nil
	}

	ids := make([]string, 0, len(matches))
	for _, match := range matches {
		if match.Category == string(p.category) {
			ids = append(ids, match.PoiID)
		}
	}
	return p.poiRepo.ListByIDs(ctx, ids)
}

func (p *CatalogProvider) toOption(poi db_models.POI) CandidateOption {
	option := CandidateOption{
		Category:    p.category,
		ProviderID:  "catalog-" + poi.ID.String(),
		Name:        poi.Name,
		Description: poi.Description,
		PriceMinor:  poi.EntryFeeMinor,
		Currency:    poi.Currency,
		Location:    &GeoPoint{Lat: poi.Latitude, Lng: poi.Longitude},
		DurationMin: poi.DurationMinutes,
		Quality:     poi.Rating,
	}
	for _, tag := range poi.Tags {
		option.Tags = append(option.Tags, tag.Name)
	}
	if poi.OpeningHours != "" {
		if hours, err := ParseOpeningHours(poi.OpeningHours); err == nil {
			option.Hours = hours
		} else {
			p.logger.Warn("skipping malformed opening hours",
				zap.String("poi", poi.Name),
				zap.String("value", poi.OpeningHours))
		}
	}
	return option
}
