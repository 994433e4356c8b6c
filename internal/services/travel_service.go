package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"nomadai/internal/models/db_models"
	"nomadai/internal/models/response_models"
	"nomadai/internal/providers"
	"nomadai/internal/repositories"
	"nomadai/pkg/utils"
)

// TravelServiceInterface exposes the standalone search surface: the same
// adapter the planner uses, queried one category at a time, plus the city
// reference data behind it.
type TravelServiceInterface interface {
	SearchFlights(ctx context.Context, origin, destination string, start, end time.Time, travelers int) (response_models.SearchResponse, error)
	SearchHotels(ctx context.Context, destination string, start, end time.Time, travelers int) (response_models.SearchResponse, error)
	SearchPois(ctx context.Context, city, category string, tags []string, limit int) (response_models.SearchResponse, error)
	ListPopularCities(ctx context.Context, limit int) ([]response_models.CityResponse, error)
	SearchCities(ctx context.Context, keyword string, limit int) ([]response_models.CityResponse, error)
	CreateCity(ctx context.Context, city *db_models.City) error
}

type travelService struct {
	adapter  *providers.Adapter
	cityRepo repositories.CityRepository
	logger   *zap.Logger
}

func NewTravelService(adapter *providers.Adapter, cityRepo repositories.CityRepository, logger *zap.Logger) TravelServiceInterface {
	return &travelService{adapter: adapter, cityRepo: cityRepo, logger: logger}
}

func (s *travelService) search(ctx context.Context, category providers.Category, cons providers.Constraints) (response_models.SearchResponse, error) {
	options, err := s.adapter.Fetch(ctx, category, cons)
	if err != nil {
		if errors.Is(err, providers.ErrProviderUnavailable) {
			s.logger.Warn("search degraded", zap.String("category", string(category)), zap.Error(err))
			return response_models.SearchResponse{
				Category: string(category),
				Options:  []response_models.OptionResponse{},
				Degraded: true,
			}, nil
		}
		return response_models.SearchResponse{}, fmt.Errorf("%s search failed: %w", category, err)
	}

	response := response_models.SearchResponse{
		Category: string(category),
		Count:    len(options),
		Options:  make([]response_models.OptionResponse, 0, len(options)),
	}
	for _, option := range options {
		response.Options = append(response.Options, response_models.OptionResponse{
			Category:    string(option.Category),
			ProviderID:  option.ProviderID,
			Name:        option.Name,
			Description: option.Description,
			PriceMinor:  option.PriceMinor,
			Currency:    option.Currency,
			Tags:        option.Tags,
		})
	}
	return response, nil
}

func (s *travelService) SearchFlights(ctx context.Context, origin, destination string, start, end time.Time, travelers int) (response_models.SearchResponse, error) {
	return s.search(ctx, providers.CategoryFlight, providers.Constraints{
		Origin:      origin,
		Destination: destination,
		StartDate:   start,
		EndDate:     end,
		Travelers:   travelers,
	})
}

func (s *travelService) SearchHotels(ctx context.Context, destination string, start, end time.Time, travelers int) (response_models.SearchResponse, error) {
	return s.search(ctx, providers.CategoryLodging, providers.Constraints{
		Destination: destination,
		StartDate:   start,
		EndDate:     end,
		Travelers:   travelers,
	})
}

func (s *travelService) SearchPois(ctx context.Context, city, category string, tags []string, limit int) (response_models.SearchResponse, error) {
	target := providers.CategoryActivity
	if category == string(providers.CategoryMeal) {
		target = providers.CategoryMeal
	}
	return s.search(ctx, target, providers.Constraints{
		Destination: city,
		Tags:        tags,
		Limit:       limit,
	})
}

func (s *travelService) ListPopularCities(ctx context.Context, limit int) ([]response_models.CityResponse, error) {
	cities, err := s.cityRepo.ListPopular(ctx, limit)
	if err != nil {
		s.logger.Error("failed to list cities", zap.Error(err))
		return nil, utils.ErrDatabaseError
	}
	return toCityResponses(cities), nil
}

func (s *travelService) SearchCities(ctx context.Context, keyword string, limit int) ([]response_models.CityResponse, error) {
	cities, err := s.cityRepo.SearchByKeyword(ctx, keyword, limit)
	if err != nil {
		s.logger.Error("failed to search cities", zap.String("keyword", keyword), zap.Error(err))
		return nil, utils.ErrDatabaseError
	}
	return toCityResponses(cities), nil
}

// CreateCity adds a destination to the reference table. The IATA code is the
// lookup key for flight and hotel searches, so duplicates are rejected.
func (s *travelService) CreateCity(ctx context.Context, city *db_models.City) error {
	existing, err := s.cityRepo.GetByIataCode(ctx, city.IataCode)
	if err != nil {
		s.logger.Error("failed to check city", zap.String("iata", city.IataCode), zap.Error(err))
		return utils.ErrDatabaseError
	}
	if existing != nil {
		return fmt.Errorf("%w: city with IATA code %s already exists", utils.ErrInvalidInput, city.IataCode)
	}

	if err := s.cityRepo.Insert(ctx, city); err != nil {
		s.logger.Error("failed to create city", zap.Error(err))
		return utils.ErrDatabaseError
	}
	return nil
}

func toCityResponses(cities []db_models.City) []response_models.CityResponse {
	responses := make([]response_models.CityResponse, 0, len(cities))
	for _, city := range cities {
		responses = append(responses, response_models.CityResponse{
			Name:        city.Name,
			CountryCode: city.CountryCode,
			IataCode:    city.IataCode,
			Description: city.Description,
		})
	}
	return responses
}
