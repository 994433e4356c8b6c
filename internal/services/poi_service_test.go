package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"nomadai/internal/models/db_models"
	"nomadai/pkg/utils"
)

type stubPoiRepo struct {
	pois    map[string]db_models.POI
	updated []db_models.POI
}

func newStubPoiRepo(pois ...db_models.POI) *stubPoiRepo {
	repo := &stubPoiRepo{pois: make(map[string]db_models.POI)}
	for _, poi := range pois {
		repo.pois[poi.ID.String()] = poi
	}
	return repo
}

func (s *stubPoiRepo) CreatePoi(_ context.Context, poi *db_models.POI) (uuid.UUID, error) {
	if poi.ID == uuid.Nil {
		poi.ID = uuid.New()
	}
	s.pois[poi.ID.String()] = *poi
	return poi.ID, nil
}

func (s *stubPoiRepo) UpdatePoi(_ context.Context, poi *db_models.POI) error {
	s.updated = append(s.updated, *poi)
	s.pois[poi.ID.String()] = *poi
	return nil
}

func (s *stubPoiRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(s.pois, id.String())
	return nil
}

func (s *stubPoiRepo) GetByID(_ context.Context, id string) (*db_models.POI, error) {
	if poi, ok := s.pois[id]; ok {
		return &poi, nil
	}
	return nil, nil
}

func (s *stubPoiRepo) ListByCity(_ context.Context, _, _ string, _ int) ([]db_models.POI, error) {
	out := make([]db_models.POI, 0, len(s.pois))
	for _, poi := range s.pois {
		out = append(out, poi)
	}
	return out, nil
}

func (s *stubPoiRepo) ListByIDs(_ context.Context, ids []string) ([]db_models.POI, error) {
	var out []db_models.POI
	for _, id := range ids {
		if poi, ok := s.pois[id]; ok {
			out = append(out, poi)
		}
	}
	return out, nil
}

func TestUpdatePoiUnknownIDNotFound(t *testing.T) {
	repo := newStubPoiRepo()
	service := NewPOIService(repo, nil, nil, zap.NewNop())

	poi := db_models.POI{Name: "Louvre", City: "Paris"}
	poi.ID = uuid.New()

	err := service.UpdatePoi(context.Background(), &poi)

	require.ErrorIs(t, err, utils.ErrPOINotFound)
	assert.Empty(t, repo.updated)
}

func TestUpdatePoiRewritesEntry(t *testing.T) {
	existing := db_models.POI{Name: "Louvre", City: "Paris", Category: "activity"}
	existing.ID = uuid.New()
	repo := newStubPoiRepo(existing)
	service := NewPOIService(repo, nil, nil, zap.NewNop())

	changed := existing
	changed.Name = "Louvre Museum"
	changed.Rating = 4.8

	err := service.UpdatePoi(context.Background(), &changed)
	require.NoError(t, err)

	require.Len(t, repo.updated, 1)
	assert.Equal(t, "Louvre Museum", repo.updated[0].Name)
	assert.Equal(t, 4.8, repo.updated[0].Rating)
}
