package services

import (
	"context"

	"github.com/10-menachi/AirBnB-clone-v3/internal/models"
	"github.com/10-menachi/AirBnB-clone-v3/internal/repositories"
)

type CityService struct {
	Storage *repositories.Storage
}

func (s *CityService) GetCities(ctx context.Context) ([]*models.City, error) {
	store, done := storeFor(ctx, s.Storage)
	defer done()
	return listOf[*models.City](ctx, store, models.KindCity, nil)
}

func (s *CityService) GetCitiesByState(ctx context.Context, stateID string) ([]*models.City, error) {
	store, done := storeFor(ctx, s.Storage)
	defer done()
	if err := exists(ctx, store, models.KindState, stateID); err != nil {
		return nil, err
	}
	return listOf(ctx, store, models.KindCity, func(c *models.City) bool { return c.StateID == stateID })
}

func (s *CityService) GetCityByID(ctx context.Context, id string) (*models.City, error) {
	store, done := storeFor(ctx, s.Storage)
	defer done()
	return getAs[*models.City](ctx, store, models.KindCity, id)
}

// CreateCity creates a city in stateID, or in the body's state_id when stateID is empty.
func (s *CityService) CreateCity(ctx context.Context, stateID string, attrs Attrs) (*models.City, error) {
	store, done := storeFor(ctx, s.Storage)
	defer done()
	if stateID != "" {
		if err := exists(ctx, store, models.KindState, stateID); err != nil {
			return nil, err
		}
	}
	if err := models.Require(attrs, "name"); err != nil {
		return nil, err
	}
	if stateID == "" {
		var err error
		if stateID, err = refFrom(attrs, "state_id"); err != nil {
			return nil, err
		}
		if err := exists(ctx, store, models.KindState, stateID); err != nil {
			return nil, err
		}
	}
	return persist(ctx, store, &models.City{StateID: stateID}, attrs)
}

func (s *CityService) UpdateCity(ctx context.Context, id string, attrs Attrs) (*models.City, error) {
	store, done := storeFor(ctx, s.Storage)
	defer done()
	return update[*models.City](ctx, store, models.KindCity, id, attrs)
}

func (s *CityService) DeleteCity(ctx context.Context, id string) error {
	store, done := storeFor(ctx, s.Storage)
	defer done()
	return remove(ctx, store, models.KindCity, id)
}
