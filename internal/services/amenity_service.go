package services

import (
	"context"

	"github.com/10-menachi/AirBnB-clone-v3/internal/models"
	"github.com/10-menachi/AirBnB-clone-v3/internal/repositories"
)

type AmenityService struct {
	Storage *repositories.Storage
}

func (s *AmenityService) GetAmenities(ctx context.Context) ([]*models.Amenity, error) {
	store, done := storeFor(ctx, s.Storage)
	defer done()
	return listOf[*models.Amenity](ctx, store, models.KindAmenity, nil)
}

func (s *AmenityService) GetAmenityByID(ctx context.Context, id string) (*models.Amenity, error) {
	store, done := storeFor(ctx, s.Storage)
	defer done()
	return getAs[*models.Amenity](ctx, store, models.KindAmenity, id)
}

func (s *AmenityService) CreateAmenity(ctx context.Context, attrs Attrs) (*models.Amenity, error) {
	if err := models.Require(attrs, "name"); err != nil {
		return nil, err
	}
	store, done := storeFor(ctx, s.Storage)
	defer done()
	return persist(ctx, store, &models.Amenity{}, attrs)
}

func (s *AmenityService) UpdateAmenity(ctx context.Context, id string, attrs Attrs) (*models.Amenity, error) {
	store, done := storeFor(ctx, s.Storage)
	defer done()
	return update[*models.Amenity](ctx, store, models.KindAmenity, id, attrs)
}

func (s *AmenityService) DeleteAmenity(ctx context.Context, id string) error {
	store, done := storeFor(ctx, s.Storage)
	defer done()
	return remove(ctx, store, models.KindAmenity, id)
}
