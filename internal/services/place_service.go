package services

import (
	"context"

	"github.com/10-menachi/AirBnB-clone-v3/internal/models"
	"github.com/10-menachi/AirBnB-clone-v3/internal/repositories"
)

type PlaceService struct {
	Storage *repositories.Storage
}

// PlaceSearch is the body of POST /places_search. Empty lists match everything.
type PlaceSearch struct {
	States    []string `json:"states"`
	Cities    []string `json:"cities"`
	Amenities []string `json:"amenities"`
}

func (s *PlaceService) GetPlaces(ctx context.Context) ([]*models.Place, error) {
	store, done := storeFor(ctx, s.Storage)
	defer done()
	return listOf[*models.Place](ctx, store, models.KindPlace, nil)
}

func (s *PlaceService) GetPlacesByCity(ctx context.Context, cityID string) ([]*models.Place, error) {
	store, done := storeFor(ctx, s.Storage)
	defer done()
	if err := exists(ctx, store, models.KindCity, cityID); err != nil {
		return nil, err
	}
	return listOf(ctx, store, models.KindPlace, func(p *models.Place) bool { return p.CityID == cityID })
}

func (s *PlaceService) GetPlaceByID(ctx context.Context, id string) (*models.Place, error) {
	store, done := storeFor(ctx, s.Storage)
	defer done()
	return getAs[*models.Place](ctx, store, models.KindPlace, id)
}

// CreatePlace creates a place in cityID, or in the body's city_id when cityID is empty.
func (s *PlaceService) CreatePlace(ctx context.Context, cityID string, attrs Attrs) (*models.Place, error) {
	store, done := storeFor(ctx, s.Storage)
	defer done()
	if cityID != "" {
		if err := exists(ctx, store, models.KindCity, cityID); err != nil {
			return nil, err
		}
	}
	userID, err := refFrom(attrs, "user_id")
	if err != nil {
		return nil, err
	}
	if err := exists(ctx, store, models.KindUser, userID); err != nil {
		return nil, err
	}
	if err := models.Require(attrs, "name"); err != nil {
		return nil, err
	}
	if cityID == "" {
		if cityID, err = refFrom(attrs, "city_id"); err != nil {
			return nil, err
		}
		if err := exists(ctx, store, models.KindCity, cityID); err != nil {
			return nil, err
		}
	}
	return persist(ctx, store, &models.Place{CityID: cityID, UserID: userID}, attrs)
}

func (s *PlaceService) UpdatePlace(ctx context.Context, id string, attrs Attrs) (*models.Place, error) {
	store, done := storeFor(ctx, s.Storage)
	defer done()
	return update[*models.Place](ctx, store, models.KindPlace, id, attrs)
}

func (s *PlaceService) DeletePlace(ctx context.Context, id string) error {
	store, done := storeFor(ctx, s.Storage)
	defer done()
	return remove(ctx, store, models.KindPlace, id)
}

// SearchPlaces returns the places located in any of the listed states or
// cities that offer every listed amenity.
func (s *PlaceService) SearchPlaces(ctx context.Context, q PlaceSearch) ([]*models.Place, error) {
	store, done := storeFor(ctx, s.Storage)
	defer done()

	cityIDs := make(map[string]bool)
	for _, id := range q.Cities {
		cityIDs[id] = true
	}
	if len(q.States) > 0 {
		states := make(map[string]bool, len(q.States))
		for _, id := range q.States {
			states[id] = true
		}
		cities, err := listOf(ctx, store, models.KindCity, func(c *models.City) bool { return states[c.StateID] })
		if err != nil {
			return nil, err
		}
		for _, c := range cities {
			cityIDs[c.ID] = true
		}
	}
	byLocation := len(q.States) > 0 || len(q.Cities) > 0

	return listOf(ctx, store, models.KindPlace, func(p *models.Place) bool {
		if byLocation && !cityIDs[p.CityID] {
			return false
		}
		for _, a := range q.Amenities {
			if !p.HasAmenity(a) {
				return false
			}
		}
		return true
	})
}

func (s *PlaceService) GetPlaceAmenities(ctx context.Context, placeID string) ([]*models.Amenity, error) {
	store, done := storeFor(ctx, s.Storage)
	defer done()
	place, err := getAs[*models.Place](ctx, store, models.KindPlace, placeID)
	if err != nil {
		return nil, err
	}
	return listOf(ctx, store, models.KindAmenity, func(a *models.Amenity) bool { return place.HasAmenity(a.ID) })
}

// LinkAmenity links amenityID to placeID and reports whether the link is new.
func (s *PlaceService) LinkAmenity(ctx context.Context, placeID, amenityID string) (*models.Amenity, bool, error) {
	store, done := storeFor(ctx, s.Storage)
	defer done()
	place, amenity, err := placeAndAmenity(ctx, store, placeID, amenityID)
	if err != nil {
		return nil, false, err
	}
	if !place.AddAmenity(amenityID) {
		return amenity, false, nil
	}
	store.New(place)
	if err := store.Save(ctx); err != nil {
		return nil, false, err
	}
	return amenity, true, nil
}

// UnlinkAmenity returns models.ErrNoRecord when the amenity is not linked.
func (s *PlaceService) UnlinkAmenity(ctx context.Context, placeID, amenityID string) error {
	store, done := storeFor(ctx, s.Storage)
	defer done()
	place, _, err := placeAndAmenity(ctx, store, placeID, amenityID)
	if err != nil {
		return err
	}
	if !place.RemoveAmenity(amenityID) {
		return models.ErrNoRecord
	}
	store.New(place)
	return store.Save(ctx)
}

func placeAndAmenity(ctx context.Context, store repositories.Store, placeID, amenityID string) (*models.Place, *models.Amenity, error) {
	place, err := getAs[*models.Place](ctx, store, models.KindPlace, placeID)
	if err != nil {
		return nil, nil, err
	}
	amenity, err := getAs[*models.Amenity](ctx, store, models.KindAmenity, amenityID)
	if err != nil {
		return nil, nil, err
	}
	return place, amenity, nil
}
