package services

import (
	"context"

	"github.com/10-menachi/AirBnB-clone-v3/internal/models"
	"github.com/10-menachi/AirBnB-clone-v3/internal/repositories"
)

// statsNames are the keys GET /stats reports counts under.
var statsNames = map[models.Kind]string{
	models.KindAmenity: "amenities",
	models.KindCity:    "cities",
	models.KindPlace:   "places",
	models.KindReview:  "reviews",
	models.KindState:   "states",
	models.KindUser:    "users",
}

type StatsService struct {
	Storage *repositories.Storage
}

func (s *StatsService) GetStats(ctx context.Context) (map[string]int, error) {
	store, done := storeFor(ctx, s.Storage)
	defer done()
	out := make(map[string]int, len(statsNames))
	for _, kind := range models.Kinds {
		n, err := store.Count(ctx, kind)
		if err != nil {
			return nil, err
		}
		out[statsNames[kind]] = n
	}
	return out, nil
}
