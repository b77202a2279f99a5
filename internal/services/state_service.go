package services

import (
	"context"

	"github.com/10-menachi/AirBnB-clone-v3/internal/models"
	"github.com/10-menachi/AirBnB-clone-v3/internal/repositories"
)

type StateService struct {
	Storage *repositories.Storage
}

func (s *StateService) GetStates(ctx context.Context) ([]*models.State, error) {
	store, done := storeFor(ctx, s.Storage)
	defer done()
	return listOf[*models.State](ctx, store, models.KindState, nil)
}

func (s *StateService) GetStateByID(ctx context.Context, id string) (*models.State, error) {
	store, done := storeFor(ctx, s.Storage)
	defer done()
	return getAs[*models.State](ctx, store, models.KindState, id)
}

func (s *StateService) CreateState(ctx context.Context, attrs Attrs) (*models.State, error) {
	if err := models.Require(attrs, "name"); err != nil {
		return nil, err
	}
	store, done := storeFor(ctx, s.Storage)
	defer done()
	return persist(ctx, store, &models.State{}, attrs)
}

func (s *StateService) UpdateState(ctx context.Context, id string, attrs Attrs) (*models.State, error) {
	store, done := storeFor(ctx, s.Storage)
	defer done()
	return update[*models.State](ctx, store, models.KindState, id, attrs)
}

func (s *StateService) DeleteState(ctx context.Context, id string) error {
	store, done := storeFor(ctx, s.Storage)
	defer done()
	return remove(ctx, store, models.KindState, id)
}
