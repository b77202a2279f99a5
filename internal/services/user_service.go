package services

import (
	"context"
	"encoding/json"

	"github.com/10-menachi/AirBnB-clone-v3/internal/models"
	"github.com/10-menachi/AirBnB-clone-v3/internal/repositories"
)

type UserService struct {
	Storage *repositories.Storage
}

func (s *UserService) GetUsers(ctx context.Context) ([]*models.User, error) {
	store, done := storeFor(ctx, s.Storage)
	defer done()
	return listOf[*models.User](ctx, store, models.KindUser, nil)
}

func (s *UserService) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	store, done := storeFor(ctx, s.Storage)
	defer done()
	return getAs[*models.User](ctx, store, models.KindUser, id)
}

func (s *UserService) CreateUser(ctx context.Context, attrs Attrs) (*models.User, error) {
	if err := models.Require(attrs, "email", "password"); err != nil {
		return nil, err
	}
	email, err := models.StringAttr(attrs, "email")
	if err != nil {
		return nil, err
	}
	store, done := storeFor(ctx, s.Storage)
	defer done()
	return s.save(ctx, store, &models.User{Email: email}, attrs)
}

func (s *UserService) UpdateUser(ctx context.Context, id string, attrs Attrs) (*models.User, error) {
	store, done := storeFor(ctx, s.Storage)
	defer done()
	user, err := getAs[*models.User](ctx, store, models.KindUser, id)
	if err != nil {
		return nil, err
	}
	return s.save(ctx, store, user, attrs)
}

// save merges attrs and rehashes the password when one is supplied.
func (s *UserService) save(ctx context.Context, store repositories.Store, user *models.User, attrs Attrs) (*models.User, error) {
	merged, err := models.Merge(user, attrs)
	if err != nil {
		return nil, err
	}
	out := merged.(*models.User)
	if raw, ok := attrs["password"]; ok && string(raw) != "null" {
		var plain string
		if err := json.Unmarshal(raw, &plain); err != nil {
			return nil, &models.FieldError{Field: "password", Err: models.ErrInvalidAttribute}
		}
		if err := out.SetPassword(plain); err != nil {
			return nil, err
		}
	}
	store.New(out)
	if err := store.Save(ctx); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	store, done := storeFor(ctx, s.Storage)
	defer done()
	return remove(ctx, store, models.KindUser, id)
}
