package services

import (
	"context"

	"github.com/10-menachi/AirBnB-clone-v3/internal/models"
	"github.com/10-menachi/AirBnB-clone-v3/internal/repositories"
)

type ReviewService struct {
	Storage *repositories.Storage
}

func (s *ReviewService) GetReviews(ctx context.Context) ([]*models.Review, error) {
	store, done := storeFor(ctx, s.Storage)
	defer done()
	return listOf[*models.Review](ctx, store, models.KindReview, nil)
}

func (s *ReviewService) GetReviewsByPlace(ctx context.Context, placeID string) ([]*models.Review, error) {
	store, done := storeFor(ctx, s.Storage)
	defer done()
	if err := exists(ctx, store, models.KindPlace, placeID); err != nil {
		return nil, err
	}
	return listOf(ctx, store, models.KindReview, func(r *models.Review) bool { return r.PlaceID == placeID })
}

func (s *ReviewService) GetReviewByID(ctx context.Context, id string) (*models.Review, error) {
	store, done := storeFor(ctx, s.Storage)
	defer done()
	return getAs[*models.Review](ctx, store, models.KindReview, id)
}

// CreateReview creates a review of placeID, or of the body's place_id when placeID is empty.
func (s *ReviewService) CreateReview(ctx context.Context, placeID string, attrs Attrs) (*models.Review, error) {
	store, done := storeFor(ctx, s.Storage)
	defer done()
	if placeID != "" {
		if err := exists(ctx, store, models.KindPlace, placeID); err != nil {
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
	if err := models.Require(attrs, "text"); err != nil {
		return nil, err
	}
	if placeID == "" {
		if placeID, err = refFrom(attrs, "place_id"); err != nil {
			return nil, err
		}
		if err := exists(ctx, store, models.KindPlace, placeID); err != nil {
			return nil, err
		}
	}
	return persist(ctx, store, &models.Review{PlaceID: placeID, UserID: userID}, attrs)
}

func (s *ReviewService) UpdateReview(ctx context.Context, id string, attrs Attrs) (*models.Review, error) {
	store, done := storeFor(ctx, s.Storage)
	defer done()
	return update[*models.Review](ctx, store, models.KindReview, id, attrs)
}

func (s *ReviewService) DeleteReview(ctx context.Context, id string) error {
	store, done := storeFor(ctx, s.Storage)
	defer done()
	return remove(ctx, store, models.KindReview, id)
}
