package services

import (
	"context"
	"encoding/json"
	"slices"
	"strings"

	"github.com/10-menachi/AirBnB-clone-v3/internal/models"
	"github.com/10-menachi/AirBnB-clone-v3/internal/repositories"
)

// Attrs is a decoded JSON object body.
type Attrs = map[string]json.RawMessage

// storeFor returns the request-scoped session, or opens one the caller must release.
func storeFor(ctx context.Context, storage *repositories.Storage) (repositories.Store, func()) {
	if sess, ok := repositories.SessionFromContext(ctx); ok {
		return sess, func() {}
	}
	sess := storage.Session()
	return sess, func() { _ = sess.Close() }
}

// listOf returns every record of kind accepted by keep, oldest first.
func listOf[T models.Record](ctx context.Context, store repositories.Store, kind models.Kind, keep func(T) bool) ([]T, error) {
	all, err := store.All(ctx, kind)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(all))
	for _, rec := range all {
		v, ok := rec.(T)
		if !ok || (keep != nil && !keep(v)) {
			continue
		}
		out = append(out, v)
	}
	slices.SortFunc(out, func(a, b T) int {
		if c := a.Base().CreatedAt.Compare(b.Base().CreatedAt.Time); c != 0 {
			return c
		}
		return strings.Compare(a.Base().ID, b.Base().ID)
	})
	return out, nil
}

func getAs[T models.Record](ctx context.Context, store repositories.Store, kind models.Kind, id string) (T, error) {
	var zero T
	rec, err := store.Get(ctx, kind, id)
	if err != nil {
		return zero, err
	}
	v, ok := rec.(T)
	if !ok {
		return zero, models.ErrNoRecord
	}
	return v, nil
}

// exists reports models.ErrNoRecord when kind/id is absent.
func exists(ctx context.Context, store repositories.Store, kind models.Kind, id string) error {
	_, err := store.Get(ctx, kind, id)
	return err
}

// persist merges attrs into rec, stages and commits it.
func persist[T models.Record](ctx context.Context, store repositories.Store, rec T, attrs Attrs) (T, error) {
	var zero T
	merged, err := models.Merge(rec, attrs)
	if err != nil {
		return zero, err
	}
	out := merged.(T)
	store.New(out)
	if err := store.Save(ctx); err != nil {
		return zero, err
	}
	return out, nil
}

func update[T models.Record](ctx context.Context, store repositories.Store, kind models.Kind, id string, attrs Attrs) (T, error) {
	rec, err := getAs[T](ctx, store, kind, id)
	if err != nil {
		return rec, err
	}
	return persist(ctx, store, rec, attrs)
}

func remove(ctx context.Context, store repositories.Store, kind models.Kind, id string) error {
	rec, err := store.Get(ctx, kind, id)
	if err != nil {
		return err
	}
	store.Delete(rec)
	return store.Save(ctx)
}

// refFrom reads a reference id supplied in the body rather than the path.
func refFrom(attrs Attrs, field string) (string, error) {
	if err := models.Require(attrs, field); err != nil {
		return "", err
	}
	return models.StringAttr(attrs, field)
}
