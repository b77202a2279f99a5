package repositories

import (
	"fmt"

	"github.com/10-menachi/AirBnB-clone-v3/internal/models"
)

// applyOps folds ops into snap the way the relational schema would: deletes
// cascade along references, weak references are unlinked, and every
// remaining reference must resolve. Records stored in snap are replaced,
// never mutated, so snap may share records with committed state.
func applyOps(snap map[string]models.Record, ops []op) error {
	for _, o := range ops {
		switch o.kind {
		case opPut:
			snap[models.Key(o.rec)] = o.rec.Clone()
		case opDelete:
			removeCascade(snap, models.Key(o.rec))
		}
	}
	return checkReferences(snap)
}

func removeCascade(snap map[string]models.Record, key string) {
	rec, ok := snap[key]
	if !ok {
		return
	}
	delete(snap, key)
	for childKey, child := range snap {
		for _, ref := range child.References() {
			if ref.Key() != key {
				continue
			}
			if !ref.Weak {
				removeCascade(snap, childKey)
				break
			}
			if p, ok := child.(*models.Place); ok && rec.Kind() == models.KindAmenity {
				unlinked := p.Clone().(*models.Place)
				unlinked.RemoveAmenity(ref.ID)
				snap[childKey] = unlinked
			}
		}
	}
}

func checkReferences(snap map[string]models.Record) error {
	for key, rec := range snap {
		for _, ref := range rec.References() {
			if _, ok := snap[ref.Key()]; !ok {
				return fmt.Errorf("%w: constraint violation: %s references missing %s", ErrPersistence, key, ref.Key())
			}
		}
	}
	return nil
}

func filterKinds(recs map[string]models.Record, kinds []models.Kind) map[string]models.Record {
	out := make(map[string]models.Record)
	for key, rec := range recs {
		for _, k := range kinds {
			if rec.Kind() == k {
				out[key] = rec.Clone()
				break
			}
		}
	}
	return out
}
