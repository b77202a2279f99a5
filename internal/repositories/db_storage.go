package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/10-menachi/AirBnB-clone-v3/internal/models"
)

// dbBackend maps each class onto its own table. Places carry their
// amenities through the place_amenity link table.
type dbBackend struct {
	db      *sql.DB
	dialect Dialect
}

// NewDBStorage wraps an open pool and creates any missing tables.
func NewDBStorage(ctx context.Context, db *sql.DB, dialect Dialect, logger Logger) (*Storage, error) {
	if db == nil {
		return nil, errors.New("db storage: DB is required")
	}
	b := &dbBackend{db: db, dialect: dialect}
	if err := b.migrate(ctx); err != nil {
		return nil, err
	}
	s := newStorage(b, logger)
	s.logger.Infof("db storage: %s schema ready", dialect)
	return s, nil
}

func (b *dbBackend) name() string { return "db" }

func (b *dbBackend) migrate(ctx context.Context) error {
	for _, stmt := range b.dialect.schema() {
		if _, err := b.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("db storage: create schema: %w", err)
		}
	}
	return nil
}

func (b *dbBackend) selectQuery(t table) string {
	return fmt.Sprintf("SELECT %s FROM %s", strings.Join(t.allColumns(), ", "), t.name)
}

func (b *dbBackend) load(ctx context.Context, kinds []models.Kind) (map[string]models.Record, error) {
	out := make(map[string]models.Record)
	for _, kind := range kinds {
		t := tables[kind]
		rows, err := b.db.QueryContext(ctx, b.selectQuery(t))
		if err != nil {
			return nil, err
		}
		var places []*models.Place
		for rows.Next() {
			rec, _ := models.NewRecord(kind)
			if err := rows.Scan(t.scanDest(rec)...); err != nil {
				rows.Close()
				return nil, err
			}
			out[models.Key(rec)] = rec
			if p, ok := rec.(*models.Place); ok {
				places = append(places, p)
			}
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return nil, err
		}
		rows.Close()
		if len(places) > 0 {
			if err := b.loadAmenities(ctx, places); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

func (b *dbBackend) loadAmenities(ctx context.Context, places []*models.Place) error {
	byID := make(map[string]*models.Place, len(places))
	for _, p := range places {
		byID[p.ID] = p
	}
	query := "SELECT place_id, amenity_id FROM place_amenity"
	var args []any
	if len(places) == 1 {
		query += " WHERE place_id = ?"
		args = append(args, places[0].ID)
	}
	rows, err := b.db.QueryContext(ctx, b.dialect.rebind(query), args...)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var placeID, amenityID string
		if err := rows.Scan(&placeID, &amenityID); err != nil {
			return err
		}
		if p, ok := byID[placeID]; ok {
			p.AddAmenity(amenityID)
		}
	}
	return rows.Err()
}

func (b *dbBackend) fetch(ctx context.Context, kind models.Kind, id string) (models.Record, error) {
	t, ok := tables[kind]
	if !ok {
		return nil, models.ErrNoRecord
	}
	rec, _ := models.NewRecord(kind)
	query := b.dialect.rebind(b.selectQuery(t) + " WHERE id = ?")
	err := b.db.QueryRowContext(ctx, query, id).Scan(t.scanDest(rec)...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNoRecord
	}
	if err != nil {
		return nil, err
	}
	if p, ok := rec.(*models.Place); ok {
		if err := b.loadAmenities(ctx, []*models.Place{p}); err != nil {
			return nil, err
		}
	}
	return rec, nil
}

func (b *dbBackend) count(ctx context.Context, kinds []models.Kind) (int, error) {
	total := 0
	for _, kind := range kinds {
		var n int
		if err := b.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+tables[kind].name).Scan(&n); err != nil {
			return 0, err
		}
		total += n
	}
	return total, nil
}

func (b *dbBackend) commit(ctx context.Context, ops []op) error {
	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	for _, o := range ops {
		if err := b.apply(ctx, tx, o); err != nil {
			_ = tx.Rollback()
			if isConstraintError(err) {
				return fmt.Errorf("%w: constraint violation on %s: %w", ErrPersistence, models.Key(o.rec), err)
			}
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		if isConstraintError(err) {
			return fmt.Errorf("%w: constraint violation: %w", ErrPersistence, err)
		}
		return err
	}
	return nil
}

func (b *dbBackend) apply(ctx context.Context, tx *sql.Tx, o op) error {
	t := tables[o.rec.Kind()]
	if o.kind == opDelete {
		_, err := tx.ExecContext(ctx, b.dialect.rebind("DELETE FROM "+t.name+" WHERE id = ?"), o.rec.Base().ID)
		return err
	}
	query := b.dialect.rebind(b.dialect.upsert(t.name, t.allColumns()))
	if _, err := tx.ExecContext(ctx, query, t.args(o.rec)...); err != nil {
		return err
	}
	p, ok := o.rec.(*models.Place)
	if !ok {
		return nil
	}
	if _, err := tx.ExecContext(ctx, b.dialect.rebind("DELETE FROM place_amenity WHERE place_id = ?"), p.ID); err != nil {
		return err
	}
	link := b.dialect.rebind("INSERT INTO place_amenity (place_id, amenity_id) VALUES (?, ?)")
	for _, amenityID := range p.AmenityIDs {
		if _, err := tx.ExecContext(ctx, link, p.ID, amenityID); err != nil {
			return err
		}
	}
	return nil
}

func (b *dbBackend) reload(context.Context) error { return nil }

// reset drops every table and recreates the schema.
func (b *dbBackend) reset(ctx context.Context) error {
	for _, name := range dropOrder {
		if _, err := b.db.ExecContext(ctx, "DROP TABLE IF EXISTS "+name); err != nil {
			return err
		}
	}
	return b.migrate(ctx)
}

func (b *dbBackend) close() error {
	return b.db.Close()
}
