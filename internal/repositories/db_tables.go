package repositories

import (
	"fmt"
	"time"

	"github.com/10-menachi/AirBnB-clone-v3/internal/models"
)

// sqlTimeFormat is accepted by DATETIME(6), TIMESTAMP(6) and sorts as TEXT.
const sqlTimeFormat = "2006-01-02 15:04:05.000000"

// table maps one class onto its table. columns excludes the id and
// timestamp columns every table carries.
type table struct {
	name    string
	columns []string
	values  func(models.Record) []any
	dest    func(models.Record) []any
}

var tables = map[models.Kind]table{
	models.KindState: {
		name:    "states",
		columns: []string{"name"},
		values: func(r models.Record) []any {
			s := r.(*models.State)
			return []any{s.Name}
		},
		dest: func(r models.Record) []any {
			s := r.(*models.State)
			return []any{&s.Name}
		},
	},
	models.KindCity: {
		name:    "cities",
		columns: []string{"state_id", "name"},
		values: func(r models.Record) []any {
			c := r.(*models.City)
			return []any{c.StateID, c.Name}
		},
		dest: func(r models.Record) []any {
			c := r.(*models.City)
			return []any{&c.StateID, &c.Name}
		},
	},
	models.KindUser: {
		name:    "users",
		columns: []string{"email", "password", "first_name", "last_name"},
		values: func(r models.Record) []any {
			u := r.(*models.User)
			return []any{u.Email, u.Password, u.FirstName, u.LastName}
		},
		dest: func(r models.Record) []any {
			u := r.(*models.User)
			return []any{&u.Email, &u.Password, &u.FirstName, &u.LastName}
		},
	},
	models.KindAmenity: {
		name:    "amenities",
		columns: []string{"name"},
		values: func(r models.Record) []any {
			a := r.(*models.Amenity)
			return []any{a.Name}
		},
		dest: func(r models.Record) []any {
			a := r.(*models.Amenity)
			return []any{&a.Name}
		},
	},
	models.KindPlace: {
		name: "places",
		columns: []string{
			"city_id", "user_id", "name", "description", "number_rooms",
			"number_bathrooms", "max_guest", "price_by_night", "latitude", "longitude",
		},
		values: func(r models.Record) []any {
			p := r.(*models.Place)
			return []any{
				p.CityID, p.UserID, p.Name, p.Description, p.NumberRooms,
				p.NumberBathroom, p.MaxGuest, p.PriceByNight, p.Latitude, p.Longitude,
			}
		},
		dest: func(r models.Record) []any {
			p := r.(*models.Place)
			return []any{
				&p.CityID, &p.UserID, &p.Name, &p.Description, &p.NumberRooms,
				&p.NumberBathroom, &p.MaxGuest, &p.PriceByNight, &p.Latitude, &p.Longitude,
			}
		},
	},
	models.KindReview: {
		name:    "reviews",
		columns: []string{"place_id", "user_id", "text"},
		values: func(r models.Record) []any {
			rv := r.(*models.Review)
			return []any{rv.PlaceID, rv.UserID, rv.Text}
		},
		dest: func(r models.Record) []any {
			rv := r.(*models.Review)
			return []any{&rv.PlaceID, &rv.UserID, &rv.Text}
		},
	},
}

func (t table) allColumns() []string {
	return append([]string{"id", "created_at", "updated_at"}, t.columns...)
}

func (t table) args(rec models.Record) []any {
	b := rec.Base()
	return append([]any{b.ID, formatSQLTime(b.CreatedAt), formatSQLTime(b.UpdatedAt)}, t.values(rec)...)
}

func (t table) scanDest(rec models.Record) []any {
	b := rec.Base()
	return append([]any{&b.ID, dbTime{&b.CreatedAt}, dbTime{&b.UpdatedAt}}, t.dest(rec)...)
}

func formatSQLTime(ts models.Timestamp) string {
	return ts.UTC().Format(sqlTimeFormat)
}

// dbTime scans whatever representation a driver returns for a timestamp column.
type dbTime struct {
	ts *models.Timestamp
}

func (d dbTime) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*d.ts = models.NewTimestamp(v)
		return nil
	case string:
		return d.parse(v)
	case []byte:
		return d.parse(string(v))
	case nil:
		*d.ts = models.Timestamp{}
		return nil
	}
	return fmt.Errorf("repositories: unsupported timestamp type %T", src)
}

func (d dbTime) parse(s string) error {
	t, err := models.ParseTime(s)
	if err != nil {
		return err
	}
	*d.ts = models.NewTimestamp(t)
	return nil
}
