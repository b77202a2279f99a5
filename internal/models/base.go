package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Kind string

const (
	KindAmenity Kind = "Amenity"
	KindCity    Kind = "City"
	KindPlace   Kind = "Place"
	KindReview  Kind = "Review"
	KindState   Kind = "State"
	KindUser    Kind = "User"
)

// Kinds lists every class with parents ahead of the classes that reference them.
var Kinds = []Kind{KindState, KindUser, KindAmenity, KindCity, KindPlace, KindReview}

func ParseKind(name string) (Kind, error) {
	for _, k := range Kinds {
		if strings.EqualFold(string(k), name) {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

// TimeFormat is the wire and snapshot layout of created_at/updated_at.
const TimeFormat = "2006-01-02T15:04:05.000000"

// Timestamp is a UTC instant with microsecond precision.
type Timestamp struct {
	time.Time
}

func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t.UTC().Truncate(time.Microsecond)}
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.UTC().Format(TimeFormat))
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseTime(s)
	if err != nil {
		return err
	}
	*t = NewTimestamp(parsed)
	return nil
}

var timeLayouts = []string{
	TimeFormat,
	"2006-01-02 15:04:05.999999",
	"2006-01-02 15:04:05.999999999-07:00",
	time.RFC3339Nano,
}

// ParseTime accepts the wire layout as well as the layouts SQL drivers hand back.
func ParseTime(s string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("models: unrecognized time %q", s)
}

type BaseModel struct {
	ID        string    `json:"id"`
	CreatedAt Timestamp `json:"created_at"`
	UpdatedAt Timestamp `json:"updated_at"`
}

func (b *BaseModel) Base() *BaseModel {
	return b
}

// Touch stamps a mutation. The first call assigns the identifier and
// created_at; both stay fixed afterwards.
func (b *BaseModel) Touch(now time.Time) {
	ts := NewTimestamp(now)
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = ts
	}
	b.UpdatedAt = ts
}
