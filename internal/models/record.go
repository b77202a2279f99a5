package models

import (
	"encoding/json"
	"fmt"
)

// Record is a persisted entity instance.
type Record interface {
	Kind() Kind
	Base() *BaseModel
	// References lists the records this one points at.
	References() []Reference
	Clone() Record
	// fields maps each client-mutable attribute to the field it decodes into.
	fields() map[string]any
}

// Reference points at another record. A weak reference is a link row:
// removing the target unlinks it instead of removing the referencing record.
type Reference struct {
	Kind Kind
	ID   string
	Weak bool
}

func (r Reference) Key() string {
	return KeyOf(r.Kind, r.ID)
}

func KeyOf(kind Kind, id string) string {
	return string(kind) + "." + id
}

// Key returns the composite "<Class>.<id>" key of rec.
func Key(rec Record) string {
	return KeyOf(rec.Kind(), rec.Base().ID)
}

func NewRecord(kind Kind) (Record, error) {
	switch kind {
	case KindAmenity:
		return &Amenity{}, nil
	case KindCity:
		return &City{}, nil
	case KindPlace:
		return &Place{}, nil
	case KindReview:
		return &Review{}, nil
	case KindState:
		return &State{}, nil
	case KindUser:
		return &User{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
}

// EncodeRecord serializes rec for a storage backend. Unlike the API
// encoding it keeps secrets such as the user password hash.
func EncodeRecord(rec Record) ([]byte, error) {
	if u, ok := rec.(*User); ok {
		return u.marshalStored()
	}
	return json.Marshal(rec)
}

// DecodeRecord is the inverse of EncodeRecord; the class is read from __class__.
func DecodeRecord(data []byte) (Record, error) {
	var head struct {
		Class Kind `json:"__class__"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	rec, err := NewRecord(head.Class)
	if err != nil {
		return nil, err
	}
	if u, ok := rec.(*User); ok {
		return u, u.unmarshalStored(data)
	}
	if err := json.Unmarshal(data, rec); err != nil {
		return nil, fmt.Errorf("decode %s: %w", head.Class, err)
	}
	return rec, nil
}

// Protected attributes are never taken from a client payload.
var Protected = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"__class__":  true,
}

// Merge applies attrs to a copy of rec and returns the copy. Only the
// allow-listed attributes of the record's class are considered; protected
// and unknown keys are ignored. Every value is decoded before the result is
// returned, so on error rec is left untouched. A nil attrs is ErrNotJSON.
func Merge(rec Record, attrs map[string]json.RawMessage) (Record, error) {
	if attrs == nil {
		return nil, ErrNotJSON
	}
	clone := rec.Clone()
	allowed := clone.fields()
	for key, raw := range attrs {
		if Protected[key] {
			continue
		}
		dst, ok := allowed[key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(raw, dst); err != nil {
			return nil, invalid(key)
		}
	}
	return clone, nil
}

// Require reports the first of fields absent from attrs.
func Require(attrs map[string]json.RawMessage, fields ...string) error {
	if attrs == nil {
		return ErrNotJSON
	}
	for _, f := range fields {
		raw, ok := attrs[f]
		if !ok || string(raw) == "null" {
			return missing(f)
		}
	}
	return nil
}

// StringAttr decodes a string attribute, used for references supplied in a body.
func StringAttr(attrs map[string]json.RawMessage, field string) (string, error) {
	var s string
	if err := json.Unmarshal(attrs[field], &s); err != nil {
		return "", invalid(field)
	}
	return s, nil
}
