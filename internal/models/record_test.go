package models

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
)

func attrs(t *testing.T, body string) map[string]json.RawMessage {
	t.Helper()
	var m map[string]json.RawMessage
	if err := json.Unmarshal([]byte(body), &m); err != nil {
		t.Fatalf("bad fixture %q: %v", body, err)
	}
	return m
}

func TestMergeIgnoresProtectedFields(t *testing.T) {
	s := &State{Name: "California"}
	s.Touch(time.Date(2017, 3, 25, 2, 17, 6, 0, time.UTC))
	before := *s

	merged, err := Merge(s, attrs(t, `{"id":"x","created_at":"2001-01-01T00:00:00.000000","updated_at":"2001-01-01T00:00:00.000000","name":"Nevada"}`))
	if err != nil {
		t.Fatalf("Merge returned error: %v", err)
	}
	got := merged.(*State)
	if got.ID != before.ID {
		t.Fatalf("expected id %q, got %q", before.ID, got.ID)
	}
	if !got.CreatedAt.Equal(before.CreatedAt.Time) || !got.UpdatedAt.Equal(before.UpdatedAt.Time) {
		t.Fatalf("timestamps changed: %v / %v", got.CreatedAt, got.UpdatedAt)
	}
	if got.Name != "Nevada" {
		t.Fatalf("expected name Nevada, got %q", got.Name)
	}
	if s.Name != "California" {
		t.Fatalf("Merge mutated the original record: %q", s.Name)
	}
}

func TestMergeIgnoresFixedReferences(t *testing.T) {
	p := &Place{CityID: "c1", UserID: "u1", Name: "Loft"}
	merged, err := Merge(p, attrs(t, `{"city_id":"c2","user_id":"u2","amenity_ids":["a"],"max_guest":4,"unknown":true}`))
	if err != nil {
		t.Fatalf("Merge returned error: %v", err)
	}
	got := merged.(*Place)
	if got.CityID != "c1" || got.UserID != "u1" {
		t.Fatalf("references changed: city %q user %q", got.CityID, got.UserID)
	}
	if len(got.AmenityIDs) != 0 {
		t.Fatalf("amenity_ids should not be mergeable, got %v", got.AmenityIDs)
	}
	if got.MaxGuest != 4 {
		t.Fatalf("expected max_guest 4, got %d", got.MaxGuest)
	}
}

func TestMergeRejectsWrongType(t *testing.T) {
	p := &Place{Name: "Loft", NumberRooms: 2}
	_, err := Merge(p, attrs(t, `{"name":"Barn","number_rooms":"three"}`))
	if !errors.Is(err, ErrInvalidAttribute) {
		t.Fatalf("expected ErrInvalidAttribute, got %v", err)
	}
	var fe *FieldError
	if !errors.As(err, &fe) || fe.Field != "number_rooms" {
		t.Fatalf("expected field number_rooms, got %v", err)
	}
	if p.Name != "Loft" || p.NumberRooms != 2 {
		t.Fatalf("record changed after failed merge: %+v", p)
	}
}

func TestRequire(t *testing.T) {
	a := attrs(t, `{"email":"a@b.c","password":null}`)
	if err := Require(a, "email"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err := Require(a, "email", "password")
	var fe *FieldError
	if !errors.As(err, &fe) || fe.Field != "password" || !errors.Is(err, ErrMissingField) {
		t.Fatalf("expected missing password, got %v", err)
	}
	if err := Require(nil, "email"); !errors.Is(err, ErrNotJSON) {
		t.Fatalf("expected ErrNotJSON for a nil body, got %v", err)
	}
}

func TestMarshalIncludesClassAndFormat(t *testing.T) {
	s := &State{Name: "California"}
	s.Touch(time.Date(2017, 3, 25, 2, 17, 6, 123456789, time.UTC))

	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("Marshal returned error: %v", err)
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatal(err)
	}
	if out["__class__"] != "State" {
		t.Fatalf("expected __class__ State, got %v", out["__class__"])
	}
	if out["created_at"] != "2017-03-25T02:17:06.123456" {
		t.Fatalf("unexpected created_at %v", out["created_at"])
	}
	if out["name"] != "California" || out["id"] != s.ID {
		t.Fatalf("unexpected body %s", data)
	}
}

func TestUserPasswordHiddenFromAPI(t *testing.T) {
	PasswordCost = bcrypt.MinCost
	u := &User{Email: "a@b.c"}
	u.Touch(time.Now())
	if err := u.SetPassword("secret"); err != nil {
		t.Fatalf("SetPassword returned error: %v", err)
	}

	api, err := json.Marshal(u)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(api), "password") {
		t.Fatalf("password leaked in %s", api)
	}

	stored, err := EncodeRecord(u)
	if err != nil {
		t.Fatal(err)
	}
	decoded, err := DecodeRecord(stored)
	if err != nil {
		t.Fatalf("DecodeRecord returned error: %v", err)
	}
	back, ok := decoded.(*User)
	if !ok {
		t.Fatalf("expected *User, got %T", decoded)
	}
	if !back.CheckPassword("secret") || back.CheckPassword("other") {
		t.Fatal("password hash did not survive the round trip")
	}
	if back.ID != u.ID || !back.CreatedAt.Equal(u.CreatedAt.Time) {
		t.Fatalf("round trip mismatch: %+v vs %+v", back, u)
	}
}

func TestDecodeRecordUnknownClass(t *testing.T) {
	_, err := DecodeRecord([]byte(`{"__class__":"BaseModel","id":"1"}`))
	if !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("expected ErrUnknownKind, got %v", err)
	}
}

func TestPlaceAmenityLinks(t *testing.T) {
	p := &Place{}
	if !p.AddAmenity("b") || !p.AddAmenity("a") || p.AddAmenity("b") {
		t.Fatal("unexpected AddAmenity result")
	}
	if strings.Join(p.AmenityIDs, ",") != "a,b" {
		t.Fatalf("expected sorted ids, got %v", p.AmenityIDs)
	}
	c := p.Clone().(*Place)
	c.RemoveAmenity("a")
	if !p.HasAmenity("a") {
		t.Fatal("Clone shares amenity ids with the original")
	}
	refs := p.References()
	if len(refs) != 4 || !refs[2].Weak {
		t.Fatalf("unexpected references %+v", refs)
	}
}

func TestTouchKeepsIdentity(t *testing.T) {
	s := &State{}
	t0 := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	s.Touch(t0)
	id := s.ID
	s.Touch(t0.Add(time.Hour))
	if s.ID != id {
		t.Fatalf("id changed from %q to %q", id, s.ID)
	}
	if !s.CreatedAt.Equal(t0) || !s.UpdatedAt.Equal(t0.Add(time.Hour)) {
		t.Fatalf("unexpected timestamps %v %v", s.CreatedAt, s.UpdatedAt)
	}
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("state")
	if err != nil || k != KindState {
		t.Fatalf("expected State, got %q (%v)", k, err)
	}
	if _, err := ParseKind("Planet"); !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("expected ErrUnknownKind, got %v", err)
	}
}
