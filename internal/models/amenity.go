package models

import "encoding/json"

type Amenity struct {
	BaseModel
	Name string `json:"name"`
}

func (a *Amenity) Kind() Kind { return KindAmenity }

func (a *Amenity) References() []Reference { return nil }

func (a *Amenity) Clone() Record {
	c := *a
	return &c
}

func (a *Amenity) fields() map[string]any {
	return map[string]any{"name": &a.Name}
}

func (a Amenity) MarshalJSON() ([]byte, error) {
	type alias Amenity
	return json.Marshal(struct {
		Class Kind `json:"__class__"`
		alias
	}{KindAmenity, alias(a)})
}
