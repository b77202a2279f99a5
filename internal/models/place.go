package models

import (
	"encoding/json"
	"slices"
)

type Place struct {
	BaseModel
	CityID         string   `json:"city_id"`
	UserID         string   `json:"user_id"`
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	NumberRooms    int      `json:"number_rooms"`
	NumberBathroom int      `json:"number_bathrooms"`
	MaxGuest       int      `json:"max_guest"`
	PriceByNight   int      `json:"price_by_night"`
	Latitude       float64  `json:"latitude"`
	Longitude      float64  `json:"longitude"`
	AmenityIDs     []string `json:"amenity_ids"`
}

func (p *Place) Kind() Kind { return KindPlace }

func (p *Place) References() []Reference {
	refs := []Reference{
		{Kind: KindCity, ID: p.CityID},
		{Kind: KindUser, ID: p.UserID},
	}
	for _, id := range p.AmenityIDs {
		refs = append(refs, Reference{Kind: KindAmenity, ID: id, Weak: true})
	}
	return refs
}

func (p *Place) Clone() Record {
	c := *p
	c.AmenityIDs = slices.Clone(p.AmenityIDs)
	return &c
}

// city_id, user_id and amenity_ids are not mutable through a payload.
func (p *Place) fields() map[string]any {
	return map[string]any{
		"name":             &p.Name,
		"description":      &p.Description,
		"number_rooms":     &p.NumberRooms,
		"number_bathrooms": &p.NumberBathroom,
		"max_guest":        &p.MaxGuest,
		"price_by_night":   &p.PriceByNight,
		"latitude":         &p.Latitude,
		"longitude":        &p.Longitude,
	}
}

func (p *Place) HasAmenity(id string) bool {
	_, found := slices.BinarySearch(p.AmenityIDs, id)
	return found
}

// AddAmenity links an amenity, keeping AmenityIDs sorted. It reports
// whether the link is new.
func (p *Place) AddAmenity(id string) bool {
	i, found := slices.BinarySearch(p.AmenityIDs, id)
	if found {
		return false
	}
	p.AmenityIDs = slices.Insert(p.AmenityIDs, i, id)
	return true
}

func (p *Place) RemoveAmenity(id string) bool {
	i, found := slices.BinarySearch(p.AmenityIDs, id)
	if !found {
		return false
	}
	p.AmenityIDs = slices.Delete(p.AmenityIDs, i, i+1)
	return true
}

func (p Place) MarshalJSON() ([]byte, error) {
	type alias Place
	if p.AmenityIDs == nil {
		p.AmenityIDs = []string{}
	}
	return json.Marshal(struct {
		Class Kind `json:"__class__"`
		alias
	}{KindPlace, alias(p)})
}
