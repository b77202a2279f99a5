package models

import "encoding/json"

type Review struct {
	BaseModel
	PlaceID string `json:"place_id"`
	UserID  string `json:"user_id"`
	Text    string `json:"text"`
}

func (r *Review) Kind() Kind { return KindReview }

func (r *Review) References() []Reference {
	return []Reference{
		{Kind: KindPlace, ID: r.PlaceID},
		{Kind: KindUser, ID: r.UserID},
	}
}

func (r *Review) Clone() Record {
	c := *r
	return &c
}

// place_id and user_id are fixed at creation.
func (r *Review) fields() map[string]any {
	return map[string]any{"text": &r.Text}
}

func (r Review) MarshalJSON() ([]byte, error) {
	type alias Review
	return json.Marshal(struct {
		Class Kind `json:"__class__"`
		alias
	}{KindReview, alias(r)})
}
