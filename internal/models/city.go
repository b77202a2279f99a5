package models

import "encoding/json"

type City struct {
	BaseModel
	StateID string `json:"state_id"`
	Name    string `json:"name"`
}

func (c *City) Kind() Kind { return KindCity }

func (c *City) References() []Reference {
	return []Reference{{Kind: KindState, ID: c.StateID}}
}

func (c *City) Clone() Record {
	cp := *c
	return &cp
}

// state_id is fixed at creation.
func (c *City) fields() map[string]any {
	return map[string]any{"name": &c.Name}
}

func (c City) MarshalJSON() ([]byte, error) {
	type alias City
	return json.Marshal(struct {
		Class Kind `json:"__class__"`
		alias
	}{KindCity, alias(c)})
}
