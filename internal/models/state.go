package models

import "encoding/json"

type State struct {
	BaseModel
	Name string `json:"name"`
}

func (s *State) Kind() Kind { return KindState }

func (s *State) References() []Reference { return nil }

func (s *State) Clone() Record {
	c := *s
	return &c
}

func (s *State) fields() map[string]any {
	return map[string]any{"name": &s.Name}
}

func (s State) MarshalJSON() ([]byte, error) {
	type alias State
	return json.Marshal(struct {
		Class Kind `json:"__class__"`
		alias
	}{KindState, alias(s)})
}
