package models

import (
	"encoding/json"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordCost is the bcrypt cost used by SetPassword.
var PasswordCost = bcrypt.DefaultCost

type User struct {
	BaseModel
	Email     string `json:"email"`
	Password  string `json:"-"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func (u *User) Kind() Kind { return KindUser }

func (u *User) References() []Reference { return nil }

func (u *User) Clone() Record {
	c := *u
	return &c
}

// email is fixed at creation and password goes through SetPassword.
func (u *User) fields() map[string]any {
	return map[string]any{
		"first_name": &u.FirstName,
		"last_name":  &u.LastName,
	}
}

// SetPassword stores the bcrypt hash of plain.
func (u *User) SetPassword(plain string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), PasswordCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return invalid("password")
		}
		return fmt.Errorf("hash password: %w", err)
	}
	u.Password = string(hash)
	return nil
}

func (u *User) CheckPassword(plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(plain)) == nil
}

func (u User) MarshalJSON() ([]byte, error) {
	type alias User
	return json.Marshal(struct {
		Class Kind `json:"__class__"`
		alias
	}{KindUser, alias(u)})
}

func (u *User) marshalStored() ([]byte, error) {
	type alias User
	return json.Marshal(struct {
		Class Kind `json:"__class__"`
		alias
		Password string `json:"password"`
	}{KindUser, alias(*u), u.Password})
}

func (u *User) unmarshalStored(data []byte) error {
	type alias User
	if err := json.Unmarshal(data, (*alias)(u)); err != nil {
		return fmt.Errorf("decode User: %w", err)
	}
	var secret struct {
		Password string `json:"password"`
	}
	if err := json.Unmarshal(data, &secret); err != nil {
		return fmt.Errorf("decode User: %w", err)
	}
	u.Password = secret.Password
	return nil
}
