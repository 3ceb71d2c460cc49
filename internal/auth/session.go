package auth

import (
	"encoding/json"
	"fmt"
)

// UserID is a backend user id. Backends send it as a JSON string or number.
type UserID string

func (id *UserID) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*id = UserID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("user id: %w", err)
	}
	*id = UserID(n.String())
	return nil
}

// User is an identity as returned by a provider.
type User struct {
	ID        UserID `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	Role      string `json:"role,omitempty"`
}

// Session is the identity the site carries between requests.
type Session struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// SessionFromUser prefers the first name for display.
func SessionFromUser(u User) Session {
	name := u.FirstName
	if name == "" {
		name = u.Name
	}
	return Session{ID: string(u.ID), Email: u.Email, Name: name, Role: u.Role}
}
