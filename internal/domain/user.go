package domain

import (
	"strings"
	"time"
)

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// NormalizeRole lowercases the backend's role claim and maps everything that
// is not an admin to a plain user.
func NormalizeRole(raw string) Role {
	if strings.EqualFold(strings.TrimSpace(raw), "admin") {
		return RoleAdmin
	}
	return RoleUser
}

type User struct {
	ID          ID
	FullName    string
	Email       string
	PhoneNumber string
	Role        Role
	CreatedAt   *time.Time
}

func (u User) IsAdmin() bool { return u.Role == RoleAdmin }

// RawUser mirrors the wire shape including every field spelling the backend
// has been seen to use. Normalize folds it into the canonical User once, at
// the API boundary.
type RawUser struct {
	ID           ID     `json:"id"`
	MongoID      ID     `json:"_id"`
	UserID       ID     `json:"userId"`
	FullName     string `json:"fullName"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PhoneNumber  string `json:"phoneNumber"`
	Role         string `json:"role"`
	CreatedAt    string `json:"createdAt"`
	CreatedSnake string `json:"created_at"`
	CreatedOn    string `json:"createdOn"`
	RegisteredAt string `json:"registeredAt"`
	RegisteredOn string `json:"registered_on"`
	Created      string `json:"created"`
}

func (r RawUser) Normalize() User {
	return User{
		ID:          firstID(r.ID, r.UserID, r.MongoID),
		FullName:    firstNonEmpty(r.FullName, r.Name),
		Email:       r.Email,
		PhoneNumber: r.PhoneNumber,
		Role:        NormalizeRole(r.Role),
		CreatedAt:   r.createdAt(),
	}
}

func (r RawUser) createdAt() *time.Time {
	for _, candidate := range []string{r.CreatedAt, r.CreatedSnake, r.CreatedOn, r.RegisteredAt, r.RegisteredOn, r.Created} {
		if t := parseTime(candidate); t != nil {
			return t
		}
	}
	return nil
}

func NormalizeUsers(raw []RawUser) []User {
	users := make([]User, 0, len(raw))
	for _, r := range raw {
		users = append(users, r.Normalize())
	}
	return users
}
