package controller

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/moharam-dev/hotelbook/internal/api"
	"github.com/moharam-dev/hotelbook/internal/domain"
	"github.com/moharam-dev/hotelbook/internal/session"
	"github.com/moharam-dev/hotelbook/internal/validate"
)

type ProfileAPI interface {
	UpdateProfile(ctx context.Context, update api.ProfileUpdate) (*api.AuthResponse, error)
}

// ProfileController backs the edit-profile form. The form is seeded from the
// cached session user; a successful update refreshes the session from the
// returned token's claims, or from the returned user when no token comes back.
type ProfileController struct {
	guard
	api   ProfileAPI
	store session.Store
	log   *logrus.Logger

	FullName    string
	Email       string
	PhoneNumber string
}

func NewProfileController(a ProfileAPI, store session.Store, log *logrus.Logger) *ProfileController {
	return &ProfileController{api: a, store: store, log: log}
}

func (c *ProfileController) Load() error {
	user, err := c.store.User()
	if err != nil {
		return err
	}
	if !c.open() {
		return ErrClosed
	}
	if user != nil {
		c.FullName = user.FullName
		c.Email = user.Email
		c.PhoneNumber = validate.SanitizePhone(user.PhoneNumber)
	}
	return nil
}

// SetFullName strips digits as the user types, matching the server's rule.
func (c *ProfileController) SetFullName(name string) {
	if !c.open() {
		return
	}
	var b strings.Builder
	for _, r := range name {
		if r < '0' || r > '9' {
			b.WriteRune(r)
		}
	}
	c.FullName = b.String()
}

func (c *ProfileController) SetEmail(email string) {
	if !c.open() {
		return
	}
	c.Email = email
}

func (c *ProfileController) SetPhoneNumber(phone string) {
	if !c.open() {
		return
	}
	c.PhoneNumber = validate.SanitizePhone(phone)
}

// Submit validates the form and pushes the update. Validation failure blocks
// the network call entirely.
func (c *ProfileController) Submit(ctx context.Context) (*domain.User, error) {
	phone := strings.TrimSpace(c.PhoneNumber)
	if err := validate.Profile(c.FullName, c.Email, phone); err != nil {
		return nil, err
	}

	resp, err := c.api.UpdateProfile(ctx, api.ProfileUpdate{
		FullName:    strings.TrimSpace(c.FullName),
		Email:       strings.TrimSpace(c.Email),
		PhoneNumber: phone,
	})
	if err != nil {
		return nil, err
	}
	if !c.open() {
		return nil, ErrClosed
	}

	prev, _ := c.store.User()
	user := c.sessionUser(resp, prev)

	token := resp.Token
	if token == "" {
		token, _ = c.store.Token()
	}
	if err := c.store.Set(token, user); err != nil {
		return nil, err
	}
	if resp.RefreshToken != "" {
		if err := c.store.SetRefreshToken(resp.RefreshToken); err != nil {
			c.log.WithError(err).Warn("refresh token not stored")
		}
	}
	return user, nil
}

// sessionUser prefers the fresh token's claims over the response body, since
// the backend reissues the token on profile changes.
func (c *ProfileController) sessionUser(resp *api.AuthResponse, prev *domain.User) *domain.User {
	if resp.Token != "" {
		if claims, err := session.DecodeClaims(resp.Token); err == nil {
			return claims.User(prev)
		} else {
			c.log.WithError(err).Warn("returned token not decodable")
		}
	}
	if resp.User != nil {
		user := resp.User.Normalize()
		if user.ID.IsZero() && prev != nil {
			user.ID = prev.ID
		}
		return &user
	}
	user := domain.User{
		FullName:    c.FullName,
		Email:       c.Email,
		PhoneNumber: c.PhoneNumber,
	}
	if prev != nil {
		user.ID = prev.ID
		user.Role = prev.Role
		if user.CreatedAt == nil {
			user.CreatedAt = prev.CreatedAt
		}
	}
	return &user
}
