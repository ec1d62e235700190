package api

import (
	"context"
	"io"
	"net/http"

	"github.com/moharam-dev/hotelbook/internal/domain"
	"github.com/moharam-dev/hotelbook/internal/httpx"
)

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterInput struct {
	FullName    string `json:"fullName"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	PhoneNumber string `json:"phoneNumber"`
}

// AuthResponse is returned by login, registration and profile update. Either
// the token or the user may be absent depending on the endpoint.
type AuthResponse struct {
	Token        string          `json:"token"`
	RefreshToken string          `json:"refreshToken"`
	User         *domain.RawUser `json:"user"`
}

func (c *Client) Login(ctx context.Context, creds Credentials) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.http.JSON(ctx, http.MethodPost, "/Auth/login", nil, creds, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Register(ctx context.Context, input RegisterInput) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.http.JSON(ctx, http.MethodPost, "/Auth/register", nil, input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	body := map[string]string{"email": email}
	return c.http.JSON(ctx, http.MethodPost, "/Auth/forgot-password", nil, body, nil)
}

type ResetPasswordInput struct {
	Email       string `json:"email"`
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

func (c *Client) ResetPassword(ctx context.Context, input ResetPasswordInput) error {
	return c.http.JSON(ctx, http.MethodPost, "/Auth/reset-password", nil, input, nil)
}

// GoogleLogin exchanges a Google id token for a backend session.
func (c *Client) GoogleLogin(ctx context.Context, idToken string) (*AuthResponse, error) {
	body := map[string]string{"token": idToken}
	var out AuthResponse
	if err := c.http.JSON(ctx, http.MethodPost, "/Auth/google-login", nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Me(ctx context.Context) (*domain.User, error) {
	var raw domain.RawUser
	if err := c.http.JSON(ctx, http.MethodGet, "/Auth/me", nil, nil, &raw); err != nil {
		return nil, err
	}
	user := raw.Normalize()
	return &user, nil
}

type ProfileUpdate struct {
	FullName    string `json:"fullName"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
}

func (c *Client) UpdateProfile(ctx context.Context, update ProfileUpdate) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.http.JSON(ctx, http.MethodPut, "/Auth/update-profile", nil, update, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProfileMultipart sends the same update as a form, optionally with an
// avatar image attached.
func (c *Client) UpdateProfileMultipart(ctx context.Context, update ProfileUpdate, avatarName string, avatar io.Reader) (*AuthResponse, error) {
	form := (&httpx.Form{}).
		AddField("FullName", update.FullName).
		AddField("Email", update.Email).
		AddField("PhoneNumber", update.PhoneNumber)
	if avatar != nil {
		form.AddFile("Avatar", avatarName, avatar)
	}

	var out AuthResponse
	if err := c.http.Multipart(ctx, http.MethodPut, "/Auth/update-profile", form, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
