package session

import (
	"fmt"

	"github.com/golang-jwt/jwt/v4"

	"github.com/moharam-dev/hotelbook/internal/domain"
)

// The backend issues tokens with .NET identity claim URIs; newer tokens carry
// the short names instead, so both spellings are tried.
const (
	claimRoleURI  = "http://schemas.microsoft.com/ws/2008/06/identity/claims/role"
	claimNameURI  = "http://schemas.xmlsoap.org/ws/2005/05/identity/claims/name"
	claimEmailURI = "http://schemas.xmlsoap.org/ws/2005/05/identity/claims/emailaddress"
	claimPhoneURI = "http://schemas.xmlsoap.org/ws/2005/05/identity/claims/mobilephone"
)

// Claims is the displayable subset of the token payload. The signature is not
// verified: the token is server-issued and only decoded for presentation, the
// backend remains the authority on every call.
type Claims struct {
	FullName    string
	Email       string
	PhoneNumber string
	Role        domain.Role
}

func DecodeClaims(token string) (*Claims, error) {
	payload := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, payload); err != nil {
		return nil, fmt.Errorf("decode token: %w", err)
	}

	return &Claims{
		FullName:    claimString(payload, claimNameURI, "unique_name", "name"),
		Email:       claimString(payload, claimEmailURI, "email"),
		PhoneNumber: claimString(payload, claimPhoneURI, "mobilephone"),
		Role:        domain.NormalizeRole(claimString(payload, claimRoleURI, "role")),
	}, nil
}

// User merges decoded claims over the previous profile, keeping prior values
// where the token carries no claim.
func (c *Claims) User(prev *domain.User) *domain.User {
	user := domain.User{Role: c.Role}
	if prev != nil {
		user = *prev
		user.Role = c.Role
	}
	if c.FullName != "" {
		user.FullName = c.FullName
	}
	if c.Email != "" {
		user.Email = c.Email
	}
	if c.PhoneNumber != "" {
		user.PhoneNumber = c.PhoneNumber
	}
	return &user
}

func claimString(payload jwt.MapClaims, keys ...string) string {
	for _, key := range keys {
		if v, ok := payload[key].(string); ok && v != "" {
			return v
		}
	}
	return ""
}
