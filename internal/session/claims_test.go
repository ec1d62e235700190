package session

import (
	"testing"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moharam-dev/hotelbook/internal/domain"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-key"))
	require.NoError(t, err)
	return token
}

func TestDecodeClaims_DotNetURIs(t *testing.T) {
	token := signedToken(t, jwt.MapClaims{
		claimNameURI:  "Ann Smith",
		claimEmailURI: "ann@example.com",
		claimPhoneURI: "+201012345678",
		claimRoleURI:  "Admin",
	})

	claims, err := DecodeClaims(token)
	require.NoError(t, err)

	assert.Equal(t, "Ann Smith", claims.FullName)
	assert.Equal(t, "ann@example.com", claims.Email)
	assert.Equal(t, "+201012345678", claims.PhoneNumber)
	assert.Equal(t, domain.RoleAdmin, claims.Role)
}

func TestDecodeClaims_ShortNames(t *testing.T) {
	token := signedToken(t, jwt.MapClaims{
		"name":  "Bob",
		"email": "bob@example.com",
		"role":  "user",
	})

	claims, err := DecodeClaims(token)
	require.NoError(t, err)

	assert.Equal(t, "Bob", claims.FullName)
	assert.Equal(t, domain.RoleUser, claims.Role)
}

func TestDecodeClaims_Garbage(t *testing.T) {
	_, err := DecodeClaims("not-a-jwt")
	assert.Error(t, err)
}

func TestClaims_UserMergesOverPrevious(t *testing.T) {
	prev := &domain.User{
		ID:          "u1",
		FullName:    "Old Name",
		Email:       "old@example.com",
		PhoneNumber: "+201000000000",
		Role:        domain.RoleUser,
	}

	claims := &Claims{FullName: "New Name", Role: domain.RoleAdmin}
	user := claims.User(prev)

	assert.Equal(t, domain.ID("u1"), user.ID)
	assert.Equal(t, "New Name", user.FullName)
	// Claims missing from the token keep the previous values.
	assert.Equal(t, "old@example.com", user.Email)
	assert.Equal(t, "+201000000000", user.PhoneNumber)
	assert.Equal(t, domain.RoleAdmin, user.Role)

	// The previous profile itself is untouched.
	assert.Equal(t, "Old Name", prev.FullName)
	assert.Equal(t, domain.RoleUser, prev.Role)
}

func TestClaims_UserWithoutPrevious(t *testing.T) {
	claims := &Claims{FullName: "Ann", Email: "ann@example.com", Role: domain.RoleUser}
	user := claims.User(nil)

	assert.Equal(t, "Ann", user.FullName)
	assert.True(t, user.ID.IsZero())
}
