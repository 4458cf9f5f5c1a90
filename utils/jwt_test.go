package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func signed(t *testing.T, method jwt.SigningMethod, key any, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func TestJWTService_RoundTrip(t *testing.T) {
	t.Parallel()

	svc := NewJWTService("test-secret")
	token, err := svc.GenerateToken(42)
	require.NoError(t, err)

	userID, err := svc.ExtractUserID(token)
	require.NoError(t, err)
	require.Equal(t, int64(42), userID)
}

func TestJWTService_ExtractUserID_Rejects(t *testing.T) {
	t.Parallel()

	secret := []byte("test-secret")
	future := time.Now().Add(time.Hour).Unix()

	tests := []struct {
		name  string
		token func(t *testing.T) string
	}{
		{
			name:  "garbage",
			token: func(t *testing.T) string { return "not-a-token" },
		},
		{
			name: "wrong_secret",
			token: func(t *testing.T) string {
				return signed(t, jwt.SigningMethodHS256, []byte("other"), jwt.MapClaims{"user_id": 1, "exp": future})
			},
		},
		{
			name: "expired",
			token: func(t *testing.T) string {
				return signed(t, jwt.SigningMethodHS256, secret, jwt.MapClaims{"user_id": 1, "exp": time.Now().Add(-time.Minute).Unix()})
			},
		},
		{
			name: "no_expiry",
			token: func(t *testing.T) string {
				return signed(t, jwt.SigningMethodHS256, secret, jwt.MapClaims{"user_id": 1})
			},
		},
		{
			name: "missing_user",
			token: func(t *testing.T) string {
				return signed(t, jwt.SigningMethodHS256, secret, jwt.MapClaims{"exp": future})
			},
		},
		{
			name: "non_numeric_user",
			token: func(t *testing.T) string {
				return signed(t, jwt.SigningMethodHS256, secret, jwt.MapClaims{"user_id": "7", "exp": future})
			},
		},
		{
			name: "alg_none",
			token: func(t *testing.T) string {
				return signed(t, jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, jwt.MapClaims{"user_id": 1, "exp": future})
			},
		},
	}

	svc := NewJWTService(string(secret))
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := svc.ExtractUserID(tc.token(t))
			require.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}
