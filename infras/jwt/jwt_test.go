package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keel/config"
	"keel/infras/jwt"
)

func newConfig(expireMin int) *config.Config {
	cfg := &config.Config{}
	cfg.JWT.AccessSecret = "test-secret"
	cfg.JWT.AccessExpireMin = expireMin

	return cfg
}

func TestJWT_GenerateAndValidate(t *testing.T) {
	svc := jwt.New(newConfig(5))

	token, err := svc.GenerateAccessToken("user-123", "user@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "user@example.com", claims.Email)
	assert.NotEmpty(t, claims.TokenID)
}

func TestJWT_ValidateExpiredToken(t *testing.T) {
	svc := jwt.New(newConfig(-5))

	token, err := svc.GenerateAccessToken("user-123", "user@example.com")
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, jwt.ErrExpiredToken)
}

func TestJWT_ValidateWrongSecret(t *testing.T) {
	issuer := jwt.New(newConfig(5))

	token, err := issuer.GenerateAccessToken("user-123", "user@example.com")
	require.NoError(t, err)

	other := &config.Config{}
	other.JWT.AccessSecret = "a-different-secret"
	other.JWT.AccessExpireMin = 5

	_, err = jwt.New(other).ValidateToken(token)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)
}

func TestExtractTokenFromHeader(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{
			name:   "well-formed bearer header",
			header: "Bearer abc.def.ghi",
			want:   "abc.def.ghi",
		},
		{
			name:   "lowercase scheme",
			header: "bearer abc.def.ghi",
			want:   "abc.def.ghi",
		},
		{
			name:    "missing scheme",
			header:  "abc.def.ghi",
			wantErr: true,
		},
		{
			name:    "wrong scheme",
			header:  "Basic abc.def.ghi",
			wantErr: true,
		},
		{
			name:    "empty header",
			header:  "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := jwt.ExtractTokenFromHeader(tt.header)

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
