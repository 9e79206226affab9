package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAccessToken_RoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret", "1h")

	token, expiresAt, err := svc.GenerateAccessToken("emp-1")
	require.NoError(t, err)
	assert.Greater(t, expiresAt, time.Now().Unix())

	decoded, err := svc.JWTAuth().Decode(token)
	require.NoError(t, err)
	employeeID, ok := decoded.Get("employee_id")
	require.True(t, ok)
	assert.Equal(t, "emp-1", employeeID)
	tokenType, _ := decoded.Get("type")
	assert.Equal(t, TokenTypeAccess, tokenType)
}

func TestGenerateAccessToken_BadDuration(t *testing.T) {
	svc := NewJWTService("test-secret", "forever")
	_, _, err := svc.GenerateAccessToken("emp-1")
	assert.Error(t, err)
}

func TestDecode_RejectsOtherSecret(t *testing.T) {
	token, _, err := NewJWTService("secret-a", "1h").GenerateAccessToken("emp-1")
	require.NoError(t, err)

	_, err = NewJWTService("secret-b", "1h").JWTAuth().Decode(token)
	assert.Error(t, err)
}
