package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentityTokenRoundTrip(t *testing.T) {
	svc := NewIdentityService("test-secret")

	token, err := svc.IssueToken("user-1", "Alice")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, name, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
	assert.Equal(t, "Alice", name)
}

func TestIdentityRejectsForeignSignature(t *testing.T) {
	token, err := NewIdentityService("secret-a").IssueToken("user-1", "Alice")
	require.NoError(t, err)

	_, _, err = NewIdentityService("secret-b").ValidateToken(token)
	assert.Error(t, err)
}

func TestIdentityRejectsGarbage(t *testing.T) {
	svc := NewIdentityService("test-secret")

	_, _, err := svc.ValidateToken("not-a-token")
	assert.Error(t, err)
	_, _, err = svc.ValidateToken("")
	assert.Error(t, err)
}
