package utils

import (
	"context"
	"testing"

	"storefront/internal/data/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseID(t *testing.T) {
	id, err := ParseID(" 42 ")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	for _, bad := range []string{"", "0", "-3", "abc", "1.5"} {
		_, err := ParseID(bad)
		assert.Error(t, err, "ParseID(%q)", bad)
	}
}

func TestParseQuantity(t *testing.T) {
	n, err := ParseQuantity("3")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	// Range checks belong to the order service.
	n, err = ParseQuantity("-1")
	require.NoError(t, err)
	assert.Equal(t, -1, n)

	_, err = ParseQuantity("three")
	assert.Error(t, err)
}

func TestGenerateRequestID(t *testing.T) {
	a, b := GenerateRequestID(), GenerateRequestID()

	assert.NotEqual(t, a, b)
	_, err := uuid.Parse(a)
	assert.NoError(t, err)
}

func TestIdentityContext(t *testing.T) {
	ctx := context.Background()
	_, ok := GetIdentityFromContext(ctx)
	assert.False(t, ok)

	want := entity.Identity{ID: 1, Username: "admin", Role: entity.RoleAdmin}
	got, ok := GetIdentityFromContext(SetIdentityContext(ctx, want))
	require.True(t, ok)
	assert.Equal(t, want, got)

	id, ok := GetRequestIDFromContext(SetRequestIDContext(ctx, "req-1"))
	require.True(t, ok)
	assert.Equal(t, "req-1", id)
}
