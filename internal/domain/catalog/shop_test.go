package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewShop(t *testing.T) {
	shop, err := NewShop("Svyaznoy")
	require.NoError(t, err)
	assert.Equal(t, "Svyaznoy", shop.Name)
	assert.True(t, shop.AcceptingOrders)
	assert.NotEqual(t, uuid.Nil, shop.ID)
	assert.Nil(t, shop.UserID)
}

func TestNewShop_InvalidName(t *testing.T) {
	_, err := NewShop("")
	assert.Error(t, err)

	_, err = NewShop("   ")
	assert.Error(t, err)

	long := make([]byte, 101)
	for i := range long {
		long[i] = 'a'
	}
	_, err = NewShop(string(long))
	assert.Error(t, err)
}

func TestShop_ToggleAcceptingOrders(t *testing.T) {
	shop, err := NewShop("Svyaznoy")
	require.NoError(t, err)

	assert.False(t, shop.ToggleAcceptingOrders())
	assert.False(t, shop.AcceptingOrders)

	assert.True(t, shop.ToggleAcceptingOrders())
	assert.True(t, shop.AcceptingOrders)
}

func TestShop_LinkUser(t *testing.T) {
	shop, err := NewShop("Svyaznoy")
	require.NoError(t, err)

	userID := uuid.New()
	require.NoError(t, shop.LinkUser(userID))
	assert.True(t, shop.IsOwnedBy(userID))

	// linking the same user again is fine
	require.NoError(t, shop.LinkUser(userID))

	// linking a different user is rejected
	err = shop.LinkUser(uuid.New())
	assert.Error(t, err)

	err = shop.LinkUser(uuid.Nil)
	assert.Error(t, err)
}
