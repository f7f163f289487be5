package admin

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"shopng/internal/catalog"
	"shopng/internal/gateway"
	"shopng/internal/kvstore"
	"shopng/internal/models"
	"shopng/internal/profile"
	"shopng/internal/session"
	"shopng/internal/users"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newView(t *testing.T) (*View, *profile.Store, *session.Provider) {
	t.Helper()

	gw := gateway.NewSeeded(catalog.NewSeeded().Products())
	dir := users.NewDirectory(gw, nil)
	require.NoError(t, dir.Load(context.Background()))

	sessions := session.NewProvider()
	profiles := profile.NewStore(kvstore.NewMemory(), sessions)
	return NewView(dir, profiles, sessions), profiles, sessions
}

func TestUserDetailComposesAccountAndShipping(t *testing.T) {
	view, profiles, _ := newView(t)
	ctx := context.Background()

	require.NoError(t, profiles.Save(ctx, models.UserProfile{
		UserID:          100,
		FirstName:       "Jane",
		LastName:        "Smith",
		Email:           "jane.smith@example.com",
		ShippingAddress: "22 Elm St",
		ShippingCity:    "Portland",
		ShippingState:   "OR",
		ShippingZip:     "97201",
		CardName:        "Jane Smith",
		CardNumber:      "4111111111111111",
		CardExpiry:      "01/29",
		CardCvv:         "123",
	}))

	detail, err := view.UserDetail(ctx, 100)
	require.NoError(t, err)

	assert.Equal(t, "jane.smith@example.com", detail.Account.Email)
	require.NotNil(t, detail.Shipping)
	assert.Equal(t, "22 Elm St", detail.Shipping.Address)
	assert.Equal(t, "Portland", detail.Shipping.City)
}

func TestUserDetailNeverExposesPaymentFields(t *testing.T) {
	view, profiles, _ := newView(t)
	ctx := context.Background()

	require.NoError(t, profiles.Save(ctx, models.UserProfile{
		UserID:     998,
		CardName:   "Demo User",
		CardNumber: "4111111111111111",
		CardExpiry: "12/28",
		CardCvv:    "999",
	}))

	detail, err := view.UserDetail(ctx, 998)
	require.NoError(t, err)
	require.NotNil(t, detail.Shipping)

	raw, err := json.Marshal(detail)
	require.NoError(t, err)

	payload := string(raw)
	assert.NotContains(t, payload, "cardName")
	assert.NotContains(t, payload, "cardNumber")
	assert.NotContains(t, payload, "cardExpiry")
	assert.NotContains(t, payload, "cardCvv")
	assert.NotContains(t, payload, "4111111111111111")
	assert.NotContains(t, payload, "999\"")
}

func TestUserDetailWithoutProfile(t *testing.T) {
	view, _, _ := newView(t)

	detail, err := view.UserDetail(context.Background(), 101)
	require.NoError(t, err)
	assert.Nil(t, detail.Shipping)
	assert.Equal(t, "mark.johnson@example.com", detail.Account.Email)
}

func TestUserDetailUnknownAccount(t *testing.T) {
	view, _, _ := newView(t)

	_, err := view.UserDetail(context.Background(), 54321)
	assert.True(t, errors.Is(err, models.ErrNotFound))
}

func TestUserDetailSelfFlag(t *testing.T) {
	view, _, sessions := newView(t)
	ctx := context.Background()

	sessions.Login(models.User{ID: 999, Role: models.RoleAdmin})

	self, err := view.UserDetail(ctx, 999)
	require.NoError(t, err)
	assert.True(t, self.IsSelf)

	other, err := view.UserDetail(ctx, 998)
	require.NoError(t, err)
	assert.False(t, other.IsSelf)
}

func TestUserDetailReadsPersistedNotLiveProfile(t *testing.T) {
	view, profiles, sessions := newView(t)
	ctx := context.Background()

	// Admin logs in, getting the synthesized default as the live profile.
	sessions.Login(models.User{ID: 999, Role: models.RoleAdmin})
	require.True(t, profiles.HasProfile())

	// Viewing a different user must not surface the viewer's profile.
	detail, err := view.UserDetail(ctx, 102)
	require.NoError(t, err)
	assert.Nil(t, detail.Shipping)
}
