package profile

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"shopng/internal/kvstore"
	"shopng/internal/models"
	"shopng/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func admin() models.User {
	return models.User{ID: 999, Email: "admin@shopng.com", Role: models.RoleAdmin}
}

func regular() models.User {
	return models.User{ID: 998, Email: "user@shopng.com", Role: models.RoleUser}
}

func newStore() (*Store, *kvstore.Memory, *session.Provider) {
	kv := kvstore.NewMemory()
	sessions := session.NewProvider()
	return NewStore(kv, sessions), kv, sessions
}

func TestRegularUserWithoutRecordGetsNoProfile(t *testing.T) {
	s, _, sessions := newStore()

	sessions.Login(regular())

	assert.False(t, s.HasProfile())
	assert.Nil(t, s.Live())
}

func TestAdminGetsSynthesizedDefaultAndItPersists(t *testing.T) {
	s, kv, sessions := newStore()
	ctx := context.Background()

	sessions.Login(admin())

	require.True(t, s.HasProfile())
	live := s.Live()
	assert.Equal(t, int64(999), live.UserID)
	assert.Equal(t, "100 Commerce Blvd", live.ShippingAddress)

	// Defaults were written through to the scoped store.
	raw, err := kv.Get(ctx, Key(999))
	require.NoError(t, err)

	// A second login restores the persisted record instead of
	// synthesizing again.
	sessions.Logout()
	sessions.Login(admin())
	rawAgain, err := kv.Get(ctx, Key(999))
	require.NoError(t, err)
	assert.Equal(t, raw, rawAgain)
	assert.Equal(t, live, s.Live())
}

func TestStoredProfileWinsOverDefaults(t *testing.T) {
	s, kv, sessions := newStore()
	ctx := context.Background()

	saved := models.UserProfile{
		UserID:          999,
		FirstName:       "Custom",
		ShippingAddress: "1 Other St",
		CardNumber:      "5555444433332222",
	}
	raw, err := json.Marshal(saved)
	require.NoError(t, err)
	require.NoError(t, kv.Set(ctx, Key(999), string(raw)))

	sessions.Login(admin())

	live := s.Live()
	require.NotNil(t, live)
	assert.Equal(t, "Custom", live.FirstName)
	assert.Equal(t, "1 Other St", live.ShippingAddress)
}

func TestCorruptRecordIsDeletedAndTreatedAsAbsent(t *testing.T) {
	s, kv, sessions := newStore()
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, Key(998), "{not json"))

	sessions.Login(regular())

	assert.Nil(t, s.Live())
	_, err := kv.Get(ctx, Key(998))
	assert.True(t, errors.Is(err, kvstore.ErrNotFound))
}

func TestCorruptRecordForAdminFallsBackToDefaults(t *testing.T) {
	s, kv, sessions := newStore()
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, Key(999), "][garbage"))

	sessions.Login(admin())

	live := s.Live()
	require.NotNil(t, live)
	assert.Equal(t, "100 Commerce Blvd", live.ShippingAddress)

	raw, err := kv.Get(ctx, Key(999))
	require.NoError(t, err)
	assert.NotEqual(t, "][garbage", raw)
}

func TestLogoutClearsLiveButKeepsRecord(t *testing.T) {
	s, kv, sessions := newStore()
	ctx := context.Background()

	sessions.Login(admin())
	require.True(t, s.HasProfile())

	sessions.Logout()
	assert.False(t, s.HasProfile())
	assert.Nil(t, s.Live())

	_, err := kv.Get(ctx, Key(999))
	assert.NoError(t, err)

	sessions.Login(admin())
	assert.True(t, s.HasProfile())
}

func TestSaveOverwritesLiveAndPersisted(t *testing.T) {
	s, _, sessions := newStore()
	ctx := context.Background()

	sessions.Login(regular())
	require.Nil(t, s.Live())

	p := models.UserProfile{
		UserID:          998,
		FirstName:       "Demo",
		ShippingAddress: "7 Demo Way",
	}
	require.NoError(t, s.Save(ctx, p))

	live := s.Live()
	require.NotNil(t, live)
	assert.Equal(t, "7 Demo Way", live.ShippingAddress)

	stored, err := s.ByID(ctx, 998)
	require.NoError(t, err)
	assert.Equal(t, p, *stored)
}

func TestByIDIsIndependentOfSession(t *testing.T) {
	s, _, sessions := newStore()
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, models.UserProfile{UserID: 100, ShippingCity: "Austin"}))

	// Nobody logged in, and the live slot belongs to a different user.
	sessions.Login(admin())

	stored, err := s.ByID(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, "Austin", stored.ShippingCity)

	_, err = s.ByID(ctx, 101)
	assert.True(t, errors.Is(err, models.ErrNotFound))
}
