package kvstore

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRoundTrip(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	_, err := m.Get(ctx, "user_profile_1")
	assert.True(t, errors.Is(err, ErrNotFound))

	require.NoError(t, m.Set(ctx, "user_profile_1", `{"userId":1}`))

	value, err := m.Get(ctx, "user_profile_1")
	require.NoError(t, err)
	assert.Equal(t, `{"userId":1}`, value)

	require.NoError(t, m.Set(ctx, "user_profile_1", `{"userId":1,"email":"x"}`))
	value, err = m.Get(ctx, "user_profile_1")
	require.NoError(t, err)
	assert.Equal(t, `{"userId":1,"email":"x"}`, value)

	require.NoError(t, m.Delete(ctx, "user_profile_1"))
	_, err = m.Get(ctx, "user_profile_1")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestMemoryDeleteAbsentKeyIsNoop(t *testing.T) {
	m := NewMemory()
	assert.NoError(t, m.Delete(context.Background(), "missing"))
}
