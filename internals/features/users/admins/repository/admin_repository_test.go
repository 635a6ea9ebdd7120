package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tourku_backend/internals/helpers/testdb"
)

func TestUpsertAdmin(t *testing.T) {
	db := testdb.Open(t)
	ctx := context.Background()

	isActive := func(id uuid.UUID) bool {
		t.Helper()
		ok, err := IsActiveAdmin(ctx, db, id)
		require.NoError(t, err)
		return ok
	}

	// insert baru sebagai non-aktif
	fresh := uuid.New()
	require.NoError(t, UpsertAdmin(ctx, db, fresh, false))
	assert.False(t, isActive(fresh))

	// aktif → non-aktif → aktif lagi
	op := uuid.New()
	require.NoError(t, UpsertAdmin(ctx, db, op, true))
	assert.True(t, isActive(op))

	require.NoError(t, UpsertAdmin(ctx, db, op, false))
	assert.False(t, isActive(op))

	require.NoError(t, UpsertAdmin(ctx, db, op, true))
	assert.True(t, isActive(op))

	var count int64
	require.NoError(t, db.Table("admins").Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestIsActiveAdmin_Unknown(t *testing.T) {
	db := testdb.Open(t)

	ok, err := IsActiveAdmin(context.Background(), db, uuid.New())
	require.NoError(t, err)
	assert.False(t, ok)
}
