package lifecycle_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vendra-hq/vendra-sdk/pkg/lifecycle"
)

func TestDelete(t *testing.T) {
	t.Run("active becomes deleted", func(t *testing.T) {
		next, err := lifecycle.Delete(lifecycle.Active)
		require.NoError(t, err)
		require.Equal(t, lifecycle.Deleted, next)
	})

	t.Run("double delete is a conflict", func(t *testing.T) {
		_, err := lifecycle.Delete(lifecycle.Deleted)
		require.ErrorIs(t, err, lifecycle.ErrAlreadyDeleted)
	})
}

func TestAssertMutable(t *testing.T) {
	require.NoError(t, lifecycle.AssertMutable(lifecycle.Active))
	require.ErrorIs(t, lifecycle.AssertMutable(lifecycle.Deleted), lifecycle.ErrDeleted)
}

func TestStatusValid(t *testing.T) {
	require.True(t, lifecycle.Active.Valid())
	require.True(t, lifecycle.Deleted.Valid())
	require.False(t, lifecycle.Status("archived").Valid())
}
