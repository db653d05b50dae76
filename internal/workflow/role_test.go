package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/lost-and-found/internal/model"
)

func TestResolveRole(t *testing.T) {
	rec := func(userID uint64, role model.Role) model.UserRole {
		return model.UserRole{UserID: userID, Role: role}
	}

	t.Run("no records defaults to user", func(t *testing.T) {
		role, err := ResolveRole(1, nil)
		require.NoError(t, err)
		assert.Equal(t, model.RoleUser, role)
	})

	t.Run("single admin record", func(t *testing.T) {
		role, err := ResolveRole(1, []model.UserRole{rec(1, model.RoleAdmin)})
		require.NoError(t, err)
		assert.Equal(t, model.RoleAdmin, role)
	})

	t.Run("other users' records are ignored", func(t *testing.T) {
		role, err := ResolveRole(1, []model.UserRole{rec(2, model.RoleAdmin), rec(3, model.RoleAdmin)})
		require.NoError(t, err)
		assert.Equal(t, model.RoleUser, role)
	})

	t.Run("agreeing duplicates collapse", func(t *testing.T) {
		role, err := ResolveRole(1, []model.UserRole{rec(1, model.RoleAdmin), rec(1, model.RoleAdmin)})
		require.NoError(t, err)
		assert.Equal(t, model.RoleAdmin, role)
	})

	t.Run("conflicting duplicates fail", func(t *testing.T) {
		_, err := ResolveRole(1, []model.UserRole{rec(1, model.RoleAdmin), rec(1, model.RoleUser)})
		assert.ErrorIs(t, err, ErrAmbiguousRole)

		// Order does not matter.
		_, err = ResolveRole(1, []model.UserRole{rec(1, model.RoleUser), rec(1, model.RoleAdmin)})
		assert.ErrorIs(t, err, ErrAmbiguousRole)
	})
}
