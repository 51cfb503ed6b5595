//go:build unit

package commands_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"reimburse-api/internal/domain/operator"
	"reimburse-api/internal/infra/repository"
	"reimburse-api/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeACLStore struct {
	rolePerms     map[uuid.UUID]map[string]bool
	resourcePerms map[string]bool // userID|perm|type|id
}

func newFakeACLStore() *fakeACLStore {
	return &fakeACLStore{
		rolePerms:     map[uuid.UUID]map[string]bool{},
		resourcePerms: map[string]bool{},
	}
}

func resourceKey(userID uuid.UUID, perm, resType, resID string) string {
	return userID.String() + "|" + perm + "|" + resType + "|" + resID
}

func (s *fakeACLStore) HasRolePermission(_ context.Context, userID uuid.UUID, permission string) (bool, error) {
	return s.rolePerms[userID][permission], nil
}

func (s *fakeACLStore) HasResourcePermission(_ context.Context, userID uuid.UUID, permission, resourceType, resourceID string) (bool, error) {
	return s.resourcePerms[resourceKey(userID, permission, resourceType, resourceID)], nil
}

func (s *fakeACLStore) CreateRole(context.Context, string) (uuid.UUID, error) {
	return uuid.New(), nil
}

func (s *fakeACLStore) CreatePermission(context.Context, string) (uuid.UUID, error) {
	return uuid.New(), nil
}

func (s *fakeACLStore) AddPermissionToRole(context.Context, string, string) error { return nil }

func (s *fakeACLStore) AssignRole(context.Context, uuid.UUID, string) error { return nil }

func (s *fakeACLStore) GrantResourcePermission(_ context.Context, userID uuid.UUID, permission, resourceType, resourceID string) error {
	s.resourcePerms[resourceKey(userID, permission, resourceType, resourceID)] = true
	return nil
}

func (s *fakeACLStore) RevokeResourcePermission(_ context.Context, userID uuid.UUID, permission, resourceType, resourceID string) error {
	delete(s.resourcePerms, resourceKey(userID, permission, resourceType, resourceID))
	return nil
}

func (s *fakeACLStore) ListResourceGrants(context.Context, uuid.UUID) ([]repository.ResourceGrant, error) {
	return nil, nil
}

type fakeOperatorRepo struct {
	byID map[uuid.UUID]*operator.Operator
}

func (r *fakeOperatorRepo) FindByEmail(_ context.Context, email string) (*operator.Operator, error) {
	for _, op := range r.byID {
		if op.Email == email {
			return op, nil
		}
	}
	return nil, notFoundErr()
}

func (r *fakeOperatorRepo) FindByID(_ context.Context, id uuid.UUID) (*operator.Operator, error) {
	if op, ok := r.byID[id]; ok {
		return op, nil
	}
	return nil, notFoundErr()
}

func (r *fakeOperatorRepo) UpdateLastLogin(context.Context, uuid.UUID, time.Time) error { return nil }

func newACLFixture() (*fakeACLStore, *fakeOperatorRepo, commands.ACLCommands) {
	store := newFakeACLStore()
	ops := &fakeOperatorRepo{byID: map[uuid.UUID]*operator.Operator{}}
	return store, ops, commands.NewACLCommands(store, ops, slog.Default())
}

func addOperator(ops *fakeOperatorRepo, superuser bool) uuid.UUID {
	id := uuid.New()
	ops.byID[id] = &operator.Operator{
		ID: id, Email: id.String() + "@example.com", Name: "op",
		IsSuperuser: superuser, IsActive: true,
	}
	return id
}

func TestACLCommands_CheckEndpointPermission(t *testing.T) {
	ctx := context.Background()

	t.Run("empty actor denied", func(t *testing.T) {
		_, _, acl := newACLFixture()
		ok, err := acl.CheckEndpointPermission(ctx, uuid.Nil, "view_documents")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("superuser always allowed", func(t *testing.T) {
		_, ops, acl := newACLFixture()
		superID := addOperator(ops, true)
		ok, err := acl.CheckEndpointPermission(ctx, superID, "anything_at_all")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("role grant allows", func(t *testing.T) {
		store, ops, acl := newACLFixture()
		opID := addOperator(ops, false)
		store.rolePerms[opID] = map[string]bool{"view_documents": true}

		ok, err := acl.CheckEndpointPermission(ctx, opID, "view_documents")
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = acl.CheckEndpointPermission(ctx, opID, "manage_acl")
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestACLCommands_CheckResourcePermission(t *testing.T) {
	ctx := context.Background()

	t.Run("resource grant scoped to exact resource", func(t *testing.T) {
		_, ops, acl := newACLFixture()
		opID := addOperator(ops, false)

		require.NoError(t, acl.GrantResourcePermission(ctx, opID, "view_documents", "submission", "1"))

		ok, err := acl.CheckResourcePermission(ctx, opID, "view_documents", "submission", "1")
		require.NoError(t, err)
		assert.True(t, ok)

		// Same type, different id: no access.
		ok, err = acl.CheckResourcePermission(ctx, opID, "view_documents", "submission", "2")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("role grant satisfies any resource", func(t *testing.T) {
		store, ops, acl := newACLFixture()
		opID := addOperator(ops, false)
		store.rolePerms[opID] = map[string]bool{"view_documents": true}

		for _, resID := range []string{"1", "2", "999"} {
			ok, err := acl.CheckResourcePermission(ctx, opID, "view_documents", "submission", resID)
			require.NoError(t, err)
			assert.True(t, ok)
		}
	})

	t.Run("revoke removes access", func(t *testing.T) {
		_, ops, acl := newACLFixture()
		opID := addOperator(ops, false)

		require.NoError(t, acl.GrantResourcePermission(ctx, opID, "view_documents", "submission", "1"))
		require.NoError(t, acl.RevokeResourcePermission(ctx, opID, "view_documents", "submission", "1"))

		ok, err := acl.CheckResourcePermission(ctx, opID, "view_documents", "submission", "1")
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestACLCommands_Require(t *testing.T) {
	ctx := context.Background()

	t.Run("denied carries the triple", func(t *testing.T) {
		_, ops, acl := newACLFixture()
		opID := addOperator(ops, false)

		err := acl.RequireResourcePermission(ctx, opID, "view_documents", "submission", "7")
		require.Error(t, err)
		assert.ErrorIs(t, err, commands.ErrPermissionDenied)

		var denied *commands.PermissionDeniedError
		require.ErrorAs(t, err, &denied)
		assert.Equal(t, opID, denied.ActorID)
		assert.Equal(t, "view_documents", denied.Permission)
		assert.Equal(t, "submission", denied.ResourceType)
		assert.Equal(t, "7", denied.ResourceID)
	})

	t.Run("granted passes", func(t *testing.T) {
		store, ops, acl := newACLFixture()
		opID := addOperator(ops, false)
		store.rolePerms[opID] = map[string]bool{"manage_acl": true}

		assert.NoError(t, acl.RequireEndpointPermission(ctx, opID, "manage_acl"))
	})
}
