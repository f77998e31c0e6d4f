package service

import (
	"slices"
	"testing"

	sharedErrors "github.com/reshetovitsme/support-relay-bot/internal/shared/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ownerID int64 = 1000

// fakeRepo keeps the admin set in memory
type fakeRepo struct {
	ids []int64
}

func (r *fakeRepo) Load() ([]int64, error) {
	return slices.Clone(r.ids), nil
}

func (r *fakeRepo) Save(ids []int64) error {
	r.ids = slices.Clone(ids)
	return nil
}

func TestLoadAdmins_SeedsOwnerOnEmptyStore(t *testing.T) {
	repo := &fakeRepo{}
	svc := New(repo, ownerID)

	admins, err := svc.LoadAdmins()
	require.NoError(t, err)
	assert.Equal(t, []int64{ownerID}, admins)
	assert.Equal(t, []int64{ownerID}, repo.ids, "seed must be persisted")
}

func TestRemoveAdmin_OwnerAlwaysRefused(t *testing.T) {
	repo := &fakeRepo{ids: []int64{ownerID, 2000}}
	svc := New(repo, ownerID)

	removed, err := svc.RemoveAdmin(ownerID)
	assert.ErrorIs(t, err, sharedErrors.ErrOwnerImmutable)
	assert.False(t, removed)
	assert.Contains(t, repo.ids, ownerID)
}

func TestAddAdmin(t *testing.T) {
	repo := &fakeRepo{}
	svc := New(repo, ownerID)

	added, err := svc.AddAdmin(2000)
	require.NoError(t, err)
	assert.True(t, added)
	assert.Contains(t, repo.ids, int64(2000))

	// Adding again is a no-op
	added, err = svc.AddAdmin(2000)
	require.NoError(t, err)
	assert.False(t, added)
}

func TestRemoveAdmin(t *testing.T) {
	repo := &fakeRepo{ids: []int64{ownerID, 2000}}
	svc := New(repo, ownerID)

	removed, err := svc.RemoveAdmin(2000)
	require.NoError(t, err)
	assert.True(t, removed)
	assert.NotContains(t, repo.ids, int64(2000))

	// Removing an absent admin is a no-op
	removed, err = svc.RemoveAdmin(2000)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestIsAdmin(t *testing.T) {
	repo := &fakeRepo{ids: []int64{ownerID, 2000}}
	svc := New(repo, ownerID)

	assert.True(t, svc.IsAdmin(ownerID))
	assert.True(t, svc.IsAdmin(2000))
	assert.False(t, svc.IsAdmin(3000))
}

func TestRequireAdmin(t *testing.T) {
	repo := &fakeRepo{ids: []int64{ownerID, 2000}}
	svc := New(repo, ownerID)

	assert.NoError(t, svc.RequireAdmin(2000))
	assert.ErrorIs(t, svc.RequireAdmin(3000), sharedErrors.ErrUnauthorized)
}

func TestRequireOwner(t *testing.T) {
	repo := &fakeRepo{ids: []int64{ownerID, 2000}}
	svc := New(repo, ownerID)

	assert.NoError(t, svc.RequireOwner(ownerID))
	assert.ErrorIs(t, svc.RequireOwner(2000), sharedErrors.ErrUnauthorized)
}
