package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"unihub/internal/adapters/persistence/repositories"
	"unihub/internal/pkg/pagination"
)

func TestFriendshipService_Lifecycle(t *testing.T) {
	f := newFixture(t)
	uni := f.university(t, "UNS")
	ana := f.student(t, uni.ID, "ra1")
	bob := f.student(t, uni.ID, "ra2")
	svc := NewFriendshipService(repositories.NewFriendshipRepository(f.db), f.stores)
	params := pagination.New(0, 20)

	require.NoError(t, svc.Request(f.ctx, ana.ID, bob.ID))
	requireAppError(t, svc.Request(f.ctx, ana.ID, bob.ID), 409, "friendship.conflict")

	requests, err := svc.Requests(f.ctx, bob.ID, params)
	require.NoError(t, err)
	require.Len(t, requests.Content, 1)
	assert.Equal(t, ana.ID, requests.Content[0].ID)

	// only the requested row exists, so there is no friendship to remove yet
	requireAppError(t, svc.Remove(f.ctx, ana.ID, bob.ID), 404, "friendship.not.found")
	// the requester cannot accept their own request
	requireAppError(t, svc.Accept(f.ctx, ana.ID, bob.ID), 404, "friendship.not.found")

	require.NoError(t, svc.Accept(f.ctx, bob.ID, ana.ID))

	for _, pair := range [][2]uint{{ana.ID, bob.ID}, {bob.ID, ana.ID}} {
		friends, err := svc.Friends(f.ctx, pair[0], params)
		require.NoError(t, err)
		require.Len(t, friends.Content, 1)
		assert.Equal(t, pair[1], friends.Content[0].ID)
	}

	requests, err = svc.Requests(f.ctx, bob.ID, params)
	require.NoError(t, err)
	assert.Empty(t, requests.Content)

	require.NoError(t, svc.Remove(f.ctx, bob.ID, ana.ID))
	friends, err := svc.Friends(f.ctx, ana.ID, params)
	require.NoError(t, err)
	assert.Zero(t, friends.TotalCount)
}

func TestFriendshipService_RequestErrors(t *testing.T) {
	f := newFixture(t)
	uni := f.university(t, "UNS")
	ana := f.student(t, uni.ID, "ra1")
	bob := f.student(t, uni.ID, "ra2")
	svc := NewFriendshipService(repositories.NewFriendshipRepository(f.db), f.stores)

	requireAppError(t, svc.Request(f.ctx, ana.ID, ana.ID), 400, "bad.request;friend.self.request")
	requireAppError(t, svc.Request(f.ctx, ana.ID, 999), 404, "student.not.found")

	require.NoError(t, svc.Request(f.ctx, ana.ID, bob.ID))
	requireAppError(t, svc.Decline(f.ctx, ana.ID, bob.ID), 404, "friendship.not.found")
	require.NoError(t, svc.Decline(f.ctx, bob.ID, ana.ID))

	requests, err := svc.Requests(f.ctx, bob.ID, pagination.New(0, 20))
	require.NoError(t, err)
	assert.Empty(t, requests.Content)
}
