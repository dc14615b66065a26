package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"unihub/internal/adapters/persistence/models"
	"unihub/internal/core/domain"
)

func TestCronService_PurgeRefreshTokens(t *testing.T) {
	f := newFixture(t)
	user := f.user(t, "a@uni.example", domain.RoleAdministrator, "password1", nil)
	revokedAt := time.Now().Add(-time.Minute)

	for _, tok := range []*models.RefreshToken{
		{UserID: user.ID, TokenHash: "live", ExpiresAt: time.Now().Add(time.Hour)},
		{UserID: user.ID, TokenHash: "expired", ExpiresAt: time.Now().Add(-time.Hour)},
		{UserID: user.ID, TokenHash: "revoked", ExpiresAt: time.Now().Add(time.Hour), RevokedAt: &revokedAt},
	} {
		require.NoError(t, f.tokens.Create(f.ctx, tok))
	}

	NewCronService(f.tokens, "").PurgeRefreshTokens()

	var hashes []string
	require.NoError(t, f.db.Model(&models.RefreshToken{}).Pluck("token_hash", &hashes).Error)
	assert.Equal(t, []string{"live"}, hashes)
}

func TestCronService_RejectsBadSchedule(t *testing.T) {
	f := newFixture(t)
	assert.Error(t, NewCronService(f.tokens, "every tuesday").Start())

	svc := NewCronService(f.tokens, "")
	require.NoError(t, svc.Start())
	svc.Stop()
}
