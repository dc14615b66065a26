package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"unihub/internal/adapters/persistence/models"
	"unihub/internal/core/domain"
	"unihub/internal/pkg/jwt"
)

func TestAuthenticator_Resolve(t *testing.T) {
	f := newFixture(t)
	uni := f.university(t, "UNS")
	s := f.student(t, uni.ID, "RA5")
	user := f.user(t, "ra5@uni.example", domain.RoleStudent, "password1", func(u *models.User) {
		u.StudentID = &s.ID
		u.UniversityID = &uni.ID
	})
	auth := NewAuthenticator(f.access, f.users)

	t.Run("anonymous without header", func(t *testing.T) {
		p, err := auth.Resolve(f.ctx, "")
		assert.NoError(t, err)
		assert.Nil(t, p)
	})

	t.Run("anonymous with another scheme", func(t *testing.T) {
		p, err := auth.Resolve(f.ctx, "Basic dXNlcjpwYXNz")
		assert.NoError(t, err)
		assert.Nil(t, p)
	})

	t.Run("valid token", func(t *testing.T) {
		token, err := f.access.Issue(user.Email, user.Role)
		require.NoError(t, err)

		p, err := auth.Resolve(f.ctx, "Bearer "+token)
		require.NoError(t, err)
		assert.Equal(t, user.ID, p.UserID)
		assert.Equal(t, domain.RoleStudent, p.Role)
		assert.True(t, p.HasAuthority(domain.StudentAuthority(s.ID)))
		assert.True(t, p.HasAuthority(domain.UniversityAuthority(uni.ID)))
	})

	t.Run("role comes from the stored row", func(t *testing.T) {
		token, err := f.access.Issue(user.Email, string(domain.RoleAdministrator))
		require.NoError(t, err)

		p, err := auth.Resolve(f.ctx, "Bearer "+token)
		require.NoError(t, err)
		assert.Equal(t, domain.RoleStudent, p.Role)
	})

	t.Run("foreign secret", func(t *testing.T) {
		foreign, err := jwt.NewCodec("another-secret-0123456789abcdefghij", testIssuer, time.Minute, jwt.TokenTypeAccess)
		require.NoError(t, err)
		token, err := foreign.Issue(user.Email, user.Role)
		require.NoError(t, err)

		_, err = auth.Resolve(f.ctx, "Bearer "+token)
		requireAppError(t, err, 401, "invalid.token")
	})

	t.Run("refresh token is not an access token", func(t *testing.T) {
		token, err := f.refresh.Issue(user.Email, user.Role)
		require.NoError(t, err)

		_, err = auth.Resolve(f.ctx, "Bearer "+token)
		requireAppError(t, err, 401, "invalid.token")
	})

	t.Run("unknown role claim", func(t *testing.T) {
		token, err := f.access.Issue(user.Email, "ROOT")
		require.NoError(t, err)

		_, err = auth.Resolve(f.ctx, "Bearer "+token)
		requireAppError(t, err, 401, "invalid.token")
	})

	t.Run("unknown user", func(t *testing.T) {
		token, err := f.access.Issue("ghost@uni.example", "STUDENT")
		require.NoError(t, err)

		_, err = auth.Resolve(f.ctx, "Bearer "+token)
		requireAppError(t, err, 401, "user.not.found")
	})

	t.Run("inactive user", func(t *testing.T) {
		f.user(t, "off@uni.example", domain.RoleAdministrator, "password1", nil)
		// is_active has a column default, so false is written explicitly
		require.NoError(t, f.db.Model(&models.User{}).Where("email = ?", "off@uni.example").Update("is_active", false).Error)
		token, err := f.access.Issue("off@uni.example", "ADMINISTRATOR")
		require.NoError(t, err)

		_, err = auth.Resolve(f.ctx, "Bearer "+token)
		requireAppError(t, err, 401, "user.inactive")
	})
}
