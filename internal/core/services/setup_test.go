package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"unihub/internal/adapters/persistence/dbtest"
	"unihub/internal/adapters/persistence/models"
	"unihub/internal/adapters/persistence/repositories"
	"unihub/internal/core/domain"
	"unihub/internal/pkg/jwt"
	"unihub/internal/pkg/markdown"
	"unihub/internal/pkg/password"
)

const (
	accessSecret  = "access-secret-0123456789abcdef012345"
	refreshSecret = "refresh-secret-0123456789abcdef01234"
	testIssuer    = "unihub-test"
)

type fixture struct {
	db      *gorm.DB
	stores  *repositories.Stores
	users   repositories.UserRepository
	tokens  repositories.RefreshTokenRepository
	catalog *CatalogService
	people  *PeopleService
	posts   *PostService
	access  *jwt.Codec
	refresh *jwt.Codec
	ctx     context.Context
}

func newFixture(t *testing.T) *fixture {
	db := dbtest.Open(t)
	stores := repositories.NewStores(db)

	access, err := jwt.NewCodec(accessSecret, testIssuer, 15*time.Minute, jwt.TokenTypeAccess)
	require.NoError(t, err)
	refresh, err := jwt.NewCodec(refreshSecret, testIssuer, 24*time.Hour, jwt.TokenTypeRefresh)
	require.NoError(t, err)

	return &fixture{
		db:      db,
		stores:  stores,
		users:   repositories.NewUserRepository(db),
		tokens:  repositories.NewRefreshTokenRepository(db),
		catalog: NewCatalogService(stores),
		people:  NewPeopleService(stores),
		posts:   NewPostService(stores, markdown.NewRenderer()),
		access:  access,
		refresh: refresh,
		ctx:     context.Background(),
	}
}

func fastHash(p string) (string, error) {
	return password.HashWithCost(p, bcrypt.MinCost)
}

func (f *fixture) university(t *testing.T, name string) *models.UniversityResponse {
	u, err := f.catalog.Universities.Create(f.ctx, nil, &UniversityInput{Name: name, City: "Novi Sad"})
	require.NoError(t, err)
	return u
}

func (f *fixture) student(t *testing.T, universityID uint, index string) *models.StudentResponse {
	s, err := f.people.Students.Create(f.ctx, uniScope(universityID), &StudentInput{
		IndexNumber: index, FirstName: "Stu", LastName: index, Email: index + "@uni.example", StudyYear: 1,
	})
	require.NoError(t, err)
	return s
}

func (f *fixture) user(t *testing.T, email string, role domain.Role, plain string, mutate func(*models.User)) *models.User {
	hash, err := fastHash(plain)
	require.NoError(t, err)
	u := &models.User{Email: email, Password: hash, Role: string(role), IsActive: true}
	if mutate != nil {
		mutate(u)
	}
	require.NoError(t, f.users.Create(f.ctx, u))
	return u
}

func uniScope(id uint) repositories.Scope {
	return repositories.Scope{ColUniversity: id}
}

func f64(v float64) *float64 { return &v }

func uptr(v uint) *uint { return &v }

func requireAppError(t *testing.T, err error, code int, message string) {
	t.Helper()
	require.Error(t, err)
	appErr, ok := domain.AsAppError(err)
	require.True(t, ok, "expected an application error, got %v", err)
	require.Equal(t, code, appErr.Code)
	require.Equal(t, message, appErr.Message)
}
