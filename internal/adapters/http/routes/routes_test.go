package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"unihub/internal/adapters/http/middleware"
	"unihub/internal/adapters/persistence/dbtest"
	"unihub/internal/adapters/persistence/models"
	"unihub/internal/config"
	"unihub/internal/core/domain"
	"unihub/internal/core/services"
	"unihub/internal/pkg/jwt"
	"unihub/internal/pkg/password"
)

type envelope struct {
	Status  int             `json:"status"`
	Payload json.RawMessage `json:"payload"`
	Message *string         `json:"message"`
}

type testAPI struct {
	app    *fiber.App
	db     *gorm.DB
	access *jwt.Codec
}

type fakeProvider struct{ email string }

func (p fakeProvider) Verify(context.Context, string) (*domain.UserProfile, error) {
	return &domain.UserProfile{Email: p.email, FirstName: "Via", LastName: "Google"}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Mode: "dev", Port: "0"},
		JWT: config.JWTConfig{
			Secret:           "routes-access-secret-0123456789abcdef",
			RefreshSecret:    "routes-refresh-secret-0123456789abcdef",
			Issuer:           "unihub-test",
			AccessTokenMins:  15,
			RefreshTokenDays: 7,
		},
		OAuth: config.OAuthConfig{Timeout: time.Second},
	}
}

func newTestAPI(t *testing.T) *testAPI {
	db := dbtest.Open(t)
	cfg := testConfig()

	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler})
	require.NoError(t, Setup(app, db, cfg, Dependencies{
		Providers: map[domain.Provider]services.IdentityProvider{
			domain.ProviderGoogle: fakeProvider{email: "admin@unihub.example"},
		},
	}))

	access, err := jwt.NewCodec(cfg.JWT.Secret, cfg.JWT.Issuer, time.Minute, jwt.TokenTypeAccess)
	require.NoError(t, err)
	return &testAPI{app: app, db: db, access: access}
}

func (a *testAPI) university(t *testing.T, name string) uint {
	u := &models.University{Name: name, City: "Novi Sad"}
	require.NoError(t, a.db.Create(u).Error)
	return u.ID
}

func (a *testAPI) student(t *testing.T, universityID uint, index string) uint {
	s := &models.Student{UniversityID: universityID, IndexNumber: index, FirstName: "S", LastName: index, Email: index + "@uni.example"}
	require.NoError(t, a.db.Create(s).Error)
	return s.ID
}

// login creates a user row and returns a bearer header for it
func (a *testAPI) login(t *testing.T, email string, role domain.Role, mutate func(*models.User)) string {
	hash, err := password.HashWithCost("password1", bcrypt.MinCost)
	require.NoError(t, err)
	u := &models.User{Email: email, Password: hash, Role: string(role), IsActive: true}
	if mutate != nil {
		mutate(u)
	}
	require.NoError(t, a.db.Create(u).Error)

	token, err := a.access.Issue(email, string(role))
	require.NoError(t, err)
	return "Bearer " + token
}

func (a *testAPI) do(t *testing.T, method, path, auth string, body any) (int, envelope) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}

	resp, err := a.app.Test(req, 5000)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func message(env envelope) string {
	if env.Message == nil {
		return ""
	}
	return *env.Message
}

func uintPtr(v uint) *uint { return &v }

func TestRoutes_Anonymous(t *testing.T) {
	api := newTestAPI(t)

	status, env := api.do(t, "GET", "/api/v1/universities", "", nil)
	assert.Equal(t, 401, status)
	assert.Equal(t, "unauthorized", message(env))

	status, env = api.do(t, "GET", "/api/v1/universities", "Token abc", nil)
	assert.Equal(t, 401, status, "a header without the Bearer scheme is anonymous")
	assert.Equal(t, "unauthorized", message(env))

	status, env = api.do(t, "GET", "/api/v1/universities", "Bearer not-a-jwt", nil)
	assert.Equal(t, 401, status)
	assert.Equal(t, "invalid.token", message(env))

	status, env = api.do(t, "GET", "/api/v1/nowhere", "", nil)
	assert.Equal(t, 404, status)
	assert.Equal(t, "not.found", message(env))
}

func TestRoutes_UnknownUser(t *testing.T) {
	api := newTestAPI(t)
	token, err := api.access.Issue("ghost@unihub.example", "ADMINISTRATOR")
	require.NoError(t, err)

	status, env := api.do(t, "GET", "/api/v1/universities", "Bearer "+token, nil)
	assert.Equal(t, 401, status)
	assert.Equal(t, "user.not.found", message(env))
}

func TestRoutes_BuildingValidationAndConflict(t *testing.T) {
	api := newTestAPI(t)
	admin := api.login(t, "admin@unihub.example", domain.RoleAdministrator, nil)
	uni := api.university(t, "UNS")
	path := "/api/v1/universities/" + strconv.Itoa(int(uni)) + "/buildings"

	status, env := api.do(t, "POST", path, admin, map[string]any{"name": "Rectorate", "latitude": nil, "longitude": 19.8})
	assert.Equal(t, 400, status)
	assert.Equal(t, "bad.request;latitude.must.not.be.null", message(env))

	body := map[string]any{"name": "Rectorate", "latitude": 45.25, "longitude": 19.84}
	status, _ = api.do(t, "POST", path, admin, body)
	require.Equal(t, 201, status)

	status, env = api.do(t, "POST", path, admin, body)
	assert.Equal(t, 409, status)
	assert.Equal(t, "building.conflict", message(env))
}

func TestRoutes_MissingParent(t *testing.T) {
	api := newTestAPI(t)
	admin := api.login(t, "admin@unihub.example", domain.RoleAdministrator, nil)

	status, env := api.do(t, "POST", "/api/v1/universities/3/faculties", admin, map[string]any{"name": "FTN"})
	assert.Equal(t, 404, status)
	assert.Equal(t, "university.not.found", message(env))

	status, env = api.do(t, "GET", "/api/v1/universities/3/faculties/abc", admin, nil)
	assert.Equal(t, 400, status)
	assert.Equal(t, "bad.request;facultyId.invalid", message(env))
}

func TestRoutes_StudentOwnership(t *testing.T) {
	api := newTestAPI(t)
	uni := api.university(t, "UNS")
	five := api.student(t, uni, "ra5")
	six := api.student(t, uni, "ra6")
	student := api.login(t, "ra5@uni.example", domain.RoleStudent, func(u *models.User) {
		u.StudentID = uintPtr(five)
		u.UniversityID = uintPtr(uni)
	})

	status, _ := api.do(t, "GET", "/api/v1/students/"+strconv.Itoa(int(five))+"/friends", student, nil)
	assert.Equal(t, 200, status)

	status, env := api.do(t, "GET", "/api/v1/students/"+strconv.Itoa(int(six))+"/friends", student, nil)
	assert.Equal(t, 403, status)
	assert.Equal(t, "access.denied", message(env))

	status, env = api.do(t, "POST", "/api/v1/students/"+strconv.Itoa(int(five))+"/friends/"+strconv.Itoa(int(five)), student, nil)
	assert.Equal(t, 400, status)
	assert.Equal(t, "bad.request;friend.self.request", message(env))

	status, env = api.do(t, "PUT", "/api/v1/students/"+strconv.Itoa(int(five)), student, map[string]any{
		"indexNumber": "ra5", "firstName": "Ana", "lastName": "A", "email": "ra5@uni.example", "studyYear": 2,
	})
	require.Equal(t, 200, status)
	var out models.StudentResponse
	require.NoError(t, json.Unmarshal(env.Payload, &out))
	assert.Equal(t, uni, out.UniversityID)
	assert.Equal(t, 2, out.StudyYear)
}

func TestRoutes_RoleRules(t *testing.T) {
	api := newTestAPI(t)
	uni := api.university(t, "UNS")
	other := api.university(t, "UNI")
	employee := api.login(t, "emp@uni.example", domain.RoleEmployee, func(u *models.User) {
		u.UniversityID = uintPtr(uni)
	})
	uniAdmin := api.login(t, "ua@uni.example", domain.RoleUniversityAdministrator, func(u *models.User) {
		u.UniversityID = uintPtr(uni)
	})
	base := "/api/v1/universities/" + strconv.Itoa(int(uni))

	status, _ := api.do(t, "POST", base+"/faculties", employee, map[string]any{"name": "FTN"})
	assert.Equal(t, 403, status, "employees cannot write faculties")

	status, _ = api.do(t, "POST", base+"/faculties", uniAdmin, map[string]any{"name": "FTN"})
	assert.Equal(t, 201, status)

	status, _ = api.do(t, "GET", base+"/faculties", employee, nil)
	assert.Equal(t, 200, status)

	status, _ = api.do(t, "POST", base+"/posts", employee, map[string]any{"title": "Hello", "content": "**hi**"})
	assert.Equal(t, 201, status, "employees may publish posts")

	status, _ = api.do(t, "POST", "/api/v1/universities/"+strconv.Itoa(int(other))+"/faculties", uniAdmin, map[string]any{"name": "PMF"})
	assert.Equal(t, 403, status, "university administrators only own their university")

	status, _ = api.do(t, "DELETE", base, uniAdmin, nil)
	assert.Equal(t, 403, status)

	status, _ = api.do(t, "GET", "/api/v1/users", uniAdmin, nil)
	assert.Equal(t, 403, status)
}

func TestRoutes_PostSearchByQuery(t *testing.T) {
	api := newTestAPI(t)
	uni := api.university(t, "UNS")
	other := api.university(t, "UNI")
	employee := api.login(t, "emp@uni.example", domain.RoleEmployee, func(u *models.User) {
		u.UniversityID = uintPtr(uni)
	})
	base := "/api/v1/universities/" + strconv.Itoa(int(uni))

	for _, p := range []map[string]any{
		{"title": "Exam dates", "content": "a", "publishedAt": "2024-01-10"},
		{"title": "Sports day", "content": "b", "publishedAt": "2024-02-15"},
	} {
		status, _ := api.do(t, "POST", base+"/posts", employee, p)
		require.Equal(t, 201, status)
	}

	status, env := api.do(t, "GET", "/api/v1/posts?universityId="+strconv.Itoa(int(uni))+"&title=exam", employee, nil)
	require.Equal(t, 200, status)
	var page struct {
		Content    []models.PostResponse `json:"content"`
		TotalCount int64                 `json:"totalCount"`
	}
	require.NoError(t, json.Unmarshal(env.Payload, &page))
	require.Len(t, page.Content, 1)
	assert.Equal(t, "Exam dates", page.Content[0].Title)

	status, env = api.do(t, "GET", base+"/posts?from=2024-02-01&to=", employee, nil)
	require.Equal(t, 200, status)
	require.NoError(t, json.Unmarshal(env.Payload, &page))
	assert.Equal(t, int64(1), page.TotalCount)

	status, env = api.do(t, "GET", base+"/posts?from=10.01.2024", employee, nil)
	assert.Equal(t, 400, status)
	assert.Equal(t, "bad.request;from.invalid.date", message(env))

	status, _ = api.do(t, "GET", "/api/v1/posts?universityId="+strconv.Itoa(int(other)), employee, nil)
	assert.Equal(t, 403, status)

	status, _ = api.do(t, "GET", "/api/v1/posts", employee, nil)
	assert.Equal(t, 403, status, "a missing ownership parameter denies")
}

func TestRoutes_PostSearchRepeatedUniversity(t *testing.T) {
	api := newTestAPI(t)
	uni := api.university(t, "UNS")
	other := api.university(t, "UNI")
	require.NoError(t, api.db.Create(&models.Post{
		UniversityID: other, Title: "secret", Content: "x", PublishedAt: datatypes.Date(time.Now().UTC()),
	}).Error)

	employee := api.login(t, "emp@uni.example", domain.RoleEmployee, func(u *models.User) {
		u.UniversityID = uintPtr(uni)
	})
	admin := api.login(t, "admin@unihub.example", domain.RoleAdministrator, nil)

	own, foreign := strconv.Itoa(int(uni)), strconv.Itoa(int(other))
	for _, query := range []string{
		"universityId=" + foreign + "&universityId=" + own,
		"universityId=" + own + "&universityId=" + foreign,
		"universityId=" + own + "&universityId=" + own,
	} {
		status, env := api.do(t, "GET", "/api/v1/posts?"+query, employee, nil)
		assert.Equal(t, 403, status, query)
		assert.Equal(t, "access.denied", message(env), query)
	}

	status, env := api.do(t, "GET", "/api/v1/posts?universityId="+foreign+"&universityId="+own, admin, nil)
	assert.Equal(t, 400, status)
	assert.Equal(t, "bad.request;universityId.invalid", message(env))

	status, env = api.do(t, "GET", "/api/v1/posts?universityId="+foreign, admin, nil)
	require.Equal(t, 200, status)
	var page struct {
		Content []models.PostResponse `json:"content"`
	}
	require.NoError(t, json.Unmarshal(env.Payload, &page))
	require.Len(t, page.Content, 1)
	assert.Equal(t, "secret", page.Content[0].Title)
}

func TestRoutes_AuthFlow(t *testing.T) {
	api := newTestAPI(t)
	uni := api.university(t, "UNS")

	status, env := api.do(t, "POST", "/api/v1/auth/register", "", map[string]any{
		"universityId": uni, "indexNumber": "ra1", "firstName": "Ana", "lastName": "A",
		"email": "ana@uni.example", "password": "password1", "studyYear": 1,
	})
	require.Equal(t, 201, status, message(env))

	status, env = api.do(t, "POST", "/api/v1/auth/login", "", map[string]any{"email": "ana@uni.example", "password": "password1"})
	require.Equal(t, 200, status)
	var auth services.AuthResponse
	require.NoError(t, json.Unmarshal(env.Payload, &auth))
	bearer := "Bearer " + auth.AccessToken

	status, env = api.do(t, "GET", "/api/v1/auth/me", bearer, nil)
	require.Equal(t, 200, status)
	var me models.UserResponse
	require.NoError(t, json.Unmarshal(env.Payload, &me))
	assert.Equal(t, "STUDENT", me.Role)
	require.NotNil(t, me.StudentID)

	status, _ = api.do(t, "GET", "/api/v1/students/"+strconv.Itoa(int(*me.StudentID)), bearer, nil)
	assert.Equal(t, 200, status)

	status, env = api.do(t, "POST", "/api/v1/auth/refresh", "", map[string]any{"refreshToken": auth.RefreshToken})
	require.Equal(t, 200, status)
	status, env = api.do(t, "POST", "/api/v1/auth/refresh", "", map[string]any{"refreshToken": auth.RefreshToken})
	assert.Equal(t, 401, status)
	assert.Equal(t, "invalid.token", message(env))

	status, env = api.do(t, "POST", "/api/v1/auth/login/twitter", "", map[string]any{"token": "x"})
	assert.Equal(t, 400, status)
	assert.Equal(t, "bad.request;provider.invalid.value", message(env))
}

func TestRoutes_ProviderLogin(t *testing.T) {
	api := newTestAPI(t)
	api.login(t, "admin@unihub.example", domain.RoleAdministrator, nil)

	status, env := api.do(t, "POST", "/api/v1/auth/login/google", "", map[string]any{"token": "ya29"})
	require.Equal(t, 200, status, message(env))
	var auth services.AuthResponse
	require.NoError(t, json.Unmarshal(env.Payload, &auth))
	assert.Equal(t, "Via", auth.User.FirstName)
}

func TestRoutes_Health(t *testing.T) {
	api := newTestAPI(t)

	status, env := api.do(t, "GET", "/health", "", nil)
	assert.Equal(t, 200, status)
	assert.JSONEq(t, `{"api":"healthy","database":"healthy"}`, string(env.Payload))
}
