package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"

	"unihub/internal/adapters/http/handlers"
	"unihub/internal/adapters/http/middleware"
	"unihub/internal/adapters/persistence/models"
	"unihub/internal/adapters/persistence/repositories"
	"unihub/internal/config"
	"unihub/internal/core/domain"
	"unihub/internal/core/services"
	"unihub/internal/pkg/jwt"
	"unihub/internal/pkg/markdown"
)

// Dependencies are the outside collaborators of the API besides the database
type Dependencies struct {
	Providers map[domain.Provider]services.IdentityProvider
	Sender    services.Sender
}

// Authorization rules shared by the route table
var (
	anyRole = domain.AllRoles()

	admin              = services.Allow(domain.RoleAdministrator)
	uniAdminOwning     = services.Allow(domain.RoleUniversityAdministrator).Owning(services.OwnsUniversityPath)
	staffOwning        = services.Allow(domain.RoleUniversityAdministrator, domain.RoleEmployee).Owning(services.OwnsUniversityPath)
	memberOwning       = services.Allow(anyRole...).Owning(services.OwnsUniversityPath)
	memberOwningQuery  = services.Allow(anyRole...).Owning(services.OwnsUniversityQuery)
	studentOwning      = services.Allow(domain.RoleStudent).Owning(services.OwnsStudentPath)
	universityReaders  = []services.Rule{admin, memberOwning}
	universityWriters  = []services.Rule{admin, uniAdminOwning}
	universityStaff    = []services.Rule{admin, staffOwning}
	privateCacheMaxAge = 30 * time.Second
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config, deps Dependencies) error {
	accessCodec, err := jwt.NewCodec(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.AccessTokenTTL(), jwt.TokenTypeAccess)
	if err != nil {
		return err
	}
	refreshCodec, err := jwt.NewCodec(cfg.JWT.RefreshSecret, cfg.JWT.Issuer, cfg.RefreshTokenTTL(), jwt.TokenTypeRefresh)
	if err != nil {
		return err
	}

	// Initialize repositories
	stores := repositories.NewStores(db)
	userRepo := repositories.NewUserRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)
	friendshipRepo := repositories.NewFriendshipRepository(db)
	deviceRepo := repositories.NewDeviceRepository(db)

	sender := deps.Sender
	if sender == nil {
		sender = services.NewLogSender()
	}

	// Initialize services
	verifier := services.NewCredentialVerifier(deps.Providers, cfg.OAuth.Timeout)
	authenticator := services.NewAuthenticator(accessCodec, userRepo)
	authService := services.NewAuthService(userRepo, refreshTokenRepo, stores, verifier, accessCodec, refreshCodec)
	userService := services.NewUserService(userRepo, stores)
	catalog := services.NewCatalogService(stores)
	people := services.NewPeopleService(stores)
	posts := services.NewPostService(stores, markdown.NewRenderer())
	devices := services.NewDeviceService(stores)
	friendships := services.NewFriendshipService(friendshipRepo, stores)
	notifications := services.NewNotificationService(stores, deviceRepo, sender)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(db, cfg.App.Mode)
	authHandler := handlers.NewAuthHandler(authService, userService)
	userHandler := handlers.NewUserHandler(userService)
	postHandler := handlers.NewPostHandler(posts)
	friendshipHandler := handlers.NewFriendshipHandler(friendships)
	notificationHandler := handlers.NewNotificationHandler(notifications)

	authenticate := middleware.Authenticate(authenticator)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	apiV1 := app.Group("/api/v1")
	apiV1.Get("/", healthHandler.APIInfo)

	setupAuthRoutes(apiV1.Group("/auth", middleware.NoCacheHeaders()), authHandler, authenticate)
	setupUserRoutes(apiV1.Group("/users", authenticate, middleware.Authorize(admin)), userHandler)

	universities := apiV1.Group("/universities", authenticate)
	setupUniversityRoutes(universities, catalog, people, posts, postHandler, notifications, notificationHandler)

	students := apiV1.Group("/students/:studentId", authenticate, middleware.Authorize(studentOwning),
		middleware.PrivateCacheHeaders(privateCacheMaxAge))
	setupStudentRoutes(students, people, devices, friendshipHandler)

	apiV1.Get("/posts", authenticate, middleware.Authorize(admin, memberOwningQuery), postHandler.Search)

	return nil
}

// setupAuthRoutes configures authentication routes
func setupAuthRoutes(router fiber.Router, h *handlers.AuthHandler, authenticate fiber.Handler) {
	// Public routes
	router.Post("/register", middleware.AuthRateLimiter(), h.Register)
	router.Post("/login", middleware.AuthRateLimiter(), h.Login)
	router.Post("/login/:provider", middleware.AuthRateLimiter(), h.LoginProvider)
	router.Post("/refresh", middleware.AuthRateLimiter(), h.RefreshToken)
	router.Post("/logout", h.Logout)

	// Protected routes
	router.Get("/me", authenticate, middleware.RequireAuth(), h.Me)
	router.Put("/me", authenticate, middleware.RequireAuth(), h.UpdateMe)
	router.Put("/me/password", middleware.StrictRateLimiter(), authenticate, middleware.RequireAuth(), h.ChangePassword)
	router.Post("/logout-all", authenticate, middleware.RequireAuth(), h.LogoutAll)
}

// setupUserRoutes configures user management routes (Admin only)
func setupUserRoutes(router fiber.Router, h *handlers.UserHandler) {
	router.Get("/", h.ListUsers)
	router.Post("/", h.CreateUser)
	router.Get("/:userId", h.GetUser)
	router.Put("/:userId", h.UpdateUser)
	router.Delete("/:userId", h.DeleteUser)
}

// setupUniversityRoutes configures the university tree
func setupUniversityRoutes(
	router fiber.Router,
	catalog *services.CatalogService,
	people *services.PeopleService,
	posts *services.PostService,
	postHandler *handlers.PostHandler,
	notifications *services.NotificationService,
	notificationHandler *handlers.NotificationHandler,
) {
	uni := handlers.UniversityScope
	fac := handlers.FacultyScope
	prog := handlers.ProgramScope
	mod := handlers.ModuleScope

	universities := handlers.NewResourceHandler(catalog.Universities, "universityId")
	router.Get("/", middleware.RequireAuth(), universities.List)
	router.Get("/:universityId", middleware.RequireAuth(), universities.Get)
	router.Post("/", middleware.Authorize(admin), universities.Create)
	router.Put("/:universityId", middleware.Authorize(universityWriters...), universities.Update)
	router.Delete("/:universityId", middleware.Authorize(admin), universities.Delete)

	base := "/:universityId"
	faculties := base + "/faculties"
	programs := faculties + "/:facultyId/programs"
	modules := programs + "/:programId/modules"
	documents := modules + "/:moduleId/documents"

	mount(router, faculties, "facultyId",
		handlers.NewResourceHandler(catalog.Faculties, "facultyId", uni), universityReaders, universityWriters)
	mount(router, programs, "programId",
		handlers.NewResourceHandler(catalog.Programs, "programId", uni, fac), universityReaders, universityWriters)
	mount(router, modules, "moduleId",
		handlers.NewResourceHandler(catalog.Modules, "moduleId", uni, fac, prog), universityReaders, universityWriters)
	mount(router, documents, "documentId",
		handlers.NewResourceHandler(catalog.Documents, "documentId", uni, fac, prog, mod), universityReaders, universityStaff)
	mount(router, base+"/buildings", "buildingId",
		handlers.NewResourceHandler(catalog.Buildings, "buildingId", uni), universityReaders, universityWriters)
	mount(router, base+"/students", "studentId",
		handlers.NewResourceHandler(people.Students, "studentId", uni), universityStaff, universityWriters)
	mount(router, base+"/employees", "employeeId",
		handlers.NewResourceHandler(people.Employees, "employeeId", uni), universityWriters, universityWriters)

	// Posts list supports title and date filters
	postResource := handlers.NewResourceHandler(posts.CRUD, "postId", uni)
	router.Get(base+"/posts", middleware.Authorize(universityReaders...), postHandler.List)
	router.Get(base+"/posts/:postId", middleware.Authorize(universityReaders...), postResource.Get)
	router.Post(base+"/posts", middleware.Authorize(universityStaff...), postResource.Create)
	router.Put(base+"/posts/:postId", middleware.Authorize(universityStaff...), postResource.Update)
	router.Delete(base+"/posts/:postId", middleware.Authorize(universityStaff...), postResource.Delete)

	// Notifications are sent, never edited
	notificationResource := handlers.NewResourceHandler(notifications.CRUD, "notificationId", uni)
	router.Get(base+"/notifications", middleware.Authorize(universityReaders...), notificationResource.List)
	router.Get(base+"/notifications/:notificationId", middleware.Authorize(universityReaders...), notificationResource.Get)
	router.Post(base+"/notifications", middleware.Authorize(universityStaff...), notificationHandler.Send)
}

// setupStudentRoutes configures the routes a student uses on their own profile
func setupStudentRoutes(
	router fiber.Router,
	people *services.PeopleService,
	devices *services.CRUD[models.Device, services.DeviceInput, *models.DeviceResponse],
	h *handlers.FriendshipHandler,
) {
	self := handlers.NewResourceHandler(people.Students, "studentId")
	router.Get("/", self.Get)
	router.Put("/", self.Update)

	router.Get("/friends", h.Friends)
	router.Post("/friends/:friendId", h.Request)
	router.Put("/friends/:friendId", h.Accept)
	router.Delete("/friends/:friendId", h.Remove)
	router.Get("/friend-requests", h.Requests)
	router.Delete("/friend-requests/:friendId", h.Decline)

	deviceResource := handlers.NewResourceHandler(devices, "deviceId", handlers.StudentScope)
	router.Get("/devices", deviceResource.List)
	router.Post("/devices", deviceResource.Create)
	router.Delete("/devices/:deviceId", deviceResource.Delete)
}

// mount registers list, create, get, update and delete routes of a nested resource
func mount[E any, In any, Out any](router fiber.Router, path, idParam string, h *handlers.ResourceHandler[E, In, Out], read, write []services.Rule) {
	item := path + "/:" + idParam
	router.Get(path, middleware.Authorize(read...), h.List)
	router.Get(item, middleware.Authorize(read...), h.Get)
	router.Post(path, middleware.Authorize(write...), h.Create)
	router.Put(item, middleware.Authorize(write...), h.Update)
	router.Delete(item, middleware.Authorize(write...), h.Delete)
}
