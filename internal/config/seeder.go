package config

import (
	"context"
	"log/slog"

	"gorm.io/gorm"

	"unihub/internal/adapters/persistence/models"
	"unihub/internal/core/domain"
	"unihub/internal/core/services"
	"unihub/internal/pkg/logger"
)

// Seeder handles database seeding
type Seeder struct {
	db    *gorm.DB
	users *services.UserService
	log   *slog.Logger
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB, users *services.UserService) *Seeder {
	return &Seeder{db: db, users: users, log: logger.WithComponent("seeder")}
}

// Run executes all seeders
func (s *Seeder) Run(ctx context.Context, cfg BootstrapConfig) error {
	if cfg.AdminEmail == "" {
		return nil
	}
	return s.seedAdminUser(ctx, cfg.AdminEmail, cfg.AdminPassword)
}

// seedAdminUser creates the first global administrator when none exists
func (s *Seeder) seedAdminUser(ctx context.Context, email, password string) error {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.User{}).
		Where("role = ?", string(domain.RoleAdministrator)).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	admin, err := s.users.CreateUser(ctx, &services.CreateUserInput{
		Email:    email,
		Password: password,
		Role:     string(domain.RoleAdministrator),
	})
	if err != nil {
		return err
	}

	s.log.Info("admin user created", "user_id", admin.ID, "email", admin.Email)
	return nil
}
