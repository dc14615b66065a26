package services

import (
	"context"
	"strings"

	"unihub/internal/adapters/persistence/models"
	"unihub/internal/adapters/persistence/repositories"
	"unihub/internal/core/domain"
	"unihub/internal/pkg/logger"
	"unihub/internal/pkg/pagination"
	"unihub/internal/pkg/password"
	"unihub/internal/pkg/validation"
)

// User service errors
var (
	ErrOldPasswordWrong    = domain.IllegalArgument("oldPassword.wrong")
	ErrCannotDeleteSelf    = domain.IllegalArgument("user.delete.self")
	ErrCannotChangeOwnRole = domain.IllegalArgument("user.change.own.role")
	ErrUniversityRequired  = domain.IllegalArgument("universityId.must.not.be.null")
	ErrEmployeeRequired    = domain.IllegalArgument("employeeId.must.not.be.null")
)

// UserService handles user account management
type UserService struct {
	userRepo     repositories.UserRepository
	universities repositories.Store[models.University]
	employees    repositories.Store[models.Employee]
	hash         func(string) (string, error)
}

// NewUserService creates a new user service
func NewUserService(userRepo repositories.UserRepository, stores *repositories.Stores) *UserService {
	return &UserService{
		userRepo:     userRepo,
		universities: stores.Universities,
		employees:    stores.Employees,
		hash:         password.Hash,
	}
}

// CreateUserInput represents staff account creation input (students register themselves)
type CreateUserInput struct {
	Email        string `json:"email" validate:"required,email,max=100"`
	Password     string `json:"password" validate:"required,min=8,max=72"`
	Role         string `json:"role" validate:"required,oneof=EMPLOYEE ADMINISTRATOR UNIVERSITY_ADMINISTRATOR"`
	FirstName    string `json:"firstName" validate:"max=100"`
	LastName     string `json:"lastName" validate:"max=100"`
	UniversityID *uint  `json:"universityId"`
	EmployeeID   *uint  `json:"employeeId"`
}

// UpdateUserByAdminInput represents update user input (for admin)
type UpdateUserByAdminInput struct {
	Role     *string `json:"role" validate:"omitempty,oneof=STUDENT EMPLOYEE ADMINISTRATOR UNIVERSITY_ADMINISTRATOR"`
	IsActive *bool   `json:"isActive"`
}

// UpdateProfileInput represents update profile input (for self)
type UpdateProfileInput struct {
	FirstName  *string `json:"firstName" validate:"omitempty,max=100"`
	LastName   *string `json:"lastName" validate:"omitempty,max=100"`
	PictureURL *string `json:"pictureUrl" validate:"omitempty,url,max=500"`
}

// ChangePasswordInput represents change password input
type ChangePasswordInput struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=8,max=72"`
}

func (s *UserService) get(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, domain.NotFound("user")
		}
		return nil, err
	}
	return user, nil
}

// CreateUser creates a staff account
func (s *UserService) CreateUser(ctx context.Context, input *CreateUserInput) (*models.UserResponse, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}
	role, _ := domain.ParseRole(input.Role)

	user := &models.User{
		Email:     strings.ToLower(strings.TrimSpace(input.Email)),
		Role:      string(role),
		FirstName: input.FirstName,
		LastName:  input.LastName,
		IsActive:  true,
	}

	// Global administrators belong to no university
	if role != domain.RoleAdministrator {
		if input.UniversityID == nil {
			return nil, ErrUniversityRequired
		}
		exists, err := s.universities.ExistsScoped(ctx, *input.UniversityID, nil)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, domain.NotFound("university")
		}
		user.UniversityID = input.UniversityID
	}

	if role == domain.RoleEmployee {
		if input.EmployeeID == nil {
			return nil, ErrEmployeeRequired
		}
		exists, err := s.employees.ExistsScoped(ctx, *input.EmployeeID, repositories.Scope{ColUniversity: *input.UniversityID})
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, domain.NotFound("employee")
		}
		user.EmployeeID = input.EmployeeID
	}

	hashed, err := s.hash(input.Password)
	if err != nil {
		return nil, err
	}
	user.Password = hashed

	if err := s.userRepo.Create(ctx, user); err != nil {
		if repositories.IsDuplicateKey(err) {
			return nil, domain.Conflict("user")
		}
		return nil, err
	}

	logger.WithComponent("users").Info("user created", "user_id", user.ID, "role", user.Role)
	return user.ToResponse(), nil
}

// ListUsers lists all users with pagination
func (s *UserService) ListUsers(ctx context.Context, search string, params pagination.Params) (*pagination.Page[*models.UserResponse], error) {
	users, total, err := s.userRepo.List(ctx, strings.TrimSpace(search), params.Offset, params.Size)
	if err != nil {
		return nil, err
	}

	userResponses := make([]*models.UserResponse, len(users))
	for i, user := range users {
		userResponses[i] = user.ToResponse()
	}
	return pagination.NewPage(userResponses, params, total), nil
}

// GetUserByID gets a user by ID
func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.UserResponse, error) {
	user, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return user.ToResponse(), nil
}

// UpdateUserByAdmin updates a user by admin
func (s *UserService) UpdateUserByAdmin(ctx context.Context, id uint, adminID uint, input *UpdateUserByAdminInput) (*models.UserResponse, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	user, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	// Prevent admin from changing own role
	if id == adminID && input.Role != nil {
		return nil, ErrCannotChangeOwnRole
	}

	if input.Role != nil {
		user.Role = *input.Role
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user.ToResponse(), nil
}

// DeleteUser deletes a user account; the student or employee profile is kept
func (s *UserService) DeleteUser(ctx context.Context, id uint, adminID uint) error {
	// Prevent admin from deleting self
	if id == adminID {
		return ErrCannotDeleteSelf
	}

	if _, err := s.get(ctx, id); err != nil {
		return err
	}
	return s.userRepo.Delete(ctx, id)
}

// GetProfile gets own profile
func (s *UserService) GetProfile(ctx context.Context, userID uint) (*models.UserResponse, error) {
	return s.GetUserByID(ctx, userID)
}

// UpdateProfile updates own display fields
func (s *UserService) UpdateProfile(ctx context.Context, userID uint, input *UpdateProfileInput) (*models.UserResponse, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	user, err := s.get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.PictureURL != nil {
		user.PictureURL = *input.PictureURL
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user.ToResponse(), nil
}

// ChangePassword changes user's password
func (s *UserService) ChangePassword(ctx context.Context, userID uint, input *ChangePasswordInput) error {
	if err := validation.Struct(input); err != nil {
		return err
	}

	user, err := s.get(ctx, userID)
	if err != nil {
		return err
	}

	// Verify old password
	if !password.Verify(input.OldPassword, user.Password) {
		return ErrOldPasswordWrong
	}

	hashedPassword, err := s.hash(input.NewPassword)
	if err != nil {
		return err
	}

	user.Password = hashedPassword
	return s.userRepo.Update(ctx, user)
}
