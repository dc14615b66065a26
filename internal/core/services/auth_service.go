package services

import (
	"context"
	"log/slog"
	"strings"

	"unihub/internal/adapters/persistence/models"
	"unihub/internal/adapters/persistence/repositories"
	"unihub/internal/core/domain"
	"unihub/internal/pkg/jwt"
	"unihub/internal/pkg/logger"
	"unihub/internal/pkg/password"
	"unihub/internal/pkg/validation"
)

// AuthService handles authentication business logic
type AuthService struct {
	userRepo         repositories.UserRepository
	refreshTokenRepo repositories.RefreshTokenRepository
	universities     repositories.Store[models.University]
	verifier         *CredentialVerifier
	accessCodec      *jwt.Codec
	refreshCodec     *jwt.Codec
	hash             func(string) (string, error)
	log              *slog.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo repositories.UserRepository,
	refreshTokenRepo repositories.RefreshTokenRepository,
	stores *repositories.Stores,
	verifier *CredentialVerifier,
	accessCodec *jwt.Codec,
	refreshCodec *jwt.Codec,
) *AuthService {
	return &AuthService{
		userRepo:         userRepo,
		refreshTokenRepo: refreshTokenRepo,
		universities:     stores.Universities,
		verifier:         verifier,
		accessCodec:      accessCodec,
		refreshCodec:     refreshCodec,
		hash:             password.Hash,
		log:              logger.WithComponent("auth"),
	}
}

// RegisterInput represents student self-registration input
type RegisterInput struct {
	UniversityID uint   `json:"universityId" validate:"required"`
	IndexNumber  string `json:"indexNumber" validate:"required,max=30"`
	FirstName    string `json:"firstName" validate:"required,max=100"`
	LastName     string `json:"lastName" validate:"required,max=100"`
	Email        string `json:"email" validate:"required,email,max=100"`
	Password     string `json:"password" validate:"required,min=8,max=72"`
	StudyYear    int    `json:"studyYear" validate:"gte=0,lte=10"`
}

// LoginInput represents login input
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ExternalLoginInput represents login with an identity provider token
type ExternalLoginInput struct {
	Token string `json:"token" validate:"required"`
}

// RefreshInput carries a refresh token
type RefreshInput struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// TokenPair represents access and refresh tokens
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	User         *models.UserResponse `json:"user"`
	AccessToken  string               `json:"accessToken"`
	RefreshToken string               `json:"refreshToken"`
	TokenType    string               `json:"tokenType"`
	ExpiresIn    int64                `json:"expiresIn"`
}

// Register creates a student profile and its user account
func (s *AuthService) Register(ctx context.Context, input *RegisterInput) (*AuthResponse, error) {
	// 1. Validate input
	if err := validation.Struct(input); err != nil {
		return nil, err
	}
	email := strings.ToLower(strings.TrimSpace(input.Email))

	// 2. Check the university exists
	exists, err := s.universities.ExistsScoped(ctx, input.UniversityID, nil)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.NotFound("university")
	}

	// 3. Check if email already exists
	taken, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.Conflict("user")
	}

	// 4. Hash password
	hashedPassword, err := s.hash(input.Password)
	if err != nil {
		return nil, err
	}

	// 5. Create student and user together
	student := &models.Student{
		UniversityID: input.UniversityID,
		IndexNumber:  input.IndexNumber,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        email,
		StudyYear:    input.StudyYear,
	}
	user := &models.User{
		Email:     email,
		Password:  hashedPassword,
		Role:      string(domain.RoleStudent),
		FirstName: input.FirstName,
		LastName:  input.LastName,
		IsActive:  true,
	}
	if err := s.userRepo.CreateWithStudent(ctx, user, student); err != nil {
		if repositories.IsDuplicateKey(err) {
			return nil, domain.Conflict("user")
		}
		return nil, err
	}

	s.log.Info("student registered", "user_id", user.ID, "student_id", student.ID)

	// 6. Issue tokens
	return s.issue(ctx, user)
}

// Login authenticates a user with email and password
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*AuthResponse, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	// 1. Find user by email
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(input.Email)))
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	// 2. Verify password
	if !s.verifier.VerifyPassword(input.Password, user.Password) {
		return nil, domain.ErrInvalidCredentials
	}

	// 3. Check if user is active
	if !user.IsActive {
		return nil, domain.ErrUserInactive
	}

	s.log.Info("user logged in", "user_id", user.ID)
	return s.issue(ctx, user)
}

// LoginExternal authenticates a known user through an identity provider
func (s *AuthService) LoginExternal(ctx context.Context, provider domain.Provider, input *ExternalLoginInput) (*AuthResponse, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	profile, err := s.verifier.VerifyExternalIdentity(ctx, provider, input.Token)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(profile.Email))
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, domain.ErrUserInactive
	}

	// Refresh display fields from the provider profile
	if profile.FirstName != "" {
		user.FirstName = profile.FirstName
	}
	if profile.LastName != "" {
		user.LastName = profile.LastName
	}
	if profile.PictureURL != "" {
		user.PictureURL = profile.PictureURL
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info("user logged in", "user_id", user.ID, "provider", provider)
	return s.issue(ctx, user)
}

// RefreshToken rotates a refresh token and issues a new pair
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	// 1. Validate refresh token JWT
	claims, err := s.refreshCodec.Parse(refreshToken)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}

	// 2. Find unrevoked token in DB by hash
	storedToken, err := s.refreshTokenRepo.GetByTokenHash(ctx, password.HashToken(refreshToken))
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, domain.ErrInvalidToken
		}
		return nil, err
	}
	if storedToken.IsExpired() {
		return nil, domain.ErrInvalidToken
	}

	// 3. Get user and check it still owns the token
	user, err := s.userRepo.GetByEmail(ctx, claims.Subject)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, domain.ErrInvalidToken
		}
		return nil, err
	}
	if user.ID != storedToken.UserID {
		return nil, domain.ErrInvalidToken
	}
	if !user.IsActive {
		return nil, domain.ErrUserInactive
	}

	// 4. Generate new tokens and rotate
	tokens, err := s.generateTokens(user)
	if err != nil {
		return nil, err
	}
	next := s.newRefreshToken(user.ID, tokens.RefreshToken)
	if err := s.refreshTokenRepo.Rotate(ctx, storedToken, next); err != nil {
		if repositories.IsNotFound(err) {
			return nil, domain.ErrInvalidToken
		}
		return nil, err
	}

	s.log.Info("token refreshed", "user_id", user.ID)
	return s.response(user, tokens), nil
}

// Logout revokes the refresh token
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if err := s.refreshTokenRepo.RevokeByTokenHash(ctx, password.HashToken(refreshToken)); err != nil {
		return err
	}
	s.log.Info("user logged out")
	return nil
}

// LogoutAll revokes all refresh tokens for a user
func (s *AuthService) LogoutAll(ctx context.Context, userID uint) error {
	if err := s.refreshTokenRepo.RevokeAllByUserID(ctx, userID); err != nil {
		return err
	}
	s.log.Info("all sessions revoked", "user_id", userID)
	return nil
}

// issue generates and stores a fresh token pair
func (s *AuthService) issue(ctx context.Context, user *models.User) (*AuthResponse, error) {
	tokens, err := s.generateTokens(user)
	if err != nil {
		return nil, err
	}
	if err := s.refreshTokenRepo.Create(ctx, s.newRefreshToken(user.ID, tokens.RefreshToken)); err != nil {
		return nil, err
	}
	return s.response(user, tokens), nil
}

// generateTokens generates access and refresh tokens
func (s *AuthService) generateTokens(user *models.User) (*TokenPair, error) {
	accessToken, err := s.accessCodec.Issue(user.Email, user.Role)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.refreshCodec.Issue(user.Email, user.Role)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func (s *AuthService) newRefreshToken(userID uint, refreshToken string) *models.RefreshToken {
	return &models.RefreshToken{
		UserID:    userID,
		TokenHash: password.HashToken(refreshToken),
		ExpiresAt: s.refreshCodec.ExpiresAt(),
	}
}

func (s *AuthService) response(user *models.User, tokens *TokenPair) *AuthResponse {
	return &AuthResponse{
		User:         user.ToResponse(),
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		TokenType:    strings.TrimSpace(bearerPrefix),
		ExpiresIn:    int64(s.accessCodec.TTL().Seconds()),
	}
}
