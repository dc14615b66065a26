package repositories

import (
	"context"

	"unihub/internal/adapters/persistence/models"
)

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	CreateWithStudent(ctx context.Context, user *models.User, student *models.Student) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, search string, offset, limit int) ([]*models.User, int64, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// RefreshTokenRepository defines refresh token repository interface
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error)
	Rotate(ctx context.Context, old *models.RefreshToken, next *models.RefreshToken) error
	RevokeByTokenHash(ctx context.Context, tokenHash string) error
	RevokeAllByUserID(ctx context.Context, userID uint) error
	DeleteExpired(ctx context.Context) (int64, error)
	CountActiveByUserID(ctx context.Context, userID uint) (int64, error)
}

// FriendshipRepository defines friendship repository interface
type FriendshipRepository interface {
	Create(ctx context.Context, friendship *models.Friendship) error
	FindPending(ctx context.Context, requesterID, receiverID uint) (*models.Friendship, error)
	Accept(ctx context.Context, pending *models.Friendship) error
	DeletePair(ctx context.Context, studentID, friendID uint) error
	DeletePending(ctx context.Context, requesterID, receiverID uint) error
	FriendsOf(studentID uint) Filter
	RequestersOf(studentID uint) Filter
}

// DeviceRepository defines queries over registered devices beyond plain CRUD
type DeviceRepository interface {
	TokensByUniversity(ctx context.Context, universityID uint) ([]string, error)
}
