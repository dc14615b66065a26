package repositories

import (
	"context"
	"time"

	"unihub/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// refreshTokenRepository stores hashed refresh tokens; rows are revoked, never updated otherwise
type refreshTokenRepository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewRefreshTokenRepository creates a new refresh token repository
func NewRefreshTokenRepository(db *gorm.DB) RefreshTokenRepository {
	return &refreshTokenRepository{db: db, now: time.Now}
}

// unrevoked narrows q to tokens that were not revoked yet
func unrevoked(q *gorm.DB) *gorm.DB {
	return q.Where("revoked_at IS NULL")
}

// revoke stamps revoked_at on the unrevoked rows matching where
func (r *refreshTokenRepository) revoke(tx *gorm.DB, query string, arg interface{}) *gorm.DB {
	revokedAt := r.now()
	return tx.Model(&models.RefreshToken{}).
		Scopes(unrevoked).
		Where(query, arg).
		Update("revoked_at", &revokedAt)
}

func (r *refreshTokenRepository) Create(ctx context.Context, token *models.RefreshToken) error {
	return r.db.WithContext(ctx).Omit("User").Create(token).Error
}

// GetByTokenHash finds an unrevoked token; expiry is checked by the caller
func (r *refreshTokenRepository) GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error) {
	token := new(models.RefreshToken)
	if err := r.db.WithContext(ctx).Scopes(unrevoked).First(token, "token_hash = ?", tokenHash).Error; err != nil {
		return nil, err
	}
	return token, nil
}

// Rotate revokes old and stores next atomically; a token already revoked by a concurrent refresh loses
func (r *refreshTokenRepository) Rotate(ctx context.Context, old *models.RefreshToken, next *models.RefreshToken) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := r.revoke(tx, "id = ?", old.ID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Omit("User").Create(next).Error
	})
}

// RevokeByTokenHash is idempotent: an unknown or already revoked hash is not an error
func (r *refreshTokenRepository) RevokeByTokenHash(ctx context.Context, tokenHash string) error {
	return r.revoke(r.db.WithContext(ctx), "token_hash = ?", tokenHash).Error
}

func (r *refreshTokenRepository) RevokeAllByUserID(ctx context.Context, userID uint) error {
	return r.revoke(r.db.WithContext(ctx), "user_id = ?", userID).Error
}

// DeleteExpired purges expired and revoked rows and reports how many went
func (r *refreshTokenRepository) DeleteExpired(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expires_at < ? OR revoked_at IS NOT NULL", r.now()).
		Delete(&models.RefreshToken{})
	return result.RowsAffected, result.Error
}

// CountActiveByUserID counts the sessions a user can still refresh
func (r *refreshTokenRepository) CountActiveByUserID(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.RefreshToken{}).
		Scopes(unrevoked).
		Where("user_id = ? AND expires_at > ?", userID, r.now()).
		Count(&count).Error
	return count, err
}
