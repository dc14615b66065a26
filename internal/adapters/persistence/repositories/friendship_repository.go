package repositories

import (
	"context"

	"unihub/internal/adapters/persistence/models"
	"unihub/internal/core/domain"

	"gorm.io/gorm"
)

// friendshipRepository implements FriendshipRepository interface
type friendshipRepository struct {
	db *gorm.DB
}

// NewFriendshipRepository creates a new friendship repository
func NewFriendshipRepository(db *gorm.DB) FriendshipRepository {
	return &friendshipRepository{db: db}
}

// Create creates a friendship row
func (r *friendshipRepository) Create(ctx context.Context, friendship *models.Friendship) error {
	return r.db.WithContext(ctx).Create(friendship).Error
}

// FindPending gets the pending request sent by requesterID to receiverID
func (r *friendshipRepository) FindPending(ctx context.Context, requesterID, receiverID uint) (*models.Friendship, error) {
	var f models.Friendship
	err := r.db.WithContext(ctx).
		Where("student_id = ? AND friend_id = ? AND status = ?", requesterID, receiverID, domain.FriendshipRequested).
		First(&f).Error
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// Accept marks a pending request accepted and inserts the reverse row
func (r *friendshipRepository) Accept(ctx context.Context, pending *models.Friendship) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Friendship{}).
			Where("id = ? AND status = ?", pending.ID, domain.FriendshipRequested).
			Update("status", domain.FriendshipAccepted)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		pending.Status = domain.FriendshipAccepted

		// A crossed request from the receiver is folded into the accepted pair
		if err := tx.Where("student_id = ? AND friend_id = ?", pending.FriendID, pending.StudentID).
			Delete(&models.Friendship{}).Error; err != nil {
			return err
		}
		return tx.Create(&models.Friendship{
			StudentID: pending.FriendID,
			FriendID:  pending.StudentID,
			Status:    domain.FriendshipAccepted,
		}).Error
	})
}

// DeletePair deletes both directions of a friendship, only when both rows exist
func (r *friendshipRepository) DeletePair(ctx context.Context, studentID, friendID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		pair := tx.Where("(student_id = ? AND friend_id = ?) OR (student_id = ? AND friend_id = ?)",
			studentID, friendID, friendID, studentID)

		var count int64
		if err := pair.Session(&gorm.Session{}).Model(&models.Friendship{}).Count(&count).Error; err != nil {
			return err
		}
		if count != 2 {
			return gorm.ErrRecordNotFound
		}
		return pair.Session(&gorm.Session{}).Delete(&models.Friendship{}).Error
	})
}

// DeletePending declines a pending request sent by requesterID to receiverID
func (r *friendshipRepository) DeletePending(ctx context.Context, requesterID, receiverID uint) error {
	result := r.db.WithContext(ctx).
		Where("student_id = ? AND friend_id = ? AND status = ?", requesterID, receiverID, domain.FriendshipRequested).
		Delete(&models.Friendship{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// FriendsOf narrows a student query to accepted friends of studentID
func (r *friendshipRepository) FriendsOf(studentID uint) Filter {
	return func(q *gorm.DB) *gorm.DB {
		sub := r.db.Model(&models.Friendship{}).
			Select("friend_id").
			Where("student_id = ? AND status = ?", studentID, domain.FriendshipAccepted)
		return q.Where("id IN (?)", sub)
	}
}

// RequestersOf narrows a student query to students with a pending request to studentID
func (r *friendshipRepository) RequestersOf(studentID uint) Filter {
	return func(q *gorm.DB) *gorm.DB {
		sub := r.db.Model(&models.Friendship{}).
			Select("student_id").
			Where("friend_id = ? AND status = ?", studentID, domain.FriendshipRequested)
		return q.Where("id IN (?)", sub)
	}
}
