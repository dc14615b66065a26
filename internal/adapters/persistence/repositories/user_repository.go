package repositories

import (
	"context"
	"strings"

	"unihub/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// userRepository keeps user accounts; students link to their profile row
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// CreateWithStudent creates a student profile and its linked user in one transaction
func (r *userRepository) CreateWithStudent(ctx context.Context, user *models.User, student *models.Student) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(student).Error; err != nil {
			return err
		}
		user.StudentID = &student.ID
		user.UniversityID = &student.UniversityID
		return tx.Create(user).Error
	})
}

// findOne loads the single user matching query
func (r *userRepository) findOne(ctx context.Context, query string, arg interface{}) (*models.User, error) {
	user := new(models.User)
	if err := r.db.WithContext(ctx).First(user, query, arg).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return r.findOne(ctx, "id = ?", id)
}

// GetByEmail is the lookup behind every authenticated request
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, "email = ?", email)
}

// Update updates a user
func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

// Delete deletes a user; refresh tokens go with it
func (r *userRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&models.RefreshToken{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, id).Error
	})
}

// List pages users by id, optionally narrowed to an email or name substring
func (r *userRepository) List(ctx context.Context, search string, offset, limit int) ([]*models.User, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.User{})
	if search != "" {
		like := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(email) LIKE ? OR LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ?", like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	users := make([]*models.User, 0, limit)
	if total > int64(offset) {
		if err := query.Order("id ASC").Offset(offset).Limit(limit).Find(&users).Error; err != nil {
			return nil, 0, err
		}
	}
	return users, total, nil
}

// ExistsByEmail reports whether an account already uses email
func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}
