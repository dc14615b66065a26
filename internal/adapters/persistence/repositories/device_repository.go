package repositories

import (
	"context"

	"unihub/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// deviceRepository implements DeviceRepository interface
type deviceRepository struct {
	db *gorm.DB
}

// NewDeviceRepository creates a new device repository
func NewDeviceRepository(db *gorm.DB) DeviceRepository {
	return &deviceRepository{db: db}
}

// TokensByUniversity returns the push tokens of every device owned by a student of the university
func (r *deviceRepository) TokensByUniversity(ctx context.Context, universityID uint) ([]string, error) {
	var tokens []string
	err := r.db.WithContext(ctx).
		Model(&models.Device{}).
		Joins("JOIN students ON students.id = devices.student_id").
		Where("students.university_id = ?", universityID).
		Order("devices.id ASC").
		Pluck("devices.token", &tokens).Error
	return tokens, err
}
