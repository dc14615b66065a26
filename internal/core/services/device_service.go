package services

import (
	"unihub/internal/adapters/persistence/models"
	"unihub/internal/adapters/persistence/repositories"
	"unihub/internal/core/domain"
)

// DeviceInput represents device registration input
type DeviceInput struct {
	Token    string `json:"token" validate:"required,max=255"`
	Platform string `json:"platform" validate:"required,oneof=IOS ANDROID"`
}

// NewDeviceService creates the CRUD service for a student's push devices
func NewDeviceService(stores *repositories.Stores) *CRUD[models.Device, DeviceInput, *models.DeviceResponse] {
	return &CRUD[models.Device, DeviceInput, *models.DeviceResponse]{
		Name:   "device",
		Store:  stores.Devices,
		Parent: &Parent{Name: "student", Column: ColStudent, Store: stores.Students},
		Apply: func(d *models.Device, in *DeviceInput) error {
			if in.Platform != domain.PlatformIOS && in.Platform != domain.PlatformAndroid {
				return domain.Validation("platform.invalid.value")
			}
			d.Token = in.Token
			d.Platform = in.Platform
			return nil
		},
		Bind: func(d *models.Device, sc repositories.Scope) {
			bindID(&d.StudentID, sc, ColStudent)
		},
		ToOutput: (*models.Device).ToResponse,
	}
}
