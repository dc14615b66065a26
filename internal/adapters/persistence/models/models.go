package models

import (
	"time"
)

// ============================================================
// Auth & User Tables
// ============================================================

// User represents users table
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Password     string    `gorm:"size:255" json:"-"`
	Role         string    `gorm:"size:30;not null;index" json:"role"`
	FirstName    string    `gorm:"size:100" json:"firstName"`
	LastName     string    `gorm:"size:100" json:"lastName"`
	PictureURL   string    `gorm:"size:500" json:"pictureUrl"`
	UniversityID *uint     `gorm:"index" json:"universityId"`
	StudentID    *uint     `gorm:"uniqueIndex" json:"studentId"`
	EmployeeID   *uint     `gorm:"uniqueIndex" json:"employeeId"`
	IsActive     bool      `gorm:"default:true" json:"isActive"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}

// UserResponse DTO
type UserResponse struct {
	ID           uint      `json:"id"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	PictureURL   string    `json:"pictureUrl,omitempty"`
	UniversityID *uint     `json:"universityId"`
	StudentID    *uint     `json:"studentId"`
	EmployeeID   *uint     `json:"employeeId"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:           u.ID,
		Email:        u.Email,
		Role:         u.Role,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		PictureURL:   u.PictureURL,
		UniversityID: u.UniversityID,
		StudentID:    u.StudentID,
		EmployeeID:   u.EmployeeID,
		IsActive:     u.IsActive,
		CreatedAt:    u.CreatedAt,
	}
}

// RefreshToken represents refresh_tokens table
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"userId"`
	TokenHash string     `gorm:"size:255;not null;uniqueIndex" json:"-"`
	ExpiresAt time.Time  `gorm:"not null;index" json:"expiresAt"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	RevokedAt *time.Time `gorm:"index" json:"revokedAt"`
	User      User       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// All returns every model managed by AutoMigrate, parents first
func All() []interface{} {
	return []interface{}{
		&University{},
		&Faculty{},
		&Program{},
		&Module{},
		&Document{},
		&Post{},
		&Building{},
		&Student{},
		&Employee{},
		&User{},
		&RefreshToken{},
		&Friendship{},
		&Device{},
		&Notification{},
	}
}
