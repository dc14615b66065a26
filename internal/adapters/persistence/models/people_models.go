package models

import (
	"time"

	"gorm.io/datatypes"
)

// ============================================================
// Students, Employees & Social
// ============================================================

// Student represents students table
type Student struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UniversityID uint      `gorm:"not null;uniqueIndex:idx_student_university_index,priority:1" json:"universityId"`
	IndexNumber  string    `gorm:"size:30;not null;uniqueIndex:idx_student_university_index,priority:2" json:"indexNumber"`
	FirstName    string    `gorm:"size:100;not null" json:"firstName"`
	LastName     string    `gorm:"size:100;not null" json:"lastName"`
	Email        string    `gorm:"size:100;not null;uniqueIndex" json:"email"`
	StudyYear    int       `json:"studyYear"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Student) TableName() string {
	return "students"
}

// StudentResponse DTO
type StudentResponse struct {
	ID           uint   `json:"id"`
	UniversityID uint   `json:"universityId"`
	IndexNumber  string `json:"indexNumber"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Email        string `json:"email"`
	StudyYear    int    `json:"studyYear"`
}

func (s *Student) ToResponse() *StudentResponse {
	return &StudentResponse{
		ID:           s.ID,
		UniversityID: s.UniversityID,
		IndexNumber:  s.IndexNumber,
		FirstName:    s.FirstName,
		LastName:     s.LastName,
		Email:        s.Email,
		StudyYear:    s.StudyYear,
	}
}

// Employee represents employees table
type Employee struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UniversityID uint      `gorm:"not null;index" json:"universityId"`
	FirstName    string    `gorm:"size:100;not null" json:"firstName"`
	LastName     string    `gorm:"size:100;not null" json:"lastName"`
	Email        string    `gorm:"size:100;not null;uniqueIndex" json:"email"`
	Title        string    `gorm:"size:100" json:"title"`
	Office       string    `gorm:"size:100" json:"office"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Employee) TableName() string {
	return "employees"
}

// EmployeeResponse DTO
type EmployeeResponse struct {
	ID           uint   `json:"id"`
	UniversityID uint   `json:"universityId"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Email        string `json:"email"`
	Title        string `json:"title,omitempty"`
	Office       string `json:"office,omitempty"`
}

func (e *Employee) ToResponse() *EmployeeResponse {
	return &EmployeeResponse{
		ID:           e.ID,
		UniversityID: e.UniversityID,
		FirstName:    e.FirstName,
		LastName:     e.LastName,
		Email:        e.Email,
		Title:        e.Title,
		Office:       e.Office,
	}
}

// Friendship represents one direction of a friendship; an accepted friendship has two rows
type Friendship struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	StudentID uint      `gorm:"not null;uniqueIndex:idx_friendship_pair,priority:1" json:"studentId"`
	FriendID  uint      `gorm:"not null;uniqueIndex:idx_friendship_pair,priority:2;index" json:"friendId"`
	Status    string    `gorm:"size:20;not null" json:"status"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Friendship) TableName() string {
	return "friendships"
}

// Device represents devices table (push notification targets)
type Device struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	StudentID uint      `gorm:"not null;index" json:"studentId"`
	Token     string    `gorm:"size:255;not null;uniqueIndex" json:"token"`
	Platform  string    `gorm:"size:20;not null" json:"platform"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Device) TableName() string {
	return "devices"
}

// DeviceResponse DTO
type DeviceResponse struct {
	ID        uint      `json:"id"`
	StudentID uint      `json:"studentId"`
	Token     string    `json:"token"`
	Platform  string    `json:"platform"`
	CreatedAt time.Time `json:"createdAt"`
}

func (d *Device) ToResponse() *DeviceResponse {
	return &DeviceResponse{
		ID:        d.ID,
		StudentID: d.StudentID,
		Token:     d.Token,
		Platform:  d.Platform,
		CreatedAt: d.CreatedAt,
	}
}

// Notification represents notifications table
type Notification struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	UniversityID uint           `gorm:"not null;index" json:"universityId"`
	Title        string         `gorm:"size:200;not null" json:"title"`
	Body         string         `gorm:"type:text" json:"body"`
	Data         datatypes.JSON `json:"data"`
	SentAt       *time.Time     `json:"sentAt"`
	Recipients   int            `json:"recipients"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"createdAt"`
}

func (Notification) TableName() string {
	return "notifications"
}

// NotificationResponse DTO
type NotificationResponse struct {
	ID           uint           `json:"id"`
	UniversityID uint           `json:"universityId"`
	Title        string         `json:"title"`
	Body         string         `json:"body"`
	Data         datatypes.JSON `json:"data,omitempty"`
	SentAt       *time.Time     `json:"sentAt"`
	Recipients   int            `json:"recipients"`
	CreatedAt    time.Time      `json:"createdAt"`
}

func (n *Notification) ToResponse() *NotificationResponse {
	return &NotificationResponse{
		ID:           n.ID,
		UniversityID: n.UniversityID,
		Title:        n.Title,
		Body:         n.Body,
		Data:         n.Data,
		SentAt:       n.SentAt,
		Recipients:   n.Recipients,
		CreatedAt:    n.CreatedAt,
	}
}
