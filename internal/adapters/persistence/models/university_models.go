package models

import (
	"time"

	"gorm.io/datatypes"
)

// ============================================================
// University containment tree
// ============================================================

// University represents universities table
type University struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:150;uniqueIndex;not null" json:"name"`
	City      string    `gorm:"size:100" json:"city"`
	Address   string    `gorm:"size:255" json:"address"`
	Website   string    `gorm:"size:255" json:"website"`
	LogoURL   string    `gorm:"size:500" json:"logoUrl"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (University) TableName() string {
	return "universities"
}

// UniversityResponse DTO
type UniversityResponse struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	City    string `json:"city"`
	Address string `json:"address"`
	Website string `json:"website,omitempty"`
	LogoURL string `json:"logoUrl,omitempty"`
}

func (u *University) ToResponse() *UniversityResponse {
	return &UniversityResponse{
		ID:      u.ID,
		Name:    u.Name,
		City:    u.City,
		Address: u.Address,
		Website: u.Website,
		LogoURL: u.LogoURL,
	}
}

// Faculty represents faculties table
type Faculty struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UniversityID uint      `gorm:"not null;uniqueIndex:idx_faculty_university_name,priority:1" json:"universityId"`
	Name         string    `gorm:"size:150;not null;uniqueIndex:idx_faculty_university_name,priority:2" json:"name"`
	Description  string    `gorm:"type:text" json:"description"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Faculty) TableName() string {
	return "faculties"
}

// FacultyResponse DTO
type FacultyResponse struct {
	ID           uint   `json:"id"`
	UniversityID uint   `json:"universityId"`
	Name         string `json:"name"`
	Description  string `json:"description"`
}

func (f *Faculty) ToResponse() *FacultyResponse {
	return &FacultyResponse{
		ID:           f.ID,
		UniversityID: f.UniversityID,
		Name:         f.Name,
		Description:  f.Description,
	}
}

// Program represents programs table
type Program struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UniversityID  uint      `gorm:"not null;index" json:"universityId"`
	FacultyID     uint      `gorm:"not null;uniqueIndex:idx_program_faculty_name,priority:1" json:"facultyId"`
	Name          string    `gorm:"size:150;not null;uniqueIndex:idx_program_faculty_name,priority:2" json:"name"`
	Degree        string    `gorm:"size:50" json:"degree"`
	DurationYears int       `json:"durationYears"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Program) TableName() string {
	return "programs"
}

// ProgramResponse DTO
type ProgramResponse struct {
	ID            uint   `json:"id"`
	UniversityID  uint   `json:"universityId"`
	FacultyID     uint   `json:"facultyId"`
	Name          string `json:"name"`
	Degree        string `json:"degree"`
	DurationYears int    `json:"durationYears"`
}

func (p *Program) ToResponse() *ProgramResponse {
	return &ProgramResponse{
		ID:            p.ID,
		UniversityID:  p.UniversityID,
		FacultyID:     p.FacultyID,
		Name:          p.Name,
		Degree:        p.Degree,
		DurationYears: p.DurationYears,
	}
}

// Module represents modules table (a course within a program)
type Module struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UniversityID uint      `gorm:"not null;index" json:"universityId"`
	FacultyID    uint      `gorm:"not null;index" json:"facultyId"`
	ProgramID    uint      `gorm:"not null;uniqueIndex:idx_module_program_code,priority:1" json:"programId"`
	Code         string    `gorm:"size:30;not null;uniqueIndex:idx_module_program_code,priority:2" json:"code"`
	Name         string    `gorm:"size:150;not null" json:"name"`
	Credits      int       `json:"credits"`
	Semester     int       `json:"semester"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Module) TableName() string {
	return "modules"
}

// ModuleResponse DTO
type ModuleResponse struct {
	ID           uint   `json:"id"`
	UniversityID uint   `json:"universityId"`
	FacultyID    uint   `json:"facultyId"`
	ProgramID    uint   `json:"programId"`
	Code         string `json:"code"`
	Name         string `json:"name"`
	Credits      int    `json:"credits"`
	Semester     int    `json:"semester"`
}

func (m *Module) ToResponse() *ModuleResponse {
	return &ModuleResponse{
		ID:           m.ID,
		UniversityID: m.UniversityID,
		FacultyID:    m.FacultyID,
		ProgramID:    m.ProgramID,
		Code:         m.Code,
		Name:         m.Name,
		Credits:      m.Credits,
		Semester:     m.Semester,
	}
}

// Document represents documents table; files live in external storage behind URL
type Document struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UniversityID uint      `gorm:"not null;index" json:"universityId"`
	FacultyID    uint      `gorm:"not null;index" json:"facultyId"`
	ProgramID    uint      `gorm:"not null;index" json:"programId"`
	ModuleID     uint      `gorm:"not null;uniqueIndex:idx_document_module_name,priority:1" json:"moduleId"`
	Name         string    `gorm:"size:200;not null;uniqueIndex:idx_document_module_name,priority:2" json:"name"`
	URL          string    `gorm:"size:500;not null" json:"url"`
	ContentType  string    `gorm:"size:100" json:"contentType"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Document) TableName() string {
	return "documents"
}

// DocumentResponse DTO
type DocumentResponse struct {
	ID           uint      `json:"id"`
	UniversityID uint      `json:"universityId"`
	FacultyID    uint      `json:"facultyId"`
	ProgramID    uint      `json:"programId"`
	ModuleID     uint      `json:"moduleId"`
	Name         string    `json:"name"`
	URL          string    `json:"url"`
	ContentType  string    `json:"contentType,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (d *Document) ToResponse() *DocumentResponse {
	return &DocumentResponse{
		ID:           d.ID,
		UniversityID: d.UniversityID,
		FacultyID:    d.FacultyID,
		ProgramID:    d.ProgramID,
		ModuleID:     d.ModuleID,
		Name:         d.Name,
		URL:          d.URL,
		ContentType:  d.ContentType,
		CreatedAt:    d.CreatedAt,
	}
}

// Post represents posts table (university news, markdown body)
type Post struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	UniversityID uint           `gorm:"not null;index" json:"universityId"`
	Title        string         `gorm:"size:200;not null;index" json:"title"`
	Content      string         `gorm:"type:text" json:"content"`
	PublishedAt  datatypes.Date `gorm:"not null;index" json:"publishedAt"`
	ImageURL     string         `gorm:"size:500" json:"imageUrl"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Post) TableName() string {
	return "posts"
}

// PostResponse DTO
type PostResponse struct {
	ID           uint   `json:"id"`
	UniversityID uint   `json:"universityId"`
	Title        string `json:"title"`
	Content      string `json:"content"`
	ContentHTML  string `json:"contentHtml"`
	PublishedAt  string `json:"publishedAt"`
	ImageURL     string `json:"imageUrl,omitempty"`
}

// DateLayout is the wire format of calendar dates
const DateLayout = "2006-01-02"

// ToResponse maps the post; the HTML rendering is filled in by the caller
func (p *Post) ToResponse() *PostResponse {
	return &PostResponse{
		ID:           p.ID,
		UniversityID: p.UniversityID,
		Title:        p.Title,
		Content:      p.Content,
		PublishedAt:  time.Time(p.PublishedAt).Format(DateLayout),
		ImageURL:     p.ImageURL,
	}
}

// Building represents buildings table
type Building struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UniversityID uint      `gorm:"not null;uniqueIndex:idx_building_university_name,priority:1" json:"universityId"`
	Name         string    `gorm:"size:150;not null;uniqueIndex:idx_building_university_name,priority:2" json:"name"`
	Latitude     float64   `gorm:"not null" json:"latitude"`
	Longitude    float64   `gorm:"not null" json:"longitude"`
	Address      string    `gorm:"size:255" json:"address"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Building) TableName() string {
	return "buildings"
}

// BuildingResponse DTO
type BuildingResponse struct {
	ID           uint    `json:"id"`
	UniversityID uint    `json:"universityId"`
	Name         string  `json:"name"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	Address      string  `json:"address"`
}

func (b *Building) ToResponse() *BuildingResponse {
	return &BuildingResponse{
		ID:           b.ID,
		UniversityID: b.UniversityID,
		Name:         b.Name,
		Latitude:     b.Latitude,
		Longitude:    b.Longitude,
		Address:      b.Address,
	}
}
