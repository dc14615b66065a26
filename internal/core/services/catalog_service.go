package services

import (
	"context"

	"unihub/internal/adapters/persistence/models"
	"unihub/internal/adapters/persistence/repositories"
	"unihub/internal/core/domain"
)

// Scope columns shared by the containment tree
const (
	ColUniversity = "university_id"
	ColFaculty    = "faculty_id"
	ColProgram    = "program_id"
	ColModule     = "module_id"
	ColStudent    = "student_id"
)

// UniversityInput represents create/update university input
type UniversityInput struct {
	Name    string `json:"name" validate:"required,max=150"`
	City    string `json:"city" validate:"required,max=100"`
	Address string `json:"address" validate:"max=255"`
	Website string `json:"website" validate:"omitempty,url,max=255"`
	LogoURL string `json:"logoUrl" validate:"omitempty,url,max=500"`
}

// FacultyInput represents create/update faculty input
type FacultyInput struct {
	Name        string `json:"name" validate:"required,max=150"`
	Description string `json:"description"`
}

// ProgramInput represents create/update program input
type ProgramInput struct {
	Name          string `json:"name" validate:"required,max=150"`
	Degree        string `json:"degree" validate:"max=50"`
	DurationYears int    `json:"durationYears" validate:"gte=0,lte=10"`
}

// ModuleInput represents create/update module input
type ModuleInput struct {
	Code     string `json:"code" validate:"required,max=30"`
	Name     string `json:"name" validate:"required,max=150"`
	Credits  int    `json:"credits" validate:"gte=0,lte=60"`
	Semester int    `json:"semester" validate:"gte=0,lte=20"`
}

// DocumentInput represents create/update document input
type DocumentInput struct {
	Name        string `json:"name" validate:"required,max=200"`
	URL         string `json:"url" validate:"required,url,max=500"`
	ContentType string `json:"contentType" validate:"max=100"`
}

// BuildingInput represents create/update building input
type BuildingInput struct {
	Name      string   `json:"name" validate:"required,max=150"`
	Latitude  *float64 `json:"latitude" validate:"required,gte=-90,lte=90"`
	Longitude *float64 `json:"longitude" validate:"required,gte=-180,lte=180"`
	Address   string   `json:"address" validate:"max=255"`
}

// CatalogService serves the university containment tree
type CatalogService struct {
	Universities *CRUD[models.University, UniversityInput, *models.UniversityResponse]
	Faculties    *CRUD[models.Faculty, FacultyInput, *models.FacultyResponse]
	Programs     *CRUD[models.Program, ProgramInput, *models.ProgramResponse]
	Modules      *CRUD[models.Module, ModuleInput, *models.ModuleResponse]
	Documents    *CRUD[models.Document, DocumentInput, *models.DocumentResponse]
	Buildings    *CRUD[models.Building, BuildingInput, *models.BuildingResponse]
}

// NewCatalogService creates a new catalog service
func NewCatalogService(stores *repositories.Stores) *CatalogService {
	university := &Parent{Name: "university", Column: ColUniversity, Store: stores.Universities}
	faculty := &Parent{Name: "faculty", Column: ColFaculty, Store: stores.Faculties}
	program := &Parent{Name: "program", Column: ColProgram, Store: stores.Programs}
	module := &Parent{Name: "module", Column: ColModule, Store: stores.Modules}

	return &CatalogService{
		Universities: &CRUD[models.University, UniversityInput, *models.UniversityResponse]{
			Name:  "university",
			Store: stores.Universities,
			Apply: func(u *models.University, in *UniversityInput) error {
				u.Name = in.Name
				u.City = in.City
				u.Address = in.Address
				u.Website = in.Website
				u.LogoURL = in.LogoURL
				return nil
			},
			ToOutput: (*models.University).ToResponse,
			BeforeDelete: func(ctx context.Context, u *models.University) error {
				return ensureNoMembers(ctx, stores, u.ID)
			},
		},
		Faculties: &CRUD[models.Faculty, FacultyInput, *models.FacultyResponse]{
			Name:   "faculty",
			Store:  stores.Faculties,
			Parent: university,
			Apply: func(f *models.Faculty, in *FacultyInput) error {
				f.Name = in.Name
				f.Description = in.Description
				return nil
			},
			Bind: func(f *models.Faculty, s repositories.Scope) {
				bindID(&f.UniversityID, s, ColUniversity)
			},
			ToOutput: (*models.Faculty).ToResponse,
		},
		Programs: &CRUD[models.Program, ProgramInput, *models.ProgramResponse]{
			Name:   "program",
			Store:  stores.Programs,
			Parent: faculty,
			Apply: func(p *models.Program, in *ProgramInput) error {
				p.Name = in.Name
				p.Degree = in.Degree
				p.DurationYears = in.DurationYears
				return nil
			},
			Bind: func(p *models.Program, s repositories.Scope) {
				bindID(&p.UniversityID, s, ColUniversity)
				bindID(&p.FacultyID, s, ColFaculty)
			},
			ToOutput: (*models.Program).ToResponse,
		},
		Modules: &CRUD[models.Module, ModuleInput, *models.ModuleResponse]{
			Name:   "module",
			Store:  stores.Modules,
			Parent: program,
			Apply: func(m *models.Module, in *ModuleInput) error {
				m.Code = in.Code
				m.Name = in.Name
				m.Credits = in.Credits
				m.Semester = in.Semester
				return nil
			},
			Bind: func(m *models.Module, s repositories.Scope) {
				bindID(&m.UniversityID, s, ColUniversity)
				bindID(&m.FacultyID, s, ColFaculty)
				bindID(&m.ProgramID, s, ColProgram)
			},
			ToOutput: (*models.Module).ToResponse,
		},
		Documents: &CRUD[models.Document, DocumentInput, *models.DocumentResponse]{
			Name:   "document",
			Store:  stores.Documents,
			Parent: module,
			Apply: func(d *models.Document, in *DocumentInput) error {
				d.Name = in.Name
				d.URL = in.URL
				d.ContentType = in.ContentType
				return nil
			},
			Bind: func(d *models.Document, s repositories.Scope) {
				bindID(&d.UniversityID, s, ColUniversity)
				bindID(&d.FacultyID, s, ColFaculty)
				bindID(&d.ProgramID, s, ColProgram)
				bindID(&d.ModuleID, s, ColModule)
			},
			ToOutput: (*models.Document).ToResponse,
		},
		Buildings: &CRUD[models.Building, BuildingInput, *models.BuildingResponse]{
			Name:   "building",
			Store:  stores.Buildings,
			Parent: university,
			Apply: func(b *models.Building, in *BuildingInput) error {
				b.Name = in.Name
				b.Latitude = *in.Latitude
				b.Longitude = *in.Longitude
				b.Address = in.Address
				return nil
			},
			Bind: func(b *models.Building, s repositories.Scope) {
				bindID(&b.UniversityID, s, ColUniversity)
			},
			ToOutput: (*models.Building).ToResponse,
		},
	}
}

// ensureNoMembers refuses to delete a university that still has students or employees
func ensureNoMembers(ctx context.Context, stores *repositories.Stores, universityID uint) error {
	scope := repositories.Scope{ColUniversity: universityID}

	_, students, err := stores.Students.FindPageAndCount(ctx, scope, nil, 0, 1)
	if err != nil {
		return err
	}
	_, employees, err := stores.Employees.FindPageAndCount(ctx, scope, nil, 0, 1)
	if err != nil {
		return err
	}
	if students+employees > 0 {
		return domain.ConflictMessage("university.has.members")
	}
	return nil
}
