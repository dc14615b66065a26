package services

import (
	"strings"

	"unihub/internal/adapters/persistence/models"
	"unihub/internal/adapters/persistence/repositories"
)

// StudentInput represents create/update student input
type StudentInput struct {
	IndexNumber string `json:"indexNumber" validate:"required,max=30"`
	FirstName   string `json:"firstName" validate:"required,max=100"`
	LastName    string `json:"lastName" validate:"required,max=100"`
	Email       string `json:"email" validate:"required,email,max=100"`
	StudyYear   int    `json:"studyYear" validate:"gte=0,lte=10"`
}

// EmployeeInput represents create/update employee input
type EmployeeInput struct {
	FirstName string `json:"firstName" validate:"required,max=100"`
	LastName  string `json:"lastName" validate:"required,max=100"`
	Email     string `json:"email" validate:"required,email,max=100"`
	Title     string `json:"title" validate:"max=100"`
	Office    string `json:"office" validate:"max=100"`
}

// PeopleService serves students and employees of a university
type PeopleService struct {
	Students  *CRUD[models.Student, StudentInput, *models.StudentResponse]
	Employees *CRUD[models.Employee, EmployeeInput, *models.EmployeeResponse]
}

// NewPeopleService creates a new people service
func NewPeopleService(stores *repositories.Stores) *PeopleService {
	university := &Parent{Name: "university", Column: ColUniversity, Store: stores.Universities}

	return &PeopleService{
		Students: &CRUD[models.Student, StudentInput, *models.StudentResponse]{
			Name:   "student",
			Store:  stores.Students,
			Parent: university,
			Apply:  applyStudent,
			Bind: func(s *models.Student, sc repositories.Scope) {
				bindID(&s.UniversityID, sc, ColUniversity)
			},
			ToOutput: (*models.Student).ToResponse,
		},
		Employees: &CRUD[models.Employee, EmployeeInput, *models.EmployeeResponse]{
			Name:   "employee",
			Store:  stores.Employees,
			Parent: university,
			Apply: func(e *models.Employee, in *EmployeeInput) error {
				e.FirstName = in.FirstName
				e.LastName = in.LastName
				e.Email = strings.ToLower(in.Email)
				e.Title = in.Title
				e.Office = in.Office
				return nil
			},
			Bind: func(e *models.Employee, sc repositories.Scope) {
				bindID(&e.UniversityID, sc, ColUniversity)
			},
			ToOutput: (*models.Employee).ToResponse,
		},
	}
}

func applyStudent(s *models.Student, in *StudentInput) error {
	s.IndexNumber = in.IndexNumber
	s.FirstName = in.FirstName
	s.LastName = in.LastName
	s.Email = strings.ToLower(in.Email)
	s.StudyYear = in.StudyYear
	return nil
}
