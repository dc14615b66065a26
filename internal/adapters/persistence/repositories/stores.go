package repositories

import (
	"unihub/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// Stores groups the generic stores of every resource with their delete cascades
type Stores struct {
	Universities  Store[models.University]
	Faculties     Store[models.Faculty]
	Programs      Store[models.Program]
	Modules       Store[models.Module]
	Documents     Store[models.Document]
	Posts         Store[models.Post]
	Buildings     Store[models.Building]
	Students      Store[models.Student]
	Employees     Store[models.Employee]
	Devices       Store[models.Device]
	Notifications Store[models.Notification]
}

// NewStores creates all resource stores on db
func NewStores(db *gorm.DB) *Stores {
	return &Stores{
		Universities: NewStore[models.University](db,
			Cascade{Model: &models.Document{}, Column: "university_id"},
			Cascade{Model: &models.Module{}, Column: "university_id"},
			Cascade{Model: &models.Program{}, Column: "university_id"},
			Cascade{Model: &models.Faculty{}, Column: "university_id"},
			Cascade{Model: &models.Post{}, Column: "university_id"},
			Cascade{Model: &models.Building{}, Column: "university_id"},
			Cascade{Model: &models.Notification{}, Column: "university_id"},
			Cascade{Model: &models.User{}, Column: "university_id"},
		),
		Faculties: NewStore[models.Faculty](db,
			Cascade{Model: &models.Document{}, Column: "faculty_id"},
			Cascade{Model: &models.Module{}, Column: "faculty_id"},
			Cascade{Model: &models.Program{}, Column: "faculty_id"},
		),
		Programs: NewStore[models.Program](db,
			Cascade{Model: &models.Document{}, Column: "program_id"},
			Cascade{Model: &models.Module{}, Column: "program_id"},
		),
		Modules: NewStore[models.Module](db,
			Cascade{Model: &models.Document{}, Column: "module_id"},
		),
		Documents: NewStore[models.Document](db),
		Posts:     NewStore[models.Post](db),
		Buildings: NewStore[models.Building](db),
		Students: NewStore[models.Student](db,
			Cascade{Model: &models.Device{}, Column: "student_id"},
			Cascade{Model: &models.Friendship{}, Column: "student_id"},
			Cascade{Model: &models.Friendship{}, Column: "friend_id"},
			Cascade{Model: &models.User{}, Column: "student_id"},
		),
		Employees: NewStore[models.Employee](db,
			Cascade{Model: &models.User{}, Column: "employee_id"},
		),
		Devices:       NewStore[models.Device](db),
		Notifications: NewStore[models.Notification](db),
	}
}
