package project

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"go-timesheet/internal/user"
)

// Project is something hours can be booked against. Archiving
// (Active=false) hides it from new entry without touching history.
type Project struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Code        string    `gorm:"type:varchar(20);not null;uniqueIndex:uq_projects_code"`
	Name        string    `gorm:"type:varchar(100);not null"`
	Description string    `gorm:"type:text"`
	Active      bool      `gorm:"not null;default:true"`

	Members []user.User `gorm:"many2many:project_members;"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index:idx_projects_deleted_at"`
}

func (Project) TableName() string {
	return "projects"
}
