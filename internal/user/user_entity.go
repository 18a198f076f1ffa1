package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleEmployee = "EMPLOYEE"
	RoleManager  = "MANAGER"
	RoleAdmin    = "ADMIN"
)

// User is an employee account. ManagerID is a self reference forming a
// forest; cycle prevention happens in the service on assignment.
type User struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeNumber string     `gorm:"type:varchar(20);not null;uniqueIndex:uq_users_employee_number"`
	Username       string     `gorm:"type:varchar(60);not null;uniqueIndex:uq_users_username"`
	FullName       string     `gorm:"type:varchar(120);not null"`
	Email          string     `gorm:"type:varchar(255)"`
	PasswordHash   string     `gorm:"type:varchar(100);not null"`
	Role           string     `gorm:"type:varchar(20);not null;default:'EMPLOYEE'"`
	ManagerID      *uuid.UUID `gorm:"type:uuid;index:idx_users_manager"`
	Active         bool       `gorm:"not null;default:true"`

	Manager *User `gorm:"foreignKey:ManagerID;references:ID"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index:idx_users_deleted_at"`
}

func (User) TableName() string {
	return "users"
}

func ValidRole(role string) bool {
	switch role {
	case RoleEmployee, RoleManager, RoleAdmin:
		return true
	}
	return false
}
