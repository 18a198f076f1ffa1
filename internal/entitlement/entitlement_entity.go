package entitlement

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"go-timesheet/internal/leavetype"
)

// Entitlement is the number of days a user may take of one leave type
// in one calendar year. Usage is derived from approved requests, never
// stored here.
type Entitlement struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_entitlements_user_type_year"`
	LeaveTypeID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_entitlements_user_type_year"`
	Year          int       `gorm:"not null;uniqueIndex:uq_entitlements_user_type_year"`
	AllocatedDays float64   `gorm:"type:numeric(5,1);not null"`

	LeaveType leavetype.LeaveType `gorm:"foreignKey:LeaveTypeID"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index:idx_entitlements_deleted_at"`
}

func (Entitlement) TableName() string {
	return "leave_entitlements"
}

// Standard yearly grants provisioned for every new user.
var StandardGrants = map[string]float64{
	leavetype.CodeAnnual:   25,
	leavetype.CodeSick:     10,
	leavetype.CodePersonal: 5,
}
