package leavetype

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LeaveType is a category of absence, e.g. annual or sick leave.
type LeaveType struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Code             string    `gorm:"type:varchar(10);not null;uniqueIndex:uq_leave_types_code"`
	Name             string    `gorm:"type:varchar(50);not null"`
	Description      string    `gorm:"type:text"`
	RequiresApproval bool      `gorm:"not null;default:true"`
	Active           bool      `gorm:"not null;default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index:idx_leave_types_deleted_at"`
}

func (LeaveType) TableName() string {
	return "leave_types"
}

// Codes seeded for every installation. Entitlement provisioning and
// the leave form both assume these exist.
const (
	CodeAnnual   = "AL"
	CodeSick     = "SL"
	CodePersonal = "PL"
)
