package leave

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"go-timesheet/internal/leavetype"
	"go-timesheet/internal/user"
)

const (
	StatusPending   = "PENDING"
	StatusApproved  = "APPROVED"
	StatusRejected  = "REJECTED"
	StatusCancelled = "CANCELLED"
)

// LeaveRequest is one absence request. TotalDays is fixed at creation
// from the business-day count of the range and never recomputed after
// a decision.
type LeaveRequest struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index:idx_leave_requests_user"`
	LeaveTypeID uuid.UUID `gorm:"type:uuid;not null"`
	StartDate   time.Time `gorm:"type:date;not null"`
	EndDate     time.Time `gorm:"type:date;not null"`
	TotalDays   float64   `gorm:"type:numeric(5,1);not null"`
	Comments    string    `gorm:"type:text"`
	Status      string    `gorm:"type:varchar(12);not null;default:'PENDING';index:idx_leave_requests_status"`

	ApprovedByID    *uuid.UUID `gorm:"type:uuid"`
	ApprovedAt      *time.Time
	RejectionReason string `gorm:"type:text"`

	User       user.User           `gorm:"foreignKey:UserID"`
	LeaveType  leavetype.LeaveType `gorm:"foreignKey:LeaveTypeID"`
	ApprovedBy *user.User          `gorm:"foreignKey:ApprovedByID"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index:idx_leave_requests_deleted_at"`
}

func (LeaveRequest) TableName() string {
	return "leave_requests"
}

func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusCancelled:
		return true
	}
	return false
}
