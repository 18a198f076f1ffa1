package timesheet

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	// DailyCapHours is the most a user may book on one day, unless the
	// day is covered by approved leave.
	DailyCapHours = 7.5
	// ExpectedWeekHours is the full-week threshold for submission.
	ExpectedWeekHours = 37.5
)

// TimeEntry is one cell of the weekly grid: hours booked by a user on
// a project for a single date. One row per (user, project, date).
type TimeEntry struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_time_entries_user_project_date"`
	ProjectID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_time_entries_user_project_date"`
	EntryDate time.Time `gorm:"type:date;not null;uniqueIndex:uq_time_entries_user_project_date;index:idx_time_entries_date"`
	Hours     float64   `gorm:"type:numeric(4,2);not null"`
	Submitted bool      `gorm:"not null;default:false"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index:idx_time_entries_deleted_at"`
}

func (TimeEntry) TableName() string {
	return "time_entries"
}
