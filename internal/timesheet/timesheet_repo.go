package timesheet

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=timesheet_repo.go -destination=mock/timesheet_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	FindByUserAndDates(ctx context.Context, userID string, dates []time.Time) ([]TimeEntry, error)
	// Upsert writes one cell, replacing hours and submitted state on
	// conflict of (user, project, date).
	Upsert(ctx context.Context, entry *TimeEntry) error
	Delete(ctx context.Context, userID, projectID string, date time.Time) error
	// LastSubmittedDate is the most recent date in the range with a
	// submitted entry, zero time when none.
	LastSubmittedDate(ctx context.Context, userID string, dates []time.Time) (time.Time, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) conn(ctx context.Context) *gorm.DB {
	db := r.db.WithContext(ctx)
	if r.tx != nil {
		db.Statement.ConnPool = r.tx
	}
	return db
}

func (r *repository) FindByUserAndDates(ctx context.Context, userID string, dates []time.Time) ([]TimeEntry, error) {
	var entries []TimeEntry
	err := r.conn(ctx).
		Where("user_id = ?", userID).
		Where("entry_date IN ?", dates).
		Find(&entries).Error
	return entries, err
}

func (r *repository) Upsert(ctx context.Context, entry *TimeEntry) error {
	return r.conn(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "user_id"},
				{Name: "project_id"},
				{Name: "entry_date"},
			},
			DoUpdates: clause.AssignmentColumns([]string{"hours", "submitted", "updated_at"}),
		}).
		Create(entry).Error
}

func (r *repository) Delete(ctx context.Context, userID, projectID string, date time.Time) error {
	return r.conn(ctx).
		Where("user_id = ?", userID).
		Where("project_id = ?", projectID).
		Where("entry_date = ?", date).
		Delete(&TimeEntry{}).Error
}

func (r *repository) LastSubmittedDate(ctx context.Context, userID string, dates []time.Time) (time.Time, error) {
	var last sql.NullTime
	err := r.conn(ctx).
		Model(&TimeEntry{}).
		Select("MAX(entry_date)").
		Where("user_id = ?", userID).
		Where("entry_date IN ?", dates).
		Where("submitted = ?", true).
		Scan(&last).Error
	if err != nil || !last.Valid {
		return time.Time{}, err
	}
	return last.Time, nil
}
