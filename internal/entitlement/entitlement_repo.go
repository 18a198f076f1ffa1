package entitlement

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=entitlement_repo.go -destination=mock/entitlement_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, e *Entitlement) error
	FindByID(ctx context.Context, id string) (*Entitlement, error)
	FindByUserAndYear(ctx context.Context, userID string, year int) ([]Entitlement, error)
	FindByUserTypeYear(ctx context.Context, userID, leaveTypeID string, year int) (*Entitlement, error)
	Update(ctx context.Context, e *Entitlement) error
	// SumApprovedDays totals total_days of approved leave requests for
	// the user and type whose start date falls in the given year.
	SumApprovedDays(ctx context.Context, userID, leaveTypeID string, year int) (float64, error)
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

func (r *repository) Create(ctx context.Context, e *Entitlement) error {
	return r.conn(ctx).Create(e).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Entitlement, error) {
	var e Entitlement
	err := r.conn(ctx).
		Preload("LeaveType").
		First(&e, "id = ?", id).Error
	return &e, err
}

func (r *repository) FindByUserAndYear(ctx context.Context, userID string, year int) ([]Entitlement, error) {
	var ents []Entitlement
	err := r.conn(ctx).
		Preload("LeaveType").
		Joins("JOIN leave_types lt ON lt.id = leave_entitlements.leave_type_id").
		Where("leave_entitlements.user_id = ?", userID).
		Where("leave_entitlements.year = ?", year).
		Order("lt.code ASC").
		Find(&ents).Error
	return ents, err
}

func (r *repository) FindByUserTypeYear(ctx context.Context, userID, leaveTypeID string, year int) (*Entitlement, error) {
	var e Entitlement
	err := r.conn(ctx).
		Preload("LeaveType").
		Where("user_id = ?", userID).
		Where("leave_type_id = ?", leaveTypeID).
		Where("year = ?", year).
		First(&e).Error
	return &e, err
}

func (r *repository) Update(ctx context.Context, e *Entitlement) error {
	return r.conn(ctx).Save(e).Error
}

func (r *repository) SumApprovedDays(ctx context.Context, userID, leaveTypeID string, year int) (float64, error) {
	var total sql.NullFloat64
	err := r.conn(ctx).Raw(`
		SELECT SUM(total_days)
		FROM leave_requests
		WHERE user_id = ?
		  AND leave_type_id = ?
		  AND status = 'APPROVED'
		  AND EXTRACT(YEAR FROM start_date) = ?
		  AND deleted_at IS NULL
	`, userID, leaveTypeID, year).Scan(&total).Error
	if err != nil {
		return 0, err
	}
	if !total.Valid {
		return 0, nil
	}
	return total.Float64, nil
}
