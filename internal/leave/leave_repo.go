package leave

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, lr *LeaveRequest) error
	FindByID(ctx context.Context, id string) (*LeaveRequest, error)
	FindByUser(ctx context.Context, userID string, filter ListFilter) ([]LeaveRequest, int64, error)
	Update(ctx context.Context, lr *LeaveRequest) error
	// HasOverlapping reports whether the user already holds a pending
	// or approved request intersecting [start, end].
	HasOverlapping(ctx context.Context, userID string, start, end time.Time, excludeID string) (bool, error)
	// FindApprovedInRange returns approved requests touching any day
	// of [start, end], used for timesheet leave credit.
	FindApprovedInRange(ctx context.Context, userID string, start, end time.Time) ([]LeaveRequest, error)
	FindPendingByManager(ctx context.Context, managerID string) ([]LeaveRequest, error)
	FindRecentByUser(ctx context.Context, userID string, limit int) ([]LeaveRequest, error)
	// FindRecentDecisions returns requests the approver decided, most
	// recent decision first.
	FindRecentDecisions(ctx context.Context, approverID string, limit int) ([]LeaveRequest, error)
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

func (r *repository) Create(ctx context.Context, lr *LeaveRequest) error {
	return r.conn(ctx).Create(lr).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*LeaveRequest, error) {
	var lr LeaveRequest
	err := r.conn(ctx).
		Preload("User").
		Preload("User.Manager").
		Preload("LeaveType").
		Preload("ApprovedBy").
		First(&lr, "id = ?", id).Error
	return &lr, err
}

func (r *repository) FindByUser(ctx context.Context, userID string, filter ListFilter) ([]LeaveRequest, int64, error) {
	q := r.conn(ctx).
		Model(&LeaveRequest{}).
		Where("user_id = ?", userID)

	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.LeaveTypeID != "" {
		q = q.Where("leave_type_id = ?", filter.LeaveTypeID)
	}
	if filter.DateFrom != "" {
		q = q.Where("start_date >= ?", filter.DateFrom)
	}
	if filter.DateTo != "" {
		q = q.Where("end_date <= ?", filter.DateTo)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}

	var requests []LeaveRequest
	err := q.
		Preload("LeaveType").
		Preload("ApprovedBy").
		Order("created_at DESC").
		Offset((page - 1) * DefaultPageSize).
		Limit(DefaultPageSize).
		Find(&requests).Error
	return requests, total, err
}

func (r *repository) Update(ctx context.Context, lr *LeaveRequest) error {
	return r.conn(ctx).Save(lr).Error
}

func (r *repository) HasOverlapping(ctx context.Context, userID string, start, end time.Time, excludeID string) (bool, error) {
	var count int64
	q := r.conn(ctx).
		Model(&LeaveRequest{}).
		Where("user_id = ?", userID).
		Where("status IN ?", []string{StatusPending, StatusApproved}).
		Where("start_date <= ?", end).
		Where("end_date >= ?", start)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	err := q.Count(&count).Error
	return count > 0, err
}

func (r *repository) FindApprovedInRange(ctx context.Context, userID string, start, end time.Time) ([]LeaveRequest, error) {
	var requests []LeaveRequest
	err := r.conn(ctx).
		Preload("LeaveType").
		Where("user_id = ?", userID).
		Where("status = ?", StatusApproved).
		Where("start_date <= ?", end).
		Where("end_date >= ?", start).
		Find(&requests).Error
	return requests, err
}

func (r *repository) FindPendingByManager(ctx context.Context, managerID string) ([]LeaveRequest, error) {
	var requests []LeaveRequest
	err := r.conn(ctx).
		Preload("User").
		Preload("LeaveType").
		Joins("JOIN users u ON u.id = leave_requests.user_id").
		Where("u.manager_id = ?", managerID).
		Where("leave_requests.status = ?", StatusPending).
		Order("leave_requests.created_at ASC").
		Find(&requests).Error
	return requests, err
}

func (r *repository) FindRecentByUser(ctx context.Context, userID string, limit int) ([]LeaveRequest, error) {
	var requests []LeaveRequest
	err := r.conn(ctx).
		Preload("LeaveType").
		Preload("ApprovedBy").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&requests).Error
	return requests, err
}

func (r *repository) FindRecentDecisions(ctx context.Context, approverID string, limit int) ([]LeaveRequest, error) {
	var requests []LeaveRequest
	err := r.conn(ctx).
		Preload("User").
		Preload("LeaveType").
		Where("approved_by_id = ?", approverID).
		Where("status IN ?", []string{StatusApproved, StatusRejected}).
		Order("approved_at DESC").
		Limit(limit).
		Find(&requests).Error
	return requests, err
}
