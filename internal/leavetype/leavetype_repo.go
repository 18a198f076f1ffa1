package leavetype

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=leavetype_repo.go -destination=mock/leavetype_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, lt *LeaveType) error
	FindByID(ctx context.Context, id string) (*LeaveType, error)
	FindByCode(ctx context.Context, code string) (*LeaveType, error)
	FindAll(ctx context.Context, activeOnly bool) ([]LeaveType, error)
	Update(ctx context.Context, lt *LeaveType) error
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

func (r *repository) Create(ctx context.Context, lt *LeaveType) error {
	return r.conn(ctx).Create(lt).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*LeaveType, error) {
	var lt LeaveType
	err := r.conn(ctx).First(&lt, "id = ?", id).Error
	return &lt, err
}

func (r *repository) FindByCode(ctx context.Context, code string) (*LeaveType, error) {
	var lt LeaveType
	err := r.conn(ctx).First(&lt, "code = ?", code).Error
	return &lt, err
}

func (r *repository) FindAll(ctx context.Context, activeOnly bool) ([]LeaveType, error) {
	var types []LeaveType
	q := r.conn(ctx).Order("code ASC")
	if activeOnly {
		q = q.Where("active = ?", true)
	}
	err := q.Find(&types).Error
	return types, err
}

func (r *repository) Update(ctx context.Context, lt *LeaveType) error {
	return r.conn(ctx).Save(lt).Error
}
