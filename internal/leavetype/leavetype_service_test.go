package leavetype_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"go-timesheet/internal/leavetype"
)

type fakeLeaveTypeRepository struct {
	createFn   func(ctx context.Context, lt *leavetype.LeaveType) error
	findByIDFn func(ctx context.Context, id string) (*leavetype.LeaveType, error)
	findAllFn  func(ctx context.Context, activeOnly bool) ([]leavetype.LeaveType, error)
	updateFn   func(ctx context.Context, lt *leavetype.LeaveType) error
}

func (f *fakeLeaveTypeRepository) WithTx(tx *sql.Tx) leavetype.Repository { return f }

func (f *fakeLeaveTypeRepository) Create(ctx context.Context, lt *leavetype.LeaveType) error {
	if f.createFn != nil {
		return f.createFn(ctx, lt)
	}
	return nil
}

func (f *fakeLeaveTypeRepository) FindByID(ctx context.Context, id string) (*leavetype.LeaveType, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeLeaveTypeRepository) FindByCode(ctx context.Context, code string) (*leavetype.LeaveType, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeLeaveTypeRepository) FindAll(ctx context.Context, activeOnly bool) ([]leavetype.LeaveType, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx, activeOnly)
	}
	return nil, nil
}

func (f *fakeLeaveTypeRepository) Update(ctx context.Context, lt *leavetype.LeaveType) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, lt)
	}
	return nil
}

func TestLeaveTypeService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults to approval required and active", func(t *testing.T) {
		var created *leavetype.LeaveType
		repo := &fakeLeaveTypeRepository{
			createFn: func(ctx context.Context, lt *leavetype.LeaveType) error {
				created = lt
				return nil
			},
		}
		svc := leavetype.NewService(repo)

		resp, err := svc.Create(ctx, leavetype.CreateLeaveTypeRequest{Code: "AL", Name: "Annual Leave"})

		assert.NoError(t, err)
		assert.True(t, created.RequiresApproval)
		assert.True(t, created.Active)
		assert.Equal(t, "AL", resp.Code)
	})

	t.Run("duplicate code", func(t *testing.T) {
		repo := &fakeLeaveTypeRepository{
			createFn: func(ctx context.Context, lt *leavetype.LeaveType) error {
				return &pgconn.PgError{Code: "23505"}
			},
		}
		svc := leavetype.NewService(repo)

		_, err := svc.Create(ctx, leavetype.CreateLeaveTypeRequest{Code: "AL", Name: "Annual Leave"})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "already in use")
	})
}

func TestLeaveTypeService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("deactivation flows through", func(t *testing.T) {
		repo := &fakeLeaveTypeRepository{
			findByIDFn: func(ctx context.Context, id string) (*leavetype.LeaveType, error) {
				return &leavetype.LeaveType{Code: "PL", Name: "Personal Leave", Active: true}, nil
			},
		}
		svc := leavetype.NewService(repo)

		inactive := false
		resp, err := svc.Update(ctx, "some-id", leavetype.UpdateLeaveTypeRequest{
			Name:   "Personal Leave",
			Active: &inactive,
		})

		assert.NoError(t, err)
		assert.False(t, resp.Active)
	})

	t.Run("unknown id", func(t *testing.T) {
		svc := leavetype.NewService(&fakeLeaveTypeRepository{})

		_, err := svc.Update(ctx, "missing", leavetype.UpdateLeaveTypeRequest{Name: "x"})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})
}
