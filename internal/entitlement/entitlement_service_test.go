package entitlement_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"go-timesheet/internal/entitlement"
	"go-timesheet/internal/leavetype"
)

type fakeEntitlementRepository struct {
	createFn             func(ctx context.Context, e *entitlement.Entitlement) error
	findByIDFn           func(ctx context.Context, id string) (*entitlement.Entitlement, error)
	findByUserAndYearFn  func(ctx context.Context, userID string, year int) ([]entitlement.Entitlement, error)
	findByUserTypeYearFn func(ctx context.Context, userID, leaveTypeID string, year int) (*entitlement.Entitlement, error)
	updateFn             func(ctx context.Context, e *entitlement.Entitlement) error
	sumApprovedDaysFn    func(ctx context.Context, userID, leaveTypeID string, year int) (float64, error)
}

func (f *fakeEntitlementRepository) WithTx(tx *sql.Tx) entitlement.Repository { return f }

func (f *fakeEntitlementRepository) Create(ctx context.Context, e *entitlement.Entitlement) error {
	if f.createFn != nil {
		return f.createFn(ctx, e)
	}
	return nil
}

func (f *fakeEntitlementRepository) FindByID(ctx context.Context, id string) (*entitlement.Entitlement, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (f *fakeEntitlementRepository) FindByUserAndYear(ctx context.Context, userID string, year int) ([]entitlement.Entitlement, error) {
	if f.findByUserAndYearFn != nil {
		return f.findByUserAndYearFn(ctx, userID, year)
	}
	return nil, nil
}

func (f *fakeEntitlementRepository) FindByUserTypeYear(ctx context.Context, userID, leaveTypeID string, year int) (*entitlement.Entitlement, error) {
	if f.findByUserTypeYearFn != nil {
		return f.findByUserTypeYearFn(ctx, userID, leaveTypeID, year)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeEntitlementRepository) Update(ctx context.Context, e *entitlement.Entitlement) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, e)
	}
	return nil
}

func (f *fakeEntitlementRepository) SumApprovedDays(ctx context.Context, userID, leaveTypeID string, year int) (float64, error) {
	if f.sumApprovedDaysFn != nil {
		return f.sumApprovedDaysFn(ctx, userID, leaveTypeID, year)
	}
	return 0, nil
}

type fakeLeaveTypeRepository struct {
	findByCodeFn func(ctx context.Context, code string) (*leavetype.LeaveType, error)
}

func (f *fakeLeaveTypeRepository) WithTx(tx *sql.Tx) leavetype.Repository { return f }

func (f *fakeLeaveTypeRepository) Create(ctx context.Context, lt *leavetype.LeaveType) error {
	return nil
}

func (f *fakeLeaveTypeRepository) FindByID(ctx context.Context, id string) (*leavetype.LeaveType, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeLeaveTypeRepository) FindByCode(ctx context.Context, code string) (*leavetype.LeaveType, error) {
	if f.findByCodeFn != nil {
		return f.findByCodeFn(ctx, code)
	}
	return &leavetype.LeaveType{ID: uuid.New(), Code: code}, nil
}

func (f *fakeLeaveTypeRepository) FindAll(ctx context.Context, activeOnly bool) ([]leavetype.LeaveType, error) {
	return nil, nil
}

func (f *fakeLeaveTypeRepository) Update(ctx context.Context, lt *leavetype.LeaveType) error {
	return nil
}

func setupEntitlementServiceTest(t *testing.T) (entitlement.Service, *fakeEntitlementRepository, *fakeLeaveTypeRepository) {
	t.Helper()
	repo := &fakeEntitlementRepository{}
	typeRepo := &fakeLeaveTypeRepository{}
	return entitlement.NewService(repo, typeRepo), repo, typeRepo
}

func TestEntitlementService_Balances(t *testing.T) {
	ctx := context.Background()
	userID := uuid.NewString()
	annualID := uuid.New()

	svc, repo, _ := setupEntitlementServiceTest(t)

	repo.findByUserAndYearFn = func(ctx context.Context, uid string, year int) ([]entitlement.Entitlement, error) {
		return []entitlement.Entitlement{{
			LeaveTypeID:   annualID,
			Year:          year,
			AllocatedDays: 25,
			LeaveType:     leavetype.LeaveType{ID: annualID, Code: "AL", Name: "Annual Leave"},
		}}, nil
	}
	repo.sumApprovedDaysFn = func(ctx context.Context, uid, typeID string, year int) (float64, error) {
		assert.Equal(t, annualID.String(), typeID)
		return 7, nil
	}

	balances, err := svc.Balances(ctx, userID, 2026)

	assert.NoError(t, err)
	assert.Len(t, balances, 1)
	assert.Equal(t, 25.0, balances[0].Allocated)
	assert.Equal(t, 7.0, balances[0].Used)
	assert.Equal(t, 18.0, balances[0].Remaining)
	assert.Equal(t, "AL", balances[0].LeaveTypeCode)
}

func TestEntitlementService_BalanceFor(t *testing.T) {
	ctx := context.Background()
	userID := uuid.NewString()
	typeID := uuid.NewString()

	t.Run("no grant for the year", func(t *testing.T) {
		svc, _, _ := setupEntitlementServiceTest(t)

		_, err := svc.BalanceFor(ctx, userID, typeID, 2026)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "no entitlement for this leave type")
	})

	t.Run("remaining follows approved usage", func(t *testing.T) {
		svc, repo, _ := setupEntitlementServiceTest(t)

		repo.findByUserTypeYearFn = func(ctx context.Context, uid, tid string, year int) (*entitlement.Entitlement, error) {
			return &entitlement.Entitlement{
				AllocatedDays: 10,
				LeaveType:     leavetype.LeaveType{Code: "SL", Name: "Sick Leave"},
			}, nil
		}
		repo.sumApprovedDaysFn = func(ctx context.Context, uid, tid string, year int) (float64, error) {
			return 2.5, nil
		}

		balance, err := svc.BalanceFor(ctx, userID, typeID, 2026)

		assert.NoError(t, err)
		assert.Equal(t, 7.5, balance.Remaining)
	})
}

func TestEntitlementService_Provision(t *testing.T) {
	ctx := context.Background()
	userID := uuid.NewString()

	t.Run("creates the standard grants", func(t *testing.T) {
		svc, repo, _ := setupEntitlementServiceTest(t)

		granted := make(map[float64]int)
		repo.createFn = func(ctx context.Context, e *entitlement.Entitlement) error {
			assert.Equal(t, 2026, e.Year)
			granted[e.AllocatedDays]++
			return nil
		}

		err := svc.Provision(ctx, userID, 2026)

		assert.NoError(t, err)
		assert.Equal(t, map[float64]int{25: 1, 10: 1, 5: 1}, granted)
	})

	t.Run("existing grants are kept on redelivery", func(t *testing.T) {
		svc, repo, _ := setupEntitlementServiceTest(t)

		repo.createFn = func(ctx context.Context, e *entitlement.Entitlement) error {
			return &pgconn.PgError{Code: "23505"}
		}

		err := svc.Provision(ctx, userID, 2026)

		assert.NoError(t, err)
	})

	t.Run("unseeded leave types are skipped", func(t *testing.T) {
		svc, repo, typeRepo := setupEntitlementServiceTest(t)

		typeRepo.findByCodeFn = func(ctx context.Context, code string) (*leavetype.LeaveType, error) {
			if code == leavetype.CodePersonal {
				return nil, gorm.ErrRecordNotFound
			}
			return &leavetype.LeaveType{ID: uuid.New(), Code: code}, nil
		}
		created := 0
		repo.createFn = func(ctx context.Context, e *entitlement.Entitlement) error {
			created++
			return nil
		}

		err := svc.Provision(ctx, userID, 2026)

		assert.NoError(t, err)
		assert.Equal(t, 2, created)
	})
}
