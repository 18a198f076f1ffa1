package leave_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"go-timesheet/internal/entitlement"
	entitlementerrors "go-timesheet/internal/entitlement/errors"
	"go-timesheet/internal/leave"
	"go-timesheet/internal/leavetype"
	"go-timesheet/internal/notification"
	"go-timesheet/internal/user"
)

type fakeLeaveRepository struct {
	withTxFn               func(tx *sql.Tx) leave.Repository
	createFn               func(ctx context.Context, lr *leave.LeaveRequest) error
	findByIDFn             func(ctx context.Context, id string) (*leave.LeaveRequest, error)
	findByUserFn           func(ctx context.Context, userID string, filter leave.ListFilter) ([]leave.LeaveRequest, int64, error)
	updateFn               func(ctx context.Context, lr *leave.LeaveRequest) error
	hasOverlappingFn       func(ctx context.Context, userID string, start, end time.Time, excludeID string) (bool, error)
	findApprovedInRangeFn  func(ctx context.Context, userID string, start, end time.Time) ([]leave.LeaveRequest, error)
	findPendingByManagerFn func(ctx context.Context, managerID string) ([]leave.LeaveRequest, error)
	findRecentByUserFn     func(ctx context.Context, userID string, limit int) ([]leave.LeaveRequest, error)
	findRecentDecisionsFn  func(ctx context.Context, approverID string, limit int) ([]leave.LeaveRequest, error)
}

func (f *fakeLeaveRepository) WithTx(tx *sql.Tx) leave.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeLeaveRepository) Create(ctx context.Context, lr *leave.LeaveRequest) error {
	if f.createFn != nil {
		return f.createFn(ctx, lr)
	}
	return nil
}

func (f *fakeLeaveRepository) FindByID(ctx context.Context, id string) (*leave.LeaveRequest, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (f *fakeLeaveRepository) FindByUser(ctx context.Context, userID string, filter leave.ListFilter) ([]leave.LeaveRequest, int64, error) {
	if f.findByUserFn != nil {
		return f.findByUserFn(ctx, userID, filter)
	}
	return nil, 0, nil
}

func (f *fakeLeaveRepository) Update(ctx context.Context, lr *leave.LeaveRequest) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, lr)
	}
	return nil
}

func (f *fakeLeaveRepository) HasOverlapping(ctx context.Context, userID string, start, end time.Time, excludeID string) (bool, error) {
	if f.hasOverlappingFn != nil {
		return f.hasOverlappingFn(ctx, userID, start, end, excludeID)
	}
	return false, nil
}

func (f *fakeLeaveRepository) FindApprovedInRange(ctx context.Context, userID string, start, end time.Time) ([]leave.LeaveRequest, error) {
	if f.findApprovedInRangeFn != nil {
		return f.findApprovedInRangeFn(ctx, userID, start, end)
	}
	return nil, nil
}

func (f *fakeLeaveRepository) FindPendingByManager(ctx context.Context, managerID string) ([]leave.LeaveRequest, error) {
	if f.findPendingByManagerFn != nil {
		return f.findPendingByManagerFn(ctx, managerID)
	}
	return nil, nil
}

func (f *fakeLeaveRepository) FindRecentByUser(ctx context.Context, userID string, limit int) ([]leave.LeaveRequest, error) {
	if f.findRecentByUserFn != nil {
		return f.findRecentByUserFn(ctx, userID, limit)
	}
	return nil, nil
}

func (f *fakeLeaveRepository) FindRecentDecisions(ctx context.Context, approverID string, limit int) ([]leave.LeaveRequest, error) {
	if f.findRecentDecisionsFn != nil {
		return f.findRecentDecisionsFn(ctx, approverID, limit)
	}
	return nil, nil
}

type fakeManagerChecker struct {
	isDirectManagerFn func(ctx context.Context, managerID, userID string) (bool, error)
}

func (f *fakeManagerChecker) IsDirectManager(ctx context.Context, managerID, userID string) (bool, error) {
	if f.isDirectManagerFn != nil {
		return f.isDirectManagerFn(ctx, managerID, userID)
	}
	return false, nil
}

type fakeBalanceChecker struct {
	balanceForFn func(ctx context.Context, userID, leaveTypeID string, year int) (entitlement.Balance, error)
}

func (f *fakeBalanceChecker) BalanceFor(ctx context.Context, userID, leaveTypeID string, year int) (entitlement.Balance, error) {
	if f.balanceForFn != nil {
		return f.balanceForFn(ctx, userID, leaveTypeID, year)
	}
	return entitlement.Balance{Allocated: 25, Remaining: 25}, nil
}

type fakeSender struct {
	submitted int
	alerts    int
	decisions int
	lastNote  notification.LeaveNotice
	fail      bool
}

func (f *fakeSender) SendLeaveSubmitted(ctx context.Context, n notification.LeaveNotice) error {
	f.submitted++
	f.lastNote = n
	if f.fail {
		return notification.ErrNoRecipient
	}
	return nil
}

func (f *fakeSender) SendManagerAlert(ctx context.Context, n notification.LeaveNotice) error {
	f.alerts++
	f.lastNote = n
	if f.fail {
		return notification.ErrNoRecipient
	}
	return nil
}

func (f *fakeSender) SendLeaveDecision(ctx context.Context, n notification.LeaveNotice) error {
	f.decisions++
	f.lastNote = n
	if f.fail {
		return notification.ErrNoRecipient
	}
	return nil
}

type leaveServiceDeps struct {
	db       *sql.DB
	sqlMock  sqlmock.Sqlmock
	service  leave.Service
	repo     *fakeLeaveRepository
	managers *fakeManagerChecker
	balances *fakeBalanceChecker
	sender   *fakeSender
}

func setupLeaveServiceTest(t *testing.T) *leaveServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeLeaveRepository{}
	managers := &fakeManagerChecker{}
	balances := &fakeBalanceChecker{}
	sender := &fakeSender{}
	svc := leave.NewService(db, repo, managers, balances, sender)

	return &leaveServiceDeps{
		db:       db,
		sqlMock:  sqlMock,
		service:  svc,
		repo:     repo,
		managers: managers,
		balances: balances,
		sender:   sender,
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func pendingRequest(userID, managerID uuid.UUID) *leave.LeaveRequest {
	manager := &user.User{ID: managerID, FullName: "Mona Manager", Email: "mona@example.com"}
	return &leave.LeaveRequest{
		ID:          uuid.New(),
		UserID:      userID,
		LeaveTypeID: uuid.New(),
		StartDate:   time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC),
		TotalDays:   3,
		Status:      leave.StatusPending,
		User: user.User{
			ID:             userID,
			FullName:       "Eddie Employee",
			Email:          "eddie@example.com",
			EmployeeNumber: "EMP-000001",
			ManagerID:      &managerID,
			Manager:        manager,
		},
		LeaveType: leavetype.LeaveType{Code: "AL", Name: "Annual Leave"},
	}
}

func TestLeaveService_Create(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	managerID := uuid.New()

	t.Run("success counts business days and notifies", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		var createdID string
		deps.repo.createFn = func(ctx context.Context, lr *leave.LeaveRequest) error {
			// 2030-03-04 is a Monday, Wed inclusive makes 3 days.
			assert.Equal(t, 3.0, lr.TotalDays)
			assert.Equal(t, leave.StatusPending, lr.Status)
			createdID = lr.ID.String()
			return nil
		}
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.LeaveRequest, error) {
			assert.Equal(t, createdID, id)
			return pendingRequest(userID, managerID), nil
		}

		resp, warnings, err := deps.service.Create(ctx, userID.String(), leave.CreateLeaveRequest{
			LeaveTypeID: uuid.NewString(),
			StartDate:   "2030-03-04",
			EndDate:     "2030-03-06",
			Comments:    "family trip",
		})

		assert.NoError(t, err)
		assert.Empty(t, warnings)
		assert.Equal(t, 3.0, resp.TotalDays)
		assert.Equal(t, leave.StatusPending, resp.Status)
		assert.Equal(t, 1, deps.sender.submitted)
		assert.Equal(t, 1, deps.sender.alerts)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("weekend only range has no business days", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		_, _, err := deps.service.Create(ctx, userID.String(), leave.CreateLeaveRequest{
			LeaveTypeID: uuid.NewString(),
			StartDate:   "2030-03-09",
			EndDate:     "2030-03-10",
		})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "no business days")
	})

	t.Run("end before start is rejected", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		_, _, err := deps.service.Create(ctx, userID.String(), leave.CreateLeaveRequest{
			LeaveTypeID: uuid.NewString(),
			StartDate:   "2030-03-06",
			EndDate:     "2030-03-04",
		})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "end date")
	})

	t.Run("start date in the past is rejected", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		_, _, err := deps.service.Create(ctx, userID.String(), leave.CreateLeaveRequest{
			LeaveTypeID: uuid.NewString(),
			StartDate:   "2020-03-02",
			EndDate:     "2020-03-04",
		})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "before today")
		assert.Zero(t, deps.sender.submitted)
	})

	t.Run("insufficient balance names the remaining days", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		deps.balances.balanceForFn = func(ctx context.Context, uid, typeID string, year int) (entitlement.Balance, error) {
			assert.Equal(t, 2030, year)
			return entitlement.Balance{Allocated: 25, Used: 23, Remaining: 2}, nil
		}

		_, _, err := deps.service.Create(ctx, userID.String(), leave.CreateLeaveRequest{
			LeaveTypeID: uuid.NewString(),
			StartDate:   "2030-03-04",
			EndDate:     "2030-03-06",
		})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "2 days remaining")
		assert.Zero(t, deps.sender.submitted)
	})

	t.Run("overlapping request rolls back", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.hasOverlappingFn = func(ctx context.Context, uid string, start, end time.Time, excludeID string) (bool, error) {
			assert.Empty(t, excludeID)
			return true, nil
		}

		_, _, err := deps.service.Create(ctx, userID.String(), leave.CreateLeaveRequest{
			LeaveTypeID: uuid.NewString(),
			StartDate:   "2030-03-04",
			EndDate:     "2030-03-06",
		})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "overlapping")
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("notification failure is a warning, not an error", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deps.sender.fail = true
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.LeaveRequest, error) {
			return pendingRequest(userID, managerID), nil
		}

		resp, warnings, err := deps.service.Create(ctx, userID.String(), leave.CreateLeaveRequest{
			LeaveTypeID: uuid.NewString(),
			StartDate:   "2030-03-04",
			EndDate:     "2030-03-06",
		})

		assert.NoError(t, err)
		assert.Equal(t, leave.StatusPending, resp.Status)
		assert.Len(t, warnings, 2)
	})
}

func TestLeaveService_Decide(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	managerID := uuid.New()

	t.Run("approve by direct manager", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		lr := pendingRequest(userID, managerID)
		calls := 0
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.LeaveRequest, error) {
			calls++
			return lr, nil
		}
		deps.managers.isDirectManagerFn = func(ctx context.Context, mid, uid string) (bool, error) {
			assert.Equal(t, managerID.String(), mid)
			assert.Equal(t, userID.String(), uid)
			return true, nil
		}
		deps.repo.updateFn = func(ctx context.Context, updated *leave.LeaveRequest) error {
			assert.Equal(t, leave.StatusApproved, updated.Status)
			assert.NotNil(t, updated.ApprovedAt)
			assert.Equal(t, managerID, *updated.ApprovedByID)
			return nil
		}

		resp, _, err := deps.service.Approve(ctx, managerID.String(), lr.ID.String())

		assert.NoError(t, err)
		assert.Equal(t, leave.StatusApproved, resp.Status)
		assert.Equal(t, 1, deps.sender.decisions)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("non manager cannot decide", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		lr := pendingRequest(userID, managerID)
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.LeaveRequest, error) {
			return lr, nil
		}
		deps.managers.isDirectManagerFn = func(ctx context.Context, mid, uid string) (bool, error) {
			return false, nil
		}

		_, _, err := deps.service.Approve(ctx, uuid.NewString(), lr.ID.String())

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "direct manager")
		assert.Zero(t, deps.sender.decisions)
	})

	t.Run("already decided request sends no second email", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		lr := pendingRequest(userID, managerID)
		lr.Status = leave.StatusApproved
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.LeaveRequest, error) {
			return lr, nil
		}
		deps.managers.isDirectManagerFn = func(ctx context.Context, mid, uid string) (bool, error) {
			return true, nil
		}

		_, _, err := deps.service.Approve(ctx, managerID.String(), lr.ID.String())

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "pending")
		assert.Zero(t, deps.sender.decisions)
	})

	t.Run("reject carries the reason into the notice", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		lr := pendingRequest(userID, managerID)
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.LeaveRequest, error) {
			return lr, nil
		}
		deps.managers.isDirectManagerFn = func(ctx context.Context, mid, uid string) (bool, error) {
			return true, nil
		}

		resp, _, err := deps.service.Reject(ctx, managerID.String(), lr.ID.String(), "project deadline")

		assert.NoError(t, err)
		assert.Equal(t, leave.StatusRejected, resp.Status)
		assert.Equal(t, "project deadline", resp.RejectionReason)
		assert.Equal(t, "project deadline", deps.sender.lastNote.RejectionReason)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestLeaveService_Cancel(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	managerID := uuid.New()

	t.Run("owner cancels a pending request", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		lr := pendingRequest(userID, managerID)
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.LeaveRequest, error) {
			return lr, nil
		}
		deps.repo.updateFn = func(ctx context.Context, updated *leave.LeaveRequest) error {
			assert.Equal(t, leave.StatusCancelled, updated.Status)
			return nil
		}

		resp, err := deps.service.Cancel(ctx, userID.String(), lr.ID.String())

		assert.NoError(t, err)
		assert.Equal(t, leave.StatusCancelled, resp.Status)
	})

	t.Run("only the owner may cancel", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		lr := pendingRequest(userID, managerID)
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.LeaveRequest, error) {
			return lr, nil
		}

		_, err := deps.service.Cancel(ctx, managerID.String(), lr.ID.String())

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "owner")
	})

	t.Run("approved request cannot be cancelled", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		lr := pendingRequest(userID, managerID)
		lr.Status = leave.StatusApproved
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.LeaveRequest, error) {
			return lr, nil
		}

		_, err := deps.service.Cancel(ctx, userID.String(), lr.ID.String())

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "pending")
	})
}

func TestLeaveService_Dashboard(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	managerID := uuid.New()

	deps := setupLeaveServiceTest(t)
	defer deps.db.Close()

	deps.repo.findRecentByUserFn = func(ctx context.Context, uid string, limit int) ([]leave.LeaveRequest, error) {
		assert.Equal(t, 5, limit)
		return []leave.LeaveRequest{*pendingRequest(managerID, userID)}, nil
	}
	deps.repo.findPendingByManagerFn = func(ctx context.Context, mid string) ([]leave.LeaveRequest, error) {
		return []leave.LeaveRequest{*pendingRequest(userID, managerID), *pendingRequest(userID, managerID)}, nil
	}
	deps.repo.findRecentDecisionsFn = func(ctx context.Context, approverID string, limit int) ([]leave.LeaveRequest, error) {
		assert.Equal(t, managerID.String(), approverID)
		assert.Equal(t, 10, limit)
		decided := pendingRequest(userID, managerID)
		decided.Status = leave.StatusApproved
		return []leave.LeaveRequest{*decided}, nil
	}

	resp, err := deps.service.Dashboard(ctx, managerID.String())

	assert.NoError(t, err)
	assert.Len(t, resp.RecentRequests, 1)
	assert.Equal(t, 2, resp.PendingCount)
	assert.Len(t, resp.RecentDecisions, 1)
	assert.Equal(t, leave.StatusApproved, resp.RecentDecisions[0].Status)
}

func TestLeaveService_List(t *testing.T) {
	ctx := context.Background()
	userID := uuid.NewString()

	t.Run("date range filter reaches the repository", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		deps.repo.findByUserFn = func(ctx context.Context, uid string, filter leave.ListFilter) ([]leave.LeaveRequest, int64, error) {
			assert.Equal(t, "2026-01-01", filter.DateFrom)
			assert.Equal(t, "2026-06-30", filter.DateTo)
			return nil, 0, nil
		}

		_, _, err := deps.service.List(ctx, userID, leave.ListFilter{
			DateFrom: "2026-01-01",
			DateTo:   "2026-06-30",
		})

		assert.NoError(t, err)
	})

	t.Run("malformed filter dates are rejected", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		_, _, err := deps.service.List(ctx, userID, leave.ListFilter{DateFrom: "January 1st"})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "date")
	})
}

func TestLeaveService_CalculateDays(t *testing.T) {
	ctx := context.Background()
	userID := uuid.NewString()

	t.Run("day count only without a leave type", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		deps.balances.balanceForFn = func(ctx context.Context, uid, typeID string, year int) (entitlement.Balance, error) {
			t.Fatal("balance should not be consulted")
			return entitlement.Balance{}, nil
		}

		resp, err := deps.service.CalculateDays(ctx, userID, leave.CalculateDaysRequest{
			StartDate: "2026-03-02",
			EndDate:   "2026-03-06",
		})

		assert.NoError(t, err)
		assert.Equal(t, 5.0, resp.TotalDays)
		assert.False(t, resp.BalanceWarning)
	})

	t.Run("warns when the request exceeds the balance", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		deps.balances.balanceForFn = func(ctx context.Context, uid, typeID string, year int) (entitlement.Balance, error) {
			assert.Equal(t, 2026, year)
			return entitlement.Balance{LeaveTypeName: "Annual Leave", Allocated: 25, Used: 22, Remaining: 3}, nil
		}

		resp, err := deps.service.CalculateDays(ctx, userID, leave.CalculateDaysRequest{
			StartDate:   "2026-03-02",
			EndDate:     "2026-03-06",
			LeaveTypeID: uuid.NewString(),
		})

		assert.NoError(t, err)
		assert.Equal(t, 5.0, resp.TotalDays)
		assert.True(t, resp.BalanceWarning)
		assert.Equal(t,
			"you have 3 days remaining for Annual Leave, but you're requesting 5 days",
			resp.BalanceMessage)
	})

	t.Run("missing entitlement is a warning, not an error", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		deps.balances.balanceForFn = func(ctx context.Context, uid, typeID string, year int) (entitlement.Balance, error) {
			return entitlement.Balance{}, entitlementerrors.ErrNoEntitlement
		}

		resp, err := deps.service.CalculateDays(ctx, userID, leave.CalculateDaysRequest{
			StartDate:   "2026-03-02",
			EndDate:     "2026-03-06",
			LeaveTypeID: uuid.NewString(),
		})

		assert.NoError(t, err)
		assert.True(t, resp.BalanceWarning)
		assert.Equal(t, "no leave entitlement found for this leave type in 2026", resp.BalanceMessage)
	})

	t.Run("sufficient balance needs no warning", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		resp, err := deps.service.CalculateDays(ctx, userID, leave.CalculateDaysRequest{
			StartDate:   "2026-03-02",
			EndDate:     "2026-03-06",
			LeaveTypeID: uuid.NewString(),
		})

		assert.NoError(t, err)
		assert.False(t, resp.BalanceWarning)
		assert.Empty(t, resp.BalanceMessage)
	})
}

func TestLeaveService_ApprovedDates(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	deps := setupLeaveServiceTest(t)
	defer deps.db.Close()

	weekStart := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	weekEnd := time.Date(2026, 3, 6, 0, 0, 0, 0, time.UTC)

	deps.repo.findApprovedInRangeFn = func(ctx context.Context, uid string, start, end time.Time) ([]leave.LeaveRequest, error) {
		// Request starts the Friday before and runs through Tuesday;
		// only Monday and Tuesday fall inside the asked window.
		return []leave.LeaveRequest{{
			StartDate: time.Date(2026, 2, 27, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC),
			Status:    leave.StatusApproved,
			LeaveType: leavetype.LeaveType{Code: "AL"},
		}}, nil
	}

	dates, err := deps.service.ApprovedDates(ctx, userID.String(), weekStart, weekEnd)

	assert.NoError(t, err)
	assert.Equal(t, map[string]string{
		"2026-03-02": "AL",
		"2026-03-03": "AL",
	}, dates)
}
