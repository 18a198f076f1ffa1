package leave_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"go-timesheet/internal/leave"
	leaveerrors "go-timesheet/internal/leave/errors"
	"go-timesheet/internal/shared/contextutil"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiEnvelope struct {
	Ok       bool            `json:"ok"`
	Data     json.RawMessage `json:"data"`
	Warnings []string        `json:"warnings"`
	Error    *apiError       `json:"error"`
}

func decodeEnvelope(t *testing.T, body []byte) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	err := json.Unmarshal(body, &env)
	assert.NoError(t, err)
	return env
}

type fakeLeaveService struct {
	createFn           func(ctx context.Context, userID string, req leave.CreateLeaveRequest) (leave.LeaveResponse, []string, error)
	listFn             func(ctx context.Context, userID string, filter leave.ListFilter) ([]leave.LeaveResponse, int64, error)
	getByIDFn          func(ctx context.Context, viewerID, viewerRole, id string) (leave.LeaveResponse, error)
	approveFn          func(ctx context.Context, approverID, id string) (leave.LeaveResponse, []string, error)
	rejectFn           func(ctx context.Context, approverID, id, reason string) (leave.LeaveResponse, []string, error)
	cancelFn           func(ctx context.Context, userID, id string) (leave.LeaveResponse, error)
	pendingApprovalsFn func(ctx context.Context, managerID string) ([]leave.LeaveResponse, error)
	dashboardFn        func(ctx context.Context, userID string) (leave.DashboardResponse, error)
	calculateDaysFn    func(ctx context.Context, userID string, req leave.CalculateDaysRequest) (leave.CalculateDaysResponse, error)
	approvedDatesFn    func(ctx context.Context, userID string, start, end time.Time) (map[string]string, error)
}

func (f *fakeLeaveService) Create(ctx context.Context, userID string, req leave.CreateLeaveRequest) (leave.LeaveResponse, []string, error) {
	return f.createFn(ctx, userID, req)
}

func (f *fakeLeaveService) List(ctx context.Context, userID string, filter leave.ListFilter) ([]leave.LeaveResponse, int64, error) {
	return f.listFn(ctx, userID, filter)
}

func (f *fakeLeaveService) GetByID(ctx context.Context, viewerID, viewerRole, id string) (leave.LeaveResponse, error) {
	return f.getByIDFn(ctx, viewerID, viewerRole, id)
}

func (f *fakeLeaveService) Approve(ctx context.Context, approverID, id string) (leave.LeaveResponse, []string, error) {
	return f.approveFn(ctx, approverID, id)
}

func (f *fakeLeaveService) Reject(ctx context.Context, approverID, id, reason string) (leave.LeaveResponse, []string, error) {
	return f.rejectFn(ctx, approverID, id, reason)
}

func (f *fakeLeaveService) Cancel(ctx context.Context, userID, id string) (leave.LeaveResponse, error) {
	return f.cancelFn(ctx, userID, id)
}

func (f *fakeLeaveService) PendingApprovals(ctx context.Context, managerID string) ([]leave.LeaveResponse, error) {
	return f.pendingApprovalsFn(ctx, managerID)
}

func (f *fakeLeaveService) Dashboard(ctx context.Context, userID string) (leave.DashboardResponse, error) {
	return f.dashboardFn(ctx, userID)
}

func (f *fakeLeaveService) CalculateDays(ctx context.Context, userID string, req leave.CalculateDaysRequest) (leave.CalculateDaysResponse, error) {
	return f.calculateDaysFn(ctx, userID, req)
}

func (f *fakeLeaveService) ApprovedDates(ctx context.Context, userID string, start, end time.Time) (map[string]string, error) {
	return f.approvedDatesFn(ctx, userID, start, end)
}

func authedRequest(req *http.Request, userID string) *http.Request {
	return req.WithContext(contextutil.WithUserID(req.Context(), userID))
}

func TestLeaveHandler_Create(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		userID := uuid.NewString()

		svc := &fakeLeaveService{
			createFn: func(ctx context.Context, uid string, req leave.CreateLeaveRequest) (leave.LeaveResponse, []string, error) {
				assert.Equal(t, userID, uid)
				assert.Equal(t, "2026-03-02", req.StartDate)
				return leave.LeaveResponse{
					ID:        uuid.NewString(),
					UserID:    uid,
					StartDate: req.StartDate,
					EndDate:   req.EndDate,
					TotalDays: 3,
					Status:    leave.StatusPending,
				}, nil, nil
			},
		}

		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"leave_type_id":"` + uuid.NewString() + `","start_date":"2026-03-02","end_date":"2026-03-04"}`
		c.Request = authedRequest(
			httptest.NewRequest(http.MethodPost, "/leave-requests", strings.NewReader(body)), userID)
		c.Request.Header.Set("Content-Type", "application/json")

		h.Create(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
		assert.Empty(t, env.Warnings)
		var got leave.LeaveResponse
		assert.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Equal(t, leave.StatusPending, got.Status)
		assert.Equal(t, 3.0, got.TotalDays)
	})

	t.Run("notification warnings surface in the envelope", func(t *testing.T) {
		svc := &fakeLeaveService{
			createFn: func(ctx context.Context, uid string, req leave.CreateLeaveRequest) (leave.LeaveResponse, []string, error) {
				return leave.LeaveResponse{Status: leave.StatusPending},
					[]string{"confirmation email could not be sent"}, nil
			},
		}

		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"leave_type_id":"` + uuid.NewString() + `","start_date":"2026-03-02","end_date":"2026-03-04"}`
		c.Request = authedRequest(
			httptest.NewRequest(http.MethodPost, "/leave-requests", strings.NewReader(body)), uuid.NewString())
		c.Request.Header.Set("Content-Type", "application/json")

		h.Create(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
		assert.Equal(t, []string{"confirmation email could not be sent"}, env.Warnings)
	})

	t.Run("missing body fails validation", func(t *testing.T) {
		h := leave.NewHandler(&fakeLeaveService{})
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/leave-requests", strings.NewReader(`{}`))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		assert.NotNil(t, env.Error)
	})

	t.Run("service error maps to its status", func(t *testing.T) {
		svc := &fakeLeaveService{
			createFn: func(ctx context.Context, uid string, req leave.CreateLeaveRequest) (leave.LeaveResponse, []string, error) {
				return leave.LeaveResponse{}, nil, leaveerrors.ErrOverlap
			},
		}

		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"leave_type_id":"` + uuid.NewString() + `","start_date":"2026-03-02","end_date":"2026-03-04"}`
		c.Request = authedRequest(
			httptest.NewRequest(http.MethodPost, "/leave-requests", strings.NewReader(body)), uuid.NewString())
		c.Request.Header.Set("Content-Type", "application/json")

		h.Create(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		assert.Contains(t, env.Error.Message, "overlapping")
	})
}

func TestLeaveHandler_Reject(t *testing.T) {
	t.Run("reason is required", func(t *testing.T) {
		h := leave.NewHandler(&fakeLeaveService{})
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/leave-requests/x/reject", strings.NewReader(`{}`))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Reject(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("reason reaches the service", func(t *testing.T) {
		approverID := uuid.NewString()
		requestID := uuid.NewString()

		svc := &fakeLeaveService{
			rejectFn: func(ctx context.Context, aid, id, reason string) (leave.LeaveResponse, []string, error) {
				assert.Equal(t, approverID, aid)
				assert.Equal(t, requestID, id)
				assert.Equal(t, "project deadline", reason)
				return leave.LeaveResponse{Status: leave.StatusRejected, RejectionReason: reason}, nil, nil
			},
		}

		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = authedRequest(
			httptest.NewRequest(http.MethodPost, "/leave-requests/"+requestID+"/reject",
				strings.NewReader(`{"reason":"project deadline"}`)), approverID)
		c.Request.Header.Set("Content-Type", "application/json")
		c.Params = gin.Params{{Key: "id", Value: requestID}}

		h.Reject(c)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
	})
}

func TestLeaveHandler_List(t *testing.T) {
	userID := uuid.NewString()

	svc := &fakeLeaveService{
		listFn: func(ctx context.Context, uid string, filter leave.ListFilter) ([]leave.LeaveResponse, int64, error) {
			assert.Equal(t, userID, uid)
			assert.Equal(t, leave.StatusPending, filter.Status)
			assert.Equal(t, "2026-01-01", filter.DateFrom)
			assert.Equal(t, "2026-06-30", filter.DateTo)
			assert.Equal(t, 2, filter.Page)
			return []leave.LeaveResponse{{Status: leave.StatusPending}}, 14, nil
		},
	}

	h := leave.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = authedRequest(
		httptest.NewRequest(http.MethodGet,
			"/leave-requests?status=PENDING&page=2&date_from=2026-01-01&date_to=2026-06-30", nil), userID)

	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var env struct {
		Ok   bool `json:"ok"`
		Meta struct {
			Total      int64 `json:"total"`
			TotalPages int   `json:"totalPages"`
			Page       int   `json:"page"`
		} `json:"meta"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.True(t, env.Ok)
	assert.Equal(t, int64(14), env.Meta.Total)
	assert.Equal(t, 2, env.Meta.TotalPages)
	assert.Equal(t, 2, env.Meta.Page)
}

func TestLeaveHandler_CalculateDays(t *testing.T) {
	userID := uuid.NewString()
	typeID := uuid.NewString()

	svc := &fakeLeaveService{
		calculateDaysFn: func(ctx context.Context, uid string, req leave.CalculateDaysRequest) (leave.CalculateDaysResponse, error) {
			assert.Equal(t, userID, uid)
			assert.Equal(t, typeID, req.LeaveTypeID)
			return leave.CalculateDaysResponse{
				StartDate:      req.StartDate,
				EndDate:        req.EndDate,
				TotalDays:      5,
				BalanceWarning: true,
				BalanceMessage: "you have 3 days remaining for Annual Leave, but you're requesting 5 days",
			}, nil
		},
	}

	h := leave.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = authedRequest(httptest.NewRequest(http.MethodGet,
		"/leave-requests/calculate-days?start_date=2026-03-02&end_date=2026-03-06&leave_type_id="+typeID, nil), userID)

	h.CalculateDays(c)

	assert.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w.Body.Bytes())
	assert.True(t, env.Ok)
	var got leave.CalculateDaysResponse
	assert.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, 5.0, got.TotalDays)
	assert.True(t, got.BalanceWarning)
	assert.Contains(t, got.BalanceMessage, "3 days remaining")
}
