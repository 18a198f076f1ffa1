package leave

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-timesheet/internal/entitlement"
	entitlementerrors "go-timesheet/internal/entitlement/errors"
	leaveerrors "go-timesheet/internal/leave/errors"
	"go-timesheet/internal/notification"
	"go-timesheet/internal/shared/contextutil"
	"go-timesheet/internal/user"
	"go-timesheet/internal/workday"
)

const dateLayout = "2006-01-02"

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	// Create validates dates, balance and overlap, then stores a
	// pending request. The returned warnings list names notification
	// deliveries that failed, the request itself is already saved.
	Create(ctx context.Context, userID string, req CreateLeaveRequest) (LeaveResponse, []string, error)
	List(ctx context.Context, userID string, filter ListFilter) ([]LeaveResponse, int64, error)
	GetByID(ctx context.Context, viewerID, viewerRole, id string) (LeaveResponse, error)
	Approve(ctx context.Context, approverID, id string) (LeaveResponse, []string, error)
	Reject(ctx context.Context, approverID, id, reason string) (LeaveResponse, []string, error)
	Cancel(ctx context.Context, userID, id string) (LeaveResponse, error)
	PendingApprovals(ctx context.Context, managerID string) ([]LeaveResponse, error)
	Dashboard(ctx context.Context, userID string) (DashboardResponse, error)
	// CalculateDays previews the business-day count for a date range
	// and, when a leave type is given, warns about the balance.
	CalculateDays(ctx context.Context, userID string, req CalculateDaysRequest) (CalculateDaysResponse, error)
	// ApprovedDates expands the user's approved requests in [start, end]
	// into business-day date strings mapped to the leave type code.
	ApprovedDates(ctx context.Context, userID string, start, end time.Time) (map[string]string, error)
}

// ManagerChecker is the slice of the user service the approval flow
// needs.
type ManagerChecker interface {
	IsDirectManager(ctx context.Context, managerID, userID string) (bool, error)
}

// BalanceChecker resolves the entitlement backing a request.
type BalanceChecker interface {
	BalanceFor(ctx context.Context, userID, leaveTypeID string, year int) (entitlement.Balance, error)
}

type service struct {
	db           *sql.DB
	repo         Repository
	managers     ManagerChecker
	entitlements BalanceChecker
	sender       notification.Sender
	logger       *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	managers ManagerChecker,
	entitlements BalanceChecker,
	sender notification.Sender,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{
		db:           db,
		repo:         repo,
		managers:     managers,
		entitlements: entitlements,
		sender:       sender,
		logger:       l,
	}
}

func parseRange(startDate, endDate string) (time.Time, time.Time, error) {
	start, err := time.ParseInLocation(dateLayout, startDate, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	end, err := time.ParseInLocation(dateLayout, endDate, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, leaveerrors.ErrEndBeforeStart
	}
	return start, end, nil
}

func (s *service) Create(ctx context.Context, userID string, req CreateLeaveRequest) (LeaveResponse, []string, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create leave request requested",
		zap.String("request_id", rid),
		zap.String("user_id", userID),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	start, end, err := parseRange(req.StartDate, req.EndDate)
	if err != nil {
		return LeaveResponse{}, nil, err
	}

	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if start.Before(today) {
		return LeaveResponse{}, nil, leaveerrors.ErrStartInPast
	}

	totalDays := float64(workday.Count(start, end))
	if totalDays == 0 {
		return LeaveResponse{}, nil, leaveerrors.ErrNoBusinessDays
	}

	uid, err := uuid.Parse(userID)
	if err != nil {
		return LeaveResponse{}, nil, leaveerrors.ErrLeaveNotFound
	}
	typeID, err := uuid.Parse(req.LeaveTypeID)
	if err != nil {
		return LeaveResponse{}, nil, leaveerrors.ErrInvalidDateFormat
	}

	balance, err := s.entitlements.BalanceFor(ctx, userID, req.LeaveTypeID, start.Year())
	if err != nil {
		return LeaveResponse{}, nil, err
	}
	if balance.Remaining < totalDays {
		s.logger.Warn("create leave request rejected on balance",
			zap.String("user_id", userID),
			zap.Float64("remaining", balance.Remaining),
			zap.Float64("requested", totalDays),
		)
		return LeaveResponse{}, nil, leaveerrors.InsufficientBalance(balance.Remaining)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create leave request begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveResponse{}, nil, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	overlapping, err := qtx.HasOverlapping(ctx, userID, start, end, "")
	if err != nil {
		s.logger.Error("overlap check failed", zap.Error(err))
		return LeaveResponse{}, nil, err
	}
	if overlapping {
		return LeaveResponse{}, nil, leaveerrors.ErrOverlap
	}

	lr := &LeaveRequest{
		ID:          uuid.New(),
		UserID:      uid,
		LeaveTypeID: typeID,
		StartDate:   start,
		EndDate:     end,
		TotalDays:   totalDays,
		Comments:    req.Comments,
		Status:      StatusPending,
	}
	if err := qtx.Create(ctx, lr); err != nil {
		s.logger.Error("create leave request persist failed", zap.Error(err))
		return LeaveResponse{}, nil, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("commit failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveResponse{}, nil, err
	}

	loaded, err := s.repo.FindByID(ctx, lr.ID.String())
	if err != nil {
		return LeaveResponse{}, nil, mapRepositoryError(err)
	}

	warnings := s.notifySubmitted(ctx, loaded)

	s.logger.Info("create leave request success",
		zap.String("request_id", rid),
		zap.String("leave_request_id", lr.ID.String()),
		zap.Float64("total_days", totalDays),
	)
	return mapToResponse(*loaded), warnings, nil
}

func (s *service) notifySubmitted(ctx context.Context, lr *LeaveRequest) []string {
	var warnings []string

	notice := buildNotice(lr)
	if err := s.sender.SendLeaveSubmitted(ctx, notice); err != nil {
		s.logger.Warn("leave submitted notification failed",
			zap.String("leave_request_id", lr.ID.String()),
			zap.Error(err),
		)
		warnings = append(warnings, "confirmation email could not be sent")
	}

	if lr.User.Manager == nil {
		warnings = append(warnings, "no manager assigned, approval alert not sent")
		return warnings
	}
	if err := s.sender.SendManagerAlert(ctx, notice); err != nil {
		s.logger.Warn("manager alert notification failed",
			zap.String("leave_request_id", lr.ID.String()),
			zap.Error(err),
		)
		warnings = append(warnings, "manager alert email could not be sent")
	}
	return warnings
}

func (s *service) List(ctx context.Context, userID string, filter ListFilter) ([]LeaveResponse, int64, error) {
	if filter.Status != "" && !ValidStatus(filter.Status) {
		return nil, 0, leaveerrors.ErrLeaveNotFound
	}
	for _, d := range []string{filter.DateFrom, filter.DateTo} {
		if d == "" {
			continue
		}
		if _, err := time.ParseInLocation(dateLayout, d, time.UTC); err != nil {
			return nil, 0, leaveerrors.ErrInvalidDateFormat
		}
	}

	requests, total, err := s.repo.FindByUser(ctx, userID, filter)
	if err != nil {
		s.logger.Error("list leave requests failed", zap.Error(err))
		return nil, 0, mapRepositoryError(err)
	}
	return mapToListResponse(requests), total, nil
}

func (s *service) GetByID(ctx context.Context, viewerID, viewerRole, id string) (LeaveResponse, error) {
	lr, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return LeaveResponse{}, mapRepositoryError(err)
	}

	if !s.canView(ctx, viewerID, viewerRole, lr) {
		// Hide existence from unrelated users.
		return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
	}
	return mapToResponse(*lr), nil
}

func (s *service) canView(ctx context.Context, viewerID, viewerRole string, lr *LeaveRequest) bool {
	if lr.UserID.String() == viewerID || viewerRole == user.RoleAdmin {
		return true
	}
	isManager, err := s.managers.IsDirectManager(ctx, viewerID, lr.UserID.String())
	if err != nil {
		s.logger.Error("manager check failed", zap.Error(err))
		return false
	}
	return isManager
}

func (s *service) Approve(ctx context.Context, approverID, id string) (LeaveResponse, []string, error) {
	return s.decide(ctx, approverID, id, StatusApproved, "")
}

func (s *service) Reject(ctx context.Context, approverID, id, reason string) (LeaveResponse, []string, error) {
	return s.decide(ctx, approverID, id, StatusRejected, reason)
}

// decide performs the PENDING -> APPROVED/REJECTED transition. The
// pending check doubles as the notification guard: a request that has
// already been decided cannot fire a second decision email.
func (s *service) decide(ctx context.Context, approverID, id, newStatus, reason string) (LeaveResponse, []string, error) {
	rid := contextutil.GetRequestID(ctx)

	lr, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return LeaveResponse{}, nil, mapRepositoryError(err)
	}

	isManager, err := s.managers.IsDirectManager(ctx, approverID, lr.UserID.String())
	if err != nil {
		s.logger.Error("manager check failed", zap.Error(err))
		return LeaveResponse{}, nil, err
	}
	if !isManager {
		s.logger.Warn("decision denied, not the direct manager",
			zap.String("approver_id", approverID),
			zap.String("leave_request_id", id),
		)
		return LeaveResponse{}, nil, leaveerrors.ErrNotDirectManager
	}

	if lr.Status != StatusPending {
		return LeaveResponse{}, nil, leaveerrors.ErrNotPending
	}

	approverUUID, err := uuid.Parse(approverID)
	if err != nil {
		return LeaveResponse{}, nil, leaveerrors.ErrNotDirectManager
	}
	now := time.Now().UTC()
	lr.Status = newStatus
	lr.ApprovedByID = &approverUUID
	lr.ApprovedAt = &now
	lr.RejectionReason = reason

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("decide begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveResponse{}, nil, err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Update(ctx, lr); err != nil {
		s.logger.Error("decide persist failed", zap.Error(err))
		return LeaveResponse{}, nil, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("commit failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveResponse{}, nil, err
	}

	loaded, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return LeaveResponse{}, nil, mapRepositoryError(err)
	}

	var warnings []string
	if err := s.sender.SendLeaveDecision(ctx, buildNotice(loaded)); err != nil {
		s.logger.Warn("leave decision notification failed",
			zap.String("leave_request_id", id),
			zap.Error(err),
		)
		warnings = append(warnings, "decision email could not be sent")
	}

	s.logger.Info("leave request decided",
		zap.String("request_id", rid),
		zap.String("leave_request_id", id),
		zap.String("status", newStatus),
		zap.String("approver_id", approverID),
	)
	return mapToResponse(*loaded), warnings, nil
}

func (s *service) Cancel(ctx context.Context, userID, id string) (LeaveResponse, error) {
	lr, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return LeaveResponse{}, mapRepositoryError(err)
	}

	if lr.UserID.String() != userID {
		return LeaveResponse{}, leaveerrors.ErrNotRequestOwner
	}
	if lr.Status != StatusPending {
		return LeaveResponse{}, leaveerrors.ErrNotPending
	}

	lr.Status = StatusCancelled
	if err := s.repo.Update(ctx, lr); err != nil {
		s.logger.Error("cancel persist failed", zap.Error(err))
		return LeaveResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("leave request cancelled",
		zap.String("leave_request_id", id),
		zap.String("user_id", userID),
	)
	return mapToResponse(*lr), nil
}

func (s *service) PendingApprovals(ctx context.Context, managerID string) ([]LeaveResponse, error) {
	requests, err := s.repo.FindPendingByManager(ctx, managerID)
	if err != nil {
		s.logger.Error("pending approvals failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(requests), nil
}

func (s *service) Dashboard(ctx context.Context, userID string) (DashboardResponse, error) {
	recent, err := s.repo.FindRecentByUser(ctx, userID, 5)
	if err != nil {
		s.logger.Error("dashboard recent requests failed", zap.Error(err))
		return DashboardResponse{}, mapRepositoryError(err)
	}

	pending, err := s.repo.FindPendingByManager(ctx, userID)
	if err != nil {
		s.logger.Error("dashboard pending approvals failed", zap.Error(err))
		return DashboardResponse{}, mapRepositoryError(err)
	}

	decisions, err := s.repo.FindRecentDecisions(ctx, userID, 10)
	if err != nil {
		s.logger.Error("dashboard recent decisions failed", zap.Error(err))
		return DashboardResponse{}, mapRepositoryError(err)
	}

	return DashboardResponse{
		RecentRequests:   mapToListResponse(recent),
		PendingApprovals: mapToListResponse(pending),
		PendingCount:     len(pending),
		RecentDecisions:  mapToListResponse(decisions),
	}, nil
}

func (s *service) CalculateDays(ctx context.Context, userID string, req CalculateDaysRequest) (CalculateDaysResponse, error) {
	start, end, err := parseRange(req.StartDate, req.EndDate)
	if err != nil {
		return CalculateDaysResponse{}, err
	}

	resp := CalculateDaysResponse{
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		TotalDays: float64(workday.Count(start, end)),
	}
	if req.LeaveTypeID == "" {
		return resp, nil
	}

	balance, err := s.entitlements.BalanceFor(ctx, userID, req.LeaveTypeID, start.Year())
	if errors.Is(err, entitlementerrors.ErrNoEntitlement) {
		resp.BalanceWarning = true
		resp.BalanceMessage = fmt.Sprintf("no leave entitlement found for this leave type in %d", start.Year())
		return resp, nil
	}
	if err != nil {
		return CalculateDaysResponse{}, err
	}

	if resp.TotalDays > balance.Remaining {
		resp.BalanceWarning = true
		resp.BalanceMessage = fmt.Sprintf(
			"you have %g days remaining for %s, but you're requesting %g days",
			balance.Remaining, balance.LeaveTypeName, resp.TotalDays,
		)
	}
	return resp, nil
}

func (s *service) ApprovedDates(ctx context.Context, userID string, start, end time.Time) (map[string]string, error) {
	requests, err := s.repo.FindApprovedInRange(ctx, userID, start, end)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	dates := make(map[string]string)
	for _, lr := range requests {
		for d := lr.StartDate; !d.After(lr.EndDate); d = d.AddDate(0, 0, 1) {
			if d.Before(start) || d.After(end) || !workday.IsBusinessDay(d) {
				continue
			}
			dates[d.Format(dateLayout)] = lr.LeaveType.Code
		}
	}
	return dates, nil
}

func mapRepositoryError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return leaveerrors.ErrLeaveNotFound
	}
	return err
}

func buildNotice(lr *LeaveRequest) notification.LeaveNotice {
	n := notification.LeaveNotice{
		RequesterName:   lr.User.FullName,
		RequesterEmail:  lr.User.Email,
		EmployeeNumber:  lr.User.EmployeeNumber,
		LeaveTypeName:   lr.LeaveType.Name,
		StartDate:       lr.StartDate.Format(dateLayout),
		EndDate:         lr.EndDate.Format(dateLayout),
		TotalDays:       lr.TotalDays,
		Status:          lr.Status,
		Comments:        lr.Comments,
		RejectionReason: lr.RejectionReason,
	}
	if lr.User.Manager != nil {
		n.ManagerName = lr.User.Manager.FullName
		n.ManagerEmail = lr.User.Manager.Email
	}
	if lr.ApprovedBy != nil {
		n.ApproverName = lr.ApprovedBy.FullName
	}
	return n
}

func mapToResponse(lr LeaveRequest) LeaveResponse {
	resp := LeaveResponse{
		ID:              lr.ID.String(),
		UserID:          lr.UserID.String(),
		UserName:        lr.User.FullName,
		EmployeeNumber:  lr.User.EmployeeNumber,
		LeaveTypeID:     lr.LeaveTypeID.String(),
		LeaveTypeCode:   lr.LeaveType.Code,
		LeaveTypeName:   lr.LeaveType.Name,
		StartDate:       lr.StartDate.Format(dateLayout),
		EndDate:         lr.EndDate.Format(dateLayout),
		TotalDays:       lr.TotalDays,
		Comments:        lr.Comments,
		Status:          lr.Status,
		RejectionReason: lr.RejectionReason,
		CreatedAt:       lr.CreatedAt.UTC().Format(time.RFC3339),
	}
	if lr.ApprovedBy != nil {
		resp.ApprovedBy = lr.ApprovedBy.FullName
	}
	if lr.ApprovedAt != nil {
		resp.ApprovedAt = lr.ApprovedAt.UTC().Format(time.RFC3339)
	}
	return resp
}

func mapToListResponse(requests []LeaveRequest) []LeaveResponse {
	resp := make([]LeaveResponse, 0, len(requests))
	for _, lr := range requests {
		resp = append(resp, mapToResponse(lr))
	}
	return resp
}
