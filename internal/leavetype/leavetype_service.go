package leavetype

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"

	leavetypeerrors "go-timesheet/internal/leavetype/errors"
	"go-timesheet/internal/shared/contextutil"
)

//go:generate mockgen -source=leavetype_service.go -destination=mock/leavetype_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateLeaveTypeRequest) (LeaveTypeResponse, error)
	GetAll(ctx context.Context, activeOnly bool) ([]LeaveTypeResponse, error)
	GetByID(ctx context.Context, id string) (LeaveTypeResponse, error)
	Update(ctx context.Context, id string, req UpdateLeaveTypeRequest) (LeaveTypeResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("leavetype.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leavetype.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateLeaveTypeRequest) (LeaveTypeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create leave type requested",
		zap.String("request_id", rid),
		zap.String("code", req.Code),
	)

	lt := &LeaveType{
		Code:             req.Code,
		Name:             req.Name,
		Description:      req.Description,
		RequiresApproval: true,
		Active:           true,
	}
	if req.RequiresApproval != nil {
		lt.RequiresApproval = *req.RequiresApproval
	}

	if err := s.repo.Create(ctx, lt); err != nil {
		s.logger.Error("create leave type persist failed", zap.Error(err))
		return LeaveTypeResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("create leave type success",
		zap.String("request_id", rid),
		zap.String("leave_type_id", lt.ID.String()),
	)
	return mapToResponse(*lt), nil
}

func (s *service) GetAll(ctx context.Context, activeOnly bool) ([]LeaveTypeResponse, error) {
	types, err := s.repo.FindAll(ctx, activeOnly)
	if err != nil {
		s.logger.Error("get all leave types failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	resp := make([]LeaveTypeResponse, 0, len(types))
	for _, lt := range types {
		resp = append(resp, mapToResponse(lt))
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (LeaveTypeResponse, error) {
	lt, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.logger.Error("get leave type by id failed", zap.Error(err))
		return LeaveTypeResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*lt), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateLeaveTypeRequest) (LeaveTypeResponse, error) {
	lt, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.logger.Error("update leave type load failed", zap.Error(err))
		return LeaveTypeResponse{}, mapRepositoryError(err)
	}

	lt.Name = req.Name
	lt.Description = req.Description
	if req.RequiresApproval != nil {
		lt.RequiresApproval = *req.RequiresApproval
	}
	if req.Active != nil {
		lt.Active = *req.Active
	}

	if err := s.repo.Update(ctx, lt); err != nil {
		s.logger.Error("update leave type persist failed", zap.Error(err))
		return LeaveTypeResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*lt), nil
}

func mapRepositoryError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return leavetypeerrors.ErrLeaveTypeNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return leavetypeerrors.ErrCodeTaken
	}
	return err
}

func mapToResponse(lt LeaveType) LeaveTypeResponse {
	return LeaveTypeResponse{
		ID:               lt.ID.String(),
		Code:             lt.Code,
		Name:             lt.Name,
		Description:      lt.Description,
		RequiresApproval: lt.RequiresApproval,
		Active:           lt.Active,
	}
}
