package entitlement

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"

	entitlementerrors "go-timesheet/internal/entitlement/errors"
	"go-timesheet/internal/leavetype"
)

//go:generate mockgen -source=entitlement_service.go -destination=mock/entitlement_service_mock.go -package=mock
type Service interface {
	Grant(ctx context.Context, req GrantRequest) (EntitlementResponse, error)
	UpdateGrant(ctx context.Context, id string, req UpdateGrantRequest) (EntitlementResponse, error)
	ListForYear(ctx context.Context, userID string, year int) ([]EntitlementResponse, error)
	// Balances computes allocated, used and remaining days per
	// entitled leave type for the user's year.
	Balances(ctx context.Context, userID string, year int) ([]Balance, error)
	// BalanceFor resolves the single balance backing a leave request.
	BalanceFor(ctx context.Context, userID, leaveTypeID string, year int) (Balance, error)
	// Provision creates the standard yearly grants for a new user.
	// Safe to call more than once, existing rows are kept.
	Provision(ctx context.Context, userID string, year int) error
}

type service struct {
	repo     Repository
	typeRepo leavetype.Repository
	logger   *zap.Logger
}

func NewService(repo Repository, typeRepo leavetype.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("entitlement.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("entitlement.service")
	}
	return &service{repo: repo, typeRepo: typeRepo, logger: l}
}

func (s *service) Grant(ctx context.Context, req GrantRequest) (EntitlementResponse, error) {
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return EntitlementResponse{}, entitlementerrors.ErrEntitlementNotFound
	}
	typeID, err := uuid.Parse(req.LeaveTypeID)
	if err != nil {
		return EntitlementResponse{}, entitlementerrors.ErrEntitlementNotFound
	}

	e := &Entitlement{
		UserID:        userID,
		LeaveTypeID:   typeID,
		Year:          req.Year,
		AllocatedDays: req.AllocatedDays,
	}
	if err := s.repo.Create(ctx, e); err != nil {
		s.logger.Error("grant entitlement persist failed", zap.Error(err))
		return EntitlementResponse{}, mapRepositoryError(err)
	}

	loaded, err := s.repo.FindByID(ctx, e.ID.String())
	if err != nil {
		return EntitlementResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("entitlement granted",
		zap.String("user_id", req.UserID),
		zap.String("leave_type_id", req.LeaveTypeID),
		zap.Int("year", req.Year),
		zap.Float64("allocated_days", req.AllocatedDays),
	)
	return mapToResponse(*loaded), nil
}

func (s *service) UpdateGrant(ctx context.Context, id string, req UpdateGrantRequest) (EntitlementResponse, error) {
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.logger.Error("update entitlement load failed", zap.Error(err))
		return EntitlementResponse{}, mapRepositoryError(err)
	}

	e.AllocatedDays = req.AllocatedDays
	if err := s.repo.Update(ctx, e); err != nil {
		s.logger.Error("update entitlement persist failed", zap.Error(err))
		return EntitlementResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*e), nil
}

func (s *service) ListForYear(ctx context.Context, userID string, year int) ([]EntitlementResponse, error) {
	ents, err := s.repo.FindByUserAndYear(ctx, userID, year)
	if err != nil {
		s.logger.Error("list entitlements failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	resp := make([]EntitlementResponse, 0, len(ents))
	for _, e := range ents {
		resp = append(resp, mapToResponse(e))
	}
	return resp, nil
}

func (s *service) Balances(ctx context.Context, userID string, year int) ([]Balance, error) {
	ents, err := s.repo.FindByUserAndYear(ctx, userID, year)
	if err != nil {
		s.logger.Error("load entitlements for balances failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	balances := make([]Balance, 0, len(ents))
	for _, e := range ents {
		used, err := s.repo.SumApprovedDays(ctx, userID, e.LeaveTypeID.String(), year)
		if err != nil {
			s.logger.Error("sum approved days failed",
				zap.String("leave_type_id", e.LeaveTypeID.String()),
				zap.Error(err),
			)
			return nil, mapRepositoryError(err)
		}
		balances = append(balances, Balance{
			LeaveTypeID:   e.LeaveTypeID.String(),
			LeaveTypeCode: e.LeaveType.Code,
			LeaveTypeName: e.LeaveType.Name,
			Year:          year,
			Allocated:     e.AllocatedDays,
			Used:          used,
			Remaining:     e.AllocatedDays - used,
		})
	}
	return balances, nil
}

func (s *service) BalanceFor(ctx context.Context, userID, leaveTypeID string, year int) (Balance, error) {
	e, err := s.repo.FindByUserTypeYear(ctx, userID, leaveTypeID, year)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Balance{}, entitlementerrors.ErrNoEntitlement
		}
		return Balance{}, mapRepositoryError(err)
	}

	used, err := s.repo.SumApprovedDays(ctx, userID, leaveTypeID, year)
	if err != nil {
		return Balance{}, mapRepositoryError(err)
	}

	return Balance{
		LeaveTypeID:   leaveTypeID,
		LeaveTypeCode: e.LeaveType.Code,
		LeaveTypeName: e.LeaveType.Name,
		Year:          year,
		Allocated:     e.AllocatedDays,
		Used:          used,
		Remaining:     e.AllocatedDays - used,
	}, nil
}

func (s *service) Provision(ctx context.Context, userID string, year int) error {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return entitlementerrors.ErrEntitlementNotFound
	}
	if year == 0 {
		year = time.Now().UTC().Year()
	}

	for code, days := range StandardGrants {
		lt, err := s.typeRepo.FindByCode(ctx, code)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				s.logger.Warn("provision skipped, leave type not seeded",
					zap.String("code", code),
				)
				continue
			}
			return err
		}

		e := &Entitlement{
			UserID:        uid,
			LeaveTypeID:   lt.ID,
			Year:          year,
			AllocatedDays: days,
		}
		if err := s.repo.Create(ctx, e); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				// Already provisioned, e.g. a redelivered event.
				continue
			}
			s.logger.Error("provision entitlement failed",
				zap.String("user_id", userID),
				zap.String("code", code),
				zap.Error(err),
			)
			return err
		}
	}

	s.logger.Info("standard entitlements provisioned",
		zap.String("user_id", userID),
		zap.Int("year", year),
	)
	return nil
}

func mapRepositoryError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entitlementerrors.ErrEntitlementNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return entitlementerrors.ErrDuplicateGrant
	}
	return err
}

func mapToResponse(e Entitlement) EntitlementResponse {
	return EntitlementResponse{
		ID:            e.ID.String(),
		UserID:        e.UserID.String(),
		LeaveTypeID:   e.LeaveTypeID.String(),
		LeaveTypeCode: e.LeaveType.Code,
		LeaveTypeName: e.LeaveType.Name,
		Year:          e.Year,
		AllocatedDays: e.AllocatedDays,
	}
}
