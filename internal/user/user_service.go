package user

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go-timesheet/internal/events"
	"go-timesheet/internal/messaging/kafka"
	"go-timesheet/internal/shared/contextutil"
	"go-timesheet/internal/shared/counter"
	usererrors "go-timesheet/internal/user/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

//go:generate mockgen -source=user_service.go -destination=mock/user_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateUserRequest) (UserResponse, error)
	GetAll(ctx context.Context) ([]UserResponse, error)
	GetByID(ctx context.Context, id string) (UserResponse, error)
	Update(ctx context.Context, id string, req UpdateUserRequest) (UserResponse, error)
	AssignManager(ctx context.Context, id string, req AssignManagerRequest) (UserResponse, error)
	DirectReports(ctx context.Context, managerID string) ([]UserResponse, error)
	IsDirectManager(ctx context.Context, managerID, userID string) (bool, error)
}

type service struct {
	db      *sql.DB
	repo    Repository
	counter counter.Repository
	outbox  kafka.OutboxRepository
	logger  *zap.Logger
}

func NewService(db *sql.DB, repo Repository, counter counter.Repository, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, counter, nil, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	counter counter.Repository,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("user.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("user.service")
	}
	return &service{
		db:      db,
		repo:    repo,
		counter: counter,
		outbox:  outboxRepo,
		logger:  l,
	}
}

func (s *service) Create(ctx context.Context, req CreateUserRequest) (UserResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create user requested",
		zap.String("request_id", rid),
		zap.String("username", req.Username),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create user begin tx failed", zap.Error(err))
		return UserResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	role := req.Role
	if role == "" {
		role = RoleEmployee
	}
	if !ValidRole(role) {
		return UserResponse{}, usererrors.ErrInvalidRole
	}

	var managerID *uuid.UUID
	if req.ManagerID != nil && *req.ManagerID != "" {
		mid, err := uuid.Parse(*req.ManagerID)
		if err != nil {
			return UserResponse{}, usererrors.ErrManagerNotFound
		}
		if _, err := qtx.FindByID(ctx, mid.String()); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return UserResponse{}, usererrors.ErrManagerNotFound
			}
			return UserResponse{}, err
		}
		managerID = &mid
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("create user hash password failed", zap.Error(err))
		return UserResponse{}, err
	}

	if req.EmployeeNumber == "" {
		nextVal, err := s.counter.GetNextValue(ctx, "employee_number")
		if err != nil {
			s.logger.Error("create user generate number failed", zap.Error(err))
			return UserResponse{}, err
		}
		req.EmployeeNumber = fmt.Sprintf("EMP-%06d", nextVal)
	}

	u := &User{
		ID:             uuid.New(),
		EmployeeNumber: req.EmployeeNumber,
		Username:       req.Username,
		FullName:       req.FullName,
		Email:          req.Email,
		PasswordHash:   string(hash),
		Role:           role,
		ManagerID:      managerID,
		Active:         true,
	}

	if err := qtx.Create(ctx, u); err != nil {
		s.logger.Error("create user persist failed", zap.Error(err))
		return UserResponse{}, mapRepositoryError(err)
	}

	event := events.UserCreatedEvent{
		EventType:  "user_created",
		RequestID:  rid,
		UserID:     u.ID.String(),
		OccurredAt: time.Now().UTC(),
	}
	if s.outbox != nil {
		payload, err := json.Marshal(event)
		if err != nil {
			s.logger.Error("marshal user_created event failed", zap.Error(err))
			return UserResponse{}, err
		}

		outboxRepo := s.outbox.WithTx(tx)
		if err := outboxRepo.Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     rid,
			AggregateType: "user",
			AggregateID:   u.ID.String(),
			EventType:     event.EventType,
			Topic:         events.UserCreatedTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			s.logger.Error("create user outbox persist failed",
				zap.String("user_id", u.ID.String()),
				zap.Error(err),
			)
			return UserResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create user commit failed", zap.Error(err))
		return UserResponse{}, err
	}

	s.logger.Info("create user success",
		zap.String("request_id", rid),
		zap.String("user_id", u.ID.String()),
		zap.String("employee_number", u.EmployeeNumber),
	)
	return mapToResponse(*u), nil
}

func (s *service) GetAll(ctx context.Context) ([]UserResponse, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(users), nil
}

func (s *service) GetByID(ctx context.Context, id string) (UserResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return UserResponse{}, usererrors.ErrInvalidUserID
	}
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return UserResponse{}, usererrors.ErrUserNotFound
		}
		return UserResponse{}, err
	}
	return mapToResponse(*u), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateUserRequest) (UserResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return UserResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	u, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return UserResponse{}, usererrors.ErrUserNotFound
		}
		return UserResponse{}, err
	}

	u.FullName = req.FullName
	u.Email = req.Email
	if req.Role != "" {
		if !ValidRole(req.Role) {
			return UserResponse{}, usererrors.ErrInvalidRole
		}
		u.Role = req.Role
	}
	if req.Active != nil {
		u.Active = *req.Active
	}

	if err := qtx.Update(ctx, u); err != nil {
		return UserResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		return UserResponse{}, err
	}
	return mapToResponse(*u), nil
}

// AssignManager sets or clears a user's direct manager. The reporting
// structure must stay a forest: walking up from the candidate manager
// must never reach the user being assigned.
func (s *service) AssignManager(ctx context.Context, id string, req AssignManagerRequest) (UserResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return UserResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	u, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return UserResponse{}, usererrors.ErrUserNotFound
		}
		return UserResponse{}, err
	}

	if req.ManagerID == nil || *req.ManagerID == "" {
		u.ManagerID = nil
		u.Manager = nil
	} else {
		mid, err := uuid.Parse(*req.ManagerID)
		if err != nil {
			return UserResponse{}, usererrors.ErrManagerNotFound
		}
		if mid == u.ID {
			return UserResponse{}, usererrors.ErrSelfManager
		}
		if err := s.checkNoCycle(ctx, qtx, u.ID, mid); err != nil {
			return UserResponse{}, err
		}
		u.ManagerID = &mid
		u.Manager = nil
	}

	if err := qtx.Update(ctx, u); err != nil {
		return UserResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		return UserResponse{}, err
	}

	s.logger.Info("assign manager success",
		zap.String("user_id", u.ID.String()),
		zap.Any("manager_id", u.ManagerID),
	)
	return mapToResponse(*u), nil
}

// checkNoCycle walks the manager chain upward from candidate and fails
// if it reaches userID. The visited set guards against pre-existing
// cycles in the data.
func (s *service) checkNoCycle(ctx context.Context, repo Repository, userID, candidate uuid.UUID) error {
	visited := map[uuid.UUID]bool{}
	current := candidate

	for {
		if current == userID {
			return usererrors.ErrManagerCycle
		}
		if visited[current] {
			return usererrors.ErrManagerCycle
		}
		visited[current] = true

		m, err := repo.FindByID(ctx, current.String())
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return usererrors.ErrManagerNotFound
			}
			return err
		}
		if m.ManagerID == nil {
			return nil
		}
		current = *m.ManagerID
	}
}

func (s *service) DirectReports(ctx context.Context, managerID string) ([]UserResponse, error) {
	if _, err := uuid.Parse(managerID); err != nil {
		return nil, usererrors.ErrInvalidUserID
	}
	users, err := s.repo.FindDirectReports(ctx, managerID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(users), nil
}

// IsDirectManager is a strict one-level check: managerID must be the
// user's direct manager, not an ancestor further up the chain.
func (s *service) IsDirectManager(ctx context.Context, managerID, userID string) (bool, error) {
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, usererrors.ErrUserNotFound
		}
		return false, err
	}
	return u.ManagerID != nil && u.ManagerID.String() == managerID, nil
}

func mapRepositoryError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return usererrors.ErrUsernameTaken
	}
	return err
}

func mapToResponse(u User) UserResponse {
	resp := UserResponse{
		ID:             u.ID.String(),
		EmployeeNumber: u.EmployeeNumber,
		Username:       u.Username,
		FullName:       u.FullName,
		Email:          u.Email,
		Role:           u.Role,
		Active:         u.Active,
	}
	if u.ManagerID != nil {
		v := u.ManagerID.String()
		resp.ManagerID = &v
	}
	if u.Manager != nil {
		resp.ManagerName = u.Manager.FullName
	}
	return resp
}

func mapToListResponse(users []User) []UserResponse {
	resp := make([]UserResponse, len(users))
	for i, u := range users {
		resp[i] = mapToResponse(u)
	}
	return resp
}
