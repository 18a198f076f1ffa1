package project

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"

	projecterrors "go-timesheet/internal/project/errors"
	"go-timesheet/internal/shared/contextutil"
)

const OptionsKeyPrefix = "projects:options:"

func GetOptionsKey(userID string) string {
	return OptionsKeyPrefix + userID
}

//go:generate mockgen -source=project_service.go -destination=mock/project_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateProjectRequest) (ProjectResponse, error)
	GetAll(ctx context.Context) ([]ProjectResponse, error)
	GetByID(ctx context.Context, id string) (ProjectResponse, error)
	Update(ctx context.Context, id string, req UpdateProjectRequest) (ProjectResponse, error)
	// GetOptions lists the projects the user can book time on,
	// served from cache when warm.
	GetOptions(ctx context.Context, userID string) ([]ProjectOption, error)
	AddMember(ctx context.Context, projectID, userID string) error
	RemoveMember(ctx context.Context, projectID, userID string) error
}

type service struct {
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("project.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("project.service")
	}
	return &service{
		repo:   repo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

func (s *service) Create(ctx context.Context, req CreateProjectRequest) (ProjectResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create project requested",
		zap.String("request_id", rid),
		zap.String("code", req.Code),
	)

	p := &Project{
		Code:        req.Code,
		Name:        req.Name,
		Description: req.Description,
		Active:      true,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		s.logger.Error("create project persist failed", zap.Error(err))
		return ProjectResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("create project success",
		zap.String("request_id", rid),
		zap.String("project_id", p.ID.String()),
	)
	return mapToResponse(*p), nil
}

func (s *service) GetAll(ctx context.Context) ([]ProjectResponse, error) {
	projects, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("get all projects failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(projects), nil
}

func (s *service) GetByID(ctx context.Context, id string) (ProjectResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.logger.Error("get project by id failed", zap.Error(err))
		return ProjectResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*p), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateProjectRequest) (ProjectResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.logger.Error("update project load failed", zap.Error(err))
		return ProjectResponse{}, mapRepositoryError(err)
	}

	p.Name = req.Name
	p.Description = req.Description
	if req.Active != nil {
		p.Active = *req.Active
	}

	if err := s.repo.Update(ctx, p); err != nil {
		s.logger.Error("update project persist failed", zap.Error(err))
		return ProjectResponse{}, mapRepositoryError(err)
	}

	// Archiving changes what members may still see in their pickers,
	// but we cannot enumerate member cache keys here. Options entries
	// carry a short TTL so they converge on their own.
	s.logger.Info("update project success",
		zap.String("request_id", rid),
		zap.String("project_id", id),
	)
	return mapToResponse(*p), nil
}

func (s *service) GetOptions(ctx context.Context, userID string) ([]ProjectOption, error) {
	cacheKey := GetOptionsKey(userID)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var opts []ProjectOption
			if json.Unmarshal([]byte(cached), &opts) == nil {
				return opts, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		projects, err := s.repo.FindActiveForMember(ctx, userID)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		opts := make([]ProjectOption, 0, len(projects))
		for _, p := range projects {
			opts = append(opts, ProjectOption{
				ID:   p.ID.String(),
				Code: p.Code,
				Name: p.Name,
			})
		}

		if s.rdb != nil {
			if jsonData, err := json.Marshal(opts); err == nil {
				s.rdb.Set(ctx, cacheKey, jsonData, 15*time.Minute)
			}
		}

		return opts, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]ProjectOption), nil
}

func (s *service) AddMember(ctx context.Context, projectID, userID string) error {
	if _, err := s.repo.FindByID(ctx, projectID); err != nil {
		return mapRepositoryError(err)
	}
	if err := s.repo.AddMember(ctx, projectID, userID); err != nil {
		s.logger.Error("add project member failed",
			zap.String("project_id", projectID),
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return mapRepositoryError(err)
	}
	s.invalidateOptions(ctx, userID)
	s.logger.Info("project member added",
		zap.String("project_id", projectID),
		zap.String("user_id", userID),
	)
	return nil
}

func (s *service) RemoveMember(ctx context.Context, projectID, userID string) error {
	if _, err := s.repo.FindByID(ctx, projectID); err != nil {
		return mapRepositoryError(err)
	}
	if err := s.repo.RemoveMember(ctx, projectID, userID); err != nil {
		s.logger.Error("remove project member failed",
			zap.String("project_id", projectID),
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return mapRepositoryError(err)
	}
	s.invalidateOptions(ctx, userID)
	s.logger.Info("project member removed",
		zap.String("project_id", projectID),
		zap.String("user_id", userID),
	)
	return nil
}

func (s *service) invalidateOptions(ctx context.Context, userID string) {
	if s.rdb == nil {
		return
	}
	cacheKey := GetOptionsKey(userID)
	if err := s.rdb.Del(ctx, cacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate project options cache",
			zap.Error(err),
			zap.String("key", cacheKey),
		)
	}
}

func mapRepositoryError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return projecterrors.ErrProjectNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return projecterrors.ErrCodeTaken
	}
	return err
}

func mapToResponse(p Project) ProjectResponse {
	return ProjectResponse{
		ID:          p.ID.String(),
		Code:        p.Code,
		Name:        p.Name,
		Description: p.Description,
		Active:      p.Active,
	}
}

func mapToListResponse(projects []Project) []ProjectResponse {
	resp := make([]ProjectResponse, 0, len(projects))
	for _, p := range projects {
		resp = append(resp, mapToResponse(p))
	}
	return resp
}
