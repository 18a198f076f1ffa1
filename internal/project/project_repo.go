package project

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=project_repo.go -destination=mock/project_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, p *Project) error
	FindByID(ctx context.Context, id string) (*Project, error)
	FindAll(ctx context.Context) ([]Project, error)
	Update(ctx context.Context, p *Project) error
	// FindActiveForMember returns active projects the user may book
	// time on, ordered by code.
	FindActiveForMember(ctx context.Context, userID string) ([]Project, error)
	// FindActiveForMemberByID loads one project only if it is active
	// and the user is on its roster.
	FindActiveForMemberByID(ctx context.Context, userID, projectID string) (*Project, error)
	AddMember(ctx context.Context, projectID, userID string) error
	RemoveMember(ctx context.Context, projectID, userID string) error
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

func (r *repository) Create(ctx context.Context, p *Project) error {
	return r.conn(ctx).Create(p).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Project, error) {
	var p Project
	err := r.conn(ctx).First(&p, "id = ?", id).Error
	return &p, err
}

func (r *repository) FindAll(ctx context.Context) ([]Project, error) {
	var projects []Project
	err := r.conn(ctx).
		Order("code ASC").
		Find(&projects).Error
	return projects, err
}

func (r *repository) Update(ctx context.Context, p *Project) error {
	return r.conn(ctx).Save(p).Error
}

func (r *repository) FindActiveForMember(ctx context.Context, userID string) ([]Project, error) {
	var projects []Project
	err := r.conn(ctx).
		Joins("JOIN project_members pm ON pm.project_id = projects.id").
		Where("pm.user_id = ?", userID).
		Where("projects.active = ?", true).
		Order("projects.code ASC").
		Find(&projects).Error
	return projects, err
}

func (r *repository) FindActiveForMemberByID(ctx context.Context, userID, projectID string) (*Project, error) {
	var p Project
	err := r.conn(ctx).
		Joins("JOIN project_members pm ON pm.project_id = projects.id").
		Where("pm.user_id = ?", userID).
		Where("projects.active = ?", true).
		First(&p, "projects.id = ?", projectID).Error
	return &p, err
}

func (r *repository) AddMember(ctx context.Context, projectID, userID string) error {
	return r.conn(ctx).Exec(`
		INSERT INTO project_members (project_id, user_id)
		VALUES (?, ?)
		ON CONFLICT DO NOTHING
	`, projectID, userID).Error
}

func (r *repository) RemoveMember(ctx context.Context, projectID, userID string) error {
	return r.conn(ctx).Exec(`
		DELETE FROM project_members
		WHERE project_id = ? AND user_id = ?
	`, projectID, userID).Error
}
