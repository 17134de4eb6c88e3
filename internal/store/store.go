package store

import (
	"context"
	"errors"

	"github.com/hirewire/hirewire/internal/models"
)

var (
	ErrNotFound             = errors.New("store: not found")
	ErrDuplicateEmail       = errors.New("store: email already registered")
	ErrDuplicateApplication = errors.New("store: application already exists")
)

// JobFilter narrows ListJobs. Empty fields are no-ops, not empty-string
// matches; non-empty fields match as case-insensitive substrings.
type JobFilter struct {
	Title    string
	Location string
}

// Store is the persistence surface the handlers depend on. The Postgres
// implementation backs the server; the memory implementation backs tests.
type Store interface {
	CreateUser(ctx context.Context, u *models.User) error
	UserByID(ctx context.Context, id int64) (*models.User, error)
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)

	CreateJob(ctx context.Context, j *models.JobPost) error
	JobByID(ctx context.Context, id int64) (*models.JobPost, error)
	ListJobs(ctx context.Context, f JobFilter) ([]models.JobPost, error)
	JobsByPoster(ctx context.Context, userID int64) ([]models.JobPost, error)
	UpdateJob(ctx context.Context, j *models.JobPost) error
	DeleteJob(ctx context.Context, id int64) error

	CreateApplication(ctx context.Context, a *models.Application) error
	HasApplication(ctx context.Context, userID, jobID int64) (bool, error)
	ApplicationsByJob(ctx context.Context, jobID int64) ([]models.Application, error)
	ListApplications(ctx context.Context) ([]models.Application, error)

	CreateSession(ctx context.Context, s *models.Session) error
	SessionByToken(ctx context.Context, token string) (*models.Session, error)
	DeleteSession(ctx context.Context, token string) error
}
