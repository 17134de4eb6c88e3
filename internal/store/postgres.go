package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	"github.com/hirewire/hirewire/internal/models"
)

type Postgres struct {
	db *sqlx.DB
}

func NewPostgres(db *sqlx.DB) *Postgres {
	return &Postgres{db: db}
}

// uniqueViolation reports whether err is a Postgres unique-constraint
// violation on the named constraint.
func uniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == "23505" && pgErr.ConstraintName == constraint
}

// ---------------------- Users ----------------------

func (p *Postgres) CreateUser(ctx context.Context, u *models.User) error {
	err := p.db.QueryRowxContext(ctx, `
		INSERT INTO users (name, email, password_hash, role, resume)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, u.Name, u.Email, u.Password, u.Role, u.Resume).
		Scan(&u.ID, &u.CreatedAt)

	if uniqueViolation(err, "users_email_key") {
		return ErrDuplicateEmail
	}
	return err
}

func (p *Postgres) UserByID(ctx context.Context, id int64) (*models.User, error) {
	var u models.User
	err := p.db.GetContext(ctx, &u, `SELECT * FROM users WHERE id=$1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (p *Postgres) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := p.db.GetContext(ctx, &u, `SELECT * FROM users WHERE email=$1`, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (p *Postgres) ListUsers(ctx context.Context) ([]models.User, error) {
	users := []models.User{}
	err := p.db.SelectContext(ctx, &users, `SELECT * FROM users ORDER BY id`)
	return users, err
}

// ---------------------- Jobs ----------------------

func (p *Postgres) CreateJob(ctx context.Context, j *models.JobPost) error {
	return p.db.QueryRowxContext(ctx, `
		INSERT INTO job_posts (title, company, location, job_type, description, posted_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, date_posted
	`, j.Title, j.Company, j.Location, j.JobType, j.Description, j.PostedBy).
		Scan(&j.ID, &j.DatePosted)
}

func (p *Postgres) JobByID(ctx context.Context, id int64) (*models.JobPost, error) {
	var j models.JobPost
	err := p.db.GetContext(ctx, &j, `SELECT * FROM job_posts WHERE id=$1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &j, nil
}

func (p *Postgres) ListJobs(ctx context.Context, f JobFilter) ([]models.JobPost, error) {
	query := `SELECT * FROM job_posts`
	var (
		conds []string
		args  []any
	)
	if f.Title != "" {
		args = append(args, "%"+f.Title+"%")
		conds = append(conds, `title ILIKE $1`)
	}
	if f.Location != "" {
		args = append(args, "%"+f.Location+"%")
		if len(args) == 1 {
			conds = append(conds, `location ILIKE $1`)
		} else {
			conds = append(conds, `location ILIKE $2`)
		}
	}
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, ` AND `)
	}
	query += ` ORDER BY id`

	jobs := []models.JobPost{}
	err := p.db.SelectContext(ctx, &jobs, query, args...)
	return jobs, err
}

func (p *Postgres) JobsByPoster(ctx context.Context, userID int64) ([]models.JobPost, error) {
	jobs := []models.JobPost{}
	err := p.db.SelectContext(ctx, &jobs, `
		SELECT * FROM job_posts WHERE posted_by=$1 ORDER BY id
	`, userID)
	return jobs, err
}

func (p *Postgres) UpdateJob(ctx context.Context, j *models.JobPost) error {
	res, err := p.db.ExecContext(ctx, `
		UPDATE job_posts
		SET title=$1, company=$2, location=$3, job_type=$4, description=$5
		WHERE id=$6
	`, j.Title, j.Company, j.Location, j.JobType, j.Description, j.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteJob removes the post; the ON DELETE CASCADE constraint on
// applications.job_id removes its applications in the same statement.
func (p *Postgres) DeleteJob(ctx context.Context, id int64) error {
	res, err := p.db.ExecContext(ctx, `DELETE FROM job_posts WHERE id=$1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// ---------------------- Applications ----------------------

func (p *Postgres) CreateApplication(ctx context.Context, a *models.Application) error {
	if a.Status == "" {
		a.Status = models.StatusPending
	}
	err := p.db.QueryRowxContext(ctx, `
		INSERT INTO applications (resume_filename, status, message, user_id, job_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, a.ResumeFilename, a.Status, a.Message, a.UserID, a.JobID).
		Scan(&a.ID, &a.CreatedAt)

	if uniqueViolation(err, "applications_user_id_job_id_key") {
		return ErrDuplicateApplication
	}
	return err
}

func (p *Postgres) HasApplication(ctx context.Context, userID, jobID int64) (bool, error) {
	var exists bool
	err := p.db.GetContext(ctx, &exists, `
		SELECT EXISTS (
			SELECT 1 FROM applications WHERE user_id=$1 AND job_id=$2
		)
	`, userID, jobID)
	return exists, err
}

func (p *Postgres) ApplicationsByJob(ctx context.Context, jobID int64) ([]models.Application, error) {
	apps := []models.Application{}
	err := p.db.SelectContext(ctx, &apps, `
		SELECT * FROM applications WHERE job_id=$1 ORDER BY id
	`, jobID)
	return apps, err
}

func (p *Postgres) ListApplications(ctx context.Context) ([]models.Application, error) {
	apps := []models.Application{}
	err := p.db.SelectContext(ctx, &apps, `SELECT * FROM applications ORDER BY id`)
	return apps, err
}

// ---------------------- Sessions ----------------------

func (p *Postgres) CreateSession(ctx context.Context, s *models.Session) error {
	_, err := p.db.ExecContext(ctx, `
		INSERT INTO sessions (token, user_id, expires_at)
		VALUES ($1, $2, $3)
	`, s.Token, s.UserID, s.ExpiresAt)
	return err
}

func (p *Postgres) SessionByToken(ctx context.Context, token string) (*models.Session, error) {
	var s models.Session
	err := p.db.GetContext(ctx, &s, `
		SELECT * FROM sessions WHERE token=$1 AND expires_at > NOW()
	`, token)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (p *Postgres) DeleteSession(ctx context.Context, token string) error {
	_, err := p.db.ExecContext(ctx, `DELETE FROM sessions WHERE token=$1`, token)
	return err
}
