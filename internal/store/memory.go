package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/hirewire/hirewire/internal/models"
)

var (
	_ Store = (*Postgres)(nil)
	_ Store = (*Memory)(nil)
)

// Memory is a map-backed Store. It enforces the same uniqueness and
// cascade rules as the Postgres schema so handler tests exercise the real
// conflict paths.
type Memory struct {
	mu sync.Mutex

	users        map[int64]models.User
	jobs         map[int64]models.JobPost
	applications map[int64]models.Application
	sessions     map[string]models.Session

	nextUserID int64
	nextJobID  int64
	nextAppID  int64
}

func NewMemory() *Memory {
	return &Memory{
		users:        map[int64]models.User{},
		jobs:         map[int64]models.JobPost{},
		applications: map[int64]models.Application{},
		sessions:     map[string]models.Session{},
	}
}

// ---------------------- Users ----------------------

func (m *Memory) CreateUser(_ context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.users {
		if existing.Email == u.Email {
			return ErrDuplicateEmail
		}
	}
	m.nextUserID++
	u.ID = m.nextUserID
	u.CreatedAt = time.Now()
	m.users[u.ID] = *u
	return nil
}

func (m *Memory) UserByID(_ context.Context, id int64) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (m *Memory) UserByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) ListUsers(_ context.Context) ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	users := make([]models.User, 0, len(m.users))
	for _, u := range m.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

// ---------------------- Jobs ----------------------

func (m *Memory) CreateJob(_ context.Context, j *models.JobPost) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextJobID++
	j.ID = m.nextJobID
	j.DatePosted = time.Now()
	m.jobs[j.ID] = *j
	return nil
}

func (m *Memory) JobByID(_ context.Context, id int64) (*models.JobPost, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	j, ok := m.jobs[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &j, nil
}

func (m *Memory) ListJobs(_ context.Context, f JobFilter) ([]models.JobPost, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	jobs := []models.JobPost{}
	for _, j := range m.jobs {
		if f.Title != "" && !containsFold(j.Title, f.Title) {
			continue
		}
		if f.Location != "" && !containsFold(j.Location, f.Location) {
			continue
		}
		jobs = append(jobs, j)
	}
	sort.Slice(jobs, func(i, j int) bool { return jobs[i].ID < jobs[j].ID })
	return jobs, nil
}

func (m *Memory) JobsByPoster(_ context.Context, userID int64) ([]models.JobPost, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	jobs := []models.JobPost{}
	for _, j := range m.jobs {
		if j.PostedBy == userID {
			jobs = append(jobs, j)
		}
	}
	sort.Slice(jobs, func(i, j int) bool { return jobs[i].ID < jobs[j].ID })
	return jobs, nil
}

func (m *Memory) UpdateJob(_ context.Context, j *models.JobPost) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.jobs[j.ID]
	if !ok {
		return ErrNotFound
	}
	existing.Title = j.Title
	existing.Company = j.Company
	existing.Location = j.Location
	existing.JobType = j.JobType
	existing.Description = j.Description
	m.jobs[j.ID] = existing
	return nil
}

func (m *Memory) DeleteJob(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.jobs[id]; !ok {
		return ErrNotFound
	}
	delete(m.jobs, id)
	// cascade, as the FK does in Postgres
	for appID, a := range m.applications {
		if a.JobID == id {
			delete(m.applications, appID)
		}
	}
	return nil
}

// ---------------------- Applications ----------------------

func (m *Memory) CreateApplication(_ context.Context, a *models.Application) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.applications {
		if existing.UserID == a.UserID && existing.JobID == a.JobID {
			return ErrDuplicateApplication
		}
	}
	if a.Status == "" {
		a.Status = models.StatusPending
	}
	m.nextAppID++
	a.ID = m.nextAppID
	a.CreatedAt = time.Now()
	m.applications[a.ID] = *a
	return nil
}

func (m *Memory) HasApplication(_ context.Context, userID, jobID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, a := range m.applications {
		if a.UserID == userID && a.JobID == jobID {
			return true, nil
		}
	}
	return false, nil
}

func (m *Memory) ApplicationsByJob(_ context.Context, jobID int64) ([]models.Application, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	apps := []models.Application{}
	for _, a := range m.applications {
		if a.JobID == jobID {
			apps = append(apps, a)
		}
	}
	sort.Slice(apps, func(i, j int) bool { return apps[i].ID < apps[j].ID })
	return apps, nil
}

func (m *Memory) ListApplications(_ context.Context) ([]models.Application, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	apps := make([]models.Application, 0, len(m.applications))
	for _, a := range m.applications {
		apps = append(apps, a)
	}
	sort.Slice(apps, func(i, j int) bool { return apps[i].ID < apps[j].ID })
	return apps, nil
}

// ---------------------- Sessions ----------------------

func (m *Memory) CreateSession(_ context.Context, s *models.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sessions[s.Token] = *s
	return nil
}

func (m *Memory) SessionByToken(_ context.Context, token string) (*models.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[token]
	if !ok || time.Now().After(s.ExpiresAt) {
		return nil, ErrNotFound
	}
	return &s, nil
}

func (m *Memory) DeleteSession(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, token)
	return nil
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
