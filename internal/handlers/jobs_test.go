package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hirewire/hirewire/internal/models"
	"github.com/hirewire/hirewire/internal/store"
)

func decodeJobs(t *testing.T, body []byte) []models.JobPost {
	t.Helper()
	var resp struct {
		Jobs []models.JobPost `json:"jobs"`
	}
	require.NoError(t, json.Unmarshal(body, &resp))
	return resp.Jobs
}

func TestPostJobRequiresEmployer(t *testing.T) {
	app := newTestApp(t)
	app.register(t, "Sam", "sam@x.com", "secret1", "seeker")
	token := app.login(t, "sam@x.com", "secret1")

	rec := app.postForm(t, "/post-job", token, url.Values{
		"title": {"Backend Engineer"}, "company": {"Acme"},
		"location": {"Remote"}, "job_type": {"Remote"},
		"description": {"Go services."},
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	jobs, err := app.store.ListJobs(context.Background(), store.JobFilter{})
	require.NoError(t, err)
	assert.Empty(t, jobs)
}

func TestPostJobValidation(t *testing.T) {
	app := newTestApp(t)
	app.register(t, "Emp", "emp@x.com", "secret1", "employer")
	token := app.login(t, "emp@x.com", "secret1")

	rec := app.postForm(t, "/post-job", token, url.Values{
		"title": {"Backend Engineer"}, "company": {"Acme"},
		"location": {"Remote"}, "job_type": {"Freelance"}, // not a valid type
		"description": {"Go services."},
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "jobtype")
}

func TestDashboardFilters(t *testing.T) {
	app := newTestApp(t)
	token, _ := app.seedEmployerWithJob(t, "emp@x.com", "Backend Engineer", "Acme", "Berlin")

	for _, job := range []url.Values{
		{
			"title": {"Frontend Engineer"}, "company": {"Acme"},
			"location": {"Lisbon"}, "job_type": {"Full-time"},
			"description": {"React."},
		},
		{
			"title": {"Data Analyst"}, "company": {"Initech"},
			"location": {"berlin"}, "job_type": {"Part-time"},
			"description": {"Spreadsheets."},
		},
	} {
		rec := app.postForm(t, "/post-job", token, job)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}

	tests := []struct {
		name   string
		query  string
		titles []string
	}{
		{"no filter returns all", "", []string{"Backend Engineer", "Frontend Engineer", "Data Analyst"}},
		{"title substring case-insensitive", "?title=engineer", []string{"Backend Engineer", "Frontend Engineer"}},
		{"location case-insensitive", "?location=BERLIN", []string{"Backend Engineer", "Data Analyst"}},
		{"title and location combined", "?title=backend&location=berlin", []string{"Backend Engineer"}},
		{"no match", "?title=chef", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := app.get(t, "/dashboard"+tt.query, token)
			require.Equal(t, http.StatusOK, rec.Code)

			var titles []string
			for _, j := range decodeJobs(t, rec.Body.Bytes()) {
				titles = append(titles, j.Title)
			}
			assert.Equal(t, tt.titles, titles)
		})
	}
}

func TestMyJobsListsOnlyOwn(t *testing.T) {
	app := newTestApp(t)
	tokenA, _ := app.seedEmployerWithJob(t, "a@corp.com", "Go Developer", "A Corp", "Remote")
	_, _ = app.seedEmployerWithJob(t, "b@corp.com", "Rust Developer", "B Corp", "Remote")

	rec := app.get(t, "/my-jobs", tokenA)
	require.Equal(t, http.StatusOK, rec.Code)

	jobs := decodeJobs(t, rec.Body.Bytes())
	require.Len(t, jobs, 1)
	assert.Equal(t, "Go Developer", jobs[0].Title)
}

func TestEditJobReplacesFields(t *testing.T) {
	app := newTestApp(t)
	token, id := app.seedEmployerWithJob(t, "emp@x.com", "Backend Engineer", "Acme", "Berlin")

	rec := app.postForm(t, "/edit-job/1", token, url.Values{
		"title": {"Senior Backend Engineer"}, "company": {"Acme"},
		"location": {"Remote"}, "job_type": {"Contract"},
		"description": {"More Go."},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	job, err := app.store.JobByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Senior Backend Engineer", job.Title)
	assert.Equal(t, "Contract", job.JobType)
	assert.Equal(t, "Remote", job.Location)
}

func TestEditJobRequiresOwnership(t *testing.T) {
	app := newTestApp(t)
	_, id := app.seedEmployerWithJob(t, "owner@x.com", "Backend Engineer", "Acme", "Berlin")

	app.register(t, "Other", "other@x.com", "secret1", "employer")
	otherToken := app.login(t, "other@x.com", "secret1")

	rec := app.postForm(t, "/edit-job/1", otherToken, url.Values{
		"title": {"Hijacked"}, "company": {"Evil"},
		"location": {"Nowhere"}, "job_type": {"Remote"},
		"description": {"x"},
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	job, err := app.store.JobByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Backend Engineer", job.Title)
}

func TestEditMissingJob(t *testing.T) {
	app := newTestApp(t)
	app.register(t, "Emp", "emp@x.com", "secret1", "employer")
	token := app.login(t, "emp@x.com", "secret1")

	rec := app.postForm(t, "/edit-job/99", token, url.Values{
		"title": {"X"}, "company": {"X"}, "location": {"X"},
		"job_type": {"Remote"}, "description": {"X"},
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteJobRequiresOwnership(t *testing.T) {
	app := newTestApp(t)
	_, _ = app.seedEmployerWithJob(t, "owner@x.com", "Backend Engineer", "Acme", "Berlin")

	app.register(t, "Other", "other@x.com", "secret1", "employer")
	otherToken := app.login(t, "other@x.com", "secret1")

	rec := app.get(t, "/delete-job/1", otherToken)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	_, err := app.store.JobByID(context.Background(), 1)
	assert.NoError(t, err)
}

func TestDeleteJobCascadesApplications(t *testing.T) {
	app := newTestApp(t)
	ownerToken, id := app.seedEmployerWithJob(t, "owner@x.com", "Backend Engineer", "Acme", "Berlin")

	app.register(t, "Sam", "sam@x.com", "secret1", "seeker")
	seekerToken := app.login(t, "sam@x.com", "secret1")

	rec := app.postMultipart(t, "/apply/1", seekerToken,
		map[string]string{"message": "interested"}, "resume.pdf", []byte("%PDF-1.4"))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = app.get(t, "/delete-job/1", ownerToken)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	_, err := app.store.JobByID(context.Background(), id)
	assert.ErrorIs(t, err, store.ErrNotFound)

	apps, err := app.store.ListApplications(context.Background())
	require.NoError(t, err)
	assert.Empty(t, apps, "no application may survive its job post")
}
