package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/job-board-api/internal/models"
	"github.com/yukikurage/job-board-api/internal/utils"
)

func stringPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }

func TestJobService_Create(t *testing.T) {
	env := setupTestEnv(t, nil)
	company := env.createCompany(t, "hr@example.com")

	job, err := env.jobService.Create(company.ID, CreateJobInput{
		Title:          " Data Engineer ",
		ContractType:   models.ContractFullTime,
		RequiredSkills: []string{"Go", "Kafka"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Data Engineer", job.Title)
	assert.True(t, job.Active)
	assert.Equal(t, int64(0), job.ApplicationCount)
	assert.Equal(t, "Acme", job.Company.Name)

	_, err = env.jobService.Create(company.ID, CreateJobInput{Title: "  "})
	require.ErrorIs(t, err, ErrJobTitleRequired)

	_, err = env.jobService.Create(company.ID, CreateJobInput{Title: "Ops", ContractType: "forever"})
	require.ErrorIs(t, err, ErrInvalidContractType)
}

func TestJobService_UpdateOwnership(t *testing.T) {
	env := setupTestEnv(t, nil)
	company := env.createCompany(t, "hr@example.com")
	other := env.createCompany(t, "other@example.com")
	job := env.createJob(t, company.ID, true)

	_, err := env.jobService.Update(other.ID, job.ID, UpdateJobInput{Title: stringPtr("Hijacked")})
	require.ErrorIs(t, err, ErrForbidden)

	updated, err := env.jobService.Update(company.ID, job.ID, UpdateJobInput{
		Title:  stringPtr("Staff Engineer"),
		Active: boolPtr(false),
	})
	require.NoError(t, err)
	assert.Equal(t, "Staff Engineer", updated.Title)
	assert.False(t, updated.Active)
	assert.Equal(t, "Lyon", updated.Location)

	_, err = env.jobService.Update(company.ID, job.ID+100, UpdateJobInput{})
	require.ErrorIs(t, err, ErrJobNotFound)
}

func TestJobService_UpdateKeepsApplicationCount(t *testing.T) {
	env := setupTestEnv(t, nil)
	user := env.createUser(t, "candidate@example.com")
	company := env.createCompany(t, "hr@example.com")
	job := env.createJob(t, company.ID, true)

	// Loaded before the application arrives, so its counter is stale.
	stale, err := env.jobs.FindByID(job.ID)
	require.NoError(t, err)

	_, err = env.applications.Apply(ApplyInput{UserID: user.ID, JobID: job.ID})
	require.NoError(t, err)

	stale.Title = "Renamed"
	require.NoError(t, env.jobs.Update(stale))

	assert.Equal(t, int64(1), env.applicationCount(t, job.ID))
}

func TestJobService_Deactivate(t *testing.T) {
	env := setupTestEnv(t, nil)
	company := env.createCompany(t, "hr@example.com")
	other := env.createCompany(t, "other@example.com")
	job := env.createJob(t, company.ID, true)

	require.ErrorIs(t, env.jobService.Deactivate(other.ID, job.ID), ErrForbidden)
	require.NoError(t, env.jobService.Deactivate(company.ID, job.ID))
	require.NoError(t, env.jobService.Deactivate(company.ID, job.ID))

	stored, err := env.jobService.Get(job.ID)
	require.NoError(t, err)
	assert.False(t, stored.Active)
}

func TestJobService_List(t *testing.T) {
	env := setupTestEnv(t, nil)
	company := env.createCompany(t, "hr@example.com")

	_, err := env.jobService.Create(company.ID, CreateJobInput{Title: "Go Developer", Location: "Paris", ContractType: models.ContractFullTime})
	require.NoError(t, err)
	_, err = env.jobService.Create(company.ID, CreateJobInput{Title: "Designer", Location: "Lyon", ContractType: models.ContractFreelance})
	require.NoError(t, err)
	closed, err := env.jobService.Create(company.ID, CreateJobInput{Title: "Go Intern", Location: "Paris", ContractType: models.ContractInternship})
	require.NoError(t, err)
	require.NoError(t, env.jobService.Deactivate(company.ID, closed.ID))

	page := utils.PaginationParams{Page: 1, Limit: 20}

	jobs, total, err := env.jobService.List(ListJobsInput{Pagination: page})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, jobs, 2)

	jobs, total, err = env.jobService.List(ListJobsInput{Query: "go", Pagination: page})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "Go Developer", jobs[0].Title)

	_, total, err = env.jobService.List(ListJobsInput{ContractType: "freelance", Location: "lyon", Pagination: page})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	_, _, err = env.jobService.List(ListJobsInput{ContractType: "forever", Pagination: page})
	require.ErrorIs(t, err, ErrInvalidContractType)

	all, err := env.jobService.ListForCompany(company.ID)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
