package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/job-board-api/internal/auth"
	"github.com/yukikurage/job-board-api/internal/dto"
)

func TestJobHandler_CreateAndGet(t *testing.T) {
	env := setupAPITestEnv(t, nil)
	company := env.createCompany(t, "hr@acme.example", "Acme")
	token := env.token(t, company.ID, auth.RoleCompany)

	w := env.do(t, http.MethodPost, "/api/jobs", token, map[string]interface{}{
		"title":           "Platform Engineer",
		"contract_type":   "full_time",
		"location":        "Nantes",
		"required_skills": []string{"Go", "Terraform"},
	})
	requireStatus(t, w, http.StatusCreated)

	var created dto.JobDTO
	decode(t, w, &created)
	assert.True(t, created.Active)
	require.NotNil(t, created.Company)
	assert.Equal(t, "Acme", created.Company.Name)

	w = env.do(t, http.MethodGet, fmt.Sprintf("/api/jobs/%d", created.ID), "", nil)
	requireStatus(t, w, http.StatusOK)

	var fetched dto.JobDTO
	decode(t, w, &fetched)
	assert.Equal(t, "Platform Engineer", fetched.Title)
	assert.Equal(t, []string{"Go", "Terraform"}, fetched.RequiredSkills)
}

func TestJobHandler_CreateRequiresCompany(t *testing.T) {
	env := setupAPITestEnv(t, nil)
	user := env.createUser(t, "candidate@example.com")

	w := env.do(t, http.MethodPost, "/api/jobs", env.token(t, user.ID, auth.RoleUser), map[string]string{"title": "Anything"})
	requireStatus(t, w, http.StatusForbidden)

	w = env.do(t, http.MethodPost, "/api/jobs", "", map[string]string{"title": "Anything"})
	requireStatus(t, w, http.StatusUnauthorized)
}

func TestJobHandler_CreateInvalidContractType(t *testing.T) {
	env := setupAPITestEnv(t, nil)
	company := env.createCompany(t, "hr@acme.example", "Acme")

	w := env.do(t, http.MethodPost, "/api/jobs", env.token(t, company.ID, auth.RoleCompany), map[string]string{
		"title":         "Ops",
		"contract_type": "forever",
	})
	requireStatus(t, w, http.StatusBadRequest)
}

func TestJobHandler_UpdateOwnership(t *testing.T) {
	env := setupAPITestEnv(t, nil)
	company := env.createCompany(t, "hr@acme.example", "Acme")
	other := env.createCompany(t, "hr@globex.example", "Globex")
	job := env.createJob(t, company.ID, "Backend Engineer")
	path := fmt.Sprintf("/api/jobs/%d", job.ID)

	w := env.do(t, http.MethodPut, path, env.token(t, other.ID, auth.RoleCompany), map[string]string{"title": "Hijacked"})
	requireStatus(t, w, http.StatusForbidden)

	w = env.do(t, http.MethodPut, path, env.token(t, company.ID, auth.RoleCompany), map[string]interface{}{
		"salary": "60k",
		"active": false,
	})
	requireStatus(t, w, http.StatusOK)

	var updated dto.JobDTO
	decode(t, w, &updated)
	assert.Equal(t, "Backend Engineer", updated.Title)
	assert.Equal(t, "60k", updated.Salary)
	assert.False(t, updated.Active)
}

func TestJobHandler_ListJobs(t *testing.T) {
	env := setupAPITestEnv(t, nil)
	acme := env.createCompany(t, "hr@acme.example", "Acme")
	globex := env.createCompany(t, "hr@globex.example", "Globex")

	env.createJob(t, acme.ID, "Go Developer")
	env.createJob(t, acme.ID, "Designer")
	env.createJob(t, globex.ID, "Go Lead")
	closed := env.createJob(t, globex.ID, "Go Intern")
	require.NoError(t, env.db.Model(closed).Update("active", false).Error)

	w := env.do(t, http.MethodGet, "/api/jobs?q=go&limit=1", "", nil)
	requireStatus(t, w, http.StatusOK)

	var page dto.JobListResponse
	decode(t, w, &page)
	assert.Equal(t, int64(2), page.TotalCount)
	assert.Equal(t, 2, page.TotalPages)
	assert.Len(t, page.Jobs, 1)

	w = env.do(t, http.MethodGet, fmt.Sprintf("/api/jobs?company_id=%d", acme.ID), "", nil)
	requireStatus(t, w, http.StatusOK)
	decode(t, w, &page)
	assert.Equal(t, int64(2), page.TotalCount)

	w = env.do(t, http.MethodGet, "/api/jobs?company_id=abc", "", nil)
	requireStatus(t, w, http.StatusBadRequest)
}

func TestJobHandler_ListMyJobsIncludesInactive(t *testing.T) {
	env := setupAPITestEnv(t, nil)
	company := env.createCompany(t, "hr@acme.example", "Acme")
	token := env.token(t, company.ID, auth.RoleCompany)

	job := env.createJob(t, company.ID, "Backend Engineer")
	env.createJob(t, company.ID, "Frontend Engineer")

	w := env.do(t, http.MethodDelete, fmt.Sprintf("/api/jobs/%d", job.ID), token, nil)
	requireStatus(t, w, http.StatusOK)

	w = env.do(t, http.MethodGet, "/api/companies/me/jobs", token, nil)
	requireStatus(t, w, http.StatusOK)

	var response struct {
		Jobs  []dto.JobListItemDTO `json:"jobs"`
		Total int                  `json:"total"`
	}
	decode(t, w, &response)
	assert.Equal(t, 2, response.Total)

	w = env.do(t, http.MethodGet, "/api/jobs", "", nil)
	requireStatus(t, w, http.StatusOK)

	var page dto.JobListResponse
	decode(t, w, &page)
	assert.Equal(t, int64(1), page.TotalCount)
}
