package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yukikurage/job-board-api/internal/auth"
	"github.com/yukikurage/job-board-api/internal/dto"
	apierrors "github.com/yukikurage/job-board-api/internal/errors"
)

func TestProfileHandler_UserProfile(t *testing.T) {
	env := setupAPITestEnv(t, nil)
	user := env.createUser(t, "candidate@example.com")
	token := env.token(t, user.ID, auth.RoleUser)

	w := env.do(t, http.MethodPut, "/api/users/me", token, map[string]interface{}{
		"last_name": "Hopper",
		"skills":    []string{"COBOL"},
	})
	requireStatus(t, w, http.StatusOK)

	var updated dto.UserDTO
	decode(t, w, &updated)
	assert.Equal(t, "Ada", updated.FirstName)
	assert.Equal(t, "Hopper", updated.LastName)
	assert.Equal(t, []string{"COBOL"}, updated.Skills)

	w = env.do(t, http.MethodGet, "/api/users/me", token, nil)
	requireStatus(t, w, http.StatusOK)

	w = env.do(t, http.MethodGet, "/api/companies/me", token, nil)
	requireStatus(t, w, http.StatusForbidden)
}

func TestProfileHandler_DeactivateUser(t *testing.T) {
	env := setupAPITestEnv(t, nil)
	user := env.createUser(t, "candidate@example.com")

	w := env.do(t, http.MethodDelete, "/api/users/me", env.token(t, user.ID, auth.RoleUser), nil)
	requireStatus(t, w, http.StatusOK)

	var active bool
	assert.NoError(t, env.db.Table("users").Select("active").Where("id = ?", user.ID).Row().Scan(&active))
	assert.False(t, active)
}

func TestProfileHandler_CompanyProfile(t *testing.T) {
	env := setupAPITestEnv(t, nil)
	company := env.createCompany(t, "hr@acme.example", "Acme")
	token := env.token(t, company.ID, auth.RoleCompany)

	w := env.do(t, http.MethodPut, "/api/companies/me", token, map[string]string{"sector": "Robotics"})
	requireStatus(t, w, http.StatusOK)

	var mine dto.CompanyDTO
	decode(t, w, &mine)
	assert.Equal(t, "Robotics", mine.Sector)
	assert.Equal(t, "hr@acme.example", mine.Email)

	w = env.do(t, http.MethodGet, fmt.Sprintf("/api/companies/%d", company.ID), "", nil)
	requireStatus(t, w, http.StatusOK)

	var public dto.CompanyDTO
	decode(t, w, &public)
	assert.Equal(t, "Acme", public.Name)
	assert.Empty(t, public.Email)

	w = env.do(t, http.MethodPut, "/api/companies/me", token, map[string]string{"website": "not a url"})
	requireStatus(t, w, http.StatusBadRequest)
}

func TestProfileHandler_DeactivatedCompanyIsHidden(t *testing.T) {
	env := setupAPITestEnv(t, nil)
	company := env.createCompany(t, "hr@acme.example", "Acme")

	w := env.do(t, http.MethodDelete, "/api/companies/me", env.token(t, company.ID, auth.RoleCompany), nil)
	requireStatus(t, w, http.StatusOK)

	w = env.do(t, http.MethodGet, fmt.Sprintf("/api/companies/%d", company.ID), "", nil)
	requireStatus(t, w, http.StatusNotFound)

	w = env.do(t, http.MethodGet, "/api/companies/999", "", nil)
	requireStatus(t, w, http.StatusNotFound)
}

func TestProfileHandler_DeactivatedUserCannotApply(t *testing.T) {
	env := setupAPITestEnv(t, nil)
	user := env.createUser(t, "candidate@example.com")
	company := env.createCompany(t, "hr@acme.example", "Acme")
	job := env.createJob(t, company.ID, "Backend Engineer")
	token := env.token(t, user.ID, auth.RoleUser)

	w := env.do(t, http.MethodDelete, "/api/users/me", token, nil)
	requireStatus(t, w, http.StatusOK)

	w = env.do(t, http.MethodPost, "/api/applications", token, map[string]interface{}{"job_id": job.ID})
	requireStatus(t, w, http.StatusForbidden)

	var count int64
	assert.NoError(t, env.db.Table("applications").Count(&count).Error)
	assert.Zero(t, count)
}

func TestProfileHandler_DeactivatedCompanyClosesJobs(t *testing.T) {
	env := setupAPITestEnv(t, nil)
	user := env.createUser(t, "candidate@example.com")
	latecomer := env.createUser(t, "latecomer@example.com")
	company := env.createCompany(t, "hr@acme.example", "Acme")
	job := env.createJob(t, company.ID, "Backend Engineer")
	companyToken := env.token(t, company.ID, auth.RoleCompany)

	w := env.do(t, http.MethodPost, "/api/applications", env.token(t, user.ID, auth.RoleUser), map[string]interface{}{"job_id": job.ID})
	requireStatus(t, w, http.StatusCreated)
	var app dto.ApplicationDTO
	decode(t, w, &app)

	w = env.do(t, http.MethodDelete, "/api/companies/me", companyToken, nil)
	requireStatus(t, w, http.StatusOK)

	w = env.do(t, http.MethodPost, "/api/applications", env.token(t, latecomer.ID, auth.RoleUser), map[string]interface{}{"job_id": job.ID})
	requireStatus(t, w, http.StatusUnprocessableEntity)
	var apiErr apierrors.APIError
	decode(t, w, &apiErr)
	assert.Equal(t, apierrors.ErrCodeJobInactive, apiErr.Code)

	w = env.do(t, http.MethodGet, fmt.Sprintf("/api/jobs/%d", job.ID), "", nil)
	requireStatus(t, w, http.StatusNotFound)

	w = env.do(t, http.MethodGet, "/api/jobs", "", nil)
	requireStatus(t, w, http.StatusOK)
	var list dto.JobListResponse
	decode(t, w, &list)
	assert.Empty(t, list.Jobs)

	w = env.do(t, http.MethodPut, fmt.Sprintf("/api/applications/%d/status", app.ID), companyToken, map[string]string{"status": "accepted"})
	requireStatus(t, w, http.StatusForbidden)
}
