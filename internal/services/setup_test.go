package services

import (
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/job-board-api/internal/auth"
	"github.com/yukikurage/job-board-api/internal/database"
	"github.com/yukikurage/job-board-api/internal/models"
	"github.com/yukikurage/job-board-api/internal/repository"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type testEnv struct {
	db           *gorm.DB
	users        repository.UserRepository
	companies    repository.CompanyRepository
	jobs         repository.JobRepository
	apps         repository.ApplicationRepository
	authService  *AuthService
	profiles     *ProfileService
	jobService   *JobService
	applications *ApplicationService
}

func newTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func setupTestEnv(t *testing.T, aiService *AIService) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	log := newTestLogger()
	require.NoError(t, database.Migrate(db, log))

	env := &testEnv{
		db:        db,
		users:     repository.NewUserRepository(db),
		companies: repository.NewCompanyRepository(db),
		jobs:      repository.NewJobRepository(db),
		apps:      repository.NewApplicationRepository(db),
	}
	tokens := auth.NewTokenManager("test-secret", time.Hour, nil)
	env.authService = NewAuthService(env.users, env.companies, tokens, log)
	env.profiles = NewProfileService(env.users, env.companies, log)
	env.jobService = NewJobService(env.jobs, env.companies, log)
	env.applications = NewApplicationService(env.apps, env.jobs, env.users, aiService, log)

	return env
}

func (e *testEnv) createUser(t *testing.T, email string) *models.User {
	t.Helper()
	user := &models.User{Email: email, PasswordHash: "hashed", FirstName: "Ada", LastName: "Lovelace", Active: true}
	require.NoError(t, e.db.Create(user).Error)
	return user
}

func (e *testEnv) createCompany(t *testing.T, email string) *models.Company {
	t.Helper()
	company := &models.Company{Email: email, PasswordHash: "hashed", Name: "Acme", Active: true}
	require.NoError(t, e.db.Create(company).Error)
	return company
}

func (e *testEnv) createJob(t *testing.T, companyID uint64, active bool) *models.Job {
	t.Helper()
	job := &models.Job{CompanyID: companyID, Title: "Backend Engineer", Location: "Lyon", Active: true}
	require.NoError(t, e.db.Create(job).Error)
	if !active {
		require.NoError(t, e.db.Model(job).Update("active", false).Error)
		job.Active = false
	}
	return job
}

func (e *testEnv) applicationCount(t *testing.T, jobID uint64) int64 {
	t.Helper()
	var job models.Job
	require.NoError(t, e.db.First(&job, jobID).Error)
	return job.ApplicationCount
}

func (e *testEnv) storedApplications(t *testing.T, jobID uint64) int64 {
	t.Helper()
	var count int64
	require.NoError(t, e.db.Model(&models.Application{}).Where("job_id = ?", jobID).Count(&count).Error)
	return count
}
