package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/job-board-api/internal/auth"
	"github.com/yukikurage/job-board-api/internal/constants"
	"github.com/yukikurage/job-board-api/internal/database"
	"github.com/yukikurage/job-board-api/internal/models"
	"github.com/yukikurage/job-board-api/internal/repository"
	"github.com/yukikurage/job-board-api/internal/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type apiTestEnv struct {
	db          *gorm.DB
	router      *gin.Engine
	tokens      *auth.TokenManager
	authService *services.AuthService
}

func setupAPITestEnv(t *testing.T, aiService *services.AIService) *apiTestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	log := logrus.New()
	log.SetOutput(io.Discard)
	require.NoError(t, database.Migrate(db, log))

	userRepo := repository.NewUserRepository(db)
	companyRepo := repository.NewCompanyRepository(db)
	jobRepo := repository.NewJobRepository(db)
	appRepo := repository.NewApplicationRepository(db)

	tokens := auth.NewTokenManager("test-secret", time.Hour, nil)
	authService := services.NewAuthService(userRepo, companyRepo, tokens, log)
	profileService := services.NewProfileService(userRepo, companyRepo, log)
	jobService := services.NewJobService(jobRepo, companyRepo, log)
	applicationService := services.NewApplicationService(appRepo, jobRepo, userRepo, aiService, log)

	router := gin.New()
	RegisterRoutes(router, Handlers{
		Auth:        NewAuthHandler(authService),
		Profile:     NewProfileHandler(profileService, jobService),
		Job:         NewJobHandler(jobService),
		Application: NewApplicationHandler(applicationService),
		Tokens:      tokens,
	})

	return &apiTestEnv{
		db:          db,
		router:      router,
		tokens:      tokens,
		authService: authService,
	}
}

func (e *apiTestEnv) token(t *testing.T, id uint64, role auth.Role) string {
	t.Helper()
	token, _, err := e.tokens.Issue(auth.Actor{ID: id, Role: role})
	require.NoError(t, err)
	return token
}

func (e *apiTestEnv) do(t *testing.T, method, path, token string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(constants.HeaderAuthorization, "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *apiTestEnv) createUser(t *testing.T, email string) *models.User {
	t.Helper()
	user := &models.User{Email: email, PasswordHash: "hashed", FirstName: "Ada", Active: true}
	require.NoError(t, e.db.Create(user).Error)
	return user
}

func (e *apiTestEnv) createCompany(t *testing.T, email, name string) *models.Company {
	t.Helper()
	company := &models.Company{Email: email, PasswordHash: "hashed", Name: name, Active: true}
	require.NoError(t, e.db.Create(company).Error)
	return company
}

func (e *apiTestEnv) createJob(t *testing.T, companyID uint64, title string) *models.Job {
	t.Helper()
	job := &models.Job{CompanyID: companyID, Title: title, Location: "Paris", ContractType: models.ContractFullTime, Active: true}
	require.NoError(t, e.db.Create(job).Error)
	return job
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func requireStatus(t *testing.T, w *httptest.ResponseRecorder, status int) {
	t.Helper()
	require.Equal(t, status, w.Code, w.Body.String())
}
