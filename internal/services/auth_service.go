package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"github.com/yukikurage/job-board-api/internal/auth"
	"github.com/yukikurage/job-board-api/internal/constants"
	"github.com/yukikurage/job-board-api/internal/models"
	"github.com/yukikurage/job-board-api/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken           = errors.New("email already registered")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrPasswordTooShort     = errors.New("password too short")
	ErrInvalidEmail         = errors.New("email address is invalid")
	ErrCompanyNameRequired  = errors.New("company name is required")
	ErrInvalidRole          = errors.New("role must be user or company")
	ErrUserNotFound         = errors.New("user not found")
	ErrCompanyNotFound      = errors.New("company not found")
	ErrFailedToHashPassword = errors.New("failed to hash password")
)

// AuthService handles registration and token based authentication for both
// candidates and companies.
type AuthService struct {
	userRepo    repository.UserRepository
	companyRepo repository.CompanyRepository
	tokens      *auth.TokenManager
	log         logrus.FieldLogger
}

// NewAuthService creates a new AuthService.
func NewAuthService(
	userRepo repository.UserRepository,
	companyRepo repository.CompanyRepository,
	tokens *auth.TokenManager,
	log logrus.FieldLogger,
) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		companyRepo: companyRepo,
		tokens:      tokens,
		log:         log,
	}
}

// RegisterUserInput represents the information needed to create a candidate account.
type RegisterUserInput struct {
	Email      string
	Password   string
	FirstName  string
	LastName   string
	Phone      string
	Skills     []string
	Experience string
	ResumeURL  string
}

// RegisterCompanyInput represents the information needed to create a company account.
type RegisterCompanyInput struct {
	Email       string
	Password    string
	Name        string
	Description string
	Sector      string
	Address     string
	Website     string
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Email    string
	Password string
	Role     auth.Role
}

// Session is an issued access token.
type Session struct {
	Token     string
	ExpiresAt time.Time
	Actor     auth.Actor
}

// RegisterUser creates a new candidate account.
func (s *AuthService) RegisterUser(input RegisterUserInput) (*models.User, error) {
	email, hash, err := prepareCredentials(input.Email, input.Password)
	if err != nil {
		return nil, err
	}

	if _, err := s.userRepo.FindByEmail(email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	user := &models.User{
		Email:        email,
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		Phone:        strings.TrimSpace(input.Phone),
		Skills:       normalizeSkills(input.Skills),
		Experience:   input.Experience,
		ResumeURL:    strings.TrimSpace(input.ResumeURL),
		Active:       true,
	}

	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.log.WithField("user_id", user.ID).Info("User registered")
	return user, nil
}

// RegisterCompany creates a new company account.
func (s *AuthService) RegisterCompany(input RegisterCompanyInput) (*models.Company, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrCompanyNameRequired
	}

	email, hash, err := prepareCredentials(input.Email, input.Password)
	if err != nil {
		return nil, err
	}

	if _, err := s.companyRepo.FindByEmail(email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	company := &models.Company{
		Email:        email,
		PasswordHash: hash,
		Name:         name,
		Description:  input.Description,
		Sector:       strings.TrimSpace(input.Sector),
		Address:      strings.TrimSpace(input.Address),
		Website:      strings.TrimSpace(input.Website),
		Active:       true,
	}

	if err := s.companyRepo.Create(company); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create company: %w", err)
	}

	s.log.WithField("company_id", company.ID).Info("Company registered")
	return company, nil
}

// Login verifies credentials for the requested role and issues a token.
// Unknown emails, wrong passwords and deactivated accounts are
// indistinguishable to the caller.
func (s *AuthService) Login(input LoginInput) (*Session, error) {
	email := normalizeEmail(input.Email)

	var (
		id     uint64
		hash   string
		active bool
		err    error
	)
	switch input.Role {
	case auth.RoleUser:
		var user *models.User
		user, err = s.userRepo.FindByEmail(email)
		if err == nil {
			id, hash, active = user.ID, user.PasswordHash, user.Active
		}
	case auth.RoleCompany:
		var company *models.Company
		company, err = s.companyRepo.FindByEmail(email)
		if err == nil {
			id, hash, active = company.ID, company.PasswordHash, company.Active
		}
	default:
		return nil, ErrInvalidRole
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find account: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !active {
		return nil, ErrInvalidCredentials
	}

	actor := auth.Actor{ID: id, Role: input.Role}
	token, expiresAt, err := s.tokens.Issue(actor)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"actor_id": actor.ID,
		"role":     actor.Role,
	}).Info("Login succeeded")

	return &Session{Token: token, ExpiresAt: expiresAt, Actor: actor}, nil
}

// Logout revokes the token described by claims. It reports whether the
// revocation was persisted; without a revocation store tokens stay valid
// until they expire.
func (s *AuthService) Logout(ctx context.Context, claims *auth.Claims) (bool, error) {
	revoked, err := s.tokens.Revoke(ctx, claims)
	if err != nil {
		return false, fmt.Errorf("failed to revoke token: %w", err)
	}
	return revoked, nil
}

// Account is the profile behind a token; exactly one field is set.
type Account struct {
	User    *models.User
	Company *models.Company
}

// Me returns the account of the authenticated actor.
func (s *AuthService) Me(actor auth.Actor) (*Account, error) {
	switch actor.Role {
	case auth.RoleUser:
		user, err := s.GetUser(actor.ID)
		if err != nil {
			return nil, err
		}
		return &Account{User: user}, nil
	case auth.RoleCompany:
		company, err := s.GetCompany(actor.ID)
		if err != nil {
			return nil, err
		}
		return &Account{Company: company}, nil
	default:
		return nil, ErrInvalidRole
	}
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}

// GetCompany retrieves a company by ID.
func (s *AuthService) GetCompany(id uint64) (*models.Company, error) {
	company, err := s.companyRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, fmt.Errorf("failed to find company: %w", err)
	}

	return company, nil
}

// inputValidator applies the same rules gin uses for request binding.
var inputValidator = validator.New()

func prepareCredentials(email, password string) (string, string, error) {
	email = normalizeEmail(email)
	if err := inputValidator.Var(email, "required,email"); err != nil {
		return "", "", ErrInvalidEmail
	}
	if len(password) < constants.MinPasswordLength {
		return "", "", ErrPasswordTooShort
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", "", ErrFailedToHashPassword
	}

	return email, string(hashedPassword), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func normalizeSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	seen := make(map[string]struct{}, len(skills))
	for _, skill := range skills {
		skill = strings.TrimSpace(skill)
		if skill == "" {
			continue
		}
		key := strings.ToLower(skill)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, skill)
	}
	return out
}
