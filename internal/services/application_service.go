package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
	"github.com/yukikurage/job-board-api/internal/auth"
	"github.com/yukikurage/job-board-api/internal/constants"
	"github.com/yukikurage/job-board-api/internal/metrics"
	"github.com/yukikurage/job-board-api/internal/models"
	"github.com/yukikurage/job-board-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrApplicationNotFound    = errors.New("application not found")
	ErrJobInactive            = errors.New("job is no longer accepting applications")
	ErrDuplicateApplication   = errors.New("you have already applied to this job")
	ErrInvalidTransition      = errors.New("application has already been decided")
	ErrInvalidOutcome         = errors.New("outcome must be accepted or rejected")
	ErrCoverLetterTooLong     = errors.New("cover letter is too long")
	ErrCompanyNoteTooLong     = errors.New("company note is too long")
	ErrAIServiceNotConfigured = errors.New("AI service is not configured")
)

// ApplicationService owns the application lifecycle: pending on apply, then
// exactly one decision by the owning company, or withdrawal by the candidate
// while still pending. It holds no locks; atomicity comes from the store.
type ApplicationService struct {
	apps      repository.ApplicationRepository
	jobs      repository.JobRepository
	users     repository.UserRepository
	aiService *AIService
	log       logrus.FieldLogger
}

// NewApplicationService creates a new ApplicationService
func NewApplicationService(
	apps repository.ApplicationRepository,
	jobs repository.JobRepository,
	users repository.UserRepository,
	aiService *AIService,
	log logrus.FieldLogger,
) *ApplicationService {
	return &ApplicationService{
		apps:      apps,
		jobs:      jobs,
		users:     users,
		aiService: aiService,
		log:       log,
	}
}

// ApplyInput represents a candidate applying to a job
type ApplyInput struct {
	UserID      uint64
	JobID       uint64
	CoverLetter string
}

// DecideInput represents a company decision on an application
type DecideInput struct {
	CompanyID     uint64
	ApplicationID uint64
	Outcome       models.ApplicationStatus
	Note          string
}

// ApplicationStatistics holds application counts per status
type ApplicationStatistics struct {
	Total    int64
	Pending  int64
	Accepted int64
	Rejected int64
}

// Apply creates a pending application and bumps the job's application count
// in the same transaction. Text limits count characters, not bytes.
func (s *ApplicationService) Apply(input ApplyInput) (*models.Application, error) {
	coverLetter := strings.TrimSpace(input.CoverLetter)
	if utf8.RuneCountInString(coverLetter) > constants.MaxCoverLetterLength {
		return nil, ErrCoverLetterTooLong
	}

	if _, err := s.activeUser(input.UserID); err != nil {
		return nil, err
	}

	var created *models.Application
	err := s.apps.Transaction(func(apps repository.ApplicationRepository, jobs repository.JobRepository) error {
		job, err := jobs.FindByID(input.JobID, "Company")
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrJobNotFound
			}
			return fmt.Errorf("failed to find job: %w", err)
		}

		// A deactivated company no longer takes applications on any of its jobs.
		if !job.Active || !job.Company.Active {
			return ErrJobInactive
		}

		if _, err := apps.FindByUserAndJob(input.UserID, job.ID); err == nil {
			return ErrDuplicateApplication
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to check existing application: %w", err)
		}

		app := &models.Application{
			UserID:      input.UserID,
			JobID:       job.ID,
			CompanyID:   job.CompanyID,
			CoverLetter: coverLetter,
			Status:      models.ApplicationStatusPending,
		}

		// The unique (user_id, job_id) index settles concurrent applies
		// that both passed the check above.
		if err := apps.Create(app); err != nil {
			if errors.Is(err, repository.ErrDuplicateKey) {
				return ErrDuplicateApplication
			}
			return fmt.Errorf("failed to create application: %w", err)
		}

		if err := jobs.IncrementApplicationCount(job.ID, 1); err != nil {
			return fmt.Errorf("failed to update application count: %w", err)
		}

		created = app
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordApplicationTransition(metrics.TransitionApply)
	s.log.WithFields(logrus.Fields{
		"application_id": created.ID,
		"user_id":        created.UserID,
		"job_id":         created.JobID,
	}).Info("Application created")

	return created, nil
}

// Decide records the owning company's accept or reject decision.
func (s *ApplicationService) Decide(input DecideInput) (*models.Application, error) {
	if input.Outcome != models.ApplicationStatusAccepted && input.Outcome != models.ApplicationStatusRejected {
		return nil, ErrInvalidOutcome
	}

	note := strings.TrimSpace(input.Note)
	if utf8.RuneCountInString(note) > constants.MaxCompanyNoteLength {
		return nil, ErrCompanyNoteTooLong
	}

	app, err := s.findApplication(input.ApplicationID, "Company")
	if err != nil {
		return nil, err
	}

	if app.CompanyID != input.CompanyID || !app.Company.Active {
		return nil, ErrForbidden
	}

	if app.Status.IsTerminal() {
		return nil, ErrInvalidTransition
	}

	changed, err := s.apps.UpdateStatusIfPending(app.ID, input.Outcome, note)
	if err != nil {
		return nil, fmt.Errorf("failed to update application status: %w", err)
	}
	if !changed {
		// Another decision or a withdrawal got there first.
		if _, err := s.findApplication(app.ID); err != nil {
			return nil, err
		}
		return nil, ErrInvalidTransition
	}

	transition := metrics.TransitionAccept
	if input.Outcome == models.ApplicationStatusRejected {
		transition = metrics.TransitionReject
	}
	metrics.RecordApplicationTransition(transition)
	s.log.WithFields(logrus.Fields{
		"application_id": app.ID,
		"company_id":     input.CompanyID,
		"status":         input.Outcome,
	}).Info("Application decided")

	decided, err := s.findApplication(app.ID, "Job", "User")
	if err != nil {
		// The decision is committed; answer with what was written.
		s.log.WithError(err).WithField("application_id", app.ID).Warn("Failed to reload decided application")
		app.Status = input.Outcome
		app.CompanyNote = note
		return app, nil
	}
	return decided, nil
}

// Withdraw deletes a pending application on behalf of its candidate and
// decrements the job's application count in the same transaction.
func (s *ApplicationService) Withdraw(userID, applicationID uint64) error {
	app, err := s.findApplication(applicationID, "User")
	if err != nil {
		return err
	}

	if app.UserID != userID || !app.User.Active {
		return ErrForbidden
	}

	if app.Status.IsTerminal() {
		return ErrInvalidTransition
	}

	err = s.apps.Transaction(func(apps repository.ApplicationRepository, jobs repository.JobRepository) error {
		deleted, err := apps.DeleteIfPending(app.ID)
		if err != nil {
			return fmt.Errorf("failed to delete application: %w", err)
		}
		if !deleted {
			if _, err := apps.FindByID(app.ID); errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrApplicationNotFound
			}
			return ErrInvalidTransition
		}

		if err := jobs.IncrementApplicationCount(app.JobID, -1); err != nil {
			return fmt.Errorf("failed to update application count: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	metrics.RecordApplicationTransition(metrics.TransitionWithdraw)
	s.log.WithFields(logrus.Fields{
		"application_id": app.ID,
		"user_id":        userID,
		"job_id":         app.JobID,
	}).Info("Application withdrawn")

	return nil
}

// Get returns an application visible to the actor
func (s *ApplicationService) Get(actor auth.Actor, applicationID uint64) (*models.Application, error) {
	app, err := s.findApplication(applicationID, "Job", "User", "Company")
	if err != nil {
		return nil, err
	}

	switch {
	case actor.Role == auth.RoleUser && app.UserID == actor.ID:
		return app, nil
	case actor.Role == auth.RoleCompany && app.CompanyID == actor.ID:
		return app, nil
	default:
		return nil, ErrForbidden
	}
}

// ListForJob lists the applications to a job owned by the company
func (s *ApplicationService) ListForJob(companyID, jobID uint64) ([]models.Application, error) {
	job, err := s.jobs.FindByID(jobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, fmt.Errorf("failed to find job: %w", err)
	}

	if job.CompanyID != companyID {
		return nil, ErrForbidden
	}

	apps, err := s.apps.ListByJob(jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	return apps, nil
}

// ListForUser lists a candidate's own applications
func (s *ApplicationService) ListForUser(userID uint64) ([]models.Application, error) {
	apps, err := s.apps.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	return apps, nil
}

// ListForCompany lists applications received on a company's jobs
func (s *ApplicationService) ListForCompany(companyID uint64) ([]models.Application, error) {
	apps, err := s.apps.ListByCompany(companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	return apps, nil
}

// Statistics aggregates the actor's own applications by status
func (s *ApplicationService) Statistics(actor auth.Actor) (*ApplicationStatistics, error) {
	var filter repository.ApplicationFilter
	switch actor.Role {
	case auth.RoleUser:
		filter.UserID = &actor.ID
	case auth.RoleCompany:
		filter.CompanyID = &actor.ID
	default:
		return nil, ErrForbidden
	}

	counts, err := s.apps.CountByStatus(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to compute statistics: %w", err)
	}

	stats := &ApplicationStatistics{
		Pending:  counts[models.ApplicationStatusPending],
		Accepted: counts[models.ApplicationStatusAccepted],
		Rejected: counts[models.ApplicationStatusRejected],
	}
	stats.Total = stats.Pending + stats.Accepted + stats.Rejected

	return stats, nil
}

// DraftCoverLetter generates a cover letter suggestion for the candidate and job
func (s *ApplicationService) DraftCoverLetter(ctx context.Context, userID, jobID uint64) (string, error) {
	if s.aiService == nil {
		return "", ErrAIServiceNotConfigured
	}

	user, err := s.activeUser(userID)
	if err != nil {
		return "", err
	}

	job, err := s.jobs.FindByID(jobID, "Company")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrJobNotFound
		}
		return "", fmt.Errorf("failed to find job: %w", err)
	}

	if !job.Active || !job.Company.Active {
		return "", ErrJobInactive
	}

	letter, err := s.aiService.DraftCoverLetter(ctx, CoverLetterRequest{
		CandidateName:       strings.TrimSpace(user.FirstName + " " + user.LastName),
		CandidateSkills:     user.Skills,
		CandidateExperience: user.Experience,
		JobTitle:            job.Title,
		CompanyName:         job.Company.Name,
		JobDescription:      job.Description,
		RequiredSkills:      job.RequiredSkills,
	})
	if err != nil {
		return "", fmt.Errorf("failed to draft cover letter: %w", err)
	}

	return letter, nil
}

// activeUser loads a candidate that may still act on applications.
func (s *ApplicationService) activeUser(id uint64) (*models.User, error) {
	user, err := s.users.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if !user.Active {
		return nil, ErrForbidden
	}
	return user, nil
}

func (s *ApplicationService) findApplication(id uint64, preload ...string) (*models.Application, error) {
	app, err := s.apps.FindByID(id, preload...)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, fmt.Errorf("failed to find application: %w", err)
	}
	return app, nil
}
